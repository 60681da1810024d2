// Package cli defines the Cobra command tree for the arkmod CLI. Each file
// in this package registers one top-level command (apply, validate, config,
// version) with the root command. Command implementations delegate to
// internal packages for business logic and only handle flag parsing, I/O
// formatting, and exit status.
package cli
