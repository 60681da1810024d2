// Package platform provides the low-level filesystem primitives the engine
// relies on: atomic whole-file writes (temp file plus rename, so a target is
// never observable half-written) and root-confinement checks that keep
// manifest-relative paths from escaping the project tree.
package platform
