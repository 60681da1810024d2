// Package manifest handles parsing and validation of modification manifests.
// A manifest is an ordered collection of declarative edit records (insert,
// replace, delete, create) targeting files in a project tree. The package
// provides YAML parsing into typed records, JSON Schema validation of the raw
// document, and the required-field checks each action demands.
package manifest
