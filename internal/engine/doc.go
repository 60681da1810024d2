// Package engine orchestrates a manifest run: it validates every
// modification against the current on-disk tree, and only when the whole
// manifest resolves does it compute and write each target's new text. A run
// moves through LOADED, VALIDATING, then READY or BLOCKED, then APPLYING and
// DONE. A blocked run writes nothing anywhere; write failures during apply
// are local to one file and never roll back files already written.
package engine
