package engine

import (
	"fmt"
	"io"
)

// Run states and terminal report statuses.
const (
	StateLoaded     = "LOADED"
	StateValidating = "VALIDATING"
	StateReady      = "READY"
	StateBlocked    = "BLOCKED"
	StateApplying   = "APPLYING"
	StateDone       = "DONE"
)

// Per-modification outcomes.
const (
	OutcomeApplied = "APPLIED"
	OutcomeSkipped = "SKIPPED_ALREADY_APPLIED"
	OutcomeFailed  = "FAILED"
)

// Entry records the outcome of one modification.
type Entry struct {
	Path    string `json:"path"`
	Action  string `json:"action"`
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}

// Report is the sole output artifact of a run besides the modified files.
// It is created fresh per run and never persisted by the engine itself;
// receipts are a separate, optional serialization.
type Report struct {
	Status  string  `json:"status"` // DONE or BLOCKED
	DryRun  bool    `json:"dry_run,omitempty"`
	Entries []Entry `json:"entries"`
}

// Counts tallies entries by outcome.
func (r *Report) Counts() (applied, skipped, failed int) {
	for _, e := range r.Entries {
		switch e.Outcome {
		case OutcomeApplied:
			applied++
		case OutcomeSkipped:
			skipped++
		case OutcomeFailed:
			failed++
		}
	}
	return applied, skipped, failed
}

// Succeeded reports whether the run finished with no failed entries.
func (r *Report) Succeeded() bool {
	_, _, failed := r.Counts()
	return r.Status == StateDone && failed == 0
}

// Render writes the human-readable report: one line per modification
// followed by an overall summary line.
func (r *Report) Render(w io.Writer) {
	for _, e := range r.Entries {
		if e.Reason != "" {
			fmt.Fprintf(w, "%s :: %s :: %s :: %s\n", e.Path, e.Action, e.Outcome, e.Reason)
		} else {
			fmt.Fprintf(w, "%s :: %s :: %s\n", e.Path, e.Action, e.Outcome)
		}
	}
	applied, skipped, failed := r.Counts()
	fmt.Fprintf(w, "APPLIED=%d SKIPPED=%d FAILED=%d\n", applied, skipped, failed)
}
