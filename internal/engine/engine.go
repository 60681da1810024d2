package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/arkmod-labs/arkmod/internal/anchor"
	"github.com/arkmod-labs/arkmod/internal/manifest"
	"github.com/arkmod-labs/arkmod/internal/platform"
	"github.com/arkmod-labs/arkmod/internal/splice"
)

// Options configures a run.
type Options struct {
	Root          string      // project root manifest paths resolve against
	Mode          anchor.Mode // anchor matching mode
	DryRun        bool        // validate and report, never write
	BackupEnabled bool        // copy existing targets aside before overwriting
	BackupKeep    int         // rotated backups to keep per target
	BackupDir     string      // where backups land
}

// filePlan is the per-file working state threaded through a run. The file's
// evolving text is an immutable value replaced at each step, never a shared
// buffer mutated in place, so earlier edits cannot invalidate later offsets.
type filePlan struct {
	group       manifest.FileGroup
	fullPath    string
	exists      bool
	text        string
	dirty       bool
	resolutions []anchor.Resolution
	pathErr     error
}

// Run executes one manifest against the tree under opts.Root. All decisions
// are made from the manifest and on-disk state; the engine never prompts.
func Run(m *manifest.Manifest, opts Options) *Report {
	report := &Report{DryRun: opts.DryRun}

	plans := validate(m, opts)

	if anyBlocked(plans) {
		report.Status = StateBlocked
		finishBlocked(report, plans)
		return report
	}

	// READY: every resolution is a span or ALREADY_APPLIED.
	if opts.DryRun {
		report.Status = StateDone
		finishDryRun(report, plans)
		return report
	}

	report.Status = StateDone
	apply(report, plans, opts)
	return report
}

// validate reads each target once and resolves its modifications
// sequentially against the file's evolving in-memory text. Nothing is
// written; every modification across every file gets a resolution so the
// operator sees the complete picture in one run.
func validate(m *manifest.Manifest, opts Options) []*filePlan {
	groups := m.GroupByPath()
	plans := make([]*filePlan, 0, len(groups))

	for _, group := range groups {
		plan := &filePlan{group: group}
		plans = append(plans, plan)

		full, err := platform.ResolveWithin(opts.Root, group.Path)
		if err != nil {
			plan.pathErr = err
			continue
		}
		plan.fullPath = full

		data, err := os.ReadFile(full)
		switch {
		case err == nil:
			plan.exists = true
			plan.text = string(data)
		case os.IsNotExist(err):
			plan.exists = false
		default:
			plan.pathErr = fmt.Errorf("reading %s: %w", group.Path, err)
			continue
		}

		resolveGroup(plan, opts.Mode)
	}

	return plans
}

// resolveGroup resolves one file's modifications in declared order, each
// against the text produced by the previous one.
func resolveGroup(plan *filePlan, mode anchor.Mode) {
	text := plan.text
	haveText := plan.exists

	for i := range plan.group.Mods {
		mod := &plan.group.Mods[i]

		var res anchor.Resolution
		switch {
		case mod.Action == manifest.ActionCreateFile:
			var existing *string
			if haveText {
				existing = &text
			}
			res = anchor.ResolveCreate(existing, mod.PayloadText(), mode)
		case !haveText:
			res = anchor.Resolution{
				Status: anchor.StatusNotFound,
				Reason: "target file does not exist",
			}
		default:
			res = anchor.Resolve(text, mod, mode)
		}

		// Checksum preconditions guard edits that are about to land; an
		// already-applied edit legitimately sees the post-state.
		if res.Status == anchor.StatusResolved && mod.ChecksumBefore != "" {
			if got := checksum(text); got != mod.ChecksumBefore {
				res = anchor.Resolution{
					Status: anchor.StatusNotFound,
					Reason: fmt.Sprintf("state conflict: expected checksum %s, found %s", mod.ChecksumBefore, got),
				}
			}
		}

		plan.resolutions = append(plan.resolutions, res)

		if res.Status == anchor.StatusResolved {
			text = splice.Apply(text, mod, res.Span)
			haveText = true
			plan.dirty = true
		}
	}

	plan.text = text
}

// anyBlocked reports whether any resolution across any file failed.
func anyBlocked(plans []*filePlan) bool {
	for _, plan := range plans {
		if plan.pathErr != nil {
			return true
		}
		for _, res := range plan.resolutions {
			if res.Status == anchor.StatusNotFound || res.Status == anchor.StatusAmbiguous {
				return true
			}
		}
	}
	return false
}

// finishBlocked fills the report for a blocked run: zero files written,
// every modification listed, including those that would have succeeded.
func finishBlocked(report *Report, plans []*filePlan) {
	for _, plan := range plans {
		for i := range plan.group.Mods {
			mod := &plan.group.Mods[i]

			if plan.pathErr != nil {
				report.Entries = append(report.Entries, Entry{
					Path:    mod.Path,
					Action:  mod.Action,
					Outcome: OutcomeFailed,
					Reason:  plan.pathErr.Error(),
				})
				continue
			}

			res := plan.resolutions[i]
			switch res.Status {
			case anchor.StatusAlreadyApplied:
				report.Entries = append(report.Entries, Entry{
					Path:    mod.Path,
					Action:  mod.Action,
					Outcome: OutcomeSkipped,
				})
			case anchor.StatusResolved:
				report.Entries = append(report.Entries, Entry{
					Path:    mod.Path,
					Action:  mod.Action,
					Outcome: OutcomeFailed,
					Reason:  "blocked: run aborted before any write",
				})
			default:
				report.Entries = append(report.Entries, Entry{
					Path:    mod.Path,
					Action:  mod.Action,
					Outcome: OutcomeFailed,
					Reason:  res.Status + ": " + res.Reason,
				})
			}
		}
	}
}

// finishDryRun reports what a real run would do without entering APPLYING.
func finishDryRun(report *Report, plans []*filePlan) {
	for _, plan := range plans {
		for i := range plan.group.Mods {
			mod := &plan.group.Mods[i]
			if plan.resolutions[i].Status == anchor.StatusAlreadyApplied {
				report.Entries = append(report.Entries, Entry{
					Path:    mod.Path,
					Action:  mod.Action,
					Outcome: OutcomeSkipped,
				})
				continue
			}
			report.Entries = append(report.Entries, Entry{
				Path:    mod.Path,
				Action:  mod.Action,
				Outcome: OutcomeApplied,
				Reason:  "dry-run: not written",
			})
		}
	}
}

// apply writes each dirty file's fully computed text in one atomic
// operation. Files are independent transactions: a write failure marks that
// file's pending modifications FAILED and the run moves on.
func apply(report *Report, plans []*filePlan, opts Options) {
	for _, plan := range plans {
		var writeErr error

		if plan.dirty {
			if opts.BackupEnabled && plan.exists {
				if _, err := backupFile(plan.fullPath, opts.BackupDir, opts.BackupKeep); err != nil {
					writeErr = fmt.Errorf("backing up %s: %w", plan.group.Path, err)
				}
			}
			if writeErr == nil {
				writeErr = platform.WriteFileAtomic(plan.fullPath, []byte(plan.text), 0644)
			}
		}

		for i := range plan.group.Mods {
			mod := &plan.group.Mods[i]
			switch {
			case plan.resolutions[i].Status == anchor.StatusAlreadyApplied:
				report.Entries = append(report.Entries, Entry{
					Path:    mod.Path,
					Action:  mod.Action,
					Outcome: OutcomeSkipped,
				})
			case writeErr != nil:
				report.Entries = append(report.Entries, Entry{
					Path:    mod.Path,
					Action:  mod.Action,
					Outcome: OutcomeFailed,
					Reason:  writeErr.Error(),
				})
			default:
				report.Entries = append(report.Entries, Entry{
					Path:    mod.Path,
					Action:  mod.Action,
					Outcome: OutcomeApplied,
				})
			}
		}
	}
}

// checksum returns the sha256 hex digest of text.
func checksum(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
