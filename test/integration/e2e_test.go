//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arkmod-labs/arkmod/internal/anchor"
	"github.com/arkmod-labs/arkmod/internal/engine"
	"github.com/arkmod-labs/arkmod/internal/manifest"
)

// TestFullFlowApplyAndRerun tests the complete flow: write manifest ->
// schema validation -> typed load -> locked run -> receipt -> idempotent
// rerun.
func TestFullFlowApplyAndRerun(t *testing.T) {
	env := setupTestEnv(t)

	writeFile(t, env.ProjectDir, "src/main.md", "# Title\n\n## Status: draft\n\nbody\n")
	writeFile(t, env.ProjectDir, "manifest.yaml", `version: "1.1"
modifications:
  - path: src/main.md
    action: REPLACE
    anchor: "## Status: draft"
    payload: "## Status: final"
  - path: src/main.md
    action: INSERT_AFTER
    anchor: "## Status: final"
    payload: "\n\nReviewed."
  - path: docs/CHANGELOG.md
    action: CREATE_FILE
    payload: "# Changelog\n"
`)

	manifestPath := filepath.Join(env.ProjectDir, "manifest.yaml")

	// Step 1: the raw document passes schema validation.
	result, err := manifest.ValidateFile(manifestPath)
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !result.Valid {
		t.Fatalf("schema validation failed: %+v", result.Issues)
	}

	// Step 2: typed load.
	m, err := manifest.Load(manifestPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Step 3: locked run with backups and receipt.
	release, err := engine.AcquireLock(env.ProjectDir)
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	opts := engine.Options{
		Root:          env.ProjectDir,
		Mode:          anchor.ModeStrict,
		BackupEnabled: true,
		BackupKeep:    5,
		BackupDir:     filepath.Join(env.HomeDir, "backups"),
	}
	report := engine.Run(m, opts)
	release()

	if !report.Succeeded() {
		t.Fatalf("run failed: %+v", report.Entries)
	}

	content := readFile(t, env.ProjectDir, "src/main.md")
	want := "# Title\n\n## Status: final\n\nReviewed.\n\nbody\n"
	if content != want {
		t.Errorf("src/main.md = %q, want %q", content, want)
	}
	assertFileExists(t, filepath.Join(env.ProjectDir, "docs/CHANGELOG.md"))

	receiptPath, err := engine.WriteReceipt(report, filepath.Join(env.HomeDir, "receipts"))
	if err != nil {
		t.Fatalf("WriteReceipt: %v", err)
	}
	assertFileExists(t, receiptPath)

	// One backup of the edited file, none for the created one.
	backups, err := os.ReadDir(filepath.Join(env.HomeDir, "backups"))
	if err != nil {
		t.Fatalf("reading backups: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("backup count = %d, want 1", len(backups))
	}

	// Step 4: rerun is a clean no-op.
	rerun := engine.Run(m, opts)
	if !rerun.Succeeded() {
		t.Fatalf("rerun failed: %+v", rerun.Entries)
	}
	for _, e := range rerun.Entries {
		if e.Outcome != engine.OutcomeSkipped {
			t.Errorf("rerun entry %+v, want SKIPPED_ALREADY_APPLIED", e)
		}
	}
	if got := readFile(t, env.ProjectDir, "src/main.md"); got != want {
		t.Errorf("rerun changed content to %q", got)
	}
}

// TestFullFlowBlockedRun verifies a multi-file manifest with one ambiguous
// anchor leaves the whole tree untouched.
func TestFullFlowBlockedRun(t *testing.T) {
	env := setupTestEnv(t)

	writeFile(t, env.ProjectDir, "a.txt", "alpha\n")
	writeFile(t, env.ProjectDir, "b.txt", "dup dup\n")
	writeFile(t, env.ProjectDir, "manifest.yaml", `version: "1.1"
modifications:
  - path: a.txt
    action: REPLACE
    anchor: "alpha"
    payload: "omega"
  - path: b.txt
    action: REPLACE
    anchor: "dup"
    payload: "one"
`)

	m, err := manifest.Load(filepath.Join(env.ProjectDir, "manifest.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	report := engine.Run(m, engine.Options{Root: env.ProjectDir, Mode: anchor.ModeStrict})
	if report.Status != engine.StateBlocked {
		t.Fatalf("Status = %s, want BLOCKED", report.Status)
	}
	if got := readFile(t, env.ProjectDir, "a.txt"); got != "alpha\n" {
		t.Errorf("a.txt changed in blocked run: %q", got)
	}
	if got := readFile(t, env.ProjectDir, "b.txt"); got != "dup dup\n" {
		t.Errorf("b.txt changed in blocked run: %q", got)
	}
}
