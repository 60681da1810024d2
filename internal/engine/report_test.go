package engine

import (
	"strings"
	"testing"
)

func TestReport_Render(t *testing.T) {
	report := &Report{
		Status: StateDone,
		Entries: []Entry{
			{Path: "a.txt", Action: "REPLACE", Outcome: OutcomeApplied},
			{Path: "b.txt", Action: "DELETE", Outcome: OutcomeSkipped},
			{Path: "c.txt", Action: "INSERT_AFTER", Outcome: OutcomeFailed, Reason: "NOT_FOUND: anchor fragment 1 not found"},
		},
	}

	var sb strings.Builder
	report.Render(&sb)
	out := sb.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("rendered %d lines, want 4:\n%s", len(lines), out)
	}
	if lines[0] != "a.txt :: REPLACE :: APPLIED" {
		t.Errorf("line 1 = %q", lines[0])
	}
	if lines[1] != "b.txt :: DELETE :: SKIPPED_ALREADY_APPLIED" {
		t.Errorf("line 2 = %q", lines[1])
	}
	if lines[2] != "c.txt :: INSERT_AFTER :: FAILED :: NOT_FOUND: anchor fragment 1 not found" {
		t.Errorf("line 3 = %q", lines[2])
	}
	if lines[3] != "APPLIED=1 SKIPPED=1 FAILED=1" {
		t.Errorf("summary = %q", lines[3])
	}
}

func TestReport_Succeeded(t *testing.T) {
	tests := []struct {
		name   string
		report Report
		want   bool
	}{
		{"done clean", Report{Status: StateDone, Entries: []Entry{{Outcome: OutcomeApplied}}}, true},
		{"all skipped", Report{Status: StateDone, Entries: []Entry{{Outcome: OutcomeSkipped}}}, true},
		{"done with failure", Report{Status: StateDone, Entries: []Entry{{Outcome: OutcomeFailed}}}, false},
		{"blocked", Report{Status: StateBlocked, Entries: []Entry{{Outcome: OutcomeFailed}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.report.Succeeded(); got != tt.want {
				t.Errorf("Succeeded() = %v, want %v", got, tt.want)
			}
		})
	}
}
