package engine

import (
	"encoding/json"
	"os"
	"testing"
)

func TestWriteReceipt(t *testing.T) {
	dir := t.TempDir()

	report := &Report{
		Status: StateDone,
		Entries: []Entry{
			{Path: "a.txt", Action: "REPLACE", Outcome: OutcomeApplied},
			{Path: "b.txt", Action: "DELETE", Outcome: OutcomeSkipped},
		},
	}

	path, err := WriteReceipt(report, dir)
	if err != nil {
		t.Fatalf("WriteReceipt: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading receipt: %v", err)
	}

	var receipt Receipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		t.Fatalf("receipt is not valid JSON: %v", err)
	}
	if receipt.Status != StateDone {
		t.Errorf("Status = %s, want DONE", receipt.Status)
	}
	if receipt.Applied != 1 || receipt.Skipped != 1 || receipt.Failed != 0 {
		t.Errorf("counts = %d/%d/%d, want 1/1/0", receipt.Applied, receipt.Skipped, receipt.Failed)
	}
	if len(receipt.Entries) != 2 {
		t.Errorf("Entries len = %d, want 2", len(receipt.Entries))
	}
	if receipt.Timestamp == "" {
		t.Error("Timestamp is empty")
	}
}
