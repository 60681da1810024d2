package engine

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/arkmod-labs/arkmod/internal/platform"
)

// Receipt is the persisted JSON record of one run.
type Receipt struct {
	Timestamp string  `json:"timestamp"`
	Status    string  `json:"status"`
	DryRun    bool    `json:"dry_run"`
	Applied   int     `json:"applied"`
	Skipped   int     `json:"skipped"`
	Failed    int     `json:"failed"`
	Entries   []Entry `json:"entries"`
}

// WriteReceipt serializes the report into receiptDir as
// receipt_<utc-timestamp>.json, written atomically. Returns the path.
func WriteReceipt(report *Report, receiptDir string) (string, error) {
	now := time.Now().UTC()
	applied, skipped, failed := report.Counts()

	receipt := Receipt{
		Timestamp: now.Format(time.RFC3339),
		Status:    report.Status,
		DryRun:    report.DryRun,
		Applied:   applied,
		Skipped:   skipped,
		Failed:    failed,
		Entries:   report.Entries,
	}

	data, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling receipt: %w", err)
	}

	path := filepath.Join(receiptDir, "receipt_"+now.Format("20060102T150405.000000000Z")+".json")
	if err := platform.WriteFileAtomic(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
