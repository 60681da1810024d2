package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBackupFile_CopiesContent(t *testing.T) {
	dir := t.TempDir()
	backupDir := t.TempDir()

	src := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(src, []byte("original"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	path, err := backupFile(src, backupDir, 5)
	if err != nil {
		t.Fatalf("backupFile: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "a.txt.") || !strings.HasSuffix(path, ".bak") {
		t.Errorf("backup name = %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if string(data) != "original" {
		t.Errorf("backup content = %q", string(data))
	}
}

func TestBackupFile_Rotation(t *testing.T) {
	dir := t.TempDir()
	backupDir := t.TempDir()

	src := filepath.Join(dir, "a.txt")
	for i := 0; i < 4; i++ {
		if err := os.WriteFile(src, []byte(strings.Repeat("x", i+1)), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := backupFile(src, backupDir, 2); err != nil {
			t.Fatalf("backupFile: %v", err)
		}
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("reading backup dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("backup count = %d, want 2 after rotation", len(entries))
	}

	// The newest backups survive; the newest holds the latest content.
	last := entries[len(entries)-1]
	data, err := os.ReadFile(filepath.Join(backupDir, last.Name()))
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if string(data) != "xxxx" {
		t.Errorf("newest backup content = %q, want %q", string(data), "xxxx")
	}
}

func TestBackupFile_RotationIsPerTarget(t *testing.T) {
	dir := t.TempDir()
	backupDir := t.TempDir()

	for _, name := range []string{"a.txt", "b.txt"} {
		src := filepath.Join(dir, name)
		if err := os.WriteFile(src, []byte(name), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := backupFile(src, backupDir, 1); err != nil {
			t.Fatalf("backupFile: %v", err)
		}
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("reading backup dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("backup count = %d, want one per target", len(entries))
	}
}
