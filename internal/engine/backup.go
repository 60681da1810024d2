package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// backupFile copies path into backupDir under a timestamped name and prunes
// the oldest copies beyond keep. Returns the backup path.
func backupFile(path, backupDir string, keep int) (string, error) {
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("creating backup directory %s: %w", backupDir, err)
	}

	base := filepath.Base(path)
	ts := time.Now().UTC().Format("20060102T150405.000000000Z")
	backupPath := filepath.Join(backupDir, base+"."+ts+".bak")

	if err := copyFile(path, backupPath); err != nil {
		return "", err
	}

	if err := rotateBackups(backupDir, base, keep); err != nil {
		return "", err
	}

	return backupPath, nil
}

// rotateBackups removes the oldest backups of base beyond keep. Backup names
// embed a UTC timestamp, so lexical order is age order.
func rotateBackups(backupDir, base string, keep int) error {
	if keep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return fmt.Errorf("listing backup directory %s: %w", backupDir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, base+".") && strings.HasSuffix(name, ".bak") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for len(names) > keep {
		oldest := names[0]
		names = names[1:]
		if err := os.Remove(filepath.Join(backupDir, oldest)); err != nil {
			return fmt.Errorf("pruning backup %s: %w", oldest, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}
