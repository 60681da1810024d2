//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	ProjectDir string // the tree manifests apply against
	HomeDir    string // backup and receipt destination
}

// setupTestEnv creates isolated temp directories so a full run is sandboxed.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	return &testEnv{
		ProjectDir: t.TempDir(),
		HomeDir:    t.TempDir(),
	}
}

// writeFile creates a file (and parents) under dir.
func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", rel, err)
	}
}

// readFile reads a file under dir.
func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, rel))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

// assertFileExists fails the test when path is missing.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s: %v", path, err)
	}
}
