package platform

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveWithin joins rel onto root and verifies the result stays inside
// root. Relative segments like ".." that would escape the tree are rejected.
func ResolveWithin(root, rel string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}

	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("path %q must be relative to the project root", rel)
	}

	full := filepath.Clean(filepath.Join(absRoot, rel))
	if full != absRoot && !strings.HasPrefix(full, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes project root %s", rel, absRoot)
	}
	return full, nil
}
