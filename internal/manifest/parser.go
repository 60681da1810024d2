package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// ErrManifest marks a malformed or incomplete manifest declaration. Errors
// wrapping it are fatal: the run aborts before any validation against the
// tree begins.
var ErrManifest = errors.New("invalid manifest")

// formatConstraint gates the manifest format versions this build understands.
var formatConstraint = mustConstraint(">= 1.0, < 2.0")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a manifest file, parses it, and checks every modification for
// the fields its action requires. No side effects beyond parsing.
func Load(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse unmarshals manifest YAML and checks required fields. The name is
// used in error messages only.
func Parse(data []byte, name string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %v: %w", name, err, ErrManifest)
	}

	if err := checkFormatVersion(m.Version); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", name, err)
	}

	for i := range m.Modifications {
		if err := checkRequiredFields(&m.Modifications[i]); err != nil {
			return nil, fmt.Errorf("manifest %s: modification %d: %w", name, i+1, err)
		}
	}

	return &m, nil
}

// checkFormatVersion verifies the declared manifest format is one this build
// supports. Partial versions like "1.1" are accepted.
func checkFormatVersion(version string) error {
	if version == "" {
		return fmt.Errorf("missing required 'version' field: %w", ErrManifest)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("unparsable format version %q: %w", version, ErrManifest)
	}
	if !formatConstraint.Check(v) {
		return fmt.Errorf("unsupported format version %q (supported: %s): %w", version, formatConstraint, ErrManifest)
	}
	return nil
}

// checkRequiredFields enforces per-action field requirements.
func checkRequiredFields(mod *Modification) error {
	if mod.Path == "" {
		return fmt.Errorf("missing required 'path' field: %w", ErrManifest)
	}

	switch mod.Action {
	case ActionInsertBefore, ActionInsertAfter, ActionReplace:
		if mod.Anchor.IsZero() {
			return fmt.Errorf("%s requires an 'anchor': %w", mod.Action, ErrManifest)
		}
		if err := checkAnchorFragments(mod.Anchor, mod.Action); err != nil {
			return err
		}
		if mod.Payload == nil {
			return fmt.Errorf("%s requires a 'payload': %w", mod.Action, ErrManifest)
		}
	case ActionDelete:
		if mod.Anchor.IsZero() {
			return fmt.Errorf("%s requires an 'anchor': %w", mod.Action, ErrManifest)
		}
		if err := checkAnchorFragments(mod.Anchor, mod.Action); err != nil {
			return err
		}
		if mod.Payload != nil {
			return fmt.Errorf("%s does not take a 'payload': %w", mod.Action, ErrManifest)
		}
	case ActionCreateFile:
		if !mod.Anchor.IsZero() {
			return fmt.Errorf("%s does not take an 'anchor': %w", mod.Action, ErrManifest)
		}
		if mod.Payload == nil {
			return fmt.Errorf("%s requires a 'payload': %w", mod.Action, ErrManifest)
		}
	case "":
		return fmt.Errorf("missing required 'action' field: %w", ErrManifest)
	default:
		return fmt.Errorf("unknown action %q: %w", mod.Action, ErrManifest)
	}

	return nil
}

// checkAnchorFragments rejects empty fragments, which would match everywhere.
func checkAnchorFragments(a Anchor, action string) error {
	for _, fragment := range a {
		if fragment == "" {
			return fmt.Errorf("%s anchor contains an empty fragment: %w", action, ErrManifest)
		}
	}
	return nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
