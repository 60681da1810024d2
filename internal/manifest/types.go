package manifest

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Action constants for the modification action discriminator field.
const (
	ActionInsertBefore = "INSERT_BEFORE"
	ActionInsertAfter  = "INSERT_AFTER"
	ActionReplace      = "REPLACE"
	ActionDelete       = "DELETE"
	ActionCreateFile   = "CREATE_FILE"
)

// ValidActions contains all valid action values.
var ValidActions = []string{
	ActionInsertBefore,
	ActionInsertAfter,
	ActionReplace,
	ActionDelete,
	ActionCreateFile,
}

// Anchor locates an edit point in a target file. It is either a single
// literal fragment or an ordered sequence of fragments; in the latter case
// the edit span runs from the first fragment's start to the last fragment's
// end, and the fragments must occur in declared order.
type Anchor []string

// UnmarshalYAML accepts either a scalar string or a sequence of strings.
func (a *Anchor) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*a = Anchor{s}
		return nil
	case yaml.SequenceNode:
		var fragments []string
		if err := value.Decode(&fragments); err != nil {
			return err
		}
		*a = Anchor(fragments)
		return nil
	default:
		return fmt.Errorf("anchor must be a string or a sequence of strings")
	}
}

// IsZero reports whether the anchor is absent.
func (a Anchor) IsZero() bool { return len(a) == 0 }

// Modification is one requested edit.
type Modification struct {
	Path           string  `yaml:"path" json:"path"`
	Action         string  `yaml:"action" json:"action"`
	Anchor         Anchor  `yaml:"anchor,omitempty" json:"anchor,omitempty"`
	Payload        *string `yaml:"payload,omitempty" json:"payload,omitempty"`
	ChecksumBefore string  `yaml:"checksum_before,omitempty" json:"checksum_before,omitempty"`
}

// PayloadText returns the payload, or empty string when absent.
func (m *Modification) PayloadText() string {
	if m.Payload == nil {
		return ""
	}
	return *m.Payload
}

// Manifest is the complete ordered set of requested edits for one run.
type Manifest struct {
	Version       string         `yaml:"version" json:"version"`
	Modifications []Modification `yaml:"modifications" json:"modifications"`
}

// FileGroup holds the modifications targeting one file, in declared order.
type FileGroup struct {
	Path string
	Mods []Modification
}

// GroupByPath partitions the manifest's modifications by target path. Groups
// appear in order of each path's first mention; within a group the declared
// order is preserved, so later anchors may reference text introduced by
// earlier edits to the same file.
func (m *Manifest) GroupByPath() []FileGroup {
	index := make(map[string]int)
	var groups []FileGroup
	for _, mod := range m.Modifications {
		i, ok := index[mod.Path]
		if !ok {
			i = len(groups)
			index[mod.Path] = i
			groups = append(groups, FileGroup{Path: mod.Path})
		}
		groups[i].Mods = append(groups[i].Mods, mod)
	}
	return groups
}
