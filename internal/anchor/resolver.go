package anchor

import (
	"fmt"
	"strings"

	"github.com/arkmod-labs/arkmod/internal/manifest"
)

// Status classifies the outcome of matching one anchor.
const (
	StatusResolved       = "RESOLVED"
	StatusNotFound       = "NOT_FOUND"
	StatusAmbiguous      = "AMBIGUOUS"
	StatusAlreadyApplied = "ALREADY_APPLIED"
)

// Span is a half-open byte range [Start, End) in the original file text.
type Span struct {
	Start int
	End   int
}

// Resolution is the ephemeral result of matching one modification's anchor
// against current text: a single unambiguous span, a recognized
// already-applied state, or a failure reason.
type Resolution struct {
	Status string
	Span   Span
	Reason string
}

func resolved(span Span) Resolution {
	return Resolution{Status: StatusResolved, Span: span}
}

func failure(status, format string, args ...interface{}) Resolution {
	return Resolution{Status: status, Reason: fmt.Sprintf(format, args...)}
}

func alreadyApplied() Resolution {
	return Resolution{Status: StatusAlreadyApplied}
}

// matcher searches text under a Mode and maps matches found in normalized
// space back to original byte offsets.
type matcher struct {
	mode   Mode
	text   string // search space (normalized under ModeNormalize)
	starts []int
	ends   []int
}

func newMatcher(text string, mode Mode) *matcher {
	m := &matcher{mode: mode, text: text}
	if mode == ModeNormalize {
		m.text, m.starts, m.ends = normalizeWithOffsets(text)
	}
	return m
}

// prep applies the matcher's mode to a fragment before searching.
func (m *matcher) prep(fragment string) string {
	if m.mode == ModeNormalize {
		return normalizeString(fragment)
	}
	return fragment
}

// count returns the number of non-overlapping occurrences of an already
// prepared fragment.
func (m *matcher) count(fragment string) int {
	if fragment == "" {
		return 0
	}
	return strings.Count(m.text, fragment)
}

// origSpan maps a span in search space back to original byte offsets.
func (m *matcher) origSpan(start, end int) Span {
	if m.mode != ModeNormalize {
		return Span{Start: start, End: end}
	}
	if start == end {
		if start < len(m.starts) {
			return Span{Start: m.starts[start], End: m.starts[start]}
		}
		return Span{Start: len(m.text), End: len(m.text)}
	}
	return Span{Start: m.starts[start], End: m.ends[end-1]}
}

// resolveFragments locates an anchor's fragments, each required to be unique
// in the whole text and to occur in declared order. The returned spans are
// in search space; callers map them back with origSpan.
func (m *matcher) resolveFragments(fragments []string) (start, end int, res Resolution) {
	pos := 0
	for i, raw := range fragments {
		fragment := m.prep(raw)
		n := m.count(fragment)
		if n == 0 {
			return 0, 0, failure(StatusNotFound, "anchor fragment %d not found", i+1)
		}
		if n > 1 {
			return 0, 0, failure(StatusAmbiguous, "anchor fragment %d occurs %d times", i+1, n)
		}
		idx := strings.Index(m.text, fragment)
		if idx < pos {
			return 0, 0, failure(StatusNotFound, "anchor fragments occur out of declared order")
		}
		if i == 0 {
			start = idx
		}
		pos = idx + len(fragment)
		end = pos
	}
	return start, end, Resolution{Status: StatusResolved}
}

// Resolve matches mod's anchor against the current file text under the
// given mode. The already-applied check runs before plain anchor search so
// that a manifest which has already landed reports ALREADY_APPLIED instead
// of NOT_FOUND or AMBIGUOUS.
func Resolve(text string, mod *manifest.Modification, mode Mode) Resolution {
	m := newMatcher(text, mode)

	switch mod.Action {
	case manifest.ActionInsertBefore:
		combined := m.prep(mod.PayloadText() + mod.Anchor[0])
		if m.count(combined) >= 1 {
			return alreadyApplied()
		}
		return resolveUnique(m, mod.Anchor)

	case manifest.ActionInsertAfter:
		last := mod.Anchor[len(mod.Anchor)-1]
		combined := m.prep(last + mod.PayloadText())
		if m.count(combined) >= 1 {
			return alreadyApplied()
		}
		return resolveUnique(m, mod.Anchor)

	case manifest.ActionReplace:
		start, end, res := m.resolveFragments(mod.Anchor)
		payload := m.prep(mod.PayloadText())
		if res.Status != StatusResolved {
			// Anchor gone: the replacement may already be in place.
			if res.Status == StatusNotFound {
				if payload == "" || m.count(payload) >= 1 {
					return alreadyApplied()
				}
			}
			return res
		}
		// Anchor still present: skip only when the span already reads as
		// the payload (payloads that extend their own anchor).
		if payload != "" && strings.HasPrefix(m.text[start:], payload) {
			return alreadyApplied()
		}
		return resolved(m.origSpan(start, end))

	case manifest.ActionDelete:
		start, end, res := m.resolveFragments(mod.Anchor)
		if res.Status == StatusNotFound {
			// The span is gone, which is the effect this edit wants.
			return alreadyApplied()
		}
		if res.Status != StatusResolved {
			return res
		}
		return resolved(m.origSpan(start, end))

	default:
		return failure(StatusNotFound, "action %s does not use anchor resolution", mod.Action)
	}
}

// resolveUnique resolves an anchor and maps its span to original offsets.
func resolveUnique(m *matcher, a manifest.Anchor) Resolution {
	start, end, res := m.resolveFragments(a)
	if res.Status != StatusResolved {
		return res
	}
	return resolved(m.origSpan(start, end))
}

// ResolveCreate resolves a CREATE_FILE modification. existing is nil when
// the target does not exist yet. An existing file whose content differs from
// the payload is a genuine conflict, never a silent overwrite.
func ResolveCreate(existing *string, payload string, mode Mode) Resolution {
	if existing == nil {
		return resolved(Span{})
	}

	current, want := *existing, payload
	if mode == ModeNormalize {
		current = normalizeString(current)
		want = normalizeString(want)
	}
	if current == want {
		return alreadyApplied()
	}
	return failure(StatusAmbiguous, "target exists with different content")
}
