package anchor

import (
	"fmt"
	"strings"
)

// Mode selects how anchor and file text are prepared before comparison.
type Mode string

const (
	// ModeStrict compares bytes exactly as they appear.
	ModeStrict Mode = "strict"
	// ModeNormalize compares after line-ending and whitespace normalization:
	// CRLF becomes LF, trailing whitespace is stripped, and runs of spaces
	// and tabs collapse to a single space. The same transform is applied to
	// both the anchor and the candidate text.
	ModeNormalize Mode = "normalize-whitespace"
)

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStrict, "":
		return ModeStrict, nil
	case ModeNormalize:
		return ModeNormalize, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (valid: %s, %s)", s, ModeStrict, ModeNormalize)
	}
}

// normalizeString applies ModeNormalize's transform to a standalone string.
func normalizeString(s string) string {
	norm, _, _ := normalizeWithOffsets(s)
	return norm
}

// normalizeWithOffsets normalizes text and returns, for each normalized
// byte, the original offset it starts at (starts) and the original offset
// just past the bytes it consumed (ends). The tables let a match found in
// normalized space be mapped back to a span in the original text.
func normalizeWithOffsets(s string) (string, []int, []int) {
	var b strings.Builder
	starts := make([]int, 0, len(s))
	ends := make([]int, 0, len(s))

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\r':
			// CRLF and bare CR both become LF.
			end := i + 1
			if i+1 < len(s) && s[i+1] == '\n' {
				end = i + 2
			}
			b.WriteByte('\n')
			starts = append(starts, i)
			ends = append(ends, end)
			i = end
		case c == ' ' || c == '\t':
			// Collapse the whole run; drop it entirely when it trails a line.
			runStart := i
			for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
				i++
			}
			atLineEnd := i == len(s) || s[i] == '\n' || s[i] == '\r'
			if !atLineEnd {
				b.WriteByte(' ')
				starts = append(starts, runStart)
				ends = append(ends, i)
			}
		default:
			b.WriteByte(c)
			starts = append(starts, i)
			ends = append(ends, i+1)
			i++
		}
	}

	return b.String(), starts, ends
}
