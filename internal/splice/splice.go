// Package splice turns a resolved anchor span and a modification into the
// new full text of a file. Every function is pure: the same input text and
// modification always produce the same output, with no hidden state.
package splice

import (
	"github.com/arkmod-labs/arkmod/internal/anchor"
	"github.com/arkmod-labs/arkmod/internal/manifest"
)

// Apply produces the target file's new text from its old text, the
// modification, and the span its anchor resolved to.
func Apply(text string, mod *manifest.Modification, span anchor.Span) string {
	switch mod.Action {
	case manifest.ActionInsertBefore:
		return text[:span.Start] + mod.PayloadText() + text[span.Start:]
	case manifest.ActionInsertAfter:
		return text[:span.End] + mod.PayloadText() + text[span.End:]
	case manifest.ActionReplace:
		return text[:span.Start] + mod.PayloadText() + text[span.End:]
	case manifest.ActionDelete:
		start, end := deleteRange(text, span)
		return text[:start] + text[end:]
	case manifest.ActionCreateFile:
		return mod.PayloadText()
	default:
		return text
	}
}

// deleteRange widens a span to swallow the line terminator when the span
// constitutes one or more whole lines, so deleting a line does not leave a
// blank one behind.
func deleteRange(text string, span anchor.Span) (int, int) {
	start, end := span.Start, span.End

	atLineStart := start == 0 || text[start-1] == '\n'
	if !atLineStart {
		return start, end
	}

	switch {
	case end < len(text) && text[end] == '\n':
		return start, end + 1
	case end+1 < len(text) && text[end] == '\r' && text[end+1] == '\n':
		return start, end + 2
	case end == len(text):
		return start, end
	default:
		return start, end
	}
}
