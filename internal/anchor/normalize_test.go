package anchor

import "testing"

func TestNormalizeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"crlf", "a\r\nb", "a\nb"},
		{"bare cr", "a\rb", "a\nb"},
		{"tab run", "a\t\tb", "a b"},
		{"mixed run", "a \t b", "a b"},
		{"trailing spaces", "a  \nb", "a\nb"},
		{"trailing tab at eof", "a\t", "a"},
		{"leading indent collapses", "\tx", " x"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeString(tt.in); got != tt.want {
				t.Errorf("normalizeString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeWithOffsets_SpanMapping(t *testing.T) {
	orig := "x\t\ty end"
	norm, starts, ends := normalizeWithOffsets(orig)
	if norm != "x y end" {
		t.Fatalf("norm = %q, want %q", norm, "x y end")
	}
	if len(starts) != len(norm) || len(ends) != len(norm) {
		t.Fatalf("offset table lengths = %d/%d, want %d", len(starts), len(ends), len(norm))
	}

	// Normalized byte 1 is the collapsed tab run: it starts at the run's
	// first byte and ends past its last.
	if starts[1] != 1 || ends[1] != 3 {
		t.Errorf("collapsed run maps to [%d,%d), want [1,3)", starts[1], ends[1])
	}
	// Normalized 'y' is original byte 3.
	if starts[2] != 3 || ends[2] != 4 {
		t.Errorf("'y' maps to [%d,%d), want [3,4)", starts[2], ends[2])
	}
}
