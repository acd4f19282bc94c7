package components

import (
	"strings"
	"testing"
	"unicode/utf8"

	"charm.land/lipgloss/v2"
)

func TestTruncateKeepsRunesIntact(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"multibyte cut", "héllo wörld", 6, "héllo "},
		{"box drawing", "──────────", 4, "────"},
		{"zero width", "hello", 0, ""},
	}
	for _, tt := range tests {
		got := Truncate(tt.line, tt.width)
		if got != tt.want {
			t.Errorf("%s: Truncate(%q, %d) = %q, want %q", tt.name, tt.line, tt.width, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("%s: result is not valid UTF-8: %q", tt.name, got)
		}
		if lipgloss.Width(got) > tt.width {
			t.Errorf("%s: width %d exceeds %d", tt.name, lipgloss.Width(got), tt.width)
		}
	}
}

func TestConsoleStylesTruncatedMultibyteLine(t *testing.T) {
	var c Console
	c.SetLines([]string{"[ERROR] générateur échoué: " + strings.Repeat("é", 80)})

	view := c.View(40, 3)
	if !utf8.ValidString(view) {
		t.Fatalf("console view contains invalid UTF-8: %q", view)
	}
}
