package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/adidahl/techlingo-agent-framework/internal/ui/theme"
)

// Console is a bounded log pane that follows the tail of a growing line
// list unless the user has scrolled up.
type Console struct {
	lines  []string
	offset int // lines scrolled up from the tail
}

// SetLines replaces the console content. The pane keeps following the tail
// unless a manual scroll is active.
func (c *Console) SetLines(lines []string) {
	c.lines = lines
}

// ScrollUp moves the pane one line away from the tail.
func (c *Console) ScrollUp(height int) {
	max := len(c.lines) - height
	if max < 0 {
		max = 0
	}
	if c.offset < max {
		c.offset++
	}
}

// ScrollDown moves the pane one line back toward the tail.
func (c *Console) ScrollDown() {
	if c.offset > 0 {
		c.offset--
	}
}

// View renders the last height lines, styled per log severity prefix.
func (c *Console) View(width, height int) string {
	if height < 1 {
		return ""
	}

	end := len(c.lines) - c.offset
	if end < 0 {
		end = 0
	}
	start := end - height
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for _, line := range c.lines[start:end] {
		b.WriteString(styleLogLine(line, width))
		b.WriteString("\n")
	}
	for i := end - start; i < height; i++ {
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 2).
		Render(strings.TrimSuffix(b.String(), "\n"))
}

func styleLogLine(line string, width int) string {
	if width > 4 {
		line = Truncate(line, width-4)
	}
	switch {
	case strings.HasPrefix(line, "[ERROR]"):
		return lipgloss.NewStyle().Foreground(theme.Error).Render(line)
	case strings.HasPrefix(line, "[WARN]"):
		return lipgloss.NewStyle().Foreground(theme.Warn).Render(line)
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
	}
}

// Truncate cuts line to at most width display cells, never splitting a
// rune, so multibyte log content stays valid UTF-8.
func Truncate(line string, width int) string {
	if width < 1 {
		return ""
	}
	if lipgloss.Width(line) <= width {
		return line
	}
	var b strings.Builder
	used := 0
	for _, r := range line {
		rw := lipgloss.Width(string(r))
		if used+rw > width {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	return b.String()
}
