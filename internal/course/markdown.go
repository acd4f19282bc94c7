package course

import (
	"fmt"
	"strings"
)

// MarkdownOutline renders the course as a markdown outline: the course title,
// one heading per module, one bullet per lesson with its learning objective.
// This matches the course.md artifact the pipeline writes alongside each run.
func MarkdownOutline(c *Course) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", c.Title)
	for _, m := range c.Modules {
		fmt.Fprintf(&b, "## %s\n", m.Title)
		for _, l := range m.Lessons {
			fmt.Fprintf(&b, "- **%s** — %s\n", l.Title, l.SLO)
		}
	}
	return b.String()
}
