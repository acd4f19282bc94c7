// Package browse navigates the generation service's output directory: past
// runs, their generated courses, and the pipeline artifacts behind them.
package browse

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adidahl/techlingo-agent-framework/internal/course"
	"github.com/adidahl/techlingo-agent-framework/internal/router"
	"github.com/adidahl/techlingo-agent-framework/internal/runs"
	"github.com/adidahl/techlingo-agent-framework/internal/screen"
	"github.com/adidahl/techlingo-agent-framework/internal/store"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/layout"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/theme"
)

type runsLoadedMsg struct {
	runs []runs.Run
	err  error
}

type courseLoadedMsg struct {
	run    runs.Run
	course *course.Course
	err    error
}

// BrowseScreen lists past generation runs, newest first.
type BrowseScreen struct {
	outputs  string
	baseSeed int
	hist     *store.Store

	runs   []runs.Run
	cursor int
	errMsg string
}

var _ screen.Screen = (*BrowseScreen)(nil)
var _ screen.KeyHintProvider = (*BrowseScreen)(nil)

// New creates the run browser over the outputs directory.
func New(outputs string, baseSeed int, hist *store.Store) *BrowseScreen {
	return &BrowseScreen{outputs: outputs, baseSeed: baseSeed, hist: hist}
}

func (b *BrowseScreen) Init() tea.Cmd {
	outputs := b.outputs
	return func() tea.Msg {
		rs, err := runs.List(outputs)
		return runsLoadedMsg{runs: rs, err: err}
	}
}

func (b *BrowseScreen) Title() string {
	return "Runs"
}

func (b *BrowseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case runsLoadedMsg:
		if msg.err != nil {
			b.errMsg = msg.err.Error()
			return b, nil
		}
		b.runs = msg.runs
		return b, nil

	case courseLoadedMsg:
		if msg.err != nil {
			b.errMsg = msg.err.Error()
			return b, nil
		}
		return b, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: newCourseScreen(msg.run, msg.course, b.baseSeed, b.hist),
			}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
			}
		case "down", "j":
			if b.cursor < len(b.runs)-1 {
				b.cursor++
			}
		case "enter":
			if b.cursor < len(b.runs) {
				run := b.runs[b.cursor]
				return b, func() tea.Msg {
					c, err := runs.LoadCourse(run)
					return courseLoadedMsg{run: run, course: c, err: err}
				}
			}
		case "a":
			if b.cursor < len(b.runs) {
				run := b.runs[b.cursor]
				return b, func() tea.Msg {
					return router.PushScreenMsg{Screen: newArtifactsScreen(run)}
				}
			}
		}
	}
	return b, nil
}

func (b *BrowseScreen) View(width, height int) string {
	if b.errMsg != "" {
		return lipgloss.NewStyle().Foreground(theme.Error).Render("  " + b.errMsg)
	}
	if len(b.runs) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No runs yet.\nGenerate a course first.")
	}

	var s strings.Builder
	s.WriteString(theme.Title.Width(width).Render("Generation runs"))
	s.WriteString("\n\n")

	for i, r := range b.runs {
		line := fmt.Sprintf("%s  %s", r.ID, r.ModTime.Format("2006-01-02 15:04"))
		if !r.HasCourse() {
			line += "  (no course)"
		}
		if i == b.cursor {
			s.WriteString(theme.Selected.Render("  ▸ " + line))
		} else {
			s.WriteString(theme.Unselected.Render("    " + line))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (b *BrowseScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open course"},
		{Key: "A", Description: "Artifacts"},
		{Key: "Esc", Description: "Back"},
	}
}
