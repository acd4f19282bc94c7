package browse

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adidahl/techlingo-agent-framework/internal/runs"
	"github.com/adidahl/techlingo-agent-framework/internal/screen"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/components"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/layout"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/theme"
)

type artifactsLoadedMsg struct {
	arts []runs.Artifact
	err  error
}

type artifactContentMsg struct {
	name    string
	content []byte
	err     error
}

// artifactsScreen lists a run's pipeline artifacts and shows their raw
// JSON exactly as the pipeline wrote it.
type artifactsScreen struct {
	run runs.Run

	arts   []runs.Artifact
	cursor int
	errMsg string

	// Viewing state; empty name means the list is showing.
	viewing string
	lines   []string
	scroll  int
}

var _ screen.Screen = (*artifactsScreen)(nil)
var _ screen.KeyHintProvider = (*artifactsScreen)(nil)

func newArtifactsScreen(run runs.Run) *artifactsScreen {
	return &artifactsScreen{run: run}
}

func (a *artifactsScreen) Init() tea.Cmd {
	run := a.run
	return func() tea.Msg {
		arts, err := runs.Artifacts(run)
		return artifactsLoadedMsg{arts: arts, err: err}
	}
}

func (a *artifactsScreen) Title() string {
	return a.run.ID + " artifacts"
}

func (a *artifactsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case artifactsLoadedMsg:
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		a.arts = msg.arts
		return a, nil

	case artifactContentMsg:
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		a.viewing = msg.name
		a.lines = strings.Split(string(msg.content), "\n")
		a.scroll = 0
		return a, nil

	case tea.KeyMsg:
		if a.viewing != "" {
			return a.handleViewerKey(msg)
		}
		switch msg.String() {
		case "up", "k":
			if a.cursor > 0 {
				a.cursor--
			}
		case "down", "j":
			if a.cursor < len(a.arts)-1 {
				a.cursor++
			}
		case "enter":
			if a.cursor < len(a.arts) {
				art := a.arts[a.cursor]
				return a, func() tea.Msg {
					content, err := runs.ArtifactContent(art)
					return artifactContentMsg{name: art.Name, content: content, err: err}
				}
			}
		}
	}
	return a, nil
}

func (a *artifactsScreen) handleViewerKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if a.scroll > 0 {
			a.scroll--
		}
	case "down", "j":
		if a.scroll < len(a.lines)-1 {
			a.scroll++
		}
	case "q", "backspace":
		a.viewing = ""
		a.lines = nil
	}
	return a, nil
}

func (a *artifactsScreen) View(width, height int) string {
	if a.errMsg != "" {
		return lipgloss.NewStyle().Foreground(theme.Error).Render("  " + a.errMsg)
	}
	if a.viewing != "" {
		return a.renderViewer(width, height)
	}
	if len(a.arts) == 0 {
		return theme.Hint.Render("  This run has no artifacts.")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Pipeline artifacts"))
	b.WriteString("\n\n")
	for i, art := range a.arts {
		line := fmt.Sprintf("%s  (%d bytes)", art.Name, art.Size)
		if i == a.cursor {
			b.WriteString(theme.Selected.Render("  ▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("    " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *artifactsScreen) renderViewer(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  " + a.viewing))
	b.WriteString("\n\n")

	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	end := a.scroll + visible
	if end > len(a.lines) {
		end = len(a.lines)
	}
	for _, line := range a.lines[a.scroll:end] {
		if width > 4 {
			line = components.Truncate(line, width-4)
		}
		b.WriteString(theme.Hint.Render("  " + line))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *artifactsScreen) KeyHints() []layout.KeyHint {
	if a.viewing != "" {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Q", Description: "Close"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "View"},
		{Key: "Esc", Description: "Back"},
	}
}
