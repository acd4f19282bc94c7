// Package history lists past generation sessions from the local store,
// including failed attempts that never produced a run directory.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adidahl/techlingo-agent-framework/internal/screen"
	"github.com/adidahl/techlingo-agent-framework/internal/store"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/layout"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/theme"
)

// recentLimit caps how many records the screen loads.
const recentLimit = 50

type loadedMsg struct {
	recs []store.RunRecord
	err  error
}

// HistoryScreen shows recorded generation runs, newest first.
type HistoryScreen struct {
	hist *store.Store

	recs   []store.RunRecord
	cursor int
	errMsg string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen. hist may be nil when the database could
// not be opened; the screen then explains instead of listing.
func New(hist *store.Store) *HistoryScreen {
	return &HistoryScreen{hist: hist}
}

func (h *HistoryScreen) Init() tea.Cmd {
	if h.hist == nil {
		return nil
	}
	hist := h.hist
	return func() tea.Msg {
		recs, err := hist.RecentRuns(context.Background(), recentLimit)
		return loadedMsg{recs: recs, err: err}
	}
}

func (h *HistoryScreen) Title() string {
	return "History"
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.recs = msg.recs
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if h.cursor > 0 {
				h.cursor--
			}
		case "down", "j":
			if h.cursor < len(h.recs)-1 {
				h.cursor++
			}
		}
	}
	return h, nil
}

func (h *HistoryScreen) View(width, height int) string {
	if h.hist == nil {
		return theme.Hint.Render("  History database unavailable.")
	}
	if h.errMsg != "" {
		return lipgloss.NewStyle().Foreground(theme.Error).Render("  " + h.errMsg)
	}
	if len(h.recs) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Nothing recorded yet.\nGenerate a course first.")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Generation history"))
	b.WriteString("\n\n")

	for i, rec := range h.recs {
		b.WriteString(h.renderRecord(i, rec))
	}
	return b.String()
}

func (h *HistoryScreen) renderRecord(i int, rec store.RunRecord) string {
	glyph := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	if rec.Status == store.RunFailed {
		glyph = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}

	label := rec.Title
	if label == "" {
		label = rec.RunID
	}
	if label == "" {
		label = "(no run)"
	}

	line := fmt.Sprintf("%s  %s  %s", label, rec.Difficulty, rec.CreatedAt.Format("2006-01-02 15:04"))
	var b strings.Builder
	if i == h.cursor {
		b.WriteString("  " + glyph + " " + theme.Selected.Render("▸ "+line))
	} else {
		b.WriteString("  " + glyph + " " + theme.Unselected.Render("  "+line))
	}
	b.WriteString("\n")

	if i == h.cursor && rec.Error != "" {
		b.WriteString(theme.Hint.Render("        " + rec.Error))
		b.WriteString("\n")
	}
	return b.String()
}

func (h *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}
