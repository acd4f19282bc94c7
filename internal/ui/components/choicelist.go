package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adidahl/techlingo-agent-framework/internal/quiz"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/theme"
)

// ChoiceList presents shuffled answer options for a choice exercise. In
// single mode enter picks the highlighted option; in multi mode space
// toggles membership and enter submits the set.
type ChoiceList struct {
	Options []quiz.ChoiceView
	Multi   bool

	Cursor  int
	checked map[string]bool

	// Revealed switches the list to the post-submit rendering, marking
	// correct options green and wrong selections red.
	Revealed bool
}

// NewChoiceList creates a choice list over the shuffled options.
func NewChoiceList(options []quiz.ChoiceView, multi bool) ChoiceList {
	return ChoiceList{
		Options: options,
		Multi:   multi,
		checked: make(map[string]bool),
	}
}

// Update handles navigation and selection toggles. It does not submit;
// the owning screen watches for enter itself.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.Revealed {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ":
		if c.Multi && c.Cursor < len(c.Options) {
			id := c.Options[c.Cursor].ID
			c.checked[id] = !c.checked[id]
		}
	}

	return c, nil
}

// Select moves the cursor to the option with the given id. No-op when the
// id is absent.
func (c *ChoiceList) Select(id string) {
	for i, opt := range c.Options {
		if opt.ID == id {
			c.Cursor = i
			return
		}
	}
}

// SetChecked marks the given option ids as checked (multi mode), replacing
// any prior toggles.
func (c *ChoiceList) SetChecked(ids []string) {
	c.checked = make(map[string]bool)
	for _, id := range ids {
		c.checked[id] = true
	}
}

// SelectedID returns the highlighted option's id (single mode).
func (c ChoiceList) SelectedID() string {
	if c.Cursor < 0 || c.Cursor >= len(c.Options) {
		return ""
	}
	return c.Options[c.Cursor].ID
}

// CheckedIDs returns the toggled option ids in display order (multi mode).
func (c ChoiceList) CheckedIDs() []string {
	var ids []string
	for _, opt := range c.Options {
		if c.checked[opt.ID] {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

// View renders the option list.
func (c ChoiceList) View() string {
	var s string
	for i, opt := range c.Options {
		line := c.renderLine(i, opt)
		s += line + "\n"
	}
	return s
}

func (c ChoiceList) renderLine(i int, opt quiz.ChoiceView) string {
	prefix := "  "
	if i == c.Cursor && !c.Revealed {
		prefix = "▸ "
	}

	marker := ""
	if c.Multi {
		if c.checked[opt.ID] {
			marker = "[x] "
		} else {
			marker = "[ ] "
		}
	}

	line := fmt.Sprintf("%s%s%s", prefix, marker, opt.Label)

	if c.Revealed {
		switch {
		case opt.IsCorrect:
			return theme.Correct.Render(line)
		case c.checked[opt.ID] || (!c.Multi && i == c.Cursor):
			return theme.Incorrect.Render(line)
		default:
			return lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
		}
	}

	if i == c.Cursor {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line)
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render(line)
}
