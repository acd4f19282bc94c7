package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adidahl/techlingo-agent-framework/internal/router"
	"github.com/adidahl/techlingo-agent-framework/internal/screen"
	"github.com/adidahl/techlingo-agent-framework/internal/screens/browse"
	"github.com/adidahl/techlingo-agent-framework/internal/screens/generate"
	"github.com/adidahl/techlingo-agent-framework/internal/screens/history"
	"github.com/adidahl/techlingo-agent-framework/internal/store"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/components"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/theme"
	"github.com/adidahl/techlingo-agent-framework/internal/workflow"
)

// HomeScreen is the entry menu of the application.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. hist may be nil when the history database
// could not be opened; generation and quizzes still work without it.
func New(server, outputs string, cfg *workflow.Config, baseSeed int, hist *store.Store) *HomeScreen {
	items := []components.MenuItem{
		{Label: "GENERATE COURSE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: generate.New(server, cfg, baseSeed, hist),
				}
			}
		}},
		{Label: "BROWSE RUNS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: browse.New(outputs, baseSeed, hist),
				}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: history.New(hist),
				}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, renderBanner(width))
	sections = append(sections,
		lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("Turn any text into an interactive course"))
	sections = append(sections, "")
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
