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
	"github.com/adidahl/techlingo-agent-framework/internal/screens/quizscreen"
	"github.com/adidahl/techlingo-agent-framework/internal/store"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/layout"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/theme"
)

// lessonRef addresses one lesson in the course tree.
type lessonRef struct {
	module int
	lesson int
}

// courseScreen shows a loaded course: its module and lesson outline, with
// per-lesson flashcards on demand, and a jump into the quiz.
type courseScreen struct {
	run      runs.Run
	course   *course.Course
	baseSeed int
	hist     *store.Store

	lessons        []lessonRef
	cursor         int
	showFlashcards bool
}

var _ screen.Screen = (*courseScreen)(nil)
var _ screen.KeyHintProvider = (*courseScreen)(nil)

func newCourseScreen(run runs.Run, c *course.Course, baseSeed int, hist *store.Store) *courseScreen {
	var lessons []lessonRef
	for mi, m := range c.Modules {
		for li := range m.Lessons {
			lessons = append(lessons, lessonRef{module: mi, lesson: li})
		}
	}
	return &courseScreen{
		run:      run,
		course:   c,
		baseSeed: baseSeed,
		hist:     hist,
		lessons:  lessons,
	}
}

func (c *courseScreen) Init() tea.Cmd {
	return nil
}

func (c *courseScreen) Title() string {
	return c.course.Title
}

func (c *courseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.lessons)-1 {
			c.cursor++
		}
	case "f":
		c.showFlashcards = !c.showFlashcards
	case "s":
		crs := c.course
		runID := c.run.ID
		return c, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: quizscreen.New(crs, runID, c.baseSeed, c.hist),
			}
		}
	}
	return c, nil
}

func (c *courseScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render(c.course.Title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf(
		"%s · %d modules · %d lessons · %d exercises",
		c.course.Difficulty, len(c.course.Modules),
		c.course.LessonCount(), c.course.ExerciseCount())))
	b.WriteString("\n\n")

	lastModule := -1
	for i, ref := range c.lessons {
		m := c.course.Modules[ref.module]
		if ref.module != lastModule {
			lastModule = ref.module
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Secondary).Bold(true).
				Render("  " + m.Title))
			b.WriteString("\n")
		}

		l := m.Lessons[ref.lesson]
		line := fmt.Sprintf("%s (%d exercises)", l.Title, len(l.Exercises))
		if i == c.cursor {
			b.WriteString(theme.Selected.Render("    ▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("      " + line))
		}
		b.WriteString("\n")

		if i == c.cursor {
			b.WriteString(theme.Hint.Render("        " + l.SLO))
			b.WriteString("\n")
			if c.showFlashcards {
				b.WriteString(renderFlashcards(l.Flashcards))
			}
		}
	}

	return b.String()
}

func renderFlashcards(cards []course.Flashcard) string {
	if len(cards) == 0 {
		return theme.Hint.Render("        (no flashcards)") + "\n"
	}
	var b strings.Builder
	for _, fc := range cards {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("        ▪ " + fc.Front))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("          " + fc.Back))
		b.WriteString("\n")
	}
	return b.String()
}

func (c *courseScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "S", Description: "Start quiz"},
		{Key: "F", Description: "Flashcards"},
		{Key: "Esc", Description: "Back"},
	}
}
