package generate

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/adidahl/techlingo-agent-framework/internal/stream"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/components"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/theme"
)

const consoleHeight = 12

func (g *GenerateScreen) View(width, height int) string {
	switch g.mode {
	case modeForm:
		return g.renderForm(width)
	case modeAnalyzing, modeGenerating:
		return g.renderStreaming(width, height)
	case modeDone:
		return g.renderSummary(width)
	}
	return ""
}

func (g *GenerateScreen) renderForm(width int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Generate a course"))
	b.WriteString("\n\n")

	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	b.WriteString(label.Render("  Source text"))
	b.WriteString("\n  ")
	b.WriteString(g.input.View())
	b.WriteString("\n\n")

	b.WriteString(label.Render("  Difficulty"))
	b.WriteString("  ")
	for i, d := range difficulties {
		if i == g.difficulty {
			b.WriteString(theme.Selected.Render("[" + d + "]"))
		} else {
			b.WriteString(theme.Hint.Render(" " + d + " "))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	b.WriteString(g.renderConfigCard())

	if g.insights != nil {
		b.WriteString("\n")
		b.WriteString(g.renderInsightsCard())
	}

	return b.String()
}

func (g *GenerateScreen) renderConfigCard() string {
	cfg := g.cfg
	lines := []string{
		fmt.Sprintf("Modules: %d    Exercises/lesson: %d    Flashcards/lesson: %d",
			cfg.ModulesCount, cfg.ExercisesPerLesson, cfg.FlashcardsPerLesson),
		"Blooms: " + distLine(cfg.BloomsDistribution),
		"Types:  " + distLine(cfg.QuestionTypeDistribution),
	}
	return theme.Card.Render(
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(lines, "\n")))
}

func (g *GenerateScreen) renderInsightsCard() string {
	res := g.insights
	meta := res.Metadata

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Analyzer insights"),
		fmt.Sprintf("Content parts: %d    Questions needed: ~%d    Completeness: %d%%",
			meta.TotalParts, meta.EstimatedQuestionsNeeded, int(meta.CompletenessScore*100)),
	}
	if res.RecommendedConfig != nil {
		rc := res.RecommendedConfig
		lines = append(lines, fmt.Sprintf("Recommended: %d modules, %d exercises/lesson (Ctrl+R to apply)",
			rc.ModulesCount, rc.ExercisesPerLesson))
	}
	return theme.Card.Render(strings.Join(lines, "\n"))
}

func distLine(dist map[string]int) string {
	if len(dist) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(dist))
	for _, k := range sortedKeys(dist) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, dist[k]))
	}
	return strings.Join(parts, "  ")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (g *GenerateScreen) renderStreaming(width, height int) string {
	ctrl := g.activeController()
	state := ctrl.State()

	var b strings.Builder

	title := "Generating course"
	if g.mode == modeAnalyzing {
		title = "Analyzing content"
	}
	b.WriteString(theme.Title.Width(width).Render(title))
	b.WriteString("\n\n")

	if state.Status == stream.StatusError {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true).
			Render("  ✗ " + state.ErrMsg))
		b.WriteString("\n\n")
	} else {
		step := state.Step
		if step == "" {
			step = "Working..."
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("  " + step))
		b.WriteString("\n\n")

		// The analyze session reports milestone percentages; the generate
		// session's progress is advisory and renders as activity only.
		if g.mode == modeAnalyzing {
			bar := components.NewProgressBar("  ", float64(state.Percent)/100, true, width-8)
			b.WriteString(bar.View())
			b.WriteString("\n\n")
		}
	}

	if state.RunID != "" {
		b.WriteString(theme.Hint.Render("  run: " + state.RunID))
		b.WriteString("\n")
	}

	b.WriteString(g.console.View(width-4, consoleHeight))

	return b.String()
}

func (g *GenerateScreen) renderSummary(width int) string {
	res := g.result
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Course ready"))
	b.WriteString("\n\n")

	if res.Course != nil {
		c := res.Course
		lines := []string{
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Title),
			fmt.Sprintf("%d modules, %d lessons, %d exercises",
				len(c.Modules), c.LessonCount(), c.ExerciseCount()),
		}
		if res.RunID != "" {
			lines = append(lines, theme.Hint.Render("run: "+res.RunID))
		}
		b.WriteString(theme.Card.Render(strings.Join(lines, "\n")))
		b.WriteString("\n\n")
	}

	if res.Report != nil {
		b.WriteString(renderReport(res.Report))
		b.WriteString("\n")
	}

	return b.String()
}

func renderReport(rep *stream.ValidationReport) string {
	var lines []string
	if rep.OK {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Success).Bold(true).Render("✓ Validation passed"))
	} else {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Warn).Bold(true).
			Render(fmt.Sprintf("⚠ Validation found %d issue(s)", len(rep.Issues))))
	}
	for i, issue := range rep.Issues {
		if i >= 5 {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("...and %d more", len(rep.Issues)-i)))
			break
		}
		lines = append(lines, theme.Hint.Render(
			fmt.Sprintf("%s %s: %s", issue.Severity, issue.Path, issue.Message)))
	}
	return theme.Card.Render(strings.Join(lines, "\n"))
}
