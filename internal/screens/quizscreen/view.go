package quizscreen

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/adidahl/techlingo-agent-framework/internal/course"
	"github.com/adidahl/techlingo-agent-framework/internal/quiz"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	switch q.session.Phase() {
	case quiz.PhaseIntro:
		return q.renderIntro(width, height)
	case quiz.PhaseFinished:
		return q.renderFinished(width, height)
	}
	return q.renderQuestion(width)
}

func (q *QuizScreen) renderIntro(width, height int) string {
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(q.courseTitle),
		"",
		fmt.Sprintf("%d questions", q.session.Len()),
		"",
		theme.Hint.Render("Press Enter to start"),
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func (q *QuizScreen) renderFinished(width, height int) string {
	correct, submitted := q.session.Score()
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Quiz complete"),
		"",
		fmt.Sprintf("%d / %d correct (%d answered)", correct, q.session.Len(), submitted),
	}
	if len(q.attempts) > 0 {
		right := 0
		for _, rec := range q.attempts {
			if rec.Correct {
				right++
			}
		}
		lines = append(lines, theme.Hint.Render(
			fmt.Sprintf("%d recorded attempts, %d correct (retries included)", len(q.attempts), right)))
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func (q *QuizScreen) renderQuestion(width int) string {
	cur := q.session.Current()
	if cur == nil {
		return theme.Hint.Render("  This course has no exercises.")
	}
	ex := cur.Exercise

	var b strings.Builder

	// Context line: position plus the lesson this exercise came from.
	pos := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  Q %d/%d", q.session.Index()+1, q.session.Len()))
	lesson := theme.Hint.Render(fmt.Sprintf("%s › %s", cur.ModuleTitle, cur.LessonTitle))
	gap := width - lipgloss.Width(pos) - lipgloss.Width(lesson) - 4
	if gap < 1 {
		gap = 1
	}
	b.WriteString(pos + strings.Repeat(" ", gap) + lesson)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 1))))
	b.WriteString("\n\n")

	b.WriteString(q.renderPrompt(ex))
	b.WriteString("\n\n")
	b.WriteString(q.renderInput(ex))

	if q.verdict != nil {
		b.WriteString("\n")
		b.WriteString(renderVerdict(q.verdict))
	}

	return b.String()
}

func (q *QuizScreen) renderPrompt(ex *course.Exercise) string {
	style := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	switch ex.Type {
	case course.TrueFalse:
		return style.Render("  " + ex.Statement)
	case course.FillGaps:
		return style.Render("  "+ex.Prompt) + "\n\n" + q.renderGapSentence(ex)
	default:
		return style.Render("  " + ex.Prompt)
	}
}

// renderGapSentence shows the interleaved text and gaps, with the current
// input values substituted into the blanks.
func (q *QuizScreen) renderGapSentence(ex *course.Exercise) string {
	var parts []string
	gapIdx := 0
	for _, p := range ex.Parts {
		if !p.IsGap() {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Text).Render(p.Text))
			continue
		}
		val := ""
		if gapIdx < len(q.gapInputs) {
			val = q.gapInputs[gapIdx].Value()
		}
		if val == "" {
			val = "______"
		}
		style := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		if gapIdx == q.gapFocus && q.verdict == nil {
			style = style.Underline(true)
		}
		parts = append(parts, style.Render(val))
		gapIdx++
	}
	return "  " + strings.Join(parts, " ")
}

func (q *QuizScreen) renderInput(ex *course.Exercise) string {
	switch ex.Type {
	case course.SingleChoice, course.MultiChoice, course.TrueFalse:
		return q.choices.View()

	case course.FillGaps:
		var b strings.Builder
		for i, in := range q.gapInputs {
			marker := "  "
			if i == q.gapFocus && q.verdict == nil {
				marker = "▸ "
			}
			b.WriteString(fmt.Sprintf("%sGap %d: %s\n", marker, i+1, in.View()))
		}
		return b.String()

	case course.Rearrange:
		return q.renderRearrange()
	}
	return ""
}

func (q *QuizScreen) renderRearrange() string {
	var b strings.Builder

	b.WriteString(theme.Hint.Render("  Your order:"))
	b.WriteString("\n  ")
	if len(q.picked) == 0 {
		b.WriteString(theme.Hint.Render("(empty)"))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(strings.Join(q.picked, " | ")))
	}
	b.WriteString("\n\n")

	if len(q.bank) > 0 {
		b.WriteString(theme.Hint.Render("  Word bank:"))
		b.WriteString("\n  ")
		for i, token := range q.bank {
			if i == q.bankCursor {
				b.WriteString(theme.Selected.Render("[" + token + "]"))
			} else {
				b.WriteString(theme.Unselected.Render(" " + token + " "))
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderVerdict(v *quiz.Verdict) string {
	var lines []string
	if v.Correct {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Success).Bold(true).Render("✓ Correct!"))
	} else {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Error).Bold(true).Render("✗ Not quite."))
	}
	for _, l := range v.Lines {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render(l))
	}
	return theme.Card.Render(strings.Join(lines, "\n"))
}
