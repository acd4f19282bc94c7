// Package quizscreen plays a generated course as an interactive quiz, one
// exercise at a time, with per-variant input widgets and inline feedback.
package quizscreen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/adidahl/techlingo-agent-framework/internal/course"
	"github.com/adidahl/techlingo-agent-framework/internal/quiz"
	"github.com/adidahl/techlingo-agent-framework/internal/screen"
	"github.com/adidahl/techlingo-agent-framework/internal/store"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/components"
	"github.com/adidahl/techlingo-agent-framework/internal/ui/layout"
)

// QuizScreen renders a quiz session over a course's flattened exercises.
type QuizScreen struct {
	session     *quiz.Session
	courseTitle string
	runID       string
	hist        *store.Store

	// Per-question input widgets, rebuilt on every question change.
	choices   components.ChoiceList
	gapInputs []components.TextInput
	gapFocus  int

	// rearrange state: remaining bank tokens and the picked order.
	bank       []string
	picked     []string
	bankCursor int

	verdict *quiz.Verdict

	// attempts is the recorded answer log for this session, loaded from
	// history when the quiz finishes. Retries appear as extra rows.
	attempts []store.AnswerRecord
}

type attemptsMsg struct {
	recs []store.AnswerRecord
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen over the course. hist may be nil.
func New(c *course.Course, runID string, baseSeed int, hist *store.Store) *QuizScreen {
	return &QuizScreen{
		session:     quiz.NewSession(c, baseSeed),
		courseTitle: c.Title,
		runID:       runID,
		hist:        hist,
	}
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) Title() string {
	return "Quiz"
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if am, ok := msg.(attemptsMsg); ok {
		q.attempts = am.recs
		return q, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return q.forwardToWidgets(msg)
	}

	switch q.session.Phase() {
	case quiz.PhaseIntro:
		if kmsg.String() == "enter" {
			q.session.Start()
			q.prepareQuestion()
		}
		return q, nil

	case quiz.PhaseFinished:
		if kmsg.String() == "r" {
			q.session.Restart()
			q.attempts = nil
		}
		return q, nil
	}

	if q.session.Submitted() {
		return q.handleFeedbackKey(kmsg)
	}
	return q.handleQuestionKey(kmsg)
}

func (q *QuizScreen) handleFeedbackKey(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "enter", "n":
		q.session.Next()
		if q.session.Phase() == quiz.PhaseInProgress {
			q.prepareQuestion()
		} else if q.hist != nil {
			return q, q.loadAttempts()
		}
	case "p":
		q.session.Prev()
		q.prepareQuestion()
	case "r":
		q.session.Retry()
		q.prepareQuestion()
	}
	return q, nil
}

func (q *QuizScreen) handleQuestionKey(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	cur := q.session.Current()
	if cur == nil {
		return q, nil
	}

	if kmsg.String() == "enter" {
		return q.submit()
	}

	switch cur.Exercise.Type {
	case course.SingleChoice, course.MultiChoice, course.TrueFalse:
		var cmd tea.Cmd
		q.choices, cmd = q.choices.Update(kmsg)
		return q, cmd

	case course.FillGaps:
		switch kmsg.String() {
		case "tab":
			q.focusGap((q.gapFocus + 1) % len(q.gapInputs))
			return q, nil
		case "shift+tab":
			q.focusGap((q.gapFocus - 1 + len(q.gapInputs)) % len(q.gapInputs))
			return q, nil
		}
		if len(q.gapInputs) > 0 {
			var cmd tea.Cmd
			q.gapInputs[q.gapFocus], cmd = q.gapInputs[q.gapFocus].Update(kmsg)
			return q, cmd
		}
		return q, nil

	case course.Rearrange:
		return q.handleRearrangeKey(kmsg)
	}
	return q, nil
}

func (q *QuizScreen) handleRearrangeKey(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "left", "h":
		if q.bankCursor > 0 {
			q.bankCursor--
		}
	case "right", "l":
		if q.bankCursor < len(q.bank)-1 {
			q.bankCursor++
		}
	case "space", " ":
		if q.bankCursor < len(q.bank) {
			q.picked = append(q.picked, q.bank[q.bankCursor])
			q.bank = append(q.bank[:q.bankCursor], q.bank[q.bankCursor+1:]...)
			if q.bankCursor >= len(q.bank) && q.bankCursor > 0 {
				q.bankCursor--
			}
		}
	case "backspace":
		if len(q.picked) > 0 {
			last := q.picked[len(q.picked)-1]
			q.picked = q.picked[:len(q.picked)-1]
			q.bank = append(q.bank, last)
		}
	}
	return q, nil
}

func (q *QuizScreen) forwardToWidgets(msg tea.Msg) (screen.Screen, tea.Cmd) {
	cur := q.session.Current()
	if cur == nil || q.session.Phase() != quiz.PhaseInProgress || q.session.Submitted() {
		return q, nil
	}
	if cur.Exercise.Type == course.FillGaps && len(q.gapInputs) > 0 {
		var cmd tea.Cmd
		q.gapInputs[q.gapFocus], cmd = q.gapInputs[q.gapFocus].Update(msg)
		return q, cmd
	}
	return q, nil
}

// submit freezes the current inputs into an Answer, grades it, and records
// the outcome in local history.
func (q *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	cur := q.session.Current()
	if cur == nil {
		return q, nil
	}

	var ans quiz.Answer
	switch cur.Exercise.Type {
	case course.SingleChoice:
		ans.SelectedID = q.choices.SelectedID()
	case course.MultiChoice:
		ans.SelectedIDs = q.choices.CheckedIDs()
	case course.TrueFalse:
		picked := q.choices.SelectedID() == "true"
		ans.Bool = &picked
	case course.FillGaps:
		for _, in := range q.gapInputs {
			ans.Gaps = append(ans.Gaps, in.Value())
		}
	case course.Rearrange:
		if len(q.bank) > 0 {
			// Require the full order before grading.
			return q, nil
		}
		ans.Order = q.picked
	}

	q.session.SetAnswer(ans)
	q.session.Submit()
	verdict := q.session.Grade()
	q.verdict = &verdict
	q.choices.Revealed = true

	if q.hist != nil {
		q.hist.AppendAnswer(context.Background(), store.AnswerRecord{
			SessionID:     q.session.ID,
			RunID:         q.runID,
			ExerciseIndex: q.session.Index(),
			QuestionType:  string(cur.Exercise.Type),
			Correct:       verdict.Correct,
		})
	}
	return q, nil
}

// prepareQuestion rebuilds the input widgets for the current question,
// restoring any stored answer so back-navigation doesn't lose work.
func (q *QuizScreen) prepareQuestion() {
	q.verdict = nil
	q.gapInputs = nil
	q.gapFocus = 0
	q.bank = nil
	q.picked = nil
	q.bankCursor = 0

	cur := q.session.Current()
	if cur == nil {
		return
	}
	ex := cur.Exercise
	ans := q.session.Answer()

	switch ex.Type {
	case course.SingleChoice, course.MultiChoice:
		q.choices = components.NewChoiceList(q.session.Options(), ex.Type == course.MultiChoice)
		// Restore the stored answer so revisits and retries keep the
		// earlier selection.
		if ex.Type == course.MultiChoice {
			q.choices.SetChecked(ans.SelectedIDs)
		} else if ans.SelectedID != "" {
			q.choices.Select(ans.SelectedID)
		}

	case course.TrueFalse:
		q.choices = components.NewChoiceList([]quiz.ChoiceView{
			{ID: "true", Label: "True", IsCorrect: ex.CorrectAnswer},
			{ID: "false", Label: "False", IsCorrect: !ex.CorrectAnswer},
		}, false)
		if ans.Bool != nil && !*ans.Bool {
			q.choices.Select("false")
		}

	case course.FillGaps:
		gaps := ex.Gaps()
		for i, gap := range gaps {
			placeholder := gap.Placeholder
			if placeholder == "" {
				placeholder = "..."
			}
			in := components.NewTextInput(placeholder, false, 40)
			if i < len(ans.Gaps) {
				in.Model.SetValue(ans.Gaps[i])
			}
			if i > 0 {
				in.Model.Blur()
			}
			q.gapInputs = append(q.gapInputs, in)
		}

	case course.Rearrange:
		q.bank = quiz.Shuffle(ex.WordBank, q.session.SeedFor(q.session.Index()))
	}

	if q.session.Submitted() {
		verdict := q.session.Grade()
		q.verdict = &verdict
		q.choices.Revealed = true
		if ex.Type == course.Rearrange {
			q.picked = ans.Order
			q.bank = nil
		}
	}
}

// loadAttempts fetches the session's recorded answer log for the finished
// view.
func (q *QuizScreen) loadAttempts() tea.Cmd {
	hist, id := q.hist, q.session.ID
	return func() tea.Msg {
		recs, err := hist.SessionAnswers(context.Background(), id)
		if err != nil {
			return attemptsMsg{}
		}
		return attemptsMsg{recs: recs}
	}
}

func (q *QuizScreen) focusGap(i int) {
	if i < 0 || i >= len(q.gapInputs) {
		return
	}
	q.gapInputs[q.gapFocus].Model.Blur()
	q.gapFocus = i
	q.gapInputs[i].Model.Focus()
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch q.session.Phase() {
	case quiz.PhaseIntro:
		return []layout.KeyHint{{Key: "Enter", Description: "Start"}}
	case quiz.PhaseFinished:
		return []layout.KeyHint{
			{Key: "R", Description: "Restart"},
			{Key: "Esc", Description: "Back"},
		}
	}

	if q.session.Submitted() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "P", Description: "Previous"},
			{Key: "R", Description: "Retry"},
		}
	}

	cur := q.session.Current()
	if cur == nil {
		return nil
	}
	switch cur.Exercise.Type {
	case course.MultiChoice:
		return []layout.KeyHint{
			{Key: "Space", Description: "Toggle"},
			{Key: "Enter", Description: "Submit"},
		}
	case course.FillGaps:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next gap"},
			{Key: "Enter", Description: "Submit"},
		}
	case course.Rearrange:
		return []layout.KeyHint{
			{Key: "Space", Description: "Pick"},
			{Key: "Backspace", Description: "Undo"},
			{Key: "Enter", Description: "Submit"},
		}
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
}
