package quiz

import (
	"fmt"
	"strings"

	"github.com/adidahl/techlingo-agent-framework/internal/course"
)

// Answer holds a learner's response to one exercise. Exactly the field for
// the exercise's variant is meaningful; the rest stay zero.
type Answer struct {
	SelectedID  string   // single_choice: presentation-stable option id
	SelectedIDs []string // multi_choice: set of option ids
	Bool        *bool    // true_false: nil until the learner picks a side
	Gaps        []string // fill_gaps: literal input per gap, in display order
	Order       []string // rearrange: chosen token order
}

// Verdict is the result of evaluating an answer: correctness plus the
// feedback lines to display, in order.
type Verdict struct {
	Correct bool
	Lines   []string
}

// Evaluate dispatches to the variant's evaluator. Evaluation is pure: it
// never mutates the exercise and is safe to repeat for the same inputs.
// opts must be the shuffled options shown to the learner (choice variants
// only; nil otherwise).
func Evaluate(ex *course.Exercise, ans Answer, opts []ChoiceView) Verdict {
	switch ex.Type {
	case course.SingleChoice:
		return EvaluateSingleChoice(ex, ans.SelectedID, opts)
	case course.MultiChoice:
		return EvaluateMultiChoice(ex, ans.SelectedIDs, opts)
	case course.TrueFalse:
		return EvaluateTrueFalse(ex, ans.Bool)
	case course.FillGaps:
		return EvaluateFillGaps(ex, ans.Gaps)
	case course.Rearrange:
		return EvaluateRearrange(ex, ans.Order)
	}
	return Verdict{Lines: []string{fmt.Sprintf("Unsupported question type: %s", ex.Type)}}
}

// EvaluateSingleChoice is correct iff the selected option is marked correct.
func EvaluateSingleChoice(ex *course.Exercise, selectedID string, opts []ChoiceView) Verdict {
	var selected, correct *ChoiceView
	for i := range opts {
		if opts[i].ID == selectedID {
			selected = &opts[i]
		}
		if opts[i].IsCorrect {
			correct = &opts[i]
		}
	}
	if selected == nil {
		return Verdict{Lines: []string{"No answer selected."}}
	}

	v := Verdict{Correct: selected.IsCorrect}
	if v.Correct {
		if ex.FeedbackForCorrect != "" {
			v.Lines = append(v.Lines, ex.FeedbackForCorrect)
		}
		if selected.Rationale != "" {
			v.Lines = append(v.Lines, "Rationale: "+selected.Rationale)
		}
		return v
	}

	v.Lines = append(v.Lines, feedbackLines(selected.Feedback)...)
	if correct != nil {
		v.Lines = append(v.Lines, "Correct answer: "+correct.Label)
		if correct.Rationale != "" {
			v.Lines = append(v.Lines, correct.Rationale)
		}
	}
	return v
}

// EvaluateMultiChoice is correct iff the selected id set exactly equals the
// set of correct option ids: extra picks and missing picks both fail.
func EvaluateMultiChoice(ex *course.Exercise, selectedIDs []string, opts []ChoiceView) Verdict {
	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	var correctLabels []string
	correctCount := 0
	exact := true
	for _, o := range opts {
		if o.IsCorrect {
			correctCount++
			correctLabels = append(correctLabels, o.Label)
			if !selected[o.ID] {
				exact = false
			}
		} else if selected[o.ID] {
			exact = false
		}
	}
	if len(selected) != correctCount {
		exact = false
	}

	v := Verdict{Correct: exact}
	if exact {
		if ex.FeedbackForCorrect != "" {
			v.Lines = append(v.Lines, ex.FeedbackForCorrect)
		}
		return v
	}

	// Surface feedback from a wrongly-included option first, falling back
	// to a wrongly-omitted correct one.
	var culprit *ChoiceView
	for i := range opts {
		if selected[opts[i].ID] && !opts[i].IsCorrect {
			culprit = &opts[i]
			break
		}
	}
	if culprit == nil {
		for i := range opts {
			if !selected[opts[i].ID] && opts[i].IsCorrect {
				culprit = &opts[i]
				break
			}
		}
	}
	if culprit != nil {
		v.Lines = append(v.Lines, feedbackLines(culprit.Feedback)...)
	}
	v.Lines = append(v.Lines, "Correct answers: "+strings.Join(correctLabels, ", "))
	return v
}

// EvaluateTrueFalse is correct iff the chosen boolean equals the exercise's
// correct_answer. A nil answer counts as unanswered.
func EvaluateTrueFalse(ex *course.Exercise, answer *bool) Verdict {
	if answer == nil {
		return Verdict{Lines: []string{"No answer selected."}}
	}

	v := Verdict{Correct: *answer == ex.CorrectAnswer}
	if v.Correct {
		if ex.FeedbackForCorrect != "" {
			v.Lines = append(v.Lines, ex.FeedbackForCorrect)
		}
		return v
	}

	v.Lines = append(v.Lines, feedbackLines(ex.FeedbackForIncorrect)...)
	v.Lines = append(v.Lines, "Correct answer: "+boolWord(ex.CorrectAnswer))
	return v
}

// EvaluateFillGaps is correct iff every gap matches one of its accepted
// answers after normalization. answers is the literal per-gap input in
// display order; missing trailing entries count as empty.
func EvaluateFillGaps(ex *course.Exercise, answers []string) Verdict {
	gaps := ex.Gaps()

	matches := make([]bool, len(gaps))
	all := true
	for i, g := range gaps {
		var user string
		if i < len(answers) {
			user = answers[i]
		}
		matches[i] = gapMatches(user, g.AcceptedAnswers)
		if !matches[i] {
			all = false
		}
	}

	v := Verdict{Correct: all}
	if all {
		if ex.FeedbackForCorrect != "" {
			v.Lines = append(v.Lines, ex.FeedbackForCorrect)
		}
		return v
	}

	v.Lines = append(v.Lines, "Correct answers:")
	for i, g := range gaps {
		line := fmt.Sprintf("Gap %d: %s", i+1, strings.Join(g.AcceptedAnswers, ", "))
		if !matches[i] {
			var user string
			if i < len(answers) {
				user = answers[i]
			}
			line += fmt.Sprintf(" (you: %s)", user)
		}
		v.Lines = append(v.Lines, line)
	}
	return v
}

// EvaluateRearrange is correct iff the chosen order equals correct_order
// element-wise.
func EvaluateRearrange(ex *course.Exercise, order []string) Verdict {
	correct := len(order) == len(ex.CorrectOrder)
	if correct {
		for i, w := range order {
			if w != ex.CorrectOrder[i] {
				correct = false
				break
			}
		}
	}

	v := Verdict{Correct: correct}
	if correct {
		if ex.FeedbackForCorrect != "" {
			v.Lines = append(v.Lines, ex.FeedbackForCorrect)
		}
		return v
	}
	v.Lines = append(v.Lines, "Correct order: "+strings.Join(ex.CorrectOrder, " | "))
	return v
}

// Normalize prepares free text for gap comparison: trim, lowercase, and
// collapse internal whitespace runs to single spaces. Idempotent.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func gapMatches(user string, accepted []string) bool {
	u := Normalize(user)
	for _, a := range accepted {
		if Normalize(a) == u {
			return true
		}
	}
	return false
}

func feedbackLines(fb *course.Feedback) []string {
	if fb == nil {
		return nil
	}
	var lines []string
	if fb.Intrinsic != "" {
		lines = append(lines, fb.Intrinsic)
	}
	if fb.Instructional != "" {
		lines = append(lines, fb.Instructional)
	}
	return lines
}

func boolWord(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
