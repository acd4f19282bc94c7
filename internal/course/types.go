// Package course defines the course document model produced by the remote
// generation pipeline: a course of modules, each holding ordered lessons with
// exercises and flashcards. Exercise is a closed tagged variant keyed by
// question_type; decoding lives in decode.go.
package course

import "time"

// QuestionType tags the exercise variants.
type QuestionType string

const (
	SingleChoice QuestionType = "single_choice"
	MultiChoice  QuestionType = "multi_choice"
	TrueFalse    QuestionType = "true_false"
	FillGaps     QuestionType = "fill_gaps"
	Rearrange    QuestionType = "rearrange"
)

// Feedback pairs the simulated consequence of an answer with a coaching
// explanation. Either field may be empty; older documents carry a bare
// string, which decodes into Instructional.
type Feedback struct {
	Intrinsic     string `json:"intrinsic,omitempty"`
	Instructional string `json:"instructional,omitempty"`
}

// ChoiceOption is one answer option of a choice exercise, in authoring order.
type ChoiceOption struct {
	Text      string    `json:"text"`
	IsCorrect bool      `json:"is_correct"`
	ErrorType string    `json:"error_type,omitempty"`
	Rationale string    `json:"rationale,omitempty"`
	BetterFit string    `json:"better_fit,omitempty"`
	Feedback  *Feedback `json:"feedback,omitempty"`
}

// GapPart is one segment of a fill_gaps exercise: literal text or a gap the
// learner fills in. Gaps match any of AcceptedAnswers after normalization.
type GapPart struct {
	Type            string   `json:"type"` // "text" or "gap"
	Text            string   `json:"text,omitempty"`
	Placeholder     string   `json:"placeholder,omitempty"`
	AcceptedAnswers []string `json:"accepted_answers,omitempty"`
}

// IsGap reports whether the part is a fillable gap.
func (p GapPart) IsGap() bool { return p.Type == "gap" }

// Exercise is the tagged variant over QuestionType. Exactly the fields for
// the tagged variant are populated; evaluators and renderers switch on Type.
type Exercise struct {
	Type        QuestionType
	BloomsLevel string
	Prompt      string

	// FeedbackForCorrect is optional reinforcement shown on a correct answer.
	FeedbackForCorrect string

	// Options holds the choice list for single_choice and multi_choice,
	// in authoring order. Presentation order is decided per render seed.
	Options []ChoiceOption

	// true_false fields.
	Statement            string
	CorrectAnswer        bool
	FeedbackForIncorrect *Feedback

	// fill_gaps parts, interleaving text and gaps in display order.
	Parts []GapPart

	// rearrange fields. WordBank and CorrectOrder carry the same multiset.
	WordBank     []string
	CorrectOrder []string
}

// Gaps returns the gap parts of a fill_gaps exercise in display order.
func (e *Exercise) Gaps() []GapPart {
	var gaps []GapPart
	for _, p := range e.Parts {
		if p.IsGap() {
			gaps = append(gaps, p)
		}
	}
	return gaps
}

// Flashcard is a front/back study card attached to a lesson.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
	Hint  string `json:"hint,omitempty"`
}

// Lesson holds a learning objective with its exercises and flashcards.
// Exercise and flashcard order is presentation order and is never resorted.
type Lesson struct {
	Title      string      `json:"title"`
	SLO        string      `json:"slo"`
	Exercises  []Exercise  `json:"exercises"`
	Flashcards []Flashcard `json:"flashcards,omitempty"`
}

// Module is an ordered group of lessons.
type Module struct {
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

// Course is the root document of one generation run.
type Course struct {
	Title         string    `json:"title"`
	Difficulty    string    `json:"difficulty"`
	Modules       []Module  `json:"modules"`
	SourceSummary string    `json:"source_summary,omitempty"`
	GeneratedAt   time.Time `json:"generated_at,omitzero"`
	SchemaVersion string    `json:"schema_version,omitempty"`
}

// ExerciseCount returns the total number of exercises across all lessons.
func (c *Course) ExerciseCount() int {
	n := 0
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			n += len(l.Exercises)
		}
	}
	return n
}

// LessonCount returns the total number of lessons across all modules.
func (c *Course) LessonCount() int {
	n := 0
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}
