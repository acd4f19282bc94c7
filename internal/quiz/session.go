package quiz

import (
	"github.com/google/uuid"

	"github.com/adidahl/techlingo-agent-framework/internal/course"
)

// Phase is the lifecycle stage of a quiz session.
type Phase int

const (
	PhaseIntro      Phase = iota // Not started; showing the course summary
	PhaseInProgress              // Serving questions one at a time
	PhaseFinished                // Past the last question
)

// Session sequences a course's flattened exercises one question at a time.
// Answers and submitted flags are kept per index so the learner can move
// back and forth without losing work. All state is owned by the caller's
// goroutine; Session does no locking.
type Session struct {
	// ID identifies the session in the local history store.
	ID string

	// Flat is the exercise order: module, then lesson, then exercise.
	Flat []course.FlatExercise

	// BaseSeed drives option shuffling; question i uses BaseSeed+i, so a
	// restart with the same seed reproduces every option ordering.
	BaseSeed int

	phase     Phase
	current   int
	answers   map[int]Answer
	submitted map[int]bool
}

// NewSession flattens the course and prepares an unstarted session.
func NewSession(c *course.Course, baseSeed int) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Flat:      course.Flatten(c),
		BaseSeed:  baseSeed,
		answers:   make(map[int]Answer),
		submitted: make(map[int]bool),
	}
}

// Phase returns the current lifecycle stage.
func (s *Session) Phase() Phase { return s.phase }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.Flat) }

// Index returns the current question index, always in [0, Len).
func (s *Session) Index() int { return s.current }

// Current returns the current flattened exercise, or nil for an empty quiz.
func (s *Session) Current() *course.FlatExercise {
	if s.current < 0 || s.current >= len(s.Flat) {
		return nil
	}
	return &s.Flat[s.current]
}

// SeedFor returns the shuffle seed for question index.
func (s *Session) SeedFor(index int) int { return s.BaseSeed + index }

// Options returns the current question's options in presentation order.
// Returns nil for non-choice variants.
func (s *Session) Options() []ChoiceView {
	cur := s.Current()
	if cur == nil {
		return nil
	}
	switch cur.Exercise.Type {
	case course.SingleChoice, course.MultiChoice:
		return ChoiceViews(cur.Exercise.Options, s.SeedFor(s.current))
	}
	return nil
}

// Start enters in-progress mode at the first question.
func (s *Session) Start() {
	s.phase = PhaseInProgress
	s.current = 0
}

// SetAnswer stores the answer for the current question without submitting.
func (s *Session) SetAnswer(a Answer) {
	s.answers[s.current] = a
}

// Answer returns the stored answer for the current question.
func (s *Session) Answer() Answer {
	return s.answers[s.current]
}

// Submit marks the current question submitted. It does not advance.
func (s *Session) Submit() {
	s.submitted[s.current] = true
}

// Submitted reports whether the current question has been submitted.
func (s *Session) Submitted() bool {
	return s.submitted[s.current]
}

// Grade evaluates the current question's stored answer.
func (s *Session) Grade() Verdict {
	return s.gradeAt(s.current)
}

func (s *Session) gradeAt(index int) Verdict {
	if index < 0 || index >= len(s.Flat) {
		return Verdict{}
	}
	ex := s.Flat[index].Exercise
	var opts []ChoiceView
	switch ex.Type {
	case course.SingleChoice, course.MultiChoice:
		opts = ChoiceViews(ex.Options, s.SeedFor(index))
	}
	return Evaluate(ex, s.answers[index], opts)
}

// Next advances to the following question, or finishes the session when
// called on the last one.
func (s *Session) Next() {
	if s.current < len(s.Flat)-1 {
		s.current++
		return
	}
	s.phase = PhaseFinished
}

// Prev moves back one question. No-op at the first question.
func (s *Session) Prev() {
	if s.current > 0 {
		s.current--
	}
}

// Retry un-submits the current question, keeping its stored answer.
func (s *Session) Retry() {
	delete(s.submitted, s.current)
}

// Restart clears every answer and submitted flag and returns to the intro
// phase. The base seed is unchanged, so a subsequent Start replays the same
// question and option ordering.
func (s *Session) Restart() {
	s.phase = PhaseIntro
	s.current = 0
	s.answers = make(map[int]Answer)
	s.submitted = make(map[int]bool)
}

// Score counts submitted questions whose stored answer grades correct.
func (s *Session) Score() (correct, submitted int) {
	for i := range s.Flat {
		if !s.submitted[i] {
			continue
		}
		submitted++
		if s.gradeAt(i).Correct {
			correct++
		}
	}
	return correct, submitted
}
