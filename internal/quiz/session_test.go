package quiz

import (
	"testing"

	"github.com/adidahl/techlingo-agent-framework/internal/course"
)

func testCourse() *course.Course {
	tf := func(prompt string, answer bool) course.Exercise {
		return course.Exercise{Type: course.TrueFalse, Prompt: prompt, CorrectAnswer: answer, Statement: prompt}
	}
	sc := course.Exercise{
		Type:   course.SingleChoice,
		Prompt: "pick one",
		Options: []course.ChoiceOption{
			{Text: "right", IsCorrect: true},
			{Text: "wrong a"},
			{Text: "wrong b"},
			{Text: "wrong c"},
		},
	}
	return &course.Course{
		Title: "t",
		Modules: []course.Module{
			{Title: "M1", Lessons: []course.Lesson{
				{Title: "L1", SLO: "s1", Exercises: []course.Exercise{tf("q0", true), sc}},
			}},
			{Title: "M2", Lessons: []course.Lesson{
				{Title: "L2", SLO: "s2", Exercises: []course.Exercise{tf("q2", false)}},
			}},
		},
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := NewSession(testCourse(), 100)
	if s.Phase() != PhaseIntro {
		t.Fatalf("phase = %v, want intro", s.Phase())
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}

	s.Start()
	if s.Phase() != PhaseInProgress || s.Index() != 0 {
		t.Fatalf("after Start: phase=%v index=%d", s.Phase(), s.Index())
	}

	yes := true
	s.SetAnswer(Answer{Bool: &yes})
	s.Submit()
	if !s.Submitted() {
		t.Fatal("Submit did not mark current index")
	}
	if s.Index() != 0 {
		t.Fatal("Submit must not advance")
	}
	if !s.Grade().Correct {
		t.Fatal("true should grade correct for q0")
	}

	s.Next()
	if s.Index() != 1 || s.Submitted() {
		t.Fatalf("after Next: index=%d submitted=%v", s.Index(), s.Submitted())
	}

	s.Prev()
	if s.Index() != 0 || !s.Submitted() {
		t.Fatal("Prev lost index 0 state")
	}
	s.Prev()
	if s.Index() != 0 {
		t.Fatal("Prev at 0 must be a no-op")
	}

	s.Next()
	s.Next()
	if s.Index() != 2 || s.Phase() != PhaseInProgress {
		t.Fatalf("index=%d phase=%v", s.Index(), s.Phase())
	}
	s.Next()
	if s.Phase() != PhaseFinished {
		t.Fatalf("phase = %v, want finished", s.Phase())
	}
}

func TestSessionRetryKeepsAnswer(t *testing.T) {
	s := NewSession(testCourse(), 1)
	s.Start()
	no := false
	s.SetAnswer(Answer{Bool: &no})
	s.Submit()

	s.Retry()
	if s.Submitted() {
		t.Fatal("Retry left question submitted")
	}
	if got := s.Answer(); got.Bool == nil || *got.Bool != false {
		t.Fatalf("Retry cleared the stored answer: %+v", got)
	}
}

func TestSessionRestartReproducesShuffles(t *testing.T) {
	s := NewSession(testCourse(), 42)
	s.Start()
	s.Next() // index 1, the single_choice question

	first := s.Options()
	if first == nil {
		t.Fatal("expected options for single_choice")
	}

	yes := true
	s.SetAnswer(Answer{SelectedID: first[0].ID})
	s.Submit()
	s.Prev()
	s.SetAnswer(Answer{Bool: &yes})

	s.Restart()
	if s.Phase() != PhaseIntro || s.Index() != 0 {
		t.Fatalf("after Restart: phase=%v index=%d", s.Phase(), s.Index())
	}
	if s.Submitted() {
		t.Fatal("Restart kept submitted flags")
	}
	if got := s.Answer(); got.Bool != nil {
		t.Fatalf("Restart kept answers: %+v", got)
	}

	s.Start()
	s.Next()
	second := s.Options()
	if len(second) != len(first) {
		t.Fatalf("option count changed: %d vs %d", len(second), len(first))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("shuffle order changed after restart: %v vs %v", first, second)
		}
	}
}

func TestSessionPerIndexSeedsDiffer(t *testing.T) {
	s := NewSession(testCourse(), 9)
	if s.SeedFor(0) == s.SeedFor(1) {
		t.Fatal("adjacent questions share a seed")
	}
	if got := s.SeedFor(2); got != 11 {
		t.Fatalf("SeedFor(2) = %d, want 11", got)
	}
}

func TestSessionScore(t *testing.T) {
	s := NewSession(testCourse(), 5)
	s.Start()

	yes, no := true, false
	s.SetAnswer(Answer{Bool: &yes}) // q0 correct
	s.Submit()
	s.Next()
	// Skip the single_choice question entirely.
	s.Next()
	s.SetAnswer(Answer{Bool: &no}) // q2 correct (answer is false)
	s.Submit()

	correct, submitted := s.Score()
	if submitted != 2 || correct != 2 {
		t.Fatalf("Score = (%d, %d), want (2, 2)", correct, submitted)
	}
}
