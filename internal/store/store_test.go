package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndListRuns(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	recs := []RunRecord{
		{RunID: "run-1", Title: "Networking Basics", Difficulty: "beginner", Status: RunCompleted},
		{RunID: "run-2", Title: "", Difficulty: "advanced", Status: RunFailed, Error: "workflow failed"},
	}
	for _, rec := range recs {
		if _, err := s.AppendRun(ctx, rec); err != nil {
			t.Fatalf("AppendRun: %v", err)
		}
	}

	got, err := s.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].RunID != "run-2" || got[0].Status != RunFailed || got[0].Error != "workflow failed" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].RunID != "run-1" || got[1].Status != RunCompleted {
		t.Errorf("got[1] = %+v", got[1])
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

func TestRecentRunsLimit(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.AppendRun(ctx, RunRecord{RunID: "run", Status: RunCompleted}); err != nil {
			t.Fatalf("AppendRun: %v", err)
		}
	}
	got, err := s.RecentRuns(ctx, 3)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

func TestSessionAnswersAppendOnly(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	// A retry of exercise 0 appends a second row rather than replacing.
	answers := []AnswerRecord{
		{SessionID: "sess-1", RunID: "run-1", ExerciseIndex: 0, QuestionType: "single_choice", Correct: false},
		{SessionID: "sess-1", RunID: "run-1", ExerciseIndex: 0, QuestionType: "single_choice", Correct: true},
		{SessionID: "sess-1", RunID: "run-1", ExerciseIndex: 1, QuestionType: "fill_gaps", Correct: true},
		{SessionID: "sess-2", RunID: "run-1", ExerciseIndex: 0, QuestionType: "true_false", Correct: true},
	}
	for _, rec := range answers {
		if _, err := s.AppendAnswer(ctx, rec); err != nil {
			t.Fatalf("AppendAnswer: %v", err)
		}
	}

	got, err := s.SessionAnswers(ctx, "sess-1")
	if err != nil {
		t.Fatalf("SessionAnswers: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Correct || !got[1].Correct {
		t.Errorf("retry order lost: %+v", got[:2])
	}
	if got[2].QuestionType != "fill_gaps" {
		t.Errorf("got[2] = %+v", got[2])
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")
	s1, err := Open(dsn)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if _, err := s1.AppendRun(context.Background(), RunRecord{RunID: "r", Status: RunCompleted}); err != nil {
		t.Fatalf("AppendRun: %v", err)
	}
	s1.Close()

	s2, err := Open(dsn)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer s2.Close()

	got, err := s2.RecentRuns(context.Background(), 1)
	if err != nil || len(got) != 1 {
		t.Fatalf("RecentRuns after reopen: %v (%d rows)", err, len(got))
	}
}
