package store

import (
	"context"
	"fmt"
	"time"
)

// Run statuses recorded in history.
const (
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// RunRecord is one finished generation session.
type RunRecord struct {
	ID         int64
	RunID      string
	Title      string
	Difficulty string
	Status     string
	Error      string
	CreatedAt  time.Time
}

// AnswerRecord is one submitted quiz answer.
type AnswerRecord struct {
	ID            int64
	SessionID     string
	RunID         string
	ExerciseIndex int
	QuestionType  string
	Correct       bool
	CreatedAt     time.Time
}

// AppendRun records a finished generation session. History is append-only;
// records are never updated or deleted.
func (s *Store) AppendRun(ctx context.Context, rec RunRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO generation_runs (run_id, title, difficulty, status, error)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.RunID, rec.Title, rec.Difficulty, rec.Status, rec.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("append run: %w", err)
	}
	return res.LastInsertId()
}

// AppendAnswer records one submitted answer. Retries of the same exercise
// append a new row.
func (s *Store) AppendAnswer(ctx context.Context, rec AnswerRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_answers (session_id, run_id, exercise_index, question_type, correct)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.SessionID, rec.RunID, rec.ExerciseIndex, rec.QuestionType, boolInt(rec.Correct),
	)
	if err != nil {
		return 0, fmt.Errorf("append answer: %w", err)
	}
	return res.LastInsertId()
}

// RecentRuns returns the newest limit run records, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, title, difficulty, status, error, created_at
		 FROM generation_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Title, &rec.Difficulty,
			&rec.Status, &rec.Error, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// SessionAnswers returns every answer recorded for a quiz session, in
// append order.
func (s *Store) SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, run_id, exercise_index, question_type, correct, created_at
		 FROM quiz_answers WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var recs []AnswerRecord
	for rows.Next() {
		var rec AnswerRecord
		var correct int
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.RunID, &rec.ExerciseIndex,
			&rec.QuestionType, &correct, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		rec.Correct = correct != 0
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
