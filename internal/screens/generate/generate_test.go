package generate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/adidahl/techlingo-agent-framework/internal/store"
	"github.com/adidahl/techlingo-agent-framework/internal/stream"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// startAttempt types source text and presses enter, leaving the screen in
// the generating mode waiting for its dial to resolve.
func startAttempt(t *testing.T, g *GenerateScreen) {
	t.Helper()
	g.input.Model.SetValue("some source text")
	if _, cmd := g.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd == nil {
		t.Fatal("enter did not start a generate attempt")
	}
	if g.mode != modeGenerating {
		t.Fatalf("mode = %d", g.mode)
	}
}

func TestDialFailureRecordedInHistory(t *testing.T) {
	hist := openTestStore(t)
	g := New("ws://localhost:9", nil, 1, hist)
	startAttempt(t, g)

	g.Update(dialedMsg{
		err: &stream.TransportError{Op: "dial", Err: errors.New("connection refused")},
		seq: g.dialSeq,
	})

	recs, err := hist.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("len(recs) = %d, want 1", len(recs))
	}
	if recs[0].Status != store.RunFailed {
		t.Errorf("Status = %q", recs[0].Status)
	}
	if recs[0].Error == "" {
		t.Error("failure reason not recorded")
	}
}

func TestReadFailureRecordedOnce(t *testing.T) {
	hist := openTestStore(t)
	g := New("ws://localhost:9", nil, 1, hist)
	startAttempt(t, g)

	session := &stream.Session{}
	g.Update(dialedMsg{session: session, seq: g.dialSeq})
	g.Update(eventMsg{
		err:     &stream.TransportError{Op: "read", Err: errors.New("reset by peer")},
		session: session,
	})

	recs, err := hist.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("len(recs) = %d, want 1", len(recs))
	}
	if recs[0].Status != store.RunFailed {
		t.Errorf("Status = %q", recs[0].Status)
	}

	// A fresh attempt records again; the recorded flag resets per start.
	startAttempt(t, g)
	g.Update(dialedMsg{
		err: &stream.TransportError{Op: "dial", Err: errors.New("connection refused")},
		seq: g.dialSeq,
	})
	recs, err = hist.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("len(recs) = %d, want 2", len(recs))
	}
}
