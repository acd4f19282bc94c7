package generate

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/adidahl/techlingo-agent-framework/internal/stream"
)

// dialedMsg reports the outcome of opening a streaming session. seq ties it
// to the start attempt that issued it; a restart makes older dials stale.
type dialedMsg struct {
	session *stream.Session
	err     error
	analyze bool
	seq     int
}

// eventMsg carries one inbound event, or the error that ended the read.
// session identifies the connection the read came from.
type eventMsg struct {
	ev      *stream.Event
	err     error
	analyze bool
	session *stream.Session
}

// dialCmd opens the duplex connection and sends the init payload.
func dialCmd(url string, payload any, analyze bool, seq int) tea.Cmd {
	return func() tea.Msg {
		s, err := stream.Dial(context.Background(), url, payload)
		return dialedMsg{session: s, err: err, analyze: analyze, seq: seq}
	}
}

// readCmd blocks on the next inbound event. The update loop re-issues it
// after each event until the session ends.
func readCmd(s *stream.Session, analyze bool) tea.Cmd {
	return func() tea.Msg {
		ev, err := s.Next()
		return eventMsg{ev: ev, err: err, analyze: analyze, session: s}
	}
}
