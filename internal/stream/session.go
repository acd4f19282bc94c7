package stream

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
)

// Session is one lifetime of a duplex connection, from dial to terminal
// event or cancellation. The init payload is written exactly once as part
// of Dial, so a returned Session is already in its running phase.
type Session struct {
	conn *websocket.Conn

	closeOnce sync.Once
	closeErr  error
}

// Dial opens the duplex connection and writes payload as the single
// outbound init message. Failures on either step surface as *TransportError.
func Dial(ctx context.Context, url string, payload any) (*Session, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, &TransportError{Op: "dial", Err: err}
	}
	if err := conn.WriteJSON(payload); err != nil {
		conn.Close()
		return nil, &TransportError{Op: "send", Err: err}
	}
	return &Session{conn: conn}, nil
}

// Next blocks until the next inbound message and decodes it. A message that
// fails to decode returns *MalformedEventError and leaves the session
// usable; a transport failure returns *TransportError and ends it.
func (s *Session) Next() (*Event, error) {
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return nil, &TransportError{Op: "read", Err: err}
	}
	return DecodeEvent(data)
}

// Close forcibly closes the connection. Safe to call more than once and
// from a teardown path while Next blocks; pending reads fail with a
// *TransportError.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if s.conn != nil {
			s.closeErr = s.conn.Close()
		}
	})
	return s.closeErr
}
