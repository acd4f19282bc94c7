package stream

import "fmt"

// TransportError indicates the connection could not be opened or dropped
// before a terminal event arrived.
type TransportError struct {
	Op  string // "dial", "send", "read"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("stream %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError indicates the service reported failure through an explicit
// error event, as opposed to the transport dropping.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// MalformedEventError indicates an inbound message that is not valid JSON or
// lacks a recognized type. The message is discarded; the session survives.
type MalformedEventError struct {
	Raw []byte
	Err error
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed stream event: %v", e.Err)
}

func (e *MalformedEventError) Unwrap() error { return e.Err }
