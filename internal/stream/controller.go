package stream

// Controller owns at most one Session and folds its inbound events into a
// State. All methods must be called from a single goroutine (the UI loop);
// the controller never mutates state from connection callbacks.
//
// Lifecycle: Begin (status connecting, previous session closed) → Attach
// once the dial succeeds (status running) → Apply per inbound event until a
// terminal complete/error → Cancel on teardown.
type Controller struct {
	reduce Reducer

	// closeOnComplete / closeOnError control who closes the connection
	// after a terminal event: the generate session closes it itself, the
	// analyze session leaves an inbound error's connection to the server
	// and tolerates the trailing close.
	closeOnComplete bool
	closeOnError    bool

	state   State
	session *Session

	// lastErr distinguishes how an error status arose: *RemoteError for an
	// inbound error event, *TransportError (or the raw error) for a
	// connection failure.
	lastErr error
}

// NewGenerator returns the controller for /ws/run sessions.
func NewGenerator() *Controller {
	return &Controller{
		reduce:          GeneratorReduce,
		closeOnComplete: true,
		closeOnError:    true,
		state:           NewState(),
	}
}

// NewAnalyzer returns the controller for /ws/analyze sessions.
func NewAnalyzer() *Controller {
	return &Controller{
		reduce:          AnalyzerReduce,
		closeOnComplete: true,
		state:           NewState(),
	}
}

// State returns the current session state.
func (c *Controller) State() State { return c.state }

// Active reports whether a connection is currently owned.
func (c *Controller) Active() bool { return c.session != nil }

// Begin starts a new session attempt: prior logs, result, and error are
// cleared and any active connection is closed first (last start wins).
func (c *Controller) Begin() {
	c.dropSession()
	c.state = connecting()
	c.lastErr = nil
}

// Attach adopts the dialed session. The init payload has already been sent
// by Dial, so the session is running from here.
func (c *Controller) Attach(s *Session) {
	c.dropSession()
	c.session = s
	c.state.Status = StatusRunning
}

// Session returns the owned session for issuing reads, or nil.
func (c *Controller) Session() *Session { return c.session }

// Apply folds one inbound event into the state, closing the connection
// after a terminal event according to the session variant.
func (c *Controller) Apply(ev Event) {
	c.state = c.reduce(c.state, ev)
	switch {
	case c.state.Status == StatusCompleted && c.closeOnComplete:
		c.dropSession()
	case c.state.Status == StatusError:
		c.lastErr = &RemoteError{Message: c.state.ErrMsg}
		if c.closeOnError {
			c.dropSession()
		}
	}
}

// Discard records a malformed inbound message: one log entry, session
// unaffected.
func (c *Controller) Discard(err error) {
	c.state.Logs = append(c.state.Logs, "[WARN] discarded malformed event: "+err.Error())
}

// Fail records a transport-level failure before any terminal event: a
// synthetic error log entry and a transition to the error status.
func (c *Controller) Fail(err error) {
	if c.state.Status.Terminal() {
		// A trailing close after complete/error is not a failure.
		return
	}
	c.state.ErrMsg = err.Error()
	c.state.Status = StatusError
	c.state.Logs = append(c.state.Logs, "[ERROR] "+err.Error())
	c.lastErr = err
	c.dropSession()
}

// Err returns what ended the session: *RemoteError for an inbound error
// event, the transport error for a connection failure, nil otherwise.
func (c *Controller) Err() error {
	if c.state.Status != StatusError {
		return nil
	}
	return c.lastErr
}

// Cancel force-closes any active connection, regardless of state. This is
// the teardown path for unmounting views; there is no server-side
// cancellation handshake.
func (c *Controller) Cancel() {
	c.dropSession()
}

func (c *Controller) dropSession() {
	if c.session != nil {
		c.session.Close()
		c.session = nil
	}
}
