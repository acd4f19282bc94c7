package stream

import "fmt"

// Status is the session status shown to the user.
type Status int

const (
	StatusIdle Status = iota
	StatusConnecting
	StatusRunning
	StatusCompleted
	StatusError
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConnecting:
		return "connecting"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Terminal reports whether the status ends the session until a new start.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// State is the accumulated view of one streaming session. Every transition
// is computed synchronously from the current state and the incoming event,
// in transport delivery order; log append order equals delivery order.
type State struct {
	Status Status

	// Logs holds timestamp-prefixed entries in arrival order.
	Logs []string

	// Step and Percent drive the progress display. The generate session
	// leaves Percent untouched by progress events; the analyze session
	// maps executor milestones onto it.
	Step    string
	Percent int

	RunID  string
	RunDir string

	// Done is the terminal complete event, nil until completion.
	Done *Event

	// ErrMsg is the terminal error message, empty unless Status is error.
	ErrMsg string

	// Durations records per-executor seconds reported by progress done
	// events. The generate session collects them but never folds them
	// into Percent.
	Durations map[string]float64
}

// NewState returns the idle state a controller starts from.
func NewState() State {
	return State{Status: StatusIdle}
}

// connecting resets accumulated session data for a fresh start.
func connecting() State {
	return State{Status: StatusConnecting, Step: "Connecting...", Durations: map[string]float64{}}
}

// appendLog formats an inbound log entry as the console shows it.
func appendLog(s State, ts, message string) State {
	if ts == "" {
		ts = "LOG"
	}
	s.Logs = append(s.Logs, fmt.Sprintf("[%s] %s", ts, message))
	return s
}

// Reducer computes the next state for one inbound event. GeneratorReduce and
// AnalyzerReduce are the two variants.
type Reducer func(State, Event) State

// GeneratorReduce applies a generate-session event. Progress events are
// advisory: executor durations are recorded but the displayed percentage
// never moves in response.
func GeneratorReduce(s State, ev Event) State {
	switch ev.Type {
	case EventStart:
		s.RunID = ev.RunID
		s.RunDir = ev.RunDir
		s.Step = "Initializing workflow..."

	case EventLog:
		if ev.Message != "" {
			s = appendLog(s, ev.TS, ev.Message)
		}

	case EventProgress:
		switch ev.Event {
		case PhaseStart:
			s.Step = ev.Executor
		case PhaseDone:
			if s.Durations == nil {
				s.Durations = map[string]float64{}
			}
			s.Durations[ev.Executor] = ev.Duration
		}

	case EventComplete:
		done := ev
		s.Done = &done
		s.Status = StatusCompleted
		s.Step = "Completed"
		s.Percent = 100
		if ev.RunID != "" {
			s.RunID = ev.RunID
		}

	case EventError:
		s.ErrMsg = errMessage(ev)
		s.Status = StatusError
		s.Logs = append(s.Logs, "[ERROR] "+s.ErrMsg)
	}
	return s
}

// analyzerMilestones maps the analysis pipeline's two executors to fixed
// progress points: roughly 10% and 50% at their starts, 50% and 90% at
// their completions.
var analyzerMilestones = map[string]struct {
	StartPercent int
	DonePercent  int
	StartStep    string
}{
	"text_analyzer": {10, 50, "Step 1/2: Analyzing content..."},
	"text_reviewer": {50, 90, "Step 2/2: Reviewing and refining..."},
}

// AnalyzerReduce applies an analyze-session event, mapping executor
// progress onto fixed milestones.
func AnalyzerReduce(s State, ev Event) State {
	switch ev.Type {
	case EventStart:
		s.RunID = ev.RunID
		s.RunDir = ev.RunDir
		s.Step = "Initializing workflow..."
		s.Percent = 5

	case EventLog:
		if ev.Message != "" {
			s = appendLog(s, ev.TS, ev.Message)
		}

	case EventProgress:
		m, ok := analyzerMilestones[ev.Executor]
		if !ok {
			break
		}
		switch ev.Event {
		case PhaseStart:
			s.Step = m.StartStep
			s.Percent = m.StartPercent
		case PhaseDone:
			s.Percent = m.DonePercent
		}

	case EventComplete:
		done := ev
		s.Done = &done
		s.Status = StatusCompleted
		s.Step = "Analysis complete"
		s.Percent = 100

	case EventError:
		s.ErrMsg = errMessage(ev)
		s.Status = StatusError
	}
	return s
}

func errMessage(ev Event) string {
	if ev.Message != "" {
		return ev.Message
	}
	return "Unknown error"
}
