// Package stream implements the client side of the generation service's
// duplex event protocol: one outbound init payload after the connection
// opens, then a sequence of typed inbound events that drive session status,
// progress, and logs until a terminal complete or error event.
package stream

import (
	"encoding/json"
	"fmt"

	"github.com/adidahl/techlingo-agent-framework/internal/course"
	"github.com/adidahl/techlingo-agent-framework/internal/workflow"
)

// EventType tags the inbound event union.
type EventType string

const (
	EventStart    EventType = "start"
	EventLog      EventType = "log"
	EventProgress EventType = "progress"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// Progress phases carried by progress events.
const (
	PhaseStart = "start"
	PhaseDone  = "done"
)

// Event is the inbound envelope, one JSON object per message. Fields beyond
// Type are populated per event type.
type Event struct {
	Type     EventType `json:"type"`
	TS       string    `json:"ts,omitempty"`
	Message  string    `json:"message,omitempty"`
	Executor string    `json:"executor,omitempty"`
	Event    string    `json:"event,omitempty"` // progress phase: start or done
	Duration float64   `json:"duration,omitempty"`
	RunID    string    `json:"run_id,omitempty"`
	RunDir   string    `json:"run_dir,omitempty"`

	// Result carries the analyzer's terminal payload.
	Result json.RawMessage `json:"result,omitempty"`

	// Generate-session terminal payload.
	Course   json.RawMessage `json:"course,omitempty"`
	Report   json.RawMessage `json:"report,omitempty"`
	Markdown string          `json:"markdown,omitempty"`
}

// DecodeEvent parses one inbound message. Bad JSON or an unrecognized type
// yields *MalformedEventError; the caller logs and discards the message
// without ending the session.
func DecodeEvent(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, &MalformedEventError{Raw: data, Err: err}
	}
	switch ev.Type {
	case EventStart, EventLog, EventProgress, EventComplete, EventError:
		return &ev, nil
	}
	return nil, &MalformedEventError{Raw: data, Err: fmt.Errorf("unrecognized event type %q", ev.Type)}
}

// GeneratePayload is the single outbound init message of a generate session.
type GeneratePayload struct {
	InputText  string           `json:"input_text"`
	Config     *workflow.Config `json:"config,omitempty"`
	Title      string           `json:"title,omitempty"`
	Difficulty string           `json:"difficulty"`
}

// AnalyzePayload is the single outbound init message of an analyze session.
type AnalyzePayload struct {
	InputText string `json:"input_text"`
}

// GenerateResult is the decoded terminal payload of a generate session.
type GenerateResult struct {
	RunID    string
	Course   *course.Course
	Report   *ValidationReport
	Markdown string
}

// ValidationReport summarizes the pipeline's structural checks on the
// generated course.
type ValidationReport struct {
	OK     bool              `json:"ok"`
	Issues []ValidationIssue `json:"issues"`
	Counts map[string]any    `json:"counts,omitempty"`
}

// ValidationIssue is one finding of the pipeline validator.
type ValidationIssue struct {
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

// GenerateResult decodes the course, report, and markdown from a generate
// session's complete event.
func (ev *Event) GenerateResult() (*GenerateResult, error) {
	if ev.Type != EventComplete {
		return nil, fmt.Errorf("result requested from %q event", ev.Type)
	}
	res := &GenerateResult{RunID: ev.RunID, Markdown: ev.Markdown}
	if len(ev.Course) > 0 {
		c, err := course.Decode(ev.Course)
		if err != nil {
			return nil, err
		}
		res.Course = c
	}
	if len(ev.Report) > 0 {
		var rep ValidationReport
		if err := json.Unmarshal(ev.Report, &rep); err != nil {
			return nil, fmt.Errorf("decode validation report: %w", err)
		}
		res.Report = &rep
	}
	return res, nil
}

// AnalyzeMetadata summarizes the analyzer's findings about the input text.
type AnalyzeMetadata struct {
	TotalParts               int     `json:"total_parts"`
	EstimatedQuestionsNeeded int     `json:"estimated_questions_needed"`
	CompletenessScore        float64 `json:"completeness_score"` // in [0,1]
}

// AnalyzeResult is the decoded terminal payload of an analyze session.
type AnalyzeResult struct {
	RecommendedConfig *workflow.Config `json:"recommended_config"`
	Metadata          AnalyzeMetadata  `json:"metadata"`
}

// AnalyzeResult decodes the recommended config and metadata from an analyze
// session's complete event.
func (ev *Event) AnalyzeResult() (*AnalyzeResult, error) {
	if ev.Type != EventComplete {
		return nil, fmt.Errorf("result requested from %q event", ev.Type)
	}
	var res AnalyzeResult
	if err := json.Unmarshal(ev.Result, &res); err != nil {
		return nil, fmt.Errorf("decode analyze result: %w", err)
	}
	return &res, nil
}
