package course

import (
	"encoding/json"
	"fmt"
)

// exerciseJSON is the wire shape shared by all exercise variants. Decoding is
// two-pass: read the common envelope, then pick fields by question_type.
type exerciseJSON struct {
	QuestionType         QuestionType   `json:"question_type"`
	BloomsLevel          string         `json:"blooms_level"`
	Prompt               string         `json:"prompt"`
	FeedbackForCorrect   string         `json:"feedback_for_correct,omitempty"`
	Options              []ChoiceOption `json:"options,omitempty"`
	Statement            string         `json:"statement,omitempty"`
	CorrectAnswer        bool           `json:"correct_answer,omitempty"`
	FeedbackForIncorrect *Feedback      `json:"feedback_for_incorrect,omitempty"`
	Parts                []GapPart      `json:"parts,omitempty"`
	WordBank             []string       `json:"word_bank,omitempty"`
	CorrectOrder         []string       `json:"correct_order,omitempty"`
}

// UnmarshalJSON decodes the tagged exercise union. Unknown question_type
// values are rejected so a document from a newer pipeline fails loudly
// instead of producing a half-empty exercise.
func (e *Exercise) UnmarshalJSON(data []byte) error {
	var raw exerciseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Exercise{
		Type:               raw.QuestionType,
		BloomsLevel:        raw.BloomsLevel,
		Prompt:             raw.Prompt,
		FeedbackForCorrect: raw.FeedbackForCorrect,
	}

	switch raw.QuestionType {
	case SingleChoice, MultiChoice:
		out.Options = raw.Options
	case TrueFalse:
		out.Statement = raw.Statement
		out.CorrectAnswer = raw.CorrectAnswer
		out.FeedbackForIncorrect = raw.FeedbackForIncorrect
	case FillGaps:
		out.Parts = raw.Parts
	case Rearrange:
		out.WordBank = raw.WordBank
		out.CorrectOrder = raw.CorrectOrder
	default:
		return fmt.Errorf("unknown question_type %q", raw.QuestionType)
	}

	*e = out
	return nil
}

// MarshalJSON emits the same wire shape the pipeline produces.
func (e Exercise) MarshalJSON() ([]byte, error) {
	raw := exerciseJSON{
		QuestionType:       e.Type,
		BloomsLevel:        e.BloomsLevel,
		Prompt:             e.Prompt,
		FeedbackForCorrect: e.FeedbackForCorrect,
	}

	switch e.Type {
	case SingleChoice, MultiChoice:
		raw.Options = e.Options
	case TrueFalse:
		raw.Statement = e.Statement
		raw.CorrectAnswer = e.CorrectAnswer
		raw.FeedbackForIncorrect = e.FeedbackForIncorrect
	case FillGaps:
		raw.Parts = e.Parts
	case Rearrange:
		raw.WordBank = e.WordBank
		raw.CorrectOrder = e.CorrectOrder
	default:
		return nil, fmt.Errorf("unknown question_type %q", e.Type)
	}

	return json.Marshal(raw)
}

// UnmarshalJSON accepts either the structured feedback object or the legacy
// bare-string form, which maps to the instructional line.
func (f *Feedback) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Feedback{Instructional: s}
		return nil
	}

	type plain Feedback
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*f = Feedback(p)
	return nil
}

// Decode parses a full course document.
func Decode(data []byte) (*Course, error) {
	var c Course
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode course: %w", err)
	}
	return &c, nil
}
