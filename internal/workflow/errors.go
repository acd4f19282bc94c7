package workflow

import "fmt"

// MalformedConfigError indicates the config text is not a valid workflow
// config document at all: broken JSON or a shape the schema rejects.
type MalformedConfigError struct {
	Err error
}

func (e *MalformedConfigError) Error() string {
	return fmt.Sprintf("malformed workflow config: %v", e.Err)
}

func (e *MalformedConfigError) Unwrap() error { return e.Err }

// ConfigValidationError indicates a structurally valid config whose
// distribution sums disagree with exercises_per_lesson. Field names the
// offending distribution.
type ConfigValidationError struct {
	Field    string
	Sum      int
	Expected int
}

func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf("%s sums to %d, but exercises_per_lesson is %d", e.Field, e.Sum, e.Expected)
}
