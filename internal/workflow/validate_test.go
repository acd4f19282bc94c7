package workflow

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseAcceptsBalancedConfig(t *testing.T) {
	doc := `{
		"exercises_per_lesson": 5,
		"blooms_distribution": {"a": 3, "b": 2},
		"question_type_distribution": {"x": 5}
	}`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.ExercisesPerLesson != 5 {
		t.Errorf("ExercisesPerLesson = %d", cfg.ExercisesPerLesson)
	}
}

func TestParseRejectsBloomsSumMismatch(t *testing.T) {
	doc := `{
		"exercises_per_lesson": 5,
		"blooms_distribution": {"a": 2, "b": 2},
		"question_type_distribution": {"x": 5}
	}`
	_, err := Parse([]byte(doc))

	var vErr *ConfigValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ConfigValidationError", err)
	}
	if vErr.Field != "blooms_distribution" || vErr.Sum != 4 || vErr.Expected != 5 {
		t.Errorf("error fields: %+v", vErr)
	}
	if !strings.Contains(vErr.Error(), "blooms_distribution") {
		t.Errorf("message does not name the sum: %q", vErr.Error())
	}
}

func TestParseRejectsQuestionTypeSumMismatch(t *testing.T) {
	doc := `{
		"exercises_per_lesson": 5,
		"blooms_distribution": {"a": 5},
		"question_type_distribution": {"x": 2, "y": 2}
	}`
	_, err := Parse([]byte(doc))

	var vErr *ConfigValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ConfigValidationError", err)
	}
	if vErr.Field != "question_type_distribution" {
		t.Errorf("Field = %q", vErr.Field)
	}
}

func TestParseRejectsBrokenJSON(t *testing.T) {
	_, err := Parse([]byte(`{"exercises_per_lesson": `))
	var mErr *MalformedConfigError
	if !errors.As(err, &mErr) {
		t.Fatalf("err = %v, want MalformedConfigError", err)
	}
}

func TestParseRejectsWrongShape(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"string count", `{"exercises_per_lesson": "five", "blooms_distribution": {}, "question_type_distribution": {}}`},
		{"missing distributions", `{"exercises_per_lesson": 5}`},
		{"non-integer distribution value", `{"exercises_per_lesson": 5, "blooms_distribution": {"a": "three"}, "question_type_distribution": {"x": 5}}`},
		{"array document", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.doc))
		var mErr *MalformedConfigError
		if !errors.As(err, &mErr) {
			t.Errorf("%s: err = %v, want MalformedConfigError", tt.name, err)
		}
	}
}

func TestDefaultsAreValid(t *testing.T) {
	for _, cfg := range []Config{Default(), PipelineDefault()} {
		if err := Validate(&cfg); err != nil {
			t.Errorf("preset invalid: %v", err)
		}
		// Presets must round-trip through Parse unchanged.
		data, err := json.Marshal(cfg)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if _, err := Parse(data); err != nil {
			t.Errorf("preset fails Parse: %v", err)
		}
	}
}
