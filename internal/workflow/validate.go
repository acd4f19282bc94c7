package workflow

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// configSchema is the structural contract for a workflow config document.
// Arithmetic invariants (distribution sums) are checked separately by
// Validate; the schema only rejects documents that are the wrong shape.
var configSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"difficulty":            map[string]any{"type": "string"},
		"modules_count":         map[string]any{"type": "integer", "minimum": 1},
		"min_lessons_total":     map[string]any{"type": "integer", "minimum": 1},
		"max_lessons_total":     map[string]any{"type": "integer", "minimum": 1},
		"exercises_per_lesson":  map[string]any{"type": "integer", "minimum": 1},
		"flashcards_per_lesson": map[string]any{"type": "integer", "minimum": 0},
		"blooms_distribution": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "integer", "minimum": 0},
		},
		"question_type_distribution": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "integer", "minimum": 0},
		},
	},
	"required": []any{"exercises_per_lesson", "blooms_distribution", "question_type_distribution"},
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiledConfigSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		const schemaURL = "schema://workflow_config.json"
		if err := c.AddResource(schemaURL, configSchema); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Parse decodes and fully validates a workflow config document. It returns
// *MalformedConfigError when the text is not valid JSON or fails the schema,
// and *ConfigValidationError when a distribution sum is off. Runs before a
// generation session is started, never on partial data.
func Parse(data []byte) (*Config, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &MalformedConfigError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := compiledConfigSchema()
	if err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &MalformedConfigError{Err: err}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &MalformedConfigError{Err: err}
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the arithmetic invariants: each distribution's values must
// sum to exercises_per_lesson.
func Validate(cfg *Config) error {
	if sum := sumValues(cfg.BloomsDistribution); sum != cfg.ExercisesPerLesson {
		return &ConfigValidationError{
			Field:    "blooms_distribution",
			Sum:      sum,
			Expected: cfg.ExercisesPerLesson,
		}
	}
	if sum := sumValues(cfg.QuestionTypeDistribution); sum != cfg.ExercisesPerLesson {
		return &ConfigValidationError{
			Field:    "question_type_distribution",
			Sum:      sum,
			Expected: cfg.ExercisesPerLesson,
		}
	}
	return nil
}

func sumValues(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}
