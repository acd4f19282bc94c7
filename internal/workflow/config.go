// Package workflow defines the user-editable workflow configuration document
// submitted with a generation session, and validates it before the session
// starts.
package workflow

// Config constrains the remote course-generation pipeline: curriculum shape
// plus per-lesson exercise distributions.
type Config struct {
	Difficulty          string `json:"difficulty,omitempty"`
	ModulesCount        int    `json:"modules_count"`
	MinLessonsTotal     int    `json:"min_lessons_total"`
	MaxLessonsTotal     int    `json:"max_lessons_total"`
	ExercisesPerLesson  int    `json:"exercises_per_lesson"`
	FlashcardsPerLesson int    `json:"flashcards_per_lesson"`

	// BloomsDistribution maps Bloom's level names to exercise counts per
	// lesson; values must sum to ExercisesPerLesson.
	BloomsDistribution map[string]int `json:"blooms_distribution"`

	// QuestionTypeDistribution maps question_type tags to exercise counts
	// per lesson; values must sum to ExercisesPerLesson.
	QuestionTypeDistribution map[string]int `json:"question_type_distribution"`
}

// Default returns the quick-start template: a single module with one of each
// question type per lesson.
func Default() Config {
	return Config{
		Difficulty:          "beginner",
		ModulesCount:        1,
		MinLessonsTotal:     1,
		MaxLessonsTotal:     1,
		ExercisesPerLesson:  5,
		FlashcardsPerLesson: 3,
		BloomsDistribution: map[string]int{
			"Remembering":          2,
			"Understanding":        1,
			"Applying":             1,
			"Analyzing/Evaluating": 1,
		},
		QuestionTypeDistribution: map[string]int{
			"single_choice": 1,
			"multi_choice":  1,
			"true_false":    1,
			"fill_gaps":     1,
			"rearrange":     1,
		},
	}
}

// PipelineDefault returns the full-course preset the pipeline itself falls
// back to when a session carries no config.
func PipelineDefault() Config {
	return Config{
		Difficulty:          "beginner",
		ModulesCount:        6,
		MinLessonsTotal:     20,
		MaxLessonsTotal:     25,
		ExercisesPerLesson:  8,
		FlashcardsPerLesson: 8,
		BloomsDistribution: map[string]int{
			"Remembering":          2,
			"Understanding":        2,
			"Applying":             2,
			"Analyzing/Evaluating": 2,
		},
		QuestionTypeDistribution: map[string]int{
			"single_choice": 1,
			"multi_choice":  2,
			"true_false":    2,
			"fill_gaps":     2,
			"rearrange":     1,
		},
	}
}
