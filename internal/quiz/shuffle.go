package quiz

import (
	"strconv"

	"github.com/adidahl/techlingo-agent-framework/internal/course"
)

// Shuffle returns a seed-determined permutation of items using a Fisher–Yates
// walk over a fresh mulberry32 sequence. The input slice is not mutated;
// calling again with the same (items, seed) yields the same permutation.
func Shuffle[T any](items []T, seed int) []T {
	rng := NewSequence(seed)
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := int(rng() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ChoiceView is a choice option prepared for display. ID is the stringified
// authoring position, assigned before shuffling, so correctness lookups and
// stored answers stay stable no matter how the options are presented.
type ChoiceView struct {
	ID        string
	Label     string
	IsCorrect bool
	Feedback  *course.Feedback
	Rationale string
}

// ChoiceViews wraps options with authoring-position ids and returns them in
// the shuffled presentation order for seed.
func ChoiceViews(options []course.ChoiceOption, seed int) []ChoiceView {
	views := make([]ChoiceView, len(options))
	for i, o := range options {
		views[i] = ChoiceView{
			ID:        strconv.Itoa(i),
			Label:     o.Text,
			IsCorrect: o.IsCorrect,
			Feedback:  o.Feedback,
			Rationale: o.Rationale,
		}
	}
	return Shuffle(views, seed)
}
