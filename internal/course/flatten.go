package course

// FlatExercise is one entry of the flattened quiz order: the exercise plus
// the module/lesson context it came from.
type FlatExercise struct {
	ModuleTitle string
	LessonTitle string
	SLO         string
	Exercise    *Exercise

	// Index is the position in the flattened order, used to derive the
	// per-question shuffle seed.
	Index int
}

// Flatten returns every exercise of the course in presentation order:
// module order, then lesson order, then exercise order.
func Flatten(c *Course) []FlatExercise {
	var flat []FlatExercise
	for mi := range c.Modules {
		m := &c.Modules[mi]
		for li := range m.Lessons {
			l := &m.Lessons[li]
			for ei := range l.Exercises {
				flat = append(flat, FlatExercise{
					ModuleTitle: m.Title,
					LessonTitle: l.Title,
					SLO:         l.SLO,
					Exercise:    &l.Exercises[ei],
					Index:       len(flat),
				})
			}
		}
	}
	return flat
}
