// Package quiz implements the interactive exercise engine: a deterministic
// option shuffler, per-variant answer evaluation, and the one-question-at-a-time
// session controller.
package quiz

// NewSequence returns a mulberry32 generator seeded with seed: an infinite
// sequence of float64 values in [0,1), fully determined by the seed. The
// server-side viewer uses the same generator, so option ordering agrees
// bit-for-bit across both for a given seed. Only 32-bit add/mul/xor/shift
// arithmetic is used.
func NewSequence(seed int) func() float64 {
	state := uint32(seed)
	return func() float64 {
		state += 0x6D2B79F5
		t := state
		t = (t ^ (t >> 15)) * (t | 1)
		t ^= t + (t^(t>>7))*(t|61)
		return float64(t^(t>>14)) / 4294967296.0
	}
}
