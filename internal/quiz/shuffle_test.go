package quiz

import (
	"sort"
	"testing"

	"github.com/adidahl/techlingo-agent-framework/internal/course"
)

func TestSequenceDeterministic(t *testing.T) {
	a := NewSequence(42)
	b := NewSequence(42)
	for i := 0; i < 100; i++ {
		va, vb := a(), b()
		if va != vb {
			t.Fatalf("draw %d: %v != %v for the same seed", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d: %v out of [0,1)", i, va)
		}
	}
}

func TestSequenceIndependentStreams(t *testing.T) {
	// Interleaving two generators must not change either stream.
	a := NewSequence(7)
	b := NewSequence(99)
	var gotA, gotB []float64
	for i := 0; i < 10; i++ {
		gotA = append(gotA, a())
		gotB = append(gotB, b())
	}

	a2 := NewSequence(7)
	for i, want := range gotA {
		if got := a2(); got != want {
			t.Fatalf("stream a draw %d: %v != %v", i, got, want)
		}
	}
	b2 := NewSequence(99)
	for i, want := range gotB {
		if got := b2(); got != want {
			t.Fatalf("stream b draw %d: %v != %v", i, got, want)
		}
	}
}

func TestSequenceSeedsDiffer(t *testing.T) {
	a := NewSequence(1)
	b := NewSequence(2)
	same := 0
	for i := 0; i < 20; i++ {
		if a() == b() {
			same++
		}
	}
	if same == 20 {
		t.Error("seeds 1 and 2 produced identical 20-draw streams")
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}
	for seed := 0; seed < 50; seed++ {
		got := Shuffle(items, seed)
		if len(got) != len(items) {
			t.Fatalf("seed %d: len = %d", seed, len(got))
		}
		sorted := append([]string(nil), got...)
		sort.Strings(sorted)
		for i, want := range items {
			if sorted[i] != want {
				t.Fatalf("seed %d: not a permutation: %v", seed, got)
			}
		}
	}
}

func TestShuffleDeterministic(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	first := Shuffle(items, 1234)
	second := Shuffle(items, 1234)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed diverged at %d: %v vs %v", i, first, second)
		}
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	Shuffle(items, 9)
	for i, want := range []int{1, 2, 3, 4, 5} {
		if items[i] != want {
			t.Fatalf("input mutated: %v", items)
		}
	}
}

func TestChoiceViewsIDsFollowAuthoringOrder(t *testing.T) {
	options := []course.ChoiceOption{
		{Text: "alpha", IsCorrect: false},
		{Text: "beta", IsCorrect: true},
		{Text: "gamma", IsCorrect: false},
		{Text: "delta", IsCorrect: false},
	}

	views := ChoiceViews(options, 77)
	if len(views) != 4 {
		t.Fatalf("len = %d", len(views))
	}

	// Whatever the display order, id "1" must still be the correct option.
	for _, v := range views {
		want := v.ID == "1"
		if v.IsCorrect != want {
			t.Errorf("option id %s (%s): IsCorrect = %v", v.ID, v.Label, v.IsCorrect)
		}
	}

	// Same seed, same presentation order.
	again := ChoiceViews(options, 77)
	for i := range views {
		if views[i].ID != again[i].ID {
			t.Fatalf("seed 77 not stable: %v vs %v", views, again)
		}
	}
}
