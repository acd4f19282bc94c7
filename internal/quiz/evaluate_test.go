package quiz

import (
	"strings"
	"testing"

	"github.com/adidahl/techlingo-agent-framework/internal/course"
)

func boolPtr(b bool) *bool { return &b }

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Paris  ", "paris"},
		{"paris", "paris"},
		{"New   York", "new york"},
		{"\tNew\nYork ", "new york"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
		// Idempotence.
		if got := Normalize(Normalize(tt.in)); got != tt.want {
			t.Errorf("Normalize not idempotent for %q: %q", tt.in, got)
		}
	}
}

func choiceExercise(qt course.QuestionType) *course.Exercise {
	return &course.Exercise{
		Type: qt,
		Options: []course.ChoiceOption{
			{Text: "Router", IsCorrect: true, Rationale: "Operates at layer 3."},
			{Text: "Hub", IsCorrect: false, Feedback: &course.Feedback{
				Intrinsic:     "Traffic floods everywhere.",
				Instructional: "Hubs repeat frames blindly.",
			}},
			{Text: "Switch", IsCorrect: qt == course.MultiChoice},
			{Text: "Keyboard", IsCorrect: false},
		},
	}
}

func TestEvaluateSingleChoice(t *testing.T) {
	ex := choiceExercise(course.SingleChoice)
	opts := ChoiceViews(ex.Options, 5)

	if v := EvaluateSingleChoice(ex, "0", opts); !v.Correct {
		t.Errorf("selecting the correct id should pass: %+v", v)
	}

	v := EvaluateSingleChoice(ex, "1", opts)
	if v.Correct {
		t.Fatal("selecting Hub should fail")
	}
	joined := strings.Join(v.Lines, "\n")
	if !strings.Contains(joined, "Hubs repeat frames blindly.") {
		t.Errorf("missing selected option feedback: %q", joined)
	}
	if !strings.Contains(joined, "Correct answer: Router") {
		t.Errorf("missing correct answer line: %q", joined)
	}
}

func TestEvaluateSingleChoiceStableAcrossSeeds(t *testing.T) {
	// Ids are authoring positions, so the verdict for id "0" must not
	// depend on the presentation order.
	ex := choiceExercise(course.SingleChoice)
	for seed := 0; seed < 20; seed++ {
		opts := ChoiceViews(ex.Options, seed)
		if v := EvaluateSingleChoice(ex, "0", opts); !v.Correct {
			t.Fatalf("seed %d: id 0 judged incorrect", seed)
		}
	}
}

func TestEvaluateMultiChoice(t *testing.T) {
	ex := choiceExercise(course.MultiChoice)
	opts := ChoiceViews(ex.Options, 11)

	tests := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"exact set", []string{"0", "2"}, true},
		{"exact set reversed", []string{"2", "0"}, true},
		{"subset", []string{"0"}, false},
		{"superset", []string{"0", "2", "1"}, false},
		{"disjoint", []string{"1", "3"}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		v := EvaluateMultiChoice(ex, tt.selected, opts)
		if v.Correct != tt.want {
			t.Errorf("%s: Correct = %v, want %v", tt.name, v.Correct, tt.want)
		}
	}

	// Wrongly-included option's feedback wins over omissions.
	v := EvaluateMultiChoice(ex, []string{"0", "1"}, opts)
	joined := strings.Join(v.Lines, "\n")
	if !strings.Contains(joined, "Traffic floods everywhere.") {
		t.Errorf("missing wrongly-included feedback: %q", joined)
	}
	if !strings.Contains(joined, "Correct answers:") ||
		!strings.Contains(joined, "Router") || !strings.Contains(joined, "Switch") {
		t.Errorf("missing correct labels: %q", joined)
	}
}

func TestEvaluateTrueFalse(t *testing.T) {
	ex := &course.Exercise{
		Type:          course.TrueFalse,
		Statement:     "TCP guarantees ordered delivery.",
		CorrectAnswer: true,
		FeedbackForIncorrect: &course.Feedback{
			Instructional: "Ordering is a core TCP property.",
		},
	}

	if v := EvaluateTrueFalse(ex, boolPtr(true)); !v.Correct {
		t.Errorf("true should pass: %+v", v)
	}

	v := EvaluateTrueFalse(ex, boolPtr(false))
	if v.Correct {
		t.Fatal("false should fail")
	}
	joined := strings.Join(v.Lines, "\n")
	if !strings.Contains(joined, "Ordering is a core TCP property.") {
		t.Errorf("missing incorrect feedback: %q", joined)
	}
	if !strings.Contains(joined, "Correct answer: True") {
		t.Errorf("missing correct boolean: %q", joined)
	}

	if v := EvaluateTrueFalse(ex, nil); v.Correct {
		t.Error("nil answer must not pass")
	}
}

func TestEvaluateFillGaps(t *testing.T) {
	ex := &course.Exercise{
		Type: course.FillGaps,
		Parts: []course.GapPart{
			{Type: "text", Text: "The capital of France is "},
			{Type: "gap", AcceptedAnswers: []string{"Paris"}},
			{Type: "text", Text: " and the largest US city is "},
			{Type: "gap", AcceptedAnswers: []string{"New York", "NYC"}},
		},
	}

	tests := []struct {
		name    string
		answers []string
		want    bool
	}{
		{"exact", []string{"Paris", "New York"}, true},
		{"normalized", []string{"  paris ", "new   york"}, true},
		{"alternate accepted", []string{"Paris", "nyc"}, true},
		{"joined words differ", []string{"Paris", "newyork"}, false},
		{"one wrong", []string{"Lyon", "New York"}, false},
		{"missing trailing", []string{"Paris"}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		v := EvaluateFillGaps(ex, tt.answers)
		if v.Correct != tt.want {
			t.Errorf("%s: Correct = %v, want %v", tt.name, v.Correct, tt.want)
		}
	}

	// Wrong gaps echo the literal, non-normalized input.
	v := EvaluateFillGaps(ex, []string{"  Lyon ", "New York"})
	joined := strings.Join(v.Lines, "\n")
	if !strings.Contains(joined, "Gap 1: Paris (you:   Lyon )") {
		t.Errorf("missing literal echo: %q", joined)
	}
	if !strings.Contains(joined, "Gap 2: New York, NYC") {
		t.Errorf("missing accepted answers listing: %q", joined)
	}
}

func TestEvaluateRearrange(t *testing.T) {
	ex := &course.Exercise{
		Type:         course.Rearrange,
		WordBank:     []string{"SYN", "ACK", "SYN-ACK"},
		CorrectOrder: []string{"SYN", "SYN-ACK", "ACK"},
	}

	tests := []struct {
		name  string
		order []string
		want  bool
	}{
		{"exact", []string{"SYN", "SYN-ACK", "ACK"}, true},
		{"swapped", []string{"SYN-ACK", "SYN", "ACK"}, false},
		{"reversed", []string{"ACK", "SYN-ACK", "SYN"}, false},
		{"short", []string{"SYN", "SYN-ACK"}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		v := EvaluateRearrange(ex, tt.order)
		if v.Correct != tt.want {
			t.Errorf("%s: Correct = %v, want %v", tt.name, v.Correct, tt.want)
		}
	}

	v := EvaluateRearrange(ex, []string{"ACK", "SYN", "SYN-ACK"})
	if want := "Correct order: SYN | SYN-ACK | ACK"; len(v.Lines) == 0 || v.Lines[0] != want {
		t.Errorf("Lines = %v, want first line %q", v.Lines, want)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	ex := choiceExercise(course.SingleChoice)
	opts := ChoiceViews(ex.Options, 3)
	ans := Answer{SelectedID: "1"}
	first := Evaluate(ex, ans, opts)
	second := Evaluate(ex, ans, opts)
	if first.Correct != second.Correct || len(first.Lines) != len(second.Lines) {
		t.Errorf("repeat evaluation diverged: %+v vs %+v", first, second)
	}
}
