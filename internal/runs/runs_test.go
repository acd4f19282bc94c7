package runs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const minimalCourse = `{
	"title": "Intro to Soil Science",
	"modules": [
		{
			"title": "Basics",
			"lessons": [
				{
					"title": "What is soil",
					"slo": "Define soil",
					"exercises": [],
					"flashcards": []
				}
			]
		}
	]
}`

func writeRun(t *testing.T, outputs, id string, mtime time.Time, withCourse bool) {
	t.Helper()
	dir := filepath.Join(outputs, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if withCourse {
		if err := os.WriteFile(filepath.Join(dir, "course.json"), []byte(minimalCourse), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Chtimes(dir, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestListNewestFirst(t *testing.T) {
	outputs := t.TempDir()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	writeRun(t, outputs, "run-a", base, true)
	writeRun(t, outputs, "run-c", base.Add(2*time.Hour), true)
	writeRun(t, outputs, "run-b", base.Add(time.Hour), false)

	// Non-run entries are ignored.
	if err := os.MkdirAll(filepath.Join(outputs, "scratch"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outputs, "run-stray.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := List(outputs)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantOrder := []string{"run-c", "run-b", "run-a"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("runs[%d] = %s, want %s", i, got[i].ID, want)
		}
	}
	if !got[0].HasCourse() || got[1].HasCourse() {
		t.Error("HasCourse mismatch")
	}
}

func TestListMissingOutputsDir(t *testing.T) {
	got, err := List(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestLoadCourse(t *testing.T) {
	outputs := t.TempDir()
	writeRun(t, outputs, "run-x", time.Now(), true)

	all, err := List(outputs)
	if err != nil || len(all) != 1 {
		t.Fatalf("List: %v (%d runs)", err, len(all))
	}

	c, err := LoadCourse(all[0])
	if err != nil {
		t.Fatalf("LoadCourse: %v", err)
	}
	if c.Title != "Intro to Soil Science" || len(c.Modules) != 1 {
		t.Errorf("course = %+v", c)
	}
}

func TestLoadCourseMissing(t *testing.T) {
	outputs := t.TempDir()
	writeRun(t, outputs, "run-empty", time.Now(), false)

	all, _ := List(outputs)
	if _, err := LoadCourse(all[0]); err == nil {
		t.Fatal("expected error for run without course.json")
	}
}

func TestArtifacts(t *testing.T) {
	outputs := t.TempDir()
	writeRun(t, outputs, "run-y", time.Now(), true)
	artDir := filepath.Join(outputs, "run-y", "artifacts")
	if err := os.MkdirAll(artDir, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"text_reviewer.json": `{"pass": 2}`,
		"text_analyzer.json": `{"parts": 9}`,
		"notes.txt":          "ignored",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(artDir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	all, _ := List(outputs)
	arts, err := Artifacts(all[0])
	if err != nil {
		t.Fatalf("Artifacts: %v", err)
	}
	if len(arts) != 2 {
		t.Fatalf("len = %d, want 2", len(arts))
	}
	if arts[0].Name != "text_analyzer.json" || arts[1].Name != "text_reviewer.json" {
		t.Errorf("order = %s, %s", arts[0].Name, arts[1].Name)
	}

	body, err := ArtifactContent(arts[0])
	if err != nil {
		t.Fatalf("ArtifactContent: %v", err)
	}
	if string(body) != `{"parts": 9}` {
		t.Errorf("content = %q", body)
	}
}

func TestArtifactsNoDir(t *testing.T) {
	outputs := t.TempDir()
	writeRun(t, outputs, "run-z", time.Now(), true)

	all, _ := List(outputs)
	arts, err := Artifacts(all[0])
	if err != nil {
		t.Fatalf("Artifacts: %v", err)
	}
	if len(arts) != 0 {
		t.Fatalf("len = %d, want 0", len(arts))
	}
}
