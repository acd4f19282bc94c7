// Package runs reads the output directories the generation service writes,
// one run-* directory per session, each holding the final course.json plus
// the intermediate artifacts of the pipeline.
package runs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adidahl/techlingo-agent-framework/internal/course"
)

// Run is one generation run directory.
type Run struct {
	ID      string // directory name, e.g. run-20260829-101500
	Dir     string // absolute or outputs-relative path
	ModTime time.Time
}

// HasCourse reports whether the run produced a final course.json.
func (r Run) HasCourse() bool {
	_, err := os.Stat(filepath.Join(r.Dir, "course.json"))
	return err == nil
}

// List returns the run-* directories under outputsDir, newest first. A
// missing outputs directory is an empty list, not an error; the service
// creates it lazily on the first run.
func List(outputsDir string) ([]Run, error) {
	entries, err := os.ReadDir(outputsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read outputs dir: %w", err)
	}

	var runs []Run
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "run-") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		runs = append(runs, Run{
			ID:      entry.Name(),
			Dir:     filepath.Join(outputsDir, entry.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].ModTime.Equal(runs[j].ModTime) {
			return runs[i].ModTime.After(runs[j].ModTime)
		}
		return runs[i].ID > runs[j].ID
	})
	return runs, nil
}

// LoadCourse reads and decodes the run's final course.json.
func LoadCourse(r Run) (*course.Course, error) {
	data, err := os.ReadFile(filepath.Join(r.Dir, "course.json"))
	if err != nil {
		return nil, fmt.Errorf("read course.json for %s: %w", r.ID, err)
	}
	c, err := course.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode course.json for %s: %w", r.ID, err)
	}
	return c, nil
}

// Artifact is one intermediate pipeline output within a run.
type Artifact struct {
	Name string // file name, e.g. text_analyzer.json
	Path string
	Size int64
}

// Artifacts lists the run's artifacts/*.json files in name order. A run
// without an artifacts directory has none.
func Artifacts(r Run) ([]Artifact, error) {
	dir := filepath.Join(r.Dir, "artifacts")
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read artifacts for %s: %w", r.ID, err)
	}

	var arts []Artifact
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		arts = append(arts, Artifact{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(arts, func(i, j int) bool { return arts[i].Name < arts[j].Name })
	return arts, nil
}

// ArtifactContent returns the artifact's bytes verbatim. Artifacts are shown
// as the pipeline wrote them, without reformatting.
func ArtifactContent(a Artifact) ([]byte, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", a.Name, err)
	}
	return data, nil
}
