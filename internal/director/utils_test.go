package director

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestScenarioPath(t *testing.T) {
	now := time.Date(2026, 2, 13, 1, 0, 0, 0, time.UTC)
	path := ScenarioPath("scenarios", now)
	if filepath.Base(path) != "scenario_2026-02-13_01-00-00.yaml" {
		t.Errorf("unexpected path: %s", path)
	}
	t.Logf("Generated path: %s", path)
}

func TestFindLatestScenario(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "scenario_2026-02-12_10-00-00.yaml"),
		filepath.Join(dir, "scenario_2026-02-13_01-00-00.yaml"),
		filepath.Join(dir, "scenario_2026-02-11_15-30-00.yaml"),
	}
	for i, f := range files {
		if err := os.WriteFile(f, []byte("test"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		if err := os.Chtimes(f, modTime, modTime); err != nil {
			t.Fatal(err)
		}
	}

	latest, err := FindLatestScenario(dir)
	if err != nil {
		t.Fatalf("FindLatestScenario failed: %v", err)
	}
	t.Logf("Latest scenario: %s", latest)
	if latest != files[len(files)-1] {
		t.Errorf("Expected latest to be %s, got %s", files[len(files)-1], latest)
	}
}

func TestFindLatestScenarioEmpty(t *testing.T) {
	_, err := FindLatestScenario(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "no scenario files") {
		t.Errorf("unexpected error: %v", err)
	}
}
