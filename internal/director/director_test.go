package director

import (
	"path/filepath"
	"testing"

	"github.com/ivlev/scrollfx/internal/config"
)

func TestDirector(t *testing.T) {
	director := NewDirector(1280, 720)

	scenario, err := director.GenerateScenario(StopsFor(config.DefaultScene()), "frames", 10.0)
	if err != nil {
		t.Fatalf("GenerateScenario failed: %v", err)
	}
	if err := scenario.Validate(); err != nil {
		t.Fatalf("generated scenario invalid: %v", err)
	}

	if scenario.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", scenario.Version)
	}
	if scenario.Duration != 10.0 {
		t.Errorf("Expected duration 10.0, got %f", scenario.Duration)
	}

	// top + 4 stops (arrive and hold) + bottom
	if got := len(scenario.Keyframes); got != 10 {
		t.Fatalf("Expected 10 keyframes, got %d", got)
	}
	first, last := scenario.Keyframes[0], scenario.Keyframes[len(scenario.Keyframes)-1]
	if first.Progress != 0 || last.Progress != 1 {
		t.Errorf("path should run from 0 to 1, got %v..%v", first.Progress, last.Progress)
	}
	if scenario.Keyframes[1].Focus != "reveal_start" {
		t.Errorf("first stop = %s, want reveal_start", scenario.Keyframes[1].Focus)
	}

	if got := len(scenario.Gestures); got != 12 {
		t.Errorf("Expected 12 gesture events, got %d", got)
	}

	for i, kf := range scenario.Keyframes {
		t.Logf("Keyframe %d: time=%.2fs, focus=%s, progress=%.2f", i, kf.Time, kf.Focus, kf.Progress)
	}
}

func TestDirectorRejectsEmpty(t *testing.T) {
	d := NewDirector(1280, 720)
	if _, err := d.GenerateScenario(nil, "", 10); err == nil {
		t.Error("expected error without stops")
	}
	if _, err := d.GenerateScenario([]Stop{{Progress: 0.5}}, "", 0); err == nil {
		t.Error("expected error for zero duration")
	}
}

func TestSortStopsDropsDuplicates(t *testing.T) {
	got := sortStops([]Stop{{Progress: 0.6}, {Progress: 0.1}, {Progress: 0.6}})
	if len(got) != 2 || got[0].Progress != 0.1 {
		t.Errorf("sortStops = %+v", got)
	}
}

func TestDragGesture(t *testing.T) {
	g := DragGesture(2, 1, 100, 0, 4)
	if len(g) != 6 {
		t.Fatalf("len = %d, want 6", len(g))
	}
	if g[0].Action != PointerDown || g[len(g)-1].Action != PointerUp {
		t.Errorf("gesture should start with down and end with up: %+v", g)
	}
	if g[2].X != 50 {
		t.Errorf("midpoint x = %v, want 50", g[2].X)
	}
}

func TestScenarioValidate(t *testing.T) {
	bad := &Scenario{
		Duration: 5,
		Keyframes: []Keyframe{
			{Time: 1, Progress: 0.5},
			{Time: 0.5, Progress: 1.5},
		},
		Gestures: []Gesture{{Time: 0, Action: "tap"}},
	}
	err := bad.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	t.Logf("validation: %v", err)
}

func TestScenarioWriteRead(t *testing.T) {
	scenario := &Scenario{
		Version:  "1.0",
		Duration: 5.0,
		Keyframes: []Keyframe{
			{Time: 0.0, Progress: 0, Focus: "top"},
			{Time: 2.5, Progress: 0.6, Focus: "peak"},
		},
		Gestures: DragGesture(1, 0.5, 300, 100, 2),
	}

	tmpFile := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := WriteScenario(scenario, tmpFile); err != nil {
		t.Fatalf("WriteScenario failed: %v", err)
	}

	readScenario, err := ReadScenario(tmpFile)
	if err != nil {
		t.Fatalf("ReadScenario failed: %v", err)
	}
	if readScenario.Version != scenario.Version {
		t.Errorf("Version mismatch: expected %s, got %s", scenario.Version, readScenario.Version)
	}
	if len(readScenario.Gestures) != len(scenario.Gestures) {
		t.Errorf("Gesture count mismatch: expected %d, got %d", len(scenario.Gestures), len(readScenario.Gestures))
	}
}
