package director

import (
	"fmt"
	"sort"

	"github.com/ivlev/scrollfx/internal/config"
	"github.com/ivlev/scrollfx/internal/easing"
)

// Stop is a progress value the camera lingers on.
type Stop struct {
	Progress float64
	Focus    string
}

// Director generates scroll path scenarios from the interesting points of a
// scene.
type Director struct {
	ViewportWidth  int
	ViewportHeight int
	MinDwell       float64 // Minimum time per stop (seconds)
	MaxDwell       float64 // Maximum time per stop (seconds)
	Hold           float64 // share of the dwell spent standing still
	Drag           bool    // add a drag gesture across the carousel
}

// NewDirector creates a new Director with default settings
func NewDirector(viewportWidth, viewportHeight int) *Director {
	return &Director{
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		MinDwell:       1.0,
		MaxDwell:       3.0,
		Hold:           0.4,
		Drag:           true,
	}
}

// StopsFor returns the points where the scene changes character: activation,
// the reveal window bounds and the peak of the bump curve.
func StopsFor(scene *config.Scene) []Stop {
	return []Stop{
		{Progress: scene.Activation.Threshold, Focus: "activation"},
		{Progress: scene.Geometry.AnimationStart, Focus: "reveal_start"},
		{Progress: easing.DefaultPeak.At, Focus: "peak"},
		{Progress: scene.Geometry.AnimationEnd, Focus: "reveal_end"},
	}
}

// GenerateScenario scrolls from the top through every stop to the bottom.
func (d *Director) GenerateScenario(stops []Stop, input string, totalDuration float64) (*Scenario, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("no stops to visit")
	}
	if totalDuration <= 0 {
		return nil, fmt.Errorf("duration must be > 0, got %v", totalDuration)
	}

	sorted := sortStops(stops)
	dwell := d.calculateDwellTime(totalDuration, len(sorted))
	keyframes := d.generateKeyframes(sorted, dwell)

	duration := totalDuration
	if end := keyframes[len(keyframes)-1].Time + 1; end > duration {
		duration = end
	}

	scenario := &Scenario{
		Version:   "1.0",
		Input:     input,
		Duration:  duration,
		Keyframes: keyframes,
	}
	if d.Drag && d.ViewportWidth > 0 {
		w := float64(d.ViewportWidth)
		scenario.Gestures = DragGesture(duration/2, 0.5, w*0.7, w*0.3, 10)
	}
	return scenario, nil
}

// sortStops orders stops by progress and drops duplicates.
func sortStops(stops []Stop) []Stop {
	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Progress < sorted[j].Progress
	})

	out := sorted[:0]
	for _, s := range sorted {
		if len(out) > 0 && out[len(out)-1].Progress == s.Progress {
			continue
		}
		out = append(out, s)
	}
	return out
}

// calculateDwellTime determines how long to spend on each stop
func (d *Director) calculateDwellTime(totalDuration float64, stopCount int) float64 {
	// 1s at the top + 1s at the bottom
	available := totalDuration - 2.0
	if available <= 0 {
		available = totalDuration
	}

	dwell := available / float64(stopCount+1)
	if dwell < d.MinDwell {
		dwell = d.MinDwell
	}
	if dwell > d.MaxDwell {
		dwell = d.MaxDwell
	}
	return dwell
}

func (d *Director) generateKeyframes(stops []Stop, dwell float64) []Keyframe {
	keyframes := []Keyframe{{Time: 0, Progress: 0, Focus: "top"}}

	current := 1.0
	for _, s := range stops {
		keyframes = append(keyframes, Keyframe{Time: current, Progress: s.Progress, Focus: s.Focus})
		if d.Hold > 0 {
			keyframes = append(keyframes, Keyframe{Time: current + dwell*d.Hold, Progress: s.Progress, Focus: s.Focus})
		}
		current += dwell
	}

	keyframes = append(keyframes, Keyframe{Time: current, Progress: 1, Focus: "bottom"})
	return keyframes
}

// DragGesture presses at from, moves to to in steps and releases.
func DragGesture(start, duration, from, to float64, steps int) []Gesture {
	if steps < 1 {
		steps = 1
	}
	gestures := []Gesture{{Time: start, Action: PointerDown, X: from}}
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		gestures = append(gestures, Gesture{
			Time:   start + duration*f,
			Action: PointerMove,
			X:      easing.Lerp(from, to, f),
		})
	}
	gestures = append(gestures, Gesture{Time: start + duration, Action: PointerUp, X: to})
	return gestures
}
