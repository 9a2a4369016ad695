package director

import (
	"errors"
	"fmt"

	"github.com/ivlev/scrollfx/internal/progress"
)

// Scenario is a scripted scroll session: where the page is over time and
// what the pointer does on the carousel.
type Scenario struct {
	Version   string     `yaml:"version"`
	Input     string     `yaml:"input,omitempty"`
	Duration  float64    `yaml:"duration"` // seconds
	Keyframes []Keyframe `yaml:"keyframes"`
	Gestures  []Gesture  `yaml:"gestures,omitempty"`
}

// Keyframe pins the section progress at a moment of the session.
type Keyframe struct {
	Time     float64 `yaml:"time"`     // seconds
	Progress float64 `yaml:"progress"` // [0, 1]
	Focus    string  `yaml:"focus,omitempty"`
}

// Action is a pointer event kind.
type Action string

const (
	PointerDown  Action = "down"
	PointerMove  Action = "move"
	PointerUp    Action = "up"
	PointerLeave Action = "leave"
)

// Gesture is one pointer event over the carousel.
type Gesture struct {
	Time   float64 `yaml:"time"`
	Action Action  `yaml:"action"`
	X      float64 `yaml:"x"`
}

// Validate checks ordering and ranges.
func (s *Scenario) Validate() error {
	var errs []error
	if s.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration must be > 0, got %v", s.Duration))
	}
	if len(s.Keyframes) == 0 {
		errs = append(errs, errors.New("scenario has no keyframes"))
	}
	for i, kf := range s.Keyframes {
		if kf.Progress != progress.Clamp(kf.Progress) {
			errs = append(errs, fmt.Errorf("keyframe %d: progress %v outside [0, 1]", i, kf.Progress))
		}
		if i > 0 && kf.Time < s.Keyframes[i-1].Time {
			errs = append(errs, fmt.Errorf("keyframe %d: time %v before previous %v", i, kf.Time, s.Keyframes[i-1].Time))
		}
	}
	for i, g := range s.Gestures {
		switch g.Action {
		case PointerDown, PointerMove, PointerUp, PointerLeave:
		default:
			errs = append(errs, fmt.Errorf("gesture %d: unknown action %q", i, g.Action))
		}
		if i > 0 && g.Time < s.Gestures[i-1].Time {
			errs = append(errs, fmt.Errorf("gesture %d: time %v before previous %v", i, g.Time, s.Gestures[i-1].Time))
		}
	}
	return errors.Join(errs...)
}
