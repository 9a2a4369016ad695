package progress

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidWindow is returned when a window is empty, inverted or out of range.
var ErrInvalidWindow = errors.New("invalid animation window")

// Clamp maps any value into [0, 1]. NaN becomes 0.
func Clamp(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Ratio returns scrolled/distance clamped to [0, 1].
// A non-positive distance means there is nothing to scroll through, so progress stays at 0.
func Ratio(scrolled, distance float64) float64 {
	if distance <= 0 {
		return 0
	}
	return Clamp(scrolled / distance)
}

// FromPercent converts a [0, 100] value into a [0, 1] progress.
func FromPercent(percent float64) float64 {
	return percent / 100
}

// ToPercent converts a [0, 1] progress into [0, 100].
func ToPercent(p float64) float64 {
	return p * 100
}

// Window delimits where an effect ramps.
type Window struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// Validate checks start < end with both bounds in [0, 1].
func (w Window) Validate() error {
	if w.Start < 0 || w.End > 1 || !(w.Start < w.End) {
		return fmt.Errorf("%w: start=%v end=%v", ErrInvalidWindow, w.Start, w.End)
	}
	return nil
}

// Contains reports whether p falls in [Start, End).
func (w Window) Contains(p float64) bool {
	return p >= w.Start && p < w.End
}

// Local returns the window-relative progress of p, clamped to [0, 1].
func (w Window) Local(p float64) float64 {
	span := w.End - w.Start
	if span <= 0 {
		if p >= w.End {
			return 1
		}
		return 0
	}
	return Clamp((p - w.Start) / span)
}
