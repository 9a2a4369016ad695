// Package easing maps a [0, 1] input onto shaped animation curves.
// Every function clamps its input first, so none of them extrapolate.
package easing

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ivlev/scrollfx/internal/progress"
)

// ErrUnknown is returned by ByName for unregistered curve names.
var ErrUnknown = errors.New("unknown easing")

// Func is an easing curve.
type Func func(t float64) float64

// Linear returns the clamped input.
func Linear(t float64) float64 {
	return progress.Clamp(t)
}

// OutSine decelerates towards the end: sin(t*pi/2).
func OutSine(t float64) float64 {
	return math.Sin(progress.Clamp(t) * math.Pi / 2)
}

// InOutSine is symmetric around 0.5: (1 - cos(pi*t)) / 2.
func InOutSine(t float64) float64 {
	return (1 - math.Cos(math.Pi*progress.Clamp(t))) / 2
}

// InOutCubic applies smooth cubic easing
func InOutCubic(t float64) float64 {
	t = progress.Clamp(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Peak is a bump function t^s * (1-t)^s normalised so that its value at At is 1.
type Peak struct {
	At        float64
	Sharpness float64
}

// DefaultPeak peaks at 0.6 with sharpness 2.5.
var DefaultPeak = Peak{At: 0.6, Sharpness: 2.5}

// Apply evaluates the bump. It returns 0 at both ends and 1 at p.At.
func (p Peak) Apply(t float64) float64 {
	t = progress.Clamp(t)
	if t == p.At {
		return 1
	}
	norm := math.Pow(p.At*(1-p.At), p.Sharpness)
	if norm == 0 {
		return 0
	}
	return math.Pow(t*(1-t), p.Sharpness) / norm
}

// InOutPeak is DefaultPeak.Apply.
func InOutPeak(t float64) float64 {
	return DefaultPeak.Apply(t)
}

// Lerp interpolates between a and b: a(1-t) + bt. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

var registry = map[string]Func{
	"linear":       Linear,
	"none":         Linear,
	"out-sine":     OutSine,
	"in-out-sine":  InOutSine,
	"in-out-peak":  InOutPeak,
	"in-out-cubic": InOutCubic,
}

// ByName resolves a curve by the name used in scene files.
// An empty name resolves to Linear.
func ByName(name string) (Func, error) {
	if name == "" {
		return Linear, nil
	}
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return fn, nil
}

// Names lists registered curve names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
