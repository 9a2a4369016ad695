package timeline

import (
	"fmt"
	"sort"

	"github.com/ivlev/scrollfx/internal/easing"
	"github.com/ivlev/scrollfx/internal/progress"
)

// Transform is the animated state of one element.
type Transform struct {
	XPercent float64 `yaml:"x_percent"`
	YPercent float64 `yaml:"y_percent"`
	Opacity  float64 `yaml:"opacity"`
}

// Lerp interpolates every field.
func (a Transform) Lerp(b Transform, t float64) Transform {
	return Transform{
		XPercent: easing.Lerp(a.XPercent, b.XPercent, t),
		YPercent: easing.Lerp(a.YPercent, b.YPercent, t),
		Opacity:  easing.Lerp(a.Opacity, b.Opacity, t),
	}
}

// Keyframe pins a transform at a progress value.
type Keyframe struct {
	At    float64     `yaml:"at"`
	Value Transform   `yaml:"value"`
	Ease  easing.Func `yaml:"-"` // curve used from this keyframe to the next, nil = linear
}

// Track interpolates between sorted keyframes.
type Track []Keyframe

// Sorted returns a copy ordered by progress.
func (t Track) Sorted() Track {
	out := make(Track, len(t))
	copy(out, t)
	sort.SliceStable(out, func(i, j int) bool { return out[i].At < out[j].At })
	return out
}

// At evaluates the track at p. Before the first and after the last keyframe
// the boundary value is held.
func (t Track) At(p float64) Transform {
	if len(t) == 0 {
		return Transform{Opacity: 1}
	}
	p = progress.Clamp(p)
	if p <= t[0].At {
		return t[0].Value
	}
	last := t[len(t)-1]
	if p >= last.At {
		return last.Value
	}

	for i := 0; i < len(t)-1; i++ {
		prev, next := t[i], t[i+1]
		if p >= prev.At && p < next.At {
			span := next.At - prev.At
			if span == 0 {
				return next.Value
			}
			local := (p - prev.At) / span
			if prev.Ease != nil {
				local = prev.Ease(local)
			}
			return prev.Value.Lerp(next.Value, local)
		}
	}
	return last.Value
}

// Tween animates one element across a progress window.
type Tween struct {
	Element string
	Window  progress.Window
	From    Transform
	To      Transform
	Ease    easing.Func
}

// At evaluates the tween. Outside its window it holds From or To.
func (tw Tween) At(p float64) Transform {
	local := tw.Window.Local(p)
	if tw.Ease != nil {
		local = tw.Ease(local)
	}
	return tw.From.Lerp(tw.To, local)
}

// Timeline groups tweens and resolves each element at a progress value.
// When several tweens touch one element, the latest-starting one whose
// window has begun wins, so an "out" tween overrides the finished "in" one.
type Timeline struct {
	tweens []Tween
}

func New(tweens ...Tween) (*Timeline, error) {
	for _, tw := range tweens {
		if err := tw.Window.Validate(); err != nil {
			return nil, fmt.Errorf("tween %q: %w", tw.Element, err)
		}
	}
	sorted := make([]Tween, len(tweens))
	copy(sorted, tweens)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Window.Start < sorted[j].Window.Start })
	return &Timeline{tweens: sorted}, nil
}

// Elements lists element names in first-appearance order.
func (tl *Timeline) Elements() []string {
	seen := map[string]bool{}
	var names []string
	for _, tw := range tl.tweens {
		if !seen[tw.Element] {
			seen[tw.Element] = true
			names = append(names, tw.Element)
		}
	}
	return names
}

// At resolves every element at progress p.
func (tl *Timeline) At(p float64) map[string]Transform {
	p = progress.Clamp(p)
	out := make(map[string]Transform, len(tl.tweens))
	for _, tw := range tl.tweens {
		_, seen := out[tw.Element]
		if !seen || p >= tw.Window.Start {
			out[tw.Element] = tw.At(p)
		}
	}
	return out
}
