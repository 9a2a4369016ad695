// Package scrub smooths a raw progress signal so effects trail the scroll
// position instead of snapping to it.
package scrub

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/ivlev/scrollfx/internal/progress"
)

// Smoother follows a raw progress value.
type Smoother interface {
	Update(raw float64) float64
	Value() float64
	Reset(p float64)
}

// New returns a pass-through smoother for lag <= 0 (scrub: true) and a
// critically damped spring otherwise. lag is roughly the settle time in seconds.
func New(lag float64, fps int) Smoother {
	if lag <= 0 {
		return &direct{}
	}
	if fps <= 0 {
		fps = 60
	}
	// a critically damped spring settles in about 4/omega
	omega := 4 / lag
	return &spring{
		spring: harmonica.NewSpring(harmonica.FPS(fps), omega, 1.0),
	}
}

type direct struct {
	value float64
}

func (d *direct) Update(raw float64) float64 {
	d.value = progress.Clamp(raw)
	return d.value
}

func (d *direct) Value() float64  { return d.value }
func (d *direct) Reset(p float64) { d.value = progress.Clamp(p) }

type spring struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func (s *spring) Update(raw float64) float64 {
	target := progress.Clamp(raw)
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, target)
	if math.Abs(s.pos-target) < 1e-4 && math.Abs(s.vel) < 1e-3 {
		s.pos, s.vel = target, 0
	}
	return progress.Clamp(s.pos)
}

func (s *spring) Value() float64 { return progress.Clamp(s.pos) }

func (s *spring) Reset(p float64) {
	s.pos, s.vel = progress.Clamp(p), 0
}
