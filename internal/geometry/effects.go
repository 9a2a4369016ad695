package geometry

import (
	"fmt"

	"github.com/ivlev/scrollfx/internal/easing"
	"github.com/ivlev/scrollfx/internal/progress"
)

// FilterDescriptor is a brightness/blur pair applied to the section background.
type FilterDescriptor struct {
	Brightness float64 `yaml:"brightness"`
	Blur       float64 `yaml:"blur"` // px
}

// Filter darkens and blurs the background over the second half of the section.
func Filter(p float64) FilterDescriptor {
	p = progress.Clamp(p)
	if p < 0.5 {
		return FilterDescriptor{Brightness: 1, Blur: 0}
	}
	local := (p - 0.5) / 0.5
	return FilterDescriptor{
		Brightness: 1 - 0.75*local,
		Blur:       local * 10,
	}
}

func (f FilterDescriptor) String() string {
	return fmt.Sprintf("brightness(%s) blur(%spx)", num(f.Brightness), num(f.Blur))
}

// HeroMask insets the hero canvas by up to 20% (and 20vw rounding) as the
// wrapper bottom scrolls two viewports past.
func HeroMask(p float64) Inset {
	v := progress.Clamp(p) * 20
	return Inset{Top: v, Right: v, Bottom: v, Left: v, Radius: v}
}

// HeroBrightness dims the hero video down to half brightness.
func HeroBrightness(p float64) float64 {
	return 1 - progress.Clamp(p)*0.5
}

// TextStyle is the centre title transform.
type TextStyle struct {
	Opacity float64
	Scale   float64
}

const (
	textInMinScale  = 0.04
	textInMaxScale  = 0.06
	textInMinAlpha  = 0.25
	textOutMaxScale = 1.0
)

// TextTransform returns the title style for the text-in and text-out fractions.
// Once text-out has started it takes over.
func TextTransform(in, out float64) TextStyle {
	if out > 0 {
		e := easing.OutSine(out)
		return TextStyle{
			Opacity: 1,
			Scale:   textInMaxScale + (textOutMaxScale-textInMaxScale)*e,
		}
	}
	e := easing.OutSine(in)
	return TextStyle{
		Opacity: textInMinAlpha + (1-textInMinAlpha)*e,
		Scale:   textInMinScale + (textInMaxScale-textInMinScale)*e,
	}
}
