package geometry

import (
	"fmt"
	"math"

	"github.com/ivlev/scrollfx/internal/easing"
	"github.com/ivlev/scrollfx/internal/progress"
)

// DefaultStartSize is used when the reference elements cannot be measured.
const DefaultStartSize = 50.0

// Measurements are the live layout sizes the start size is derived from.
type Measurements struct {
	ContentWidth   float64
	ContainerWidth float64
	ViewportWidth  float64
}

// StartSize returns the initial mask width in percent of the container.
// Missing or degenerate measurements fall back to DefaultStartSize. Content
// wider than the container starts fully open, so the reveal never shrinks.
func StartSize(m *Measurements) float64 {
	if m == nil || m.ContainerWidth <= 0 || m.ContentWidth <= 0 {
		return DefaultStartSize
	}
	effective := m.ContentWidth
	if m.ViewportWidth > 0 {
		effective = math.Min(effective, m.ViewportWidth)
	}
	return math.Min(100, effective/m.ContainerWidth*100)
}

// ClipGeometry describes the visible mask region.
type ClipGeometry struct {
	Size    float64 `yaml:"size"`    // percent of container width
	Padding float64 `yaml:"padding"` // in units of the h2 font size
	Radius  float64 `yaml:"radius"`  // viewport units
}

// Calculator turns progress into clip geometry.
type Calculator struct {
	Window        progress.Window
	InitialRadius float64
}

// NewCalculator validates the window before building a calculator.
func NewCalculator(window progress.Window, initialRadius float64) (*Calculator, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if initialRadius < 0 {
		return nil, fmt.Errorf("initial radius must be >= 0, got %v", initialRadius)
	}
	return &Calculator{Window: window, InitialRadius: initialRadius}, nil
}

// Compute evaluates the three-region reveal. Size grows along the eased curve
// while padding and radius follow the raw local progress, so corners round
// off before the width finishes expanding.
func (c *Calculator) Compute(p, startSize float64) ClipGeometry {
	p = progress.Clamp(p)
	if p < c.Window.Start {
		return ClipGeometry{Size: startSize, Padding: 1, Radius: c.InitialRadius}
	}
	if p >= c.Window.End {
		return ClipGeometry{Size: 100, Padding: 0, Radius: 0}
	}

	local := (p - c.Window.Start) / (c.Window.End - c.Window.Start)
	eased := easing.OutSine(local)
	return ClipGeometry{
		Size:    startSize + (100-startSize)*eased,
		Padding: 1 - eased,
		Radius:  c.InitialRadius * (1 - local),
	}
}

// Inset is a rectangle inset with rounded corners.
type Inset struct {
	Top, Right, Bottom, Left float64
	Radius                   float64
}

// Inset converts the geometry into per-side insets. Horizontal sides are
// percentages of the container, vertical sides are padding multiples.
func (g ClipGeometry) Inset() Inset {
	side := 50 - g.Size/2
	return Inset{
		Top:    g.Padding,
		Right:  side,
		Bottom: g.Padding,
		Left:   side,
		Radius: g.Radius,
	}
}

// ClipPath renders the CSS clip-path shape. headerHeight (px) is added to the
// top inset so the mask clears a fixed header.
func (g ClipGeometry) ClipPath(headerHeight float64) string {
	in := g.Inset()
	top := fmt.Sprintf("calc(%s * var(--h2-font-size))", num(in.Top))
	if headerHeight > 0 {
		top = fmt.Sprintf("calc(%s * var(--h2-font-size) + %spx)", num(in.Top), num(headerHeight))
	}
	return fmt.Sprintf("inset(%s %s%% calc(%s * var(--h2-font-size)) %s%% round max(%slvh, %slvw))",
		top, num(in.Right), num(in.Bottom), num(in.Left), num(in.Radius), num(in.Radius))
}

// StickyHeight is the wrapper height that keeps a sticky element pinned.
func StickyHeight(elementHeight, multiplier float64) float64 {
	return elementHeight * multiplier
}

func num(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
