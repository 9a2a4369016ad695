package renderer

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/ivlev/scrollfx/internal/director"
	"github.com/ivlev/scrollfx/internal/geometry"
	"github.com/ivlev/scrollfx/internal/section"
	"github.com/ivlev/scrollfx/internal/system"
)

var path = []director.Keyframe{
	{Time: 0.0, Progress: 0},
	{Time: 2.0, Progress: 0.5},
	{Time: 3.0, Progress: 0.5},
	{Time: 4.0, Progress: 1},
}

func TestProgressAt(t *testing.T) {
	tests := []struct {
		time     float64
		expected float64
	}{
		{-1.0, 0},   // before first keyframe
		{0.0, 0},    // first keyframe
		{1.0, 0.25}, // InOutCubic midpoint is exact
		{2.0, 0.5},
		{2.5, 0.5}, // hold
		{4.0, 1},
		{5.0, 1}, // after last keyframe
	}

	for _, tt := range tests {
		got := ProgressAt(path, tt.time)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("At time %.1f: expected %.3f, got %.3f", tt.time, tt.expected, got)
		}
	}

	if ProgressAt(nil, 3) != 0 {
		t.Error("empty path should stay at 0")
	}
}

func TestSample(t *testing.T) {
	samples := Sample(path, 4, 10)
	if len(samples) != 40 {
		t.Fatalf("len = %d, want 40", len(samples))
	}
	for i := 1; i < len(samples); i++ {
		if samples[i] < samples[i-1] {
			t.Fatalf("path should not scroll back: %v then %v", samples[i-1], samples[i])
		}
	}
}

func TestGenerateProgressBarFilter(t *testing.T) {
	filter := GenerateProgressBarFilter(path, 30, 1280, 720, 0)
	if filter == "" {
		t.Fatal("Expected non-empty filter")
	}
	for _, part := range []string{"color=c=white", "overlay=x='", "lte(n,60)", "y=716", "[v]"} {
		if !strings.Contains(filter, part) {
			t.Errorf("Filter should contain %q", part)
		}
	}
	if strings.Count(filter, "(") != strings.Count(filter, ")") {
		t.Error("unbalanced parentheses")
	}
	t.Logf("Generated filter: %s", filter)

	if GenerateProgressBarFilter(nil, 30, 10, 10, 2) != "" {
		t.Error("no keyframes should give no filter")
	}
}

func TestRoundedRect(t *testing.T) {
	r := RoundedRect{Rect: image.Rect(0, 0, 100, 50), Radius: 10}
	alpha := func(x, y int) uint32 {
		_, _, _, a := r.At(x, y).RGBA()
		return a
	}
	if alpha(0, 0) != 0 {
		t.Error("corner pixel should be outside the rounding")
	}
	if alpha(50, 25) == 0 || alpha(10, 0) == 0 {
		t.Error("centre and straight edge should be inside")
	}
	if alpha(100, 25) != 0 {
		t.Error("pixels past the rectangle are outside")
	}
}

func TestComposeMasksFrame(t *testing.T) {
	c := NewCompositor(Layout{Width: 200, Height: 100, H2FontSize: 10, StripHeight: 10}, system.NewImagePool())

	frame := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for i := range frame.Pix {
		frame.Pix[i] = 255
	}

	st := section.State{
		Geometry: geometry.ClipGeometry{Size: 50, Padding: 1, Radius: 0},
		Filter:   geometry.FilterDescriptor{Brightness: 0.5},
	}
	out := c.Compose(Shot{Frame: frame, State: st, Items: []float64{0, 40}, ItemWidth: 40})
	defer c.Release(out)

	clip := c.ClipRect(st.Geometry)
	if clip.Rect != image.Rect(50, 10, 150, 90) {
		t.Fatalf("clip = %v", clip.Rect)
	}

	inside := out.RGBAAt(100, 50)
	if inside.R < 120 || inside.R > 135 {
		t.Errorf("inside pixel = %v, want half brightness", inside)
	}
	outside := out.RGBAAt(10, 50)
	if outside != backdrop {
		t.Errorf("outside pixel = %v, want backdrop", outside)
	}
	strip := out.RGBAAt(20, 95)
	if strip == backdrop || strip == (color.RGBA{}) {
		t.Errorf("strip pixel not drawn: %v", strip)
	}
}

func TestComposeWithoutFrame(t *testing.T) {
	c := NewCompositor(Layout{Width: 64, Height: 32}, nil)
	st := section.State{
		Geometry: geometry.ClipGeometry{Size: 100},
		Filter:   geometry.FilterDescriptor{Brightness: 1},
	}
	out := c.Compose(Shot{State: st})
	if got := out.RGBAAt(32, 16); got != placeholder {
		t.Errorf("placeholder pixel = %v", got)
	}
	c.Release(out)

	st.Filter.Blur = 4
	out = c.Compose(Shot{State: st})
	got := out.RGBAAt(32, 16)
	if diff := int(got.R) - int(placeholder.R); diff < -2 || diff > 2 {
		t.Errorf("blurred uniform pixel = %v, want ~%v", got, placeholder)
	}
	c.Release(out)
}
