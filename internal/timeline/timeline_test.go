package timeline

import (
	"math"
	"testing"

	"github.com/ivlev/scrollfx/internal/easing"
	"github.com/ivlev/scrollfx/internal/progress"
)

func TestTrackAt(t *testing.T) {
	track := Track{
		{At: 0.2, Value: Transform{XPercent: 0, Opacity: 0}},
		{At: 0.6, Value: Transform{XPercent: 100, Opacity: 1}},
		{At: 0.8, Value: Transform{XPercent: 100, YPercent: -50, Opacity: 1}},
	}

	tests := []struct {
		p     float64
		wantX float64
		wantY float64
	}{
		{0, 0, 0},     // held before first keyframe
		{0.4, 50, 0},  // linear midpoint
		{0.6, 100, 0}, // keyframe
		{0.7, 100, -25},
		{1, 100, -50}, // held after last
	}
	for _, tt := range tests {
		got := track.At(tt.p)
		if math.Abs(got.XPercent-tt.wantX) > 1e-9 || math.Abs(got.YPercent-tt.wantY) > 1e-9 {
			t.Errorf("At(%v) = %+v, want x=%v y=%v", tt.p, got, tt.wantX, tt.wantY)
		}
	}
}

func TestTrackEasing(t *testing.T) {
	track := Track{
		{At: 0, Value: Transform{Opacity: 0}, Ease: easing.OutSine},
		{At: 1, Value: Transform{Opacity: 1}},
	}.Sorted()
	if got := track.At(0.5).Opacity; math.Abs(got-math.Sin(math.Pi/4)) > 1e-9 {
		t.Errorf("eased opacity = %v", got)
	}
}

func TestTweenHoldsOutsideWindow(t *testing.T) {
	tw := Tween{
		Window: progress.Window{Start: 0.25, End: 0.5},
		From:   Transform{XPercent: 200},
		To:     Transform{XPercent: 0},
	}
	if got := tw.At(0.1).XPercent; got != 200 {
		t.Errorf("before window x = %v", got)
	}
	if got := tw.At(0.9).XPercent; got != 0 {
		t.Errorf("after window x = %v", got)
	}
}

func TestNewRejectsBadWindow(t *testing.T) {
	_, err := New(Tween{Element: "x", Window: progress.Window{Start: 0.5, End: 0.5}})
	if err == nil {
		t.Error("expected an error for an empty window")
	}
}

func TestHorizontalSection(t *testing.T) {
	tl := HorizontalSection()
	if got := len(tl.Elements()); got != 6 {
		t.Fatalf("Elements = %d, want 6", got)
	}

	start := tl.At(0)
	if start["image"].YPercent != 400 || start["image2"].XPercent != 400 {
		t.Errorf("initial positions wrong: %+v", start)
	}

	inPlace := tl.At(0.25)
	if inPlace["text"].YPercent != 0 || inPlace["text"].XPercent != 0 {
		t.Errorf("first panel should be settled at 0.25: %+v", inPlace["text"])
	}

	out := tl.At(0.5)
	if out["image"].XPercent != -300 {
		t.Errorf("image should have slid out: %+v", out["image"])
	}
	if out["text2"].XPercent != 200 {
		t.Errorf("second panel should not have moved yet: %+v", out["text2"])
	}

	end := tl.At(1)
	if end["title2"].YPercent != -100 || end["text"].XPercent != -200 {
		t.Errorf("final positions wrong: %+v", end)
	}
}
