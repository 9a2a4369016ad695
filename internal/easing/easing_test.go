package easing

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func TestOutSineEndpointsAndMonotonic(t *testing.T) {
	if got := OutSine(0); math.Abs(got) > tolerance {
		t.Errorf("OutSine(0) = %v, want 0", got)
	}
	if got := OutSine(1); math.Abs(got-1) > tolerance {
		t.Errorf("OutSine(1) = %v, want 1", got)
	}

	prev := OutSine(0)
	for i := 1; i <= 1000; i++ {
		cur := OutSine(float64(i) / 1000)
		if cur < prev {
			t.Fatalf("OutSine decreased at t=%v: %v < %v", float64(i)/1000, cur, prev)
		}
		prev = cur
	}
}

func TestInOutSine(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{-3, 0},
		{7, 1},
	}
	for _, tt := range tests {
		if got := InOutSine(tt.t); math.Abs(got-tt.want) > tolerance {
			t.Errorf("InOutSine(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestInOutPeak(t *testing.T) {
	if got := InOutPeak(0); got != 0 {
		t.Errorf("InOutPeak(0) = %v, want 0", got)
	}
	if got := InOutPeak(1); got != 0 {
		t.Errorf("InOutPeak(1) = %v, want 0", got)
	}
	if got := InOutPeak(0.6); math.Abs(got-1) > tolerance {
		t.Errorf("InOutPeak(0.6) = %v, want 1", got)
	}
	// clamped, not extrapolated
	if got := InOutPeak(-0.2); got != 0 {
		t.Errorf("InOutPeak(-0.2) = %v, want 0", got)
	}
	if got := InOutPeak(1.4); got != 0 {
		t.Errorf("InOutPeak(1.4) = %v, want 0", got)
	}
}

func TestPeakCustom(t *testing.T) {
	p := Peak{At: 0.3, Sharpness: 1.5}
	if got := p.Apply(0.3); got != 1 {
		t.Errorf("Apply(At) = %v, want 1", got)
	}
	if got := p.Apply(0.8); got <= 0 || got >= 1 {
		t.Errorf("Apply(0.8) = %v, want in (0,1)", got)
	}
}

func TestInOutCubic(t *testing.T) {
	if got := InOutCubic(0.5); math.Abs(got-0.5) > tolerance {
		t.Errorf("InOutCubic(0.5) = %v", got)
	}
	if got := InOutCubic(1); math.Abs(got-1) > tolerance {
		t.Errorf("InOutCubic(1) = %v", got)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(10, 20, 0.1); math.Abs(got-11) > tolerance {
		t.Errorf("Lerp(10, 20, 0.1) = %v, want 11", got)
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		fn, err := ByName(name)
		if err != nil || fn == nil {
			t.Errorf("ByName(%q) failed: %v", name, err)
		}
	}
	if fn, err := ByName(""); err != nil || fn(0.3) != 0.3 {
		t.Errorf("ByName(\"\") should resolve to linear")
	}
	if _, err := ByName("bounce"); !errors.Is(err, ErrUnknown) {
		t.Errorf("ByName(bounce) err = %v, want ErrUnknown", err)
	}
}
