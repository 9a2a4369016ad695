package engine

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/ivlev/scrollfx/internal/config"
)

func TestSamplerAt(t *testing.T) {
	s, err := NewSampler(config.DefaultScene(), 1280, 720)
	if err != nil {
		t.Fatal(err)
	}

	start := s.At(0)
	if start.Frame != 0 || !strings.HasSuffix(start.FrameFile, "rdframe_0001.webp") {
		t.Errorf("start frame = %d %s", start.Frame, start.FrameFile)
	}
	if start.Active || start.Geometry.Size != 50 {
		t.Errorf("start = %+v", start)
	}

	end := s.At(1)
	if end.Frame != 124 || !strings.HasSuffix(end.FrameFile, "rdframe_0125.webp") {
		t.Errorf("end frame = %d %s", end.Frame, end.FrameFile)
	}
	if !end.Active || end.Geometry.Size != 100 || end.Filter != "brightness(0.25) blur(10px)" {
		t.Errorf("end = %+v", end)
	}
	if end.Hero.Frame != 124 || math.Abs(end.Hero.Brightness-0.5) > 1e-9 {
		t.Errorf("hero at end = %+v", end.Hero)
	}
	if got := end.Panels["title2"].YPercent; got != -100 {
		t.Errorf("title2 at end = %v", got)
	}
}

func TestSamplerHeroText(t *testing.T) {
	s, err := NewSampler(config.DefaultScene(), 1280, 720)
	if err != nil {
		t.Fatal(err)
	}
	// wrapper is 1.75 screens; text-in completes after 0.75 screens
	mid := s.At(0.75 / 1.75 / 2)
	if mid.Hero.TextOut != 0 || math.Abs(mid.Hero.TextIn-0.5) > 1e-9 {
		t.Errorf("hero mid = %+v", mid.Hero)
	}
	late := s.At(1)
	if late.Hero.TextIn != 1 || late.Hero.TextOut != 1 {
		t.Errorf("hero late = %+v", late.Hero)
	}
}

func TestWriteSamples(t *testing.T) {
	s, err := NewSampler(config.DefaultScene(), 1280, 720)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := s.WriteSamples(&buf, 4); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if got := strings.Count(out, "clip_path:"); got != 5 {
		t.Errorf("samples = %d, want 5", got)
	}
	if err := s.WriteSamples(&buf, 0); err == nil {
		t.Error("expected error for zero steps")
	}
}
