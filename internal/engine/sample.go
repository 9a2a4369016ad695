package engine

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/scrollfx/internal/config"
	"github.com/ivlev/scrollfx/internal/geometry"
	"github.com/ivlev/scrollfx/internal/player"
	"github.com/ivlev/scrollfx/internal/progress"
	"github.com/ivlev/scrollfx/internal/section"
	"github.com/ivlev/scrollfx/internal/source"
	"github.com/ivlev/scrollfx/internal/timeline"
)

// Sample is the computed visual state at one progress value.
type Sample struct {
	Progress  float64                       `yaml:"progress"`
	Eased     float64                       `yaml:"eased"`
	Peak      float64                       `yaml:"peak"`
	Geometry  geometry.ClipGeometry         `yaml:"geometry"`
	ClipPath  string                        `yaml:"clip_path"`
	Filter    string                        `yaml:"filter"`
	Active    bool                          `yaml:"active"`
	Frame     int                           `yaml:"frame"`
	FrameFile string                        `yaml:"frame_file"`
	Hero      HeroSample                    `yaml:"hero"`
	Panels    map[string]timeline.Transform `yaml:"panels"`
}

// HeroSample is the pinned hero variant driven by the same scroll.
type HeroSample struct {
	TextIn     float64            `yaml:"text_in"`
	TextOut    float64            `yaml:"text_out"`
	Frame      int                `yaml:"frame"`
	Mask       float64            `yaml:"mask_inset"`
	Brightness float64            `yaml:"brightness"`
	Text       geometry.TextStyle `yaml:"text"`
}

// Sampler evaluates a scene without scheduling anything.
type Sampler struct {
	scene    *config.Scene
	section  *section.Section
	panels   *timeline.Timeline
	viewport float64 // height
}

func NewSampler(scene *config.Scene, viewportWidth, viewportHeight float64) (*Sampler, error) {
	calc, err := scene.Calculator()
	if err != nil {
		return nil, err
	}
	var m *geometry.Measurements
	if cw := scene.Geometry.ContentWidth; cw > 0 {
		m = &geometry.Measurements{ContentWidth: cw, ContainerWidth: viewportWidth, ViewportWidth: viewportWidth}
	}
	sec, err := section.New(section.Options{
		Calc:      calc,
		Threshold: scene.Activation.Threshold,
		Host:      staticHost{m: m, header: scene.Geometry.HeaderHeight},
	})
	if err != nil {
		return nil, err
	}
	return &Sampler{scene: scene, section: sec, panels: timeline.HorizontalSection(), viewport: viewportHeight}, nil
}

// At evaluates every effect at p.
func (s *Sampler) At(p float64) Sample {
	p = progress.Clamp(p)
	st := s.section.Render(p)
	n := s.scene.Frames.Count
	frame := player.Index(p, n)

	dir := s.scene.Frames.Dir
	if dir == "" {
		dir = "frames"
	}

	return Sample{
		Progress:  p,
		Eased:     st.Eased,
		Peak:      st.Peak,
		Geometry:  st.Geometry,
		ClipPath:  st.ClipPath,
		Filter:    st.Filter.String(),
		Active:    st.Active,
		Frame:     frame,
		FrameFile: source.FrameName(dir, frame),
		Hero:      s.hero(p, n),
		Panels:    s.panels.At(p),
	}
}

// hero places the sticky wrapper so that its video fraction equals p.
func (s *Sampler) hero(p float64, frames int) HeroSample {
	vh := s.viewport
	wrapper := geometry.StickyHeight(vh, s.scene.Geometry.StickyHeightMultiplier)
	sticky := progress.StickyFractions{
		WrapperHeight:   wrapper,
		ContainerHeight: vh,
		ViewportHeight:  vh,
	}
	// container and viewport are both one screen, so Video() == p
	sticky.WrapperTop = -p * wrapper

	in, out := sticky.TextIn(), sticky.TextOut()
	return HeroSample{
		TextIn:     in,
		TextOut:    out,
		Frame:      player.CeilIndex(sticky.Video(), frames),
		Mask:       geometry.HeroMask(sticky.Video()).Top,
		Brightness: geometry.HeroBrightness(sticky.Video()),
		Text:       geometry.TextTransform(in, out),
	}
}

// WriteSamples dumps steps+1 evenly spaced samples as YAML.
func (s *Sampler) WriteSamples(w io.Writer, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be > 0, got %d", steps)
	}
	samples := make([]Sample, 0, steps+1)
	for i := 0; i <= steps; i++ {
		samples = append(samples, s.At(float64(i)/float64(steps)))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(samples); err != nil {
		return err
	}
	return enc.Close()
}

type staticHost struct {
	m      *geometry.Measurements
	header float64
}

func (h staticHost) Measure() *geometry.Measurements { return h.m }
func (h staticHost) HeaderHeight() float64           { return h.header }
func (h staticHost) Apply(section.State)             {}
