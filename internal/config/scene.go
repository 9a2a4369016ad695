package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/scrollfx/internal/activation"
	"github.com/ivlev/scrollfx/internal/carousel"
	"github.com/ivlev/scrollfx/internal/geometry"
	"github.com/ivlev/scrollfx/internal/player"
	"github.com/ivlev/scrollfx/internal/progress"
)

var (
	ErrInvalidWindow    = progress.ErrInvalidWindow
	ErrInvalidThreshold = activation.ErrInvalidThreshold
	ErrInvalidScale     = errors.New("scale must be unit or percent")
)

const (
	ScaleUnit    = "unit"
	ScalePercent = "percent"
)

// Scene is the per-section configuration loaded from YAML.
type Scene struct {
	Version    string           `yaml:"version"`
	Scale      string           `yaml:"scale,omitempty"`
	Frames     FramesConfig     `yaml:"frames"`
	Activation ActivationConfig `yaml:"activation"`
	Geometry   GeometryConfig   `yaml:"geometry"`
	Carousel   CarouselConfig   `yaml:"carousel"`
	Scrub      ScrubConfig      `yaml:"scrub"`
}

type FramesConfig struct {
	Count int    `yaml:"count"`
	Dir   string `yaml:"dir,omitempty"`
}

type ActivationConfig struct {
	Threshold       float64 `yaml:"threshold"`
	DebounceMS      int     `yaml:"debounce_ms"`
	AnnounceInitial bool    `yaml:"announce_initial,omitempty"`
}

type GeometryConfig struct {
	AnimationStart         float64 `yaml:"animation_start"`
	AnimationEnd           float64 `yaml:"animation_end"`
	InitialRadius          float64 `yaml:"initial_radius"`
	StickyHeightMultiplier float64 `yaml:"sticky_height_multiplier"`
	HeaderHeight           float64 `yaml:"header_height,omitempty"` // px
	ContentWidth           float64 `yaml:"content_width,omitempty"` // px, 0 = measure
}

type CarouselConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Items          int     `yaml:"items"`
	AutoStep       float64 `yaml:"auto_step"`
	Smoothing      float64 `yaml:"smoothing"`
	DragFactor     float64 `yaml:"drag_factor"`
	ClickThreshold float64 `yaml:"click_threshold"`
	Momentum       bool    `yaml:"momentum,omitempty"`
}

type ScrubConfig struct {
	Lag float64 `yaml:"lag"` // seconds, 0 = follow scroll exactly
}

// DefaultScene returns the stock visual section settings.
func DefaultScene() *Scene {
	return &Scene{
		Version: "1.0",
		Scale:   ScaleUnit,
		Frames:  FramesConfig{Count: player.DefaultFrameCount},
		Activation: ActivationConfig{
			Threshold:  0.15,
			DebounceMS: 150,
		},
		Geometry: GeometryConfig{
			AnimationStart:         0.1,
			AnimationEnd:           0.9,
			InitialRadius:          5,
			StickyHeightMultiplier: 1.75,
		},
		Carousel: CarouselConfig{
			Enabled:        true,
			Items:          10,
			AutoStep:       carousel.DefaultAutoStep,
			Smoothing:      carousel.DefaultSmoothing,
			DragFactor:     carousel.DefaultDragFactor,
			ClickThreshold: carousel.DefaultClickThreshold,
		},
	}
}

// LoadScene reads a scene file over the defaults, converts percent values and
// validates the result.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var head struct {
		Scale string `yaml:"scale"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	s := DefaultScene()
	if head.Scale == ScalePercent {
		// keys missing from the file must survive the /100 in Normalize
		s.Geometry.AnimationStart = progress.ToPercent(s.Geometry.AnimationStart)
		s.Geometry.AnimationEnd = progress.ToPercent(s.Geometry.AnimationEnd)
		s.Activation.Threshold = progress.ToPercent(s.Activation.Threshold)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	if err := s.Normalize(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// WriteScene stores the scene as YAML.
func WriteScene(s *Scene, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Normalize converts a percent scene into the unit scale.
func (s *Scene) Normalize() error {
	switch s.Scale {
	case "", ScaleUnit:
	case ScalePercent:
		s.Geometry.AnimationStart = progress.FromPercent(s.Geometry.AnimationStart)
		s.Geometry.AnimationEnd = progress.FromPercent(s.Geometry.AnimationEnd)
		s.Activation.Threshold = progress.FromPercent(s.Activation.Threshold)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidScale, s.Scale)
	}
	s.Scale = ScaleUnit
	return nil
}

// Validate reports every problem at once.
func (s *Scene) Validate() error {
	var errs []error
	if err := s.Window().Validate(); err != nil {
		errs = append(errs, err)
	}
	if t := s.Activation.Threshold; t < 0 || t > 1 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrInvalidThreshold, t))
	}
	if s.Activation.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("debounce_ms must be >= 0, got %d", s.Activation.DebounceMS))
	}
	if s.Frames.Count <= 0 {
		errs = append(errs, fmt.Errorf("frames.count must be > 0, got %d", s.Frames.Count))
	}
	if s.Geometry.InitialRadius < 0 {
		errs = append(errs, fmt.Errorf("initial_radius must be >= 0, got %v", s.Geometry.InitialRadius))
	}
	if s.Geometry.StickyHeightMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("sticky_height_multiplier must be > 0, got %v", s.Geometry.StickyHeightMultiplier))
	}
	if s.Carousel.Enabled && s.Carousel.Items <= 0 {
		errs = append(errs, fmt.Errorf("carousel.items must be > 0, got %d", s.Carousel.Items))
	}
	if s.Scrub.Lag < 0 {
		errs = append(errs, fmt.Errorf("scrub.lag must be >= 0, got %v", s.Scrub.Lag))
	}
	return errors.Join(errs...)
}

func (s *Scene) Window() progress.Window {
	return progress.Window{Start: s.Geometry.AnimationStart, End: s.Geometry.AnimationEnd}
}

func (s *Scene) Debounce() time.Duration {
	return time.Duration(s.Activation.DebounceMS) * time.Millisecond
}

// Calculator builds the clip geometry calculator for the scene.
func (s *Scene) Calculator() (*geometry.Calculator, error) {
	return geometry.NewCalculator(s.Window(), s.Geometry.InitialRadius)
}
