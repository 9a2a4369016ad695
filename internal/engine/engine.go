package engine

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ivlev/scrollfx/internal/carousel"
	"github.com/ivlev/scrollfx/internal/config"
	"github.com/ivlev/scrollfx/internal/director"
	"github.com/ivlev/scrollfx/internal/emit"
	"github.com/ivlev/scrollfx/internal/geometry"
	"github.com/ivlev/scrollfx/internal/measure"
	"github.com/ivlev/scrollfx/internal/player"
	"github.com/ivlev/scrollfx/internal/renderer"
	"github.com/ivlev/scrollfx/internal/schedule"
	"github.com/ivlev/scrollfx/internal/scrub"
	"github.com/ivlev/scrollfx/internal/section"
	"github.com/ivlev/scrollfx/internal/source"
	"github.com/ivlev/scrollfx/internal/system"
	"github.com/ivlev/scrollfx/internal/video"
)

// PreviewProject plays a scenario through a visual section offline and
// encodes what a browser would have shown.
type PreviewProject struct {
	Config   *config.Config
	Scene    *config.Scene
	Scenario *director.Scenario
	Source   source.Source
	Encoder  video.VideoEncoder
	Emitter  emit.Emitter
	Detector measure.Detector
}

func NewPreviewProject(cfg *config.Config, scene *config.Scene, scenario *director.Scenario, src source.Source, ve video.VideoEncoder) *PreviewProject {
	return &PreviewProject{
		Config:   cfg,
		Scene:    scene,
		Scenario: scenario,
		Source:   src,
		Encoder:  ve,
		Emitter:  emit.Log{Verbose: cfg.Verbose},
		Detector: measure.NewContrastDetector(),
	}
}

// Report summarizes a preview run.
type Report struct {
	Frames          int
	Duration        float64
	Player          player.Stats
	FramesExecuted  uint64
	FramesDropped   uint64
	StateChanges    int
	Activations     int
	PreloadFailures error
	StartSize       float64
	Render, Total   time.Duration
	Snapshot        system.Snapshot
}

// previewHost stands in for the DOM: fixed measurements and the last
// applied state.
type previewHost struct {
	m      *geometry.Measurements
	header float64

	mu    sync.Mutex
	state section.State
}

func (h *previewHost) Measure() *geometry.Measurements { return h.m }
func (h *previewHost) HeaderHeight() float64           { return h.header }

func (h *previewHost) Apply(st section.State) {
	h.mu.Lock()
	h.state = st
	h.mu.Unlock()
}

func (h *previewHost) State() section.State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (p *PreviewProject) Run(ctx context.Context) (*Report, error) {
	startTime := time.Now()
	cfg, scene := p.Config, p.Scene

	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("fps must be > 0, got %d", cfg.FPS)
	}
	if p.Source.PageCount() == 0 {
		return nil, fmt.Errorf("источник не содержит кадров")
	}
	if err := p.Scenario.Validate(); err != nil {
		return nil, fmt.Errorf("сценарий: %w", err)
	}
	duration := p.Scenario.Duration
	if cfg.Duration > 0 {
		duration = cfg.Duration
	}

	fmt.Println("--- [SCROLLFX PREVIEW] ---")
	fmt.Printf("[*] Источник: %s | Кадров: %d\n", cfg.InputPath, p.Source.PageCount())
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Длительность: %.2fs\n", cfg.Width, cfg.Height, cfg.FPS, duration)
	fmt.Println("--------------------------")

	// 1. Предзагрузка кадров
	frames := source.Preload(ctx, p.Source, cfg.Workers)
	preloadErr := frames.Wait()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if preloadErr != nil {
		log.Printf("[!] Не все кадры загружены (%d/%d): %v", frames.Loaded(), frames.Len(), preloadErr)
	}

	// 2. Измерения и секция
	host := &previewHost{m: p.measurements(frames), header: scene.Geometry.HeaderHeight}
	sched := schedule.NewManual()
	rec := &emit.Recorder{}
	emitter := emit.Multi{rec, p.Emitter}

	calc, err := scene.Calculator()
	if err != nil {
		return nil, err
	}
	sec, err := section.New(section.Options{
		Calc:            calc,
		Threshold:       scene.Activation.Threshold,
		Delay:           scene.Debounce(),
		Element:         "#visual-section",
		Host:            host,
		Scheduler:       sched,
		Emitter:         emitter,
		AnnounceInitial: scene.Activation.AnnounceInitial,
	})
	if err != nil {
		return nil, err
	}
	defer sec.Destroy()
	sec.Init()

	// 3. Плеер, карусель, сглаживание
	var current image.Image
	pl := player.New(frames, player.CanvasFunc(func(_ int, img image.Image) { current = img }))
	pl.DrawFirst()
	rafs := &schedule.FrameRequester{}

	width, height := cfg.Viewport()
	var car *carousel.Carousel
	itemWidth := 0.0
	if scene.Carousel.Enabled {
		itemWidth = carousel.Layout(width).ItemWidth(width)
		car = carousel.New(carousel.Options{
			ItemWidth:      itemWidth,
			Items:          scene.Carousel.Items,
			AutoStep:       scene.Carousel.AutoStep,
			Smoothing:      scene.Carousel.Smoothing,
			DragFactor:     scene.Carousel.DragFactor,
			ClickThreshold: scene.Carousel.ClickThreshold,
			Momentum:       scene.Carousel.Momentum,
			FPS:            cfg.FPS,
		})
	}
	smoother := scrub.New(scene.Scrub.Lag, cfg.FPS)

	// 4. Кодирование
	params := video.Params{
		Width:   cfg.Width,
		Height:  cfg.Height,
		FPS:     cfg.FPS,
		Encoder: cfg.VideoEncoder,
		Quality: cfg.Quality,
		Output:  cfg.OutputVideo,
	}
	if cfg.ProgressBar {
		params.FilterComplex = renderer.GenerateProgressBarFilter(p.Scenario.Keyframes, cfg.FPS, cfg.Width, cfg.Height, 4)
	}
	stream, err := p.Encoder.Start(ctx, params)
	if err != nil {
		return nil, err
	}

	comp := renderer.NewCompositor(renderer.Layout{
		Width:        cfg.Width,
		Height:       cfg.Height,
		H2FontSize:   height / 15,
		HeaderHeight: scene.Geometry.HeaderHeight,
		StripHeight:  int(height / 8),
		ItemGap:      8,
	}, system.NewImagePool())

	frameDur := time.Second / time.Duration(cfg.FPS)
	total := int(duration * float64(cfg.FPS))
	gestures := p.Scenario.Gestures
	renderStart := time.Now()

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			stream.Close()
			return nil, err
		}
		t := float64(i) / float64(cfg.FPS)

		for len(gestures) > 0 && gestures[0].Time <= t {
			if car != nil {
				applyGesture(car, gestures[0])
			}
			gestures = gestures[1:]
		}

		prog := smoother.Update(renderer.ProgressAt(p.Scenario.Keyframes, t))
		sec.UpdateProgress(prog)
		pl.Scrub(prog, rafs)
		rafs.Flush()

		shot := renderer.Shot{Frame: current, State: host.State()}
		if car != nil {
			car.Tick()
			shot.Items = car.ItemOffsets()
			shot.ItemWidth = itemWidth
			shot.Dragging = car.Dragging()
		}

		img := comp.Compose(shot)
		err := stream.WriteFrame(img)
		comp.Release(img)
		if err != nil {
			stream.Close()
			return nil, fmt.Errorf("кадр %d: %w", i, err)
		}

		sched.Advance(frameDur)
		if (i+1)%(cfg.FPS*5) == 0 {
			fmt.Printf("[>] Ready: %d/%d\n", i+1, total)
		}
	}
	// let the last debounced activation settle
	sched.Advance(scene.Debounce())

	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("ошибка кодирования: %w", err)
	}

	executed, dropped := rafs.Counts()
	report := &Report{
		Frames:          total,
		Duration:        duration,
		Player:          pl.Stats(),
		FramesExecuted:  executed,
		FramesDropped:   dropped,
		PreloadFailures: preloadErr,
		StartSize:       sec.StartSize(),
		Render:          time.Since(renderStart),
		Total:           time.Since(startTime),
	}
	for _, ev := range rec.Events(emit.StateChanged) {
		report.StateChanges++
		if ev.IsActive {
			report.Activations++
		}
	}
	snap, err := system.TakeSnapshot()
	if err != nil {
		log.Printf("[!] Статистика системы неполная: %v", err)
	}
	report.Snapshot = snap

	if cfg.ShowStats {
		p.printReport(report)
	}
	return report, nil
}

// measurements uses the configured content width or measures the first
// loaded frame.
func (p *PreviewProject) measurements(frames *source.Frames) *geometry.Measurements {
	width, _ := p.Config.Viewport()
	if cw := p.Scene.Geometry.ContentWidth; cw > 0 {
		return &geometry.Measurements{ContentWidth: cw, ContainerWidth: width, ViewportWidth: width}
	}
	if p.Detector == nil {
		return nil
	}
	for i := 0; i < frames.Len(); i++ {
		img, ok := frames.Frame(i)
		if !ok {
			continue
		}
		m, err := measure.Measure(p.Detector, img, width, width)
		if err != nil {
			log.Printf("[!] Ошибка анализа кадра %d: %v", i, err)
			return nil
		}
		if m != nil {
			fmt.Printf("[*] Ширина контента: %.0fpx из %.0fpx\n", m.ContentWidth, m.ContainerWidth)
		}
		return m
	}
	return nil
}

func applyGesture(c *carousel.Carousel, g director.Gesture) {
	switch g.Action {
	case director.PointerDown:
		c.PointerDown(g.X)
	case director.PointerMove:
		c.PointerMove(g.X)
	case director.PointerUp:
		c.PointerUp(g.X)
	case director.PointerLeave:
		c.PointerLeave(g.X)
	}
}

func (p *PreviewProject) printReport(r *Report) {
	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering: %.2fs\n"+
			"Frames: %d (%.2f FPS effective)\n"+
			"Player: drawn %d, skipped %d, ticks %d\n"+
			"Animation frames: %d run, %d coalesced\n"+
			"Activation changes: %d\n"+
			"Host: %s\n"+
			"----------------------------\n",
		p.Config.BuildVersion, r.Total.Seconds(), r.Render.Seconds(),
		r.Frames, float64(r.Frames)/r.Render.Seconds(),
		r.Player.Drawn, r.Player.Skipped, r.Player.Ticks,
		r.FramesExecuted, r.FramesDropped,
		r.StateChanges,
		r.Snapshot,
	)
	fmt.Print(report)

	// Логирование в файл
	logEntry := fmt.Sprintf("[%s] Build: %s | Input: %s | Frames: %d | Total: %.2fs | Render: %.2fs\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.InputPath),
		r.Frames,
		r.Total.Seconds(),
		r.Render.Seconds(),
	)
	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}
