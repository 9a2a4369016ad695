// Command scrollfx-view shows a visual section in a desktop window.
//
// Controls:
//
//	Mouse wheel       - scroll the section
//	Drag on the strip - move the carousel
//	Home/End          - jump to top/bottom
//	Q/Escape          - quit
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ivlev/scrollfx/internal/carousel"
	"github.com/ivlev/scrollfx/internal/config"
	"github.com/ivlev/scrollfx/internal/emit"
	"github.com/ivlev/scrollfx/internal/geometry"
	"github.com/ivlev/scrollfx/internal/player"
	"github.com/ivlev/scrollfx/internal/renderer"
	"github.com/ivlev/scrollfx/internal/schedule"
	"github.com/ivlev/scrollfx/internal/scrub"
	"github.com/ivlev/scrollfx/internal/section"
	"github.com/ivlev/scrollfx/internal/source"
	"github.com/ivlev/scrollfx/internal/system"
)

var (
	inputFlag   = flag.String("input", "fixtures", "Папка с кадрами, PDF или \"fixtures\"")
	sceneFlag   = flag.String("scene", "", "YAML сцены (по умолчанию: встроенная сцена)")
	widthFlag   = flag.Int("width", 1280, "Ширина окна")
	heightFlag  = flag.Int("height", 720, "Высота окна")
	wheelFlag   = flag.Float64("wheel-step", 0.02, "Прогресс на одно деление колеса")
	verboseFlag = flag.Bool("verbose", false, "Печатать каждое событие прогресса")
)

// viewerHost keeps the last state the section applied.
type viewerHost struct {
	m      *geometry.Measurements
	header float64
	state  section.State
}

func (h *viewerHost) Measure() *geometry.Measurements { return h.m }
func (h *viewerHost) HeaderHeight() float64           { return h.header }
func (h *viewerHost) Apply(st section.State)          { h.state = st }

// Game implements ebiten.Game. Everything runs on the update goroutine, so
// timers go through a manual scheduler advanced once per tick.
type Game struct {
	width, height int

	sched    *schedule.Manual
	rafs     *schedule.FrameRequester
	host     *viewerHost
	section  *section.Section
	player   *player.Player
	frames   *source.Frames
	carousel *carousel.Carousel
	smoother scrub.Smoother
	comp     *renderer.Compositor

	itemWidth float64
	stripTop  int
	raw       float64
	current   image.Image
	dragging  bool
	lastGest  carousel.Gesture

	screen *ebiten.Image
}

func NewGame(scene *config.Scene, src source.Source, width, height int) (*Game, error) {
	g := &Game{
		width:  width,
		height: height,
		sched:  schedule.NewManual(),
		rafs:   &schedule.FrameRequester{},
		host:   &viewerHost{header: scene.Geometry.HeaderHeight},
	}
	w, h := float64(width), float64(height)
	if cw := scene.Geometry.ContentWidth; cw > 0 {
		g.host.m = &geometry.Measurements{ContentWidth: cw, ContainerWidth: w, ViewportWidth: w}
	}

	calc, err := scene.Calculator()
	if err != nil {
		return nil, err
	}
	g.section, err = section.New(section.Options{
		Calc:            calc,
		Threshold:       scene.Activation.Threshold,
		Delay:           scene.Debounce(),
		Element:         "#visual-section",
		Host:            g.host,
		Scheduler:       g.sched,
		Emitter:         emit.Log{Verbose: *verboseFlag},
		AnnounceInitial: scene.Activation.AnnounceInitial,
	})
	if err != nil {
		return nil, err
	}
	g.section.Init()

	// frames stream in while the window is already up
	g.frames = source.Preload(context.Background(), src, runtime.NumCPU())
	g.player = player.New(g.frames, player.CanvasFunc(func(_ int, img image.Image) { g.current = img }))

	if scene.Carousel.Enabled {
		g.itemWidth = carousel.Layout(w).ItemWidth(w)
		g.carousel = carousel.New(carousel.Options{
			ItemWidth:      g.itemWidth,
			Items:          scene.Carousel.Items,
			AutoStep:       scene.Carousel.AutoStep,
			Smoothing:      scene.Carousel.Smoothing,
			DragFactor:     scene.Carousel.DragFactor,
			ClickThreshold: scene.Carousel.ClickThreshold,
			Momentum:       scene.Carousel.Momentum,
			FPS:            ebiten.TPS(),
		})
	}
	g.smoother = scrub.New(scene.Scrub.Lag, ebiten.TPS())

	layout := renderer.Layout{
		Width:        width,
		Height:       height,
		H2FontSize:   h / 15,
		HeaderHeight: scene.Geometry.HeaderHeight,
		StripHeight:  int(h / 8),
		ItemGap:      8,
	}
	g.stripTop = height - layout.StripHeight
	g.comp = renderer.NewCompositor(layout, system.NewImagePool())
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.raw = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		g.raw = 1
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.raw -= dy * *wheelFlag
	}
	g.raw = max(0, min(1, g.raw))

	if g.current == nil {
		if _, ok := g.frames.Frame(g.player.Current()); ok && g.player.Current() == 0 {
			g.player.DrawFirst()
		}
	}

	prog := g.smoother.Update(g.raw)
	g.section.UpdateProgress(prog)
	g.player.Scrub(prog, g.rafs)
	g.rafs.Flush()

	if g.carousel != nil {
		g.updateDrag()
		g.carousel.Tick()
	}

	g.sched.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) updateDrag() {
	x, y := ebiten.CursorPosition()
	fx := float64(x)
	inside := x >= 0 && x < g.width && y >= 0 && y < g.height

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && y >= g.stripTop && inside:
		g.carousel.PointerDown(fx)
		g.dragging = true
	case !g.dragging:
	case !inside:
		g.lastGest = g.carousel.PointerLeave(fx)
		g.dragging = false
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.lastGest = g.carousel.PointerUp(fx)
		g.dragging = false
	default:
		g.carousel.PointerMove(fx)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	shot := renderer.Shot{Frame: g.current, State: g.host.state}
	if g.carousel != nil {
		shot.Items = g.carousel.ItemOffsets()
		shot.ItemWidth = g.itemWidth
		shot.Dragging = g.carousel.Dragging()
	}
	img := g.comp.Compose(shot)
	if g.screen == nil {
		g.screen = ebiten.NewImage(g.width, g.height)
	}
	g.screen.WritePixels(img.Pix)
	g.comp.Release(img)
	screen.DrawImage(g.screen, nil)

	st := g.host.state
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"TPS: %0.1f\nProgress: %.3f\nFrame: %d/%d (loaded %d)\nActive: %v\nClip: %.1f%% r=%.2f\nFilter: %s\nGesture: %s",
		ebiten.ActualTPS(), st.Progress, g.player.Current()+1, g.frames.Len(), g.frames.Loaded(),
		g.section.Activation().IsActive(), st.Geometry.Size, st.Geometry.Radius, st.Filter, g.lastGest))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func main() {
	flag.Parse()

	scene := config.DefaultScene()
	if *sceneFlag != "" {
		var err error
		scene, err = config.LoadScene(*sceneFlag)
		if err != nil {
			log.Fatalf("[-] Ошибка сцены: %v", err)
		}
	}

	var src source.Source
	var err error
	if *inputFlag == "fixtures" {
		src, err = source.NewFixtureSource(scene.Frames.Count, *widthFlag, *heightFlag)
	} else {
		src, err = source.Open(*inputFlag)
	}
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации источника: %v", err)
	}
	defer src.Close()

	game, err := NewGame(scene, src, *widthFlag, *heightFlag)
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}
	defer game.section.Destroy()

	ebiten.SetWindowSize(*widthFlag, *heightFlag)
	ebiten.SetWindowTitle("scrollfx")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("[-] %v", err)
	}
}
