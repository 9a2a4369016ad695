package player

import (
	"image"
	"math"
	"sync"

	"github.com/ivlev/scrollfx/internal/progress"
	"github.com/ivlev/scrollfx/internal/schedule"
)

// DefaultFrameCount is the length of the hero image sequence.
const DefaultFrameCount = 125

// Sequence is an ordered, possibly partially loaded, list of frames.
type Sequence interface {
	Len() int
	// Frame returns the frame at 0-based index i, or false if it is not loaded yet.
	Frame(i int) (image.Image, bool)
}

// Canvas receives the frames the player decides to show.
type Canvas interface {
	Draw(index int, img image.Image)
}

// CanvasFunc adapts a function to Canvas.
type CanvasFunc func(index int, img image.Image)

func (f CanvasFunc) Draw(index int, img image.Image) { f(index, img) }

// Stats counts what the player did.
type Stats struct {
	Ticks   int
	Drawn   int
	Skipped int // pointer advanced but the frame was not loaded
}

// Player scrubs through a sequence. The visible frame catches up with the
// target one step per tick instead of jumping.
type Player struct {
	seq    Sequence
	canvas Canvas

	mu      sync.Mutex
	current int
	target  int
	running bool
	stats   Stats
}

func New(seq Sequence, canvas Canvas) *Player {
	return &Player{seq: seq, canvas: canvas}
}

// Index maps progress onto round(p*(n-1)), clamped to [0, n-1].
func Index(p float64, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(math.Round(progress.Clamp(p) * float64(n-1)))
	return clampIndex(i, n)
}

// CeilIndex is the alternative mapping min(n-1, ceil(p*n)) used by the
// 1-based hero variant, which then draws frame CeilIndex+1 (image CeilIndex).
func CeilIndex(p float64, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(math.Ceil(progress.Clamp(p) * float64(n)))
	return clampIndex(i, n)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// DrawFirst shows frame zero, the state before any scroll.
func (p *Player) DrawFirst() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draw(0)
}

// SetTarget points the player at the frame for progress. It reports whether
// the loop must be (re)started, which happens only when the target changed
// and no loop is running.
func (p *Player) SetTarget(prog float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	target := Index(prog, p.seq.Len())
	if target == p.target {
		return false
	}
	p.target = target
	if p.running {
		return false
	}
	p.running = true
	return true
}

// Tick advances one frame towards the target. It returns false once the
// target is reached; the loop then stays stopped until SetTarget restarts it.
func (p *Player) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == p.target {
		p.running = false
		return false
	}
	p.stats.Ticks++
	if p.current < p.target {
		p.current++
	} else {
		p.current--
	}
	p.draw(p.current)
	return true
}

func (p *Player) draw(i int) {
	img, ok := p.seq.Frame(i)
	if !ok || img == nil {
		p.stats.Skipped++
		return
	}
	p.stats.Drawn++
	if p.canvas != nil {
		p.canvas.Draw(i, img)
	}
}

// Loop keeps ticking on frames until the target is reached.
func (p *Player) Loop(frames *schedule.FrameRequester) {
	var step func()
	step = func() {
		if p.Tick() {
			frames.Request(step)
		}
	}
	frames.Request(step)
}

// Scrub sets the target and starts the loop on frames if needed.
func (p *Player) Scrub(prog float64, frames *schedule.FrameRequester) {
	if p.SetTarget(prog) {
		p.Loop(frames)
	}
}

func (p *Player) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *Player) Target() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.target
}

// Running reports whether the catch-up loop is active.
func (p *Player) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Player) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Ready reports whether the sequence has finished preloading. Sequences
// without a ready signal are treated as ready.
func (p *Player) Ready() bool {
	r, ok := p.seq.(interface{ Done() <-chan struct{} })
	if !ok {
		return true
	}
	select {
	case <-r.Done():
		return true
	default:
		return false
	}
}
