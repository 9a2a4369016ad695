package carousel

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/ivlev/scrollfx/internal/easing"
)

// Gesture classifies a finished pointer interaction.
type Gesture int

const (
	None Gesture = iota
	Click
	Drag
)

func (g Gesture) String() string {
	switch g {
	case Click:
		return "click"
	case Drag:
		return "drag"
	default:
		return "none"
	}
}

const (
	DefaultAutoStep       = 1.0
	DefaultSmoothing      = 0.1
	DefaultDragFactor     = 2.5
	DefaultClickThreshold = 5.0
)

// Wrap maps x into [min, max) with a Euclidean modulo.
func Wrap(min, max, x float64) float64 {
	span := max - min
	if span <= 0 {
		return min
	}
	m := math.Mod(x-min, span)
	if m < 0 {
		m += span
	}
	return m + min
}

// Options configure a Carousel. Zero values take the defaults.
type Options struct {
	ItemWidth      float64
	Items          int
	AutoStep       float64
	Smoothing      float64
	DragFactor     float64
	ClickThreshold float64

	// Momentum lets the drag target coast on a spring after release
	// instead of stopping dead. FPS is the tick rate used by the spring.
	Momentum bool
	FPS      int
}

// Carousel is an infinitely wrapping strip that auto-scrolls and follows drags.
type Carousel struct {
	opts Options

	position float64
	target   float64
	previous float64
	speed    float64

	dragging     bool
	dragStart    float64
	lastPointer  float64
	linksEnabled bool

	spring      harmonica.Spring
	coastVel    float64
	coastTarget float64
	coasting    bool
	lastDragVel float64
}

func New(opts Options) *Carousel {
	if opts.AutoStep == 0 {
		opts.AutoStep = DefaultAutoStep
	}
	if opts.Smoothing == 0 {
		opts.Smoothing = DefaultSmoothing
	}
	if opts.DragFactor == 0 {
		opts.DragFactor = DefaultDragFactor
	}
	if opts.ClickThreshold == 0 {
		opts.ClickThreshold = DefaultClickThreshold
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	return &Carousel{
		opts:         opts,
		linksEnabled: true,
		spring:       harmonica.NewSpring(harmonica.FPS(opts.FPS), 4.0, 1.0),
	}
}

// WrapWidth is the total strip width.
func (c *Carousel) WrapWidth() float64 {
	return float64(c.opts.Items) * c.opts.ItemWidth
}

// Resize updates the measured item width and count.
func (c *Carousel) Resize(itemWidth float64, items int) {
	c.opts.ItemWidth = itemWidth
	c.opts.Items = items
}

// Tick runs one animation frame.
func (c *Carousel) Tick() {
	c.target -= c.opts.AutoStep
	if c.coasting {
		var pos float64
		pos, c.coastVel = c.spring.Update(0, c.coastVel, 0)
		c.target += pos
		if math.Abs(c.coastVel) < 1 {
			c.coasting = false
			c.coastVel = 0
		}
	}
	c.position = easing.Lerp(c.position, c.target, c.opts.Smoothing)
	c.speed = c.position - c.previous
	c.previous = c.position
}

// Position is the smoothed scroll offset.
func (c *Carousel) Position() float64 { return c.position }

// Target is the offset the position is easing towards.
func (c *Carousel) Target() float64 { return c.target }

// Speed is the position change of the last tick.
func (c *Carousel) Speed() float64 { return c.speed }

// ItemOffsets returns the wrapped x offset of every item. Offsets are
// truncated to whole pixels before wrapping.
func (c *Carousel) ItemOffsets() []float64 {
	offsets := make([]float64, c.opts.Items)
	min := -c.opts.ItemWidth
	max := c.WrapWidth() - c.opts.ItemWidth
	for i := range offsets {
		x := math.Trunc(float64(i)*c.opts.ItemWidth + c.position)
		offsets[i] = Wrap(min, max, x)
	}
	return offsets
}

// PointerDown starts a drag at x.
func (c *Carousel) PointerDown(x float64) {
	c.dragging = true
	c.dragStart = x
	c.lastPointer = x
	c.coasting = false
	c.coastVel = 0
	c.lastDragVel = 0
}

// PointerMove accumulates drag displacement. Ignored while idle.
func (c *Carousel) PointerMove(x float64) {
	if !c.dragging {
		return
	}
	delta := (x - c.lastPointer) * c.opts.DragFactor
	c.target += delta
	c.lastDragVel = delta
	c.lastPointer = x
	c.linksEnabled = false
}

// PointerUp ends a drag and classifies it by total displacement.
func (c *Carousel) PointerUp(x float64) Gesture {
	if !c.dragging {
		return None
	}
	c.dragging = false
	c.linksEnabled = true
	if c.opts.Momentum && c.lastDragVel != 0 {
		c.coasting = true
		// spring velocity is per second, drag deltas are per event
		c.coastVel = c.lastDragVel * float64(c.opts.FPS)
	}
	if math.Abs(x-c.dragStart) < c.opts.ClickThreshold {
		return Click
	}
	return Drag
}

// PointerLeave is treated like PointerUp.
func (c *Carousel) PointerLeave(x float64) Gesture {
	return c.PointerUp(x)
}

func (c *Carousel) Dragging() bool { return c.dragging }

// LinksEnabled reports whether child links accept pointer events.
func (c *Carousel) LinksEnabled() bool { return c.linksEnabled }

// ShouldPreventClick reports whether a link click must be suppressed.
func (c *Carousel) ShouldPreventClick() bool { return c.dragging }
