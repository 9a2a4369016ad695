package renderer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/scrollfx/internal/geometry"
	"github.com/ivlev/scrollfx/internal/section"
	"github.com/ivlev/scrollfx/internal/system"
)

// Layout is the output canvas the preview is composed on.
type Layout struct {
	Width        int
	Height       int
	H2FontSize   float64 // px, unit of the vertical clip padding
	HeaderHeight float64 // px, added to the top inset
	StripHeight  int     // carousel strip height, 0 disables the strip
	ItemGap      int
}

// Shot is everything drawn in one output frame.
type Shot struct {
	Frame     image.Image // sequence frame, nil when not loaded
	State     section.State
	Items     []float64 // carousel item offsets
	ItemWidth float64
	Dragging  bool
}

var (
	backdrop    = color.RGBA{R: 12, G: 12, B: 16, A: 255}
	placeholder = color.RGBA{R: 48, G: 48, B: 56, A: 255}
	stripColors = []color.RGBA{
		{R: 230, G: 90, B: 70, A: 255},
		{R: 240, G: 180, B: 60, A: 255},
		{R: 90, G: 180, B: 120, A: 255},
		{R: 70, G: 140, B: 220, A: 255},
		{R: 150, G: 100, B: 210, A: 255},
	}
)

// Compositor draws section states into RGBA frames.
type Compositor struct {
	layout Layout
	pool   *system.ImagePool
}

func NewCompositor(layout Layout, pool *system.ImagePool) *Compositor {
	if pool == nil {
		pool = system.NewImagePool()
	}
	if layout.H2FontSize <= 0 {
		layout.H2FontSize = 48
	}
	return &Compositor{layout: layout, pool: pool}
}

func (c *Compositor) bounds() image.Rectangle {
	return image.Rect(0, 0, c.layout.Width, c.layout.Height)
}

// Compose renders one frame. Hand the result back with Release once written.
func (c *Compositor) Compose(shot Shot) *image.RGBA {
	rect := c.bounds()
	dst := c.pool.Get(rect)
	draw.Draw(dst, rect, image.NewUniform(backdrop), image.Point{}, draw.Src)

	layer := c.pool.Get(rect)
	defer c.pool.Put(layer)
	if shot.Frame != nil {
		coverScale(layer, shot.Frame)
	} else {
		draw.Draw(layer, rect, image.NewUniform(placeholder), image.Point{}, draw.Src)
	}

	c.blur(layer, shot.State.Filter.Blur)
	brighten(layer, shot.State.Filter.Brightness)

	clip := c.ClipRect(shot.State.Geometry)
	draw.DrawMask(dst, clip.Rect, layer, clip.Rect.Min, clip, clip.Rect.Min, draw.Over)

	c.drawStrip(dst, shot)
	return dst
}

// Release returns a composed frame to the pool.
func (c *Compositor) Release(img *image.RGBA) {
	c.pool.Put(img)
}

// ClipRect converts the clip geometry into pixels on the canvas.
func (c *Compositor) ClipRect(g geometry.ClipGeometry) RoundedRect {
	w, h := float64(c.layout.Width), float64(c.layout.Height)
	in := g.Inset()

	top := in.Top*c.layout.H2FontSize + c.layout.HeaderHeight
	bottom := h - in.Bottom*c.layout.H2FontSize
	left := in.Left / 100 * w
	right := w - in.Right/100*w
	if bottom < top {
		bottom = top
	}

	return RoundedRect{
		Rect:   image.Rect(int(math.Round(left)), int(math.Round(top)), int(math.Round(right)), int(math.Round(bottom))),
		Radius: in.Radius / 100 * math.Max(w, h), // max(r lvh, r lvw)
	}
}

// coverScale fills dst with src scaled to cover it, cropping the overflow.
func coverScale(dst *image.RGBA, src image.Image) {
	db, sb := dst.Bounds(), src.Bounds()
	if sb.Empty() {
		return
	}
	scale := math.Max(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	cw := int(float64(db.Dx()) / scale)
	ch := int(float64(db.Dy()) / scale)
	x0 := sb.Min.X + (sb.Dx()-cw)/2
	y0 := sb.Min.Y + (sb.Dy()-ch)/2
	xdraw.ApproxBiLinear.Scale(dst, db, src, image.Rect(x0, y0, x0+cw, y0+ch), draw.Src, nil)
}

// blur approximates a gaussian of the given radius by scaling down and back up.
func (c *Compositor) blur(img *image.RGBA, radius float64) {
	if radius < 0.5 {
		return
	}
	b := img.Bounds()
	factor := 1 + radius/2
	small := image.Rect(0, 0, max(1, int(float64(b.Dx())/factor)), max(1, int(float64(b.Dy())/factor)))
	tmp := c.pool.Get(small)
	defer c.pool.Put(tmp)

	xdraw.ApproxBiLinear.Scale(tmp, small, img, b, draw.Src, nil)
	xdraw.BiLinear.Scale(img, b, tmp, small, draw.Src, nil)
}

func brighten(img *image.RGBA, k float64) {
	if k >= 1 {
		return
	}
	if k < 0 {
		k = 0
	}
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = uint8(float64(pix[i]) * k)
		pix[i+1] = uint8(float64(pix[i+1]) * k)
		pix[i+2] = uint8(float64(pix[i+2]) * k)
	}
}

func (c *Compositor) drawStrip(dst *image.RGBA, shot Shot) {
	sh := c.layout.StripHeight
	if sh <= 0 || shot.ItemWidth <= 0 {
		return
	}
	canvas := dst.Bounds()
	top := canvas.Max.Y - sh
	gap := c.layout.ItemGap
	for i, x := range shot.Items {
		col := stripColors[i%len(stripColors)]
		if shot.Dragging {
			col.A = 200
		}
		r := image.Rect(int(x)+gap/2, top, int(x+shot.ItemWidth)-gap/2, canvas.Max.Y).Intersect(canvas)
		if r.Empty() {
			continue
		}
		draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Over)
	}
}

// RoundedRect is an alpha mask of a rectangle with rounded corners.
type RoundedRect struct {
	Rect   image.Rectangle
	Radius float64
}

func (r RoundedRect) ColorModel() color.Model { return color.AlphaModel }

func (r RoundedRect) Bounds() image.Rectangle { return r.Rect }

func (r RoundedRect) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(r.Rect) {
		return color.Transparent
	}
	rad := math.Min(r.Radius, float64(min(r.Rect.Dx(), r.Rect.Dy()))/2)
	if rad <= 0 {
		return color.Opaque
	}

	px, py := float64(x)+0.5, float64(y)+0.5
	cx := clampf(px, float64(r.Rect.Min.X)+rad, float64(r.Rect.Max.X)-rad)
	cy := clampf(py, float64(r.Rect.Min.Y)+rad, float64(r.Rect.Max.Y)-rad)
	if math.Hypot(px-cx, py-cy) <= rad {
		return color.Opaque
	}
	return color.Transparent
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
