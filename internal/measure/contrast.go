package measure

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// ContrastDetector finds content by edge density using a Sobel operator.
type ContrastDetector struct {
	MinArea       int     // Minimum area in pixels² at analysis scale
	EdgeThreshold float64 // Gradient magnitude threshold
	MaxSide       int     // frames are downscaled so the longer side fits, 0 = no scaling
}

// NewContrastDetector creates a new contrast-based detector with default settings
func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		MinArea:       500,  // ~22x22 pixels minimum
		EdgeThreshold: 30.0, // Moderate sensitivity
		MaxSide:       640,
	}
}

// Detect returns content regions in the coordinates of img.
func (d *ContrastDetector) Detect(img image.Image) ([]Region, error) {
	gray, scale := d.prepare(img)

	edges := sobel(gray, d.EdgeThreshold)
	dilated := dilate(edges, 5, 2)

	b := img.Bounds()
	var regions []Region
	for _, rect := range components(dilated) {
		if rect.Dx()*rect.Dy() < d.MinArea {
			continue
		}
		regions = append(regions, Region{
			Rect: image.Rect(
				b.Min.X+int(float64(rect.Min.X)*scale),
				b.Min.Y+int(float64(rect.Min.Y)*scale),
				b.Min.X+int(math.Ceil(float64(rect.Max.X)*scale)),
				b.Min.Y+int(math.Ceil(float64(rect.Max.Y)*scale)),
			).Intersect(b),
			Confidence: 0.7,
		})
	}
	return regions, nil
}

// prepare converts img to a zero-origin grayscale copy, downscaled when
// larger than MaxSide. scale maps analysis pixels back to img pixels.
func (d *ContrastDetector) prepare(img image.Image) (*image.Gray, float64) {
	b := img.Bounds()
	scale := 1.0
	if longest := max(b.Dx(), b.Dy()); d.MaxSide > 0 && longest > d.MaxSide {
		scale = float64(longest) / float64(d.MaxSide)
	}

	w := max(1, int(float64(b.Dx())/scale))
	h := max(1, int(float64(b.Dy())/scale))
	gray := image.NewGray(image.Rect(0, 0, w, h))
	if scale == 1 {
		draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(gray, gray.Bounds(), img, b, draw.Src, nil)
	}
	return gray, scale
}

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// sobel marks pixels whose gradient magnitude exceeds threshold.
func sobel(gray *image.Gray, threshold float64) *image.Gray {
	b := gray.Bounds()
	edges := image.NewGray(b)

	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		for x := b.Min.X + 1; x < b.Max.X-1; x++ {
			var sx, sy float64
			for ky := -1; ky <= 1; ky++ {
				row := gray.PixOffset(x-1, y+ky)
				for kx := 0; kx < 3; kx++ {
					v := float64(gray.Pix[row+kx])
					sx += v * sobelX[ky+1][kx]
					sy += v * sobelY[ky+1][kx]
				}
			}
			if math.Hypot(sx, sy) > threshold {
				edges.Pix[edges.PixOffset(x, y)] = 255
			}
		}
	}
	return edges
}

// dilate grows white areas so nearby edges merge into one component.
func dilate(img *image.Gray, kernelSize, iterations int) *image.Gray {
	b := img.Bounds()
	half := kernelSize / 2
	result := img

	for iter := 0; iter < iterations; iter++ {
		next := image.NewGray(b)
		for y := b.Min.Y + half; y < b.Max.Y-half; y++ {
			for x := b.Min.X + half; x < b.Max.X-half; x++ {
				var peak uint8
				for ky := -half; ky <= half && peak < 255; ky++ {
					row := result.PixOffset(x-half, y+ky)
					for _, v := range result.Pix[row : row+kernelSize] {
						if v > peak {
							peak = v
						}
					}
				}
				next.Pix[next.PixOffset(x, y)] = peak
			}
		}
		result = next
	}
	return result
}

// components returns the bounding boxes of 4-connected white areas.
func components(img *image.Gray) []image.Rectangle {
	b := img.Bounds()
	visited := make([]bool, b.Dx()*b.Dy())
	idx := func(x, y int) int { return (y-b.Min.Y)*b.Dx() + (x - b.Min.X) }
	on := func(x, y int) bool { return img.Pix[img.PixOffset(x, y)] > 128 }

	var rects []image.Rectangle
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if visited[idx(x, y)] || !on(x, y) {
				continue
			}

			r := image.Rect(x, y, x+1, y+1)
			stack := []image.Point{{X: x, Y: y}}
			visited[idx(x, y)] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				r = r.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))

				for _, n := range [4]image.Point{{X: p.X + 1, Y: p.Y}, {X: p.X - 1, Y: p.Y}, {X: p.X, Y: p.Y + 1}, {X: p.X, Y: p.Y - 1}} {
					if !n.In(b) || visited[idx(n.X, n.Y)] || !on(n.X, n.Y) {
						continue
					}
					visited[idx(n.X, n.Y)] = true
					stack = append(stack, n)
				}
			}
			rects = append(rects, r)
		}
	}
	return rects
}
