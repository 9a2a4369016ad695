// Package measure derives layout measurements from a frame when there is no
// DOM to ask: the content width is the horizontal extent of detected content.
package measure

import (
	"image"

	"github.com/ivlev/scrollfx/internal/geometry"
)

// ContentSpan returns the horizontal extent covered by regions, clipped to
// bounds. It is zero when there are no regions.
func ContentSpan(regions []Region, bounds image.Rectangle) (minX, maxX int) {
	first := true
	for _, r := range regions {
		rect := r.Rect.Intersect(bounds)
		if rect.Empty() {
			continue
		}
		if first || rect.Min.X < minX {
			minX = rect.Min.X
		}
		if first || rect.Max.X > maxX {
			maxX = rect.Max.X
		}
		first = false
	}
	return minX, maxX
}

// Measure detects content on img and expresses its width relative to a
// container that displays the frame scaled to containerWidth. It returns nil
// when nothing was found so callers fall back to the default start size.
func Measure(det Detector, img image.Image, containerWidth, viewportWidth float64) (*geometry.Measurements, error) {
	b := img.Bounds()
	if b.Empty() || containerWidth <= 0 {
		return nil, nil
	}
	regions, err := det.Detect(img)
	if err != nil {
		return nil, err
	}
	minX, maxX := ContentSpan(regions, b)
	if maxX <= minX {
		return nil, nil
	}

	scale := containerWidth / float64(b.Dx())
	return &geometry.Measurements{
		ContentWidth:   float64(maxX-minX) * scale,
		ContainerWidth: containerWidth,
		ViewportWidth:  viewportWidth,
	}, nil
}
