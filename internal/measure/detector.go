package measure

import (
	"fmt"
	"image"
)

// Region is a detected area of visible content on a frame.
type Region struct {
	Rect       image.Rectangle
	Confidence float64 // 0.0-1.0
}

// Detector finds content regions on a frame.
type Detector interface {
	Detect(img image.Image) ([]Region, error)
}

// NewDetector creates a detector based on the specified variant
func NewDetector(variant string) (Detector, error) {
	switch variant {
	case "contrast", "":
		return NewContrastDetector(), nil
	case "full":
		return FullFrame{}, nil
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}

// FullFrame treats the whole frame as content.
type FullFrame struct{}

func (FullFrame) Detect(img image.Image) ([]Region, error) {
	return []Region{{Rect: img.Bounds(), Confidence: 1}}, nil
}
