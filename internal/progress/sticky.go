package progress

import "math"

// StickyFractions holds the measurements of a pinned hero wrapper
// and derives the scroll fractions that drive it.
type StickyFractions struct {
	WrapperTop      float64 // bounding rect top, negative once scrolled past
	WrapperHeight   float64
	ContainerHeight float64 // pinned canvas container
	ViewportHeight  float64
}

// TextIn is the progress through the pinned part of the wrapper.
func (s StickyFractions) TextIn() float64 {
	scrolled := math.Max(0, -s.WrapperTop)
	return Ratio(scrolled, s.WrapperHeight-s.ViewportHeight)
}

// TextOut is the progress through the viewport height after the sticky end point.
// Zero while the wrapper is still pinned.
func (s StickyFractions) TextOut() float64 {
	stickyEnd := -(s.WrapperHeight - s.ViewportHeight)
	if s.WrapperTop > stickyEnd {
		return 0
	}
	return Ratio(math.Abs(s.WrapperTop-stickyEnd), s.ViewportHeight)
}

// Video is the progress through wrapper plus container, used for frame scrubbing.
func (s StickyFractions) Video() float64 {
	scrolled := math.Max(0, -s.WrapperTop)
	return Ratio(scrolled, s.WrapperHeight+s.ContainerHeight-s.ViewportHeight)
}
