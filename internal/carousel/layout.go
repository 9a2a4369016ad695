package carousel

// Breakpoint is the responsive layout for a viewport width.
type Breakpoint struct {
	ItemsPerView int
	Padding      string
}

var (
	Mobile  = Breakpoint{ItemsPerView: 2, Padding: "0.25rem"}
	Tablet  = Breakpoint{ItemsPerView: 3, Padding: "0.5rem"}
	Desktop = Breakpoint{ItemsPerView: 5, Padding: "0.75rem"}
)

// Layout picks the breakpoint for a viewport width.
func Layout(viewportWidth float64) Breakpoint {
	switch {
	case viewportWidth < 768:
		return Mobile
	case viewportWidth < 1024:
		return Tablet
	default:
		return Desktop
	}
}

// ItemWidth splits the container between the visible items.
func (b Breakpoint) ItemWidth(containerWidth float64) float64 {
	if b.ItemsPerView <= 0 {
		return containerWidth
	}
	return containerWidth / float64(b.ItemsPerView)
}
