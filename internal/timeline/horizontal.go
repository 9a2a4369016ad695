package timeline

import (
	"github.com/ivlev/scrollfx/internal/easing"
	"github.com/ivlev/scrollfx/internal/progress"
)

// HorizontalSection is the two-panel in/out choreography: the first panel's
// parts rise into place then slide out left at different speeds, the second
// panel's parts slide in from the right then rise out.
func HorizontalSection() *Timeline {
	firstIn := progress.Window{Start: 0, End: 0.25}
	firstOut := progress.Window{Start: 0.25, End: 0.5}
	secondIn := progress.Window{Start: 0.5, End: 0.75}
	secondOut := progress.Window{Start: 0.75, End: 1}

	tween := func(el string, w progress.Window, from, to Transform, ease easing.Func) Tween {
		return Tween{Element: el, Window: w, From: from, To: to, Ease: ease}
	}
	at := func(x, y float64) Transform { return Transform{XPercent: x, YPercent: y, Opacity: 1} }

	tl, err := New(
		tween("text", firstIn, at(0, 300), at(0, 0), easing.Linear),
		tween("image", firstIn, at(0, 400), at(0, 0), easing.Linear),
		tween("title", firstIn, at(0, 200), at(0, 0), easing.Linear),
		tween("text", firstOut, at(0, 0), at(-200, 0), easing.Linear),
		tween("image", firstOut, at(0, 0), at(-300, 0), easing.Linear),
		tween("title", firstOut, at(0, 0), at(-100, 0), easing.Linear),

		tween("text2", secondIn, at(200, 0), at(0, 0), easing.Linear),
		tween("image2", secondIn, at(400, 0), at(0, 0), easing.Linear),
		tween("title2", secondIn, at(300, 0), at(0, 0), easing.Linear),
		tween("text2", secondOut, at(0, 0), at(0, -200), easing.Linear),
		tween("image2", secondOut, at(0, 0), at(0, -300), easing.Linear),
		tween("title2", secondOut, at(0, 0), at(0, -100), easing.InOutSine),
	)
	if err != nil {
		panic(err) // windows above are constant
	}
	return tl
}
