package carousel

import (
	"math"
	"testing"
)

func TestWrap(t *testing.T) {
	// itemWidth=100, 5 items
	min, max := -100.0, 400.0
	tests := []struct {
		x, want float64
	}{
		{-150, 350},
		{-100, -100},
		{0, 0},
		{399, 399},
		{400, -100},
		{1234, 234},
		{-1234, 266},
	}
	for _, tt := range tests {
		got := Wrap(min, max, tt.x)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Wrap(%v) = %v, want %v", tt.x, got, tt.want)
		}
		if got < min || got >= max {
			t.Errorf("Wrap(%v) = %v outside [%v, %v)", tt.x, got, min, max)
		}
	}
}

func TestTickLerpsTowardsAutoScrollTarget(t *testing.T) {
	c := New(Options{ItemWidth: 100, Items: 5})
	c.Tick()
	if c.Target() != -1 {
		t.Errorf("Target = %v, want -1", c.Target())
	}
	if math.Abs(c.Position()-(-0.1)) > 1e-12 {
		t.Errorf("Position = %v, want -0.1", c.Position())
	}
	c.Tick()
	want := -0.1*0.9 + -2*0.1
	if math.Abs(c.Position()-want) > 1e-12 {
		t.Errorf("Position = %v, want %v", c.Position(), want)
	}
	if math.Abs(c.Speed()-(want+0.1)) > 1e-12 {
		t.Errorf("Speed = %v", c.Speed())
	}
}

func TestItemOffsetsStayInRange(t *testing.T) {
	c := New(Options{ItemWidth: 100, Items: 5})
	for i := 0; i < 2000; i++ {
		c.Tick()
		for _, x := range c.ItemOffsets() {
			if x < -100 || x >= 400 {
				t.Fatalf("tick %d: offset %v outside [-100, 400)", i, x)
			}
		}
	}
}

func TestDragGestures(t *testing.T) {
	c := New(Options{ItemWidth: 100, Items: 5})

	c.PointerDown(10)
	if !c.Dragging() || !c.ShouldPreventClick() {
		t.Fatal("expected dragging state")
	}
	c.PointerMove(12)
	if c.LinksEnabled() {
		t.Error("links should be disabled mid-drag")
	}
	if got := c.PointerUp(13); got != Click {
		t.Errorf("3px gesture = %v, want click", got)
	}
	if !c.LinksEnabled() || c.Dragging() {
		t.Error("links should be restored after release")
	}
	if c.Target() != 5 {
		t.Errorf("Target = %v, want 5 (2px * 2.5)", c.Target())
	}

	c.PointerDown(100)
	c.PointerMove(60)
	c.PointerMove(40)
	if got := c.PointerLeave(40); got != Drag {
		t.Errorf("60px gesture = %v, want drag", got)
	}
	if c.Target() != 5-150 {
		t.Errorf("Target = %v, want -145", c.Target())
	}
}

func TestPointerEventsWhileIdle(t *testing.T) {
	c := New(Options{ItemWidth: 100, Items: 5})
	c.PointerMove(300)
	if c.Target() != 0 {
		t.Error("moves while idle must be ignored")
	}
	if g := c.PointerUp(0); g != None {
		t.Errorf("PointerUp while idle = %v, want none", g)
	}
}

func TestMomentumCoastsAndSettles(t *testing.T) {
	c := New(Options{ItemWidth: 100, Items: 5, Momentum: true, FPS: 60, AutoStep: 1e-9})
	c.PointerDown(0)
	c.PointerMove(20)
	c.PointerUp(20)
	released := c.Target()
	for i := 0; i < 600; i++ {
		c.Tick()
	}
	if c.Target() <= released {
		t.Errorf("momentum should carry the target forward: %v <= %v", c.Target(), released)
	}
	if c.coasting {
		t.Error("momentum should settle within ten seconds")
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		width float64
		want  Breakpoint
	}{
		{375, Mobile},
		{767, Mobile},
		{768, Tablet},
		{1023, Tablet},
		{1024, Desktop},
		{1920, Desktop},
	}
	for _, tt := range tests {
		if got := Layout(tt.width); got != tt.want {
			t.Errorf("Layout(%v) = %+v, want %+v", tt.width, got, tt.want)
		}
	}
	if w := Desktop.ItemWidth(1000); w != 200 {
		t.Errorf("ItemWidth = %v", w)
	}
}
