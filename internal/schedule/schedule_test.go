package schedule

import (
	"testing"
	"time"
)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	m := NewManual()
	var order []int
	m.AfterFunc(30*time.Millisecond, func() { order = append(order, 3) })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	m.AfterFunc(20*time.Millisecond, func() { order = append(order, 2) })

	m.Advance(15 * time.Millisecond)
	if len(order) != 1 || order[0] != 1 {
		t.Fatalf("after 15ms fired %v, want [1]", order)
	}
	m.Advance(time.Second)
	if len(order) != 3 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("fired %v, want [1 2 3]", order)
	}
	if m.Now() != 15*time.Millisecond+time.Second {
		t.Errorf("Now = %v", m.Now())
	}
	if m.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", m.Pending())
	}
}

func TestManualStop(t *testing.T) {
	m := NewManual()
	fired := false
	task := m.AfterFunc(time.Millisecond, func() { fired = true })
	if !task.Stop() {
		t.Error("first Stop should report true")
	}
	if task.Stop() {
		t.Error("second Stop should report false")
	}
	m.Advance(time.Second)
	if fired {
		t.Error("stopped task fired")
	}
}

func TestManualChainedTasks(t *testing.T) {
	m := NewManual()
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 5 {
			m.AfterFunc(10*time.Millisecond, tick)
		}
	}
	m.AfterFunc(10*time.Millisecond, tick)
	m.Advance(35 * time.Millisecond)
	if count != 3 {
		t.Errorf("count after 35ms = %d, want 3", count)
	}
	m.Advance(time.Second)
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
}

func TestDebouncerOnlyLastTriggerRuns(t *testing.T) {
	m := NewManual()
	d := NewDebouncer(m, 150*time.Millisecond)
	var got []string
	d.Trigger(func() { got = append(got, "a") })
	m.Advance(100 * time.Millisecond)
	d.Trigger(func() { got = append(got, "b") })
	m.Advance(100 * time.Millisecond)
	d.Trigger(func() { got = append(got, "c") })

	if len(got) != 0 {
		t.Fatalf("debounced calls ran early: %v", got)
	}
	m.Advance(150 * time.Millisecond)
	if len(got) != 1 || got[0] != "c" {
		t.Fatalf("got %v, want [c]", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	m := NewManual()
	d := NewDebouncer(m, 10*time.Millisecond)
	ran := false
	d.Trigger(func() { ran = true })
	if !d.Cancel() {
		t.Error("Cancel should report a pending call")
	}
	if d.Cancel() {
		t.Error("second Cancel should report nothing pending")
	}
	m.Advance(time.Second)
	if ran {
		t.Error("cancelled call ran")
	}
}

func TestFrameRequesterCoalesces(t *testing.T) {
	var r FrameRequester
	var seen []float64
	for _, p := range []float64{0.1, 0.2, 0.3} {
		p := p
		r.Request(func() { seen = append(seen, p) })
	}
	if !r.Pending() {
		t.Fatal("expected a pending callback")
	}
	if !r.Flush() {
		t.Fatal("Flush should run the pending callback")
	}
	if r.Flush() {
		t.Error("second Flush should be a no-op")
	}
	if len(seen) != 1 || seen[0] != 0.3 {
		t.Errorf("seen %v, want only the latest [0.3]", seen)
	}
	executed, dropped := r.Counts()
	if executed != 1 || dropped != 2 {
		t.Errorf("Counts = (%d, %d), want (1, 2)", executed, dropped)
	}
}
