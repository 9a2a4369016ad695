package activation

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ivlev/scrollfx/internal/emit"
	"github.com/ivlev/scrollfx/internal/progress"
	"github.com/ivlev/scrollfx/internal/schedule"
)

// ErrInvalidThreshold is returned for thresholds outside [0, 1].
var ErrInvalidThreshold = errors.New("activation threshold must be within [0, 1]")

type State int

const (
	Unknown State = iota // before the first check
	Inactive
	Active
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// Options configure a Machine.
type Options struct {
	Threshold float64
	Delay     time.Duration
	Element   string
	Scheduler schedule.Scheduler // defaults to schedule.Clock
	Emitter   emit.Emitter       // defaults to emit.Discard

	// AnnounceInitial starts the machine in Unknown so that the first check
	// always emits, letting the host apply its initial classes.
	AnnounceInitial bool
}

// Machine is a two-state activation flag whose observable transitions are
// debounced: only the last update inside a quiet window is checked, and a
// notification is emitted only when the state actually flips.
type Machine struct {
	threshold float64
	element   string
	emitter   emit.Emitter
	debounce  *schedule.Debouncer

	mu       sync.Mutex
	state    State
	progress float64
}

func New(opts Options) (*Machine, error) {
	if opts.Threshold < 0 || opts.Threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, opts.Threshold)
	}
	if opts.Delay < 0 {
		return nil, fmt.Errorf("debounce delay must be >= 0, got %v", opts.Delay)
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = schedule.Clock{}
	}
	emitter := opts.Emitter
	if emitter == nil {
		emitter = emit.Discard
	}
	initial := Inactive
	if opts.AnnounceInitial {
		initial = Unknown
	}
	return &Machine{
		state:     initial,
		threshold: opts.Threshold,
		element:   opts.Element,
		emitter:   emitter,
		debounce:  schedule.NewDebouncer(sched, opts.Delay),
	}, nil
}

// Update records progress, schedules the debounced check and returns the
// thresholded flag immediately for rendering.
func (m *Machine) Update(p float64) bool {
	p = progress.Clamp(p)
	m.mu.Lock()
	m.progress = p
	m.mu.Unlock()

	m.debounce.Trigger(func() { m.Check() })
	return p >= m.threshold
}

// Check applies the thresholded flag for the last recorded progress. It
// reports whether the state changed.
func (m *Machine) Check() bool {
	m.mu.Lock()
	next := Inactive
	if m.progress >= m.threshold {
		next = Active
	}
	if next == m.state {
		m.mu.Unlock()
		return false
	}
	m.state = next
	ev := emit.Event{
		Kind:     emit.StateChanged,
		Progress: m.progress,
		IsActive: next == Active,
		Element:  m.element,
	}
	m.mu.Unlock()

	m.emitter.Emit(ev)
	return true
}

// Stop cancels a pending check.
func (m *Machine) Stop() {
	m.debounce.Cancel()
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) IsActive() bool {
	return m.State() == Active
}

// Progress returns the last recorded progress.
func (m *Machine) Progress() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progress
}

func (m *Machine) Threshold() float64 {
	return m.threshold
}
