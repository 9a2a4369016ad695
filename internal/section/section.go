package section

import (
	"sync"
	"time"

	"github.com/ivlev/scrollfx/internal/activation"
	"github.com/ivlev/scrollfx/internal/easing"
	"github.com/ivlev/scrollfx/internal/emit"
	"github.com/ivlev/scrollfx/internal/geometry"
	"github.com/ivlev/scrollfx/internal/progress"
	"github.com/ivlev/scrollfx/internal/schedule"
)

// DefaultResizeDelay is the quiet period before a resize is applied.
const DefaultResizeDelay = 100 * time.Millisecond

// Host is the rendering side of a section: it measures the layout and
// applies the computed state. A nil Host means the background element is
// absent, in which case rendering is skipped but activation still runs.
type Host interface {
	Measure() *geometry.Measurements
	HeaderHeight() float64
	Apply(st State)
}

// State is everything a host needs to draw the section at one progress.
type State struct {
	Progress float64
	Eased    float64 // --scroll-percentage
	Peak     float64 // --scroll-peak-percentage
	Geometry geometry.ClipGeometry
	ClipPath string
	Filter   geometry.FilterDescriptor
	Active   bool // thresholded flag, not the debounced state
}

type Options struct {
	Calc        *geometry.Calculator
	Threshold   float64
	Delay       time.Duration // activation debounce
	ResizeDelay time.Duration // 0 = DefaultResizeDelay
	Element     string
	Host        Host
	Scheduler   schedule.Scheduler
	Emitter     emit.Emitter

	// AnnounceInitial makes Init emit the initial activation state.
	AnnounceInitial bool
}

// Section ties geometry, activation and notifications together for one
// page section.
type Section struct {
	calc     *geometry.Calculator
	host     Host
	element  string
	emitter  emit.Emitter
	machine  *activation.Machine
	resize   *schedule.Debouncer
	mu       sync.Mutex
	progress float64
	start    float64
	header   float64
	closed   bool
}

func New(opts Options) (*Section, error) {
	if opts.Calc == nil {
		calc, err := geometry.NewCalculator(progress.Window{Start: 0.1, End: 0.9}, 5)
		if err != nil {
			return nil, err
		}
		opts.Calc = calc
	}
	if opts.Scheduler == nil {
		opts.Scheduler = schedule.Clock{}
	}
	if opts.Emitter == nil {
		opts.Emitter = emit.Discard
	}
	if opts.ResizeDelay <= 0 {
		opts.ResizeDelay = DefaultResizeDelay
	}

	machine, err := activation.New(activation.Options{
		Threshold:       opts.Threshold,
		Delay:           opts.Delay,
		Element:         opts.Element,
		Scheduler:       opts.Scheduler,
		Emitter:         opts.Emitter,
		AnnounceInitial: opts.AnnounceInitial,
	})
	if err != nil {
		return nil, err
	}

	s := &Section{
		calc:    opts.Calc,
		host:    opts.Host,
		element: opts.Element,
		emitter: opts.Emitter,
		machine: machine,
		resize:  schedule.NewDebouncer(opts.Scheduler, opts.ResizeDelay),
		start:   geometry.DefaultStartSize,
	}
	s.measure()
	return s, nil
}

// Init renders progress 0 and runs the activation check right away.
func (s *Section) Init() {
	s.mu.Lock()
	s.progress = 0
	s.mu.Unlock()
	s.render(0)
	s.machine.Check()
}

// UpdateProgress renders p, notifies listeners and schedules the debounced
// activation check.
func (s *Section) UpdateProgress(p float64) {
	p = progress.Clamp(p)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.progress = p
	s.mu.Unlock()

	s.render(p)
	s.machine.Update(p)
}

// Render computes the state at p from the current measurements.
func (s *Section) Render(p float64) State {
	p = progress.Clamp(p)
	s.mu.Lock()
	start, header := s.start, s.header
	s.mu.Unlock()

	g := s.calc.Compute(p, start)
	return State{
		Progress: p,
		Eased:    easing.InOutSine(p),
		Peak:     easing.InOutPeak(p),
		Geometry: g,
		ClipPath: g.ClipPath(header),
		Filter:   geometry.Filter(p),
		Active:   p >= s.machine.Threshold(),
	}
}

func (s *Section) render(p float64) {
	if s.host == nil {
		return
	}
	st := s.Render(p)
	s.host.Apply(st)
	s.emitter.Emit(emit.Event{
		Kind:          emit.ProgressChanged,
		Progress:      st.Progress,
		EasedProgress: st.Eased,
		IsActive:      s.machine.IsActive(),
		Element:       s.element,
	})
}

// Resize schedules a remeasure. Bursts collapse into one refresh.
func (s *Section) Resize() {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}
	s.resize.Trigger(s.Refresh)
}

// Refresh remeasures and re-renders the last progress without waiting for a
// new scroll update.
func (s *Section) Refresh() {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}
	s.measure()
	s.mu.Lock()
	p := s.progress
	s.mu.Unlock()
	s.render(p)
}

func (s *Section) measure() {
	if s.host == nil {
		return
	}
	start := geometry.StartSize(s.host.Measure())
	header := s.host.HeaderHeight()
	if header < 0 {
		header = 0
	}
	s.mu.Lock()
	s.start, s.header = start, header
	s.mu.Unlock()
}

// Destroy cancels pending work. Later updates are ignored.
func (s *Section) Destroy() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.resize.Cancel()
	s.machine.Stop()
}

func (s *Section) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// StartSize returns the measured initial mask width.
func (s *Section) StartSize() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start
}

func (s *Section) Activation() *activation.Machine {
	return s.machine
}
