// Package emit carries the notifications a section publishes to its host.
package emit

import (
	"fmt"
	"log"
	"sync"
)

type Kind string

const (
	ProgressChanged Kind = "visualSectionProgress"
	StateChanged    Kind = "visualSectionStateChange"
)

// Event mirrors the detail payload of the host notifications.
type Event struct {
	Kind          Kind
	Progress      float64
	EasedProgress float64
	IsActive      bool
	Element       string // host reference of the section, empty when unknown
}

// Emitter receives events.
type Emitter interface {
	Emit(ev Event)
}

// Func adapts a function to Emitter.
type Func func(ev Event)

func (f Func) Emit(ev Event) { f(ev) }

// Discard drops every event.
var Discard Emitter = Func(func(Event) {})

// Recorder keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events, optionally filtered by kind.
func (r *Recorder) Events(kinds ...Kind) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, len(r.events))
	for _, ev := range r.events {
		if len(kinds) == 0 || hasKind(kinds, ev.Kind) {
			out = append(out, ev)
		}
	}
	return out
}

func hasKind(kinds []Kind, k Kind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// Log writes state changes through the standard logger. Progress events are
// skipped unless Verbose is set, they arrive once per frame.
type Log struct {
	Verbose bool
}

func (l Log) Emit(ev Event) {
	if ev.Kind == ProgressChanged && !l.Verbose {
		return
	}
	log.Print(ev.String())
}

func (ev Event) String() string {
	switch ev.Kind {
	case StateChanged:
		return fmt.Sprintf("[*] %s element=%s active=%t progress=%.3f", ev.Kind, ev.Element, ev.IsActive, ev.Progress)
	default:
		return fmt.Sprintf("[*] %s element=%s progress=%.3f eased=%.3f", ev.Kind, ev.Element, ev.Progress, ev.EasedProgress)
	}
}

// Multi fans an event out to several emitters.
type Multi []Emitter

func (m Multi) Emit(ev Event) {
	for _, e := range m {
		if e != nil {
			e.Emit(ev)
		}
	}
}
