package schedule

import "sync"

// FrameRequester coalesces per-frame callbacks: only the most recently
// requested callback runs on the next Flush, so at most one recomputation
// happens per display refresh no matter how many events arrived.
type FrameRequester struct {
	mu       sync.Mutex
	pending  func()
	dropped  uint64
	executed uint64
}

// Request replaces any pending callback with f.
func (r *FrameRequester) Request(f func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending != nil {
		r.dropped++
	}
	r.pending = f
}

// Pending reports whether a callback waits for the next frame.
func (r *FrameRequester) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending != nil
}

// Cancel drops the pending callback.
func (r *FrameRequester) Cancel() {
	r.mu.Lock()
	r.pending = nil
	r.mu.Unlock()
}

// Flush runs the pending callback, if any. Callbacks may request the next frame.
func (r *FrameRequester) Flush() bool {
	r.mu.Lock()
	f := r.pending
	r.pending = nil
	if f != nil {
		r.executed++
	}
	r.mu.Unlock()

	if f == nil {
		return false
	}
	f()
	return true
}

// Counts returns how many callbacks ran and how many were replaced before running.
func (r *FrameRequester) Counts() (executed, dropped uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.executed, r.dropped
}
