package schedule

import (
	"sync"
	"time"
)

// Throttler coalesces a burst of triggers into at most one callback per
// interval. The first Trigger of a burst arms a timer; further triggers
// before it fires are absorbed. The callback always runs on the trailing
// edge, so the final trigger of a burst is never lost.
type Throttler struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func()
	armed    bool
	stopped  bool
	timer    *time.Timer
}

// NewThrottler creates a Throttler that invokes fn at most once per
// interval. fn must be non-nil.
func NewThrottler(interval time.Duration, fn func()) *Throttler {
	return &Throttler{
		interval: interval,
		fn:       fn,
	}
}

// Trigger requests a callback. If one is already scheduled for this
// interval, the trigger is coalesced into it. Calling Trigger after Stop is
// a no-op.
func (t *Throttler) Trigger() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped || t.armed {
		return
	}

	t.armed = true
	t.timer = time.AfterFunc(t.interval, t.fire)
}

// fire runs the callback and re-opens the gate for the next burst.
func (t *Throttler) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.armed = false
	t.timer = nil
	t.mu.Unlock()

	t.fn()
}

// Pending reports whether a callback is currently scheduled.
func (t *Throttler) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.armed
}

// Stop cancels any pending callback and disables the throttler.
func (t *Throttler) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
	t.armed = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
