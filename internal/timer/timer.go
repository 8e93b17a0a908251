// Package timer provides the two cancellable scheduled-task handles the widgets
// need: a debouncer for search input and a repeater for the typewriter.
package timer

import (
	"sync"
	"time"
)

// Debouncer runs the most recently triggered function once the trigger has been
// quiet for the configured delay. At most one call is pending at a time.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger replaces any pending call with fn.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = time.AfterFunc(d.delay, fn)
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}

// Repeater calls a function at a fixed interval until stopped or restarted.
type Repeater struct {
	mu   sync.Mutex
	stop chan struct{}
}

func NewRepeater() *Repeater {
	return &Repeater{}
}

// Start tears down any running repetition and begins a new one.
func (r *Repeater) Start(interval time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()

	stop := make(chan struct{})
	r.stop = stop
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
}

// Stop ends the current repetition. Calling it when idle is a no-op.
func (r *Repeater) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

// Running reports whether a repetition is active.
func (r *Repeater) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

func (r *Repeater) stopLocked() {
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
}
