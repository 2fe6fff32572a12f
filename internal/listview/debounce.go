// Package listview implements the order list search flow: a cancellable
// debounce timer and a fetch controller that tolerates slow, out-of-order
// store responses. It is deliberately decoupled from HTTP rendering so the
// timing behavior can be tested with simulated time.
package listview

import (
	"sync"
	"time"
)

type timer interface {
	Stop() bool
}

// Debouncer delays a call until its trigger has been quiet for the whole
// delay window. Each Schedule replaces the previously pending call.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	start   func(d time.Duration, f func()) timer
	pending timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay: delay,
		start: func(d time.Duration, f func()) timer {
			return time.AfterFunc(d, f)
		},
	}
}

// Schedule arranges for f to run after the quiescence delay, cancelling any
// previously scheduled call that has not fired yet.
func (d *Debouncer) Schedule(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = d.start(d.delay, f)
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
