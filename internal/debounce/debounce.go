// Package debounce coalesces rapid value changes into a single delayed emission.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet interval used for search input.
const DefaultDelay = 1500 * time.Millisecond

// Debouncer emits the last value passed to Start once no further Start call
// has happened for the configured delay. Intermediate values are dropped.
// Safe for concurrent use.
type Debouncer[T any] struct {
	delay    time.Duration
	listener func(T)

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// New creates a Debouncer that calls listener from its own goroutine.
func New[T any](delay time.Duration, listener func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, listener: listener}
}

// Start schedules value for emission, superseding any pending one.
func (d *Debouncer[T]) Start(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A later Start or Stop may have raced with this timer firing.
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.listener(value)
	})
}

// Stop cancels the pending emission, if any.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether an emission is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
