// Package debounce delays an action until its input has been idle for a window.
package debounce

import (
	"sync"
	"time"
)

// Timer is the subset of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run after d. It matches time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithAfterFunc replaces the timer source. Tests use it to fire timers by hand.
func WithAfterFunc(fn AfterFunc) Option {
	return func(d *Debouncer) {
		d.afterFunc = fn
	}
}

// Debouncer runs the most recently triggered action once the trigger has been
// quiet for the configured window. Every Trigger restarts the window.
type Debouncer struct {
	mu        sync.Mutex
	wait      time.Duration
	afterFunc AfterFunc
	timer     Timer
	pending   func()
	gen       uint64
	stopped   bool
}

// New creates a Debouncer with the given idle window.
func New(wait time.Duration, opts ...Option) *Debouncer {
	d := &Debouncer{
		wait:      wait,
		afterFunc: realAfterFunc,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Trigger replaces the pending action with fn and restarts the window.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = d.afterFunc(d.wait, func() { d.fire(gen) })
}

// fire runs the pending action unless a newer Trigger superseded it.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil || d.stopped {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	fn()
}

// Flush runs the pending action immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.pending
	d.pending = nil
	d.gen++
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Stop cancels the pending action. Later Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.stopped = true
}
