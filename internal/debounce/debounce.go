// Package debounce coalesces bursts of calls into a single trailing call.
package debounce

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/navsync/internal/logger"
)

// Debouncer calls fn once the quiet window has elapsed since the last
// Trigger. fn runs on its own goroutine; a panic in fn is logged, never
// propagated.
type Debouncer struct {
	wait time.Duration
	fn   func()

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

func New(wait time.Duration, fn func()) *Debouncer {
	return &Debouncer{wait: wait, fn: fn}
}

// Trigger (re)starts the quiet window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, func() { d.fire(gen) })
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Flush runs a pending call now, on the caller's goroutine.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer == nil || d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	d.mu.Unlock()

	d.call()
}

// Stop drops any pending call; later Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.call()
}

func (d *Debouncer) call() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogError("debounce: callback panicked: %v", r)
		}
	}()
	d.fn()
}
