package viewport

import (
	"sync"
	"time"
)

// Debounce coalesces bursts of input into one trailing callback, the
// same shape as the store's change throttle: each trigger cancels any
// pending fire and schedules a new one. Stop is idempotent, and a fire
// that loses the race with a newer trigger simply never runs.
type Debounce struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	seq   int
}

// NewDebounce creates a debouncer with the given trailing delay.
func NewDebounce(delay time.Duration) *Debounce {
	return &Debounce{delay: delay}
}

// Trigger schedules fn after the delay, superseding any pending fire.
// fn runs on the timer goroutine; callers recompute against current
// state inside it rather than captured snapshots.
func (d *Debounce) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stale := seq != d.seq
		d.mu.Unlock()
		if stale {
			return
		}
		fn()
	})
}

// Stop cancels any pending fire.
func (d *Debounce) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}
