package editor

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of work into one invocation after a quiet
// window. Each Do supersedes the previous pending invocation by resetting
// the timer; there is no explicit cancel token.
type debouncer struct {
	window time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window}
}

func (d *debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Flush runs any pending invocation immediately. Used on session close so
// the last edits are not lost to the timer.
func (d *debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}
