// Package debounce turns a rapidly changing input into committed values
// that only land after the input has been quiet for a fixed period.
package debounce

import (
	"sync"
	"time"
)

// DefaultQuiet is the quiet period used by the search box.
const DefaultQuiet = 150 * time.Millisecond

// Debouncer commits the latest pushed value once no newer value has arrived
// for the quiet period. Every Push cancels the pending commit. After Stop
// nothing is committed again.
type Debouncer struct {
	quiet  time.Duration
	commit func(string)

	mu        sync.Mutex
	timer     *time.Timer
	gen       uint64
	stopped   bool
	raw       string
	committed string
}

// New returns a debouncer that calls commit from its own goroutine.
// commit must not call back into the debouncer.
func New(quiet time.Duration, commit func(string)) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer{quiet: quiet, commit: commit}
}

// Push records a raw input value and restarts the quiet period.
func (d *Debouncer) Push(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.raw = value
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(gen, value) })
}

// A timer whose Stop lost the race with expiry still runs fire; the
// generation check turns it into a no-op.
func (d *Debouncer) fire(gen uint64, value string) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.committed = value
	d.timer = nil
	d.mu.Unlock()

	if d.commit != nil {
		d.commit(value)
	}
}

// Pending reports whether a commit is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Raw is the latest pushed value.
func (d *Debouncer) Raw() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.raw
}

// Committed is the latest value that survived the quiet period.
func (d *Debouncer) Committed() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.committed
}

// Stop cancels any pending commit. It is safe to call more than once.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
