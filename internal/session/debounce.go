package session

import (
	"sync"
	"time"
)

// Debouncer is a generic trailing debounce: the emit callback fires with the
// most recent value once no new value has arrived for the quiet period.
// Every Set resets the timer. Values are emitted on a timer goroutine; the
// consumer owns any equality checks, since rapidly rebuilt deep values never
// share identity.
type Debouncer[T any] struct {
	mu      sync.Mutex
	quiet   time.Duration
	emit    func(T)
	timer   *time.Timer
	seq     uint64
	pending T
	stopped bool
}

// NewDebouncer constructs a debouncer with the given quiet period.
func NewDebouncer[T any](quiet time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{quiet: quiet, emit: emit}
}

// Set records a new value and restarts the quiet-period timer.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = value
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(seq) })
}

// Cancel drops any pending value without emitting it.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels any pending value and rejects further Set calls.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()
	// A timer that lost a race with a newer Set or a Cancel must not emit.
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.timer = nil
	d.mu.Unlock()

	d.emit(value)
}
