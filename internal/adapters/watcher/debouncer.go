package watcher

import (
	"sync"
	"time"

	"go.trai.ch/incr/internal/core/domain"
)

// Debouncer coalesces rapid filesystem events into batched
// invalidations. Events for the same identifier within one window are
// deduplicated (the latest kind wins), and batch delivery is
// serialized: a batch callback runs to completion before the next
// batch fires, so overlapping filesystem bursts never interleave.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[domain.ResourceID]domain.ChangeKind
	order    []domain.ResourceID
	timer    *time.Timer
	window   time.Duration
	callback func(batch []domain.ChangeEvent)

	deliverMu sync.Mutex
}

// NewDebouncer creates a debouncer with the given window and callback.
func NewDebouncer(window time.Duration, callback func(batch []domain.ChangeEvent)) *Debouncer {
	if window <= 0 {
		window = domain.DefaultDebounceWindow
	}
	return &Debouncer{
		pending:  make(map[domain.ResourceID]domain.ChangeKind),
		window:   window,
		callback: callback,
	}
}

// Add records an event and (re)arms the window timer.
func (d *Debouncer) Add(event domain.ChangeEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.pending[event.ID]; !exists {
		d.order = append(d.order, event.ID)
	}
	d.pending[event.ID] = event.Kind

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire runs when the window expires.
func (d *Debouncer) fire() {
	batch := d.take(true)
	if len(batch) == 0 || d.callback == nil {
		return
	}
	// Serialize with any batch still being processed.
	d.deliverMu.Lock()
	defer d.deliverMu.Unlock()
	d.callback(batch)
}

// Flush synchronously delivers all pending events. Suitable for
// teardown, where pending work must finish before proceeding.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Timer already fired; let that delivery complete instead
			// of processing the batch twice.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	d.mu.Unlock()

	batch := d.take(false)
	if len(batch) == 0 || d.callback == nil {
		return
	}
	d.deliverMu.Lock()
	defer d.deliverMu.Unlock()
	d.callback(batch)
}

// take drains the pending set into an ordered batch.
func (d *Debouncer) take(clearTimer bool) []domain.ChangeEvent {
	d.mu.Lock()
	defer d.mu.Unlock()

	if clearTimer {
		d.timer = nil
	}
	if len(d.pending) == 0 {
		return nil
	}

	batch := make([]domain.ChangeEvent, 0, len(d.order))
	for _, id := range d.order {
		batch = append(batch, domain.ChangeEvent{ID: id, Kind: d.pending[id]})
	}
	d.pending = make(map[domain.ResourceID]domain.ChangeKind)
	d.order = nil
	return batch
}
