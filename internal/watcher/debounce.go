package watcher

import (
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultInterval is how long the debouncer waits for writes to settle
const DefaultInterval = 100 * time.Millisecond

// Debouncer batches file change events so that an editor's
// write-rename-chmod burst on save triggers a single reload
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]fsnotify.Op
	interval time.Duration
	timer    *time.Timer
}

// NewDebouncer creates a debouncer that fires interval after the last event
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		pending:  make(map[string]fsnotify.Op),
		interval: interval,
	}
}

// Add records a file change event, combining ops seen for the same path
func (d *Debouncer) Add(path string, op fsnotify.Op) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending[path] |= op
}

// Flush restarts the quiet-period timer. When it expires the pending
// events are split into changed and removed paths, each sorted, and handed
// to callback on its own goroutine.
func (d *Debouncer) Flush(callback func(changed, removed []string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		changed, removed := d.drain()
		if len(changed) > 0 || len(removed) > 0 {
			go callback(changed, removed)
		}
	})
}

// Stop cancels a pending flush and discards queued events
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = make(map[string]fsnotify.Op)
}

func (d *Debouncer) drain() (changed, removed []string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for path, op := range d.pending {
		switch {
		case op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename):
			removed = append(removed, path)
		case op.Has(fsnotify.Write) || op.Has(fsnotify.Create):
			changed = append(changed, path)
		}
	}
	d.pending = make(map[string]fsnotify.Op)

	sort.Strings(changed)
	sort.Strings(removed)
	return changed, removed
}
