// Package watcher reloads workspace settings when the config file or a
// catalog file changes on disk. Scripts are never watched: every query
// reads them fresh.
package watcher

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ReloadHandler is called once per settled burst of changes to tracked files
type ReloadHandler func(changed, removed []string)

// Watcher monitors a small set of files using fsnotify. The parent
// directories are watched so that saves that replace the file via rename
// are still seen.
type Watcher struct {
	watcher   *fsnotify.Watcher
	handler   ReloadHandler
	debouncer *Debouncer

	mu    sync.Mutex
	files map[string]struct{} // absolute paths
	dirs  map[string]struct{}

	done chan struct{}
	once sync.Once
}

// New creates a watcher that calls handler after tracked files change
func New(handler ReloadHandler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:   fsw,
		handler:   handler,
		debouncer: NewDebouncer(DefaultInterval),
		files:     make(map[string]struct{}),
		dirs:      make(map[string]struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Track replaces the set of watched files. Files need not exist yet;
// creating one later triggers a reload as long as its directory exists.
func (w *Watcher) Track(paths ...string) {
	files := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			log.Printf("cannot watch %s: %v", p, err)
			continue
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for dir := range w.dirs {
		if _, keep := dirs[dir]; !keep {
			if err := w.watcher.Remove(dir); err != nil {
				log.Printf("failed to unwatch %s: %v", dir, err)
			}
		}
	}
	for dir := range dirs {
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			log.Printf("failed to watch %s: %v", dir, err)
			delete(dirs, dir)
		}
	}
	w.files = files
	w.dirs = dirs
}

// Tracked reports whether path is one of the watched files
func (w *Watcher) Tracked(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[abs]
	return ok
}

// Start begins dispatching events
func (w *Watcher) Start() {
	go w.eventLoop()
	log.Printf("settings watcher started")
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.Tracked(event.Name) {
		return
	}
	if event.Op == fsnotify.Chmod {
		return
	}

	w.debouncer.Add(event.Name, event.Op)
	w.debouncer.Flush(func(changed, removed []string) {
		log.Printf("settings changes: %d changed, %d removed", len(changed), len(removed))
		w.handler(changed, removed)
	})
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.debouncer.Stop()
		err = w.watcher.Close()
	})
	return err
}
