// Package watch reports edits to a fixed set of files, debounced, so that
// render --watch re-runs once per save instead of once per write syscall.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event for a file.
const DefaultDebounce = 200 * time.Millisecond

// Watcher monitors files for changes using fsnotify. It watches their
// directories rather than the files so that editors which save by
// rename-and-replace keep being seen.
type Watcher struct {
	Changes <-chan string // absolute path of each changed file

	files    map[string]bool
	debounce time.Duration
	changes  chan string
	done     chan struct{}
	watcher  *fsnotify.Watcher
}

// New creates a watcher for files. A zero debounce means DefaultDebounce.
func New(debounce time.Duration, files ...string) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan string, 16)
	w := &Watcher{
		Changes:  ch,
		files:    make(map[string]bool, len(files)),
		debounce: debounce,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
	}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
	}
	return w, nil
}

// Start begins watching. On failure the watcher is closed and must not be
// stopped.
func (w *Watcher) Start() error {
	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := w.watcher.Add(d); err != nil {
			w.watcher.Close()
			return err
		}
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending[name] = time.Now()
			}

		case <-ticker.C:
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= w.debounce {
					w.emit(file)
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next save retriggers.
		}
	}
}

func (w *Watcher) emit(file string) {
	select {
	case w.changes <- file:
	default:
		// Consumer is busy re-rendering; the pending run already sees this save.
	}
}
