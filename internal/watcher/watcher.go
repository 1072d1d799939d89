// Package watcher monitors a text file for changes so the host can
// re-run structure analysis on save.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change reports that the watched file settled after a modification.
type Change struct {
	Path      string
	Size      int64
	Timestamp time.Time
}

// Watcher monitors a single file with debouncing: the file must be
// quiet for the debounce interval before a Change is emitted, so rapid
// editor save bursts collapse into one re-analysis.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration

	changes chan Change
	errors  chan error

	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// New creates a watcher for path with the given debounce interval.
func New(path string, debounce time.Duration) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		path:      absPath,
		debounce:  debounce,
		changes:   make(chan Change, 16),
		errors:    make(chan error, 4),
		done:      make(chan struct{}),
	}, nil
}

// Changes returns the channel of debounced file changes.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Errors returns the channel of watch errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Start begins watching. Watching the parent directory rather than the
// file itself survives editors that replace the file on save.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop shuts the watcher down and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.done)
		w.fsWatcher.Close()
		w.wg.Wait()
		close(w.changes)
		close(w.errors)
	})
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			info, err := os.Stat(w.path)
			if err != nil {
				// File may be mid-replace; the next event retries.
				continue
			}
			select {
			case w.changes <- Change{Path: w.path, Size: info.Size(), Timestamp: time.Now()}:
			case <-w.done:
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}
