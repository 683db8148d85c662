// Package backend watches the menu definition on disk and publishes a freshly
// parsed forest whenever the file changes.
package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/popup-widgets/internal/logging"
	"github.com/atomicstack/popup-widgets/internal/menu"
	"github.com/fsnotify/fsnotify"
)

// Event conveys a reloaded forest or the error that prevented loading it.
type Event struct {
	Path   string
	Forest menu.Forest
	Err    error
}

// Watcher reloads one menu file. The parent directory is watched rather than
// the file so editors that save through a rename are still seen.
type Watcher struct {
	path     string
	interval time.Duration
	load     func(string) (menu.Forest, error)

	fs     *fsnotify.Watcher
	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. Reloads are spaced at least interval
// apart so a burst of writes produces one event.
func NewWatcher(path string, interval time.Duration) (*Watcher, error) {
	return newWatcher(path, interval, menu.LoadForest)
}

func newWatcher(path string, interval time.Duration, load func(string) (menu.Forest, error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve menu path: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create menu watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		interval: interval,
		load:     load,
		fs:       fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of reload events. It is closed after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Stop cancels the watcher. Use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
	_ = w.fs.Close()
}

// Wait blocks until the watch loop has exited and the events channel is
// closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	throttle := newThrottle(w.interval)
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			throttle.wait()
			w.drain()
			if !w.emit() {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Error(fmt.Errorf("menu watcher: %w", err))
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// drain discards events that queued up while throttled; the reload that
// follows reads the latest contents anyway.
func (w *Watcher) drain() {
	for {
		select {
		case _, ok := <-w.fs.Events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (w *Watcher) emit() bool {
	forest, err := w.load(w.path)
	evt := Event{Path: w.path, Forest: forest, Err: err}
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
