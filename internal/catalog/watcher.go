package catalog

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher serves the catalog loaded from an override file and reloads it when
// the file changes. A reload that fails keeps the previous catalog.
type Watcher struct {
	path    string
	log     *zap.Logger
	current atomic.Pointer[Catalog]

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	pending  bool
	lastSeen time.Time
	debounce time.Duration
	reloads  int
	failures int
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}

	// OnReload, when set, runs after every successful reload.
	OnReload func(*Catalog)
}

// NewWatcher loads path once. A missing or invalid file yields the built-in
// catalog and a logged warning; watching continues either way.
func NewWatcher(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     filepath.Clean(path),
		log:      log,
		watcher:  fw,
		debounce: 200 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	c, err := LoadFile(w.path)
	if err != nil {
		log.Warn("using built-in catalog", zap.String("path", w.path), zap.Error(err))
		c = Default()
	}
	w.current.Store(c)
	return w, nil
}

// Current returns the active catalog.
func (w *Watcher) Current() *Catalog {
	return w.current.Load()
}

// Stats returns the number of successful and failed reloads.
func (w *Watcher) Stats() (reloads, failures int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads, w.failures
}

// Start watches the file's directory so editors that replace the file are seen.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.log.Debug("watching catalog", zap.String("path", w.path))

	go w.run(ctx)
	return nil
}

// Stop ends watching and waits for the loop to exit. Safe to call without Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.log.Debug("error closing catalog watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending = true
			w.lastSeen = time.Now()
			w.mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("catalog watcher error", zap.Error(err))
		case <-tick.C:
			w.mu.Lock()
			due := w.pending && time.Since(w.lastSeen) >= w.debounce
			if due {
				w.pending = false
			}
			w.mu.Unlock()
			if due {
				w.reload()
			}
		}
	}
}

func (w *Watcher) reload() {
	c, err := LoadFile(w.path)
	w.mu.Lock()
	if err != nil {
		w.failures++
	} else {
		w.reloads++
	}
	w.mu.Unlock()

	if err != nil {
		w.log.Warn("ignoring invalid catalog reload", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.current.Store(c)
	w.log.Info("catalog reloaded", zap.String("path", w.path))
	if w.OnReload != nil {
		w.OnReload(c)
	}
}
