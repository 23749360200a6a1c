package fixtures

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/user/gridlex/internal/model"
)

const (
	// DefaultDebounceInterval is how long the watcher waits after the last
	// change before reloading.
	DefaultDebounceInterval = 100 * time.Millisecond
)

// ReloadFunc receives a freshly loaded dataset.
type ReloadFunc func(data model.Dataset)

// Watcher reloads a dataset file whenever it changes on disk.
type Watcher struct {
	path             string
	reloadFn         ReloadFunc
	log              *slog.Logger
	debounceInterval time.Duration

	watcher   *fsnotify.Watcher
	stopChan  chan struct{}
	doneChan  chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	pending *time.Timer
	started bool

	// reloadMu serializes reloads with Close.
	reloadMu sync.Mutex
}

// NewWatcher creates a watcher for the dataset at path. log may be nil.
func NewWatcher(path string, reloadFn ReloadFunc, log *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Watcher{
		path:             abs,
		reloadFn:         reloadFn,
		log:              log,
		debounceInterval: DefaultDebounceInterval,
		watcher:          fsWatcher,
		stopChan:         make(chan struct{}),
		doneChan:         make(chan struct{}),
	}, nil
}

// Start begins watching. The parent directory is watched so editors that
// save by rename are still seen.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.log.Debug("watching dataset", "path", w.path)

	w.mu.Lock()
	w.started = true
	w.mu.Unlock()
	go w.processEvents()
	return nil
}

// Close stops the watcher and waits for the event loop and any running
// reload to finish. No reload is delivered after Close returns.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.stopChan)
		w.watcher.Close()

		w.mu.Lock()
		if w.pending != nil {
			w.pending.Stop()
			w.pending = nil
		}
		started := w.started
		w.mu.Unlock()

		w.reloadMu.Lock()
		w.reloadMu.Unlock()

		if started {
			<-w.doneChan
		}
	})
}

func (w *Watcher) processEvents() {
	defer close(w.doneChan)

	for {
		select {
		case <-w.stopChan:
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
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	w.log.Debug("dataset change detected", "path", w.path, "op", event.Op.String())
	w.scheduleReload()
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.stopChan:
		return
	default:
	}

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounceInterval, w.doReload)
}

func (w *Watcher) doReload() {
	w.mu.Lock()
	w.pending = nil
	w.mu.Unlock()

	data, err := Load(w.path)
	if err != nil {
		w.log.Error("dataset reload failed", "path", w.path, "error", err)
		return
	}

	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()
	select {
	case <-w.stopChan:
		w.log.Debug("reload dropped: watcher closed", "path", w.path)
		return
	default:
	}
	w.log.Info("dataset reloaded", "path", w.path, "records", data.Len())
	w.reloadFn(data)
}
