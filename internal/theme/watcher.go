package theme

import (
	"log/slog"
	"os"
	"sync"
	"time"
)

// Watcher watches a user theme file for changes and triggers hot-reload.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	name string
	path string

	pollInterval time.Duration
	modTime      time.Time

	onChangeCallback func(Theme)

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a new theme file watcher.
func NewWatcher(name, path string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		logger:       logger,
		name:         name,
		path:         path,
		pollInterval: 1 * time.Second,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// SetPollInterval sets the polling interval for file changes.
func (w *Watcher) SetPollInterval(interval time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pollInterval = interval
}

// SetChangeCallback sets the callback to invoke when the theme changes.
// The callback receives the newly parsed theme.
func (w *Watcher) SetChangeCallback(callback func(Theme)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChangeCallback = callback
}

// Start begins watching the theme file for changes.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	if info, err := os.Stat(w.path); err == nil {
		w.modTime = info.ModTime()
	}
	w.mu.Unlock()

	go w.watchLoop()

	w.logger.Debug("theme watcher started", "path", w.path, "interval", w.pollInterval)
}

// Stop stops watching the theme file.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
	w.logger.Debug("theme watcher stopped")
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// watchLoop is the main polling loop.
func (w *Watcher) watchLoop() {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.checkForChanges()
		}
	}
}

// checkForChanges re-parses the file when its modification time advances.
func (w *Watcher) checkForChanges() {
	w.mu.RLock()
	path := w.path
	name := w.name
	modTime := w.modTime
	callback := w.onChangeCallback
	w.mu.RUnlock()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			w.logger.Debug("theme file no longer exists", "path", path)
		}
		return
	}

	if !info.ModTime().After(modTime) {
		return
	}

	t, err := ParseThemeFile(name, path)
	if err != nil {
		w.logger.Warn("failed to reload theme", "path", path, "error", err)
		return
	}

	w.mu.Lock()
	w.modTime = info.ModTime()
	w.mu.Unlock()

	w.logger.Info("theme file changed, reloading", "path", path)
	if callback != nil {
		callback(t)
	}
}
