package content

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// DirWatcher watches the content directory and rescans the store when
// articles change on disk.
type DirWatcher struct {
	watcher *fsnotify.Watcher
	store   *Store
	done    chan struct{}
	mu      sync.Mutex
	running bool
}

// NewDirWatcher creates a watcher over the store's content directory.
func NewDirWatcher(store *Store) (*DirWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &DirWatcher{
		watcher: watcher,
		store:   store,
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching the directory for changes.
func (dw *DirWatcher) Start() error {
	dw.mu.Lock()
	if dw.running {
		dw.mu.Unlock()
		return nil
	}
	dw.running = true
	dw.mu.Unlock()

	if err := dw.watcher.Add(dw.store.Dir()); err != nil {
		return err
	}

	go dw.watch()
	return nil
}

// watch is the main watch loop.
func (dw *DirWatcher) watch() {
	for {
		select {
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Ext(event.Name) != ".md" {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				slog.Debug("content changed, rescanning", "file", event.Name, "op", event.Op)
				for _, err := range dw.store.Rescan() {
					slog.Warn("rescan error", "error", err)
				}
			}

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("content watcher error", "error", err)

		case <-dw.done:
			return
		}
	}
}

// Stop stops the directory watcher.
func (dw *DirWatcher) Stop() error {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if !dw.running {
		return nil
	}

	dw.running = false
	close(dw.done)
	return dw.watcher.Close()
}
