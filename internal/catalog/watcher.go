package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of fsnotify events an editor or
// atomic rename produces into a single reload.
const reloadDebounce = 250 * time.Millisecond

// Watcher reloads the catalog from an override file whenever it changes
// on disk. A reload that fails to parse keeps the previous snapshot.
type Watcher struct {
	path     string
	logger   *slog.Logger
	onReload func(*Catalog)

	watcher *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for the override file at path. onReload is
// called with each successfully parsed snapshot.
func NewWatcher(path string, logger *slog.Logger, onReload func(*Catalog)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the parent directory so atomic temp+rename updates are seen.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch catalog directory: %w", err)
	}

	return &Watcher{
		path:     filepath.Clean(path),
		logger:   logger,
		onReload: onReload,
		watcher:  fsw,
	}, nil
}

// Start blocks processing events until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("Watching catalog override file", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Catalog watcher error", "error", err)
		}
	}
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *Watcher) reload() {
	c, err := LoadFile(w.path)
	if err != nil {
		w.logger.Error("Failed to reload catalog, keeping previous snapshot",
			"path", w.path, "error", err)
		return
	}

	w.logger.Info("Catalog reloaded",
		"path", w.path, "wines", len(c.Wines()), "flavors", len(c.Flavors()))
	w.onReload(c)
}
