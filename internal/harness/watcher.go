package harness

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the fixture locations for changes so the suite can be
// rerun against edited fixtures.
type Watcher struct {
	roots  []string
	logger *slog.Logger
	Ready  chan struct{}

	newWatcher func() (*fsnotify.Watcher, error)
}

// NewWatcher creates a Watcher over the given root files or directories.
func NewWatcher(roots []string, logger *slog.Logger) *Watcher {
	return &Watcher{
		roots:      roots,
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
	}
}

// Watch blocks until the context is cancelled, invoking callback with the
// changed path whenever a fixture file is written or created. Bursts of
// events are debounced.
func (w *Watcher) Watch(ctx context.Context, callback func(path string)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range w.roots {
		if err := w.addRecursive(watcher, root); err != nil {
			return err
		}
	}

	w.logger.Info("Watching fixtures for changes", "roots", w.roots)
	if w.Ready != nil {
		close(w.Ready)
	}

	var timer *time.Timer
	const debounceDuration = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watcher.Errors:
			w.logger.Error("Watcher error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if path := w.handleEvent(watcher, event); path != "" {
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounceDuration, func() {
					callback(path)
				})
			}
		}
	}
}

// handleEvent processes a single fsnotify event. New directories are added to
// the watch; fixture file changes are returned for the debounced callback.
func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) string {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return ""
	}

	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			if err := w.addRecursive(watcher, event.Name); err != nil {
				w.logger.Error("Failed to watch new directory", "path", event.Name, "error", err)
			}
			return ""
		}
	}

	if isFixtureFile(event.Name) {
		return event.Name
	}
	return ""
}

// addRecursive adds the given path and all its subdirectories to the watcher.
// A root that is a single fixture file is watched directly.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && path == root {
			return watcher.Add(path)
		}
		if info.IsDir() {
			if strings.HasPrefix(filepath.Base(path), ".") && path != root {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

func isFixtureFile(path string) bool {
	switch filepath.Ext(path) {
	case ".json", ".yml", ".yaml":
		return true
	}
	return false
}
