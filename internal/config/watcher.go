package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadHandler receives the freshly loaded configuration after the
// file on disk changed.
type ReloadHandler func(ctx context.Context, cfg *Config)

// Watcher re-reads the configuration file when it is rewritten so
// tunables (log level, timeouts, language set) pick up without a restart.
type Watcher struct {
	path    string
	handler ReloadHandler
	watcher *fsnotify.Watcher
}

// NewWatcher creates a Watcher for the given config file path
func NewWatcher(path string, handler ReloadHandler) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory: editors replace the file on save, which
	// drops a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &Watcher{
		path:    path,
		handler: handler,
		watcher: watcher,
	}, nil
}

// Start blocks, reloading the config on every write until ctx is done
func (w *Watcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Small delay so the writer finishes before we read
			time.Sleep(100 * time.Millisecond)

			cfg, err := Load(w.path)
			if err != nil {
				// Keep running with the previous config
				continue
			}
			w.handler(ctx, cfg)

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
		}
	}
}

// Stop closes the underlying file watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
