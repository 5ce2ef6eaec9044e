package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDebounce is how long Watch waits for file events to settle before reloading.
const DefaultReloadDebounce = 250 * time.Millisecond

// Watchable reports whether the catalog source is a local file that Watch can follow.
func (c *Catalog) Watchable() bool {
	_, ok := localPath(c.source)
	return ok
}

// Watch reloads the catalog whenever its source file changes, until ctx is cancelled.
// The parent directory is watched so that editors which replace the file on save are handled.
// A replacement that fails to load or validate is logged and the last good catalog stays active.
func (c *Catalog) Watch(ctx context.Context, debounce time.Duration) error {
	path, ok := localPath(c.source)
	if !ok {
		return fmt.Errorf("catalog source '%s' is not a local file", c.Source())
	}
	if debounce <= 0 {
		debounce = DefaultReloadDebounce
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve catalog path '%s': %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create catalog watcher: %w", err)
	}
	defer func() {
		_ = w.Close()
	}()

	if err := w.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch catalog directory '%s': %w", filepath.Dir(absPath), err)
	}

	c.logger.Info("Watching catalog source for changes", "path", absPath)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("Catalog watcher stopped")
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			c.logger.Trace("Catalog source event", "op", event.Op.String())
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("Catalog watcher error", "error", err)
		case <-timer.C:
			if err := c.Reload(); err != nil {
				c.logger.Error("Failed to reload catalog, keeping previous entries", "error", err)
				continue
			}
			c.logger.Info("Catalog reloaded", "entries", c.Len())
		}
	}
}
