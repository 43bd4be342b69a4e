package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/kbchat/internal/logger"
)

// WatchOptions configures change notification.
type WatchOptions struct {
	// MergeDelay is how long the watcher waits after the last event of a
	// burst before calling onChange once for the whole burst.
	MergeDelay time.Duration
}

// DefaultWatchOptions returns a 500ms merge delay.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{MergeDelay: 500 * time.Millisecond}
}

// Watch calls onChange after each burst of relevant file changes until ctx
// is cancelled. Relevant changes are creates, writes, removes and renames of
// eligible, non-hidden files other than the notes document, and removes or
// renames of extension-less paths, which may be whole directories. New
// directories are watched as they appear.
func (c *Connector) Watch(ctx context.Context, onChange func()) error {
	if _, err := os.Stat(c.root); err != nil {
		return fmt.Errorf("filesystem: root path error: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("filesystem: create watcher: %w", err)
	}
	defer w.Close()

	if err := c.addTree(w, c.root); err != nil {
		return err
	}

	delay := c.watch.MergeDelay
	if delay <= 0 {
		delay = DefaultWatchOptions().MergeDelay
	}
	timer := time.NewTimer(delay)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if c.handleFsEvent(w, ev) {
				pending = true
				timer.Reset(delay)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("filesystem: watch error: %v", err)

		case <-timer.C:
			if pending {
				pending = false
				logger.Debug("filesystem: corpus changed, notifying")
				onChange()
			}
		}
	}
}

// handleFsEvent reports whether ev should trigger a rebuild.
// Directory creation adds the new directory to the watch list.
func (c *Connector) handleFsEvent(w *fsnotify.Watcher, ev fsnotify.Event) bool {
	if ev.Name == "" || isHidden(filepath.Base(ev.Name)) || c.inHiddenDir(ev.Name) {
		return false
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if w != nil {
				if err := c.addTree(w, ev.Name); err != nil {
					logger.Warn("filesystem: watch %s: %v", ev.Name, err)
				}
			}
			return true
		}
	}

	if c.relative(ev.Name) == c.notesName {
		return false
	}
	if _, eligible := detectMIMEType(ev.Name); eligible {
		return true
	}
	// A removed directory can no longer be stat'ed.
	gone := ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
	return gone && ev.Name != c.root && filepath.Ext(ev.Name) == ""
}

func (c *Connector) inHiddenDir(path string) bool {
	for _, part := range strings.Split(c.relative(filepath.Dir(path)), "/") {
		if isHidden(part) {
			return true
		}
	}
	return false
}

func (c *Connector) addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != c.root && isHidden(d.Name()) {
			return fs.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("filesystem: watch %s: %w", path, err)
		}
		return nil
	})
}
