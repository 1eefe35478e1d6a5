package voice

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 500 * time.Millisecond

// Watcher rescans a Manager whenever model files are added, removed or
// renamed under its catalog root.
type Watcher struct {
	manager *Manager
	fsw     *fsnotify.Watcher
	rescans atomic.Uint32
}

// NewWatcher watches the manager's root and its immediate subdirectories.
func NewWatcher(manager *Manager) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("voice: failed to create file watcher: %w", err)
	}

	w := &Watcher{manager: manager, fsw: fsw}
	if err := w.addTree(manager.Options().Root); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Run processes events until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// New language folders need their own watch.
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(event.Name); err != nil {
						slog.Warn("Failed to watch language directory", "path", event.Name, "error", err)
					}
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, w.rescan)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			slog.Error("Voice watcher error", "error", err)
		}
	}
}

// Rescans returns how many rescans the watcher has triggered.
func (w *Watcher) Rescans() uint32 {
	return w.rescans.Load()
}

func (w *Watcher) rescan() {
	count := w.rescans.Add(1)
	slog.Info("Voice directory changed, rescanning", "count", count)

	if err := w.manager.Rescan(); err != nil {
		slog.Error("Failed to rescan voices", "error", err)
	}
}

func (w *Watcher) addTree(root string) error {
	if root == "" {
		return fmt.Errorf("voice: no catalog root to watch")
	}

	if err := w.fsw.Add(root); err != nil {
		return fmt.Errorf("voice: failed to watch %s: %w", root, err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("voice: failed to read %s: %w", root, err)
	}

	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())
		if !isDir(dir, entry) {
			continue
		}

		if err := w.fsw.Add(dir); err != nil {
			slog.Warn("Failed to watch language directory", "path", dir, "error", err)
		}
	}

	return nil
}
