package theme

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	applog "shorty/internal/log"
)

// Watcher invalidates the manager's discovery cache whenever something in
// the themes directory changes.
type Watcher struct {
	manager *Manager
	fs      *fsnotify.Watcher
	// changed, when set, is called after each invalidation.
	changed func()
}

// NewWatcher watches the themes directory and each theme subdirectory.
func NewWatcher(m *Manager) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create themes watcher: %w", err)
	}
	w := &Watcher{manager: m, fs: fw}
	if err := fw.Add(m.cfg.Dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", m.cfg.Dir, err)
	}
	entries, err := os.ReadDir(m.cfg.Dir)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("read themes directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			w.add(filepath.Join(m.cfg.Dir, entry.Name()))
		}
	}
	return w, nil
}

func (w *Watcher) add(dir string) {
	if err := w.fs.Add(dir); err != nil {
		applog.Warn(context.Background(), "failed to watch theme directory", "path", dir, "error", err)
	}
}

// Run handles events until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			applog.Warn(ctx, "themes watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod {
		return
	}
	if ev.Has(fsnotify.Create) && filepath.Dir(ev.Name) == w.manager.cfg.Dir {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			w.add(ev.Name)
		}
	}
	applog.Debug(ctx, "themes directory changed", "path", ev.Name, "op", ev.Op.String())
	w.manager.Invalidate()
	if w.changed != nil {
		w.changed()
	}
}
