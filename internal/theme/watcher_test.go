package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherInvalidatesOnNewTheme(t *testing.T) {
	t.Parallel()

	m, dir := newTestManager(t, nil, nil)
	st := m.NewState(nil)
	if themes, _ := m.Themes(context.Background(), st); len(themes) != 0 {
		t.Fatalf("expected no themes yet")
	}

	w, err := NewWatcher(m)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	changed := make(chan struct{}, 16)
	w.changed = func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	staging := t.TempDir()
	writeTheme(t, staging, "fresh", map[string]string{"theme.css": ""})
	if err := os.Rename(filepath.Join(staging, "fresh"), filepath.Join(dir, "fresh")); err != nil {
		t.Fatalf("move theme into place: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher")
	}
	themes, err := m.Themes(context.Background(), st)
	if err != nil || len(themes) != 1 || themes[0].Dir != "fresh" {
		t.Fatalf("expected fresh theme after change, got %+v %v", themes, err)
	}
}
