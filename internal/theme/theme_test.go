package theme

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type memStore struct {
	mu     sync.Mutex
	values map[string]string
	writes int
	// updateErr, when set, fails every Update.
	updateErr error
}

func newMemStore(initial map[string]string) *memStore {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &memStore{values: values}
}

func (s *memStore) Get(_ context.Context, name string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[name]
	return v, ok, nil
}

func (s *memStore) Update(_ context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	s.values[name] = value
	s.writes++
	return nil
}

func (s *memStore) value(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[name]
	return v, ok
}

// writeTheme creates dir/name with the given files.
func writeTheme(t *testing.T, dir, name string, files map[string]string) {
	t.Helper()
	themeDir := filepath.Join(dir, name)
	if err := os.MkdirAll(themeDir, 0o755); err != nil {
		t.Fatalf("mkdir theme: %v", err)
	}
	for file, content := range files {
		if err := os.WriteFile(filepath.Join(themeDir, file), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", file, err)
		}
	}
}

func newTestManager(t *testing.T, store *memStore, exts *ExtensionRegistry) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	if store == nil {
		store = newMemStore(nil)
	}
	m := NewManager(Config{
		Dir:     dir,
		URL:     "http://sho.rt/user/themes/",
		SiteURL: "http://sho.rt",
		Version: "1.2",
	}, store, nil, nil, exts)
	return m, dir
}
