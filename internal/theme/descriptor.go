package theme

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	applog "shorty/internal/log"
	"shorty/internal/sanitize"
)

const (
	stylesheetFile = "theme.css"
	manifestFile   = "theme.toml"
)

// screenshotExts are tried in order; the first match wins.
var screenshotExts = []string{"png", "jpg", "gif"}

// Descriptor is the metadata of an installed theme.
type Descriptor struct {
	Name        string
	URI         string
	Description string
	Version     string
	Author      string
	AuthorURI   string
	Dir         string
	Extension   string
	Screenshot  string
}

// Manifest is the optional theme.toml of a theme directory.
type Manifest struct {
	Name        string `toml:"name"`
	URI         string `toml:"uri"`
	Description string `toml:"description"`
	Version     string `toml:"version"`
	Author      string `toml:"author"`
	AuthorURI   string `toml:"author_uri"`
	Extension   string `toml:"extension"`
}

// readManifest returns a nil manifest when the file does not exist.
func readManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", manifestFile, err)
	}
	return &m, nil
}

var headerFields = map[string]func(*Descriptor, string){
	"Theme Name":  func(d *Descriptor, v string) { d.Name = v },
	"Theme URI":   func(d *Descriptor, v string) { d.URI = v },
	"Description": func(d *Descriptor, v string) { d.Description = v },
	"Version":     func(d *Descriptor, v string) { d.Version = v },
	"Author":      func(d *Descriptor, v string) { d.Author = v },
	"Author URI":  func(d *Descriptor, v string) { d.AuthorURI = v },
}

// parseHeader reads "Key: value" lines from the leading comment of theme.css.
func parseHeader(path string, d *Descriptor) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	inComment := false
	for lines := 0; scanner.Scan() && lines < 50; lines++ {
		line := strings.TrimSpace(scanner.Text())
		if !inComment {
			if line == "" {
				continue
			}
			if !strings.HasPrefix(line, "/*") {
				return nil
			}
			inComment = true
			line = strings.TrimPrefix(line, "/*")
		}
		done := false
		if i := strings.Index(line, "*/"); i >= 0 {
			line = line[:i]
			done = true
		}
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "*"))
		if key, value, ok := strings.Cut(line, ":"); ok {
			if set, known := headerFields[strings.TrimSpace(key)]; known {
				set(d, strings.TrimSpace(value))
			}
		}
		if done {
			return nil
		}
	}
	return scanner.Err()
}

// describe builds the descriptor of the theme in dir.
func (m *Manager) describe(dir string) (Descriptor, error) {
	path := filepath.Join(m.cfg.Dir, dir)
	d := Descriptor{Dir: dir}
	if err := parseHeader(filepath.Join(path, stylesheetFile), &d); err != nil {
		return d, err
	}
	man, err := readManifest(path)
	if err != nil {
		return d, err
	}
	if man != nil {
		override(&d.Name, man.Name)
		override(&d.URI, man.URI)
		override(&d.Description, man.Description)
		override(&d.Version, man.Version)
		override(&d.Author, man.Author)
		override(&d.AuthorURI, man.AuthorURI)
		d.Extension = man.Extension
	}
	if d.Name == "" {
		d.Name = dir
	}
	d.Screenshot = m.Screenshot(dir)
	return d, nil
}

func override(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// Screenshot returns the URL of the theme's screenshot, or "".
func (m *Manager) Screenshot(dir string) string {
	if sanitize.ThemeName(dir) != nil {
		return ""
	}
	for _, ext := range screenshotExts {
		name := "screenshot." + ext
		if _, err := os.Stat(filepath.Join(m.cfg.Dir, dir, name)); err == nil {
			return m.themeURL(dir, name)
		}
	}
	return ""
}

// Themes lists the installed themes, sorted with SortThemes. Discovery is
// cached until Invalidate.
func (m *Manager) Themes(ctx context.Context, st *State) ([]Descriptor, error) {
	themes, err := m.discover(ctx)
	if err != nil {
		return nil, err
	}
	m.SortThemes(ctx, st, themes)
	return themes, nil
}

func (m *Manager) discover(ctx context.Context) ([]Descriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.discovered != nil {
		return append([]Descriptor(nil), m.discovered...), nil
	}

	entries, err := os.ReadDir(m.cfg.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		m.discovered = []Descriptor{}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read themes directory: %w", err)
	}

	themes := make([]Descriptor, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if !readable(filepath.Join(m.cfg.Dir, entry.Name(), stylesheetFile)) {
			continue
		}
		d, err := m.describe(entry.Name())
		if err != nil {
			applog.Warn(ctx, "skipping theme with unreadable metadata", "theme", entry.Name(), "error", err)
			continue
		}
		themes = append(themes, d)
	}
	m.discovered = themes
	return append([]Descriptor(nil), themes...), nil
}

// Invalidate drops the cached discovery result.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.discovered = nil
	m.mu.Unlock()
}

// SortThemes sorts themes in place. The field comes from the
// themes_sort_field filter (default Name) and the order from
// themes_sort_order (ASC or DESC).
func (m *Manager) SortThemes(ctx context.Context, st *State, themes []Descriptor) {
	field, _ := st.Hooks.ApplyFilter(ctx, FilterSortField, "Name").(string)
	order, _ := st.Hooks.ApplyFilter(ctx, FilterSortOrder, "ASC").(string)
	key := sortKey(field)
	desc := strings.EqualFold(strings.TrimSpace(order), "DESC")

	sort.SliceStable(themes, func(i, j int) bool {
		a, b := strings.ToLower(key(themes[i])), strings.ToLower(key(themes[j]))
		if desc {
			return a > b
		}
		return a < b
	})
}

func sortKey(field string) func(Descriptor) string {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(field), "_", "")) {
	case "uri", "themeuri":
		return func(d Descriptor) string { return d.URI }
	case "description":
		return func(d Descriptor) string { return d.Description }
	case "version":
		return func(d Descriptor) string { return d.Version }
	case "author":
		return func(d Descriptor) string { return d.Author }
	case "authoruri":
		return func(d Descriptor) string { return d.AuthorURI }
	case "dir", "directory":
		return func(d Descriptor) string { return d.Dir }
	default:
		return func(d Descriptor) string { return d.Name }
	}
}

func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && info.Mode().IsRegular()
}
