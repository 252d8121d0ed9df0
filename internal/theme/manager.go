package theme

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"shorty/internal/hooks"
	"shorty/internal/i18n"
	applog "shorty/internal/log"
	"shorty/internal/sanitize"
)

// OptionActiveTheme is the option holding the active theme's directory name.
const OptionActiveTheme = "active_theme"

// Config locates themes and core assets.
type Config struct {
	// Dir is the directory holding one subdirectory per theme.
	Dir string
	// URL is the public URL of Dir.
	URL string
	// SiteURL prefixes core asset URLs.
	SiteURL string
	// Version is appended to core asset URLs.
	Version string
	// Installing and Upgrading skip theme loading in Init.
	Installing bool
	Upgrading  bool
}

// OptionStore persists named options.
type OptionStore interface {
	Get(ctx context.Context, name string) (string, bool, error)
	Update(ctx context.Context, name, value string) error
}

// Manager owns the theme configuration shared by every request.
type Manager struct {
	cfg        Config
	store      OptionStore
	hooks      *hooks.Dispatcher
	steps      *Steps
	extensions *ExtensionRegistry

	mu         sync.Mutex
	discovered []Descriptor
}

// NewManager wires a manager. Nil hooks, steps or extensions are replaced by
// empty registries.
func NewManager(cfg Config, store OptionStore, h *hooks.Dispatcher, steps *Steps, exts *ExtensionRegistry) *Manager {
	if h == nil {
		h = hooks.New()
	}
	if steps == nil {
		steps = NewSteps()
	}
	if exts == nil {
		exts = NewExtensionRegistry()
	}
	cfg.Dir = filepath.Clean(cfg.Dir)
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	return &Manager{cfg: cfg, store: store, hooks: h, steps: steps, extensions: exts}
}

// Config returns the manager's configuration.
func (m *Manager) Config() Config {
	return m.cfg
}

// NewState starts the theme state of one request.
func (m *Manager) NewState(printer *i18n.Printer) *State {
	return NewState(m.hooks, m.steps, printer)
}

func (m *Manager) themeURL(dir string, elem ...string) string {
	return m.cfg.URL + "/" + path.Join(append([]string{dir}, elem...)...)
}

// Init prepares a request: it fires init_theme, queues the core assets and,
// unless the site is installing or upgrading, loads the active theme. Theme
// load failures are reported as notices rather than returned.
func (m *Manager) Init(ctx context.Context, st *State) error {
	st.Hooks.DoAction(ctx, ActionInitTheme)

	for _, name := range []string{"style", "fonts"} {
		if err := st.EnqueueStyle(name, ""); err != nil {
			return err
		}
	}
	if err := st.EnqueueScript("admin", ""); err != nil {
		return err
	}

	if m.cfg.Installing || m.cfg.Upgrading {
		return nil
	}

	_, err := m.LoadActive(ctx, st)
	var themeErr *Error
	if errors.As(err, &themeErr) {
		return nil
	}
	return err
}

// LoadActive loads the active theme, if any. When the theme fails to load it
// is deactivated and the failure is reported as notices.
func (m *Manager) LoadActive(ctx context.Context, st *State) (bool, error) {
	st.Hooks.DoAction(ctx, ActionPreLoadActiveTheme)

	active, err := m.ActiveTheme(ctx, st)
	if err != nil {
		return false, err
	}
	if active == "" {
		st.Hooks.DoAction(ctx, ActionLoadActiveEmpty)
		return false, nil
	}

	if err := m.Load(ctx, st, active); err != nil {
		if derr := m.reset(ctx, st, active); derr != nil {
			applog.Error(ctx, "failed to deactivate broken theme", "theme", active, "error", derr)
		}
		st.AddNotice(NoticeError, err.Error())
		st.AddNotice(NoticeError, st.T(msgDeactivated, active))
		return false, err
	}

	st.Hooks.DoAction(ctx, ActionLoadActiveTheme, active)
	return true, nil
}

// Load makes a theme part of the current request: its extension runs and its
// stylesheet is queued.
func (m *Manager) Load(ctx context.Context, st *State, name string) error {
	dir, err := m.themeDir(st, name)
	if err != nil {
		return err
	}
	if err := stylesheetReadable(dir); err != nil {
		return newError(st, name, ErrStylesheetMissing, err, msgCSSMissing, name)
	}

	ext, err := m.extension(st, name, dir)
	if err != nil {
		return err
	}
	if ext != nil {
		caps := &Capabilities{Theme: name, URL: m.themeURL(name)}
		if err := runExtension(ctx, ext, caps); err != nil {
			return newError(st, name, ErrExtensionFailed, err, msgExtensionFailed, name, err)
		}
		if err := caps.commit(st); err != nil {
			return newError(st, name, ErrExtensionFailed, err, msgExtensionFailed, name, err)
		}
	}

	if err := st.EnqueueStyle(name, m.themeURL(name, stylesheetFile)); err != nil {
		return err
	}
	applog.Debug(ctx, "theme: "+name)
	st.Hooks.DoAction(ctx, ActionThemeLoaded, name)
	return nil
}

// Activate loads name and, when that succeeds, stores it as the active theme.
func (m *Manager) Activate(ctx context.Context, st *State, name string) error {
	dir, err := m.themeDir(st, name)
	if err != nil {
		return err
	}
	if err := stylesheetReadable(dir); err != nil {
		return newError(st, name, ErrStylesheetMissing, err, msgCSSMissing, name)
	}
	if _, err := m.extension(st, name, dir); err != nil {
		return err
	}

	previous, err := m.ActiveTheme(ctx, st)
	if err != nil {
		return err
	}
	if previous == name {
		return newError(st, name, ErrAlreadyActive, nil, msgAlreadyActive)
	}

	if err := m.Load(ctx, st, name); err != nil {
		st.AddNotice(NoticeError, err.Error())
		return err
	}
	if err := m.store.Update(ctx, OptionActiveTheme, name); err != nil {
		st.DequeueStyle(name)
		return fmt.Errorf("store active theme: %w", err)
	}
	if previous != "" {
		st.DequeueStyle(previous)
	}
	st.setActive(name)
	st.Hooks.DoAction(ctx, ActionActivatedTheme, name)
	st.Hooks.DoAction(ctx, "activated_"+name)
	applog.Info(ctx, "theme activated", "theme", name)
	return nil
}

// Deactivate clears the active theme. name must be the active theme.
func (m *Manager) Deactivate(ctx context.Context, st *State, name string) error {
	active, err := m.ActiveTheme(ctx, st)
	if err != nil {
		return err
	}
	if name == "" || active != name {
		return newError(st, name, ErrNotActive, nil, msgNotActive)
	}
	if err := m.reset(ctx, st, name); err != nil {
		return err
	}
	applog.Info(ctx, "theme deactivated", "theme", name)
	return nil
}

func (m *Manager) reset(ctx context.Context, st *State, name string) error {
	if err := m.store.Update(ctx, OptionActiveTheme, ""); err != nil {
		return fmt.Errorf("clear active theme: %w", err)
	}
	st.setActive("")
	st.DequeueStyle(name)
	st.Hooks.DoAction(ctx, ActionDeactivatedTheme, name)
	st.Hooks.DoAction(ctx, "deactivated_"+name)
	return nil
}

// ActiveTheme returns the active theme's directory name, or "" when none is
// active. The stored value is read once per request; a missing option is
// created empty. The result goes through the get_active_theme filter.
func (m *Manager) ActiveTheme(ctx context.Context, st *State) (string, error) {
	active, cached := st.cachedActive()
	if !cached {
		value, found, err := m.store.Get(ctx, OptionActiveTheme)
		if err != nil {
			return "", fmt.Errorf("read active theme: %w", err)
		}
		if !found {
			if err := m.store.Update(ctx, OptionActiveTheme, ""); err != nil {
				return "", fmt.Errorf("create active theme option: %w", err)
			}
		}
		active = value
		st.setActive(active)
	}
	if filtered, ok := st.Hooks.ApplyFilter(ctx, FilterActiveTheme, active).(string); ok {
		active = filtered
	}
	return active, nil
}

// themeDir validates name and returns the theme's directory.
func (m *Manager) themeDir(st *State, name string) (string, error) {
	if err := sanitize.ThemeName(name); err != nil {
		return "", newError(st, name, ErrInvalidName, err, msgInvalidName, name)
	}
	dir, err := sanitize.Join(m.cfg.Dir, name)
	if err != nil {
		return "", newError(st, name, ErrInvalidName, err, msgInvalidName, name)
	}
	return dir, nil
}

// extension resolves the theme's extension. A manifest naming an unknown
// extension is an error; without a manifest entry the extension registered
// under the theme's own name is used, if any.
func (m *Manager) extension(st *State, name, dir string) (Extension, error) {
	man, err := readManifest(dir)
	if err != nil {
		return nil, newError(st, name, ErrInvalidExtension, err, msgInvalidExtension, name)
	}
	if man != nil && strings.TrimSpace(man.Extension) != "" {
		ext, ok := m.extensions.Lookup(strings.TrimSpace(man.Extension))
		if !ok {
			return nil, newError(st, name, ErrInvalidExtension, nil, msgInvalidExtension, name)
		}
		return ext, nil
	}
	ext, _ := m.extensions.Lookup(name)
	return ext, nil
}

// stylesheetReadable reports a missing or unreadable theme.css by its path.
func stylesheetReadable(dir string) error {
	css := filepath.Join(dir, stylesheetFile)
	if !readable(css) {
		return fmt.Errorf("%s is not a readable file", sanitize.Filename(css))
	}
	return nil
}
