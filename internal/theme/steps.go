package theme

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/a-h/templ"
)

// Layout parts.
const (
	PartBefore = "before"
	PartAfter  = "after"

	// StepEnding closes the document once the after part has rendered.
	StepEnding = "html_ending"
)

// Default step names.
const (
	StepSidebarStart = "sidebar_start"
	StepLogo         = "logo"
	StepGlobalStats  = "global_stats"
	StepMenu         = "menu"
	StepFooter       = "footer"
	StepSidebarEnd   = "sidebar_end"
	StepWrapperStart = "wrapper_start"
	StepWrapperEnd   = "wrapper_end"
)

// Page is handed to every render step.
type Page struct {
	Part    string
	Context string
	Title   string
	State   *State
	Args    map[string]any
}

// Step renders one named piece of a page.
type Step func(ctx context.Context, page Page) templ.Component

// Steps maps step names to renderers.
type Steps struct {
	mu    sync.RWMutex
	steps map[string]Step
}

// NewSteps returns an empty registry.
func NewSteps() *Steps {
	return &Steps{steps: make(map[string]Step)}
}

// Register adds or replaces a step. A nil step is ignored.
func (s *Steps) Register(name string, step Step) {
	if step == nil || name == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps[name] = step
}

// Lookup returns the step registered under name.
func (s *Steps) Lookup(name string) (Step, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	step, ok := s.steps[name]
	return step, ok
}

// Names lists the registered steps alphabetically.
func (s *Steps) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.steps))
	for name := range s.steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the registry.
func (s *Steps) Clone() *Steps {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := NewSteps()
	for name, step := range s.steps {
		c.steps[name] = step
	}
	return c
}

// Layout lists the steps rendered for each part of a page.
type Layout map[string][]string

// DefaultLayout returns the stock admin layout.
func DefaultLayout() Layout {
	return Layout{
		PartBefore: {
			StepSidebarStart,
			StepLogo,
			StepGlobalStats,
			StepMenu,
			StepFooter,
			StepSidebarEnd,
			StepWrapperStart,
		},
		PartAfter: {StepWrapperEnd},
	}
}

// RenderTemplateContent renders part of a page after letting html_template_content
// filters rearrange the layout.
func (m *Manager) RenderTemplateContent(ctx context.Context, w io.Writer, st *State, part string, page Page) error {
	layout := DefaultLayout()
	switch filtered := st.Hooks.ApplyFilter(ctx, FilterTemplateContent, layout, part, page).(type) {
	case Layout:
		layout = filtered
	case map[string][]string:
		layout = Layout(filtered)
	}
	return m.renderPart(ctx, w, st, layout, part, page)
}

// RenderDefaultContent renders part of a page with the stock layout, ignoring filters.
func (m *Manager) RenderDefaultContent(ctx context.Context, w io.Writer, st *State, part string, page Page) error {
	return m.renderPart(ctx, w, st, DefaultLayout(), part, page)
}

func (m *Manager) renderPart(ctx context.Context, w io.Writer, st *State, layout Layout, part string, page Page) error {
	names := append([]string(nil), layout[part]...)
	if part == PartAfter {
		names = append(names, StepEnding)
	}

	steps := make([]Step, 0, len(names))
	var missing []string
	for _, name := range names {
		step, ok := st.steps.Lookup(name)
		if !ok {
			missing = append(missing, name)
			st.AddNotice(NoticeError, st.T(msgUndefinedStep, name))
			continue
		}
		steps = append(steps, step)
	}
	if len(missing) > 0 {
		return &UnknownStepsError{Part: part, Names: missing}
	}

	page.Part = part
	page.State = st
	for _, step := range steps {
		if err := step(ctx, page).Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}
