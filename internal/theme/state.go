package theme

import (
	"context"

	"shorty/internal/hooks"
	"shorty/internal/i18n"
)

// Notice levels.
const (
	NoticeInfo  = "info"
	NoticeError = "error"
)

// Notice is a message shown to the administrator on the next rendered page.
type Notice struct {
	Level   string
	Message string
}

// State is the request-scoped theme context.
type State struct {
	// Hooks is a per-request copy of the global dispatcher.
	Hooks *hooks.Dispatcher

	steps   *Steps
	assets  *AssetQueue
	notices []Notice
	active  *string
	printer *i18n.Printer
}

// NewState builds a state from copies of h and steps.
func NewState(h *hooks.Dispatcher, steps *Steps, printer *i18n.Printer) *State {
	if h == nil {
		h = hooks.New()
	}
	if steps == nil {
		steps = NewSteps()
	}
	return &State{
		Hooks:   h.Clone(),
		steps:   steps.Clone(),
		assets:  newAssetQueue(),
		printer: printer,
	}
}

// Steps returns the render steps available to this request.
func (s *State) Steps() *Steps {
	return s.steps
}

// Assets returns the request's asset queue.
func (s *State) Assets() *AssetQueue {
	return s.assets
}

// Printer returns the message printer for the request's language.
func (s *State) Printer() *i18n.Printer {
	return s.printer
}

// T formats a message in the request's language.
func (s *State) T(key string, args ...any) string {
	return s.printer.Sprintf(key, args...)
}

// AddNotice queues a message for the administrator.
func (s *State) AddNotice(level, message string) {
	if message == "" {
		return
	}
	s.notices = append(s.notices, Notice{Level: level, Message: message})
}

// Notices returns the queued notices in insertion order.
func (s *State) Notices() []Notice {
	return append([]Notice(nil), s.notices...)
}

// cachedActive returns the cached active theme and whether it was loaded.
func (s *State) cachedActive() (string, bool) {
	if s.active == nil {
		return "", false
	}
	return *s.active, true
}

func (s *State) setActive(name string) {
	s.active = &name
}

type stateKey struct{}

// WithState returns a context carrying st.
func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

// StateFrom returns the state stored by WithState, or nil.
func StateFrom(ctx context.Context) *State {
	st, _ := ctx.Value(stateKey{}).(*State)
	return st
}
