package theme

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"shorty/internal/hooks"
)

// Extension contributes behaviour to a theme when it loads.
type Extension interface {
	Setup(ctx context.Context, caps *Capabilities) error
}

// ExtensionFunc adapts a function to Extension.
type ExtensionFunc func(ctx context.Context, caps *Capabilities) error

// Setup calls f.
func (f ExtensionFunc) Setup(ctx context.Context, caps *Capabilities) error {
	return f(ctx, caps)
}

// ExtensionRegistry holds extensions by name.
type ExtensionRegistry struct {
	mu   sync.RWMutex
	exts map[string]Extension
}

// NewExtensionRegistry returns an empty registry.
func NewExtensionRegistry() *ExtensionRegistry {
	return &ExtensionRegistry{exts: make(map[string]Extension)}
}

// Register adds ext under name. It panics on an empty name, a nil extension
// or a duplicate, all of which are programming errors.
func (r *ExtensionRegistry) Register(name string, ext Extension) {
	if name == "" || ext == nil {
		panic("theme: Register called with empty name or nil extension")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.exts[name]; dup {
		panic(fmt.Sprintf("theme: extension %q registered twice", name))
	}
	r.exts[name] = ext
}

// Lookup returns the extension registered under name.
func (r *ExtensionRegistry) Lookup(name string) (Extension, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ext, ok := r.exts[name]
	return ext, ok
}

// Names lists the registered extensions alphabetically.
func (r *ExtensionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.exts))
	for name := range r.exts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Capabilities records what an extension asks for during Setup. Nothing
// reaches the request until Setup returns without error.
type Capabilities struct {
	Theme string
	// URL is the public base URL of the theme directory.
	URL string

	ops []func(st *State) error
}

// EnqueueStyle queues a stylesheet.
func (c *Capabilities) EnqueueStyle(name, src string) {
	c.ops = append(c.ops, func(st *State) error { return st.EnqueueStyle(name, src) })
}

// EnqueueScript queues a script.
func (c *Capabilities) EnqueueScript(name, src string) {
	c.ops = append(c.ops, func(st *State) error { return st.EnqueueScript(name, src) })
}

// DequeueStyle removes a stylesheet queued so far.
func (c *Capabilities) DequeueStyle(name string) {
	c.ops = append(c.ops, func(st *State) error { st.DequeueStyle(name); return nil })
}

// DequeueScript removes a script queued so far.
func (c *Capabilities) DequeueScript(name string) {
	c.ops = append(c.ops, func(st *State) error { st.DequeueScript(name); return nil })
}

// AddAction hooks fn onto an action for the rest of the request.
func (c *Capabilities) AddAction(name string, fn hooks.ActionFunc, priority int) {
	c.ops = append(c.ops, func(st *State) error { st.Hooks.AddAction(name, fn, priority); return nil })
}

// AddFilter hooks fn onto a filter for the rest of the request.
func (c *Capabilities) AddFilter(name string, fn hooks.FilterFunc, priority int) {
	c.ops = append(c.ops, func(st *State) error { st.Hooks.AddFilter(name, fn, priority); return nil })
}

// RegisterStep adds or replaces a render step.
func (c *Capabilities) RegisterStep(name string, step Step) {
	c.ops = append(c.ops, func(st *State) error { st.steps.Register(name, step); return nil })
}

func (c *Capabilities) commit(st *State) error {
	for _, op := range c.ops {
		if err := op(st); err != nil {
			return err
		}
	}
	return nil
}

// runExtension calls Setup, turning a panic into an error.
func runExtension(ctx context.Context, ext Extension, caps *Capabilities) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return ext.Setup(ctx, caps)
}
