// Package hooks dispatches named actions and filters to registered callbacks.
//
// Actions are fire-and-forget notifications; filters thread a value through
// every callback and return the final result. Callbacks run in ascending
// priority order and, within a priority, in registration order.
package hooks

import (
	"context"
	"sort"
	"sync"
)

// DefaultPriority is used by callers that do not care about ordering.
const DefaultPriority = 10

// ActionFunc is called when an action fires.
type ActionFunc func(ctx context.Context, args ...any)

// FilterFunc receives the current value and returns the replacement.
type FilterFunc func(ctx context.Context, value any, args ...any) any

type entry[F any] struct {
	priority int
	seq      int
	fn       F
}

// Dispatcher holds the registered callbacks. The zero value is not usable; call New.
type Dispatcher struct {
	mu      sync.RWMutex
	seq     int
	actions map[string][]entry[ActionFunc]
	filters map[string][]entry[FilterFunc]
}

// New returns an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{
		actions: make(map[string][]entry[ActionFunc]),
		filters: make(map[string][]entry[FilterFunc]),
	}
}

// AddAction registers fn for the named action.
func (d *Dispatcher) AddAction(name string, fn ActionFunc, priority int) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.actions[name] = insert(d.actions[name], entry[ActionFunc]{priority: priority, seq: d.seq, fn: fn})
}

// AddFilter registers fn for the named filter.
func (d *Dispatcher) AddFilter(name string, fn FilterFunc, priority int) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.filters[name] = insert(d.filters[name], entry[FilterFunc]{priority: priority, seq: d.seq, fn: fn})
}

// DoAction calls every callback registered for name.
func (d *Dispatcher) DoAction(ctx context.Context, name string, args ...any) {
	d.mu.RLock()
	callbacks := d.actions[name]
	d.mu.RUnlock()

	for _, cb := range callbacks {
		cb.fn(ctx, args...)
	}
}

// ApplyFilter passes value through every callback registered for name.
// With no callbacks the value is returned untouched.
func (d *Dispatcher) ApplyFilter(ctx context.Context, name string, value any, args ...any) any {
	d.mu.RLock()
	callbacks := d.filters[name]
	d.mu.RUnlock()

	for _, cb := range callbacks {
		value = cb.fn(ctx, value, args...)
	}
	return value
}

// HasAction reports whether any callback is registered for the action.
func (d *Dispatcher) HasAction(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.actions[name]) > 0
}

// HasFilter reports whether any callback is registered for the filter.
func (d *Dispatcher) HasFilter(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.filters[name]) > 0
}

// Clone returns an independent dispatcher holding the same callbacks.
// Registrations on the clone do not affect the original.
func (d *Dispatcher) Clone() *Dispatcher {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c := New()
	c.seq = d.seq
	for name, list := range d.actions {
		c.actions[name] = append([]entry[ActionFunc](nil), list...)
	}
	for name, list := range d.filters {
		c.filters[name] = append([]entry[FilterFunc](nil), list...)
	}
	return c
}

// insert returns a new slice so readers holding the previous one are unaffected.
func insert[F any](list []entry[F], e entry[F]) []entry[F] {
	out := make([]entry[F], 0, len(list)+1)
	out = append(out, list...)
	out = append(out, e)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].priority != out[j].priority {
			return out[i].priority < out[j].priority
		}
		return out[i].seq < out[j].seq
	})
	return out
}
