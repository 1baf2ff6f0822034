// Package hooks is the host's lifecycle event dispatcher. Extensions register
// actions against named events; the host emits those events at startup and
// after record writes.
package hooks

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/mesh-intelligence/tmplsync/pkg/types"
)

// Database is the handle the host hands to every action.
// *sqlite.Backend satisfies it.
type Database interface {
	HasTable(ctx context.Context, name string) (bool, error)
	Templates(ctx context.Context) ([]types.TemplateRecord, error)
	Bootstrap(ctx context.Context, seed []types.TemplateRecord) error
}

// Meta is the event payload passed to actions.
type Meta struct {
	Event    string
	Database Database
	// Keys holds the primary keys of the records an items event touched.
	Keys []string
}

// Action handles one emitted event.
type Action func(ctx context.Context, meta Meta) error

// Registry holds the actions registered per event.
type Registry struct {
	mu      sync.RWMutex
	actions map[string][]Action
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string][]Action)}
}

// Action registers fn to run whenever event is emitted.
func (r *Registry) Action(event string, fn Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[event] = append(r.actions[event], fn)
}

// Events returns how many actions are registered for event.
func (r *Registry) Events(event string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions[event])
}

// Emit runs every action registered for meta.Event in registration order and
// waits for each to finish. Action errors do not stop later actions; they are
// returned together.
func (r *Registry) Emit(ctx context.Context, meta Meta) error {
	r.mu.RLock()
	actions := append([]Action(nil), r.actions[meta.Event]...)
	r.mu.RUnlock()

	var result *multierror.Error
	for i, fn := range actions {
		if err := fn(ctx, meta); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s action %d: %w", meta.Event, i, err))
		}
	}
	return result.ErrorOrNil()
}
