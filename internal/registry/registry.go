// Package registry maps fully-qualified job names to their factories for a
// single application instance.
package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/flowchain/internal/job"
)

// Module is the interface job packages implement to self-register their
// factories into an application's registry.
type Module interface {
	Register(r *Registry)
}

// Registry holds the named job factories of one application instance.
type Registry struct {
	factories map[string]job.Factory
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		factories: make(map[string]job.Factory),
	}
}

// Register binds a job factory to a name. Registering the same name twice is
// a programmer error and panics.
func (r *Registry) Register(name string, f job.Factory) {
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("job factory with name '%s' already registered", name))
	}
	if f == nil {
		panic(fmt.Sprintf("job factory with name '%s' is nil", name))
	}
	slog.Debug("Registering job factory.", "name", name)
	r.factories[name] = f
}

// Resolve returns the factory registered under name.
func (r *Registry) Resolve(name string) (job.Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

// Names returns all registered job names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
