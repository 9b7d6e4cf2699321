package registry

import (
	"sort"
	"sync"

	"github.com/arthur-debert/bioreport/pkg/errors"
)

// Registry holds named components of one kind, e.g. the format parsers
// keyed by module name. It is safe for concurrent use. Once frozen it only
// serves lookups, which is how the engine shares it between scan workers.
type Registry[T any] struct {
	kind string

	mu     sync.RWMutex
	items  map[string]T
	frozen bool
}

// New creates an empty registry. kind names the components in errors,
// e.g. "parser".
func New[T any](kind string) *Registry[T] {
	if kind == "" {
		kind = "item"
	}
	return &Registry[T]{kind: kind, items: make(map[string]T)}
}

// Kind returns the component label given to New
func (r *Registry[T]) Kind() string {
	return r.kind
}

// Register adds item under name. Empty names, duplicates and registration
// after Freeze are rejected.
func (r *Registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.Newf(errors.ErrInvalidInput, "%s name cannot be empty", r.kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.Newf(errors.ErrInternal, "%s registry is frozen, cannot register %q", r.kind, name).
			WithDetail("name", name)
	}
	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "%s %q is already registered", r.kind, name).
			WithDetail("name", name)
	}
	r.items[name] = item
	return nil
}

// Get returns the component registered under name. A miss is an
// ErrNotFound whose "registered" detail lists the known names.
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	item, exists := r.items[name]
	r.mu.RUnlock()

	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "no %s registered as %q", r.kind, name).
			WithDetail("name", name).
			WithDetail("registered", r.Names())
	}
	return item, nil
}

// Names returns the registered names, sorted
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[name]
	return exists
}

// Len returns the number of registered components
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// Freeze rejects any further registration
func (r *Registry[T]) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frozen = true
}

// Frozen reports whether Freeze was called
func (r *Registry[T]) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.frozen
}
