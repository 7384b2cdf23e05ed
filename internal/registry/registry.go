// Package registry implements the process-wide mapping from registered names
// to constructible artifact implementations.
//
// The registry is populated once during process initialization via explicit
// Register calls and read thereafter. Registration is one-shot: rebinding an
// identifier fails with ErrDuplicateRegistration rather than updating. There
// is no removal operation.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"strata/internal/artifact"
)

// Registry errors
var (
	ErrDuplicateRegistration = errors.New("identifier already registered")
	ErrNilConstructor        = errors.New("constructor cannot be nil")
)

// Constructor builds an unmaterialized implementation instance from a name
// and its declared configuration.
type Constructor func(name string, cfg artifact.Config) (artifact.Implementation, error)

// Registry maps string identifiers to implementation constructors. Safe for
// concurrent use; reads never block each other once startup registration has
// completed.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Constructor
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]Constructor),
	}
}

// Register binds an identifier to a constructor. Returns
// ErrDuplicateRegistration if the identifier is already bound; the first
// registration remains intact.
func (r *Registry) Register(identifier string, ctor Constructor) error {
	if ctor == nil {
		return ErrNilConstructor
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[identifier]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRegistration, identifier)
	}
	r.entries[identifier] = ctor
	return nil
}

// Get returns the constructor bound to the identifier. The second return
// value is false when the identifier is unregistered; callers must check it
// rather than letting construction fail later with an opaque error.
func (r *Registry) Get(identifier string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.entries[identifier]
	return ctor, ok
}

// IsRegistered reports whether the identifier is bound.
func (r *Registry) IsRegistered(identifier string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[identifier]
	return ok
}

// Names returns all registered identifiers, sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Construct looks up the identifier and builds an instance in one step.
// Returns artifact.ErrUnregisteredImplementation when the identifier is not
// bound.
func (r *Registry) Construct(identifier, name string, cfg artifact.Config) (artifact.Implementation, error) {
	ctor, ok := r.Get(identifier)
	if !ok {
		return nil, fmt.Errorf("%w: %s", artifact.ErrUnregisteredImplementation, identifier)
	}
	return ctor(name, cfg)
}
