package manager

import (
	"sync"

	"pkgview/internal/executor"
)

// Backend describes one backend and whether its binary is installed.
type Backend struct {
	Kind      Kind
	Command   Command
	Path      string // Resolved binary path, empty when not found
	Available bool
}

// Registry resolves which backends are installed on this system.
// Lookups are cached for the lifetime of the registry.
type Registry struct {
	lookPath func(string) (string, bool)
	backends map[Kind]Backend
	mu       sync.RWMutex
}

// NewRegistry creates a registry that searches PATH for backend binaries.
func NewRegistry() *Registry {
	return NewRegistryWithLookup(executor.LookPath)
}

// NewRegistryWithLookup creates a registry with a custom binary lookup.
func NewRegistryWithLookup(lookPath func(string) (string, bool)) *Registry {
	return &Registry{
		lookPath: lookPath,
		backends: make(map[Kind]Backend),
	}
}

// Get returns the backend description for k.
func (r *Registry) Get(k Kind) (Backend, error) {
	r.mu.RLock()
	b, ok := r.backends[k]
	r.mu.RUnlock()
	if ok {
		return b, nil
	}

	cmd, err := Commands(k)
	if err != nil {
		return Backend{}, err
	}

	path, found := r.lookPath(cmd.Binary)
	b = Backend{
		Kind:      k,
		Command:   cmd,
		Path:      path,
		Available: found,
	}

	r.mu.Lock()
	r.backends[k] = b
	r.mu.Unlock()

	return b, nil
}

// All returns every backend in cyclic order, available or not.
func (r *Registry) All() []Backend {
	all := make([]Backend, 0, len(Kinds()))
	for _, k := range Kinds() {
		b, err := r.Get(k)
		if err != nil {
			continue
		}
		all = append(all, b)
	}
	return all
}

// Available returns the backends whose binary is installed, in cyclic order.
func (r *Registry) Available() []Kind {
	var kinds []Kind
	for _, b := range r.All() {
		if b.Available {
			kinds = append(kinds, b.Kind)
		}
	}
	return kinds
}

// IsAvailable reports whether the binary for k is installed.
func (r *Registry) IsAvailable(k Kind) bool {
	b, err := r.Get(k)
	return err == nil && b.Available
}
