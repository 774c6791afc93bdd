package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrRendererNotFound is wrapped by Get and First when no renderer matches,
// so callers can branch with errors.Is.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry holds the renderers an orchestrator can dispatch to, keyed by
// Renderer.Name(). The zero value is not usable; construct with NewRegistry.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds a renderer under its own name. Registration is first-wins: a
// second renderer claiming the same name is rejected rather than replacing
// the earlier one.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[name]; taken {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.byName[name] = renderer
	return nil
}

// MustRegister panics on registration failure. Intended for startup wiring
// where a name clash is a programming error.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered under name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q: %w", name, ErrRendererNotFound)
	}
	return renderer, nil
}

// First returns the renderer whose name sorts first, the fallback when no
// name was requested and no default is configured.
func (r *Registry) First() (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.byName) == 0 {
		return nil, fmt.Errorf("render: registry is empty: %w", ErrRendererNotFound)
	}
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return r.byName[names[0]], nil
}

// Has reports whether a renderer is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byName[name]
	return ok
}

// List returns the registered names sorted for stable iteration.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
