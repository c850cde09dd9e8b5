package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formwidgets/pkg/render/template"
)

// Registry stores template engines by name. Widgets pick an engine through
// their Engine field; an empty name resolves to the registry default.
type Registry struct {
	mu       sync.RWMutex
	engines  map[string]template.TemplateRenderer
	fallback string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[string]template.TemplateRenderer),
	}
}

// Register adds an engine under name. Duplicate names return an error. The
// first registered engine becomes the default.
func (r *Registry) Register(name string, engine template.TemplateRenderer) error {
	if engine == nil {
		return fmt.Errorf("render: engine is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("render: engine name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.engines[name]; exists {
		return fmt.Errorf("render: engine %q already registered", name)
	}

	r.engines[name] = engine
	if r.fallback == "" {
		r.fallback = name
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, engine template.TemplateRenderer) {
	if err := r.Register(name, engine); err != nil {
		panic(err)
	}
}

// SetDefault selects the engine returned for an empty name.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.engines[name]; !ok {
		return fmt.Errorf("render: engine %q not found", name)
	}
	r.fallback = name
	return nil
}

// Default returns the name of the default engine.
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}

// Get retrieves an engine by name.
func (r *Registry) Get(name string) (template.TemplateRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.TrimSpace(name) == "" {
		name = r.fallback
	}
	engine, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("render: engine %q not found", name)
	}
	return engine, nil
}

// MustGet panics if the engine is missing.
func (r *Registry) MustGet(name string) template.TemplateRenderer {
	engine, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return engine
}

// List returns a sorted list of engine names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether an engine is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.engines[name]
	return ok
}
