package plugin

import (
	"fmt"
	"sync"
)

// Registry manages the plugins known to this binary.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*Plugin
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]*Plugin)}
}

// Register adds a plugin to the registry.
func (r *Registry) Register(p *Plugin) error {
	if p == nil {
		return fmt.Errorf("cannot register nil plugin")
	}
	if p.ID == "" {
		return fmt.Errorf("cannot register plugin with empty id")
	}
	if p.Apply == nil {
		return fmt.Errorf("plugin %q has no generator", p.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[p.ID]; exists {
		return fmt.Errorf("plugin %q is already registered", p.ID)
	}

	r.plugins[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

// Get retrieves a plugin by id.
func (r *Registry) Get(id string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[id]
	return p, ok
}

// Has checks whether a plugin is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.plugins[id]
	return ok
}

// IDs returns registered plugin ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Features returns the plugins offered in the manual feature
// multi-select, in registration order.
func (r *Registry) Features() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var features []*Plugin
	for _, id := range r.order {
		if p := r.plugins[id]; p.Feature != "" {
			features = append(features, p)
		}
	}
	return features
}

// Size returns the number of registered plugins.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.plugins)
}
