package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/ports"
)

// Factory builds a new, unconfigured operation plugin.
type Factory func() ports.RouteOperation

// Registry manages the available operation plugin types.
// It implements ports.OperationFactory.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a plugin type to the registry.
// If a plugin type with the same name exists, it is overwritten.
func (r *Registry) Register(pluginType string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[pluginType] = fn
}

// Create looks up a plugin type and builds a new instance of it.
// Returns an error wrapping domain.ErrPluginNotFound if the type is unknown.
func (r *Registry) Create(pluginType string) (ports.RouteOperation, error) {
	r.mu.RLock()
	fn, ok := r.factories[pluginType]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPluginNotFound, pluginType)
	}

	op := fn()
	if op == nil {
		return nil, fmt.Errorf("factory for %s returned nil", pluginType)
	}
	return op, nil
}

// Types returns the registered plugin types in ascending order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

var _ ports.OperationFactory = (*Registry)(nil)
