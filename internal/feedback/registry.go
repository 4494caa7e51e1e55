package feedback

import (
	"fmt"
	"sync"
)

// Registry resolves configured action names to registered bodies. It
// replaces the scripting-language dispatch of action definitions: Go
// consumers register bodies, config files reference them by name.
type Registry struct {
	mu     sync.RWMutex
	bodies map[string]Body
}

// NewRegistry returns an empty action registry.
func NewRegistry() *Registry {
	return &Registry{bodies: make(map[string]Body)}
}

// Register adds a named body. Registering the same name twice fails.
func (r *Registry) Register(name string, body Body) error {
	if name == "" {
		return fmt.Errorf("action name cannot be empty")
	}
	if body == nil {
		return fmt.Errorf("action %q has no body", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bodies[name]; exists {
		return fmt.Errorf("action %q already registered", name)
	}
	r.bodies[name] = body
	return nil
}

// Resolve builds an Action for a registered name, bound to params when
// given.
func (r *Registry) Resolve(name string, params map[string]any) (*Action, error) {
	r.mu.RLock()
	body, ok := r.bodies[name]
	r.mu.RUnlock()
	if !ok {
		return nil, validationErrorf("unknown action %q", name)
	}

	action := NewAction(name, body)
	if len(params) > 0 {
		action = action.WithParams(params)
	}
	return action, nil
}

// Names returns the registered action names, unordered.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.bodies))
	for name := range r.bodies {
		names = append(names, name)
	}
	return names
}
