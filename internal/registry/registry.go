// Package registry holds the named hint functions available to circuit
// files. A hint block references a function by name; the registry resolves
// the name plus an optional uint32 parameter into a concrete graph.HintFunc.
package registry

import (
	"fmt"

	"github.com/vk/circuitgo/internal/graph"
)

// Factory builds a HintFunc. param carries the optional `by` attribute of
// the hint block; hasParam is false when the attribute was omitted.
type Factory func(param uint32, hasParam bool) (graph.HintFunc, error)

// Registry maps hint-function names to their factories.
type Registry struct {
	factories map[string]Factory
}

// New creates a registry pre-populated with the builtin functions.
func New() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	registerBuiltins(r)
	return r
}

// Register adds a factory under name, replacing any previous registration.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Resolve builds the HintFunc for name. param is nil when the circuit file
// supplied no parameter.
func (r *Registry) Resolve(name string, param *uint32) (graph.HintFunc, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown hint function %q", name)
	}

	var p uint32
	if param != nil {
		p = *param
	}
	fn, err := factory(p, param != nil)
	if err != nil {
		return nil, fmt.Errorf("hint function %q: %w", name, err)
	}
	return fn, nil
}
