// Package runtime is the contract generated types fulfil for their directive
// driven members: computed fields, expansion, derived and static methods, and
// default values.
package runtime

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/Yamashou/gqlir/directive"
)

// ComputeFunc produces the value of a computed field or a fn-backed method.
type ComputeFunc func(obj Object, field string, meta directive.Compute) (any, error)

// ExpandFunc builds the expansion of obj. The returned value is decoded into
// the caller's destination through its JSON shape.
type ExpandFunc func(obj Object, tmpl directive.Template) (any, error)

// Registry holds the named functions directives refer to. It is built at
// start-up and passed to every evaluation.
//
// Registering a name twice replaces the earlier function. Registration is safe
// for concurrent use, but registering while evaluations are in flight makes
// their outcome depend on timing.
type Registry struct {
	mu       sync.RWMutex
	compute  map[string]ComputeFunc
	expand   map[string]ExpandFunc
	programs sync.Map // expression source -> *vm.Program
}

func NewRegistry() *Registry {
	return &Registry{
		compute: map[string]ComputeFunc{},
		expand:  map[string]ExpandFunc{},
	}
}

func (r *Registry) RegisterComputeFunction(name string, fn ComputeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.compute[name] = fn
}

func (r *Registry) RegisterExpandFunction(name string, fn ExpandFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expand[name] = fn
}

func (r *Registry) computeFunction(name string) (ComputeFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.compute[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComputeFunction, name)
	}
	return fn, nil
}

func (r *Registry) expandFunction(name string) (ExpandFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.expand[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExpandFunction, name)
	}
	return fn, nil
}

// eval runs an expression against env. Programs are compiled once per source.
func (r *Registry) eval(src string, env map[string]any) (any, error) {
	program, err := r.program(src)
	if err != nil {
		return nil, err
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidExpression, src, err)
	}
	return out, nil
}

func (r *Registry) program(src string) (*vm.Program, error) {
	if p, ok := r.programs.Load(src); ok {
		return p.(*vm.Program), nil
	}
	// compiled without an environment: attributes differ per instance
	program, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidExpression, src, err)
	}
	p, _ := r.programs.LoadOrStore(src, program)
	return p.(*vm.Program), nil
}
