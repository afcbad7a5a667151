// Package objective provides a registry of named objective functions for the
// optimizer.
package objective

import (
	"fmt"
	"sort"

	"github.com/wildfunctions/steepest_descent/pkg/expr"
)

// Objective is a scalar expression together with its control variables and a
// starting point.
type Objective interface {
	Name() string
	Description() string
	Expr() expr.ExprNode
	Vars() []*expr.VarNode
	// Start returns a fresh binding; callers may mutate it.
	Start() expr.Binding
	// Minimum returns the known minimizer, or nil if there is none.
	Minimum() expr.Binding
}

var registry = map[string]func() Objective{}

// Register adds an objective constructor to the registry.
func Register(name string, constructor func() Objective) {
	registry[name] = constructor
}

// Get returns an objective by name.
func Get(name string) (Objective, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown objective: %s (available: %v)", name, Names())
	}
	return ctor(), nil
}

// Names returns all registered objective names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// static is an Objective backed by a fixed tree.
type static struct {
	name        string
	description string
	tree        expr.ExprNode
	vars        []*expr.VarNode
	start       expr.Binding
	minimum     expr.Binding
}

func (s *static) Name() string          { return s.name }
func (s *static) Description() string   { return s.description }
func (s *static) Expr() expr.ExprNode   { return s.tree }
func (s *static) Vars() []*expr.VarNode { return s.vars }
func (s *static) Start() expr.Binding   { return copyBinding(s.start) }
func (s *static) Minimum() expr.Binding { return copyBinding(s.minimum) }

func copyBinding(b expr.Binding) expr.Binding {
	if b == nil {
		return nil
	}
	out := make(expr.Binding, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
