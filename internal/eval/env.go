// Package eval is the tree-walking evaluator: it executes an
// AST produced by internal/parser against a root environment and yields
// a document-model value.
//
// What: binding environments, FROM/UNPIVOT iteration, WHERE/HAVING
// filtering, projection, CAST, LIKE, number coercion, and the scalar/
// aggregate builtin functions a SELECT list can call.
// How: a direct recursive walk over the `(op arg ...)` AST nodes
// internal/parser emits, switching on the operator symbol.
// Why: the evaluator should be stateful only through its environment
// stack and any sequences it consumes — a direct recursive walk with an
// explicit *Environment parameter keeps that state in one place, with
// no evaluator-wide mutable fields beyond the session identity used for
// logging.
package eval

import "github.com/gopartiql/partiqlcore/internal/docmodel"

// Environment is a stack of scopes, each mapping name to value.
// Resolution is lexical by default: Lookup walks outward through
// parents. LookupLocal restricts to the innermost scope only, the
// behavior a `@name` positional reference forces.
type Environment struct {
	parent *Environment
	scope  map[string]docmodel.Value
	order  []string
}

// NewEnvironment builds a child scope over parent (nil for a root).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, scope: map[string]docmodel.Value{}}
}

// Bind sets name in this scope, shadowing any outer binding of the same
// name for plain (non-@) lookups from this scope or its children. order
// records first-bind order so SELECT * can reconstruct a row's fields
// in declaration order instead of Go's unordered map iteration.
func (e *Environment) Bind(name string, v docmodel.Value) {
	if _, exists := e.scope[name]; !exists {
		e.order = append(e.order, name)
	}
	e.scope[name] = v
}

// Lookup resolves name lexically: this scope, then each parent in turn.
func (e *Environment) Lookup(name string) (docmodel.Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.scope[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// LookupLocal resolves name against this scope only, ignoring parents —
// the semantics of a `@name` reference:
// it "suppresses outer lexical resolution".
func (e *Environment) LookupLocal(name string) (docmodel.Value, bool) {
	v, ok := e.scope[name]
	return v, ok
}

// NewRootEnvironment builds the environment Executable.Eval receives
// its root bindings into.
func NewRootEnvironment(bindings map[string]docmodel.Value) *Environment {
	env := NewEnvironment(nil)
	for k, v := range bindings {
		env.Bind(k, v)
	}
	return env
}
