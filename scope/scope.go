// Package scope implements the lexically nested variable environment the
// evaluator looks up Identifier nodes against: an insertion-ordered store
// with parent fall-through, holding names bound to value.Value. HCL2
// identifiers are case-sensitive, so lookups do no folding.
package scope

import "github.com/risqcapital/hcl2go/value"

// Scope holds an insertion-ordered map of name -> value.Value and an
// optional parent. Lookup walks to the root; assignment writes into the
// current frame only.
type Scope struct {
	names  []string
	values map[string]value.Value
	parent *Scope
}

// New builds a root scope (no parent) from an initial binding. Pass a nil
// or empty map for an empty scope.
func New(initial map[string]value.Value) *Scope {
	return NewChild(nil, initial)
}

// NewChild builds a scope enclosed by parent. A nil parent makes this a root
// scope. Used once per block body (shared by all of that block's attributes)
// and for each comprehension iteration.
func NewChild(parent *Scope, initial map[string]value.Value) *Scope {
	s := &Scope{values: make(map[string]value.Value, len(initial)), parent: parent}
	for k, v := range initial {
		s.Define(k, v)
	}
	return s
}

// Define binds name to v in this frame, appending to insertion order on
// first definition and overwriting in place on redefinition.
func (s *Scope) Define(name string, v value.Value) {
	if _, exists := s.values[name]; !exists {
		s.names = append(s.names, name)
	}
	s.values[name] = v
}

// Get walks the scope chain from this frame to the root, returning the
// first binding found.
func (s *Scope) Get(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Names returns the names bound directly in this frame, in insertion order
// (does not include parent frames).
func (s *Scope) Names() []string {
	return append([]string(nil), s.names...)
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }
