// Package tracker computes, for an expression or block, the set of
// variable paths it would need resolved in order to stop evaluating to
// Unknown. It wraps an eval.Evaluator configured with a universal function
// stub and short-circuiting disabled, layering the analysis on the same
// tree-walking machinery the real interpreter uses instead of writing a
// second, parallel walker.
package tracker

import (
	"github.com/risqcapital/hcl2go/ast"
	"github.com/risqcapital/hcl2go/diag"
	"github.com/risqcapital/hcl2go/eval"
	"github.com/risqcapital/hcl2go/scope"
	"github.com/risqcapital/hcl2go/value"
)

// Tracker runs the evaluator in its pessimistic configuration.
type Tracker struct {
	ev *eval.Evaluator
}

// New builds a Tracker. It registers no functions: the universal stub
// treats every function name as present, so no real implementation is ever
// invoked.
func New() *Tracker {
	return &Tracker{ev: eval.New(eval.Options{
		UniversalStub:       true,
		DisableShortCircuit: true,
	})}
}

// Track runs expr against a fresh empty scope and returns the fully-known
// references blocking it from resolving to a concrete value, or nil if it
// already does.
func (t *Tracker) Track(expr ast.Expr) ([]value.Reference, *diag.Diagnostic) {
	sc := scope.New(nil)
	v, d := t.ev.Eval(expr, sc)
	if d != nil {
		return nil, d
	}
	return blockingRefs(value.Resolve(v)), nil
}

// TrackBlock runs a block's body against a fresh empty scope (as sc's
// child, so a caller may pre-seed ambient names) and resolves the
// resulting Object before inspecting it for Unknown children.
func (t *Tracker) TrackBlock(b *ast.Block, sc *scope.Scope) ([]value.Reference, *diag.Diagnostic) {
	fresh := scope.NewChild(sc, nil)
	obj, d := t.ev.EvalBlock(b, fresh)
	if d != nil {
		return nil, d
	}
	return blockingRefs(obj.Resolve()), nil
}

// blockingRefs extracts the fully-known references from v if v resolved to
// Unknown, else reports no blockers. A reference that passes through a
// binary operator or function call is demoted to indirect well before the
// top-level Unknown is produced — e.g. `foo.bar + baz` resolves with an
// empty Direct set and the whole {foo, foo.bar, baz} surface in Indirect.
// Restricting to Direct alone would make the tracker blind to any
// reference not used as the outermost unresolved path, and the generation
// planner depends on seeing a block attribute computed from another block.
// So this takes the union of Direct and Indirect and keeps only the fully
// static paths.
func blockingRefs(v value.Value) []value.Reference {
	u, ok := v.(value.Unknown)
	if !ok {
		return nil
	}
	var out []value.Reference
	for _, r := range u.AllRefs().Items() {
		if r.AllKnown() {
			out = append(out, r)
		}
	}
	return out
}
