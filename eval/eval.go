// Package eval is the tree-walking interpreter at the center of this
// module: a recursive eval(expr, scope) -> value.Value over the ast
// package's node variants — exhaustive switch-by-variant dispatch with a
// single entry point, covering HCL2's expression, block, and comprehension
// semantics.
package eval

import (
	"github.com/risqcapital/hcl2go/ast"
	"github.com/risqcapital/hcl2go/diag"
	"github.com/risqcapital/hcl2go/scope"
	"github.com/risqcapital/hcl2go/value"
)

// Function is a host-provided intrinsic. It receives already-evaluated,
// concrete (never Unknown) arguments — the caller never invokes Function
// with an Unknown in args. A type-mismatch signal is communicated
// by returning any error; Evaluator wraps it as invalid_args regardless.
type Function func(args []value.Value) (value.Value, error)

// Options configures an Evaluator.
type Options struct {
	// Functions maps function name -> host implementation.
	Functions map[string]Function

	// UniversalStub, when true, makes every function name "present": any
	// call with all-concrete arguments still executes via the universal
	// stub's pessimistic policy (returning Unknown with the union of the
	// call's reference surface) rather than unsupported_function. This is
	// the tracker's configuration — never set by direct library users, only
	// by package tracker.
	UniversalStub bool

	// DisableShortCircuit forces both branches of Conditional and both
	// operands of Bool &&/|| to be evaluated even when the result is
	// already determined. The tracker always sets this; plain evaluation
	// may leave it false to legally short-circuit when doing so cannot
	// change the observable result.
	DisableShortCircuit bool
}

// Evaluator holds the configuration for one evaluation run. It carries no
// mutable state of its own — scopes passed to Eval hold all mutable state
// — so one Evaluator may be reused across many Eval calls.
type Evaluator struct {
	opts Options
}

// New builds an Evaluator from opts.
func New(opts Options) *Evaluator {
	return &Evaluator{opts: opts}
}

// Eval is the main recursive entry point. It dispatches on the
// concrete node type, then attaches expr's span to the result only if the
// result doesn't already carry one more specific.
func (e *Evaluator) Eval(expr ast.Expr, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	v, d := e.eval(expr, sc)
	if d != nil {
		return nil, d
	}
	return v.WithSpan(expr.Pos()), nil
}

func (e *Evaluator) eval(expr ast.Expr, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	switch n := expr.(type) {
	case *ast.Literal:
		return e.evalLiteral(n, sc)
	case *ast.Identifier:
		return e.evalIdentifier(n, sc)
	case *ast.ArrayExpr:
		return e.evalArray(n, sc)
	case *ast.ObjectExpr:
		return e.evalObject(n, sc)
	case *ast.Parenthesis:
		return e.Eval(n.Inner, sc)
	case *ast.UnaryExpr:
		return e.evalUnary(n, sc)
	case *ast.BinaryExpr:
		return e.evalBinary(n, sc)
	case *ast.Conditional:
		return e.evalConditional(n, sc)
	case *ast.GetAttr:
		return e.evalGetAttr(n, sc)
	case *ast.GetIndex:
		return e.evalGetIndex(n, sc)
	case *ast.AttrSplat:
		return e.evalAttrSplat(n, sc)
	case *ast.IndexSplat:
		return e.evalIndexSplat(n, sc)
	case *ast.FunctionCall:
		return e.evalFunctionCall(n, sc)
	case *ast.ForTupleExpr:
		return e.evalForTuple(n, sc)
	case *ast.ForObjectExpr:
		return e.evalForObject(n, sc)
	default:
		return nil, diag.New(diag.CodeUnsupportedNode, "unsupported expression node").
			WithLabel(expr.Pos(), "this node has no evaluation rule")
	}
}

func (e *Evaluator) evalLiteral(n *ast.Literal, _ *scope.Scope) (value.Value, *diag.Diagnostic) {
	return n.Value.ToValue(n.Span), nil
}

// evalIdentifier looks the name up in scope; on miss, returns a fresh
// Unknown with a direct reference to the name, at the identifier's own span.
func (e *Evaluator) evalIdentifier(n *ast.Identifier, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	if v, ok := sc.Get(n.Name); ok {
		return v, nil
	}
	return value.NewUnknownDirect(n.Span, value.NewReference(n.Span, n.Name)), nil
}
