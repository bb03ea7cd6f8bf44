package eval

import (
	"github.com/risqcapital/hcl2go/ast"
	"github.com/risqcapital/hcl2go/diag"
	"github.com/risqcapital/hcl2go/scope"
	"github.com/risqcapital/hcl2go/value"
)

// evalGetAttr implements `on.key` via value.GetAttr.
func (e *Evaluator) evalGetAttr(n *ast.GetAttr, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	on, d := e.Eval(n.On, sc)
	if d != nil {
		return nil, d
	}
	return value.GetAttr(n.Span, on, n.Key)
}

// evalGetIndex implements `on[key]`, dispatching on the evaluated index's
// kind: String keys behave like attribute access, Int keys are positional
// while Int keys never extend a reference path.
func (e *Evaluator) evalGetIndex(n *ast.GetIndex, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	on, d := e.Eval(n.On, sc)
	if d != nil {
		return nil, d
	}
	key, d := e.Eval(n.Key, sc)
	if d != nil {
		return nil, d
	}
	switch k := key.(type) {
	case value.String:
		return value.GetIndexString(n.Span, on, k.V)
	case value.Int:
		return value.GetIndexInt(n.Span, on, k.V)
	case value.Unknown:
		refs := k.AllRefs()
		if onU, ok := on.(value.Unknown); ok {
			refs = refs.Union(onU.AllRefs())
		}
		return value.NewUnknownIndirect(n.Span, refs), nil
	default:
		return nil, diag.New(diag.CodeGetIndexUnsupportedType,
			"index expression must evaluate to a string or int, got "+key.Kind().String()).
			WithLabel(n.Key.Pos(), "evaluated to "+key.Kind().String())
	}
}
