package eval

import (
	"fmt"

	"github.com/risqcapital/hcl2go/ast"
	"github.com/risqcapital/hcl2go/diag"
	"github.com/risqcapital/hcl2go/scope"
	"github.com/risqcapital/hcl2go/value"
)

// evalArray implements ArrayExpr: map Eval over items.
func (e *Evaluator) evalArray(n *ast.ArrayExpr, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	items := make([]value.Value, len(n.Items))
	for i, item := range n.Items {
		v, d := e.Eval(item, sc)
		if d != nil {
			return nil, diag.Wrap(d.Code, fmt.Sprintf("while evaluating element %d", i), d)
		}
		items[i] = v
	}
	return value.NewArray(n.Span, items), nil
}

// evalObject implements ObjectExpr: resolves each key, and if any
// key is Unknown the whole object becomes Unknown carrying the union of
// those key references; otherwise evaluates values, keeping insertion
// order, with Unknown values simply stored (their references propagate once
// the object is resolved).
func (e *Evaluator) evalObject(n *ast.ObjectExpr, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	type resolvedField struct {
		key string
		val ast.Expr
	}

	var pendingKeyRefs value.ReferenceSet
	hasUnknownKey := false
	fields := make([]resolvedField, 0, len(n.Fields))

	for _, f := range n.Fields {
		key, isUnknown, refs, d := e.evalObjectKey(f.Key, sc)
		if d != nil {
			return nil, d
		}
		if isUnknown {
			hasUnknownKey = true
			pendingKeyRefs = pendingKeyRefs.Union(refs)
			continue
		}
		fields = append(fields, resolvedField{key: key, val: f.Value})
	}

	if hasUnknownKey {
		return value.NewUnknownIndirect(n.Span, pendingKeyRefs), nil
	}

	obj := value.NewObject(n.Span)
	for _, f := range fields {
		v, d := e.Eval(f.val, sc)
		if d != nil {
			return nil, d
		}
		obj = obj.Set(f.key, v)
	}
	return obj, nil
}

// evalObjectKey resolves one object-literal key: Identifier ->
// its text, Literal(String) -> its string, Parenthesis(e) -> evaluate (must
// be String or Unknown), anything else -> object::unsupported_key.
func (e *Evaluator) evalObjectKey(key ast.Expr, sc *scope.Scope) (resolved string, isUnknown bool, refs value.ReferenceSet, d *diag.Diagnostic) {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name, false, value.ReferenceSet{}, nil
	case *ast.Literal:
		if k.Value.Kind == value.KindString {
			return k.Value.Str, false, value.ReferenceSet{}, nil
		}
		return "", false, value.ReferenceSet{}, diag.New(diag.CodeObjectUnsupportedKey, "object key literal must be a string").
			WithLabel(k.Span, "not a string literal").
			WithHelp("did you mean (key) = value?")
	case *ast.Parenthesis:
		v, d := e.Eval(k.Inner, sc)
		if d != nil {
			return "", false, value.ReferenceSet{}, d
		}
		switch vv := v.(type) {
		case value.String:
			return vv.V, false, value.ReferenceSet{}, nil
		case value.Unknown:
			return "", true, vv.AllRefs(), nil
		default:
			return "", false, value.ReferenceSet{}, diag.New(diag.CodeObjectUnsupportedKey, "computed object key must evaluate to a string").
				WithLabel(k.Span, "evaluated to "+v.Kind().String())
		}
	default:
		return "", false, value.ReferenceSet{}, diag.New(diag.CodeObjectUnsupportedKey, "unsupported object key expression").
			WithLabel(key.Pos(), "expected an identifier, string literal, or (expr)").
			WithHelp("did you mean (key) = value?")
	}
}
