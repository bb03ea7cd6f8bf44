package eval

import (
	"fmt"

	"github.com/risqcapital/hcl2go/ast"
	"github.com/risqcapital/hcl2go/diag"
	"github.com/risqcapital/hcl2go/scope"
	"github.com/risqcapital/hcl2go/value"
)

// splatElements implements the "on.*" / "on[*]" source-selection rule shared
// by AttrSplat and IndexSplat: Null -> no elements, Array -> its
// items, Unknown -> itself treated as the sole element so the chained
// accesses still fold its reference surface into the result, anything else
// -> a single-element list wrapping the value.
func splatElements(on value.Value) []value.Value {
	switch v := on.(type) {
	case value.Null:
		return nil
	case value.Array:
		return v.Items
	default:
		return []value.Value{on}
	}
}

// evalAttrSplat implements AttrSplat: `on.*.k1.k2...` selects
// on's elements (splatElements) and chains GetAttr through Keys over each.
// A failure inside the chain is wrapped with "while evaluating element i"
// and the whole call is wrapped with "while evaluating attribute splat
// expression" before being rethrown.
func (e *Evaluator) evalAttrSplat(n *ast.AttrSplat, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	on, d := e.Eval(n.On, sc)
	if d != nil {
		return nil, d
	}

	elems := splatElements(on)
	results := make([]value.Value, 0, len(elems))
	var refs value.ReferenceSet
	for i, elem := range elems {
		span := n.Span
		cur := elem
		for _, key := range n.Keys {
			v, d := value.GetAttr(span, cur, key)
			if d != nil {
				return nil, wrapSplatFailure(d, i, "attribute")
			}
			cur = v
			span = span.Union(cur.Span())
		}
		if u, ok := cur.(value.Unknown); ok {
			refs = refs.Union(u.AllRefs())
		}
		results = append(results, cur)
	}

	if _, ok := on.(value.Unknown); ok {
		return value.NewUnknownIndirect(n.Span, refs), nil
	}
	return value.NewArray(n.Span, results), nil
}

// evalIndexSplat implements IndexSplat: `on[*].k1[e2]...`, where
// each chained key is either a plain attribute (SplatKeyAttr) or a bracketed
// index expression evaluated per-element (SplatKeyIndex). A failure inside
// the chain is wrapped with "while evaluating element i" and the whole call
// is wrapped with "while evaluating index splat expression" before being
// rethrown.
func (e *Evaluator) evalIndexSplat(n *ast.IndexSplat, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	on, d := e.Eval(n.On, sc)
	if d != nil {
		return nil, d
	}

	elems := splatElements(on)
	results := make([]value.Value, 0, len(elems))
	var refs value.ReferenceSet
	for i, elem := range elems {
		span := n.Span
		cur := elem
		for _, key := range n.Keys {
			var v value.Value
			var d *diag.Diagnostic
			switch key.Kind {
			case ast.SplatKeyAttr:
				v, d = value.GetAttr(span, cur, key.Attr)
			case ast.SplatKeyIndex:
				idx, d2 := e.Eval(key.Expr, sc)
				if d2 != nil {
					return nil, wrapSplatFailure(d2, i, "index")
				}
				switch k := idx.(type) {
				case value.String:
					v, d = value.GetIndexString(span, cur, k.V)
				case value.Int:
					v, d = value.GetIndexInt(span, cur, k.V)
				case value.Unknown:
					kRefs := k.AllRefs()
					if curU, ok := cur.(value.Unknown); ok {
						kRefs = kRefs.Union(curU.AllRefs())
					}
					v, d = value.NewUnknown(span, value.ReferenceSet{}, kRefs).AsValue(), nil
				default:
					d = diag.New(diag.CodeGetIndexUnsupportedType,
						"index expression must evaluate to a string or int, got "+idx.Kind().String())
				}
			}
			if d != nil {
				return nil, wrapSplatFailure(d, i, "index")
			}
			cur = v
			span = span.Union(cur.Span())
		}
		if u, ok := cur.(value.Unknown); ok {
			refs = refs.Union(u.AllRefs())
		}
		results = append(results, cur)
	}

	if _, ok := on.(value.Unknown); ok {
		return value.NewUnknownIndirect(n.Span, refs), nil
	}
	return value.NewArray(n.Span, results), nil
}

// wrapSplatFailure wraps a per-element splat failure with "while evaluating
// element i", then wraps that with "while evaluating <kind> splat
// expression", preserving d as the root of the resulting Cause chain.
func wrapSplatFailure(d *diag.Diagnostic, i int, kind string) *diag.Diagnostic {
	elem := diag.Wrap(d.Code, fmt.Sprintf("while evaluating element %d", i), d)
	return diag.Wrap(d.Code, fmt.Sprintf("while evaluating %s splat expression", kind), elem)
}
