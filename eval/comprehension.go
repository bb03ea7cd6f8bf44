package eval

import (
	"github.com/risqcapital/hcl2go/ast"
	"github.com/risqcapital/hcl2go/diag"
	"github.com/risqcapital/hcl2go/scope"
	"github.com/risqcapital/hcl2go/value"
)

// comprehensionItem is one (key, value) pair to iterate over, key only
// meaningful when key_ident is set ("for k, v in collection").
type comprehensionItem struct {
	key   value.Value
	value value.Value
}

// comprehensionSource evaluates and classifies the collection expression
// shared by ForTupleExpr and ForObjectExpr: Array iterates by
// position (key is the Int index), Object iterates by entry (key is the
// String key), Unknown yields exactly one synthetic (unknown, unknown) pair
// so the body still runs once in pessimistic-tracker mode, anything else is
// a static error.
func (e *Evaluator) comprehensionSource(collection ast.Expr, sc *scope.Scope, unsupportedCode diag.Code) ([]comprehensionItem, *diag.Diagnostic) {
	coll, d := e.Eval(collection, sc)
	if d != nil {
		return nil, d
	}
	switch v := coll.(type) {
	case value.Array:
		items := make([]comprehensionItem, len(v.Items))
		for i, item := range v.Items {
			items[i] = comprehensionItem{key: value.NewInt(collection.Pos(), int64(i)), value: item}
		}
		return items, nil
	case value.Object:
		keys := v.Keys()
		items := make([]comprehensionItem, len(keys))
		for i, k := range keys {
			val, _ := v.Get(k)
			items[i] = comprehensionItem{key: value.NewString(collection.Pos(), k), value: val}
		}
		return items, nil
	case value.Unknown:
		u := value.NewUnknownIndirect(collection.Pos(), v.AllRefs()).AsValue()
		return []comprehensionItem{{key: u, value: u}}, nil
	default:
		return nil, diag.New(unsupportedCode, "for comprehension source must be an array or object, got "+coll.Kind().String()).
			WithLabel(collection.Pos(), "evaluated to "+coll.Kind().String())
	}
}

// bindIteration defines the key/value identifiers for one iteration step in
// a fresh child scope, one scope per comprehension iteration.
func bindIteration(parent *scope.Scope, keyIdent, valueIdent string, item comprehensionItem) *scope.Scope {
	sc := scope.NewChild(parent, nil)
	if keyIdent != "" {
		sc.Define(keyIdent, item.key)
	}
	sc.Define(valueIdent, item.value)
	return sc
}

// evalForTuple implements ForTupleExpr. Unknown elements are
// appended into the result array as-is; their references surface when the
// array is resolved, not by collapsing the comprehension early.
func (e *Evaluator) evalForTuple(n *ast.ForTupleExpr, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	items, d := e.comprehensionSource(n.Collection, sc, diag.CodeForTupleUnsupportedCollection)
	if d != nil {
		return nil, d
	}

	results := make([]value.Value, 0, len(items))
	for _, item := range items {
		iterScope := bindIteration(sc, n.KeyIdent, n.ValueIdent, item)

		if n.Condition != nil {
			cond, d := e.Eval(n.Condition, iterScope)
			if d != nil {
				return nil, d
			}
			switch c := cond.(type) {
			case value.Bool:
				if !c.V {
					continue
				}
			case value.Unknown:
				// The body still runs, but whether this element belongs in
				// the result depends on the condition, so what gets appended
				// is an Unknown over the condition's and body's references.
				v, d := e.Eval(n.Value, iterScope)
				if d != nil {
					return nil, d
				}
				refs := c.AllRefs()
				refs = unionRefs(refs, v)
				results = append(results, value.NewUnknownIndirect(n.Condition.Pos(), refs))
				continue
			default:
				return nil, diag.New(diag.CodeForTupleUnsupportedCondition,
					"for condition must be a bool, got "+cond.Kind().String()).
					WithLabel(n.Condition.Pos(), "evaluated to "+cond.Kind().String())
			}
		}

		v, d := e.Eval(n.Value, iterScope)
		if d != nil {
			return nil, d
		}
		results = append(results, v)
	}

	return value.NewArray(n.Span, results), nil
}

// evalForObject implements ForObjectExpr. Grouping mode is rejected
// before anything else runs. Keys that evaluate Unknown
// divert their entry's references into a blockers list that, when non-empty
// at the end, makes the whole result Unknown; Unknown values are stored in
// the object like any other (their references propagate on resolve).
// Resolved duplicate keys overwrite in iteration order (last write wins).
func (e *Evaluator) evalForObject(n *ast.ForObjectExpr, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	if n.Grouping {
		return nil, diag.New(diag.CodeForObjectUnsupportedGrouping, "grouping for-object comprehensions are not supported").
			WithLabel(n.Span, "uses ... grouping")
	}

	items, d := e.comprehensionSource(n.Collection, sc, diag.CodeForObjectUnsupportedCollection)
	if d != nil {
		return nil, d
	}

	obj := value.NewObject(n.Span)
	var blockers value.ReferenceSet
	blocked := false

	for _, item := range items {
		iterScope := bindIteration(sc, n.KeyIdent, n.ValueIdent, item)

		if n.Condition != nil {
			cond, d := e.Eval(n.Condition, iterScope)
			if d != nil {
				return nil, d
			}
			switch c := cond.(type) {
			case value.Bool:
				if !c.V {
					continue
				}
			case value.Unknown:
				// Whether this entry exists at all is undecidable, so the
				// key and value still run (their references matter) but the
				// entry diverts into the blockers list.
				key, d := e.Eval(n.Key, iterScope)
				if d != nil {
					return nil, d
				}
				v, d := e.Eval(n.Value, iterScope)
				if d != nil {
					return nil, d
				}
				blocked = true
				blockers = blockers.Union(c.AllRefs())
				blockers = unionRefs(blockers, key)
				blockers = unionRefs(blockers, v)
				continue
			default:
				return nil, diag.New(diag.CodeForObjectUnsupportedCondition,
					"for condition must be a bool, got "+cond.Kind().String()).
					WithLabel(n.Condition.Pos(), "evaluated to "+cond.Kind().String())
			}
		}

		key, d := e.Eval(n.Key, iterScope)
		if d != nil {
			return nil, d
		}
		switch k := key.(type) {
		case value.String:
			v, d := e.Eval(n.Value, iterScope)
			if d != nil {
				return nil, d
			}
			obj = obj.Set(k.V, v)
		case value.Unknown:
			v, d := e.Eval(n.Value, iterScope)
			if d != nil {
				return nil, d
			}
			blocked = true
			blockers = blockers.Union(k.AllRefs())
			blockers = unionRefs(blockers, v)
		default:
			return nil, diag.New(diag.CodeForObjectUnsupportedKey,
				"for-object key must be a string, got "+key.Kind().String()).
				WithLabel(n.Key.Pos(), "evaluated to "+key.Kind().String())
		}
	}

	if blocked {
		blockers = unionRefs(blockers, obj.Resolve())
		return value.NewUnknownIndirect(n.Span, blockers), nil
	}
	return obj, nil
}
