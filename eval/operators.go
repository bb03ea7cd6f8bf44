package eval

import (
	"github.com/risqcapital/hcl2go/ast"
	"github.com/risqcapital/hcl2go/diag"
	"github.com/risqcapital/hcl2go/scope"
	"github.com/risqcapital/hcl2go/value"
)

func (e *Evaluator) evalUnary(n *ast.UnaryExpr, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	operand, d := e.Eval(n.Operand, sc)
	if d != nil {
		return nil, d
	}
	return value.Unary(value.UnaryOp(n.Op), n.Span, operand)
}

// evalBinary dispatches to the operator table in package value. Under
// tracker mode both operands are always evaluated so every reference is
// observed; outside tracker mode the DisableShortCircuit flag is off by
// default and a decisive left-hand Bool may still skip the right operand
// for &&/|| when doing so cannot change the observable result — set
// DisableShortCircuit to force both sides unconditionally (this is what
// package tracker does).
func (e *Evaluator) evalBinary(n *ast.BinaryExpr, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	op := value.BinaryOp(n.Op)

	if !e.opts.DisableShortCircuit && (op == value.OpAnd || op == value.OpOr) {
		left, d := e.Eval(n.Left, sc)
		if d != nil {
			return nil, d
		}
		if lb, ok := left.(value.Bool); ok {
			if op == value.OpAnd && !lb.V {
				return value.NewBool(n.Span, false), nil
			}
			if op == value.OpOr && lb.V {
				return value.NewBool(n.Span, true), nil
			}
		}
		right, d := e.Eval(n.Right, sc)
		if d != nil {
			return nil, d
		}
		return value.Binary(op, n.Span, left, right)
	}

	left, d := e.Eval(n.Left, sc)
	if d != nil {
		return nil, d
	}
	right, d := e.Eval(n.Right, sc)
	if d != nil {
		return nil, d
	}
	return value.Binary(op, n.Span, left, right)
}

// evalConditional implements Conditional. With DisableShortCircuit off
// (the default), a concrete Bool condition evaluates only the taken
// branch; an Unknown condition always evaluates both. With
// DisableShortCircuit on (tracker mode), both branches are evaluated
// regardless of cond.
func (e *Evaluator) evalConditional(n *ast.Conditional, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	cond, d := e.Eval(n.Cond, sc)
	if d != nil {
		return nil, d
	}

	if !e.opts.DisableShortCircuit {
		switch c := cond.(type) {
		case value.Bool:
			if c.V {
				return e.Eval(n.Then, sc)
			}
			return e.Eval(n.Else, sc)
		case value.Unknown:
			thenV, d := e.Eval(n.Then, sc)
			if d != nil {
				return nil, d
			}
			elseV, d := e.Eval(n.Else, sc)
			if d != nil {
				return nil, d
			}
			refs := c.AllRefs()
			refs = unionRefs(refs, thenV)
			refs = unionRefs(refs, elseV)
			return value.NewUnknownIndirect(n.Span, refs), nil
		default:
			return nil, diag.New(diag.CodeConditionalUnsupportedCondition, "conditional test must be a bool").
				WithLabel(n.Cond.Pos(), "evaluated to "+cond.Kind().String())
		}
	}

	thenV, d := e.Eval(n.Then, sc)
	if d != nil {
		return nil, d
	}
	elseV, d := e.Eval(n.Else, sc)
	if d != nil {
		return nil, d
	}
	switch c := cond.(type) {
	case value.Bool:
		chosen, discarded := elseV, thenV
		if c.V {
			chosen, discarded = thenV, elseV
		}
		// Both branches were evaluated above so the tracker observes the
		// discarded branch's references too; fold them in rather than
		// dropping them on the floor.
		if du, ok := discarded.(value.Unknown); ok {
			refs := du.AllRefs()
			if cu, ok := chosen.(value.Unknown); ok {
				refs = refs.Union(cu.AllRefs())
			}
			return value.NewUnknownIndirect(n.Span, refs), nil
		}
		return chosen, nil
	case value.Unknown:
		refs := c.AllRefs()
		refs = unionRefs(refs, thenV)
		refs = unionRefs(refs, elseV)
		return value.NewUnknownIndirect(n.Span, refs), nil
	default:
		return nil, diag.New(diag.CodeConditionalUnsupportedCondition, "conditional test must be a bool").
			WithLabel(n.Cond.Pos(), "evaluated to "+cond.Kind().String())
	}
}

// unionRefs folds v's reference surface (if it is Unknown) into refs.
func unionRefs(refs value.ReferenceSet, v value.Value) value.ReferenceSet {
	if u, ok := v.(value.Unknown); ok {
		return refs.Union(u.AllRefs())
	}
	return refs
}
