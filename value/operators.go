package value

import "github.com/risqcapital/hcl2go/diag"

// BinaryOp identifies one of the binary operator symbols.
type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpMod BinaryOp = "%"
	OpLt  BinaryOp = "<"
	OpGt  BinaryOp = ">"
	OpLe  BinaryOp = "<="
	OpGe  BinaryOp = ">="
	OpEq  BinaryOp = "=="
	OpNe  BinaryOp = "!="
	OpAnd BinaryOp = "&&"
	OpOr  BinaryOp = "||"
)

// UnaryOp identifies one of the unary operator symbols.
type UnaryOp string

const (
	OpNeg UnaryOp = "-"
	OpNot UnaryOp = "!"
)

// unknownOperandRefs demotes an operand's entire reference surface to a
// single ReferenceSet suitable for an operator result's Indirect set,
// since binary operators, conditional tests, etc. all consume without
// extending a path.
func unknownOperandRefs(v Value) (ReferenceSet, bool) {
	if u, ok := v.(Unknown); ok {
		return u.AllRefs(), true
	}
	return ReferenceSet{}, false
}

// Binary applies op to left and right. Both
// operands must already be evaluated by the caller (the evaluator is
// responsible for never short-circuiting under tracker mode) —
// this function does not itself decide whether to evaluate anything.
func Binary(op BinaryOp, span Span, left, right Value) (Value, *diag.Diagnostic) {
	lRefs, lUnknown := unknownOperandRefs(left)
	rRefs, rUnknown := unknownOperandRefs(right)
	if lUnknown || rUnknown {
		return NewUnknown(span, ReferenceSet{}, lRefs.Union(rRefs)), nil
	}

	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod:
		return arithmetic(op, span, left, right)
	case OpLt, OpGt, OpLe, OpGe:
		return compare(op, span, left, right)
	case OpEq:
		return NewBool(span, Equal(left, right)), nil
	case OpNe:
		return NewBool(span, !Equal(left, right)), nil
	case OpAnd, OpOr:
		return logical(op, span, left, right)
	}
	return nil, diag.New(diag.CodeBinaryUnsupportedOperator, "unsupported binary operator "+string(op))
}

func arithmetic(op BinaryOp, span Span, left, right Value) (Value, *diag.Diagnostic) {
	// String + String concatenation and String * Int repetition are
	// handled before the numeric table.
	if op == OpAdd {
		if ls, ok := left.(String); ok {
			if rs, ok := right.(String); ok {
				return NewString(span, ls.V+rs.V), nil
			}
		}
	}
	if op == OpMul {
		if ls, ok := left.(String); ok {
			if ri, ok := right.(Int); ok {
				if ri.V < 0 {
					return nil, diag.New(diag.CodeBinaryUnsupportedOperator, "string repetition count must be non-negative")
				}
				out := make([]byte, 0, len(ls.V)*int(ri.V))
				for n := int64(0); n < ri.V; n++ {
					out = append(out, ls.V...)
				}
				return NewString(span, string(out)), nil
			}
		}
	}

	li, lIsInt := left.(Int)
	lf, lIsFloat := left.(Float)
	ri, rIsInt := right.(Int)
	rf, rIsFloat := right.(Float)

	switch {
	case lIsInt && rIsInt:
		if op == OpDiv {
			if ri.V == 0 {
				return nil, diag.New(diag.CodeBinaryArithmeticError, "division by zero")
			}
			return NewFloat(span, float64(li.V)/float64(ri.V)), nil
		}
		if op == OpMod {
			if ri.V == 0 {
				return nil, diag.New(diag.CodeBinaryArithmeticError, "modulo by zero")
			}
			return NewInt(span, li.V%ri.V), nil
		}
		switch op {
		case OpAdd:
			return NewInt(span, li.V+ri.V), nil
		case OpSub:
			return NewInt(span, li.V-ri.V), nil
		case OpMul:
			return NewInt(span, li.V*ri.V), nil
		}
	case (lIsInt || lIsFloat) && (rIsInt || rIsFloat):
		var lfv float64
		if lIsFloat {
			lfv = lf.V
		} else {
			lfv = float64(li.V)
		}
		var rfv float64
		if rIsFloat {
			rfv = rf.V
		} else {
			rfv = float64(ri.V)
		}
		switch op {
		case OpAdd:
			return NewFloat(span, lfv+rfv), nil
		case OpSub:
			return NewFloat(span, lfv-rfv), nil
		case OpMul:
			return NewFloat(span, lfv*rfv), nil
		case OpDiv:
			if rfv == 0 {
				return nil, diag.New(diag.CodeBinaryArithmeticError, "division by zero")
			}
			return NewFloat(span, lfv/rfv), nil
		case OpMod:
			if rfv == 0 {
				return nil, diag.New(diag.CodeBinaryArithmeticError, "modulo by zero")
			}
			return NewFloat(span, mod(lfv, rfv)), nil
		}
	}

	return nil, diag.New(diag.CodeBinaryUnsupportedOperator,
		"operator "+string(op)+" is not defined for "+left.Kind().String()+" and "+right.Kind().String())
}

func mod(a, b float64) float64 {
	r := a - b*float64(int64(a/b))
	return r
}

func compare(op BinaryOp, span Span, left, right Value) (Value, *diag.Diagnostic) {
	var lfv, rfv float64
	switch lv := left.(type) {
	case Int:
		lfv = float64(lv.V)
	case Float:
		lfv = lv.V
	default:
		return nil, diag.New(diag.CodeBinaryUnsupportedOperator,
			"operator "+string(op)+" is not defined for "+left.Kind().String())
	}
	switch rv := right.(type) {
	case Int:
		rfv = float64(rv.V)
	case Float:
		rfv = rv.V
	default:
		return nil, diag.New(diag.CodeBinaryUnsupportedOperator,
			"operator "+string(op)+" is not defined for "+right.Kind().String())
	}
	var result bool
	switch op {
	case OpLt:
		result = lfv < rfv
	case OpGt:
		result = lfv > rfv
	case OpLe:
		result = lfv <= rfv
	case OpGe:
		result = lfv >= rfv
	}
	return NewBool(span, result), nil
}

func logical(op BinaryOp, span Span, left, right Value) (Value, *diag.Diagnostic) {
	lb, lok := left.(Bool)
	rb, rok := right.(Bool)
	if !lok || !rok {
		return nil, diag.New(diag.CodeBinaryUnsupportedOperator,
			"operator "+string(op)+" requires bool operands, got "+left.Kind().String()+" and "+right.Kind().String())
	}
	switch op {
	case OpAnd:
		return NewBool(span, lb.V && rb.V), nil
	case OpOr:
		return NewBool(span, lb.V || rb.V), nil
	}
	return nil, diag.New(diag.CodeBinaryUnsupportedOperator, "unsupported logical operator "+string(op))
}

// Unary applies op to operand.
func Unary(op UnaryOp, span Span, operand Value) (Value, *diag.Diagnostic) {
	if refs, ok := unknownOperandRefs(operand); ok {
		return NewUnknown(span, ReferenceSet{}, refs), nil
	}
	switch op {
	case OpNeg:
		switch v := operand.(type) {
		case Int:
			return NewInt(span, -v.V), nil
		case Float:
			return NewFloat(span, -v.V), nil
		}
	case OpNot:
		if b, ok := operand.(Bool); ok {
			return NewBool(span, !b.V), nil
		}
	}
	return nil, diag.New(diag.CodeUnsupportedUnaryOperator,
		"unary operator "+string(op)+" is not defined for "+operand.Kind().String())
}
