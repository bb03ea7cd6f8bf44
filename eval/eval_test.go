package eval

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/risqcapital/hcl2go/ast"
	"github.com/risqcapital/hcl2go/scope"
	"github.com/risqcapital/hcl2go/value"
	"github.com/risqcapital/hcl2go/valueio"
)

func lit(v int64) *ast.Literal { return &ast.Literal{Value: ast.LiteralInt(v)} }
func litf(v float64) *ast.Literal { return &ast.Literal{Value: ast.LiteralFloat(v)} }
func litStr(s string) *ast.Literal { return &ast.Literal{Value: ast.LiteralString(s)} }
func ident(n string) *ast.Identifier { return &ast.Identifier{Name: n} }
func bin(op string, l, r ast.Expr) *ast.BinaryExpr { return &ast.BinaryExpr{Op: op, Left: l, Right: r} }

func mustEval(t *testing.T, e *Evaluator, expr ast.Expr, sc *scope.Scope) value.Value {
	t.Helper()
	v, d := e.Eval(expr, sc)
	if d != nil {
		t.Fatalf("Eval failed: %s", d.Error())
	}
	return v
}

// Arithmetic and precedence.
func TestArithmeticPrecedence(t *testing.T) {
	e := New(Options{})
	sc := scope.New(nil)

	// 1 + 2 * 3 => 7
	expr := bin("+", lit(1), bin("*", lit(2), lit(3)))
	v := mustEval(t, e, expr, sc)
	if i, ok := v.(value.Int); !ok || i.V != 7 {
		t.Fatalf("1 + 2 * 3 = %v, want Int(7)", v)
	}

	// (1 + 2) * 3 => 9
	expr = bin("*", &ast.Parenthesis{Inner: bin("+", lit(1), lit(2))}, lit(3))
	v = mustEval(t, e, expr, sc)
	if i, ok := v.(value.Int); !ok || i.V != 9 {
		t.Fatalf("(1 + 2) * 3 = %v, want Int(9)", v)
	}

	// 6 / 3 => 2.0 (Int/Int division always yields Float)
	expr = bin("/", lit(6), lit(3))
	v = mustEval(t, e, expr, sc)
	if f, ok := v.(value.Float); !ok || f.V != 2.0 {
		t.Fatalf("6 / 3 = %v, want Float(2.0)", v)
	}
}

// Nested object access, and a miss on a concrete object fails.
func TestObjectAccess(t *testing.T) {
	e := New(Options{})
	sc := scope.New(nil)

	inner := &ast.ObjectExpr{Fields: []ast.ObjectField{{Key: ident("bar"), Value: litStr("baz")}}}
	outer := &ast.ObjectExpr{Fields: []ast.ObjectField{{Key: ident("foo"), Value: inner}}}
	expr := &ast.GetAttr{On: &ast.GetAttr{On: outer, Key: "foo"}, Key: "bar"}

	v := mustEval(t, e, expr, sc)
	if s, ok := v.(value.String); !ok || s.V != "baz" {
		t.Fatalf(`{"foo":{"bar":"baz"}}.foo.bar = %v, want String("baz")`, v)
	}

	missExpr := &ast.GetAttr{
		On:  &ast.ObjectExpr{Fields: []ast.ObjectField{{Key: ident("foo"), Value: litStr("bar")}}},
		Key: "baz",
	}
	_, d := e.Eval(missExpr, sc)
	if d == nil {
		t.Fatal(`{"foo":"bar"}.baz must fail, a miss on a concrete object is an error`)
	}
}

// For-tuple comprehension over an external binding.
func TestForTupleComprehension(t *testing.T) {
	e := New(Options{})
	c := value.NewObject(value.Span{}).
		Set("a", value.NewInt(value.Span{}, 1)).
		Set("b", value.NewInt(value.Span{}, 2))
	sc := scope.New(map[string]value.Value{"c": c})

	expr := &ast.ForTupleExpr{
		KeyIdent:   "a",
		ValueIdent: "b",
		Collection: ident("c"),
		Value:      ident("a"),
		Condition:  bin(">", ident("b"), lit(1)),
	}
	v := mustEval(t, e, expr, sc)
	arr, ok := v.(value.Array)
	if !ok {
		t.Fatalf("result = %T, want Array", v)
	}
	if len(arr.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(arr.Items))
	}
	if s, ok := arr.Items[0].(value.String); !ok || s.V != "b" {
		t.Fatalf("Items[0] = %v, want String(\"b\")", arr.Items[0])
	}
}

// An Unknown condition doesn't collapse the comprehension; the
// undecidable element is appended as Unknown while decided elements stay
// concrete.
func TestForTupleUnknownConditionAppendsUnknownElement(t *testing.T) {
	e := New(Options{})
	arr := value.NewArray(value.Span{}, []value.Value{
		value.NewInt(value.Span{}, 1),
		value.NewInt(value.Span{}, 2),
	})
	sc := scope.New(map[string]value.Value{"xs": arr})

	// [for x in xs: x if x == 1 ? true : limit] with limit undefined would be
	// contrived; instead gate only the second element on an undefined name.
	expr := &ast.ForTupleExpr{
		ValueIdent: "x",
		Collection: ident("xs"),
		Value:      ident("x"),
		Condition: &ast.Conditional{
			Cond: bin("==", ident("x"), lit(1)),
			Then: &ast.Literal{Value: ast.LiteralBool(true)},
			Else: ident("limit"),
		},
	}
	v := mustEval(t, e, expr, sc)
	out, ok := v.(value.Array)
	if !ok || len(out.Items) != 2 {
		t.Fatalf("result = %v, want a 2-element Array", v)
	}
	if i, ok := out.Items[0].(value.Int); !ok || i.V != 1 {
		t.Fatalf("Items[0] = %v, want the decided Int(1)", out.Items[0])
	}
	u, ok := out.Items[1].(value.Unknown)
	if !ok {
		t.Fatalf("Items[1] = %T, want the undecided element as Unknown", out.Items[1])
	}
	if u.AllRefs().IsEmpty() {
		t.Fatal("the undecided element must carry the condition's references")
	}
}

// An Unknown key diverts into the blockers list and makes the whole
// for-object result Unknown; its references survive.
func TestForObjectUnknownKeyBlocksWholeResult(t *testing.T) {
	e := New(Options{})
	arr := value.NewArray(value.Span{}, []value.Value{value.NewInt(value.Span{}, 1)})
	sc := scope.New(map[string]value.Value{"xs": arr})

	expr := &ast.ForObjectExpr{
		ValueIdent: "x",
		Collection: ident("xs"),
		Key:        ident("name"), // undefined -> Unknown key
		Value:      ident("x"),
	}
	v := mustEval(t, e, expr, sc)
	u, ok := v.(value.Unknown)
	if !ok {
		t.Fatalf("result = %T, want Unknown (an Unknown key blocks the whole object)", v)
	}
	if u.AllRefs().Len() != 1 {
		t.Fatalf("AllRefs().Len() = %d, want 1 ({name})", u.AllRefs().Len())
	}
}

// Tracker-style reference extraction via direct evaluation: the binary
// operator demotes every operand reference to indirect.
func TestBinaryOverUnresolvedPathsDemotesToIndirect(t *testing.T) {
	e := New(Options{})
	sc := scope.New(nil)

	// foo.bar + baz
	expr := bin("+", &ast.GetAttr{On: ident("foo"), Key: "bar"}, ident("baz"))
	v, d := e.Eval(expr, sc)
	if d != nil {
		t.Fatalf("Eval failed: %s", d.Error())
	}
	u, ok := v.(value.Unknown)
	if !ok {
		t.Fatalf("result = %T, want Unknown", v)
	}
	if !u.Direct.IsEmpty() {
		t.Fatalf("Direct = %v, want empty (demoted by the binary operator)", u.Direct.Items())
	}
	all := u.AllRefs()
	if all.Len() != 3 {
		t.Fatalf("AllRefs().Len() = %d, want 3 ({foo, foo.bar, baz}), got %v", all.Len(), all.Items())
	}
}

// Sibling blocks of the same type fuse into an array.
func TestBlockMergingFusesSiblingsIntoArray(t *testing.T) {
	e := New(Options{})
	sc := scope.New(nil)

	nested1 := &ast.Block{Type: "nested", Body: []ast.Stmt{
		&ast.Attribute{Key: "a", Value: lit(1)},
	}}
	nested2 := &ast.Block{Type: "nested", Body: []ast.Stmt{
		&ast.Attribute{Key: "a", Value: lit(2)},
	}}
	outer := &ast.Block{Type: "outer", Body: []ast.Stmt{nested1, nested2}}

	obj, d := e.EvalBlock(outer, sc)
	if d != nil {
		t.Fatalf("EvalBlock failed: %s", d.Error())
	}
	nestedVal, ok := obj.Get("nested")
	if !ok {
		t.Fatal(`expected "nested" key in outer object`)
	}
	arr, ok := nestedVal.(value.Array)
	if !ok {
		t.Fatalf("nested = %T, want Array", nestedVal)
	}
	if len(arr.Items) != 2 {
		t.Fatalf("len(nested) = %d, want 2", len(arr.Items))
	}
	first, _ := arr.Items[0].(value.Object).Get("a")
	second, _ := arr.Items[1].(value.Object).Get("a")
	if first.(value.Int).V != 1 || second.(value.Int).V != 2 {
		t.Fatalf("nested[0].a, nested[1].a = %v, %v, want 1, 2", first, second)
	}
}

func TestConditionalShortCircuitsByDefault(t *testing.T) {
	e := New(Options{})
	sc := scope.New(nil)

	// Else branch references an undefined identifier, but since cond is
	// true and short-circuit is not disabled, only Then is evaluated and
	// the undefined reference in Else must not surface as Unknown.
	expr := &ast.Conditional{
		Cond: &ast.Literal{Value: ast.LiteralBool(true)},
		Then: lit(1),
		Else: ident("undefined"),
	}
	v := mustEval(t, e, expr, sc)
	if i, ok := v.(value.Int); !ok || i.V != 1 {
		t.Fatalf("result = %v, want Int(1)", v)
	}
}

func TestConditionalDisableShortCircuitEvaluatesBothBranches(t *testing.T) {
	e := New(Options{DisableShortCircuit: true})
	sc := scope.New(nil)

	expr := &ast.Conditional{
		Cond: &ast.Literal{Value: ast.LiteralBool(true)},
		Then: lit(1),
		Else: ident("undefined"),
	}
	v := mustEval(t, e, expr, sc)
	// cond is a concrete Bool(true), so Then is the chosen branch, but with
	// DisableShortCircuit Else is evaluated too and its Unknown reference is
	// folded into the result instead of being dropped.
	u, ok := v.(value.Unknown)
	if !ok {
		t.Fatalf("result = %T, want Unknown carrying Else's reference", v)
	}
	if u.AllRefs().Len() != 1 {
		t.Fatalf("AllRefs().Len() = %d, want 1 ({undefined})", u.AllRefs().Len())
	}
}

func TestConditionalWithUnknownConditionEvaluatesBothBranches(t *testing.T) {
	e := New(Options{})
	sc := scope.New(nil)

	expr := &ast.Conditional{
		Cond: ident("cond"), // undefined -> Unknown
		Then: lit(1),
		Else: lit(2),
	}
	v := mustEval(t, e, expr, sc)
	u, ok := v.(value.Unknown)
	if !ok {
		t.Fatalf("result = %T, want Unknown", v)
	}
	if u.AllRefs().Len() != 1 {
		t.Fatalf("AllRefs().Len() = %d, want 1 ({cond})", u.AllRefs().Len())
	}
}

func TestFunctionCallWithUnknownArgumentShortCircuitsInvocation(t *testing.T) {
	called := false
	e := New(Options{Functions: map[string]Function{
		"f": func(args []value.Value) (value.Value, error) {
			called = true
			return value.NewInt(value.Span{}, 0), nil
		},
	}})
	sc := scope.New(nil)

	expr := &ast.FunctionCall{Ident: "f", Args: []ast.Expr{ident("missing")}}
	v := mustEval(t, e, expr, sc)
	if called {
		t.Fatal("the intrinsic must not be invoked when an argument is Unknown")
	}
	if _, ok := v.(value.Unknown); !ok {
		t.Fatalf("result = %T, want Unknown", v)
	}
}

func TestFunctionCallUnknownFunctionFails(t *testing.T) {
	e := New(Options{})
	sc := scope.New(nil)
	expr := &ast.FunctionCall{Ident: "nope", Args: nil}
	_, d := e.Eval(expr, sc)
	if d == nil {
		t.Fatal("calling an unregistered function must fail outside tracker mode")
	}
}

func TestFunctionCallVarArgsRejected(t *testing.T) {
	e := New(Options{})
	sc := scope.New(nil)
	expr := &ast.FunctionCall{Ident: "f", VarArgs: true}
	_, d := e.Eval(expr, sc)
	if d == nil {
		t.Fatal("var-args function calls must be statically rejected")
	}
}

func TestObjectUnsupportedKeyHasHelp(t *testing.T) {
	e := New(Options{})
	sc := scope.New(nil)
	expr := &ast.ObjectExpr{Fields: []ast.ObjectField{{Key: lit(1), Value: lit(1)}}}
	_, d := e.Eval(expr, sc)
	if d == nil {
		t.Fatal("a non-string literal object key must fail")
	}
}

func TestDuplicateAttributeKeyIsError(t *testing.T) {
	e := New(Options{})
	sc := scope.New(nil)
	b := &ast.Block{Type: "x", Body: []ast.Stmt{
		&ast.Attribute{Key: "a", Value: lit(1)},
		&ast.Attribute{Key: "a", Value: lit(2)},
	}}
	_, d := e.EvalBlock(b, sc)
	if d == nil {
		t.Fatal("duplicate attribute keys within one block must fail")
	}
}

func TestArrayExprEvaluatesEachItem(t *testing.T) {
	e := New(Options{})
	sc := scope.New(nil)
	expr := &ast.ArrayExpr{Items: []ast.Expr{lit(1), lit(2), lit(3)}}
	v := mustEval(t, e, expr, sc)
	arr, ok := v.(value.Array)
	if !ok || len(arr.Items) != 3 {
		t.Fatalf("result = %v, want a 3-element Array", v)
	}
}

func TestFloatLiteral(t *testing.T) {
	e := New(Options{})
	sc := scope.New(nil)
	v := mustEval(t, e, litf(1.5), sc)
	if f, ok := v.(value.Float); !ok || f.V != 1.5 {
		t.Fatalf("result = %v, want Float(1.5)", v)
	}
}

// Snapshotted: a block-shaped object literal with scalar and array fields,
// rendered to JSON so the whole result shape is covered by one golden
// fixture instead of field-by-field assertions.
func TestObjectAccessSnapshot(t *testing.T) {
	e := New(Options{})
	sc := scope.New(nil)

	block := objExpr(
		field("name", litStr("svc")),
		field("port", lit(8080)),
		field("tags", &ast.ArrayExpr{Items: []ast.Expr{litStr("a"), litStr("b")}}),
	)
	v := mustEval(t, e, block, sc)

	out, d := valueio.ToJSON(v, true)
	if d != nil {
		t.Fatalf("ToJSON failed: %s", d.Error())
	}
	snaps.MatchSnapshot(t, "object_access_output", string(out))
}

// Snapshotted: a for-tuple comprehension's resulting array.
func TestForTupleComprehensionSnapshot(t *testing.T) {
	e := New(Options{})
	sc := scope.New(nil)

	expr := &ast.ForTupleExpr{
		ValueIdent: "n",
		Collection: &ast.ArrayExpr{Items: []ast.Expr{lit(1), lit(2), lit(3)}},
		Value:      bin("*", ident("n"), lit(2)),
	}
	v := mustEval(t, e, expr, sc)

	out, d := valueio.ToJSON(v, true)
	if d != nil {
		t.Fatalf("ToJSON failed: %s", d.Error())
	}
	snaps.MatchSnapshot(t, "for_tuple_output", string(out))
}
