package value

import "testing"

func TestObjectPreservesInsertionOrder(t *testing.T) {
	obj := NewObject(Span{})
	obj = obj.Set("b", NewInt(Span{}, 2))
	obj = obj.Set("a", NewInt(Span{}, 1))
	obj = obj.Set("c", NewInt(Span{}, 3))

	got := obj.Keys()
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
	}
}

func TestObjectSetOverwriteKeepsPosition(t *testing.T) {
	obj := NewObject(Span{})
	obj = obj.Set("a", NewInt(Span{}, 1))
	obj = obj.Set("b", NewInt(Span{}, 2))
	obj = obj.Set("a", NewInt(Span{}, 99))

	got := obj.Keys()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b] (overwrite must not reorder)", got)
	}
	v, ok := obj.Get("a")
	if !ok {
		t.Fatal("expected a to be present")
	}
	if v.(Int).V != 99 {
		t.Fatalf("Get(a) = %v, want 99", v)
	}
}

func TestObjectIsImmutableUnderSet(t *testing.T) {
	obj := NewObject(Span{})
	obj = obj.Set("a", NewInt(Span{}, 1))
	obj2 := obj.Set("b", NewInt(Span{}, 2))

	if _, ok := obj.Get("b"); ok {
		t.Fatal("Set must not mutate the receiver's visible keys")
	}
	if _, ok := obj2.Get("b"); !ok {
		t.Fatal("Set must return an object with the new key present")
	}
}

func TestWithSpanDoesNotOverrideExistingSpan(t *testing.T) {
	precise := Span{Source: "a", Start: 0, End: 1}
	v := NewInt(precise, 1)
	v2 := v.WithSpan(Span{Source: "a", Start: 10, End: 20})
	if v2.Span() != precise {
		t.Fatalf("WithSpan overrode an already-set span: got %v, want %v", v2.Span(), precise)
	}
}

func TestWithSpanAttachesWhenZero(t *testing.T) {
	v := NewInt(Span{}, 1)
	outer := Span{Source: "a", Start: 0, End: 5}
	v2 := v.WithSpan(outer)
	if v2.Span() != outer {
		t.Fatalf("WithSpan did not attach span: got %v, want %v", v2.Span(), outer)
	}
}

func TestUnknownAllRefsUnionsDirectAndIndirect(t *testing.T) {
	direct := NewReferenceSet(NewReference(Span{}, "foo", "bar"))
	indirect := NewReferenceSet(NewReference(Span{}, "baz"))
	u := NewUnknown(Span{}, direct, indirect)

	all := u.AllRefs()
	if all.Len() != 2 {
		t.Fatalf("AllRefs().Len() = %d, want 2", all.Len())
	}
}

func TestArrayResolveWithNoUnknownChildrenReturnsItself(t *testing.T) {
	arr := NewArray(Span{}, []Value{NewInt(Span{}, 1), NewInt(Span{}, 2)})
	resolved := arr.Resolve()
	if _, ok := resolved.(Array); !ok {
		t.Fatalf("Resolve() of a fully concrete array must stay an Array, got %T", resolved)
	}
}

func TestArrayResolveLiftsUnknownChild(t *testing.T) {
	ref := NewReference(Span{}, "x")
	arr := NewArray(Span{}, []Value{
		NewInt(Span{}, 1),
		NewUnknownDirect(Span{}, ref),
	})
	resolved := arr.Resolve()
	u, ok := resolved.(Unknown)
	if !ok {
		t.Fatalf("Resolve() with an Unknown child must produce Unknown, got %T", resolved)
	}
	if u.AllRefs().Len() != 1 {
		t.Fatalf("Resolve() lost the child's reference, got %d refs", u.AllRefs().Len())
	}
}

func TestDiffStringReportsMismatchAndAgreesOnEquality(t *testing.T) {
	a := NewInt(Span{}, 1)
	b := NewInt(Span{}, 2)
	if d := DiffString(a, b); d == "" {
		t.Fatal("DiffString must report a difference between Int(1) and Int(2)")
	}
	if d := DiffString(a, NewInt(Span{}, 1)); d != "" {
		t.Fatalf("DiffString(a, a) = %q, want empty", d)
	}
}

func TestResolveLiftsDeeplyNestedUnknown(t *testing.T) {
	inner := NewObject(Span{}).Set("a", NewUnknownDirect(Span{}, NewReference(Span{}, "foo")))
	arr := NewArray(Span{}, []Value{inner})
	outer := NewObject(Span{}).Set("nested", arr)

	resolved := Resolve(outer)
	u, ok := resolved.(Unknown)
	if !ok {
		t.Fatalf("Resolve() must lift an Unknown buried two containers deep, got %T", resolved)
	}
	if u.AllRefs().Len() != 1 {
		t.Fatalf("AllRefs().Len() = %d, want 1 ({foo})", u.AllRefs().Len())
	}
}

func TestRequireResolvedPassesConcreteValueThrough(t *testing.T) {
	v, d := RequireResolved(NewInt(Span{}, 1))
	if d != nil {
		t.Fatalf("RequireResolved(Int) failed: %s", d.Error())
	}
	if v.(Int).V != 1 {
		t.Fatalf("RequireResolved(Int) = %v, want Int(1)", v)
	}
}

func TestRequireResolvedFailsOnUnknown(t *testing.T) {
	obj := NewObject(Span{}).Set("a", NewUnknownDirect(Span{}, NewReference(Span{}, "foo")))
	_, d := RequireResolved(obj)
	if d == nil {
		t.Fatal("RequireResolved of a value with Unknown descendants must fail")
	}
}

func TestObjectResolveUnionsChildReferences(t *testing.T) {
	obj := NewObject(Span{})
	obj = obj.Set("a", NewUnknownDirect(Span{}, NewReference(Span{}, "foo")))
	obj = obj.Set("b", NewUnknownDirect(Span{}, NewReference(Span{}, "bar")))

	resolved := obj.Resolve()
	u, ok := resolved.(Unknown)
	if !ok {
		t.Fatalf("Resolve() must lift to Unknown, got %T", resolved)
	}
	if u.AllRefs().Len() != 2 {
		t.Fatalf("AllRefs().Len() = %d, want 2", u.AllRefs().Len())
	}
}
