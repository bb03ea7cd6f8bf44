package value

import "github.com/risqcapital/hcl2go/diag"

// Resolve lifts an Object containing any Unknown into a single Unknown
// carrying the union of those children's references (indirect, since
// "consuming" a value through resolution doesn't extend a path).
// Child containers are resolved first, so an Unknown buried inside a
// nested object or array (a nested block's attribute, say) still lifts all
// the way out. An Object with no Unknown descendants resolves to itself
// unchanged.
func (o Object) Resolve() Value {
	var refs ReferenceSet
	var any bool
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		if u, ok := Resolve(v).(Unknown); ok {
			any = true
			refs = refs.Union(u.AllRefs())
		}
	}
	if !any {
		return o
	}
	return NewUnknownIndirect(o.span, refs)
}

// Resolve is the Array counterpart of Object.Resolve.
func (a Array) Resolve() Value {
	var refs ReferenceSet
	var any bool
	for _, v := range a.Items {
		if u, ok := Resolve(v).(Unknown); ok {
			any = true
			refs = refs.Union(u.AllRefs())
		}
	}
	if !any {
		return a
	}
	return NewUnknownIndirect(a.span, refs)
}

// Resolve dispatches to the container Resolve methods; every other kind is
// already as resolved as it will ever be.
func Resolve(v Value) Value {
	switch vv := v.(type) {
	case Object:
		return vv.Resolve()
	case Array:
		return vv.Resolve()
	default:
		return v
	}
}

// RequireResolved is the "require fully resolved" conversion: it resolves v
// and fails with evaluator::unknown_variable if anything is still Unknown,
// labeling each blocking reference's span.
func RequireResolved(v Value) (Value, *diag.Diagnostic) {
	resolved := Resolve(v)
	u, ok := resolved.(Unknown)
	if !ok {
		return resolved, nil
	}
	d := diag.New(diag.CodeEvaluatorUnknownVariable, "value depends on unresolved variables")
	for _, r := range u.AllRefs().Items() {
		d = d.WithLabel(r.Span, "unresolved reference")
	}
	return nil, d
}
