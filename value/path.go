package value

import "github.com/risqcapital/hcl2go/diag"

// GetAttr implements attribute access on a value. key is the
// identifier text (e.g. `.foo`). span is the span of the whole attribute
// access expression, used for a derived Unknown and for the missing-key
// diagnostic's label.
func GetAttr(span Span, on Value, key string) (Value, *diag.Diagnostic) {
	switch v := on.(type) {
	case Object:
		if val, ok := v.Get(key); ok {
			return val, nil
		}
		return nil, diag.New(diag.CodeGetIndexMissingKey, "key "+key+" not found in object").
			WithLabel(span, "missing key "+key)
	case Unknown:
		return unknownPathStep(span, v, key), nil
	default:
		return nil, diag.New(diag.CodeGetAttrUnsupportedType,
			"cannot access attribute "+key+" on "+on.Kind().String())
	}
}

// GetIndexString implements string-keyed indexing (`on[key]` where key
// evaluates to a String), which for Object is equivalent to GetAttr and for
// Unknown extends direct references the same way a `.key` access would.
func GetIndexString(span Span, on Value, key string) (Value, *diag.Diagnostic) {
	switch v := on.(type) {
	case Object:
		if val, ok := v.Get(key); ok {
			return val, nil
		}
		return nil, diag.New(diag.CodeGetIndexMissingKey, "key "+key+" not found in object").
			WithLabel(span, "missing key "+key)
	case Unknown:
		return unknownPathStep(span, v, key), nil
	case String:
		return nil, diag.New(diag.CodeGetIndexUnsupportedType, "cannot index a string by key "+key)
	default:
		return nil, diag.New(diag.CodeGetIndexUnsupportedType,
			"cannot index "+on.Kind().String()+" by string key "+key)
	}
}

// GetIndexInt implements integer indexing (`on[i]`). Arrays are positional;
// Unknown produces indirect-only references since the path language has no
// integer component.
func GetIndexInt(span Span, on Value, idx int64) (Value, *diag.Diagnostic) {
	switch v := on.(type) {
	case Array:
		if idx < 0 || int(idx) >= len(v.Items) {
			return nil, diag.New(diag.CodeGetIndexOutOfBounds, "index out of bounds").
				WithLabel(span, "index out of bounds")
		}
		return v.Items[idx], nil
	case Unknown:
		return NewUnknown(span, ReferenceSet{}, v.AllRefs()), nil
	default:
		return nil, diag.New(diag.CodeGetIndexUnsupportedType,
			"cannot index "+on.Kind().String()+" by integer")
	}
}

// unknownPathStep extends an Unknown's direct references by key, demoting
// its prior references (both direct and indirect) to the result's indirect
// set.
func unknownPathStep(span Span, u Unknown, key string) Value {
	newDirect := u.Direct.Extend(key, span)
	newIndirect := u.Direct.Union(u.Indirect)
	return NewUnknown(span, newDirect, newIndirect)
}
