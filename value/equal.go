package value

// Equal implements HCL2's "==" contract: values of different Kind are never
// equal, container equality is structural (order matters for Array,
// key/value pairs for Object regardless of order), and spans never factor
// into comparison — two values built from different source spans but the
// same data are equal.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av.V == b.(Bool).V
	case Int:
		bv := b.(Int)
		return av.V == bv.V
	case Float:
		return av.V == b.(Float).V
	case String:
		return av.V == b.(String).V
	case Array:
		bv := b.(Array)
		if len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case Object:
		bv := b.(Object)
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Keys() {
			va, _ := av.Get(k)
			vb, ok := bv.Get(k)
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	case Unknown:
		// Two Unknowns are never observably equal: each represents a
		// distinct unresolved computation.
		return false
	default:
		return false
	}
}
