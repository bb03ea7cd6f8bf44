package value

// orderedMap is a minimal insertion-ordered string-keyed map: a lookup
// table that also remembers insertion order for deterministic iteration.
// HCL2 object keys are case-sensitive, so there is no case-folding here.
type orderedMap struct {
	keys   []string
	values map[string]Value
}

func newOrderedMap() *orderedMap {
	return &orderedMap{values: make(map[string]Value)}
}

func (m *orderedMap) get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// set inserts or overwrites key, keeping the original insertion position for
// an overwrite (so repeated assignment to an attribute does not reorder it).
func (m *orderedMap) set(key string, v Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *orderedMap) delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m *orderedMap) len() int { return len(m.keys) }

func (m *orderedMap) clone() *orderedMap {
	n := &orderedMap{
		keys:   append([]string(nil), m.keys...),
		values: make(map[string]Value, len(m.values)),
	}
	for k, v := range m.values {
		n.values[k] = v
	}
	return n
}
