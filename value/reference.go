package value

import "strings"

// PathComponent is one element of a Reference. Known is false for a dynamic
// or otherwise unresolvable position; such a component renders as the
// sentinel used in dynamicKey.
type PathComponent struct {
	Key   string
	Known bool
}

const dynamicKey = "\x00<dynamic>"

// canonical renders the path components into a form suitable as a dedup key;
// it is not meant to round-trip back into components.
func canonical(path []PathComponent) string {
	var sb strings.Builder
	for i, c := range path {
		if i > 0 {
			sb.WriteByte('\x1f')
		}
		if c.Known {
			sb.WriteString(c.Key)
		} else {
			sb.WriteString(dynamicKey)
		}
	}
	return sb.String()
}

// Reference is a non-empty path of optional string components plus the span
// where the reference was produced.
type Reference struct {
	Path []PathComponent
	Span Span
}

// NewReference builds a fully-known reference from plain string keys, e.g.
// NewReference(span, "foo", "bar") for the path foo.bar.
func NewReference(span Span, keys ...string) Reference {
	path := make([]PathComponent, len(keys))
	for i, k := range keys {
		path[i] = PathComponent{Key: k, Known: true}
	}
	return Reference{Path: path, Span: span}
}

// Extend returns a new reference with key appended as a known component,
// keeping the original span (the reference started there).
func (r Reference) Extend(key string) Reference {
	path := make([]PathComponent, len(r.Path)+1)
	copy(path, r.Path)
	path[len(r.Path)] = PathComponent{Key: key, Known: true}
	return Reference{Path: path, Span: r.Span}
}

// AllKnown reports whether every path component is statically known, i.e.
// this reference names a fully-specified variable path.
func (r Reference) AllKnown() bool {
	for _, c := range r.Path {
		if !c.Known {
			return false
		}
	}
	return true
}

// Keys returns the path as plain strings; only valid when AllKnown is true.
func (r Reference) Keys() []string {
	keys := make([]string, len(r.Path))
	for i, c := range r.Path {
		keys[i] = c.Key
	}
	return keys
}

func (r Reference) canonical() string { return canonical(r.Path) }

// ReferenceSet is an insertion-ordered, deduplicated collection of References.
type ReferenceSet struct {
	items []Reference
	seen  map[string]bool
}

// NewReferenceSet builds a set from the given references, deduplicating by
// canonical path (first occurrence wins for the kept span).
func NewReferenceSet(refs ...Reference) ReferenceSet {
	var s ReferenceSet
	for _, r := range refs {
		s = s.Add(r)
	}
	return s
}

// Add returns a new set with r inserted if not already present.
func (s ReferenceSet) Add(r Reference) ReferenceSet {
	key := r.canonical()
	if s.seen != nil && s.seen[key] {
		return s
	}
	seen := make(map[string]bool, len(s.seen)+1)
	for k := range s.seen {
		seen[k] = true
	}
	seen[key] = true
	return ReferenceSet{items: append(append([]Reference(nil), s.items...), r), seen: seen}
}

// Union returns the set containing every reference in a or b, a's order first.
func (a ReferenceSet) Union(b ReferenceSet) ReferenceSet {
	out := a
	for _, r := range b.items {
		out = out.Add(r)
	}
	return out
}

func (s ReferenceSet) Items() []Reference {
	return append([]Reference(nil), s.items...)
}

func (s ReferenceSet) Len() int { return len(s.items) }

func (s ReferenceSet) IsEmpty() bool { return len(s.items) == 0 }

// Extend returns a new set where every member reference is extended with
// key; if the set is empty, a single fresh reference (None, key) is produced
// at span: the key is known but what it was accessed on is not.
func (s ReferenceSet) Extend(key string, span Span) ReferenceSet {
	if s.IsEmpty() {
		return NewReferenceSet(Reference{
			Path: []PathComponent{{Known: false}, {Key: key, Known: true}},
			Span: span,
		})
	}
	var out ReferenceSet
	for _, r := range s.items {
		out = out.Add(r.Extend(key))
	}
	return out
}
