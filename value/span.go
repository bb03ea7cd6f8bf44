// Package value implements the HCL2 runtime value lattice: the tagged union
// of concrete values plus the Unknown element that carries the dependency
// references the evaluator could not resolve.
package value

import "fmt"

// Span is a half-open byte range [Start, End) into a named source. It is the
// only positional information the core carries — rendering source snippets
// from a Span is the external renderer's job, not this package's.
type Span struct {
	Source string
	Start  int
	End    int
}

// IsZero reports whether the span carries no position at all, which happens
// for values synthesized outside any AST node (e.g. host-inferred values).
func (s Span) IsZero() bool {
	return s == Span{}
}

func (s Span) String() string {
	if s.Source == "" {
		return fmt.Sprintf("%d-%d", s.Start, s.End)
	}
	return fmt.Sprintf("%s:%d-%d", s.Source, s.Start, s.End)
}

// Union returns the smallest span covering both a and b. If either is zero
// and the other isn't, the non-zero one wins; this lets splat evaluation grow
// a span key-by-key starting from an unset accumulator.
func (a Span) Union(b Span) Span {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	src := a.Source
	if src == "" {
		src = b.Source
	}
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return Span{Source: src, Start: start, End: end}
}
