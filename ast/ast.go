// Package ast defines the AST node shapes the evaluator consumes. The
// grammar, the parser, and the decision of which concrete nodes to emit
// for a given source text are external to this module — this package only
// fixes the contract: one type per node variant, each carrying a Span,
// with JSON (de)serialization so a host can hand this module an
// already-parsed tree without either side depending on a shared parser
// package.
//
// Pos returns a byte-range Span rather than a line/column position, since
// the evaluator and dependency tracker key everything off spans, not
// cursors.
package ast

import "github.com/risqcapital/hcl2go/value"

// Span is the position type carried by every node; alias of value.Span so
// neither package needs to convert between its own notion of a span.
type Span = value.Span

// Node is the base interface implemented by every AST variant.
type Node interface {
	Pos() Span
}

// Expr is any node that produces a value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// BaseNode supplies the embeddable Span storage and Pos() implementation
// shared by every concrete node type.
type BaseNode struct {
	Span Span `json:"span"`
}

func (b BaseNode) Pos() Span { return b.Span }
