package eval

import (
	"github.com/risqcapital/hcl2go/ast"
	"github.com/risqcapital/hcl2go/diag"
	"github.com/risqcapital/hcl2go/scope"
	"github.com/risqcapital/hcl2go/value"
)

// EvalBlock evaluates a block into an Object. Every statement of the block
// shares one child scope so sibling attributes may reference each other in
// source order; a fresh scope per attribute would make `a = 1` followed by
// `b = a + 1` in the same block impossible.
func (e *Evaluator) EvalBlock(b *ast.Block, sc *scope.Scope) (value.Object, *diag.Diagnostic) {
	child := scope.NewChild(sc, nil)
	out := value.NewObject(b.Span)

	for _, stmt := range b.Body {
		switch s := stmt.(type) {
		case *ast.Attribute:
			v, d := e.Eval(s.Value, child)
			if d != nil {
				return value.Object{}, d
			}
			if _, exists := out.Get(s.Key); exists {
				return value.Object{}, diag.New(diag.CodeBlockDuplicateKey, "duplicate attribute key "+s.Key).
					WithLabel(s.Span, "duplicate key "+s.Key)
			}
			child.Define(s.Key, v)
			out = out.Set(s.Key, v)
		case *ast.Block:
			nested, d := e.EvalBlock(s, child)
			if d != nil {
				return value.Object{}, d
			}
			out, d = weave(out, s.Key(), nested, s.Span)
			if d != nil {
				return value.Object{}, d
			}
		default:
			return value.Object{}, diag.New(diag.CodeUnsupportedNode, "unsupported block statement").
				WithLabel(stmt.Pos(), "expected an attribute or nested block")
		}
	}

	return out, nil
}

// EvalModule evaluates the module's body as the implicit outer block.
func (e *Evaluator) EvalModule(m *ast.Module, sc *scope.Scope) (value.Object, *diag.Diagnostic) {
	return e.EvalBlock(&ast.Block{BaseNode: m.BaseNode, Body: m.Body}, sc)
}

// weave fuses a nested block's result into the outer object at path,
// creating intermediate objects as needed and accumulating same-path
// siblings into an array at the final component: this is how
// multiple `resource "aws_instance" "a"` blocks fuse into
// `resource -> aws_instance -> [obj, obj, ...]`.
func weave(obj value.Object, path []string, item value.Value, span value.Span) (value.Object, *diag.Diagnostic) {
	if len(path) == 0 {
		return obj, diag.New(diag.CodeBlockKeyConflict, "block has no identity key")
	}

	head := path[0]
	if len(path) == 1 {
		existing, ok := obj.Get(head)
		if !ok {
			return obj.Set(head, value.NewArray(span, []value.Value{item})), nil
		}
		arr, ok := existing.(value.Array)
		if !ok {
			return value.Object{}, diag.New(diag.CodeBlockKeyConflict, "block key "+head+" conflicts with an existing non-array value").
				WithLabel(span, "conflicting block key "+head)
		}
		items := append(append([]value.Value(nil), arr.Items...), item)
		return obj.Set(head, value.NewArray(arr.Span(), items)), nil
	}

	var child value.Object
	existing, ok := obj.Get(head)
	if !ok {
		child = value.NewObject(span)
	} else {
		co, ok := existing.(value.Object)
		if !ok {
			return value.Object{}, diag.New(diag.CodeBlockKeyConflict, "block key "+head+" conflicts with an existing non-object value").
				WithLabel(span, "conflicting block key "+head)
		}
		child = co
	}

	newChild, d := weave(child, path[1:], item, span)
	if d != nil {
		return value.Object{}, d
	}
	return obj.Set(head, newChild), nil
}
