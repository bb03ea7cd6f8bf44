package eval

import (
	"strconv"

	"github.com/risqcapital/hcl2go/ast"
	"github.com/risqcapital/hcl2go/diag"
	"github.com/risqcapital/hcl2go/scope"
	"github.com/risqcapital/hcl2go/value"
)

// evalFunctionCall implements FunctionCall. VarArgs calls are rejected
// statically. All arguments are
// evaluated first; if any is Unknown, the call itself is never invoked and
// the result is Unknown carrying the union of every argument's reference
// surface. Otherwise the function is looked up by name in opts.Functions,
// or (when opts.UniversalStub is set, the tracker's configuration)
// treated as present regardless of name, pessimistically returning Unknown
// over the call's own reference surface instead of actually invoking it.
func (e *Evaluator) evalFunctionCall(n *ast.FunctionCall, sc *scope.Scope) (value.Value, *diag.Diagnostic) {
	if n.VarArgs {
		return nil, diag.New(diag.CodeFunctionCallUnsupportedVarArgs, "variadic function calls are not supported").
			WithLabel(n.Span, "call uses var-args expansion")
	}

	args := make([]value.Value, len(n.Args))
	var refs value.ReferenceSet
	hasUnknown := false
	for i, a := range n.Args {
		v, d := e.Eval(a, sc)
		if d != nil {
			return nil, diag.Wrap(d.Code, "while evaluating argument "+strconv.Itoa(i), d)
		}
		args[i] = v
		if u, ok := v.(value.Unknown); ok {
			hasUnknown = true
			refs = refs.Union(u.AllRefs())
		}
	}

	if hasUnknown {
		return value.NewUnknownIndirect(n.Span, refs), nil
	}

	fn, ok := e.opts.Functions[n.Ident]
	if !ok {
		if e.opts.UniversalStub {
			return value.NewUnknownIndirect(n.Span, value.ReferenceSet{}), nil
		}
		return nil, diag.New(diag.CodeFunctionCallUnsupportedFunc, "unknown function "+n.Ident).
			WithLabel(n.Span, "no such function")
	}

	result, err := fn(args)
	if err != nil {
		return nil, diag.New(diag.CodeFunctionCallInvalidArgs, err.Error()).
			WithLabel(n.Span, "while calling "+n.Ident)
	}
	return result.WithSpan(n.Span), nil
}
