// Package diag is the diagnostics facade shared by every core subsystem: a
// single failure-record shape (stable code, message, labeled spans, notes,
// and an optional cause chain) used instead of ad hoc errors, with
// rendering left out: building the record is this package's job, printing
// it with source snippets and color is the external renderer's.
package diag

import (
	"fmt"
	"strings"
)

// Code is a stable diagnostic identifier of the form
// "hcl2core::<subsystem>::<kind>", e.g. "hcl2core::binary_expression::arithmetic_error".
type Code string

const (
	CodeUnsupportedNode Code = "hcl2core::evaluator::unsupported_node"

	CodeObjectUnsupportedKey Code = "hcl2core::object::unsupported_key"

	CodeBinaryUnsupportedOperator Code = "hcl2core::binary_expression::unsupported_operator"
	CodeBinaryArithmeticError     Code = "hcl2core::binary_expression::arithmetic_error"
	CodeUnsupportedUnaryOperator  Code = "hcl2core::unsupported_unary_operator"

	CodeGetAttrUnsupportedType  Code = "hcl2core::get_attr::unsupported_type"
	CodeGetIndexUnsupportedType Code = "hcl2core::get_index::unsupported_type"
	CodeGetIndexMissingKey      Code = "hcl2core::get_index::missing_key"
	CodeGetIndexOutOfBounds     Code = "hcl2core::get_index::index_out_of_bounds"

	CodeBlockDuplicateKey Code = "hcl2core::block::duplicate_key"
	CodeBlockKeyConflict  Code = "hcl2core::block::key_conflict"

	CodeFunctionCallUnsupportedVarArgs Code = "hcl2core::function_call::unsupported_var_args"
	CodeFunctionCallUnsupportedFunc    Code = "hcl2core::function_call::unsupported_function"
	CodeFunctionCallInvalidArgs        Code = "hcl2core::function_call::invalid_args"

	CodeForTupleUnsupportedCollection  Code = "hcl2core::for_tuple_expression::unsupported_collection"
	CodeForTupleUnsupportedCondition   Code = "hcl2core::for_tuple_expression::unsupported_condition"
	CodeForObjectUnsupportedCollection Code = "hcl2core::for_object_expression::unsupported_collection"
	CodeForObjectUnsupportedCondition  Code = "hcl2core::for_object_expression::unsupported_condition"
	CodeForObjectUnsupportedKey        Code = "hcl2core::for_object_expression::unsupported_key"
	CodeForObjectUnsupportedGrouping   Code = "hcl2core::for_object_expression::unsupported_grouping_mode"

	CodeConditionalUnsupportedCondition Code = "hcl2core::conditional::unsupported_condition"

	CodeEvaluatorUnknownVariable Code = "hcl2core::evaluator::unknown_variable"

	CodeGenerationsNotDAG Code = "hcl2core::generations::not_a_dag"
)

// Label is a single span annotated with an explanatory message, ordered so
// the primary offending span comes first.
type Label struct {
	Span    SpanLike
	Message string
}

// SpanLike is satisfied by value.Span without this package importing value,
// which would create an import cycle (value needs diag for path-op errors).
type SpanLike interface {
	String() string
}

// Diagnostic is the fatal-error channel across the core: any failing step
// aborts the enclosing eval call and returns one of these, optionally
// wrapping an inner Diagnostic as Cause.
type Diagnostic struct {
	Code   Code
	Msg    string
	Labels []Label
	Notes  []string
	Help   string
	Cause  *Diagnostic
}

func New(code Code, msg string) *Diagnostic {
	return &Diagnostic{Code: code, Msg: msg}
}

func (d *Diagnostic) WithLabel(span SpanLike, msg string) *Diagnostic {
	d.Labels = append(d.Labels, Label{Span: span, Message: msg})
	return d
}

func (d *Diagnostic) WithNote(note string) *Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// Wrap attaches d as additional context in front of cause's chain, used for
// "while evaluating element i" / "while evaluating <kind> expression" notes
// added as splat iteration and the planner unwind past failing frames.
func Wrap(code Code, msg string, cause *Diagnostic) *Diagnostic {
	return &Diagnostic{Code: code, Msg: msg, Cause: cause}
}

func (d *Diagnostic) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s", d.Code, d.Msg))
	for _, l := range d.Labels {
		sb.WriteString(fmt.Sprintf("\n  at %s: %s", l.Span.String(), l.Message))
	}
	for _, n := range d.Notes {
		sb.WriteString("\n  note: " + n)
	}
	if d.Help != "" {
		sb.WriteString("\n  help: " + d.Help)
	}
	if d.Cause != nil {
		sb.WriteString("\ncaused by: " + d.Cause.Error())
	}
	return sb.String()
}
