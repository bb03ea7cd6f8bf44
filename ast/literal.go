package ast

import (
	"encoding/json"
	"fmt"

	"github.com/risqcapital/hcl2go/value"
)

// LiteralValue is the JSON-friendly payload of a Literal node. Only the
// scalar kinds a parser can produce directly appear here (Null, Bool, Int,
// Float, String) — Array/Object/Unknown only ever arise from evaluation.
type LiteralValue struct {
	Kind value.Kind `json:"kind"`
	Bool bool       `json:"bool,omitempty"`
	Int  int64      `json:"int,omitempty"`
	Float float64   `json:"float,omitempty"`
	Str  string     `json:"str,omitempty"`
}

// ToValue lifts the literal payload into a value.Value at span.
func (l LiteralValue) ToValue(span Span) value.Value {
	switch l.Kind {
	case value.KindNull:
		return value.NewNull(span)
	case value.KindBool:
		return value.NewBool(span, l.Bool)
	case value.KindInt:
		return value.NewInt(span, l.Int)
	case value.KindFloat:
		return value.NewFloat(span, l.Float)
	case value.KindString:
		return value.NewString(span, l.Str)
	default:
		return value.NewNull(span)
	}
}

func LiteralNull() LiteralValue            { return LiteralValue{Kind: value.KindNull} }
func LiteralBool(b bool) LiteralValue      { return LiteralValue{Kind: value.KindBool, Bool: b} }
func LiteralInt(i int64) LiteralValue      { return LiteralValue{Kind: value.KindInt, Int: i} }
func LiteralFloat(f float64) LiteralValue  { return LiteralValue{Kind: value.KindFloat, Float: f} }
func LiteralString(s string) LiteralValue  { return LiteralValue{Kind: value.KindString, Str: s} }

// MarshalJSON renders LiteralValue as {"kind":"string", ...} using the
// human-readable kind name rather than the numeric Kind constant.
func (l LiteralValue) MarshalJSON() ([]byte, error) {
	type wire struct {
		Kind  string  `json:"kind"`
		Bool  bool    `json:"bool,omitempty"`
		Int   int64   `json:"int,omitempty"`
		Float float64 `json:"float,omitempty"`
		Str   string  `json:"str,omitempty"`
	}
	kind := l.Kind.String()
	switch l.Kind {
	case value.KindInt:
		kind = "int"
	case value.KindFloat:
		kind = "float"
	}
	return json.Marshal(wire{Kind: kind, Bool: l.Bool, Int: l.Int, Float: l.Float, Str: l.Str})
}

func (l *LiteralValue) UnmarshalJSON(data []byte) error {
	var wire struct {
		Kind  string  `json:"kind"`
		Bool  bool    `json:"bool"`
		Int   int64   `json:"int"`
		Float float64 `json:"float"`
		Str   string  `json:"str"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Kind {
	case "null":
		l.Kind = value.KindNull
	case "bool":
		l.Kind = value.KindBool
	case "int":
		l.Kind = value.KindInt
	case "float":
		l.Kind = value.KindFloat
	case "string":
		l.Kind = value.KindString
	default:
		return fmt.Errorf("ast: unknown literal kind %q", wire.Kind)
	}
	l.Bool, l.Int, l.Float, l.Str = wire.Bool, wire.Int, wire.Float, wire.Str
	return nil
}
