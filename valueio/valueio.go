// Package valueio bridges value.Value to host-language primitives and
// interchange formats: host-native Go values, JSON, YAML (via
// goccy/go-yaml), and gjson/sjson-style path query and patch. None of this
// lives in package value itself, keeping the runtime value representation
// separate from the serialization helpers layered on top of it.
package valueio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	goyaml "github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/risqcapital/hcl2go/diag"
	"github.com/risqcapital/hcl2go/value"
)

// CodeInferUnsupportedType is raised when Infer is given a host value with
// no mapping into the value lattice.
const CodeInferUnsupportedType diag.Code = "hcl2core::valueio::unsupported_type"

// Infer lifts a host-language primitive into Value: nil -> Null;
// bool; integers (any width, signed or unsigned) -> Int; float32/float64 ->
// Float; json.Number -> Int when it parses as an int64, else Float;
// string -> String; fmt.Stringer (path-like values) -> String via
// its textual form; any slice/array (not []byte, not string) -> Array with
// recursive inference; any map -> Object with string-coerced keys and
// recursive inference, keys sorted for determinism; an existing value.Value
// is returned unchanged.
func Infer(x any) (value.Value, *diag.Diagnostic) {
	if v, ok := x.(value.Value); ok {
		return v, nil
	}
	if x == nil {
		return value.NewNull(value.Span{}), nil
	}

	switch v := x.(type) {
	case bool:
		return value.NewBool(value.Span{}, v), nil
	case string:
		return value.NewString(value.Span{}, v), nil
	case float32:
		return value.NewFloat(value.Span{}, float64(v)), nil
	case float64:
		return value.NewFloat(value.Span{}, v), nil
	case int:
		return value.NewInt(value.Span{}, int64(v)), nil
	case int8:
		return value.NewInt(value.Span{}, int64(v)), nil
	case int16:
		return value.NewInt(value.Span{}, int64(v)), nil
	case int32:
		return value.NewInt(value.Span{}, int64(v)), nil
	case int64:
		return value.NewInt(value.Span{}, v), nil
	case uint:
		return value.NewInt(value.Span{}, int64(v)), nil
	case uint8:
		return value.NewInt(value.Span{}, int64(v)), nil
	case uint16:
		return value.NewInt(value.Span{}, int64(v)), nil
	case uint32:
		return value.NewInt(value.Span{}, int64(v)), nil
	case uint64:
		return value.NewInt(value.Span{}, int64(v)), nil
	case []byte:
		return value.NewString(value.Span{}, string(v)), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return value.NewInt(value.Span{}, i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, diag.New(CodeInferUnsupportedType, "invalid JSON number "+v.String())
		}
		return value.NewFloat(value.Span{}, f), nil
	}

	if s, ok := x.(fmt.Stringer); ok {
		return value.NewString(value.Span{}, s.String()), nil
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]value.Value, rv.Len())
		for i := range items {
			item, d := Infer(rv.Index(i).Interface())
			if d != nil {
				return nil, diag.Wrap(CodeInferUnsupportedType, fmt.Sprintf("while inferring element %d", i), d)
			}
			items[i] = item
		}
		return value.NewArray(value.Span{}, items), nil
	case reflect.Map:
		obj := value.NewObject(value.Span{})
		keys := rv.MapKeys()
		type entry struct {
			str string
			key reflect.Value
		}
		entries := make([]entry, len(keys))
		for i, k := range keys {
			entries[i] = entry{str: fmt.Sprintf("%v", k.Interface()), key: k}
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].str < entries[j].str })
		for _, e := range entries {
			item, d := Infer(rv.MapIndex(e.key).Interface())
			if d != nil {
				return nil, diag.Wrap(CodeInferUnsupportedType, "while inferring key "+e.str, d)
			}
			obj = obj.Set(e.str, item)
		}
		return obj, nil
	}

	return nil, diag.New(CodeInferUnsupportedType, fmt.Sprintf("cannot infer a value from host type %T", x))
}

// ToHost lowers a Value back to a plain Go value (map[string]any, []any,
// bool, int64, float64, string, nil) suitable for json.Marshal or
// goyaml.Marshal; Unknown has no host representation.
func ToHost(v value.Value) (any, *diag.Diagnostic) {
	switch vv := v.(type) {
	case value.Null:
		return nil, nil
	case value.Bool:
		return vv.V, nil
	case value.Int:
		return vv.V, nil
	case value.Float:
		return vv.V, nil
	case value.String:
		return vv.V, nil
	case value.Array:
		out := make([]any, len(vv.Items))
		for i, item := range vv.Items {
			h, d := ToHost(item)
			if d != nil {
				return nil, d
			}
			out[i] = h
		}
		return out, nil
	case value.Object:
		out := make(map[string]any, vv.Len())
		for _, k := range vv.Keys() {
			item, _ := vv.Get(k)
			h, d := ToHost(item)
			if d != nil {
				return nil, d
			}
			out[k] = h
		}
		return out, nil
	default:
		return nil, diag.New(CodeInferUnsupportedType, "unknown values have no host representation")
	}
}

// FromJSON decodes JSON bytes into a Value via encoding/json's generic
// decode (numbers kept as json.Number, so whole numbers become Int)
// followed by Infer.
func FromJSON(data []byte) (value.Value, *diag.Diagnostic) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return nil, diag.New(CodeInferUnsupportedType, "invalid JSON: "+err.Error())
	}
	return Infer(x)
}

// ToJSON renders v as JSON via ToHost + encoding/json.
func ToJSON(v value.Value, indent bool) ([]byte, *diag.Diagnostic) {
	h, d := ToHost(v)
	if d != nil {
		return nil, d
	}
	var (
		out []byte
		err error
	)
	if indent {
		out, err = json.MarshalIndent(h, "", "  ")
	} else {
		out, err = json.Marshal(h)
	}
	if err != nil {
		return nil, diag.New(CodeInferUnsupportedType, "failed to marshal JSON: "+err.Error())
	}
	return out, nil
}

// FromYAML decodes YAML bytes into a Value via goccy/go-yaml's generic
// decode followed by Infer.
func FromYAML(data []byte) (value.Value, *diag.Diagnostic) {
	var x any
	if err := goyaml.Unmarshal(data, &x); err != nil {
		return nil, diag.New(CodeInferUnsupportedType, "invalid YAML: "+err.Error())
	}
	return Infer(x)
}

// ToYAML renders v as YAML via ToHost + goccy/go-yaml.
func ToYAML(v value.Value) ([]byte, *diag.Diagnostic) {
	h, d := ToHost(v)
	if d != nil {
		return nil, d
	}
	out, err := goyaml.Marshal(h)
	if err != nil {
		return nil, diag.New(CodeInferUnsupportedType, "failed to marshal YAML: "+err.Error())
	}
	return out, nil
}

// Query runs a gjson path expression against v's JSON rendering, returning
// the matched value re-inferred into the value lattice. Used by the CLI's
// --query flag to pick a sub-value out of an evaluated result without the
// caller writing a GetAttr/GetIndex chain by hand.
func Query(v value.Value, path string) (value.Value, *diag.Diagnostic) {
	data, d := ToJSON(v, false)
	if d != nil {
		return nil, d
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return nil, diag.New(CodeInferUnsupportedType, "query path "+path+" matched nothing")
	}
	return FromJSON([]byte(res.Raw))
}

// Patch applies an sjson path.Set(raw) edit directly to a JSON document,
// backing the CLI's --set key=value override flag: raw is itself a JSON
// literal (e.g. `"3"`, `"true"`, `"\"foo\""`), matching sjson.SetRawBytes's
// contract of splicing already-encoded JSON rather than re-encoding a Go
// value.
func Patch(jsonDoc []byte, path string, raw string) ([]byte, *diag.Diagnostic) {
	out, err := sjson.SetRawBytes(jsonDoc, path, []byte(raw))
	if err != nil {
		return nil, diag.New(CodeInferUnsupportedType, "failed to patch path "+path+": "+err.Error())
	}
	return out, nil
}
