package ast

import (
	"encoding/json"
	"fmt"
)

// Package ast's JSON encoding is this module's AST wire contract: every
// node serializes as a JSON object carrying a "node" type discriminator
// alongside its fields, so a host tool that owns the parser can hand this
// module a tree without sharing Go types with it.

func marshalWithNode(name string, v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	nameJSON, err := json.Marshal(name)
	if err != nil {
		return nil, err
	}
	raw["node"] = nameJSON
	return json.Marshal(raw)
}

func nodeName(data []byte) (string, error) {
	var env struct {
		Node string `json:"node"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return "", err
	}
	if env.Node == "" {
		return "", fmt.Errorf("ast: missing \"node\" discriminator")
	}
	return env.Node, nil
}

// UnmarshalExpr decodes data into the concrete Expr variant named by its
// "node" field.
func UnmarshalExpr(data []byte) (Expr, error) {
	name, err := nodeName(data)
	if err != nil {
		return nil, err
	}
	var e Expr
	switch name {
	case "Literal":
		e = &Literal{}
	case "Identifier":
		e = &Identifier{}
	case "ArrayExpr":
		e = &ArrayExpr{}
	case "ObjectExpr":
		e = &ObjectExpr{}
	case "Parenthesis":
		e = &Parenthesis{}
	case "UnaryExpr":
		e = &UnaryExpr{}
	case "BinaryExpr":
		e = &BinaryExpr{}
	case "Conditional":
		e = &Conditional{}
	case "GetAttr":
		e = &GetAttr{}
	case "GetIndex":
		e = &GetIndex{}
	case "AttrSplat":
		e = &AttrSplat{}
	case "IndexSplat":
		e = &IndexSplat{}
	case "FunctionCall":
		e = &FunctionCall{}
	case "ForTupleExpr":
		e = &ForTupleExpr{}
	case "ForObjectExpr":
		e = &ForObjectExpr{}
	default:
		return nil, fmt.Errorf("ast: unknown expression node %q", name)
	}
	if u, ok := e.(json.Unmarshaler); ok {
		if err := u.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return e, nil
	}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UnmarshalStmt decodes data into the concrete Stmt variant named by its
// "node" field (Attribute or Block).
func UnmarshalStmt(data []byte) (Stmt, error) {
	name, err := nodeName(data)
	if err != nil {
		return nil, err
	}
	switch name {
	case "Attribute":
		n := &Attribute{}
		if err := n.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return n, nil
	case "Block":
		n := &Block{}
		if err := n.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("ast: unknown statement node %q", name)
	}
}

func decodeExprList(raw []json.RawMessage) ([]Expr, error) {
	out := make([]Expr, len(raw))
	for i, r := range raw {
		e, err := UnmarshalExpr(r)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodeStmtList(raw []json.RawMessage) ([]Stmt, error) {
	out := make([]Stmt, len(raw))
	for i, r := range raw {
		s, err := UnmarshalStmt(r)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func decodeOptionalExpr(raw json.RawMessage) (Expr, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	return UnmarshalExpr(raw)
}

// ---- Literal / Identifier: no nested Expr fields, default unmarshal is fine ----

func (n *Literal) MarshalJSON() ([]byte, error) {
	type alias Literal
	return marshalWithNode("Literal", (*alias)(n))
}

func (n *Identifier) MarshalJSON() ([]byte, error) {
	type alias Identifier
	return marshalWithNode("Identifier", (*alias)(n))
}

// ---- ArrayExpr ----

func (n *ArrayExpr) MarshalJSON() ([]byte, error) {
	type alias ArrayExpr
	return marshalWithNode("ArrayExpr", (*alias)(n))
}

func (n *ArrayExpr) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	items, err := decodeExprList(wire.Items)
	if err != nil {
		return err
	}
	n.BaseNode, n.Items = wire.BaseNode, items
	return nil
}

// ---- ObjectExpr ----

func (n *ObjectExpr) MarshalJSON() ([]byte, error) {
	type alias ObjectExpr
	return marshalWithNode("ObjectExpr", (*alias)(n))
}

func (n *ObjectExpr) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		Fields []struct {
			Key   json.RawMessage `json:"key"`
			Value json.RawMessage `json:"value"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	fields := make([]ObjectField, len(wire.Fields))
	for i, f := range wire.Fields {
		k, err := UnmarshalExpr(f.Key)
		if err != nil {
			return err
		}
		v, err := UnmarshalExpr(f.Value)
		if err != nil {
			return err
		}
		fields[i] = ObjectField{Key: k, Value: v}
	}
	n.BaseNode, n.Fields = wire.BaseNode, fields
	return nil
}

// ---- Parenthesis ----

func (n *Parenthesis) MarshalJSON() ([]byte, error) {
	type alias Parenthesis
	return marshalWithNode("Parenthesis", (*alias)(n))
}

func (n *Parenthesis) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		Inner json.RawMessage `json:"inner"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	inner, err := UnmarshalExpr(wire.Inner)
	if err != nil {
		return err
	}
	n.BaseNode, n.Inner = wire.BaseNode, inner
	return nil
}

// ---- UnaryExpr ----

func (n *UnaryExpr) MarshalJSON() ([]byte, error) {
	type alias UnaryExpr
	return marshalWithNode("UnaryExpr", (*alias)(n))
}

func (n *UnaryExpr) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		Op      string          `json:"op"`
		Operand json.RawMessage `json:"operand"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	operand, err := UnmarshalExpr(wire.Operand)
	if err != nil {
		return err
	}
	n.BaseNode, n.Op, n.Operand = wire.BaseNode, wire.Op, operand
	return nil
}

// ---- BinaryExpr ----

func (n *BinaryExpr) MarshalJSON() ([]byte, error) {
	type alias BinaryExpr
	return marshalWithNode("BinaryExpr", (*alias)(n))
}

func (n *BinaryExpr) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		Op    string          `json:"op"`
		Left  json.RawMessage `json:"left"`
		Right json.RawMessage `json:"right"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	left, err := UnmarshalExpr(wire.Left)
	if err != nil {
		return err
	}
	right, err := UnmarshalExpr(wire.Right)
	if err != nil {
		return err
	}
	n.BaseNode, n.Op, n.Left, n.Right = wire.BaseNode, wire.Op, left, right
	return nil
}

// ---- Conditional ----

func (n *Conditional) MarshalJSON() ([]byte, error) {
	type alias Conditional
	return marshalWithNode("Conditional", (*alias)(n))
}

func (n *Conditional) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		Cond json.RawMessage `json:"cond"`
		Then json.RawMessage `json:"then"`
		Else json.RawMessage `json:"else"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	cond, err := UnmarshalExpr(wire.Cond)
	if err != nil {
		return err
	}
	then, err := UnmarshalExpr(wire.Then)
	if err != nil {
		return err
	}
	els, err := UnmarshalExpr(wire.Else)
	if err != nil {
		return err
	}
	n.BaseNode, n.Cond, n.Then, n.Else = wire.BaseNode, cond, then, els
	return nil
}

// ---- GetAttr ----

func (n *GetAttr) MarshalJSON() ([]byte, error) {
	type alias GetAttr
	return marshalWithNode("GetAttr", (*alias)(n))
}

func (n *GetAttr) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		On  json.RawMessage `json:"on"`
		Key string          `json:"key"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	on, err := UnmarshalExpr(wire.On)
	if err != nil {
		return err
	}
	n.BaseNode, n.On, n.Key = wire.BaseNode, on, wire.Key
	return nil
}

// ---- GetIndex ----

func (n *GetIndex) MarshalJSON() ([]byte, error) {
	type alias GetIndex
	return marshalWithNode("GetIndex", (*alias)(n))
}

func (n *GetIndex) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		On  json.RawMessage `json:"on"`
		Key json.RawMessage `json:"key"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	on, err := UnmarshalExpr(wire.On)
	if err != nil {
		return err
	}
	key, err := UnmarshalExpr(wire.Key)
	if err != nil {
		return err
	}
	n.BaseNode, n.On, n.Key = wire.BaseNode, on, key
	return nil
}

// ---- AttrSplat ----

func (n *AttrSplat) MarshalJSON() ([]byte, error) {
	type alias AttrSplat
	return marshalWithNode("AttrSplat", (*alias)(n))
}

func (n *AttrSplat) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		On   json.RawMessage `json:"on"`
		Keys []string        `json:"keys"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	on, err := UnmarshalExpr(wire.On)
	if err != nil {
		return err
	}
	n.BaseNode, n.On, n.Keys = wire.BaseNode, on, wire.Keys
	return nil
}

// ---- IndexSplat ----

func (n *IndexSplat) MarshalJSON() ([]byte, error) {
	type alias IndexSplat
	return marshalWithNode("IndexSplat", (*alias)(n))
}

func (n *IndexSplat) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		On   json.RawMessage `json:"on"`
		Keys []struct {
			Kind SplatKeyKind    `json:"kind"`
			Attr string          `json:"attr,omitempty"`
			Expr json.RawMessage `json:"expr,omitempty"`
		} `json:"keys"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	on, err := UnmarshalExpr(wire.On)
	if err != nil {
		return err
	}
	keys := make([]SplatKey, len(wire.Keys))
	for i, k := range wire.Keys {
		sk := SplatKey{Kind: k.Kind, Attr: k.Attr}
		if len(k.Expr) > 0 {
			e, err := UnmarshalExpr(k.Expr)
			if err != nil {
				return err
			}
			sk.Expr = e
		}
		keys[i] = sk
	}
	n.BaseNode, n.On, n.Keys = wire.BaseNode, on, keys
	return nil
}

// ---- FunctionCall ----

func (n *FunctionCall) MarshalJSON() ([]byte, error) {
	type alias FunctionCall
	return marshalWithNode("FunctionCall", (*alias)(n))
}

func (n *FunctionCall) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		Ident   string            `json:"ident"`
		Args    []json.RawMessage `json:"args"`
		VarArgs bool              `json:"var_args"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	args, err := decodeExprList(wire.Args)
	if err != nil {
		return err
	}
	n.BaseNode, n.Ident, n.Args, n.VarArgs = wire.BaseNode, wire.Ident, args, wire.VarArgs
	return nil
}

// ---- ForTupleExpr ----

func (n *ForTupleExpr) MarshalJSON() ([]byte, error) {
	type alias ForTupleExpr
	return marshalWithNode("ForTupleExpr", (*alias)(n))
}

func (n *ForTupleExpr) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		KeyIdent   string          `json:"key_ident,omitempty"`
		ValueIdent string          `json:"value_ident"`
		Collection json.RawMessage `json:"collection"`
		Value      json.RawMessage `json:"value"`
		Condition  json.RawMessage `json:"condition,omitempty"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	coll, err := UnmarshalExpr(wire.Collection)
	if err != nil {
		return err
	}
	val, err := UnmarshalExpr(wire.Value)
	if err != nil {
		return err
	}
	cond, err := decodeOptionalExpr(wire.Condition)
	if err != nil {
		return err
	}
	n.BaseNode = wire.BaseNode
	n.KeyIdent, n.ValueIdent = wire.KeyIdent, wire.ValueIdent
	n.Collection, n.Value, n.Condition = coll, val, cond
	return nil
}

// ---- ForObjectExpr ----

func (n *ForObjectExpr) MarshalJSON() ([]byte, error) {
	type alias ForObjectExpr
	return marshalWithNode("ForObjectExpr", (*alias)(n))
}

func (n *ForObjectExpr) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		KeyIdent   string          `json:"key_ident,omitempty"`
		ValueIdent string          `json:"value_ident"`
		Collection json.RawMessage `json:"collection"`
		Key        json.RawMessage `json:"key"`
		Value      json.RawMessage `json:"value"`
		Condition  json.RawMessage `json:"condition,omitempty"`
		Grouping   bool            `json:"grouping"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	coll, err := UnmarshalExpr(wire.Collection)
	if err != nil {
		return err
	}
	key, err := UnmarshalExpr(wire.Key)
	if err != nil {
		return err
	}
	val, err := UnmarshalExpr(wire.Value)
	if err != nil {
		return err
	}
	cond, err := decodeOptionalExpr(wire.Condition)
	if err != nil {
		return err
	}
	n.BaseNode = wire.BaseNode
	n.KeyIdent, n.ValueIdent = wire.KeyIdent, wire.ValueIdent
	n.Collection, n.Key, n.Value, n.Condition = coll, key, val, cond
	n.Grouping = wire.Grouping
	return nil
}

// ---- Attribute ----

func (n *Attribute) MarshalJSON() ([]byte, error) {
	type alias Attribute
	return marshalWithNode("Attribute", (*alias)(n))
}

func (n *Attribute) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	v, err := UnmarshalExpr(wire.Value)
	if err != nil {
		return err
	}
	n.BaseNode, n.Key, n.Value = wire.BaseNode, wire.Key, v
	return nil
}

// ---- Block ----

func (n *Block) MarshalJSON() ([]byte, error) {
	type alias Block
	return marshalWithNode("Block", (*alias)(n))
}

func (n *Block) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		Type   string            `json:"type"`
		Labels []string          `json:"labels"`
		Body   []json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	body, err := decodeStmtList(wire.Body)
	if err != nil {
		return err
	}
	n.BaseNode, n.Type, n.Labels, n.Body = wire.BaseNode, wire.Type, wire.Labels, body
	return nil
}

// ---- Module ----

func (n *Module) MarshalJSON() ([]byte, error) {
	type alias Module
	return marshalWithNode("Module", (*alias)(n))
}

func (n *Module) UnmarshalJSON(data []byte) error {
	var wire struct {
		BaseNode
		Body []json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	body, err := decodeStmtList(wire.Body)
	if err != nil {
		return err
	}
	n.BaseNode, n.Body = wire.BaseNode, body
	return nil
}
