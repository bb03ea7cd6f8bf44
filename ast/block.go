package ast

import "fmt"

// Stmt is a node appearing in a block body: Attribute or Block.
type Stmt interface {
	Node
	stmtNode()
}

// Attribute is `key = value`.
type Attribute struct {
	BaseNode
	Key   string `json:"key"`
	Value Expr   `json:"value"`
}

func (*Attribute) stmtNode() {}

// Block is a labeled, body-bearing construct: `type_ident "label1" "label2" { body }`.
type Block struct {
	BaseNode
	Type   string `json:"type"`
	Labels []string `json:"labels"`
	Body   []Stmt `json:"body"`
}

func (*Block) stmtNode() {}

// Key returns the block's identity tuple: its type followed by its labels,
// used both for block-merging and as the generation planner's node
// identity.
func (b *Block) Key() []string {
	key := make([]string, 0, len(b.Labels)+1)
	key = append(key, b.Type)
	key = append(key, b.Labels...)
	return key
}

// KeyString renders Key as a single string suitable for use as a map key.
func (b *Block) KeyString() string {
	return keyString(b.Key())
}

func keyString(parts []string) string {
	s := ""
	for i, p := range parts {
		if i > 0 {
			s += "\x1f"
		}
		s += p
	}
	return s
}

func (b *Block) String() string {
	return fmt.Sprintf("%s %v", b.Type, b.Labels)
}

// Module is the root node: the implicit outer block over the parsed body.
type Module struct {
	BaseNode
	Body []Stmt `json:"body"`
}

// GetBlocks filters Body to Block children, optionally restricted to typ
// (pass "" to return every block regardless of type).
func (m *Module) GetBlocks(typ string) []*Block {
	var out []*Block
	for _, s := range m.Body {
		b, ok := s.(*Block)
		if !ok {
			continue
		}
		if typ != "" && b.Type != typ {
			continue
		}
		out = append(out, b)
	}
	return out
}

// GetBlock returns the unique block matching typ and labels, nil if none
// match, and an error if more than one does.
func (m *Module) GetBlock(typ string, labels ...string) (*Block, error) {
	var found *Block
	for _, b := range m.GetBlocks(typ) {
		if labelsEqual(b.Labels, labels) {
			if found != nil {
				return nil, fmt.Errorf("ast: more than one block matches %s %v", typ, labels)
			}
			found = b
		}
	}
	return found, nil
}

func labelsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
