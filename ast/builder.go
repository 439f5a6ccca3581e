package ast

import (
	"fmt"
	"strconv"

	"github.com/netinmax/inko/token"
)

// New builds a node from raw children. Each child is a nested *Node, a
// token.Token, one of the scalar Child types, or nil for an absent
// slot. Tokens are unwrapped to scalars before storage and are never
// retained. The node's position is taken from the first token child;
// nodes built without any token child carry no position.
func New(kind Kind, children ...any) *Node {
	return build(kind, Position{}, children)
}

// NewAt is New with an explicit position, which takes precedence over
// any position inferred from token children.
func NewAt(kind Kind, pos Position, children ...any) *Node {
	return build(kind, pos, children)
}

func build(kind Kind, pos Position, children []any) *Node {
	node := &Node{Kind: kind, Pos: pos}
	if len(children) == 0 {
		return node
	}

	node.Children = make([]Child, len(children))
	for i, raw := range children {
		child, at := unwrap(raw)
		node.Children[i] = child
		if !node.Pos.Valid() && at.Valid() {
			node.Pos = at
		}
	}
	return node
}

func unwrap(raw any) (Child, Position) {
	switch value := raw.(type) {
	case nil:
		return nil, Position{}
	case *Node:
		if value == nil {
			return nil, Position{}
		}
		return value, Position{}
	case token.Token:
		return scalar(value), Position{Line: value.Line, Column: value.Column}
	case Int:
		return value, Position{}
	case Float:
		return value, Position{}
	case String:
		return value, Position{}
	case Sym:
		return value, Position{}
	}
	panic(fmt.Sprintf("ast: unsupported child type %T", raw))
}

// scalar converts a token to the scalar its kind implies. The lexer
// validated the lexeme's shape; a literal too large for its type
// saturates at the int64 limit or overflows to infinity instead of
// failing the parse.
func scalar(tok token.Token) Child {
	switch tok.Kind {
	case token.Integer:
		value, _ := strconv.ParseInt(tok.Value, 10, 64)
		return Int(value)
	case token.Float:
		value, _ := strconv.ParseFloat(tok.Value, 64)
		return Float(value)
	case token.String, token.Docstring:
		return String(tok.Value)
	}
	return Sym(tok.Value)
}
