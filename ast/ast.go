package ast

import (
	"fmt"
	"strings"
)

// Kind identifies the grammar production a node was built from.
type Kind int

const (
	KindInvalid Kind = iota

	// Expression sequences and literals
	KindExprs
	KindInteger
	KindFloat
	KindString
	KindSym
	KindArray
	KindHash
	KindPair
	KindDocstring

	// References
	KindIdent
	KindConst
	KindTopLevel
	KindIVar
	KindSelf
	KindTrue
	KindFalse
	KindFlag

	// Operators and calls
	KindSend
	KindOr
	KindAnd
	KindIRange
	KindERange
	KindRest
	KindAssign

	// Bindings and control flow
	KindLet
	KindLetMut
	KindReturn
	KindSuper
	KindBreak
	KindNext

	// Closures and arguments
	KindClosure
	KindArgs
	KindArg
	KindRestArg

	// Declarations
	KindDef
	KindRDef
	KindTypeArgs
	KindTypeArg
	KindType
	KindTDef
	KindClass
	KindTrait
	KindEnum
	KindMember
	KindModule
	KindImport
	KindISym
	KindImpl
)

var kindNames = map[Kind]string{
	KindInvalid:   "invalid",
	KindExprs:     "exprs",
	KindInteger:   "integer",
	KindFloat:     "float",
	KindString:    "string",
	KindSym:       "sym",
	KindArray:     "array",
	KindHash:      "hash",
	KindPair:      "pair",
	KindDocstring: "docstring",
	KindIdent:     "ident",
	KindConst:     "const",
	KindTopLevel:  "toplevel",
	KindIVar:      "ivar",
	KindSelf:      "self",
	KindTrue:      "true",
	KindFalse:     "false",
	KindFlag:      "flag",
	KindSend:      "send",
	KindOr:        "or",
	KindAnd:       "and",
	KindIRange:    "irange",
	KindERange:    "erange",
	KindRest:      "rest",
	KindAssign:    "assign",
	KindLet:       "let",
	KindLetMut:    "letmut",
	KindReturn:    "return",
	KindSuper:     "super",
	KindBreak:     "break",
	KindNext:      "next",
	KindClosure:   "closure",
	KindArgs:      "args",
	KindArg:       "arg",
	KindRestArg:   "restarg",
	KindDef:       "def",
	KindRDef:      "rdef",
	KindTypeArgs:  "targs",
	KindTypeArg:   "targ",
	KindType:      "type",
	KindTDef:      "tdef",
	KindClass:     "class",
	KindTrait:     "trait",
	KindEnum:      "enum",
	KindMember:    "member",
	KindModule:    "module",
	KindImport:    "import",
	KindISym:      "isym",
	KindImpl:      "impl",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

var kindsByName = func() map[string]Kind {
	byName := make(map[string]Kind, len(kindNames))
	for kind, name := range kindNames {
		byName[name] = kind
	}
	return byName
}()

// KindFromName maps a kind's dump name back to the kind, for decoding
// serialized trees.
func KindFromName(name string) (Kind, bool) {
	kind, ok := kindsByName[name]
	return kind, ok
}

// Position is a 1-based source location. The zero value means the
// location is absent, which only synthetic nodes are allowed to have.
type Position struct {
	Line   int
	Column int
}

func (p Position) Valid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Child is one slot in a node's child list: a nested node or a scalar
// unwrapped from a token. A nil Child marks an absent optional slot.
type Child interface {
	child()
}

type Int int64

type Float float64

type String string

type Sym string

func (Int) child()    {}
func (Float) child()  {}
func (String) child() {}
func (Sym) child()    {}

// Node is the universal AST entity. Nodes are immutable once built:
// composing expressions wraps prior nodes in new ones instead of
// editing them in place.
type Node struct {
	Kind     Kind
	Pos      Position
	Children []Child
}

func (*Node) child() {}

// NodeAt returns child i as a node, or nil when the slot is absent,
// out of range, or holds a scalar.
func (n *Node) NodeAt(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	child, _ := n.Children[i].(*Node)
	return child
}

func (n *Node) SymAt(i int) Sym {
	if i < 0 || i >= len(n.Children) {
		return ""
	}
	sym, _ := n.Children[i].(Sym)
	return sym
}

func (n *Node) IntAt(i int) Int {
	if i < 0 || i >= len(n.Children) {
		return 0
	}
	val, _ := n.Children[i].(Int)
	return val
}

// Clone deep-copies a node. Every node owns its children exclusively,
// so reusing a subtree in a second parent (as desugaring compound
// assignment does) goes through a copy.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	copied := &Node{Kind: n.Kind, Pos: n.Pos}
	if n.Children == nil {
		return copied
	}
	copied.Children = make([]Child, len(n.Children))
	for i, child := range n.Children {
		if node, ok := child.(*Node); ok {
			copied.Children[i] = node.Clone()
		} else {
			copied.Children[i] = child
		}
	}
	return copied
}

func (n *Node) String() string {
	var out strings.Builder
	n.write(&out, 0)
	return out.String()
}

func (n *Node) write(out *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		out.WriteString("  ")
	}
	out.WriteString(n.Kind.String())
	if n.Pos.Valid() {
		fmt.Fprintf(out, " [%s]", n.Pos)
	}
	out.WriteString("\n")

	for _, child := range n.Children {
		switch child := child.(type) {
		case *Node:
			child.write(out, indent+1)
		case nil:
			writeScalar(out, indent+1, "_")
		case Int:
			writeScalar(out, indent+1, fmt.Sprintf("%d", int64(child)))
		case Float:
			writeScalar(out, indent+1, fmt.Sprintf("%g", float64(child)))
		case String:
			writeScalar(out, indent+1, fmt.Sprintf("%q", string(child)))
		case Sym:
			writeScalar(out, indent+1, string(child))
		}
	}
}

func writeScalar(out *strings.Builder, indent int, text string) {
	for i := 0; i < indent; i++ {
		out.WriteString("  ")
	}
	out.WriteString(text)
	out.WriteString("\n")
}
