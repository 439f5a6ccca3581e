package ast

import (
	"math"
	"strings"
	"testing"

	"github.com/netinmax/inko/token"
)

func TestNewUnwrapsTokens(t *testing.T) {
	tests := []struct {
		name string
		tok  token.Token
		want Child
	}{
		{"integer", token.Token{Kind: token.Integer, Value: "42"}, Int(42)},
		{"float", token.Token{Kind: token.Float, Value: "1.5"}, Float(1.5)},
		{"string", token.Token{Kind: token.String, Value: "hi"}, String("hi")},
		{"docstring", token.Token{Kind: token.Docstring, Value: "docs"}, String("docs")},
		{"identifier", token.Token{Kind: token.Identifier, Value: "foo"}, Sym("foo")},
		{"constant", token.Token{Kind: token.Constant, Value: "Foo"}, Sym("Foo")},
		{"operator", token.Token{Kind: token.Add, Value: "+"}, Sym("+")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := New(KindSend, tt.tok)
			if got := node.Children[0]; got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

// Out-of-range numeric literals keep the parse alive: integers
// saturate at the int64 limit and floats overflow to infinity.
func TestNewSaturatesOversizedLiterals(t *testing.T) {
	overInt := New(KindInteger, token.Token{
		Kind:  token.Integer,
		Value: "99999999999999999999",
	})
	if got := overInt.Children[0]; got != Int(math.MaxInt64) {
		t.Errorf("got %v, want the int64 maximum", got)
	}

	overFloat := New(KindFloat, token.Token{
		Kind:  token.Float,
		Value: strings.Repeat("9", 400) + ".0",
	})
	if got := overFloat.Children[0]; got != Float(math.Inf(1)) {
		t.Errorf("got %v, want +Inf", got)
	}
}

func TestNewInfersPositionFromFirstToken(t *testing.T) {
	inner := New(KindInteger, token.Token{Kind: token.Integer, Value: "1", Line: 1, Column: 1})
	name := token.Token{Kind: token.Identifier, Value: "foo", Line: 2, Column: 5}

	node := New(KindSend, inner, name)
	if node.Pos.Line != 2 || node.Pos.Column != 5 {
		t.Errorf("got %s, want 2:5", node.Pos)
	}
}

func TestNewAtTakesPrecedenceOverTokenPosition(t *testing.T) {
	tok := token.Token{Kind: token.Identifier, Value: "foo", Line: 9, Column: 9}

	node := NewAt(KindIdent, Position{Line: 3, Column: 1}, tok)
	if node.Pos.Line != 3 || node.Pos.Column != 1 {
		t.Errorf("got %s, want 3:1", node.Pos)
	}
}

func TestNewWithoutTokensHasNoPosition(t *testing.T) {
	node := New(KindArgs)
	if node.Pos.Valid() {
		t.Errorf("got %s, want no position", node.Pos)
	}
}

func TestNewKeepsNilSlots(t *testing.T) {
	var absent *Node

	node := New(KindClosure, New(KindArgs), nil, absent)
	if len(node.Children) != 3 {
		t.Fatalf("got %d children, want 3", len(node.Children))
	}
	if node.Children[1] != nil {
		t.Errorf("untyped nil: got %#v", node.Children[1])
	}
	if node.Children[2] != nil {
		t.Errorf("typed nil node: got %#v", node.Children[2])
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := New(KindSend,
		New(KindIdent, token.Token{Kind: token.Identifier, Value: "x", Line: 1, Column: 1}),
		Sym("+"),
		New(KindInteger, Int(1)),
	)

	clone := original.Clone()
	if clone == original {
		t.Fatal("clone returned the same node")
	}
	if clone.NodeAt(0) == original.NodeAt(0) {
		t.Error("nested node was shared instead of copied")
	}
	if clone.String() != original.String() {
		t.Errorf("clone differs:\n%s\nvs\n%s", clone, original)
	}

	clone.NodeAt(0).Kind = KindConst
	if original.NodeAt(0).Kind != KindIdent {
		t.Error("mutating the clone changed the original")
	}
}

func TestAccessors(t *testing.T) {
	node := New(KindMember, Sym("Red"), nil, Int(2))

	if got := node.SymAt(0); got != "Red" {
		t.Errorf("SymAt(0): got %q", got)
	}
	if got := node.IntAt(2); got != 2 {
		t.Errorf("IntAt(2): got %d", got)
	}
	if node.NodeAt(1) != nil {
		t.Error("NodeAt(1): got a node for a nil slot")
	}
	if node.NodeAt(9) != nil {
		t.Error("NodeAt out of range: got a node")
	}
	if got := node.SymAt(2); got != "" {
		t.Errorf("SymAt on an Int slot: got %q", got)
	}
}

func TestStringDump(t *testing.T) {
	node := NewAt(KindSend, Position{Line: 1, Column: 3},
		NewAt(KindInteger, Position{Line: 1, Column: 1}, Int(1)),
		Sym("+"),
		NewAt(KindInteger, Position{Line: 1, Column: 5}, Int(2)),
	)

	dump := node.String()
	for _, want := range []string{"send [1:3]", "integer [1:1]", "+", "2"} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump %q does not contain %q", dump, want)
		}
	}

	lines := strings.Split(strings.TrimSuffix(dump, "\n"), "\n")
	if !strings.HasPrefix(lines[1], "  ") {
		t.Errorf("children are not indented: %q", lines[1])
	}
}

func TestKindNames(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindExprs, "exprs"},
		{KindSend, "send"},
		{KindLetMut, "letmut"},
		{KindIRange, "irange"},
		{KindRDef, "rdef"},
		{KindTypeArgs, "targs"},
		{KindTopLevel, "toplevel"},
		{Kind(-1), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d: got %q, want %q", tt.kind, got, tt.want)
		}
	}
}
