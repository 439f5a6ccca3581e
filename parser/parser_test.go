package parser

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/netinmax/inko/ast"
	"github.com/netinmax/inko/lexer"
)

// sexpr renders a tree as a compact s-expression for shape assertions.
func sexpr(n *ast.Node) string {
	parts := []string{n.Kind.String()}
	for _, child := range n.Children {
		switch child := child.(type) {
		case *ast.Node:
			parts = append(parts, sexpr(child))
		case ast.Int:
			parts = append(parts, fmt.Sprintf("%d", int64(child)))
		case ast.Float:
			parts = append(parts, fmt.Sprintf("%g", float64(child)))
		case ast.String:
			parts = append(parts, fmt.Sprintf("%q", string(child)))
		case ast.Sym:
			parts = append(parts, string(child))
		case nil:
			parts = append(parts, "_")
		}
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func parseString(t *testing.T, input string) *ast.Node {
	t.Helper()
	node, err := Parse(lexer.New([]byte(input)))
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return node
}

// parseOne parses input expected to hold exactly one top-level
// expression and returns it.
func parseOne(t *testing.T, input string) *ast.Node {
	t.Helper()
	root := parseString(t, input)
	if len(root.Children) != 1 {
		t.Fatalf("parse %q: got %d expressions, want 1", input, len(root.Children))
	}
	return root.NodeAt(0)
}

func TestParseExpressionShapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// Literals and simple atoms
		{"10", "(integer 10)"},
		{"10.5", "(float 10.5)"},
		{`"hello"`, `(string "hello")`},
		{"'hello'", `(string "hello")`},
		{":name", "(sym name)"},
		{"true", "(true)"},
		{"false", "(false)"},
		{"self", "(self)"},
		{"@name", "(ivar name)"},
		{"$debug", "(flag debug)"},
		{"[1, 2]", "(array (integer 1) (integer 2))"},
		{"[]", "(array)"},
		{"{}", "(hash)"},
		{"{ a: 1, b: 2 }", "(hash (pair a (integer 1)) (pair b (integer 2)))"},

		// Precedence and associativity
		{"1 + 2 * 3", "(send (integer 1) + (send (integer 2) * (integer 3)))"},
		{"1 * 2 + 3", "(send (send (integer 1) * (integer 2)) + (integer 3))"},
		{"1 - 2 - 3", "(send (send (integer 1) - (integer 2)) - (integer 3))"},
		{"1 ** 2 ** 3", "(send (send (integer 1) ** (integer 2)) ** (integer 3))"},
		{"1 << 2 + 3", "(send (integer 1) << (send (integer 2) + (integer 3)))"},
		{"1 & 2 | 3", "(send (send (integer 1) & (integer 2)) | (integer 3))"},
		{"1 ^ 2", "(send (integer 1) ^ (integer 2))"},
		{"a < b == c < d", "(send (send (ident a) < (ident b)) == (send (ident c) < (ident d)))"},
		{"a <=> b", "(send (ident a) <=> (ident b))"},
		{"a != b", "(send (ident a) != (ident b))"},
		{"a || b && c", "(or (ident a) (and (ident b) (ident c)))"},
		{"a && b || c", "(or (and (ident a) (ident b)) (ident c))"},

		// Ranges and rest
		{"1..5", "(irange (integer 1) (integer 5))"},
		{"1...5", "(erange (integer 1) (integer 5))"},
		{"1...", "(rest (integer 1))"},
		{"1 + 2..5", "(send (integer 1) + (irange (integer 2) (integer 5)))"},
		{"1..2 ** 3", "(irange (integer 1) (send (integer 2) ** (integer 3)))"},

		// Unary operators
		{"!x", "(send (ident x) !)"},
		{"-x", "(send (ident x) -@)"},
		{"+x", "(send (ident x) +@)"},
		{"!!x", "(send (send (ident x) !) !)"},
		{"1 - -x", "(send (integer 1) - (send (ident x) -@))"},

		// Sends and postfix chains
		{"x.foo", "(send (ident x) foo)"},
		{"x.foo(1, 2)", "(send (ident x) foo (integer 1) (integer 2))"},
		{"x.foo.bar", "(send (send (ident x) foo) bar)"},
		{"foo(1)", "(send _ foo (integer 1))"},
		{"x.foo(1).bar", "(send (send (ident x) foo (integer 1)) bar)"},

		// Index and index-assign
		{"x[0]", "(send (ident x) [] (integer 0))"},
		{"x[0] = 5", "(send (ident x) []= (integer 0) (integer 5))"},
		{"x[0, 1]", "(send (ident x) [] (integer 0) (integer 1))"},
		{"x.foo[0]", "(send (send (ident x) foo) [] (integer 0))"},

		// Assignments
		{"a = 1", "(assign (ident a) (integer 1))"},
		{"a += 1", "(assign (ident a) (send (ident a) + (integer 1)))"},
		{"a -= 1", "(assign (ident a) (send (ident a) - (integer 1)))"},
		{"a *= 2", "(assign (ident a) (send (ident a) * (integer 2)))"},
		{"a /= 2", "(assign (ident a) (send (ident a) / (integer 2)))"},
		{"a %= 2", "(assign (ident a) (send (ident a) % (integer 2)))"},
		{"a &= 2", "(assign (ident a) (send (ident a) & (integer 2)))"},
		{"a |= 2", "(assign (ident a) (send (ident a) | (integer 2)))"},
		{"a ^= 2", "(assign (ident a) (send (ident a) ^ (integer 2)))"},
		{"@x = 1", "(assign (ivar x) (integer 1))"},

		// Qualified names
		{"Foo::Bar", "(const (const Foo) Bar)"},
		{"::Foo", "(const (toplevel) Foo)"},
		{"std::stdio", "(ident (ident std) stdio)"},
		{`std::stdio::print("x")`, `(send (ident (ident std) stdio) print (string "x"))`},

		// Bindings and control flow
		{"let x = 1", "(let (ident x) (integer 1))"},
		{"let mut x = 1", "(letmut (ident x) (integer 1))"},
		{"let @x = 1", "(let (ivar x) (integer 1))"},
		{"return 1", "(return (integer 1))"},
		{"return", "(return _)"},
		{"super(1)", "(super (integer 1))"},
		{"super", "(super)"},
		{"break", "(break)"},
		{"next", "(next)"},

		// Closures
		{"-> { 1 }", "(closure (args) _ (exprs (integer 1)))"},
		{"-> (a) { a }", "(closure (args (arg a _ _)) _ (exprs (ident a)))"},
		{"-> (Int a) -> Int { a }", "(closure (args (arg a (const Int) _)) (const Int) (exprs (ident a)))"},
		{"{ 1 }", "(closure (args) _ (exprs (integer 1)))"},
		{"x.each -> (a) { a }", "(send (ident x) each (closure (args (arg a _ _)) _ (exprs (ident a))))"},
		{"foo(1) { x }", "(send _ foo (integer 1) (closure (args) _ (exprs (ident x))))"},

		// Parenthesized sequences
		{"(1)", "(integer 1)"},
		{"(1 + 2) * 3", "(send (send (integer 1) + (integer 2)) * (integer 3))"},
		{"(1 2)", "(exprs (integer 1) (integer 2))"},

		// Docstrings survive parsing, plain comments do not
		{"## The docs\n1", "(docstring \"The docs\")"},
		{"# plain comment\n1", "(integer 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root := parseString(t, tt.input)
			if len(root.Children) == 0 {
				t.Fatalf("no expressions parsed")
			}
			if got := sexpr(root.NodeAt(0)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCompoundAssignMatchesDesugaredForm(t *testing.T) {
	compound := parseOne(t, "a += 1")
	plain := parseOne(t, "a = a + 1")

	if got, want := sexpr(compound), sexpr(plain); got != want {
		t.Errorf("a += 1 parsed as %s, a = a + 1 as %s", got, want)
	}
}

func TestBinarySendLocatedAtOperator(t *testing.T) {
	node := parseOne(t, "1 + 2")

	if node.Kind != ast.KindSend {
		t.Fatalf("got %s, want send", node.Kind)
	}
	if node.Pos.Line != 1 || node.Pos.Column != 3 {
		t.Errorf("got position %s, want 1:3", node.Pos)
	}
}

func TestEveryNodeHasResolvablePosition(t *testing.T) {
	input := `
import std::stdio

class Person {
  def init(String name) {
    let @name = name
  }

  def greet -> String {
    "hello " + @name
  }
}

let person = Person.new("inko")
person.greet
`
	root := parseString(t, input)

	var walk func(n *ast.Node, path string)
	walk = func(n *ast.Node, path string) {
		if n.Kind != ast.KindExprs && n.Kind != ast.KindArgs && !n.Pos.Valid() {
			t.Errorf("node %s at %s has no position", n.Kind, path)
		}
		for i, child := range n.Children {
			if node, ok := child.(*ast.Node); ok {
				walk(node, fmt.Sprintf("%s/%s[%d]", path, n.Kind, i))
			}
		}
	}
	walk(root, "")
}

func TestReferencePositions(t *testing.T) {
	root := parseString(t, "foo\n  bar")

	first := root.NodeAt(0)
	if first.Pos.Line != 1 || first.Pos.Column != 1 {
		t.Errorf("first: got %s, want 1:1", first.Pos)
	}
	second := root.NodeAt(1)
	if second.Pos.Line != 2 || second.Pos.Column != 3 {
		t.Errorf("second: got %s, want 2:3", second.Pos)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		line   int
		column int
	}{
		{"(1", 1, 3},
		{"1 +", 1, 4},
		{"x[1", 1, 4},
		{"let x 5", 1, 7},
		{"a &&", 1, 5},
		{"1..", 1, 4},
		{"{ a: }", 1, 6},
		{"def", 1, 4},
		{"class lower { }", 1, 7},
		{"x.", 1, 3},
		{")", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(lexer.New([]byte(tt.input)))
			if err == nil {
				t.Fatalf("expected a syntax error")
			}

			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("got %T, want *SyntaxError", err)
			}
			if syntaxErr.Line != tt.line || syntaxErr.Column != tt.column {
				t.Errorf("got position %d:%d, want %d:%d",
					syntaxErr.Line, syntaxErr.Column, tt.line, tt.column)
			}
		})
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	_, err := Parse(lexer.New([]byte("let x 5")))
	if err == nil {
		t.Fatal("expected a syntax error")
	}

	msg := err.Error()
	if !strings.Contains(msg, "1:7") {
		t.Errorf("message %q does not contain the position", msg)
	}
	if !strings.Contains(msg, "unexpected") {
		t.Errorf("message %q does not name the unexpected token", msg)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	input := `
class Stack<T> {
  def push(T value) -> Int {
    @items[@size] = value
    @size += 1
  }
}
`
	first := parseString(t, input)
	second := parseString(t, input)

	if !reflect.DeepEqual(first, second) {
		t.Error("re-parsing identical input produced a different tree")
	}
}

func TestParseReturnsRootExprsNode(t *testing.T) {
	root := parseString(t, "1\n2\n3")

	if root.Kind != ast.KindExprs {
		t.Fatalf("got %s, want exprs", root.Kind)
	}
	if len(root.Children) != 3 {
		t.Errorf("got %d children, want 3", len(root.Children))
	}
}

func TestParseExpressionEntryPoint(t *testing.T) {
	node, err := ParseExpression(lexer.New([]byte("1 + 2")))
	if err != nil {
		t.Fatal(err)
	}
	if got := sexpr(node); got != "(send (integer 1) + (integer 2))" {
		t.Errorf("got %s", got)
	}
}
