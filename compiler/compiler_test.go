package compiler

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/netinmax/inko/ast"
	"github.com/netinmax/inko/parser"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.inko", "main.inkoc"},
		{"src/lists.inko", "src/lists.inkoc"},
		{"noext", "noext.inkoc"},
	}

	for _, tt := range tests {
		if got := ArtifactPath(tt.path); got != tt.want {
			t.Errorf("ArtifactPath(%q): got %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParseFile(t *testing.T) {
	path := writeSource(t, "main.inko", "let x = 1\n")

	node, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if node.Kind != ast.KindExprs {
		t.Errorf("got %s, want exprs", node.Kind)
	}
	if len(node.Children) != 1 {
		t.Errorf("got %d expressions, want 1", len(node.Children))
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.inko"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), "read source file") {
		t.Errorf("got %q", err)
	}
}

func TestCompileWritesArtifact(t *testing.T) {
	path := writeSource(t, "main.inko", "1 + 2\n")

	out, err := Compile(path)
	if err != nil {
		t.Fatal(err)
	}
	if out != ArtifactPath(path) {
		t.Errorf("got artifact path %q, want %q", out, ArtifactPath(path))
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	if decoded["kind"] != "exprs" {
		t.Errorf("got root kind %v, want exprs", decoded["kind"])
	}
}

// The artifact must carry the full tree for downstream consumers:
// reading it back yields exactly what the parser produced.
func TestArtifactRoundTrip(t *testing.T) {
	path := writeSource(t, "lists.inko", `
import std::stdio

class Stack<T> {
  def push(T value) {
    @items[@size] = value
    @size += 1
  }

  def sum -> Float {
    1.5 + 2
  }
}
`)

	parsed, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Compile(path)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := ReadArtifact(out)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded, parsed) {
		t.Errorf("artifact round trip changed the tree:\n%s\nvs\n%s", decoded, parsed)
	}
}

func TestReadArtifactMissing(t *testing.T) {
	_, err := ReadArtifact(filepath.Join(t.TempDir(), "nope.inkoc"))
	if err == nil {
		t.Fatal("expected an error for a missing artifact")
	}
	if !strings.Contains(err.Error(), "read artifact") {
		t.Errorf("got %q", err)
	}
}

func TestCompileSyntaxError(t *testing.T) {
	path := writeSource(t, "bad.inko", "let x 5\n")

	_, err := Compile(path)
	if err == nil {
		t.Fatal("expected a syntax error")
	}

	var syntaxErr *parser.SyntaxError
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the source file", err)
	}
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("got %T, want a wrapped *parser.SyntaxError", err)
	}
	if syntaxErr.Line != 1 || syntaxErr.Column != 7 {
		t.Errorf("got %d:%d, want 1:7", syntaxErr.Line, syntaxErr.Column)
	}

	if _, statErr := os.Stat(ArtifactPath(path)); statErr == nil {
		t.Error("artifact was written despite the parse failing")
	}
}
