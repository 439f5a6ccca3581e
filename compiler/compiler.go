// Package compiler drives the front-end for whole files: read, lex,
// parse, and write the companion artifact next to the source.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/netinmax/inko/ast"
	"github.com/netinmax/inko/lexer"
	"github.com/netinmax/inko/parser"
)

// Extension is the artifact extension written next to source files.
const Extension = ".inkoc"

// ParseFile reads and parses a single source file. A missing file is
// reported before any parsing happens.
func ParseFile(path string) (*ast.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}
	return parser.Parse(lexer.New(data))
}

// Compile parses the given source file and writes its artifact,
// returning the artifact path.
func Compile(path string) (string, error) {
	node, err := ParseFile(path)
	if err != nil {
		return "", fmt.Errorf("compile %s: %w", path, err)
	}

	out := ArtifactPath(path)
	if err := writeArtifact(out, node); err != nil {
		return "", fmt.Errorf("compile %s: %w", path, err)
	}
	return out, nil
}

// ArtifactPath returns the companion artifact path for a source file:
// the same base name with the fixed artifact extension.
func ArtifactPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + Extension
}
