package compiler

import (
	"fmt"
	"os"

	"github.com/netinmax/inko/ast"
	"github.com/netinmax/inko/format"
)

func writeArtifact(path string, node *ast.Node) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	if err := format.NewASTJSONEncoder(file).Encode(node); err != nil {
		file.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// ReadArtifact decodes an artifact written by Compile back into the
// tree it was built from.
func ReadArtifact(path string) (*ast.Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	defer file.Close()

	node, err := format.NewASTJSONDecoder(file).Decode()
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}
	return node, nil
}
