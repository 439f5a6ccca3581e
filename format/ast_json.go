// Package format renders AST trees as JSON and decodes them back,
// both for tooling output and for the compile artifact.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/netinmax/inko/ast"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node *ast.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(node *ast.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type astJSONNode struct {
	Kind string           `json:"kind"`
	Pos  *astJSONPosition `json:"pos,omitempty"`
	// Children mixes nested nodes, tagged scalar literals and nulls
	// for absent optional slots, mirroring the tree shape exactly.
	Children []any `json:"children,omitempty"`
}

type astJSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func nodeToJSON(n *ast.Node) *astJSONNode {
	jn := &astJSONNode{Kind: n.Kind.String()}

	if n.Pos.Valid() {
		jn.Pos = &astJSONPosition{Line: n.Pos.Line, Column: n.Pos.Column}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]any, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = childToJSON(child)
		}
	}

	return jn
}

// Scalar children are tagged by variant so the decoder can rebuild the
// exact Child type: {"int": 1}, {"float": 1.5}, {"string": "s"},
// {"sym": "+"}. A nested node is recognized by its "kind" key.
func childToJSON(child ast.Child) any {
	switch child := child.(type) {
	case *ast.Node:
		return nodeToJSON(child)
	case ast.Int:
		return map[string]any{"int": int64(child)}
	case ast.Float:
		return map[string]any{"float": float64(child)}
	case ast.String:
		return map[string]any{"string": string(child)}
	case ast.Sym:
		return map[string]any{"sym": string(child)}
	}
	return nil
}

// ASTJSONDecoder rebuilds a tree from the encoder's output.
type ASTJSONDecoder struct {
	r io.Reader
}

func NewASTJSONDecoder(r io.Reader) *ASTJSONDecoder {
	return &ASTJSONDecoder{r: r}
}

func (d *ASTJSONDecoder) Decode() (*ast.Node, error) {
	var raw astJSONRawNode
	if err := json.NewDecoder(d.r).Decode(&raw); err != nil {
		return nil, err
	}
	return nodeFromJSON(&raw)
}

type astJSONRawNode struct {
	Kind     string            `json:"kind"`
	Pos      *astJSONPosition  `json:"pos"`
	Children []json.RawMessage `json:"children"`
}

func nodeFromJSON(raw *astJSONRawNode) (*ast.Node, error) {
	kind, ok := ast.KindFromName(raw.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown node kind %q", raw.Kind)
	}

	var pos ast.Position
	if raw.Pos != nil {
		pos = ast.Position{Line: raw.Pos.Line, Column: raw.Pos.Column}
	}

	children := make([]any, len(raw.Children))
	for i, rawChild := range raw.Children {
		child, err := childFromJSON(rawChild)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return ast.NewAt(kind, pos, children...), nil
}

func childFromJSON(raw json.RawMessage) (any, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}

	var tagged struct {
		Kind   *string  `json:"kind"`
		Int    *int64   `json:"int"`
		Float  *float64 `json:"float"`
		String *string  `json:"string"`
		Sym    *string  `json:"sym"`
	}
	if err := json.Unmarshal(raw, &tagged); err != nil {
		return nil, err
	}

	switch {
	case tagged.Kind != nil:
		var node astJSONRawNode
		if err := json.Unmarshal(raw, &node); err != nil {
			return nil, err
		}
		return nodeFromJSON(&node)
	case tagged.Int != nil:
		return ast.Int(*tagged.Int), nil
	case tagged.Float != nil:
		return ast.Float(*tagged.Float), nil
	case tagged.String != nil:
		return ast.String(*tagged.String), nil
	case tagged.Sym != nil:
		return ast.Sym(*tagged.Sym), nil
	}
	return nil, fmt.Errorf("unrecognized child %s", raw)
}
