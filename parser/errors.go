package parser

import (
	"fmt"
	"strings"

	"github.com/netinmax/inko/token"
)

// SyntaxError is the only error kind the parser produces. It is raised
// the moment a production fails to match and unwinds the whole parse;
// no recovery is attempted.
type SyntaxError struct {
	// Context describes the production that failed when a plain token
	// list would read poorly, e.g. "an expression".
	Context  string
	Expected []token.Kind
	Got      token.Kind
	Line     int
	Column   int
}

func (e *SyntaxError) Error() string {
	var out strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&out, "%d:%d: ", e.Line, e.Column)
	}
	fmt.Fprintf(&out, "unexpected %q", e.Got.String())

	switch {
	case e.Context != "":
		fmt.Fprintf(&out, ", expected %s", e.Context)
	case len(e.Expected) == 1:
		fmt.Fprintf(&out, ", expected %q", e.Expected[0].String())
	case len(e.Expected) > 1:
		names := make([]string, len(e.Expected))
		for i, kind := range e.Expected {
			names[i] = fmt.Sprintf("%q", kind.String())
		}
		fmt.Fprintf(&out, ", expected one of %s", strings.Join(names, ", "))
	}
	return out.String()
}

func (p *Parser) unexpected(context string, expected ...token.Kind) error {
	tok := p.peek()
	return &SyntaxError{
		Context:  context,
		Expected: expected,
		Got:      tok.Kind,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}
