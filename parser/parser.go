// Package parser implements the recursive-descent parser turning a
// token stream into an AST. Parsing is single-threaded and fail-fast:
// the first grammar mismatch aborts the whole parse with a
// *SyntaxError and no partial tree is returned.
package parser

import (
	"strings"

	"github.com/netinmax/inko/ast"
	"github.com/netinmax/inko/token"
)

// Source is a pull-based token stream terminated by an EOF token.
// *lexer.Lexer satisfies it.
type Source interface {
	Next() token.Token
}

type Parser struct {
	tokens []token.Token
	pos    int
}

func New(src Source) *Parser {
	p := &Parser{}
	for {
		tok := src.Next()
		if tok.Kind == token.Comment {
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return p
}

// Parse consumes the whole token stream and returns the root exprs
// node holding every top-level expression and declaration.
func Parse(src Source) (*ast.Node, error) {
	return New(src).Parse()
}

// ParseExpression parses a single expression instead of a whole file.
func ParseExpression(src Source) (*ast.Node, error) {
	return New(src).parseExpression()
}

func (p *Parser) Parse() (*ast.Node, error) {
	children, err := p.parseExprList(token.EOF)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EOF); err != nil {
		return nil, err
	}
	return ast.New(ast.KindExprs, children...), nil
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected("", kind)
}

func at(tok token.Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column}
}

// parseExprList parses expressions until the stop token, which is
// left for the caller to consume.
func (p *Parser) parseExprList(stop token.Kind) ([]any, error) {
	var children []any
	for !p.check(stop) && !p.check(token.EOF) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		children = append(children, expr)
	}
	return children, nil
}

func (p *Parser) parseExpression() (*ast.Node, error) {
	return p.parseOrExpr()
}

func (p *Parser) parseOrExpr() (*ast.Node, error) {
	left, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}

	for p.check(token.Or) {
		op := p.advance()
		right, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewAt(ast.KindOr, at(op), left, right)
	}

	return left, nil
}

func (p *Parser) parseAndExpr() (*ast.Node, error) {
	left, err := p.parseEqualityExpr()
	if err != nil {
		return nil, err
	}

	for p.check(token.And) {
		op := p.advance()
		right, err := p.parseEqualityExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewAt(ast.KindAnd, at(op), left, right)
	}

	return left, nil
}

func (p *Parser) parseEqualityExpr() (*ast.Node, error) {
	left, err := p.parseCompareExpr()
	if err != nil {
		return nil, err
	}

	for p.match(token.Compare, token.Equal, token.NotEqual) {
		op := p.advance()
		right, err := p.parseCompareExpr()
		if err != nil {
			return nil, err
		}
		left = binarySend(left, op, right)
	}

	return left, nil
}

func (p *Parser) parseCompareExpr() (*ast.Node, error) {
	left, err := p.parseBitOrExpr()
	if err != nil {
		return nil, err
	}

	for p.match(token.LowerEqual, token.Lower, token.Greater, token.GreaterEqual) {
		op := p.advance()
		right, err := p.parseBitOrExpr()
		if err != nil {
			return nil, err
		}
		left = binarySend(left, op, right)
	}

	return left, nil
}

func (p *Parser) parseBitOrExpr() (*ast.Node, error) {
	left, err := p.parseBitAndExpr()
	if err != nil {
		return nil, err
	}

	for p.match(token.BitwiseOr, token.BitwiseXor) {
		op := p.advance()
		right, err := p.parseBitAndExpr()
		if err != nil {
			return nil, err
		}
		left = binarySend(left, op, right)
	}

	return left, nil
}

func (p *Parser) parseBitAndExpr() (*ast.Node, error) {
	left, err := p.parseShiftExpr()
	if err != nil {
		return nil, err
	}

	for p.check(token.BitwiseAnd) {
		op := p.advance()
		right, err := p.parseShiftExpr()
		if err != nil {
			return nil, err
		}
		left = binarySend(left, op, right)
	}

	return left, nil
}

func (p *Parser) parseShiftExpr() (*ast.Node, error) {
	left, err := p.parseAdditiveExpr()
	if err != nil {
		return nil, err
	}

	for p.match(token.ShiftLeft, token.ShiftRight) {
		op := p.advance()
		right, err := p.parseAdditiveExpr()
		if err != nil {
			return nil, err
		}
		left = binarySend(left, op, right)
	}

	return left, nil
}

func (p *Parser) parseAdditiveExpr() (*ast.Node, error) {
	left, err := p.parseMultiplicativeExpr()
	if err != nil {
		return nil, err
	}

	for p.match(token.Add, token.Sub) {
		op := p.advance()
		right, err := p.parseMultiplicativeExpr()
		if err != nil {
			return nil, err
		}
		left = binarySend(left, op, right)
	}

	return left, nil
}

func (p *Parser) parseMultiplicativeExpr() (*ast.Node, error) {
	left, err := p.parseRangeExpr()
	if err != nil {
		return nil, err
	}

	for p.match(token.Div, token.Modulo, token.Mul) {
		op := p.advance()
		right, err := p.parseRangeExpr()
		if err != nil {
			return nil, err
		}
		left = binarySend(left, op, right)
	}

	return left, nil
}

// parseRangeExpr parses a power-level expression optionally followed
// by a single ".." or "...". The range suffix is not repeatable, so
// "1..2..3" fails on the second "..". A "..." with no right-hand
// operand is a rest marker.
func (p *Parser) parseRangeExpr() (*ast.Node, error) {
	left, err := p.parsePowExpr()
	if err != nil {
		return nil, err
	}

	switch {
	case p.check(token.DotDot):
		op := p.advance()
		right, err := p.parsePowExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewAt(ast.KindIRange, at(op), left, right), nil
	case p.check(token.Ellipsis):
		op := p.advance()
		if !p.canBeginExpression() {
			return ast.NewAt(ast.KindRest, at(op), left), nil
		}
		right, err := p.parsePowExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewAt(ast.KindERange, at(op), left, right), nil
	}

	return left, nil
}

// parsePowExpr folds "**" like every other binary layer, nesting left.
// "1 ** 2 ** 3" therefore parses as "(1 ** 2) ** 3", matching the
// source grammar rather than mathematical right-associativity.
func (p *Parser) parsePowExpr() (*ast.Node, error) {
	left, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}

	for p.check(token.Pow) {
		op := p.advance()
		right, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		left = binarySend(left, op, right)
	}

	return left, nil
}

// binarySend wraps two operands in a send named after the operator,
// located at the operator token.
func binarySend(left *ast.Node, op token.Token, right *ast.Node) *ast.Node {
	return ast.NewAt(ast.KindSend, at(op), left, ast.Sym(op.Value), right)
}

// Prefix operators desugar into argument-less sends: "!x" calls "!",
// while unary "+" and "-" call "+@" and "-@" to keep them apart from
// their binary forms.
func (p *Parser) parseUnaryExpr() (*ast.Node, error) {
	var name ast.Sym

	switch p.peek().Kind {
	case token.Not:
		name = "!"
	case token.Add:
		name = "+@"
	case token.Sub:
		name = "-@"
	default:
		return p.parsePostfixExpr()
	}

	op := p.advance()
	expr, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewAt(ast.KindSend, at(op), expr, name), nil
}

func (p *Parser) parsePostfixExpr() (*ast.Node, error) {
	expr, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	return p.parsePostfixSuffix(expr)
}

// parsePostfixSuffix folds ".name", ".name(args)" and "[index]"
// segments left-associatively: each segment's receiver is the result
// built so far.
func (p *Parser) parsePostfixSuffix(expr *ast.Node) (*ast.Node, error) {
	for {
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			name, err := p.parseMethodCallName()
			if err != nil {
				return nil, err
			}

			children := []any{expr, name}
			if p.check(token.ParenOpen) {
				args, err := p.parseCallArgs()
				if err != nil {
					return nil, err
				}
				children = append(children, args...)
			}
			if closure, err := p.parseTrailingClosure(); err != nil {
				return nil, err
			} else if closure != nil {
				children = append(children, closure)
			}

			expr = ast.New(ast.KindSend, children...)
		case token.BracketOpen:
			var err error
			expr, err = p.parseIndexSuffix(expr)
			if err != nil {
				return nil, err
			}
		default:
			return expr, nil
		}
	}
}

// parseIndexSuffix handles the index/index-assign ambiguity with one
// token of lookahead after the closing bracket: "x[i]" sends "[]",
// "x[i] = v" re-targets the send to "[]=" with v appended.
func (p *Parser) parseIndexSuffix(expr *ast.Node) (*ast.Node, error) {
	bracket := p.advance()

	var args []any
	for !p.check(token.BracketClose) && !p.check(token.EOF) {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.check(token.Comma) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(token.BracketClose); err != nil {
		return nil, err
	}

	name := ast.Sym("[]")
	if p.check(token.Assign) {
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		name = "[]="
		args = append(args, value)
	}

	children := append([]any{expr, name}, args...)
	return ast.NewAt(ast.KindSend, at(bracket), children...), nil
}

// parseMethodCallName accepts identifiers, constants and the keywords
// that double as method names after a dot.
func (p *Parser) parseMethodCallName() (token.Token, error) {
	switch p.peek().Kind {
	case token.Identifier, token.Constant,
		token.Class, token.Trait, token.Enum, token.Module:
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected("a method name", token.Identifier, token.Constant)
}

// parseCallArgs parses a parenthesized, comma-separated argument list.
func (p *Parser) parseCallArgs() ([]any, error) {
	if _, err := p.expect(token.ParenOpen); err != nil {
		return nil, err
	}

	var args []any
	for !p.check(token.ParenClose) && !p.check(token.EOF) {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.check(token.Comma) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(token.ParenClose); err != nil {
		return nil, err
	}
	return args, nil
}

// parseTrailingClosure parses a closure attached to a call, either the
// arrow form or a bare block. Returns nil without error when no
// closure follows.
func (p *Parser) parseTrailingClosure() (*ast.Node, error) {
	switch p.peek().Kind {
	case token.Arrow:
		return p.parseClosure()
	case token.CurlyOpen:
		if p.looksLikeHash() {
			return nil, nil
		}
		return p.parseBareClosure()
	}
	return nil, nil
}

func (p *Parser) parsePrimaryExpr() (*ast.Node, error) {
	switch p.peek().Kind {
	case token.Integer:
		return ast.New(ast.KindInteger, p.advance()), nil
	case token.Float:
		return ast.New(ast.KindFloat, p.advance()), nil
	case token.String:
		return ast.New(ast.KindString, p.advance()), nil
	case token.Docstring:
		return ast.New(ast.KindDocstring, p.advance()), nil
	case token.Symbol:
		return ast.New(ast.KindSym, p.advance()), nil
	case token.BracketOpen:
		return p.parseArrayLiteral()
	case token.CurlyOpen:
		if p.looksLikeHash() {
			return p.parseHashLiteral()
		}
		return p.parseBareClosure()
	case token.Identifier, token.Constant, token.ColonColon:
		return p.parseReference()
	case token.Attribute:
		node := ast.New(ast.KindIVar, p.advance())
		return p.parseAssignSuffix(node)
	case token.Arrow:
		return p.parseClosure()
	case token.ParenOpen:
		return p.parseParenExpr()
	case token.Let:
		return p.parseLet()
	case token.Return:
		return p.parseReturn()
	case token.Super:
		return p.parseSuper()
	case token.Break:
		return ast.NewAt(ast.KindBreak, at(p.advance())), nil
	case token.Next:
		return ast.NewAt(ast.KindNext, at(p.advance())), nil
	case token.True:
		return ast.NewAt(ast.KindTrue, at(p.advance())), nil
	case token.False:
		return ast.NewAt(ast.KindFalse, at(p.advance())), nil
	case token.Self:
		return ast.NewAt(ast.KindSelf, at(p.advance())), nil
	case token.Flag:
		return ast.New(ast.KindFlag, p.advance()), nil
	case token.Def:
		return p.parseDef()
	case token.Class:
		return p.parseClass()
	case token.Trait:
		return p.parseTrait()
	case token.Enum:
		return p.parseEnum()
	case token.Module:
		return p.parseModule()
	case token.Import:
		return p.parseImport()
	case token.Implement:
		return p.parseImpl()
	case token.Type:
		return p.parseTypeAlias()
	}

	return nil, p.unexpected("an expression")
}

func (p *Parser) parseArrayLiteral() (*ast.Node, error) {
	bracket := p.advance()

	var elems []any
	for !p.check(token.BracketClose) && !p.check(token.EOF) {
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if !p.check(token.Comma) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(token.BracketClose); err != nil {
		return nil, err
	}

	return ast.NewAt(ast.KindArray, at(bracket), elems...), nil
}

// looksLikeHash reports whether a "{" opens a hash literal rather than
// a bare block: either it closes immediately or a "key:" pair follows.
func (p *Parser) looksLikeHash() bool {
	if !p.check(token.CurlyOpen) {
		return false
	}
	if p.peekN(1).Kind == token.CurlyClose {
		return true
	}
	switch p.peekN(1).Kind {
	case token.Identifier, token.Constant, token.String:
		return p.peekN(2).Kind == token.Colon
	}
	return false
}

func (p *Parser) parseHashLiteral() (*ast.Node, error) {
	curly := p.advance()

	var pairs []any
	for !p.check(token.CurlyClose) && !p.check(token.EOF) {
		if !p.match(token.Identifier, token.Constant, token.String) {
			return nil, p.unexpected("a hash key",
				token.Identifier, token.Constant, token.String)
		}
		key := p.advance()
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.New(ast.KindPair, key, value))
		if !p.check(token.Comma) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(token.CurlyClose); err != nil {
		return nil, err
	}

	return ast.NewAt(ast.KindHash, at(curly), pairs...), nil
}

// parseReference parses a possibly namespaced reference and resolves
// what follows it: an argument list turns it into a send, an
// assignment operator into an assign node, anything else leaves a
// plain ident/const read.
func (p *Parser) parseReference() (*ast.Node, error) {
	var base *ast.Node
	if p.check(token.ColonColon) {
		base = ast.NewAt(ast.KindTopLevel, at(p.advance()))
	}

	segs := []token.Token{}
	for {
		if !p.match(token.Identifier, token.Constant) {
			return nil, p.unexpected("a name", token.Identifier, token.Constant)
		}
		segs = append(segs, p.advance())
		if !p.check(token.ColonColon) {
			break
		}
		p.advance()
	}

	recv := base
	for _, seg := range segs[:len(segs)-1] {
		recv = foldNameSegment(recv, seg)
	}
	last := segs[len(segs)-1]

	if p.check(token.ParenOpen) {
		children := []any{recv, last}
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		children = append(children, args...)
		if closure, err := p.parseTrailingClosure(); err != nil {
			return nil, err
		} else if closure != nil {
			children = append(children, closure)
		}
		return ast.New(ast.KindSend, children...), nil
	}

	return p.parseAssignSuffix(foldNameSegment(recv, last))
}

func foldNameSegment(recv *ast.Node, seg token.Token) *ast.Node {
	kind := ast.KindIdent
	if seg.Kind == token.Constant {
		kind = ast.KindConst
	}
	if recv == nil {
		return ast.New(kind, seg)
	}
	return ast.New(kind, recv, seg)
}

// parseAssignSuffix rewrites a reference followed by an assignment
// operator into an assign node. Compound operators desugar so that
// "x += 1" parses identically to "x = x + 1".
func (p *Parser) parseAssignSuffix(ref *ast.Node) (*ast.Node, error) {
	switch p.peek().Kind {
	case token.Assign:
		op := p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewAt(ast.KindAssign, at(op), ref, value), nil
	case token.AddAssign, token.SubAssign, token.MulAssign, token.DivAssign,
		token.ModuloAssign, token.BitwiseAndAssign, token.BitwiseOrAssign,
		token.BitwiseXorAssign:
		op := p.advance()
		rhs, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		name := ast.Sym(strings.TrimSuffix(op.Value, "="))
		send := ast.NewAt(ast.KindSend, at(op), ref.Clone(), name, rhs)
		return ast.NewAt(ast.KindAssign, at(op), ref, send), nil
	}
	return ref, nil
}

// parseParenExpr parses a parenthesized expression sequence. A single
// expression is returned unwrapped; longer sequences nest in an exprs
// node.
func (p *Parser) parseParenExpr() (*ast.Node, error) {
	paren := p.advance()

	var children []any
	for !p.check(token.ParenClose) && !p.check(token.EOF) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		children = append(children, expr)
	}
	if len(children) == 0 {
		return nil, p.unexpected("an expression")
	}
	if _, err := p.expect(token.ParenClose); err != nil {
		return nil, err
	}

	if len(children) == 1 {
		return children[0].(*ast.Node), nil
	}
	return ast.NewAt(ast.KindExprs, at(paren), children...), nil
}

func (p *Parser) parseLet() (*ast.Node, error) {
	let := p.advance()

	kind := ast.KindLet
	if p.check(token.Mut) {
		p.advance()
		kind = ast.KindLetMut
	}

	var target *ast.Node
	switch p.peek().Kind {
	case token.Identifier:
		target = ast.New(ast.KindIdent, p.advance())
	case token.Attribute:
		target = ast.New(ast.KindIVar, p.advance())
	default:
		return nil, p.unexpected("a binding target", token.Identifier, token.Attribute)
	}

	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return ast.NewAt(kind, at(let), target, value), nil
}

func (p *Parser) parseReturn() (*ast.Node, error) {
	ret := p.advance()

	if !p.canBeginExpression() {
		return ast.NewAt(ast.KindReturn, at(ret), nil), nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewAt(ast.KindReturn, at(ret), value), nil
}

func (p *Parser) parseSuper() (*ast.Node, error) {
	sup := p.advance()

	var children []any
	if p.check(token.ParenOpen) {
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		children = args
	}
	return ast.NewAt(ast.KindSuper, at(sup), children...), nil
}

// parseClosure parses the arrow form: "-> (args) [-> Type] { body }".
func (p *Parser) parseClosure() (*ast.Node, error) {
	arrow := p.advance()

	args := ast.New(ast.KindArgs)
	if p.check(token.ParenOpen) {
		var err error
		args, err = p.parseDefArgs()
		if err != nil {
			return nil, err
		}
	}

	var rtype *ast.Node
	if p.check(token.Arrow) {
		p.advance()
		var err error
		rtype, err = p.parseTypeName()
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewAt(ast.KindClosure, at(arrow), args, rtype, body), nil
}

// parseBareClosure parses a block with an implicit empty argument
// list.
func (p *Parser) parseBareClosure() (*ast.Node, error) {
	pos := at(p.peek())
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewAt(ast.KindClosure, pos, ast.New(ast.KindArgs), nil, body), nil
}

// parseBlock parses a curly-braced expression sequence.
func (p *Parser) parseBlock() (*ast.Node, error) {
	curly, err := p.expect(token.CurlyOpen)
	if err != nil {
		return nil, err
	}
	children, err := p.parseExprList(token.CurlyClose)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.CurlyClose); err != nil {
		return nil, err
	}
	return ast.NewAt(ast.KindExprs, at(curly), children...), nil
}

// canBeginExpression reports whether the current token is in the first
// set of the expression production.
func (p *Parser) canBeginExpression() bool {
	switch p.peek().Kind {
	case token.Integer, token.Float, token.String, token.Docstring,
		token.Symbol, token.Identifier, token.Constant, token.ColonColon,
		token.Attribute, token.Flag, token.BracketOpen, token.CurlyOpen,
		token.ParenOpen, token.Arrow, token.Let, token.Return, token.Super,
		token.Break, token.Next, token.True, token.False, token.Self,
		token.Def, token.Class, token.Trait, token.Enum, token.Import,
		token.Implement, token.Type, token.Module,
		token.Not, token.Add, token.Sub:
		return true
	}
	return false
}
