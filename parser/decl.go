package parser

import (
	"github.com/netinmax/inko/ast"
	"github.com/netinmax/inko/token"
)

// parseDef parses "def [receiver.]name[<TypeArgs>](args)[-> Type]"
// with an optional body. A body-less def is a required method (rdef)
// as used inside traits.
func (p *Parser) parseDef() (*ast.Node, error) {
	def := p.advance()

	name, ref, err := p.parseDefName()
	if err != nil {
		return nil, err
	}

	var receiver *ast.Node
	if p.check(token.Dot) && ref != nil {
		p.advance()
		receiver = ref
		name, _, err = p.parseDefName()
		if err != nil {
			return nil, err
		}
	}

	var typeArgs *ast.Node
	if p.check(token.Lower) {
		typeArgs, err = p.parseTypeArgs()
		if err != nil {
			return nil, err
		}
	}

	args := ast.New(ast.KindArgs)
	if p.check(token.ParenOpen) {
		args, err = p.parseDefArgs()
		if err != nil {
			return nil, err
		}
	}

	var returnType *ast.Node
	if p.check(token.Arrow) {
		p.advance()
		returnType, err = p.parseTypeName()
		if err != nil {
			return nil, err
		}
	}

	if !p.check(token.CurlyOpen) {
		return ast.NewAt(ast.KindRDef, at(def),
			receiver, name, typeArgs, args, returnType), nil
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewAt(ast.KindDef, at(def),
		receiver, name, typeArgs, args, returnType, body), nil
}

// parseDefName parses a method name: a qualified name, self, an
// operator symbol, "[]"/"[]=", or a keyword that doubles as a method
// name. The second return value is the name as a reference node when
// one exists, so that "def Foo.bar" can reuse it as the receiver.
func (p *Parser) parseDefName() (any, *ast.Node, error) {
	switch p.peek().Kind {
	case token.Add, token.Sub, token.Mul, token.Div, token.Modulo, token.Pow,
		token.Lower, token.LowerEqual, token.Greater, token.GreaterEqual,
		token.Compare, token.Equal, token.NotEqual,
		token.ShiftLeft, token.ShiftRight,
		token.BitwiseAnd, token.BitwiseOr, token.BitwiseXor, token.Not,
		token.Class, token.Trait, token.Enum, token.Module:
		return p.advance(), nil, nil
	case token.BracketOpen:
		p.advance()
		if _, err := p.expect(token.BracketClose); err != nil {
			return nil, nil, err
		}
		if p.check(token.Assign) {
			p.advance()
			return ast.Sym("[]="), nil, nil
		}
		return ast.Sym("[]"), nil, nil
	case token.Self:
		node := ast.NewAt(ast.KindSelf, at(p.advance()))
		return node, node, nil
	case token.Identifier, token.Constant:
		if p.peekN(1).Kind != token.ColonColon {
			tok := p.advance()
			return tok, foldNameSegment(nil, tok), nil
		}
		node, err := p.parseQualifiedName()
		if err != nil {
			return nil, nil, err
		}
		return node, node, nil
	case token.ColonColon:
		node, err := p.parseQualifiedName()
		if err != nil {
			return nil, nil, err
		}
		return node, node, nil
	}
	return nil, nil, p.unexpected("a method name")
}

// parseDefArgs parses a parenthesized definition argument list. Each
// argument is "[Type] name [= default]" with an optional trailing
// "..." marking a rest argument; whether the first name is a type is
// decided by whether a second identifier follows it.
func (p *Parser) parseDefArgs() (*ast.Node, error) {
	paren, err := p.expect(token.ParenOpen)
	if err != nil {
		return nil, err
	}

	var args []any
	for !p.check(token.ParenClose) && !p.check(token.EOF) {
		arg, err := p.parseDefArg()
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

	return ast.NewAt(ast.KindArgs, at(paren), args...), nil
}

func (p *Parser) parseDefArg() (*ast.Node, error) {
	var argType *ast.Node
	var name token.Token
	var err error

	if p.check(token.Identifier) && p.defArgEndsAfterName() {
		name = p.advance()
	} else {
		argType, err = p.parseTypeName()
		if err != nil {
			return nil, err
		}
		name, err = p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
	}

	var defaultValue *ast.Node
	if p.check(token.Assign) {
		p.advance()
		defaultValue, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	kind := ast.KindArg
	if p.check(token.Ellipsis) {
		p.advance()
		kind = ast.KindRestArg
	}

	return ast.New(kind, name, argType, defaultValue), nil
}

func (p *Parser) defArgEndsAfterName() bool {
	switch p.peekN(1).Kind {
	case token.Comma, token.ParenClose, token.Assign, token.Ellipsis:
		return true
	}
	return false
}

// parseQualifiedName parses a "::"-separated chain of identifiers and
// constants, optionally rooted at the top level by a leading "::".
func (p *Parser) parseQualifiedName() (*ast.Node, error) {
	var node *ast.Node
	if p.check(token.ColonColon) {
		node = ast.NewAt(ast.KindTopLevel, at(p.advance()))
	}

	for {
		if !p.match(token.Identifier, token.Constant) {
			return nil, p.unexpected("a name", token.Identifier, token.Constant)
		}
		node = foldNameSegment(node, p.advance())
		if !p.check(token.ColonColon) {
			return node, nil
		}
		p.advance()
	}
}

// parseTypeName parses a qualified name with optional generic type
// arguments and an optional "-> Type" return type. The bare name is
// returned unwrapped when neither is present, keeping the common case
// shallow.
func (p *Parser) parseTypeName() (*ast.Node, error) {
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}

	var typeArgs *ast.Node
	if p.check(token.Lower) {
		typeArgs, err = p.parseTypeArgs()
		if err != nil {
			return nil, err
		}
	}

	var returnType *ast.Node
	if p.check(token.Arrow) {
		p.advance()
		returnType, err = p.parseTypeName()
		if err != nil {
			return nil, err
		}
	}

	if typeArgs == nil && returnType == nil {
		return name, nil
	}
	return ast.NewAt(ast.KindType, name.Pos, name, typeArgs, returnType), nil
}

// parseTypeArgs parses "<T, U = Default, ...>". An argument with a
// default wraps into a targ node, a plain one stays a bare type name.
func (p *Parser) parseTypeArgs() (*ast.Node, error) {
	lower, err := p.expect(token.Lower)
	if err != nil {
		return nil, err
	}

	var args []any
	for !p.match(token.Greater, token.ShiftRight) && !p.check(token.EOF) {
		arg, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		if p.check(token.Assign) {
			p.advance()
			def, err := p.parseTypeName()
			if err != nil {
				return nil, err
			}
			arg = ast.NewAt(ast.KindTypeArg, arg.Pos, arg, def)
		}
		args = append(args, arg)
		if !p.check(token.Comma) {
			break
		}
		p.advance()
	}
	if err := p.expectTypeArgsClose(); err != nil {
		return nil, err
	}

	return ast.NewAt(ast.KindTypeArgs, at(lower), args...), nil
}

// expectTypeArgsClose consumes the ">" ending a type argument list.
// Nested generics end in a ">>" shift token, which is split so the
// enclosing list can consume the second ">".
func (p *Parser) expectTypeArgsClose() error {
	switch p.peek().Kind {
	case token.Greater:
		p.advance()
		return nil
	case token.ShiftRight:
		tok := p.tokens[p.pos]
		p.tokens[p.pos] = token.Token{
			Kind:   token.Greater,
			Value:  ">",
			Line:   tok.Line,
			Column: tok.Column + 1,
		}
		return nil
	}
	return p.unexpected("", token.Greater)
}

// parseClass parses "class Name[<TypeArgs>][extends Parent] { body }".
func (p *Parser) parseClass() (*ast.Node, error) {
	class := p.advance()

	name, err := p.expect(token.Constant)
	if err != nil {
		return nil, err
	}

	var typeArgs *ast.Node
	if p.check(token.Lower) {
		typeArgs, err = p.parseTypeArgs()
		if err != nil {
			return nil, err
		}
	}

	var parent *ast.Node
	if p.check(token.Extends) {
		p.advance()
		parent, err = p.parseTypeName()
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewAt(ast.KindClass, at(class), name, typeArgs, parent, body), nil
}

func (p *Parser) parseTrait() (*ast.Node, error) {
	trait := p.advance()

	name, err := p.expect(token.Constant)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewAt(ast.KindTrait, at(trait), name, body), nil
}

// parseEnum parses "enum Name { ... }" whose body mixes member
// entries with ordinary expressions (such as method definitions).
func (p *Parser) parseEnum() (*ast.Node, error) {
	enum := p.advance()

	name, err := p.expect(token.Constant)
	if err != nil {
		return nil, err
	}
	curly, err := p.expect(token.CurlyOpen)
	if err != nil {
		return nil, err
	}

	var entries []any
	for !p.check(token.CurlyClose) && !p.check(token.EOF) {
		var entry *ast.Node
		if p.check(token.Member) {
			entry, err = p.parseMember()
		} else {
			entry, err = p.parseExpression()
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if _, err := p.expect(token.CurlyClose); err != nil {
		return nil, err
	}

	body := ast.NewAt(ast.KindExprs, at(curly), entries...)
	return ast.NewAt(ast.KindEnum, at(enum), name, body), nil
}

// parseMember parses an enum member: either a tagged variant with
// constructor-style typed fields, or a plain constant with an
// optional explicit integer value.
func (p *Parser) parseMember() (*ast.Node, error) {
	member := p.advance()

	name, err := p.expect(token.Constant)
	if err != nil {
		return nil, err
	}

	if p.check(token.ParenOpen) {
		fields, err := p.parseDefArgs()
		if err != nil {
			return nil, err
		}
		return ast.NewAt(ast.KindMember, at(member), name, fields, nil), nil
	}

	if p.check(token.Assign) {
		p.advance()
		value, err := p.expect(token.Integer)
		if err != nil {
			return nil, err
		}
		return ast.NewAt(ast.KindMember, at(member), name, nil, value), nil
	}

	return ast.NewAt(ast.KindMember, at(member), name, nil, nil), nil
}

func (p *Parser) parseModule() (*ast.Node, error) {
	module := p.advance()

	name, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewAt(ast.KindModule, at(module), name, body), nil
}

// parseImport parses "import Qualified::Name" with an optional list
// of symbols to import, each optionally aliased.
func (p *Parser) parseImport() (*ast.Node, error) {
	imp := p.advance()

	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}

	children := []any{name}
	syms, err := p.parseImportSymbols()
	if err != nil {
		return nil, err
	}
	children = append(children, syms...)

	return ast.NewAt(ast.KindImport, at(imp), children...), nil
}

// parseImpl parses "implement TypeName" with an optional symbol list.
func (p *Parser) parseImpl() (*ast.Node, error) {
	impl := p.advance()

	name, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}

	children := []any{name}
	syms, err := p.parseImportSymbols()
	if err != nil {
		return nil, err
	}
	children = append(children, syms...)

	return ast.NewAt(ast.KindImpl, at(impl), children...), nil
}

func (p *Parser) parseImportSymbols() ([]any, error) {
	if !p.check(token.ParenOpen) {
		return nil, nil
	}
	p.advance()

	var syms []any
	for !p.check(token.ParenClose) && !p.check(token.EOF) {
		if !p.match(token.Identifier, token.Constant) {
			return nil, p.unexpected("a symbol name",
				token.Identifier, token.Constant)
		}
		name := p.advance()

		var alias any
		if p.check(token.As) {
			p.advance()
			if !p.match(token.Identifier, token.Constant) {
				return nil, p.unexpected("an alias",
					token.Identifier, token.Constant)
			}
			alias = p.advance()
		}
		syms = append(syms, ast.New(ast.KindISym, name, alias))

		if !p.check(token.Comma) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(token.ParenClose); err != nil {
		return nil, err
	}

	return syms, nil
}

// parseTypeAlias parses "type Name = OtherType".
func (p *Parser) parseTypeAlias() (*ast.Node, error) {
	alias := p.advance()

	name, err := p.expect(token.Constant)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	target, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}

	return ast.NewAt(ast.KindTDef, at(alias), name, target), nil
}
