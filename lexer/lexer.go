package lexer

import (
	"strings"

	"github.com/netinmax/inko/token"
)

// Lexer turns a byte slice of source code into a stream of tokens.
type Lexer struct {
	input  []byte
	pos    int
	line   int
	column int
}

func New(input []byte) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// Next returns the next token. Comments are returned as Comment tokens;
// filtering them out is up to the consumer. The final token has kind EOF.
func (l *Lexer) Next() token.Token {
	l.skipWhitespace()

	line, column := l.line, l.column
	ch := l.peek()

	switch {
	case ch == 0:
		return l.token(token.EOF, "", line, column)
	case ch == '#':
		return l.comment(line, column)
	case isDigit(ch):
		return l.number(line, column)
	case isLower(ch) || ch == '_':
		return l.identifierOrKeyword(line, column)
	case isUpper(ch):
		return l.constant(line, column)
	case ch == '@':
		return l.sigilName(token.Attribute, line, column)
	case ch == '$':
		return l.sigilName(token.Flag, line, column)
	case ch == '\'' || ch == '"':
		return l.string(ch, line, column)
	}

	return l.operator(line, column)
}

func (l *Lexer) token(kind token.Kind, value string, line, column int) token.Token {
	return token.Token{Kind: kind, Value: value, Line: line, Column: column}
}

// comment lexes "# text" as a Comment and "## text" as a Docstring,
// skipping whitespace right after the marker.
func (l *Lexer) comment(line, column int) token.Token {
	kind := token.Comment
	l.advance()
	if l.peek() == '#' {
		kind = token.Docstring
		l.advance()
	}
	for l.peek() == ' ' || l.peek() == '\t' {
		l.advance()
	}

	start := l.pos
	for l.peek() != 0 && l.peek() != '\n' && l.peek() != '\r' {
		l.advance()
	}
	return l.token(kind, string(l.input[start:l.pos]), line, column)
}

// number lexes an integer or float literal. A dot only extends the
// literal when a digit follows, so "1..5" stays three tokens.
func (l *Lexer) number(line, column int) token.Token {
	start := l.pos
	kind := token.Integer

	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) && kind == token.Integer {
		kind = token.Float
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	value := strings.ReplaceAll(string(l.input[start:l.pos]), "_", "")
	return l.token(kind, value, line, column)
}

func (l *Lexer) identifierOrKeyword(line, column int) token.Token {
	value := l.name()
	return l.token(token.LookupKeyword(value), value, line, column)
}

func (l *Lexer) constant(line, column int) token.Token {
	return l.token(token.Constant, l.name(), line, column)
}

// sigilName lexes "@name" and "$name" tokens; the sigil is not part of
// the token value.
func (l *Lexer) sigilName(kind token.Kind, line, column int) token.Token {
	l.advance()
	return l.token(kind, l.name(), line, column)
}

func (l *Lexer) name() string {
	start := l.pos
	for isNameByte(l.peek()) {
		l.advance()
	}
	return string(l.input[start:l.pos])
}

func (l *Lexer) string(quote byte, line, column int) token.Token {
	l.advance()

	var out strings.Builder
	for {
		ch := l.peek()
		if ch == 0 || ch == quote {
			break
		}
		if ch == '\\' {
			l.advance()
			switch l.peek() {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			case '\\', quote:
				out.WriteByte(l.peek())
			default:
				out.WriteByte('\\')
				out.WriteByte(l.peek())
			}
			l.advance()
			continue
		}
		out.WriteByte(l.advance())
	}
	l.advance()

	return l.token(token.String, out.String(), line, column)
}

func (l *Lexer) operator(line, column int) token.Token {
	emit := func(kind token.Kind, width int) token.Token {
		value := string(l.input[l.pos : l.pos+width])
		l.advanceN(width)
		return l.token(kind, value, line, column)
	}

	switch l.peek() {
	case '(':
		return emit(token.ParenOpen, 1)
	case ')':
		return emit(token.ParenClose, 1)
	case '{':
		return emit(token.CurlyOpen, 1)
	case '}':
		return emit(token.CurlyClose, 1)
	case '[':
		return emit(token.BracketOpen, 1)
	case ']':
		return emit(token.BracketClose, 1)
	case ',':
		return emit(token.Comma, 1)
	case '.':
		if l.peekN(1) == '.' {
			if l.peekN(2) == '.' {
				return emit(token.Ellipsis, 3)
			}
			return emit(token.DotDot, 2)
		}
		return emit(token.Dot, 1)
	case ':':
		if l.peekN(1) == ':' {
			return emit(token.ColonColon, 2)
		}
		if isLower(l.peekN(1)) || l.peekN(1) == '_' {
			l.advance()
			return l.token(token.Symbol, l.name(), line, column)
		}
		return emit(token.Colon, 1)
	case '+':
		if l.peekN(1) == '=' {
			return emit(token.AddAssign, 2)
		}
		return emit(token.Add, 1)
	case '-':
		if l.peekN(1) == '>' {
			return emit(token.Arrow, 2)
		}
		if l.peekN(1) == '=' {
			return emit(token.SubAssign, 2)
		}
		return emit(token.Sub, 1)
	case '*':
		if l.peekN(1) == '*' {
			return emit(token.Pow, 2)
		}
		if l.peekN(1) == '=' {
			return emit(token.MulAssign, 2)
		}
		return emit(token.Mul, 1)
	case '/':
		if l.peekN(1) == '=' {
			return emit(token.DivAssign, 2)
		}
		return emit(token.Div, 1)
	case '%':
		if l.peekN(1) == '=' {
			return emit(token.ModuloAssign, 2)
		}
		return emit(token.Modulo, 1)
	case '^':
		if l.peekN(1) == '=' {
			return emit(token.BitwiseXorAssign, 2)
		}
		return emit(token.BitwiseXor, 1)
	case '&':
		if l.peekN(1) == '&' {
			return emit(token.And, 2)
		}
		if l.peekN(1) == '=' {
			return emit(token.BitwiseAndAssign, 2)
		}
		return emit(token.BitwiseAnd, 1)
	case '|':
		if l.peekN(1) == '|' {
			return emit(token.Or, 2)
		}
		if l.peekN(1) == '=' {
			return emit(token.BitwiseOrAssign, 2)
		}
		return emit(token.BitwiseOr, 1)
	case '=':
		if l.peekN(1) == '=' {
			return emit(token.Equal, 2)
		}
		return emit(token.Assign, 1)
	case '!':
		if l.peekN(1) == '=' {
			return emit(token.NotEqual, 2)
		}
		return emit(token.Not, 1)
	case '<':
		if l.peekN(1) == '=' {
			if l.peekN(2) == '>' {
				return emit(token.Compare, 3)
			}
			return emit(token.LowerEqual, 2)
		}
		if l.peekN(1) == '<' {
			return emit(token.ShiftLeft, 2)
		}
		return emit(token.Lower, 1)
	case '>':
		if l.peekN(1) == '=' {
			return emit(token.GreaterEqual, 2)
		}
		if l.peekN(1) == '>' {
			return emit(token.ShiftRight, 2)
		}
		return emit(token.Greater, 1)
	}

	ch := l.advance()
	return l.token(token.Invalid, string(ch), line, column)
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
func isLower(ch byte) bool { return ch >= 'a' && ch <= 'z' }
func isUpper(ch byte) bool { return ch >= 'A' && ch <= 'Z' }

func isNameByte(ch byte) bool {
	return isLower(ch) || isUpper(ch) || isDigit(ch) || ch == '_'
}
