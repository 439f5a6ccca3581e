package token

// Kind identifies the lexical category of a token.
type Kind int

const (
	EOF Kind = iota
	Invalid
	Comment
	Docstring

	// Literals
	Integer
	Float
	String
	Symbol
	Identifier
	Constant
	Attribute
	Flag

	// Keywords
	Let
	Mut
	Def
	Class
	Trait
	Enum
	Member
	Module
	Import
	Implement
	Type
	Return
	Super
	Break
	Next
	Self
	True
	False
	Extends
	As

	// Punctuation
	ParenOpen
	ParenClose
	CurlyOpen
	CurlyClose
	BracketOpen
	BracketClose
	Comma
	Dot
	DotDot
	Ellipsis
	Colon
	ColonColon
	Arrow

	// Operators
	Add
	Sub
	Mul
	Div
	Modulo
	Pow
	Assign
	Equal
	NotEqual
	Compare
	Lower
	LowerEqual
	Greater
	GreaterEqual
	And
	Or
	Not
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	ShiftLeft
	ShiftRight

	// Compound assignment
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	ModuloAssign
	BitwiseAndAssign
	BitwiseOrAssign
	BitwiseXorAssign
)

var kindNames = map[Kind]string{
	EOF:              "EOF",
	Invalid:          "Invalid",
	Comment:          "Comment",
	Docstring:        "Docstring",
	Integer:          "Integer",
	Float:            "Float",
	String:           "String",
	Symbol:           "Symbol",
	Identifier:       "Identifier",
	Constant:         "Constant",
	Attribute:        "Attribute",
	Flag:             "Flag",
	Let:              "let",
	Mut:              "mut",
	Def:              "def",
	Class:            "class",
	Trait:            "trait",
	Enum:             "enum",
	Member:           "member",
	Module:           "module",
	Import:           "import",
	Implement:        "implement",
	Type:             "type",
	Return:           "return",
	Super:            "super",
	Break:            "break",
	Next:             "next",
	Self:             "self",
	True:             "true",
	False:            "false",
	Extends:          "extends",
	As:               "as",
	ParenOpen:        "(",
	ParenClose:       ")",
	CurlyOpen:        "{",
	CurlyClose:       "}",
	BracketOpen:      "[",
	BracketClose:     "]",
	Comma:            ",",
	Dot:              ".",
	DotDot:           "..",
	Ellipsis:         "...",
	Colon:            ":",
	ColonColon:       "::",
	Arrow:            "->",
	Add:              "+",
	Sub:              "-",
	Mul:              "*",
	Div:              "/",
	Modulo:           "%",
	Pow:              "**",
	Assign:           "=",
	Equal:            "==",
	NotEqual:         "!=",
	Compare:          "<=>",
	Lower:            "<",
	LowerEqual:       "<=",
	Greater:          ">",
	GreaterEqual:     ">=",
	And:              "&&",
	Or:               "||",
	Not:              "!",
	BitwiseAnd:       "&",
	BitwiseOr:        "|",
	BitwiseXor:       "^",
	ShiftLeft:        "<<",
	ShiftRight:       ">>",
	AddAssign:        "+=",
	SubAssign:        "-=",
	MulAssign:        "*=",
	DivAssign:        "/=",
	ModuloAssign:     "%=",
	BitwiseAndAssign: "&=",
	BitwiseOrAssign:  "|=",
	BitwiseXorAssign: "^=",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is a single lexeme with its 1-based source position.
type Token struct {
	Kind   Kind
	Value  string
	Line   int
	Column int
}

var keywords = map[string]Kind{
	"let":       Let,
	"mut":       Mut,
	"def":       Def,
	"class":     Class,
	"trait":     Trait,
	"enum":      Enum,
	"member":    Member,
	"module":    Module,
	"import":    Import,
	"implement": Implement,
	"type":      Type,
	"return":    Return,
	"super":     Super,
	"break":     Break,
	"next":      Next,
	"self":      Self,
	"true":      True,
	"false":     False,
	"extends":   Extends,
	"as":        As,
}

// LookupKeyword maps an identifier to its keyword kind, or Identifier
// when the name is not reserved.
func LookupKeyword(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Identifier
}
