// Package token defines the tokens and keywords used when lexing JavaScript
// source code.
package token

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the file
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes.
// Note: This assumes the advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Char > 0
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Comment is a comment found in the source, with its delimiters.
type Comment struct {
	Text     string
	Position Position
}

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position

	// Leading holds the comments between the previous token and this one.
	Leading []Comment
}

// Token types
const (
	AMPERSAND       Type = "&"
	AMP_EQUALS      Type = "&="
	AND             Type = "&&"
	ASSIGN          Type = "="
	ASTERISK        Type = "*"
	ASTERISK_EQUALS Type = "*="
	BANG            Type = "!"
	BREAK           Type = "BREAK"
	CARET           Type = "^"
	CARET_EQUALS    Type = "^="
	CASE            Type = "CASE"
	CATCH           Type = "CATCH"
	COLON           Type = ":"
	COMMA           Type = ","
	CONST           Type = "CONST"
	CONTINUE        Type = "CONTINUE"
	DEC             Type = "--"
	DEFAULT         Type = "DEFAULT"
	DELETE          Type = "DELETE"
	DO              Type = "DO"
	ELSE            Type = "ELSE"
	EOF             Type = "EOF"
	EQ              Type = "=="
	EQ_STRICT       Type = "==="
	FALSE           Type = "FALSE"
	FINALLY         Type = "FINALLY"
	FOR             Type = "FOR"
	FUNCTION        Type = "FUNCTION"
	GT              Type = ">"
	GT_EQUALS       Type = ">="
	IDENT           Type = "IDENT"
	IF              Type = "IF"
	ILLEGAL         Type = "ILLEGAL"
	IN              Type = "IN"
	INC             Type = "++"
	INSTANCEOF      Type = "INSTANCEOF"
	LBRACE          Type = "{"
	LBRACKET        Type = "["
	LET             Type = "LET"
	LPAREN          Type = "("
	LT              Type = "<"
	LT_EQUALS       Type = "<="
	MINUS           Type = "-"
	MINUS_EQUALS    Type = "-="
	MOD             Type = "%"
	MOD_EQUALS      Type = "%="
	NEW             Type = "NEW"
	NOT_EQ          Type = "!="
	NE_STRICT       Type = "!=="
	NULL            Type = "NULL"
	NUMBER          Type = "NUMBER"
	OR              Type = "||"
	PERIOD          Type = "."
	PIPE            Type = "|"
	PIPE_EQUALS     Type = "|="
	PLUS            Type = "+"
	PLUS_EQUALS     Type = "+="
	POWER           Type = "**"
	POWER_EQUALS    Type = "**="
	QUESTION        Type = "?"
	RBRACE          Type = "}"
	RBRACKET        Type = "]"
	REGEXP          Type = "REGEXP"
	RETURN          Type = "RETURN"
	RPAREN          Type = ")"
	SEMICOLON       Type = ";"
	SHL             Type = "<<"
	SHL_EQUALS      Type = "<<="
	SHR             Type = ">>"
	SHR_EQUALS      Type = ">>="
	SLASH           Type = "/"
	SLASH_EQUALS    Type = "/="
	STRING          Type = "STRING"
	SWITCH          Type = "SWITCH"
	THROW           Type = "THROW"
	TILDE           Type = "~"
	TRUE            Type = "TRUE"
	TRY             Type = "TRY"
	TYPEOF          Type = "TYPEOF"
	USHR            Type = ">>>"
	USHR_EQUALS     Type = ">>>="
	VAR             Type = "VAR"
	VOID            Type = "VOID"
	WHILE           Type = "WHILE"
)

// Reserved keywords
var keywords = map[string]Type{
	"break":      BREAK,
	"case":       CASE,
	"catch":      CATCH,
	"const":      CONST,
	"continue":   CONTINUE,
	"default":    DEFAULT,
	"delete":     DELETE,
	"do":         DO,
	"else":       ELSE,
	"false":      FALSE,
	"finally":    FINALLY,
	"for":        FOR,
	"function":   FUNCTION,
	"if":         IF,
	"in":         IN,
	"instanceof": INSTANCEOF,
	"let":        LET,
	"new":        NEW,
	"null":       NULL,
	"return":     RETURN,
	"switch":     SWITCH,
	"throw":      THROW,
	"true":       TRUE,
	"try":        TRY,
	"typeof":     TYPEOF,
	"var":        VAR,
	"void":       VOID,
	"while":      WHILE,
}

// LookupIdentifier reports whether the identifier is a keyword, returning
// the keyword's type if so and IDENT otherwise.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the name is reserved and cannot be used as an
// identifier.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}
