// Package lexer converts JavaScript source code into a stream of tokens.
//
// The ES5 lexical grammar emitted by functional-language compilers is
// recognized: identifiers (including "$"), numbers, quoted strings, regular
// expression literals and the full set of operators and punctuation.
// Comments are kept and attached to the token that follows them.
package lexer

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/jsfuse/internal/token"
)

// Lexer holds our object-state.
type Lexer struct {
	// The input source code
	input string

	// The current character position
	position int

	// The next character position
	readPosition int

	// The current character
	ch byte

	// The current line index
	line int

	// Byte offset of the start of the current line
	lineStart int

	// Name of the file being lexed, used in token positions
	file string

	// Type of the last token returned, used to tell a regular expression
	// from a division
	prev token.Type

	// Comments read since the last token
	comments []token.Comment
}

// New creates a Lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// SetFilename sets the file name stamped onto token positions.
func (l *Lexer) SetFilename(name string) {
	l.file = name
}

// Filename returns the file name stamped onto token positions.
func (l *Lexer) Filename() string {
	return l.file
}

// Next returns the next token in the input. An error is returned for
// malformed input such as an unterminated string; the accompanying token
// has type ILLEGAL.
func (l *Lexer) Next() (token.Token, error) {
	tok, err := l.next()
	tok.Leading = l.comments
	l.comments = nil
	l.prev = tok.Type
	return tok, err
}

// operators lists the punctuators, longest first so that the first prefix
// match is the longest one.
var operators = []struct {
	literal string
	typ     token.Type
}{
	{">>>=", token.USHR_EQUALS},
	{"===", token.EQ_STRICT},
	{"!==", token.NE_STRICT},
	{"**=", token.POWER_EQUALS},
	{"<<=", token.SHL_EQUALS},
	{">>=", token.SHR_EQUALS},
	{">>>", token.USHR},
	{"&&", token.AND},
	{"||", token.OR},
	{"==", token.EQ},
	{"!=", token.NOT_EQ},
	{"<=", token.LT_EQUALS},
	{">=", token.GT_EQUALS},
	{"+=", token.PLUS_EQUALS},
	{"-=", token.MINUS_EQUALS},
	{"*=", token.ASTERISK_EQUALS},
	{"/=", token.SLASH_EQUALS},
	{"%=", token.MOD_EQUALS},
	{"&=", token.AMP_EQUALS},
	{"|=", token.PIPE_EQUALS},
	{"^=", token.CARET_EQUALS},
	{"++", token.INC},
	{"--", token.DEC},
	{"**", token.POWER},
	{"<<", token.SHL},
	{">>", token.SHR},
	{"(", token.LPAREN},
	{")", token.RPAREN},
	{"{", token.LBRACE},
	{"}", token.RBRACE},
	{"[", token.LBRACKET},
	{"]", token.RBRACKET},
	{",", token.COMMA},
	{";", token.SEMICOLON},
	{":", token.COLON},
	{"?", token.QUESTION},
	{"~", token.TILDE},
	{".", token.PERIOD},
	{"=", token.ASSIGN},
	{"!", token.BANG},
	{"<", token.LT},
	{">", token.GT},
	{"+", token.PLUS},
	{"-", token.MINUS},
	{"*", token.ASTERISK},
	{"/", token.SLASH},
	{"%", token.MOD},
	{"&", token.AMPERSAND},
	{"|", token.PIPE},
	{"^", token.CARET},
}

func (l *Lexer) next() (token.Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return l.finish(l.newToken(token.ILLEGAL, ""), l.currentPosition()), err
	}
	start := l.currentPosition()
	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, StartPosition: start, EndPosition: start}, nil
	case l.ch == '"' || l.ch == '\'':
		return l.readString(start)
	case isDigit(l.ch), l.ch == '.' && isDigit(l.peekChar()):
		return l.readNumber()
	case isIdentifierStart(l.ch):
		ident := l.readIdentifier()
		return l.finish(token.Token{Type: token.LookupIdentifier(ident), Literal: ident}, start), nil
	case l.ch == '/' && l.regexpAllowed():
		return l.readRegexp(start)
	}
	rest := l.input[l.position:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op.literal) {
			for range op.literal {
				l.readChar()
			}
			return l.finish(l.newToken(op.typ, op.literal), start), nil
		}
	}
	tok := l.newToken(token.ILLEGAL, string(l.ch))
	l.readChar()
	return l.finish(tok, start), fmt.Errorf("unexpected character %q", tok.Literal)
}

// regexpAllowed reports whether a "/" at the current position starts a
// regular expression. It does unless the previous token ends an operand.
func (l *Lexer) regexpAllowed() bool {
	switch l.prev {
	case token.IDENT, token.NUMBER, token.STRING, token.REGEXP,
		token.RPAREN, token.RBRACKET, token.TRUE, token.FALSE, token.NULL,
		token.INC, token.DEC:
		return false
	}
	return true
}

// GetLineText returns the full line of source code containing the token.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start > len(l.input) {
		return ""
	}
	end := strings.IndexByte(l.input[start:], '\n')
	if end < 0 {
		return l.input[start:]
	}
	return l.input[start : start+end]
}

func (l *Lexer) finish(tok token.Token, start token.Position) token.Token {
	tok.StartPosition = start
	tok.EndPosition = l.currentPosition()
	return tok
}

func (l *Lexer) newToken(tokenType token.Type, literal string) token.Token {
	return token.Token{Type: tokenType, Literal: literal}
}

func (l *Lexer) currentPosition() token.Position {
	return token.Position{
		Char:      l.position,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.position - l.lineStart,
		File:      l.file,
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.lineStart = l.readPosition
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			start := l.currentPosition()
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			l.addComment(start)
		case l.ch == '/' && l.peekChar() == '*':
			start := l.currentPosition()
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') {
				if l.ch == 0 {
					return fmt.Errorf("unterminated block comment")
				}
				l.readChar()
			}
			l.readChar()
			l.readChar()
			l.addComment(start)
		default:
			return nil
		}
	}
}

func (l *Lexer) addComment(start token.Position) {
	text := strings.TrimRight(l.input[start.Char:l.position], " \t\r")
	l.comments = append(l.comments, token.Comment{Text: text, Position: start})
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isIdentifierStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() (token.Token, error) {
	start := l.currentPosition()
	position := l.position
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) {
			l.readChar()
		}
	} else {
		for isDigit(l.ch) {
			l.readChar()
		}
		if l.ch == '.' {
			l.readChar()
			for isDigit(l.ch) {
				l.readChar()
			}
		}
		if l.ch == 'e' || l.ch == 'E' {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			if !isDigit(l.ch) {
				tok := token.Token{Type: token.ILLEGAL, Literal: l.input[position:l.position]}
				return l.finish(tok, start), fmt.Errorf("invalid number literal %q", tok.Literal)
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	tok := token.Token{Type: token.NUMBER, Literal: l.input[position:l.position]}
	return l.finish(tok, start), nil
}

// readString reads a quoted string. The literal keeps its quotes and escape
// sequences exactly as written so the printer can reproduce it verbatim.
func (l *Lexer) readString(start token.Position) (token.Token, error) {
	quote := l.ch
	position := l.position
	l.readChar()
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			tok := token.Token{Type: token.ILLEGAL, Literal: l.input[position:l.position]}
			return l.finish(tok, start), fmt.Errorf("unterminated string literal")
		}
		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 {
				continue
			}
		}
		l.readChar()
	}
	l.readChar()
	tok := token.Token{Type: token.STRING, Literal: l.input[position:l.position]}
	return l.finish(tok, start), nil
}

// readRegexp reads a regular expression literal and its flags. A "/" inside
// a character class does not end the pattern.
func (l *Lexer) readRegexp(start token.Position) (token.Token, error) {
	position := l.position
	inClass := false
	l.readChar()
	for inClass || l.ch != '/' {
		switch l.ch {
		case 0, '\n':
			tok := token.Token{Type: token.ILLEGAL, Literal: l.input[position:l.position]}
			return l.finish(tok, start), fmt.Errorf("unterminated regular expression literal")
		case '\\':
			l.readChar()
			if l.ch == 0 || l.ch == '\n' {
				continue
			}
		case '[':
			inClass = true
		case ']':
			inClass = false
		}
		l.readChar()
	}
	l.readChar()
	for isIdentifierStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	tok := token.Token{Type: token.REGEXP, Literal: l.input[position:l.position]}
	return l.finish(tok, start), nil
}

func isIdentifierStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
