package parser

import (
	"fmt"

	"github.com/deepnoodle-ai/jsfuse/internal/token"
)

// tokenDescription returns a user-friendly description of a token.
func tokenDescription(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of file"
	case token.ILLEGAL:
		return fmt.Sprintf("illegal token %q", t.Literal)
	case token.IDENT:
		return fmt.Sprintf("identifier %q", t.Literal)
	case token.NUMBER:
		return fmt.Sprintf("number %s", t.Literal)
	case token.STRING:
		return fmt.Sprintf("string %s", t.Literal)
	}
	if token.IsKeyword(t.Literal) {
		return fmt.Sprintf("keyword %q", t.Literal)
	}
	return fmt.Sprintf("%q", t.Literal)
}

// tokenTypeDescription describes a token type in the words used by
// "expected ..." messages.
func tokenTypeDescription(t token.Type) string {
	switch t {
	case token.EOF:
		return "end of file"
	case token.IDENT:
		return "an identifier"
	case token.NUMBER:
		return "a number"
	case token.STRING:
		return "a string"
	case token.LPAREN:
		return "'('"
	case token.RPAREN:
		return "')'"
	case token.LBRACE:
		return "'{'"
	case token.RBRACE:
		return "'}'"
	case token.LBRACKET:
		return "'['"
	case token.RBRACKET:
		return "']'"
	case token.COLON:
		return "':'"
	case token.COMMA:
		return "','"
	case token.SEMICOLON:
		return "';'"
	case token.ASSIGN:
		return "'='"
	}
	return string(t)
}
