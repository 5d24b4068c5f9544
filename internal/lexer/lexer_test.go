package lexer

import (
	"testing"

	"github.com/deepnoodle-ai/jsfuse/internal/token"
	"github.com/stretchr/testify/require"
)

type expectedToken struct {
	expectedType    token.Type
	expectedLiteral string
}

func lexAll(t *testing.T, input string, tests []expectedToken) {
	t.Helper()
	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextToken(t *testing.T) {
	input := "(){}[],;:?~* a / b % + += - -= = == === ! != !== < <= > >= && || . " +
		"& | ^ << >> >>> ** ++ -- *= a /= %= &= |= ^= <<= >>= >>>= **="
	lexAll(t, input, []expectedToken{
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.LBRACKET, "["},
		{token.RBRACKET, "]"},
		{token.COMMA, ","},
		{token.SEMICOLON, ";"},
		{token.COLON, ":"},
		{token.QUESTION, "?"},
		{token.TILDE, "~"},
		{token.ASTERISK, "*"},
		{token.IDENT, "a"},
		{token.SLASH, "/"},
		{token.IDENT, "b"},
		{token.MOD, "%"},
		{token.PLUS, "+"},
		{token.PLUS_EQUALS, "+="},
		{token.MINUS, "-"},
		{token.MINUS_EQUALS, "-="},
		{token.ASSIGN, "="},
		{token.EQ, "=="},
		{token.EQ_STRICT, "==="},
		{token.BANG, "!"},
		{token.NOT_EQ, "!="},
		{token.NE_STRICT, "!=="},
		{token.LT, "<"},
		{token.LT_EQUALS, "<="},
		{token.GT, ">"},
		{token.GT_EQUALS, ">="},
		{token.AND, "&&"},
		{token.OR, "||"},
		{token.PERIOD, "."},
		{token.AMPERSAND, "&"},
		{token.PIPE, "|"},
		{token.CARET, "^"},
		{token.SHL, "<<"},
		{token.SHR, ">>"},
		{token.USHR, ">>>"},
		{token.POWER, "**"},
		{token.INC, "++"},
		{token.DEC, "--"},
		{token.ASTERISK_EQUALS, "*="},
		{token.IDENT, "a"},
		{token.SLASH_EQUALS, "/="},
		{token.MOD_EQUALS, "%="},
		{token.AMP_EQUALS, "&="},
		{token.PIPE_EQUALS, "|="},
		{token.CARET_EQUALS, "^="},
		{token.SHL_EQUALS, "<<="},
		{token.SHR_EQUALS, ">>="},
		{token.USHR_EQUALS, ">>>="},
		{token.POWER_EQUALS, "**="},
		{token.EOF, ""},
	})
}

func TestRegexp(t *testing.T) {
	input := `x = /ab+c/g; s.replace(/^\s+|[/\]]+$/gm, ''); y = a / b / c; return /\//.test(z)`
	lexAll(t, input, []expectedToken{
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.REGEXP, "/ab+c/g"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "s"},
		{token.PERIOD, "."},
		{token.IDENT, "replace"},
		{token.LPAREN, "("},
		{token.REGEXP, `/^\s+|[/\]]+$/gm`},
		{token.COMMA, ","},
		{token.STRING, "''"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "y"},
		{token.ASSIGN, "="},
		{token.IDENT, "a"},
		{token.SLASH, "/"},
		{token.IDENT, "b"},
		{token.SLASH, "/"},
		{token.IDENT, "c"},
		{token.SEMICOLON, ";"},
		{token.RETURN, "return"},
		{token.REGEXP, `/\//`},
		{token.PERIOD, "."},
		{token.IDENT, "test"},
		{token.LPAREN, "("},
		{token.IDENT, "z"},
		{token.RPAREN, ")"},
		{token.EOF, ""},
	})
}

func TestElmIdentifiers(t *testing.T) {
	input := `var fn = A2($elm$core$Basics$composeR, f1, _param_1);`
	lexAll(t, input, []expectedToken{
		{token.VAR, "var"},
		{token.IDENT, "fn"},
		{token.ASSIGN, "="},
		{token.IDENT, "A2"},
		{token.LPAREN, "("},
		{token.IDENT, "$elm$core$Basics$composeR"},
		{token.COMMA, ","},
		{token.IDENT, "f1"},
		{token.COMMA, ","},
		{token.IDENT, "_param_1"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	})
}

func TestKeywords(t *testing.T) {
	input := "function return if else while break continue throw var let const true false null new typeof " +
		"switch case default for do try catch finally in instanceof void delete"
	lexAll(t, input, []expectedToken{
		{token.FUNCTION, "function"},
		{token.RETURN, "return"},
		{token.IF, "if"},
		{token.ELSE, "else"},
		{token.WHILE, "while"},
		{token.BREAK, "break"},
		{token.CONTINUE, "continue"},
		{token.THROW, "throw"},
		{token.VAR, "var"},
		{token.LET, "let"},
		{token.CONST, "const"},
		{token.TRUE, "true"},
		{token.FALSE, "false"},
		{token.NULL, "null"},
		{token.NEW, "new"},
		{token.TYPEOF, "typeof"},
		{token.SWITCH, "switch"},
		{token.CASE, "case"},
		{token.DEFAULT, "default"},
		{token.FOR, "for"},
		{token.DO, "do"},
		{token.TRY, "try"},
		{token.CATCH, "catch"},
		{token.FINALLY, "finally"},
		{token.IN, "in"},
		{token.INSTANCEOF, "instanceof"},
		{token.VOID, "void"},
		{token.DELETE, "delete"},
		{token.EOF, ""},
	})
}

func TestNumbersAndStrings(t *testing.T) {
	input := `1 2.5 .5 0xFF 1e10 3E-2 "a\"b" 'it\'s'`
	lexAll(t, input, []expectedToken{
		{token.NUMBER, "1"},
		{token.NUMBER, "2.5"},
		{token.NUMBER, ".5"},
		{token.NUMBER, "0xFF"},
		{token.NUMBER, "1e10"},
		{token.NUMBER, "3E-2"},
		{token.STRING, `"a\"b"`},
		{token.STRING, `'it\'s'`},
		{token.EOF, ""},
	})
}

func TestComments(t *testing.T) {
	input := "a // line comment\n/* block\ncomment */ b /* trailing */"
	l := New(input)

	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, "a", tok.Literal)
	require.Empty(t, tok.Leading)

	tok, err = l.Next()
	require.NoError(t, err)
	require.Equal(t, "b", tok.Literal)
	require.Len(t, tok.Leading, 2)
	require.Equal(t, "// line comment", tok.Leading[0].Text)
	require.Equal(t, 0, tok.Leading[0].Position.Line)
	require.Equal(t, 2, tok.Leading[0].Position.Column)
	require.Equal(t, "/* block\ncomment */", tok.Leading[1].Text)
	require.Equal(t, 1, tok.Leading[1].Position.Line)

	tok, err = l.Next()
	require.NoError(t, err)
	require.Equal(t, token.EOF, tok.Type)
	require.Len(t, tok.Leading, 1)
	require.Equal(t, "/* trailing */", tok.Leading[0].Text)
}

func TestPositions(t *testing.T) {
	l := New("var x =\n  foo;")
	l.SetFilename("main.js")
	require.Equal(t, "main.js", l.Filename())

	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, 0, tok.StartPosition.Line)
	require.Equal(t, 0, tok.StartPosition.Column)
	require.Equal(t, 3, tok.EndPosition.Column)

	l.Next() // x
	l.Next() // =
	tok, err = l.Next()
	require.NoError(t, err)
	require.Equal(t, "foo", tok.Literal)
	require.Equal(t, 1, tok.StartPosition.Line)
	require.Equal(t, 2, tok.StartPosition.Column)
	require.Equal(t, "main.js", tok.StartPosition.File)
	require.Equal(t, "  foo;", l.GetLineText(tok))
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		{`"unterminated`, "unterminated string literal"},
		{"/* open", "unterminated block comment"},
		{"a @ b", `unexpected character "@"`},
		{"x = /ab", "unterminated regular expression literal"},
		{"#", `unexpected character "#"`},
		{"1e+", `invalid number literal "1e+"`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			var err error
			for i := 0; i < 5 && err == nil; i++ {
				var tok token.Token
				tok, err = l.Next()
				if tok.Type == token.EOF {
					break
				}
			}
			require.Error(t, err)
			require.Equal(t, tt.err, err.Error())
		})
	}
}
