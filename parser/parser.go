// Package parser is used to generate the abstract syntax tree (AST) for a
// JavaScript program.
//
// A parser is created by calling New() with a lexer as input. The parser should
// then be used only once, by calling parser.Parse() to produce the AST.
package parser

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/deepnoodle-ai/jsfuse/ast"
	"github.com/deepnoodle-ai/jsfuse/errz"
	"github.com/deepnoodle-ai/jsfuse/internal/lexer"
	"github.com/deepnoodle-ai/jsfuse/internal/token"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parse the provided input as JavaScript source code and return the AST.
// This is shorthand way to create a Lexer and Parser and then call Parse on
// that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	l := lexer.New(input)
	p := New(l, options...)
	return p.Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in positions and errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// MaxErrors is the maximum number of errors to collect before stopping.
const MaxErrors = 10

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l is our lexer
	l *lexer.Lexer

	// prevToken holds the previous token, which we already processed.
	prevToken token.Token

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// parsing errors collected during parsing
	errors []*errz.Error

	// stmtErrorCount tracks error count at start of current statement.
	stmtErrorCount int

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn

	// The filename of the input
	filename string

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int

	// noIn is set while parsing a for-loop initializer, where "in" starts
	// the loop's object rather than an operator expression.
	noIn bool
}

// New returns a Parser for the program provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{
		l:              l,
		prefixParseFns: map[token.Type]prefixParseFn{},
		infixParseFns:  map[token.Type]infixParseFn{},
		maxDepth:       DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.filename != "" {
		l.SetFilename(p.filename)
	}

	// Prime the token pump
	p.nextToken() // makes curToken=<empty>, peekToken=token[0]
	p.nextToken() // makes curToken=token[0], peekToken=token[1]

	p.registerPrefix(token.BANG, p.parsePrefixExpr)
	p.registerPrefix(token.DEC, p.parsePrefixUpdate)
	p.registerPrefix(token.DELETE, p.parsePrefixExpr)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.FUNCTION, p.parseFuncExpr)
	p.registerPrefix(token.IDENT, p.parseIdent)
	p.registerPrefix(token.INC, p.parsePrefixUpdate)
	p.registerPrefix(token.LBRACE, p.parseObject)
	p.registerPrefix(token.LBRACKET, p.parseArray)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(token.MINUS, p.parsePrefixExpr)
	p.registerPrefix(token.NEW, p.parseNew)
	p.registerPrefix(token.NULL, p.parseNull)
	p.registerPrefix(token.NUMBER, p.parseNumber)
	p.registerPrefix(token.PLUS, p.parsePrefixExpr)
	p.registerPrefix(token.REGEXP, p.parseRegexp)
	p.registerPrefix(token.STRING, p.parseString)
	p.registerPrefix(token.TILDE, p.parsePrefixExpr)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.TYPEOF, p.parsePrefixExpr)
	p.registerPrefix(token.VOID, p.parsePrefixExpr)

	for _, t := range []token.Type{
		token.AMPERSAND, token.AND, token.ASTERISK, token.CARET, token.EQ,
		token.EQ_STRICT, token.GT, token.GT_EQUALS, token.IN, token.INSTANCEOF,
		token.LT, token.LT_EQUALS, token.MINUS, token.MOD, token.NE_STRICT,
		token.NOT_EQ, token.OR, token.PIPE, token.PLUS, token.SHL, token.SHR,
		token.SLASH, token.USHR,
	} {
		p.registerInfix(t, p.parseInfixExpr)
	}
	for _, t := range []token.Type{
		token.AMP_EQUALS, token.ASSIGN, token.ASTERISK_EQUALS, token.CARET_EQUALS,
		token.MINUS_EQUALS, token.MOD_EQUALS, token.PIPE_EQUALS, token.PLUS_EQUALS,
		token.POWER_EQUALS, token.SHL_EQUALS, token.SHR_EQUALS, token.SLASH_EQUALS,
		token.USHR_EQUALS,
	} {
		p.registerInfix(t, p.parseAssign)
	}
	p.registerInfix(token.COMMA, p.parseSequence)
	p.registerInfix(token.DEC, p.parsePostfixUpdate)
	p.registerInfix(token.INC, p.parsePostfixUpdate)
	p.registerInfix(token.LBRACKET, p.parseIndex)
	p.registerInfix(token.LPAREN, p.parseCall)
	p.registerInfix(token.PERIOD, p.parseMember)
	p.registerInfix(token.POWER, p.parsePowerExpr)
	p.registerInfix(token.QUESTION, p.parseTernary)

	return p
}

// nextToken moves to the next token from the lexer, updating all of
// prevToken, curToken, and peekToken.
func (p *Parser) nextToken() {
	var err error
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	p.peekToken, err = p.l.Next()
	if err == nil {
		return
	}
	// All lexer errors are syntax errors and parsing is now broken.
	p.addError(errz.New(errz.ErrSyntax, p.location(p.peekToken), "%s", err.Error()).WithCause(err))
}

// Parse the program that is provided via the lexer. If there are errors,
// they are returned as a *multierror.Error holding one *errz.Error per
// problem, and the AST may be partial.
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	p.ctx = ctx
	// It's possible for errors to already exist because we read tokens from
	// the lexer in the constructor.
	if p.hasErrors() {
		return nil, p.errorResult()
	}
	program := &ast.Program{}
	for {
		program.Stmts = append(program.Stmts, p.takeComments()...)
		if p.curTokenIs(token.EOF) {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.tooManyErrors() {
			break
		}
		p.stmtErrorCount = len(p.errors)
		stmt := p.parseStatementStrict()
		if stmt != nil {
			program.Stmts = append(program.Stmts, stmt)
		} else if p.hadNewError() {
			p.synchronize()
		}
		p.nextToken()
	}
	if p.hasErrors() {
		return program, p.errorResult()
	}
	return program, nil
}

func (p *Parser) errorResult() error {
	var result *multierror.Error
	for _, err := range p.errors {
		result = multierror.Append(result, err)
	}
	result.ErrorFormat = formatErrors
	return result.ErrorOrNil()
}

// registerPrefix registers a function for handling a prefix-based expression.
func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix registers a function for handling an infix-based expression.
func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) addError(err *errz.Error) {
	p.errors = append(p.errors, err)
}

func (p *Parser) hasErrors() bool {
	return len(p.errors) > 0
}

func (p *Parser) tooManyErrors() bool {
	return len(p.errors) >= MaxErrors
}

// hadNewError returns true if an error was added during the current statement.
func (p *Parser) hadNewError() bool {
	return len(p.errors) > p.stmtErrorCount
}

// synchronize skips tokens until a statement boundary is reached so that
// parsing can continue and report further errors.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.SEMICOLON, token.RBRACE:
			return
		}
		switch p.peekToken.Type {
		case token.VAR, token.LET, token.CONST, token.RETURN, token.IF,
			token.WHILE, token.FOR, token.DO, token.SWITCH, token.TRY,
			token.FUNCTION, token.THROW, token.EOF:
			return
		}
		p.nextToken()
	}
}

// cancelled checks if the parsing context has been cancelled.
func (p *Parser) cancelled() bool {
	if p.ctx == nil {
		return false
	}
	if err := p.ctx.Err(); err != nil {
		p.setTokenError(p.curToken, "%s", err.Error())
		return true
	}
	return false
}

func (p *Parser) location(t token.Token) errz.SourceLocation {
	return errz.Location(t.StartPosition, p.l.GetLineText(t))
}

func (p *Parser) setTokenError(t token.Token, msg string, args ...any) {
	p.addError(errz.New(errz.ErrSyntax, p.location(t), msg, args...))
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	p.setTokenError(t, "invalid syntax (unexpected %s)", tokenDescription(t))
}

// peekError records an error when the next token is not the expected type.
func (p *Parser) peekError(context string, expected token.Type, got token.Token) {
	p.setTokenError(got, "unexpected %s while parsing %s (expected %s)",
		tokenDescription(got), context, tokenTypeDescription(expected))
}

func (p *Parser) parseExpression(precedence int) ast.Expr {
	if p.curTokenIs(token.EOF) {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	if p.hadNewError() {
		return nil
	}
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		p.setTokenError(p.curToken, "maximum nesting depth exceeded")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	left := prefix()
	if left == nil || p.hadNewError() {
		return nil
	}
	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		if p.noIn && p.peekTokenIs(token.IN) {
			return left
		}
		// A line break before "++" or "--" ends the expression.
		if (p.peekTokenIs(token.INC) || p.peekTokenIs(token.DEC)) &&
			p.peekToken.StartPosition.Line != p.curToken.StartPosition.Line {
			return left
		}
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil || p.hadNewError() {
			return nil
		}
	}
	return left
}

// takeComments returns the comments that precede the current token as
// statements, and detaches them from the token. Comments are kept only where
// a statement list can hold them.
func (p *Parser) takeComments() []ast.Stmt {
	if len(p.curToken.Leading) == 0 {
		return nil
	}
	stmts := make([]ast.Stmt, 0, len(p.curToken.Leading))
	for _, c := range p.curToken.Leading {
		stmts = append(stmts, &ast.Comment{Slash: c.Position, Text: c.Text})
	}
	p.curToken.Leading = nil
	return stmts
}

// allowIn lifts the restriction on "in" within a nested construct of a
// for-loop initializer. The returned function restores it.
func (p *Parser) allowIn() func() {
	saved := p.noIn
	p.noIn = false
	return func() { p.noIn = saved }
}

// curTokenIs returns true if the current token has the given type.
func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

// peekTokenIs returns true if the next token has the given type.
func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek validates if the next token is of the given type, and advances if
// it is. If it's a different type, then an error is stored.
func (p *Parser) expectPeek(context string, t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(context, t, p.peekToken)
	return false
}

// peekPrecedence returns the precedence of the next token.
func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

// currentPrecedence returns the precedence of the current token.
func (p *Parser) currentPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

func formatErrors(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", errs[0].Error(), len(errs)-1)
}
