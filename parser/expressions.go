package parser

import (
	"github.com/deepnoodle-ai/jsfuse/ast"
	"github.com/deepnoodle-ai/jsfuse/internal/token"
)

func (p *Parser) parseIdent() ast.Expr {
	return &ast.Ident{NamePos: p.curToken.StartPosition, Name: p.curToken.Literal}
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	opToken := p.curToken
	p.nextToken()
	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}
	return &ast.Prefix{OpPos: opToken.StartPosition, Op: opToken.Literal, X: right}
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	opToken := p.curToken
	precedence := p.currentPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.Infix{X: left, OpPos: opToken.StartPosition, Op: opToken.Literal, Y: right}
}

// parsePowerExpr parses "**", which is right-associative.
func (p *Parser) parsePowerExpr(left ast.Expr) ast.Expr {
	opToken := p.curToken
	p.nextToken()
	right := p.parseExpression(EXPONENT - 1)
	if right == nil {
		return nil
	}
	return &ast.Infix{X: left, OpPos: opToken.StartPosition, Op: opToken.Literal, Y: right}
}

func (p *Parser) parseSequence(left ast.Expr) ast.Expr {
	p.nextToken()
	right := p.parseExpression(COMMA)
	if right == nil {
		return nil
	}
	if seq, ok := left.(*ast.Sequence); ok {
		seq.List = append(seq.List, right)
		return seq
	}
	return &ast.Sequence{List: []ast.Expr{left, right}}
}

func (p *Parser) parsePrefixUpdate() ast.Expr {
	opToken := p.curToken
	p.nextToken()
	x := p.parseExpression(PREFIX)
	if x == nil {
		return nil
	}
	if !isAssignable(x) {
		p.setTokenError(opToken, "invalid operand for %s", opToken.Literal)
		return nil
	}
	return &ast.Update{OpPos: opToken.StartPosition, Op: opToken.Literal, Prefix: true, X: x}
}

func (p *Parser) parsePostfixUpdate(left ast.Expr) ast.Expr {
	if !isAssignable(left) {
		p.setTokenError(p.curToken, "invalid operand for %s", p.curToken.Literal)
		return nil
	}
	return &ast.Update{OpPos: p.curToken.StartPosition, Op: p.curToken.Literal, X: left}
}

func isAssignable(x ast.Expr) bool {
	switch x.(type) {
	case *ast.Ident, *ast.Member, *ast.Index:
		return true
	}
	return false
}

// parseAssign parses "=" and the compound assignments. Assignment is
// right-associative, so the value is parsed one level below ASSIGN.
func (p *Parser) parseAssign(left ast.Expr) ast.Expr {
	if !isAssignable(left) {
		p.setTokenError(p.curToken, "invalid assignment target")
		return nil
	}
	opToken := p.curToken
	p.nextToken()
	right := p.parseExpression(ASSIGN - 1)
	if right == nil {
		return nil
	}
	return &ast.Assign{X: left, OpPos: opToken.StartPosition, Op: opToken.Literal, Value: right}
}

func (p *Parser) parseTernary(condition ast.Expr) ast.Expr {
	question := p.curToken.StartPosition
	p.nextToken()
	then := p.parseExpression(ASSIGN - 1)
	if then == nil {
		return nil
	}
	if !p.expectPeek("conditional expression", token.COLON) {
		return nil
	}
	colon := p.curToken.StartPosition
	p.nextToken()
	otherwise := p.parseExpression(ASSIGN - 1)
	if otherwise == nil {
		return nil
	}
	return &ast.Cond{
		Cond:     condition,
		Question: question,
		Then:     then,
		Colon:    colon,
		Else:     otherwise,
	}
}

// parseGroupedExpr parses a parenthesized expression. No node is created for
// the parentheses; the printer adds them back where precedence requires.
func (p *Parser) parseGroupedExpr() ast.Expr {
	defer p.allowIn()()
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek("grouped expression", token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseCall(fn ast.Expr) ast.Expr {
	lparen := p.curToken.StartPosition
	args := p.parseExprList("call arguments", token.RPAREN)
	if args == nil {
		return nil
	}
	return &ast.Call{Fun: fn, Lparen: lparen, Args: args, Rparen: p.curToken.StartPosition}
}

func (p *Parser) parseNew() ast.Expr {
	newPos := p.curToken.StartPosition
	p.nextToken()
	// The constructor binds tighter than the call, so "new F(a)" applies
	// the argument list to the new expression rather than to F.
	fn := p.parseExpression(CALL)
	if fn == nil {
		return nil
	}
	expr := &ast.New{NewPos: newPos, Fun: fn}
	if !p.peekTokenIs(token.LPAREN) {
		expr.Rparen = p.curToken.StartPosition
		return expr
	}
	p.nextToken()
	args := p.parseExprList("constructor arguments", token.RPAREN)
	if args == nil {
		return nil
	}
	expr.Args = args
	expr.Rparen = p.curToken.StartPosition
	return expr
}

// parseMember parses "x.name". Keywords are permitted as property names.
func (p *Parser) parseMember(obj ast.Expr) ast.Expr {
	period := p.curToken.StartPosition
	p.nextToken()
	if !p.curTokenIs(token.IDENT) && !token.IsKeyword(p.curToken.Literal) {
		p.setTokenError(p.curToken, "unexpected %s after '.' (expected a property name)",
			tokenDescription(p.curToken))
		return nil
	}
	sel := &ast.Ident{NamePos: p.curToken.StartPosition, Name: p.curToken.Literal}
	return &ast.Member{X: obj, Period: period, Sel: sel}
}

func (p *Parser) parseIndex(obj ast.Expr) ast.Expr {
	lbrack := p.curToken.StartPosition
	p.nextToken()
	index := p.parseExpression(LOWEST)
	if index == nil {
		return nil
	}
	if !p.expectPeek("index expression", token.RBRACKET) {
		return nil
	}
	return &ast.Index{X: obj, Lbrack: lbrack, Index: index, Rbrack: p.curToken.StartPosition}
}

// parseExprList parses a comma separated list of expressions that ends with
// the given token. The current token is the opening delimiter. A trailing
// comma is accepted. On success the current token is the closing delimiter
// and the returned slice is non-nil.
func (p *Parser) parseExprList(context string, end token.Type) []ast.Expr {
	defer p.allowIn()()
	list := []ast.Expr{}
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	for {
		if p.cancelled() {
			return nil
		}
		p.nextToken()
		item := p.parseExpression(ASSIGN - 1)
		if item == nil {
			return nil
		}
		list = append(list, item)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		if p.peekTokenIs(end) {
			break
		}
	}
	if !p.expectPeek(context, end) {
		return nil
	}
	return list
}
