package parser

import (
	"github.com/deepnoodle-ai/jsfuse/ast"
	"github.com/deepnoodle-ai/jsfuse/internal/token"
)

func (p *Parser) parseNumber() ast.Expr {
	return &ast.Number{ValuePos: p.curToken.StartPosition, Literal: p.curToken.Literal}
}

func (p *Parser) parseString() ast.Expr {
	return &ast.String{ValuePos: p.curToken.StartPosition, Literal: p.curToken.Literal}
}

func (p *Parser) parseRegexp() ast.Expr {
	return &ast.Regexp{ValuePos: p.curToken.StartPosition, Literal: p.curToken.Literal}
}

func (p *Parser) parseBoolean() ast.Expr {
	return &ast.Bool{ValuePos: p.curToken.StartPosition, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNull() ast.Expr {
	return &ast.Null{NullPos: p.curToken.StartPosition}
}

func (p *Parser) parseArray() ast.Expr {
	lbrack := p.curToken.StartPosition
	items := p.parseExprList("array", token.RBRACKET)
	if items == nil {
		return nil
	}
	return &ast.Array{Lbrack: lbrack, Items: items, Rbrack: p.curToken.StartPosition}
}

// parseObject parses an object literal. Keys may be identifiers, keywords,
// strings or numbers and are kept as written.
func (p *Parser) parseObject() ast.Expr {
	obj := &ast.Object{Lbrace: p.curToken.StartPosition, Props: []*ast.Property{}}
	for !p.peekTokenIs(token.RBRACE) {
		if p.cancelled() {
			return nil
		}
		p.nextToken()
		switch {
		case p.curTokenIs(token.IDENT), p.curTokenIs(token.STRING), p.curTokenIs(token.NUMBER),
			token.IsKeyword(p.curToken.Literal):
		default:
			p.setTokenError(p.curToken, "unexpected %s while parsing object (expected a property key)",
				tokenDescription(p.curToken))
			return nil
		}
		key := p.curToken.Literal
		if !p.expectPeek("object", token.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(ASSIGN - 1)
		if value == nil {
			return nil
		}
		obj.Props = append(obj.Props, &ast.Property{Key: key, Value: value})
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek("object", token.RBRACE) {
		return nil
	}
	obj.Rbrace = p.curToken.StartPosition
	return obj
}

// parseFuncExpr parses a function expression, which may carry a name.
func (p *Parser) parseFuncExpr() ast.Expr {
	fn := p.parseFunc()
	if fn == nil {
		return nil
	}
	return fn
}

// parseFunc parses "function [name](params) { body }". The current token is
// the "function" keyword.
func (p *Parser) parseFunc() *ast.Func {
	fn := &ast.Func{Func: p.curToken.StartPosition}
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		fn.Name = &ast.Ident{NamePos: p.curToken.StartPosition, Name: p.curToken.Literal}
	}
	if !p.expectPeek("function", token.LPAREN) {
		return nil
	}
	fn.Lparen = p.curToken.StartPosition
	params, ok := p.parseParams()
	if !ok {
		return nil
	}
	fn.Params = params
	fn.Rparen = p.curToken.StartPosition
	if !p.expectPeek("function", token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	fn.Body = body
	return fn
}

func (p *Parser) parseParams() ([]*ast.Ident, bool) {
	params := []*ast.Ident{}
	seen := map[string]bool{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}
	for {
		if !p.expectPeek("function parameters", token.IDENT) {
			return nil, false
		}
		name := p.curToken.Literal
		if seen[name] {
			p.setTokenError(p.curToken, "duplicate parameter %q", name)
			return nil, false
		}
		seen[name] = true
		params = append(params, &ast.Ident{NamePos: p.curToken.StartPosition, Name: name})
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek("function parameters", token.RPAREN) {
		return nil, false
	}
	return params, true
}
