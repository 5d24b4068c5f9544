package parser

import (
	"github.com/deepnoodle-ai/jsfuse/ast"
	"github.com/deepnoodle-ai/jsfuse/internal/token"
)

// parseStatementStrict parses a statement and its terminator. Simple
// statements end with ";", a line break, a closing brace or the end of the
// file. On return the current token is the last token of the statement.
func (p *Parser) parseStatementStrict() ast.Stmt {
	if p.cancelled() {
		return nil
	}
	stmt := p.parseStatement()
	if stmt == nil || p.hadNewError() {
		return nil
	}
	switch stmt.(type) {
	case *ast.VarDecl, *ast.Return, *ast.ExprStmt, *ast.Break, *ast.Continue, *ast.Throw:
	default:
		return stmt
	}
	switch {
	case p.peekTokenIs(token.SEMICOLON):
		p.nextToken()
	case p.peekTokenIs(token.RBRACE), p.peekTokenIs(token.EOF):
	case p.peekToken.StartPosition.Line == p.curToken.StartPosition.Line:
		p.setTokenError(p.peekToken, "unexpected %s after statement (expected ';' or a new line)",
			tokenDescription(p.peekToken))
		return nil
	}
	return stmt
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.curToken.Type {
	case token.VAR, token.LET, token.CONST:
		return p.parseVarDecl()
	case token.RETURN:
		return p.parseReturn()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.FOR:
		return p.parseFor()
	case token.SWITCH:
		return p.parseSwitch()
	case token.TRY:
		return p.parseTry()
	case token.BREAK:
		return &ast.Break{Break: p.curToken.StartPosition, Label: p.parseJumpLabel()}
	case token.CONTINUE:
		return &ast.Continue{Continue: p.curToken.StartPosition, Label: p.parseJumpLabel()}
	case token.THROW:
		return p.parseThrow()
	case token.IDENT:
		if p.peekTokenIs(token.COLON) {
			return p.parseLabeled()
		}
	case token.LBRACE:
		if block := p.parseBlock(); block != nil {
			return block
		}
		return nil
	case token.SEMICOLON:
		// Empty statement
		return nil
	case token.FUNCTION:
		if p.peekTokenIs(token.IDENT) {
			if fn := p.parseFunc(); fn != nil {
				return fn
			}
			return nil
		}
	}
	return p.parseExprStmt()
}

func (p *Parser) parseVarDecl() ast.Stmt {
	decl := &ast.VarDecl{DeclPos: p.curToken.StartPosition, Kind: p.curToken.Literal}
	for {
		if !p.expectPeek(decl.Kind+" statement", token.IDENT) {
			return nil
		}
		d := &ast.Declarator{Name: &ast.Ident{NamePos: p.curToken.StartPosition, Name: p.curToken.Literal}}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			d.Value = p.parseExpression(COMMA)
			if d.Value == nil {
				return nil
			}
		} else if decl.Kind == "const" && !(p.noIn && p.peekTokenIs(token.IN)) {
			p.setTokenError(p.peekToken, "missing initializer in const declaration")
			return nil
		}
		decl.Decls = append(decl.Decls, d)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	return decl
}

// parseReturn parses a return statement. A line break directly after the
// keyword ends the statement, as with automatic semicolon insertion.
func (p *Parser) parseReturn() ast.Stmt {
	stmt := &ast.Return{Return: p.curToken.StartPosition}
	switch {
	case p.peekTokenIs(token.SEMICOLON), p.peekTokenIs(token.RBRACE), p.peekTokenIs(token.EOF):
		return stmt
	case p.peekToken.StartPosition.Line != p.curToken.StartPosition.Line:
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseThrow() ast.Stmt {
	stmt := &ast.Throw{Throw: p.curToken.StartPosition}
	if p.peekToken.StartPosition.Line != p.curToken.StartPosition.Line {
		p.setTokenError(p.curToken, "line break is not allowed after throw")
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseIf() ast.Stmt {
	stmt := &ast.If{If: p.curToken.StartPosition}
	stmt.Cond = p.parseCondition("if statement")
	if stmt.Cond == nil {
		return nil
	}
	p.nextToken()
	stmt.Then = p.parseBranch()
	if stmt.Then == nil {
		return nil
	}
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		stmt.Else = p.parseBranch()
		if stmt.Else == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Stmt {
	stmt := &ast.While{While: p.curToken.StartPosition}
	stmt.Cond = p.parseCondition("while statement")
	if stmt.Cond == nil {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseBranch()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseCondition parses "(expr)" following if or while. On return the
// current token is the closing parenthesis.
func (p *Parser) parseCondition(context string) ast.Expr {
	if !p.expectPeek(context, token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expectPeek(context, token.RPAREN) {
		return nil
	}
	return cond
}

// parseBranch parses the body of an if, else or while. An empty statement
// becomes an empty block.
func (p *Parser) parseBranch() ast.Stmt {
	if p.curTokenIs(token.EOF) {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	pos := p.curToken.StartPosition
	stmt := p.parseStatementStrict()
	if stmt == nil && !p.hadNewError() {
		return &ast.Block{Lbrace: pos, Stmts: []ast.Stmt{}, Rbrace: pos}
	}
	return stmt
}

// parseBlock parses "{ stmts }". The current token is the opening brace and
// on return it is the closing brace.
func (p *Parser) parseBlock() *ast.Block {
	defer p.allowIn()()
	block := &ast.Block{Lbrace: p.curToken.StartPosition, Stmts: []ast.Stmt{}}
	p.nextToken()
	for {
		block.Stmts = append(block.Stmts, p.takeComments()...)
		if p.curTokenIs(token.RBRACE) {
			break
		}
		if p.curTokenIs(token.EOF) {
			p.setTokenError(p.curToken, "unterminated block (expected '}')")
			return nil
		}
		stmt := p.parseStatementStrict()
		if p.hadNewError() {
			return nil
		}
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		p.nextToken()
	}
	block.Rbrace = p.curToken.StartPosition
	return block
}

func (p *Parser) parseExprStmt() ast.Stmt {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	return &ast.ExprStmt{X: expr}
}

// parseJumpLabel parses the optional label of break or continue, which must
// be on the same line as the keyword.
func (p *Parser) parseJumpLabel() *ast.Ident {
	if !p.peekTokenIs(token.IDENT) || p.peekToken.StartPosition.Line != p.curToken.StartPosition.Line {
		return nil
	}
	p.nextToken()
	return &ast.Ident{NamePos: p.curToken.StartPosition, Name: p.curToken.Literal}
}

func (p *Parser) parseLabeled() ast.Stmt {
	stmt := &ast.Labeled{Label: &ast.Ident{NamePos: p.curToken.StartPosition, Name: p.curToken.Literal}}
	p.nextToken()
	stmt.Colon = p.curToken.StartPosition
	p.nextToken()
	stmt.Body = p.parseBranch()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseDoWhile() ast.Stmt {
	stmt := &ast.DoWhile{Do: p.curToken.StartPosition}
	p.nextToken()
	stmt.Body = p.parseBranch()
	if stmt.Body == nil {
		return nil
	}
	if !p.expectPeek("do statement", token.WHILE) {
		return nil
	}
	stmt.Cond = p.parseCondition("do statement")
	if stmt.Cond == nil {
		return nil
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

// parseFor parses both the three-clause loop and the for-in loop, which
// share a prefix up to the end of the initializer.
func (p *Parser) parseFor() ast.Stmt {
	forPos := p.curToken.StartPosition
	if !p.expectPeek("for statement", token.LPAREN) {
		return nil
	}
	p.nextToken()
	var init ast.Stmt
	if !p.curTokenIs(token.SEMICOLON) {
		p.noIn = true
		switch p.curToken.Type {
		case token.VAR, token.LET, token.CONST:
			init = p.parseVarDecl()
		default:
			if x := p.parseExpression(LOWEST); x != nil {
				init = &ast.ExprStmt{X: x}
			}
		}
		p.noIn = false
		if init == nil {
			return nil
		}
		if p.peekTokenIs(token.IN) {
			return p.parseForIn(forPos, init)
		}
		if !p.expectPeek("for statement", token.SEMICOLON) {
			return nil
		}
	}
	stmt := &ast.For{For: forPos, Init: init}
	if !p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		stmt.Cond = p.parseExpression(LOWEST)
		if stmt.Cond == nil {
			return nil
		}
	}
	if !p.expectPeek("for statement", token.SEMICOLON) {
		return nil
	}
	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		stmt.Post = p.parseExpression(LOWEST)
		if stmt.Post == nil {
			return nil
		}
	}
	if !p.expectPeek("for statement", token.RPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseBranch()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseForIn continues a for statement whose initializer is followed by
// "in". The current token is the last token of the initializer.
func (p *Parser) parseForIn(forPos token.Position, init ast.Stmt) ast.Stmt {
	valid := false
	switch init := init.(type) {
	case *ast.VarDecl:
		valid = len(init.Decls) == 1 && init.Decls[0].Value == nil
	case *ast.ExprStmt:
		valid = isAssignable(init.X)
	}
	if !valid {
		p.setTokenError(p.peekToken, "invalid left-hand side in for-in loop")
		return nil
	}
	p.nextToken()
	p.nextToken()
	stmt := &ast.ForIn{For: forPos, Init: init}
	stmt.X = p.parseExpression(LOWEST)
	if stmt.X == nil {
		return nil
	}
	if !p.expectPeek("for statement", token.RPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseBranch()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseSwitch parses a switch statement. Comments between clauses are kept
// at the end of the preceding clause.
func (p *Parser) parseSwitch() ast.Stmt {
	stmt := &ast.Switch{Switch: p.curToken.StartPosition, Cases: []*ast.Case{}}
	stmt.Tag = p.parseCondition("switch statement")
	if stmt.Tag == nil {
		return nil
	}
	if !p.expectPeek("switch statement", token.LBRACE) {
		return nil
	}
	p.nextToken()
	var current *ast.Case
	hasDefault := false
	for {
		if comments := p.takeComments(); current != nil {
			current.Body = append(current.Body, comments...)
		}
		switch p.curToken.Type {
		case token.RBRACE:
			stmt.Rbrace = p.curToken.StartPosition
			return stmt
		case token.EOF:
			p.setTokenError(p.curToken, "unterminated switch statement (expected '}')")
			return nil
		case token.CASE, token.DEFAULT:
			current = &ast.Case{Case: p.curToken.StartPosition, Body: []ast.Stmt{}}
			if p.curTokenIs(token.CASE) {
				p.nextToken()
				current.Test = p.parseExpression(LOWEST)
				if current.Test == nil {
					return nil
				}
			} else if hasDefault {
				p.setTokenError(p.curToken, "multiple default clauses in switch statement")
				return nil
			}
			hasDefault = hasDefault || current.Test == nil
			if !p.expectPeek("switch case", token.COLON) {
				return nil
			}
			current.Colon = p.curToken.StartPosition
			stmt.Cases = append(stmt.Cases, current)
		default:
			if current == nil {
				p.setTokenError(p.curToken, "unexpected %s in switch statement (expected case or default)",
					tokenDescription(p.curToken))
				return nil
			}
			s := p.parseStatementStrict()
			if p.hadNewError() {
				return nil
			}
			if s != nil {
				current.Body = append(current.Body, s)
			}
		}
		p.nextToken()
	}
}

func (p *Parser) parseTry() ast.Stmt {
	stmt := &ast.Try{Try: p.curToken.StartPosition}
	if !p.expectPeek("try statement", token.LBRACE) {
		return nil
	}
	if stmt.Block = p.parseBlock(); stmt.Block == nil {
		return nil
	}
	if p.peekTokenIs(token.CATCH) {
		p.nextToken()
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			if !p.expectPeek("catch clause", token.IDENT) {
				return nil
			}
			stmt.Param = &ast.Ident{NamePos: p.curToken.StartPosition, Name: p.curToken.Literal}
			if !p.expectPeek("catch clause", token.RPAREN) {
				return nil
			}
		}
		if !p.expectPeek("catch clause", token.LBRACE) {
			return nil
		}
		if stmt.Catch = p.parseBlock(); stmt.Catch == nil {
			return nil
		}
	}
	if p.peekTokenIs(token.FINALLY) {
		p.nextToken()
		if !p.expectPeek("finally clause", token.LBRACE) {
			return nil
		}
		if stmt.Finally = p.parseBlock(); stmt.Finally == nil {
			return nil
		}
	}
	if stmt.Catch == nil && stmt.Finally == nil {
		p.setTokenError(p.peekToken, "missing catch or finally after try block")
		return nil
	}
	return stmt
}
