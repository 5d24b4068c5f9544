package ast

// Clone returns a deep copy of node. Positions are preserved.
func Clone[T Node](node T) T {
	return cloneNode(node).(T)
}

func cloneNode(node Node) Node {
	switch n := node.(type) {
	case nil:
		return nil
	case *Program:
		return &Program{Stmts: cloneStmts(n.Stmts)}

	// Statements
	case *VarDecl:
		decls := make([]*Declarator, len(n.Decls))
		for i, d := range n.Decls {
			decls[i] = &Declarator{Name: cloneIdent(d.Name), Value: cloneExpr(d.Value)}
		}
		return &VarDecl{DeclPos: n.DeclPos, Kind: n.Kind, Decls: decls}
	case *Return:
		return &Return{Return: n.Return, Value: cloneExpr(n.Value)}
	case *Block:
		return cloneBlock(n)
	case *ExprStmt:
		return &ExprStmt{X: cloneExpr(n.X)}
	case *If:
		return &If{If: n.If, Cond: cloneExpr(n.Cond), Then: cloneStmt(n.Then), Else: cloneStmt(n.Else)}
	case *While:
		return &While{While: n.While, Cond: cloneExpr(n.Cond), Body: cloneStmt(n.Body)}
	case *Break:
		return &Break{Break: n.Break, Label: cloneIdent(n.Label)}
	case *Continue:
		return &Continue{Continue: n.Continue, Label: cloneIdent(n.Label)}
	case *Throw:
		return &Throw{Throw: n.Throw, Value: cloneExpr(n.Value)}
	case *For:
		return &For{
			For:  n.For,
			Init: cloneStmt(n.Init),
			Cond: cloneExpr(n.Cond),
			Post: cloneExpr(n.Post),
			Body: cloneStmt(n.Body),
		}
	case *ForIn:
		return &ForIn{For: n.For, Init: cloneStmt(n.Init), X: cloneExpr(n.X), Body: cloneStmt(n.Body)}
	case *DoWhile:
		return &DoWhile{Do: n.Do, Body: cloneStmt(n.Body), Cond: cloneExpr(n.Cond)}
	case *Labeled:
		return &Labeled{Label: cloneIdent(n.Label), Colon: n.Colon, Body: cloneStmt(n.Body)}
	case *Switch:
		cases := make([]*Case, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = cloneNode(c).(*Case)
		}
		return &Switch{Switch: n.Switch, Tag: cloneExpr(n.Tag), Cases: cases, Rbrace: n.Rbrace}
	case *Case:
		return &Case{Case: n.Case, Test: cloneExpr(n.Test), Colon: n.Colon, Body: cloneStmts(n.Body)}
	case *Try:
		return &Try{
			Try:     n.Try,
			Block:   cloneBlock(n.Block),
			Param:   cloneIdent(n.Param),
			Catch:   cloneBlock(n.Catch),
			Finally: cloneBlock(n.Finally),
		}
	case *Comment:
		c := *n
		return &c

	// Expressions
	case *Ident:
		return cloneIdent(n)
	case *Number:
		c := *n
		return &c
	case *String:
		c := *n
		return &c
	case *Regexp:
		c := *n
		return &c
	case *Bool:
		c := *n
		return &c
	case *Null:
		c := *n
		return &c
	case *Call:
		return &Call{Fun: cloneExpr(n.Fun), Lparen: n.Lparen, Args: cloneExprs(n.Args), Rparen: n.Rparen}
	case *New:
		return &New{NewPos: n.NewPos, Fun: cloneExpr(n.Fun), Args: cloneExprs(n.Args), Rparen: n.Rparen}
	case *Member:
		return &Member{X: cloneExpr(n.X), Period: n.Period, Sel: cloneIdent(n.Sel)}
	case *Index:
		return &Index{X: cloneExpr(n.X), Lbrack: n.Lbrack, Index: cloneExpr(n.Index), Rbrack: n.Rbrack}
	case *Prefix:
		return &Prefix{OpPos: n.OpPos, Op: n.Op, X: cloneExpr(n.X)}
	case *Infix:
		return &Infix{X: cloneExpr(n.X), OpPos: n.OpPos, Op: n.Op, Y: cloneExpr(n.Y)}
	case *Assign:
		return &Assign{X: cloneExpr(n.X), OpPos: n.OpPos, Op: n.Op, Value: cloneExpr(n.Value)}
	case *Cond:
		return &Cond{
			Cond:     cloneExpr(n.Cond),
			Question: n.Question,
			Then:     cloneExpr(n.Then),
			Colon:    n.Colon,
			Else:     cloneExpr(n.Else),
		}
	case *Update:
		return &Update{OpPos: n.OpPos, Op: n.Op, Prefix: n.Prefix, X: cloneExpr(n.X)}
	case *Sequence:
		return &Sequence{List: cloneExprs(n.List)}
	case *Array:
		return &Array{Lbrack: n.Lbrack, Items: cloneExprs(n.Items), Rbrack: n.Rbrack}
	case *Object:
		props := make([]*Property, len(n.Props))
		for i, prop := range n.Props {
			props[i] = &Property{Key: prop.Key, Value: cloneExpr(prop.Value)}
		}
		return &Object{Lbrace: n.Lbrace, Props: props, Rbrace: n.Rbrace}
	case *Func:
		params := make([]*Ident, len(n.Params))
		for i, param := range n.Params {
			params[i] = cloneIdent(param)
		}
		return &Func{
			Func:   n.Func,
			Name:   cloneIdent(n.Name),
			Lparen: n.Lparen,
			Params: params,
			Rparen: n.Rparen,
			Body:   cloneBlock(n.Body),
		}
	}
	panic("ast: cannot clone unknown node type")
}

func cloneIdent(x *Ident) *Ident {
	if x == nil {
		return nil
	}
	c := *x
	return &c
}

func cloneBlock(b *Block) *Block {
	if b == nil {
		return nil
	}
	return &Block{Lbrace: b.Lbrace, Stmts: cloneStmts(b.Stmts), Rbrace: b.Rbrace}
}

func cloneExpr(x Expr) Expr {
	if x == nil {
		return nil
	}
	return cloneNode(x).(Expr)
}

func cloneStmt(s Stmt) Stmt {
	if s == nil {
		return nil
	}
	return cloneNode(s).(Stmt)
}

func cloneExprs(exprs []Expr) []Expr {
	if exprs == nil {
		return nil
	}
	out := make([]Expr, len(exprs))
	for i, x := range exprs {
		out[i] = cloneExpr(x)
	}
	return out
}

func cloneStmts(stmts []Stmt) []Stmt {
	if stmts == nil {
		return nil
	}
	out := make([]Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = cloneStmt(s)
	}
	return out
}
