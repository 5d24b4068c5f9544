package ast

// Rewriter supplies replacement nodes to RewriteChildren.
type Rewriter interface {
	// RewriteExpr returns the expression that replaces x.
	RewriteExpr(x Expr) Expr

	// RewriteStmt returns the statements that replace s. Returning several
	// statements splices them into the enclosing statement list; an empty
	// result removes s.
	RewriteStmt(s Stmt) []Stmt
}

// RewriteChildren replaces every direct child of node with the result of
// the Rewriter, in source order, modifying node in place. Declared names,
// function parameters, labels, catch bindings and member selectors are not
// references and are not offered to the Rewriter.
func RewriteChildren(node Node, r Rewriter) {
	switch n := node.(type) {
	case *Program:
		n.Stmts = rewriteStmts(n.Stmts, r)

	// Statements
	case *VarDecl:
		for _, d := range n.Decls {
			if d.Value != nil {
				d.Value = r.RewriteExpr(d.Value)
			}
		}
	case *Return:
		if n.Value != nil {
			n.Value = r.RewriteExpr(n.Value)
		}
	case *Block:
		n.Stmts = rewriteStmts(n.Stmts, r)
	case *ExprStmt:
		n.X = r.RewriteExpr(n.X)
	case *If:
		n.Cond = r.RewriteExpr(n.Cond)
		n.Then = RewriteBody(n.Then, r)
		if n.Else != nil {
			n.Else = RewriteBody(n.Else, r)
		}
	case *While:
		n.Cond = r.RewriteExpr(n.Cond)
		n.Body = RewriteBody(n.Body, r)
	case *Throw:
		n.Value = r.RewriteExpr(n.Value)
	case *For:
		if n.Init != nil {
			n.Init = RewriteBody(n.Init, r)
		}
		if n.Cond != nil {
			n.Cond = r.RewriteExpr(n.Cond)
		}
		if n.Post != nil {
			n.Post = r.RewriteExpr(n.Post)
		}
		n.Body = RewriteBody(n.Body, r)
	case *ForIn:
		n.Init = RewriteBody(n.Init, r)
		n.X = r.RewriteExpr(n.X)
		n.Body = RewriteBody(n.Body, r)
	case *DoWhile:
		n.Body = RewriteBody(n.Body, r)
		n.Cond = r.RewriteExpr(n.Cond)
	case *Labeled:
		n.Body = RewriteBody(n.Body, r)
	case *Switch:
		n.Tag = r.RewriteExpr(n.Tag)
		for _, c := range n.Cases {
			RewriteChildren(c, r)
		}
	case *Case:
		if n.Test != nil {
			n.Test = r.RewriteExpr(n.Test)
		}
		n.Body = rewriteStmts(n.Body, r)
	case *Try:
		n.Block.Stmts = rewriteStmts(n.Block.Stmts, r)
		if n.Catch != nil {
			n.Catch.Stmts = rewriteStmts(n.Catch.Stmts, r)
		}
		if n.Finally != nil {
			n.Finally.Stmts = rewriteStmts(n.Finally.Stmts, r)
		}

	// Expressions
	case *Call:
		n.Fun = r.RewriteExpr(n.Fun)
		rewriteExprs(n.Args, r)
	case *New:
		n.Fun = r.RewriteExpr(n.Fun)
		rewriteExprs(n.Args, r)
	case *Member:
		n.X = r.RewriteExpr(n.X)
	case *Index:
		n.X = r.RewriteExpr(n.X)
		n.Index = r.RewriteExpr(n.Index)
	case *Prefix:
		n.X = r.RewriteExpr(n.X)
	case *Infix:
		n.X = r.RewriteExpr(n.X)
		n.Y = r.RewriteExpr(n.Y)
	case *Assign:
		n.X = r.RewriteExpr(n.X)
		n.Value = r.RewriteExpr(n.Value)
	case *Cond:
		n.Cond = r.RewriteExpr(n.Cond)
		n.Then = r.RewriteExpr(n.Then)
		n.Else = r.RewriteExpr(n.Else)
	case *Update:
		n.X = r.RewriteExpr(n.X)
	case *Sequence:
		rewriteExprs(n.List, r)
	case *Array:
		rewriteExprs(n.Items, r)
	case *Object:
		for _, prop := range n.Props {
			prop.Value = r.RewriteExpr(prop.Value)
		}
	case *Func:
		if n.Body != nil {
			n.Body.Stmts = rewriteStmts(n.Body.Stmts, r)
		}
	}
}

func rewriteExprs(exprs []Expr, r Rewriter) {
	for i, x := range exprs {
		exprs[i] = r.RewriteExpr(x)
	}
}

func rewriteStmts(stmts []Stmt, r Rewriter) []Stmt {
	out := make([]Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, r.RewriteStmt(s)...)
	}
	return out
}

// RewriteBody rewrites a statement that occupies a single-statement slot,
// wrapping multiple replacements in a block.
func RewriteBody(s Stmt, r Rewriter) Stmt {
	out := r.RewriteStmt(s)
	if len(out) == 1 {
		return out[0]
	}
	return &Block{Stmts: out}
}
