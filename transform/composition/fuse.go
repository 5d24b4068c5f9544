package composition

import "github.com/deepnoodle-ai/jsfuse/ast"

// merge fuses two generated lambdas into first. The result has first's
// parameter and the body
//
//	<first's leading statements>
//	<second's leading statements>
//	return <second's result>
//
// where second's parameter is replaced by first's result. Second must
// reference its parameter exactly once so that first's result is evaluated
// exactly once.
func (r *rewriter) merge(first, second *ast.Func) (*ast.Func, bool) {
	if len(first.Params) != 1 || len(second.Params) != 1 {
		return nil, false
	}
	if countRefs(second.Body, second.Params[0].Name) != 1 {
		return nil, false
	}
	firstResult, ok := first.ReturnValue()
	if !ok {
		return nil, false
	}
	secondResult, ok := second.ReturnValue()
	if !ok {
		return nil, false
	}
	sub := &substituter{name: second.Params[0].Name, value: firstResult}

	firstStmts := first.Body.Stmts
	secondStmts := second.Body.Stmts
	stmts := make([]ast.Stmt, 0, len(firstStmts)+len(secondStmts)-1)
	stmts = append(stmts, firstStmts[:len(firstStmts)-1]...)
	for _, s := range secondStmts[:len(secondStmts)-1] {
		stmts = append(stmts, sub.RewriteStmt(s)...)
	}
	stmts = append(stmts, ast.NewReturn(sub.RewriteExpr(secondResult)))
	first.Body.Stmts = stmts
	return first, true
}

// substituter replaces references to a name with copies of an expression.
// Functions that declare the name are left alone.
type substituter struct {
	name  string
	value ast.Expr
}

func (s *substituter) RewriteExpr(x ast.Expr) ast.Expr {
	switch x := x.(type) {
	case *ast.Ident:
		if x.Name == s.name {
			return ast.Clone(s.value)
		}
		return x
	case *ast.Func:
		if shadows(x, s.name) {
			return x
		}
	}
	ast.RewriteChildren(x, s)
	return x
}

func (s *substituter) RewriteStmt(stmt ast.Stmt) []ast.Stmt {
	if fn, ok := stmt.(*ast.Func); ok && shadows(fn, s.name) {
		return []ast.Stmt{stmt}
	}
	ast.RewriteChildren(stmt, s)
	return []ast.Stmt{stmt}
}

// shadows reports whether fn binds name as its own name, a parameter or a
// variable declared in its body.
func shadows(fn *ast.Func, name string) bool {
	if fn.Name != nil && fn.Name.Name == name {
		return true
	}
	for _, param := range fn.Params {
		if param.Name == name {
			return true
		}
	}
	if fn.Body == nil {
		return false
	}
	found := false
	ast.Inspect(fn.Body, func(node ast.Node) bool {
		if found {
			return false
		}
		switch n := node.(type) {
		case *ast.Func:
			// Nested functions have their own scope, but a named
			// declaration binds its name in the enclosing one.
			if n.Name != nil && n.Name.Name == name {
				found = true
			}
			return false
		case *ast.VarDecl:
			for _, d := range n.Decls {
				if d.Name.Name == name {
					found = true
				}
			}
		}
		return true
	})
	return found
}

// countRefs counts the identifiers in node that refer to name.
func countRefs(node ast.Node, name string) int {
	count := 0
	ast.Inspect(node, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Ident:
			if n.Name == name {
				count++
			}
		case *ast.Func:
			return !shadows(n, name)
		}
		return true
	})
	return count
}

// splice pushes a call to first into the tail of the generated lambda fn,
// so that function (p) { return h(a, g(p)); } becomes
// function (p) { return h(a, g(first(p))); }. It fails if the tail is not
// fn's own parameter, and fn is left unchanged in that case.
func (r *rewriter) splice(first ast.Expr, fn *ast.Func) (*ast.Func, bool) {
	if len(fn.Params) != 1 {
		return nil, false
	}
	set, param, ok := r.tailOfBody(fn.Body, fn.Params[0].Name)
	if !ok {
		return nil, false
	}
	set(ast.NewCall(first, param))
	return fn, true
}

// tailOfBody finds the tail position of a body: the value of its final
// return statement, looking through trailing blocks.
func (r *rewriter) tailOfBody(body *ast.Block, param string) (func(ast.Expr), *ast.Ident, bool) {
	if body == nil || len(body.Stmts) == 0 {
		return nil, nil, false
	}
	switch s := body.Stmts[len(body.Stmts)-1].(type) {
	case *ast.Return:
		if s.Value == nil {
			return nil, nil, false
		}
		return r.tailOfExpr(s.Value, func(x ast.Expr) { s.Value = x }, param)
	case *ast.Block:
		return r.tailOfBody(s, param)
	}
	return nil, nil, false
}

// tailOfExpr follows x to its tail: the last argument of a call, or the
// body of a nested generated lambda. The tail must be a reference to param.
// set replaces x in its parent.
func (r *rewriter) tailOfExpr(x ast.Expr, set func(ast.Expr), param string) (func(ast.Expr), *ast.Ident, bool) {
	switch x := x.(type) {
	case *ast.Ident:
		if x.Name == param {
			return set, x, true
		}
	case *ast.Call:
		if len(x.Args) > 0 {
			last := len(x.Args) - 1
			return r.tailOfExpr(x.Args[last], func(v ast.Expr) { x.Args[last] = v }, param)
		}
	case *ast.Func:
		if r.synthesized[x] {
			return r.tailOfBody(x.Body, param)
		}
	}
	return nil, nil, false
}

// wrap applies second to the result of the generated lambda fn, turning
// function (p) { return g(p); } into function (p) { return second(g(p)); }.
func (r *rewriter) wrap(fn *ast.Func, second ast.Expr) (*ast.Func, bool) {
	if fn.Body == nil || len(fn.Body.Stmts) == 0 {
		return nil, false
	}
	ret, ok := fn.Body.Stmts[len(fn.Body.Stmts)-1].(*ast.Return)
	if !ok || ret.Value == nil {
		return nil, false
	}
	ret.Value = ast.NewCall(second, ret.Value)
	return fn, true
}
