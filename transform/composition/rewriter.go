package composition

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/jsfuse/ast"
	"github.com/deepnoodle-ai/jsfuse/errz"
	"github.com/deepnoodle-ai/jsfuse/internal/token"
)

// rewriter holds the state of one run. It implements ast.Rewriter and visits
// the tree post-order, so composition sites nested inside an operand are
// rewritten before the site that contains them.
type rewriter struct {
	ctx   context.Context
	names Names
	log   *zerolog.Logger

	paramCount int
	declCount  int

	// taken holds every identifier in the input plus every generated name.
	taken map[string]bool

	scopes []*hoistScope

	// synthesized marks lambdas created by this run. Only these may be
	// merged, spliced into or wrapped; each is referenced from exactly one
	// place in the tree.
	synthesized map[*ast.Func]bool

	stats Stats
	err   error
}

func newRewriter(ctx context.Context, names Names, logger *zerolog.Logger, program *ast.Program) *rewriter {
	r := &rewriter{
		ctx:         ctx,
		names:       names,
		log:         logger,
		paramCount:  1,
		declCount:   1,
		taken:       map[string]bool{},
		synthesized: map[*ast.Func]bool{},
	}
	ast.Inspect(program, func(node ast.Node) bool {
		if ident, ok := node.(*ast.Ident); ok {
			r.taken[ident.Name] = true
		}
		return true
	})
	return r
}

// freshName returns the next unused "<prefix>_<n>" identifier.
func (r *rewriter) freshName(prefix string, counter *int) *ast.Ident {
	for {
		name := fmt.Sprintf("%s_%d", prefix, *counter)
		*counter++
		if !r.taken[name] {
			r.taken[name] = true
			return ast.NewIdent(name)
		}
	}
}

func (r *rewriter) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// RewriteStmt implements ast.Rewriter.
func (r *rewriter) RewriteStmt(s ast.Stmt) []ast.Stmt {
	if r.err != nil {
		return []ast.Stmt{s}
	}
	if err := r.ctx.Err(); err != nil {
		r.fail(err)
		return []ast.Stmt{s}
	}
	switch s := s.(type) {
	case *ast.VarDecl:
		r.rewriteVarDecl(s)
	case *ast.Return:
		return r.rewriteReturn(s)
	case *ast.Func:
		r.rewriteFunc(s)
	case *ast.For:
		r.rewriteFor(s)
	default:
		ast.RewriteChildren(s, r)
	}
	return []ast.Stmt{s}
}

// rewriteVarDecl gives each declarator its own scope. Hoisted bindings are
// declared in the same list immediately before the declarator that needed
// them, which keeps the list's left-to-right evaluation order.
func (r *rewriter) rewriteVarDecl(decl *ast.VarDecl) {
	decls := make([]*ast.Declarator, 0, len(decl.Decls))
	for _, d := range decl.Decls {
		if d.Value != nil {
			r.pushScope(statementScope)
			d.Value = r.RewriteExpr(d.Value)
			decls = append(decls, declarators(r.popScope())...)
		}
		decls = append(decls, d)
	}
	decl.Decls = decls
}

// rewriteReturn turns "return x" into "var _decl_1 = ...; return x" when
// operands of x were hoisted.
func (r *rewriter) rewriteReturn(ret *ast.Return) []ast.Stmt {
	if ret.Value == nil {
		return []ast.Stmt{ret}
	}
	r.pushScope(statementScope)
	ret.Value = r.RewriteExpr(ret.Value)
	bindings := r.popScope()
	if len(bindings) == 0 {
		return []ast.Stmt{ret}
	}
	decl := ast.NewVarDecl("var", declarators(bindings)...)
	decl.DeclPos = ret.Return
	return []ast.Stmt{decl, ret}
}

// rewriteFor treats a declaration list in the initializer like any other,
// since it runs once before the loop. The test and update clauses run once
// per iteration and accept no bindings.
func (r *rewriter) rewriteFor(loop *ast.For) {
	switch init := loop.Init.(type) {
	case *ast.VarDecl:
		r.rewriteVarDecl(init)
	case *ast.ExprStmt:
		init.X = r.RewriteExpr(init.X)
	}
	r.withBarrier(branchScope, func() {
		if loop.Cond != nil {
			loop.Cond = r.RewriteExpr(loop.Cond)
		}
		if loop.Post != nil {
			loop.Post = r.RewriteExpr(loop.Post)
		}
	})
	loop.Body = ast.RewriteBody(loop.Body, r)
}

func (r *rewriter) rewriteFunc(fn *ast.Func) {
	r.withBarrier(functionScope, func() {
		ast.RewriteChildren(fn, r)
	})
}

// RewriteExpr implements ast.Rewriter.
func (r *rewriter) RewriteExpr(x ast.Expr) ast.Expr {
	if r.err != nil {
		return x
	}
	switch x := x.(type) {
	case *ast.Func:
		r.rewriteFunc(x)
		return x
	case *ast.Cond:
		x.Cond = r.RewriteExpr(x.Cond)
		r.withBarrier(branchScope, func() {
			x.Then = r.RewriteExpr(x.Then)
			x.Else = r.RewriteExpr(x.Else)
		})
		return x
	case *ast.Infix:
		if x.Op == "&&" || x.Op == "||" {
			x.X = r.RewriteExpr(x.X)
			r.withBarrier(branchScope, func() {
				x.Y = r.RewriteExpr(x.Y)
			})
			return x
		}
	case *ast.Call:
		sealed := r.sealed()
		ast.RewriteChildren(x, r)
		if r.err != nil {
			return x
		}
		out := r.rewriteCall(x, sealed)
		if _, ok := r.synthesizedFunc(out); ok {
			r.restoreSeal(sealed)
		} else {
			r.seal()
		}
		return out
	case *ast.New, *ast.Assign, *ast.Update:
		ast.RewriteChildren(x, r)
		r.seal()
		return x
	case *ast.Prefix:
		ast.RewriteChildren(x, r)
		if x.Op == "delete" {
			r.seal()
		}
		return x
	}
	ast.RewriteChildren(x, r)
	return x
}

// rewriteCall replaces a composition site. Any other call is returned as is.
// sealed reports whether an in-place side effect preceded the site within
// the current statement.
func (r *rewriter) rewriteCall(call *ast.Call, sealed bool) ast.Expr {
	callee, compose, ok := r.names.site(call)
	if !ok {
		return call
	}
	arity := 2
	if callee == r.names.Apply3 {
		arity = 3
	}
	if len(call.Args) != arity+1 {
		r.fail(errz.New(errz.ErrMalformed, errz.Location(call.Pos(), ""),
			"%s(%s, ...) requires %d arguments, found %d",
			callee, compose, arity+1, len(call.Args)))
		return call
	}

	left, right := call.Args[1], call.Args[2]
	if (r.needsHoist(left) || r.needsHoist(right)) && (!r.canHoist() || sealed) {
		r.stats.Skipped++
		r.logSite(call.Pos(), "skipped")
		return call
	}
	// Operands are bound in argument order, then put in application order.
	left = r.extractToVariableIfNecessary(left)
	right = r.extractToVariableIfNecessary(right)
	first, second := left, right
	if compose == r.names.ComposeLeft {
		first, second = right, left
	}

	if arity == 3 {
		r.stats.DirectCalls++
		r.logSite(call.Pos(), "direct")
		return ast.NewCall(second, ast.NewCall(first, call.Args[3]))
	}
	return r.compose(call.Pos(), first, second)
}

// compose builds the function x => second(first(x)), reusing generated
// lambdas among the operands where possible.
func (r *rewriter) compose(pos token.Position, first, second ast.Expr) ast.Expr {
	firstFn, firstOK := r.synthesizedFunc(first)
	secondFn, secondOK := r.synthesizedFunc(second)
	switch {
	case firstOK && secondOK:
		if merged, ok := r.merge(firstFn, secondFn); ok {
			r.stats.Merges++
			r.logSite(pos, "merge")
			return merged
		}
	case secondOK:
		if spliced, ok := r.splice(first, secondFn); ok {
			r.stats.Splices++
			r.logSite(pos, "splice")
			return spliced
		}
	case firstOK:
		if wrapped, ok := r.wrap(firstFn, second); ok {
			r.stats.Wraps++
			r.logSite(pos, "wrap")
			return wrapped
		}
	}
	r.stats.Lambdas++
	r.logSite(pos, "lambda")
	return r.createLambda(first, second)
}

func (r *rewriter) synthesizedFunc(x ast.Expr) (*ast.Func, bool) {
	fn, ok := x.(*ast.Func)
	if !ok || !r.synthesized[fn] {
		return nil, false
	}
	return fn, true
}

// createLambda returns function (_param_N) { return second(first(_param_N)); }.
func (r *rewriter) createLambda(first, second ast.Expr) *ast.Func {
	param := r.freshName(r.names.ParamPrefix, &r.paramCount)
	body := ast.NewBlock(ast.NewReturn(
		ast.NewCall(second, ast.NewCall(first, ast.NewIdent(param.Name))),
	))
	fn := ast.NewFunc([]*ast.Ident{param}, body)
	r.synthesized[fn] = true
	return fn
}

func (r *rewriter) logSite(pos token.Position, strategy string) {
	event := r.log.Debug().Str("strategy", strategy)
	if pos.IsValid() {
		event = event.Int("line", pos.LineNumber()).Int("column", pos.ColumnNumber())
	}
	event.Msg("composition site")
}
