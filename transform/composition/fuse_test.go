package composition

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/jsfuse/ast"
	"github.com/deepnoodle-ai/jsfuse/internal/token"
)

func testRewriter() *rewriter {
	logger := zerolog.Nop()
	return newRewriter(context.Background(), DefaultNames(), &logger, &ast.Program{})
}

// generated parses a function expression and marks it as created by r.
func generated(t *testing.T, r *rewriter, source string) *ast.Func {
	t.Helper()
	program := parse(t, "x = "+source+";")
	fn := program.Stmts[0].(*ast.ExprStmt).X.(*ast.Assign).Value.(*ast.Func)
	r.synthesized[fn] = true
	return fn
}

func TestSpliceIntoLastArgument(t *testing.T) {
	r := testRewriter()
	fn := generated(t, r, "function (_param_9) { return h(a, k(b, _param_9)); }")
	out, ok := r.splice(ast.NewIdent("f"), fn)
	require.True(t, ok)
	require.Equal(t, "function (_param_9) { return h(a, k(b, f(_param_9))); }", out.String())
}

func TestSpliceThroughBlock(t *testing.T) {
	r := testRewriter()
	fn := generated(t, r, "function (p) { { return g(p); } }")
	out, ok := r.splice(ast.NewIdent("f"), fn)
	require.True(t, ok)
	require.Equal(t, "function (p) { { return g(f(p)); } }", out.String())
}

func TestSpliceRefused(t *testing.T) {
	tests := []string{
		"function (p) { return g(1); }",
		"function (p) { return g(); }",
		"function (p) { return p.x; }",
		"function (p) { g(p); }",
		"function (p) { return; }",
	}
	for _, source := range tests {
		t.Run(source, func(t *testing.T) {
			r := testRewriter()
			fn := generated(t, r, source)
			before := fn.String()
			_, ok := r.splice(ast.NewIdent("f"), fn)
			require.False(t, ok)
			require.Equal(t, before, fn.String())
		})
	}
}

func TestComposeFallsBackToLambda(t *testing.T) {
	r := testRewriter()
	second := generated(t, r, "function (q) { return g(1); }")
	out := r.compose(token.NoPos, ast.NewIdent("f"), second)
	require.Equal(t,
		"function (_param_1) { return (function (q) { return g(1); })(f(_param_1)); }",
		out.String())
	require.Equal(t, 1, r.stats.Lambdas)
}

func TestMergeRefusedUnlessParamUsedOnce(t *testing.T) {
	r := testRewriter()
	first := generated(t, r, "function (a) { return f(a); }")

	twice := generated(t, r, "function (b) { return g(b, b); }")
	_, ok := r.merge(first, twice)
	require.False(t, ok)

	never := generated(t, r, "function (b) { return g(1); }")
	_, ok = r.merge(first, never)
	require.False(t, ok)

	once := generated(t, r, "function (b) { var y = h(b); return g(y); }")
	merged, ok := r.merge(first, once)
	require.True(t, ok)
	require.Equal(t, "function (a) { var y = h(f(a)); return g(y); }", merged.String())
}

func TestSubstituteRespectsShadowing(t *testing.T) {
	sub := &substituter{name: "p", value: ast.NewCall(ast.NewIdent("f"), ast.NewIdent("a"))}
	program := parse(t, `
		g(p, function (p) { return p; }, function (q) { return p + q; });
		function h() { var p = 1; return p; }`)
	ast.RewriteChildren(program, sub)
	require.Equal(t,
		"g(f(a), function (p) { return p; }, function (q) { return f(a) + q; }); function h() { var p = 1; return p; }",
		program.String())
}

func TestSubstituteCopiesValue(t *testing.T) {
	value := ast.NewCall(ast.NewIdent("f"), ast.NewIdent("a"))
	sub := &substituter{name: "p", value: value}
	call := ast.NewCall(ast.NewIdent("g"), ast.NewIdent("p"), ast.NewIdent("p"))
	out := sub.RewriteExpr(call).(*ast.Call)
	require.NotSame(t, out.Args[0], out.Args[1])
	require.NotSame(t, value, out.Args[0])
}

func TestWrap(t *testing.T) {
	r := testRewriter()
	fn := generated(t, r, "function (p) { var y = f(p); return g(y); }")
	out, ok := r.wrap(fn, ast.NewIdent("h"))
	require.True(t, ok)
	require.Equal(t, "function (p) { var y = f(p); return h(g(y)); }", out.String())

	_, ok = r.wrap(generated(t, r, "function (p) { g(p); }"), ast.NewIdent("h"))
	require.False(t, ok)
}
