package composition

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/jsfuse/ast"
	"github.com/deepnoodle-ai/jsfuse/errz"
	"github.com/deepnoodle-ai/jsfuse/parser"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, err := parser.Parse(context.Background(), input)
	require.NoError(t, err)
	return program
}

// normalize formats source so that expectations are whitespace-insensitive.
func normalize(t *testing.T, source string) string {
	t.Helper()
	return ast.Format(parse(t, source))
}

func run(t *testing.T, input string, opts ...Option) (string, Stats) {
	t.Helper()
	out, stats, err := New(opts...).Run(context.Background(), parse(t, input))
	require.NoError(t, err)
	return ast.Format(out), stats
}

func requireTransform(t *testing.T, input, expected string) {
	t.Helper()
	actual, _ := run(t, input)
	require.Equal(t, normalize(t, expected), actual)
}

func TestComposeRight(t *testing.T) {
	requireTransform(t,
		`var fn = A2($elm$core$Basics$composeR, f1, f2);`,
		`var fn = function (_param_1) { return f2(f1(_param_1)); };`)
}

func TestComposeLeft(t *testing.T) {
	requireTransform(t,
		`var fn = A2($elm$core$Basics$composeL, f1, f2);`,
		`var fn = function (_param_1) { return f1(f2(_param_1)); };`)
}

func TestNestedCompositionFlattens(t *testing.T) {
	expected := `var fn = function (_param_1) { return f3(f2(f1(_param_1))); };`
	tests := []struct {
		name  string
		input string
	}{
		{
			"right nested composeR",
			`var fn = A2($elm$core$Basics$composeR, f1, A2($elm$core$Basics$composeR, f2, f3));`,
		},
		{
			"left nested composeR",
			`var fn = A2($elm$core$Basics$composeR, A2($elm$core$Basics$composeR, f1, f2), f3);`,
		},
		{
			"left nested composeL",
			`var fn = A2(
				$elm$core$Basics$composeL,
				A2($elm$core$Basics$composeL, f3, f2),
				f1);`,
		},
		{
			"right nested composeL",
			`var fn = A2($elm$core$Basics$composeL, f3, A2($elm$core$Basics$composeL, f2, f1));`,
		},
		{
			"mixed",
			`var fn = A2($elm$core$Basics$composeR, f1, A2($elm$core$Basics$composeL, f3, f2));`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireTransform(t, tt.input, expected)
		})
	}
}

func TestMergeTwoGeneratedLambdas(t *testing.T) {
	actual, stats := run(t, `var fn = A2(
		$elm$core$Basics$composeR,
		A2($elm$core$Basics$composeR, f1, f2),
		A2($elm$core$Basics$composeR, f3, f4));`)
	require.Equal(t, normalize(t,
		`var fn = function (_param_1) { return f4(f3(f2(f1(_param_1)))); };`), actual)
	require.Equal(t, 1, stats.Merges)
	require.Equal(t, 2, stats.Lambdas)
}

func TestDistinctNamesForNestedLambdas(t *testing.T) {
	// f >> List.map (g >> h)
	requireTransform(t,
		`var fn = A2(
			$elm$core$Basics$composeR,
			f1,
			$elm$core$List$map(
				A2($elm$core$Basics$composeR, f2, f3)));`,
		`var _decl_1 = $elm$core$List$map(function (_param_1) { return f3(f2(_param_1)); }),
			fn = function (_param_2) { return _decl_1(f1(_param_2)); };`)
}

func TestThreeArgumentForm(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			`var x = A3($elm$core$Basics$composeR, f, g, v);`,
			`var x = g(f(v));`,
		},
		{
			`var x = A3($elm$core$Basics$composeL, f, g, v);`,
			`var x = f(g(v));`,
		},
		{
			`var x = A3($elm$core$Basics$composeR, f, g, h(v));`,
			`var x = g(f(h(v)));`,
		},
		{
			`var x = A3($elm$core$Basics$composeR, A2($elm$core$Basics$composeR, f, g), h, v);`,
			`var x = h(function (_param_1) { return g(f(_param_1)); }(v));`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			actual, stats := run(t, tt.input)
			require.Equal(t, normalize(t, tt.expected), actual)
			require.Equal(t, 0, stats.Hoisted)
			require.Equal(t, 1, stats.DirectCalls)
		})
	}
}

func TestHoistBeforeReturn(t *testing.T) {
	actual, stats := run(t, `
		function run(xs) {
			return A2($elm$core$Basics$composeR, f, g(xs));
		}`)
	require.Equal(t, normalize(t, `
		function run(xs) {
			var _decl_1 = g(xs);
			return function (_param_1) { return _decl_1(f(_param_1)); };
		}`), actual)
	require.Equal(t, 1, stats.Hoisted)
}

func TestHoistInsideNestedReturn(t *testing.T) {
	requireTransform(t, `
		function f() {
			if (ready) return A2($elm$core$Basics$composeR, A2($elm$core$Basics$composeR, a, b()), c);
			return null;
		}`, `
		function f() {
			if (ready) {
				var _decl_1 = b();
				return function (_param_1) { return c(_decl_1(a(_param_1))); };
			}
			return null;
		}`)
}

func TestHoistFunctionLiteral(t *testing.T) {
	requireTransform(t,
		`var fn = A2($elm$core$Basics$composeR, function (x) { return x + 1; }, f);`,
		`var _decl_1 = function (x) { return x + 1; },
			fn = function (_param_1) { return f(_decl_1(_param_1)); };`)
}

func TestHoistConstructorCall(t *testing.T) {
	requireTransform(t,
		`var fn = A2($elm$core$Basics$composeR, new Parser(opts), f);`,
		`var _decl_1 = new Parser(opts),
			fn = function (_param_1) { return f(_decl_1(_param_1)); };`)
}

func TestHoistInArgumentOrder(t *testing.T) {
	requireTransform(t,
		`var fn = A2($elm$core$Basics$composeL, a(), b());`,
		`var _decl_1 = a(), _decl_2 = b(),
			fn = function (_param_1) { return _decl_1(_decl_2(_param_1)); };`)
}

func TestHoistKeepsDeclaratorOrder(t *testing.T) {
	requireTransform(t,
		`let x = init(), fn = A2($elm$core$Basics$composeR, f, g()), y = 2;`,
		`let x = init(), _decl_1 = g(),
			fn = function (_param_1) { return _decl_1(f(_param_1)); }, y = 2;`)
}

func TestHoistingBarriers(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"function body", `var fn = function (x) { log(A2($elm$core$Basics$composeR, f, g(x))); };`},
		{"top level", `A2($elm$core$Basics$composeR, f, g());`},
		{"conditional", `var fn = ok ? A2($elm$core$Basics$composeR, f, g()) : h;`},
		{"logical", `var fn = ok && A2($elm$core$Basics$composeR, f, g());`},
		{"while condition", `function loop() { while (A3($elm$core$Basics$composeR, f, g(), x)) {} }`},
		{"for condition", `function loop() { for (var i = 0; A3($elm$core$Basics$composeR, f, g(), i); i++) {} }`},
		{"call before site", `var x = log("a") + A2($elm$core$Basics$composeR, f, mk("b"))(1);`},
		{"earlier argument", `function run() { return h(log("a"), A2($elm$core$Basics$composeR, f, mk("b"))); }`},
		{"assignment before site", `var x = [y = 1, A2($elm$core$Basics$composeR, f, g())];`},
		{"constructor before site", `var x = h(new Log(), A2($elm$core$Basics$composeR, f, g()));`},
		{"update before site", `var x = [i++, A2($elm$core$Basics$composeR, f, g())];`},
		{"effect in earlier branch", `var x = [ok ? log() : 0, A2($elm$core$Basics$composeR, f, g())];`},
		{"property read in function body", `var fn = function () { log(A2($elm$core$Basics$composeR, a.b, g)); };`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, stats := run(t, tt.input)
			require.Equal(t, normalize(t, tt.input), actual)
			require.Equal(t, 1, stats.Skipped)
			require.Equal(t, 0, stats.Rewrites())
		})
	}
}

func TestEffectsAfterSiteKeepHoisting(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"later argument",
			`var x = A2($elm$core$Basics$composeR, f, mk("b"))(log("a"));`,
			`var _decl_1 = mk("b"), x = (function (_param_1) { return _decl_1(f(_param_1)); })(log("a"));`,
		},
		{
			"sibling sites",
			`var x = h(A2($elm$core$Basics$composeR, f, mk()), A2($elm$core$Basics$composeR, g, mk2()));`,
			`var _decl_1 = mk(), _decl_2 = mk2(),
				x = h(function (_param_1) { return _decl_1(f(_param_1)); },
					function (_param_2) { return _decl_2(g(_param_2)); });`,
		},
		{
			"effect inside operand",
			`var fn = A2($elm$core$Basics$composeR, f, ok ? g() : h);`,
			`var _decl_1 = ok ? g() : h, fn = function (_param_1) { return _decl_1(f(_param_1)); };`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, stats := run(t, tt.input)
			require.Equal(t, normalize(t, tt.expected), actual)
			require.Equal(t, 0, stats.Skipped)
		})
	}
}

func TestOperandHoisting(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"property read",
			`var fn = A2($elm$core$Basics$composeR, a.b, g);`,
			`var _decl_1 = a.b, fn = function (_param_1) { return g(_decl_1(_param_1)); };`,
		},
		{
			"index read",
			`var fn = A2($elm$core$Basics$composeL, fs[0], g);`,
			`var _decl_1 = fs[0], fn = function (_param_1) { return _decl_1(g(_param_1)); };`,
		},
		{
			"pure conditional",
			`var fn = A2($elm$core$Basics$composeR, f, ok ? g : h);`,
			`var fn = function (_param_1) { return (ok ? g : h)(f(_param_1)); };`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireTransform(t, tt.input, tt.expected)
		})
	}
}

func TestRewriteInsideStatements(t *testing.T) {
	requireTransform(t, `
		var update = function (msg, model) {
			loop: while (true) {
				switch (msg.$) {
					case 'Map':
						return A2($elm$core$Basics$composeR, f, g(model));
					default:
						continue loop;
				}
			}
		};
		for (var fn = A2($elm$core$Basics$composeR, f, g()), i = 0; i < n; i++) {
			fn(i);
		}
		try {
			var h = A2($elm$core$Basics$composeL, f, k());
		} catch (e) {
			throw e;
		}`, `
		var update = function (msg, model) {
			loop: while (true) {
				switch (msg.$) {
					case 'Map':
						var _decl_1 = g(model);
						return function (_param_1) { return _decl_1(f(_param_1)); };
					default:
						continue loop;
				}
			}
		};
		for (var _decl_2 = g(), fn = function (_param_2) { return _decl_2(f(_param_2)); }, i = 0; i < n; i++) {
			fn(i);
		}
		try {
			var _decl_3 = k(), h = function (_param_3) { return f(_decl_3(_param_3)); };
		} catch (e) {
			throw e;
		}`)
}

func TestRewriteWithoutHoisting(t *testing.T) {
	requireTransform(t,
		`var fn = function (x) { log(A2($elm$core$Basics$composeR, f, g)); };
		 A2($elm$core$Basics$composeL, f, g);
		 var h = ok ? A2($elm$core$Basics$composeR, f, g) : id;`,
		`var fn = function (x) { log(function (_param_1) { return g(f(_param_1)); }); };
		 (function (_param_2) { return f(g(_param_2)); });
		 var h = ok ? function (_param_3) { return g(f(_param_3)); } : id;`)
}

func TestUnrelatedCodeUnchanged(t *testing.T) {
	input := `
		var $author$project$Main$view = function (model) {
			var x = A2($elm$core$List$map, f, model.items);
			return A3(F3(function (a, b, c) { return a + b * c; }), 1, 2, 3);
		};
		A2();
		A2(notCompose, f, g);
		A3(x.y, f, g, h);
		while (i < 10) { i += 1; if (i === 5) { break; } }
		throw new Error("done");`
	actual, stats := run(t, input)
	require.Equal(t, normalize(t, input), actual)
	require.Equal(t, Stats{}, stats)
}

func TestMalformedComposition(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		{
			`var fn = A2($elm$core$Basics$composeR, f);`,
			"malformed input: A2($elm$core$Basics$composeR, ...) requires 3 arguments, found 2 (1:10)",
		},
		{
			`var fn = A2($elm$core$Basics$composeL, f, g, h);`,
			"malformed input: A2($elm$core$Basics$composeL, ...) requires 3 arguments, found 4 (1:10)",
		},
		{
			"var ok = 1;\nvar x = A3($elm$core$Basics$composeR, f, g);",
			"malformed input: A3($elm$core$Basics$composeR, ...) requires 4 arguments, found 3 (2:9)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, _, err := New().Run(context.Background(), parse(t, tt.input))
			require.Error(t, err)
			require.True(t, errz.IsKind(err, errz.ErrMalformed))
			require.Equal(t, tt.err, err.Error())
		})
	}
}

func TestGeneratedNamesAreUnique(t *testing.T) {
	input := `
		var a = A2($elm$core$Basics$composeR, f(), g);
		var b = A2($elm$core$Basics$composeL, h, A2($elm$core$Basics$composeR, i, j()));
		function k() { return A2($elm$core$Basics$composeR, l(), m()); }`
	actual, stats := run(t, input)
	require.Equal(t, 3, stats.Lambdas)
	require.Equal(t, 1, stats.Wraps)
	require.Equal(t, 4, stats.Hoisted)

	declared := map[string]int{}
	ast.Inspect(parse(t, actual), func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.VarDecl:
			for _, d := range n.Decls {
				declared[d.Name.Name]++
			}
		case *ast.Func:
			for _, p := range n.Params {
				declared[p.Name]++
			}
		}
		return true
	})
	generated := 0
	for name, count := range declared {
		if strings.HasPrefix(name, "_param_") || strings.HasPrefix(name, "_decl_") {
			generated++
			assert.Equal(t, 1, count, name)
		}
	}
	require.Equal(t, 7, generated)
}

func TestGeneratedNamesSkipExistingIdentifiers(t *testing.T) {
	requireTransform(t,
		`var _param_1 = 0, _decl_1 = 1;
		 var fn = A2($elm$core$Basics$composeR, f, g());`,
		`var _param_1 = 0, _decl_1 = 1;
		 var _decl_2 = g(), fn = function (_param_2) { return _decl_2(f(_param_2)); };`)
}

func TestInputNotMutated(t *testing.T) {
	program := parse(t, `
		var fn = A2($elm$core$Basics$composeR, f1, A2($elm$core$Basics$composeR, f2, g()));
		function run() { return A2($elm$core$Basics$composeL, a(), b); }`)
	before := ast.Format(program)
	out, _, err := New().Run(context.Background(), program)
	require.NoError(t, err)
	require.Equal(t, before, ast.Format(program))
	require.NotEqual(t, before, ast.Format(out))
}

func TestRunTwice(t *testing.T) {
	first, _ := run(t, `var fn = A2($elm$core$Basics$composeR, f, g());`)
	second, stats := run(t, first)
	require.Equal(t, first, second)
	require.Equal(t, Stats{}, stats)
}

func TestCustomNames(t *testing.T) {
	names := Names{
		Apply2:       "F2",
		Apply3:       "F3",
		ComposeLeft:  "compose",
		ComposeRight: "pipe",
		ParamPrefix:  "$p",
		DeclPrefix:   "$d",
	}
	actual, _ := run(t,
		`var a = F2(pipe, f, g()); var b = A2($elm$core$Basics$composeR, f, g);`,
		WithNames(names))
	require.Equal(t, normalize(t,
		`var $d_1 = g(), a = function ($p_1) { return $d_1(f($p_1)); };
		 var b = A2($elm$core$Basics$composeR, f, g);`), actual)
}

func TestInvalidNames(t *testing.T) {
	names := DefaultNames()
	names.ComposeLeft = names.ComposeRight
	_, _, err := New(WithNames(names)).Run(context.Background(), parse(t, "x;"))
	require.True(t, errz.IsKind(err, errz.ErrConfig))
}

func TestTransformReportsStats(t *testing.T) {
	var got Stats
	pass := New(WithStatsFunc(func(s Stats) { got = s }))
	require.Equal(t, Name, pass.Name())

	_, err := pass.Transform(context.Background(), parse(t,
		`var fn = A2($elm$core$Basics$composeR, f1, A2($elm$core$Basics$composeR, f2, f3));`))
	require.NoError(t, err)
	require.Equal(t, Stats{Lambdas: 1, Splices: 1}, got)
	require.Equal(t, 2, got.Rewrites())
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := New().Run(ctx, parse(t, "x;"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	_, _, err := New().Run(ctx, parse(t, `var fn = A2($elm$core$Basics$composeR, f1, f2);`))
	require.NoError(t, err)
	logs := buf.String()
	require.Contains(t, logs, `"strategy":"lambda"`)
	require.Contains(t, logs, `"line":1`)
	require.Contains(t, logs, `"message":"composition pass complete"`)
	require.Contains(t, logs, `"rewrites":1`)
}
