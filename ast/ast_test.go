package ast

import (
	"testing"

	"github.com/deepnoodle-ai/jsfuse/internal/token"
	"github.com/stretchr/testify/require"
)

func ident(name string) *Ident { return NewIdent(name) }

func call(fun Expr, args ...Expr) *Call { return NewCall(fun, args...) }

func lambda(param string, body Expr) *Func {
	return NewFunc([]*Ident{ident(param)}, NewBlock(NewReturn(body)))
}

func TestString(t *testing.T) {
	program := &Program{
		Stmts: []Stmt{
			&VarDecl{
				DeclPos: token.Position{Line: 0, Column: 0},
				Kind:    "var",
				Decls: []*Declarator{{
					Name:  &Ident{NamePos: token.Position{Column: 4}, Name: "myVar"},
					Value: &Ident{NamePos: token.Position{Column: 12}, Name: "anotherVar"},
				}},
			},
		},
	}
	require.Equal(t, "var myVar = anotherVar;", program.String())
}

func TestCompactFunction(t *testing.T) {
	fn := lambda("_param_1", call(ident("f2"), call(ident("f1"), ident("_param_1"))))
	require.Equal(t, "function (_param_1) { return f2(f1(_param_1)); }", fn.String())
}

func TestFormat(t *testing.T) {
	program := &Program{Stmts: []Stmt{
		NewVarDecl("var", NewDeclarator(ident("fn"),
			lambda("_param_1", call(ident("f2"), call(ident("f1"), ident("_param_1")))))),
		&ExprStmt{X: call(ident("fn"), &Number{Literal: "1"})},
	}}
	expected := "var fn = function (_param_1) {\n" +
		"    return f2(f1(_param_1));\n" +
		"};\n" +
		"fn(1);\n"
	require.Equal(t, expected, Format(program))
}

func TestFormatNested(t *testing.T) {
	fn := &Func{
		Name:   ident("F2"),
		Params: []*Ident{ident("fun")},
		Body: NewBlock(NewReturn(lambda("a",
			call(ident("fun"), ident("a"))))),
	}
	expected := "function F2(fun) {\n" +
		"    return function (a) {\n" +
		"        return fun(a);\n" +
		"    };\n" +
		"}\n"
	require.Equal(t, expected, Format(&Program{Stmts: []Stmt{fn}}))
}

func TestParentheses(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{
			name:     "function callee",
			node:     call(lambda("p", ident("p")), ident("x")),
			expected: "(function (p) { return p; })(x)",
		},
		{
			name: "infix precedence",
			node: &Infix{
				X:  &Infix{X: ident("a"), Op: "+", Y: ident("b")},
				Op: "*",
				Y:  ident("c"),
			},
			expected: "(a + b) * c",
		},
		{
			name: "left associative",
			node: &Infix{
				X:  ident("a"),
				Op: "-",
				Y:  &Infix{X: ident("b"), Op: "-", Y: ident("c")},
			},
			expected: "a - (b - c)",
		},
		{
			name:     "conditional in call argument",
			node:     call(ident("f"), &Cond{Cond: ident("a"), Then: ident("b"), Else: ident("c")}),
			expected: "f(a ? b : c)",
		},
		{
			name:     "member of call",
			node:     &Member{X: call(ident("f")), Sel: ident("x")},
			expected: "f().x",
		},
		{
			name:     "member of infix",
			node:     &Member{X: &Infix{X: ident("a"), Op: "||", Y: ident("b")}, Sel: ident("c")},
			expected: "(a || b).c",
		},
		{
			name:     "negated negation",
			node:     &Prefix{Op: "-", X: &Prefix{Op: "-", X: ident("x")}},
			expected: "- -x",
		},
		{
			name:     "typeof",
			node:     &Prefix{Op: "typeof", X: ident("x")},
			expected: "typeof x",
		},
		{
			name:     "object statement",
			node:     &ExprStmt{X: &Member{X: &Object{Props: []*Property{{Key: "a", Value: ident("b")}}}, Sel: ident("a")}},
			expected: "({ a: b }).a;",
		},
		{
			name:     "function statement",
			node:     &ExprStmt{X: &Infix{X: lambda("p", ident("p")), Op: "+", Y: &Number{Literal: "1"}}},
			expected: "(function (p) { return p; } + 1);",
		},
		{
			name:     "new with call callee",
			node:     &New{Fun: call(ident("f")), Args: []Expr{ident("x")}},
			expected: "new (f())(x)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.node.String())
		})
	}
}

func TestStatementsString(t *testing.T) {
	tests := []struct {
		node     Stmt
		expected string
	}{
		{&Return{}, "return;"},
		{&Break{}, "break;"},
		{&Continue{}, "continue;"},
		{&Throw{Value: &New{Fun: ident("Error"), Args: []Expr{&String{Literal: `"x"`}}}}, `throw new Error("x");`},
		{&If{Cond: ident("a"), Then: NewBlock(&Break{}), Else: NewBlock()}, "if (a) { break; } else {}"},
		{&While{Cond: &Bool{Value: true}, Body: NewBlock(&Continue{})}, "while (true) { continue; }"},
		{NewVarDecl("let", NewDeclarator(ident("a"), nil), NewDeclarator(ident("b"), &Null{})), "let a, b = null;"},
		{&ExprStmt{X: &Assign{X: &Index{X: ident("a"), Index: &Number{Literal: "0"}}, Op: "+=", Value: ident("b")}}, "a[0] += b;"},
		{&ExprStmt{X: &Array{Items: []Expr{&Number{Literal: "1"}, &String{Literal: "'s'"}}}}, "[1, 's'];"},
		{&Break{Label: ident("outer")}, "break outer;"},
		{&Labeled{Label: ident("outer"), Body: &While{Cond: ident("x"), Body: NewBlock(&Continue{Label: ident("outer")})}},
			"outer: while (x) { continue outer; }"},
		{&For{Body: NewBlock()}, "for (;;) {}"},
		{&For{
			Init: NewVarDecl("var", NewDeclarator(ident("i"), &Infix{X: &String{Literal: "'k'"}, Op: "in", Y: ident("o")})),
			Cond: ident("i"),
			Post: &Update{Op: "--", X: ident("i")},
			Body: &ExprStmt{X: ident("i")},
		}, "for (var i = ('k' in o); i; i--) i;"},
		{&ForIn{Init: NewVarDecl("var", NewDeclarator(ident("k"), nil)), X: ident("o"), Body: NewBlock()}, "for (var k in o) {}"},
		{&DoWhile{Body: NewBlock(&ExprStmt{X: &Update{Op: "++", Prefix: true, X: ident("n")}}), Cond: ident("ok")}, "do { ++n; } while (ok);"},
		{&Switch{Tag: ident("t"), Cases: []*Case{
			{Test: &Number{Literal: "0"}, Body: []Stmt{&Break{}}},
			{Body: []Stmt{&Return{Value: ident("t")}}},
		}}, "switch (t) { case 0: break; default: return t; }"},
		{&Try{Block: NewBlock(), Param: ident("e"), Catch: NewBlock(), Finally: NewBlock()}, "try {} catch (e) {} finally {}"},
		{&Comment{Text: "// note"}, "/* note */"},
		{&Comment{Text: "/* kept */"}, "/* kept */"},
		{&ExprStmt{X: &Sequence{List: []Expr{ident("a"), &Assign{X: ident("b"), Op: "**=", Value: &Infix{X: &Prefix{Op: "-", X: ident("c")}, Op: "**", Y: ident("d")}}}}},
			"a, b **= (-c) ** d;"},
		{&ExprStmt{X: &Regexp{Literal: "/x+/g"}}, "/x+/g;"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.node.String())
	}
}

func TestFuncReturnValue(t *testing.T) {
	fn := lambda("p", ident("p"))
	value, ok := fn.ReturnValue()
	require.True(t, ok)
	require.Equal(t, "p", value.String())

	_, ok = NewFunc(nil, NewBlock(&ExprStmt{X: ident("x")})).ReturnValue()
	require.False(t, ok)

	_, ok = NewFunc(nil, NewBlock()).ReturnValue()
	require.False(t, ok)
}

func TestPositions(t *testing.T) {
	id := &Ident{NamePos: token.Position{Char: 4, Column: 4}, Name: "abc"}
	require.Equal(t, 7, id.End().Column)

	c := &Call{Fun: id, Rparen: token.Position{Char: 9, Column: 9}}
	require.Equal(t, id.Pos(), c.Pos())
	require.Equal(t, 10, c.End().Column)

	require.Equal(t, token.NoPos, (&Program{}).Pos())
}
