package ast

import "github.com/deepnoodle-ai/jsfuse/internal/token"

// Number is a numeric literal. The literal text is kept verbatim.
type Number struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text (e.g., "42", "0x2a", "1e3")
}

func (x *Number) exprNode() {}

func (x *Number) Pos() token.Position { return x.ValuePos }
func (x *Number) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Number) String() string { return x.Literal }

// String is a quoted string literal. Literal includes the quotes and any
// escape sequences exactly as written.
type String struct {
	ValuePos token.Position // position of the opening quote
	Literal  string         // the literal text, quotes included
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }
func (x *String) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *String) String() string { return x.Literal }

// Regexp is a regular expression literal, e.g. "/ab+c/g". The literal text,
// flags included, is kept verbatim.
type Regexp struct {
	ValuePos token.Position // position of the opening "/"
	Literal  string
}

func (x *Regexp) exprNode() {}

func (x *Regexp) Pos() token.Position { return x.ValuePos }
func (x *Regexp) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Regexp) String() string { return x.Literal }

// Bool is an expression node that holds a boolean literal.
type Bool struct {
	ValuePos token.Position // position of "true" or "false"
	Value    bool           // the boolean value
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Position { return x.ValuePos }
func (x *Bool) End() token.Position { return x.ValuePos.Advance(len(x.String())) }

func (x *Bool) String() string {
	if x.Value {
		return "true"
	}
	return "false"
}

// Null is an expression node that holds a null literal.
type Null struct {
	NullPos token.Position // position of "null" keyword
}

func (x *Null) exprNode() {}

func (x *Null) Pos() token.Position { return x.NullPos }
func (x *Null) End() token.Position { return x.NullPos.Advance(4) } // len("null")

func (x *Null) String() string { return "null" }

// Array is an array literal, e.g. "[1, 2, 3]".
type Array struct {
	Lbrack token.Position // position of "["
	Items  []Expr         // elements
	Rbrack token.Position // position of "]"
}

func (x *Array) exprNode() {}

func (x *Array) Pos() token.Position { return x.Lbrack }
func (x *Array) End() token.Position { return x.Rbrack.Advance(1) }

func (x *Array) String() string { return compact(x) }

// Property is a single "key: value" entry of an object literal. Key holds
// the key as written: an identifier, a quoted string or a number.
type Property struct {
	Key   string
	Value Expr
}

// Object is an object literal, e.g. "{ $: 1, a: x }".
type Object struct {
	Lbrace token.Position // position of "{"
	Props  []*Property    // properties in source order
	Rbrace token.Position // position of "}"
}

func (x *Object) exprNode() {}

func (x *Object) Pos() token.Position { return x.Lbrace }
func (x *Object) End() token.Position { return x.Rbrace.Advance(1) }

func (x *Object) String() string { return compact(x) }

// Func is a function literal. With a Name it may also appear in statement
// position as a function declaration.
type Func struct {
	Func   token.Position // position of "function" keyword
	Name   *Ident         // function name; nil for anonymous functions
	Lparen token.Position // position of "("
	Params []*Ident       // parameter names
	Rparen token.Position // position of ")"
	Body   *Block         // function body
}

// NewFunc returns an anonymous function literal.
func NewFunc(params []*Ident, body *Block) *Func {
	return &Func{Params: params, Body: body}
}

func (x *Func) exprNode() {}
func (x *Func) stmtNode() {} // named functions are also statements

func (x *Func) Pos() token.Position { return x.Func }

func (x *Func) End() token.Position {
	if x.Body != nil {
		return x.Body.End()
	}
	return x.Rparen.Advance(1)
}

func (x *Func) String() string { return compact(x) }

// ReturnValue returns the expression of the function's final statement when
// that statement is a return with a value.
func (x *Func) ReturnValue() (Expr, bool) {
	if x.Body == nil || len(x.Body.Stmts) == 0 {
		return nil, false
	}
	ret, ok := x.Body.Stmts[len(x.Body.Stmts)-1].(*Return)
	if !ok || ret.Value == nil {
		return nil, false
	}
	return ret.Value, true
}
