package ast

import "github.com/deepnoodle-ai/jsfuse/internal/token"

// Ident is an expression node that refers to a variable by name.
type Ident struct {
	NamePos token.Position // position of identifier
	Name    string         // identifier name
}

// NewIdent returns an identifier without position information.
func NewIdent(name string) *Ident {
	return &Ident{Name: name}
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

func (x *Ident) String() string { return x.Name }

// Call is an expression node that describes the invocation of a function.
type Call struct {
	Fun    Expr           // function expression
	Lparen token.Position // position of "("
	Args   []Expr         // function arguments
	Rparen token.Position // position of ")"
}

// NewCall returns a call of fun with the given arguments.
func NewCall(fun Expr, args ...Expr) *Call {
	return &Call{Fun: fun, Args: args}
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string { return compact(x) }

// New is a constructor invocation, e.g. "new Error(msg)".
type New struct {
	NewPos token.Position // position of "new" keyword
	Fun    Expr           // constructor expression
	Args   []Expr         // constructor arguments
	Rparen token.Position // position of ")"
}

func (x *New) exprNode() {}

func (x *New) Pos() token.Position { return x.NewPos }
func (x *New) End() token.Position { return x.Rparen.Advance(1) }

func (x *New) String() string { return compact(x) }

// Member is a property access using dot notation, e.g. "obj.prop".
type Member struct {
	X      Expr           // object expression
	Period token.Position // position of "."
	Sel    *Ident         // property name
}

func (x *Member) exprNode() {}

func (x *Member) Pos() token.Position { return x.X.Pos() }
func (x *Member) End() token.Position { return x.Sel.End() }

func (x *Member) String() string { return compact(x) }

// Index is a computed property access, e.g. "arr[0]".
type Index struct {
	X      Expr           // object expression
	Lbrack token.Position // position of "["
	Index  Expr           // index expression
	Rbrack token.Position // position of "]"
}

func (x *Index) exprNode() {}

func (x *Index) Pos() token.Position { return x.X.Pos() }
func (x *Index) End() token.Position { return x.Rbrack.Advance(1) }

func (x *Index) String() string { return compact(x) }

// Prefix is an operator expression where the operator precedes the operand.
// Examples include "!done", "-x" and "typeof x".
type Prefix struct {
	OpPos token.Position // position of operator
	Op    string         // operator: "!", "-", "+", "~", "typeof", "void", "delete"
	X     Expr           // operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string { return compact(x) }

// Infix is a binary operator expression, e.g. "x + y" or "a === b".
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    string         // operator
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string { return compact(x) }

// Assign is an assignment expression, e.g. "x = 1" or "obj.n += 2".
type Assign struct {
	X     Expr           // assignment target: Ident, Member or Index
	OpPos token.Position // position of operator
	Op    string         // "=" or a compound operator such as "+=" or ">>>="
	Value Expr           // assigned value
}

func (x *Assign) exprNode() {}

func (x *Assign) Pos() token.Position { return x.X.Pos() }
func (x *Assign) End() token.Position { return x.Value.End() }

func (x *Assign) String() string { return compact(x) }

// Cond is a ternary conditional expression: "cond ? then : else".
type Cond struct {
	Cond     Expr           // condition
	Question token.Position // position of "?"
	Then     Expr           // value when cond is truthy
	Colon    token.Position // position of ":"
	Else     Expr           // value when cond is falsy
}

func (x *Cond) exprNode() {}

func (x *Cond) Pos() token.Position { return x.Cond.Pos() }
func (x *Cond) End() token.Position { return x.Else.End() }

func (x *Cond) String() string { return compact(x) }

// Update is an increment or decrement, e.g. "i++" or "--n".
type Update struct {
	OpPos  token.Position // position of operator
	Op     string         // "++" or "--"
	Prefix bool           // operator precedes the operand
	X      Expr           // operand: Ident, Member or Index
}

func (x *Update) exprNode() {}

func (x *Update) Pos() token.Position {
	if x.Prefix {
		return x.OpPos
	}
	return x.X.Pos()
}

func (x *Update) End() token.Position {
	if x.Prefix {
		return x.X.End()
	}
	return x.OpPos.Advance(2)
}

func (x *Update) String() string { return compact(x) }

// Sequence is a comma expression, e.g. "i++, j--".
type Sequence struct {
	List []Expr // at least two expressions
}

func (x *Sequence) exprNode() {}

func (x *Sequence) Pos() token.Position { return x.List[0].Pos() }
func (x *Sequence) End() token.Position { return x.List[len(x.List)-1].End() }

func (x *Sequence) String() string { return compact(x) }
