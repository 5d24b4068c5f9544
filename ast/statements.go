package ast

import "github.com/deepnoodle-ai/jsfuse/internal/token"

// Declarator is one "name = value" entry of a variable declaration list.
type Declarator struct {
	Name  *Ident // declared name
	Value Expr   // initializer; nil if absent
}

// NewDeclarator returns a declarator binding name to value.
func NewDeclarator(name *Ident, value Expr) *Declarator {
	return &Declarator{Name: name, Value: value}
}

// VarDecl is a variable declaration list, e.g. "var a = 1, b = f(a);".
type VarDecl struct {
	DeclPos token.Position // position of the keyword
	Kind    string         // "var", "let" or "const"
	Decls   []*Declarator  // declarators in source order
}

// NewVarDecl returns a declaration list of the given kind.
func NewVarDecl(kind string, decls ...*Declarator) *VarDecl {
	return &VarDecl{Kind: kind, Decls: decls}
}

func (s *VarDecl) stmtNode() {}

func (s *VarDecl) Pos() token.Position { return s.DeclPos }

func (s *VarDecl) End() token.Position {
	if len(s.Decls) == 0 {
		return s.DeclPos.Advance(len(s.Kind))
	}
	last := s.Decls[len(s.Decls)-1]
	if last.Value != nil {
		return last.Value.End()
	}
	return last.Name.End()
}

func (s *VarDecl) String() string { return compact(s) }

// Return is a return statement with an optional value.
type Return struct {
	Return token.Position // position of "return" keyword
	Value  Expr           // return value; nil for bare return
}

// NewReturn returns a return statement for value.
func NewReturn(value Expr) *Return {
	return &Return{Value: value}
}

func (s *Return) stmtNode() {}

func (s *Return) Pos() token.Position { return s.Return }

func (s *Return) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return s.Return.Advance(6) // len("return")
}

func (s *Return) String() string { return compact(s) }

// Block is a braced sequence of statements. It is used for function bodies,
// conditional branches and loop bodies.
type Block struct {
	Lbrace token.Position // position of "{"
	Stmts  []Stmt         // statements in the block
	Rbrace token.Position // position of "}"
}

// NewBlock returns a block holding the given statements.
func NewBlock(stmts ...Stmt) *Block {
	return &Block{Stmts: stmts}
}

func (s *Block) stmtNode() {}

func (s *Block) Pos() token.Position { return s.Lbrace }
func (s *Block) End() token.Position { return s.Rbrace.Advance(1) }

func (s *Block) String() string { return compact(s) }

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }
func (s *ExprStmt) End() token.Position { return s.X.End() }

func (s *ExprStmt) String() string { return compact(s) }

// If is a conditional statement.
type If struct {
	If   token.Position // position of "if" keyword
	Cond Expr           // condition
	Then Stmt           // consequence
	Else Stmt           // alternative; nil if no else
}

func (s *If) stmtNode() {}

func (s *If) Pos() token.Position { return s.If }

func (s *If) End() token.Position {
	if s.Else != nil {
		return s.Else.End()
	}
	return s.Then.End()
}

func (s *If) String() string { return compact(s) }

// While is a loop statement.
type While struct {
	While token.Position // position of "while" keyword
	Cond  Expr           // loop condition
	Body  Stmt           // loop body
}

func (s *While) stmtNode() {}

func (s *While) Pos() token.Position { return s.While }
func (s *While) End() token.Position { return s.Body.End() }

func (s *While) String() string { return compact(s) }

// Break is a "break" statement with an optional label.
type Break struct {
	Break token.Position
	Label *Ident // target label; nil if absent
}

func (s *Break) stmtNode() {}

func (s *Break) Pos() token.Position { return s.Break }

func (s *Break) End() token.Position {
	if s.Label != nil {
		return s.Label.End()
	}
	return s.Break.Advance(5)
}

func (s *Break) String() string { return compact(s) }

// Continue is a "continue" statement with an optional label.
type Continue struct {
	Continue token.Position
	Label    *Ident // target label; nil if absent
}

func (s *Continue) stmtNode() {}

func (s *Continue) Pos() token.Position { return s.Continue }

func (s *Continue) End() token.Position {
	if s.Label != nil {
		return s.Label.End()
	}
	return s.Continue.Advance(8)
}

func (s *Continue) String() string { return compact(s) }

// Throw is a "throw" statement.
type Throw struct {
	Throw token.Position // position of "throw" keyword
	Value Expr           // thrown value
}

func (s *Throw) stmtNode() {}

func (s *Throw) Pos() token.Position { return s.Throw }
func (s *Throw) End() token.Position { return s.Value.End() }

func (s *Throw) String() string { return compact(s) }

// For is a three-clause loop: "for (init; cond; post) body". Any clause may
// be absent.
type For struct {
	For  token.Position // position of "for" keyword
	Init Stmt           // *VarDecl or *ExprStmt; nil if absent
	Cond Expr           // nil if absent
	Post Expr           // nil if absent
	Body Stmt
}

func (s *For) stmtNode() {}

func (s *For) Pos() token.Position { return s.For }
func (s *For) End() token.Position { return s.Body.End() }

func (s *For) String() string { return compact(s) }

// ForIn is a property enumeration loop: "for (var k in obj) body".
type ForIn struct {
	For  token.Position // position of "for" keyword
	Init Stmt           // *VarDecl without initializer or *ExprStmt holding the target
	X    Expr           // enumerated object
	Body Stmt
}

func (s *ForIn) stmtNode() {}

func (s *ForIn) Pos() token.Position { return s.For }
func (s *ForIn) End() token.Position { return s.Body.End() }

func (s *ForIn) String() string { return compact(s) }

// DoWhile is a loop whose condition is tested after each iteration.
type DoWhile struct {
	Do   token.Position // position of "do" keyword
	Body Stmt
	Cond Expr
}

func (s *DoWhile) stmtNode() {}

func (s *DoWhile) Pos() token.Position { return s.Do }
func (s *DoWhile) End() token.Position { return s.Cond.End() }

func (s *DoWhile) String() string { return compact(s) }

// Labeled is a statement with a label, e.g. "loop: while (true) {...}".
type Labeled struct {
	Label *Ident
	Colon token.Position
	Body  Stmt
}

func (s *Labeled) stmtNode() {}

func (s *Labeled) Pos() token.Position { return s.Label.Pos() }
func (s *Labeled) End() token.Position { return s.Body.End() }

func (s *Labeled) String() string { return compact(s) }

// Switch is a switch statement.
type Switch struct {
	Switch token.Position // position of "switch" keyword
	Tag    Expr           // value being switched on
	Cases  []*Case        // clauses in source order
	Rbrace token.Position // position of the closing "}"
}

func (s *Switch) stmtNode() {}

func (s *Switch) Pos() token.Position { return s.Switch }
func (s *Switch) End() token.Position { return s.Rbrace.Advance(1) }

func (s *Switch) String() string { return compact(s) }

// Case is one clause of a switch statement. It is not a statement itself.
type Case struct {
	Case  token.Position // position of "case" or "default" keyword
	Test  Expr           // nil for the default clause
	Colon token.Position
	Body  []Stmt
}

func (c *Case) Pos() token.Position { return c.Case }

func (c *Case) End() token.Position {
	if len(c.Body) > 0 {
		return c.Body[len(c.Body)-1].End()
	}
	return c.Colon.Advance(1)
}

func (c *Case) String() string { return compact(c) }

// Try is a try statement. At least one of Catch and Finally is set.
type Try struct {
	Try     token.Position // position of "try" keyword
	Block   *Block
	Param   *Ident // catch binding; nil if absent
	Catch   *Block // nil if absent
	Finally *Block // nil if absent
}

func (s *Try) stmtNode() {}

func (s *Try) Pos() token.Position { return s.Try }

func (s *Try) End() token.Position {
	if s.Finally != nil {
		return s.Finally.End()
	}
	return s.Catch.End()
}

func (s *Try) String() string { return compact(s) }

// Comment is a source comment kept in a statement list. Text includes the
// delimiters.
type Comment struct {
	Slash token.Position // position of the opening "/"
	Text  string
}

func (s *Comment) stmtNode() {}

func (s *Comment) Pos() token.Position { return s.Slash }
func (s *Comment) End() token.Position { return s.Slash.Advance(len(s.Text)) }

func (s *Comment) String() string { return compact(s) }
