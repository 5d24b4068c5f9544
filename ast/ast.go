// Package ast defines the abstract syntax tree for the JavaScript emitted by
// functional-language compilers.
//
// The set of node types is closed: every traversal in this module (Walk,
// RewriteChildren, Clone and the printer) switches over the same variants.
package ast

import "github.com/deepnoodle-ai/jsfuse/internal/token"

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code. Nodes created
// by transforms carry token.NoPos.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a compact, single line JavaScript rendering of the node.
	String() string
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions evaluate to a value
// and may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// Program is the root node of a parsed source file.
type Program struct {
	Stmts []Stmt
}

func (p *Program) Pos() token.Position {
	if len(p.Stmts) > 0 {
		return p.Stmts[0].Pos()
	}
	return token.NoPos
}

func (p *Program) End() token.Position {
	if len(p.Stmts) > 0 {
		return p.Stmts[len(p.Stmts)-1].End()
	}
	return token.NoPos
}

func (p *Program) String() string { return compact(p) }
