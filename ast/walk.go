package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range children(node) {
		Walk(v, child)
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range children(n) {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}

// children returns the non-nil direct children of node in source order.
// Function parameters, declared names, labels and catch bindings are
// included as Ident nodes.
func children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		out = append(out, n)
	}
	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Stmts {
			add(stmt)
		}

	// Statements
	case *VarDecl:
		for _, d := range n.Decls {
			add(d.Name)
			if d.Value != nil {
				add(d.Value)
			}
		}
	case *Return:
		if n.Value != nil {
			add(n.Value)
		}
	case *Block:
		for _, stmt := range n.Stmts {
			add(stmt)
		}
	case *ExprStmt:
		add(n.X)
	case *If:
		add(n.Cond)
		add(n.Then)
		if n.Else != nil {
			add(n.Else)
		}
	case *While:
		add(n.Cond)
		add(n.Body)
	case *Throw:
		add(n.Value)
	case *Break:
		if n.Label != nil {
			add(n.Label)
		}
	case *Continue:
		if n.Label != nil {
			add(n.Label)
		}
	case *For:
		if n.Init != nil {
			add(n.Init)
		}
		if n.Cond != nil {
			add(n.Cond)
		}
		if n.Post != nil {
			add(n.Post)
		}
		add(n.Body)
	case *ForIn:
		add(n.Init)
		add(n.X)
		add(n.Body)
	case *DoWhile:
		add(n.Body)
		add(n.Cond)
	case *Labeled:
		add(n.Label)
		add(n.Body)
	case *Switch:
		add(n.Tag)
		for _, c := range n.Cases {
			add(c)
		}
	case *Case:
		if n.Test != nil {
			add(n.Test)
		}
		for _, stmt := range n.Body {
			add(stmt)
		}
	case *Try:
		add(n.Block)
		if n.Param != nil {
			add(n.Param)
		}
		if n.Catch != nil {
			add(n.Catch)
		}
		if n.Finally != nil {
			add(n.Finally)
		}
	case *Comment:
		// No children

	// Expressions
	case *Ident, *Number, *String, *Regexp, *Bool, *Null:
		// No children
	case *Call:
		add(n.Fun)
		for _, arg := range n.Args {
			add(arg)
		}
	case *New:
		add(n.Fun)
		for _, arg := range n.Args {
			add(arg)
		}
	case *Member:
		add(n.X)
		add(n.Sel)
	case *Index:
		add(n.X)
		add(n.Index)
	case *Prefix:
		add(n.X)
	case *Infix:
		add(n.X)
		add(n.Y)
	case *Assign:
		add(n.X)
		add(n.Value)
	case *Cond:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case *Update:
		add(n.X)
	case *Sequence:
		for _, x := range n.List {
			add(x)
		}
	case *Array:
		for _, item := range n.Items {
			add(item)
		}
	case *Object:
		for _, prop := range n.Props {
			add(prop.Value)
		}
	case *Func:
		if n.Name != nil {
			add(n.Name)
		}
		for _, param := range n.Params {
			add(param)
		}
		if n.Body != nil {
			add(n.Body)
		}
	}
	return out
}
