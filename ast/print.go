package ast

import "strings"

// Operator precedence levels used to decide where parentheses are needed.
const (
	precLowest = iota
	precAssign
	precCond
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precPrefix
	precPostfix
	precCall
	precPrimary
)

var infixPrecedence = map[string]int{
	"||":         precOr,
	"&&":         precAnd,
	"|":          precBitOr,
	"^":          precBitXor,
	"&":          precBitAnd,
	"==":         precEquality,
	"!=":         precEquality,
	"===":        precEquality,
	"!==":        precEquality,
	"<":          precRelational,
	"<=":         precRelational,
	">":          precRelational,
	">=":         precRelational,
	"in":         precRelational,
	"instanceof": precRelational,
	"<<":         precShift,
	">>":         precShift,
	">>>":        precShift,
	"+":          precAdditive,
	"-":          precAdditive,
	"*":          precMultiplicative,
	"/":          precMultiplicative,
	"%":          precMultiplicative,
	"**":         precExponent,
}

// Format renders the node as indented, multi-line JavaScript source.
func Format(node Node) string {
	p := &printer{}
	p.node(node)
	return p.buf.String()
}

func compact(node Node) string {
	p := &printer{compact: true}
	p.node(node)
	return p.buf.String()
}

// printer holds state for rendering an AST as source text.
type printer struct {
	buf     strings.Builder
	indent  int
	compact bool
	noIn    bool
}

func (p *printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *printer) newline() {
	if p.compact {
		p.write(" ")
		return
	}
	p.write("\n")
	p.write(strings.Repeat("    ", p.indent))
}

func (p *printer) node(node Node) {
	switch n := node.(type) {
	case *Program:
		for i, stmt := range n.Stmts {
			if i > 0 {
				if p.compact {
					p.write(" ")
				} else {
					p.write("\n")
				}
			}
			p.stmt(stmt)
		}
		if !p.compact && len(n.Stmts) > 0 {
			p.write("\n")
		}
	case *Case:
		p.caseClause(n)
	case Stmt:
		p.stmt(n)
	case Expr:
		p.expr(n, precLowest)
	}
}

func (p *printer) stmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *VarDecl:
		p.varDecl(s)
		p.write(";")
	case *Return:
		p.write("return")
		if s.Value != nil {
			p.write(" ")
			p.expr(s.Value, precLowest)
		}
		p.write(";")
	case *Block:
		p.block(s)
	case *ExprStmt:
		if startsAmbiguously(s.X) {
			p.write("(")
			p.expr(s.X, precLowest)
			p.write(")")
		} else {
			p.expr(s.X, precLowest)
		}
		p.write(";")
	case *If:
		p.write("if (")
		p.expr(s.Cond, precLowest)
		p.write(") ")
		p.stmt(s.Then)
		if s.Else != nil {
			p.write(" else ")
			p.stmt(s.Else)
		}
	case *While:
		p.write("while (")
		p.expr(s.Cond, precLowest)
		p.write(") ")
		p.stmt(s.Body)
	case *Break:
		p.jump("break", s.Label)
	case *Continue:
		p.jump("continue", s.Label)
	case *Throw:
		p.write("throw ")
		p.expr(s.Value, precLowest)
		p.write(";")
	case *Func:
		p.function(s)
	case *For:
		p.write("for (")
		if s.Init != nil {
			p.noIn = true
			p.forInit(s.Init)
			p.noIn = false
		}
		p.write(";")
		if s.Cond != nil {
			p.write(" ")
			p.expr(s.Cond, precLowest)
		}
		p.write(";")
		if s.Post != nil {
			p.write(" ")
			p.expr(s.Post, precLowest)
		}
		p.write(") ")
		p.stmt(s.Body)
	case *ForIn:
		p.write("for (")
		p.forInit(s.Init)
		p.write(" in ")
		p.expr(s.X, precLowest)
		p.write(") ")
		p.stmt(s.Body)
	case *DoWhile:
		p.write("do ")
		p.stmt(s.Body)
		p.write(" while (")
		p.expr(s.Cond, precLowest)
		p.write(");")
	case *Labeled:
		p.write(s.Label.Name)
		p.write(": ")
		p.stmt(s.Body)
	case *Switch:
		p.write("switch (")
		p.expr(s.Tag, precLowest)
		p.write(") ")
		if len(s.Cases) == 0 {
			p.write("{}")
			return
		}
		p.write("{")
		p.indent++
		for _, c := range s.Cases {
			p.newline()
			p.caseClause(c)
		}
		p.indent--
		p.newline()
		p.write("}")
	case *Try:
		p.write("try ")
		p.block(s.Block)
		if s.Catch != nil {
			p.write(" catch ")
			if s.Param != nil {
				p.write("(")
				p.write(s.Param.Name)
				p.write(") ")
			}
			p.block(s.Catch)
		}
		if s.Finally != nil {
			p.write(" finally ")
			p.block(s.Finally)
		}
	case *Comment:
		p.comment(s.Text)
	}
}

func (p *printer) varDecl(s *VarDecl) {
	p.write(s.Kind)
	p.write(" ")
	for i, d := range s.Decls {
		if i > 0 {
			p.write(", ")
		}
		p.write(d.Name.Name)
		if d.Value != nil {
			p.write(" = ")
			p.expr(d.Value, precAssign)
		}
	}
}

// forInit prints the first clause of a for or for-in loop, which has no
// terminating semicolon of its own.
func (p *printer) forInit(s Stmt) {
	switch s := s.(type) {
	case *VarDecl:
		p.varDecl(s)
	case *ExprStmt:
		p.expr(s.X, precLowest)
	}
}

func (p *printer) jump(keyword string, label *Ident) {
	p.write(keyword)
	if label != nil {
		p.write(" ")
		p.write(label.Name)
	}
	p.write(";")
}

func (p *printer) caseClause(c *Case) {
	if c.Test == nil {
		p.write("default:")
	} else {
		p.write("case ")
		p.expr(c.Test, precLowest)
		p.write(":")
	}
	p.indent++
	for _, stmt := range c.Body {
		p.newline()
		p.stmt(stmt)
	}
	p.indent--
}

// comment prints a comment as written. On a single line a line comment
// would swallow what follows, so it is printed as a block comment.
func (p *printer) comment(text string) {
	if p.compact && strings.HasPrefix(text, "//") {
		p.write("/*")
		p.write(text[2:])
		p.write(" */")
		return
	}
	p.write(text)
}

func (p *printer) block(b *Block) {
	if len(b.Stmts) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.indent++
	for _, stmt := range b.Stmts {
		p.newline()
		p.stmt(stmt)
	}
	p.indent--
	p.newline()
	p.write("}")
}

func (p *printer) function(fn *Func) {
	p.write("function ")
	if fn.Name != nil {
		p.write(fn.Name.Name)
	}
	p.write("(")
	for i, param := range fn.Params {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Name)
	}
	p.write(") ")
	if fn.Body == nil {
		p.write("{}")
		return
	}
	p.block(fn.Body)
}

func (p *printer) args(args []Expr) {
	p.write("(")
	for i, arg := range args {
		if i > 0 {
			p.write(", ")
		}
		p.expr(arg, precAssign)
	}
	p.write(")")
}

// expr prints x, wrapping it in parentheses if its precedence is lower than
// the context requires.
func (p *printer) expr(x Expr, minPrec int) {
	if precedence(x) < minPrec || p.noIn && isInExpr(x) {
		noIn := p.noIn
		p.noIn = false
		p.write("(")
		p.expr(x, precLowest)
		p.write(")")
		p.noIn = noIn
		return
	}
	switch e := x.(type) {
	case *Ident:
		p.write(e.Name)
	case *Number:
		p.write(e.Literal)
	case *String:
		p.write(e.Literal)
	case *Regexp:
		p.write(e.Literal)
	case *Bool:
		p.write(e.String())
	case *Null:
		p.write("null")
	case *Array:
		p.write("[")
		for i, item := range e.Items {
			if i > 0 {
				p.write(", ")
			}
			p.expr(item, precAssign)
		}
		p.write("]")
	case *Object:
		if len(e.Props) == 0 {
			p.write("{}")
			return
		}
		p.write("{ ")
		for i, prop := range e.Props {
			if i > 0 {
				p.write(", ")
			}
			p.write(prop.Key)
			p.write(": ")
			p.expr(prop.Value, precAssign)
		}
		p.write(" }")
	case *Func:
		p.function(e)
	case *Call:
		p.callee(e.Fun)
		p.args(e.Args)
	case *New:
		p.write("new ")
		if _, isCall := e.Fun.(*Call); isCall {
			p.write("(")
			p.expr(e.Fun, precLowest)
			p.write(")")
		} else {
			p.callee(e.Fun)
		}
		p.args(e.Args)
	case *Member:
		p.callee(e.X)
		p.write(".")
		p.write(e.Sel.Name)
	case *Index:
		p.callee(e.X)
		p.write("[")
		p.expr(e.Index, precLowest)
		p.write("]")
	case *Prefix:
		p.write(e.Op)
		if needsPrefixSpace(e) {
			p.write(" ")
		}
		p.expr(e.X, precPrefix)
	case *Update:
		if e.Prefix {
			p.write(e.Op)
			p.expr(e.X, precCall)
			return
		}
		p.expr(e.X, precCall)
		p.write(e.Op)
	case *Sequence:
		for i, item := range e.List {
			if i > 0 {
				p.write(", ")
			}
			p.expr(item, precAssign)
		}
	case *Infix:
		prec := precedence(e)
		if e.Op == "**" {
			// Right-associative, and a unary operand must be parenthesized.
			p.expr(e.X, precPostfix)
			p.write(" ** ")
			p.expr(e.Y, prec)
			return
		}
		p.expr(e.X, prec)
		p.write(" ")
		p.write(e.Op)
		p.write(" ")
		p.expr(e.Y, prec+1)
	case *Assign:
		p.expr(e.X, precCall)
		p.write(" ")
		p.write(e.Op)
		p.write(" ")
		p.expr(e.Value, precAssign)
	case *Cond:
		p.expr(e.Cond, precOr)
		p.write(" ? ")
		p.expr(e.Then, precAssign)
		p.write(" : ")
		p.expr(e.Else, precAssign)
	}
}

// callee prints an expression in call or member-access position. Function
// and object literals, and numbers, must be parenthesized there.
func (p *printer) callee(x Expr) {
	if isWrappedCallee(x) {
		p.write("(")
		p.expr(x, precLowest)
		p.write(")")
		return
	}
	p.expr(x, precCall)
}

func precedence(x Expr) int {
	switch e := x.(type) {
	case *Assign:
		return precAssign
	case *Cond:
		return precCond
	case *Infix:
		if prec, ok := infixPrecedence[e.Op]; ok {
			return prec
		}
		return precLowest
	case *Prefix:
		return precPrefix
	case *Update:
		if e.Prefix {
			return precPrefix
		}
		return precPostfix
	case *Sequence:
		return precLowest
	case *Call, *New, *Member, *Index:
		return precCall
	default:
		return precPrimary
	}
}

// needsPrefixSpace reports whether a space must separate a prefix operator
// from its operand: after a keyword operator, and between "-" and a
// following "-" or "--".
func needsPrefixSpace(e *Prefix) bool {
	switch e.Op {
	case "typeof", "void", "delete":
		return true
	case "-", "+":
	default:
		return false
	}
	switch inner := e.X.(type) {
	case *Prefix:
		return strings.HasPrefix(inner.Op, e.Op)
	case *Update:
		return inner.Prefix && strings.HasPrefix(inner.Op, e.Op)
	}
	return false
}

// startsAmbiguously reports whether an expression statement would begin with
// "function" or "{" and so be misread as a declaration or block.
func startsAmbiguously(x Expr) bool {
	for {
		switch e := x.(type) {
		case *Func, *Object:
			return true
		case *Call:
			if isWrappedCallee(e.Fun) {
				return false
			}
			x = e.Fun
		case *Member:
			if isWrappedCallee(e.X) {
				return false
			}
			x = e.X
		case *Index:
			if isWrappedCallee(e.X) {
				return false
			}
			x = e.X
		case *Infix:
			x = e.X
		case *Assign:
			x = e.X
		case *Cond:
			x = e.Cond
		case *Sequence:
			x = e.List[0]
		case *Update:
			if e.Prefix {
				return false
			}
			x = e.X
		default:
			return false
		}
	}
}

// isInExpr reports whether x is an "in" comparison, which a for-loop
// initializer only accepts inside parentheses.
func isInExpr(x Expr) bool {
	e, ok := x.(*Infix)
	return ok && e.Op == "in"
}

func isWrappedCallee(x Expr) bool {
	switch x.(type) {
	case *Func, *Object, *Number:
		return true
	}
	return false
}
