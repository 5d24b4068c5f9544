package composition

import "github.com/deepnoodle-ai/jsfuse/ast"

// binding is a hoisted operand waiting to be declared.
type binding struct {
	name  *ast.Ident
	value ast.Expr
}

type scopeKind int

const (
	// statementScope collects bindings for one var declarator or return
	// value.
	statementScope scopeKind = iota

	// branchScope covers code that runs zero or more times relative to the
	// enclosing statement: a conditional branch, the right side of && and
	// ||, or a loop clause.
	branchScope

	// functionScope covers a function body.
	functionScope
)

// hoistScope collects bindings for the statement currently being rewritten.
// Only a statement scope accepts bindings.
//
// A scope is sealed once a side effect that stays in place has been
// rewritten inside it. Hoisting an operand of a later site would move that
// operand ahead of the effect.
type hoistScope struct {
	kind     scopeKind
	sealed   bool
	bindings []binding
}

func (r *rewriter) pushScope(kind scopeKind) {
	r.scopes = append(r.scopes, &hoistScope{kind: kind})
}

func (r *rewriter) popScope() []binding {
	top := r.scopes[len(r.scopes)-1]
	r.scopes = r.scopes[:len(r.scopes)-1]
	return top.bindings
}

// withBarrier runs fn with hoisting into enclosing statements disabled.
func (r *rewriter) withBarrier(kind scopeKind, fn func()) {
	r.pushScope(kind)
	defer r.popScope()
	fn()
}

// canHoist reports whether a binding can be placed before the nearest
// enclosing statement.
func (r *rewriter) canHoist() bool {
	if len(r.scopes) == 0 {
		return false
	}
	return r.scopes[len(r.scopes)-1].kind == statementScope
}

// sealed reports whether the current scope has seen an in-place side effect.
func (r *rewriter) sealed() bool {
	if len(r.scopes) == 0 {
		return false
	}
	return r.scopes[len(r.scopes)-1].sealed
}

// seal records an in-place side effect. Branches run as part of the
// statement that contains them, so the mark reaches through branch scopes
// to that statement. Function bodies do not run in place.
func (r *rewriter) seal() {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		s := r.scopes[i]
		s.sealed = true
		if s.kind != branchScope {
			return
		}
	}
}

// restoreSeal resets the current scope to an earlier sealed state. It is
// used after a site has been replaced by a generated lambda, which evaluates
// nothing in place.
func (r *rewriter) restoreSeal(sealed bool) {
	if len(r.scopes) > 0 {
		r.scopes[len(r.scopes)-1].sealed = sealed
	}
}

// needsHoist reports whether x must be bound to a variable before it can be
// moved into a lambda body. Identifiers, literals and generated lambdas are
// used in place. Property reads are bound so that the call through the
// variable keeps an undefined this and the property is read once. Any other
// expression is bound when evaluating it could have a side effect.
func (r *rewriter) needsHoist(x ast.Expr) bool {
	switch x := x.(type) {
	case *ast.Ident, *ast.Number, *ast.String, *ast.Bool, *ast.Null, *ast.Regexp:
		return false
	case *ast.Call, *ast.New, *ast.Member, *ast.Index:
		return true
	case *ast.Func:
		return !r.synthesized[x]
	}
	return hasEffects(x)
}

// hasEffects reports whether evaluating x in place may have a side effect.
// Bodies of function literals are not evaluated and are not searched.
func hasEffects(x ast.Expr) bool {
	found := false
	ast.Inspect(x, func(node ast.Node) bool {
		if found {
			return false
		}
		switch n := node.(type) {
		case *ast.Call, *ast.New, *ast.Assign, *ast.Update:
			found = true
		case *ast.Prefix:
			found = n.Op == "delete"
		case *ast.Func:
			return false
		}
		return !found
	})
	return found
}

// extractToVariableIfNecessary binds x to a fresh declaration in the
// current scope and returns a reference to it, or returns x unchanged if it
// does not need hoisting. Callers must check canHoist first.
func (r *rewriter) extractToVariableIfNecessary(x ast.Expr) ast.Expr {
	if !r.needsHoist(x) {
		return x
	}
	name := r.freshName(r.names.DeclPrefix, &r.declCount)
	top := r.scopes[len(r.scopes)-1]
	top.bindings = append(top.bindings, binding{name: name, value: x})
	r.stats.Hoisted++
	return ast.NewIdent(name.Name)
}

// declarators converts bindings to declarators in creation order.
func declarators(bindings []binding) []*ast.Declarator {
	decls := make([]*ast.Declarator, 0, len(bindings))
	for _, b := range bindings {
		decls = append(decls, ast.NewDeclarator(b.name, b.value))
	}
	return decls
}
