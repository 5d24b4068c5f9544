package composition

import (
	"fmt"

	"github.com/deepnoodle-ai/jsfuse/ast"
	"github.com/deepnoodle-ai/jsfuse/transform"
)

// Residual returns a validator that reports every composition site left in
// a program, such as those skipped because an operand could not be hoisted.
func (p *Pass) Residual() transform.Validator {
	names := p.names
	return transform.ValidatorFunc(func(program *ast.Program) []transform.ValidationError {
		var errs []transform.ValidationError
		for node := range ast.Preorder(program) {
			call, ok := node.(*ast.Call)
			if !ok {
				continue
			}
			callee, compose, ok := names.site(call)
			if !ok {
				continue
			}
			errs = append(errs, transform.ValidationError{
				Message:  fmt.Sprintf("%s(%s, ...) was not rewritten", callee, compose),
				Node:     call,
				Position: call.Pos(),
			})
		}
		return errs
	})
}

// site reports whether call applies an apply primitive to a composition
// primitive, returning both names.
func (n Names) site(call *ast.Call) (string, string, bool) {
	callee, ok := call.Fun.(*ast.Ident)
	if !ok || (callee.Name != n.Apply2 && callee.Name != n.Apply3) {
		return "", "", false
	}
	if len(call.Args) == 0 {
		return "", "", false
	}
	compose, ok := call.Args[0].(*ast.Ident)
	if !ok || (compose.Name != n.ComposeLeft && compose.Name != n.ComposeRight) {
		return "", "", false
	}
	return callee.Name, compose.Name, true
}
