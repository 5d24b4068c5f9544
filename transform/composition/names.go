package composition

import (
	"github.com/deepnoodle-ai/jsfuse/errz"
	"github.com/deepnoodle-ai/jsfuse/internal/token"
)

// Names holds the identifiers the pass recognizes and the prefixes it uses
// when generating new identifiers.
type Names struct {
	// Apply2 is the generic-apply helper taking a function and two arguments.
	Apply2 string `json:"apply2" mapstructure:"apply2"`

	// Apply3 is the generic-apply helper taking a function and three arguments.
	Apply3 string `json:"apply3" mapstructure:"apply3"`

	// ComposeLeft composes right to left: composeL(f, g)(x) == f(g(x)).
	ComposeLeft string `json:"compose_left" mapstructure:"compose_left"`

	// ComposeRight composes left to right: composeR(f, g)(x) == g(f(x)).
	ComposeRight string `json:"compose_right" mapstructure:"compose_right"`

	// ParamPrefix prefixes the parameters of generated lambdas.
	ParamPrefix string `json:"param_prefix" mapstructure:"param_prefix"`

	// DeclPrefix prefixes hoisted declarations.
	DeclPrefix string `json:"decl_prefix" mapstructure:"decl_prefix"`
}

// DefaultNames returns the names used by the Elm compiler's JavaScript output.
func DefaultNames() Names {
	return Names{
		Apply2:       "A2",
		Apply3:       "A3",
		ComposeLeft:  "$elm$core$Basics$composeL",
		ComposeRight: "$elm$core$Basics$composeR",
		ParamPrefix:  "_param",
		DeclPrefix:   "_decl",
	}
}

// Validate checks that every name is a usable identifier and that the
// primitives can be told apart.
func (n Names) Validate() error {
	fields := []struct {
		field string
		value string
	}{
		{"apply2", n.Apply2},
		{"apply3", n.Apply3},
		{"compose_left", n.ComposeLeft},
		{"compose_right", n.ComposeRight},
		{"param_prefix", n.ParamPrefix},
		{"decl_prefix", n.DeclPrefix},
	}
	for _, f := range fields {
		if f.value == "" {
			return errz.New(errz.ErrConfig, errz.SourceLocation{}, "%s must not be empty", f.field)
		}
		if !IsIdentifier(f.value) {
			return errz.New(errz.ErrConfig, errz.SourceLocation{}, "%s: %q is not a valid identifier", f.field, f.value)
		}
	}
	if n.Apply2 == n.Apply3 {
		return errz.New(errz.ErrConfig, errz.SourceLocation{}, "apply2 and apply3 must differ (both %q)", n.Apply2)
	}
	if n.ComposeLeft == n.ComposeRight {
		return errz.New(errz.ErrConfig, errz.SourceLocation{}, "compose_left and compose_right must differ (both %q)", n.ComposeLeft)
	}
	if n.ParamPrefix == n.DeclPrefix {
		return errz.New(errz.ErrConfig, errz.SourceLocation{}, "param_prefix and decl_prefix must differ (both %q)", n.ParamPrefix)
	}
	return nil
}

// IsIdentifier reports whether name is a JavaScript identifier that is not
// a reserved word.
func IsIdentifier(name string) bool {
	if name == "" || token.IsKeyword(name) {
		return false
	}
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', ch == '_', ch == '$':
		case '0' <= ch && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
