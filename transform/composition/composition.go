// Package composition rewrites function composition built from generic-apply
// helpers into direct calls.
//
// Compilers for curried languages emit "f >> g" as
//
//	A2($elm$core$Basics$composeR, f, g)
//
// which allocates a partial application on every evaluation and hides the
// call structure from later passes. The pass replaces such sites with one of:
//
//   - a lambda: function (_param_1) { return g(f(_param_1)); }
//   - a direct call, for the three-argument form A3(composeR, f, g, x): g(f(x))
//   - an existing generated lambda with the other operand fused into it
//
// Operands that are calls or function literals are first bound to fresh
// variables declared just before the enclosing var or return statement, so
// that each is still evaluated exactly once.
package composition

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/jsfuse/ast"
)

// Name of the pass as reported in logs and pipeline errors.
const Name = "composition"

// Stats counts what a single run rewrote.
type Stats struct {
	Lambdas     int `json:"lambdas"`      // new lambdas generated
	Merges      int `json:"merges"`       // pairs of generated lambdas fused into one
	Splices     int `json:"splices"`      // calls pushed into a generated lambda's tail
	Wraps       int `json:"wraps"`        // calls wrapped around a generated lambda's result
	DirectCalls int `json:"direct_calls"` // three-argument sites turned into plain calls
	Hoisted     int `json:"hoisted"`      // operands bound to fresh declarations
	Skipped     int `json:"skipped"`      // sites left alone because hoisting was not possible
}

// Rewrites returns the number of composition sites that were replaced.
func (s Stats) Rewrites() int {
	return s.Lambdas + s.Merges + s.Splices + s.Wraps + s.DirectCalls
}

// Add returns the sum of two Stats.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Lambdas:     s.Lambdas + other.Lambdas,
		Merges:      s.Merges + other.Merges,
		Splices:     s.Splices + other.Splices,
		Wraps:       s.Wraps + other.Wraps,
		DirectCalls: s.DirectCalls + other.DirectCalls,
		Hoisted:     s.Hoisted + other.Hoisted,
		Skipped:     s.Skipped + other.Skipped,
	}
}

// Option configures a Pass.
type Option func(*Pass)

// WithNames sets the recognized primitives and generated name prefixes.
func WithNames(names Names) Option {
	return func(p *Pass) {
		p.names = names
	}
}

// WithStatsFunc registers a function that receives the Stats of every
// successful Transform call.
func WithStatsFunc(fn func(Stats)) Option {
	return func(p *Pass) {
		p.onStats = fn
	}
}

// Pass is the composition rewrite. A Pass holds only configuration, so one
// value may be used for any number of concurrent runs.
type Pass struct {
	names   Names
	onStats func(Stats)
}

// New returns a Pass using DefaultNames unless overridden.
func New(opts ...Option) *Pass {
	p := &Pass{names: DefaultNames()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name identifies the pass.
func (p *Pass) Name() string {
	return Name
}

// Names returns the configured names.
func (p *Pass) Names() Names {
	return p.names
}

// Transform rewrites the program. It satisfies transform.Transformer.
func (p *Pass) Transform(ctx context.Context, program *ast.Program) (*ast.Program, error) {
	out, stats, err := p.Run(ctx, program)
	if err != nil {
		return nil, err
	}
	if p.onStats != nil {
		p.onStats(stats)
	}
	return out, nil
}

// Run rewrites a copy of the program and reports what changed. The input
// program is left untouched. Generated names are numbered from 1 and skip
// any identifier already present in the program.
func (p *Pass) Run(ctx context.Context, program *ast.Program) (*ast.Program, Stats, error) {
	if err := p.names.Validate(); err != nil {
		return nil, Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}
	logger := zerolog.Ctx(ctx)
	out := ast.Clone(program)
	r := newRewriter(ctx, p.names, logger, out)
	ast.RewriteChildren(out, r)
	if r.err != nil {
		return nil, r.stats, r.err
	}
	logger.Info().
		Int("rewrites", r.stats.Rewrites()).
		Int("lambdas", r.stats.Lambdas).
		Int("merges", r.stats.Merges).
		Int("splices", r.stats.Splices).
		Int("wraps", r.stats.Wraps).
		Int("direct_calls", r.stats.DirectCalls).
		Int("hoisted", r.stats.Hoisted).
		Int("skipped", r.stats.Skipped).
		Msg("composition pass complete")
	return out, r.stats, nil
}
