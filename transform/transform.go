// Package transform runs tree-to-tree passes over a parsed program.
package transform

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/jsfuse/ast"
)

// Transformer is a single pass over a program. A Transformer returns the
// rewritten program and must not retain it after returning.
type Transformer interface {
	// Name identifies the pass in logs and errors.
	Name() string

	// Transform rewrites the program.
	Transform(ctx context.Context, program *ast.Program) (*ast.Program, error)
}

// Func adapts an ordinary function to the Transformer interface.
type Func struct {
	name string
	fn   func(ctx context.Context, program *ast.Program) (*ast.Program, error)
}

// NewFunc returns a Transformer with the given name backed by fn.
func NewFunc(name string, fn func(ctx context.Context, program *ast.Program) (*ast.Program, error)) *Func {
	return &Func{name: name, fn: fn}
}

// Name of the pass.
func (f *Func) Name() string { return f.name }

// Transform calls the wrapped function.
func (f *Func) Transform(ctx context.Context, program *ast.Program) (*ast.Program, error) {
	return f.fn(ctx, program)
}

// Pipeline runs transformers in order, feeding each one the output of the
// previous one.
type Pipeline struct {
	transformers []Transformer
}

// NewPipeline returns a Pipeline of the given transformers.
func NewPipeline(transformers ...Transformer) *Pipeline {
	return &Pipeline{transformers: transformers}
}

// Add appends a transformer to the end of the pipeline.
func (p *Pipeline) Add(t Transformer) {
	p.transformers = append(p.transformers, t)
}

// Names returns the names of the transformers in order.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.transformers))
	for _, t := range p.transformers {
		names = append(names, t.Name())
	}
	return names
}

// Run applies every transformer in turn. The first failure stops the
// pipeline and is returned wrapped with the name of the failing pass.
func (p *Pipeline) Run(ctx context.Context, program *ast.Program) (*ast.Program, error) {
	logger := zerolog.Ctx(ctx)
	for _, t := range p.transformers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		result, err := t.Transform(ctx, program)
		if err != nil {
			logger.Debug().Err(err).Str("pass", t.Name()).Msg("pass failed")
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
		logger.Debug().
			Str("pass", t.Name()).
			Dur("elapsed", time.Since(start)).
			Int("statements", len(result.Stmts)).
			Msg("pass complete")
		program = result
	}
	return program, nil
}
