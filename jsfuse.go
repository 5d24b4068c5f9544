// Package jsfuse optimizes JavaScript emitted by curried-language compilers
// by replacing function composition helpers with direct calls.
//
// Optimize parses the source, runs the composition pass and prints the
// result:
//
//	result, err := jsfuse.Optimize(ctx, source)
//	if err != nil {
//		return err
//	}
//	fmt.Print(result.Code)
package jsfuse

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/jsfuse/ast"
	"github.com/deepnoodle-ai/jsfuse/parser"
	"github.com/deepnoodle-ai/jsfuse/transform"
	"github.com/deepnoodle-ai/jsfuse/transform/composition"
)

// Result of an Optimize call.
type Result struct {
	// Code is the rewritten program.
	Code string

	// Program is the rewritten tree that Code was printed from.
	Program *ast.Program

	// Stats reports what the composition pass changed.
	Stats composition.Stats
}

// Option configures an Optimize call.
type Option func(*options)

type options struct {
	filename string
	names    composition.Names
	logger   *zerolog.Logger
	strict   bool
}

func collectOptions(opts ...Option) *options {
	o := &options{names: composition.DefaultNames()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithFilename sets the filename reported in error locations.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithNames overrides the recognized primitives and generated name prefixes.
func WithNames(names composition.Names) Option {
	return func(o *options) {
		o.names = names
	}
}

// WithLogger attaches a logger for the duration of the call. Without it the
// logger already in the context, if any, is used.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithStrict makes Optimize fail with a *transform.ValidationErrors when
// composition sites remain after rewriting.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// Optimize rewrites every composition site in source. Syntax errors are
// returned as a *multierror.Error of *errz.Error values; a malformed
// composition site is returned as an *errz.Error of kind errz.ErrMalformed.
func Optimize(ctx context.Context, source string, opts ...Option) (*Result, error) {
	o := collectOptions(opts...)
	if o.logger != nil {
		ctx = o.logger.WithContext(ctx)
	}
	program, err := Parse(ctx, source, opts...)
	if err != nil {
		return nil, err
	}
	var stats composition.Stats
	pass := composition.New(
		composition.WithNames(o.names),
		composition.WithStatsFunc(func(s composition.Stats) {
			stats = stats.Add(s)
		}),
	)
	out, err := transform.NewPipeline(pass).Run(ctx, program)
	if err != nil {
		return nil, err
	}
	if o.strict {
		if err := transform.Validate(out, pass.Residual()); err != nil {
			return nil, err
		}
	}
	return &Result{
		Code:    ast.Format(out),
		Program: out,
		Stats:   stats,
	}, nil
}

// Parse parses source into a program without rewriting it.
func Parse(ctx context.Context, source string, opts ...Option) (*ast.Program, error) {
	o := collectOptions(opts...)
	var parserOpts []parser.Option
	if o.filename != "" {
		parserOpts = append(parserOpts, parser.WithFilename(o.filename))
	}
	return parser.Parse(ctx, source, parserOpts...)
}
