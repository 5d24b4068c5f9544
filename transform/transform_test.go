package transform

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/jsfuse/ast"
)

func appendStmt(name string) Transformer {
	return NewFunc(name, func(ctx context.Context, program *ast.Program) (*ast.Program, error) {
		out := ast.Clone(program)
		out.Stmts = append(out.Stmts, &ast.ExprStmt{X: ast.NewCall(ast.NewIdent(name))})
		return out, nil
	})
}

func TestPipelineOrder(t *testing.T) {
	p := NewPipeline(appendStmt("first"))
	p.Add(appendStmt("second"))
	require.Equal(t, []string{"first", "second"}, p.Names())

	program, err := p.Run(context.Background(), &ast.Program{})
	require.NoError(t, err)
	require.Equal(t, "first(); second();", program.String())
}

func TestPipelineError(t *testing.T) {
	boom := errors.New("boom")
	failing := NewFunc("failing", func(ctx context.Context, program *ast.Program) (*ast.Program, error) {
		return nil, boom
	})
	p := NewPipeline(appendStmt("first"), failing, appendStmt("never"))
	_, err := p.Run(context.Background(), &ast.Program{})
	require.ErrorIs(t, err, boom)
	require.Equal(t, "failing: boom", err.Error())
}

func TestPipelineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPipeline(appendStmt("first")).Run(ctx, &ast.Program{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPipelineLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	_, err := NewPipeline(appendStmt("first")).Run(ctx, &ast.Program{})
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"pass":"first"`)
	require.Contains(t, buf.String(), `"message":"pass complete"`)
}
