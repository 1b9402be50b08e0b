// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/tint/ast"
	"github.com/gogpu/tint/diag"
	"github.com/gogpu/tint/ir"
	"github.com/gogpu/tint/lower"
)

// panicking raises an internal compiler error.
type panicking struct{}

func (panicking) Name() string { return "panicking" }

func (panicking) Apply(*ast.Program, *DataMap) Result[*ast.Program] {
	diag.ICE("broken invariant")
	return Skip[*ast.Program]()
}

// dropTerminators removes the last instruction of every function, leaving
// an invalid module behind.
type dropTerminators struct{}

func (dropTerminators) Name() string { return "drop_terminators" }

func (dropTerminators) Apply(m *ir.Module, _ *DataMap) Result[*ir.Module] {
	for _, fn := range m.Functions() {
		fn.Block().Terminator().Destroy()
	}
	return Replace(m, NewDataMap("dropped"))
}

// functionCount is reported by countFunctions.
type functionCount struct{ n int }

// countFunctions reports the number of functions of the program.
type countFunctions struct{}

func (countFunctions) Name() string { return "count_functions" }

func (countFunctions) Apply(p *ast.Program, _ *DataMap) Result[*ast.Program] {
	return Replace(p, NewDataMap(&functionCount{n: len(p.Functions())}))
}

// seenCount records the functionCount handed to it.
type seenCount struct{ ast, ir *int }

func (seenCount) Name() string { return "seen_count" }

func (s seenCount) Apply(p *ast.Program, inputs *DataMap) Result[*ast.Program] {
	if c, ok := Get[*functionCount](inputs); ok {
		*s.ast = c.n
	}
	return Skip[*ast.Program]()
}

type seenCountIR struct{ seenCount }

func (s seenCountIR) Apply(m *ir.Module, inputs *DataMap) Result[*ir.Module] {
	if c, ok := Get[*functionCount](inputs); ok {
		*s.ir = c.n
	}
	return Skip[*ir.Module]()
}

func TestPipelineRun(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	pl := &Pipeline{
		AST:      []ASTTransform{ForToLoop{}, WhileToLoop{}, Renamer{}},
		IR:       []IRTransform{HandleMatrixArithmetic{}, SwizzleToAccess{}},
		Inputs:   NewDataMap(&RenamerConfig{Target: RenameWGSLKeywords, Requested: map[string]string{"total": "sum"}}),
		Validate: true,
		Logger:   logger,
	}
	p := buildCounting()
	out, err := pl.Run(p)
	require.NoError(t, err)

	assert.False(t, ast.Contains(out.Program, ast.KindForStmt))
	assert.NotSame(t, p, out.Program)
	require.NotNil(t, out.Module.Function("count"))
	assert.Empty(t, ir.Validate(out.Module))

	data, ok := Get[*RenamerData](out.Outputs)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"total": "sum"}, data.Remappings)

	logs := buf.String()
	assert.Contains(t, logs, "pass=for_to_loop outcome=replaced unit=ast")
	assert.Contains(t, logs, "pass=renamer outcome=replaced unit=ast")
	assert.Contains(t, logs, "pass=handle_matrix_arithmetic outcome=skipped unit=ir")
	assert.Contains(t, logs, "msg=\"program lowered\" functions=1 globals=0")
}

func TestPipelineEmpty(t *testing.T) {
	b := ast.NewBuilder()
	b.Func("f", nil, nil, b.Block())
	p := b.Build()

	out, err := (&Pipeline{}).Run(p)
	require.NoError(t, err)
	assert.Same(t, p, out.Program)
	assert.Equal(t, 0, out.Outputs.Len())
	assert.NotNil(t, out.Module.Function("f"))
}

func TestPipelineLoweringError(t *testing.T) {
	b := ast.NewBuilder()
	b.Func("f", nil, nil, b.Block(b.Break()))

	_, err := (&Pipeline{Validate: true}).Run(b.Build())
	require.Error(t, err)
	assert.ErrorContains(t, err, "lowering: ")

	var errs lower.SourceErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 1)
	assert.False(t, diag.IsInternal(err))
}

func TestPipelineUnloweredLoops(t *testing.T) {
	_, err := (&Pipeline{}).Run(buildCounting())
	require.Error(t, err)
	assert.True(t, diag.IsInternal(err), "while and for must be gone before lowering")
}

func TestPipelineInternalError(t *testing.T) {
	pl := &Pipeline{AST: []ASTTransform{panicking{}}}
	_, err := pl.Run(buildCounting())
	require.Error(t, err)
	assert.True(t, diag.IsInternal(err))

	var ice *diag.InternalError
	require.ErrorAs(t, err, &ice)
	assert.Contains(t, ice.Msg, "broken invariant")
}

func TestPipelineValidationFailure(t *testing.T) {
	build := func() *ast.Program {
		b := ast.NewBuilder()
		b.Func("f", nil, nil, b.Block())
		b.Func("g", nil, nil, b.Block())
		return b.Build()
	}

	pl := &Pipeline{IR: []IRTransform{dropTerminators{}}, Validate: true}
	_, err := pl.Run(build())

	var failure *ValidationFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "drop_terminators", failure.Step)
	require.Len(t, failure.Errors, 2)
	assert.Contains(t, err.Error(), "invalid module after drop_terminators: ")
	assert.Contains(t, err.Error(), "(and 1 more)")

	pl.Validate = false
	out, err := pl.Run(build())
	require.NoError(t, err)
	s, ok := Get[string](out.Outputs)
	require.True(t, ok)
	assert.Equal(t, "dropped", s)
}

func TestPipelineHandsOutputsToLaterPasses(t *testing.T) {
	b := ast.NewBuilder()
	b.Func("f", nil, nil, b.Block())
	b.Func("g", nil, nil, b.Block())

	astSeen, irSeen := -1, -1
	seen := seenCount{ast: &astSeen, ir: &irSeen}
	pl := &Pipeline{
		AST:    []ASTTransform{seen, countFunctions{}, seen},
		IR:     []IRTransform{seenCountIR{seen}},
		Inputs: NewDataMap(&RenamerConfig{}),
	}
	out, err := pl.Run(b.Build())
	require.NoError(t, err)

	assert.Equal(t, 2, astSeen)
	assert.Equal(t, 2, irSeen)
	c, ok := Get[*functionCount](out.Outputs)
	require.True(t, ok)
	assert.Equal(t, 2, c.n)
	assert.Equal(t, 1, pl.Inputs.Len(), "inputs are not modified")
}

func TestPipelineOutputsNotSeenBeforeProduced(t *testing.T) {
	b := ast.NewBuilder()
	b.Func("f", nil, nil, b.Block())

	astSeen, irSeen := -1, -1
	pl := &Pipeline{
		AST: []ASTTransform{seenCount{ast: &astSeen, ir: &irSeen}, countFunctions{}},
	}
	_, err := pl.Run(b.Build())
	require.NoError(t, err)
	assert.Equal(t, -1, astSeen)
}
