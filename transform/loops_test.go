// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/tint/ast"
	"github.com/gogpu/tint/lower"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// buildCounting builds
//
//	fn count(n : u32) -> u32 {
//	    var total : u32 = 0u;
//	    for (var i : u32 = 0u; i < n; i = i + 1u) { total = total + i; }
//	    while total > 100u { total = total - 100u; }
//	    return total;
//	}
func buildCounting() *ast.Program {
	b := ast.NewBuilder()
	u32 := b.Types().U32()
	b.Func("count", []*ast.Param{b.Param("n", u32)}, u32, b.Block(
		b.Var("total", u32, b.U32(0)),
		b.For(
			b.Var("i", u32, b.U32(0)),
			b.Less(b.Ident("i"), b.Ident("n")),
			b.Assign(b.Ident("i"), b.Add(b.Ident("i"), b.U32(1))),
			b.Block(b.Assign(b.Ident("total"), b.Add(b.Ident("total"), b.Ident("i")))),
		),
		b.While(b.Greater(b.Ident("total"), b.U32(100)), b.Block(
			b.Assign(b.Ident("total"), b.Sub(b.Ident("total"), b.U32(100))),
		)),
		b.Return(b.Ident("total")),
	))
	return b.Build()
}

func TestLoopTransforms(t *testing.T) {
	p := buildCounting()
	before := ast.Print(p)

	res := ForToLoop{}.Apply(p, NewDataMap())
	require.Equal(t, Replaced, res.Outcome)
	assert.False(t, ast.Contains(res.Unit, ast.KindForStmt))
	assert.True(t, ast.Contains(res.Unit, ast.KindWhileStmt))

	res = WhileToLoop{}.Apply(res.Unit, NewDataMap())
	require.Equal(t, Replaced, res.Outcome)
	out := res.Unit
	assert.False(t, ast.Contains(out, ast.KindWhileStmt))

	assert.Equal(t, before, ast.Print(p), "the input program is left alone")
	newGoldie(t).Assert(t, "loops", []byte(ast.Print(out)))

	_, err := lower.Lower(out)
	require.NoError(t, err)
}

func TestWhileToLoopShape(t *testing.T) {
	b := ast.NewBuilder()
	b.Func("f", nil, nil, b.Block(
		b.While(b.Bool(true), b.Block(b.Break())),
	))
	res := WhileToLoop{}.Apply(b.Build(), nil)
	require.Equal(t, Replaced, res.Outcome)
	assert.Nil(t, res.Outputs)

	body := res.Unit.Function("f").Body.Stmts
	require.Len(t, body, 1)
	loop, ok := body[0].(*ast.LoopStmt)
	require.True(t, ok, "got %T", body[0])
	assert.Nil(t, loop.Continuing)
	require.Len(t, loop.Body.Stmts, 2)

	guard, ok := loop.Body.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	not, ok := guard.Cond.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.UnaryNot, not.Op)
	assert.IsType(t, &ast.BoolLiteral{}, not.Expr)
	assert.Nil(t, guard.Else)
	require.Len(t, guard.Body.Stmts, 1)
	assert.IsType(t, &ast.BreakStmt{}, guard.Body.Stmts[0])
	assert.IsType(t, &ast.BreakStmt{}, loop.Body.Stmts[1])
}

func TestForToLoopMissingParts(t *testing.T) {
	b := ast.NewBuilder()
	b.Func("f", nil, nil, b.Block(
		b.For(nil, nil, nil, b.Block(b.Break())),
	))
	res := ForToLoop{}.Apply(b.Build(), nil)
	require.Equal(t, Replaced, res.Outcome)

	body := res.Unit.Function("f").Body.Stmts
	require.Len(t, body, 1)
	loop, ok := body[0].(*ast.LoopStmt)
	require.True(t, ok, "no block without an initializer, got %T", body[0])
	assert.Nil(t, loop.Continuing)
	require.Len(t, loop.Body.Stmts, 1)
	assert.IsType(t, &ast.BreakStmt{}, loop.Body.Stmts[0])
}

func TestLoopTransformsSkip(t *testing.T) {
	b := ast.NewBuilder()
	b.Func("f", nil, nil, b.Block(b.Loop(b.Block(b.Break()), nil)))
	p := b.Build()

	assert.Equal(t, Skipped, WhileToLoop{}.Apply(p, nil).Outcome)
	assert.Equal(t, Skipped, ForToLoop{}.Apply(p, nil).Outcome)

	res := WhileToLoop{}.Apply(buildCounting(), nil)
	require.Equal(t, Replaced, res.Outcome)
	assert.Equal(t, Skipped, WhileToLoop{}.Apply(res.Unit, nil).Outcome, "a second run has nothing to do")
}
