// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/tint/types"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func buildShader() *Program {
	b := NewBuilder()
	ty := b.Types()
	f32 := ty.F32()
	vec4 := ty.Vec(f32, 4)

	params := ty.Struct(b.Sym("Params"), []types.MemberDesc{
		{Name: b.Sym("scale"), Type: f32},
		{Name: b.Sym("count"), Type: ty.U32()},
	})
	b.GlobalVar("params", params, types.SpaceUniform, nil)
	b.GlobalVar("counter", ty.I32(), types.SpacePrivate, b.I32(0))

	b.Func("shade", []*Param{b.Param("c", vec4)}, vec4, b.Block(
		b.Let("k", nil, b.Mul(b.Member(b.Ident("c"), "xyz"), b.Float(0.5))),
		b.If(b.Greater(b.Member(b.Ident("c"), "x"), b.F32(0.5)),
			b.Block(b.Return(b.Ident("c"))),
			b.If(b.Greater(b.Member(b.Ident("c"), "y"), b.F32(0.5)),
				b.Block(b.Discard()),
				b.Block(b.Return(b.Construct(vec4, b.Ident("k"), b.F32(1)))),
			),
		),
		b.Return(b.Construct(vec4)),
	))

	main := b.Func("main", nil, nil, b.Block(
		b.Var("sum", f32, nil),
		b.For(
			b.Var("i", ty.U32(), b.U32(0)),
			b.Less(b.Ident("i"), b.Member(b.Ident("params"), "count")),
			b.Assign(b.Ident("i"), b.Add(b.Ident("i"), b.U32(1))),
			b.Block(b.Assign(b.Ident("sum"), b.Add(b.Ident("sum"), b.Construct(f32, b.Ident("i"))))),
		),
		b.Loop(
			b.Block(b.Assign(b.Ident("counter"), b.Add(b.Ident("counter"), b.I32(1)))),
			b.Block(b.BreakIf(b.Binary(BinaryGreaterEqual, b.Ident("counter"), b.I32(10)))),
		),
		b.Switch(b.Ident("counter"),
			b.Case([]Expr{b.I32(1), b.I32(2)}, false, b.Block(b.Break())),
			b.Case([]Expr{b.I32(3)}, true, b.Block(b.Assign(b.Ident("sum"), b.Neg(b.Ident("sum"))))),
		),
		b.While(b.Not(b.Less(b.Ident("sum"), b.F32(0))), b.Block(
			b.Assign(b.Ident("sum"), b.Sub(b.Ident("sum"), b.F32(1))),
			b.Continue(),
		)),
		b.CallStmt(b.Call("store", b.Ident("sum"))),
	))
	main.Stage = StageCompute
	main.WorkgroupSize = [3]uint32{64, 1, 1}

	return b.Build()
}

func TestPrintProgram(t *testing.T) {
	g := newGoldie(t)
	g.Assert(t, "program", []byte(Print(buildShader())))
}

func TestFprintMatchesPrint(t *testing.T) {
	p := buildShader()
	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, p))
	assert.Equal(t, Print(p), buf.String())
}

func TestExprString(t *testing.T) {
	b := NewBuilder()
	tests := []struct {
		expr Expr
		want string
	}{
		{b.Int(-3), "-3"},
		{b.U32(7), "7u"},
		{b.Float(2), "2.0"},
		{b.F16(1.5), "1.5h"},
		{b.Bool(false), "false"},
		{b.Neg(b.Neg(b.Ident("x"))), "-(-x)"},
		{b.Index(b.Ident("a"), b.Add(b.Ident("i"), b.Int(1))), "a[(i + 1)]"},
		{b.Call("max", b.Ident("a"), b.Ident("b")), "max(a, b)"},
	}
	p := b.Build()
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExprString(p, tt.expr))
	}
}
