// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lower

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/tint/ast"
	"github.com/gogpu/tint/diag"
	"github.com/gogpu/tint/ir"
	"github.com/gogpu/tint/types"
)

// buildScene builds
//
//	var<private> total : f32;
//	fn scale(v : vec3<f32>, k : f32) -> vec3<f32> { return v * k; }
//	@compute fn main(n : i32) -> f32 {
//	    var acc = 0.0;
//	    var i = 0;
//	    loop {
//	        if i >= n { break; }
//	        let v = scale(vec3<f32>(1.0, 2.0, 3.0), 2.0);
//	        acc = acc + v.x + length(v.xy);
//	        switch i {
//	            case 1, 2: { acc = acc * 2.0; }
//	            default: {}
//	        }
//	        continuing { i = i + 1; }
//	    }
//	    total = acc;
//	    return acc;
//	}
func buildScene() *ast.Program {
	b := ast.NewBuilder()
	ty := b.Types()
	f32 := ty.F32()
	vec3 := ty.Vec(f32, 3)

	b.GlobalVar("total", f32, types.SpacePrivate, nil)
	b.Func("scale",
		[]*ast.Param{b.Param("v", vec3), b.Param("k", f32)},
		vec3,
		b.Block(b.Return(b.Mul(b.Ident("v"), b.Ident("k")))),
	)

	loop := b.Loop(
		b.Block(
			b.If(b.Binary(ast.BinaryGreaterEqual, b.Ident("i"), b.Ident("n")), b.Block(b.Break()), nil),
			b.Let("v", nil, b.Call("scale", b.Construct(vec3, b.Float(1), b.Float(2), b.Float(3)), b.Float(2))),
			b.Assign(b.Ident("acc"), b.Add(
				b.Add(b.Ident("acc"), b.Member(b.Ident("v"), "x")),
				b.Call("length", b.Member(b.Ident("v"), "xy")),
			)),
			b.Switch(b.Ident("i"),
				b.Case([]ast.Expr{b.Int(1), b.Int(2)}, false,
					b.Block(b.Assign(b.Ident("acc"), b.Mul(b.Ident("acc"), b.Float(2))))),
				b.DefaultCase(b.Block()),
			),
		),
		b.Block(b.Assign(b.Ident("i"), b.Add(b.Ident("i"), b.Int(1)))),
	)
	main := b.Func("main",
		[]*ast.Param{b.Param("n", ty.I32())},
		f32,
		b.Block(
			b.Var("acc", nil, b.Float(0)),
			b.Var("i", nil, b.Int(0)),
			loop,
			b.Assign(b.Ident("total"), b.Ident("acc")),
			b.Return(b.Ident("acc")),
		),
	)
	main.Stage = ast.StageCompute
	main.WorkgroupSize = [3]uint32{1, 1, 1}
	return b.Build()
}

func TestLowerProgram(t *testing.T) {
	p := buildScene()
	m, err := Lower(p)
	require.NoError(t, err)
	require.Empty(t, ir.Validate(m), m.String())

	assert.Same(t, p.Types(), m.Types())
	require.Len(t, m.Globals(), 1)
	assert.Equal(t, "total", m.NameOf(m.Globals()[0].Result()))
	require.Len(t, m.Functions(), 2)

	scale := m.Function("scale")
	require.NotNil(t, scale)
	assert.Equal(t, ir.StageNone, scale.Stage)
	assert.Equal(t, "v", m.NameOf(scale.Params()[0]))

	main := m.Function("main")
	require.NotNil(t, main)
	assert.Equal(t, ir.StageCompute, main.Stage)
	assert.Equal(t, [3]uint32{1, 1, 1}, main.WorkgroupSize)
	assert.Same(t, p.Types().F32(), main.ReturnType())

	var ops []ir.Op
	for _, inst := range main.Block().Instructions() {
		ops = append(ops, inst.Op())
	}
	assert.Equal(t, []ir.Op{ir.OpVar, ir.OpVar, ir.OpLoop}, ops)

	loop := main.Block().Instructions()[2]
	assert.Len(t, loop.Exits(), 1)
	assert.Equal(t, ir.OpNextIteration, loop.Continuing().Terminator().Op())
	merge := loop.Merge().Instructions()
	require.Len(t, merge, 4)
	assert.Equal(t, ir.OpStore, merge[1].Op())
	assert.Equal(t, ir.OpReturn, merge[3].Op())
}

func TestLowerLiterals(t *testing.T) {
	b := ast.NewBuilder()
	ty := b.Types()
	b.Func("f", nil, nil, b.Block(
		b.Var("h", ty.F16(), b.Float(0.5)),
		b.Var("u", ty.U32(), b.Int(7)),
		b.Var("s", ty.F32(), b.Int(3)),
	))
	m, err := Lower(b.Build())
	require.NoError(t, err)
	require.Empty(t, ir.Validate(m))

	insts := m.Function("f").Block().Instructions()
	require.Len(t, insts, 4)
	assert.Equal(t, "0.5h", insts[0].Operand(0).String())
	assert.Equal(t, "7u", insts[1].Operand(0).String())
	assert.Equal(t, "3.0f", insts[2].Operand(0).String())
}

func TestLowerMostNegativeInt(t *testing.T) {
	b := ast.NewBuilder()
	b.Func("f", nil, b.Types().I32(), b.Block(b.Return(b.Neg(b.Int(2147483648)))))
	m, err := Lower(b.Build())
	require.NoError(t, err)
	ret := m.Function("f").Block().Terminator()
	assert.Equal(t, int32(-2147483648), ret.Operand(0).Constant())
}

func TestLowerErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *ast.Builder)
		want  string
	}{
		{
			name: "unknown identifier",
			build: func(b *ast.Builder) {
				b.Func("f", nil, nil, b.Block(b.Let("x", nil, b.Ident("y"))))
			},
			want: "unknown identifier 'y'",
		},
		{
			name: "break outside loop",
			build: func(b *ast.Builder) {
				b.Func("f", nil, nil, b.Block(b.Break()))
			},
			want: "break outside of a loop or switch",
		},
		{
			name: "continue outside loop",
			build: func(b *ast.Builder) {
				b.Func("f", nil, nil, b.Block(b.Continue()))
			},
			want: "continue outside of a loop",
		},
		{
			name: "break if outside continuing",
			build: func(b *ast.Builder) {
				b.Func("f", nil, nil, b.Block(b.Loop(b.Block(b.BreakIf(b.Bool(true))), nil)))
			},
			want: "break if outside of a continuing block",
		},
		{
			name: "missing return",
			build: func(b *ast.Builder) {
				b.Func("f", nil, b.Types().I32(), b.Block())
			},
			want: "missing return at end of function 'f'",
		},
		{
			name: "assign to let",
			build: func(b *ast.Builder) {
				b.Func("f", nil, nil, b.Block(
					b.Let("x", nil, b.Int(1)),
					b.Assign(b.Ident("x"), b.Int(2)),
				))
			},
			want: "cannot assign to x",
		},
		{
			name: "return type",
			build: func(b *ast.Builder) {
				b.Func("f", nil, b.Types().I32(), b.Block(b.Return(b.F32(1.5))))
			},
			want: "return value of type f32, want i32",
		},
		{
			name: "void call as value",
			build: func(b *ast.Builder) {
				b.Func("g", nil, nil, b.Block())
				b.Func("f", nil, nil, b.Block(b.Let("x", nil, b.Call("g"))))
			},
			want: "function 'g' does not return a value",
		},
		{
			name: "unknown function",
			build: func(b *ast.Builder) {
				b.Func("f", nil, nil, b.Block(b.CallStmt(b.Call("h"))))
			},
			want: "unknown function 'h'",
		},
		{
			name: "argument count",
			build: func(b *ast.Builder) {
				b.Func("g", nil, nil, b.Block())
				b.Func("f", nil, nil, b.Block(b.CallStmt(b.Call("g", b.Int(1)))))
			},
			want: "function 'g' takes 0 arguments, got 1",
		},
		{
			name: "i32 overflow",
			build: func(b *ast.Builder) {
				b.Func("f", nil, nil, b.Block(b.Let("x", nil, b.Int(3000000000))))
			},
			want: "value 3000000000 does not fit in i32",
		},
		{
			name: "float switch",
			build: func(b *ast.Builder) {
				b.Func("f", nil, nil, b.Block(b.Switch(b.F32(1), b.DefaultCase(b.Block()))))
			},
			want: "switch selector must be i32 or u32, not f32",
		},
		{
			name: "invalid swizzle",
			build: func(b *ast.Builder) {
				vec2 := b.Types().Vec(b.Types().F32(), 2)
				b.Func("f", nil, nil, b.Block(
					b.Var("v", vec2, nil),
					b.Let("x", nil, b.Member(b.Ident("v"), "z")),
				))
			},
			want: "invalid swizzle 'z' of vec2<f32>",
		},
		{
			name: "initializer type",
			build: func(b *ast.Builder) {
				b.Func("f", nil, nil, b.Block(b.Var("x", b.Types().I32(), b.Bool(true))))
			},
			want: "initializer of type bool, want i32",
		},
		{
			name: "duplicate function",
			build: func(b *ast.Builder) {
				b.Func("f", nil, nil, b.Block())
				b.Func("f", nil, nil, b.Block())
			},
			want: "redeclaration of function 'f'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ast.NewBuilder()
			tt.build(b)
			m, err := Lower(b.Build())
			assert.Nil(t, m)
			var errs SourceErrors
			require.ErrorAs(t, err, &errs)
			require.Len(t, errs, 1, err.Error())
			assert.Equal(t, tt.want, errs[0].Message)
		})
	}
}

func TestLowerErrorSource(t *testing.T) {
	b := ast.NewBuilder()
	src := ast.Source{File: "a.wgsl", Begin: ast.Position{Line: 3, Column: 5}}
	b.Func("f", nil, nil, b.Block(b.At(src).Break(), b.Continue()))
	_, err := Lower(b.Build())
	require.Error(t, err)
	assert.Equal(t, "a.wgsl:3:5: break outside of a loop or switch (and 1 more errors)", err.Error())
}

func TestLowerLoopStatementsAreInternalErrors(t *testing.T) {
	b := ast.NewBuilder()
	b.Func("f", nil, nil, b.Block(b.While(b.Bool(false), b.Block())))
	m, err := Lower(b.Build())
	assert.Nil(t, m)
	require.Error(t, err)
	assert.True(t, diag.IsInternal(err))

	var ice *diag.InternalError
	require.True(t, errors.As(err, &ice))
	assert.Contains(t, ice.Error(), "run the loop transforms first")
}

func TestSwizzleIndices(t *testing.T) {
	tests := []struct {
		name  string
		width uint32
		want  []uint32
		ok    bool
	}{
		{"x", 2, []uint32{0}, true},
		{"zyx", 3, []uint32{2, 1, 0}, true},
		{"rgba", 4, []uint32{0, 1, 2, 3}, true},
		{"w", 3, nil, false},
		{"xg", 4, nil, false},
		{"xxxxx", 4, nil, false},
		{"", 4, nil, false},
	}
	for _, tt := range tests {
		got, ok := swizzleIndices(tt.name, tt.width)
		assert.Equal(t, tt.ok, ok, tt.name)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.name)
		}
	}
}

func TestBinaryType(t *testing.T) {
	tm := types.NewManager()
	f32 := tm.F32()
	vec2, vec3 := tm.Vec(f32, 2), tm.Vec(f32, 3)
	mat3x2 := tm.Mat(vec2, 3)

	assert.Same(t, tm.Bool(), binaryType(tm, ir.BinaryLess, f32, f32))
	assert.Same(t, tm.Vec(tm.Bool(), 3), binaryType(tm, ir.BinaryEqual, vec3, vec3))
	assert.Same(t, vec2, binaryType(tm, ir.BinaryMultiply, mat3x2, vec3))
	assert.Same(t, vec3, binaryType(tm, ir.BinaryMultiply, vec2, mat3x2))
	assert.Same(t, tm.Mat(vec2, 2), binaryType(tm, ir.BinaryMultiply, mat3x2, tm.Mat(vec3, 2)))
	assert.Same(t, vec3, binaryType(tm, ir.BinaryMultiply, f32, vec3))
	assert.Same(t, vec3, binaryType(tm, ir.BinaryAdd, vec3, f32))
}
