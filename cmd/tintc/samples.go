// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/tint/ast"
	"github.com/gogpu/tint/types"
)

type sample struct {
	desc  string
	build func() *ast.Program
}

var samples = map[string]sample{
	"loops":    {"for and while loops", buildLoops},
	"lighting": {"struct access, swizzles and names reserved in GLSL and HLSL", buildLighting},
	"matrix":   {"matrix addition, subtraction and products", buildMatrix},
	"dispatch": {"compute entry point with a switch over a private global", buildDispatch},
}

func sampleNames() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func lookupSample(name string) (*ast.Program, error) {
	s, ok := samples[name]
	if !ok {
		return nil, fmt.Errorf("unknown sample %q (have %s)", name, strings.Join(sampleNames(), ", "))
	}
	return s.build(), nil
}

func buildLoops() *ast.Program {
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

func buildLighting() *ast.Program {
	b := ast.NewBuilder()
	ty := b.Types()
	f32 := ty.F32()
	vec3 := ty.Vec(f32, 3)
	light := ty.Struct(b.Sym("Light"), []types.MemberDesc{
		{Name: b.Sym("intensity"), Type: f32},
		{Name: b.Sym("color"), Type: vec3},
	})
	b.Func("shade",
		[]*ast.Param{b.Param("light", light), b.Param("sample", f32)},
		f32,
		b.Block(
			b.Var("output", nil, b.Mul(b.Member(b.Ident("light"), "intensity"), b.Ident("sample"))),
			b.Let("texture", nil, b.Member(b.Ident("light"), "color")),
			b.Return(b.Add(
				b.Mul(b.Ident("output"), b.Call("length", b.Member(b.Ident("texture"), "xy"))),
				b.Member(b.Ident("texture"), "z"),
			)),
		),
	)
	return b.Build()
}

func buildMatrix() *ast.Program {
	b := ast.NewBuilder()
	ty := b.Types()
	vec := ty.Vec(ty.F32(), 3)
	mat := ty.Mat(vec, 3)
	b.Func("mix_frames",
		[]*ast.Param{b.Param("prev", mat), b.Param("next", mat), b.Param("p", vec)},
		vec,
		b.Block(
			b.Let("delta", nil, b.Sub(b.Ident("next"), b.Ident("prev"))),
			b.Let("frame", nil, b.Add(b.Ident("prev"), b.Ident("delta"))),
			b.Return(b.Mul(b.Ident("frame"), b.Ident("p"))),
		),
	)
	return b.Build()
}

func buildDispatch() *ast.Program {
	b := ast.NewBuilder()
	i32 := b.Types().I32()
	b.GlobalVar("mode", i32, types.SpacePrivate, b.I32(0))
	main := b.Func("main", nil, nil, b.Block(
		b.Switch(b.Ident("mode"),
			b.Case([]ast.Expr{b.Int(0)}, false, b.Block(
				b.Assign(b.Ident("mode"), b.Int(1)),
			)),
			b.Case([]ast.Expr{b.Int(1), b.Int(2)}, false, b.Block(
				b.Assign(b.Ident("mode"), b.Mul(b.Ident("mode"), b.Int(2))),
			)),
			b.DefaultCase(b.Block(b.Assign(b.Ident("mode"), b.Int(0)))),
		),
	))
	main.Stage = ast.StageCompute
	main.WorkgroupSize = [3]uint32{64, 1, 1}
	return b.Build()
}
