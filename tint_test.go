// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package tint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/tint/ast"
	"github.com/gogpu/tint/diag"
	"github.com/gogpu/tint/ir"
	"github.com/gogpu/tint/transform"
)

// buildBlend builds
//
//	fn blend(lhs : mat2x2<f32>, rhs : mat2x2<f32>, texture : f32) -> mat2x2<f32> {
//	    var steps = 0;
//	    while steps < 4 { steps = steps + 1; }
//	    return lhs - rhs;
//	}
func buildBlend() *ast.Program {
	b := ast.NewBuilder()
	ty := b.Types()
	mat := ty.Mat(ty.Vec(ty.F32(), 2), 2)
	b.Func("blend",
		[]*ast.Param{b.Param("lhs", mat), b.Param("rhs", mat), b.Param("texture", ty.F32())},
		mat,
		b.Block(
			b.Var("steps", nil, b.Int(0)),
			b.While(b.Less(b.Ident("steps"), b.Int(4)), b.Block(
				b.Assign(b.Ident("steps"), b.Add(b.Ident("steps"), b.Int(1))),
			)),
			b.Return(b.Sub(b.Ident("lhs"), b.Ident("rhs"))),
		),
	)
	return b.Build()
}

func countOps(m *ir.Module, op ir.Op) int {
	n := 0
	var walk func(blk *ir.Block)
	walk = func(blk *ir.Block) {
		for _, inst := range blk.Instructions() {
			if inst.Op() == op {
				n++
			}
			for _, nested := range inst.Blocks() {
				walk(nested)
			}
		}
	}
	for _, fn := range m.Functions() {
		walk(fn.Block())
	}
	return n
}

func TestCompile(t *testing.T) {
	m, err := Compile(buildBlend())
	require.NoError(t, err)
	assert.Empty(t, Validate(m))

	assert.Equal(t, 1, countOps(m, ir.OpLoop))
	assert.Equal(t, 1, countOps(m, ir.OpConstruct), "matrix subtraction is split into columns")
	assert.Equal(t, 4, countOps(m, ir.OpBinary), "a comparison, an addition and one subtraction per column")
}

func TestCompileTargets(t *testing.T) {
	assert.Equal(t, []string{"glsl", "hlsl", "msl", "spirv", "wgsl"}, Targets())

	tests := []struct {
		target   string
		renamed  bool
		splitMat bool
	}{
		{"spirv", false, true},
		{"glsl", true, true},
		{"hlsl", true, true},
		{"msl", false, true},
		{"wgsl", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Target = tt.target
			out, err := CompileWithOptions(buildBlend(), opts)
			require.NoError(t, err)

			_, renamed := transform.Get[*transform.RenamerData](out.Outputs)
			assert.Equal(t, tt.renamed, renamed)
			assert.Equal(t, tt.renamed, out.Program.Function("blend").Params[2].Name != out.Program.Symbols().Get("texture"))
			assert.Equal(t, tt.splitMat, countOps(out.Module, ir.OpConstruct) == 1)
		})
	}
}

func TestCompileCustomConfig(t *testing.T) {
	cfg, err := transform.LoadConfig(strings.NewReader(`
targets:
  loops-only:
    ast: [while_to_loop]
`))
	require.NoError(t, err)

	out, err := CompileWithOptions(buildBlend(), CompileOptions{Target: "loops-only", Config: cfg})
	require.NoError(t, err)
	assert.Zero(t, countOps(out.Module, ir.OpConstruct))

	_, err = CompileWithOptions(buildBlend(), CompileOptions{Config: cfg})
	assert.ErrorContains(t, err, `configuration error: unknown target "spirv"`)
}

func TestCompileErrors(t *testing.T) {
	b := ast.NewBuilder()
	b.Func("f", nil, nil, b.Block(b.Continue()))
	_, err := Compile(b.Build())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spirv pipeline: lowering: ")
	assert.False(t, diag.IsInternal(err))

	_, err = Lower(buildBlend())
	require.Error(t, err)
	assert.True(t, diag.IsInternal(err), "while statements reach the lowerer")
}

func TestLower(t *testing.T) {
	b := ast.NewBuilder()
	i32 := b.Types().I32()
	b.Func("id", []*ast.Param{b.Param("v", i32)}, i32, b.Block(b.Return(b.Ident("v"))))

	m, err := Lower(b.Build())
	require.NoError(t, err)
	assert.Empty(t, Validate(m))
	require.NotNil(t, m.Function("id"))
}
