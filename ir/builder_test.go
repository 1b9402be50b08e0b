// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/tint/diag/diagtest"
	"github.com/gogpu/tint/types"
)

func TestSwizzleUsage(t *testing.T) {
	m := NewModule()
	b := NewBuilder(m)
	v := b.Var(types.SpaceFunction, m.Types().I32(), types.AccessReadWrite, nil)
	s := b.Swizzle(m.Types().I32(), v.Result(), []uint32{1})

	require.Equal(t, []Usage{{Inst: s, Operand: 0}}, v.Result().Usages())
	assert.Equal(t, []uint32{1}, s.Indices())
	assert.Same(t, m.Types().I32(), s.Result().Type())
}

func TestSwizzleResult(t *testing.T) {
	m := NewModule()
	ty := m.Types()
	b := NewBuilder(m)
	vec4 := m.FunctionParam(ty.Vec(ty.F32(), 4))

	indices := []uint32{3, 0}
	s := b.Swizzle(ty.Vec(ty.F32(), 2), vec4, indices)
	indices[0] = 1

	assert.Equal(t, OpSwizzle, s.Op())
	assert.Equal(t, []uint32{3, 0}, s.Indices(), "indices are copied")
	assert.Equal(t, ValueInstructionResult, s.Result().Kind())
	assert.Same(t, s, s.Result().Instruction())
}

func TestSwizzleFatal(t *testing.T) {
	m := NewModule()
	ty := m.Types()
	b := NewBuilder(m)
	f32 := ty.F32()
	vec2 := m.FunctionParam(ty.Vec(f32, 2))
	vec4 := m.FunctionParam(ty.Vec(f32, 4))

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil type", func() { b.Swizzle(nil, vec4, []uint32{0}) }},
		{"nil object", func() { b.Swizzle(f32, nil, []uint32{0}) }},
		{"no indices", func() { b.Swizzle(f32, vec4, nil) }},
		{"too many indices", func() { b.Swizzle(ty.Vec(f32, 4), vec4, []uint32{0, 1, 2, 3, 0}) }},
		{"index out of range", func() { b.Swizzle(f32, vec4, []uint32{4}) }},
		{"scalar with two indices", func() { b.Swizzle(f32, vec4, []uint32{0, 1}) }},
		{"vector width mismatch", func() { b.Swizzle(ty.Vec(f32, 3), vec4, []uint32{0, 1}) }},
		{"index beyond source", func() { b.Swizzle(f32, vec2, []uint32{2}) }},
		{"non-vector result", func() { b.Swizzle(ty.Mat(ty.Vec(f32, 2), 2), vec4, []uint32{0}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diagtest.RequireICE(t, tt.fn)
		})
	}
	assert.False(t, vec4.IsUsed(), "failed swizzles leave no usages")
}

func TestDestroyDropsUsages(t *testing.T) {
	m := NewModule()
	i32 := m.Types().I32()
	b := NewBuilder(m)
	a := m.FunctionParam(i32)

	add := b.Binary(BinaryAdd, i32, a, a)
	require.Equal(t, []Usage{{Inst: add, Operand: 0}, {Inst: add, Operand: 1}}, a.Usages())

	add.Destroy()
	assert.True(t, add.IsDestroyed())
	assert.Empty(t, a.Usages())
	assert.False(t, a.IsUsed())
}

func TestSetOperandMovesUsage(t *testing.T) {
	m := NewModule()
	i32 := m.Types().I32()
	b := NewBuilder(m)
	a := m.FunctionParam(i32)
	c := m.I32(7)

	add := b.Binary(BinaryAdd, i32, a, a)
	add.SetOperand(1, c)

	assert.Equal(t, []Usage{{Inst: add, Operand: 0}}, a.Usages())
	assert.Equal(t, []Usage{{Inst: add, Operand: 1}}, c.Usages())
	assert.Same(t, c, add.Operand(1))
}

func TestReplaceAllUsesWith(t *testing.T) {
	m := NewModule()
	i32 := m.Types().I32()
	b := NewBuilder(m)
	a := m.FunctionParam(i32)
	c := m.FunctionParam(i32)

	add := b.Binary(BinaryAdd, i32, a, c)
	neg := b.Unary(UnaryNegate, i32, a)
	a.ReplaceAllUsesWith(c)

	assert.Empty(t, a.Usages())
	assert.ElementsMatch(t, []Usage{
		{Inst: add, Operand: 0},
		{Inst: add, Operand: 1},
		{Inst: neg, Operand: 0},
	}, c.Usages())
}

func TestDestroyFatal(t *testing.T) {
	m := NewModule()
	i32 := m.Types().I32()
	b := NewBuilder(m)
	a := m.FunctionParam(i32)

	add := b.Binary(BinaryAdd, i32, a, a)
	b.Unary(UnaryNegate, i32, add.Result())
	diagtest.RequireICE(t, add.Destroy)

	neg := b.Unary(UnaryNegate, i32, a)
	neg.Destroy()
	diagtest.RequireICE(t, neg.Destroy)
}

func TestDestroyControlInstruction(t *testing.T) {
	m := NewModule()
	ty := m.Types()
	b := NewBuilder(m)
	cond := m.FunctionParam(ty.Bool())
	x := m.FunctionParam(ty.I32())
	f := m.NewFunction("f", []*Value{cond, x}, nil)

	b.SetInsertionPoint(f.Block())
	ifInst := b.If(cond)
	b.SetInsertionPoint(ifInst.True())
	b.Unary(UnaryNegate, ty.I32(), x)
	b.ExitIf(ifInst)
	b.SetInsertionPoint(ifInst.False())
	b.ExitIf(ifInst)
	b.SetInsertionPoint(ifInst.Merge())
	b.Return(nil)
	require.Len(t, ifInst.Exits(), 2)

	ifInst.Destroy()
	assert.True(t, f.Block().IsEmpty())
	assert.True(t, ifInst.True().IsEmpty())
	assert.True(t, ifInst.Merge().IsEmpty())
	assert.Empty(t, ifInst.Exits())
	assert.False(t, cond.IsUsed())
	assert.False(t, x.IsUsed())
}

func TestConstantsAreInterned(t *testing.T) {
	m := NewModule()
	assert.Same(t, m.I32(1), m.I32(1))
	assert.NotSame(t, m.I32(1), m.U32(1))
	assert.Same(t, m.Bool(true), m.Constant(m.Types().Bool(), true))
	assert.Equal(t, ValueConstant, m.F32(0.5).Kind())
	assert.Equal(t, float32(0.5), m.F32(0.5).Constant())

	diagtest.RequireICE(t, func() { m.Constant(m.Types().I32(), uint32(1)) })
	diagtest.RequireICE(t, func() { m.Constant(nil, true) })
}

func TestValueString(t *testing.T) {
	m := NewModule()
	tests := []struct {
		v    *Value
		want string
	}{
		{m.Bool(false), "false"},
		{m.I32(-3), "-3i"},
		{m.U32(4), "4u"},
		{m.F32(1), "1.0f"},
		{m.F32(0.25), "0.25f"},
		{m.F16(2), "2.0h"},
		{m.AbstractInt(9), "9"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.String())
	}

	p := m.FunctionParam(m.Types().I32())
	assert.Equal(t, "%"+strconv.FormatUint(uint64(p.ID().Index), 10), p.String())
	m.SetName(p, "x")
	assert.Equal(t, "%x", p.String())
	assert.Equal(t, "x", m.NameOf(p))
}

func TestForeignOperandFatal(t *testing.T) {
	m, other := NewModule(), NewModule()
	b := NewBuilder(m)
	i32 := m.Types().I32()
	foreign := other.FunctionParam(other.Types().I32())

	diagtest.RequireICE(t, func() { b.Binary(BinaryAdd, i32, m.I32(1), foreign) })
	diagtest.RequireICE(t, func() { b.SetInsertionPoint(other.NewFunction("g", nil, nil).Block()) })
}

func TestArityFatal(t *testing.T) {
	m := NewModule()
	diagtest.RequireICE(t, func() { m.newInst(OpLoad, nil) })
	diagtest.RequireICE(t, func() { m.newInst(OpStore, []*Value{m.I32(1)}) })
	diagtest.RequireICE(t, func() { m.newInst(OpReturn, []*Value{m.I32(1), m.I32(2)}) })
}

func TestLoadStoreTypes(t *testing.T) {
	m := NewModule()
	ty := m.Types()
	b := NewBuilder(m)
	v := b.Var(types.SpaceFunction, ty.F32(), types.AccessReadWrite, m.F32(1))

	assert.Same(t, ty.Pointer(types.SpaceFunction, ty.F32(), types.AccessReadWrite), v.Result().Type())
	ld := b.Load(v.Result())
	assert.Same(t, ty.F32(), ld.Result().Type())
	st := b.Store(v.Result(), ld.Result())
	assert.Nil(t, st.Result())

	diagtest.RequireICE(t, func() { b.Load(m.F32(1)) })
}

func TestCall(t *testing.T) {
	m := NewModule()
	ty := m.Types()
	b := NewBuilder(m)
	callee := m.NewFunction("sq", []*Value{m.FunctionParam(ty.F32())}, ty.F32())
	void := m.NewFunction("tick", nil, nil)

	c := b.Call(callee, m.F32(2))
	assert.Same(t, callee, c.Callee())
	require.NotNil(t, c.Result())
	assert.Same(t, ty.F32(), c.Result().Type())
	assert.Nil(t, b.Call(void).Result())

	diagtest.RequireICE(t, func() { b.Call(callee) })
	assert.Same(t, callee, m.Function("sq"))
	assert.Nil(t, m.Function("missing"))
}

func TestInsertionPoint(t *testing.T) {
	m := NewModule()
	i32 := m.Types().I32()
	b := NewBuilder(m)
	f := m.NewFunction("f", nil, nil)

	b.SetInsertionPoint(f.Block())
	first := b.Unary(UnaryNegate, i32, m.I32(1))
	ret := b.Return(nil)
	b.InsertBefore(ret)
	second := b.Unary(UnaryNegate, i32, m.I32(2))

	assert.Same(t, f.Block(), b.Block())
	assert.Equal(t, []*Instruction{first, second, ret}, f.Block().Instructions())
	assert.Same(t, ret, f.Block().Terminator())

	b.SetInsertionPoint(nil)
	detached := b.Unary(UnaryNegate, i32, m.I32(3))
	assert.Nil(t, detached.Block())
}
