// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/tint/diag/diagtest"
)

func TestSetParams(t *testing.T) {
	m := NewModule()
	b := NewBuilder(m)
	loop := b.Loop()
	p := m.BlockParam(m.Types().I32())

	loop.Merge().SetParams([]*Value{p})
	assert.Equal(t, []*Value{p}, loop.Merge().Params())
	assert.Same(t, loop.Merge(), p.Block())
	assert.Equal(t, ValueBlockParam, p.Kind())
}

func TestSetParamsFatal(t *testing.T) {
	m := NewModule()
	b := NewBuilder(m)
	i32 := m.Types().I32()

	t.Run("repeat", func(t *testing.T) {
		merge := b.Loop().Merge()
		merge.SetParams(nil)
		diagtest.RequireICE(t, func() { merge.SetParams([]*Value{m.BlockParam(i32)}) })
	})
	t.Run("single entry block", func(t *testing.T) {
		ifInst := b.If(m.Bool(true))
		diagtest.RequireICE(t, func() { ifInst.True().SetParams(nil) })
	})
	t.Run("bound parameter", func(t *testing.T) {
		p := m.BlockParam(i32)
		b.Loop().Merge().SetParams([]*Value{p})
		diagtest.RequireICE(t, func() { b.Loop().Merge().SetParams([]*Value{p}) })
	})
	t.Run("not a block parameter", func(t *testing.T) {
		diagtest.RequireICE(t, func() { b.Loop().Merge().SetParams([]*Value{m.I32(1)}) })
	})
	t.Run("nil parameter", func(t *testing.T) {
		diagtest.RequireICE(t, func() { b.Loop().Merge().SetParams([]*Value{nil}) })
	})
}

func TestInboundSiblingBranches(t *testing.T) {
	m := NewModule()
	b := NewBuilder(m)
	f := m.NewFunction("f", nil, nil)
	b.SetInsertionPoint(f.Block())
	loop := b.Loop()

	b.SetInsertionPoint(loop.Body())
	cont := b.Continue(loop)
	b.SetInsertionPoint(loop.Continuing())
	next := b.NextIteration(loop)

	assert.Equal(t, []*Instruction{cont}, loop.Continuing().InboundSiblingBranches())
	assert.Equal(t, []*Instruction{next}, loop.Body().InboundSiblingBranches())
	assert.Empty(t, loop.Merge().InboundSiblingBranches(), "edges from the loop itself are implicit")
	assert.True(t, loop.Body().IsMultiIn())
	assert.Same(t, loop, loop.Body().Parent())

	next.Destroy()
	assert.Empty(t, loop.Body().InboundSiblingBranches())

	b.SetInsertionPoint(loop.Continuing())
	brk := b.BreakIf(loop, m.Bool(false))
	assert.Equal(t, []*Instruction{brk}, loop.Body().InboundSiblingBranches())
	assert.Equal(t, []*Instruction{brk}, loop.Exits())
	assert.Same(t, loop, brk.Target())

	b.SetInsertionPoint(nil)
	neg := b.Unary(UnaryNegate, m.Types().I32(), m.I32(1))
	diagtest.RequireICE(t, func() { loop.Merge().AddInboundSiblingBranch(neg) })
	diagtest.RequireICE(t, func() { f.Block().AddInboundSiblingBranch(cont) })
}

func TestBranchTargets(t *testing.T) {
	m := NewModule()
	b := NewBuilder(m)
	ifInst := b.If(m.Bool(true))
	sw := b.Switch(m.I32(0))
	loop := b.Loop()

	diagtest.RequireICE(t, func() { b.ExitIf(sw) })
	diagtest.RequireICE(t, func() { b.ExitSwitch(ifInst) })
	diagtest.RequireICE(t, func() { b.ExitLoop(nil) })
	diagtest.RequireICE(t, func() { b.Continue(ifInst) })
	diagtest.RequireICE(t, func() { b.NextIteration(sw) })
	diagtest.RequireICE(t, func() { b.BreakIf(loop, nil) })

	exit := b.ExitSwitch(sw)
	assert.Same(t, sw, exit.Target())
	assert.Equal(t, []*Instruction{exit}, sw.Exits())
}

func TestBlockEditing(t *testing.T) {
	m := NewModule()
	i32 := m.Types().I32()
	b := NewBuilder(m)
	f := m.NewFunction("f", nil, nil)
	blk := f.Block()

	a := b.Unary(UnaryNegate, i32, m.I32(1))
	c := b.Unary(UnaryNegate, i32, m.I32(2))
	ret := b.Return(nil)

	blk.Append(a)
	blk.Append(ret)
	blk.InsertBefore(ret, c)
	assert.Equal(t, []*Instruction{a, c, ret}, blk.Instructions())
	assert.Equal(t, 3, blk.Len())
	assert.True(t, blk.IsTerminated())

	blk.Remove(a)
	assert.Nil(t, a.Block())
	blk.InsertAfter(c, a)
	assert.Equal(t, []*Instruction{c, a, ret}, blk.Instructions())

	diagtest.RequireICE(t, func() { blk.Append(b.Unary(UnaryNegate, i32, m.I32(3))) })
	diagtest.RequireICE(t, func() { blk.Append(a) })
	diagtest.RequireICE(t, func() { blk.InsertAfter(ret, b.Unary(UnaryNegate, i32, m.I32(4))) })
	diagtest.RequireICE(t, func() { blk.InsertBefore(ret, b.Unreachable()) })
}

func TestSwitchCases(t *testing.T) {
	m := NewModule()
	b := NewBuilder(m)
	sw := b.Switch(m.I32(0))
	one := b.AddCase(sw, CaseSelector{Value: m.I32(1)}, CaseSelector{Value: m.I32(2)})
	def := b.AddCase(sw, CaseSelector{})

	require.Len(t, sw.Cases(), 2)
	assert.Same(t, one, sw.Cases()[0].Block)
	assert.True(t, sw.Cases()[1].Selectors[0].IsDefault())
	assert.Equal(t, []*Block{one, def, sw.Merge()}, sw.Blocks())

	diagtest.RequireICE(t, func() { b.AddCase(sw) })
	diagtest.RequireICE(t, func() { b.AddCase(sw, CaseSelector{Value: m.FunctionParam(m.Types().I32())}) })
}
