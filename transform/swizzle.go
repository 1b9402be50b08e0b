// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"github.com/gogpu/tint/ir"
	"github.com/gogpu/tint/types"
)

// SwizzleToAccess replaces single-component swizzles of vector values with
// constant-index accesses:
//
//	%x:f32 = swizzle %v, y
//
// becomes
//
//	%x:f32 = access %v, 1u
type SwizzleToAccess struct{}

// Name implements Transform.
func (SwizzleToAccess) Name() string { return "swizzle_to_access" }

// Apply implements IRTransform.
func (SwizzleToAccess) Apply(m *ir.Module, _ *DataMap) Result[*ir.Module] {
	var work []*ir.Instruction
	for _, inst := range instructions(m) {
		if inst.Op() != ir.OpSwizzle || len(inst.Indices()) != 1 {
			continue
		}
		if _, ok := inst.Operand(0).Type().(*types.Vector); ok {
			work = append(work, inst)
		}
	}
	if len(work) == 0 {
		return Skip[*ir.Module]()
	}

	b := ir.NewBuilder(m)
	for _, inst := range work {
		b.InsertBefore(inst)
		access := b.Access(inst.Result().Type(), inst.Operand(0), m.U32(inst.Indices()[0]))
		replaceInstruction(m, inst, access)
	}
	return Replace(m, nil)
}

// instructions returns every instruction of the functions of m, nested
// blocks included, in program order.
func instructions(m *ir.Module) []*ir.Instruction {
	var out []*ir.Instruction
	var walk func(blk *ir.Block)
	walk = func(blk *ir.Block) {
		for _, inst := range blk.Instructions() {
			out = append(out, inst)
			for _, nested := range inst.Blocks() {
				walk(nested)
			}
		}
	}
	for _, fn := range m.Functions() {
		walk(fn.Block())
	}
	return out
}

// replaceInstruction redirects the uses of old to the result of with, which
// inherits the name of old, and destroys old.
func replaceInstruction(m *ir.Module, old, with *ir.Instruction) {
	res := old.Result()
	if name := m.NameOf(res); name != "" {
		m.SetName(with.Result(), name)
	}
	res.ReplaceAllUsesWith(with.Result())
	old.Destroy()
}
