// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"github.com/gogpu/tint/ir"
	"github.com/gogpu/tint/types"
)

// HandleMatrixArithmetic splits matrix operations that some targets lack
// into per-column operations:
//
//	%r:mat2x3<f32> = add %a, %b
//
// becomes
//
//	%c0:vec3<f32> = access %a, 0u
//	%d0:vec3<f32> = access %b, 0u
//	%s0:vec3<f32> = add %c0, %d0
//	...
//	%r:mat2x3<f32> = construct %s0, %s1
//
// Subtraction and conversions between matrix types are split the same way.
type HandleMatrixArithmetic struct{}

// Name implements Transform.
func (HandleMatrixArithmetic) Name() string { return "handle_matrix_arithmetic" }

// Apply implements IRTransform.
func (HandleMatrixArithmetic) Apply(m *ir.Module, _ *DataMap) Result[*ir.Module] {
	var work []*ir.Instruction
	for _, inst := range instructions(m) {
		if isMatrixArithmetic(inst) {
			work = append(work, inst)
		}
	}
	if len(work) == 0 {
		return Skip[*ir.Module]()
	}

	b := ir.NewBuilder(m)
	for _, inst := range work {
		mat := inst.Result().Type().(*types.Matrix)
		b.InsertBefore(inst)

		cols := make([]*ir.Value, mat.Columns())
		for i := range cols {
			idx := m.U32(uint32(i))
			switch inst.Op() {
			case ir.OpBinary:
				l := b.Access(mat.ColumnType(), inst.Operand(0), idx)
				r := b.Access(mat.ColumnType(), inst.Operand(1), idx)
				cols[i] = b.Binary(inst.BinaryOp(), mat.ColumnType(), l.Result(), r.Result()).Result()
			case ir.OpConvert:
				from := inst.Operand(0).Type().(*types.Matrix)
				col := b.Access(from.ColumnType(), inst.Operand(0), idx)
				cols[i] = b.Convert(mat.ColumnType(), col.Result()).Result()
			}
		}
		replacement := b.Construct(mat, cols...)
		replaceInstruction(m, inst, replacement)
	}
	return Replace(m, nil)
}

func isMatrixArithmetic(inst *ir.Instruction) bool {
	switch inst.Op() {
	case ir.OpBinary:
		if op := inst.BinaryOp(); op != ir.BinaryAdd && op != ir.BinarySubtract {
			return false
		}
		return isMatrix(inst.Operand(0)) && isMatrix(inst.Operand(1))
	case ir.OpConvert:
		return isMatrix(inst.Operand(0)) && isMatrix(inst.Result())
	}
	return false
}

func isMatrix(v *ir.Value) bool {
	if v == nil {
		return false
	}
	_, ok := v.Type().(*types.Matrix)
	return ok
}
