// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"slices"

	"github.com/gogpu/tint/arena"
	"github.com/gogpu/tint/diag"
)

// Instruction is one operation of a block.
//
// Which of the optional fields are meaningful depends on Op. Operands are
// only written through the module, so that every write keeps the usage sets
// of the old and new operand values in step.
type Instruction struct {
	module    *Module
	id        arena.Handle
	op        Op
	block     *Block
	operands  []*Value
	result    *Value
	destroyed bool

	unary   UnaryOp
	binary  BinaryOp
	builtin Builtin
	callee  *Function
	indices []uint32

	// Exits and loop branches: the control instruction targeted.
	target *Instruction
	// Control instructions: the exits targeting them.
	exits []*Instruction

	// Control instructions.
	trueBlock  *Block
	falseBlock *Block
	body       *Block
	continuing *Block
	merge      *Block
	cases      []Case
}

// CaseSelector is one selector of a switch case. A default selector has a
// nil Value.
type CaseSelector struct {
	Value *Value
}

// IsDefault reports whether s is the default selector.
func (s CaseSelector) IsDefault() bool { return s.Value == nil }

// Case is one clause of a switch instruction.
type Case struct {
	Selectors []CaseSelector
	Block     *Block
}

// ID returns the arena handle of inst.
func (inst *Instruction) ID() arena.Handle { return inst.id }

// Op returns the opcode.
func (inst *Instruction) Op() Op { return inst.op }

// Block returns the block holding inst, or nil when detached.
func (inst *Instruction) Block() *Block { return inst.block }

// Operands returns the operand list. It must not be modified.
func (inst *Instruction) Operands() []*Value { return inst.operands }

// Operand returns operand i.
func (inst *Instruction) Operand(i int) *Value { return inst.operands[i] }

// Result returns the value produced by inst, or nil.
func (inst *Instruction) Result() *Value { return inst.result }

// IsDestroyed reports whether Destroy was called.
func (inst *Instruction) IsDestroyed() bool { return inst.destroyed }

// UnaryOp returns the operator of an OpUnary.
func (inst *Instruction) UnaryOp() UnaryOp { return inst.unary }

// BinaryOp returns the operator of an OpBinary.
func (inst *Instruction) BinaryOp() BinaryOp { return inst.binary }

// Builtin returns the target of an OpBuiltinCall.
func (inst *Instruction) Builtin() Builtin { return inst.builtin }

// Callee returns the target of an OpCall.
func (inst *Instruction) Callee() *Function { return inst.callee }

// Indices returns the components of an OpSwizzle.
func (inst *Instruction) Indices() []uint32 { return inst.indices }

// Target returns the control instruction an exit leaves.
func (inst *Instruction) Target() *Instruction { return inst.target }

// True returns the block run when an OpIf condition holds.
func (inst *Instruction) True() *Block { return inst.trueBlock }

// False returns the block run when an OpIf condition does not hold.
func (inst *Instruction) False() *Block { return inst.falseBlock }

// Body returns the body block of an OpLoop.
func (inst *Instruction) Body() *Block { return inst.body }

// Continuing returns the continuing block of an OpLoop.
func (inst *Instruction) Continuing() *Block { return inst.continuing }

// Merge returns the block control continues in after a control
// instruction.
func (inst *Instruction) Merge() *Block { return inst.merge }

// Exits returns the exits leaving a control instruction, in creation
// order.
func (inst *Instruction) Exits() []*Instruction { return inst.exits }

// Cases returns the clauses of an OpSwitch.
func (inst *Instruction) Cases() []Case { return inst.cases }

// Blocks returns the nested blocks of a control instruction, merge last.
func (inst *Instruction) Blocks() []*Block {
	var out []*Block
	switch inst.op {
	case OpIf:
		out = append(out, inst.trueBlock, inst.falseBlock)
	case OpLoop:
		out = append(out, inst.body, inst.continuing)
	case OpSwitch:
		for _, c := range inst.cases {
			out = append(out, c.Block)
		}
	default:
		return nil
	}
	return append(out, inst.merge)
}

// SetOperand replaces operand i, moving its usage from the old value to the
// new one.
func (inst *Instruction) SetOperand(i int, v *Value) {
	diag.Assert(!inst.destroyed, "SetOperand on destroyed %v", inst.op)
	diag.Assert(i >= 0 && i < len(inst.operands), "%v operand %d out of range", inst.op, i)
	if old := inst.operands[i]; old != nil {
		inst.module.removeUsage(old, Usage{Inst: inst, Operand: i})
	}
	inst.operands[i] = v
	if v != nil {
		inst.module.checkValue(v)
		inst.module.addUsage(v, Usage{Inst: inst, Operand: i})
	}
}

// Destroy removes inst from its block and drops its reads. Its result must
// no longer be used. Destroying a control instruction first destroys the
// contents of its nested blocks, merge first.
func (inst *Instruction) Destroy() {
	diag.Assert(!inst.destroyed, "%v destroyed twice", inst.op)
	if inst.result != nil && inst.result.IsUsed() {
		diag.ICE("destroying %v whose result %v still has %d uses", inst.op, inst.result, len(inst.result.Usages()))
	}
	nested := inst.Blocks()
	for i := len(nested) - 1; i >= 0; i-- {
		destroyBlock(nested[i])
	}
	if inst.block != nil {
		inst.block.Remove(inst)
	}
	for i, v := range inst.operands {
		if v != nil {
			inst.module.removeUsage(v, Usage{Inst: inst, Operand: i})
		}
	}
	switch inst.op {
	case OpContinue:
		inst.target.continuing.removeInbound(inst)
	case OpNextIteration:
		inst.target.body.removeInbound(inst)
	case OpBreakIf:
		inst.target.body.removeInbound(inst)
		inst.target.removeExit(inst)
	case OpExitIf, OpExitSwitch, OpExitLoop:
		inst.target.removeExit(inst)
	}
	inst.operands = nil
	inst.destroyed = true
}

func destroyBlock(b *Block) {
	for i := len(b.insts) - 1; i >= 0; i-- {
		b.insts[i].Destroy()
	}
}

func (inst *Instruction) removeExit(exit *Instruction) {
	inst.exits = slices.DeleteFunc(inst.exits, func(e *Instruction) bool { return e == exit })
}
