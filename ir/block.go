// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"slices"
	"strconv"

	"github.com/gogpu/tint/arena"
	"github.com/gogpu/tint/diag"
)

// Block is an ordered list of instructions ending in one terminator.
//
// A multi-in block is the target of branches from more than one place: the
// merge of a control instruction, or a loop body or continuing block. It
// may declare parameters that every branch to it binds. Branches from
// outside the block's owning control instruction are recorded as inbound
// sibling branches; the implicit edges from the owning instruction are not.
type Block struct {
	module  *Module
	id      arena.Handle
	multiIn bool
	parent  *Instruction // owning control instruction; nil for a function root
	insts   []*Instruction

	params    []*Value
	paramsSet bool
	inbound   []*Instruction
}

// ID returns the arena handle of b.
func (b *Block) ID() arena.Handle { return b.id }

// IsMultiIn reports whether b may have several predecessors.
func (b *Block) IsMultiIn() bool { return b.multiIn }

// Parent returns the control instruction owning b, or nil for the root
// block of a function.
func (b *Block) Parent() *Instruction { return b.parent }

// Instructions returns the instructions of b in order.
func (b *Block) Instructions() []*Instruction { return b.insts }

// Len returns the number of instructions in b.
func (b *Block) Len() int { return len(b.insts) }

// IsEmpty reports whether b has no instructions.
func (b *Block) IsEmpty() bool { return len(b.insts) == 0 }

// Terminator returns the last instruction of b when it is a terminator.
func (b *Block) Terminator() *Instruction {
	if len(b.insts) == 0 {
		return nil
	}
	last := b.insts[len(b.insts)-1]
	if !last.op.IsTerminator() {
		return nil
	}
	return last
}

// IsTerminated reports whether b already ends in a terminator.
func (b *Block) IsTerminated() bool {
	return b.Terminator() != nil
}

// Params returns the entry parameters of a multi-in block.
func (b *Block) Params() []*Value { return b.params }

// SetParams declares the entry parameters of a multi-in block.
//
// Parameters are declared once: a second call is an internal compiler
// error, as is a parameter that is already bound to a block.
func (b *Block) SetParams(params []*Value) {
	diag.Assert(b.multiIn, "SetParams on single-entry block %v", b)
	if b.paramsSet {
		diag.ICE("parameters of block %v set twice", b)
	}
	for i, p := range params {
		diag.Assert(p != nil, "block %v parameter %d is nil", b, i)
		diag.Assert(p.kind == ValueBlockParam, "block %v parameter %d is a %v", b, i, p.kind)
		diag.Assert(p.block == nil, "parameter %v already bound to block %v", p, p.block)
		b.module.checkValue(p)
		p.block = b
	}
	b.params = params
	b.paramsSet = true
}

// AddInboundSiblingBranch records that branch, which lives outside the
// control instruction owning b, targets b.
func (b *Block) AddInboundSiblingBranch(branch *Instruction) {
	diag.Assert(b.multiIn, "inbound branch recorded on single-entry block %v", b)
	diag.Assert(branch != nil && branch.op.IsTerminator(), "inbound sibling of %v is not a branch", b)
	b.module.checkInst(branch)
	b.inbound = append(b.inbound, branch)
}

// InboundSiblingBranches returns the recorded inbound sibling branches.
func (b *Block) InboundSiblingBranches() []*Instruction { return b.inbound }

func (b *Block) removeInbound(branch *Instruction) {
	b.inbound = slices.DeleteFunc(b.inbound, func(i *Instruction) bool { return i == branch })
}

// Append adds inst at the end of b.
func (b *Block) Append(inst *Instruction) {
	b.checkInsert(inst)
	if t := b.Terminator(); t != nil {
		diag.ICE("append of %v to block %v after its terminator %v", inst.op, b, t.op)
	}
	b.insts = append(b.insts, inst)
	inst.block = b
}

// InsertBefore adds inst immediately before before, which must be in b.
func (b *Block) InsertBefore(before, inst *Instruction) {
	b.checkInsert(inst)
	diag.Assert(!inst.op.IsTerminator(), "terminator %v inserted before %v", inst.op, before.op)
	i := b.indexOf(before)
	b.insts = slices.Insert(b.insts, i, inst)
	inst.block = b
}

// InsertAfter adds inst immediately after after, which must be in b and
// must not be the terminator.
func (b *Block) InsertAfter(after, inst *Instruction) {
	b.checkInsert(inst)
	diag.Assert(!after.op.IsTerminator(), "insertion after terminator %v", after.op)
	i := b.indexOf(after)
	b.insts = slices.Insert(b.insts, i+1, inst)
	inst.block = b
}

// Remove detaches inst from b without destroying it.
func (b *Block) Remove(inst *Instruction) {
	i := b.indexOf(inst)
	b.insts = slices.Delete(b.insts, i, i+1)
	inst.block = nil
}

func (b *Block) checkInsert(inst *Instruction) {
	diag.Assert(inst != nil, "nil instruction inserted into block %v", b)
	b.module.checkInst(inst)
	diag.Assert(!inst.destroyed, "destroyed %v inserted into block %v", inst.op, b)
	if inst.block != nil {
		diag.ICE("%v already belongs to block %v", inst.op, inst.block)
	}
}

func (b *Block) indexOf(inst *Instruction) int {
	i := slices.Index(b.insts, inst)
	if i < 0 {
		diag.ICE("%v is not in block %v", inst.op, b)
	}
	return i
}

// String returns the label of b, like $B4.
func (b *Block) String() string {
	return "$B" + strconv.FormatUint(uint64(b.id.Index), 10)
}
