// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"github.com/gogpu/tint/diag"
	"github.com/gogpu/tint/types"
)

// Builder creates instructions and places them at an insertion point.
//
// With no insertion point the instructions are left detached, which is how
// module-scope variables are made before Module.AddGlobal.
type Builder struct {
	module *Module
	block  *Block
	before *Instruction
}

// NewBuilder returns a builder for m with no insertion point.
func NewBuilder(m *Module) *Builder {
	diag.Assert(m != nil, "builder without module")
	return &Builder{module: m}
}

// Module returns the module the builder writes to.
func (b *Builder) Module() *Module { return b.module }

// Types returns the module's type manager.
func (b *Builder) Types() *types.Manager { return b.module.types }

// Block returns the block instructions are inserted into, or nil.
func (b *Builder) Block() *Block {
	if b.before != nil {
		return b.before.block
	}
	return b.block
}

// SetInsertionPoint appends subsequent instructions to blk. A nil blk
// leaves them detached.
func (b *Builder) SetInsertionPoint(blk *Block) {
	if blk != nil {
		diag.Assert(blk.module == b.module, "insertion block %v belongs to another module", blk)
	}
	b.block = blk
	b.before = nil
}

// InsertBefore places subsequent instructions immediately before inst.
func (b *Builder) InsertBefore(inst *Instruction) {
	b.module.checkInst(inst)
	diag.Assert(inst.block != nil, "insertion before detached %v", inst.op)
	b.block = nil
	b.before = inst
}

func (b *Builder) insert(inst *Instruction) *Instruction {
	switch {
	case b.before != nil:
		b.before.block.InsertBefore(b.before, inst)
	case b.block != nil:
		b.block.Append(inst)
	}
	return inst
}

func (b *Builder) withResult(inst *Instruction, t types.Type) *Instruction {
	diag.Assert(t != nil, "%v without result type", inst.op)
	v := b.module.newValue(ValueInstructionResult, t)
	v.inst = inst
	inst.result = v
	return inst
}

func (b *Builder) checkOperand(op Op, i int, v *Value) {
	if v == nil {
		diag.ICE("%v operand %d is nil", op, i)
	}
}

// Var declares a variable of type store in space. init may be nil. The
// result is a pointer to the variable.
func (b *Builder) Var(space types.AddressSpace, store types.Type, access types.Access, init *Value) *Instruction {
	diag.Assert(store != nil, "var without store type")
	var ops []*Value
	if init != nil {
		ops = []*Value{init}
	}
	inst := b.module.newInst(OpVar, ops)
	b.withResult(inst, b.module.types.Pointer(space, store, access))
	return b.insert(inst)
}

// Load reads the value behind ptr.
func (b *Builder) Load(ptr *Value) *Instruction {
	b.checkOperand(OpLoad, 0, ptr)
	inst := b.module.newInst(OpLoad, []*Value{ptr})
	b.withResult(inst, storeType(ptr.Type()))
	return b.insert(inst)
}

// Store writes value through ptr.
func (b *Builder) Store(ptr, value *Value) *Instruction {
	b.checkOperand(OpStore, 0, ptr)
	b.checkOperand(OpStore, 1, value)
	storeType(ptr.Type())
	return b.insert(b.module.newInst(OpStore, []*Value{ptr, value}))
}

func storeType(t types.Type) types.Type {
	switch p := t.(type) {
	case *types.Pointer:
		return p.StoreType()
	case *types.Reference:
		return p.StoreType()
	}
	diag.ICE("memory access through non-pointer type %v", t)
	return nil
}

// Unary applies op to v.
func (b *Builder) Unary(op UnaryOp, t types.Type, v *Value) *Instruction {
	b.checkOperand(OpUnary, 0, v)
	inst := b.module.newInst(OpUnary, []*Value{v})
	inst.unary = op
	b.withResult(inst, t)
	return b.insert(inst)
}

// Binary applies op to lhs and rhs.
func (b *Builder) Binary(op BinaryOp, t types.Type, lhs, rhs *Value) *Instruction {
	b.checkOperand(OpBinary, 0, lhs)
	b.checkOperand(OpBinary, 1, rhs)
	inst := b.module.newInst(OpBinary, []*Value{lhs, rhs})
	inst.binary = op
	b.withResult(inst, t)
	return b.insert(inst)
}

// Swizzle selects components of obj. The result type t is a scalar for a
// single index and a vector as wide as indices otherwise.
func (b *Builder) Swizzle(t types.Type, obj *Value, indices []uint32) *Instruction {
	if t == nil {
		diag.ICE("swizzle without result type")
	}
	if obj == nil {
		diag.ICE("swizzle of nil object")
	}
	switch n := len(indices); {
	case n == 0:
		diag.ICE("swizzle without indices")
	case n > 4:
		diag.ICE("swizzle with %d indices", n)
	}
	for _, idx := range indices {
		if idx > 3 {
			diag.ICE("swizzle index %d out of range", idx)
		}
	}
	switch rt := t.(type) {
	case *types.Vector:
		if int(rt.Width()) != len(indices) {
			diag.ICE("swizzle to %v with %d indices", rt, len(indices))
		}
	case *types.Scalar:
		if len(indices) != 1 {
			diag.ICE("swizzle to scalar %v with %d indices", rt, len(indices))
		}
	default:
		diag.ICE("swizzle to %v", t)
	}
	if vec := swizzleSource(obj.Type()); vec != nil {
		for _, idx := range indices {
			if idx >= vec.Width() {
				diag.ICE("swizzle index %d beyond %v", idx, vec)
			}
		}
	}
	inst := b.module.newInst(OpSwizzle, []*Value{obj})
	inst.indices = append([]uint32(nil), indices...)
	b.withResult(inst, t)
	return b.insert(inst)
}

// swizzleSource returns the vector a swizzle reads, looking through memory
// views, or nil when the source is not a vector.
func swizzleSource(t types.Type) *types.Vector {
	switch s := t.(type) {
	case *types.Vector:
		return s
	case *types.Pointer:
		v, _ := s.StoreType().(*types.Vector)
		return v
	case *types.Reference:
		v, _ := s.StoreType().(*types.Vector)
		return v
	}
	return nil
}

// Access indexes into obj, one level per index.
func (b *Builder) Access(t types.Type, obj *Value, indices ...*Value) *Instruction {
	b.checkOperand(OpAccess, 0, obj)
	ops := append([]*Value{obj}, indices...)
	for i, v := range indices {
		b.checkOperand(OpAccess, i+1, v)
	}
	inst := b.module.newInst(OpAccess, ops)
	b.withResult(inst, t)
	return b.insert(inst)
}

// Construct builds a value of type t from args.
func (b *Builder) Construct(t types.Type, args ...*Value) *Instruction {
	inst := b.module.newInst(OpConstruct, args)
	b.withResult(inst, t)
	return b.insert(inst)
}

// Convert converts v to type t.
func (b *Builder) Convert(t types.Type, v *Value) *Instruction {
	b.checkOperand(OpConvert, 0, v)
	inst := b.module.newInst(OpConvert, []*Value{v})
	b.withResult(inst, t)
	return b.insert(inst)
}

// Call calls fn. The call has a result unless fn returns nothing.
func (b *Builder) Call(fn *Function, args ...*Value) *Instruction {
	diag.Assert(fn != nil, "call of nil function")
	diag.Assert(fn.module == b.module, "call of %v from another module", fn)
	if len(args) != len(fn.params) {
		diag.ICE("call of %v with %d arguments, want %d", fn, len(args), len(fn.params))
	}
	inst := b.module.newInst(OpCall, args)
	inst.callee = fn
	if fn.returnType != nil && fn.returnType.Kind() != types.KindVoid {
		b.withResult(inst, fn.returnType)
	}
	return b.insert(inst)
}

// BuiltinCall calls builtin fn. t is nil for builtins returning nothing.
func (b *Builder) BuiltinCall(t types.Type, fn Builtin, args ...*Value) *Instruction {
	inst := b.module.newInst(OpBuiltinCall, args)
	inst.builtin = fn
	if t != nil {
		b.withResult(inst, t)
	}
	return b.insert(inst)
}

// Discard ends the invocation of a fragment shader.
func (b *Builder) Discard() *Instruction {
	return b.insert(b.module.newInst(OpDiscard, nil))
}

// If branches on cond. The true and false blocks are empty; the merge block
// receives control from their exits.
func (b *Builder) If(cond *Value) *Instruction {
	b.checkOperand(OpIf, 0, cond)
	inst := b.module.newInst(OpIf, []*Value{cond})
	inst.trueBlock = b.module.newBlock(false, inst)
	inst.falseBlock = b.module.newBlock(false, inst)
	inst.merge = b.module.newBlock(true, inst)
	return b.insert(inst)
}

// Loop starts a loop. The body and continuing blocks are multi-in: the
// body is entered from the loop and from NextIteration and BreakIf, the
// continuing block from Continue.
func (b *Builder) Loop() *Instruction {
	inst := b.module.newInst(OpLoop, nil)
	inst.body = b.module.newBlock(true, inst)
	inst.continuing = b.module.newBlock(true, inst)
	inst.merge = b.module.newBlock(true, inst)
	return b.insert(inst)
}

// Switch branches on selector. Add clauses with AddCase.
func (b *Builder) Switch(selector *Value) *Instruction {
	b.checkOperand(OpSwitch, 0, selector)
	inst := b.module.newInst(OpSwitch, []*Value{selector})
	inst.merge = b.module.newBlock(true, inst)
	return b.insert(inst)
}

// AddCase adds a clause with the given selectors to sw and returns its
// block.
func (b *Builder) AddCase(sw *Instruction, selectors ...CaseSelector) *Block {
	diag.Assert(sw != nil && sw.op == OpSwitch, "case added to non-switch")
	diag.Assert(len(selectors) > 0, "case without selectors")
	for _, s := range selectors {
		if s.Value != nil {
			b.module.checkValue(s.Value)
			diag.Assert(s.Value.kind == ValueConstant, "case selector %v is not a constant", s.Value)
		}
	}
	blk := b.module.newBlock(false, sw)
	sw.cases = append(sw.cases, Case{Selectors: selectors, Block: blk})
	return blk
}

// Return leaves the function, yielding value. value is nil for functions
// returning nothing.
func (b *Builder) Return(value *Value) *Instruction {
	var ops []*Value
	if value != nil {
		ops = []*Value{value}
	}
	return b.insert(b.module.newInst(OpReturn, ops))
}

// ExitIf branches from a block of ifInst to its merge, passing args.
func (b *Builder) ExitIf(ifInst *Instruction, args ...*Value) *Instruction {
	return b.exit(OpExitIf, OpIf, ifInst, args)
}

// ExitSwitch branches from a case of sw to its merge, passing args.
func (b *Builder) ExitSwitch(sw *Instruction, args ...*Value) *Instruction {
	return b.exit(OpExitSwitch, OpSwitch, sw, args)
}

// ExitLoop branches out of loop to its merge, passing args.
func (b *Builder) ExitLoop(loop *Instruction, args ...*Value) *Instruction {
	return b.exit(OpExitLoop, OpLoop, loop, args)
}

// BreakIf ends the continuing block of loop: when cond holds it exits the
// loop, otherwise the next iteration starts with args.
func (b *Builder) BreakIf(loop *Instruction, cond *Value, args ...*Value) *Instruction {
	b.checkOperand(OpBreakIf, 0, cond)
	inst := b.exit(OpBreakIf, OpLoop, loop, append([]*Value{cond}, args...))
	loop.body.AddInboundSiblingBranch(inst)
	return inst
}

// Continue branches from the body of loop to its continuing block.
func (b *Builder) Continue(loop *Instruction, args ...*Value) *Instruction {
	inst := b.branch(OpContinue, loop, args)
	loop.continuing.AddInboundSiblingBranch(inst)
	return inst
}

// NextIteration branches from the continuing block of loop back to its
// body.
func (b *Builder) NextIteration(loop *Instruction, args ...*Value) *Instruction {
	inst := b.branch(OpNextIteration, loop, args)
	loop.body.AddInboundSiblingBranch(inst)
	return inst
}

// Unreachable marks the end of a block control never reaches.
func (b *Builder) Unreachable() *Instruction {
	return b.insert(b.module.newInst(OpUnreachable, nil))
}

func (b *Builder) exit(op, targetOp Op, target *Instruction, args []*Value) *Instruction {
	diag.Assert(target != nil && target.op == targetOp, "%v must target a %v", op, targetOp)
	inst := b.branch(op, target, args)
	target.exits = append(target.exits, inst)
	return inst
}

func (b *Builder) branch(op Op, target *Instruction, args []*Value) *Instruction {
	diag.Assert(target != nil && target.op == OpLoop || op.IsExit(), "%v must target a loop", op)
	b.module.checkInst(target)
	for i, v := range args {
		b.checkOperand(op, i, v)
	}
	inst := b.module.newInst(op, args)
	inst.target = target
	return b.insert(inst)
}
