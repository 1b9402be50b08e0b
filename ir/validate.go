// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"fmt"
	"slices"

	"github.com/gogpu/tint/types"
)

// ValidationError represents a validation error.
type ValidationError struct {
	Message string
	// Optional context
	Function string
	Block    *Block
	Inst     *Instruction
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	where := ""
	if e.Function != "" {
		where = "in function " + e.Function
		if e.Block != nil {
			where += ", block " + e.Block.String()
		}
		if e.Inst != nil {
			where += ", " + e.Inst.op.String()
		}
		return where + ": " + e.Message
	}
	return e.Message
}

// validator validates IR modules.
type validator struct {
	module *Module
	errors []ValidationError

	function *Function
	block    *Block
}

// Validate checks the structural invariants of m and returns every
// violation found, or nil if the module is well formed.
func Validate(m *Module) []ValidationError {
	v := &validator{module: m}
	for _, g := range m.globals {
		v.validateGlobal(g)
	}
	for _, f := range m.functions {
		v.validateFunction(f)
	}
	return v.errors
}

func (v *validator) errorf(inst *Instruction, format string, args ...any) {
	e := ValidationError{Message: fmt.Sprintf(format, args...), Block: v.block, Inst: inst}
	if v.function != nil {
		e.Function = v.function.Name()
	}
	v.errors = append(v.errors, e)
}

func (v *validator) validateGlobal(g *Instruction) {
	switch {
	case g.destroyed:
		v.errorf(g, "module-scope var is destroyed")
	case g.op != OpVar:
		v.errorf(g, "module-scope instruction is not a var")
	case g.block != nil:
		v.errorf(g, "module-scope var is in block %v", g.block)
	default:
		v.validateOperands(g)
	}
}

func (v *validator) validateFunction(f *Function) {
	v.function = f
	defer func() { v.function, v.block = nil, nil }()

	for i, p := range f.params {
		if p.function != f {
			v.errorf(nil, "parameter %d is not bound to the function", i)
		}
	}
	if f.block.parent != nil {
		v.block = f.block
		v.errorf(nil, "root block has parent %v", f.block.parent.op)
	}
	v.validateBlock(f.block)
}

func (v *validator) validateBlock(b *Block) {
	prev := v.block
	v.block = b
	defer func() { v.block = prev }()

	if b.module != v.module {
		v.errorf(nil, "block belongs to another module")
		return
	}
	if len(b.insts) == 0 {
		v.errorf(nil, "block does not end in a terminator")
		return
	}
	for i, inst := range b.insts {
		if inst.destroyed {
			v.errorf(inst, "destroyed instruction in block")
			continue
		}
		last := i == len(b.insts)-1
		switch {
		case inst.block != b:
			v.errorf(inst, "instruction records block %v", inst.block)
		case inst.op.IsTerminator() && !last:
			v.errorf(inst, "terminator before the end of the block")
		case !inst.op.IsTerminator() && last:
			v.errorf(inst, "block does not end in a terminator")
		}
		v.validateOperands(inst)
		v.validateInstruction(inst)
	}
}

func (v *validator) validateOperands(inst *Instruction) {
	for i, op := range inst.operands {
		if op == nil {
			v.errorf(inst, "operand %d is undef", i)
			continue
		}
		if op.module != v.module {
			v.errorf(inst, "operand %d belongs to another module", i)
			continue
		}
		if def := op.inst; def != nil && def.destroyed {
			v.errorf(inst, "operand %d is the result of a destroyed %v", i, def.op)
		}
		if !slices.Contains(op.Usages(), Usage{Inst: inst, Operand: i}) {
			v.errorf(inst, "operand %d is missing from the usages of %v", i, op)
		}
	}
	if r := inst.result; r != nil {
		for _, u := range r.Usages() {
			if u.Inst.destroyed || u.Operand >= len(u.Inst.operands) || u.Inst.operands[u.Operand] != r {
				v.errorf(inst, "result %v has a stale usage by %v operand %d", r, u.Inst.op, u.Operand)
			}
		}
	}
}

func (v *validator) validateInstruction(inst *Instruction) {
	switch inst.op {
	case OpReturn:
		v.validateReturn(inst)
	case OpLoad, OpStore:
		if p := inst.operands[0]; p != nil && p.Type().Kind() != types.KindPointer && p.Type().Kind() != types.KindReference {
			v.errorf(inst, "memory access through %v", p.Type())
		}
	case OpIf, OpLoop, OpSwitch:
		v.validateControl(inst)
	}
	if !inst.op.HasTarget() {
		return
	}
	target := inst.target
	if target == nil || target.destroyed {
		v.errorf(inst, "branch without live target")
		return
	}
	if !v.encloses(target, inst.block) {
		v.errorf(inst, "branch target %v does not enclose the block", target.op)
		return
	}
	args := inst.operands
	switch inst.op {
	case OpExitIf, OpExitSwitch, OpExitLoop:
		v.validateArgs(inst, target.merge, args)
	case OpContinue:
		if v.insideContinuing(target, inst.block) {
			v.errorf(inst, "continue from inside the continuing block")
		}
		v.validateArgs(inst, target.continuing, args)
	case OpNextIteration:
		if inst.block != target.continuing {
			v.errorf(inst, "next_iteration outside the continuing block")
		}
		v.validateArgs(inst, target.body, args)
	case OpBreakIf:
		if inst.block != target.continuing {
			v.errorf(inst, "break_if outside the continuing block")
		}
		if c := args[0]; c != nil && c.Type().Kind() != types.KindBool {
			v.errorf(inst, "break_if condition is %v", c.Type())
		}
		v.validateArgs(inst, target.body, args[1:])
	}
}

func (v *validator) validateReturn(inst *Instruction) {
	want := v.function.returnType
	if want != nil && want.Kind() == types.KindVoid {
		want = nil
	}
	switch {
	case want == nil && len(inst.operands) > 0:
		v.errorf(inst, "return with value from function returning nothing")
	case want != nil && len(inst.operands) == 0:
		v.errorf(inst, "return without value, want %v", want)
	case want != nil && inst.operands[0] != nil && inst.operands[0].Type() != want:
		v.errorf(inst, "return of %v, want %v", inst.operands[0].Type(), want)
	}
}

func (v *validator) validateArgs(inst *Instruction, target *Block, args []*Value) {
	if len(args) != len(target.params) {
		v.errorf(inst, "%d arguments for %d parameters of %v", len(args), len(target.params), target)
		return
	}
	for i, a := range args {
		if a != nil && a.Type() != target.params[i].Type() {
			v.errorf(inst, "argument %d is %v, parameter is %v", i, a.Type(), target.params[i].Type())
		}
	}
}

func (v *validator) validateControl(inst *Instruction) {
	if inst.op == OpIf {
		if c := inst.operands[0]; c != nil && c.Type().Kind() != types.KindBool {
			v.errorf(inst, "if condition is %v", c.Type())
		}
	}
	if inst.op == OpSwitch {
		defaults := 0
		for _, c := range inst.cases {
			for _, s := range c.Selectors {
				if s.IsDefault() {
					defaults++
				}
			}
		}
		if defaults != 1 {
			v.errorf(inst, "switch has %d default selectors", defaults)
		}
	}
	for _, b := range inst.Blocks() {
		if b.parent != inst {
			v.errorf(inst, "nested block %v has another parent", b)
		}
		for _, p := range b.params {
			if p.block != b {
				v.errorf(inst, "parameter %v of %v is not bound to it", p, b)
			}
		}
		for _, br := range b.inbound {
			if br.destroyed || br.target != inst {
				v.errorf(inst, "stale inbound branch %v of %v", br.op, b)
			}
		}
		v.validateBlock(b)
	}
}

// encloses reports whether b lies within one of the non-merge blocks of
// ctrl, at any depth.
func (v *validator) encloses(ctrl *Instruction, b *Block) bool {
	for b != nil && b.parent != nil {
		if b.parent == ctrl && b != ctrl.merge {
			return true
		}
		b = b.parent.block
	}
	return false
}

func (v *validator) insideContinuing(loop *Instruction, b *Block) bool {
	for b != nil && b.parent != nil {
		if b == loop.continuing {
			return true
		}
		if b.parent == loop {
			return false
		}
		b = b.parent.block
	}
	return false
}
