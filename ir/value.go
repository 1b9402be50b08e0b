// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"strconv"

	"github.com/gogpu/tint/arena"
	"github.com/gogpu/tint/types"
)

// ValueKind tells the producers of values apart.
type ValueKind uint8

const (
	ValueConstant ValueKind = iota
	ValueFunctionParam
	ValueBlockParam
	ValueInstructionResult
)

func (k ValueKind) String() string {
	switch k {
	case ValueConstant:
		return "constant"
	case ValueFunctionParam:
		return "function_param"
	case ValueBlockParam:
		return "block_param"
	default:
		return "result"
	}
}

// Usage is one read of a value: operand Operand of instruction Inst.
type Usage struct {
	Inst    *Instruction
	Operand int
}

// Value is a node of the def-use graph.
//
// Values live in the module's value arena. The set of instructions reading a
// value is kept in the module's usage map, indexed by the value's handle,
// and is updated on every operand write.
type Value struct {
	module *Module
	id     arena.Handle
	kind   ValueKind
	typ    types.Type

	constant any          // ValueConstant
	inst     *Instruction // ValueInstructionResult
	block    *Block       // ValueBlockParam, once bound
	function *Function    // ValueFunctionParam, once bound
}

// ID returns the arena handle of v.
func (v *Value) ID() arena.Handle { return v.id }

// Kind returns what produced v.
func (v *Value) Kind() ValueKind { return v.kind }

// Type returns the type of v.
func (v *Value) Type() types.Type { return v.typ }

// Usages returns every (instruction, operand) pair reading v, in the order
// the reads were registered.
func (v *Value) Usages() []Usage {
	return v.module.usages[v.id.Index]
}

// IsUsed reports whether any instruction reads v.
func (v *Value) IsUsed() bool {
	return len(v.module.usages[v.id.Index]) > 0
}

// Instruction returns the instruction producing v, for results.
func (v *Value) Instruction() *Instruction { return v.inst }

// Block returns the block declaring v, for block parameters.
func (v *Value) Block() *Block { return v.block }

// Function returns the function declaring v, for function parameters.
func (v *Value) Function() *Function { return v.function }

// Constant returns the scalar held by a constant: bool, int32, uint32,
// float32, int64 for abstract-int or float64 for f16 and abstract-float.
func (v *Value) Constant() any { return v.constant }

// ReplaceAllUsesWith rewrites every read of v to read with instead.
func (v *Value) ReplaceAllUsesWith(with *Value) {
	uses := append([]Usage(nil), v.Usages()...)
	for _, u := range uses {
		u.Inst.SetOperand(u.Operand, with)
	}
}

// String returns the short name of v, like %3 or %color.
func (v *Value) String() string {
	if v == nil {
		return "undef"
	}
	if v.kind == ValueConstant {
		return formatConstant(v)
	}
	if name, ok := v.module.names[v.id.Index]; ok {
		return "%" + v.module.symbols.NameFor(name)
	}
	return "%" + strconv.FormatUint(uint64(v.id.Index), 10)
}

func formatConstant(v *Value) string {
	switch c := v.constant.(type) {
	case bool:
		return strconv.FormatBool(c)
	case int32:
		return strconv.FormatInt(int64(c), 10) + "i"
	case uint32:
		return strconv.FormatUint(uint64(c), 10) + "u"
	case int64:
		return strconv.FormatInt(c, 10)
	case float32:
		return formatFloat(float64(c), 32) + "f"
	case float64:
		if v.typ.Kind() == types.KindF16 {
			return formatFloat(c, 32) + "h"
		}
		return formatFloat(c, 64)
	default:
		return "?"
	}
}

func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'n', 'N':
			return s
		}
	}
	return s + ".0"
}

type constKey struct {
	typ   types.Type
	value any
}
