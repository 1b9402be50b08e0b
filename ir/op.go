// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import "strconv"

// Op is the closed set of instruction opcodes.
type Op uint8

const (
	OpInvalid Op = iota

	// Memory
	OpVar   // result = ptr; operands: [initializer]
	OpLoad  // operands: [ptr]
	OpStore // operands: [ptr, value]; no result

	// Arithmetic and logic
	OpUnary  // operands: [value]
	OpBinary // operands: [lhs, rhs]

	// Composites
	OpSwizzle   // operands: [object]; Indices() holds the components
	OpAccess    // operands: [object, index...]
	OpConstruct // operands: the members
	OpConvert   // operands: [value]

	// Calls
	OpCall        // operands: the arguments; Callee() is the target
	OpBuiltinCall // operands: the arguments; Builtin() is the target
	OpDiscard

	// Terminators
	OpReturn        // operands: [value]
	OpExitIf        // operands: merge block arguments
	OpExitSwitch    // operands: merge block arguments
	OpExitLoop      // operands: merge block arguments
	OpContinue      // operands: continuing block arguments
	OpNextIteration // operands: body block arguments
	OpBreakIf       // operands: [condition, body block arguments...]
	OpUnreachable

	// Control instructions, also terminators
	OpIf     // operands: [condition]
	OpLoop   // no operands
	OpSwitch // operands: [selector]
)

const variadic = -1

type opInfo struct {
	name        string
	minOperands int
	maxOperands int // variadic for no upper bound
	result      bool
	terminator  bool
	control     bool
}

var opInfos = [...]opInfo{
	OpInvalid:       {name: "invalid"},
	OpVar:           {name: "var", maxOperands: 1, result: true},
	OpLoad:          {name: "load", minOperands: 1, maxOperands: 1, result: true},
	OpStore:         {name: "store", minOperands: 2, maxOperands: 2},
	OpUnary:         {name: "unary", minOperands: 1, maxOperands: 1, result: true},
	OpBinary:        {name: "binary", minOperands: 2, maxOperands: 2, result: true},
	OpSwizzle:       {name: "swizzle", minOperands: 1, maxOperands: 1, result: true},
	OpAccess:        {name: "access", minOperands: 2, maxOperands: variadic, result: true},
	OpConstruct:     {name: "construct", maxOperands: variadic, result: true},
	OpConvert:       {name: "convert", minOperands: 1, maxOperands: 1, result: true},
	OpCall:          {name: "call", maxOperands: variadic, result: true},
	OpBuiltinCall:   {name: "builtin", maxOperands: variadic, result: true},
	OpDiscard:       {name: "discard"},
	OpReturn:        {name: "return", maxOperands: 1, terminator: true},
	OpExitIf:        {name: "exit_if", maxOperands: variadic, terminator: true},
	OpExitSwitch:    {name: "exit_switch", maxOperands: variadic, terminator: true},
	OpExitLoop:      {name: "exit_loop", maxOperands: variadic, terminator: true},
	OpContinue:      {name: "continue", maxOperands: variadic, terminator: true},
	OpNextIteration: {name: "next_iteration", maxOperands: variadic, terminator: true},
	OpBreakIf:       {name: "break_if", minOperands: 1, maxOperands: variadic, terminator: true},
	OpUnreachable:   {name: "unreachable", terminator: true},
	OpIf:            {name: "if", minOperands: 1, maxOperands: 1, terminator: true, control: true},
	OpLoop:          {name: "loop", terminator: true, control: true},
	OpSwitch:        {name: "switch", minOperands: 1, maxOperands: 1, terminator: true, control: true},
}

func (op Op) info() opInfo {
	if int(op) < len(opInfos) {
		return opInfos[op]
	}
	return opInfo{name: "op(" + strconv.Itoa(int(op)) + ")"}
}

func (op Op) String() string { return op.info().name }

// IsTerminator reports whether op ends a block.
func (op Op) IsTerminator() bool { return op.info().terminator }

// IsControl reports whether op owns nested blocks.
func (op Op) IsControl() bool { return op.info().control }

// HasResult reports whether op produces a value. Calls of functions
// returning nothing have no result even though OpCall may have one.
func (op Op) HasResult() bool { return op.info().result }

// IsExit reports whether op leaves an enclosing control instruction.
func (op Op) IsExit() bool {
	switch op {
	case OpExitIf, OpExitSwitch, OpExitLoop, OpBreakIf:
		return true
	}
	return false
}

// HasTarget reports whether instructions of op name a control instruction:
// the exits plus the loop branches Continue and NextIteration.
func (op Op) HasTarget() bool {
	return op.IsExit() || op == OpContinue || op == OpNextIteration
}

// Arity returns the operand count bounds of op. max is -1 when unbounded.
func (op Op) Arity() (minOperands, maxOperands int) {
	i := op.info()
	return i.minOperands, i.maxOperands
}

// UnaryOp is the operator of an OpUnary instruction.
type UnaryOp uint8

const (
	UnaryNegate     UnaryOp = iota // Arithmetic negation
	UnaryLogicalNot                // Logical not (!)
	UnaryBitwiseNot                // Bitwise not (~)
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNegate:
		return "negate"
	case UnaryLogicalNot:
		return "not"
	default:
		return "complement"
	}
}

// BinaryOp is the operator of an OpBinary instruction.
type BinaryOp uint8

const (
	// Arithmetic operations
	BinaryAdd      BinaryOp = iota // Addition
	BinarySubtract                 // Subtraction
	BinaryMultiply                 // Multiplication
	BinaryDivide                   // Division
	BinaryModulo                   // Modulo (remainder)

	// Comparison operations
	BinaryEqual        // Equal (==)
	BinaryNotEqual     // Not equal (!=)
	BinaryLess         // Less than (<)
	BinaryLessEqual    // Less than or equal (<=)
	BinaryGreater      // Greater than (>)
	BinaryGreaterEqual // Greater than or equal (>=)

	// Bitwise operations
	BinaryAnd         // Bitwise AND
	BinaryExclusiveOr // Bitwise XOR
	BinaryInclusiveOr // Bitwise OR

	// Logical operations
	BinaryLogicalAnd // Logical AND (&&)
	BinaryLogicalOr  // Logical OR (||)

	// Shift operations
	BinaryShiftLeft  // Left shift (<<)
	BinaryShiftRight // Right shift (>>)
)

var binaryOpNames = [...]string{
	BinaryAdd:          "add",
	BinarySubtract:     "sub",
	BinaryMultiply:     "mul",
	BinaryDivide:       "div",
	BinaryModulo:       "mod",
	BinaryEqual:        "eq",
	BinaryNotEqual:     "neq",
	BinaryLess:         "lt",
	BinaryLessEqual:    "lte",
	BinaryGreater:      "gt",
	BinaryGreaterEqual: "gte",
	BinaryAnd:          "and",
	BinaryExclusiveOr:  "xor",
	BinaryInclusiveOr:  "or",
	BinaryLogicalAnd:   "logical_and",
	BinaryLogicalOr:    "logical_or",
	BinaryShiftLeft:    "shl",
	BinaryShiftRight:   "shr",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "binary(" + strconv.Itoa(int(op)) + ")"
}

// IsComparison reports whether op yields booleans.
func (op BinaryOp) IsComparison() bool {
	return op >= BinaryEqual && op <= BinaryGreaterEqual
}

// Builtin is the target of an OpBuiltinCall instruction.
type Builtin uint8

const (
	BuiltinAbs Builtin = iota
	BuiltinMin
	BuiltinMax
	BuiltinClamp
	BuiltinSelect
	BuiltinSqrt
	BuiltinSin
	BuiltinCos
	BuiltinFloor
	BuiltinCeil
	BuiltinFract
	BuiltinExp
	BuiltinLog
	BuiltinPow
	BuiltinMix
	BuiltinDot
	BuiltinCross
	BuiltinLength
	BuiltinDistance
	BuiltinNormalize
	BuiltinTranspose
)

var builtinNames = [...]string{
	BuiltinAbs:       "abs",
	BuiltinMin:       "min",
	BuiltinMax:       "max",
	BuiltinClamp:     "clamp",
	BuiltinSelect:    "select",
	BuiltinSqrt:      "sqrt",
	BuiltinSin:       "sin",
	BuiltinCos:       "cos",
	BuiltinFloor:     "floor",
	BuiltinCeil:      "ceil",
	BuiltinFract:     "fract",
	BuiltinExp:       "exp",
	BuiltinLog:       "log",
	BuiltinPow:       "pow",
	BuiltinMix:       "mix",
	BuiltinDot:       "dot",
	BuiltinCross:     "cross",
	BuiltinLength:    "length",
	BuiltinDistance:  "distance",
	BuiltinNormalize: "normalize",
	BuiltinTranspose: "transpose",
}

func (b Builtin) String() string {
	if int(b) < len(builtinNames) {
		return builtinNames[b]
	}
	return "builtin(" + strconv.Itoa(int(b)) + ")"
}

// LookupBuiltin returns the builtin called name.
func LookupBuiltin(name string) (Builtin, bool) {
	for i, n := range builtinNames {
		if n == name {
			return Builtin(i), true
		}
	}
	return 0, false
}
