// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"github.com/gogpu/tint/symbol"
	"github.com/gogpu/tint/types"
)

// UnaryOp is a prefix operator.
type UnaryOp uint8

const (
	UnaryNot UnaryOp = iota
	UnaryNegate
	UnaryComplement
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNot:
		return "!"
	case UnaryNegate:
		return "-"
	default:
		return "~"
	}
}

// BinaryOp is an infix operator.
type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota
	BinarySubtract
	BinaryMultiply
	BinaryDivide
	BinaryModulo
	BinaryAnd
	BinaryOr
	BinaryXor
	BinaryLogicalAnd
	BinaryLogicalOr
	BinaryEqual
	BinaryNotEqual
	BinaryLess
	BinaryLessEqual
	BinaryGreater
	BinaryGreaterEqual
	BinaryShiftLeft
	BinaryShiftRight
)

var binaryOpNames = [...]string{
	BinaryAdd:          "+",
	BinarySubtract:     "-",
	BinaryMultiply:     "*",
	BinaryDivide:       "/",
	BinaryModulo:       "%",
	BinaryAnd:          "&",
	BinaryOr:           "|",
	BinaryXor:          "^",
	BinaryLogicalAnd:   "&&",
	BinaryLogicalOr:    "||",
	BinaryEqual:        "==",
	BinaryNotEqual:     "!=",
	BinaryLess:         "<",
	BinaryLessEqual:    "<=",
	BinaryGreater:      ">",
	BinaryGreaterEqual: ">=",
	BinaryShiftLeft:    "<<",
	BinaryShiftRight:   ">>",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// IsComparison reports whether op yields a boolean from two operands.
func (op BinaryOp) IsComparison() bool {
	return op >= BinaryEqual && op <= BinaryGreaterEqual
}

// IsLogical reports whether op is a short-circuiting boolean operator.
func (op BinaryOp) IsLogical() bool {
	return op == BinaryLogicalAnd || op == BinaryLogicalOr
}

// Ident references a declaration by name.
type Ident struct {
	nodeHeader
	Symbol symbol.Symbol
}

func (*Ident) Kind() NodeKind { return KindIdent }
func (*Ident) exprNode() {}
func (*Ident) children(func(Node)) {}

func (n *Ident) clone(ctx *CloneContext) Node {
	return ctx.dst(n).IdentSym(ctx.CloneSymbol(n.Symbol))
}

// BoolLiteral is true or false.
type BoolLiteral struct {
	nodeHeader
	Value bool
}

func (*BoolLiteral) Kind() NodeKind { return KindBoolLiteral }
func (*BoolLiteral) exprNode() {}
func (*BoolLiteral) children(func(Node)) {}

func (n *BoolLiteral) clone(ctx *CloneContext) Node {
	return ctx.dst(n).Bool(n.Value)
}

// IntSuffix is the type suffix of an integer literal.
type IntSuffix uint8

const (
	IntSuffixNone IntSuffix = iota // abstract-int
	IntSuffixI                     // i32
	IntSuffixU                     // u32
)

// IntLiteral is an integer literal.
type IntLiteral struct {
	nodeHeader
	Value  int64
	Suffix IntSuffix
}

func (*IntLiteral) Kind() NodeKind { return KindIntLiteral }
func (*IntLiteral) exprNode() {}
func (*IntLiteral) children(func(Node)) {}

func (n *IntLiteral) clone(ctx *CloneContext) Node {
	return ctx.dst(n).IntLit(n.Value, n.Suffix)
}

// FloatSuffix is the type suffix of a float literal.
type FloatSuffix uint8

const (
	FloatSuffixNone FloatSuffix = iota // abstract-float
	FloatSuffixF                       // f32
	FloatSuffixH                       // f16
)

// FloatLiteral is a floating point literal.
type FloatLiteral struct {
	nodeHeader
	Value  float64
	Suffix FloatSuffix
}

func (*FloatLiteral) Kind() NodeKind { return KindFloatLiteral }
func (*FloatLiteral) exprNode() {}
func (*FloatLiteral) children(func(Node)) {}

func (n *FloatLiteral) clone(ctx *CloneContext) Node {
	return ctx.dst(n).FloatLit(n.Value, n.Suffix)
}

// UnaryExpr applies a prefix operator.
type UnaryExpr struct {
	nodeHeader
	Op   UnaryOp
	Expr Expr
}

func (*UnaryExpr) Kind() NodeKind { return KindUnaryExpr }
func (*UnaryExpr) exprNode() {}
func (n *UnaryExpr) children(fn func(Node)) { each(fn, n.Expr) }

func (n *UnaryExpr) clone(ctx *CloneContext) Node {
	return ctx.dst(n).Unary(n.Op, Clone(ctx, n.Expr))
}

// BinaryExpr applies an infix operator.
type BinaryExpr struct {
	nodeHeader
	Op  BinaryOp
	LHS Expr
	RHS Expr
}

func (*BinaryExpr) Kind() NodeKind { return KindBinaryExpr }
func (*BinaryExpr) exprNode() {}
func (n *BinaryExpr) children(fn func(Node)) { each(fn, n.LHS, n.RHS) }

func (n *BinaryExpr) clone(ctx *CloneContext) Node {
	lhs := Clone(ctx, n.LHS)
	rhs := Clone(ctx, n.RHS)
	return ctx.dst(n).Binary(n.Op, lhs, rhs)
}

// CallExpr calls a user function or builtin by name.
type CallExpr struct {
	nodeHeader
	Target symbol.Symbol
	Args   []Expr
}

func (*CallExpr) Kind() NodeKind { return KindCallExpr }
func (*CallExpr) exprNode() {}

func (n *CallExpr) children(fn func(Node)) {
	for _, a := range n.Args {
		fn(a)
	}
}

func (n *CallExpr) clone(ctx *CloneContext) Node {
	target := ctx.CloneSymbol(n.Target)
	return ctx.dst(n).CallSym(target, CloneAll(ctx, n.Args)...)
}

// IndexExpr indexes an array, vector or matrix.
type IndexExpr struct {
	nodeHeader
	Object Expr
	Index  Expr
}

func (*IndexExpr) Kind() NodeKind { return KindIndexExpr }
func (*IndexExpr) exprNode() {}
func (n *IndexExpr) children(fn func(Node)) { each(fn, n.Object, n.Index) }

func (n *IndexExpr) clone(ctx *CloneContext) Node {
	obj := Clone(ctx, n.Object)
	idx := Clone(ctx, n.Index)
	return ctx.dst(n).Index(obj, idx)
}

// MemberExpr selects a struct member or vector swizzle.
type MemberExpr struct {
	nodeHeader
	Object Expr
	Member symbol.Symbol
}

func (*MemberExpr) Kind() NodeKind { return KindMemberExpr }
func (*MemberExpr) exprNode() {}
func (n *MemberExpr) children(fn func(Node)) { each(fn, n.Object) }

func (n *MemberExpr) clone(ctx *CloneContext) Node {
	obj := Clone(ctx, n.Object)
	return ctx.dst(n).MemberSym(obj, ctx.CloneSymbol(n.Member))
}

// ConstructExpr builds a value of Type from its arguments. With no
// arguments it is the zero value.
type ConstructExpr struct {
	nodeHeader
	Type types.Type
	Args []Expr
}

func (*ConstructExpr) Kind() NodeKind { return KindConstructExpr }
func (*ConstructExpr) exprNode() {}

func (n *ConstructExpr) children(fn func(Node)) {
	for _, a := range n.Args {
		fn(a)
	}
}

func (n *ConstructExpr) clone(ctx *CloneContext) Node {
	ty := ctx.CloneType(n.Type)
	return ctx.dst(n).Construct(ty, CloneAll(ctx, n.Args)...)
}

func each(fn func(Node), nodes ...Node) {
	for _, n := range nodes {
		if !isNil(n) {
			fn(n)
		}
	}
}
