// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"github.com/gogpu/tint/symbol"
	"github.com/gogpu/tint/types"
)

// BlockStmt is a brace-delimited statement list.
type BlockStmt struct {
	nodeHeader
	Stmts []Stmt
}

func (*BlockStmt) Kind() NodeKind { return KindBlockStmt }
func (*BlockStmt) stmtNode() {}

func (n *BlockStmt) children(fn func(Node)) {
	for _, s := range n.Stmts {
		fn(s)
	}
}

func (n *BlockStmt) clone(ctx *CloneContext) Node {
	return ctx.dst(n).Block(CloneAll(ctx, n.Stmts)...)
}

// VarStmt declares a function-scope var or let.
// Type is nil when it is inferred from Init.
type VarStmt struct {
	nodeHeader
	Name  symbol.Symbol
	Type  types.Type
	Init  Expr
	IsLet bool
}

func (*VarStmt) Kind() NodeKind { return KindVarStmt }
func (*VarStmt) stmtNode() {}
func (n *VarStmt) children(fn func(Node)) { each(fn, n.Init) }

func (n *VarStmt) clone(ctx *CloneContext) Node {
	name := ctx.CloneSymbol(n.Name)
	ty := ctx.CloneType(n.Type)
	init := Clone(ctx, n.Init)
	if n.IsLet {
		return ctx.dst(n).LetSym(name, ty, init)
	}
	return ctx.dst(n).VarSym(name, ty, init)
}

// AssignStmt stores RHS into the location named by LHS.
type AssignStmt struct {
	nodeHeader
	LHS Expr
	RHS Expr
}

func (*AssignStmt) Kind() NodeKind { return KindAssignStmt }
func (*AssignStmt) stmtNode() {}
func (n *AssignStmt) children(fn func(Node)) { each(fn, n.LHS, n.RHS) }

func (n *AssignStmt) clone(ctx *CloneContext) Node {
	lhs := Clone(ctx, n.LHS)
	rhs := Clone(ctx, n.RHS)
	return ctx.dst(n).Assign(lhs, rhs)
}

// IfStmt is a conditional. Else is nil, an *IfStmt or a *BlockStmt.
type IfStmt struct {
	nodeHeader
	Cond Expr
	Body *BlockStmt
	Else Stmt
}

func (*IfStmt) Kind() NodeKind { return KindIfStmt }
func (*IfStmt) stmtNode() {}
func (n *IfStmt) children(fn func(Node)) { each(fn, n.Cond, n.Body, n.Else) }

func (n *IfStmt) clone(ctx *CloneContext) Node {
	cond := Clone(ctx, n.Cond)
	body := Clone(ctx, n.Body)
	els := Clone(ctx, n.Else)
	return ctx.dst(n).If(cond, body, els)
}

// WhileStmt repeats Body while Cond holds.
type WhileStmt struct {
	nodeHeader
	Cond Expr
	Body *BlockStmt
}

func (*WhileStmt) Kind() NodeKind { return KindWhileStmt }
func (*WhileStmt) stmtNode() {}
func (n *WhileStmt) children(fn func(Node)) { each(fn, n.Cond, n.Body) }

func (n *WhileStmt) clone(ctx *CloneContext) Node {
	cond := Clone(ctx, n.Cond)
	body := Clone(ctx, n.Body)
	return ctx.dst(n).While(cond, body)
}

// ForStmt is a C-style for loop. Init, Cond and Cont are optional.
type ForStmt struct {
	nodeHeader
	Init Stmt
	Cond Expr
	Cont Stmt
	Body *BlockStmt
}

func (*ForStmt) Kind() NodeKind { return KindForStmt }
func (*ForStmt) stmtNode() {}
func (n *ForStmt) children(fn func(Node)) { each(fn, n.Init, n.Cond, n.Cont, n.Body) }

func (n *ForStmt) clone(ctx *CloneContext) Node {
	init := Clone(ctx, n.Init)
	cond := Clone(ctx, n.Cond)
	cont := Clone(ctx, n.Cont)
	body := Clone(ctx, n.Body)
	return ctx.dst(n).For(init, cond, cont, body)
}

// LoopStmt repeats Body then Continuing until a break.
// Continuing may be nil.
type LoopStmt struct {
	nodeHeader
	Body       *BlockStmt
	Continuing *BlockStmt
}

func (*LoopStmt) Kind() NodeKind { return KindLoopStmt }
func (*LoopStmt) stmtNode() {}
func (n *LoopStmt) children(fn func(Node)) { each(fn, n.Body, n.Continuing) }

func (n *LoopStmt) clone(ctx *CloneContext) Node {
	body := Clone(ctx, n.Body)
	cont := Clone(ctx, n.Continuing)
	return ctx.dst(n).Loop(body, cont)
}

// BreakIfStmt ends a continuing block, leaving the loop when Cond holds.
type BreakIfStmt struct {
	nodeHeader
	Cond Expr
}

func (*BreakIfStmt) Kind() NodeKind { return KindBreakIfStmt }
func (*BreakIfStmt) stmtNode() {}
func (n *BreakIfStmt) children(fn func(Node)) { each(fn, n.Cond) }

func (n *BreakIfStmt) clone(ctx *CloneContext) Node {
	return ctx.dst(n).BreakIf(Clone(ctx, n.Cond))
}

// BreakStmt leaves the innermost loop or switch.
type BreakStmt struct {
	nodeHeader
}

func (*BreakStmt) Kind() NodeKind { return KindBreakStmt }
func (*BreakStmt) stmtNode() {}
func (*BreakStmt) children(func(Node)) {}

func (n *BreakStmt) clone(ctx *CloneContext) Node {
	return ctx.dst(n).Break()
}

// ContinueStmt jumps to the continuing block of the innermost loop.
type ContinueStmt struct {
	nodeHeader
}

func (*ContinueStmt) Kind() NodeKind { return KindContinueStmt }
func (*ContinueStmt) stmtNode() {}
func (*ContinueStmt) children(func(Node)) {}

func (n *ContinueStmt) clone(ctx *CloneContext) Node {
	return ctx.dst(n).Continue()
}

// ReturnStmt returns from the function. Value is nil for void functions.
type ReturnStmt struct {
	nodeHeader
	Value Expr
}

func (*ReturnStmt) Kind() NodeKind { return KindReturnStmt }
func (*ReturnStmt) stmtNode() {}
func (n *ReturnStmt) children(fn func(Node)) { each(fn, n.Value) }

func (n *ReturnStmt) clone(ctx *CloneContext) Node {
	return ctx.dst(n).Return(Clone(ctx, n.Value))
}

// DiscardStmt demotes the fragment invocation to a helper.
type DiscardStmt struct {
	nodeHeader
}

func (*DiscardStmt) Kind() NodeKind { return KindDiscardStmt }
func (*DiscardStmt) stmtNode() {}
func (*DiscardStmt) children(func(Node)) {}

func (n *DiscardStmt) clone(ctx *CloneContext) Node {
	return ctx.dst(n).Discard()
}

// CallStmt evaluates a call for its side effects.
type CallStmt struct {
	nodeHeader
	Call *CallExpr
}

func (*CallStmt) Kind() NodeKind { return KindCallStmt }
func (*CallStmt) stmtNode() {}
func (n *CallStmt) children(fn func(Node)) { each(fn, n.Call) }

func (n *CallStmt) clone(ctx *CloneContext) Node {
	return ctx.dst(n).CallStmt(Clone(ctx, n.Call))
}

// SwitchStmt selects one case clause by the value of Cond.
type SwitchStmt struct {
	nodeHeader
	Cond  Expr
	Cases []*CaseClause
}

func (*SwitchStmt) Kind() NodeKind { return KindSwitchStmt }
func (*SwitchStmt) stmtNode() {}

func (n *SwitchStmt) children(fn func(Node)) {
	each(fn, n.Cond)
	for _, c := range n.Cases {
		fn(c)
	}
}

func (n *SwitchStmt) clone(ctx *CloneContext) Node {
	cond := Clone(ctx, n.Cond)
	return ctx.dst(n).Switch(cond, CloneAll(ctx, n.Cases)...)
}

// CaseClause is one clause of a switch. A clause with Default set also
// matches every value not selected by another clause.
type CaseClause struct {
	nodeHeader
	Selectors []Expr
	Default   bool
	Body      *BlockStmt
}

func (*CaseClause) Kind() NodeKind { return KindCaseClause }

func (n *CaseClause) children(fn func(Node)) {
	for _, s := range n.Selectors {
		fn(s)
	}
	each(fn, n.Body)
}

func (n *CaseClause) clone(ctx *CloneContext) Node {
	sels := CloneAll(ctx, n.Selectors)
	body := Clone(ctx, n.Body)
	return ctx.dst(n).Case(sels, n.Default, body)
}
