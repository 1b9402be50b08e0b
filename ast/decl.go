// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"github.com/gogpu/tint/symbol"
	"github.com/gogpu/tint/types"
)

// ShaderStage marks a function as a pipeline entry point.
type ShaderStage uint8

const (
	StageNone ShaderStage = iota
	StageVertex
	StageFragment
	StageCompute
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return "none"
	}
}

// Function is a function declaration. ReturnType is nil for functions
// returning nothing.
type Function struct {
	nodeHeader
	Name          symbol.Symbol
	Params        []*Param
	ReturnType    types.Type
	Body          *BlockStmt
	Stage         ShaderStage
	WorkgroupSize [3]uint32 // compute entry points only
}

func (*Function) Kind() NodeKind { return KindFunction }
func (*Function) declNode() {}

func (n *Function) children(fn func(Node)) {
	for _, p := range n.Params {
		fn(p)
	}
	each(fn, n.Body)
}

func (n *Function) clone(ctx *CloneContext) Node {
	name := ctx.CloneSymbol(n.Name)
	params := CloneAll(ctx, n.Params)
	ret := ctx.CloneType(n.ReturnType)
	body := Clone(ctx, n.Body)
	f := ctx.dst(n).newFunction(name, params, ret, body)
	f.Stage = n.Stage
	f.WorkgroupSize = n.WorkgroupSize
	return f
}

// IsEntryPoint reports whether the function has a pipeline stage.
func (n *Function) IsEntryPoint() bool {
	return n.Stage != StageNone
}

// Param is a function parameter.
type Param struct {
	nodeHeader
	Name symbol.Symbol
	Type types.Type
}

func (*Param) Kind() NodeKind { return KindParam }
func (*Param) children(func(Node)) {}

func (n *Param) clone(ctx *CloneContext) Node {
	return ctx.dst(n).ParamSym(ctx.CloneSymbol(n.Name), ctx.CloneType(n.Type))
}

// GlobalVar is a module-scope variable.
type GlobalVar struct {
	nodeHeader
	Name   symbol.Symbol
	Type   types.Type
	Space  types.AddressSpace
	Access types.Access
	Init   Expr
}

func (*GlobalVar) Kind() NodeKind { return KindGlobalVar }
func (*GlobalVar) declNode() {}
func (n *GlobalVar) children(fn func(Node)) { each(fn, n.Init) }

func (n *GlobalVar) clone(ctx *CloneContext) Node {
	name := ctx.CloneSymbol(n.Name)
	ty := ctx.CloneType(n.Type)
	init := Clone(ctx, n.Init)
	return ctx.dst(n).newGlobalVar(name, ty, n.Space, n.Access, init)
}
