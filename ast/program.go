// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"github.com/gogpu/tint/arena"
	"github.com/gogpu/tint/diag"
	"github.com/gogpu/tint/symbol"
	"github.com/gogpu/tint/types"
)

// Program is an immutable AST produced by a Builder.
type Program struct {
	id      ProgramID
	types   *types.Manager
	symbols *symbol.Table
	nodes   *arena.Arena[Node]
	decls   []Decl
}

// ID returns the program identity stamped on every node and symbol.
func (p *Program) ID() ProgramID { return p.id }

// Types returns the program's type manager.
func (p *Program) Types() *types.Manager { return p.types }

// Symbols returns the program's symbol table.
func (p *Program) Symbols() *symbol.Table { return p.symbols }

// Decls returns the module-scope declarations in declaration order.
func (p *Program) Decls() []Decl { return p.decls }

// NodeCount returns the number of nodes allocated for the program,
// including nodes that ended up unreferenced.
func (p *Program) NodeCount() int { return p.nodes.Len() }

// Node returns the node with the given handle. The handle must belong to
// this program.
func (p *Program) Node(h arena.Handle) Node {
	return p.nodes.Get(h)
}

// Functions returns the function declarations in declaration order.
func (p *Program) Functions() []*Function {
	var out []*Function
	for _, d := range p.decls {
		if f, ok := d.(*Function); ok {
			out = append(out, f)
		}
	}
	return out
}

// GlobalVars returns the module-scope variables in declaration order.
func (p *Program) GlobalVars() []*GlobalVar {
	var out []*GlobalVar
	for _, d := range p.decls {
		if v, ok := d.(*GlobalVar); ok {
			out = append(out, v)
		}
	}
	return out
}

// Function returns the function with the given name, or nil.
func (p *Program) Function(name string) *Function {
	sym := p.symbols.Get(name)
	if !sym.IsValid() {
		return nil
	}
	for _, f := range p.Functions() {
		if f.Name == sym {
			return f
		}
	}
	return nil
}

// NameOf returns the name of sym in this program's symbol table.
func (p *Program) NameOf(sym symbol.Symbol) string {
	return p.symbols.NameFor(sym)
}

func (p *Program) checkOwned(n Node) {
	if n.ProgramID() != p.id {
		diag.ICE("%v node belongs to program %v, not %v", n.Kind(), n.ProgramID(), p.id)
	}
}
