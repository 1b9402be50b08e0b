// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"reflect"

	"github.com/gogpu/tint/diag"
	"github.com/gogpu/tint/symbol"
	"github.com/gogpu/tint/types"
)

// CloneContext deep-clones nodes, symbols and types of a source program
// into a destination builder.
//
// Substitutions installed with ReplaceAll, Replace, Remove and
// ReplaceSymbols are consulted during the clone walk, so a replacer only
// has to build the node it replaces: children it clones through the
// context pick up every other substitution automatically.
type CloneContext struct {
	Dst *Builder
	Src *Program

	autoCloneSymbols bool
	symbols          map[symbol.Symbol]symbol.Symbol
	symbolReplacer   func(symbol.Symbol) symbol.Symbol
	replacers        map[NodeKind]func(Node) Node
	replacements     map[Node]func() Node
	removed          map[Node]bool
}

var _ types.CloneContext = (*CloneContext)(nil)

// NewCloneContext creates a context cloning src into dst.
//
// With autoCloneSymbols every source symbol is registered in dst up front,
// in source order, so symbol IDs survive the clone. Otherwise symbols are
// cloned on first use and may be renamed with ReplaceSymbols.
func NewCloneContext(dst *Builder, src *Program, autoCloneSymbols bool) *CloneContext {
	diag.Assert(dst != nil && src != nil, "clone context needs a source and a destination")
	diag.Assert(dst.ID() != src.ID(), "cannot clone program %v into itself", src.ID())

	ctx := &CloneContext{
		Dst:              dst,
		Src:              src,
		autoCloneSymbols: autoCloneSymbols,
		symbols:          make(map[symbol.Symbol]symbol.Symbol),
		replacers:        make(map[NodeKind]func(Node) Node),
		replacements:     make(map[Node]func() Node),
		removed:          make(map[Node]bool),
	}
	if autoCloneSymbols {
		for _, s := range src.Symbols().Symbols() {
			ctx.symbols[s] = dst.Sym(src.Symbols().NameFor(s))
		}
	}
	return ctx
}

// DstTypes returns the destination type manager.
func (c *CloneContext) DstTypes() *types.Manager {
	return c.Dst.Types()
}

// CloneSource returns src for use in the destination program.
func (c *CloneContext) CloneSource(src Source) Source {
	return src
}

// CloneSymbol returns the destination symbol for a source symbol.
// The invalid symbol clones to the invalid symbol.
func (c *CloneContext) CloneSymbol(s symbol.Symbol) symbol.Symbol {
	if !s.IsValid() {
		return symbol.Symbol{}
	}
	if s.ProgramID() != c.Src.ID() {
		diag.ICE("symbol %v belongs to program %v, not the clone source %v", s, s.ProgramID(), c.Src.ID())
	}
	if out, ok := c.symbols[s]; ok {
		return out
	}
	var out symbol.Symbol
	if c.symbolReplacer != nil {
		out = c.symbolReplacer(s)
		c.Dst.checkSym(out)
	} else {
		out = c.Dst.Sym(c.Src.Symbols().NameFor(s))
	}
	c.symbols[s] = out
	return out
}

// CloneType re-creates t in the destination type manager. A nil type
// clones to nil.
func (c *CloneContext) CloneType(t types.Type) types.Type {
	if t == nil {
		return nil
	}
	return t.Clone(c)
}

// ReplaceSymbols installs fn to produce the destination symbol for every
// source symbol. fn must return a symbol of the destination program.
// Only valid when symbols are cloned on demand.
func (c *CloneContext) ReplaceSymbols(fn func(symbol.Symbol) symbol.Symbol) *CloneContext {
	diag.Assert(!c.autoCloneSymbols, "ReplaceSymbols on a context that clones symbols up front")
	diag.Assert(c.symbolReplacer == nil, "symbol replacer already installed")
	diag.Assert(len(c.symbols) == 0, "ReplaceSymbols after symbols were cloned")
	c.symbolReplacer = fn
	return c
}

// ReplaceAll installs fn as the replacer for every source node of the
// concrete type T. fn may return nil to clone the node normally.
func ReplaceAll[T Node](c *CloneContext, fn func(T) Node) *CloneContext {
	var zero T
	if any(zero) == nil {
		diag.ICE("ReplaceAll needs a concrete node type, got %v", reflect.TypeFor[T]())
	}
	kind := zero.Kind()
	if _, dup := c.replacers[kind]; dup {
		diag.ICE("replacer for %v already installed", kind)
	}
	c.replacers[kind] = func(n Node) Node {
		return fn(n.(T))
	}
	return c
}

// Replace installs fn to produce the replacement of the source node what.
// Takes precedence over a ReplaceAll replacer for the node's kind.
func (c *CloneContext) Replace(what Node, fn func() Node) *CloneContext {
	diag.Assert(!isNil(what), "Replace of nil node")
	c.Src.checkOwned(what)
	if _, dup := c.replacements[what]; dup {
		diag.ICE("replacement for %v %d already installed", what.Kind(), what.ID())
	}
	c.replacements[what] = fn
	return c
}

// Remove drops the source node what from whatever list CloneAll copies it
// from.
func (c *CloneContext) Remove(what Node) *CloneContext {
	diag.Assert(!isNil(what), "Remove of nil node")
	c.Src.checkOwned(what)
	c.removed[what] = true
	return c
}

// Clone clones the whole source program into the destination: every type
// in creation order, then every declaration.
func (c *CloneContext) Clone() {
	for _, t := range c.Src.Types().Types() {
		c.CloneType(t)
	}
	for _, d := range c.Src.Decls() {
		if c.removed[d] {
			continue
		}
		c.Dst.AddDecl(Clone(c, d))
	}
}

// Clone returns the destination counterpart of the source node n, applying
// any installed substitution. A nil node clones to nil.
func Clone[T Node](c *CloneContext, n T) T {
	var zero T
	if isNil(n) {
		return zero
	}
	c.Src.checkOwned(n)

	out := c.cloneNode(n)
	if isNil(out) {
		return zero
	}
	c.Dst.program.checkOwned(out)
	t, ok := out.(T)
	if !ok {
		diag.ICE("replacement for %v is a %v, which does not fit", n.Kind(), out.Kind())
	}
	return t
}

// CloneAll clones each node of list, dropping removed nodes.
func CloneAll[T Node](c *CloneContext, list []T) []T {
	if len(list) == 0 {
		return nil
	}
	out := make([]T, 0, len(list))
	for _, n := range list {
		if c.removed[n] {
			continue
		}
		out = append(out, Clone(c, n))
	}
	return out
}

func (c *CloneContext) cloneNode(n Node) Node {
	if fn, ok := c.replacements[n]; ok {
		if r := fn(); !isNil(r) {
			return r
		}
	}
	if fn, ok := c.replacers[n.Kind()]; ok {
		if r := fn(n); !isNil(r) {
			return r
		}
	}
	return n.clone(c)
}

func (c *CloneContext) dst(n Node) *Builder {
	return c.Dst.At(c.CloneSource(n.Source()))
}
