// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package arena provides generation-tagged storage for compiler entities.
//
// Every compilation unit (an AST program or an IR module) owns a Generation.
// Entities allocated in the unit's arenas are addressed by a Handle that
// embeds that generation next to the slot index. Dereferencing a handle
// through an arena of a different generation is an internal compiler error,
// which is how the core keeps one unit from silently referencing another
// unit's storage.
//
// Generations are random UUIDs rather than values from a process-wide
// counter, so independent units never share mutable state.
package arena

import (
	"github.com/google/uuid"

	"github.com/gogpu/tint/diag"
)

// Generation identifies the compilation unit that owns a handle.
// The zero Generation is invalid.
type Generation struct {
	id uuid.UUID
}

// NewGeneration returns a fresh, unique generation.
func NewGeneration() Generation {
	return Generation{id: uuid.Must(uuid.NewV7())}
}

// IsValid reports whether g was produced by NewGeneration.
func (g Generation) IsValid() bool {
	return g.id != uuid.Nil
}

// String returns a short form of the generation, suitable for logs.
func (g Generation) String() string {
	if !g.IsValid() {
		return "<invalid>"
	}
	return g.id.String()[:8]
}

// Handle addresses one slot of an arena.
type Handle struct {
	Gen   Generation
	Index uint32
}

// IsValid reports whether h was returned by an arena.
func (h Handle) IsValid() bool {
	return h.Gen.IsValid()
}

// Arena stores values of one kind for one generation.
type Arena[T any] struct {
	gen   Generation
	items []T
}

// New creates an empty arena owned by gen.
func New[T any](gen Generation) *Arena[T] {
	diag.Assert(gen.IsValid(), "arena created with invalid generation")
	return &Arena[T]{gen: gen}
}

// Generation returns the generation that owns the arena.
func (a *Arena[T]) Generation() Generation {
	return a.gen
}

// Alloc stores v and returns its handle.
func (a *Arena[T]) Alloc(v T) Handle {
	h := Handle{Gen: a.gen, Index: uint32(len(a.items))}
	a.items = append(a.items, v)
	return h
}

// Next returns the handle the next Alloc will return.
func (a *Arena[T]) Next() Handle {
	return Handle{Gen: a.gen, Index: uint32(len(a.items))}
}

// Owns reports whether h addresses a slot of this arena.
func (a *Arena[T]) Owns(h Handle) bool {
	return h.Gen == a.gen && int(h.Index) < len(a.items)
}

// Get dereferences h.
func (a *Arena[T]) Get(h Handle) T {
	a.check(h)
	return a.items[h.Index]
}

// Set overwrites the slot addressed by h.
func (a *Arena[T]) Set(h Handle, v T) {
	a.check(h)
	a.items[h.Index] = v
}

// Len returns the number of allocated slots.
func (a *Arena[T]) Len() int {
	return len(a.items)
}

// Each calls fn for every slot in allocation order.
func (a *Arena[T]) Each(fn func(Handle, T)) {
	for i, v := range a.items {
		fn(Handle{Gen: a.gen, Index: uint32(i)}, v)
	}
}

func (a *Arena[T]) check(h Handle) {
	if h.Gen != a.gen {
		diag.ICE("handle of generation %v used with arena of generation %v", h.Gen, a.gen)
	}
	if int(h.Index) >= len(a.items) {
		diag.ICE("handle index %d out of range (len %d)", h.Index, len(a.items))
	}
}
