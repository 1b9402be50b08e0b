// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package symbol interns identifier names to opaque per-program symbols.
package symbol

import (
	"strconv"

	"github.com/gogpu/tint/arena"
	"github.com/gogpu/tint/diag"
)

// DefaultPrefix is used by Table.New when no prefix is given.
const DefaultPrefix = "tint_symbol"

// Symbol is an interned name. The zero Symbol is invalid.
type Symbol struct {
	id      uint32
	program arena.Generation
}

// IsValid reports whether s was returned by a Table.
func (s Symbol) IsValid() bool {
	return s.id != 0
}

// ID returns the table-local index of s.
func (s Symbol) ID() uint32 {
	return s.id
}

// ProgramID returns the generation of the table that created s.
func (s Symbol) ProgramID() arena.Generation {
	return s.program
}

// String returns the canonical form of s, "$<id>".
func (s Symbol) String() string {
	return "$" + strconv.FormatUint(uint64(s.id), 10)
}

// Table maps names to symbols for one program.
// Within a table a name maps to exactly one symbol and back.
type Table struct {
	program   arena.Generation
	names     []string // names[id-1]
	byName    map[string]Symbol
	lastIndex map[string]int
}

// NewTable creates an empty table owned by program.
func NewTable(program arena.Generation) *Table {
	return &Table{
		program:   program,
		byName:    make(map[string]Symbol),
		lastIndex: make(map[string]int),
	}
}

// ProgramID returns the owning program's generation.
func (t *Table) ProgramID() arena.Generation {
	return t.program
}

// Register returns the symbol for name, creating it on first use.
func (t *Table) Register(name string) Symbol {
	diag.Assert(name != "", "symbol.Register called with an empty name")

	if s, ok := t.byName[name]; ok {
		return s
	}
	t.names = append(t.names, name)
	s := Symbol{id: uint32(len(t.names)), program: t.program}
	t.byName[name] = s
	return s
}

// Get returns the symbol registered for name, or the invalid Symbol.
func (t *Table) Get(name string) Symbol {
	return t.byName[name]
}

// New returns a symbol with a name that has not been registered yet.
//
// If prefix itself is free it is used as is. Otherwise the name becomes
// prefix_i for the smallest i, counting from the last index handed out for
// this prefix, that is not taken.
func (t *Table) New(prefix string) Symbol {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if _, taken := t.byName[prefix]; !taken {
		return t.Register(prefix)
	}

	i := t.lastIndex[prefix]
	var name string
	for {
		i++
		name = prefix + "_" + strconv.Itoa(i)
		if _, taken := t.byName[name]; !taken {
			break
		}
	}
	t.lastIndex[prefix] = i
	return t.Register(name)
}

// NameFor returns the name s was registered with.
// s must belong to this table.
func (t *Table) NameFor(s Symbol) string {
	if s.program != t.program {
		diag.ICE("symbol %v of program %v used with table of program %v", s, s.program, t.program)
	}
	if s.id == 0 || int(s.id) > len(t.names) {
		return s.String()
	}
	return t.names[s.id-1]
}

// Symbols returns every registered symbol in registration order.
func (t *Table) Symbols() []Symbol {
	out := make([]Symbol, len(t.names))
	for i := range t.names {
		out[i] = Symbol{id: uint32(i + 1), program: t.program}
	}
	return out
}

// Len returns the number of registered symbols.
func (t *Table) Len() int {
	return len(t.names)
}
