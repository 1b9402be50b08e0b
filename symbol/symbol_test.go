// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package symbol

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/tint/arena"
	"github.com/gogpu/tint/diag/diagtest"
)

func newTable() *Table {
	return NewTable(arena.NewGeneration())
}

func TestRegisterIsIdempotent(t *testing.T) {
	st := newTable()
	a := st.Register("x")
	b := st.Register("x")
	c := st.Register("y")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, a.IsValid())
	assert.Equal(t, "x", st.NameFor(a))
	assert.Equal(t, "y", st.NameFor(c))
	assert.Equal(t, 2, st.Len())
}

func TestRegisterEmptyNameIsFatal(t *testing.T) {
	diagtest.RequireICE(t, func() { newTable().Register("") })
}

func TestGet(t *testing.T) {
	st := newTable()
	assert.False(t, st.Get("missing").IsValid())
	assert.Equal(t, 0, st.Len(), "Get must not register")

	s := st.Register("present")
	assert.Equal(t, s, st.Get("present"))
}

func TestNewUsesPrefixWhenFree(t *testing.T) {
	st := newTable()
	s := st.New("tmp")
	assert.Equal(t, "tmp", st.NameFor(s))
}

func TestNewDefaultPrefix(t *testing.T) {
	st := newTable()
	assert.Equal(t, "tint_symbol", st.NameFor(st.New("")))
	assert.Equal(t, "tint_symbol_1", st.NameFor(st.New("")))
}

func TestNewSequence(t *testing.T) {
	st := newTable()
	st.Register("tmp")

	const n = 5
	seen := make(map[Symbol]bool)
	for i := 1; i <= n; i++ {
		s := st.New("tmp")
		assert.Equal(t, fmt.Sprintf("tmp_%d", i), st.NameFor(s))
		assert.False(t, seen[s], "symbol returned twice")
		seen[s] = true
	}
}

func TestNewSkipsExistingNames(t *testing.T) {
	st := newTable()
	st.Register("tmp")
	st.Register("tmp_1")
	st.Register("tmp_3")

	var got []string
	for i := 0; i < 3; i++ {
		got = append(got, st.NameFor(st.New("tmp")))
	}
	assert.Equal(t, []string{"tmp_2", "tmp_4", "tmp_5"}, got)
}

func TestNewResumesFromCachedIndex(t *testing.T) {
	st := newTable()
	st.Register("v")
	assert.Equal(t, "v_1", st.NameFor(st.New("v")))
	assert.Equal(t, "v_2", st.NameFor(st.New("v")))

	// A later registration of a lower index is not revisited: the search
	// resumes after the last index handed out for the prefix.
	assert.Equal(t, "v_3", st.NameFor(st.New("v")))
}

func TestNameForForeignSymbolIsFatal(t *testing.T) {
	a, b := newTable(), newTable()
	s := b.Register("x")
	diagtest.RequireICE(t, func() { a.NameFor(s) })
}

func TestNameForUnknownSymbol(t *testing.T) {
	st := newTable()
	s := Symbol{id: 42, program: st.ProgramID()}
	assert.Equal(t, "$42", st.NameFor(s))
}

func TestSymbolsOrder(t *testing.T) {
	st := newTable()
	a := st.Register("a")
	b := st.Register("b")
	assert.Equal(t, []Symbol{a, b}, st.Symbols())
	assert.Equal(t, st.ProgramID(), a.ProgramID())
	assert.Equal(t, uint32(1), a.ID())
	assert.Equal(t, "$2", b.String())
}
