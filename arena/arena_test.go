// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/tint/diag/diagtest"
)

func TestGenerationsAreUnique(t *testing.T) {
	a, b := NewGeneration(), NewGeneration()
	assert.True(t, a.IsValid())
	assert.NotEqual(t, a, b)
	assert.False(t, Generation{}.IsValid())
	assert.Equal(t, "<invalid>", Generation{}.String())
	assert.Len(t, a.String(), 8)
}

func TestAllocGet(t *testing.T) {
	a := New[string](NewGeneration())
	h1 := a.Alloc("one")
	h2 := a.Alloc("two")

	assert.Equal(t, uint32(0), h1.Index)
	assert.Equal(t, uint32(1), h2.Index)
	assert.Equal(t, "one", a.Get(h1))
	assert.Equal(t, "two", a.Get(h2))
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, uint32(2), a.Next().Index)

	a.Set(h1, "uno")
	assert.Equal(t, "uno", a.Get(h1))

	var seen []string
	a.Each(func(_ Handle, v string) { seen = append(seen, v) })
	assert.Equal(t, []string{"uno", "two"}, seen)
}

func TestForeignHandleIsFatal(t *testing.T) {
	a := New[int](NewGeneration())
	b := New[int](NewGeneration())
	h := b.Alloc(1)
	a.Alloc(2)

	assert.False(t, a.Owns(h))
	diagtest.RequireICE(t, func() { a.Get(h) })
}

func TestOutOfRangeHandleIsFatal(t *testing.T) {
	a := New[int](NewGeneration())
	h := a.Next()
	diagtest.RequireICE(t, func() { a.Get(h) })
}

func TestInvalidGenerationIsFatal(t *testing.T) {
	diagtest.RequireICE(t, func() { New[int](Generation{}) })
}
