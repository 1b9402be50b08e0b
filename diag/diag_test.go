// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package diag

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(fn func()) (err error) {
	defer Recover(&err)
	fn()
	return nil
}

func TestRecoverInternalError(t *testing.T) {
	err := run(func() { ICE("bad operand %d", 3) })
	require.Error(t, err)
	assert.True(t, IsInternal(err))
	assert.Contains(t, err.Error(), "bad operand 3")

	var ice *InternalError
	require.True(t, errors.As(err, &ice))
	assert.True(t, strings.HasSuffix(ice.File, "diag_test.go"), "file %q", ice.File)
	assert.NotZero(t, ice.Line)
}

func TestAssert(t *testing.T) {
	assert.NoError(t, run(func() { Assert(true, "never") }))

	err := run(func() { Assert(false, "index %d out of range", 4) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 4 out of range")
}

func TestRecoverRepanicsForeignValues(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		_ = run(func() { panic("boom") })
	})
}

func TestIsInternalWrapped(t *testing.T) {
	err := run(func() { ICE("x") })
	assert.True(t, IsInternal(fmt.Errorf("pass failed: %w", err)))
	assert.False(t, IsInternal(errors.New("plain")))
}

func TestInternalErrorWithoutLocation(t *testing.T) {
	e := &InternalError{Msg: "m"}
	assert.Equal(t, "internal compiler error: m", e.Error())
}
