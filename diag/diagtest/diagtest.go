// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package diagtest holds test helpers for internal compiler errors.
package diagtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/tint/diag"
)

// Catch runs fn and returns the internal compiler error it raised, if any.
func Catch(fn func()) (err error) {
	defer diag.Recover(&err)
	fn()
	return nil
}

// RequireICE fails the test unless fn raises an internal compiler error.
// The error is returned so callers can match on its message.
func RequireICE(t testing.TB, fn func()) error {
	t.Helper()
	err := Catch(fn)
	require.Error(t, err, "expected an internal compiler error")
	require.True(t, diag.IsInternal(err), "unexpected error type: %v", err)
	return err
}
