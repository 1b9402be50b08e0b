// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package diag reports internal compiler errors.
//
// The core assumes its input was produced by a parser and validator that
// already rejected malformed programs. Anything that still breaks an
// invariant (a nil operand, a node from the wrong program, a repeated block
// parameter declaration) is a bug in an upstream collaborator or in a pass,
// and is raised as a panic carrying an *InternalError. Entry points that
// drive whole compilations defer Recover to turn that panic back into an
// ordinary error for the caller.
package diag

import (
	"errors"
	"fmt"
	"runtime"
)

// InternalError describes a violated compiler invariant.
type InternalError struct {
	Msg  string
	File string
	Line int
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	if e.File == "" {
		return "internal compiler error: " + e.Msg
	}
	return fmt.Sprintf("internal compiler error: %s:%d: %s", e.File, e.Line, e.Msg)
}

// ICE raises an internal compiler error. It never returns.
func ICE(format string, args ...any) {
	panic(newInternalError(2, fmt.Sprintf(format, args...)))
}

// Assert raises an internal compiler error when cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(newInternalError(2, fmt.Sprintf(format, args...)))
	}
}

func newInternalError(skip int, msg string) *InternalError {
	e := &InternalError{Msg: msg}
	if _, file, line, ok := runtime.Caller(skip); ok {
		e.File = file
		e.Line = line
	}
	return e
}

// Recover converts an internal compiler error panic into *err.
// It must be called directly by a deferred statement. Panics that do not
// carry an *InternalError are re-raised.
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if ice, ok := r.(*InternalError); ok {
		*err = ice
		return
	}
	panic(r)
}

// IsInternal reports whether err is, or wraps, an internal compiler error.
func IsInternal(err error) bool {
	var ice *InternalError
	return errors.As(err, &ice)
}
