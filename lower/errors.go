// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lower

import (
	"fmt"

	"github.com/gogpu/tint/ast"
)

// SourceError represents an error with source location information.
type SourceError struct {
	Message string
	Source  ast.Source
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if loc := e.Source.String(); loc != "" {
		return loc + ": " + e.Message
	}
	return e.Message
}

// SourceErrors represents a list of source errors.
type SourceErrors []*SourceError

// Error implements the error interface.
func (el SourceErrors) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	if len(el) == 1 {
		return el[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
}

// Add adds an error to the list.
func (el *SourceErrors) Add(err *SourceError) {
	*el = append(*el, err)
}

// HasErrors returns true if there are any errors.
func (el SourceErrors) HasErrors() bool {
	return len(el) > 0
}
