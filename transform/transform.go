// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"reflect"

	"github.com/gogpu/tint/ast"
	"github.com/gogpu/tint/ir"
)

// DataMap holds at most one value per Go type. Transforms read their
// configuration from an input DataMap and report results in an output
// DataMap.
type DataMap struct {
	m map[reflect.Type]any
}

// NewDataMap returns a DataMap holding values.
func NewDataMap(values ...any) *DataMap {
	d := &DataMap{}
	for _, v := range values {
		d.Put(v)
	}
	return d
}

// Put stores v under its dynamic type, replacing any previous value of
// that type. A nil v is ignored.
func (d *DataMap) Put(v any) {
	if v == nil {
		return
	}
	if d.m == nil {
		d.m = make(map[reflect.Type]any)
	}
	d.m[reflect.TypeOf(v)] = v
}

// Get returns the value of type T held by d.
func Get[T any](d *DataMap) (T, bool) {
	var zero T
	if d == nil || d.m == nil {
		return zero, false
	}
	v, ok := d.m[reflect.TypeFor[T]()]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// Add moves every value of other into d. Values of other win.
func (d *DataMap) Add(other *DataMap) {
	if other == nil {
		return
	}
	for _, v := range other.m {
		d.Put(v)
	}
}

// Len returns the number of values held.
func (d *DataMap) Len() int {
	if d == nil {
		return 0
	}
	return len(d.m)
}

// Outcome is the result kind of applying a transform.
type Outcome uint8

const (
	// Skipped means the transform had nothing to do and the input unit is
	// unchanged.
	Skipped Outcome = iota
	// Replaced means the transform produced a new unit.
	Replaced
)

func (o Outcome) String() string {
	if o == Replaced {
		return "replaced"
	}
	return "skipped"
}

// Result is the outcome of applying a transform to a unit U.
//
// Fatal failures are not represented here: a transform that hits a broken
// invariant raises an internal compiler error, which the Pipeline turns
// into an error.
type Result[U any] struct {
	Outcome Outcome
	Unit    U        // valid when Replaced
	Outputs *DataMap // may be nil
}

// Skip returns a Skipped result.
func Skip[U any]() Result[U] {
	return Result[U]{Outcome: Skipped}
}

// Replace returns a Replaced result carrying unit and outputs.
func Replace[U any](unit U, outputs *DataMap) Result[U] {
	return Result[U]{Outcome: Replaced, Unit: unit, Outputs: outputs}
}

// Transform is a named rewriting pass.
type Transform interface {
	Name() string
}

// ASTTransform rewrites a program into a new program. The input program is
// never modified.
type ASTTransform interface {
	Transform
	Apply(p *ast.Program, inputs *DataMap) Result[*ast.Program]
}

// IRTransform rewrites a module in place. A Replaced result carries the
// same module.
type IRTransform interface {
	Transform
	Apply(m *ir.Module, inputs *DataMap) Result[*ir.Module]
}
