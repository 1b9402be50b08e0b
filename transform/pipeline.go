// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/tint/ast"
	"github.com/gogpu/tint/diag"
	"github.com/gogpu/tint/ir"
	"github.com/gogpu/tint/lower"
)

// Pipeline runs AST transforms, lowers the program to IR and runs IR
// transforms, in order.
type Pipeline struct {
	AST []ASTTransform
	IR  []IRTransform

	// Inputs are handed to every transform, together with the outputs of
	// the transforms that ran before it.
	Inputs *DataMap

	// Validate runs ir.Validate after lowering and after every IR
	// transform that replaced the module.
	Validate bool

	// Logger receives a debug record per transform. Nil discards.
	Logger *slog.Logger
}

// Output is what a pipeline run produced.
type Output struct {
	Program *ast.Program // the program after the AST transforms
	Module  *ir.Module
	Outputs *DataMap // merged outputs of all transforms
}

// ValidationFailure reports an invalid module after a pipeline step.
type ValidationFailure struct {
	Step   string
	Errors []ir.ValidationError
}

func (e *ValidationFailure) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid module after %s: %s", e.Step, e.Errors[0].Error())
	if n := len(e.Errors) - 1; n > 0 {
		fmt.Fprintf(&sb, " (and %d more)", n)
	}
	return sb.String()
}

// Run applies the pipeline to p. Internal compiler errors raised by any
// step are returned as *diag.InternalError.
func (pl *Pipeline) Run(p *ast.Program) (out *Output, err error) {
	defer diag.Recover(&err)

	log := pl.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	// Each pass sees the pipeline inputs plus the outputs of the passes
	// before it. pl.Inputs itself is left untouched.
	inputs := NewDataMap()
	inputs.Add(pl.Inputs)
	outputs := NewDataMap()
	collect := func(d *DataMap) {
		outputs.Add(d)
		inputs.Add(d)
	}

	for _, t := range pl.AST {
		res := t.Apply(p, inputs)
		log.Debug("transform applied", "pass", t.Name(), "outcome", res.Outcome.String(), "unit", "ast")
		if res.Outcome == Replaced {
			p = res.Unit
			collect(res.Outputs)
		}
	}

	m, err := lower.Lower(p)
	if err != nil {
		return nil, fmt.Errorf("lowering: %w", err)
	}
	log.Debug("program lowered", "functions", len(m.Functions()), "globals", len(m.Globals()))
	if err := pl.validate("lowering", m); err != nil {
		return nil, err
	}

	for _, t := range pl.IR {
		res := t.Apply(m, inputs)
		log.Debug("transform applied", "pass", t.Name(), "outcome", res.Outcome.String(), "unit", "ir")
		if res.Outcome != Replaced {
			continue
		}
		m = res.Unit
		collect(res.Outputs)
		if err := pl.validate(t.Name(), m); err != nil {
			return nil, err
		}
	}

	return &Output{Program: p, Module: m, Outputs: outputs}, nil
}

func (pl *Pipeline) validate(step string, m *ir.Module) error {
	if !pl.Validate {
		return nil
	}
	if errs := ir.Validate(m); len(errs) > 0 {
		return &ValidationFailure{Step: step, Errors: errs}
	}
	return nil
}
