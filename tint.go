// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package tint prepares shader programs for code generation.
//
// tint takes a resolved AST program and readies it for one backend:
//   - AST transforms rewrite constructs the backend lacks (while and for
//     loops, reserved identifiers)
//   - the program is lowered to a control-flow IR
//   - IR transforms rewrite instructions the backend lacks (matrix
//     arithmetic, scalar swizzles)
//
// The transforms of each target come from a YAML configuration; the
// built-in one knows the spirv, glsl, hlsl, msl and wgsl targets.
//
// Example usage:
//
//	b := ast.NewBuilder()
//	b.Func("main", nil, nil, b.Block(
//	    b.While(b.Bool(false), b.Block()),
//	))
//	module, err := tint.Compile(b.Build())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(module)
//
// For a given target and logging, use CompileWithOptions:
//
//	opts := tint.DefaultOptions()
//	opts.Target = "hlsl"
//	opts.Logger = slog.Default()
//	out, err := tint.CompileWithOptions(program, opts)
package tint

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/tint/ast"
	"github.com/gogpu/tint/ir"
	"github.com/gogpu/tint/lower"
	"github.com/gogpu/tint/transform"
)

// DefaultTarget is the target Compile prepares programs for.
const DefaultTarget = "spirv"

// CompileOptions configures compilation.
type CompileOptions struct {
	// Target selects the transforms to run (default: spirv)
	Target string

	// Config lists the transforms of every target. Nil uses the built-in
	// configuration.
	Config *transform.Config

	// Validate enables IR validation after lowering and after every IR
	// transform. It takes precedence over the validate key of Config;
	// pass Config.Validate to follow the configuration.
	Validate bool

	// Logger receives a debug record per transform. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns sensible default options.
func DefaultOptions() CompileOptions {
	return CompileOptions{
		Target:   DefaultTarget,
		Validate: true,
	}
}

// Compile prepares p for the default target and returns the IR module.
//
// This is the simplest entry point. For more control, use
// CompileWithOptions or the individual Lower and Validate functions.
func Compile(p *ast.Program) (*ir.Module, error) {
	out, err := CompileWithOptions(p, DefaultOptions())
	if err != nil {
		return nil, err
	}
	return out.Module, nil
}

// CompileWithOptions prepares p for opts.Target.
//
// The compilation pipeline is:
//  1. Run the AST transforms of the target
//  2. Lower the AST to IR
//  3. Validate the IR (if enabled)
//  4. Run the IR transforms of the target, validating after each one
//     that changed the module (if enabled)
//
// p itself is never modified. The returned output holds the transformed
// program, the module and the data the transforms reported.
func CompileWithOptions(p *ast.Program, opts CompileOptions) (*transform.Output, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = transform.DefaultConfig()
	}
	target := opts.Target
	if target == "" {
		target = DefaultTarget
	}

	pl, err := cfg.Pipeline(target, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	pl.Validate = opts.Validate

	out, err := pl.Run(p)
	if err != nil {
		return nil, fmt.Errorf("%s pipeline: %w", target, err)
	}
	return out, nil
}

// Lower converts an AST program to IR without running any transform.
//
// The program must not contain while or for statements.
func Lower(p *ast.Program) (*ir.Module, error) {
	return lower.Lower(p)
}

// Validate checks the structural invariants of an IR module.
//
// Returns a slice of validation errors. If the slice is empty, validation
// passed.
func Validate(module *ir.Module) []ir.ValidationError {
	return ir.Validate(module)
}

// Targets returns the targets of the built-in configuration.
func Targets() []string {
	return transform.DefaultConfig().TargetNames()
}
