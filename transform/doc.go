// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package transform rewrites shader programs ahead of code generation.
//
// # Overview
//
// A transform is a named pass over one unit: an [ast.Program] for
// [ASTTransform]s or an [ir.Module] for [IRTransform]s. Applying a
// transform yields a [Result]: Skipped when the unit needs no change, or
// Replaced with the new unit and optional outputs. AST transforms build a
// new program through an [ast.CloneContext]; IR transforms edit the module
// in place.
//
// Transforms read their options from a [DataMap] of inputs, keyed by Go
// type, and report results the same way. Every transform returns Skipped
// when applied to its own output.
//
// # Transforms
//
//   - [WhileToLoop] and [ForToLoop] turn while and for statements into
//     loop statements.
//   - [Renamer] renames identifiers reserved in a target language.
//   - [HandleMatrixArithmetic] splits matrix addition, subtraction and
//     conversion into per-column operations.
//   - [SwizzleToAccess] turns single-component swizzles into accesses.
//
// # Pipelines
//
// A [Pipeline] runs the AST transforms, lowers the program with
// [lower.Lower] and runs the IR transforms. [Config] describes the
// pipeline of each target in YAML:
//
//	validate: true
//	targets:
//	  glsl:
//	    ast: [for_to_loop, while_to_loop, renamer]
//	    ir: [handle_matrix_arithmetic]
//	    rename: {target: glsl}
//
// Broken invariants inside a transform are internal compiler errors; the
// pipeline returns them as errors.
package transform
