// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package ir defines the control-flow intermediate representation for tint.
//
// The IR is designed to be:
//   - Structured: control flow nests the way the source language does
//   - Def-use aware: every value knows the instructions reading it
//   - Cheap to rewrite: passes insert, replace and destroy in place
//
// # Structure
//
// A Module owns everything built for one compilation unit:
//   - Values: constants, function parameters, block parameters and
//     instruction results
//   - Instructions: each with a fixed operand arity and an optional result
//   - Blocks: ordered instructions ending in exactly one terminator
//   - Functions and module-scope variables
//
// If, Loop and Switch are control instructions. They end the block that
// holds them and own nested blocks; control resumes in their merge block,
// which is entered through exit instructions. Multi-in blocks may declare
// parameters that every branch to them binds.
//
// Values, instructions and blocks live in arenas tagged with the module's
// generation, so a handle from another module is detected on use. Breaking
// an invariant is an internal compiler error raised through package diag.
//
// # Translation Pipeline
//
//	Source → AST → (AST transforms) → IR → (IR transforms) → Target
//
// # References
//
// This IR design follows Tint (Dawn):
// https://dawn.googlesource.com/dawn/+/refs/heads/main/src/tint/lang/core/ir/
package ir
