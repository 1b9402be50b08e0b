// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package ast defines the resolved shader program tree.
//
// A Program is built once through a Builder and is immutable afterwards.
// Every node records the program that created it and its NodeID within that
// program, so a node can never be attached to another program by accident:
// moving nodes between programs goes through a CloneContext, which can also
// substitute nodes (ReplaceAll, Replace, Remove) and rename symbols
// (ReplaceSymbols) on the way.
//
// Expressions carry no types. Types, symbols and struct layouts live in the
// program's types.Manager and symbol.Table.
package ast
