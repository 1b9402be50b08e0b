// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command tintc runs the transform pipelines of the shader IR core.
//
// There is no parser in the core, so tintc works on a set of built-in
// sample programs.
//
// Usage:
//
//	tintc compile [flags] <sample>
//	tintc samples
//	tintc targets
//	tintc passes
//
// Examples:
//
//	tintc compile loops                       # Prepare for SPIR-V, print IR
//	tintc compile -t hlsl -p ast lighting     # Print the renamed AST
//	tintc compile -c tint.yaml -t metal matrix
//	tintc -v --log-format json compile matrix # Log every transform
package main

import (
	"fmt"
	"os"
)

const tintVersion = "0.1.0-dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
