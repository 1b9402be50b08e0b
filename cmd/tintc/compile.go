// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gogpu/tint"
	"github.com/gogpu/tint/ast"
	"github.com/gogpu/tint/ir"
	"github.com/gogpu/tint/transform"
)

type compileOptions struct {
	Target string
	Print  string // "ir" | "ast" | "both"
	Output string
}

var validPrints = []string{"ir", "ast", "both"}

func newCompileCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &compileOptions{}

	cmd := &cobra.Command{
		Use:   "compile <sample>",
		Short: "Run the pipeline of a target on a sample program",
		Long: `Run the AST transforms of a target on a built-in sample program, lower it
to IR, run the IR transforms and print the result.

Use "tintc samples" to list the sample programs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Target, "target", "t", tint.DefaultTarget, "target whose transforms run")
	cmd.Flags().StringVarP(&opts.Print, "print", "p", "ir", "what to print (ir|ast|both)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func runCompile(rootOpts *rootOptions, opts *compileOptions, name string, cmd *cobra.Command) error {
	if !slices.Contains(validPrints, opts.Print) {
		return fmt.Errorf("invalid print mode %q: must be one of %v", opts.Print, validPrints)
	}
	program, err := lookupSample(name)
	if err != nil {
		return err
	}
	cfg, err := rootOpts.loadConfig()
	if err != nil {
		return err
	}

	logger := rootOpts.newLogger(cmd.ErrOrStderr())
	out, err := tint.CompileWithOptions(program, tint.CompileOptions{
		Target:   opts.Target,
		Config:   cfg,
		Validate: cfg.Validate,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("compilation of %s failed: %w", name, err)
	}
	logRemappings(logger, out.Outputs)

	if opts.Output == "" {
		if err := writeOutput(cmd.OutOrStdout(), opts.Print, out); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
		return nil
	}
	if err := writeFile(opts.Output, opts.Print, out); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	logger.Info("compiled", "sample", name, "target", opts.Target, "output", opts.Output)
	return nil
}

// writeFile writes out to path. A failed close is an error.
func writeFile(path, mode string, out *transform.Output) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeOutput(f, mode, out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeOutput(w io.Writer, mode string, out *transform.Output) error {
	if mode == "ast" || mode == "both" {
		if err := ast.Fprint(w, out.Program); err != nil {
			return err
		}
	}
	if mode == "both" {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	if mode == "ir" || mode == "both" {
		return ir.Fprint(w, out.Module)
	}
	return nil
}

func logRemappings(logger *slog.Logger, outputs *transform.DataMap) {
	data, ok := transform.Get[*transform.RenamerData](outputs)
	if !ok {
		return
	}
	for _, from := range slices.Sorted(maps.Keys(data.Remappings)) {
		logger.Debug("identifier renamed", "from", from, "to", data.Remappings[from])
	}
}
