// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/tint/transform"
)

func newSamplesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "List the built-in sample programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, name := range sampleNames() {
				if _, err := fmt.Fprintf(w, "%-10s %s\n", name, samples[name].desc); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newTargetsCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the targets of the configuration and their transforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, name := range cfg.TargetNames() {
				tc := cfg.Targets[name]
				line := fmt.Sprintf("%s: ast=[%s] ir=[%s]", name, strings.Join(tc.AST, " "), strings.Join(tc.IR, " "))
				if tc.Rename != nil {
					line += " rename=" + tc.Rename.Target.String()
				}
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newPassesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "passes",
		Short: "List the registered transforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, name := range transform.Names() {
				unit := "ir"
				if _, err := transform.LookupAST(name); err == nil {
					unit = "ast"
				}
				if _, err := fmt.Fprintf(w, "%-26s %s\n", name, unit); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
