// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gogpu/tint/transform"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	Verbose    bool
	LogFormat  string // "text" | "json"
	ConfigPath string
}

var validLogFormats = []string{"text", "json"}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "tintc",
		Short:   "Shader transform pipeline driver",
		Long:    "Runs the AST and IR transforms of a code generation target on built-in sample programs.",
		Version: tintVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validLogFormats, opts.LogFormat) {
				return fmt.Errorf("invalid log format %q: must be one of %v", opts.LogFormat, validLogFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every transform")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "text", "log format (text|json)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML pipeline configuration (default: built-in)")

	cmd.AddCommand(newCompileCommand(opts))
	cmd.AddCommand(newSamplesCommand())
	cmd.AddCommand(newTargetsCommand(opts))
	cmd.AddCommand(newPassesCommand())

	return cmd
}

// newLogger returns a logger writing to w. Without --verbose only warnings
// and errors get through.
func (o *rootOptions) newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if o.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, hopts)
	} else {
		handler = slog.NewTextHandler(w, hopts)
	}
	return slog.New(handler)
}

// loadConfig reads --config, or returns the built-in configuration.
func (o *rootOptions) loadConfig() (*transform.Config, error) {
	if o.ConfigPath == "" {
		return transform.DefaultConfig(), nil
	}
	f, err := os.Open(o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	defer f.Close()

	cfg, err := transform.LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.ConfigPath, err)
	}
	return cfg, nil
}
