// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/tint/diag"
)

//go:embed default.yaml
var defaultConfig string

// Config selects the transforms run for each code generation target.
type Config struct {
	// Validate checks the IR after lowering and after each IR transform.
	Validate bool `yaml:"validate"`

	Targets map[string]TargetConfig `yaml:"targets"`
}

// TargetConfig lists the transforms of one target, in run order.
type TargetConfig struct {
	AST    []string      `yaml:"ast"`
	IR     []string      `yaml:"ir"`
	Rename *RenameConfig `yaml:"rename,omitempty"`
}

// RenameConfig is the YAML form of RenamerConfig.
type RenameConfig struct {
	Target          RenameTarget      `yaml:"target"`
	PreserveUnicode bool              `yaml:"preserve_unicode"`
	Names           map[string]string `yaml:"names"`
}

// UnmarshalYAML reads a target given by name.
func (t *RenameTarget) UnmarshalYAML(n *yaml.Node) error {
	var name string
	if err := n.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseRenameTarget(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*t = parsed
	return nil
}

// MarshalYAML writes the target name.
func (t RenameTarget) MarshalYAML() (any, error) {
	return t.String(), nil
}

// LoadConfig reads a YAML configuration. Unknown fields and unknown
// transform names are errors.
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty configuration")
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	cfg, err := LoadConfig(strings.NewReader(defaultConfig))
	if err != nil {
		diag.ICE("built-in configuration: %v", err)
	}
	return cfg
}

func (c *Config) check() error {
	for _, name := range c.TargetNames() {
		tc := c.Targets[name]
		for _, t := range tc.AST {
			if _, err := LookupAST(t); err != nil {
				return fmt.Errorf("target %s: %w", name, err)
			}
		}
		for _, t := range tc.IR {
			if _, err := LookupIR(t); err != nil {
				return fmt.Errorf("target %s: %w", name, err)
			}
		}
	}
	return nil
}

// TargetNames returns the configured targets, sorted.
func (c *Config) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Pipeline builds the pipeline of target. The logger may be nil.
func (c *Config) Pipeline(target string, logger *slog.Logger) (*Pipeline, error) {
	tc, ok := c.Targets[target]
	if !ok {
		return nil, fmt.Errorf("unknown target %q (have %s)", target, strings.Join(c.TargetNames(), ", "))
	}
	pl := &Pipeline{Validate: c.Validate, Logger: logger, Inputs: NewDataMap()}
	for _, name := range tc.AST {
		t, err := LookupAST(name)
		if err != nil {
			return nil, err
		}
		pl.AST = append(pl.AST, t)
	}
	for _, name := range tc.IR {
		t, err := LookupIR(name)
		if err != nil {
			return nil, err
		}
		pl.IR = append(pl.IR, t)
	}
	if rc := tc.Rename; rc != nil {
		pl.Inputs.Put(&RenamerConfig{
			Target:          rc.Target,
			PreserveUnicode: rc.PreserveUnicode,
			Requested:       rc.Names,
		})
	}
	return pl, nil
}
