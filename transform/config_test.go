// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Validate)
	assert.Equal(t, []string{"glsl", "hlsl", "msl", "spirv", "wgsl"}, cfg.TargetNames())

	for _, target := range cfg.TargetNames() {
		pl, err := cfg.Pipeline(target, nil)
		require.NoError(t, err, target)
		out, err := pl.Run(buildCounting())
		require.NoError(t, err, target)
		assert.NotNil(t, out.Module)
	}
}

func TestConfigPipeline(t *testing.T) {
	pl, err := DefaultConfig().Pipeline("hlsl", nil)
	require.NoError(t, err)

	var names []string
	for _, tr := range pl.AST {
		names = append(names, tr.Name())
	}
	for _, tr := range pl.IR {
		names = append(names, tr.Name())
	}
	assert.Equal(t, []string{"for_to_loop", "while_to_loop", "renamer", "handle_matrix_arithmetic", "swizzle_to_access"}, names)
	assert.True(t, pl.Validate)

	rc, ok := Get[*RenamerConfig](pl.Inputs)
	require.True(t, ok)
	assert.Equal(t, RenameHLSLKeywords, rc.Target)

	pl, err = DefaultConfig().Pipeline("wgsl", nil)
	require.NoError(t, err)
	assert.Empty(t, pl.IR)
	assert.Equal(t, 0, pl.Inputs.Len())

	_, err = DefaultConfig().Pipeline("ptx", nil)
	assert.ErrorContains(t, err, `unknown target "ptx" (have glsl, hlsl, msl, spirv, wgsl)`)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
validate: false
targets:
  metal:
    ast: [while_to_loop, renamer]
    rename:
      target: msl
      preserve_unicode: true
      names:
        main: entry
`))
	require.NoError(t, err)
	assert.False(t, cfg.Validate)
	require.Contains(t, cfg.Targets, "metal")

	tc := cfg.Targets["metal"]
	assert.Equal(t, []string{"while_to_loop", "renamer"}, tc.AST)
	assert.Empty(t, tc.IR)
	require.NotNil(t, tc.Rename)
	assert.Equal(t, RenameMSLKeywords, tc.Rename.Target)
	assert.True(t, tc.Rename.PreserveUnicode)
	assert.Equal(t, map[string]string{"main": "entry"}, tc.Rename.Names)

	pl, err := cfg.Pipeline("metal", nil)
	require.NoError(t, err)
	rc, ok := Get[*RenamerConfig](pl.Inputs)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"main": "entry"}, rc.Requested)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "empty configuration"},
		{"unknown field", "validate: true\nverbose: true\n", "failed to parse configuration"},
		{"bad yaml", "targets: [", "failed to parse configuration"},
		{"unknown transform", "targets:\n  x:\n    ast: [inline]\n", `invalid configuration: target x: unknown transform "inline"`},
		{"wrong unit", "targets:\n  x:\n    ir: [renamer]\n", `transform "renamer" runs on AST, not IR`},
		{"bad rename target", "targets:\n  x:\n    rename:\n      target: cuda\n", `line 4: unknown rename target "cuda"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(tt.in))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestRenameTargetYAML(t *testing.T) {
	out, err := yaml.Marshal(RenameConfig{Target: RenameGLSLKeywords})
	require.NoError(t, err)
	assert.Contains(t, string(out), "target: glsl")

	var rc RenameConfig
	require.NoError(t, yaml.Unmarshal(out, &rc))
	assert.Equal(t, RenameGLSLKeywords, rc.Target)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{
		"for_to_loop", "handle_matrix_arithmetic", "renamer", "swizzle_to_access", "while_to_loop",
	}, Names())

	for _, name := range Names() {
		_, astErr := LookupAST(name)
		_, irErr := LookupIR(name)
		assert.True(t, (astErr == nil) != (irErr == nil), "%s runs on exactly one unit", name)
	}

	_, err := LookupAST("handle_matrix_arithmetic")
	assert.ErrorContains(t, err, "runs on IR, not AST")
	_, err = LookupIR("nope")
	assert.ErrorContains(t, err, `unknown transform "nope"`)
}
