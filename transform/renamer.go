// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/tint/ast"
	"github.com/gogpu/tint/ir"
	"github.com/gogpu/tint/symbol"
	"github.com/gogpu/tint/types"
)

// RenameTarget selects which identifiers the Renamer rewrites.
type RenameTarget uint8

const (
	// RenameAll renames every identifier to a generated name.
	RenameAll RenameTarget = iota
	// RenameGLSLKeywords renames identifiers reserved in GLSL.
	RenameGLSLKeywords
	// RenameHLSLKeywords renames identifiers reserved in HLSL.
	RenameHLSLKeywords
	// RenameMSLKeywords renames identifiers reserved in MSL.
	RenameMSLKeywords
	// RenameWGSLKeywords renames identifiers reserved in WGSL.
	RenameWGSLKeywords
)

var renameTargetNames = [...]string{
	RenameAll:          "all",
	RenameGLSLKeywords: "glsl",
	RenameHLSLKeywords: "hlsl",
	RenameMSLKeywords:  "msl",
	RenameWGSLKeywords: "wgsl",
}

func (t RenameTarget) String() string {
	if int(t) < len(renameTargetNames) {
		return renameTargetNames[t]
	}
	return fmt.Sprintf("RenameTarget(%d)", uint8(t))
}

// ParseRenameTarget returns the target called name.
func ParseRenameTarget(name string) (RenameTarget, error) {
	for i, n := range renameTargetNames {
		if n == name {
			return RenameTarget(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rename target %q", name)
}

// RenamerConfig is the optional input of the Renamer. Without one every
// identifier is renamed.
type RenamerConfig struct {
	Target RenameTarget

	// PreserveUnicode keeps identifiers with non-ASCII characters. When
	// false they are renamed under every target.
	PreserveUnicode bool

	// Requested maps old names to the names they should get. A requested
	// name that is already taken gets a numeric suffix.
	Requested map[string]string
}

// RenamerData is the output of the Renamer.
type RenamerData struct {
	// Remappings maps every renamed identifier to its new name.
	Remappings map[string]string
}

// Renamer renames identifiers that would clash with reserved words of a
// target language, or all identifiers.
//
// Builtin function names and vector swizzles are never renamed. A member
// access spelled like a swizzle (.x, .rgb, ...) is a swizzle unless some
// struct has a member of that name; such a name keeps its spelling
// everywhere.
type Renamer struct{}

// Name implements Transform.
func (Renamer) Name() string { return "renamer" }

// Apply implements ASTTransform.
func (Renamer) Apply(p *ast.Program, inputs *DataMap) Result[*ast.Program] {
	cfg, ok := Get[*RenamerConfig](inputs)
	if !ok {
		cfg = &RenamerConfig{}
	}
	src := p.Symbols()

	userFns := make(map[symbol.Symbol]bool)
	for _, f := range p.Functions() {
		userFns[f.Name] = true
	}
	isBuiltinCall := func(c *ast.CallExpr) bool {
		if userFns[c.Target] {
			return false
		}
		_, ok := ir.LookupBuiltin(src.NameFor(c.Target))
		return ok
	}

	used := make(map[symbol.Symbol]bool)
	swizzles := make(map[symbol.Symbol]bool)
	builtins := make(map[string]bool)
	ast.InspectProgram(p, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Function:
			used[n.Name] = true
		case *ast.Param:
			used[n.Name] = true
		case *ast.GlobalVar:
			used[n.Name] = true
		case *ast.VarStmt:
			used[n.Name] = true
		case *ast.Ident:
			used[n.Symbol] = true
		case *ast.MemberExpr:
			if isSwizzle(src.NameFor(n.Member)) {
				swizzles[n.Member] = true
			} else {
				used[n.Member] = true
			}
		case *ast.CallExpr:
			if isBuiltinCall(n) {
				builtins[src.NameFor(n.Target)] = true
			} else {
				used[n.Target] = true
			}
		}
		return true
	})
	// A swizzle-shaped member access that may name a struct member pins
	// the symbol.
	pinned := make(map[symbol.Symbol]bool)
	for _, t := range p.Types().Types() {
		if s, ok := t.(*types.Struct); ok {
			used[s.Name()] = true
			for _, m := range s.Members() {
				used[m.Name] = true
				if swizzles[m.Name] {
					pinned[m.Name] = true
				}
			}
		}
	}
	shouldRename := func(s symbol.Symbol) bool {
		return !pinned[s] && cfg.shouldRename(src.NameFor(s))
	}

	var kept []string
	renaming := false
	for _, s := range src.Symbols() {
		if swizzles[s] {
			kept = append(kept, src.NameFor(s))
		}
		if !used[s] {
			continue
		}
		if shouldRename(s) {
			renaming = true
		} else if !swizzles[s] {
			kept = append(kept, src.NameFor(s))
		}
	}
	if !renaming {
		return Skip[*ast.Program]()
	}

	b := ast.NewBuilder()
	dst := b.Symbols()
	// Names that stay are registered first, so generated names avoid them.
	for _, name := range kept {
		b.Sym(name)
	}
	builtinNames := make([]string, 0, len(builtins))
	for name := range builtins {
		builtinNames = append(builtinNames, name)
	}
	sort.Strings(builtinNames)
	for _, name := range builtinNames {
		b.Sym(name)
	}

	remappings := make(map[string]string)
	ctx := ast.NewCloneContext(b, p, false)
	ctx.ReplaceSymbols(func(s symbol.Symbol) symbol.Symbol {
		name := src.NameFor(s)
		if !shouldRename(s) {
			return b.Sym(name)
		}
		out := dst.New(cfg.Requested[name])
		remappings[name] = dst.NameFor(out)
		return out
	})
	ast.ReplaceAll(ctx, func(c *ast.CallExpr) ast.Node {
		if !isBuiltinCall(c) {
			return nil
		}
		return b.At(c.Source()).Call(src.NameFor(c.Target), ast.CloneAll(ctx, c.Args)...)
	})
	ast.ReplaceAll(ctx, func(m *ast.MemberExpr) ast.Node {
		if !swizzles[m.Member] || pinned[m.Member] {
			return nil
		}
		return b.At(m.Source()).MemberSym(ast.Clone(ctx, m.Object), b.Sym(src.NameFor(m.Member)))
	})
	ctx.Clone()

	return Replace(b.Build(), NewDataMap(&RenamerData{Remappings: remappings}))
}

func (cfg *RenamerConfig) shouldRename(name string) bool {
	if _, ok := cfg.Requested[name]; ok {
		return true
	}
	if cfg.isRequestedName(name) {
		return false
	}
	if cfg.Target == RenameAll {
		return !isGeneratedName(name)
	}
	if !cfg.PreserveUnicode && !isASCII(name) {
		return true
	}
	return isReserved(cfg.Target, name)
}

func isReserved(target RenameTarget, name string) bool {
	var ok bool
	switch target {
	case RenameGLSLKeywords:
		_, ok = glslReserved[name]
		ok = ok || strings.HasPrefix(name, "gl_") || strings.Contains(name, "__")
	case RenameHLSLKeywords:
		_, ok = hlslReserved[name]
		if !ok {
			_, ok = hlslFoldedReserved[strings.ToLower(name)]
		}
	case RenameMSLKeywords:
		_, ok = mslReserved[name]
		ok = ok || strings.HasPrefix(name, "__")
	case RenameWGSLKeywords:
		_, ok = wgslReserved[name]
		ok = ok || strings.HasPrefix(name, "__")
	}
	return ok
}

// isRequestedName reports whether name is one the Renamer may have given
// for a requested name: the name itself or a suffixed form of it.
func (cfg *RenamerConfig) isRequestedName(name string) bool {
	for _, want := range cfg.Requested {
		if want != "" && isNewName(name, want) {
			return true
		}
	}
	return false
}

// isGeneratedName reports whether name has the form symbol.Table.New
// gives names without a prefix.
func isGeneratedName(name string) bool {
	return isNewName(name, symbol.DefaultPrefix)
}

// isNewName reports whether name is prefix or prefix_N.
func isNewName(name, prefix string) bool {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return false
	}
	if rest == "" {
		return true
	}
	digits, ok := strings.CutPrefix(rest, "_")
	if !ok || digits == "" {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isSwizzle reports whether name is a vector swizzle such as xy or rgba.
func isSwizzle(name string) bool {
	if len(name) == 0 || len(name) > 4 {
		return false
	}
	return strings.Trim(name, "xyzw") == "" || strings.Trim(name, "rgba") == ""
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
