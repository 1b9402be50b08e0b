// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"github.com/gogpu/tint/ast"
)

// WhileToLoop rewrites
//
//	while C { B }
//
// into
//
//	loop { if !C { break; } B }
type WhileToLoop struct{}

// Name implements Transform.
func (WhileToLoop) Name() string { return "while_to_loop" }

// Apply implements ASTTransform.
func (WhileToLoop) Apply(p *ast.Program, _ *DataMap) Result[*ast.Program] {
	if !ast.Contains(p, ast.KindWhileStmt) {
		return Skip[*ast.Program]()
	}

	b := ast.NewBuilder()
	ctx := ast.NewCloneContext(b, p, true)
	ast.ReplaceAll(ctx, func(w *ast.WhileStmt) ast.Node {
		at := b.At(w.Source())
		stmts := []ast.Stmt{breakUnless(at, ast.Clone(ctx, w.Cond))}
		stmts = append(stmts, ast.CloneAll(ctx, w.Body.Stmts)...)
		return at.Loop(at.Block(stmts...), nil)
	})
	ctx.Clone()
	return Replace(b.Build(), nil)
}

// ForToLoop rewrites
//
//	for (I; C; K) { B }
//
// into
//
//	{ I; loop { if !C { break; } B continuing { K } } }
//
// Parts missing from the for statement are left out.
type ForToLoop struct{}

// Name implements Transform.
func (ForToLoop) Name() string { return "for_to_loop" }

// Apply implements ASTTransform.
func (ForToLoop) Apply(p *ast.Program, _ *DataMap) Result[*ast.Program] {
	if !ast.Contains(p, ast.KindForStmt) {
		return Skip[*ast.Program]()
	}

	b := ast.NewBuilder()
	ctx := ast.NewCloneContext(b, p, true)
	ast.ReplaceAll(ctx, func(f *ast.ForStmt) ast.Node {
		at := b.At(f.Source())
		init := ast.Clone(ctx, f.Init)

		var body []ast.Stmt
		if f.Cond != nil {
			body = append(body, breakUnless(at, ast.Clone(ctx, f.Cond)))
		}
		body = append(body, ast.CloneAll(ctx, f.Body.Stmts)...)

		var continuing *ast.BlockStmt
		if f.Cont != nil {
			continuing = at.Block(ast.Clone(ctx, f.Cont))
		}
		loop := at.Loop(at.Block(body...), continuing)
		if init == nil {
			return loop
		}
		return at.Block(init, loop)
	})
	ctx.Clone()
	return Replace(b.Build(), nil)
}

// breakUnless returns if !cond { break; }.
func breakUnless(b *ast.Builder, cond ast.Expr) ast.Stmt {
	return b.If(b.Not(cond), b.Block(b.Break()), nil)
}
