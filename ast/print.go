// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/tint/types"
)

// Print renders p as WGSL-like text. Binary expressions are always
// parenthesized, so the output is deterministic and unambiguous.
func Print(p *Program) string {
	w := &printer{program: p}
	w.writeProgram()
	return w.out.String()
}

// Fprint writes the rendering of p to out.
func Fprint(out io.Writer, p *Program) error {
	_, err := io.WriteString(out, Print(p))
	return err
}

// ExprString renders a single expression of p.
func ExprString(p *Program, e Expr) string {
	w := &printer{program: p}
	return w.expr(e)
}

type printer struct {
	program *Program
	out     strings.Builder
	indent  int
}

//nolint:goprintffuncname
func (w *printer) writeLine(format string, args ...any) {
	w.writeIndent()
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
}

func (w *printer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString("    ")
	}
}

func (w *printer) writeProgram() {
	first := true
	for _, t := range w.program.Types().Types() {
		s, ok := t.(*types.Struct)
		if !ok {
			continue
		}
		w.writeLine("struct %s {", w.name(s))
		w.indent++
		for _, m := range s.Members() {
			w.writeLine("%s : %s,", w.program.NameOf(m.Name), w.typeName(m.Type))
		}
		w.indent--
		w.writeLine("}")
		first = false
	}

	prevFunc := !first
	for _, d := range w.program.Decls() {
		switch d := d.(type) {
		case *GlobalVar:
			if prevFunc {
				w.out.WriteByte('\n')
			}
			w.globalVar(d)
			prevFunc = false
		case *Function:
			if !first {
				w.out.WriteByte('\n')
			}
			w.function(d)
			prevFunc = true
		}
		first = false
	}
}

func (w *printer) globalVar(v *GlobalVar) {
	var decl string
	switch v.Space {
	case types.SpaceHandle, types.SpaceFunction:
		decl = "var"
	case types.SpaceStorage:
		decl = fmt.Sprintf("var<%s, %s>", v.Space, v.Access)
	default:
		decl = fmt.Sprintf("var<%s>", v.Space)
	}
	if v.Init != nil {
		w.writeLine("%s %s : %s = %s;", decl, w.program.NameOf(v.Name), w.typeName(v.Type), w.expr(v.Init))
		return
	}
	w.writeLine("%s %s : %s;", decl, w.program.NameOf(v.Name), w.typeName(v.Type))
}

func (w *printer) function(f *Function) {
	switch f.Stage {
	case StageCompute:
		ws := f.WorkgroupSize
		w.writeLine("@compute @workgroup_size(%d, %d, %d)", ws[0], ws[1], ws[2])
	case StageVertex, StageFragment:
		w.writeLine("@%s", f.Stage)
	}

	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = w.program.NameOf(p.Name) + " : " + w.typeName(p.Type)
	}
	ret := ""
	if f.ReturnType != nil {
		ret = " -> " + w.typeName(f.ReturnType)
	}
	w.writeLine("fn %s(%s)%s {", w.program.NameOf(f.Name), strings.Join(params, ", "), ret)
	w.body(f.Body)
	w.writeLine("}")
}

func (w *printer) body(b *BlockStmt) {
	w.indent++
	for _, s := range b.Stmts {
		w.stmt(s)
	}
	w.indent--
}

func (w *printer) stmt(s Stmt) {
	switch s := s.(type) {
	case *BlockStmt:
		w.writeLine("{")
		w.body(s)
		w.writeLine("}")
	case *VarStmt, *AssignStmt, *CallStmt:
		w.writeLine("%s;", w.simpleStmt(s))
	case *IfStmt:
		w.writeIndent()
		w.ifChain(s)
		w.out.WriteByte('\n')
	case *WhileStmt:
		w.writeLine("while %s {", w.expr(s.Cond))
		w.body(s.Body)
		w.writeLine("}")
	case *ForStmt:
		var init, cond, cont string
		if s.Init != nil {
			init = w.simpleStmt(s.Init)
		}
		if s.Cond != nil {
			cond = " " + w.expr(s.Cond)
		}
		if s.Cont != nil {
			cont = " " + w.simpleStmt(s.Cont)
		}
		w.writeLine("for (%s;%s;%s) {", init, cond, cont)
		w.body(s.Body)
		w.writeLine("}")
	case *LoopStmt:
		w.writeLine("loop {")
		w.body(s.Body)
		if s.Continuing != nil {
			w.indent++
			w.writeLine("continuing {")
			w.body(s.Continuing)
			w.writeLine("}")
			w.indent--
		}
		w.writeLine("}")
	case *BreakIfStmt:
		w.writeLine("break if %s;", w.expr(s.Cond))
	case *BreakStmt:
		w.writeLine("break;")
	case *ContinueStmt:
		w.writeLine("continue;")
	case *DiscardStmt:
		w.writeLine("discard;")
	case *ReturnStmt:
		if s.Value != nil {
			w.writeLine("return %s;", w.expr(s.Value))
		} else {
			w.writeLine("return;")
		}
	case *SwitchStmt:
		w.writeLine("switch %s {", w.expr(s.Cond))
		w.indent++
		for _, c := range s.Cases {
			sels := make([]string, 0, len(c.Selectors)+1)
			for _, e := range c.Selectors {
				sels = append(sels, w.expr(e))
			}
			if c.Default {
				sels = append(sels, "default")
			}
			if len(c.Selectors) == 0 {
				w.writeLine("default: {")
			} else {
				w.writeLine("case %s: {", strings.Join(sels, ", "))
			}
			w.body(c.Body)
			w.writeLine("}")
		}
		w.indent--
		w.writeLine("}")
	default:
		w.writeLine("/* %v */", s.Kind())
	}
}

// ifChain writes an if statement starting at the current column, leaving
// the closing brace unterminated.
func (w *printer) ifChain(s *IfStmt) {
	fmt.Fprintf(&w.out, "if %s {\n", w.expr(s.Cond))
	w.body(s.Body)
	w.writeIndent()
	w.out.WriteString("}")
	switch e := s.Else.(type) {
	case *IfStmt:
		w.out.WriteString(" else ")
		w.ifChain(e)
	case *BlockStmt:
		w.out.WriteString(" else {\n")
		w.body(e)
		w.writeIndent()
		w.out.WriteString("}")
	}
}

func (w *printer) simpleStmt(s Stmt) string {
	switch s := s.(type) {
	case *VarStmt:
		kw := "var"
		if s.IsLet {
			kw = "let"
		}
		out := kw + " " + w.program.NameOf(s.Name)
		if s.Type != nil {
			out += " : " + w.typeName(s.Type)
		}
		if s.Init != nil {
			out += " = " + w.expr(s.Init)
		}
		return out
	case *AssignStmt:
		return w.expr(s.LHS) + " = " + w.expr(s.RHS)
	case *CallStmt:
		return w.expr(s.Call)
	default:
		return "/* " + s.Kind().String() + " */"
	}
}

func (w *printer) expr(e Expr) string {
	switch e := e.(type) {
	case *Ident:
		return w.program.NameOf(e.Symbol)
	case *BoolLiteral:
		return strconv.FormatBool(e.Value)
	case *IntLiteral:
		s := strconv.FormatInt(e.Value, 10)
		switch e.Suffix {
		case IntSuffixI:
			s += "i"
		case IntSuffixU:
			s += "u"
		}
		return s
	case *FloatLiteral:
		s := strconv.FormatFloat(e.Value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}
		switch e.Suffix {
		case FloatSuffixF:
			s += "f"
		case FloatSuffixH:
			s += "h"
		}
		return s
	case *UnaryExpr:
		operand := w.expr(e.Expr)
		if _, nested := e.Expr.(*UnaryExpr); nested {
			operand = "(" + operand + ")"
		}
		return e.Op.String() + operand
	case *BinaryExpr:
		return "(" + w.expr(e.LHS) + " " + e.Op.String() + " " + w.expr(e.RHS) + ")"
	case *CallExpr:
		return w.program.NameOf(e.Target) + "(" + w.exprList(e.Args) + ")"
	case *IndexExpr:
		return w.expr(e.Object) + "[" + w.expr(e.Index) + "]"
	case *MemberExpr:
		return w.expr(e.Object) + "." + w.program.NameOf(e.Member)
	case *ConstructExpr:
		return w.typeName(e.Type) + "(" + w.exprList(e.Args) + ")"
	default:
		return "/* " + e.Kind().String() + " */"
	}
}

func (w *printer) exprList(list []Expr) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = w.expr(e)
	}
	return strings.Join(parts, ", ")
}

func (w *printer) typeName(t types.Type) string {
	return t.FriendlyName(w.program.Symbols())
}

func (w *printer) name(s *types.Struct) string {
	return w.program.NameOf(s.Name())
}
