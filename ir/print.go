// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/tint/types"
)

// String returns the disassembly of m.
func (m *Module) String() string {
	var sb strings.Builder
	w := &printer{out: &sb, module: m}
	w.writeModule()
	return sb.String()
}

// Fprint writes the disassembly of m to out.
func Fprint(out io.Writer, m *Module) error {
	_, err := io.WriteString(out, m.String())
	return err
}

// printer renders a module as text. Nested blocks of a control
// instruction are indented below it; its merge block follows the block
// holding it, at the same depth.
type printer struct {
	out    *strings.Builder
	module *Module
	indent int
}

func (w *printer) writeLine(format string, args ...any) {
	w.out.WriteString(strings.Repeat("  ", w.indent))
	fmt.Fprintf(w.out, format, args...)
	w.out.WriteByte('\n')
}

func (w *printer) writeModule() {
	for _, g := range w.module.globals {
		w.writeLine("%s", w.inst(g))
	}
	for i, f := range w.module.functions {
		if i > 0 || len(w.module.globals) > 0 {
			w.out.WriteByte('\n')
		}
		w.writeFunction(f)
	}
}

func (w *printer) writeFunction(f *Function) {
	params := make([]string, len(f.params))
	for i, p := range f.params {
		params[i] = w.typed(p)
	}
	ret := "void"
	if f.returnType != nil {
		ret = w.typeName(f.returnType)
	}
	attrs := ""
	switch f.Stage {
	case StageCompute:
		s := f.WorkgroupSize
		attrs = fmt.Sprintf("@compute @workgroup_size(%d, %d, %d) ", s[0], s[1], s[2])
	case StageVertex, StageFragment:
		attrs = "@" + f.Stage.String() + " "
	}
	w.writeLine("%s = %sfunc(%s):%s {", f, attrs, strings.Join(params, ", "), ret)
	w.indent++
	w.writeBlock(f.block)
	w.indent--
	w.writeLine("}")
}

func (w *printer) writeBlock(b *Block) {
	label := b.String()
	if len(b.params) > 0 {
		params := make([]string, len(b.params))
		for i, p := range b.params {
			params[i] = w.typed(p)
		}
		label += " (" + strings.Join(params, ", ") + ")"
	}
	w.writeLine("%s: {", label)
	w.indent++
	var control *Instruction
	for _, inst := range b.insts {
		w.writeLine("%s", w.inst(inst))
		if inst.op.IsControl() {
			control = inst
			w.writeNested(inst)
		}
	}
	w.indent--
	w.writeLine("}")
	if control != nil {
		w.writeBlock(control.merge)
	}
}

func (w *printer) writeNested(inst *Instruction) {
	w.indent++
	defer func() { w.indent-- }()
	switch inst.op {
	case OpIf:
		w.writeBlock(inst.trueBlock)
		w.writeBlock(inst.falseBlock)
	case OpLoop:
		w.writeBlock(inst.body)
		w.writeBlock(inst.continuing)
	case OpSwitch:
		for _, c := range inst.cases {
			w.writeBlock(c.Block)
		}
	}
}

func (w *printer) inst(inst *Instruction) string {
	var sb strings.Builder
	if r := inst.result; r != nil {
		sb.WriteString(w.typed(r))
		sb.WriteString(" = ")
	}
	switch inst.op {
	case OpUnary:
		sb.WriteString(inst.unary.String())
	case OpBinary:
		sb.WriteString(inst.binary.String())
	case OpBuiltinCall:
		sb.WriteString(inst.builtin.String())
	default:
		sb.WriteString(inst.op.String())
	}

	var args []string
	if inst.op == OpCall {
		args = append(args, inst.callee.String())
	}
	for _, v := range inst.operands {
		args = append(args, v.String())
	}
	if inst.op == OpSwitch {
		for _, c := range inst.cases {
			args = append(args, w.caseLabel(c))
		}
	}
	if len(args) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(args, ", "))
	}

	switch inst.op {
	case OpSwizzle:
		sb.WriteString(", ")
		for _, i := range inst.indices {
			sb.WriteByte("xyzw"[i])
		}
	case OpIf:
		fmt.Fprintf(&sb, " [t: %v, f: %v, m: %v]", inst.trueBlock, inst.falseBlock, inst.merge)
	case OpLoop:
		fmt.Fprintf(&sb, " [b: %v, c: %v, m: %v]", inst.body, inst.continuing, inst.merge)
	case OpSwitch:
		fmt.Fprintf(&sb, " [m: %v]", inst.merge)
	}
	if inst.target != nil {
		sb.WriteString("  # -> " + w.targetBlock(inst).String())
	}
	return sb.String()
}

func (w *printer) caseLabel(c Case) string {
	sels := make([]string, len(c.Selectors))
	for i, s := range c.Selectors {
		if s.IsDefault() {
			sels[i] = "default"
		} else {
			sels[i] = s.Value.String()
		}
	}
	return "(" + strings.Join(sels, " ") + " " + c.Block.String() + ")"
}

func (w *printer) targetBlock(inst *Instruction) *Block {
	switch inst.op {
	case OpContinue:
		return inst.target.continuing
	case OpNextIteration:
		return inst.target.body
	default:
		return inst.target.merge
	}
}

func (w *printer) typed(v *Value) string {
	return v.String() + ":" + w.typeName(v.typ)
}

func (w *printer) typeName(t types.Type) string {
	return t.FriendlyName(w.module.symbols)
}
