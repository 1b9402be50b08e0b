// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package lower builds the IR module of an AST program.
//
// The program must be free of while and for statements; run the
// WhileToLoop and ForToLoop transforms first. Problems in the program are
// returned as SourceErrors. Broken invariants of the AST or IR are internal
// compiler errors.
//
// Logical && and || lower to plain binary instructions: both operands are
// always evaluated.
package lower

import (
	"fmt"

	"github.com/gogpu/tint/ast"
	"github.com/gogpu/tint/diag"
	"github.com/gogpu/tint/ir"
	"github.com/gogpu/tint/symbol"
	"github.com/gogpu/tint/types"
)

// binding is what a name resolves to in the function being lowered.
type binding struct {
	value *ir.Value
	ptr   bool // value is a pointer to the variable's storage
}

type frameKind uint8

const (
	frameLoop frameKind = iota
	frameSwitch
)

// frame is an enclosing loop or switch that break and continue target.
type frame struct {
	kind       frameKind
	inst       *ir.Instruction
	continuing bool
}

// lowerer converts an AST program to an IR module.
type lowerer struct {
	prog   *ast.Program
	module *ir.Module
	b      *ir.Builder
	types  *types.Manager

	globals   map[symbol.Symbol]*ir.Value
	functions map[symbol.Symbol]*ir.Function

	// Current function context
	fn     *ir.Function
	scopes []map[symbol.Symbol]binding
	frames []frame

	errors SourceErrors
}

// Lower converts p to an IR module sharing its types and symbols.
func Lower(p *ast.Program) (m *ir.Module, err error) {
	defer diag.Recover(&err)

	module := ir.NewModuleWith(p.Types(), p.Symbols())
	l := &lowerer{
		prog:      p,
		module:    module,
		b:         ir.NewBuilder(module),
		types:     p.Types(),
		globals:   make(map[symbol.Symbol]*ir.Value, 8),
		functions: make(map[symbol.Symbol]*ir.Function, 8),
	}

	for _, g := range p.GlobalVars() {
		l.lowerGlobalVar(g)
	}

	// Pre-register all functions to support forward references
	fns := p.Functions()
	for _, f := range fns {
		l.declareFunction(f)
	}
	for _, f := range fns {
		l.lowerFunction(f)
	}

	if l.errors.HasErrors() {
		return nil, l.errors
	}
	return module, nil
}

func (l *lowerer) errorf(n ast.Node, format string, args ...any) {
	l.errors.Add(&SourceError{Message: fmt.Sprintf(format, args...), Source: n.Source()})
}

func (l *lowerer) name(s symbol.Symbol) string {
	return l.prog.NameOf(s)
}

func (l *lowerer) lowerGlobalVar(g *ast.GlobalVar) {
	if _, dup := l.globals[g.Name]; dup {
		l.errorf(g, "redeclaration of '%s'", l.name(g.Name))
		return
	}
	l.b.SetInsertionPoint(nil)
	var init *ir.Value
	if g.Init != nil {
		if init = l.lowerExpr(g.Init, g.Type); init == nil {
			return
		}
	}
	v := l.b.Var(g.Space, g.Type, g.Access, init)
	l.module.SetName(v.Result(), l.name(g.Name))
	l.module.AddGlobal(v)
	l.globals[g.Name] = v.Result()
}

func (l *lowerer) declareFunction(f *ast.Function) {
	if _, dup := l.functions[f.Name]; dup {
		l.errorf(f, "redeclaration of function '%s'", l.name(f.Name))
		return
	}
	params := make([]*ir.Value, len(f.Params))
	for i, p := range f.Params {
		params[i] = l.module.FunctionParam(p.Type)
		l.module.SetName(params[i], l.name(p.Name))
	}
	fn := l.module.NewFunction(l.name(f.Name), params, f.ReturnType)
	fn.Stage = pipelineStage(f.Stage)
	fn.WorkgroupSize = f.WorkgroupSize
	l.functions[f.Name] = fn
}

func pipelineStage(s ast.ShaderStage) ir.PipelineStage {
	switch s {
	case ast.StageVertex:
		return ir.StageVertex
	case ast.StageFragment:
		return ir.StageFragment
	case ast.StageCompute:
		return ir.StageCompute
	default:
		return ir.StageNone
	}
}

func (l *lowerer) lowerFunction(f *ast.Function) {
	fn := l.functions[f.Name]
	if fn == nil || fn.Block().Len() > 0 {
		// Duplicate declaration, already reported.
		return
	}
	l.fn = fn
	l.frames = nil
	l.scopes = nil
	defer func() { l.fn = nil }()

	l.pushScope()
	for i, p := range f.Params {
		l.bind(p.Name, binding{value: fn.Params()[i]})
	}
	l.b.SetInsertionPoint(fn.Block())
	l.lowerStmts(f.Body.Stmts)
	l.popScope()

	if l.reachable() {
		if f.ReturnType == nil {
			l.b.Return(nil)
		} else {
			l.errorf(f, "missing return at end of function '%s'", l.name(f.Name))
			l.b.Unreachable()
		}
	}
}

func (l *lowerer) pushScope() {
	l.scopes = append(l.scopes, make(map[symbol.Symbol]binding, 8))
}

func (l *lowerer) popScope() {
	l.scopes = l.scopes[:len(l.scopes)-1]
}

func (l *lowerer) bind(s symbol.Symbol, b binding) {
	l.scopes[len(l.scopes)-1][s] = b
}

func (l *lowerer) lookup(s symbol.Symbol) (binding, bool) {
	for i := len(l.scopes) - 1; i >= 0; i-- {
		if b, ok := l.scopes[i][s]; ok {
			return b, true
		}
	}
	if g, ok := l.globals[s]; ok {
		return binding{value: g, ptr: true}, true
	}
	return binding{}, false
}

// reachable reports whether instructions may still be appended: the
// current block exists and is not terminated.
func (l *lowerer) reachable() bool {
	blk := l.b.Block()
	return blk != nil && !blk.IsTerminated()
}

func (l *lowerer) lowerBlock(blk *ast.BlockStmt) {
	l.pushScope()
	l.lowerStmts(blk.Stmts)
	l.popScope()
}

// lowerStmts lowers stmts in order. Statements after a terminator are
// unreachable and skipped.
func (l *lowerer) lowerStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		if !l.reachable() {
			return
		}
		l.lowerStmt(s)
	}
}

func (l *lowerer) lowerStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.BlockStmt:
		l.lowerBlock(s)
	case *ast.VarStmt:
		l.lowerVar(s)
	case *ast.AssignStmt:
		l.lowerAssign(s)
	case *ast.IfStmt:
		l.lowerIf(s)
	case *ast.LoopStmt:
		l.lowerLoop(s)
	case *ast.SwitchStmt:
		l.lowerSwitch(s)
	case *ast.BreakStmt:
		l.lowerBreak(s)
	case *ast.ContinueStmt:
		l.lowerContinue(s)
	case *ast.BreakIfStmt:
		l.lowerBreakIf(s)
	case *ast.ReturnStmt:
		l.lowerReturn(s)
	case *ast.DiscardStmt:
		l.b.Discard()
	case *ast.CallStmt:
		l.lowerCall(s.Call, false)
	case *ast.WhileStmt, *ast.ForStmt:
		diag.ICE("%v reached lowering; run the loop transforms first", s.Kind())
	default:
		diag.ICE("unhandled statement %v", s.Kind())
	}
}

func (l *lowerer) lowerVar(s *ast.VarStmt) {
	var init *ir.Value
	if s.Init != nil {
		if init = l.lowerExpr(s.Init, s.Type); init == nil {
			return
		}
		if s.Type != nil && !l.checkType(s, "initializer", init, s.Type) {
			return
		}
	}
	name := l.name(s.Name)
	if s.IsLet {
		if init.Kind() == ir.ValueInstructionResult && l.module.NameOf(init) == "" {
			l.module.SetName(init, name)
		}
		l.bind(s.Name, binding{value: init})
		return
	}
	ty := s.Type
	if ty == nil {
		ty = init.Type()
	}
	v := l.b.Var(types.SpaceFunction, ty, types.AccessReadWrite, init)
	l.module.SetName(v.Result(), name)
	l.bind(s.Name, binding{value: v.Result(), ptr: true})
}

func (l *lowerer) lowerAssign(s *ast.AssignStmt) {
	ptr := l.lowerRef(s.LHS)
	if ptr == nil {
		l.errorf(s, "cannot assign to %s", ast.ExprString(l.prog, s.LHS))
		return
	}
	want := storeType(ptr.Type())
	val := l.lowerExpr(s.RHS, want)
	if val == nil || !l.checkType(s, "assigned value", val, want) {
		return
	}
	l.b.Store(ptr, val)
}

func (l *lowerer) lowerIf(s *ast.IfStmt) {
	cond := l.lowerExpr(s.Cond, l.types.Bool())
	if cond == nil {
		return
	}
	ifInst := l.b.If(cond)

	l.b.SetInsertionPoint(ifInst.True())
	l.lowerBlock(s.Body)
	if l.reachable() {
		l.b.ExitIf(ifInst)
	}

	l.b.SetInsertionPoint(ifInst.False())
	if s.Else != nil {
		l.lowerStmt(s.Else)
	}
	if l.reachable() {
		l.b.ExitIf(ifInst)
	}

	l.continueInMerge(ifInst)
}

// continueInMerge moves the insertion point to the merge block of a
// control instruction. A merge no exit reaches is closed off.
func (l *lowerer) continueInMerge(inst *ir.Instruction) {
	l.b.SetInsertionPoint(inst.Merge())
	if len(inst.Exits()) == 0 {
		l.b.Unreachable()
	}
}

func (l *lowerer) lowerLoop(s *ast.LoopStmt) {
	loop := l.b.Loop()

	// The continuing block sees the declarations of the body.
	l.pushScope()
	l.frames = append(l.frames, frame{kind: frameLoop, inst: loop})
	l.b.SetInsertionPoint(loop.Body())
	l.lowerStmts(s.Body.Stmts)
	if l.reachable() {
		l.b.Continue(loop)
	}

	l.frames[len(l.frames)-1].continuing = true
	l.b.SetInsertionPoint(loop.Continuing())
	if s.Continuing != nil {
		l.lowerBlock(s.Continuing)
	}
	if l.reachable() {
		l.b.NextIteration(loop)
	}
	l.frames = l.frames[:len(l.frames)-1]
	l.popScope()

	l.continueInMerge(loop)
}

func (l *lowerer) lowerSwitch(s *ast.SwitchStmt) {
	sel := l.lowerExpr(s.Cond, nil)
	if sel == nil {
		return
	}
	selType := sel.Type()
	if k := selType.Kind(); k != types.KindI32 && k != types.KindU32 {
		l.errorf(s.Cond, "switch selector must be i32 or u32, not %s", l.typeName(selType))
		return
	}
	sw := l.b.Switch(sel)
	l.frames = append(l.frames, frame{kind: frameSwitch, inst: sw})
	for _, c := range s.Cases {
		var sels []ir.CaseSelector
		for _, e := range c.Selectors {
			if v := l.caseSelector(e, selType); v != nil {
				sels = append(sels, ir.CaseSelector{Value: v})
			}
		}
		if c.Default {
			sels = append(sels, ir.CaseSelector{})
		}
		if len(sels) == 0 {
			continue
		}
		l.b.SetInsertionPoint(l.b.AddCase(sw, sels...))
		l.lowerBlock(c.Body)
		if l.reachable() {
			l.b.ExitSwitch(sw)
		}
	}
	l.frames = l.frames[:len(l.frames)-1]

	l.continueInMerge(sw)
}

func (l *lowerer) caseSelector(e ast.Expr, t types.Type) *ir.Value {
	v, ok := constInt(e)
	if !ok {
		l.errorf(e, "case selector must be an integer literal")
		return nil
	}
	return l.intConstant(e, v, t)
}

// constInt evaluates an integer literal, possibly negated.
func constInt(e ast.Expr) (int64, bool) {
	switch e := e.(type) {
	case *ast.IntLiteral:
		return e.Value, true
	case *ast.UnaryExpr:
		if e.Op == ast.UnaryNegate {
			v, ok := constInt(e.Expr)
			return -v, ok
		}
	}
	return 0, false
}

func (l *lowerer) lowerBreak(s *ast.BreakStmt) {
	if len(l.frames) == 0 {
		l.errorf(s, "break outside of a loop or switch")
		return
	}
	f := l.frames[len(l.frames)-1]
	switch {
	case f.kind == frameSwitch:
		l.b.ExitSwitch(f.inst)
	case f.continuing:
		l.errorf(s, "break in a continuing block; use break if")
	default:
		l.b.ExitLoop(f.inst)
	}
}

func (l *lowerer) lowerContinue(s *ast.ContinueStmt) {
	for i := len(l.frames) - 1; i >= 0; i-- {
		f := l.frames[i]
		if f.kind != frameLoop {
			continue
		}
		if f.continuing {
			l.errorf(s, "continue in a continuing block")
			return
		}
		l.b.Continue(f.inst)
		return
	}
	l.errorf(s, "continue outside of a loop")
}

func (l *lowerer) lowerBreakIf(s *ast.BreakIfStmt) {
	if len(l.frames) == 0 || l.frames[len(l.frames)-1].kind != frameLoop || !l.frames[len(l.frames)-1].continuing {
		l.errorf(s, "break if outside of a continuing block")
		return
	}
	cond := l.lowerExpr(s.Cond, l.types.Bool())
	if cond == nil {
		return
	}
	l.b.BreakIf(l.frames[len(l.frames)-1].inst, cond)
}

func (l *lowerer) lowerReturn(s *ast.ReturnStmt) {
	want := l.fn.ReturnType()
	switch {
	case s.Value == nil && want != nil:
		l.errorf(s, "missing return value of type %s", l.typeName(want))
		l.b.Unreachable()
	case s.Value != nil && want == nil:
		l.errorf(s, "return with a value from function '%s' returning nothing", l.fn.Name())
		l.b.Unreachable()
	case s.Value == nil:
		l.b.Return(nil)
	default:
		v := l.lowerExpr(s.Value, want)
		if v == nil {
			l.b.Unreachable()
			return
		}
		if !l.checkType(s, "return value", v, want) {
			l.b.Unreachable()
			return
		}
		l.b.Return(v)
	}
}

// checkType reports an error at n when v is not of type want.
func (l *lowerer) checkType(n ast.Node, what string, v *ir.Value, want types.Type) bool {
	if v.Type().Equals(want) {
		return true
	}
	l.errorf(n, "%s of type %s, want %s", what, l.typeName(v.Type()), l.typeName(want))
	return false
}

func storeType(t types.Type) types.Type {
	switch p := t.(type) {
	case *types.Pointer:
		return p.StoreType()
	case *types.Reference:
		return p.StoreType()
	}
	return nil
}
