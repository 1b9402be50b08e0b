// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"github.com/gogpu/tint/arena"
	"github.com/gogpu/tint/diag"
	"github.com/gogpu/tint/symbol"
	"github.com/gogpu/tint/types"
)

// Builder creates the nodes of a single program.
//
// Every node a Builder creates is stamped with the program ID and the next
// node ID. Children passed to a constructor must already belong to the same
// program: nodes from another program have to be cloned through a
// CloneContext first. After Build the builder must not be used again.
type Builder struct {
	*builderState
	src Source
}

type builderState struct {
	program *Program
	built   bool
}

// NewBuilder creates a builder for a fresh program.
func NewBuilder() *Builder {
	id := arena.NewGeneration()
	return &Builder{builderState: &builderState{
		program: &Program{
			id:      id,
			types:   types.NewManager(),
			symbols: symbol.NewTable(id),
			nodes:   arena.New[Node](id),
		},
	}}
}

// ID returns the identity of the program under construction.
func (b *Builder) ID() ProgramID { return b.program.id }

// Types returns the type manager of the program under construction.
func (b *Builder) Types() *types.Manager { return b.program.types }

// Symbols returns the symbol table of the program under construction.
func (b *Builder) Symbols() *symbol.Table { return b.program.symbols }

// At returns a builder for the same program that stamps src on the nodes
// it creates.
func (b *Builder) At(src Source) *Builder {
	return &Builder{builderState: b.builderState, src: src}
}

// Sym registers name and returns its symbol.
func (b *Builder) Sym(name string) symbol.Symbol {
	return b.program.symbols.Register(name)
}

// AddDecl appends a module-scope declaration.
func (b *Builder) AddDecl(d Decl) {
	b.checkUsable()
	diag.Assert(!isNil(d), "nil declaration")
	b.program.checkOwned(d)
	b.program.decls = append(b.program.decls, d)
}

// Build finishes the program.
func (b *Builder) Build() *Program {
	b.checkUsable()
	b.built = true
	return b.program
}

func (b *Builder) checkUsable() {
	if b.built {
		diag.ICE("builder for program %v used after Build", b.program.id)
	}
}

func (b *Builder) checkSym(s symbol.Symbol) {
	diag.Assert(s.IsValid(), "invalid symbol")
	if s.ProgramID() != b.program.id {
		diag.ICE("symbol %v belongs to program %v, not %v", s, s.ProgramID(), b.program.id)
	}
}

func (b *Builder) checkType(t types.Type) {
	if t != nil && !b.program.types.Owns(t) {
		diag.ICE("type %v belongs to a different program", t)
	}
}

func newNode[T Node](b *Builder, n T) T {
	b.checkUsable()
	n.children(func(c Node) {
		if isNil(c) {
			diag.ICE("%v has a nil child", n.Kind())
		}
		b.program.checkOwned(c)
	})
	h := b.program.nodes.Alloc(n)
	hdr := n.header()
	hdr.program = b.program.id
	hdr.id = NodeID(h.Index)
	hdr.src = b.src
	return n
}

// Ident returns an identifier expression for name.
func (b *Builder) Ident(name string) *Ident {
	return b.IdentSym(b.Sym(name))
}

// IdentSym returns an identifier expression for sym.
func (b *Builder) IdentSym(sym symbol.Symbol) *Ident {
	b.checkSym(sym)
	return newNode(b, &Ident{Symbol: sym})
}

// Bool returns a boolean literal.
func (b *Builder) Bool(v bool) *BoolLiteral {
	return newNode(b, &BoolLiteral{Value: v})
}

// Int returns an abstract-int literal.
func (b *Builder) Int(v int64) *IntLiteral {
	return b.IntLit(v, IntSuffixNone)
}

// I32 returns an i32 literal.
func (b *Builder) I32(v int32) *IntLiteral {
	return b.IntLit(int64(v), IntSuffixI)
}

// U32 returns a u32 literal.
func (b *Builder) U32(v uint32) *IntLiteral {
	return b.IntLit(int64(v), IntSuffixU)
}

// IntLit returns an integer literal with an explicit suffix.
func (b *Builder) IntLit(v int64, suffix IntSuffix) *IntLiteral {
	return newNode(b, &IntLiteral{Value: v, Suffix: suffix})
}

// Float returns an abstract-float literal.
func (b *Builder) Float(v float64) *FloatLiteral {
	return b.FloatLit(v, FloatSuffixNone)
}

// F32 returns an f32 literal.
func (b *Builder) F32(v float64) *FloatLiteral {
	return b.FloatLit(v, FloatSuffixF)
}

// F16 returns an f16 literal.
func (b *Builder) F16(v float64) *FloatLiteral {
	return b.FloatLit(v, FloatSuffixH)
}

// FloatLit returns a float literal with an explicit suffix.
func (b *Builder) FloatLit(v float64, suffix FloatSuffix) *FloatLiteral {
	return newNode(b, &FloatLiteral{Value: v, Suffix: suffix})
}

// Unary returns op applied to e.
func (b *Builder) Unary(op UnaryOp, e Expr) *UnaryExpr {
	diag.Assert(!isNil(e), "unary %v without operand", op)
	return newNode(b, &UnaryExpr{Op: op, Expr: e})
}

// Not returns !e.
func (b *Builder) Not(e Expr) *UnaryExpr { return b.Unary(UnaryNot, e) }

// Neg returns -e.
func (b *Builder) Neg(e Expr) *UnaryExpr { return b.Unary(UnaryNegate, e) }

// Binary returns lhs op rhs.
func (b *Builder) Binary(op BinaryOp, lhs, rhs Expr) *BinaryExpr {
	diag.Assert(!isNil(lhs) && !isNil(rhs), "binary %v with missing operand", op)
	return newNode(b, &BinaryExpr{Op: op, LHS: lhs, RHS: rhs})
}

func (b *Builder) Add(lhs, rhs Expr) *BinaryExpr { return b.Binary(BinaryAdd, lhs, rhs) }
func (b *Builder) Sub(lhs, rhs Expr) *BinaryExpr { return b.Binary(BinarySubtract, lhs, rhs) }
func (b *Builder) Mul(lhs, rhs Expr) *BinaryExpr { return b.Binary(BinaryMultiply, lhs, rhs) }
func (b *Builder) Less(lhs, rhs Expr) *BinaryExpr { return b.Binary(BinaryLess, lhs, rhs) }
func (b *Builder) Greater(lhs, rhs Expr) *BinaryExpr { return b.Binary(BinaryGreater, lhs, rhs) }
func (b *Builder) Equal(lhs, rhs Expr) *BinaryExpr { return b.Binary(BinaryEqual, lhs, rhs) }

// Call returns a call of the function or builtin called name.
func (b *Builder) Call(name string, args ...Expr) *CallExpr {
	return b.CallSym(b.Sym(name), args...)
}

// CallSym returns a call of target.
func (b *Builder) CallSym(target symbol.Symbol, args ...Expr) *CallExpr {
	b.checkSym(target)
	return newNode(b, &CallExpr{Target: target, Args: args})
}

// Index returns obj[idx].
func (b *Builder) Index(obj, idx Expr) *IndexExpr {
	diag.Assert(!isNil(obj) && !isNil(idx), "index expression with missing operand")
	return newNode(b, &IndexExpr{Object: obj, Index: idx})
}

// Member returns obj.name.
func (b *Builder) Member(obj Expr, name string) *MemberExpr {
	return b.MemberSym(obj, b.Sym(name))
}

// MemberSym returns obj.member.
func (b *Builder) MemberSym(obj Expr, member symbol.Symbol) *MemberExpr {
	diag.Assert(!isNil(obj), "member expression without object")
	b.checkSym(member)
	return newNode(b, &MemberExpr{Object: obj, Member: member})
}

// Construct returns a value constructor for ty.
func (b *Builder) Construct(ty types.Type, args ...Expr) *ConstructExpr {
	diag.Assert(ty != nil, "constructor without type")
	b.checkType(ty)
	return newNode(b, &ConstructExpr{Type: ty, Args: args})
}

// Block returns a block statement.
func (b *Builder) Block(stmts ...Stmt) *BlockStmt {
	return newNode(b, &BlockStmt{Stmts: stmts})
}

// Var returns a var declaration. ty or init may be nil, not both.
func (b *Builder) Var(name string, ty types.Type, init Expr) *VarStmt {
	return b.VarSym(b.Sym(name), ty, init)
}

// VarSym is Var with a symbol.
func (b *Builder) VarSym(name symbol.Symbol, ty types.Type, init Expr) *VarStmt {
	return b.variable(name, ty, init, false)
}

// Let returns a let declaration. init is required.
func (b *Builder) Let(name string, ty types.Type, init Expr) *VarStmt {
	return b.LetSym(b.Sym(name), ty, init)
}

// LetSym is Let with a symbol.
func (b *Builder) LetSym(name symbol.Symbol, ty types.Type, init Expr) *VarStmt {
	diag.Assert(!isNil(init), "let without initializer")
	return b.variable(name, ty, init, true)
}

func (b *Builder) variable(name symbol.Symbol, ty types.Type, init Expr, let bool) *VarStmt {
	b.checkSym(name)
	b.checkType(ty)
	diag.Assert(ty != nil || !isNil(init), "variable %v has neither type nor initializer", name)
	return newNode(b, &VarStmt{Name: name, Type: ty, Init: init, IsLet: let})
}

// Assign returns lhs = rhs.
func (b *Builder) Assign(lhs, rhs Expr) *AssignStmt {
	diag.Assert(!isNil(lhs) && !isNil(rhs), "assignment with missing operand")
	return newNode(b, &AssignStmt{LHS: lhs, RHS: rhs})
}

// If returns an if statement. els must be nil, an *IfStmt or a *BlockStmt.
func (b *Builder) If(cond Expr, body *BlockStmt, els Stmt) *IfStmt {
	diag.Assert(!isNil(cond) && body != nil, "if statement without condition or body")
	switch els.(type) {
	case nil, *IfStmt, *BlockStmt:
	default:
		diag.ICE("else branch must be an if or block statement, got %v", els.Kind())
	}
	return newNode(b, &IfStmt{Cond: cond, Body: body, Else: els})
}

// While returns a while loop.
func (b *Builder) While(cond Expr, body *BlockStmt) *WhileStmt {
	diag.Assert(!isNil(cond) && body != nil, "while loop without condition or body")
	return newNode(b, &WhileStmt{Cond: cond, Body: body})
}

// For returns a for loop. init, cond and cont may be nil.
func (b *Builder) For(init Stmt, cond Expr, cont Stmt, body *BlockStmt) *ForStmt {
	diag.Assert(body != nil, "for loop without body")
	return newNode(b, &ForStmt{Init: init, Cond: cond, Cont: cont, Body: body})
}

// Loop returns a loop statement. continuing may be nil.
func (b *Builder) Loop(body, continuing *BlockStmt) *LoopStmt {
	diag.Assert(body != nil, "loop without body")
	return newNode(b, &LoopStmt{Body: body, Continuing: continuing})
}

// BreakIf returns break if cond.
func (b *Builder) BreakIf(cond Expr) *BreakIfStmt {
	diag.Assert(!isNil(cond), "break-if without condition")
	return newNode(b, &BreakIfStmt{Cond: cond})
}

func (b *Builder) Break() *BreakStmt { return newNode(b, &BreakStmt{}) }
func (b *Builder) Continue() *ContinueStmt { return newNode(b, &ContinueStmt{}) }
func (b *Builder) Discard() *DiscardStmt { return newNode(b, &DiscardStmt{}) }

// Return returns a return statement. value is nil for void functions.
func (b *Builder) Return(value Expr) *ReturnStmt {
	return newNode(b, &ReturnStmt{Value: value})
}

// CallStmt wraps call as a statement.
func (b *Builder) CallStmt(call *CallExpr) *CallStmt {
	diag.Assert(call != nil, "call statement without call")
	return newNode(b, &CallStmt{Call: call})
}

// Switch returns a switch statement. Exactly one clause must be a default.
func (b *Builder) Switch(cond Expr, cases ...*CaseClause) *SwitchStmt {
	diag.Assert(!isNil(cond), "switch without condition")
	defaults := 0
	for _, c := range cases {
		if c.Default {
			defaults++
		}
	}
	diag.Assert(defaults == 1, "switch has %d default clauses", defaults)
	return newNode(b, &SwitchStmt{Cond: cond, Cases: cases})
}

// Case returns a case clause. A non-default clause needs a selector.
func (b *Builder) Case(selectors []Expr, isDefault bool, body *BlockStmt) *CaseClause {
	diag.Assert(body != nil, "case clause without body")
	diag.Assert(isDefault || len(selectors) > 0, "case clause without selectors")
	return newNode(b, &CaseClause{Selectors: selectors, Default: isDefault, Body: body})
}

// DefaultCase returns a clause matching only the default.
func (b *Builder) DefaultCase(body *BlockStmt) *CaseClause {
	return b.Case(nil, true, body)
}

// Param returns a function parameter.
func (b *Builder) Param(name string, ty types.Type) *Param {
	return b.ParamSym(b.Sym(name), ty)
}

// ParamSym is Param with a symbol.
func (b *Builder) ParamSym(name symbol.Symbol, ty types.Type) *Param {
	b.checkSym(name)
	diag.Assert(ty != nil, "parameter %v without type", name)
	b.checkType(ty)
	return newNode(b, &Param{Name: name, Type: ty})
}

// Func declares a function and appends it to the program. ret is nil for
// functions returning nothing.
func (b *Builder) Func(name string, params []*Param, ret types.Type, body *BlockStmt) *Function {
	f := b.newFunction(b.Sym(name), params, ret, body)
	b.AddDecl(f)
	return f
}

func (b *Builder) newFunction(name symbol.Symbol, params []*Param, ret types.Type, body *BlockStmt) *Function {
	b.checkSym(name)
	b.checkType(ret)
	diag.Assert(body != nil, "function %v without body", name)
	return newNode(b, &Function{Name: name, Params: params, ReturnType: ret, Body: body})
}

// GlobalVar declares a module-scope variable and appends it to the program.
func (b *Builder) GlobalVar(name string, ty types.Type, space types.AddressSpace, init Expr) *GlobalVar {
	v := b.newGlobalVar(b.Sym(name), ty, space, types.AccessReadWrite, init)
	b.AddDecl(v)
	return v
}

func (b *Builder) newGlobalVar(name symbol.Symbol, ty types.Type, space types.AddressSpace, access types.Access, init Expr) *GlobalVar {
	b.checkSym(name)
	diag.Assert(ty != nil, "global %v without type", name)
	b.checkType(ty)
	return newNode(b, &GlobalVar{Name: name, Type: ty, Space: space, Access: access, Init: init})
}
