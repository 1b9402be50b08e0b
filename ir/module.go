// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"slices"

	"github.com/gogpu/tint/arena"
	"github.com/gogpu/tint/diag"
	"github.com/gogpu/tint/symbol"
	"github.com/gogpu/tint/types"
)

// Module owns the functions, blocks, values and instructions of one
// compilation unit.
type Module struct {
	id      arena.Generation
	types   *types.Manager
	symbols *symbol.Table

	values *arena.Arena[*Value]
	insts  *arena.Arena[*Instruction]
	blocks *arena.Arena[*Block]

	usages    map[uint32][]Usage // by value index
	names     map[uint32]symbol.Symbol
	constants map[constKey]*Value

	functions []*Function
	globals   []*Instruction
}

// NewModule creates an empty module with its own types and symbols.
func NewModule() *Module {
	id := arena.NewGeneration()
	return newModule(id, types.NewManager(), symbol.NewTable(id))
}

// NewModuleWith creates an empty module sharing the type manager and
// symbol table of the unit it is built from.
func NewModuleWith(tm *types.Manager, st *symbol.Table) *Module {
	diag.Assert(tm != nil && st != nil, "module needs a type manager and a symbol table")
	return newModule(arena.NewGeneration(), tm, st)
}

func newModule(id arena.Generation, tm *types.Manager, st *symbol.Table) *Module {
	return &Module{
		id:        id,
		types:     tm,
		symbols:   st,
		values:    arena.New[*Value](id),
		insts:     arena.New[*Instruction](id),
		blocks:    arena.New[*Block](id),
		usages:    make(map[uint32][]Usage),
		names:     make(map[uint32]symbol.Symbol),
		constants: make(map[constKey]*Value),
	}
}

// ID returns the generation tagging every handle of the module.
func (m *Module) ID() arena.Generation { return m.id }

// Types returns the module's type manager.
func (m *Module) Types() *types.Manager { return m.types }

// Symbols returns the module's symbol table.
func (m *Module) Symbols() *symbol.Table { return m.symbols }

// Functions returns the functions in declaration order.
func (m *Module) Functions() []*Function { return m.functions }

// Globals returns the module-scope OpVar instructions.
func (m *Module) Globals() []*Instruction { return m.globals }

// Function returns the function called name, or nil.
func (m *Module) Function(name string) *Function {
	sym := m.symbols.Get(name)
	for _, f := range m.functions {
		if sym.IsValid() && f.name == sym {
			return f
		}
	}
	return nil
}

// Value returns the value with handle h.
func (m *Module) Value(h arena.Handle) *Value { return m.values.Get(h) }

// Instruction returns the instruction with handle h.
func (m *Module) Instruction(h arena.Handle) *Instruction { return m.insts.Get(h) }

// ValueCount returns the number of values ever allocated.
func (m *Module) ValueCount() int { return m.values.Len() }

// InstructionCount returns the number of instructions ever allocated.
func (m *Module) InstructionCount() int { return m.insts.Len() }

// SetName attaches a debug name to v.
func (m *Module) SetName(v *Value, name string) {
	m.checkValue(v)
	m.names[v.id.Index] = m.symbols.Register(name)
}

// NameOf returns the debug name of v, or "".
func (m *Module) NameOf(v *Value) string {
	if s, ok := m.names[v.id.Index]; ok {
		return m.symbols.NameFor(s)
	}
	return ""
}

// Constant returns the constant of type t holding c. Constants are interned
// by type and value. c must be a bool, int32, uint32, float32, int64 or
// float64 matching t.
func (m *Module) Constant(t types.Type, c any) *Value {
	diag.Assert(t != nil, "constant without type")
	checkConstant(t, c)
	key := constKey{typ: t, value: c}
	if v, ok := m.constants[key]; ok {
		return v
	}
	v := m.newValue(ValueConstant, t)
	v.constant = c
	m.constants[key] = v
	return v
}

func checkConstant(t types.Type, c any) {
	ok := false
	switch c.(type) {
	case bool:
		ok = t.Kind() == types.KindBool
	case int32:
		ok = t.Kind() == types.KindI32
	case uint32:
		ok = t.Kind() == types.KindU32
	case float32:
		ok = t.Kind() == types.KindF32
	case int64:
		ok = t.Kind() == types.KindAbstractInt
	case float64:
		ok = t.Kind() == types.KindF16 || t.Kind() == types.KindAbstractFloat
	}
	if !ok {
		diag.ICE("constant %v (%T) does not fit type %v", c, c, t)
	}
}

func (m *Module) Bool(b bool) *Value { return m.Constant(m.types.Bool(), b) }
func (m *Module) I32(i int32) *Value { return m.Constant(m.types.I32(), i) }
func (m *Module) U32(u uint32) *Value { return m.Constant(m.types.U32(), u) }
func (m *Module) F32(f float32) *Value { return m.Constant(m.types.F32(), f) }
func (m *Module) F16(f float64) *Value { return m.Constant(m.types.F16(), f) }
func (m *Module) AbstractInt(i int64) *Value { return m.Constant(m.types.AbstractInt(), i) }

// BlockParam creates an unbound parameter of type t for use with
// Block.SetParams.
func (m *Module) BlockParam(t types.Type) *Value {
	diag.Assert(t != nil, "block parameter without type")
	return m.newValue(ValueBlockParam, t)
}

// FunctionParam creates a parameter of type t for use with NewFunction.
func (m *Module) FunctionParam(t types.Type) *Value {
	diag.Assert(t != nil, "function parameter without type")
	return m.newValue(ValueFunctionParam, t)
}

// NewFunction declares a function. returnType is nil for functions
// returning nothing.
func (m *Module) NewFunction(name string, params []*Value, returnType types.Type) *Function {
	f := &Function{
		module:     m,
		name:       m.symbols.Register(name),
		params:     params,
		returnType: returnType,
	}
	for i, p := range params {
		diag.Assert(p != nil && p.kind == ValueFunctionParam, "parameter %d of %s is not a function parameter", i, name)
		diag.Assert(p.function == nil, "parameter %v already bound to %s", p, p.function)
		m.checkValue(p)
		p.function = f
	}
	f.block = m.newBlock(false, nil)
	m.functions = append(m.functions, f)
	return f
}

// AddGlobal appends a module-scope OpVar that is not in any block.
func (m *Module) AddGlobal(v *Instruction) {
	m.checkInst(v)
	diag.Assert(v.op == OpVar, "module-scope %v is not a var", v.op)
	diag.Assert(v.block == nil, "module-scope var already belongs to block %v", v.block)
	m.globals = append(m.globals, v)
}

func (m *Module) newValue(kind ValueKind, t types.Type) *Value {
	v := &Value{module: m, kind: kind, typ: t}
	v.id = m.values.Alloc(v)
	return v
}

func (m *Module) newInst(op Op, operands []*Value) *Instruction {
	lo, hi := op.Arity()
	if len(operands) < lo || (hi != variadic && len(operands) > hi) {
		diag.ICE("%v takes %d..%d operands, got %d", op, lo, hi, len(operands))
	}
	inst := &Instruction{module: m, op: op, operands: make([]*Value, len(operands))}
	inst.id = m.insts.Alloc(inst)
	for i, v := range operands {
		if v == nil {
			diag.ICE("%v operand %d is nil", op, i)
		}
		inst.SetOperand(i, v)
	}
	return inst
}

func (m *Module) newBlock(multiIn bool, parent *Instruction) *Block {
	b := &Block{module: m, multiIn: multiIn, parent: parent}
	b.id = m.blocks.Alloc(b)
	return b
}

func (m *Module) addUsage(v *Value, u Usage) {
	m.usages[v.id.Index] = append(m.usages[v.id.Index], u)
}

func (m *Module) removeUsage(v *Value, u Usage) {
	list := m.usages[v.id.Index]
	i := slices.Index(list, u)
	if i < 0 {
		diag.ICE("value %v has no usage by %v operand %d", v, u.Inst.op, u.Operand)
	}
	list = slices.Delete(list, i, i+1)
	if len(list) == 0 {
		delete(m.usages, v.id.Index)
		return
	}
	m.usages[v.id.Index] = list
}

func (m *Module) checkValue(v *Value) {
	if v.module != m {
		diag.ICE("value %v belongs to module %v, not %v", v.id.Index, v.id.Gen, m.id)
	}
}

func (m *Module) checkInst(inst *Instruction) {
	if inst.module != m {
		diag.ICE("%v instruction belongs to module %v, not %v", inst.op, inst.id.Gen, m.id)
	}
}

// PipelineStage marks a function as an entry point.
type PipelineStage uint8

const (
	StageNone PipelineStage = iota
	StageVertex
	StageFragment
	StageCompute
)

func (s PipelineStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return "none"
	}
}

// Function is a function of a module.
type Function struct {
	module     *Module
	name       symbol.Symbol
	params     []*Value
	returnType types.Type
	block      *Block

	Stage         PipelineStage
	WorkgroupSize [3]uint32
}

// Name returns the function name.
func (f *Function) Name() string { return f.module.symbols.NameFor(f.name) }

// Symbol returns the function name symbol.
func (f *Function) Symbol() symbol.Symbol { return f.name }

// Params returns the function parameters.
func (f *Function) Params() []*Value { return f.params }

// ReturnType returns the result type, or nil.
func (f *Function) ReturnType() types.Type { return f.returnType }

// Block returns the root block of the function.
func (f *Function) Block() *Block { return f.block }

func (f *Function) String() string { return "%" + f.Name() }
