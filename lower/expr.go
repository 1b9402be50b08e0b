// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lower

import (
	"math"

	"github.com/gogpu/tint/ast"
	"github.com/gogpu/tint/diag"
	"github.com/gogpu/tint/ir"
	"github.com/gogpu/tint/types"
)

// lowerExpr lowers e to a value. hint, which may be nil, is the type the
// context expects; untyped literals take its scalar type. A nil result
// means an error was reported.
func (l *lowerer) lowerExpr(e ast.Expr, hint types.Type) *ir.Value {
	switch e := e.(type) {
	case *ast.Ident:
		return l.lowerIdent(e)
	case *ast.BoolLiteral:
		return l.module.Bool(e.Value)
	case *ast.IntLiteral:
		return l.lowerInt(e, e.Value, e.Suffix, hint)
	case *ast.FloatLiteral:
		return l.lowerFloatLiteral(e, hint)
	case *ast.UnaryExpr:
		return l.lowerUnary(e, hint)
	case *ast.BinaryExpr:
		return l.lowerBinary(e, hint)
	case *ast.CallExpr:
		return l.lowerCall(e, true)
	case *ast.IndexExpr:
		return l.lowerIndex(e)
	case *ast.MemberExpr:
		return l.lowerMember(e)
	case *ast.ConstructExpr:
		return l.lowerConstruct(e)
	default:
		diag.ICE("unhandled expression %v", e.Kind())
		return nil
	}
}

func (l *lowerer) lowerIdent(e *ast.Ident) *ir.Value {
	b, ok := l.lookup(e.Symbol)
	if !ok {
		l.errorf(e, "unknown identifier '%s'", l.name(e.Symbol))
		return nil
	}
	if b.ptr {
		return l.b.Load(b.value).Result()
	}
	return b.value
}

// lowerInt lowers the integer literal v written at n.
func (l *lowerer) lowerInt(n ast.Node, v int64, suffix ast.IntSuffix, hint types.Type) *ir.Value {
	switch suffix {
	case ast.IntSuffixI:
		return l.intConstant(n, v, l.types.I32())
	case ast.IntSuffixU:
		return l.intConstant(n, v, l.types.U32())
	}
	if s := scalarOf(hint); s != nil {
		switch s.Kind() {
		case types.KindU32, types.KindF32, types.KindF16:
			return l.intConstant(n, v, s)
		}
	}
	return l.intConstant(n, v, l.types.I32())
}

// intConstant makes the constant v of scalar type t.
func (l *lowerer) intConstant(n ast.Node, v int64, t types.Type) *ir.Value {
	switch t.Kind() {
	case types.KindI32:
		if v < math.MinInt32 || v > math.MaxInt32 {
			l.errorf(n, "value %d does not fit in i32", v)
			return nil
		}
		return l.module.I32(int32(v))
	case types.KindU32:
		if v < 0 || v > math.MaxUint32 {
			l.errorf(n, "value %d does not fit in u32", v)
			return nil
		}
		return l.module.U32(uint32(v))
	case types.KindF32:
		return l.module.F32(float32(v))
	case types.KindF16:
		return l.module.F16(float64(v))
	}
	diag.ICE("integer constant of type %v", t)
	return nil
}

func (l *lowerer) lowerFloatLiteral(e *ast.FloatLiteral, hint types.Type) *ir.Value {
	switch {
	case e.Suffix == ast.FloatSuffixH:
		return l.module.F16(e.Value)
	case e.Suffix == ast.FloatSuffixNone && scalarOf(hint) != nil && scalarOf(hint).Kind() == types.KindF16:
		return l.module.F16(e.Value)
	default:
		return l.module.F32(float32(e.Value))
	}
}

var unaryOps = map[ast.UnaryOp]ir.UnaryOp{
	ast.UnaryNot:        ir.UnaryLogicalNot,
	ast.UnaryNegate:     ir.UnaryNegate,
	ast.UnaryComplement: ir.UnaryBitwiseNot,
}

func (l *lowerer) lowerUnary(e *ast.UnaryExpr, hint types.Type) *ir.Value {
	if lit, ok := e.Expr.(*ast.IntLiteral); ok && e.Op == ast.UnaryNegate {
		// Folded so the most negative i32 is representable.
		return l.lowerInt(e, -lit.Value, lit.Suffix, hint)
	}
	v := l.lowerExpr(e.Expr, hint)
	if v == nil {
		return nil
	}
	return l.b.Unary(unaryOps[e.Op], v.Type(), v).Result()
}

var binaryOps = map[ast.BinaryOp]ir.BinaryOp{
	ast.BinaryAdd:          ir.BinaryAdd,
	ast.BinarySubtract:     ir.BinarySubtract,
	ast.BinaryMultiply:     ir.BinaryMultiply,
	ast.BinaryDivide:       ir.BinaryDivide,
	ast.BinaryModulo:       ir.BinaryModulo,
	ast.BinaryAnd:          ir.BinaryAnd,
	ast.BinaryOr:           ir.BinaryInclusiveOr,
	ast.BinaryXor:          ir.BinaryExclusiveOr,
	ast.BinaryLogicalAnd:   ir.BinaryLogicalAnd,
	ast.BinaryLogicalOr:    ir.BinaryLogicalOr,
	ast.BinaryEqual:        ir.BinaryEqual,
	ast.BinaryNotEqual:     ir.BinaryNotEqual,
	ast.BinaryLess:         ir.BinaryLess,
	ast.BinaryLessEqual:    ir.BinaryLessEqual,
	ast.BinaryGreater:      ir.BinaryGreater,
	ast.BinaryGreaterEqual: ir.BinaryGreaterEqual,
	ast.BinaryShiftLeft:    ir.BinaryShiftLeft,
	ast.BinaryShiftRight:   ir.BinaryShiftRight,
}

func (l *lowerer) lowerBinary(e *ast.BinaryExpr, hint types.Type) *ir.Value {
	if e.Op.IsComparison() || e.Op.IsLogical() {
		hint = nil
	}
	var lhs, rhs *ir.Value
	if isUntypedLiteral(e.LHS) && !isUntypedLiteral(e.RHS) {
		// The typed operand decides the type of the literal.
		if rhs = l.lowerExpr(e.RHS, hint); rhs == nil {
			return nil
		}
		lhs = l.lowerExpr(e.LHS, rhs.Type())
	} else {
		if lhs = l.lowerExpr(e.LHS, hint); lhs == nil {
			return nil
		}
		rhsHint := lhs.Type()
		if e.Op == ast.BinaryShiftLeft || e.Op == ast.BinaryShiftRight {
			rhsHint = l.types.U32()
		}
		rhs = l.lowerExpr(e.RHS, rhsHint)
	}
	if lhs == nil || rhs == nil {
		return nil
	}
	op := binaryOps[e.Op]
	return l.b.Binary(op, binaryType(l.types, op, lhs.Type(), rhs.Type()), lhs, rhs).Result()
}

// isUntypedLiteral reports whether e is a literal without a type suffix.
func isUntypedLiteral(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.IntLiteral:
		return e.Suffix == ast.IntSuffixNone
	case *ast.FloatLiteral:
		return e.Suffix == ast.FloatSuffixNone
	case *ast.UnaryExpr:
		return isUntypedLiteral(e.Expr)
	}
	return false
}

// binaryType returns the result type of op applied to lt and rt.
func binaryType(tm *types.Manager, op ir.BinaryOp, lt, rt types.Type) types.Type {
	if op.IsComparison() {
		if v, ok := lt.(*types.Vector); ok {
			return tm.Vec(tm.Bool(), v.Width())
		}
		return tm.Bool()
	}
	if op == ir.BinaryLogicalAnd || op == ir.BinaryLogicalOr {
		return tm.Bool()
	}
	switch l := lt.(type) {
	case *types.Matrix:
		if op == ir.BinaryMultiply {
			switch r := rt.(type) {
			case *types.Vector:
				return l.ColumnType()
			case *types.Matrix:
				return tm.Mat(l.ColumnType(), r.Columns())
			}
		}
	case *types.Vector:
		if r, ok := rt.(*types.Matrix); ok && op == ir.BinaryMultiply {
			return tm.Vec(l.Elem(), r.Columns())
		}
	case *types.Scalar:
		switch rt.(type) {
		case *types.Vector, *types.Matrix:
			return rt
		}
	}
	return lt
}

func (l *lowerer) typeName(t types.Type) string {
	return t.FriendlyName(l.prog.Symbols())
}

// scalarOf returns the scalar type of t or of its elements, or nil.
func scalarOf(t types.Type) *types.Scalar {
	switch t := t.(type) {
	case *types.Scalar:
		return t
	case *types.Vector:
		return t.Elem()
	case *types.Matrix:
		return t.Elem()
	}
	return nil
}

// lowerCall lowers a call of a user function or builtin. With wantValue
// a call returning nothing is an error.
func (l *lowerer) lowerCall(e *ast.CallExpr, wantValue bool) *ir.Value {
	name := l.name(e.Target)
	if fn, ok := l.functions[e.Target]; ok {
		params := fn.Params()
		if len(e.Args) != len(params) {
			l.errorf(e, "function '%s' takes %d arguments, got %d", name, len(params), len(e.Args))
			return nil
		}
		args := make([]*ir.Value, len(e.Args))
		for i, a := range e.Args {
			if args[i] = l.lowerExpr(a, params[i].Type()); args[i] == nil {
				return nil
			}
			if !l.checkType(a, "argument", args[i], params[i].Type()) {
				return nil
			}
		}
		call := l.b.Call(fn, args...)
		if wantValue && call.Result() == nil {
			l.errorf(e, "function '%s' does not return a value", name)
		}
		return call.Result()
	}
	builtin, ok := ir.LookupBuiltin(name)
	if !ok {
		l.errorf(e, "unknown function '%s'", name)
		return nil
	}
	if len(e.Args) == 0 {
		l.errorf(e, "builtin '%s' needs arguments", name)
		return nil
	}
	args := make([]*ir.Value, len(e.Args))
	var hint types.Type
	for i, a := range e.Args {
		if args[i] = l.lowerExpr(a, hint); args[i] == nil {
			return nil
		}
		if hint == nil {
			hint = args[i].Type()
		}
	}
	return l.b.BuiltinCall(builtinType(l.types, builtin, args[0].Type()), builtin, args...).Result()
}

// builtinType returns the result type of builtin called with a first
// argument of type arg.
func builtinType(tm *types.Manager, b ir.Builtin, arg types.Type) types.Type {
	switch b {
	case ir.BuiltinDot, ir.BuiltinLength, ir.BuiltinDistance:
		if s := scalarOf(arg); s != nil {
			return s
		}
	case ir.BuiltinTranspose:
		if m, ok := arg.(*types.Matrix); ok {
			return tm.Mat(tm.Vec(m.Elem(), m.Columns()), m.Rows())
		}
	}
	return arg
}

func (l *lowerer) lowerIndex(e *ast.IndexExpr) *ir.Value {
	if ptr := l.lowerRef(e.Object); ptr != nil {
		elem := l.indexPtr(e, ptr)
		if elem == nil {
			return nil
		}
		return l.b.Load(elem).Result()
	}
	obj := l.lowerExpr(e.Object, nil)
	if obj == nil {
		return nil
	}
	et := elementType(obj.Type())
	if et == nil {
		l.errorf(e, "cannot index a value of type %s", l.typeName(obj.Type()))
		return nil
	}
	idx := l.lowerExpr(e.Index, l.types.U32())
	if idx == nil {
		return nil
	}
	return l.b.Access(et, obj, idx).Result()
}

// indexPtr returns a pointer to element e.Index of the storage ptr points
// to.
func (l *lowerer) indexPtr(e *ast.IndexExpr, ptr *ir.Value) *ir.Value {
	p := ptr.Type().(*types.Pointer)
	et := elementType(p.StoreType())
	if et == nil {
		l.errorf(e, "cannot index a value of type %s", l.typeName(p.StoreType()))
		return nil
	}
	idx := l.lowerExpr(e.Index, l.types.U32())
	if idx == nil {
		return nil
	}
	return l.b.Access(l.types.Pointer(p.AddressSpace(), et, p.Access()), ptr, idx).Result()
}

// elementType returns the type of one element of t, or nil when t cannot
// be indexed.
func elementType(t types.Type) types.Type {
	switch t := t.(type) {
	case *types.Array:
		return t.Elem()
	case *types.Vector:
		return t.Elem()
	case *types.Matrix:
		return t.ColumnType()
	}
	return nil
}

func (l *lowerer) lowerMember(e *ast.MemberExpr) *ir.Value {
	var obj *ir.Value
	if ptr := l.lowerRef(e.Object); ptr != nil {
		p := ptr.Type().(*types.Pointer)
		if s, ok := p.StoreType().(*types.Struct); ok {
			m := l.structMember(e, s)
			if m == nil {
				return nil
			}
			mp := l.types.Pointer(p.AddressSpace(), m.Type, p.Access())
			return l.b.Load(l.b.Access(mp, ptr, l.module.U32(m.Index)).Result()).Result()
		}
		obj = l.b.Load(ptr).Result()
	} else if obj = l.lowerExpr(e.Object, nil); obj == nil {
		return nil
	}

	switch t := obj.Type().(type) {
	case *types.Struct:
		m := l.structMember(e, t)
		if m == nil {
			return nil
		}
		return l.b.Access(m.Type, obj, l.module.U32(m.Index)).Result()
	case *types.Vector:
		indices, ok := swizzleIndices(l.name(e.Member), t.Width())
		if !ok {
			l.errorf(e, "invalid swizzle '%s' of %s", l.name(e.Member), l.typeName(t))
			return nil
		}
		var rt types.Type = t.Elem()
		if len(indices) > 1 {
			rt = l.types.Vec(t.Elem(), uint32(len(indices)))
		}
		return l.b.Swizzle(rt, obj, indices).Result()
	}
	l.errorf(e, "no member '%s' in %s", l.name(e.Member), l.typeName(obj.Type()))
	return nil
}

func (l *lowerer) structMember(e *ast.MemberExpr, s *types.Struct) *types.StructMember {
	m := s.Member(e.Member)
	if m == nil {
		l.errorf(e, "no member '%s' in %s", l.name(e.Member), l.typeName(s))
	}
	return m
}

// swizzleIndices parses a swizzle name like xyz or rgba against a vector
// of width components.
func swizzleIndices(name string, width uint32) ([]uint32, bool) {
	if len(name) == 0 || len(name) > 4 {
		return nil, false
	}
	const xyzw, rgba = "xyzw", "rgba"
	set := xyzw
	if name[0] == 'r' || name[0] == 'g' || name[0] == 'b' || name[0] == 'a' {
		set = rgba
	}
	out := make([]uint32, len(name))
	for i := range len(name) {
		idx := -1
		for j := range len(set) {
			if set[j] == name[i] {
				idx = j
			}
		}
		if idx < 0 || uint32(idx) >= width {
			return nil, false
		}
		out[i] = uint32(idx)
	}
	return out, true
}

// lowerRef returns a pointer to the storage e names, or nil when e does
// not name storage. It reports errors only for the index and member
// expressions it lowers.
func (l *lowerer) lowerRef(e ast.Expr) *ir.Value {
	switch e := e.(type) {
	case *ast.Ident:
		if b, ok := l.lookup(e.Symbol); ok && b.ptr {
			return b.value
		}
	case *ast.IndexExpr:
		if ptr := l.lowerRef(e.Object); ptr != nil {
			return l.indexPtr(e, ptr)
		}
	case *ast.MemberExpr:
		ptr := l.lowerRef(e.Object)
		if ptr == nil {
			return nil
		}
		p := ptr.Type().(*types.Pointer)
		switch st := p.StoreType().(type) {
		case *types.Struct:
			m := l.structMember(e, st)
			if m == nil {
				return nil
			}
			mp := l.types.Pointer(p.AddressSpace(), m.Type, p.Access())
			return l.b.Access(mp, ptr, l.module.U32(m.Index)).Result()
		case *types.Vector:
			indices, ok := swizzleIndices(l.name(e.Member), st.Width())
			if !ok || len(indices) != 1 {
				return nil
			}
			ep := l.types.Pointer(p.AddressSpace(), st.Elem(), p.Access())
			return l.b.Access(ep, ptr, l.module.U32(indices[0])).Result()
		}
	}
	return nil
}

func (l *lowerer) lowerConstruct(e *ast.ConstructExpr) *ir.Value {
	args := make([]*ir.Value, len(e.Args))
	for i, a := range e.Args {
		if args[i] = l.lowerExpr(a, constructHint(e.Type, i)); args[i] == nil {
			return nil
		}
	}
	return l.b.Construct(e.Type, args...).Result()
}

// constructHint returns the expected type of argument i of a constructor
// of t.
func constructHint(t types.Type, i int) types.Type {
	switch t := t.(type) {
	case *types.Struct:
		if i < len(t.Members()) {
			return t.Members()[i].Type
		}
		return nil
	case *types.Array:
		return t.Elem()
	}
	if s := scalarOf(t); s != nil {
		return s
	}
	return nil
}
