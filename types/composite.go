// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

import (
	"strconv"
	"strings"

	"github.com/gogpu/tint/symbol"
)

// Vector is a vector of 2, 3 or 4 scalars.
type Vector struct {
	base
	elem  *Scalar
	width uint32
}

// Elem returns the component type.
func (v *Vector) Elem() *Scalar { return v.elem }

// Width returns the number of components.
func (v *Vector) Width() uint32 { return v.width }

func (*Vector) Kind() Kind { return KindVector }
func (v *Vector) Size() uint32 { return v.width * v.elem.Size() }
func (v *Vector) Flags() Flags { return v.elem.Flags() }
func (v *Vector) String() string { return v.FriendlyName(nil) }

func (v *Vector) Align() uint32 {
	if v.width == 2 {
		return 2 * v.elem.Size()
	}
	return 4 * v.elem.Size()
}

func (v *Vector) FriendlyName(st *symbol.Table) string {
	return "vec" + strconv.FormatUint(uint64(v.width), 10) + "<" + v.elem.FriendlyName(st) + ">"
}

func (v *Vector) appendKey(b []byte) []byte {
	b = append(b, "vec:"...)
	b = strconv.AppendUint(b, uint64(v.width), 10)
	b = append(b, ':')
	return appendHash(b, v.elem)
}

func (v *Vector) Equals(other Type) bool {
	o, ok := other.(*Vector)
	return ok && o.width == v.width && o.elem == v.elem
}

func (v *Vector) Clone(ctx CloneContext) Type {
	return ctx.DstTypes().Vec(ctx.CloneType(v.elem), v.width)
}

// Matrix is a column-major matrix of floating point vectors.
type Matrix struct {
	base
	column  *Vector
	columns uint32
}

// ColumnType returns the vector type of one column.
func (m *Matrix) ColumnType() *Vector { return m.column }

// Columns returns the number of columns.
func (m *Matrix) Columns() uint32 { return m.columns }

// Rows returns the number of rows.
func (m *Matrix) Rows() uint32 { return m.column.width }

// Elem returns the scalar component type.
func (m *Matrix) Elem() *Scalar { return m.column.elem }

func (*Matrix) Kind() Kind { return KindMatrix }
func (m *Matrix) Align() uint32 { return m.column.Align() }
func (m *Matrix) Size() uint32 { return m.columns * roundUp(m.column.Align(), m.column.Size()) }
func (m *Matrix) Flags() Flags { return m.column.Flags() }
func (m *Matrix) String() string { return m.FriendlyName(nil) }

func (m *Matrix) FriendlyName(st *symbol.Table) string {
	return "mat" + strconv.FormatUint(uint64(m.columns), 10) + "x" +
		strconv.FormatUint(uint64(m.column.width), 10) + "<" + m.column.elem.FriendlyName(st) + ">"
}

func (m *Matrix) appendKey(b []byte) []byte {
	b = append(b, "mat:"...)
	b = strconv.AppendUint(b, uint64(m.columns), 10)
	b = append(b, ':')
	return appendHash(b, m.column)
}

func (m *Matrix) Equals(other Type) bool {
	o, ok := other.(*Matrix)
	return ok && o.columns == m.columns && o.column == m.column
}

func (m *Matrix) Clone(ctx CloneContext) Type {
	col := ctx.CloneType(m.column).(*Vector)
	return ctx.DstTypes().Mat(col, m.columns)
}

// Array is a fixed-size or runtime-sized array.
type Array struct {
	base
	elem   Type
	count  uint32 // zero for runtime-sized arrays
	stride uint32
}

// Elem returns the element type.
func (a *Array) Elem() Type { return a.elem }

// Count returns the element count, or zero for a runtime-sized array.
func (a *Array) Count() uint32 { return a.count }

// IsRuntimeSized reports whether the element count is unknown until runtime.
func (a *Array) IsRuntimeSized() bool { return a.count == 0 }

// Stride returns the distance in bytes between consecutive elements.
func (a *Array) Stride() uint32 { return a.stride }

func (*Array) Kind() Kind { return KindArray }
func (a *Array) Align() uint32 { return a.elem.Align() }
func (a *Array) String() string { return a.FriendlyName(nil) }

func (a *Array) Size() uint32 {
	if a.count == 0 {
		return a.stride
	}
	return a.count * a.stride
}

func (a *Array) Flags() Flags {
	ef := a.elem.Flags()
	var f Flags
	if ef.Has(FlagHostShareable) {
		f |= FlagHostShareable
	}
	if a.count == 0 {
		return f
	}
	f |= ef & (FlagConstructible | FlagCreationFixedFootprint | FlagFixedFootprint)
	return f
}

func (a *Array) FriendlyName(st *symbol.Table) string {
	if a.count == 0 {
		return "array<" + a.elem.FriendlyName(st) + ">"
	}
	return "array<" + a.elem.FriendlyName(st) + ", " + strconv.FormatUint(uint64(a.count), 10) + ">"
}

func (a *Array) appendKey(b []byte) []byte {
	b = append(b, "array:"...)
	b = strconv.AppendUint(b, uint64(a.count), 10)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(a.stride), 10)
	b = append(b, ':')
	return appendHash(b, a.elem)
}

func (a *Array) Equals(other Type) bool {
	o, ok := other.(*Array)
	return ok && o.count == a.count && o.stride == a.stride && o.elem == a.elem
}

func (a *Array) Clone(ctx CloneContext) Type {
	dst := ctx.DstTypes()
	return intern(dst, &Array{elem: ctx.CloneType(a.elem), count: a.count, stride: a.stride})
}

// Atomic wraps a storable type for atomic access. Its layout is the layout
// of the wrapped type.
type Atomic struct {
	base
	payload Type
}

// Payload returns the wrapped type.
func (a *Atomic) Payload() Type { return a.payload }

func (*Atomic) Kind() Kind { return KindAtomic }
func (a *Atomic) Size() uint32 { return a.payload.Size() }
func (a *Atomic) Align() uint32 { return a.payload.Align() }
func (a *Atomic) String() string { return a.FriendlyName(nil) }

func (*Atomic) Flags() Flags {
	return FlagCreationFixedFootprint | FlagFixedFootprint | FlagHostShareable
}

func (a *Atomic) FriendlyName(st *symbol.Table) string {
	return "atomic<" + a.payload.FriendlyName(st) + ">"
}

func (a *Atomic) appendKey(b []byte) []byte {
	return appendHash(append(b, "atomic:"...), a.payload)
}

func (a *Atomic) Equals(other Type) bool {
	o, ok := other.(*Atomic)
	return ok && o.payload == a.payload
}

func (a *Atomic) Clone(ctx CloneContext) Type {
	return ctx.DstTypes().Atomic(ctx.CloneType(a.payload))
}

// StructMember is one laid-out member of a Struct.
type StructMember struct {
	Name   symbol.Symbol
	Type   Type
	Index  uint32
	Offset uint32
	Size   uint32
	Align  uint32
}

// MemberDesc describes a member passed to Manager.Struct.
type MemberDesc struct {
	Name symbol.Symbol
	Type Type
}

// Struct is a named structure. Structs are identified by name: the manager
// holds at most one struct per name symbol.
type Struct struct {
	base
	name    symbol.Symbol
	members []*StructMember
	size    uint32
	align   uint32
}

// Name returns the struct name symbol.
func (s *Struct) Name() symbol.Symbol { return s.name }

// Members returns the laid-out members in declaration order.
func (s *Struct) Members() []*StructMember { return s.members }

// Member returns the member named name, or nil.
func (s *Struct) Member(name symbol.Symbol) *StructMember {
	for _, m := range s.members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (*Struct) Kind() Kind { return KindStruct }
func (s *Struct) Size() uint32 { return s.size }
func (s *Struct) Align() uint32 { return s.align }
func (s *Struct) String() string { return s.FriendlyName(nil) }

func (s *Struct) Flags() Flags {
	f := FlagConstructible | FlagCreationFixedFootprint | FlagFixedFootprint | FlagHostShareable
	for _, m := range s.members {
		f &= m.Type.Flags()
	}
	return f
}

func (s *Struct) FriendlyName(st *symbol.Table) string {
	if st == nil {
		return s.name.String()
	}
	return st.NameFor(s.name)
}

func (s *Struct) appendKey(b []byte) []byte {
	b = append(b, "struct:"...)
	b = append(b, s.name.ProgramID().String()...)
	b = append(b, ':')
	return strconv.AppendUint(b, uint64(s.name.ID()), 10)
}

func (s *Struct) Equals(other Type) bool {
	o, ok := other.(*Struct)
	return ok && o.name == s.name
}

func (s *Struct) Clone(ctx CloneContext) Type {
	members := make([]MemberDesc, len(s.members))
	for i, m := range s.members {
		members[i] = MemberDesc{Name: ctx.CloneSymbol(m.Name), Type: ctx.CloneType(m.Type)}
	}
	return ctx.DstTypes().Struct(ctx.CloneSymbol(s.name), members)
}

// Layout renders the member offsets, for diagnostics.
func (s *Struct) Layout(st *symbol.Table) string {
	var sb strings.Builder
	sb.WriteString(s.FriendlyName(st))
	sb.WriteString(" {")
	for _, m := range s.members {
		sb.WriteString(" /*")
		sb.WriteString(strconv.FormatUint(uint64(m.Offset), 10))
		sb.WriteString("*/ ")
		if st != nil {
			sb.WriteString(st.NameFor(m.Name))
		} else {
			sb.WriteString(m.Name.String())
		}
		sb.WriteString(": ")
		sb.WriteString(m.Type.FriendlyName(st))
		sb.WriteString(";")
	}
	sb.WriteString(" }")
	return sb.String()
}
