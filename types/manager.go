// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/gogpu/tint/diag"
	"github.com/gogpu/tint/symbol"
)

// Manager creates and interns types.
//
// Each constructor returns the canonical instance for the requested
// structure, creating it on first request. The intern table is keyed by
// structural hash; instances in a bucket are told apart by Equals.
type Manager struct {
	buckets map[uint64][]Type
	types   []Type
	structs map[symbol.Symbol]*Struct
	keyBuf  []byte
}

// NewManager creates an empty type manager.
func NewManager() *Manager {
	return &Manager{
		buckets: make(map[uint64][]Type, 16),
		structs: make(map[symbol.Symbol]*Struct),
		keyBuf:  make([]byte, 0, 64),
	}
}

// Types returns all interned types in creation order.
func (m *Manager) Types() []Type {
	return m.types
}

// Count returns the number of interned types.
func (m *Manager) Count() int {
	return len(m.types)
}

// Find returns the instance structurally equal to t, if one was interned.
func (m *Manager) Find(t Type) (Type, bool) {
	h := m.hashOf(t)
	for _, existing := range m.buckets[h] {
		if existing.Equals(t) {
			return existing, true
		}
	}
	return nil, false
}

// Owns reports whether t is an instance of this manager.
func (m *Manager) Owns(t Type) bool {
	found, ok := m.Find(t)
	return ok && found == t
}

func (m *Manager) hashOf(t Type) uint64 {
	m.keyBuf = t.appendKey(m.keyBuf[:0])
	sum := blake3.Sum256(m.keyBuf)
	return binary.LittleEndian.Uint64(sum[:8])
}

func intern[T Type](m *Manager, t T) T {
	h := m.hashOf(t)
	for _, existing := range m.buckets[h] {
		if existing.Equals(t) {
			return existing.(T)
		}
	}
	t.setHash(h)
	m.buckets[h] = append(m.buckets[h], t)
	m.types = append(m.types, t)
	return t
}

// Void returns the void type.
func (m *Manager) Void() *Void { return intern(m, &Void{}) }

// Scalar returns the scalar type of the given kind.
func (m *Manager) Scalar(kind Kind) *Scalar {
	diag.Assert(kind.IsScalar(), "types.Scalar called with non-scalar kind %v", kind)
	return intern(m, &Scalar{kind: kind})
}

// Bool returns the bool type.
func (m *Manager) Bool() *Scalar { return m.Scalar(KindBool) }

// I32 returns the i32 type.
func (m *Manager) I32() *Scalar { return m.Scalar(KindI32) }

// U32 returns the u32 type.
func (m *Manager) U32() *Scalar { return m.Scalar(KindU32) }

// F32 returns the f32 type.
func (m *Manager) F32() *Scalar { return m.Scalar(KindF32) }

// F16 returns the f16 type.
func (m *Manager) F16() *Scalar { return m.Scalar(KindF16) }

// AbstractInt returns the abstract integer type.
func (m *Manager) AbstractInt() *Scalar { return m.Scalar(KindAbstractInt) }

// AbstractFloat returns the abstract float type.
func (m *Manager) AbstractFloat() *Scalar { return m.Scalar(KindAbstractFloat) }

// Vec returns the vector of width components of elem.
func (m *Manager) Vec(elem Type, width uint32) *Vector {
	s, ok := elem.(*Scalar)
	diag.Assert(ok, "vector element must be a scalar, got %v", elem)
	diag.Assert(width >= 2 && width <= 4, "vector width must be 2, 3 or 4, got %d", width)
	m.checkOwned(s)
	return intern(m, &Vector{elem: s, width: width})
}

// Mat returns the matrix with the given column type and column count.
func (m *Manager) Mat(column *Vector, columns uint32) *Matrix {
	diag.Assert(column != nil, "matrix column type is nil")
	diag.Assert(columns >= 2 && columns <= 4, "matrix column count must be 2, 3 or 4, got %d", columns)
	diag.Assert(column.elem.IsFloat(), "matrix elements must be floating point, got %v", column.elem)
	m.checkOwned(column)
	return intern(m, &Matrix{column: column, columns: columns})
}

// Array returns the fixed-size array of count elems with implicit stride.
func (m *Manager) Array(elem Type, count uint32) *Array {
	diag.Assert(count > 0, "fixed-size array must have a positive count")
	return m.array(elem, count)
}

// RuntimeArray returns the runtime-sized array of elem with implicit stride.
func (m *Manager) RuntimeArray(elem Type) *Array {
	return m.array(elem, 0)
}

func (m *Manager) array(elem Type, count uint32) *Array {
	diag.Assert(elem != nil, "array element type is nil")
	m.checkOwned(elem)
	stride := roundUp(elem.Align(), elem.Size())
	return intern(m, &Array{elem: elem, count: count, stride: stride})
}

// Atomic returns the atomic wrapper of payload.
// Wrapping a reference type is an internal compiler error.
func (m *Manager) Atomic(payload Type) *Atomic {
	diag.Assert(payload != nil, "atomic payload is nil")
	if _, isRef := payload.(*Reference); isRef {
		diag.ICE("atomic cannot wrap reference type %v", payload)
	}
	m.checkOwned(payload)
	return intern(m, &Atomic{payload: payload})
}

// Pointer returns the pointer to store in space.
func (m *Manager) Pointer(space AddressSpace, store Type, access Access) *Pointer {
	diag.Assert(store != nil, "pointer store type is nil")
	m.checkOwned(store)
	return intern(m, &Pointer{space: space, store: store, access: access})
}

// Reference returns the reference to store in space.
func (m *Manager) Reference(space AddressSpace, store Type, access Access) *Reference {
	diag.Assert(store != nil, "reference store type is nil")
	m.checkOwned(store)
	return intern(m, &Reference{space: space, store: store, access: access})
}

// Sampler returns the sampler of the given kind.
func (m *Manager) Sampler(kind SamplerKind) *Sampler {
	return intern(m, &Sampler{kind: kind})
}

// Struct returns the struct named name, laying out members on first
// request. Requesting an existing name with a different member list is an
// internal compiler error.
func (m *Manager) Struct(name symbol.Symbol, members []MemberDesc) *Struct {
	diag.Assert(name.IsValid(), "struct name is invalid")

	if existing, ok := m.structs[name]; ok {
		diag.Assert(sameMembers(existing, members), "struct %v redeclared with different members", name)
		return existing
	}

	s := &Struct{name: name, align: 1}
	var offset uint32
	for i, d := range members {
		diag.Assert(d.Type != nil, "struct member %d has nil type", i)
		m.checkOwned(d.Type)
		align, size := d.Type.Align(), d.Type.Size()
		offset = roundUp(align, offset)
		s.members = append(s.members, &StructMember{
			Name:   d.Name,
			Type:   d.Type,
			Index:  uint32(i),
			Offset: offset,
			Size:   size,
			Align:  align,
		})
		offset += size
		if align > s.align {
			s.align = align
		}
	}
	s.size = roundUp(s.align, offset)

	s = intern(m, s)
	m.structs[name] = s
	return s
}

func sameMembers(s *Struct, members []MemberDesc) bool {
	if len(s.members) != len(members) {
		return false
	}
	for i, d := range members {
		if s.members[i].Name != d.Name || s.members[i].Type != d.Type {
			return false
		}
	}
	return true
}

func (m *Manager) checkOwned(t Type) {
	if !m.Owns(t) {
		diag.ICE("type %v belongs to a different type manager", t)
	}
}
