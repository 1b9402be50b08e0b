// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package types implements the interned shader type system.
//
// Every type is created through a Manager. Asking a manager for the same
// structure twice returns the identical instance, so types can be compared
// with ==. Types are immutable once created and live as long as their
// manager. Nested types are always instances of the same manager.
package types

import (
	"strconv"

	"github.com/gogpu/tint/symbol"
)

// Kind identifies the concrete type behind a Type.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBool
	KindI32
	KindU32
	KindF32
	KindF16
	KindAbstractInt
	KindAbstractFloat
	KindVector
	KindMatrix
	KindArray
	KindAtomic
	KindPointer
	KindReference
	KindSampler
	KindStruct
)

var kindNames = [...]string{
	KindVoid:          "void",
	KindBool:          "bool",
	KindI32:           "i32",
	KindU32:           "u32",
	KindF32:           "f32",
	KindF16:           "f16",
	KindAbstractInt:   "abstract-int",
	KindAbstractFloat: "abstract-float",
	KindVector:        "vector",
	KindMatrix:        "matrix",
	KindArray:         "array",
	KindAtomic:        "atomic",
	KindPointer:       "pointer",
	KindReference:     "reference",
	KindSampler:       "sampler",
	KindStruct:        "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// IsScalar reports whether k is a scalar kind.
func (k Kind) IsScalar() bool {
	return k >= KindBool && k <= KindAbstractFloat
}

// Flags describe capabilities of a type.
type Flags uint8

const (
	// FlagConstructible types can be built with a value constructor.
	FlagConstructible Flags = 1 << iota
	// FlagCreationFixedFootprint types have a size known when the shader
	// is created.
	FlagCreationFixedFootprint
	// FlagFixedFootprint types have a size known before pipeline creation.
	FlagFixedFootprint
	// FlagHostShareable types may appear in uniform and storage buffers.
	FlagHostShareable
)

// Has reports whether all bits of x are set in f.
func (f Flags) Has(x Flags) bool {
	return f&x == x
}

// Type is an interned shader type.
//
// The set of implementations is closed; switch on Kind() or use a type
// switch over the concrete pointer types of this package.
type Type interface {
	// Kind returns the concrete kind of the type.
	Kind() Kind
	// Size returns the size of the type in bytes.
	Size() uint32
	// Align returns the alignment of the type in bytes, always a power of two.
	Align() uint32
	// Hash returns the structural hash of the type.
	Hash() uint64
	// Flags returns the capability flags of the type.
	Flags() Flags
	// Equals reports whether other has the same structure.
	Equals(other Type) bool
	// FriendlyName returns the WGSL-style display name of the type.
	// st resolves struct names and may be nil.
	FriendlyName(st *symbol.Table) string
	// String is FriendlyName(nil).
	String() string
	// Clone returns the equivalent type interned in ctx.DstTypes().
	Clone(ctx CloneContext) Type

	appendKey(b []byte) []byte
	setHash(h uint64)
}

// CloneContext resolves the nested references of a type being copied into
// another manager.
type CloneContext interface {
	DstTypes() *Manager
	CloneSymbol(s symbol.Symbol) symbol.Symbol
	CloneType(t Type) Type
}

type base struct {
	hash uint64
}

func (b *base) Hash() uint64 { return b.hash }
func (b *base) setHash(h uint64) { b.hash = h }

func appendHash(dst []byte, t Type) []byte {
	return strconv.AppendUint(dst, t.Hash(), 16)
}

func roundUp(align, value uint32) uint32 {
	if align == 0 {
		return value
	}
	return (value + align - 1) / align * align
}

// Void is the type of functions returning nothing.
type Void struct {
	base
}

func (*Void) Kind() Kind { return KindVoid }
func (*Void) Size() uint32 { return 0 }
func (*Void) Align() uint32 { return 1 }
func (*Void) Flags() Flags { return 0 }
func (*Void) FriendlyName(*symbol.Table) string { return "void" }
func (v *Void) String() string { return v.FriendlyName(nil) }
func (*Void) appendKey(b []byte) []byte { return append(b, "void"...) }
func (*Void) Clone(ctx CloneContext) Type { return ctx.DstTypes().Void() }

func (*Void) Equals(other Type) bool {
	_, ok := other.(*Void)
	return ok
}

// Scalar is bool, one of the concrete numeric types, or an abstract numeric
// type used for constant expressions.
type Scalar struct {
	base
	kind Kind
}

func (s *Scalar) Kind() Kind { return s.kind }

func (s *Scalar) Size() uint32 {
	switch s.kind {
	case KindF16:
		return 2
	case KindAbstractInt, KindAbstractFloat:
		return 0
	default:
		return 4
	}
}

func (s *Scalar) Align() uint32 {
	switch s.kind {
	case KindF16:
		return 2
	case KindAbstractInt, KindAbstractFloat:
		return 1
	default:
		return 4
	}
}

func (s *Scalar) Flags() Flags {
	f := FlagConstructible | FlagCreationFixedFootprint | FlagFixedFootprint
	switch s.kind {
	case KindI32, KindU32, KindF32, KindF16:
		f |= FlagHostShareable
	}
	return f
}

func (s *Scalar) FriendlyName(*symbol.Table) string { return s.kind.String() }
func (s *Scalar) String() string { return s.FriendlyName(nil) }
func (s *Scalar) appendKey(b []byte) []byte { return append(b, s.kind.String()...) }
func (s *Scalar) Clone(ctx CloneContext) Type { return ctx.DstTypes().Scalar(s.kind) }

func (s *Scalar) Equals(other Type) bool {
	o, ok := other.(*Scalar)
	return ok && o.kind == s.kind
}

// IsInteger reports whether s is a concrete or abstract integer.
func (s *Scalar) IsInteger() bool {
	return s.kind == KindI32 || s.kind == KindU32 || s.kind == KindAbstractInt
}

// IsFloat reports whether s is a concrete or abstract float.
func (s *Scalar) IsFloat() bool {
	return s.kind == KindF32 || s.kind == KindF16 || s.kind == KindAbstractFloat
}

// IsSigned reports whether s is a signed numeric type.
func (s *Scalar) IsSigned() bool {
	return s.kind != KindU32 && s.kind != KindBool
}
