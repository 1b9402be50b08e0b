// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

import (
	"strconv"

	"github.com/gogpu/tint/symbol"
)

// AddressSpace is the memory region a variable lives in.
type AddressSpace uint8

const (
	SpaceFunction AddressSpace = iota
	SpacePrivate
	SpaceWorkgroup
	SpaceUniform
	SpaceStorage
	SpacePushConstant
	SpaceHandle
)

var spaceNames = [...]string{
	SpaceFunction:     "function",
	SpacePrivate:      "private",
	SpaceWorkgroup:    "workgroup",
	SpaceUniform:      "uniform",
	SpaceStorage:      "storage",
	SpacePushConstant: "push_constant",
	SpaceHandle:       "handle",
}

func (s AddressSpace) String() string {
	if int(s) < len(spaceNames) {
		return spaceNames[s]
	}
	return "space(" + strconv.Itoa(int(s)) + ")"
}

// Access is the access mode of a memory view.
type Access uint8

const (
	AccessReadWrite Access = iota
	AccessRead
	AccessWrite
)

func (a Access) String() string {
	switch a {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	default:
		return "read_write"
	}
}

// Pointer is a pointer to a store type in an address space.
type Pointer struct {
	base
	space  AddressSpace
	store  Type
	access Access
}

// AddressSpace returns the pointee address space.
func (p *Pointer) AddressSpace() AddressSpace { return p.space }

// StoreType returns the pointee type.
func (p *Pointer) StoreType() Type { return p.store }

// Access returns the access mode.
func (p *Pointer) Access() Access { return p.access }

func (*Pointer) Kind() Kind { return KindPointer }
func (*Pointer) Size() uint32 { return 0 }
func (*Pointer) Align() uint32 { return 1 }
func (*Pointer) Flags() Flags { return 0 }
func (p *Pointer) String() string { return p.FriendlyName(nil) }

func (p *Pointer) FriendlyName(st *symbol.Table) string {
	return "ptr<" + p.space.String() + ", " + p.store.FriendlyName(st) + ", " + p.access.String() + ">"
}

func (p *Pointer) appendKey(b []byte) []byte {
	return appendMemoryView(append(b, "ptr:"...), p.space, p.access, p.store)
}

func (p *Pointer) Equals(other Type) bool {
	o, ok := other.(*Pointer)
	return ok && o.space == p.space && o.access == p.access && o.store == p.store
}

func (p *Pointer) Clone(ctx CloneContext) Type {
	return ctx.DstTypes().Pointer(p.space, ctx.CloneType(p.store), p.access)
}

// Reference is the type of an expression naming a memory location.
// References cannot be wrapped in an atomic.
type Reference struct {
	base
	space  AddressSpace
	store  Type
	access Access
}

// AddressSpace returns the referenced address space.
func (r *Reference) AddressSpace() AddressSpace { return r.space }

// StoreType returns the referenced type.
func (r *Reference) StoreType() Type { return r.store }

// Access returns the access mode.
func (r *Reference) Access() Access { return r.access }

func (*Reference) Kind() Kind { return KindReference }
func (*Reference) Size() uint32 { return 0 }
func (*Reference) Align() uint32 { return 1 }
func (*Reference) Flags() Flags { return 0 }
func (r *Reference) String() string { return r.FriendlyName(nil) }

func (r *Reference) FriendlyName(st *symbol.Table) string {
	return "ref<" + r.space.String() + ", " + r.store.FriendlyName(st) + ", " + r.access.String() + ">"
}

func (r *Reference) appendKey(b []byte) []byte {
	return appendMemoryView(append(b, "ref:"...), r.space, r.access, r.store)
}

func (r *Reference) Equals(other Type) bool {
	o, ok := other.(*Reference)
	return ok && o.space == r.space && o.access == r.access && o.store == r.store
}

func (r *Reference) Clone(ctx CloneContext) Type {
	return ctx.DstTypes().Reference(r.space, ctx.CloneType(r.store), r.access)
}

func appendMemoryView(b []byte, space AddressSpace, access Access, store Type) []byte {
	b = strconv.AppendUint(b, uint64(space), 10)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(access), 10)
	b = append(b, ':')
	return appendHash(b, store)
}

// SamplerKind distinguishes filtering from comparison samplers.
type SamplerKind uint8

const (
	SamplerFiltering SamplerKind = iota
	SamplerComparison
)

// Sampler is an opaque texture sampler.
type Sampler struct {
	base
	kind SamplerKind
}

// SamplerKind returns the sampler kind.
func (s *Sampler) SamplerKind() SamplerKind { return s.kind }

func (*Sampler) Kind() Kind { return KindSampler }
func (*Sampler) Size() uint32 { return 0 }
func (*Sampler) Align() uint32 { return 1 }
func (*Sampler) Flags() Flags { return 0 }
func (s *Sampler) String() string { return s.FriendlyName(nil) }

func (s *Sampler) FriendlyName(*symbol.Table) string {
	if s.kind == SamplerComparison {
		return "sampler_comparison"
	}
	return "sampler"
}

func (s *Sampler) appendKey(b []byte) []byte {
	return strconv.AppendUint(append(b, "sampler:"...), uint64(s.kind), 10)
}

func (s *Sampler) Equals(other Type) bool {
	o, ok := other.(*Sampler)
	return ok && o.kind == s.kind
}

func (s *Sampler) Clone(ctx CloneContext) Type {
	return ctx.DstTypes().Sampler(s.kind)
}
