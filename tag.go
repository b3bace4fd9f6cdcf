// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package nbt

import "bytes"

// AllocHint tells an Allocator what kind of buffer is being requested, so a
// caller that pools buffers by size class can route the request. There is
// no hint for Tag nodes themselves: Go gives no safe way for an Allocator
// to supply the backing storage of a struct (unlike the original's
// arena-allocated nbt_tag_t), so Tag nodes are always ordinary heap
// allocations and an Allocator only ever sees requests for byte buffers.
type AllocHint int

// The allocation hints a decoder can report.
const (
	AllocHintString AllocHint = iota
	AllocHintByteArray
)

// An Allocator supplies backing storage for decoded names and byte-array
// payloads. The default (nil) Allocator uses make, equivalent to a fresh
// heap allocation per call. Callers who want to pool memory across many
// Parse calls (for example, loading many chunks from the same world file)
// may supply one.
//
// Alloc must return a slice of length size; its capacity may be larger.
type Allocator interface {
	Alloc(hint AllocHint, size int) []byte
}

func allocBytes(a Allocator, hint AllocHint, size int) []byte {
	if a == nil {
		return make([]byte, size)
	}
	return a.Alloc(hint, size)
}

// Tag is a node in an NBT tree: a tagged variant carrying an optional name
// and a payload determined by its Type. The zero Tag is not valid; use one
// of the New* constructors or Parse to obtain one.
//
// A Tag exclusively owns its name, its payload buffer (for array/string
// variants), and all elements of its List or Compound (recursively). There
// is no explicit destructor: Go's garbage collector reclaims the tree once
// it becomes unreachable, which is the one place this port diverges from
// the arena-and-manual-free design of the original.
type Tag struct {
	typ  TagType
	name []byte

	i8  int8
	i16 int16
	i32 int32
	i64 int64
	f32 float32
	f64 float64

	bytes []byte  // ByteArray elements, or String's raw bytes
	ints  []int32 // IntArray elements
	longs []int64 // LongArray elements

	elem TagType // List's declared element type
	list []*Tag  // List elements, or Compound children
}

// Type reports t's variant.
func (t *Tag) Type() TagType { return t.typ }

// Name reports t's name, or nil if t is unnamed (a List element, or a Tag
// that has never had SetName called on it).
func (t *Tag) Name() []byte { return t.name }

// SetName replaces t's name. The previous name, if any, is discarded.
func (t *Tag) SetName(name []byte) {
	t.name = append([]byte(nil), name...)
}

// newTag allocates the base of a tag with no name, of the given type.
func newTag(typ TagType) *Tag {
	return &Tag{typ: typ}
}

// NewByte constructs an unnamed Byte tag.
func NewByte(v int8) *Tag { t := newTag(TagByte); t.i8 = v; return t }

// NewShort constructs an unnamed Short tag.
func NewShort(v int16) *Tag { t := newTag(TagShort); t.i16 = v; return t }

// NewInt constructs an unnamed Int tag.
func NewInt(v int32) *Tag { t := newTag(TagInt); t.i32 = v; return t }

// NewLong constructs an unnamed Long tag.
func NewLong(v int64) *Tag { t := newTag(TagLong); t.i64 = v; return t }

// NewFloat constructs an unnamed Float tag.
func NewFloat(v float32) *Tag { t := newTag(TagFloat); t.f32 = v; return t }

// NewDouble constructs an unnamed Double tag.
func NewDouble(v float64) *Tag { t := newTag(TagDouble); t.f64 = v; return t }

// NewByteArray constructs an unnamed ByteArray tag, copying elements.
func NewByteArray(elements []int8) *Tag {
	t := newTag(TagByteArray)
	t.bytes = make([]byte, len(elements))
	for i, e := range elements {
		t.bytes[i] = byte(e)
	}
	return t
}

// NewString constructs an unnamed String tag, copying value.
func NewString(value []byte) *Tag {
	t := newTag(TagString)
	t.bytes = append([]byte(nil), value...)
	return t
}

// NewList constructs an unnamed, empty List tag with the given declared
// element type. It is the caller's responsibility to append only elements
// of that type; the library does not enforce this.
func NewList(elem TagType) *Tag {
	t := newTag(TagList)
	t.elem = elem
	return t
}

// NewCompound constructs an unnamed, empty Compound tag.
func NewCompound() *Tag {
	return newTag(TagCompound)
}

// NewIntArray constructs an unnamed IntArray tag, copying elements.
func NewIntArray(elements []int32) *Tag {
	t := newTag(TagIntArray)
	t.ints = append([]int32(nil), elements...)
	return t
}

// NewLongArray constructs an unnamed LongArray tag, copying elements.
func NewLongArray(elements []int64) *Tag {
	t := newTag(TagLongArray)
	t.longs = append([]int64(nil), elements...)
	return t
}

// Byte returns t's payload as a Byte. It panics if t.Type() != TagByte.
func (t *Tag) Byte() int8 { t.mustBe(TagByte); return t.i8 }

// Short returns t's payload as a Short. It panics if t.Type() != TagShort.
func (t *Tag) Short() int16 { t.mustBe(TagShort); return t.i16 }

// Int returns t's payload as an Int. It panics if t.Type() != TagInt.
func (t *Tag) Int() int32 { t.mustBe(TagInt); return t.i32 }

// Long returns t's payload as a Long. It panics if t.Type() != TagLong.
func (t *Tag) Long() int64 { t.mustBe(TagLong); return t.i64 }

// Float returns t's payload as a Float. It panics if t.Type() != TagFloat.
func (t *Tag) Float() float32 { t.mustBe(TagFloat); return t.f32 }

// Double returns t's payload as a Double. It panics if t.Type() != TagDouble.
func (t *Tag) Double() float64 { t.mustBe(TagDouble); return t.f64 }

// ByteArray returns a copy of t's elements as signed bytes; changing the
// returned slice does not affect t.
func (t *Tag) ByteArray() []int8 {
	t.mustBe(TagByteArray)
	out := make([]int8, len(t.bytes))
	for i, b := range t.bytes {
		out[i] = int8(b)
	}
	return out
}

// StringBytes returns t's raw string bytes (the wire payload, which need
// not be valid UTF-8). The codec round-trips these bytes exactly; it does
// not interpret or validate them.
func (t *Tag) StringBytes() []byte { t.mustBe(TagString); return t.bytes }

// IntArray returns t's elements. The returned slice aliases t's storage.
func (t *Tag) IntArray() []int32 { t.mustBe(TagIntArray); return t.ints }

// LongArray returns t's elements. The returned slice aliases t's storage.
func (t *Tag) LongArray() []int64 { t.mustBe(TagLongArray); return t.longs }

// ElemType reports a List's declared element type.
func (t *Tag) ElemType() TagType { t.mustBe(TagList); return t.elem }

// Len reports the number of elements in a List or children in a Compound.
func (t *Tag) Len() int {
	if t.typ != TagList && t.typ != TagCompound {
		panic("nbt: Len called on a " + t.typ.String() + " tag")
	}
	return len(t.list)
}

// ListAppend appends v to a List tag. The list takes ownership of v. It is
// the caller's responsibility to pass a tag of the list's declared element
// type; this is not checked.
func (t *Tag) ListAppend(v *Tag) {
	t.mustBe(TagList)
	t.list = append(t.list, v)
}

// ListGet returns the element of a List at index, a borrow (not a
// transfer of ownership).
func (t *Tag) ListGet(index int) *Tag {
	t.mustBe(TagList)
	return t.list[index]
}

// CompoundAppend appends a named child to a Compound tag. The compound
// takes ownership of v. Child order is preserved; duplicate names are
// permitted.
func (t *Tag) CompoundAppend(v *Tag) {
	t.mustBe(TagCompound)
	t.list = append(t.list, v)
}

// CompoundGet returns the first child of a Compound whose name equals key
// exactly (both length and content), a borrow (not a transfer of
// ownership). It returns nil if no child matches.
//
// The comparison is length-and-content equality: a key that is a proper
// prefix of a stored name must not match.
func (t *Tag) CompoundGet(key []byte) *Tag {
	t.mustBe(TagCompound)
	for _, child := range t.list {
		if bytes.Equal(child.name, key) {
			return child
		}
	}
	return nil
}

// Children returns a Compound's children in wire order, a borrow. The
// caller must not retain the slice across further CompoundAppend calls.
func (t *Tag) Children() []*Tag {
	t.mustBe(TagCompound)
	return t.list
}

// Elements returns a List's elements in wire order, a borrow.
func (t *Tag) Elements() []*Tag {
	t.mustBe(TagList)
	return t.list
}

// Equal reports whether t and other are structurally equal: same type,
// same name, same scalar or array payload, and (for List/Compound)
// equal-length children compared in order and recursively.
func (t *Tag) Equal(other *Tag) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.typ != other.typ || !bytes.Equal(t.name, other.name) {
		return false
	}
	switch t.typ {
	case TagEnd:
		return true
	case TagByte:
		return t.i8 == other.i8
	case TagShort:
		return t.i16 == other.i16
	case TagInt:
		return t.i32 == other.i32
	case TagLong:
		return t.i64 == other.i64
	case TagFloat:
		return t.f32 == other.f32
	case TagDouble:
		return t.f64 == other.f64
	case TagByteArray, TagString:
		return bytes.Equal(t.bytes, other.bytes)
	case TagIntArray:
		return int32sEqual(t.ints, other.ints)
	case TagLongArray:
		return int64sEqual(t.longs, other.longs)
	case TagList:
		if t.elem != other.elem || len(t.list) != len(other.list) {
			return false
		}
	case TagCompound:
		if len(t.list) != len(other.list) {
			return false
		}
	}
	for i, child := range t.list {
		if !child.Equal(other.list[i]) {
			return false
		}
	}
	return true
}

func int32sEqual(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func int64sEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (t *Tag) mustBe(want TagType) {
	if t.typ != want {
		panic("nbt: " + want.String() + " method called on a " + t.typ.String() + " tag")
	}
}
