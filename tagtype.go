// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package nbt

import "fmt"

// TagType identifies the variant of a Tag. It is encoded on the wire as a
// single byte.
type TagType byte

// The complete set of NBT tag types. End is a terminator sentinel, not a
// constructible tag; all others may be created with the New* constructors.
const (
	TagEnd TagType = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

var tagTypeNames = [...]string{
	TagEnd:       "End",
	TagByte:      "Byte",
	TagShort:     "Short",
	TagInt:       "Int",
	TagLong:      "Long",
	TagFloat:     "Float",
	TagDouble:    "Double",
	TagByteArray: "ByteArray",
	TagString:    "String",
	TagList:      "List",
	TagCompound:  "Compound",
	TagIntArray:  "IntArray",
	TagLongArray: "LongArray",
}

func (t TagType) String() string {
	if int(t) < len(tagTypeNames) && tagTypeNames[t] != "" {
		return tagTypeNames[t]
	}
	return fmt.Sprintf("TagType(%d)", byte(t))
}

// valid reports whether t is one of the 13 defined tag codes.
func (t TagType) valid() bool {
	return t <= TagLongArray
}

// noOverride is the sentinel used internally by the parser to mean "read
// the type byte from the stream rather than using an imposed type." It
// cannot collide with any real tag code, which are bounded 0..12.
const noOverride TagType = 0xFF
