// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package nbt

import "fmt"

// encodeTag writes t to w, symmetric with decodeTag.
func encodeTag(w *writer, t *Tag, writeName, writeType bool) error {
	if writeType {
		w.putByte(byte(t.typ))
	}

	if writeName && t.typ != TagEnd {
		if err := encodeString(w, t.name); err != nil {
			return fmt.Errorf("write tag name: %w", err)
		}
	}

	switch t.typ {
	case TagEnd:
		// No payload.

	case TagByte:
		w.putByte(byte(t.i8))

	case TagShort:
		w.putI16(t.i16)

	case TagInt:
		w.putI32(t.i32)

	case TagLong:
		w.putI64(t.i64)

	case TagFloat:
		w.putF32(t.f32)

	case TagDouble:
		w.putF64(t.f64)

	case TagByteArray:
		if len(t.bytes) > math32Max {
			return fmt.Errorf("byte array length %d exceeds int32: %w", len(t.bytes), ErrMalformedLength)
		}
		w.putI32(int32(len(t.bytes)))
		w.putBytes(t.bytes)

	case TagString:
		if err := encodeString(w, t.bytes); err != nil {
			return fmt.Errorf("write string payload: %w", err)
		}

	case TagList:
		w.putByte(byte(t.elem))
		w.putI32(int32(len(t.list)))
		for i, el := range t.list {
			if err := encodeTag(w, el, false, false); err != nil {
				return fmt.Errorf("list element %d: %w", i, err)
			}
		}

	case TagCompound:
		for _, child := range t.list {
			if err := encodeTag(w, child, true, true); err != nil {
				return fmt.Errorf("compound child %q: %w", child.name, err)
			}
		}
		w.putByte(byte(TagEnd))

	case TagIntArray:
		w.putI32(int32(len(t.ints)))
		for _, v := range t.ints {
			w.putI32(v)
		}

	case TagLongArray:
		w.putI32(int32(len(t.longs)))
		for _, v := range t.longs {
			w.putI64(v)
		}

	default:
		return fmt.Errorf("type code %d: %w", t.typ, ErrInvalidTagType)
	}

	return nil
}

const math32Max = 1<<31 - 1

// encodeString writes a 16-bit length prefix followed by raw bytes.
func encodeString(w *writer, s []byte) error {
	if len(s) > 1<<16-1 {
		return fmt.Errorf("string length %d exceeds uint16: %w", len(s), ErrMalformedLength)
	}
	w.putI16(int16(uint16(len(s))))
	w.putBytes(s)
	return nil
}
