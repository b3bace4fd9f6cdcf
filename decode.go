// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package nbt

import "fmt"

// decodeTag fills and returns a Tag from cur, as a single recursive
// procedure. override is noOverride unless this call is decoding a List
// element, in which case it carries the List's declared element type (the
// element's own type byte is never present on the wire).
func decodeTag(cur *cursor, parseName bool, override TagType, alloc Allocator) (*Tag, error) {
	var typ TagType
	if override == noOverride {
		b, err := cur.getByte()
		if err != nil {
			return nil, fmt.Errorf("read tag type: %w", err)
		}
		typ = TagType(b)
		if !typ.valid() {
			return nil, fmt.Errorf("type code %d: %w", b, ErrInvalidTagType)
		}
	} else {
		typ = override
	}

	t := &Tag{typ: typ}

	if parseName && typ != TagEnd {
		name, err := decodeString(cur, alloc, AllocHintString)
		if err != nil {
			return nil, fmt.Errorf("read tag name: %w", err)
		}
		t.name = name
	}

	switch typ {
	case TagEnd:
		// No payload.

	case TagByte:
		b, err := cur.getByte()
		if err != nil {
			return nil, fmt.Errorf("read byte payload: %w", err)
		}
		t.i8 = int8(b)

	case TagShort:
		v, err := cur.getI16()
		if err != nil {
			return nil, fmt.Errorf("read short payload: %w", err)
		}
		t.i16 = v

	case TagInt:
		v, err := cur.getI32()
		if err != nil {
			return nil, fmt.Errorf("read int payload: %w", err)
		}
		t.i32 = v

	case TagLong:
		v, err := cur.getI64()
		if err != nil {
			return nil, fmt.Errorf("read long payload: %w", err)
		}
		t.i64 = v

	case TagFloat:
		v, err := cur.getF32()
		if err != nil {
			return nil, fmt.Errorf("read float payload: %w", err)
		}
		t.f32 = v

	case TagDouble:
		v, err := cur.getF64()
		if err != nil {
			return nil, fmt.Errorf("read double payload: %w", err)
		}
		t.f64 = v

	case TagByteArray:
		n, err := cur.getI32()
		if err != nil {
			return nil, fmt.Errorf("read byte array length: %w", err)
		}
		if n < 0 || int(n) > cur.remaining() {
			return nil, fmt.Errorf("byte array length %d: %w", n, ErrMalformedLength)
		}
		raw, err := cur.take(int(n))
		if err != nil {
			return nil, fmt.Errorf("read byte array payload: %w", err)
		}
		t.bytes = allocBytes(alloc, AllocHintByteArray, len(raw))
		copy(t.bytes, raw)

	case TagString:
		s, err := decodeString(cur, alloc, AllocHintByteArray)
		if err != nil {
			return nil, fmt.Errorf("read string payload: %w", err)
		}
		t.bytes = s

	case TagList:
		elemByte, err := cur.getByte()
		if err != nil {
			return nil, fmt.Errorf("read list element type: %w", err)
		}
		elem := TagType(elemByte)
		if !elem.valid() {
			return nil, fmt.Errorf("list element type code %d: %w", elemByte, ErrInvalidTagType)
		}
		t.elem = elem

		n, err := cur.getI32()
		if err != nil {
			return nil, fmt.Errorf("read list length: %w", err)
		}
		if n > 0 {
			t.list = make([]*Tag, 0, n)
			for i := int32(0); i < n; i++ {
				child, err := decodeTag(cur, false, elem, alloc)
				if err != nil {
					return nil, fmt.Errorf("list element %d: %w", i, err)
				}
				t.list = append(t.list, child)
			}
		}

	case TagCompound:
		// AwaitChild / Terminated state machine.
		for {
			child, err := decodeTag(cur, true, noOverride, alloc)
			if err != nil {
				return nil, fmt.Errorf("compound child: %w", err)
			}
			if child.typ == TagEnd {
				break
			}
			t.list = append(t.list, child)
		}

	case TagIntArray:
		n, err := cur.getI32()
		if err != nil {
			return nil, fmt.Errorf("read int array length: %w", err)
		}
		if n < 0 || int(n) > cur.remaining()/4 {
			return nil, fmt.Errorf("int array length %d: %w", n, ErrMalformedLength)
		}
		t.ints = make([]int32, n)
		for i := range t.ints {
			v, err := cur.getI32()
			if err != nil {
				return nil, fmt.Errorf("int array element %d: %w", i, err)
			}
			t.ints[i] = v
		}

	case TagLongArray:
		n, err := cur.getI32()
		if err != nil {
			return nil, fmt.Errorf("read long array length: %w", err)
		}
		if n < 0 || int(n) > cur.remaining()/8 {
			return nil, fmt.Errorf("long array length %d: %w", n, ErrMalformedLength)
		}
		t.longs = make([]int64, n)
		for i := range t.longs {
			v, err := cur.getI64()
			if err != nil {
				return nil, fmt.Errorf("long array element %d: %w", i, err)
			}
			t.longs[i] = v
		}

	default:
		// Unreachable: typ.valid() was checked above.
		return nil, fmt.Errorf("type code %d: %w", typ, ErrInvalidTagType)
	}

	return t, nil
}

// decodeString reads a 16-bit length prefix followed by that many raw
// bytes: the String payload encoding, also shared by tag and
// compound-child names. The stored form is length-authoritative; there is
// no wire-level NUL terminator.
func decodeString(cur *cursor, alloc Allocator, hint AllocHint) ([]byte, error) {
	n, err := cur.getU16()
	if err != nil {
		return nil, fmt.Errorf("read length: %w", err)
	}
	if int(n) > cur.remaining() {
		return nil, fmt.Errorf("length %d, have %d: %w", n, cur.remaining(), ErrMalformedLength)
	}
	raw, err := cur.take(int(n))
	if err != nil {
		return nil, fmt.Errorf("read bytes: %w", err)
	}
	out := allocBytes(alloc, hint, len(raw))
	copy(out, raw)
	return out, nil
}
