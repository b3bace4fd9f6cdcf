// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package nbt

import (
	"fmt"
	"reflect"
	"sort"
)

// A Marshaler encodes a value as a Tag directly, bypassing reflection.
type Marshaler interface {
	MarshalNBT() (*Tag, error)
}

// Marshal converts v into an unnamed Tag tree. If v implements Marshaler,
// its MarshalNBT method is used.
//
// For struct types, Marshal uses field tags to select which exported
// fields are included and what name each is given in the resulting
// Compound. The tag format is:
//
//	nbt:"name"
//
// Fields without an nbt tag are skipped. []byte and []int8 values become a
// ByteArray, []int32 an IntArray, and []int64 a LongArray; any other slice
// or array is encoded as a List, and all its elements must marshal to the
// same TagType, matching the wire's list-type discipline. An empty List
// has element type End.
//
// Map values are encoded as a Compound in key-sorted order, so the output
// is deterministic (unlike a raw Go map's iteration order).
func Marshal(v interface{}) (*Tag, error) {
	if m, ok := v.(Marshaler); ok {
		return m.MarshalNBT()
	}
	switch t := v.(type) {
	case int8:
		return NewByte(t), nil
	case int16:
		return NewShort(t), nil
	case int32:
		return NewInt(t), nil
	case int:
		return NewInt(int32(t)), nil
	case int64:
		return NewLong(t), nil
	case float32:
		return NewFloat(t), nil
	case float64:
		return NewDouble(t), nil
	case bool:
		if t {
			return NewByte(1), nil
		}
		return NewByte(0), nil
	case string:
		return NewString([]byte(t)), nil
	case []byte:
		return NewByteArray(signedCopy(t)), nil
	case []int8:
		return NewByteArray(t), nil
	case []int32:
		return NewIntArray(t), nil
	case []int64:
		return NewLongArray(t), nil
	case nil:
		return nil, fmt.Errorf("nbt: cannot marshal nil")
	}

	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("nbt: cannot marshal nil %T", v)
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Struct:
		return marshalStruct(val)
	case reflect.Slice, reflect.Array:
		return marshalSlice(val)
	case reflect.Map:
		return marshalMap(val)
	}
	return nil, fmt.Errorf("nbt: type %T cannot be marshaled", v)
}

func signedCopy(b []byte) []int8 {
	out := make([]int8, len(b))
	for i, c := range b {
		out[i] = int8(c)
	}
	return out
}

// marshalSlice encodes val as a List. Precondition: val is a Slice or
// Array, and not []byte (handled directly in Marshal).
func marshalSlice(val reflect.Value) (*Tag, error) {
	n := val.Len()
	if n == 0 {
		return NewList(TagEnd), nil
	}
	elems := make([]*Tag, n)
	for i := 0; i < n; i++ {
		el, err := Marshal(val.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("nbt: index %d: %w", i, err)
		}
		elems[i] = el
	}
	list := NewList(elems[0].typ)
	for i, el := range elems {
		if el.typ != list.elem {
			return nil, fmt.Errorf("nbt: index %d has type %s, want %s (list element type discipline)", i, el.typ, list.elem)
		}
		list.ListAppend(el)
	}
	return list, nil
}

// marshalMap encodes val as a Compound keyed by the string form of its
// keys, in sorted order for determinism. Precondition: val is a Map.
func marshalMap(val reflect.Value) (*Tag, error) {
	comp := NewCompound()
	keys := val.MapKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		name, err := mapKeyString(k)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return names[order[i]] < names[order[j]] })

	for _, i := range order {
		child, err := Marshal(val.MapIndex(keys[i]).Interface())
		if err != nil {
			return nil, fmt.Errorf("nbt: key %q: %w", names[i], err)
		}
		child.SetName([]byte(names[i]))
		comp.CompoundAppend(child)
	}
	return comp, nil
}

func mapKeyString(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	return "", fmt.Errorf("nbt: map key type %s cannot be marshaled", k.Type())
}

// marshalStruct encodes val as a Compound. Precondition: val is a Struct.
func marshalStruct(val reflect.Value) (*Tag, error) {
	comp := NewCompound()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name, ok := field.Tag.Lookup("nbt")
		if !ok || name == "-" {
			continue
		}
		fv := val.Field(i)
		if !fv.CanInterface() {
			continue
		}
		child, err := Marshal(fv.Interface())
		if err != nil {
			return nil, fmt.Errorf("nbt: field %q: %w", field.Name, err)
		}
		child.SetName([]byte(name))
		comp.CompoundAppend(child)
	}
	return comp, nil
}
