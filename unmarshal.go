// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package nbt

import (
	"fmt"
	"reflect"
)

// An Unmarshaler decodes a Tag into the receiver directly, bypassing
// reflection.
type Unmarshaler interface {
	UnmarshalNBT(*Tag) error
}

// Unmarshal decodes tag into v, which must be a non-nil pointer. If v
// implements Unmarshaler, its UnmarshalNBT method is used.
//
// Struct decoding is the mirror of Marshal: a field tagged `nbt:"name"`
// is populated from the Compound child of that name, if present; fields
// with no matching child, and Compound children with no matching field,
// are left untouched (this is a partial-schema mapping, not a validating
// one).
func Unmarshal(tag *Tag, v interface{}) error {
	if u, ok := v.(Unmarshaler); ok {
		return u.UnmarshalNBT(tag)
	}
	if tag == nil {
		return fmt.Errorf("nbt: cannot unmarshal a nil tag")
	}

	switch t := v.(type) {
	case *int8:
		if tag.typ != TagByte {
			return fmt.Errorf("nbt: cannot unmarshal %s into int8", tag.typ)
		}
		*t = tag.i8
		return nil
	case *int16:
		if tag.typ != TagShort {
			return fmt.Errorf("nbt: cannot unmarshal %s into int16", tag.typ)
		}
		*t = tag.i16
		return nil
	case *int32:
		if tag.typ != TagInt {
			return fmt.Errorf("nbt: cannot unmarshal %s into int32", tag.typ)
		}
		*t = tag.i32
		return nil
	case *int:
		if tag.typ != TagInt {
			return fmt.Errorf("nbt: cannot unmarshal %s into int", tag.typ)
		}
		*t = int(tag.i32)
		return nil
	case *int64:
		if tag.typ != TagLong {
			return fmt.Errorf("nbt: cannot unmarshal %s into int64", tag.typ)
		}
		*t = tag.i64
		return nil
	case *float32:
		if tag.typ != TagFloat {
			return fmt.Errorf("nbt: cannot unmarshal %s into float32", tag.typ)
		}
		*t = tag.f32
		return nil
	case *float64:
		if tag.typ != TagDouble {
			return fmt.Errorf("nbt: cannot unmarshal %s into float64", tag.typ)
		}
		*t = tag.f64
		return nil
	case *bool:
		if tag.typ != TagByte {
			return fmt.Errorf("nbt: cannot unmarshal %s into bool", tag.typ)
		}
		*t = tag.i8 != 0
		return nil
	case *string:
		if tag.typ != TagString {
			return fmt.Errorf("nbt: cannot unmarshal %s into string", tag.typ)
		}
		*t = string(tag.bytes)
		return nil
	case *[]byte:
		switch tag.typ {
		case TagByteArray, TagString:
			*t = append([]byte(nil), tag.bytes...)
		default:
			return fmt.Errorf("nbt: cannot unmarshal %s into []byte", tag.typ)
		}
		return nil
	case *[]int8:
		if tag.typ != TagByteArray {
			return fmt.Errorf("nbt: cannot unmarshal %s into []int8", tag.typ)
		}
		*t = tag.ByteArray()
		return nil
	case *[]int32:
		if tag.typ != TagIntArray {
			return fmt.Errorf("nbt: cannot unmarshal %s into []int32", tag.typ)
		}
		*t = append([]int32(nil), tag.ints...)
		return nil
	case *[]int64:
		if tag.typ != TagLongArray {
			return fmt.Errorf("nbt: cannot unmarshal %s into []int64", tag.typ)
		}
		*t = append([]int64(nil), tag.longs...)
		return nil
	}

	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("nbt: cannot unmarshal into %T", v)
	}
	elem := val.Elem()

	switch elem.Kind() {
	case reflect.Struct:
		return unmarshalStruct(tag, elem)
	case reflect.Slice:
		return unmarshalSlice(tag, elem)
	case reflect.Map:
		return unmarshalMap(tag, elem)
	}
	return fmt.Errorf("nbt: type %T cannot be unmarshaled", v)
}

func unmarshalStruct(tag *Tag, elem reflect.Value) error {
	if tag.typ != TagCompound {
		return fmt.Errorf("nbt: cannot unmarshal %s into struct", tag.typ)
	}
	typ := elem.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name, ok := field.Tag.Lookup("nbt")
		if !ok || name == "-" {
			continue
		}
		child := tag.CompoundGet([]byte(name))
		if child == nil {
			continue
		}
		fv := elem.Field(i)
		if !fv.CanAddr() || !fv.CanSet() {
			continue
		}
		if err := Unmarshal(child, fv.Addr().Interface()); err != nil {
			return fmt.Errorf("nbt: field %q: %w", field.Name, err)
		}
	}
	return nil
}

func unmarshalSlice(tag *Tag, elem reflect.Value) error {
	if tag.typ != TagList {
		return fmt.Errorf("nbt: cannot unmarshal %s into slice", tag.typ)
	}
	n := tag.Len()
	out := reflect.MakeSlice(elem.Type(), n, n)
	for i := 0; i < n; i++ {
		ptr := reflect.New(elem.Type().Elem())
		if err := Unmarshal(tag.ListGet(i), ptr.Interface()); err != nil {
			return fmt.Errorf("nbt: index %d: %w", i, err)
		}
		out.Index(i).Set(ptr.Elem())
	}
	elem.Set(out)
	return nil
}

func unmarshalMap(tag *Tag, elem reflect.Value) error {
	if tag.typ != TagCompound {
		return fmt.Errorf("nbt: cannot unmarshal %s into map", tag.typ)
	}
	if elem.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("nbt: map key type %s cannot be unmarshaled", elem.Type().Key())
	}
	out := reflect.MakeMapWithSize(elem.Type(), tag.Len())
	for _, child := range tag.Children() {
		ptr := reflect.New(elem.Type().Elem())
		if err := Unmarshal(child, ptr.Interface()); err != nil {
			return fmt.Errorf("nbt: key %q: %w", child.name, err)
		}
		out.SetMapIndex(reflect.ValueOf(string(child.name)).Convert(elem.Type().Key()), ptr.Elem())
	}
	elem.Set(out)
	return nil
}
