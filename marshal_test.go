// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package nbt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type player struct {
	Name   string  `nbt:"name"`
	Health int32   `nbt:"health"`
	Scale  float64 `nbt:"scale"`
	Items  []int32 `nbt:"items"`
}

func TestMarshalScalars(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want TagType
	}{
		{"int8", int8(1), TagByte},
		{"int16", int16(1), TagShort},
		{"int32", int32(1), TagInt},
		{"int", int(1), TagInt},
		{"int64", int64(1), TagLong},
		{"float32", float32(1), TagFloat},
		{"float64", float64(1), TagDouble},
		{"bool", true, TagByte},
		{"string", "hi", TagString},
		{"[]int8", []int8{1, 2}, TagByteArray},
		{"[]int32", []int32{1, 2}, TagIntArray},
		{"[]int64", []int64{1, 2}, TagLongArray},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Marshal(test.in)
			if err != nil {
				t.Fatalf("Marshal(%v): %v", test.in, err)
			}
			if got.Type() != test.want {
				t.Errorf("Marshal(%v).Type() = %s, want %s", test.in, got.Type(), test.want)
			}
		})
	}
}

func TestMarshalStruct(t *testing.T) {
	p := player{Name: "Steve", Health: 20, Scale: 1.0, Items: []int32{1, 2, 3}}
	tag, err := Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if tag.Type() != TagCompound {
		t.Fatalf("Marshal(struct).Type() = %s, want Compound", tag.Type())
	}
	if got := tag.CompoundGet([]byte("name")); got == nil || string(got.StringBytes()) != "Steve" {
		t.Errorf("name = %v, want Steve", got)
	}
	if got := tag.CompoundGet([]byte("health")); got == nil || got.Int() != 20 {
		t.Errorf("health = %v, want 20", got)
	}
	if got := tag.CompoundGet([]byte("items")); got == nil || got.Type() != TagIntArray || len(got.IntArray()) != 3 {
		t.Errorf("items = %v, want a 3-element IntArray", got)
	}
}

func TestUnmarshalStruct(t *testing.T) {
	p := player{Name: "Alex", Health: 15, Scale: 2.5, Items: []int32{4, 5}}
	tag, err := Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out player
	if err := Unmarshal(tag, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(p, out); diff != "" {
		t.Errorf("Unmarshal round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalMapDeterministic(t *testing.T) {
	m := map[string]int32{"z": 1, "a": 2, "m": 3}
	tag, err := Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if tag.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tag.Len())
	}
	children := tag.Children()
	names := []string{string(children[0].Name()), string(children[1].Name()), string(children[2].Name())}
	want := []string{"a", "m", "z"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("child %d name = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestUnmarshalMap(t *testing.T) {
	tag := NewCompound()
	a := NewInt(1)
	a.SetName([]byte("a"))
	b := NewInt(2)
	b.SetName([]byte("b"))
	tag.CompoundAppend(a)
	tag.CompoundAppend(b)

	var out map[string]int32
	if err := Unmarshal(tag, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out["a"] != 1 || out["b"] != 2 || len(out) != 2 {
		t.Errorf("Unmarshal = %v, want map[a:1 b:2]", out)
	}
}

func TestMarshalEmptySlice(t *testing.T) {
	tag, err := Marshal([]string{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if tag.Type() != TagList || tag.ElemType() != TagEnd {
		t.Errorf("Marshal(empty slice) = %s of %s, want List of End", tag.Type(), tag.ElemType())
	}
}

func TestMarshalSliceTypeMismatchFaults(t *testing.T) {
	_, err := Marshal([]interface{}{int32(1), "two"})
	if err == nil {
		t.Fatal("Marshal of a mixed-type slice succeeded, want an error")
	}
}

func TestUnmarshalTypeMismatchFaults(t *testing.T) {
	tag := NewString([]byte("not a number"))
	var out int32
	if err := Unmarshal(tag, &out); err == nil {
		t.Fatal("Unmarshal of a String into int32 succeeded, want an error")
	}
}

func TestUnmarshalDoesNotPanicOnByteArrayIntoStringBytes(t *testing.T) {
	tag := NewByteArray([]int8{1, 2, 3})
	var out []byte
	if err := Unmarshal(tag, &out); err != nil {
		t.Fatalf("Unmarshal ByteArray into []byte: %v", err)
	}
	if len(out) != 3 {
		t.Errorf("len(out) = %d, want 3", len(out))
	}
}
