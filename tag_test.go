// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package nbt

import "testing"

func TestCompoundGetExactMatch(t *testing.T) {
	comp := NewCompound()
	short := NewShort(1)
	short.SetName([]byte("short"))
	comp.CompoundAppend(short)

	// A key that is a proper prefix of a stored name must not match.
	if got := comp.CompoundGet([]byte("sho")); got != nil {
		t.Errorf("CompoundGet(%q) = %v, want nil", "sho", got)
	}
	if got := comp.CompoundGet([]byte("short")); got != short {
		t.Errorf("CompoundGet(%q) = %v, want %v", "short", got, short)
	}
	if got := comp.CompoundGet([]byte("shortlonger")); got != nil {
		t.Errorf("CompoundGet(%q) = %v, want nil", "shortlonger", got)
	}
}

func TestCompoundGetFirstMatchWins(t *testing.T) {
	comp := NewCompound()
	first := NewInt(1)
	first.SetName([]byte("dup"))
	second := NewInt(2)
	second.SetName([]byte("dup"))
	comp.CompoundAppend(first)
	comp.CompoundAppend(second)

	if got := comp.CompoundGet([]byte("dup")); got != first {
		t.Errorf("CompoundGet returned %v, want the first duplicate %v", got, first)
	}
	if comp.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (duplicates retained)", comp.Len())
	}
}

func TestListAppendAndGet(t *testing.T) {
	list := NewList(TagInt)
	list.ListAppend(NewInt(1))
	list.ListAppend(NewInt(2))

	if list.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", list.Len())
	}
	if got := list.ListGet(0).Int(); got != 1 {
		t.Errorf("ListGet(0).Int() = %d, want 1", got)
	}
	if got := list.ListGet(1).Int(); got != 2 {
		t.Errorf("ListGet(1).Int() = %d, want 2", got)
	}
}

func TestTagEqual(t *testing.T) {
	a := NewCompound()
	a.SetName([]byte("root"))
	child := NewLong(42)
	child.SetName([]byte("x"))
	a.CompoundAppend(child)

	b := NewCompound()
	b.SetName([]byte("root"))
	child2 := NewLong(42)
	child2.SetName([]byte("x"))
	b.CompoundAppend(child2)

	if !a.Equal(b) {
		t.Error("structurally identical compounds compared unequal")
	}

	child2.i64 = 43
	if a.Equal(b) {
		t.Error("compounds with differing child values compared equal")
	}
}

func TestSetNameReplacesPrevious(t *testing.T) {
	tag := NewByte(1)
	tag.SetName([]byte("first"))
	tag.SetName([]byte("second"))
	if got := string(tag.Name()); got != "second" {
		t.Errorf("Name() = %q, want %q", got, "second")
	}
}

func TestMustBePanicsOnWrongAccessor(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic calling Long() on a Byte tag")
		}
	}()
	NewByte(1).Long()
}
