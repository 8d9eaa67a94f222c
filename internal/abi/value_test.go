package abi_test

import (
	"testing"

	"sikort/internal/abi"
)

func TestStringOfIsAView(t *testing.T) {
	buf := []byte("cat")
	s := abi.StringOf(buf)
	if s.Len != 3 || s.Ptr != &buf[0] {
		t.Fatalf("view does not point at the buffer: %+v", s)
	}
	buf[2] = 'r'
	if got := string(s.Bytes()); got != "car" {
		t.Fatalf("view did not observe the write: %q", got)
	}
	if &s.Bytes()[0] != &buf[0] {
		t.Fatal("Bytes copied the buffer")
	}
}

func TestStringBytesStopsAtLength(t *testing.T) {
	buf := []byte("category")
	s := abi.String{Ptr: &buf[0], Len: 3}
	if got := string(s.Bytes()); got != "cat" {
		t.Fatalf("got %q, want %q", got, "cat")
	}
}

func TestEmptyAndMalformedViews(t *testing.T) {
	if b := abi.StringView("").Bytes(); b != nil {
		t.Fatalf("empty view: %v", b)
	}
	buf := []byte("x")
	if b := (abi.String{Ptr: &buf[0], Len: -1}).Bytes(); b != nil {
		t.Fatalf("negative length: %v", b)
	}
}

func TestBoolOf(t *testing.T) {
	if abi.BoolOf(true) != abi.True || abi.BoolOf(false) != abi.False {
		t.Fatal("BoolOf mapped to the wrong inhabitant")
	}
	if !abi.True.Truth() || abi.False.Truth() || abi.Bool(2).Truth() {
		t.Fatal("Truth accepted a non-true pattern")
	}
}
