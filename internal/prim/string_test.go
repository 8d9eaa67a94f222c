package prim_test

import (
	"testing"

	"sikort/internal/abi"
	"sikort/internal/prim"
)

func stringEq(a, b abi.String) abi.Bool {
	var out abi.Bool
	prim.StringEq(&out, &a, &b)
	return out
}

func TestStringEqDistinctBuffers(t *testing.T) {
	a := abi.StringOf([]byte("cat"))
	b := abi.StringOf([]byte("cat"))
	if a.Ptr == b.Ptr {
		t.Fatal("test needs distinct buffers")
	}
	if got := stringEq(a, b); got != abi.True {
		t.Fatalf("cat == cat: got %d", got)
	}
	if got := stringEq(a, abi.StringOf([]byte("car"))); got != abi.False {
		t.Fatalf("cat == car: got %d", got)
	}
}

func TestStringEqLengthMismatchDoesNotRead(t *testing.T) {
	short := []byte("cat")
	a := abi.String{Ptr: &short[0], Len: 3}
	// Len far beyond the buffer: reading it would fault.
	b := abi.String{Ptr: &short[0], Len: 1 << 40}
	if got := stringEq(a, b); got != abi.False {
		t.Fatalf("got %d", got)
	}
}

func TestStringEqEmptyIgnoresPointer(t *testing.T) {
	buf := []byte("xyz")
	a := abi.String{}
	b := abi.String{Ptr: &buf[1], Len: 0}
	if got := stringEq(a, b); got != abi.True {
		t.Fatalf("got %d", got)
	}
}

func TestStringEqComparesExactlyLenBytes(t *testing.T) {
	x := []byte("cat\x00dog")
	y := []byte("cat\x00cow")
	if got := stringEq(abi.StringOf(x), abi.StringOf(y)); got != abi.False {
		t.Fatal("bytes after an embedded NUL were ignored")
	}
	if got := stringEq(abi.StringOf(x[:4]), abi.StringOf(y[:4])); got != abi.True {
		t.Fatal("equal prefixes compared unequal")
	}
}

func TestStringCloneSharesBytes(t *testing.T) {
	buf := []byte("cat")
	s := abi.StringOf(buf)
	var c abi.String
	prim.StringClone(&c, &s)
	if !c.Same(s) {
		t.Fatalf("clone %+v differs from %+v", c, s)
	}
	if got := stringEq(s, c); got != abi.True {
		t.Fatal("clone not equal to original")
	}
	buf[0] = 'b'
	if string(c.Bytes()) != "bat" {
		t.Fatal("clone copied the bytes")
	}
}
