// Package abi fixes the in-memory representation of the runtime's primitive
// values and the calling convention generated code uses to reach them.
//
// The Go types in this package are byte-identical to the C declarations
// rendered by WriteHeader; generated code and the runtime exchange them
// without conversion.
package abi

import (
	"unsafe"

	"fortio.org/safecast"
)

// Int is a plain 64-bit signed scalar.
type Int int64

// Bool is a small signed scalar restricted to False and True.
// Any other bit pattern is a contract violation.
type Bool int32

const (
	False Bool = 0
	True  Bool = 1
)

// BoolOf converts a Go bool to its runtime representation.
func BoolOf(b bool) Bool {
	if b {
		return True
	}
	return False
}

// Truth reports whether b is the true inhabitant.
func (b Bool) Truth() bool {
	return b == True
}

// String is a view over externally owned bytes: a pointer and a byte count.
// The view never owns, copies or frees the bytes it points at, and nothing
// past Len may be read. No terminating NUL is assumed.
type String struct {
	Ptr *byte
	Len int64
}

// StringOf borrows the backing array of b. Later writes into b are visible
// through the returned view.
func StringOf(b []byte) String {
	if len(b) == 0 {
		return String{Ptr: unsafe.SliceData(b)}
	}
	return String{Ptr: unsafe.SliceData(b), Len: int64(len(b))}
}

// StringView borrows the bytes of an immutable Go string.
func StringView(s string) String {
	if s == "" {
		return String{}
	}
	return String{Ptr: unsafe.StringData(s), Len: int64(len(s))}
}

// Bytes returns the viewed bytes without copying them.
// An empty or malformed view yields nil.
func (s String) Bytes() []byte {
	if s.Len <= 0 || s.Ptr == nil {
		return nil
	}
	n, err := safecast.Conv[int](s.Len)
	if err != nil {
		return nil
	}
	return unsafe.Slice(s.Ptr, n)
}

// Same reports whether two views have the same pointer and length.
func (s String) Same(other String) bool {
	return s.Ptr == other.Ptr && s.Len == other.Len
}

// Unit is the single-inhabitant, zero-size result of operations that produce
// no meaningful value.
type Unit struct{}
