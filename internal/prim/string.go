package prim

import (
	"bytes"

	"sikort/internal/abi"
)

// StringEq compares two views. Views of different length are unequal and
// neither buffer is read; otherwise exactly Len bytes are compared.
func StringEq(out *abi.Bool, a, b *abi.String) {
	switch {
	case a.Len != b.Len:
		*out = abi.False
	case a.Len == 0 || a.Ptr == b.Ptr:
		*out = abi.True
	default:
		*out = abi.BoolOf(bytes.Equal(a.Bytes(), b.Bytes()))
	}
}

// StringClone copies the (pointer, length) pair. The clone is a second view
// over the same bytes.
func StringClone(out, v *abi.String) {
	*out = *v
}
