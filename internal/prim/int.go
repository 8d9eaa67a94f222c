// Package prim implements the primitive operations generated code calls into.
//
// Every operation writes its result through a caller-owned output slot passed
// first. Scalars are read by value, except where the catalogue reads them by
// reference; strings are always read by reference. No operation validates
// its inputs: see abi.CheckBool and friends for the checked path.
package prim

import "sikort/internal/abi"

// IntAdd stores a+b with two's-complement wraparound.
func IntAdd(out *abi.Int, a, b abi.Int) {
	*out = a + b
}

// IntSub stores a-b with two's-complement wraparound.
func IntSub(out *abi.Int, a, b abi.Int) {
	*out = a - b
}

// IntMul stores a*b with two's-complement wraparound.
func IntMul(out *abi.Int, a, b abi.Int) {
	*out = a * b
}

// IntDiv stores a/b truncated toward zero. A zero divisor is not guarded:
// the Go runtime's integer-divide fault is the observed behavior.
// MinInt64 / -1 wraps to MinInt64.
func IntDiv(out *abi.Int, a, b abi.Int) {
	*out = a / b
}

func IntEq(out *abi.Bool, a, b *abi.Int) {
	*out = abi.BoolOf(*a == *b)
}

func IntLessThan(out *abi.Bool, a, b *abi.Int) {
	*out = abi.BoolOf(*a < *b)
}

func IntClone(out, v *abi.Int) {
	*out = *v
}
