package prim

import "sikort/internal/abi"

// MakeTrue stores the true inhabitant.
func MakeTrue(out *abi.Bool) {
	*out = abi.True
}

// MakeFalse stores the false inhabitant.
func MakeFalse(out *abi.Bool) {
	*out = abi.False
}
