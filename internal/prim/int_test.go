package prim_test

import (
	"math"
	"testing"

	"sikort/internal/abi"
	"sikort/internal/prim"
)

var samples = []abi.Int{
	math.MinInt64, math.MinInt64 + 1, -1 << 32, -12345, -7, -1, 0, 1, 2, 5, 7, 12345, 1 << 32, math.MaxInt64 - 1, math.MaxInt64,
}

func TestArithmeticWraps(t *testing.T) {
	cases := []struct {
		name string
		fn   func(*abi.Int, abi.Int, abi.Int)
		a, b abi.Int
		want abi.Int
	}{
		{"add", prim.IntAdd, 7, 5, 12},
		{"add overflow", prim.IntAdd, math.MaxInt64, 1, math.MinInt64},
		{"sub", prim.IntSub, 7, 5, 2},
		{"sub underflow", prim.IntSub, math.MinInt64, 1, math.MaxInt64},
		{"mul", prim.IntMul, -6, 7, -42},
		{"mul overflow", prim.IntMul, math.MaxInt64, 2, -2},
		{"div truncates", prim.IntDiv, -7, 2, -3},
		{"div positive", prim.IntDiv, 7, 2, 3},
		{"div min by minus one", prim.IntDiv, math.MinInt64, -1, math.MinInt64},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out abi.Int
			tc.fn(&out, tc.a, tc.b)
			if out != tc.want {
				t.Fatalf("%d op %d = %d, want %d", tc.a, tc.b, out, tc.want)
			}
		})
	}
}

func TestArithmeticMatchesUint64Modulo(t *testing.T) {
	for _, a := range samples {
		for _, b := range samples {
			var sum, diff, prod abi.Int
			prim.IntAdd(&sum, a, b)
			prim.IntSub(&diff, a, b)
			prim.IntMul(&prod, a, b)
			if uint64(sum) != uint64(a)+uint64(b) {
				t.Fatalf("add(%d, %d) = %d", a, b, sum)
			}
			if uint64(diff) != uint64(a)-uint64(b) {
				t.Fatalf("sub(%d, %d) = %d", a, b, diff)
			}
			if uint64(prod) != uint64(a)*uint64(b) {
				t.Fatalf("mul(%d, %d) = %d", a, b, prod)
			}
			if b != 0 {
				var q abi.Int
				prim.IntDiv(&q, a, b)
				if a != math.MinInt64 || b != -1 {
					if q != a/b {
						t.Fatalf("div(%d, %d) = %d", a, b, q)
					}
				}
			}
		}
	}
}

func TestDivideByZeroFaults(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a runtime fault")
		}
	}()
	var out abi.Int
	prim.IntDiv(&out, 1, 0)
}

func TestComparisonTrichotomy(t *testing.T) {
	for _, a := range samples {
		for _, b := range samples {
			var lt, eq, gt abi.Bool
			prim.IntLessThan(&lt, &a, &b)
			prim.IntEq(&eq, &a, &b)
			prim.IntLessThan(&gt, &b, &a)
			held := 0
			for _, v := range []abi.Bool{lt, eq, gt} {
				if v != abi.False && v != abi.True {
					t.Fatalf("non-boolean result %d", v)
				}
				if v == abi.True {
					held++
				}
			}
			if held != 1 {
				t.Fatalf("a=%d b=%d: lt=%d eq=%d gt=%d", a, b, lt, eq, gt)
			}

			var sym abi.Bool
			prim.IntEq(&sym, &b, &a)
			if sym != eq {
				t.Fatalf("equality not symmetric for %d, %d", a, b)
			}
		}
		var refl abi.Bool
		prim.IntEq(&refl, &a, &a)
		if refl != abi.True {
			t.Fatalf("equality not reflexive for %d", a)
		}
	}
}

func TestIntCloneRoundTrip(t *testing.T) {
	for _, x := range samples {
		var c abi.Int
		prim.IntClone(&c, &x)
		var eq abi.Bool
		prim.IntEq(&eq, &x, &c)
		if eq != abi.True {
			t.Fatalf("clone of %d = %d", x, c)
		}
	}
}

func TestBoolConstructors(t *testing.T) {
	for range 3 {
		b := abi.Bool(7)
		prim.MakeTrue(&b)
		if b != abi.True {
			t.Fatalf("MakeTrue stored %d", b)
		}
		prim.MakeFalse(&b)
		if b != abi.False {
			t.Fatalf("MakeFalse stored %d", b)
		}
	}
}
