package testkit

import (
	"strings"
	"testing"

	"sikort/internal/abi"
)

func TestCatalogueInvariantsCatchBrokenEntries(t *testing.T) {
	ops := []abi.Op{
		{Symbol: "a", Alias: "x", Params: []abi.Param{
			{Name: "v", Kind: abi.KindString, Mode: abi.ByValue},
			{Name: "out", Kind: abi.KindInt, Mode: abi.Out},
		}},
		{Symbol: "b", Alias: "x"},
		{Symbol: "c", Alias: "c2", NoReturn: true, Params: []abi.Param{{Name: "v", Kind: abi.KindInt, Mode: abi.ByValue}}},
	}
	err := CheckCatalogueInvariants(ops)
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{
		"string parameter v passed by value",
		"output parameter at position 1",
		`name "x" used by a and b`,
		"non-returning operation takes parameters",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("missing %q in %v", want, err)
		}
	}
}

func TestLayoutInvariantsRejectNarrowPointers(t *testing.T) {
	bad := abi.Target{Triple: "toy", PtrSize: 16, PtrAlign: 16}
	if err := CheckLayoutInvariants(bad); err == nil {
		t.Fatal("expected offset error for a 16-byte pointer")
	}
}
