package abi_test

import (
	"testing"
	"unsafe"

	"sikort/internal/abi"
	"sikort/internal/testkit"
)

func TestGoTypesMatchDeclaredLayout(t *testing.T) {
	target := abi.X86_64LinuxGNU()

	cases := []struct {
		kind  abi.Kind
		size  uintptr
		align uintptr
	}{
		{abi.KindInt, unsafe.Sizeof(abi.Int(0)), unsafe.Alignof(abi.Int(0))},
		{abi.KindBool, unsafe.Sizeof(abi.Bool(0)), unsafe.Alignof(abi.Bool(0))},
		{abi.KindString, unsafe.Sizeof(abi.String{}), unsafe.Alignof(abi.String{})},
		{abi.KindUnit, unsafe.Sizeof(abi.Unit{}), unsafe.Alignof(abi.Unit{})},
	}
	for _, tc := range cases {
		l := target.LayoutOf(tc.kind)
		if uintptr(l.Size) != tc.size {
			t.Fatalf("%s: declared size %d, Go size %d", tc.kind, l.Size, tc.size)
		}
		if tc.kind != abi.KindUnit && uintptr(l.Align) != tc.align {
			t.Fatalf("%s: declared align %d, Go align %d", tc.kind, l.Align, tc.align)
		}
	}

	var s abi.String
	str := target.LayoutOf(abi.KindString)
	if got := unsafe.Offsetof(s.Ptr); uintptr(str.FieldOffsets[0]) != got || got != abi.StringPtrOffset {
		t.Fatalf("pointer offset: declared %d, Go %d", str.FieldOffsets[0], got)
	}
	if got := unsafe.Offsetof(s.Len); uintptr(str.FieldOffsets[1]) != got || got != abi.StringLenOffset {
		t.Fatalf("length offset: declared %d, Go %d", str.FieldOffsets[1], got)
	}
}

func TestTargetsShareLayout(t *testing.T) {
	base := abi.X86_64LinuxGNU()
	for _, target := range abi.Targets() {
		for _, k := range abi.Kinds() {
			if got, want := target.LayoutOf(k).Size, base.LayoutOf(k).Size; got != want {
				t.Fatalf("%s %s: size %d, want %d", target.Triple, k, got, want)
			}
		}
	}
}

func TestLayoutInvariants(t *testing.T) {
	for _, target := range abi.Targets() {
		if err := testkit.CheckLayoutInvariants(target); err != nil {
			t.Fatalf("%s: %v", target.Triple, err)
		}
	}
}

func TestLookupTarget(t *testing.T) {
	def, err := abi.LookupTarget("")
	if err != nil || def.Triple != "x86_64-linux-gnu" {
		t.Fatalf("default target: %v, %v", def, err)
	}
	if _, err := abi.LookupTarget("riscv32-unknown-elf"); err == nil {
		t.Fatal("expected error for unsupported target")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range abi.Kinds() {
		got, err := abi.ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := abi.ParseKind("float"); err == nil {
		t.Fatal("expected error for float")
	}
}
