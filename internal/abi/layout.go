package abi

import (
	"fmt"
	"strings"
)

// Kind identifies one of the four primitive types.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindBool
	KindString
	KindUnit
)

// String returns the lower-case name used in plans and logs.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// ParseKind converts a type name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int":
		return KindInt, nil
	case "bool":
		return KindBool, nil
	case "string":
		return KindString, nil
	case "unit", "()":
		return KindUnit, nil
	default:
		return 0, fmt.Errorf("unknown primitive type %q (expected int|bool|string|unit)", s)
	}
}

// CType returns the C spelling of the type in the rendered header.
func (k Kind) CType() string {
	switch k {
	case KindInt:
		return "Int_Int"
	case KindBool:
		return "struct Bool_Bool"
	case KindString:
		return "struct String_String"
	case KindUnit:
		return "struct siko_Tuple_"
	default:
		return "void"
	}
}

// Basic sizes and alignments in bytes, valid for every supported Target.
const (
	SizeInt  = 8 // int64_t
	AlignInt = 8

	SizeBool  = 4 // int32_t field0
	AlignBool = 4

	SizeLen  = 8 // String length, int64_t
	AlignLen = 8

	SizeUnit  = 0
	AlignUnit = 1
)

// String field offsets.
const (
	StringPtrOffset = 0
	StringLenOffset = 8
)

// TypeLayout is the ABI layout of a primitive for a specific Target.
type TypeLayout struct {
	Size  int
	Align int

	// String only: pointer and length offsets.
	FieldOffsets []int
}

// Target describes the ABI target triple and its pointer properties.
// Only 64-bit targets are supported.
type Target struct {
	Triple   string
	PtrSize  int
	PtrAlign int
}

func X86_64LinuxGNU() Target {
	return Target{Triple: "x86_64-linux-gnu", PtrSize: 8, PtrAlign: 8}
}

func AArch64LinuxGNU() Target {
	return Target{Triple: "aarch64-linux-gnu", PtrSize: 8, PtrAlign: 8}
}

// Targets lists every supported target, default first.
func Targets() []Target {
	return []Target{X86_64LinuxGNU(), AArch64LinuxGNU()}
}

// LookupTarget finds a target by triple. An empty triple selects the default.
func LookupTarget(triple string) (Target, error) {
	if triple == "" {
		return X86_64LinuxGNU(), nil
	}
	for _, t := range Targets() {
		if t.Triple == triple {
			return t, nil
		}
	}
	names := make([]string, 0, len(Targets()))
	for _, t := range Targets() {
		names = append(names, t.Triple)
	}
	return Target{}, fmt.Errorf("unsupported target %q (expected one of: %s)", triple, strings.Join(names, ", "))
}

// LayoutOf returns the layout of a primitive kind on t.
func (t Target) LayoutOf(k Kind) TypeLayout {
	switch k {
	case KindInt:
		return TypeLayout{Size: SizeInt, Align: AlignInt}
	case KindBool:
		return TypeLayout{Size: SizeBool, Align: AlignBool}
	case KindString:
		lenOff := roundUp(t.PtrSize, AlignLen)
		align := max(t.PtrAlign, AlignLen)
		return TypeLayout{
			Size:         roundUp(lenOff+SizeLen, align),
			Align:        align,
			FieldOffsets: []int{0, lenOff},
		}
	case KindUnit:
		return TypeLayout{Size: SizeUnit, Align: AlignUnit}
	default:
		return TypeLayout{Size: 0, Align: 1}
	}
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}
