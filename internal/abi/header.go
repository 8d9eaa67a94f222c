package abi

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Kinds lists the primitive kinds in declaration order.
func Kinds() []Kind {
	return []Kind{KindInt, KindBool, KindString, KindUnit}
}

// Contract is a serializable description of the representation and the
// calling convention for one target.
type Contract struct {
	Target string     `json:"target"`
	Types  []TypeInfo `json:"types"`
	Ops    []OpInfo   `json:"ops"`
}

// TypeInfo describes one primitive's layout.
type TypeInfo struct {
	Name         string `json:"name"`
	CType        string `json:"c_type"`
	Size         int    `json:"size"`
	Align        int    `json:"align"`
	FieldOffsets []int  `json:"field_offsets,omitempty"`
}

// OpInfo describes one catalogue entry.
type OpInfo struct {
	Symbol   string      `json:"symbol"`
	Alias    string      `json:"alias"`
	Params   []ParamInfo `json:"params"`
	NoReturn bool        `json:"no_return,omitempty"`
	Doc      string      `json:"doc,omitempty"`
}

// ParamInfo describes one parameter.
type ParamInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Mode string `json:"mode"`
}

// Describe builds the Contract for t.
func Describe(t Target) Contract {
	c := Contract{Target: t.Triple}
	for _, k := range Kinds() {
		l := t.LayoutOf(k)
		c.Types = append(c.Types, TypeInfo{
			Name:         k.String(),
			CType:        k.CType(),
			Size:         l.Size,
			Align:        l.Align,
			FieldOffsets: l.FieldOffsets,
		})
	}
	for _, op := range catalogue {
		info := OpInfo{
			Symbol:   op.Symbol,
			Alias:    op.Alias,
			Params:   make([]ParamInfo, 0, len(op.Params)),
			NoReturn: op.NoReturn,
			Doc:      op.Doc,
		}
		for _, p := range op.Params {
			info.Params = append(info.Params, ParamInfo{Name: p.Name, Type: p.Kind.String(), Mode: p.Mode.String()})
		}
		c.Ops = append(c.Ops, info)
	}
	return c
}

// Prototype renders the C declaration of op, without the trailing semicolon.
func Prototype(op Op) string {
	var sb strings.Builder
	if op.NoReturn {
		sb.WriteString("_Noreturn ")
	}
	sb.WriteString("void ")
	sb.WriteString(op.Symbol)
	sb.WriteString("(")
	if len(op.Params) == 0 {
		sb.WriteString("void")
	}
	for i, p := range op.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p.Mode == ByValue {
			fmt.Fprintf(&sb, "%s %s", p.Kind.CType(), p.Name)
		} else {
			fmt.Fprintf(&sb, "%s *%s", p.Kind.CType(), p.Name)
		}
	}
	sb.WriteString(")")
	return sb.String()
}

// WriteHeader renders the C header generated code includes for target t.
func WriteHeader(w io.Writer, t Target) error {
	bw := bufio.NewWriter(w)
	str := t.LayoutOf(KindString)

	fmt.Fprintf(bw, "// Code generated by sikort abi; DO NOT EDIT.\n")
	fmt.Fprintf(bw, "// target: %s\n", t.Triple)
	fmt.Fprintf(bw, "//\n// Every result is written through the leading out parameter.\n\n")
	fmt.Fprintf(bw, "#ifndef SIKO_RUNTIME_H\n#define SIKO_RUNTIME_H\n\n")
	fmt.Fprintf(bw, "#include <stddef.h>\n#include <stdint.h>\n\n")

	fmt.Fprintf(bw, "typedef int64_t Int_Int;\n\n")
	fmt.Fprintf(bw, "struct Bool_Bool\n{\n    int32_t field0;\n};\n\n")
	fmt.Fprintf(bw, "struct String_String\n{\n    uint8_t *field0;\n    int64_t field1;\n};\n\n")
	fmt.Fprintf(bw, "struct siko_Tuple_\n{\n};\n\n")

	fmt.Fprintf(bw, "_Static_assert(sizeof(Int_Int) == %d, \"Int_Int size\");\n", t.LayoutOf(KindInt).Size)
	fmt.Fprintf(bw, "_Static_assert(sizeof(struct Bool_Bool) == %d, \"Bool_Bool size\");\n", t.LayoutOf(KindBool).Size)
	fmt.Fprintf(bw, "_Static_assert(sizeof(struct String_String) == %d, \"String_String size\");\n", str.Size)
	fmt.Fprintf(bw, "_Static_assert(offsetof(struct String_String, field1) == %d, \"String_String length offset\");\n\n", str.FieldOffsets[1])

	for _, op := range catalogue {
		fmt.Fprintf(bw, "%s;\n", Prototype(op))
	}
	fmt.Fprintf(bw, "\n#endif // SIKO_RUNTIME_H\n")
	return bw.Flush()
}
