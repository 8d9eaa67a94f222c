// Package testkit holds structural checks shared by tests of several packages.
package testkit

import (
	"errors"
	"fmt"

	"sikort/internal/abi"
)

// CheckLayoutInvariants runs the structural checks every target layout must
// pass:
// 1) every size is a multiple of its alignment
// 2) string fields are ordered, aligned and fit inside the struct
// 3) Bool and Int have the widths generated code assumes
func CheckLayoutInvariants(t abi.Target) error {
	var errs []error
	for _, k := range abi.Kinds() {
		l := t.LayoutOf(k)
		if l.Align <= 0 {
			errs = append(errs, fmt.Errorf("%s/%s: alignment %d", t.Triple, k, l.Align))
			continue
		}
		if l.Size%l.Align != 0 {
			errs = append(errs, fmt.Errorf("%s/%s: size %d not a multiple of alignment %d", t.Triple, k, l.Size, l.Align))
		}
	}

	str := t.LayoutOf(abi.KindString)
	if len(str.FieldOffsets) != 2 {
		errs = append(errs, fmt.Errorf("%s/string: expected 2 field offsets, got %d", t.Triple, len(str.FieldOffsets)))
	} else {
		ptr, n := str.FieldOffsets[0], str.FieldOffsets[1]
		if ptr != abi.StringPtrOffset || n != abi.StringLenOffset {
			errs = append(errs, fmt.Errorf("%s/string: offsets (%d, %d), want (%d, %d)", t.Triple, ptr, n, abi.StringPtrOffset, abi.StringLenOffset))
		}
		if n < ptr+t.PtrSize {
			errs = append(errs, fmt.Errorf("%s/string: length overlaps pointer", t.Triple))
		}
		if n%abi.AlignLen != 0 {
			errs = append(errs, fmt.Errorf("%s/string: length offset %d misaligned", t.Triple, n))
		}
		if n+abi.SizeLen > str.Size {
			errs = append(errs, fmt.Errorf("%s/string: length field ends past size %d", t.Triple, str.Size))
		}
	}

	if l := t.LayoutOf(abi.KindInt); l.Size != 8 {
		errs = append(errs, fmt.Errorf("%s/int: size %d, want 8", t.Triple, l.Size))
	}
	if l := t.LayoutOf(abi.KindBool); l.Size != 4 {
		errs = append(errs, fmt.Errorf("%s/bool: size %d, want 4", t.Triple, l.Size))
	}
	return errors.Join(errs...)
}

// CheckCatalogueInvariants verifies the operation catalogue:
// 1) symbols and aliases are unique across both namespaces
// 2) an output parameter, if any, comes first and is the only one
// 3) non-returning operations take no parameters
// 4) strings are never passed by value
func CheckCatalogueInvariants(ops []abi.Op) error {
	var errs []error
	seen := make(map[string]string, 2*len(ops))
	claim := func(name, owner string) {
		if prev, dup := seen[name]; dup {
			errs = append(errs, fmt.Errorf("name %q used by %s and %s", name, prev, owner))
			return
		}
		seen[name] = owner
	}
	for _, op := range ops {
		claim(op.Symbol, op.Symbol)
		claim(op.Alias, op.Symbol)

		if op.NoReturn && len(op.Params) != 0 {
			errs = append(errs, fmt.Errorf("%s: non-returning operation takes parameters", op.Symbol))
		}
		for i, p := range op.Params {
			if p.Mode == abi.Out && i != 0 {
				errs = append(errs, fmt.Errorf("%s: output parameter at position %d", op.Symbol, i))
			}
			if p.Kind == abi.KindString && p.Mode == abi.ByValue {
				errs = append(errs, fmt.Errorf("%s: string parameter %s passed by value", op.Symbol, p.Name))
			}
		}
	}
	return errors.Join(errs...)
}
