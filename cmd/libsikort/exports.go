//go:build cgo

package main

/*
#include <stdint.h>

typedef int64_t Int_Int;

struct Bool_Bool
{
    int32_t field0;
};

struct String_String
{
    uint8_t *field0;
    int64_t field1;
};

struct siko_Tuple_
{
};
*/
import "C"

import (
	"unsafe"

	"sikort/internal/abi"
	"sikort/internal/prim"
)

// The C declarations above and the abi types share one layout, so every
// export reinterprets its pointers in place.

var rt = prim.NewDefaultRuntime()

func intPtr(p *C.Int_Int) *abi.Int { return (*abi.Int)(unsafe.Pointer(p)) }

func boolPtr(p *C.struct_Bool_Bool) *abi.Bool { return (*abi.Bool)(unsafe.Pointer(p)) }

func strPtr(p *C.struct_String_String) *abi.String { return (*abi.String)(unsafe.Pointer(p)) }

func unitPtr(p *C.struct_siko_Tuple_) *abi.Unit { return (*abi.Unit)(unsafe.Pointer(p)) }

//export Int_Int_add
func Int_Int_add(out *C.Int_Int, v1, v2 C.Int_Int) {
	prim.IntAdd(intPtr(out), abi.Int(v1), abi.Int(v2))
}

//export Int_Int_sub
func Int_Int_sub(out *C.Int_Int, v1, v2 C.Int_Int) {
	prim.IntSub(intPtr(out), abi.Int(v1), abi.Int(v2))
}

//export Int_Int_mul
func Int_Int_mul(out *C.Int_Int, v1, v2 C.Int_Int) {
	prim.IntMul(intPtr(out), abi.Int(v1), abi.Int(v2))
}

//export Int_Int_div
func Int_Int_div(out *C.Int_Int, v1, v2 C.Int_Int) {
	prim.IntDiv(intPtr(out), abi.Int(v1), abi.Int(v2))
}

//export Int_Int_eq
func Int_Int_eq(out *C.struct_Bool_Bool, v1, v2 *C.Int_Int) {
	prim.IntEq(boolPtr(out), intPtr(v1), intPtr(v2))
}

//export Int_Int_lessThan
func Int_Int_lessThan(out *C.struct_Bool_Bool, v1, v2 *C.Int_Int) {
	prim.IntLessThan(boolPtr(out), intPtr(v1), intPtr(v2))
}

//export Int_Int_clone
func Int_Int_clone(out *C.Int_Int, v *C.Int_Int) {
	prim.IntClone(intPtr(out), intPtr(v))
}

//export Std_Basic_Util_siko_runtime_true
func Std_Basic_Util_siko_runtime_true(out *C.struct_Bool_Bool) {
	prim.MakeTrue(boolPtr(out))
}

//export Std_Basic_Util_siko_runtime_false
func Std_Basic_Util_siko_runtime_false(out *C.struct_Bool_Bool) {
	prim.MakeFalse(boolPtr(out))
}

//export String_String_eq
func String_String_eq(out *C.struct_Bool_Bool, v1, v2 *C.struct_String_String) {
	prim.StringEq(boolPtr(out), strPtr(v1), strPtr(v2))
}

//export String_String_clone
func String_String_clone(out, v *C.struct_String_String) {
	prim.StringClone(strPtr(out), strPtr(v))
}

//export Std_Basic_Util_siko_runtime_num
func Std_Basic_Util_siko_runtime_num(out *C.struct_siko_Tuple_, v C.Int_Int) {
	rt.Num(unitPtr(out), abi.Int(v))
}

//export Std_Basic_Util_siko_runtime_str
func Std_Basic_Util_siko_runtime_str(out *C.struct_siko_Tuple_, v *C.struct_String_String) {
	rt.Str(unitPtr(out), strPtr(v))
}

//export Std_Basic_Util_siko_runtime_bool
func Std_Basic_Util_siko_runtime_bool(out *C.struct_siko_Tuple_, v C.struct_Bool_Bool) {
	rt.PrintBool(unitPtr(out), abi.Bool(v.field0))
}

//export Std_Basic_Util_siko_runtime_abort
func Std_Basic_Util_siko_runtime_abort() {
	rt.Abort()
}
