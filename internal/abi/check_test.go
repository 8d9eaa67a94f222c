package abi_test

import (
	"errors"
	"testing"

	"sikort/internal/abi"
)

func violationCode(t *testing.T, err error) abi.ViolationCode {
	t.Helper()
	var ce *abi.ContractError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *abi.ContractError, got %v", err)
	}
	return ce.Code
}

func TestCheckBool(t *testing.T) {
	if err := abi.CheckBool("x", abi.True); err != nil {
		t.Fatalf("true rejected: %v", err)
	}
	if err := abi.CheckBool("x", abi.False); err != nil {
		t.Fatalf("false rejected: %v", err)
	}
	if code := violationCode(t, abi.CheckBool("x", abi.Bool(2))); code != abi.ViolationInvalidBool {
		t.Fatalf("got %s", code)
	}
}

func TestCheckString(t *testing.T) {
	buf := []byte("ok")
	cases := []struct {
		name string
		s    *abi.String
		want abi.ViolationCode
	}{
		{"nil reference", nil, abi.ViolationNilString},
		{"negative length", &abi.String{Ptr: &buf[0], Len: -4}, abi.ViolationNegativeLength},
		{"nil buffer", &abi.String{Len: 2}, abi.ViolationNilString},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if code := violationCode(t, abi.CheckString("String_String_eq", tc.s)); code != tc.want {
				t.Fatalf("got %s, want %s", code, tc.want)
			}
		})
	}
	empty := abi.String{}
	if err := abi.CheckString("x", &empty); err != nil {
		t.Fatalf("empty view rejected: %v", err)
	}
}

func TestCheckDivisor(t *testing.T) {
	err := abi.CheckDivisor("Int_Int_div", 0)
	if code := violationCode(t, err); code != abi.ViolationDivideByZero {
		t.Fatalf("got %s", code)
	}
	if got := err.Error(); got != "contract violation RT1004 in Int_Int_div: division by zero" {
		t.Fatalf("unexpected message %q", got)
	}
}
