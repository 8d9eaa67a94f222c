package abi

import "fmt"

// ViolationCode identifies a kind of contract violation.
type ViolationCode int

// Stable violation codes - do not change values.
const (
	ViolationInvalidBool    ViolationCode = 1001 // RT1001: bool pattern outside {0, 1}
	ViolationNegativeLength ViolationCode = 1002 // RT1002: string length below zero
	ViolationNilString      ViolationCode = 1003 // RT1003: nil pointer with non-zero length
	ViolationDivideByZero   ViolationCode = 1004 // RT1004: integer division by zero
	ViolationKindMismatch   ViolationCode = 1005 // RT1005: operand of the wrong primitive type
	ViolationArity          ViolationCode = 1006 // RT1006: wrong operand count
	ViolationUnknownOp      ViolationCode = 1007 // RT1007: symbol not in the catalogue
)

// String returns the code as "RT1001" format.
func (c ViolationCode) String() string {
	return fmt.Sprintf("RT%d", c)
}

// ContractError describes an input that breaks an operation's precondition.
// The runtime itself never produces one; checked callers do, before the call.
type ContractError struct {
	Code    ViolationCode
	Op      string
	Message string
}

func (e *ContractError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("contract violation %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("contract violation %s in %s: %s", e.Code, e.Op, e.Message)
}

// Violation builds a ContractError.
func Violation(code ViolationCode, op, format string, args ...any) *ContractError {
	return &ContractError{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// CheckBool rejects any pattern other than False and True.
func CheckBool(op string, b Bool) error {
	if b != False && b != True {
		return Violation(ViolationInvalidBool, op, "bool pattern %d is neither 0 nor 1", int32(b))
	}
	return nil
}

// CheckString rejects views that cannot be read safely.
func CheckString(op string, s *String) error {
	if s == nil {
		return Violation(ViolationNilString, op, "nil string reference")
	}
	if s.Len < 0 {
		return Violation(ViolationNegativeLength, op, "string length %d is negative", s.Len)
	}
	if s.Ptr == nil && s.Len > 0 {
		return Violation(ViolationNilString, op, "nil buffer with length %d", s.Len)
	}
	return nil
}

// CheckDivisor rejects the zero divisor.
func CheckDivisor(op string, d Int) error {
	if d == 0 {
		return Violation(ViolationDivideByZero, op, "division by zero")
	}
	return nil
}
