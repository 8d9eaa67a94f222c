package dispatch

import "sikort/internal/abi"

func verifyShape(op abi.Op, out *Slot, args []*Slot) error {
	operands := op.Operands()
	if len(args) != len(operands) {
		return abi.Violation(abi.ViolationArity, op.Symbol, "expected %d operands, got %d", len(operands), len(args))
	}
	for i, p := range operands {
		if args[i] == nil {
			return abi.Violation(abi.ViolationKindMismatch, op.Symbol, "operand %s is missing", p.Name)
		}
		if args[i].Kind != p.Kind {
			return abi.Violation(abi.ViolationKindMismatch, op.Symbol, "operand %s: expected %s, got %s", p.Name, p.Kind, args[i].Kind)
		}
	}

	res, hasResult := op.Result()
	switch {
	case !hasResult && out != nil:
		return abi.Violation(abi.ViolationArity, op.Symbol, "operation has no output slot")
	case hasResult && out == nil && res.Kind != abi.KindUnit:
		return abi.Violation(abi.ViolationArity, op.Symbol, "missing %s output slot", res.Kind)
	case hasResult && out != nil && out.Kind != res.Kind:
		return abi.Violation(abi.ViolationKindMismatch, op.Symbol, "output: expected %s, got %s", res.Kind, out.Kind)
	}
	return nil
}

func verifyValues(op abi.Op, args []*Slot) error {
	for _, a := range args {
		switch a.Kind {
		case abi.KindBool:
			if err := abi.CheckBool(op.Symbol, a.Bool); err != nil {
				return err
			}
		case abi.KindString:
			if err := abi.CheckString(op.Symbol, &a.Str); err != nil {
				return err
			}
		}
	}
	if op.ID == abi.OpIntDiv {
		return abi.CheckDivisor(op.Symbol, args[1].Int)
	}
	return nil
}
