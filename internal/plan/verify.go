package plan

import (
	"context"
	"errors"
	"fmt"

	"sikort/internal/abi"
)

// Verify executes p and checks it against p.Expect. A plan expecting a
// contract violation passes only when execution stops with that code.
// Mismatches wrap ErrUnexpectedOutcome; any other error is an execution
// failure.
func Verify(ctx context.Context, p *Plan, opts Options) (*Outcome, error) {
	out, err := Execute(ctx, p, opts)
	want := ""
	if p.Expect != nil {
		want = p.Expect.Violation
	}
	if err != nil {
		var cerr *abi.ContractError
		if want != "" && errors.As(err, &cerr) {
			if cerr.Code.String() == want {
				return out, nil
			}
			return out, fmt.Errorf("%w: violation %s, want %s", ErrUnexpectedOutcome, cerr.Code, want)
		}
		return out, err
	}
	if want != "" {
		return out, fmt.Errorf("%w: completed without violation %s", ErrUnexpectedOutcome, want)
	}
	return out, out.Check(p.Expect)
}
