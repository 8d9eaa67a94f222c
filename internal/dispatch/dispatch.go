package dispatch

import (
	"context"

	"sikort/internal/abi"
	"sikort/internal/prim"
	"sikort/internal/record"
	"sikort/internal/trace"
)

// Observer receives every completed call.
type Observer interface {
	ObserveCall(op string, args []record.Value, ret *record.Value)
}

// Dispatcher invokes catalogue operations against one runtime.
type Dispatcher struct {
	rt       *prim.Runtime
	checked  bool
	observer Observer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithChecked enables contract checks on operand values before each call.
func WithChecked(checked bool) Option {
	return func(d *Dispatcher) { d.checked = checked }
}

// WithObserver forwards every call to o.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) { d.observer = o }
}

func New(rt *prim.Runtime, opts ...Option) *Dispatcher {
	d := &Dispatcher{rt: rt}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Checked reports whether contract checks are enabled.
func (d *Dispatcher) Checked() bool {
	return d.checked
}

// CallByName resolves name as a symbol or alias and calls it.
func (d *Dispatcher) CallByName(ctx context.Context, name string, out *Slot, args ...*Slot) error {
	op, ok := abi.Lookup(name)
	if !ok {
		return abi.Violation(abi.ViolationUnknownOp, name, "no such operation")
	}
	return d.Call(ctx, op, out, args...)
}

// Call invokes op with args, writing the result into out. out may be nil for
// operations whose result is Unit, and must be nil for Abort. Slot kinds and
// arity are always verified; operand values only in checked mode. Abort does
// not return: it panics with *prim.Halt under a hosted terminator.
func (d *Dispatcher) Call(ctx context.Context, op abi.Op, out *Slot, args ...*Slot) error {
	if err := verifyShape(op, out, args); err != nil {
		return err
	}
	if d.checked {
		if err := verifyValues(op, args); err != nil {
			return err
		}
	}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeCall, op.Symbol, trace.CurrentSpan(ctx))

	var logged []record.Value
	if d.observer != nil {
		logged = make([]record.Value, len(args))
		for i, a := range args {
			logged[i] = a.Value()
		}
	}
	if op.NoReturn {
		if d.observer != nil {
			d.observer.ObserveCall(op.Symbol, logged, nil)
		}
		span.End("no return")
		d.invoke(op, out, args)
		return nil
	}

	ended := false
	defer func() {
		if !ended {
			span.End("fault")
		}
	}()
	d.invoke(op, out, args)

	if out != nil && tr.Enabled() {
		span.WithExtra("out", out.String())
	}
	span.End("")
	ended = true

	if d.observer != nil {
		var ret *record.Value
		if out != nil {
			v := out.Value()
			ret = &v
		}
		d.observer.ObserveCall(op.Symbol, logged, ret)
	}
	return nil
}

func (d *Dispatcher) invoke(op abi.Op, out *Slot, args []*Slot) {
	switch op.ID {
	case abi.OpIntAdd:
		prim.IntAdd(&out.Int, args[0].Int, args[1].Int)
	case abi.OpIntSub:
		prim.IntSub(&out.Int, args[0].Int, args[1].Int)
	case abi.OpIntMul:
		prim.IntMul(&out.Int, args[0].Int, args[1].Int)
	case abi.OpIntDiv:
		prim.IntDiv(&out.Int, args[0].Int, args[1].Int)
	case abi.OpIntEq:
		prim.IntEq(&out.Bool, &args[0].Int, &args[1].Int)
	case abi.OpIntLessThan:
		prim.IntLessThan(&out.Bool, &args[0].Int, &args[1].Int)
	case abi.OpIntClone:
		prim.IntClone(&out.Int, &args[0].Int)
	case abi.OpTrue:
		prim.MakeTrue(&out.Bool)
	case abi.OpFalse:
		prim.MakeFalse(&out.Bool)
	case abi.OpStringEq:
		prim.StringEq(&out.Bool, &args[0].Str, &args[1].Str)
	case abi.OpStringClone:
		prim.StringClone(&out.Str, &args[0].Str)
	case abi.OpPrintNum:
		d.rt.Num(unitOut(out), args[0].Int)
	case abi.OpPrintStr:
		d.rt.Str(unitOut(out), &args[0].Str)
	case abi.OpPrintBool:
		d.rt.PrintBool(unitOut(out), args[0].Bool)
	case abi.OpAbort:
		d.rt.Abort()
	}
}

func unitOut(out *Slot) *abi.Unit {
	if out == nil {
		return nil
	}
	return &out.Unit
}
