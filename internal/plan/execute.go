package plan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"runtime"
	"slices"
	"strconv"

	"sikort/internal/abi"
	"sikort/internal/dispatch"
	"sikort/internal/prim"
	"sikort/internal/trace"
)

// Observer sees every call of an execution and how it ended.
type Observer interface {
	dispatch.Observer
	ObserveAbort(code int)
	ObserveExit(code int)
}

// Options control one execution.
type Options struct {
	Checked  bool
	Observer Observer
	// Sink receives program output in addition to Outcome.Stdout.
	Sink io.Writer
}

// Outcome is what one execution produced.
type Outcome struct {
	Stdout   string
	Aborted  bool
	ExitCode int
	Frame    *dispatch.Frame
	// Calls is the number of calls that were started.
	Calls int
}

// FaultError reports a hardware-level fault raised by an unchecked call,
// such as integer division by zero.
type FaultError struct {
	Op    string
	Index int
	Cause runtime.Error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("call %d (%s) faulted: %v", e.Index, e.Op, e.Cause)
}

func (e *FaultError) Unwrap() error { return e.Cause }

// Execute runs p on a hosted runtime. Abort ends the execution normally with
// Aborted set; contract violations and faults are returned as errors along
// with the partial outcome.
func Execute(ctx context.Context, p *Plan, opts Options) (out *Outcome, err error) {
	frame, err := buildFrame(p)
	if err != nil {
		return nil, err
	}

	var stdout bytes.Buffer
	var sink io.Writer = &stdout
	if opts.Sink != nil {
		sink = io.MultiWriter(&stdout, opts.Sink)
	}
	rt, term := prim.NewHostedRuntime(sink)

	dopts := []dispatch.Option{dispatch.WithChecked(opts.Checked)}
	if opts.Observer != nil {
		dopts = append(dopts, dispatch.WithObserver(opts.Observer))
	}
	d := dispatch.New(rt, dopts...)

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePlan, p.Name, trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)

	out = &Outcome{Frame: frame}
	defer func() {
		out.Stdout = stdout.String()
		r := recover()
		switch v := r.(type) {
		case nil:
		case *prim.Halt:
			out.Aborted = true
			out.ExitCode = v.Code
			if term.Terminated() {
				out.ExitCode = term.Code()
			}
			if opts.Observer != nil {
				opts.Observer.ObserveAbort(out.ExitCode)
			}
			trace.Point(tr, trace.ScopePlan, "abort", "exit "+strconv.Itoa(out.ExitCode), span.ID())
			span.End("aborted")
			return
		case runtime.Error:
			c := p.Calls[out.Calls-1]
			err = &FaultError{Op: c.Op, Index: out.Calls - 1, Cause: v}
			trace.Point(tr, trace.ScopePlan, "fault", c.Op, span.ID())
			span.End(err.Error())
			return
		default:
			panic(r)
		}
		if err != nil {
			span.End(err.Error())
			return
		}
		if opts.Observer != nil {
			opts.Observer.ObserveExit(0)
		}
		span.End("")
	}()

	for i, c := range p.Calls {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out.Calls++
		args := make([]*dispatch.Slot, len(c.Args))
		for j, name := range c.Args {
			args[j], _ = frame.Lookup(name)
		}
		var dst *dispatch.Slot
		if c.Out != "" {
			dst, _ = frame.Lookup(c.Out)
		}
		if err := d.CallByName(ctx, c.Op, dst, args...); err != nil {
			return out, fmt.Errorf("call %d (%s): %w", i, c.Op, err)
		}
	}
	return out, nil
}

func buildFrame(p *Plan) (*dispatch.Frame, error) {
	frame := dispatch.NewFrame()
	for _, decl := range p.Slots {
		k, err := abi.ParseKind(decl.Type)
		if err != nil {
			return nil, fmt.Errorf("slot %q: %w", decl.Name, err)
		}
		s, err := frame.Declare(decl.Name, k)
		if err != nil {
			return nil, err
		}
		if decl.Init == nil {
			continue
		}
		v, err := initSlot(k, decl.Init, decl.Normalize)
		if err != nil {
			return nil, fmt.Errorf("slot %q: %w", decl.Name, err)
		}
		*s = v
	}
	return frame, nil
}

// ErrUnexpectedOutcome is wrapped by every Check mismatch.
var ErrUnexpectedOutcome = errors.New("unexpected outcome")

// Check compares the outcome against e. A nil e accepts everything.
func (o *Outcome) Check(e *Expect) error {
	if e == nil {
		return nil
	}
	var errs []error
	mismatch := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrUnexpectedOutcome, fmt.Sprintf(format, args...)))
	}
	if e.Stdout != nil && *e.Stdout != o.Stdout {
		mismatch("stdout = %q, want %q", o.Stdout, *e.Stdout)
	}
	if e.Aborted != o.Aborted {
		mismatch("aborted = %t, want %t", o.Aborted, e.Aborted)
	}
	if e.ExitCode != nil && *e.ExitCode != o.ExitCode {
		mismatch("exit code = %d, want %d", o.ExitCode, *e.ExitCode)
	}
	for _, name := range slices.Sorted(maps.Keys(e.Slots)) {
		want := e.Slots[name]
		s, ok := o.Frame.Lookup(name)
		if !ok {
			mismatch("slot %q not declared", name)
			continue
		}
		ok, err := matches(s, want)
		if err != nil {
			mismatch("slot %q: %v", name, err)
			continue
		}
		if !ok {
			mismatch("slot %q = %s, want %v", name, s, want)
		}
	}
	return errors.Join(errs...)
}
