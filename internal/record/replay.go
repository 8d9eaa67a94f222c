package record

import (
	"fmt"
	"strings"
)

// Replayer checks a live run against a recorded log. It observes the same
// events as a Recorder and keeps the first divergence.
type Replayer struct {
	log  *Log
	next int
	err  error
	done bool
}

func NewReplayer(log *Log) *Replayer {
	return &Replayer{log: log}
}

// Header returns the header of the log being replayed.
func (r *Replayer) Header() Header {
	return r.log.Header
}

func (r *Replayer) ObserveCall(op string, args []Value, ret *Value) {
	ev, ok := r.expect(KindCall)
	if !ok {
		return
	}
	switch {
	case ev.Op != op:
		r.fail("expected call %q, got %q", ev.Op, op)
	case !equalValues(ev.Args, args):
		r.fail("%s: expected args %s, got %s", op, formatValues(ev.Args), formatValues(args))
	case !equalRet(ev.Ret, ret):
		r.fail("%s: expected result %s, got %s", op, formatRet(ev.Ret), formatRet(ret))
	}
}

func (r *Replayer) ObserveAbort(code int) {
	r.terminal(KindAbort, code)
}

func (r *Replayer) ObserveExit(code int) {
	r.terminal(KindExit, code)
}

// Err returns the first divergence, or an error if the log holds events the
// run never produced.
func (r *Replayer) Err() error {
	if r.err != nil {
		return r.err
	}
	if !r.done || r.next != len(r.log.Events) {
		return fmt.Errorf("%w: run ended after %d of %d events", ErrReplayMismatch, r.next, len(r.log.Events))
	}
	return nil
}

func (r *Replayer) terminal(kind string, code int) {
	ev, ok := r.expect(kind)
	if !ok {
		return
	}
	if ev.Code != code {
		r.fail("expected %s code %d, got %d", kind, ev.Code, code)
		return
	}
	r.done = true
}

func (r *Replayer) expect(kind string) (Event, bool) {
	if r.err != nil {
		return Event{}, false
	}
	if r.next >= len(r.log.Events) {
		r.err = fmt.Errorf("%w: no event left for %s", ErrLogExhausted, kind)
		return Event{}, false
	}
	ev := r.log.Events[r.next]
	r.next++
	if ev.Kind != kind {
		r.fail("expected %s, got %s at event %d", ev.Kind, kind, ev.Seq)
		return Event{}, false
	}
	return ev, true
}

func (r *Replayer) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s", ErrReplayMismatch, fmt.Sprintf(format, args...))
	}
}

func equalValues(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func equalRet(a, b *Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func formatValues(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatRet(v *Value) string {
	if v == nil {
		return "none"
	}
	return v.String()
}
