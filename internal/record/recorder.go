package record

import (
	"fmt"
	"io"
)

// Recorder appends events to a log as a run progresses.
// The first encoding error is kept and later events are dropped.
type Recorder struct {
	enc encoder
	seq int
	err error
}

// NewRecorder writes hdr to w and returns a recorder for the events.
func NewRecorder(w io.Writer, format Format, hdr Header) (*Recorder, error) {
	enc, err := newEncoder(w, format)
	if err != nil {
		return nil, err
	}
	if err := enc.Encode(hdr); err != nil {
		return nil, fmt.Errorf("failed to write log header: %w", err)
	}
	return &Recorder{enc: enc}, nil
}

// ObserveCall records one completed runtime call.
func (r *Recorder) ObserveCall(op string, args []Value, ret *Value) {
	r.seq++
	r.write(Event{Kind: KindCall, Seq: r.seq, Op: op, Args: args, Ret: ret})
}

// ObserveAbort records the abort that ended the run.
func (r *Recorder) ObserveAbort(code int) {
	r.seq++
	r.write(Event{Kind: KindAbort, Seq: r.seq, Code: code})
}

// ObserveExit records normal completion.
func (r *Recorder) ObserveExit(code int) {
	r.seq++
	r.write(Event{Kind: KindExit, Seq: r.seq, Code: code})
}

// Err returns the first encoding error.
func (r *Recorder) Err() error {
	return r.err
}

func (r *Recorder) write(ev Event) {
	if r.err != nil {
		return
	}
	if err := r.enc.Encode(ev); err != nil {
		r.err = fmt.Errorf("failed to write log event %d: %w", ev.Seq, err)
	}
}
