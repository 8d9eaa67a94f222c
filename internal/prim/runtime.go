package prim

import (
	"fmt"
	"io"
	"os"
)

// Terminator ends the program on Abort.
type Terminator interface {
	// Terminate ends the program with the given status. Implementations that
	// return are hosted: Abort still never returns to its caller.
	Terminate(code int)
}

// Runtime carries the two capabilities the printing and aborting operations
// need: the output sink and the terminator. It holds no other state.
type Runtime struct {
	sink io.Writer
	term Terminator
}

// NewRuntime creates a runtime that prints to sink and aborts through term.
func NewRuntime(sink io.Writer, term Terminator) *Runtime {
	if sink == nil {
		sink = io.Discard
	}
	if term == nil {
		term = ProcessTerminator{}
	}
	return &Runtime{sink: sink, term: term}
}

// NewDefaultRuntime prints to standard output and aborts by exiting the process.
func NewDefaultRuntime() *Runtime {
	return NewRuntime(os.Stdout, ProcessTerminator{})
}

// NewHostedRuntime creates a runtime whose Abort unwinds with *Halt instead of
// exiting, for running generated call sequences inside a host process.
func NewHostedRuntime(sink io.Writer) (*Runtime, *HostTerminator) {
	term := &HostTerminator{code: -1}
	return NewRuntime(sink, term), term
}

// Sink returns the output sink.
func (r *Runtime) Sink() io.Writer {
	return r.sink
}

// ProcessTerminator exits the process without running deferred functions.
type ProcessTerminator struct{}

func (ProcessTerminator) Terminate(code int) {
	os.Exit(code)
}

// HostTerminator records the termination request and returns.
type HostTerminator struct {
	code       int
	terminated bool
}

func (t *HostTerminator) Terminate(code int) {
	t.code = code
	t.terminated = true
}

// Code returns the requested status, or -1 if Terminate was not called.
func (t *HostTerminator) Code() int {
	return t.code
}

// Terminated reports whether Terminate was called.
func (t *HostTerminator) Terminated() bool {
	return t.terminated
}

// Halt is the panic value Abort unwinds with when its terminator returns.
type Halt struct {
	Code int
}

func (h *Halt) Error() string {
	return fmt.Sprintf("runtime aborted with status %d", h.Code)
}
