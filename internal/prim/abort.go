package prim

import "io"

// AbortMessage is the fixed diagnostic line Abort prints.
const AbortMessage = "siko_runtime_abort called"

// AbortExitCode is the status Abort terminates with (128 + SIGABRT).
const AbortExitCode = 134

// Abort prints AbortMessage, flushes the sink if it buffers, and terminates.
// It never returns: when the terminator is hosted, Abort panics with *Halt.
func (r *Runtime) Abort() {
	_, _ = io.WriteString(r.sink, AbortMessage+"\n")
	if f, ok := r.sink.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
	r.term.Terminate(AbortExitCode)
	panic(&Halt{Code: AbortExitCode})
}
