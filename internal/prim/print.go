package prim

import (
	"strconv"

	"sikort/internal/abi"
)

// Tokens printed for the two Bool inhabitants.
const (
	TrueToken  = "true"
	FalseToken = "false"
)

// Num prints the decimal form of v and a newline. Write errors are dropped:
// the result is Unit.
func (r *Runtime) Num(_ *abi.Unit, v abi.Int) {
	var buf [24]byte
	line := strconv.AppendInt(buf[:0], int64(v), 10)
	line = append(line, '\n')
	_, _ = r.sink.Write(line)
}

// Str prints exactly v.Len bytes of the view, unescaped, and a newline.
func (r *Runtime) Str(_ *abi.Unit, v *abi.String) {
	b := v.Bytes()
	line := make([]byte, 0, len(b)+1)
	line = append(append(line, b...), '\n')
	_, _ = r.sink.Write(line)
}

// PrintBool prints TrueToken or FalseToken and a newline.
// Any non-zero pattern prints as true.
func (r *Runtime) PrintBool(_ *abi.Unit, v abi.Bool) {
	if v != abi.False {
		_, _ = r.sink.Write(trueLine)
		return
	}
	_, _ = r.sink.Write(falseLine)
}

var (
	trueLine  = []byte(TrueToken + "\n")
	falseLine = []byte(FalseToken + "\n")
)
