// Package record writes and replays execution logs of runtime calls.
//
// A log is a header followed by one event per runtime call and a single
// terminal event (abort or exit). Logs are NDJSON or a msgpack stream.
package record

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LogVersion is the only log version understood by this package.
const LogVersion = 1

// Format selects the log encoding.
type Format uint8

const (
	FormatNDJSON Format = iota + 1
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatNDJSON:
		return "ndjson"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ndjson", ".jsonl":
		return FormatNDJSON, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	default:
		return 0, fmt.Errorf("cannot infer log format from %q (expected .ndjson or .msgpack)", path)
	}
}

// Header opens every log.
type Header struct {
	V       int    `json:"v" msgpack:"v"`
	Kind    string `json:"kind" msgpack:"kind"`
	RunID   string `json:"run_id" msgpack:"run_id"`
	Tool    string `json:"tool" msgpack:"tool"`
	Plan    string `json:"plan,omitempty" msgpack:"plan,omitempty"`
	Checked bool   `json:"checked" msgpack:"checked"`
}

// NewHeader creates a header with a fresh time-ordered run id.
func NewHeader(tool, plan string, checked bool) Header {
	return Header{
		V:       LogVersion,
		Kind:    "header",
		RunID:   uuid.Must(uuid.NewV7()).String(),
		Tool:    tool,
		Plan:    plan,
		Checked: checked,
	}
}

// Value is a primitive value as it appears in a log.
type Value struct {
	Type  string `json:"type" msgpack:"type"`
	Int   int64  `json:"int,omitempty" msgpack:"int,omitempty"`
	Bool  int32  `json:"bool,omitempty" msgpack:"bool,omitempty"`
	Bytes []byte `json:"bytes,omitempty" msgpack:"bytes,omitempty"`
}

func IntValue(v int64) Value { return Value{Type: "int", Int: v} }

func BoolValue(v int32) Value { return Value{Type: "bool", Bool: v} }

func StringValue(b []byte) Value {
	return Value{Type: "string", Bytes: append([]byte(nil), b...)}
}

func UnitValue() Value { return Value{Type: "unit"} }

// Equal compares type and payload.
func (v Value) Equal(other Value) bool {
	return v.Type == other.Type && v.Int == other.Int && v.Bool == other.Bool && bytes.Equal(v.Bytes, other.Bytes)
}

func (v Value) String() string {
	switch v.Type {
	case "int":
		return fmt.Sprintf("int(%d)", v.Int)
	case "bool":
		return fmt.Sprintf("bool(%d)", v.Bool)
	case "string":
		return fmt.Sprintf("string(%q)", v.Bytes)
	default:
		return v.Type
	}
}

// Event kinds.
const (
	KindCall  = "call"
	KindAbort = "abort"
	KindExit  = "exit"
)

// Event is one log entry after the header.
type Event struct {
	Kind string  `json:"kind" msgpack:"kind"`
	Seq  int     `json:"seq" msgpack:"seq"`
	Op   string  `json:"op,omitempty" msgpack:"op,omitempty"`
	Args []Value `json:"args,omitempty" msgpack:"args,omitempty"`
	Ret  *Value  `json:"ret,omitempty" msgpack:"ret,omitempty"`
	Code int     `json:"code,omitempty" msgpack:"code,omitempty"`
}

// Log is a fully decoded execution log.
type Log struct {
	Header Header
	Events []Event
}

// Validate checks the header.
func (l *Log) Validate() error {
	if l.Header.Kind != "header" {
		return fmt.Errorf("%w: missing header", ErrInvalidLog)
	}
	if l.Header.V != LogVersion {
		return fmt.Errorf("%w: unsupported log version %d", ErrInvalidLog, l.Header.V)
	}
	return nil
}
