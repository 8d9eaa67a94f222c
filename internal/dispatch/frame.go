// Package dispatch resolves catalogue symbols to runtime operations and
// invokes them on caller-owned slots, the way generated code stages a
// straight-line call sequence.
package dispatch

import (
	"fmt"

	"sikort/internal/abi"
	"sikort/internal/record"
)

// Slot is a caller-owned, typed storage cell. Only the field matching Kind
// is meaningful.
type Slot struct {
	Kind abi.Kind
	Int  abi.Int
	Bool abi.Bool
	Str  abi.String
	Unit abi.Unit
}

// Value converts the slot for logging. String bytes are copied.
func (s *Slot) Value() record.Value {
	switch s.Kind {
	case abi.KindInt:
		return record.IntValue(int64(s.Int))
	case abi.KindBool:
		return record.BoolValue(int32(s.Bool))
	case abi.KindString:
		return record.StringValue(s.Str.Bytes())
	default:
		return record.UnitValue()
	}
}

func (s *Slot) String() string {
	switch s.Kind {
	case abi.KindInt:
		return fmt.Sprintf("%d", s.Int)
	case abi.KindBool:
		return fmt.Sprintf("bool(%d)", s.Bool)
	case abi.KindString:
		return fmt.Sprintf("%q", s.Str.Bytes())
	default:
		return "()"
	}
}

// Frame is an ordered set of named slots.
type Frame struct {
	slots []*Slot
	names []string
	index map[string]int
}

func NewFrame() *Frame {
	return &Frame{index: make(map[string]int)}
}

// Declare adds a zero-valued slot of kind k.
func (f *Frame) Declare(name string, k abi.Kind) (*Slot, error) {
	if name == "" {
		return nil, fmt.Errorf("slot name must not be empty")
	}
	if _, dup := f.index[name]; dup {
		return nil, fmt.Errorf("slot %q declared twice", name)
	}
	s := &Slot{Kind: k}
	f.index[name] = len(f.slots)
	f.slots = append(f.slots, s)
	f.names = append(f.names, name)
	return s, nil
}

// Lookup returns the named slot.
func (f *Frame) Lookup(name string) (*Slot, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.slots[i], true
}

// Names returns slot names in declaration order.
func (f *Frame) Names() []string {
	return append([]string(nil), f.names...)
}
