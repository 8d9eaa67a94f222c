package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	ScopeCommand Scope = iota + 1 // one CLI invocation
	ScopePlan                     // one plan execution
	ScopeCall                     // one runtime operation
)

func (s Scope) String() string {
	switch s {
	case ScopeCommand:
		return "command"
	case ScopePlan:
		return "plan"
	case ScopeCall:
		return "call"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string // e.g. "run", "plan:add", "Int_Int_add"
	Detail   string
	Extra    map[string]string
}
