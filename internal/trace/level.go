package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff     Level = iota // no tracing
	LevelError                // only dumps on failure
	LevelCommand              // command boundaries
	LevelPlan                 // plan boundaries
	LevelCall                 // every runtime call
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelCommand:
		return "command"
	case LevelPlan:
		return "plan"
	case LevelCall:
		return "call"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "command":
		return LevelCommand, nil
	case "plan":
		return LevelPlan, nil
	case "call":
		return LevelCall, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|command|plan|call)", s)
	}
}

// ShouldEmit reports whether events of scope are recorded at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelCommand:
		return scope <= ScopeCommand
	case LevelPlan:
		return scope <= ScopePlan
	case LevelCall:
		return true
	default:
		return false
	}
}
