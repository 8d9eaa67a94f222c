package verify

import (
	"strconv"
	"time"
)

// Status captures the progress of one plan.
type Status string

const (
	// StatusQueued indicates the plan is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusRunning indicates the plan is executing.
	StatusRunning Status = "running"
	// StatusPassed indicates the plan met its expectations.
	StatusPassed Status = "passed"
	// StatusFailed indicates the plan ran but its outcome did not match.
	StatusFailed Status = "failed"
	// StatusError indicates the plan could not be loaded or executed.
	StatusError Status = "error"
)

// Done reports whether s is terminal.
func (s Status) Done() bool {
	return s == StatusPassed || s == StatusFailed || s == StatusError
}

// Event reports progress for one plan.
type Event struct {
	Plan    string
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func itoa(n int) string { return strconv.Itoa(n) }
