package ui

import (
	"strings"
	"testing"
	"time"

	"sikort/internal/verify"
)

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan verify.Event)
	m := NewProgressModel("verify", []string{"a.plan.toml", "b.plan.yaml"}, events).(*progressModel)

	m.Update(eventMsg{Plan: "a.plan.toml", Status: verify.StatusRunning})
	if got := m.items[0].status; got != verify.StatusRunning {
		t.Fatalf("status = %q, want running", got)
	}
	m.Update(eventMsg{Plan: "a.plan.toml", Status: verify.StatusPassed, Elapsed: 1500 * time.Microsecond})
	m.Update(eventMsg{Plan: "unknown", Status: verify.StatusFailed})

	if got := m.finished(); got != 1 {
		t.Fatalf("finished = %d, want 1", got)
	}
	view := m.View()
	for _, want := range []string{"verify (1/2)", "a.plan.toml", "1.50ms", "queued"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m.Update(doneMsg{})
	if !m.done || !strings.Contains(m.View(), "done: verify") {
		t.Fatalf("model not done:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("a-very-long-plan-name.plan.toml", 10); got != "a-very-..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate = %q", got)
	}
}
