package observ

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestTimerConcurrentPhases(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx := tm.Begin(fmt.Sprintf("plan-%02d", i))
			tm.End(idx, "ok")
		}()
	}
	wg.Wait()

	report := tm.Report()
	if len(report.Phases) != 16 {
		t.Fatalf("phases = %d, want 16", len(report.Phases))
	}
	for _, p := range report.Phases {
		if p.Note != "ok" {
			t.Fatalf("phase %s note = %q", p.Name, p.Note)
		}
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	if d := tm.End(3, ""); d != 0 {
		t.Fatalf("End(3) = %v, want 0", d)
	}
	if r := tm.Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("empty report expected, got %+v", r)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.End(tm.Begin("load"), "2 plans")
	s := tm.Summary()
	for _, want := range []string{"timings:\n", "load", "// 2 plans", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}
