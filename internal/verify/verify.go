// Package verify runs every plan under a directory in parallel and checks
// each against its expectations.
package verify

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sikort/internal/observ"
	"sikort/internal/plan"
	"sikort/internal/trace"
)

// Suffixes of discoverable plan files.
var planSuffixes = []string{".plan.toml", ".plan.yaml", ".plan.yml"}

// Request describes one verification run. Files takes precedence over Dir.
type Request struct {
	Dir      string
	Files    []string
	Jobs     int
	Checked  bool
	Progress ProgressSink
	// Timer, when set, receives one phase per plan.
	Timer *observ.Timer
}

// PlanResult is the outcome of one plan.
type PlanResult struct {
	Path    string
	Name    string
	Status  Status
	Err     error
	Outcome *plan.Outcome
	Elapsed time.Duration
}

// Result aggregates a run, plans in discovery order.
type Result struct {
	Plans   []PlanResult
	Passed  int
	Failed  int
	Errored int
}

// OK reports whether every plan passed.
func (r *Result) OK() bool {
	return r.Failed == 0 && r.Errored == 0
}

// Discover lists plan files under dir in lexical order.
func Discover(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isPlanFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func isPlanFile(path string) bool {
	lower := strings.ToLower(path)
	for _, s := range planSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// Run verifies the requested plans. Plan failures are reported in the
// result; the returned error is reserved for discovery and cancellation.
func Run(ctx context.Context, req Request) (*Result, error) {
	files := req.Files
	if len(files) == 0 {
		var err error
		files, err = Discover(req.Dir)
		if err != nil {
			return nil, err
		}
	}
	sink := req.Progress
	if sink == nil {
		sink = NopSink{}
	}

	results := make([]PlanResult, len(files))
	for i, path := range files {
		results[i] = PlanResult{Path: path, Status: StatusQueued}
		sink.OnEvent(Event{Plan: path, Status: StatusQueued})
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeCommand, "verify", trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)

	g, gctx := errgroup.WithContext(ctx)
	if len(files) > 0 {
		g.SetLimit(min(jobs, len(files)))
	}
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// each index is owned by exactly one goroutine
			results[i] = runOne(gctx, path, req, sink)
			return nil
		})
	}
	err := g.Wait()

	res := &Result{Plans: results}
	for _, r := range results {
		switch r.Status {
		case StatusPassed:
			res.Passed++
		case StatusFailed:
			res.Failed++
		case StatusError:
			res.Errored++
		}
	}
	span.WithExtra("passed", itoa(res.Passed)).WithExtra("failed", itoa(res.Failed+res.Errored))
	span.End("")
	return res, err
}

func runOne(ctx context.Context, path string, req Request, sink ProgressSink) PlanResult {
	res := PlanResult{Path: path, Name: filepath.Base(path)}
	sink.OnEvent(Event{Plan: path, Status: StatusRunning})

	phase := -1
	if req.Timer != nil {
		phase = req.Timer.Begin(path)
	}
	start := time.Now()
	finish := func(status Status, err error) PlanResult {
		res.Status = status
		res.Err = err
		res.Elapsed = time.Since(start)
		if req.Timer != nil {
			req.Timer.End(phase, string(status))
		}
		sink.OnEvent(Event{Plan: path, Status: status, Err: err, Elapsed: res.Elapsed})
		return res
	}

	p, err := plan.Load(path)
	if err != nil {
		return finish(StatusError, err)
	}
	res.Name = p.Name

	// every plan gets a private in-memory sink
	out, err := plan.Verify(ctx, p, plan.Options{Checked: req.Checked})
	res.Outcome = out
	switch {
	case err == nil:
		return finish(StatusPassed, nil)
	case errors.Is(err, plan.ErrUnexpectedOutcome):
		return finish(StatusFailed, err)
	default:
		return finish(StatusError, err)
	}
}
