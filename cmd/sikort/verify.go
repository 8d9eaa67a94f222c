package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sikort/internal/observ"
	"sikort/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [flags] [dir]",
	Short: "Run every plan under a directory and check its expectations",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().Int("jobs", 0, "plans run in parallel (0 = GOMAXPROCS)")
	verifyCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	verifyCmd.Flags().Bool("timings", false, "print per-plan timings")
	verifyCmd.Flags().Bool("checked", false, "check operand contracts before every call")
}

func runVerify(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	dir := s.cfg.Verify.Dir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		dir = "."
	}
	jobs, err := intSetting(cmd, "jobs", s.cfg.Verify.Jobs)
	if err != nil {
		return err
	}
	uiValue, err := stringSetting(cmd, "ui", s.cfg.Verify.UI)
	if err != nil {
		return err
	}
	display, err := chooseDisplay(uiValue, s.quiet, isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	timings, err := boolSetting(cmd, "timings", s.cfg.Verify.Timings)
	if err != nil {
		return err
	}
	checked, err := boolSetting(cmd, "checked", s.cfg.Verify.Checked)
	if err != nil {
		return err
	}

	files, err := verify.Discover(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no plans found under %s", dir)
	}

	var timer *observ.Timer
	if timings {
		timer = observ.NewTimer()
	}
	req := verify.Request{Files: files, Jobs: jobs, Checked: checked, Timer: timer}

	out := cmd.OutOrStdout()
	var res *verify.Result
	switch display {
	case displayTUI:
		res, err = runVerifyWithUI(cmd.Context(), "verify "+dir, files, req)
	case displayLines:
		req.Progress = &lineSink{out: out}
		res, err = verify.Run(cmd.Context(), req)
	default:
		res, err = verify.Run(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	printFailures(cmd.ErrOrStderr(), res)
	if timer != nil {
		fmt.Fprint(out, timer.Summary())
	}
	printSummary(out, res)
	if !res.OK() {
		return fmt.Errorf("%d of %d plans did not pass", res.Failed+res.Errored, len(res.Plans))
	}
	return nil
}

// lineSink prints one line per finished plan.
type lineSink struct {
	mu  sync.Mutex
	out io.Writer
}

func (s *lineSink) OnEvent(ev verify.Event) {
	if !ev.Status.Done() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "%s %s (%.2f ms)\n", statusColor(ev.Status).Sprintf("%-6s", ev.Status), ev.Plan, toMillis(ev.Elapsed))
}

func statusColor(st verify.Status) *color.Color {
	switch st {
	case verify.StatusPassed:
		return color.New(color.FgGreen)
	case verify.StatusFailed, verify.StatusError:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

func printFailures(w io.Writer, res *verify.Result) {
	for _, r := range res.Plans {
		if r.Err == nil {
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", r.Path, statusColor(r.Status).Sprint(r.Status))
		fmt.Fprintf(w, "  %v\n", r.Err)
	}
}

func printSummary(w io.Writer, res *verify.Result) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "%d plans: %d passed, %d failed, %d errors\n", len(res.Plans), res.Passed, res.Failed, res.Errored)
}
