package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with args after resetting every flag, since
// cobra keeps flag values between executions.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetCommand(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	base := []string{"--config", filepath.Join("testdata", "sikort.toml"), "--color", "off"}
	rootCmd.SetArgs(append(args[:1:1], append(base, args[1:]...)...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetCommand(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	cmd.SetContext(context.Background())
	for _, sub := range cmd.Commands() {
		resetCommand(sub)
	}
}

func TestChooseDisplay(t *testing.T) {
	cases := []struct {
		ui    string
		quiet bool
		tty   bool
		want  verifyDisplay
	}{
		{"", false, false, displayLines},
		{"AUTO", false, true, displayTUI},
		{" on ", false, false, displayTUI},
		{"off", false, true, displayLines},
		{"on", true, true, displayNone},
		{"auto", true, false, displayNone},
	}
	for _, tc := range cases {
		got, err := chooseDisplay(tc.ui, tc.quiet, tc.tty)
		if err != nil {
			t.Fatalf("chooseDisplay(%q, %v, %v) error: %v", tc.ui, tc.quiet, tc.tty, err)
		}
		if got != tc.want {
			t.Fatalf("chooseDisplay(%q, %v, %v) = %s, want %s", tc.ui, tc.quiet, tc.tty, got, tc.want)
		}
	}
	if _, err := chooseDisplay("sometimes", true, false); err == nil {
		t.Fatal("expected error for invalid --ui value")
	}
}

func TestABIJSONGolden(t *testing.T) {
	out, _, err := execute(t, "abi", "--format", "json")
	if err != nil {
		t.Fatalf("abi: %v", err)
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "abi_x86_64-linux-gnu.json", []byte(out))
}

func TestABITableListsEveryOperation(t *testing.T) {
	out, _, err := execute(t, "abi", "--target", "aarch64-linux-gnu")
	if err != nil {
		t.Fatalf("abi: %v", err)
	}
	for _, want := range []string{"types (aarch64-linux-gnu, abi v1)", "struct String_String", "Int_Int_div", "string.clone", "no return"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q", want)
		}
	}
}

func TestABIRejectsUnknownFormat(t *testing.T) {
	if _, _, err := execute(t, "abi", "--format", "yaml"); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunPrintsPlanOutput(t *testing.T) {
	out, _, err := execute(t, "run", "--expect", filepath.Join("testdata", "plans", "add_print.plan.toml"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "5\n" {
		t.Fatalf("stdout = %q, want %q", out, "5\n")
	}
}

func TestRunAbortReturnsAbortStatus(t *testing.T) {
	out, _, err := execute(t, "run", filepath.Join("testdata", "plans", "abort.plan.yaml"))
	var exit *exitError
	if !errors.As(err, &exit) {
		t.Fatalf("err = %v, want exitError", err)
	}
	if exit.code != 134 {
		t.Fatalf("exit code = %d, want 134", exit.code)
	}
	if out != "7\nsiko_runtime_abort called\n" {
		t.Fatalf("stdout = %q", out)
	}
}

func TestRecordThenReplay(t *testing.T) {
	for _, ext := range []string{".ndjson", ".msgpack"} {
		t.Run(ext, func(t *testing.T) {
			logPath := filepath.Join(t.TempDir(), "run"+ext)
			planPath := filepath.Join("testdata", "plans", "string_eq.plan.yaml")

			if _, _, err := execute(t, "run", "--checked", "--record", logPath, planPath); err != nil {
				t.Fatalf("run: %v", err)
			}
			out, _, err := execute(t, "replay", planPath, logPath)
			if err != nil {
				t.Fatalf("replay: %v", err)
			}
			if !strings.HasPrefix(out, "replay ok: 5 events match run ") {
				t.Fatalf("replay output = %q", out)
			}

			other := filepath.Join("testdata", "plans", "add_print.plan.toml")
			if _, _, err := execute(t, "replay", other, logPath); err == nil {
				t.Fatal("expected replay of a different plan to diverge")
			}
		})
	}
}

func TestRunRejectsUnknownLogExtension(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.txt")
	_, _, err := execute(t, "run", "--record", logPath, filepath.Join("testdata", "plans", "add_print.plan.toml"))
	if err == nil || !strings.Contains(err.Error(), "cannot infer log format") {
		t.Fatalf("err = %v", err)
	}
}

func TestVerifyCommand(t *testing.T) {
	out, stderr, err := execute(t, "verify", "--jobs", "2", "--timings", filepath.Join("testdata", "plans"))
	if err != nil {
		t.Fatalf("verify: %v\n%s", err, stderr)
	}
	for _, want := range []string{"passed", "timings:", "3 plans: 3 passed, 0 failed, 0 errors"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, `"tool": "sikort"`) || !strings.Contains(out, `"abi_version": 1`) {
		t.Fatalf("unexpected payload:\n%s", out)
	}
}
