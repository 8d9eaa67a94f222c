package prim_test

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"sikort/internal/prim"
)

func TestHostedAbortNeverReturns(t *testing.T) {
	var buf bytes.Buffer
	rt, term := prim.NewHostedRuntime(&buf)

	halted := func() (h *prim.Halt) {
		defer func() {
			if r := recover(); r != nil {
				h, _ = r.(*prim.Halt)
			}
		}()
		rt.Abort()
		t.Fatal("Abort returned")
		return nil
	}()

	if halted == nil || halted.Code != prim.AbortExitCode {
		t.Fatalf("expected *prim.Halt with code %d, got %v", prim.AbortExitCode, halted)
	}
	if !term.Terminated() || term.Code() != prim.AbortExitCode {
		t.Fatalf("terminator not invoked: %v %d", term.Terminated(), term.Code())
	}
	if buf.String() != prim.AbortMessage+"\n" {
		t.Fatalf("diagnostic %q", buf.String())
	}
}

const abortChildEnv = "SIKORT_PRIM_ABORT_CHILD"

func TestAbortTerminatesProcess(t *testing.T) {
	if os.Getenv(abortChildEnv) == "1" {
		prim.NewDefaultRuntime().Abort()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestAbortTerminatesProcess$")
	cmd.Env = append(os.Environ(), abortChildEnv+"=1")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	err := cmd.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected non-zero exit, got %v", err)
	}
	if code := exitErr.ExitCode(); code != prim.AbortExitCode {
		t.Fatalf("exit code %d, want %d", code, prim.AbortExitCode)
	}
	if !strings.Contains(stdout.String(), prim.AbortMessage+"\n") {
		t.Fatalf("diagnostic missing from stdout: %q", stdout.String())
	}
	if strings.Contains(stdout.String(), "PASS") {
		t.Fatalf("child continued after Abort: %q", stdout.String())
	}
}
