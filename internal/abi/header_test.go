package abi_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"sikort/internal/abi"
)

func TestWriteHeaderGolden(t *testing.T) {
	var buf bytes.Buffer
	if err := abi.WriteHeader(&buf, abi.X86_64LinuxGNU()); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "siko_runtime_x86_64-linux-gnu", buf.Bytes())
}

func TestPrototypeModes(t *testing.T) {
	op, _ := abi.Lookup("print.str")
	if got := abi.Prototype(op); got != "void Std_Basic_Util_siko_runtime_str(struct siko_Tuple_ *out, struct String_String *v)" {
		t.Fatalf("unexpected prototype %q", got)
	}
	op, _ = abi.Lookup("abort")
	if got := abi.Prototype(op); !strings.HasPrefix(got, "_Noreturn void") || !strings.HasSuffix(got, "(void)") {
		t.Fatalf("unexpected prototype %q", got)
	}
}

func TestDescribe(t *testing.T) {
	c := abi.Describe(abi.AArch64LinuxGNU())
	if c.Target != "aarch64-linux-gnu" {
		t.Fatalf("target %q", c.Target)
	}
	if len(c.Types) != 4 || len(c.Ops) != len(abi.Ops()) {
		t.Fatalf("types=%d ops=%d", len(c.Types), len(c.Ops))
	}
	if c.Types[2].Name != "string" || c.Types[2].Size != 16 {
		t.Fatalf("string layout %+v", c.Types[2])
	}
}
