package prim_test

import (
	"bytes"
	"math"
	"testing"

	"sikort/internal/abi"
	"sikort/internal/prim"
)

func TestPrintFormats(t *testing.T) {
	var buf bytes.Buffer
	rt, _ := prim.NewHostedRuntime(&buf)

	var sum abi.Int
	prim.IntAdd(&sum, 7, 5)
	rt.Num(nil, sum)
	rt.Num(nil, math.MinInt64)

	raw := []byte("tab\there\xff")
	s := abi.StringOf(raw)
	rt.Str(nil, &s)
	empty := abi.String{}
	rt.Str(nil, &empty)

	var u abi.Unit
	rt.PrintBool(&u, abi.True)
	rt.PrintBool(&u, abi.False)

	want := "12\n-9223372036854775808\ntab\there\xff\n\ntrue\nfalse\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStrPrintsOnlyViewedBytes(t *testing.T) {
	var buf bytes.Buffer
	rt, _ := prim.NewHostedRuntime(&buf)
	backing := []byte("category")
	s := abi.String{Ptr: &backing[0], Len: 3}
	rt.Str(nil, &s)
	if buf.String() != "cat\n" {
		t.Fatalf("got %q", buf.String())
	}
}

type chunkWriter struct {
	chunks []string
}

func (w *chunkWriter) Write(p []byte) (int, error) {
	w.chunks = append(w.chunks, string(p))
	return len(p), nil
}

func TestEachPrintIsOneWrite(t *testing.T) {
	w := &chunkWriter{}
	rt, _ := prim.NewHostedRuntime(w)

	rt.Num(nil, 12)
	s := abi.StringView("cat")
	rt.Str(nil, &s)
	empty := abi.String{}
	rt.Str(nil, &empty)
	rt.PrintBool(nil, abi.True)

	want := []string{"12\n", "cat\n", "\n", "true\n"}
	if len(w.chunks) != len(want) {
		t.Fatalf("got %d writes %q, want %d", len(w.chunks), w.chunks, len(want))
	}
	for i := range want {
		if w.chunks[i] != want[i] {
			t.Errorf("write %d: got %q, want %q", i, w.chunks[i], want[i])
		}
	}
}
