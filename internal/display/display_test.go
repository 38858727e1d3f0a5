package display

import (
	"bytes"
	"errors"
	"testing"
)

func TestPrint(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Print(buf, []int{3, 4, 5, 6, 7, 1, 2})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := buf.String(), "3\n4\n5\n6\n7\n1\n2\n"; have != want {
		t.Fatalf("Print wrote %q, want %q", have, want)
	}
}

func TestPrintEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Print(buf, []string{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("Print of empty slice wrote %q", buf.String())
	}
}

func TestPrintAny(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Print(buf, []any{"x", 1.5, true}); err != nil {
		t.Fatal(err)
	}
	if have, want := buf.String(), "x\n1.5\ntrue\n"; have != want {
		t.Fatalf("Print wrote %q, want %q", have, want)
	}
}

var errBroken = errors.New("broken pipe")

type failWriter struct {
	after int
}

func (w *failWriter) Write(p []byte) (int, error) {
	if w.after == 0 {
		return 0, errBroken
	}
	w.after--
	return len(p), nil
}

func TestPrintError(t *testing.T) {
	err := Print(&failWriter{after: 2}, []int{1, 2, 3, 4})
	if !errors.Is(err, errBroken) {
		t.Fatalf("Print error = %v, want %v", err, errBroken)
	}
}
