package rec

import (
	"errors"
	"strings"
	"testing"
)

var errIndex = errors.New("index out of range")

func TestError(t *testing.T) {
	f := func() (err error) {
		defer Error(&err)
		panic(errIndex)
	}

	err := f()
	if !errors.Is(err, errIndex) {
		t.Fatalf("Error = %v, want wrapped %v", err, errIndex)
	}
}

func TestErrorNoPanic(t *testing.T) {
	f := func() (err error) {
		defer Error(&err)
		return nil
	}

	if err := f(); err != nil {
		t.Fatalf("Error without panic = %v", err)
	}
}

func TestWrap(t *testing.T) {
	panics := func() (err error) {
		defer Wrap(&err, "job %q: %w", "demo")
		panic("bad shift")
	}

	err := panics()
	if err == nil || !strings.HasPrefix(err.Error(), `job "demo": recovered panic: bad shift`) {
		t.Fatalf("Wrap of panic = %v", err)
	}

	fails := func() (err error) {
		defer Wrap(&err, "job %q: %w", "demo")
		return errIndex
	}

	err = fails()
	if !errors.Is(err, errIndex) || !strings.HasPrefix(err.Error(), `job "demo": `) {
		t.Fatalf("Wrap of error = %v", err)
	}

	ok := func() (err error) {
		defer Wrap(&err, "job %q: %w", "demo")
		return nil
	}

	if err := ok(); err != nil {
		t.Fatalf("Wrap without error = %v", err)
	}
}
