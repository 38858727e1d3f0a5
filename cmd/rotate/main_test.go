package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"rotator/internal/history"
	"testing"
)

func TestRunDemo(t *testing.T) {
	out := &bytes.Buffer{}
	if err := run(context.Background(), nil, out); err != nil {
		t.Fatal(err)
	}

	if have, want := out.String(), "3\n4\n5\n6\n7\n1\n2\n"; have != want {
		t.Fatalf("demo printed %q, want %q", have, want)
	}
}

func TestRunConfig(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "history.db")

	file := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(file, []byte(`
history:
  file: `+db+`
workers: 2
jobs:
  - name: wrap
    values: [1, 2, 3, 4, 5]
    d: 7
  - name: words
    values: [a, b, c]
    d: 1
    direction: right
`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	if err := run(context.Background(), []string{file}, out); err != nil {
		t.Fatal(err)
	}

	if have, want := out.String(), "# wrap\n3\n4\n5\n1\n2\n# words\nc\na\nb\n"; have != want {
		t.Fatalf("printed %q, want %q", have, want)
	}

	store := history.Open(history.Config{File: db})
	defer store.Close()

	n := 0
	for range store.All() {
		n++
	}
	if n != 2 {
		t.Fatalf("recorded %d rotations, want 2", n)
	}
}

func TestRunBadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(file, []byte("jobs:\n  - name: x\n    direction: up\n    values: [1, 2]\n    d: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := run(context.Background(), []string{file}, &bytes.Buffer{}); err == nil {
		t.Fatal("run with unknown direction did not fail")
	}
}
