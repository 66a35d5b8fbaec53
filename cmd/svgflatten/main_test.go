package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/flatten"
	"github.com/tdewolff/test"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	test.Error(t, os.WriteFile(filename, []byte(data), 0644))
	return filename
}

func TestRun(t *testing.T) {
	orig := flatten.Logger()
	t.Cleanup(func() { flatten.SetLogger(orig) })

	input := writeFile(t, "in.svg", `<svg><g transform="translate(1,2)"><circle r="1"/></g><rect width=".5" height="2" transform="scale(2)"/></svg>`)
	output := filepath.Join(t.TempDir(), "out.svg")

	cmd := &Flatten{Precision: 3, Input: input, Output: output}
	test.Error(t, cmd.Run())

	b, err := os.ReadFile(output)
	test.Error(t, err)
	test.String(t, string(b), `<svg><g><circle r="1" cx="1" cy="2"/></g><path d="M 0,0 H 1 V 4 H 0 Z"/></svg>`)
}

func TestRunError(t *testing.T) {
	orig := flatten.Logger()
	t.Cleanup(func() { flatten.SetLogger(orig) })

	const doc = `<svg><circle cx="1" transform="skewX(10)"/></svg>`
	input := writeFile(t, "in.svg", doc)
	output := filepath.Join(t.TempDir(), "out.svg")

	cmd := &Flatten{Input: input, Output: output}
	err := cmd.Run()
	test.That(t, err != nil, "expected error")

	// the document is still written, with the failed element unchanged
	b, err := os.ReadFile(output)
	test.Error(t, err)
	test.String(t, string(b), doc)

	cmd = &Flatten{Input: filepath.Join(t.TempDir(), "missing.svg")}
	test.That(t, cmd.Run() != nil, "expected error")

	cmd = &Flatten{Input: writeFile(t, "bad.svg", `<svg><g></svg>`)}
	test.That(t, cmd.Run() != nil, "expected error")

	cmd = &Flatten{}
	test.T(t, cmd.Run(), argp.ShowUsage)
	cmd = &Flatten{Input: input, Precision: -1}
	test.T(t, cmd.Run(), argp.ShowUsage)
}
