package testsupport

import (
	"bytes"
	"io"
	"os"
	"testing"
)

// MustReadGoldenString returns the content of the golden file at path and
// fails the test when it cannot be read.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v", path, err)
	}
	return string(data)
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written, so callers can check that engines
// honour their optional writers.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (result, written string) {
	t.Helper()
	var buf bytes.Buffer
	result, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return result, buf.String()
}
