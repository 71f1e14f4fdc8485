package debugtrace_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/batchforge/torquedriver/internal/debugtrace"
)

func TestOpenCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "trace.log")
	tr, err := debugtrace.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tr.Close()

	tr.Printf("hello %s", "world")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	line := strings.TrimRight(string(data), "\n")
	if !strings.HasSuffix(line, "hello world") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.HasSuffix(strings.Fields(line)[0], "Z") {
		t.Fatalf("timestamp missing Z suffix: %q", line)
	}
}

func TestNilTraceIsNoOp(t *testing.T) {
	var tr *debugtrace.Trace
	tr.Printf("should not panic")
	if err := tr.Close(); err != nil {
		t.Fatalf("Close on nil: %v", err)
	}
}

func TestOpenEmptyPathReturnsNilTrace(t *testing.T) {
	tr, err := debugtrace.Open("")
	if err != nil || tr != nil {
		t.Fatalf("got tr=%v err=%v, want nil, nil", tr, err)
	}
}
