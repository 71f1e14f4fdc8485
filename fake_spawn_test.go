package torquedriver

import (
	"context"
	"os"
	"sync"

	"github.com/batchforge/torquedriver/spawn"
)

// scriptedResponse describes one canned outcome for fakeSpawner.
type scriptedResponse struct {
	status spawn.Status
	err    error
	stdout string
	stderr string
}

func exitStatus(code int) spawn.Status {
	return spawn.Status{Exited: true, ExitCode: code}
}

// fakeSpawner replays a fixed script of responses, one per call, and
// repeats the last entry once the script is exhausted. It records
// every argv it was invoked with so tests can assert on it.
//
// Safe for concurrent use, since StatusMany drives it from multiple
// goroutines at once.
type fakeSpawner struct {
	mu     sync.Mutex
	script []scriptedResponse
	calls  [][]string
}

func (f *fakeSpawner) Spawn(_ context.Context, argv []string, stdoutPath, stderrPath string) (spawn.Status, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string(nil), argv...))
	idx := len(f.calls) - 1
	if idx >= len(f.script) {
		idx = len(f.script) - 1
	}
	r := f.script[idx]
	f.mu.Unlock()
	if err := os.WriteFile(stdoutPath, []byte(r.stdout), 0o644); err != nil {
		return spawn.Status{}, err
	}
	if err := os.WriteFile(stderrPath, []byte(r.stderr), 0o644); err != nil {
		return spawn.Status{}, err
	}
	return r.status, r.err
}
