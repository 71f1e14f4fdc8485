// Package qstatproxy resolves the default qstat command path: a
// bundled wrapper script extracted once per process, its path stored
// as a Driver field rather than left as mutable package state.
package qstatproxy

import (
	_ "embed"
	"os"
	"path/filepath"
	"sync"
)

//go:embed proxy.sh
var script []byte

var (
	once       sync.Once
	resolved   string
	resolveErr error
)

// Resolve extracts the embedded qstat proxy script to a stable path
// under dir (created if necessary) and returns that path.
//
// Resolve is idempotent: the script is written at most once per
// process, and subsequent calls return the cached path regardless of
// dir.
func Resolve(dir string) (string, error) {
	once.Do(func() {
		if dir == "" {
			dir = os.TempDir()
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			resolveErr = err
			return
		}
		path := filepath.Join(dir, "qstat_proxy.sh")
		if err := os.WriteFile(path, script, 0o755); err != nil {
			resolveErr = err
			return
		}
		resolved = path
	})
	return resolved, resolveErr
}
