// Package debugtrace implements the driver's optional Debug Trace: a
// synchronously-flushed stream of UTC, microsecond-precision log lines,
// independent of the ambient slog logger used for operational events.
package debugtrace

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Trace is a synchronized sink for Debug Trace lines.
//
// A nil *Trace is valid and every method on it is a no-op; this lets
// Driver hold a *Trace field unconditionally and skip nil checks at
// call sites beyond the top of each method.
type Trace struct {
	mu   sync.Mutex
	file *os.File
}

// Open creates (or truncates) the debug file at path, creating any
// missing parent directories. Directory-creation errors are ignored
// (the directory may already exist); only an error opening the file
// itself is returned.
func Open(path string) (*Trace, error) {
	if path == "" {
		return nil, nil
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Trace{file: f}, nil
}

// Close closes the underlying file, if any. Close on a nil *Trace is a
// no-op.
func (t *Trace) Close() error {
	if t == nil || t.file == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.file.Close()
	t.file = nil
	return err
}

// Printf writes one trace line in the form
//
//	<UTC ISO-8601 with microseconds, suffix "Z"> <message>\n
//
// followed by fsync and flush. Printf on a nil *Trace, or one with no
// open file, is a no-op.
func (t *Trace) Printf(format string, args ...any) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.file == nil {
		return
	}
	ts := time.Now().UTC().Format("2006-01-02T15:04:05.000000") + "Z"
	fmt.Fprintf(t.file, "%s %s\n", ts, fmt.Sprintf(format, args...))
	_ = t.file.Sync()
}
