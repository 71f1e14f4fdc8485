// Package torquedriver implements a batch-queue driver that mediates
// between a higher-level job-queue runtime and an external Torque/PBS
// cluster scheduler, invoking qsub/qstat/qdel as subprocesses.
//
// # Overview
//
// Driver owns the scheduler command paths, resource shape, and retry
// budget. Submit synthesizes a submission script and argv, invokes
// qsub under a bounded-retry loop, and returns a job.Handle carrying
// the scheduler-assigned job id. Status polls qstat -f through the
// same retry primitive and maps Torque's open-ended state vocabulary
// onto the fixed job.Status enumeration. Kill invokes qdel.
//
// # Concurrency
//
// A single Driver may be called concurrently from many goroutines,
// each handling a distinct job, once option configuration has
// finished. Driver does not serialize SetOption against in-flight
// Submit/Status/Kill calls; callers that mutate options after startup
// must synchronize that externally.
//
// # Debug Trace
//
// When the DEBUG_OUTPUT option is set, every retry decision, argv
// snapshot, and parse outcome is appended to the named file as a
// synchronously-flushed, microsecond-timestamped line, independent of
// the ambient slog-based operational logging.
package torquedriver

import (
	"log/slog"
	"time"

	"github.com/batchforge/torquedriver/fsutil"
	"github.com/batchforge/torquedriver/history"
	"github.com/batchforge/torquedriver/internal/debugtrace"
	"github.com/batchforge/torquedriver/internal/qstatproxy"
	"github.com/batchforge/torquedriver/spawn"
)

const (
	defaultQsubCmd      = "qsub"
	defaultQdelCmd      = "qdel"
	defaultQstatOptions = ""
)

// Driver owns the configuration needed to submit, observe, and cancel
// jobs on a Torque/PBS cluster via its CLI tools.
//
// Driver is created once via DriverNew, configured through SetOption
// before first use, and freed last via Free.
type Driver struct {
	queueName      string
	qsubCmd        string
	qstatCmd       string
	qstatOpts      string
	qdelCmd        string
	numNodes       int
	numCPUsPerNode int
	clusterLabel   string
	memoryPerJob   string
	jobPrefix      string
	keepOutput     bool
	submitSleep    time.Duration
	timeout        time.Duration
	debugPath      string

	trace   *debugtrace.Trace
	log     *slog.Logger
	spawner spawn.Spawner
	fs      fsutil.FS
	history history.Store
}

// Option configures a Driver at construction time. Most callers
// instead use SetOption/GetOption for runtime reconfiguration; Option
// is for wiring non-default collaborators (a fake Spawner/FS in tests,
// a non-default *slog.Logger).
type Option func(*Driver)

// WithLogger overrides the operational logger (default slog.Default()).
func WithLogger(log *slog.Logger) Option {
	return func(d *Driver) { d.log = log }
}

// WithSpawner overrides the process-spawning collaborator (default
// spawn.Exec, running real qsub/qstat/qdel).
func WithSpawner(s spawn.Spawner) Option {
	return func(d *Driver) { d.spawner = s }
}

// WithFS overrides the filesystem collaborator (default fsutil.OS).
func WithFS(fs fsutil.FS) Option {
	return func(d *Driver) { d.fs = fs }
}

// WithHistory attaches an audit log that Submit/Status/Kill append to
// on a best-effort basis. A nil store (the default) disables auditing
// entirely; auditing failures are logged and never affect the outcome
// of a driver call.
func WithHistory(store history.Store) Option {
	return func(d *Driver) { d.history = store }
}

// DriverNew creates a Driver with the documented defaults: one node,
// one CPU per node, qsub output discarded, no submit delay, no retry
// budget, and system qsub/qdel with a bundled qstat proxy script that
// passes its arguments and output straight through to the system qstat.
//
// qstatProxyDir controls where the embedded qstat proxy script is
// extracted to; an empty string uses the OS temp directory.
func DriverNew(qstatProxyDir string, opts ...Option) (*Driver, error) {
	qstatCmd, err := qstatproxy.Resolve(qstatProxyDir)
	if err != nil {
		return nil, err
	}
	d := &Driver{
		qsubCmd:        defaultQsubCmd,
		qstatCmd:       qstatCmd,
		qstatOpts:      defaultQstatOptions,
		qdelCmd:        defaultQdelCmd,
		numNodes:       1,
		numCPUsPerNode: 1,
		keepOutput:     false,
		submitSleep:    0,
		timeout:        0,
		log:            slog.Default(),
		spawner:        spawn.Exec{},
		fs:             fsutil.OS{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Free releases resources held by the driver, in particular closing
// any open Debug Trace stream. Free is provided for embeddings that
// lack automatic disposal; idiomatic Go callers may ignore it when the
// Driver is simply allowed to be garbage collected, but should call it
// if DEBUG_OUTPUT was ever set, to guarantee the trace is flushed.
func (d *Driver) Free() error {
	if d.trace == nil {
		return nil
	}
	return d.trace.Close()
}
