package torquedriver

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/batchforge/torquedriver/history"
	"github.com/batchforge/torquedriver/internal/retry"
	"github.com/batchforge/torquedriver/job"
)

type qstatOutcome struct {
	spawnOutcome
	stdoutSize int64
}

func (o qstatOutcome) ok() bool {
	return o.spawnOutcome.ok() && o.stdoutSize > 0
}

func (d *Driver) qstatArgv(idString string) []string {
	argv := make([]string, 0, 4+len(strings.Fields(d.qstatOpts)))
	argv = append(argv, d.qstatCmd, "-f")
	argv = append(argv, strings.Fields(d.qstatOpts)...)
	argv = append(argv, idString)
	return argv
}

// Status polls qstat -f for h under the bounded-retry schedule and
// maps its "job_state"/"Exit_status" attributes onto the fixed status
// enumeration.
//
// It never returns an error: job.Failure stands for "could not
// determine the state on this call" and callers must treat it as "no
// change", exactly as job.Failure's doc comment specifies. The capture
// files are removed on a successful parse and left on disk (path
// logged) when Status gives up, so a human can inspect what qstat
// actually produced.
func (d *Driver) Status(h *job.Handle) job.Status {
	stdoutPath, err := d.fs.TempFile(os.TempDir(), "torquedriver-qstat-stdout-")
	if err != nil {
		d.log.Error("could not allocate qstat stdout capture", "job", h.IDString, "err", err)
		return job.Failure
	}
	stderrPath, err := d.fs.TempFile(os.TempDir(), "torquedriver-qstat-stderr-")
	if err != nil {
		d.fs.Unlink(stdoutPath)
		d.log.Error("could not allocate qstat stderr capture", "job", h.IDString, "err", err)
		return job.Failure
	}

	argv := d.qstatArgv(h.IDString)
	d.trace.Printf("Querying status for job '%s': %s", h.IDString, joinArgv(argv))

	sched := retry.DefaultSchedule(d.timeout)
	result := retry.Loop(sched, retry.RealSleeper,
		func(int) qstatOutcome {
			status, err := d.spawner.Spawn(context.Background(), argv, stdoutPath, stderrPath)
			var size int64
			if info, statErr := os.Stat(stdoutPath); statErr == nil {
				size = info.Size()
			}
			return qstatOutcome{spawnOutcome: spawnOutcome{status: status, err: err}, stdoutSize: size}
		},
		qstatOutcome.ok,
		retry.Hooks{
			OnRetry: func(attempt int, slept, interval time.Duration) {
				d.trace.Printf("qstat failed for job '%s' (attempt %d), retrying in %s", h.IDString, attempt, interval)
			},
			OnGiveUp: func(attempt int, slept time.Duration) {
				d.trace.Printf("qstat failed for job '%s' after %d attempts, giving up", h.IDString, attempt)
			},
		},
	)

	if !result.ok() {
		d.traceSpawnOutcome("qstat", result.spawnOutcome)
		d.log.Warn("qstat did not succeed within the retry budget",
			"job", h.IDString, "stdout_path", stdoutPath, "stderr_path", stderrPath)
		d.recordHistory(history.OpStatus, h.IDString, job.Failure.String(), nil)
		return job.Failure
	}

	stdoutData, err := os.ReadFile(stdoutPath)
	if err != nil {
		d.log.Error("could not read qstat capture", "job", h.IDString, "err", err)
		d.recordHistory(history.OpStatus, h.IDString, job.Failure.String(), err)
		return job.Failure
	}

	status, ok := parseQstatOutput(stdoutData, h.IDString)
	if !ok {
		d.log.Warn("qstat output had no matching job_state for job",
			"job", h.IDString, "stdout_path", stdoutPath, "stderr_path", stderrPath)
		d.recordHistory(history.OpStatus, h.IDString, job.Failure.String(), nil)
		return job.Failure
	}

	d.fs.Unlink(stdoutPath)
	d.fs.Unlink(stderrPath)
	d.recordHistory(history.OpStatus, h.IDString, status.String(), nil)
	return status
}

// Kill invokes qdel under the bounded-retry schedule. It reports no
// result to the caller beyond the Debug Trace and operational log: a
// job that refuses to die cannot be distinguished, from here, from one
// that already finished.
func (d *Driver) Kill(h *job.Handle) {
	stdoutPath, err := d.fs.TempFile(os.TempDir(), "torquedriver-qdel-stdout-")
	if err != nil {
		d.log.Error("could not allocate qdel stdout capture", "job", h.IDString, "err", err)
		return
	}
	defer d.fs.Unlink(stdoutPath)

	stderrPath, err := d.fs.TempFile(os.TempDir(), "torquedriver-qdel-stderr-")
	if err != nil {
		d.fs.Unlink(stdoutPath)
		d.log.Error("could not allocate qdel stderr capture", "job", h.IDString, "err", err)
		return
	}
	defer d.fs.Unlink(stderrPath)

	argv := []string{d.qdelCmd, h.IDString}
	d.trace.Printf("Killing job '%s': %s", h.IDString, joinArgv(argv))

	sched := retry.DefaultSchedule(d.timeout)
	result := retry.Loop(sched, retry.RealSleeper,
		func(int) spawnOutcome {
			status, err := d.spawner.Spawn(context.Background(), argv, stdoutPath, stderrPath)
			return spawnOutcome{status: status, err: err}
		},
		spawnOutcome.ok,
		retry.Hooks{
			OnRetry: func(attempt int, slept, interval time.Duration) {
				d.trace.Printf("qdel failed for job '%s' (attempt %d), retrying in %s", h.IDString, attempt, interval)
			},
		},
	)

	if result.ok() {
		d.trace.Printf("qdel succeeded for job '%s'", h.IDString)
		d.recordHistory(history.OpKill, h.IDString, "", nil)
		return
	}

	stderrData, _ := os.ReadFile(stderrPath)
	d.traceSpawnOutcome("qdel", result)
	d.trace.Printf("qdel stderr for job '%s': %s", h.IDString, stderrData)
	d.log.Error("qdel did not succeed within the retry budget", "job", h.IDString, "stderr", string(stderrData))
	d.recordHistory(history.OpKill, h.IDString, "", ErrQdelFailed)
}
