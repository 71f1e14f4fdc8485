package torquedriver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/batchforge/torquedriver/history"
	"github.com/batchforge/torquedriver/internal/retry"
	"github.com/batchforge/torquedriver/job"
	"github.com/batchforge/torquedriver/spawn"
)

type spawnOutcome struct {
	status spawn.Status
	err    error
}

func (o spawnOutcome) ok() bool {
	return o.err == nil && o.status.Success()
}

// Submit synthesizes a submission script and qsub invocation for
// jobArgs, runs qsub under the bounded-retry schedule, and returns a
// job.Handle carrying the scheduler-assigned job id.
//
// numCPU is validated against the driver's configured capacity
// (num_cpus_per_node * num_nodes) before any subprocess is spawned; a
// job that cannot possibly fit never touches qsub.
//
// The submission script is written to <runPath>/qsub_script.sh and,
// unless KEEP_QSUB_OUTPUT is set, removed again once qsub has returned
// (successfully or not) — only the stdout/stderr capture files qsub
// itself produced are always removed, independent of that option.
func (d *Driver) Submit(submitCmd string, numCPU int, runPath, jobName string, jobArgs []string) (*job.Handle, error) {
	if d.submitSleep > 0 {
		time.Sleep(d.submitSleep)
	}

	stdoutPath, err := d.fs.TempFile(os.TempDir(), "torquedriver-submit-stdout-")
	if err != nil {
		return nil, fmt.Errorf("torquedriver: allocate submit stdout capture: %w", err)
	}
	defer d.fs.Unlink(stdoutPath)

	stderrPath, err := d.fs.TempFile(os.TempDir(), "torquedriver-submit-stderr-")
	if err != nil {
		return nil, fmt.Errorf("torquedriver: allocate submit stderr capture: %w", err)
	}
	defer d.fs.Unlink(stderrPath)

	scriptPath := filepath.Join(runPath, "qsub_script.sh")
	d.trace.Printf("Writing submit script '%s' for command '%s'", scriptPath, submitCmd)
	if err := writeSubmitScript(scriptPath, submitCmd, jobArgs); err != nil {
		return nil, fmt.Errorf("torquedriver: write submit script: %w", err)
	}
	if !d.keepOutput {
		defer d.fs.Unlink(scriptPath)
	}

	if capacity := d.numCPUsPerNode * d.numNodes; numCPU > capacity {
		err := fmt.Errorf("%w: %s", ErrCapacityExceeded, formatCapacityError(numCPU, d.numCPUsPerNode, d.numNodes))
		d.recordHistory(history.OpSubmit, "", "", err)
		return nil, err
	}

	name := effectiveJobName(d.jobPrefix, jobName)
	argv := d.buildQsubArgv(name, scriptPath)
	d.trace.Printf("Submitting job '%s': %s", name, joinArgv(argv))

	sched := retry.DefaultSchedule(d.timeout)
	result := retry.Loop(sched, retry.RealSleeper,
		func(int) spawnOutcome {
			status, err := d.spawner.Spawn(context.Background(), argv, stdoutPath, stderrPath)
			return spawnOutcome{status: status, err: err}
		},
		spawnOutcome.ok,
		retry.Hooks{
			OnRetry: func(attempt int, slept, interval time.Duration) {
				d.trace.Printf("qsub failed for job '%s' (attempt %d), retrying in %s", name, attempt, interval)
				d.log.Warn("qsub attempt failed, retrying", "job", name, "attempt", attempt)
			},
			OnGiveUp: func(attempt int, slept time.Duration) {
				d.trace.Printf("qsub failed for job '%s' after %d attempts, giving up", name, attempt)
				d.log.Error("qsub exhausted retry budget", "job", name, "attempts", attempt)
			},
		},
	)

	if !result.ok() {
		d.traceSpawnOutcome("qsub", result)
	}

	stdoutData, _ := os.ReadFile(stdoutPath)
	id, ok := ParseQsubStdout(stdoutData)
	if !ok {
		d.trace.Printf("Could not parse job id from qsub stdout for job '%s': %q", name, stdoutData)
		stderrData, _ := os.ReadFile(stderrPath)
		d.log.Error("could not parse torque job id from qsub output",
			"job", name,
			"argv", joinArgv(argv),
			"stdout", string(stdoutData),
			"stderr", string(stderrData),
		)
		d.recordHistory(history.OpSubmit, name, "", ErrNoHandle)
		return nil, ErrNoHandle
	}

	d.trace.Printf("Parsed job id %d from qsub stdout for job '%s'", id, name)
	handle := job.New(id)
	d.recordHistory(history.OpSubmit, handle.IDString, job.Pending.String(), nil)
	return handle, nil
}

func (d *Driver) traceSpawnOutcome(verb string, o spawnOutcome) {
	switch {
	case o.err != nil:
		d.trace.Printf("%s could not be spawned: %v", verb, o.err)
	case o.status.Exited:
		d.trace.Printf("%s exited with code %d", verb, o.status.ExitCode)
	case o.status.Signaled:
		d.trace.Printf("%s was killed by signal %d", verb, o.status.Signal)
	case o.status.Stopped:
		d.trace.Printf("%s was stopped by signal %d", verb, o.status.StopSignal)
	case o.status.Continued:
		d.trace.Printf("%s was continued", verb)
	default:
		d.trace.Printf("%s finished with an unexpected status", verb)
	}
}
