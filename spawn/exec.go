package spawn

import (
	"context"
	"os"
	"os/exec"
	"syscall"
)

// Exec is the production Spawner, backed by os/exec.
type Exec struct{}

// Spawn runs argv[0] with argv[1:] as arguments, blocking until it
// exits. Standard output and standard error are (re)created at
// stdoutPath/stderrPath and truncated if they already exist.
func (Exec) Spawn(ctx context.Context, argv []string, stdoutPath, stderrPath string) (Status, error) {
	outFile, err := os.Create(stdoutPath)
	if err != nil {
		return Status{}, err
	}
	defer outFile.Close()

	errFile, err := os.Create(stderrPath)
	if err != nil {
		return Status{}, err
	}
	defer errFile.Close()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = outFile
	cmd.Stderr = errFile

	runErr := cmd.Run()
	state := cmd.ProcessState
	if state == nil {
		// The process never started (e.g. binary not found); this is a
		// genuine Spawn error, not a reportable exit status.
		return Status{}, runErr
	}
	// A non-zero exit is conveyed through Status, not the error return;
	// *exec.ExitError here is redundant with ProcessState.
	return decode(state), nil
}

func decode(state *os.ProcessState) Status {
	sys, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		// Platform without POSIX wait status (e.g. non-unix); fall back
		// to the exit code alone.
		return Status{Exited: true, ExitCode: state.ExitCode()}
	}
	switch {
	case sys.Exited():
		return Status{Exited: true, ExitCode: sys.ExitStatus()}
	case sys.Signaled():
		return Status{Signaled: true, Signal: int(sys.Signal())}
	case sys.Stopped():
		return Status{Stopped: true, StopSignal: int(sys.StopSignal())}
	case sys.Continued():
		return Status{Continued: true}
	default:
		return Status{ExitCode: state.ExitCode()}
	}
}
