package torquedriver

import (
	"strconv"
	"strings"

	"github.com/batchforge/torquedriver/job"
)

// parseQstatOutput implements qstat -f's job-id-context tracking: each
// "Job Id: <id>[.<server>]" line opens a new context, and only
// "job_state"/"Exit_status" lines seen while that context's namespace
// matches idString are applied. A single qstat -f invocation can in
// principle echo more than one job block, hence the context tracking.
//
// The boolean result is false if no matching job_state line was ever
// seen for idString, or if the last one seen carried an unrecognized
// state code, meaning the caller should treat this as a parse failure
// rather than a legitimate terminal state.
func parseQstatOutput(output []byte, idString string) (job.Status, bool) {
	var context string
	var state job.Status
	var exitStatus int
	var hasExitStatus, matched bool

	for _, raw := range strings.Split(string(output), "\n") {
		line := strings.TrimSpace(raw)
		if rest, ok := cutPrefix(line, "Job Id:"); ok {
			context = job.Namespace(strings.TrimSpace(rest))
			continue
		}
		if context != idString {
			continue
		}
		key, value, ok := splitAssignment(line)
		if !ok {
			continue
		}
		switch key {
		case "job_state":
			matched = true
			state = qstatStateToStatus(value)
		case "Exit_status":
			if n, err := strconv.Atoi(value); err == nil {
				exitStatus = n
				hasExitStatus = true
			}
		}
	}

	if !matched || state == job.Unknown {
		return job.Unknown, false
	}
	if hasExitStatus && exitStatus != 0 {
		return job.Exit, true
	}
	return state, true
}

// qstatStateToStatus maps the single-character PBS job_state code onto
// the driver's fixed status enumeration: R (running) to Running; E
// (exiting after run), F (finished, -x/-H mode) and C (completed) to
// Done; H (held) and Q (queued/eligible) to Pending; subject to the
// Exit_status override applied by the caller. Any other code is
// unrecognized vendor vocabulary and maps to Unknown, which the caller
// turns into Failure ("could not determine").
func qstatStateToStatus(code string) job.Status {
	if code == "" {
		return job.Unknown
	}
	switch code[0] {
	case 'Q', 'H':
		return job.Pending
	case 'R':
		return job.Running
	case 'E', 'F', 'C':
		return job.Done
	default:
		return job.Unknown
	}
}

func cutPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}
	return s[len(prefix):], true
}

// splitAssignment splits a qstat -f attribute line of the form
// "key = value" (arbitrary surrounding whitespace) into its two parts.
func splitAssignment(line string) (key, value string, ok bool) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}
