package torquedriver

import (
	"strconv"
	"strings"
	"time"

	"github.com/batchforge/torquedriver/internal/debugtrace"
)

// Option keys recognized by SetOption/GetOption. This is a closed set;
// any other key is rejected.
const (
	OptQsubCmd           = "QSUB_CMD"
	OptQstatCmd          = "QSTAT_CMD"
	OptQstatOptions      = "QSTAT_OPTIONS"
	OptQdelCmd           = "QDEL_CMD"
	OptQueue             = "QUEUE"
	OptNumCPUsPerNode    = "NUM_CPUS_PER_NODE"
	OptNumNodes          = "NUM_NODES"
	OptKeepQsubOutput    = "KEEP_QSUB_OUTPUT"
	OptClusterLabel      = "CLUSTER_LABEL"
	OptJobPrefix         = "JOB_PREFIX"
	OptMemoryPerJob      = "MEMORY_PER_JOB"
	OptSubmitSleep       = "SUBMIT_SLEEP"
	OptDebugOutput       = "DEBUG_OUTPUT"
	OptQueueQueryTimeout = "QUEUE_QUERY_TIMEOUT"
)

// SetOption assigns the named option.
//
// It returns false, leaving the driver unchanged, if key is not a
// recognized option or if value fails to parse according to that
// option's type. Recognized string options always succeed.
func (d *Driver) SetOption(key, value string) bool {
	switch key {
	case OptQsubCmd:
		d.qsubCmd = value
	case OptQstatCmd:
		d.qstatCmd = value
	case OptQstatOptions:
		d.qstatOpts = value
	case OptQdelCmd:
		d.qdelCmd = value
	case OptQueue:
		d.queueName = value
	case OptNumCPUsPerNode:
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		d.numCPUsPerNode = n
	case OptNumNodes:
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		d.numNodes = n
	case OptKeepQsubOutput:
		b, ok := parseBool(value)
		if !ok {
			return false
		}
		d.keepOutput = b
	case OptClusterLabel:
		d.clusterLabel = value
	case OptJobPrefix:
		d.jobPrefix = value
	case OptMemoryPerJob:
		d.memoryPerJob = value
	case OptSubmitSleep:
		seconds, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		d.submitSleep = time.Duration(seconds * float64(time.Second))
	case OptDebugOutput:
		d.setDebugOutput(value)
	case OptQueueQueryTimeout:
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		if n < 0 {
			n = 0
		}
		d.timeout = time.Duration(n) * time.Second
	default:
		return false
	}
	return true
}

// GetOption returns the current value of the named option, and
// whether that option is both recognized and currently set.
//
// Numeric options are formatted from their parsed representation on
// read rather than preserved verbatim (no "_char" shadow field); this
// round-trips canonical decimal input but may reformat unusual input
// such as leading zeros.
func (d *Driver) GetOption(key string) (string, bool) {
	switch key {
	case OptQsubCmd:
		return d.qsubCmd, d.qsubCmd != ""
	case OptQstatCmd:
		return d.qstatCmd, d.qstatCmd != ""
	case OptQstatOptions:
		return d.qstatOpts, d.qstatOpts != ""
	case OptQdelCmd:
		return d.qdelCmd, d.qdelCmd != ""
	case OptQueue:
		return d.queueName, d.queueName != ""
	case OptNumCPUsPerNode:
		return strconv.Itoa(d.numCPUsPerNode), true
	case OptNumNodes:
		return strconv.Itoa(d.numNodes), true
	case OptKeepQsubOutput:
		if d.keepOutput {
			return "1", true
		}
		return "0", true
	case OptClusterLabel:
		return d.clusterLabel, d.clusterLabel != ""
	case OptJobPrefix:
		return d.jobPrefix, d.jobPrefix != ""
	case OptMemoryPerJob:
		return d.memoryPerJob, d.memoryPerJob != ""
	case OptSubmitSleep:
		return strconv.FormatFloat(d.submitSleep.Seconds(), 'f', -1, 64), true
	case OptDebugOutput:
		return d.debugPath, d.debugPath != ""
	case OptQueueQueryTimeout:
		return strconv.FormatFloat(d.timeout.Seconds(), 'f', -1, 64), true
	default:
		return "", false
	}
}

func (d *Driver) setDebugOutput(path string) {
	if d.trace != nil {
		_ = d.trace.Close()
		d.trace = nil
	}
	d.debugPath = ""
	if path == "" {
		return
	}
	trace, err := debugtrace.Open(path)
	if err != nil {
		return
	}
	d.trace = trace
	d.debugPath = path
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, true
	case "0", "false", "f", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
