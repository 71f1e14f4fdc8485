package torquedriver

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// BuildResourceString synthesizes the -l argument to qsub: a
// colon-separated resource request with the cluster label and memory
// fragments present iff the corresponding input is non-empty.
//
//	nodes=<N>[:<cluster_label>]:ppn=<C>[:mem=<M>]
func BuildResourceString(numNodes int, clusterLabel string, numCPUsPerNode int, memoryPerJob string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "nodes=%d", numNodes)
	if clusterLabel != "" {
		b.WriteString(":")
		b.WriteString(clusterLabel)
	}
	fmt.Fprintf(&b, ":ppn=%d", numCPUsPerNode)
	if memoryPerJob != "" {
		b.WriteString(":mem=")
		b.WriteString(memoryPerJob)
	}
	return b.String()
}

// buildQsubArgv builds the ordered qsub argument vector: qsub_cmd,
// "-k oe" iff output is not kept, "-l <resource string>", "-q <queue>"
// iff a queue is set, "-N <job_name>" iff jobName is non-empty, the
// fixed "-r n" (non-rerunnable), and finally the submit script path.
func (d *Driver) buildQsubArgv(jobName, submitScriptPath string) []string {
	argv := make([]string, 0, 12)
	argv = append(argv, d.qsubCmd)
	if !d.keepOutput {
		argv = append(argv, "-k", "oe")
	}
	argv = append(argv, "-l", BuildResourceString(d.numNodes, d.clusterLabel, d.numCPUsPerNode, d.memoryPerJob))
	if d.queueName != "" {
		argv = append(argv, "-q", d.queueName)
	}
	if jobName != "" {
		argv = append(argv, "-N", jobName)
	}
	argv = append(argv, "-r", "n")
	argv = append(argv, submitScriptPath)
	return argv
}

// writeSubmitScript writes a shell wrapper at scriptPath that runs
// submitCmd followed by jobArgs, space-joined. No quoting is applied
// to jobArgs: an argument containing whitespace will be split into
// multiple words by the shell. Callers that need whitespace-safe
// arguments must pre-quote them before calling Submit.
func writeSubmitScript(scriptPath, submitCmd string, jobArgs []string) error {
	if submitCmd == "" {
		panic("torquedriver: cannot create submit script with an empty submit command")
	}
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString(submitCmd)
	for _, arg := range jobArgs {
		b.WriteString(" ")
		b.WriteString(arg)
	}
	b.WriteString("\n")
	return os.WriteFile(scriptPath, []byte(b.String()), 0o755)
}

func joinArgv(argv []string) string {
	return strings.Join(argv, " ")
}

func effectiveJobName(prefix, jobName string) string {
	if prefix != "" {
		return prefix + jobName
	}
	return jobName
}

func formatCapacityError(numCPU, numCPUsPerNode, numNodes int) string {
	return fmt.Sprintf(
		"job requires %d processing units, but driver config (NUM_CPUS_PER_NODE=%s, NUM_NODES=%s) only provides %d",
		numCPU, strconv.Itoa(numCPUsPerNode), strconv.Itoa(numNodes), numCPUsPerNode*numNodes,
	)
}
