package torquedriver

import "errors"

var (
	// ErrCapacityExceeded is returned by Submit when the requested
	// num_cpu exceeds num_cpus_per_node * num_nodes. No spawn is
	// attempted.
	ErrCapacityExceeded = errors.New("torquedriver: requested cpus exceed driver capacity")

	// ErrNoHandle is returned by Submit when qsub's stdout from its last
	// attempt, whether that attempt succeeded or the retry budget ran
	// out, could not be parsed into a positive job id. It corresponds to
	// "no handle" in the driver contract.
	ErrNoHandle = errors.New("torquedriver: submit failed, no job handle")

	// ErrQdelFailed records, in the history audit log only, that qdel
	// did not succeed within the retry budget. Kill itself never
	// returns an error; see Kill's doc comment.
	ErrQdelFailed = errors.New("torquedriver: qdel did not succeed within the retry budget")
)
