package torquedriver

import (
	"sync"

	"github.com/batchforge/torquedriver/job"
)

// StatusMany polls Status for every handle concurrently, with at most
// NUM_CPUS_PER_NODE qstat invocations in flight at once, and returns
// each job's outcome keyed by its IDString.
//
// A runtime tracking hundreds of in-flight jobs would otherwise pay
// qstat's retry budget serially, once per job; StatusMany lets it pay
// that cost in parallel instead, then waits for every handle to be
// observed before returning. A NUM_CPUS_PER_NODE <= 0 is treated as 1.
func (d *Driver) StatusMany(handles []*job.Handle) map[string]job.Status {
	results := make(map[string]job.Status, len(handles))
	if len(handles) == 0 {
		return results
	}

	concurrency := d.statusConcurrency()
	if concurrency > len(handles) {
		concurrency = len(handles)
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, concurrency)
	)
	for _, h := range handles {
		sem <- struct{}{}
		wg.Add(1)
		go func(h *job.Handle) {
			defer wg.Done()
			defer func() { <-sem }()
			status := d.Status(h)
			mu.Lock()
			results[h.IDString] = status
			mu.Unlock()
		}(h)
	}
	wg.Wait()

	return results
}

func (d *Driver) statusConcurrency() int {
	if d.numCPUsPerNode > 0 {
		return d.numCPUsPerNode
	}
	return 1
}
