package torquedriver

import (
	"fmt"
	"testing"

	"github.com/batchforge/torquedriver/job"
)

func TestStatusManyReturnsEmptyMapForNoHandles(t *testing.T) {
	d := newTestDriver(t, &fakeSpawner{script: []scriptedResponse{{status: exitStatus(0)}}})

	got := d.StatusMany(nil)
	if len(got) != 0 {
		t.Fatalf("got %v, want empty map", got)
	}
}

func TestStatusManyObservesEveryHandle(t *testing.T) {
	// Each job id gets its own "Job Id:" block with a distinct state,
	// and every qstat invocation in the script sees the full output
	// regardless of which handle it was asked about.
	stdout := "Job Id: 1.cluster\n    job_state = R\n" +
		"Job Id: 2.cluster\n    job_state = Q\n" +
		"Job Id: 3.cluster\n    job_state = C\n"
	spawner := &fakeSpawner{script: []scriptedResponse{
		{status: exitStatus(0), stdout: stdout},
	}}
	d := newTestDriver(t, spawner)

	handles := []*job.Handle{job.New(1), job.New(2), job.New(3)}
	got := d.StatusMany(handles)

	want := map[string]job.Status{"1": job.Running, "2": job.Pending, "3": job.Done}
	for id, status := range want {
		if got[id] != status {
			t.Errorf("job %s: got %v, want %v", id, got[id], status)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
}

func TestStatusManyWithCPUsPerNodeBoundReportsEveryHandle(t *testing.T) {
	spawner := &fakeSpawner{script: []scriptedResponse{{status: exitStatus(0), stdout: "x\n"}}}
	d := newTestDriver(t, spawner)
	d.SetOption(OptNumCPUsPerNode, "2")

	handles := make([]*job.Handle, 10)
	for i := range handles {
		handles[i] = job.New(int64(i + 1))
	}

	got := d.StatusMany(handles)
	if len(got) != len(handles) {
		t.Fatalf("got %d results, want %d", len(got), len(handles))
	}
	for i := range handles {
		id := fmt.Sprintf("%d", i+1)
		if got[id] != job.Failure {
			// "x\n" has no Job Id: line, so every lookup fails to parse;
			// the point of this test is that every handle is still
			// represented in the result map, not the parsed value.
			t.Fatalf("job %s: got %v, want Failure (unparseable fixture)", id, got[id])
		}
	}
}
