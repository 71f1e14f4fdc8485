package torquedriver

import (
	"context"

	"github.com/batchforge/torquedriver/history"
)

// recordHistory appends an audit record for a completed driver call.
// It is a no-op when no history.Store is attached, and failures are
// logged rather than propagated: the audit log never influences a
// Submit/Status/Kill outcome.
func (d *Driver) recordHistory(op history.Operation, jobID, status string, callErr error) {
	if d.history == nil {
		return
	}
	rec := &history.Record{
		Operation: op,
		JobID:     jobID,
		Status:    status,
	}
	if callErr != nil {
		rec.Error = callErr.Error()
	}
	if err := d.history.Record(context.Background(), rec); err != nil {
		d.log.Warn("could not write history record", "op", op, "job", jobID, "err", err)
	}
}
