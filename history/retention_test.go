package history_test

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/batchforge/torquedriver/history"
)

type mockStore struct {
	pruneCount atomic.Int64
}

func (m *mockStore) Record(context.Context, *history.Record) error { return nil }

func (m *mockStore) Recent(context.Context, string, int) ([]*history.Record, error) {
	return nil, nil
}

func (m *mockStore) Prune(context.Context, time.Time) (int64, error) {
	m.pruneCount.Add(1)
	return 0, nil
}

func (m *mockStore) Close() error { return nil }

func TestRetentionWorkerPrunesPeriodically(t *testing.T) {
	store := &mockStore{}
	w := history.NewRetentionWorker(store, history.RetentionConfig{
		Interval: 20 * time.Millisecond,
		KeepFor:  time.Hour,
	}, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := w.Stop(time.Second); err != nil {
		t.Fatal(err)
	}

	if store.pruneCount.Load() == 0 {
		t.Fatal("expected at least one prune")
	}
}

func TestRetentionWorkerLifecycleErrors(t *testing.T) {
	store := &mockStore{}
	w := history.NewRetentionWorker(store, history.RetentionConfig{
		Interval: time.Second,
		KeepFor:  time.Hour,
	}, slog.Default())

	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(ctx); err == nil {
		t.Fatal("expected ErrDoubleStarted")
	}
	if err := w.Stop(time.Second); err != nil {
		t.Fatal(err)
	}
	if err := w.Stop(time.Second); err == nil {
		t.Fatal("expected ErrDoubleStopped")
	}
}
