package retry_test

import (
	"testing"
	"time"

	"github.com/batchforge/torquedriver/internal/retry"
)

type fakeSleeper struct {
	slept []time.Duration
}

func (f *fakeSleeper) Sleep(d time.Duration) {
	f.slept = append(f.slept, d)
}

func TestLoopSucceedsFirstAttempt(t *testing.T) {
	sleeper := &fakeSleeper{}
	calls := 0
	result := retry.Loop(retry.DefaultSchedule(10*time.Second), sleeper,
		func(n int) int { calls++; return 0 },
		func(r int) bool { return r == 0 },
		retry.Hooks{},
	)
	if result != 0 || calls != 1 {
		t.Fatalf("got result=%d calls=%d, want result=0 calls=1", result, calls)
	}
	if len(sleeper.slept) != 0 {
		t.Fatalf("expected no sleeps on first-attempt success, got %v", sleeper.slept)
	}
}

func TestLoopRetriesThenSucceeds(t *testing.T) {
	sleeper := &fakeSleeper{}
	attempts := []int{1, 1, 0}
	n := 0
	result := retry.Loop(retry.DefaultSchedule(30*time.Second), sleeper,
		func(int) int { r := attempts[n]; n++; return r },
		func(r int) bool { return r == 0 },
		retry.Hooks{},
	)
	if result != 0 || n != 3 {
		t.Fatalf("got result=%d n=%d, want result=0 n=3", result, n)
	}
	// Two retries: base sleeps of 2s then 4s, each followed by a jitter sleep.
	if len(sleeper.slept) != 4 {
		t.Fatalf("got %d sleeps, want 4: %v", len(sleeper.slept), sleeper.slept)
	}
	if sleeper.slept[0] != 2*time.Second {
		t.Fatalf("first interval sleep = %v, want 2s", sleeper.slept[0])
	}
	if sleeper.slept[2] != 4*time.Second {
		t.Fatalf("second interval sleep = %v, want 4s", sleeper.slept[2])
	}
	for i, d := range sleeper.slept {
		if d < 0 || d > 4*time.Second+2*time.Second {
			t.Fatalf("sleep[%d] = %v looks out of range", i, d)
		}
	}
}

func TestLoopGivesUpWhenBudgetExhausted(t *testing.T) {
	sleeper := &fakeSleeper{}
	calls := 0
	gaveUp := false
	result := retry.Loop(retry.DefaultSchedule(1*time.Second), sleeper,
		func(int) int { calls++; return 1 },
		func(r int) bool { return r == 0 },
		retry.Hooks{OnGiveUp: func(attempt int, slept time.Duration) { gaveUp = true }},
	)
	if result != 1 {
		t.Fatalf("got %d, want 1 (last failed result)", result)
	}
	if calls != 1 {
		t.Fatalf("got %d calls, want 1 (2s interval exceeds 1s budget, no retry)", calls)
	}
	if !gaveUp {
		t.Fatal("expected OnGiveUp to be invoked")
	}
}

func TestLoopAlwaysAttemptsOnceRegardlessOfZeroTimeout(t *testing.T) {
	sleeper := &fakeSleeper{}
	calls := 0
	retry.Loop(retry.Schedule{InitialInterval: 2 * time.Second, Multiplier: 2, Timeout: 0}, sleeper,
		func(int) int { calls++; return 1 },
		func(r int) bool { return r == 0 },
		retry.Hooks{},
	)
	if calls != 1 {
		t.Fatalf("got %d calls, want exactly 1 even with zero timeout", calls)
	}
}

func TestLoopBackoffMonotonicity(t *testing.T) {
	sleeper := &fakeSleeper{}
	retry.Loop(retry.Schedule{InitialInterval: 1 * time.Second, Multiplier: 2, Timeout: 100 * time.Second, JitterMax: 0}, sleeper,
		func(int) int { return 1 },
		func(r int) bool { return false && r == 0 },
		retry.Hooks{},
	)
	var intervals []time.Duration
	for i := 0; i < len(sleeper.slept); i += 2 {
		intervals = append(intervals, sleeper.slept[i])
	}
	for i := 1; i < len(intervals); i++ {
		if intervals[i] <= intervals[i-1] {
			t.Fatalf("interval %d (%v) did not strictly increase over interval %d (%v)", i, intervals[i], i-1, intervals[i-1])
		}
	}
}
