package retry

import "time"

// Sleeper abstracts the passage of time so that tests can run a retry
// loop without actually waiting. RealSleeper is the production
// implementation, backed by time.Sleep.
type Sleeper interface {
	Sleep(d time.Duration)
}

type realSleeper struct{}

func (realSleeper) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// RealSleeper is the Sleeper used outside of tests.
var RealSleeper Sleeper = realSleeper{}

// Hooks lets callers observe retry decisions for diagnostics (the
// Debug Trace) without coupling this package to any particular log
// sink.
type Hooks struct {
	// OnRetry is called just before sleeping ahead of attempt n+1,
	// after attempt n failed and the timeout budget still allows it.
	OnRetry func(attempt int, slept, interval time.Duration)

	// OnGiveUp is called when the timeout budget is exhausted and the
	// loop returns the last (failed) result without retrying further.
	OnGiveUp func(attempt int, slept time.Duration)

	// OnSuccess is called when an attempt satisfies the success
	// predicate, including on the very first attempt.
	OnSuccess func(attempt int, slept time.Duration)
}

// Loop runs attempt repeatedly until success reports true on its
// result, or the schedule's timeout budget is exhausted.
//
// The first attempt always runs regardless of Timeout. Between
// attempts, Loop sleeps the current interval plus a uniform random
// jitter (via sleeper), then doubles the interval per Multiplier.
// Loop returns the result of the last attempt made, whether or not it
// satisfied success.
func Loop[T any](sched Schedule, sleeper Sleeper, attempt func(n int) T, success func(T) bool, hooks Hooks) T {
	interval := sched.InitialInterval
	var slept time.Duration
	n := 0
	for {
		n++
		result := attempt(n)
		if success(result) {
			if hooks.OnSuccess != nil {
				hooks.OnSuccess(n, slept)
			}
			return result
		}
		if slept+interval <= sched.Timeout {
			if hooks.OnRetry != nil {
				hooks.OnRetry(n, slept, interval)
			}
			sleeper.Sleep(interval)
			sleeper.Sleep(sched.jitter())
			slept += interval
			interval = time.Duration(float64(interval) * sched.Multiplier)
			continue
		}
		if hooks.OnGiveUp != nil {
			hooks.OnGiveUp(n, slept)
		}
		return result
	}
}
