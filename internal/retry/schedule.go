// Package retry implements the generic bounded-retry primitive shared
// by the submission pipeline and the status/cancellation calls: run an
// attempt, and on failure back off exponentially with jitter until a
// timeout budget is exhausted.
package retry

import (
	"math/rand/v2"
	"time"
)

// Schedule is a pure value describing the backoff shape of a retry
// loop.
//
// InitialInterval is the delay before the first retry (2s in the
// default schedule). Multiplier is applied to the interval after each
// retry (x2 by default). Timeout is the total wall-clock budget, in
// seconds of accumulated sleep, that the loop may consume; it does not
// bound the very first attempt, which always runs. JitterMax is the
// upper bound of the uniform random delay added after each interval
// sleep, to desynchronize concurrent callers; the default is 2s.
type Schedule struct {
	InitialInterval time.Duration
	Multiplier      float64
	Timeout         time.Duration
	JitterMax       time.Duration
}

// DefaultSchedule returns the schedule mandated by the driver
// contract: a 2s initial interval doubling on each retry, jitter
// capped at 2s, and the given timeout budget.
func DefaultSchedule(timeout time.Duration) Schedule {
	return Schedule{
		InitialInterval: 2 * time.Second,
		Multiplier:      2,
		Timeout:         timeout,
		JitterMax:       2 * time.Second,
	}
}

func (s Schedule) jitter() time.Duration {
	if s.JitterMax <= 0 {
		return 0
	}
	return time.Duration(rand.Float64() * float64(s.JitterMax))
}
