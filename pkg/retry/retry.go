// Package retry provides a bounded-wait poll primitive used to detect
// state transitions without blocking indefinitely.
package retry

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned when the attempt ceiling is reached before the
// condition holds.
var ErrTimeout = errors.New("retry: attempt ceiling reached")

// Policy bounds a poll loop.
type Policy struct {
	// Interval between attempts
	Interval time.Duration

	// MaxAttempts is the attempt ceiling; the loop never exceeds it
	MaxAttempts int
}

// Clock abstracts time so tests can run poll loops without real elapsed
// time.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock is the wall-clock implementation of Clock.
type RealClock struct{}

func (RealClock) Now() time.Time        { return time.Now() }
func (RealClock) Sleep(d time.Duration) { time.Sleep(d) }

// Poll calls fn until it reports done, fn fails, the context is cancelled,
// or the policy's attempt ceiling is reached. The clock sleeps one interval
// between attempts but not after the last one.
func Poll(ctx context.Context, clock Clock, policy Policy, fn func() (bool, error)) error {
	if policy.MaxAttempts <= 0 {
		return ErrTimeout
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		done, err := fn()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if attempt >= policy.MaxAttempts {
			return ErrTimeout
		}

		clock.Sleep(policy.Interval)
	}
}
