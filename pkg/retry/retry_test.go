package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollReturnsImmediatelyWhenDone(t *testing.T) {
	clock := NewFakeClock()
	calls := 0

	err := Poll(context.Background(), clock, Policy{Interval: time.Second, MaxAttempts: 30}, func() (bool, error) {
		calls++
		return true, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.Sleeps(), "no sleep before the first attempt or after success")
}

func TestPollStopsAtAttemptCeiling(t *testing.T) {
	clock := NewFakeClock()
	calls := 0

	err := Poll(context.Background(), clock, Policy{Interval: time.Second, MaxAttempts: 30}, func() (bool, error) {
		calls++
		return false, nil
	})

	require.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 30, calls)
	// No sleep after the final attempt
	assert.Len(t, clock.Sleeps(), 29)
}

func TestPollExitsEarlyMidLoop(t *testing.T) {
	clock := NewFakeClock()
	calls := 0

	err := Poll(context.Background(), clock, Policy{Interval: time.Second, MaxAttempts: 30}, func() (bool, error) {
		calls++
		return calls == 3, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, clock.Sleeps(), 2)
}

func TestPollPropagatesFnError(t *testing.T) {
	clock := NewFakeClock()
	boom := errors.New("boom")

	err := Poll(context.Background(), clock, Policy{Interval: time.Second, MaxAttempts: 5}, func() (bool, error) {
		return false, boom
	})

	require.ErrorIs(t, err, boom)
	assert.Empty(t, clock.Sleeps())
}

func TestPollHonorsContextCancellation(t *testing.T) {
	clock := NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Poll(ctx, clock, Policy{Interval: time.Second, MaxAttempts: 5}, func() (bool, error) {
		t.Fatal("fn must not run after cancellation")
		return false, nil
	})

	require.ErrorIs(t, err, context.Canceled)
}

func TestPollZeroAttemptsIsTimeout(t *testing.T) {
	err := Poll(context.Background(), NewFakeClock(), Policy{Interval: time.Second}, func() (bool, error) {
		return true, nil
	})
	require.ErrorIs(t, err, ErrTimeout)
}
