package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rzbill/opsweep/pkg/log"
	"github.com/rzbill/opsweep/pkg/retry"
	"github.com/rzbill/opsweep/pkg/types"
)

// Default restart timing. The stop poll ceiling keeps a hung service from
// blocking the batch; the settle delay absorbs services whose reported
// state lags their actual readiness.
var (
	DefaultStopPolicy = retry.Policy{Interval: time.Second, MaxAttempts: 30}
	DefaultSettle     = 5 * time.Second
)

// Restarter drives services through stop -> wait -> start -> settle.
type Restarter struct {
	ctrl       Controller
	clock      retry.Clock
	stopPolicy retry.Policy
	settle     time.Duration
	logger     log.Logger
}

// RestarterOption configures a Restarter.
type RestarterOption func(*Restarter)

// WithClock overrides the wall clock, used by tests.
func WithClock(clock retry.Clock) RestarterOption {
	return func(r *Restarter) {
		r.clock = clock
	}
}

// WithStopPolicy overrides the stop poll policy.
func WithStopPolicy(policy retry.Policy) RestarterOption {
	return func(r *Restarter) {
		r.stopPolicy = policy
	}
}

// WithSettle overrides the unconditional post-start settle delay.
func WithSettle(settle time.Duration) RestarterOption {
	return func(r *Restarter) {
		r.settle = settle
	}
}

// WithLogger overrides the logger.
func WithLogger(logger log.Logger) RestarterOption {
	return func(r *Restarter) {
		r.logger = logger
	}
}

// NewRestarter creates a Restarter over the given controller.
func NewRestarter(ctrl Controller, options ...RestarterOption) *Restarter {
	r := &Restarter{
		ctrl:       ctrl,
		clock:      retry.RealClock{},
		stopPolicy: DefaultStopPolicy,
		settle:     DefaultSettle,
		logger:     log.GetDefaultLogger().WithComponent("restarter"),
	}

	for _, option := range options {
		option(r)
	}

	return r
}

// Restart drives one service through a full restart cycle and returns its
// final state. Exactly one start call is issued per invocation, and at most
// one stop call. An error is returned only when the cycle could not run at
// all (initial query failed, or stop/start was rejected); a stop poll that
// times out is logged and the cycle continues to the start phase.
func (r *Restarter) Restart(ctx context.Context, name string) (types.ServiceState, error) {
	logger := r.logger.With(log.Str("service", name))

	state, err := r.ctrl.Status(ctx, name)
	if err != nil {
		return types.ServiceStateUnknown, fmt.Errorf("restart aborted: %w", err)
	}
	logger.Info("restarting service", log.Str("state", state.String()))

	if state == types.ServiceStateRunning {
		if err := r.ctrl.Stop(ctx, name); err != nil {
			return types.ServiceStateUnknown, fmt.Errorf("restart aborted: %w", err)
		}

		err := retry.Poll(ctx, r.clock, r.stopPolicy, func() (bool, error) {
			current, err := r.ctrl.Status(ctx, name)
			if err != nil {
				return false, err
			}
			return current != types.ServiceStateRunning, nil
		})
		switch {
		case errors.Is(err, retry.ErrTimeout):
			// Start is still attempted; the final state query decides
			// whether this run is flagged.
			logger.Warn("service did not stop within the poll ceiling",
				log.Int("attempts", r.stopPolicy.MaxAttempts),
				log.Duration("interval", r.stopPolicy.Interval))
		case err != nil:
			return types.ServiceStateUnknown, fmt.Errorf("restart aborted: %w", err)
		}
	} else {
		logger.Debug("service not running, skipping stop phase")
	}

	if err := r.ctrl.Start(ctx, name); err != nil {
		return types.ServiceStateUnknown, fmt.Errorf("restart aborted: %w", err)
	}

	r.clock.Sleep(r.settle)

	final, err := r.ctrl.Status(ctx, name)
	if err != nil {
		logger.Warn("final state query failed", log.Err(err))
		return types.ServiceStateUnknown, nil
	}

	logger.Info("restart finished", log.Str("state", final.String()))
	return final, nil
}

// RestartAll restarts every named service in order. Failures are isolated
// per service; the batch always runs to the end of the list.
func (r *Restarter) RestartAll(ctx context.Context, names []string) *types.Report {
	report := types.NewReport(types.Commit)

	for _, name := range names {
		state, err := r.Restart(ctx, name)

		result := types.TargetResult{
			Target: name,
			Detail: state.String(),
		}
		switch {
		case err != nil:
			result.Outcome = types.OutcomeFailed
			result.Err = err
			r.logger.Error("service restart failed", log.Str("service", name), log.Err(err))
		case state == types.ServiceStateRunning:
			result.Outcome = types.OutcomeSuccess
		default:
			// Started but not (yet) running: flag it, don't fail the run.
			result.Outcome = types.OutcomeWarning
			r.logger.Warn("service is not running after restart",
				log.Str("service", name), log.Str("state", state.String()))
		}
		report.Add(result)
	}

	return report
}
