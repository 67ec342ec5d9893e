package sync

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/daybook-app/daybook-sync/internal/client/netmon"
)

const (
	defaultRetryBase = 30 * time.Second
	defaultRetryCap  = 5 * time.Minute
)

// BackoffFactory builds a fresh retry schedule for one failure streak.
// The runner consults it after a pass left failed entries behind; a
// clean pass or a fresh preferred-connectivity edge resets the streak.
// A nil factory disables failure-driven retries entirely.
type BackoffFactory func() retry.Backoff

// DefaultBackoffFactory retries with exponential backoff starting at
// 30s and capped at 5m.
func DefaultBackoffFactory() retry.Backoff {
	return retry.WithCappedDuration(defaultRetryCap, retry.NewExponential(defaultRetryBase))
}

// ConstantBackoffFactory retries with a fixed delay.
func ConstantBackoffFactory(delay time.Duration) BackoffFactory {
	return func() retry.Backoff {
		return retry.NewConstant(delay)
	}
}

// Runner glues the network monitor to the orchestrator: it triggers a
// pass on every preferred-connectivity edge and schedules retry passes
// between failures. Retry scheduling lives here, never inside a pass.
type Runner struct {
	service Service
	monitor netmon.Monitor
	logger  *slog.Logger
	backoff BackoffFactory
}

// NewRunner creates the auto-sync runner. backoff may be nil to
// disable failure-driven retries.
func NewRunner(service Service, monitor netmon.Monitor, logger *slog.Logger, backoff BackoffFactory) *Runner {
	return &Runner{
		service: service,
		monitor: monitor,
		logger:  logger,
		backoff: backoff,
	}
}

// Run blocks until ctx is canceled or the monitor closes, triggering
// passes on preferred-connectivity edges and armed retries.
func (r *Runner) Run(ctx context.Context) error {
	var (
		// streak is the active backoff schedule, nil outside a streak.
		streak retry.Backoff
		retryC <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-r.monitor.Events():
			if !ok {
				return nil
			}
			if event.Current != netmon.ConnectedPreferred {
				r.logger.Debug("ignoring connectivity edge", "current", event.Current)
				continue
			}
			// A fresh preferred edge resets the failure streak.
			streak = nil
			retryC = nil
			r.triggerPass(ctx, &streak, &retryC)

		case <-retryC:
			retryC = nil
			r.triggerPass(ctx, &streak, &retryC)
		}
	}
}

// triggerPass runs one automatic pass when policy allows and arms the
// next retry if the pass left failures behind.
func (r *Runner) triggerPass(ctx context.Context, streak *retry.Backoff, retryC *<-chan time.Time) {
	if !r.service.AutoSyncEnabled() {
		r.logger.Debug("auto-sync disabled, skipping pass")
		return
	}

	status, err := r.service.CurrentStatus(ctx)
	if err != nil {
		r.logger.Warn("failed to read status before pass", "error", err)
		return
	}
	if status.TotalPending() == 0 {
		r.logger.Debug("queue empty, skipping pass")
		return
	}

	result, err := r.service.RunPass(ctx)
	if err != nil {
		if errors.Is(err, ErrPassInProgress) {
			// Documented no-op: the second trigger is dropped.
			r.logger.Debug("pass already in progress, trigger dropped")
		} else {
			r.logger.Warn("automatic pass failed", "error", err)
		}
		return
	}

	if result.Failed == 0 {
		*streak = nil
		return
	}

	if r.backoff == nil {
		return
	}
	if *streak == nil {
		*streak = r.backoff()
	}

	delay, stop := (*streak).Next()
	if stop {
		r.logger.Info("retry schedule exhausted, waiting for next connectivity edge")
		*streak = nil
		return
	}

	r.logger.Info("retry pass armed", "delay", delay, "failed", result.Failed)
	*retryC = time.After(delay)
}
