// Package retry re-runs idempotent UI operations that failed because the
// remote page was still settling.
package retry

import (
	"context"
	"errors"
	"time"

	"shopcheck/internal/domain/entity"
)

// Policy is a fixed-delay retry budget. Attempts counts the retries that
// follow the first call.
type Policy struct {
	Attempts int
	Delay    time.Duration
}

// Run calls op until it succeeds or maxAttempts retries are used up, sleeping
// delay between calls. The last failure is returned unchanged. Missing page
// markers and context errors end the loop immediately.
func Run(ctx context.Context, op func(ctx context.Context) error, maxAttempts int, delay time.Duration) error {
	remaining := maxAttempts
	for {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if remaining <= 0 || !retryable(ctx, err) {
			return err
		}
		remaining--

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}

// Value is Run for operations that produce a result.
func Value[T any](ctx context.Context, op func(ctx context.Context) (T, error), maxAttempts int, delay time.Duration) (T, error) {
	var result T
	err := Run(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	}, maxAttempts, delay)
	return result, err
}

func (p Policy) Run(ctx context.Context, op func(ctx context.Context) error) error {
	return Run(ctx, op, p.Attempts, p.Delay)
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, entity.ErrNotLoaded) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
