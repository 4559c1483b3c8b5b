package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopcheck/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("flaky")

func failing(calls *int, failures int, err error) func(context.Context) error {
	return func(context.Context) error {
		*calls++
		if *calls <= failures {
			return err
		}
		return nil
	}
}

func TestRun_SucceedsFirstTime(t *testing.T) {
	calls := 0
	err := Run(context.Background(), failing(&calls, 0, errFlaky), 3, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRun_RecoversWithinBudget(t *testing.T) {
	calls := 0
	err := Run(context.Background(), failing(&calls, 2, entity.Transient("click", errFlaky)), 2, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRun_ExhaustedReturnsOriginalError(t *testing.T) {
	calls := 0
	original := entity.Transient("read", errFlaky)

	err := Run(context.Background(), failing(&calls, 10, original), 3, time.Millisecond)
	assert.Same(t, original, err)
	assert.Equal(t, 4, calls)
}

func TestRun_ZeroAttemptsDoesNotWait(t *testing.T) {
	calls := 0
	start := time.Now()

	err := Run(context.Background(), failing(&calls, 1, errFlaky), 0, time.Hour)
	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRun_WaitsFixedDelay(t *testing.T) {
	calls := 0
	delay := 20 * time.Millisecond
	start := time.Now()

	err := Run(context.Background(), failing(&calls, 3, errFlaky), 3, delay)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 3*delay)
}

func TestRun_NotLoadedIsNeverRetried(t *testing.T) {
	calls := 0
	notLoaded := &entity.NotLoadedError{Page: entity.PageCart, Marker: ".cart_list"}

	err := Run(context.Background(), failing(&calls, 5, notLoaded), 5, time.Millisecond)
	assert.ErrorIs(t, err, entity.ErrNotLoaded)
	assert.Equal(t, 1, calls)
}

func TestRun_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	op := func(context.Context) error {
		calls++
		cancel()
		return errFlaky
	}

	err := Run(ctx, op, 5, time.Hour)
	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 1, calls)
}

func TestRun_DeadlineErrorsAreNotRetried(t *testing.T) {
	calls := 0
	err := Run(context.Background(), failing(&calls, 5, context.DeadlineExceeded), 5, time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, calls)
}

func TestRun_ManyAttempts(t *testing.T) {
	calls := 0
	err := Run(context.Background(), failing(&calls, 100000, errFlaky), 50000, 0)
	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 50001, calls)
}

func TestValue(t *testing.T) {
	calls := 0
	got, err := Value(context.Background(), func(context.Context) (int, error) {
		calls++
		if calls < 2 {
			return 0, errFlaky
		}
		return 42, nil
	}, 3, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestPolicy_Run(t *testing.T) {
	calls := 0
	p := Policy{Attempts: 1, Delay: time.Millisecond}
	err := p.Run(context.Background(), failing(&calls, 1, errFlaky))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
