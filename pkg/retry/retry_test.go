package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fast(attempts int) []Option {
	return []Option{
		WithMaxAttempts(attempts),
		WithInitialDelay(time.Millisecond),
		WithMaxDelay(2 * time.Millisecond),
		WithJitter(0),
	}
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	var retried []int

	opts := append(fast(5), WithOnRetry(func(attempt int, err error) { retried = append(retried, attempt) }))
	err := New(opts...).Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDo_StopsAfterMaxAttempts(t *testing.T) {
	cause := errors.New("db down")
	calls := 0

	err := New(fast(3)...).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return cause
	})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, calls)
}

func TestDo_RetryIf(t *testing.T) {
	fatal := errors.New("fatal")
	calls := 0
	err := New(append(fast(5), WithRetryIf(func(err error) bool { return !errors.Is(err, fatal) }))...).
		Do(context.Background(), func(ctx context.Context) error {
			calls++
			return fatal
		})

	assert.Equal(t, fatal, err)
	assert.Equal(t, 1, calls)
}

func TestDoWithData(t *testing.T) {
	calls := 0
	v, err := DoWithData(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("flaky")
		}
		return "ok", nil
	}, fast(3)...)

	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
}

func TestDoWithData_ReturnsLastError(t *testing.T) {
	cause := errors.New("db down")
	v, err := DoWithData(context.Background(), func(ctx context.Context) (*int, error) {
		return nil, cause
	}, fast(2)...)

	assert.ErrorIs(t, err, cause)
	assert.Nil(t, v)
}

func TestDatabaseConnectOptions(t *testing.T) {
	var cfg Config
	for _, opt := range DatabaseConnectOptions(7, func(int, error) {}) {
		opt(&cfg)
	}

	assert.Equal(t, 7, cfg.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 10*time.Second, cfg.MaxDelay)
	assert.Equal(t, uint64(20), cfg.JitterPercent)
	assert.NotNil(t, cfg.OnRetry)
	assert.Nil(t, cfg.RetryIf)
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(fast(3)...).Do(ctx, func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
