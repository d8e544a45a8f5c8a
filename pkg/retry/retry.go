// Package retry provides retry with exponential backoff and jitter on top of
// github.com/sethvargo/go-retry. It is meant for process startup (waiting for
// the database); request handling never retries.
package retry

import (
	"context"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// Config holds retry configuration.
type Config struct {
	// MaxAttempts is the maximum number of attempts (including first attempt).
	MaxAttempts int

	// InitialDelay is the delay before the first retry; it doubles afterwards.
	InitialDelay time.Duration

	// MaxDelay caps a single delay.
	MaxDelay time.Duration

	// JitterPercent randomizes each delay by up to this many percent.
	JitterPercent uint64

	// RetryIf decides whether an error is worth another attempt.
	// If nil, every error is retried.
	RetryIf func(error) bool

	// OnRetry is called before each retry attempt.
	OnRetry func(attempt int, err error)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      30 * time.Second,
		JitterPercent: 10,
	}
}

// Option is a functional option for configuring retries.
type Option func(*Config)

// WithMaxAttempts sets the maximum number of attempts.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxAttempts = n
		}
	}
}

// WithInitialDelay sets the initial backoff delay.
func WithInitialDelay(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.InitialDelay = d
		}
	}
}

// WithMaxDelay sets the maximum backoff delay.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.MaxDelay = d
		}
	}
}

// WithJitter sets the jitter percentage (0 disables jitter).
func WithJitter(percent uint64) Option {
	return func(c *Config) {
		c.JitterPercent = percent
	}
}

// WithRetryIf sets the retry predicate.
func WithRetryIf(fn func(error) bool) Option {
	return func(c *Config) {
		c.RetryIf = fn
	}
}

// WithOnRetry sets the callback invoked before each retry.
func WithOnRetry(fn func(attempt int, err error)) Option {
	return func(c *Config) {
		c.OnRetry = fn
	}
}

// Retrier executes operations with retries.
type Retrier struct {
	config Config
}

// New creates a new Retrier with the given options.
func New(opts ...Option) *Retrier {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Retrier{config: config}
}

func (r *Retrier) backoff() goretry.Backoff {
	b := goretry.NewExponential(r.config.InitialDelay)
	if r.config.JitterPercent > 0 {
		b = goretry.WithJitterPercent(r.config.JitterPercent, b)
	}
	b = goretry.WithCappedDuration(r.config.MaxDelay, b)
	return goretry.WithMaxRetries(uint64(r.config.MaxAttempts-1), b)
}

// Do executes the operation until it succeeds, fails RetryIf, runs out of
// attempts or ctx is done. The last operation error is returned
// unwrapped.
func (r *Retrier) Do(ctx context.Context, operation func(ctx context.Context) error) error {
	attempt := 0
	return goretry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		attempt++
		err := operation(ctx)
		if err == nil {
			return nil
		}
		if r.config.RetryIf != nil && !r.config.RetryIf(err) {
			return err
		}
		if r.config.OnRetry != nil && attempt < r.config.MaxAttempts {
			r.config.OnRetry(attempt, err)
		}
		return goretry.RetryableError(err)
	})
}

// DoWithData is a helper for operations that return data.
func DoWithData[T any](ctx context.Context, operation func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	var result T
	err := New(opts...).Do(ctx, func(ctx context.Context) error {
		var opErr error
		result, opErr = operation(ctx)
		return opErr
	})
	return result, err
}

// DatabaseConnectOptions returns the backoff used while waiting on the
// database at startup.
func DatabaseConnectOptions(attempts int, onRetry func(attempt int, err error)) []Option {
	return []Option{
		WithMaxAttempts(attempts),
		WithInitialDelay(500 * time.Millisecond),
		WithMaxDelay(10 * time.Second),
		WithJitter(20),
		WithOnRetry(onRetry),
	}
}
