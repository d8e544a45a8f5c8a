// Package circuitbreaker wraps github.com/sony/gobreaker with a
// context-aware Execute and the presets used by the service. It lets the
// service stop calling an optional backend (the Redis group cache) while it
// is failing and fall back to the primary path instead.
package circuitbreaker

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// State is the breaker state: closed, half-open or open.
type State = gobreaker.State

const (
	StateClosed   = gobreaker.StateClosed
	StateHalfOpen = gobreaker.StateHalfOpen
	StateOpen     = gobreaker.StateOpen
)

var (
	// ErrCircuitOpen is returned when the circuit is open.
	ErrCircuitOpen = gobreaker.ErrOpenState
	// ErrTooManyRequests is returned when the half-open request budget is spent.
	ErrTooManyRequests = gobreaker.ErrTooManyRequests
)

// Config holds circuit breaker configuration.
type Config struct {
	Name string

	// FailureThreshold - подряд идущих ошибок до размыкания.
	FailureThreshold uint32

	// Timeout is how long the circuit stays open before probing again.
	Timeout time.Duration

	// MaxHalfOpenRequests - пробных запросов в half-open; столько же
	// успехов подряд замыкает цепь.
	MaxHalfOpenRequests uint32

	// IsFailure decides whether an error counts. Nil counts every error.
	IsFailure func(error) bool

	OnStateChange func(name string, from, to State)
}

// CircuitBreaker guards calls to one backend.
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
}

// New creates a breaker from cfg. Zero thresholds fall back to 1.
func New(cfg Config) *CircuitBreaker {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 1
	}
	isFailure := cfg.IsFailure

	return &CircuitBreaker{cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxHalfOpenRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			return isFailure != nil && !isFailure(err)
		},
		OnStateChange: cfg.OnStateChange,
	})}
}

// Execute runs fn if the circuit allows it and records the outcome.
func (b *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn(ctx)
	})
	return err
}

// State returns the current state of the circuit breaker.
func (b *CircuitBreaker) State() State {
	return b.cb.State()
}

// Name returns the name of the circuit breaker.
func (b *CircuitBreaker) Name() string {
	return b.cb.Name()
}

// IsRejection reports whether err came from the breaker itself.
func IsRejection(err error) bool {
	return errors.Is(err, ErrCircuitOpen) || errors.Is(err, ErrTooManyRequests)
}

// CacheBreaker returns a breaker tuned for an optional cache backend:
// it trips after 3 consecutive failures and lets a trial request through after 15s.
func CacheBreaker(isFailure func(error) bool, onStateChange func(name string, from, to State)) *CircuitBreaker {
	return New(Config{
		Name:                "group-cache",
		FailureThreshold:    3,
		Timeout:             15 * time.Second,
		MaxHalfOpenRequests: 1,
		IsFailure:           isFailure,
		OnStateChange:       onStateChange,
	})
}
