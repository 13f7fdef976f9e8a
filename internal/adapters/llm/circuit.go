package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig tunes a circuit breaker. Zero values fall back to defaults.
type BreakerConfig struct {
	Name string
	// FailThreshold consecutive failures open the circuit.
	FailThreshold uint32
	// HalfOpenRequests is how many trial requests a half-open circuit lets
	// through; that many successes close it again.
	HalfOpenRequests uint32
	OpenTimeout      time.Duration
}

// CircuitBreaker stops sending requests to a provider after consecutive
// failures and lets a bounded number of trial requests through once
// OpenTimeout has passed.
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker[string]
}

func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	if cfg.FailThreshold == 0 {
		cfg.FailThreshold = 5
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = 1
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	threshold := cfg.FailThreshold
	return &CircuitBreaker{cb: gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= threshold
		},
		// Caller cancellation says nothing about the provider.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})}
}

// Execute runs fn unless the circuit refuses it, in which case it returns
// an error matched by Refused.
func (b *CircuitBreaker) Execute(fn func() (string, error)) (string, error) {
	return b.cb.Execute(fn)
}

func (b *CircuitBreaker) State() gobreaker.State { return b.cb.State() }

// Refused reports whether err came from the breaker rather than the provider.
func Refused(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
