package llm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"

	"nickguard/internal/ports"
)

// Provider is a named client guarded by its own breaker.
type Provider struct {
	Name    string
	Client  ports.LanguageModelClient
	Breaker *CircuitBreaker
}

// Fallback tries providers in order and returns the first reply. A provider
// whose breaker is open is skipped without a request.
type Fallback struct {
	providers []Provider
	log       *slog.Logger
}

func NewFallback(log *slog.Logger, providers ...Provider) *Fallback {
	if log == nil {
		log = slog.Default()
	}
	for i := range providers {
		if providers[i].Breaker == nil {
			providers[i].Breaker = NewCircuitBreaker(BreakerConfig{Name: providers[i].Name})
		}
	}
	return &Fallback{providers: providers, log: log.With("component", "llm-fallback")}
}

// Complete returns the first success. When every provider fails the error is
// transient if any provider failed transiently, so the caller may retry.
func (f *Fallback) Complete(ctx context.Context, system, user string) (string, error) {
	if len(f.providers) == 0 {
		return "", &ports.PermanentError{Provider: "fallback", Err: errors.New("no providers configured")}
	}
	var (
		errs      []error
		transient bool
	)
	for _, p := range f.providers {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		out, err := p.Breaker.Execute(func() (string, error) {
			return p.Client.Complete(ctx, system, user)
		})
		if err == nil {
			return out, nil
		}
		if Refused(err) {
			f.log.Debug("provider skipped", "provider", p.Name, "circuit", p.Breaker.State().String())
			transient = true
			continue
		}
		f.log.Warn("provider failed", "provider", p.Name, "err", err)
		errs = append(errs, err)
		if ports.IsTransient(err) {
			transient = true
		}
	}

	err := oops.In("llm").With("providers", len(f.providers)).Wrapf(errors.Join(errs...), "all providers failed")
	if len(errs) == 0 {
		err = oops.In("llm").Errorf("all provider circuits open")
	}
	if transient {
		return "", &ports.TransientError{Provider: "fallback", Err: err}
	}
	return "", &ports.PermanentError{Provider: "fallback", Err: err}
}
