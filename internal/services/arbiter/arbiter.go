// Package arbiter asks a language model whether a structurally valid
// nickname is acceptable in content. It is advisory and untrusted: every
// failure degrades to a reject decision with a retry notice.
package arbiter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"nickguard/internal/domain"
	"nickguard/internal/ports"
)

// RetryMessage is the only text a member sees when the check itself failed.
const RetryMessage = "Не удалось автоматически проверить никнейм — повторите попытку"

// Options bounds a single arbitration.
type Options struct {
	// Timeout covers all attempts, not each one.
	Timeout     time.Duration
	MaxAttempts uint64
	BackoffBase time.Duration
	BackoffCap  time.Duration
}

func DefaultOptions() Options {
	return Options{
		Timeout:     12 * time.Second,
		MaxAttempts: 3,
		BackoffBase: 2 * time.Second,
		BackoffCap:  8 * time.Second,
	}
}

type Arbiter struct {
	client  ports.LanguageModelClient
	limiter *RateLimiter
	opts    Options
	log     *slog.Logger
}

// New wires an arbiter. A nil client or limiter is a wiring bug.
func New(client ports.LanguageModelClient, limiter *RateLimiter, opts Options, log *slog.Logger) *Arbiter {
	if client == nil || limiter == nil {
		panic("arbiter: client and rate limiter are required")
	}
	def := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = 1
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = def.BackoffBase
	}
	if opts.BackoffCap < opts.BackoffBase {
		opts.BackoffCap = opts.BackoffBase
	}
	if log == nil {
		log = slog.Default()
	}
	return &Arbiter{client: client, limiter: limiter, opts: opts, log: log.With("component", "arbiter")}
}

// Arbitrate never returns an error. The rate-limit slot is taken before the
// request is sent, so a cancelled or timed-out call still counts.
func (a *Arbiter) Arbitrate(ctx context.Context, candidate string) domain.ArbiterDecision {
	if err := a.limiter.Wait(ctx); err != nil {
		return a.failed(candidate, err)
	}
	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	raw, err := a.complete(ctx, candidate)
	if err != nil {
		return a.failed(candidate, err)
	}
	d, err := parseReply(raw)
	if err != nil {
		a.log.Warn("unusable arbiter reply", "candidate", candidate, "err", err, "raw", truncate(raw, 200))
		return retryDecision(err)
	}
	a.log.Info("arbiter decided", "candidate", candidate, "approve", d.Approve, "reasons", len(d.Reasons))
	return d
}

func (a *Arbiter) complete(ctx context.Context, candidate string) (string, error) {
	var (
		raw     string
		attempt int
	)
	err := retry.Do(ctx, a.backoff(), func(ctx context.Context) error {
		attempt++
		out, err := a.client.Complete(ctx, systemPrompt, userPrompt(candidate))
		if err == nil {
			raw = out
			return nil
		}
		if ports.IsTransient(err) && ctx.Err() == nil {
			a.log.Warn("arbiter attempt failed", "candidate", candidate, "attempt", attempt, "err", err)
			return retry.RetryableError(err)
		}
		return err
	})
	return raw, err
}

func (a *Arbiter) backoff() retry.Backoff {
	b := retry.NewExponential(a.opts.BackoffBase)
	b = retry.WithCappedDuration(a.opts.BackoffCap, b)
	return retry.WithMaxRetries(a.opts.MaxAttempts-1, b)
}

func (a *Arbiter) failed(candidate string, err error) domain.ArbiterDecision {
	level := slog.LevelError
	if ports.IsTransient(err) || errors.Is(err, context.Canceled) {
		level = slog.LevelWarn
	}
	a.log.Log(context.Background(), level, "arbiter check failed", "candidate", candidate, "err", err)
	return retryDecision(err)
}

func retryDecision(err error) domain.ArbiterDecision {
	return domain.ArbiterDecision{
		Reasons: []domain.Reason{
			{Kind: domain.RetryNotice, Text: RetryMessage},
			{Kind: domain.InternalFailure, Text: err.Error()},
		},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
