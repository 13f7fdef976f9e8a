package nickname

import (
	"context"
	"log/slog"

	"nickguard/internal/domain"
	"nickguard/internal/ports"
)

// publicReasonLimit caps how many structural reasons a member sees at once.
const publicReasonLimit = 2

// EngineOptions tunes the aggregation policy.
type EngineOptions struct {
	// AlwaysArbitrate sends every structurally valid candidate to the
	// arbiter for a content check.
	AlwaysArbitrate bool
}

// Engine runs validate → fix → arbitrate strictly in order for one
// candidate. The arbiter is optional; without it valid candidates pass on
// structure alone.
type Engine struct {
	validator *Validator
	arbiter   ports.Arbiter
	opts      EngineOptions
	log       *slog.Logger
}

func NewEngine(v *Validator, a ports.Arbiter, opts EngineOptions, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{validator: v, arbiter: a, opts: opts, log: log.With("component", "nickname")}
}

func (e *Engine) Validate(candidate string) domain.ValidationVerdict {
	return e.validator.Validate(candidate)
}

func (e *Engine) Normalize(candidate string) string {
	return e.validator.Normalize(candidate)
}

func (e *Engine) AutoFix(candidate string) domain.AutoFixResult {
	return e.validator.AutoFix(candidate)
}

// Check is Decide without the arbiter, for bulk audits.
func (e *Engine) Check(candidate string) domain.CombinedDecision {
	verdict := e.validator.Validate(candidate)
	if verdict.Valid {
		return domain.CombinedDecision{
			Candidate:     candidate,
			Approve:       true,
			Stage:         domain.StageStructural,
			Verdict:       verdict,
			PublicReasons: []string{},
		}
	}
	return e.rejectStructural(candidate, verdict)
}

// Decide aggregates the three stages. The arbiter only ever sees
// structurally valid input.
func (e *Engine) Decide(ctx context.Context, candidate string) domain.CombinedDecision {
	dec := e.Check(candidate)
	if !dec.Approve || e.arbiter == nil || !e.opts.AlwaysArbitrate {
		e.log.Debug("nickname decided", "candidate", candidate, "stage", dec.Stage, "approve", dec.Approve)
		return dec
	}

	normalized := e.validator.Normalize(candidate)
	ad := e.arbiter.Arbitrate(ctx, normalized)
	dec.Stage = domain.StageArbiter
	dec.Arbiter = &ad
	dec.Approve = ad.Approve
	dec.PublicReasons = ad.PublicReasons()
	dec.UserNote = ad.UserNote
	dec.Retryable = ad.Failed()

	// Model suggestions are advisory and can be malformed; offer only those
	// that pass the structural rules.
	if suggested := e.validator.Normalize(ad.SuggestedFull); !ad.Approve && suggested != "" && suggested != normalized {
		if sv := e.validator.Validate(suggested); sv.Valid {
			dec.Suggestion = suggested
		} else {
			e.log.Info("discarded arbiter suggestion", "candidate", normalized, "suggestion", ad.SuggestedFull,
				"violations", len(sv.Violations))
		}
	}
	e.log.Debug("nickname decided", "candidate", candidate, "stage", dec.Stage, "approve", dec.Approve,
		"retryable", dec.Retryable)
	return dec
}

func (e *Engine) rejectStructural(candidate string, verdict domain.ValidationVerdict) domain.CombinedDecision {
	fix := e.validator.AutoFix(candidate)
	dec := domain.CombinedDecision{
		Candidate:     candidate,
		Stage:         domain.StageStructural,
		Verdict:       verdict,
		Fix:           &fix,
		PublicReasons: e.validator.Messages(verdict.Violations, publicReasonLimit),
	}
	if fix.Complete && len(fix.Applied) > 0 {
		dec.Stage = domain.StageAutoFix
		dec.Suggestion = fix.Fixed
		return dec
	}
	for _, vi := range verdict.Violations {
		if vi.Hint != "" {
			dec.Suggestion = vi.Hint
			break
		}
	}
	return dec
}
