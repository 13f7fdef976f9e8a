package ports

import (
	"context"

	"nickguard/internal/domain"
)

// Arbiter gives a content-level verdict on a structurally valid nickname.
// It never fails; technical problems come back as a reject decision.
type Arbiter interface {
	Arbitrate(ctx context.Context, candidate string) domain.ArbiterDecision
}

// Nicknames validates, repairs and decides on nickname candidates.
type Nicknames interface {
	Validate(candidate string) domain.ValidationVerdict
	// Normalize returns the form Validate checks; apply that form, not the raw input.
	Normalize(candidate string) string
	AutoFix(candidate string) domain.AutoFixResult
	Decide(ctx context.Context, candidate string) domain.CombinedDecision
}

// Roster audits a batch of member nicknames.
type Roster interface {
	Audit(ctx context.Context, members []domain.Member, semantic bool) domain.RosterReport
}

// SteamLinks classifies Steam profile links submitted with applications.
type SteamLinks interface {
	Check(raw string) domain.SteamLink
}
