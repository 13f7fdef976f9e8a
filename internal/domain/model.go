package domain

import "fmt"

// Core nickname models shared by the validator, the arbiter and the adapters.
// Everything here is a plain value; callers own what they receive.

// Separator joins the handle and the name parts of a nickname.
const Separator = " | "

// Part identifies which side of a nickname a violation refers to.
type Part string

const (
	PartHandle Part = "handle"
	PartName   Part = "name"
	PartWhole  Part = "whole"
)

// ViolationCode is the closed set of structural rule failures.
type ViolationCode int

const (
	WrongSeparatorCount ViolationCode = iota + 1
	PartTooShort
	PartTooLong
	HandleHasForbiddenChars
	NameNotCyrillicCapitalized
	NameIsPseudoPlaceholder
	ContainsProfanity
	ContainsForbiddenSymbols
)

var violationNames = map[ViolationCode]string{
	WrongSeparatorCount:        "wrong_separator_count",
	PartTooShort:               "part_too_short",
	PartTooLong:                "part_too_long",
	HandleHasForbiddenChars:    "handle_has_forbidden_chars",
	NameNotCyrillicCapitalized: "name_not_cyrillic_capitalized",
	NameIsPseudoPlaceholder:    "name_is_pseudo_placeholder",
	ContainsProfanity:          "contains_profanity",
	ContainsForbiddenSymbols:   "contains_forbidden_symbols",
}

func (c ViolationCode) String() string {
	if s, ok := violationNames[c]; ok {
		return s
	}
	return "unknown"
}

// MarshalText keeps codes stable on the wire.
func (c ViolationCode) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ViolationCode) UnmarshalText(b []byte) error {
	for code, name := range violationNames {
		if name == string(b) {
			*c = code
			return nil
		}
	}
	return fmt.Errorf("unknown violation code %q", b)
}

// Violation is a single structural rule failure.
type Violation struct {
	Code ViolationCode `json:"code"`
	Part Part          `json:"part"`
	// SeparatorCount is set for WrongSeparatorCount only.
	SeparatorCount int `json:"separator_count,omitempty"`
	// Hint is an advisory replacement, never applied automatically.
	Hint string `json:"hint,omitempty"`
}

// ParsedNickname is a candidate split on the canonical separator. Handle and
// Name are meaningful only when Parsed is true.
type ParsedNickname struct {
	Handle         string
	Name           string
	SeparatorCount int
	Parsed         bool
}

// ValidationVerdict is the structural validator's output. Violations keep
// detection order; callers show the first one or two.
type ValidationVerdict struct {
	Candidate  string      `json:"candidate"`
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
	// Normalized is set only when auto-fix resolves every violation.
	Normalized string `json:"normalized,omitempty"`
}

// Has reports whether the verdict carries a violation with the given code.
func (v ValidationVerdict) Has(code ViolationCode) bool {
	for _, vi := range v.Violations {
		if vi.Code == code {
			return true
		}
	}
	return false
}

// FixKind names a deterministic transformation applied by the auto-fixer.
type FixKind int

const (
	NormalizedSeparator FixKind = iota + 1
	CapitalizedName
	TruncatedToMaxLength
	PaddedToMinLength
)

var fixNames = map[FixKind]string{
	NormalizedSeparator:  "normalized_separator",
	CapitalizedName:      "capitalized_name",
	TruncatedToMaxLength: "truncated_to_max_length",
	PaddedToMinLength:    "padded_to_min_length",
}

func (k FixKind) String() string {
	if s, ok := fixNames[k]; ok {
		return s
	}
	return "unknown"
}

func (k FixKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *FixKind) UnmarshalText(b []byte) error {
	for kind, name := range fixNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown fix kind %q", b)
}

// AutoFixResult is the best-effort output of the auto-fixer. Complete is true
// only when Fixed re-validates with no violations.
type AutoFixResult struct {
	Original string    `json:"original"`
	Fixed    string    `json:"fixed,omitempty"`
	Applied  []FixKind `json:"applied"`
	Complete bool      `json:"complete"`
}

// ReasonKind separates reasons a member may see from operator-only detail.
type ReasonKind int

const (
	// PolicyViolation is a content reason produced by the model.
	PolicyViolation ReasonKind = iota + 1
	// RetryNotice is the static member-facing text for a failed check.
	RetryNotice
	// InternalFailure carries technical detail for operators only.
	InternalFailure
)

// Reason is a tagged arbiter reason.
type Reason struct {
	Kind ReasonKind
	Text string
}

// ArbiterDecision is the LLM arbiter's advisory verdict for one candidate.
type ArbiterDecision struct {
	Approve       bool
	Reasons       []Reason
	SuggestedFull string
	UserNote      string
}

// PublicReasons returns the reasons a member may see.
func (d ArbiterDecision) PublicReasons() []string {
	out := make([]string, 0, len(d.Reasons))
	for _, r := range d.Reasons {
		switch r.Kind {
		case PolicyViolation, RetryNotice:
			out = append(out, r.Text)
		}
	}
	return out
}

// Failed reports whether the decision came from a technical failure rather
// than a content judgment.
func (d ArbiterDecision) Failed() bool {
	for _, r := range d.Reasons {
		if r.Kind == InternalFailure {
			return true
		}
	}
	return false
}

// Stage records how far a combined decision travelled.
type Stage string

const (
	StageStructural Stage = "structural"
	StageAutoFix    Stage = "autofix"
	StageArbiter    Stage = "arbiter"
)

// CombinedDecision is the aggregated result handed to callers.
type CombinedDecision struct {
	Candidate     string            `json:"candidate"`
	Approve       bool              `json:"approve"`
	Stage         Stage             `json:"stage"`
	Verdict       ValidationVerdict `json:"verdict"`
	Fix           *AutoFixResult    `json:"fix,omitempty"`
	Arbiter       *ArbiterDecision  `json:"-"`
	Suggestion    string            `json:"suggestion,omitempty"`
	PublicReasons []string          `json:"public_reasons"`
	UserNote      string            `json:"user_note,omitempty"`
	// Retryable is set when the arbiter failed technically and the caller
	// should offer a manual retry.
	Retryable bool `json:"retryable,omitempty"`
}
