package nickname

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"nickguard/internal/domain"
)

const separator = domain.Separator

// Validator checks candidates against a Policy. It holds no mutable state
// and is safe for concurrent use.
type Validator struct {
	policy       Policy
	placeholders map[string]struct{}
	profanity    []string
	symbols      map[rune]struct{}
}

// New builds a validator, rejecting an unusable policy.
func New(p Policy) (*Validator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	v := &Validator{
		policy:       p,
		placeholders: make(map[string]struct{}, len(p.Placeholders)),
		profanity:    make([]string, 0, len(p.Profanity)),
		symbols:      make(map[rune]struct{}),
	}
	for _, w := range p.Placeholders {
		v.placeholders[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	for _, w := range p.Profanity {
		v.profanity = append(v.profanity, strings.ToLower(w))
	}
	for _, r := range p.ForbiddenSymbols {
		v.symbols[r] = struct{}{}
	}
	return v, nil
}

// MustNew is New for package-level wiring with a known-good policy.
func MustNew(p Policy) *Validator {
	v, err := New(p)
	if err != nil {
		panic(err)
	}
	return v
}

// Policy returns the rules the validator was built with.
func (v *Validator) Policy() Policy { return v.policy }

// Normalize returns the form the rules are checked against: NFC, trimmed.
// Anything applied after validation must use this form.
func (v *Validator) Normalize(candidate string) string { return clean(candidate) }

// Parse splits a candidate on the canonical separator. Parts are filled only
// when exactly one separator is present.
func (v *Validator) Parse(candidate string) domain.ParsedNickname {
	s := clean(candidate)
	n := strings.Count(s, separator)
	if n != 1 {
		return domain.ParsedNickname{SeparatorCount: n}
	}
	handle, name, _ := strings.Cut(s, separator)
	return domain.ParsedNickname{Handle: handle, Name: name, SeparatorCount: 1, Parsed: true}
}

// Validate runs the structural rules. When the candidate is invalid and the
// auto-fixer fully repairs it, the repaired value is reported as Normalized.
func (v *Validator) Validate(candidate string) domain.ValidationVerdict {
	verdict := domain.ValidationVerdict{
		Candidate:  candidate,
		Violations: v.violations(candidate),
	}
	verdict.Valid = len(verdict.Violations) == 0
	if !verdict.Valid {
		if fix := v.AutoFix(candidate); fix.Complete {
			verdict.Normalized = fix.Fixed
		}
	}
	return verdict
}

func (v *Validator) violations(candidate string) []domain.Violation {
	s := clean(candidate)
	out := []domain.Violation{}

	if s == "" {
		return append(out,
			domain.Violation{Code: domain.WrongSeparatorCount, Part: domain.PartWhole},
			domain.Violation{Code: domain.PartTooShort, Part: domain.PartHandle},
			domain.Violation{Code: domain.PartTooShort, Part: domain.PartName},
		)
	}

	p := v.Parse(s)
	if !p.Parsed {
		out = append(out, domain.Violation{
			Code:           domain.WrongSeparatorCount,
			Part:           domain.PartWhole,
			SeparatorCount: p.SeparatorCount,
			Hint:           v.collapseHint(s, p.SeparatorCount),
		})
	} else {
		out = append(out, v.lengthViolations(p, s)...)
		if !handleCharsOK(p.Handle) {
			out = append(out, domain.Violation{Code: domain.HandleHasForbiddenChars, Part: domain.PartHandle})
		}
		if !nameAlphabetOK(p.Name, v.policy.Alphabet) {
			out = append(out, domain.Violation{Code: domain.NameNotCyrillicCapitalized, Part: domain.PartName})
		}
		if _, ok := v.placeholders[strings.ToLower(strings.TrimSpace(p.Name))]; ok {
			out = append(out, domain.Violation{Code: domain.NameIsPseudoPlaceholder, Part: domain.PartName})
		}
	}

	if v.hasProfanity(s) {
		out = append(out, domain.Violation{Code: domain.ContainsProfanity, Part: domain.PartWhole})
	}
	if v.hasForbiddenSymbols(s) {
		out = append(out, domain.Violation{Code: domain.ContainsForbiddenSymbols, Part: domain.PartWhole})
	}
	return out
}

func (v *Validator) lengthViolations(p domain.ParsedNickname, whole string) []domain.Violation {
	var out []domain.Violation
	check := func(part domain.Part, s string) {
		switch n := utf8.RuneCountInString(s); {
		case n < v.policy.MinPartLength:
			out = append(out, domain.Violation{Code: domain.PartTooShort, Part: part})
		case n > v.policy.MaxPartLength:
			out = append(out, domain.Violation{Code: domain.PartTooLong, Part: part})
		}
	}
	check(domain.PartHandle, p.Handle)
	check(domain.PartName, p.Name)
	if len(out) == 0 && utf8.RuneCountInString(whole) > v.policy.MaxTotalLength {
		out = append(out, domain.Violation{Code: domain.PartTooLong, Part: domain.PartWhole})
	}
	return out
}

// collapseHint proposes "first | last" for a candidate with several
// separators. Middle segments are dropped, never merged into the name.
func (v *Validator) collapseHint(s string, count int) string {
	if count < 2 {
		return ""
	}
	segs := strings.Split(s, separator)
	first, last := strings.TrimSpace(segs[0]), strings.TrimSpace(segs[len(segs)-1])
	if first == "" || last == "" || strings.EqualFold(first, last) {
		return ""
	}
	hint := first + separator + last
	if len(v.violations(hint)) != 0 {
		return ""
	}
	return hint
}

func (v *Validator) hasProfanity(s string) bool {
	low := strings.ToLower(s)
	for _, w := range v.profanity {
		if strings.Contains(low, w) {
			return true
		}
	}
	return false
}

func (v *Validator) hasForbiddenSymbols(s string) bool {
	for _, r := range s {
		if _, ok := v.symbols[r]; ok {
			return true
		}
		// Combining marks left after NFC are zalgo stacking; So covers
		// emoji and decorative glyphs outside the explicit set.
		if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.So, r) {
			return true
		}
	}
	return false
}

func handleCharsOK(h string) bool {
	for _, r := range h {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
		case r == ' ', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// nameAlphabetOK requires a leading uppercase letter from the alphabet and
// nothing but alphabet letters, '-' and space after it. One foreign rune
// disqualifies the name.
func nameAlphabetOK(name string, alphabet *unicode.RangeTable) bool {
	first, _ := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError || !unicode.IsUpper(first) || !unicode.Is(alphabet, first) {
		return false
	}
	return lettersIn(name, alphabet)
}

// lettersIn reports whether s holds only letters of alphabet, '-' and space.
func lettersIn(s string, alphabet *unicode.RangeTable) bool {
	for _, r := range s {
		switch {
		case r == '-', r == ' ':
		case unicode.IsLetter(r) && unicode.Is(alphabet, r):
		default:
			return false
		}
	}
	return true
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
