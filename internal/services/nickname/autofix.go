package nickname

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"nickguard/internal/domain"
)

var loosePipe = regexp.MustCompile(`[ \t]*\|[ \t]*`)

// AutoFix applies the deterministic repairs in a fixed order on an evolving
// string. It never invents a name unless Policy.FallbackName is set, never
// transliterates, and never picks between several separators. Callers must
// still validate Fixed; Complete already reports that result.
func (v *Validator) AutoFix(candidate string) domain.AutoFixResult {
	s := clean(candidate)
	res := domain.AutoFixResult{Original: candidate, Applied: []domain.FixKind{}}

	if strings.Contains(s, "|") {
		if spaced := loosePipe.ReplaceAllString(s, separator); spaced != s {
			// A rewrite only counts when it lands on exactly one separator.
			if strings.Count(strings.TrimSpace(spaced), separator) == 1 {
				s = spaced
				res.Applied = append(res.Applied, domain.NormalizedSeparator)
			}
		}
	}

	if strings.Count(s, separator) != 1 {
		return v.finish(res, s)
	}
	handle, name, _ := strings.Cut(s, separator)
	handle, name = strings.TrimSpace(handle), strings.TrimSpace(name)

	if first, size := utf8.DecodeRuneInString(name); unicode.IsLower(first) &&
		unicode.Is(v.policy.Alphabet, first) && lettersIn(name, v.policy.Alphabet) {
		// Only the leading letter; "анна-мария" keeps its second half as typed.
		name = cases.Upper(v.policy.Language).String(name[:size]) + name[size:]
		res.Applied = append(res.Applied, domain.CapitalizedName)
	}

	limit := min(v.policy.MaxPartLength, v.policy.MaxTotalLength-utf8.RuneCountInString(handle+separator))
	if n := utf8.RuneCountInString(name); n > limit && limit >= v.policy.MinPartLength {
		cut := strings.TrimSpace(string([]rune(name)[:limit]))
		if utf8.RuneCountInString(cut) >= v.policy.MinPartLength {
			name = cut
			res.Applied = append(res.Applied, domain.TruncatedToMaxLength)
		}
	}

	if utf8.RuneCountInString(name) < v.policy.MinPartLength && v.policy.FallbackName != "" {
		name = v.policy.FallbackName
		res.Applied = append(res.Applied, domain.PaddedToMinLength)
	}

	return v.finish(res, handle+separator+name)
}

func (v *Validator) finish(res domain.AutoFixResult, fixed string) domain.AutoFixResult {
	res.Fixed = fixed
	res.Complete = len(v.violations(fixed)) == 0
	return res
}
