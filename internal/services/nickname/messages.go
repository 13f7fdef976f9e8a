package nickname

import (
	"fmt"

	"nickguard/internal/domain"
)

// Message renders a violation for members. Callers show the first one or two.
func (v *Validator) Message(vi domain.Violation) string {
	p := v.policy
	switch vi.Code {
	case domain.WrongSeparatorCount:
		if vi.SeparatorCount == 0 {
			return "Никнейм должен быть в формате «SteamNick | Имя» с разделителем « | »"
		}
		return "В никнейме должен быть ровно один разделитель « | »"
	case domain.PartTooShort:
		return fmt.Sprintf("%s: не короче %d символов", partLabel(vi.Part), p.MinPartLength)
	case domain.PartTooLong:
		if vi.Part == domain.PartWhole {
			return fmt.Sprintf("Никнейм целиком не длиннее %d символов", p.MaxTotalLength)
		}
		return fmt.Sprintf("%s: не длиннее %d символов", partLabel(vi.Part), p.MaxPartLength)
	case domain.HandleHasForbiddenChars:
		return "Ник слева: только буквы, цифры, пробел, «_» и «-»"
	case domain.NameNotCyrillicCapitalized:
		return "Имя справа: только кириллица, с заглавной буквы"
	case domain.NameIsPseudoPlaceholder:
		return "Укажите настоящее имя, а не «игрок» или «user»"
	case domain.ContainsProfanity:
		return "Никнейм содержит недопустимые слова"
	case domain.ContainsForbiddenSymbols:
		return "Никнейм содержит недопустимые символы"
	}
	return "Никнейм не соответствует правилам"
}

// Messages renders at most limit violations in detection order.
func (v *Validator) Messages(vs []domain.Violation, limit int) []string {
	if limit > 0 && len(vs) > limit {
		vs = vs[:limit]
	}
	out := make([]string, 0, len(vs))
	for _, vi := range vs {
		out = append(out, v.Message(vi))
	}
	return out
}

func partLabel(p domain.Part) string {
	switch p {
	case domain.PartHandle:
		return "Ник слева"
	case domain.PartName:
		return "Имя справа"
	}
	return "Никнейм"
}
