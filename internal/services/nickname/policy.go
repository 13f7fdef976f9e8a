package nickname

import (
	"unicode"
	"unicode/utf8"

	"github.com/samber/oops"
	"golang.org/x/text/language"
)

// Policy is the tunable data behind the structural rules. Nothing in the
// validator hard-codes these values.
type Policy struct {
	MinPartLength  int
	MaxPartLength  int
	MaxTotalLength int

	// Alphabet is the designated script for the name part.
	Alphabet *unicode.RangeTable
	// Language drives case mapping when the name is capitalized.
	Language language.Tag

	Placeholders     []string
	Profanity        []string
	ForbiddenSymbols string

	// FallbackName replaces a name part that is too short. Empty disables
	// the fallback; it is never applied silently.
	FallbackName string
}

// DefaultPolicy returns the community rules: "Handle | Имя", 3–20 runes per
// side, 32 runes overall, Cyrillic names.
func DefaultPolicy() Policy {
	return Policy{
		MinPartLength:    3,
		MaxPartLength:    20,
		MaxTotalLength:   32,
		Alphabet:         unicode.Cyrillic,
		Language:         language.Russian,
		Placeholders:     append([]string(nil), defaultPlaceholders...),
		Profanity:        append([]string(nil), defaultProfanity...),
		ForbiddenSymbols: defaultForbiddenSymbols,
	}
}

// Validate rejects a policy the engine cannot run with. Misconfiguration is a
// programming error and must surface at startup.
func (p Policy) Validate() error {
	errb := oops.In("policy").With("min", p.MinPartLength, "max", p.MaxPartLength, "total", p.MaxTotalLength)
	switch {
	case p.MinPartLength < 1:
		return errb.Errorf("min part length must be positive")
	case p.MaxPartLength < p.MinPartLength:
		return errb.Errorf("max part length below min part length")
	case p.MaxTotalLength < 2*p.MinPartLength+utf8.RuneCountInString(separator):
		return errb.Errorf("max total length cannot fit two minimal parts")
	case p.Alphabet == nil:
		return errb.Errorf("name alphabet is required")
	case len(p.Placeholders) == 0:
		return errb.Errorf("placeholder list is empty")
	case len(p.Profanity) == 0:
		return errb.Errorf("profanity list is empty")
	case p.ForbiddenSymbols == "":
		return errb.Errorf("forbidden symbol set is empty")
	}
	for i, w := range p.Profanity {
		if w == "" {
			return errb.With("index", i).Errorf("profanity entry is empty")
		}
	}
	if p.FallbackName != "" {
		n := utf8.RuneCountInString(p.FallbackName)
		if n < p.MinPartLength || n > p.MaxPartLength {
			return errb.With("fallback", p.FallbackName).Errorf("fallback name length out of bounds")
		}
		if !nameAlphabetOK(p.FallbackName, p.Alphabet) {
			return errb.With("fallback", p.FallbackName).Errorf("fallback name must be a capitalized word in the name alphabet")
		}
	}
	return nil
}

var defaultPlaceholders = []string{
	"игрок", "геймер", "юзер", "пользователь", "чувак", "парень", "человек",
	"никто", "аноним", "имя", "нет", "бот", "админ",
	"player", "gamer", "user", "dude", "guy", "anon", "anonymous", "name", "noname",
}

// Static entries only: native script, transliterations, mixed-script and
// digit substitutions are listed explicitly instead of being derived.
var defaultProfanity = []string{
	"хуй", "хуи", "хую", "хуя", "хуе", "хуём", "хуем", "хуйня",
	"ебать", "ебашь", "ебашу", "ебашит", "еблан", "ебучий", "ебучка", "ебало", "ебальник",
	"пизда", "пиздец", "пиздеж", "пиздюк", "пиздюля",
	"блядь", "блять", "блядина", "блядский",
	"говно", "говнюк", "говнюха", "говнища",
	"сука", "сучка", "сучий", "сученыш",
	"залупа", "жопа", "жопный", "жопник",
	"гандон", "пидор", "пидорас", "пидарас",
	"мудак", "мудила", "мудня", "долбоеб", "гамноед",
	"khui", "hui", "huy", "huй", "хyй", "хyи",
	"ebashy", "ebash", "ebashu", "ebat", "ebaty", "eban", "ebalo", "ebalnik",
	"pizda", "pizdets", "pizdezh", "pizdyuk", "pizdulya",
	"blyad", "blyat", "blyady", "blyadina", "blyadskiy",
	"govno", "govnyuk", "govnyuha", "govnishcha",
	"suka", "suchka", "suchiy", "suchenysh",
	"zalupa", "zhopa", "zhopnyy", "zhopnik",
	"gandon", "pidor", "pidoras", "pidaras",
	"mudak", "mudila", "mudnya", "debil",
	"пизd", "бляd", "ебаshy", "ебаsh", "мудаk", "сукa", "жоpa", "говнo",
	"ху1", "х1й", "п1здец", "бл1дь", "е6ашу", "е6аш",
	"м0дак", "с0ка", "п0дор", "г0вно", "3алупа", "ж0па", "ж0пник",
	"fuck", "shit", "bitch", "asshole", "cunt", "whore", "motherfucker", "bastard", "dickhead", "retard",
}

const defaultForbiddenSymbols = "卍☬♛♚☠★☆彡✿✧•◇◆❖¤۞۩⛧⛥⚔🔞🚫📛👿👺👹༒"
