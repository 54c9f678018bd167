package locale

import (
	"strconv"
	"strings"
)

const (
	LanguageEnglish = "en"
	LanguageThai    = "th"
)

type Preference struct {
	Language string
	Locale   string
	HTMLLang string
}

func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "th") {
		return LanguageThai
	}
	if strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

func LanguageFromCountryCode(code string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return ""
	}
	if trimmed == "TH" {
		return LanguageThai
	}
	return LanguageEnglish
}

// LanguageFromAcceptLanguage returns the supported language with the
// highest q-value, keeping header order on ties.
func LanguageFromAcceptLanguage(header string) string {
	best := ""
	bestQ := 0.0
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		language := NormalizeLanguage(tag)
		if language == "" {
			continue
		}
		q := qValue(params)
		if q > bestQ {
			best, bestQ = language, q
		}
	}
	return best
}

// qValue reads the q parameter of one Accept-Language range. Missing means
// 1; q=0 and malformed values rule the range out.
func qValue(params string) float64 {
	for _, param := range strings.Split(params, ";") {
		raw, ok := strings.CutPrefix(strings.TrimSpace(param), "q=")
		if !ok {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || parsed < 0 || parsed > 1 {
			return 0
		}
		return parsed
	}
	return 1
}

func PreferenceForLanguage(language string) Preference {
	if NormalizeLanguage(language) == LanguageThai {
		return Preference{Language: LanguageThai, Locale: "th_TH", HTMLLang: "th-TH"}
	}
	return Preference{Language: LanguageEnglish, Locale: "en_US", HTMLLang: "en-US"}
}
