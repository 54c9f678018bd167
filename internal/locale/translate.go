package locale

// Pick returns the text matching the request language, defaulting to English.
func Pick(language, english, thai string) string {
	if NormalizeLanguage(language) == LanguageThai {
		if thai != "" {
			return thai
		}
		return english
	}
	if english != "" {
		return english
	}
	return thai
}
