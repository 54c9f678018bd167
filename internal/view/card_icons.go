package view

import "strings"

// CardIcon is the display metadata of a card brand.
type CardIcon struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	SVG   string `json:"svg"`
}

var (
	cardIconDefinitions = []CardIcon{
		{Key: "visa", Label: "Visa", SVG: `<svg viewBox="0 0 48 32" aria-hidden="true"><rect width="48" height="32" rx="4" fill="#1A1F71"/><text x="24" y="21" font-family="Arial,sans-serif" font-size="12" font-weight="700" font-style="italic" fill="#FFFFFF" text-anchor="middle">VISA</text></svg>`},
		{Key: "mastercard", Label: "Mastercard", SVG: `<svg viewBox="0 0 48 32" aria-hidden="true"><rect width="48" height="32" rx="4" fill="#231F20"/><circle cx="19" cy="16" r="8" fill="#EB001B"/><circle cx="29" cy="16" r="8" fill="#F79E1B" fill-opacity="0.9"/></svg>`},
		{Key: "amex", Label: "American Express", SVG: `<svg viewBox="0 0 48 32" aria-hidden="true"><rect width="48" height="32" rx="4" fill="#2E77BC"/><text x="24" y="20" font-family="Arial,sans-serif" font-size="9" font-weight="700" fill="#FFFFFF" text-anchor="middle">AMEX</text></svg>`},
	}
	defaultCardIcon = CardIcon{Key: "card", Label: "Card", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M2.25 8.25h19.5M2.25 9h19.5m-16.5 5.25h6m-6 2.25h3m-3.75 3h15a2.25 2.25 0 0 0 2.25-2.25V6.75A2.25 2.25 0 0 0 19.5 4.5h-15a2.25 2.25 0 0 0-2.25 2.25v10.5A2.25 2.25 0 0 0 4.5 19.5Z"/></svg>`}
	cardIconLookup  = func() map[string]CardIcon {
		lookup := make(map[string]CardIcon, len(cardIconDefinitions)+1)
		for _, icon := range cardIconDefinitions {
			lookup[icon.Key] = icon
			lookup[strings.ToLower(icon.Label)] = icon
		}
		lookup[defaultCardIcon.Key] = defaultCardIcon
		return lookup
	}()
)

// CardBrandIcon resolves a brand name or key ("Visa", "american express",
// "amex") to its icon, falling back to a generic card.
func CardBrandIcon(brand string) CardIcon {
	trimmed := strings.ToLower(strings.TrimSpace(brand))
	if icon, ok := cardIconLookup[trimmed]; ok {
		return icon
	}
	return defaultCardIcon
}

// CardBrandOptions lists the known brands without their SVG markup.
func CardBrandOptions() []CardIcon {
	options := make([]CardIcon, 0, len(cardIconDefinitions))
	for _, icon := range cardIconDefinitions {
		options = append(options, CardIcon{Key: icon.Key, Label: icon.Label})
	}
	return options
}
