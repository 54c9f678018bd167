package insights

import "time"

// Dashboard is the whole statistics screen for one user.
type Dashboard struct {
	Window          Window
	GeneratedAt     time.Time
	RatingSeries    []RatingPoint
	CommonEffects   []EffectCount
	TriedStrains    []Strain
	Recommendations []Recommendation
	TotalEntries    int
	RatedEntries    int
}

// ForUser keeps only the entries logged by userID.
func ForUser(entries []Entry, userID uint) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out
}

// BuildDashboard recomputes every dashboard section from scratch.
func BuildDashboard(userID uint, entries []Entry, catalog []Strain, window Window, now time.Time, rng Shuffler) Dashboard {
	mine := ForUser(entries, userID)

	rated := 0
	for _, entry := range mine {
		if entry.Rated() {
			rated++
		}
	}

	return Dashboard{
		Window:          window,
		GeneratedAt:     now,
		RatingSeries:    RatingSeries(mine, window, now),
		CommonEffects:   EffectFrequency(mine),
		TriedStrains:    TriedStrains(mine, catalog),
		Recommendations: Recommend(mine, catalog, rng),
		TotalEntries:    len(mine),
		RatedEntries:    rated,
	}
}
