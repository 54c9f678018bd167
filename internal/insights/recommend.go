package insights

import (
	"slices"
	"strings"
)

const (
	// RecommendationLimit is the most strains Recommend returns.
	RecommendationLimit = 3
	// PreferredEffectLimit is how many top feelings drive scoring.
	PreferredEffectLimit = 3
	// HighRatingThreshold marks an entry as highly rated.
	HighRatingThreshold = 4.0
	// EffectMatchPoints is added per preferred effect a strain lists.
	EffectMatchPoints = 2
)

// Recommend suggests up to three untried strains.
//
// Feelings from highly rated entries (rating >= 4) become preferred effects;
// untried strains earn two points per preferred effect they list. When the
// user has no history, no preferred effects emerge or no strain scores, a
// random sample of untried strains is returned instead.
func Recommend(entries []Entry, catalog []Strain, rng Shuffler) []Recommendation {
	candidates := untried(entries, catalog)
	if len(candidates) == 0 {
		return []Recommendation{}
	}
	if len(entries) == 0 {
		return randomSample(candidates, rng)
	}

	preferred := PreferredEffects(entries)
	if len(preferred) == 0 {
		return randomSample(candidates, rng)
	}

	scored := make([]Recommendation, 0, len(candidates))
	for _, strain := range candidates {
		if score := matchScore(strain, preferred); score > 0 {
			scored = append(scored, Recommendation{Strain: strain, Score: score, Strategy: StrategyMatched})
		}
	}
	if len(scored) == 0 {
		return randomSample(candidates, rng)
	}

	slices.SortStableFunc(scored, func(a, b Recommendation) int {
		return b.Score - a.Score
	})
	if len(scored) > RecommendationLimit {
		scored = scored[:RecommendationLimit]
	}
	return scored
}

// PreferredEffects returns the lower-cased top feelings of highly rated
// entries.
func PreferredEffects(entries []Entry) []string {
	high := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Rating >= HighRatingThreshold {
			high = append(high, entry)
		}
	}

	counts := tallyFeelings(high, true)
	if len(counts) > PreferredEffectLimit {
		counts = counts[:PreferredEffectLimit]
	}

	effects := make([]string, 0, len(counts))
	for _, c := range counts {
		effects = append(effects, c.Effect)
	}
	return effects
}

func matchScore(strain Strain, preferred []string) int {
	effects := make(map[string]struct{}, len(strain.Effects))
	for _, effect := range strain.Effects {
		effects[strings.ToLower(strings.TrimSpace(effect))] = struct{}{}
	}

	score := 0
	for _, p := range preferred {
		if _, ok := effects[p]; ok {
			score += EffectMatchPoints
		}
	}
	return score
}

// untried keeps catalog strains whose id never appears in entries, dropping
// zero ids and repeated ids.
func untried(entries []Entry, catalog []Strain) []Strain {
	tried := TriedIDs(entries)
	seen := make(map[uint]struct{}, len(catalog))

	out := make([]Strain, 0, len(catalog))
	for _, strain := range catalog {
		if strain.ID == 0 {
			continue
		}
		if _, ok := tried[strain.ID]; ok {
			continue
		}
		if _, dup := seen[strain.ID]; dup {
			continue
		}
		seen[strain.ID] = struct{}{}
		out = append(out, strain)
	}
	return out
}

// randomSample shuffles a copy of candidates and keeps the first three.
// Without a shuffler the catalog order is kept.
func randomSample(candidates []Strain, rng Shuffler) []Recommendation {
	pool := slices.Clone(candidates)
	if rng != nil {
		rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}
	if len(pool) > RecommendationLimit {
		pool = pool[:RecommendationLimit]
	}

	picks := make([]Recommendation, 0, len(pool))
	for _, strain := range pool {
		picks = append(picks, Recommendation{Strain: strain, Strategy: StrategyRandom})
	}
	return picks
}
