package insights

import (
	"slices"
	"strings"
)

// TopEffectLimit caps the effect-frequency list.
const TopEffectLimit = 6

// EffectFrequency counts every feeling tag across entries and returns the
// most frequent ones, highest first. Ties keep the order in which the tags
// were first seen.
func EffectFrequency(entries []Entry) []EffectCount {
	counts := tallyFeelings(entries, false)
	if len(counts) > TopEffectLimit {
		counts = counts[:TopEffectLimit]
	}
	return counts
}

// tallyFeelings counts feeling tags, optionally folding case so that
// "Relaxed" and "relaxed" share a bucket (the folded key is lower-case).
// The result is sorted by descending count, stable on first encounter.
func tallyFeelings(entries []Entry, foldCase bool) []EffectCount {
	index := make(map[string]int)
	counts := []EffectCount{}

	for _, entry := range entries {
		for _, feeling := range entry.Feelings {
			key := strings.TrimSpace(feeling)
			if key == "" {
				continue
			}
			if foldCase {
				key = strings.ToLower(key)
			}
			if i, ok := index[key]; ok {
				counts[i].Count++
				continue
			}
			index[key] = len(counts)
			counts = append(counts, EffectCount{Effect: key, Count: 1})
		}
	}

	slices.SortStableFunc(counts, func(a, b EffectCount) int {
		return b.Count - a.Count
	})
	return counts
}
