package insights

import (
	"slices"
	"time"
)

// RatingSeries averages ratings per calendar day for entries whose UseDate
// falls inside the window. Days are cut at midnight in now's location.
//
// Unrated entries (rating 0) are left out of the mean: checkout creates one
// per purchased item, so counting them would drag every fresh purchase day
// towards zero. A day with only unrated entries yields no point.
func RatingSeries(entries []Entry, window Window, now time.Time) []RatingPoint {
	type bucket struct {
		sum   float64
		count int
	}

	loc := now.Location()
	buckets := make(map[time.Time]*bucket)

	for _, entry := range entries {
		if !entry.Rated() || !window.Contains(entry.UseDate, now) {
			continue
		}
		day := startOfDay(entry.UseDate, loc)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.sum += clampRating(entry.Rating)
		b.count++
	}

	points := make([]RatingPoint, 0, len(buckets))
	for day, b := range buckets {
		points = append(points, RatingPoint{
			Date:          day,
			AverageRating: b.sum / float64(b.count),
			Entries:       b.count,
		})
	}

	slices.SortFunc(points, func(a, b RatingPoint) int {
		return a.Date.Compare(b.Date)
	})
	return points
}

func clampRating(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > MaxRating:
		return MaxRating
	default:
		return r
	}
}
