// Package insights turns a user's diary history and the strain catalog into
// dashboard view-models. Every function here is pure and total: empty input,
// duplicate ids and out-of-range ratings degrade to smaller results, never to
// errors.
package insights

import "time"

// MaxRating is the upper bound of a diary rating. Zero means "not yet rated".
const MaxRating = 5.0

// Entry is one logged usage occasion.
type Entry struct {
	ID            uint
	UserID        uint
	OrderID       uint
	StrainID      uint
	OrderDate     time.Time
	UseDate       time.Time
	DurationHours float64
	Rating        float64
	Feelings      []string
	Reasons       []string
	Notes         string
}

// Rated reports whether the user has scored the entry.
func (e Entry) Rated() bool {
	return e.Rating > 0
}

// Strain is a read-only catalog entry.
type Strain struct {
	ID          uint
	Name        string
	THCMin      float64
	THCMax      float64
	CBDMin      float64
	CBDMax      float64
	Price       float64
	Type        string
	Parents     []string
	Aromas      []string
	Effects     []string
	Description string
	MainURL     string
	ImageURL    string
}

// RatingPoint is the mean rating for one calendar day.
type RatingPoint struct {
	Date          time.Time
	AverageRating float64
	Entries       int
}

// EffectCount is how often a feeling tag was logged.
type EffectCount struct {
	Effect string
	Count  int
}

// Strategy describes how a recommendation was produced.
type Strategy string

const (
	StrategyMatched Strategy = "matched"
	StrategyRandom  Strategy = "random"
)

// Recommendation pairs an untried strain with its effect-overlap score.
// Random picks carry a zero score.
type Recommendation struct {
	Strain   Strain
	Score    int
	Strategy Strategy
}

// Shuffler is the randomness used by the recommendation fallback.
// *rand.Rand from math/rand and math/rand/v2 both satisfy it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}
