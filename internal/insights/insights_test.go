package insights

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 5, 14, 18, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func entry(strainID uint, useDate time.Time, rating float64, feelings ...string) Entry {
	return Entry{UserID: 1, StrainID: strainID, UseDate: useDate, Rating: rating, Feelings: feelings}
}

func strainNames(strains []Strain) []string {
	names := make([]string, 0, len(strains))
	for _, s := range strains {
		names = append(names, s.Name)
	}
	return names
}

func recommendationNames(recs []Recommendation) []string {
	names := make([]string, 0, len(recs))
	for _, r := range recs {
		names = append(names, r.Strain.Name)
	}
	return names
}

func TestParseWindow(t *testing.T) {
	cases := map[string]Window{
		"7d":      Last7Days,
		"":        Last7Days,
		"bogus":   Last7Days,
		"30d":     Last30Days,
		" MONTH ": Last30Days,
		"all":     AllTime,
		"AllTime": AllTime,
	}
	for input, want := range cases {
		assert.Equal(t, want, ParseWindow(input), "input %q", input)
	}
}

func TestWindowContains(t *testing.T) {
	assert.True(t, Last7Days.Contains(daysAgo(7), testNow), "lower bound is inclusive")
	assert.False(t, Last7Days.Contains(daysAgo(7).Add(-time.Second), testNow))
	assert.False(t, Last7Days.Contains(testNow.Add(time.Minute), testNow), "future entries are outside")
	assert.True(t, Last30Days.Contains(daysAgo(30), testNow))
	assert.False(t, Last30Days.Contains(daysAgo(31), testNow))
	assert.True(t, AllTime.Contains(time.Time{}, testNow))
	assert.True(t, AllTime.Contains(testNow.AddDate(1, 0, 0), testNow))
}

func TestRatingSeriesAveragesSameDay(t *testing.T) {
	day := time.Date(2025, 5, 13, 9, 0, 0, 0, time.UTC)
	entries := []Entry{
		entry(1, day, 3.0),
		entry(2, day.Add(6*time.Hour), 5.0),
	}

	series := RatingSeries(entries, Last7Days, testNow)

	require.Len(t, series, 1)
	assert.Equal(t, time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC), series[0].Date)
	assert.InDelta(t, 4.0, series[0].AverageRating, 1e-9)
	assert.Equal(t, 2, series[0].Entries)
}

func TestRatingSeriesSortedAndWindowed(t *testing.T) {
	entries := []Entry{
		entry(1, daysAgo(1), 4),
		entry(1, daysAgo(10), 2),
		entry(1, daysAgo(3), 5),
		entry(1, daysAgo(40), 1),
	}

	week := RatingSeries(entries, Last7Days, testNow)
	require.Len(t, week, 2)
	assert.True(t, week[0].Date.Before(week[1].Date))

	month := RatingSeries(entries, Last30Days, testNow)
	require.Len(t, month, 3)

	all := RatingSeries(entries, AllTime, testNow)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].Date.Before(all[i].Date), "series must be strictly ascending")
	}
}

func TestRatingSeriesExcludesUnratedEntries(t *testing.T) {
	day := daysAgo(2)
	entries := []Entry{
		entry(1, day, 0),
		entry(2, day, 4),
		entry(3, daysAgo(1), 0),
	}

	series := RatingSeries(entries, Last7Days, testNow)

	require.Len(t, series, 1, "a day with only unrated entries produces no point")
	assert.InDelta(t, 4.0, series[0].AverageRating, 1e-9)
	assert.Equal(t, 1, series[0].Entries)
}

func TestRatingSeriesClampsOutOfRangeRatings(t *testing.T) {
	day := daysAgo(1)
	entries := []Entry{entry(1, day, 9), entry(2, day, -3), entry(3, day, 5)}

	series := RatingSeries(entries, AllTime, testNow)

	require.Len(t, series, 1)
	assert.GreaterOrEqual(t, series[0].AverageRating, 0.0)
	assert.LessOrEqual(t, series[0].AverageRating, MaxRating)
	assert.InDelta(t, 5.0, series[0].AverageRating, 1e-9, "-3 is unrated, 9 clamps to 5")
}

func TestRatingSeriesUsesLocationOfNow(t *testing.T) {
	bangkok := time.FixedZone("ICT", 7*60*60)
	now := time.Date(2025, 5, 14, 12, 0, 0, 0, bangkok)
	// 20:00 UTC on the 12th is 03:00 on the 13th in Bangkok.
	late := time.Date(2025, 5, 12, 20, 0, 0, 0, time.UTC)

	series := RatingSeries([]Entry{entry(1, late, 3)}, Last7Days, now)

	require.Len(t, series, 1)
	assert.Equal(t, time.Date(2025, 5, 13, 0, 0, 0, 0, bangkok), series[0].Date)
}

func TestEffectFrequencyTopSixStable(t *testing.T) {
	entries := []Entry{
		entry(1, daysAgo(1), 4, "Relaxed", "Happy", "Sleepy"),
		entry(2, daysAgo(2), 4, "Happy", "Creative", "Uplifted"),
		entry(3, daysAgo(3), 4, "Focused", "Euphoric", "Hungry"),
		entry(4, daysAgo(4), 4, "Happy"),
	}

	got := EffectFrequency(entries)

	want := []EffectCount{
		{Effect: "Happy", Count: 3},
		{Effect: "Relaxed", Count: 1},
		{Effect: "Sleepy", Count: 1},
		{Effect: "Creative", Count: 1},
		{Effect: "Uplifted", Count: 1},
		{Effect: "Focused", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("EffectFrequency mismatch (-want +got):\n%s", diff)
	}
}

func TestEffectFrequencyEmpty(t *testing.T) {
	got := EffectFrequency(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTriedStrainsOrderedByMostRecentUse(t *testing.T) {
	catalog := []Strain{{ID: 1, Name: "OG Kush"}, {ID: 2, Name: "Blue Dream"}, {ID: 3, Name: "Gorilla Glue"}, {ID: 4, Name: "Sour Diesel"}}
	entries := []Entry{
		entry(1, daysAgo(5), 4),
		entry(2, daysAgo(3), 4),
		entry(1, daysAgo(1), 5),
		entry(99, daysAgo(0), 5),
	}

	got := TriedStrains(entries, catalog)

	assert.Equal(t, []string{"OG Kush", "Blue Dream"}, strainNames(got))
}

func TestTriedStrainsOnlyFromCatalogAndEntries(t *testing.T) {
	catalog := []Strain{{ID: 1, Name: "A"}, {ID: 1, Name: "A duplicate"}, {ID: 2, Name: "B"}}
	entries := []Entry{entry(1, daysAgo(1), 0), entry(7, daysAgo(1), 3)}

	got := TriedStrains(entries, catalog)

	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)
	assert.Empty(t, TriedStrains(nil, catalog))
}

func TestRecommendMatchesPreferredEffect(t *testing.T) {
	catalog := []Strain{
		{ID: 1, Name: "A", Effects: []string{"Relaxed"}},
		{ID: 2, Name: "B", Effects: []string{"Relaxed"}},
	}
	entries := []Entry{entry(2, daysAgo(1), 4.5, "Relaxed")}

	got := Recommend(entries, catalog, rand.New(rand.NewPCG(1, 2)))

	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Strain.Name)
	assert.Equal(t, 2, got[0].Score)
	assert.Equal(t, StrategyMatched, got[0].Strategy)
}

func TestRecommendScoresCaseInsensitiveAndRanks(t *testing.T) {
	catalog := []Strain{
		{ID: 1, Name: "Tried"},
		{ID: 2, Name: "One", Effects: []string{"happy"}},
		{ID: 3, Name: "Three", Effects: []string{"RELAXED", "Happy", "sleepy"}},
		{ID: 4, Name: "None", Effects: []string{"Energetic"}},
		{ID: 5, Name: "Two", Effects: []string{"Relaxed", "Happy"}},
		{ID: 6, Name: "Also One", Effects: []string{"Sleepy"}},
	}
	entries := []Entry{
		entry(1, daysAgo(1), 5, "Relaxed", "Happy"),
		entry(1, daysAgo(2), 4, "relaxed", "Sleepy"),
		entry(1, daysAgo(3), 2, "Energetic", "Energetic"),
	}

	assert.Equal(t, []string{"relaxed", "happy", "sleepy"}, PreferredEffects(entries))

	got := Recommend(entries, catalog, nil)

	assert.Equal(t, []string{"Three", "Two", "One"}, recommendationNames(got))
	assert.Equal(t, 6, got[0].Score)
	assert.Equal(t, 4, got[1].Score)
	assert.Equal(t, 2, got[2].Score)
}

func TestRecommendRandomFallbacks(t *testing.T) {
	catalog := []Strain{
		{ID: 1, Name: "A", Effects: []string{"Focused"}},
		{ID: 2, Name: "B", Effects: []string{"Focused"}},
		{ID: 3, Name: "C"},
		{ID: 4, Name: "D"},
		{ID: 5, Name: "E"},
	}

	tests := []struct {
		name    string
		entries []Entry
	}{
		{name: "no history", entries: nil},
		{name: "no highly rated entries", entries: []Entry{entry(1, daysAgo(1), 3, "Focused")}},
		{name: "no strain matches", entries: []Entry{entry(1, daysAgo(1), 5, "Sleepy")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(tt.entries, catalog, rand.New(rand.NewPCG(7, 7)))
			require.Len(t, got, RecommendationLimit)

			tried := TriedIDs(tt.entries)
			for _, rec := range got {
				assert.Equal(t, StrategyRandom, rec.Strategy)
				assert.Zero(t, rec.Score)
				_, isTried := tried[rec.Strain.ID]
				assert.False(t, isTried, "recommended a tried strain %d", rec.Strain.ID)
			}
		})
	}
}

func TestRecommendRandomIsSeedDeterministic(t *testing.T) {
	catalog := make([]Strain, 0, 20)
	for i := 1; i <= 20; i++ {
		catalog = append(catalog, Strain{ID: uint(i), Name: string(rune('A' + i - 1))})
	}

	first := Recommend(nil, catalog, rand.New(rand.NewPCG(42, 1)))
	second := Recommend(nil, catalog, rand.New(rand.NewPCG(42, 1)))

	assert.Equal(t, recommendationNames(first), recommendationNames(second))
	assert.Equal(t, []string{"A", "B", "C"}, recommendationNames(Recommend(nil, catalog, nil)))
}

func TestRecommendNoCandidates(t *testing.T) {
	catalog := []Strain{{ID: 1, Name: "A"}}
	entries := []Entry{entry(1, daysAgo(1), 5, "Relaxed")}

	got := Recommend(entries, catalog, rand.New(rand.NewPCG(1, 1)))
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, Recommend(nil, nil, nil))
}

func TestRecommendNeverReturnsTriedStrain(t *testing.T) {
	catalog := []Strain{
		{ID: 1, Name: "A", Effects: []string{"Relaxed"}},
		{ID: 2, Name: "B", Effects: []string{"Relaxed"}},
		{ID: 2, Name: "B again", Effects: []string{"Relaxed"}},
		{ID: 0, Name: "No id", Effects: []string{"Relaxed"}},
		{ID: 3, Name: "C", Effects: []string{"Relaxed"}},
	}
	entries := []Entry{entry(1, daysAgo(1), 5, "Relaxed"), entry(3, daysAgo(2), 1)}

	got := Recommend(entries, catalog, nil)

	assert.Equal(t, []string{"B"}, recommendationNames(got))
}

func TestBuildDashboardEmptyHistory(t *testing.T) {
	catalog := []Strain{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}

	dash := BuildDashboard(1, nil, catalog, Last30Days, testNow, rand.New(rand.NewPCG(3, 3)))

	assert.Empty(t, dash.RatingSeries)
	assert.Empty(t, dash.CommonEffects)
	assert.Empty(t, dash.TriedStrains)
	assert.Len(t, dash.Recommendations, 2)
	assert.Zero(t, dash.TotalEntries)
}

func TestBuildDashboardIgnoresOtherUsers(t *testing.T) {
	catalog := []Strain{{ID: 1, Name: "A"}, {ID: 2, Name: "B", Effects: []string{"Happy"}}}
	entries := []Entry{
		entry(1, daysAgo(1), 5, "Happy"),
		{UserID: 2, StrainID: 2, UseDate: daysAgo(1), Rating: 1, Feelings: []string{"Anxious"}},
	}

	dash := BuildDashboard(1, entries, catalog, Last7Days, testNow, nil)

	assert.Equal(t, 1, dash.TotalEntries)
	assert.Equal(t, 1, dash.RatedEntries)
	assert.Equal(t, []EffectCount{{Effect: "Happy", Count: 1}}, dash.CommonEffects)
	assert.Equal(t, []string{"A"}, strainNames(dash.TriedStrains))
	require.Len(t, dash.Recommendations, 1)
	assert.Equal(t, "B", dash.Recommendations[0].Strain.Name)
}
