package insights

import (
	"strings"
	"time"
)

// Window selects how far back the rating series looks.
type Window string

const (
	Last7Days  Window = "7d"
	Last30Days Window = "30d"
	AllTime    Window = "all"
)

// ParseWindow accepts the short form (7d/30d/all) plus a few spelled-out
// aliases. Anything unrecognised falls back to Last7Days.
func ParseWindow(raw string) Window {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "30d", "30", "month", "past30days":
		return Last30Days
	case "all", "alltime", "all_time":
		return AllTime
	default:
		return Last7Days
	}
}

// Contains reports whether t lies inside the window ending at now.
// The bounds are inclusive; AllTime accepts every instant.
func (w Window) Contains(t, now time.Time) bool {
	var days int
	switch w {
	case Last7Days:
		days = 7
	case Last30Days:
		days = 30
	default:
		return true
	}

	start := now.AddDate(0, 0, -days)
	return !t.Before(start) && !t.After(now)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
