package insights

import (
	"slices"
	"time"
)

// TriedStrains returns the catalog strains that appear in the entries, most
// recently used first. Ties keep the order in which the strain first shows
// up in entries. Unknown strain ids are dropped, as are repeated catalog ids
// after the first.
func TriedStrains(entries []Entry, catalog []Strain) []Strain {
	type usage struct {
		last  time.Time
		order int
	}

	used := make(map[uint]*usage)
	for _, entry := range entries {
		u, ok := used[entry.StrainID]
		if !ok {
			used[entry.StrainID] = &usage{last: entry.UseDate, order: len(used)}
			continue
		}
		if entry.UseDate.After(u.last) {
			u.last = entry.UseDate
		}
	}

	seen := make(map[uint]struct{})
	tried := make([]Strain, 0, len(used))
	for _, strain := range catalog {
		if _, ok := used[strain.ID]; !ok {
			continue
		}
		if _, dup := seen[strain.ID]; dup {
			continue
		}
		seen[strain.ID] = struct{}{}
		tried = append(tried, strain)
	}

	slices.SortFunc(tried, func(a, b Strain) int {
		ua, ub := used[a.ID], used[b.ID]
		if c := ub.last.Compare(ua.last); c != 0 {
			return c
		}
		return ua.order - ub.order
	})
	return tried
}

// TriedIDs is the set of strain ids referenced by entries.
func TriedIDs(entries []Entry) map[uint]struct{} {
	ids := make(map[uint]struct{}, len(entries))
	for _, entry := range entries {
		ids[entry.StrainID] = struct{}{}
	}
	return ids
}
