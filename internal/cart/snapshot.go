package cart

// Entry is the persisted form of a cart line. Prices are not stored; they
// are resolved from the catalog when the cart is restored.
type Entry struct {
	StrainID uint    `json:"strain_id"`
	Grams    float64 `json:"grams"`
}

// Snapshot returns the cart as strain/quantity pairs.
func (c *Cart) Snapshot() []Entry {
	entries := make([]Entry, 0, len(c.lines))
	for _, line := range c.lines {
		entries = append(entries, Entry{StrainID: line.Item.StrainID, Grams: line.Grams})
	}
	return entries
}

// Restore rebuilds a cart from a snapshot. lookup resolves the current
// catalog item; entries it cannot resolve are dropped and their ids
// returned so callers can report them.
func Restore(entries []Entry, lookup func(strainID uint) (Item, bool)) (*Cart, []uint) {
	c := New()
	var missing []uint
	for _, entry := range entries {
		item, ok := lookup(entry.StrainID)
		if !ok {
			missing = append(missing, entry.StrainID)
			continue
		}
		c.Add(item, entry.Grams)
	}
	return c, missing
}
