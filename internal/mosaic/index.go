package mosaic

// Match is the result of a nearest-color search.
type Match struct {
	Entry    Entry
	Distance float64
}

// Nearest returns the catalog entry whose mean color is closest to target.
//
// The whole catalog is scanned in order and an entry only replaces the current
// best on a strictly smaller distance, so among equidistant entries the first
// one wins. Returns ErrNoCandidates for an empty or nil catalog.
func (c *Catalog) Nearest(target MeanColor) (Match, error) {
	if c.Len() == 0 {
		return Match{}, ErrNoCandidates
	}

	best := Match{Entry: c.entries[0], Distance: Distance(target, c.entries[0].Color)}
	for _, e := range c.entries[1:] {
		if d := Distance(target, e.Color); d < best.Distance {
			best = Match{Entry: e, Distance: d}
		}
	}
	return best, nil
}

// NearestID is Nearest reduced to the matched identifier.
func (c *Catalog) NearestID(target MeanColor) (string, error) {
	m, err := c.Nearest(target)
	if err != nil {
		return "", err
	}
	return m.Entry.ID, nil
}
