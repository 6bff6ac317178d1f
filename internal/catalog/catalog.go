package catalog

import (
	"math"

	"go.uber.org/zap"
)

// Catalog is the read-only reference dataset used as a fallback source for
// attributes the live API does not provide. It is safe for concurrent use
// because nothing mutates it after New returns.
type Catalog struct {
	entries []Entry
	byID    map[string]int
}

// New builds a catalog from entries, in order. Image references are passed
// through resolver once here; a reference that fails to resolve is kept as is.
func New(entries []Entry, resolver ImageResolver, logger *zap.SugaredLogger) *Catalog {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	c := &Catalog{
		entries: make([]Entry, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		e.Reviews = append([]Review(nil), e.Reviews...)
		if resolver != nil && e.Image != "" {
			url, err := resolver.Resolve(e.Image)
			if err != nil {
				logger.Warnw("catalog image left unresolved", "venue_id", e.ID, "image", e.Image, "error", err)
			} else {
				e.Image = url
			}
		}
		c.entries[i] = e
		if _, dup := c.byID[e.ID]; !dup {
			c.byID[e.ID] = i
		}
	}

	return c
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// At returns the entry at index modulo the catalog length, so callers can
// index past the end (and below zero) and still land on an entry.
func (c *Catalog) At(index int) (Entry, bool) {
	n := len(c.entries)
	if n == 0 {
		return Entry{}, false
	}
	i := index % n
	if i < 0 {
		i += n
	}
	return c.entries[i], true
}

func (c *Catalog) ByID(id string) (Entry, error) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return c.entries[i], nil
}

// Pick chooses the fallback entry for a venue: positional when the index is
// known (index >= 0), otherwise by identifier, otherwise the first entry.
func (c *Catalog) Pick(id string, index int) (Entry, bool) {
	if index >= 0 {
		return c.At(index)
	}
	if e, err := c.ByID(id); err == nil {
		return e, true
	}
	return c.At(0)
}

// Entries returns a copy of the catalog in order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Stats() Stats {
	s := Stats{TotalVenues: len(c.entries)}
	if s.TotalVenues == 0 {
		return s
	}

	var ratings float64
	for _, e := range c.entries {
		s.TotalReviews += e.ReviewCount
		ratings += e.Rating
	}
	s.AverageRating = math.Round(ratings/float64(s.TotalVenues)*10) / 10

	featured := c.entries[0]
	s.Featured = &featured
	return s
}
