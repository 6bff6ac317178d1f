// Package compose merges live search API records with the reference catalog
// into the canonical venue shapes. Composition never fails: every missing or
// malformed optional field falls back to a fixed value.
package compose

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"livelens/internal/catalog"
	"livelens/internal/domain/venues"
	"livelens/internal/searchapi"

	"go.uber.org/zap"
)

// AnonymousAuthor labels reviews, since the search API does not expose
// reviewer identity.
const AnonymousAuthor = "Verified attendee"

var errMalformedTags = errors.New("malformed tags")

type Composer struct {
	catalog *catalog.Catalog
	logger  *zap.SugaredLogger
}

func New(cat *catalog.Catalog, logger *zap.SugaredLogger) *Composer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Composer{catalog: cat, logger: logger}
}

// Summary builds the card shape for the venue at position index of a
// listing. A negative index means the position is unknown.
func (c *Composer) Summary(v searchapi.Venue, index int) venues.Summary {
	id := v.VenueID()
	own, hasOwn := c.ownEntry(id)

	s := venues.Summary{
		ID:          id,
		Category:    c.category(v),
		Address:     address(v),
		ReviewCount: reviewCount(v),
	}

	if name, ok := searchapi.Text(v.Name); ok {
		s.Name = name
	} else if hasOwn {
		s.Name = own.Name
	}

	if rating, ok := searchapi.Number(v.Rating); ok {
		s.Rating = clampRating(rating)
	} else if hasOwn {
		s.Rating = clampRating(own.Rating)
	}

	if image, ok := searchapi.Text(v.Image); ok {
		s.Image = image
	} else if fallback, ok := c.catalog.Pick(id, index); ok {
		s.Image = fallback.Image
	}

	return s
}

// Detail builds the header shape for a detail view.
func (c *Composer) Detail(v searchapi.Venue, index int) venues.Detail {
	d := venues.Detail{Summary: c.Summary(v, index)}

	if desc, ok := searchapi.Text(v.Description); ok {
		d.Description = desc
	} else if own, ok := c.ownEntry(d.ID); ok {
		d.Description = own.Description
	}

	return d
}

// Summaries composes a whole listing, keeping positions for image fallback.
func (c *Composer) Summaries(vs []searchapi.Venue) []venues.Summary {
	out := make([]venues.Summary, 0, len(vs))
	for i, v := range vs {
		out = append(out, c.Summary(v, i))
	}
	return out
}

// Reviews maps API reviews in the order received.
func (c *Composer) Reviews(rs []searchapi.Review) []venues.Review {
	out := make([]venues.Review, 0, len(rs))
	for _, r := range rs {
		out = append(out, review(r))
	}
	return out
}

func (c *Composer) ownEntry(id string) (catalog.Entry, bool) {
	if id == "" {
		return catalog.Entry{}, false
	}
	e, err := c.catalog.ByID(id)
	return e, err == nil
}

func (c *Composer) category(v searchapi.Venue) string {
	if cat, ok := searchapi.Text(v.Category); ok {
		return cat
	}

	tags, err := ParseTags(v.Tags)
	if err != nil {
		c.logger.Debugw("venue tags unparseable", "venue_id", v.VenueID(), "error", err)
		return venues.DefaultCategory
	}
	if len(tags) == 0 {
		return venues.DefaultCategory
	}
	return tags[0]
}

// ParseTags accepts a JSON list or a string holding a JSON-encoded list.
// An absent, null or blank value yields no tags and no error.
func ParseTags(raw json.RawMessage) ([]string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedTags, err)
	}

	switch t := decoded.(type) {
	case nil:
		return nil, nil
	case []any:
		return tagList(t), nil
	case string:
		encoded := strings.TrimSpace(t)
		if encoded == "" {
			return nil, nil
		}
		var items []any
		if err := json.Unmarshal([]byte(encoded), &items); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedTags, err)
		}
		return tagList(items), nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", errMalformedTags, decoded)
	}
}

func tagList(items []any) []string {
	tags := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if v = strings.TrimSpace(v); v != "" {
				tags = append(tags, v)
			}
		case float64:
			tags = append(tags, strconv.FormatFloat(v, 'f', -1, 64))
		}
	}
	return tags
}

// Counts above this are treated as malformed rather than wrapped.
const maxReviewCount = math.MaxInt32

func reviewCount(v searchapi.Venue) *int {
	for _, raw := range []json.RawMessage{v.ReviewCount, v.ReviewCountSnake} {
		n, ok := searchapi.Number(raw)
		if !ok || n < 0 || n > maxReviewCount || n != math.Trunc(n) {
			continue
		}
		count := int(n)
		return &count
	}
	return nil
}

func address(v searchapi.Venue) string {
	if a, ok := searchapi.Text(v.Address); ok {
		return a
	}
	if city, ok := searchapi.Text(v.City); ok {
		return city
	}
	return venues.UnknownAddress
}

func review(r searchapi.Review) venues.Review {
	out := venues.Review{Author: AnonymousAuthor}
	out.ID, _ = searchapi.Text(r.ID)
	out.Comment, _ = searchapi.Text(r.Text)
	out.CreatedAt, _ = searchapi.Text(r.CreatedAt)
	if rating, ok := searchapi.Number(r.OverallRating); ok {
		out.Rating = clampRating(rating)
	}

	section, hasSection := searchapi.Text(r.Section)
	row, hasRow := searchapi.Text(r.Row)
	if hasSection || hasRow {
		out.Seat = &venues.Seat{Section: section, Row: row}
	}
	return out
}

func clampRating(r float64) float64 {
	switch {
	case math.IsNaN(r) || r < 0:
		return 0
	case r > 5:
		return 5
	default:
		return r
	}
}
