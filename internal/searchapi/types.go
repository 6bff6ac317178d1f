package searchapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Venue is a listing record exactly as the search API sent it. Fields stay
// raw because the API is inconsistent about names and types; normalization
// belongs to the composer.
type Venue struct {
	ID               json.RawMessage `json:"id,omitempty"`
	Name             json.RawMessage `json:"name,omitempty"`
	Rating           json.RawMessage `json:"rating,omitempty"`
	Tags             json.RawMessage `json:"tags,omitempty"`
	Category         json.RawMessage `json:"category,omitempty"`
	ReviewCount      json.RawMessage `json:"reviewCount,omitempty"`
	ReviewCountSnake json.RawMessage `json:"review_count,omitempty"`
	Address          json.RawMessage `json:"address,omitempty"`
	City             json.RawMessage `json:"city,omitempty"`
	Image            json.RawMessage `json:"image,omitempty"`
	Description      json.RawMessage `json:"description,omitempty"`
}

// VenueID returns the identifier as a string whether the API sent a string
// or a number.
func (v Venue) VenueID() string {
	s, _ := Text(v.ID)
	return s
}

type VenuePage struct {
	Results []Venue `json:"results"`
	Total   int     `json:"total"`
}

type Review struct {
	ID            json.RawMessage `json:"id,omitempty"`
	OverallRating json.RawMessage `json:"overall_rating,omitempty"`
	Text          json.RawMessage `json:"text,omitempty"`
	CreatedAt     json.RawMessage `json:"created_at,omitempty"`
	Section       json.RawMessage `json:"section,omitempty"`
	Row           json.RawMessage `json:"row,omitempty"`
}

// ReviewPage may arrive with results absent or null; both mean no reviews.
type ReviewPage struct {
	Results []Review `json:"results"`
}

// VenueQuery encodes GET /search/venues parameters. An empty Q is omitted,
// which the API treats as unfiltered.
type VenueQuery struct {
	Q     string `url:"q,omitempty"`
	Limit int    `url:"limit"`
}

// ReviewQuery encodes GET /search/reviews parameters.
type ReviewQuery struct {
	VenueID string `url:"venue_id"`
	Limit   int    `url:"limit"`
	SortBy  string `url:"sort_by"`
	Order   string `url:"order"`
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// Text reads a raw field as a non-empty string. Numbers are accepted and
// formatted; anything else reports false.
func Text(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		return s, s != ""
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}

	return "", false
}

// Number reads a raw field as a float. Numeric strings are accepted.
func Number(raw json.RawMessage) (float64, bool) {
	if isNull(raw) {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}

	return 0, false
}
