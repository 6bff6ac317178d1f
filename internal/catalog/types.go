package catalog

import "errors"

var ErrNotFound = errors.New("catalog entry not found")

// Entry is one record of the reference catalog. Images are opaque
// references until the catalog resolves them at load time.
type Entry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Reviews     []Review `json:"reviews,omitempty"`
}

type Review struct {
	ID      string  `json:"id"`
	Author  string  `json:"author"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
	Date    string  `json:"date"`
}

// Stats aggregates the catalog for the landing page counters.
type Stats struct {
	TotalVenues   int     `json:"total_venues"`
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	Featured      *Entry  `json:"featured,omitempty"`
}

// ImageResolver turns an opaque image reference into a deliverable URL.
type ImageResolver interface {
	Resolve(ref string) (string, error)
}
