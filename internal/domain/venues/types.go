package venues

// UnknownAddress is rendered when neither an address nor a city is known.
const UnknownAddress = "—"

// DefaultCategory is used when no category or tag can be derived.
const DefaultCategory = "Venue"

// Summary is the canonical card shape produced by the listing query or by
// the reference catalog fallback.
type Summary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"` // 0-5
	Category string  `json:"category"`
	Address  string  `json:"address"`
	Image    string  `json:"image"`

	// ReviewCount stays nil when the source carried no count at all.
	ReviewCount *int `json:"reviewCount,omitempty"`
}

// Detail extends Summary with the free-text description shown in the header.
type Detail struct {
	Summary
	Description string `json:"description"`
}

// Seat locates the seat a review was written from.
type Seat struct {
	Section string `json:"section,omitempty"`
	Row     string `json:"row,omitempty"`
}

// Review is a single review of a venue. Order is whatever the server
// returned and is never re-sorted here.
type Review struct {
	ID        string  `json:"id"`
	Author    string  `json:"author"`
	Rating    float64 `json:"rating"` // 0-5
	Comment   string  `json:"comment"`
	CreatedAt string  `json:"createdAt"` // ISO-8601, as received
	Seat      *Seat   `json:"seat,omitempty"`
}
