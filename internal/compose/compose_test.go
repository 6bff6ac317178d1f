package compose

import (
	"encoding/json"
	"testing"

	"livelens/internal/catalog"
	"livelens/internal/domain/venues"
	"livelens/internal/searchapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComposer() *Composer {
	cat := catalog.New([]catalog.Entry{
		{ID: "1", Name: "Scotiabank Arena", Image: "img/1.jpg", Rating: 4.7, Description: "Big bowl."},
		{ID: "2", Name: "Massey Hall", Image: "img/2.jpg", Rating: 4.9, Description: "Old hall."},
		{ID: "3", Name: "History", Image: "img/3.jpg", Rating: 4.6},
	}, nil, nil)
	return New(cat, nil)
}

func venue(t *testing.T, raw string) searchapi.Venue {
	t.Helper()
	var v searchapi.Venue
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestSummary_EmptyRecordStillComposes(t *testing.T) {
	c := testComposer()

	s := c.Summary(searchapi.Venue{}, 0)

	assert.Equal(t, "", s.ID)
	assert.Equal(t, "", s.Name)
	assert.Zero(t, s.Rating)
	assert.Equal(t, venues.DefaultCategory, s.Category)
	assert.Equal(t, venues.UnknownAddress, s.Address)
	assert.Equal(t, "img/1.jpg", s.Image)
	assert.Nil(t, s.ReviewCount)
}

func TestSummary_UsesAPIFields(t *testing.T) {
	c := testComposer()

	s := c.Summary(venue(t, `{
		"id": 99, "name": "The Rex", "rating": "4.2", "category": "Jazz Club",
		"tags": ["Rock"], "address": "194 Queen St W", "city": "Toronto",
		"image": "https://img.test/rex.jpg", "reviewCount": 120
	}`), 1)

	assert.Equal(t, "99", s.ID)
	assert.Equal(t, "The Rex", s.Name)
	assert.Equal(t, 4.2, s.Rating)
	assert.Equal(t, "Jazz Club", s.Category)
	assert.Equal(t, "194 Queen St W", s.Address)
	assert.Equal(t, "https://img.test/rex.jpg", s.Image)
	require.NotNil(t, s.ReviewCount)
	assert.Equal(t, 120, *s.ReviewCount)
}

func TestSummary_Category(t *testing.T) {
	c := testComposer()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"first tag of a list", `{"tags": ["Rock", "Indoor"]}`, "Rock"},
		{"string-encoded list", `{"tags": "[\"Jazz\", \"Bar\"]"}`, "Jazz"},
		{"malformed string", `{"tags": "Rock, Indoor"}`, venues.DefaultCategory},
		{"empty list", `{"tags": []}`, venues.DefaultCategory},
		{"blank string", `{"tags": ""}`, venues.DefaultCategory},
		{"unsupported type", `{"tags": {"genre": "rock"}}`, venues.DefaultCategory},
		{"category wins over tags", `{"category": "Arena", "tags": ["Rock"]}`, "Arena"},
		{"blank tags skipped", `{"tags": ["  ", "Folk"]}`, "Folk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Summary(venue(t, tt.raw), 0).Category)
		})
	}
}

func TestSummary_ImageFallbackWrapsAround(t *testing.T) {
	c := testComposer()

	assert.Equal(t, "img/3.jpg", c.Summary(venue(t, `{"id": "x"}`), 5).Image)
	assert.Equal(t, "img/1.jpg", c.Summary(venue(t, `{"id": "x", "image": "  "}`), 3).Image)
}

func TestSummary_ImageFallbackUnknownIndex(t *testing.T) {
	c := testComposer()

	assert.Equal(t, "img/2.jpg", c.Summary(venue(t, `{"id": "2"}`), -1).Image)
	assert.Equal(t, "img/1.jpg", c.Summary(venue(t, `{"id": "unknown"}`), -1).Image)
}

func TestSummary_EmptyCatalogLeavesImageEmpty(t *testing.T) {
	c := New(catalog.New(nil, nil, nil), nil)

	s := c.Summary(venue(t, `{"id": "1"}`), 4)
	assert.Empty(t, s.Image)
	assert.Equal(t, venues.DefaultCategory, s.Category)
}

func TestSummary_ReviewCount(t *testing.T) {
	c := testComposer()

	tests := []struct {
		raw  string
		want *int
	}{
		{`{"reviewCount": 12}`, intPtr(12)},
		{`{"review_count": 7}`, intPtr(7)},
		{`{"reviewCount": 3, "review_count": 9}`, intPtr(3)},
		{`{"reviewCount": null, "review_count": "15"}`, intPtr(15)},
		{`{"reviewCount": -1}`, nil},
		{`{"reviewCount": 2.5}`, nil},
		{`{"reviewCount": 0}`, intPtr(0)},
		{`{"review_count": 1e20}`, nil},
		{`{"reviewCount": "1e300"}`, nil},
		{`{"reviewCount": 2147483647}`, intPtr(2147483647)},
		{`{"reviewCount": 2147483648, "review_count": 40}`, intPtr(40)},
		{`{}`, nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Summary(venue(t, tt.raw), 0).ReviewCount, tt.raw)
	}
}

func TestSummary_Address(t *testing.T) {
	c := testComposer()

	assert.Equal(t, "1 Yonge St", c.Summary(venue(t, `{"address": "1 Yonge St", "city": "Toronto"}`), 0).Address)
	assert.Equal(t, "Toronto", c.Summary(venue(t, `{"address": "", "city": "Toronto"}`), 0).Address)
	assert.Equal(t, venues.UnknownAddress, c.Summary(venue(t, `{"address": null}`), 0).Address)
}

func TestSummary_NameAndRatingFallBackToOwnEntry(t *testing.T) {
	c := testComposer()

	s := c.Summary(venue(t, `{"id": "2"}`), 0)
	assert.Equal(t, "Massey Hall", s.Name)
	assert.Equal(t, 4.9, s.Rating)
	assert.Equal(t, "img/1.jpg", s.Image, "image fallback is positional when the index is known")
}

func TestSummary_RatingClamped(t *testing.T) {
	c := testComposer()

	assert.Equal(t, 5.0, c.Summary(venue(t, `{"rating": 7.5}`), 0).Rating)
	assert.Equal(t, 0.0, c.Summary(venue(t, `{"rating": -2}`), 0).Rating)
}

func TestDetail_Description(t *testing.T) {
	c := testComposer()

	assert.Equal(t, "From the API.", c.Detail(venue(t, `{"id": "1", "description": "From the API."}`), 0).Description)
	assert.Equal(t, "Big bowl.", c.Detail(venue(t, `{"id": "1"}`), 0).Description)
	assert.Empty(t, c.Detail(venue(t, `{"id": "42"}`), 0).Description)
}

func TestSummaries_KeepsPositions(t *testing.T) {
	c := testComposer()

	out := c.Summaries([]searchapi.Venue{
		venue(t, `{"id": "a"}`),
		venue(t, `{"id": "b"}`),
		venue(t, `{"id": "c"}`),
		venue(t, `{"id": "d"}`),
	})

	require.Len(t, out, 4)
	assert.Equal(t, []string{"img/1.jpg", "img/2.jpg", "img/3.jpg", "img/1.jpg"},
		[]string{out[0].Image, out[1].Image, out[2].Image, out[3].Image})

	assert.NotNil(t, c.Summaries(nil))
}

func TestReviews(t *testing.T) {
	c := testComposer()

	var raw []searchapi.Review
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": "r2", "overall_rating": 3, "text": "Fine.", "created_at": "2024-05-01T20:00:00Z"},
		{"id": "r1", "overall_rating": 9, "text": "Loud!", "section": "112", "row": "F"},
		{"id": 3, "overall_rating": "bad", "row": "A"}
	]`), &raw))

	out := c.Reviews(raw)
	require.Len(t, out, 3)

	assert.Equal(t, "r2", out[0].ID, "order is preserved")
	assert.Equal(t, AnonymousAuthor, out[0].Author)
	assert.Equal(t, 3.0, out[0].Rating)
	assert.Equal(t, "2024-05-01T20:00:00Z", out[0].CreatedAt)
	assert.Nil(t, out[0].Seat)

	assert.Equal(t, 5.0, out[1].Rating)
	assert.Equal(t, &venues.Seat{Section: "112", Row: "F"}, out[1].Seat)

	assert.Equal(t, "3", out[2].ID)
	assert.Zero(t, out[2].Rating)
	assert.Equal(t, &venues.Seat{Row: "A"}, out[2].Seat)

	assert.Empty(t, c.Reviews(nil))
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		raw     string
		want    []string
		wantErr bool
	}{
		{``, nil, false},
		{`null`, nil, false},
		{`["Rock", 7]`, []string{"Rock", "7"}, false},
		{`"[\"Pop\"]"`, []string{"Pop"}, false},
		{`"   "`, nil, false},
		{`"{not a list"`, nil, true},
		{`true`, nil, true},
	}

	for _, tt := range tests {
		got, err := ParseTags(json.RawMessage(tt.raw))
		if tt.wantErr {
			assert.ErrorIs(t, err, errMalformedTags, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func intPtr(n int) *int {
	return &n
}
