package browse

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"livelens/internal/catalog"
	"livelens/internal/compose"
	"livelens/internal/detail"
	"livelens/internal/fetch"
	"livelens/internal/searchapi"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	apiURL     = "http://api.test"
	venuesKey  = "GET " + apiURL + "/search/venues"
	reviewsKey = "GET " + apiURL + "/search/reviews"
	quiet      = 30 * time.Millisecond
)

const allVenues = `{"results": [
	{"id": "1", "name": "Scotiabank Arena", "tags": ["Arena"], "reviewCount": 3245},
	{"id": "2", "name": "Massey Hall", "address": "178 Victoria St"},
	{"id": "3", "name": "Lee's Palace", "city": "Toronto"}
], "total": 3}`

const jazzVenues = `{"results": [{"id": "9", "name": "The Rex", "category": "Jazz Club"}], "total": 1}`

// queryLog records the q parameter of every listing request.
type queryLog struct {
	mu      sync.Mutex
	queries []string
}

func (l *queryLog) add(q string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries = append(l.queries, q)
}

func (l *queryLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.queries...)
}

func testDeps(t *testing.T, mt *httpmock.MockTransport) Deps {
	t.Helper()

	cat := catalog.New([]catalog.Entry{
		{ID: "1", Name: "Scotiabank Arena", Image: "img/1.jpg"},
		{ID: "2", Name: "Massey Hall", Image: "img/2.jpg"},
	}, nil, nil)

	return Deps{
		API:      searchapi.NewClient(apiURL, &http.Client{Transport: mt}),
		Composer: compose.New(cat, nil),
		Fetch:    fetch.Config{Timeout: time.Second},
		Quiet:    quiet,
		Metrics:  &fetch.Metrics{},
	}
}

func registerVenues(mt *httpmock.MockTransport, log *queryLog, bodies map[string]string) {
	mt.RegisterResponder(http.MethodGet, apiURL+"/search/venues", func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query().Get("q")
		log.add(q)
		body, ok := bodies[q]
		if !ok {
			body = `{"results": [], "total": 0}`
		}
		return httpmock.NewStringResponse(http.StatusOK, body), nil
	})
}

func waitForStatus(t *testing.T, s *Session, status string) ListingSnapshot {
	t.Helper()
	var snap ListingSnapshot
	require.Eventually(t, func() bool {
		snap = s.Listing()
		return snap.Status == status
	}, 2*time.Second, 5*time.Millisecond, "listing never reached %q", status)
	return snap
}

func TestSession_InitialListing(t *testing.T) {
	mt := httpmock.NewMockTransport()
	log := &queryLog{}
	registerVenues(mt, log, map[string]string{"": allVenues})

	s := NewSession("s1", testDeps(t, mt))
	defer s.Close()

	assert.Equal(t, ListingLoading, s.Listing().Status)

	snap := waitForStatus(t, s, ListingReady)
	s.Wait()

	require.Len(t, snap.Venues, 3)
	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, "Arena", snap.Venues[0].Category)
	require.NotNil(t, snap.Venues[0].ReviewCount)
	assert.Equal(t, 3245, *snap.Venues[0].ReviewCount)
	assert.Equal(t, "178 Victoria St", snap.Venues[1].Address)
	assert.Equal(t, "img/1.jpg", snap.Venues[2].Image, "image fallback wraps around the catalog")
	assert.Equal(t, []string{""}, log.all())
}

func TestSession_EmptyResults(t *testing.T) {
	mt := httpmock.NewMockTransport()
	registerVenues(mt, &queryLog{}, nil)

	s := NewSession("s1", testDeps(t, mt))
	defer s.Close()

	snap := waitForStatus(t, s, ListingEmpty)
	assert.Empty(t, snap.Venues)
	assert.NotNil(t, snap.Venues)
}

func TestSession_ListingFailureShowsEmpty(t *testing.T) {
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder(http.MethodGet, apiURL+"/search/venues", httpmock.NewStringResponder(http.StatusServiceUnavailable, `down`))

	deps := testDeps(t, mt)
	s := NewSession("s1", deps)
	defer s.Close()

	waitForStatus(t, s, ListingEmpty)
	assert.EqualValues(t, 1, deps.Metrics.Failures.Load())
}

func TestSession_TypingIsDebounced(t *testing.T) {
	mt := httpmock.NewMockTransport()
	log := &queryLog{}
	registerVenues(mt, log, map[string]string{"jazz": jazzVenues})

	s := NewSession("s1", testDeps(t, mt))
	defer s.Close()

	s.Input("j")
	s.Input("ja")
	s.Input("jaz")
	s.Input("jazz")
	assert.Equal(t, "jazz", s.Listing().Query)

	snap := waitForStatus(t, s, ListingReady)
	s.Wait()
	time.Sleep(3 * quiet)

	assert.Equal(t, []string{"jazz"}, log.all(), "only the settled value reaches the network")
	assert.Equal(t, "jazz", snap.Committed)
	require.Len(t, snap.Venues, 1)
	assert.Equal(t, "The Rex", snap.Venues[0].Name)
}

func TestSession_PreviousResultsStayWhileLoading(t *testing.T) {
	mt := httpmock.NewMockTransport()
	release := make(chan struct{})
	mt.RegisterResponder(http.MethodGet, apiURL+"/search/venues", func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("q") == "jazz" {
			<-release
			return httpmock.NewStringResponse(http.StatusOK, jazzVenues), nil
		}
		return httpmock.NewStringResponse(http.StatusOK, allVenues), nil
	})

	s := NewSession("s1", testDeps(t, mt))
	defer s.Close()
	waitForStatus(t, s, ListingReady)

	s.Input("jazz")
	require.Eventually(t, func() bool { return s.Listing().Committed == "jazz" }, time.Second, 5*time.Millisecond)

	snap := s.Listing()
	assert.Equal(t, ListingReady, snap.Status)
	assert.Len(t, snap.Venues, 3, "earlier results remain visible")

	close(release)
	require.Eventually(t, func() bool { return len(s.Listing().Venues) == 1 }, time.Second, 5*time.Millisecond)
	s.Wait()
}

func TestSession_NavigateFromListingHandsOff(t *testing.T) {
	mt := httpmock.NewMockTransport()
	registerVenues(mt, &queryLog{}, map[string]string{"": allVenues})
	mt.RegisterResponder(http.MethodGet, apiURL+"/search/reviews", httpmock.NewStringResponder(http.StatusOK, `{"results": []}`))

	s := NewSession("s1", testDeps(t, mt))
	defer s.Close()
	waitForStatus(t, s, ListingReady)
	s.Wait()

	listingCalls := mt.GetCallCountInfo()[venuesKey]

	v, err := s.NavigateFromListing("2")
	require.NoError(t, err)
	assert.True(t, v.HandedOff())

	s.Wait()
	snap := v.Snapshot()
	assert.Equal(t, detail.StateResolved, snap.State)
	assert.Equal(t, "Massey Hall", snap.Venue.Name)
	assert.Equal(t, 1, snap.Index)
	assert.Equal(t, detail.ReviewsEmpty, snap.Reviews.Status)
	assert.Equal(t, listingCalls, mt.GetCallCountInfo()[venuesKey], "no listing request for a handed-off venue")

	current, ok := s.Visit()
	require.True(t, ok)
	assert.Same(t, v, current)

	_, err = s.NavigateFromListing("77")
	assert.ErrorIs(t, err, ErrNotInListing)
}

func TestSession_StaleReviewsAfterNavigationAreDropped(t *testing.T) {
	mt := httpmock.NewMockTransport()
	registerVenues(mt, &queryLog{}, map[string]string{"": allVenues})

	releaseFirst := make(chan struct{})
	mt.RegisterResponder(http.MethodGet, apiURL+"/search/reviews", func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("venue_id") == "1" {
			<-releaseFirst
			return httpmock.NewStringResponse(http.StatusOK, `{"results": [{"id": "old", "overall_rating": 1}]}`), nil
		}
		return httpmock.NewStringResponse(http.StatusOK, `{"results": [{"id": "new", "overall_rating": 5}]}`), nil
	})

	deps := testDeps(t, mt)
	s := NewSession("s1", deps)
	defer s.Close()
	waitForStatus(t, s, ListingReady)
	s.Wait()

	first, err := s.NavigateFromListing("1")
	require.NoError(t, err)
	second, err := s.NavigateFromListing("2")
	require.NoError(t, err)

	close(releaseFirst)
	s.Wait()

	current, _ := s.Visit()
	assert.Same(t, second, current)

	snap := current.Snapshot()
	require.Len(t, snap.Reviews.Items, 1)
	assert.Equal(t, "new", snap.Reviews.Items[0].ID)
	assert.Equal(t, detail.ReviewsLoading, first.Snapshot().Reviews.Status)
	assert.GreaterOrEqual(t, deps.Metrics.Dropped.Load(), int64(1))
}

func TestSession_NavigateColdScans(t *testing.T) {
	mt := httpmock.NewMockTransport()
	log := &queryLog{}
	registerVenues(mt, log, map[string]string{"": allVenues})
	mt.RegisterResponder(http.MethodGet, apiURL+"/search/reviews", httpmock.NewStringResponder(http.StatusOK, `{"results": []}`))

	s := NewSession("s1", testDeps(t, mt))
	defer s.Close()

	v := s.Navigate("3", nil)
	require.Eventually(t, func() bool { return v.State() == detail.StateResolved }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Lee's Palace", v.Snapshot().Venue.Name)

	s.Wait()
}

func TestSession_CloseCancelsPendingQuery(t *testing.T) {
	mt := httpmock.NewMockTransport()
	log := &queryLog{}
	registerVenues(mt, log, nil)

	s := NewSession("s1", testDeps(t, mt))
	s.Input("never sent")
	s.Close()

	time.Sleep(3 * quiet)
	s.Wait()

	assert.Empty(t, log.all())
	assert.Zero(t, mt.GetTotalCallCount())
}
