package browse

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"livelens/internal/compose"
	"livelens/internal/debounce"
	"livelens/internal/detail"
	"livelens/internal/domain/venues"
	"livelens/internal/fetch"
	"livelens/internal/searchapi"

	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("browsing session not found")
	ErrNotInListing    = errors.New("venue is not in the current listing")
)

const (
	ListingLoading = "loading"
	ListingEmpty   = "empty"
	ListingReady   = "ready"
)

// Deps are shared by every session.
type Deps struct {
	API      fetch.Searcher
	Composer *compose.Composer
	Fetch    fetch.Config
	Quiet    time.Duration
	Metrics  *fetch.Metrics
	Logger   *zap.SugaredLogger
}

type ListingSnapshot struct {
	Status    string           `json:"status"`
	Query     string           `json:"query"`
	Committed string           `json:"committed"`
	Total     int              `json:"total"`
	Venues    []venues.Summary `json:"venues"`
}

// Session is one user's browsing state: the search box, the listing it
// drives and the detail view currently open.
type Session struct {
	ID string

	ctx       context.Context
	cancel    context.CancelFunc
	orch      *fetch.Orchestrator
	composer  *compose.Composer
	resolver  *detail.Resolver
	debouncer *debounce.Debouncer
	logger    *zap.SugaredLogger
	lastSeen  atomic.Int64

	// guarded by the orchestrator lock
	awaitingFirst bool
	raw           []searchapi.Venue
	summaries     []venues.Summary
	total         int
	visit         *detail.Visit
}

// NewSession starts a session. Like a freshly mounted search page, it
// commits the empty query after the quiet period, which loads the
// unfiltered listing.
func NewSession(id string, deps Deps) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	logger = logger.With("session_id", id)

	ctx, cancel := context.WithCancel(context.Background())
	orch := fetch.New(deps.API, deps.Fetch, deps.Metrics, logger)

	s := &Session{
		ID:            id,
		ctx:           ctx,
		cancel:        cancel,
		orch:          orch,
		composer:      deps.Composer,
		resolver:      detail.NewResolver(orch, deps.Composer, logger),
		logger:        logger,
		awaitingFirst: true,
		summaries:     []venues.Summary{},
	}
	s.debouncer = debounce.New(deps.Quiet, s.commit)
	s.touch()
	s.debouncer.Push("")

	return s
}

// Input feeds one raw search box value.
func (s *Session) Input(value string) {
	s.touch()
	s.debouncer.Push(value)
}

func (s *Session) commit(query string) {
	s.logger.Debugw("query committed", "query", query)
	s.orch.Listing(s.ctx, query, func(out fetch.ListingOutcome) {
		s.awaitingFirst = false
		s.raw = out.Venues
		s.summaries = s.composer.Summaries(out.Venues)
		s.total = out.Total
	})
}

// Listing renders the listing view. Earlier results stay visible while a
// newer query loads; "loading" only shows when there is nothing to show.
func (s *Session) Listing() ListingSnapshot {
	s.touch()

	snap := ListingSnapshot{
		Query:     s.debouncer.Raw(),
		Committed: s.debouncer.Committed(),
	}
	s.orch.Observe(func(st fetch.Status) {
		loading := s.awaitingFirst || st.Pending(fetch.KindListing)
		snap.Total = s.total
		snap.Venues = append([]venues.Summary{}, s.summaries...)
		switch {
		case loading && len(s.summaries) == 0:
			snap.Status = ListingLoading
		case len(s.summaries) == 0:
			snap.Status = ListingEmpty
		default:
			snap.Status = ListingReady
		}
	})
	return snap
}

// Navigate opens the detail view for venueID. handoff may be nil.
func (s *Session) Navigate(venueID string, handoff *detail.Handoff) *detail.Visit {
	s.touch()
	v := s.resolver.Open(s.ctx, venueID, handoff)
	s.orch.Do(func() { s.visit = v })
	return v
}

// NavigateFromListing hands off the card the session currently shows for
// venueID, the way clicking it would.
func (s *Session) NavigateFromListing(venueID string) (*detail.Visit, error) {
	var handoff *detail.Handoff
	s.orch.Do(func() {
		for i, v := range s.raw {
			if v.VenueID() == venueID {
				handoff = &detail.Handoff{Venue: v, Index: i}
				return
			}
		}
	})
	if handoff == nil {
		return nil, ErrNotInListing
	}
	return s.Navigate(venueID, handoff), nil
}

// Visit returns the open detail view, if any.
func (s *Session) Visit() (*detail.Visit, bool) {
	s.touch()
	var v *detail.Visit
	s.orch.Do(func() { v = s.visit })
	return v, v != nil
}

// Close tears the session down: a pending debounce never fires and any
// response still in flight lands on a stale token.
func (s *Session) Close() {
	s.debouncer.Stop()
	s.orch.Invalidate(fetch.KindListing)
	s.orch.Invalidate(fetch.KindDetailScan)
	s.orch.Invalidate(fetch.KindReviews)
	s.cancel()
}

// Wait blocks until no request of this session is in flight.
func (s *Session) Wait() {
	s.orch.Wait()
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}
