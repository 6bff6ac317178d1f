// Package fetch issues search API requests asynchronously and applies a
// response only if it answers the most recently issued request of its kind.
// There is no in-flight cancellation: superseded responses simply land on a
// stale token and are dropped.
package fetch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"livelens/internal/searchapi"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultListingLimit = 50
	DefaultScanLimit    = 100
	DefaultReviewsLimit = 20
	DefaultTimeout      = 10 * time.Second
)

// Searcher is the subset of the search API client the orchestrator needs.
type Searcher interface {
	SearchVenues(ctx context.Context, q searchapi.VenueQuery) (*searchapi.VenuePage, error)
	SearchReviews(ctx context.Context, q searchapi.ReviewQuery) (*searchapi.ReviewPage, error)
}

type Config struct {
	ListingLimit int
	ScanLimit    int
	ReviewsLimit int
	Timeout      time.Duration
}

func (c Config) withDefaults() Config {
	if c.ListingLimit <= 0 {
		c.ListingLimit = DefaultListingLimit
	}
	if c.ScanLimit <= 0 {
		c.ScanLimit = DefaultScanLimit
	}
	if c.ReviewsLimit <= 0 {
		c.ReviewsLimit = DefaultReviewsLimit
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Metrics can be shared by many orchestrators.
type Metrics struct {
	Issued   atomic.Int64
	Applied  atomic.Int64
	Dropped  atomic.Int64
	Failures atomic.Int64
}

type ListingOutcome struct {
	Query  string
	Venues []searchapi.Venue
	Total  int
	Err    error
}

type ScanOutcome struct {
	VenueID string
	Venue   searchapi.Venue
	Index   int
	Found   bool
	Err     error
}

type ReviewsOutcome struct {
	VenueID string
	Reviews []searchapi.Review
	Err     error
}

type outcome interface {
	failure() error
}

func (o ListingOutcome) failure() error { return o.Err }
func (o ScanOutcome) failure() error    { return o.Err }
func (o ReviewsOutcome) failure() error { return o.Err }

// Orchestrator owns one Guard, so one orchestrator backs one set of views.
type Orchestrator struct {
	api     Searcher
	cfg     Config
	guard   *Guard
	metrics *Metrics
	logger  *zap.SugaredLogger

	// gate keeps inflight.Go and inflight.Wait from overlapping.
	gate     sync.RWMutex
	inflight errgroup.Group
}

func New(api Searcher, cfg Config, metrics *Metrics, logger *zap.SugaredLogger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if metrics == nil {
		metrics = &Metrics{}
	}
	return &Orchestrator{
		api:     api,
		cfg:     cfg.withDefaults(),
		guard:   &Guard{},
		metrics: metrics,
		logger:  logger,
	}
}

func (o *Orchestrator) Config() Config {
	return o.cfg
}

// Listing fetches venues matching query (empty means unfiltered). A failure
// is applied as an empty result set with Err set.
func (o *Orchestrator) Listing(ctx context.Context, query string, apply func(ListingOutcome)) Token {
	return issue(o, ctx, KindListing, func(ctx context.Context) ListingOutcome {
		out := ListingOutcome{Query: query, Venues: []searchapi.Venue{}}

		page, err := o.api.SearchVenues(ctx, searchapi.VenueQuery{Q: query, Limit: o.cfg.ListingLimit})
		if err != nil {
			out.Err = err
			return out
		}
		if page != nil && page.Results != nil {
			out.Venues = page.Results
			out.Total = page.Total
		}
		return out
	}, apply)
}

// ScanForVenue fetches a bounded unfiltered listing and scans it for
// venueID. A failure is applied as not found with Err set.
func (o *Orchestrator) ScanForVenue(ctx context.Context, venueID string, apply func(ScanOutcome)) Token {
	return issue(o, ctx, KindDetailScan, func(ctx context.Context) ScanOutcome {
		out := ScanOutcome{VenueID: venueID, Index: -1}

		page, err := o.api.SearchVenues(ctx, searchapi.VenueQuery{Limit: o.cfg.ScanLimit})
		if err != nil {
			out.Err = err
			return out
		}
		if page == nil {
			return out
		}
		for i, v := range page.Results {
			if v.VenueID() == venueID {
				out.Venue, out.Index, out.Found = v, i, true
				break
			}
		}
		return out
	}, apply)
}

// Reviews fetches a venue's reviews, best rated first. A failure is applied
// as an empty list with Err set.
func (o *Orchestrator) Reviews(ctx context.Context, venueID string, apply func(ReviewsOutcome)) Token {
	return issue(o, ctx, KindReviews, func(ctx context.Context) ReviewsOutcome {
		out := ReviewsOutcome{VenueID: venueID, Reviews: []searchapi.Review{}}

		page, err := o.api.SearchReviews(ctx, searchapi.ReviewQuery{
			VenueID: venueID,
			Limit:   o.cfg.ReviewsLimit,
			SortBy:  "overall_rating",
			Order:   "desc",
		})
		if err != nil {
			out.Err = err
			return out
		}
		if page != nil && page.Results != nil {
			out.Reviews = page.Results
		}
		return out
	}, apply)
}

// Invalidate drops whatever is in flight for kind k.
func (o *Orchestrator) Invalidate(k Kind) {
	o.guard.Invalidate(k)
}

// Do runs fn under the same lock results are applied under.
func (o *Orchestrator) Do(fn func()) {
	o.guard.Do(fn)
}

// Observe runs fn under the apply lock with the pending status per kind.
func (o *Orchestrator) Observe(fn func(Status)) {
	o.guard.Observe(fn)
}

// Wait blocks until every issued request has been applied or dropped.
// Requests issued while Wait runs are held back until it returns. Apply
// callbacks must not issue requests.
func (o *Orchestrator) Wait() {
	o.gate.Lock()
	defer o.gate.Unlock()
	_ = o.inflight.Wait()
}

func issue[T outcome](o *Orchestrator, ctx context.Context, kind Kind, call func(context.Context) T, apply func(T)) Token {
	token := o.guard.Issue(kind)
	o.metrics.Issued.Add(1)

	o.gate.RLock()
	defer o.gate.RUnlock()
	o.inflight.Go(func() error {
		reqCtx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()

		out := call(reqCtx)
		if err := out.failure(); err != nil {
			o.metrics.Failures.Add(1)
			o.logger.Warnw("fetch failed, applying degraded result",
				"kind", kind.String(), "token", token.Seq, "error", err)
		}

		if !o.guard.Apply(token, func() { apply(out) }) {
			o.metrics.Dropped.Add(1)
			o.logger.Debugw("stale response dropped", "kind", kind.String(), "token", token.Seq)
			return nil
		}
		o.metrics.Applied.Add(1)
		return nil
	})

	return token
}
