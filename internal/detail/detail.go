// Package detail resolves which venue a detail view is about and, in
// parallel, that venue's reviews.
//
// A visit starts Pending and ends in exactly one of Resolved or NotFound.
// The venue is taken from a navigation hand-off when one is supplied;
// otherwise a bounded listing is fetched and scanned for the identifier.
// Reviews are fetched independently and never hold up the header.
package detail

import (
	"context"
	"encoding/json"
	"fmt"

	"livelens/internal/compose"
	"livelens/internal/domain/venues"
	"livelens/internal/fetch"
	"livelens/internal/searchapi"

	"go.uber.org/zap"
)

type State int

const (
	StatePending State = iota
	StateResolved
	StateNotFound
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	case StateNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("unknown state: %d", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, st := range []State{StatePending, StateResolved, StateNotFound} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown state: %q", text)
}

// Review section statuses. Loading and empty are distinct on purpose: one
// is a spinner, the other says "no reviews yet".
const (
	ReviewsLoading = "loading"
	ReviewsEmpty   = "empty"
	ReviewsReady   = "ready"
)

// Handoff is the record a card already held when the user clicked it.
// Index is its position in that listing; a negative index means unknown.
type Handoff struct {
	Venue searchapi.Venue
	Index int
}

type Snapshot struct {
	VenueID string          `json:"venue_id"`
	State   State           `json:"state"`
	Venue   *venues.Detail  `json:"venue,omitempty"`
	Index   int             `json:"index"`
	Reviews ReviewsSnapshot `json:"reviews"`
}

type ReviewsSnapshot struct {
	Status string          `json:"status"`
	Items  []venues.Review `json:"items"`
}

// Visit is one detail-view visit. Its fields are only touched under the
// orchestrator lock.
type Visit struct {
	orch *fetch.Orchestrator

	venueID    string
	state      State
	venue      venues.Detail
	index      int
	handedOff  bool
	reviewsSet bool
	reviews    []venues.Review
}

type Resolver struct {
	orch     *fetch.Orchestrator
	composer *compose.Composer
	logger   *zap.SugaredLogger
}

func NewResolver(orch *fetch.Orchestrator, composer *compose.Composer, logger *zap.SugaredLogger) *Resolver {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Resolver{orch: orch, composer: composer, logger: logger}
}

// Open starts a visit to venueID. With a usable hand-off the visit is
// Resolved before Open returns and no listing request is made for it.
// The reviews request is issued either way, superseding any reviews
// request of an earlier visit.
func (r *Resolver) Open(ctx context.Context, venueID string, handoff *Handoff) *Visit {
	v := &Visit{orch: r.orch, venueID: venueID, index: -1}

	if handoff != nil && acceptsHandoff(venueID, handoff.Venue) {
		record := handoff.Venue
		if record.VenueID() == "" {
			record.ID, _ = json.Marshal(venueID)
		}
		venue := r.composer.Detail(record, handoff.Index)
		r.orch.Invalidate(fetch.KindDetailScan)
		r.orch.Do(func() {
			v.state = StateResolved
			v.venue = venue
			v.index = handoff.Index
			v.handedOff = true
		})
	} else {
		if handoff != nil {
			r.logger.Warnw("hand-off ignored, identifier mismatch",
				"venue_id", venueID, "handoff_id", handoff.Venue.VenueID())
		}
		r.orch.ScanForVenue(ctx, venueID, func(out fetch.ScanOutcome) {
			if !out.Found {
				v.state = StateNotFound
				return
			}
			v.state = StateResolved
			v.venue = r.composer.Detail(out.Venue, out.Index)
			v.index = out.Index
		})
	}

	r.orch.Reviews(ctx, venueID, func(out fetch.ReviewsOutcome) {
		v.reviews = r.composer.Reviews(out.Reviews)
		v.reviewsSet = true
	})

	return v
}

func acceptsHandoff(venueID string, venue searchapi.Venue) bool {
	id := venue.VenueID()
	return id == "" || id == venueID
}

func (v *Visit) VenueID() string {
	return v.venueID
}

func (v *Visit) State() State {
	var s State
	v.orch.Do(func() { s = v.state })
	return s
}

// HandedOff reports whether the venue came from navigation state.
func (v *Visit) HandedOff() bool {
	var h bool
	v.orch.Do(func() { h = v.handedOff })
	return h
}

func (v *Visit) Snapshot() Snapshot {
	var s Snapshot
	v.orch.Do(func() {
		s = Snapshot{
			VenueID: v.venueID,
			State:   v.state,
			Index:   v.index,
			Reviews: ReviewsSnapshot{Status: ReviewsLoading, Items: []venues.Review{}},
		}
		if v.state == StateResolved {
			venue := v.venue
			s.Venue = &venue
		}
		if v.reviewsSet {
			s.Reviews.Items = append(s.Reviews.Items, v.reviews...)
			s.Reviews.Status = ReviewsReady
			if len(v.reviews) == 0 {
				s.Reviews.Status = ReviewsEmpty
			}
		}
	})
	return s
}
