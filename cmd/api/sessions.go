package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"livelens/internal/browse"
	"livelens/internal/detail"
	"livelens/internal/searchapi"
)

var errNoOpenVisit = errors.New("no venue is open in this session")

type SessionResponse struct {
	ID      string                 `json:"session_id"`
	Listing browse.ListingSnapshot `json:"listing"`
}

type UpdateQueryPayload struct {
	Query string `json:"query" validate:"max=200"`
}

// CreateVisitPayload navigates to a venue. Venue is the card record the
// client already holds, in the search API's shape; FromListing hands off
// the card this session is currently showing instead.
type CreateVisitPayload struct {
	VenueID     string          `json:"venue_id" validate:"required,max=128,venueid"`
	Venue       json.RawMessage `json:"venue,omitempty" swaggertype:"object"`
	Index       *int            `json:"index,omitempty" validate:"omitempty,min=0"`
	FromListing bool            `json:"from_listing,omitempty"`
}

// createSessionHandler godoc
//
//	@Summary		Start a browsing session
//	@Description	Creates a session and schedules the unfiltered listing fetch
//	@Tags			sessions
//	@Produce		json
//	@Success		201	{object}	SessionResponse
//	@Router			/sessions [post]
func (app *application) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	session := app.sessions.Create()

	app.logger.Infow("session created", "session_id", session.ID, "live", app.sessions.Len())

	resp := SessionResponse{ID: session.ID, Listing: session.Listing()}
	if err := app.jsonResponse(w, http.StatusCreated, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteSessionHandler godoc
//
//	@Summary		End a browsing session
//	@Description	Cancels the pending query and drops any response still in flight
//	@Tags			sessions
//	@Param			sessionID	path	string	true	"Session ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Router			/sessions/{sessionID} [delete]
func (app *application) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	session := getSessionFromContext(r)

	if err := app.sessions.Delete(session.ID); err != nil {
		if errors.Is(err, browse.ErrSessionNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// updateQueryHandler godoc
//
//	@Summary		Type into the search box
//	@Description	Records the raw query. The listing refreshes once input has been quiet for the debounce period.
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string				true	"Session ID"
//	@Param			payload		body		UpdateQueryPayload	true	"Raw search input"
//	@Success		202			{object}	browse.ListingSnapshot
//	@Failure		400			{object}	error
//	@Failure		404			{object}	error
//	@Router			/sessions/{sessionID}/query [put]
func (app *application) updateQueryHandler(w http.ResponseWriter, r *http.Request) {
	session := getSessionFromContext(r)

	var payload UpdateQueryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session.Input(payload.Query)

	if err := app.jsonResponse(w, http.StatusAccepted, session.Listing()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getListingHandler godoc
//
//	@Summary		Current listing
//	@Description	Venue cards for the last committed query. Earlier results stay while a newer query loads.
//	@Tags			sessions
//	@Produce		json
//	@Param			sessionID	path		string	true	"Session ID"
//	@Success		200			{object}	browse.ListingSnapshot
//	@Failure		404			{object}	error
//	@Router			/sessions/{sessionID}/listing [get]
func (app *application) getListingHandler(w http.ResponseWriter, r *http.Request) {
	session := getSessionFromContext(r)

	if err := app.jsonResponse(w, http.StatusOK, session.Listing()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createVisitHandler godoc
//
//	@Summary		Open a venue detail view
//	@Description	Resolves the venue from the hand-off when given, otherwise by scanning a bounded listing. Reviews load independently.
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string				true	"Session ID"
//	@Param			payload		body		CreateVisitPayload	true	"Navigation target"
//	@Success		201			{object}	detail.Snapshot
//	@Failure		400			{object}	error
//	@Failure		404			{object}	error
//	@Failure		409			{object}	error
//	@Router			/sessions/{sessionID}/visits [post]
func (app *application) createVisitHandler(w http.ResponseWriter, r *http.Request) {
	session := getSessionFromContext(r)

	var payload CreateVisitPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	hasVenue := len(payload.Venue) > 0 && string(payload.Venue) != "null"
	if payload.FromListing && hasVenue {
		app.badRequestResponse(w, r, errors.New("venue and from_listing are mutually exclusive"))
		return
	}

	var visit *detail.Visit
	switch {
	case payload.FromListing:
		v, err := session.NavigateFromListing(payload.VenueID)
		if err != nil {
			if errors.Is(err, browse.ErrNotInListing) {
				app.conflictResponse(w, r, err)
				return
			}
			app.internalServerError(w, r, err)
			return
		}
		visit = v
	case hasVenue:
		var venue searchapi.Venue
		if err := json.Unmarshal(payload.Venue, &venue); err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid venue: %w", err))
			return
		}
		index := -1
		if payload.Index != nil {
			index = *payload.Index
		}
		visit = session.Navigate(payload.VenueID, &detail.Handoff{Venue: venue, Index: index})
	default:
		visit = session.Navigate(payload.VenueID, nil)
	}

	if err := app.jsonResponse(w, http.StatusCreated, visit.Snapshot()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCurrentVisitHandler godoc
//
//	@Summary		Current venue detail view
//	@Description	Header state (pending, resolved or not_found) and the reviews section
//	@Tags			sessions
//	@Produce		json
//	@Param			sessionID	path		string	true	"Session ID"
//	@Success		200			{object}	detail.Snapshot
//	@Failure		404			{object}	error
//	@Router			/sessions/{sessionID}/visits/current [get]
func (app *application) getCurrentVisitHandler(w http.ResponseWriter, r *http.Request) {
	session := getSessionFromContext(r)

	visit, ok := session.Visit()
	if !ok {
		app.notFoundResponse(w, r, errNoOpenVisit)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, visit.Snapshot()); err != nil {
		app.internalServerError(w, r, err)
	}
}
