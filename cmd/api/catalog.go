package main

import (
	"errors"
	"net/http"

	"livelens/internal/catalog"
	"livelens/internal/params"

	"github.com/go-chi/chi/v5"
)

type CatalogListResponse struct {
	Venues     []catalog.Entry   `json:"venues"`
	Pagination params.Pagination `json:"pagination"`
}

// catalogStatsHandler godoc
//
//	@Summary		Landing page counters
//	@Description	Total venues, total reviews, average rating and the featured venue
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	catalog.Stats
//	@Router			/catalog/stats [get]
func (app *application) catalogStatsHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonResponse(w, http.StatusOK, app.catalog.Stats()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listCatalogVenuesHandler godoc
//
//	@Summary		List reference catalog venues
//	@Tags			catalog
//	@Produce		json
//	@Param			page	query		int	false	"Page number"		default(1)
//	@Param			limit	query		int	false	"Items per page"	default(12)
//	@Success		200		{object}	CatalogListResponse
//	@Router			/catalog/venues [get]
func (app *application) listCatalogVenuesHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	entries := app.catalog.Entries()
	start, end := p.Window(len(entries))
	p.ComputeMeta(len(entries))

	resp := CatalogListResponse{
		Venues:     entries[start:end],
		Pagination: p,
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCatalogVenueHandler godoc
//
//	@Summary		Get a reference catalog venue
//	@Tags			catalog
//	@Produce		json
//	@Param			venueID	path		string	true	"Venue ID"
//	@Success		200		{object}	catalog.Entry
//	@Failure		404		{object}	error
//	@Router			/catalog/venues/{venueID} [get]
func (app *application) getCatalogVenueHandler(w http.ResponseWriter, r *http.Request) {
	entry, err := app.catalog.ByID(chi.URLParam(r, "venueID"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, entry); err != nil {
		app.internalServerError(w, r, err)
	}
}
