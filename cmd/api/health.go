package main

import (
	"net/http"
)

// healthCheckHandler godoc
//
//	@Summary		Healthcheck
//	@Description	Reports the gateway status, version and live session count
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"status":   "ok",
		"env":      app.config.env,
		"version":  version,
		"sessions": app.sessions.Len(),
		"catalog":  app.catalog.Len(),
	}

	if err := app.jsonResponse(w, http.StatusOK, data); err != nil {
		app.internalServerError(w, r, err)
	}
}
