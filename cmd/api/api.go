package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"livelens/docs" //this is required to generate swagger docs
	"livelens/internal/browse"
	"livelens/internal/catalog"
	"livelens/internal/fetch"
	"livelens/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config      config
	logger      *zap.SugaredLogger
	catalog     *catalog.Catalog
	sessions    *browse.Store
	metrics     *fetch.Metrics
	rateLimiter ratelimiter.Limiter
}

type config struct {
	addr        string
	env         string
	apiURL      string
	search      searchConfig
	browse      browseConfig
	catalog     catalogConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type searchConfig struct {
	baseURL string
	timeout time.Duration
}

type browseConfig struct {
	quiet        time.Duration
	listingLimit int
	scanLimit    int
	reviewsLimit int
	idleTTL      time.Duration
}

type catalogConfig struct {
	staticBaseURL string
	cloudinaryURL string
	db            dbConfig
}

type dbConfig struct {
	addr        string
	maxConns    int
	maxIdleTime time.Duration
}

type authConfig struct {
	basic basicConfig
}

type basicConfig struct {
	user string
	pass string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	r.Use(app.RateLimiterMiddleware)

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(swaggerDocURL(app.config.apiURL))))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/stats", app.catalogStatsHandler)
			r.Get("/venues", app.listCatalogVenuesHandler)
			r.Get("/venues/{venueID}", app.getCatalogVenueHandler)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", app.createSessionHandler)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Use(app.sessionContextMiddleware)
				r.Delete("/", app.deleteSessionHandler)
				r.Put("/query", app.updateQueryHandler)
				r.Get("/listing", app.getListingHandler)
				r.Post("/visits", app.createVisitHandler)
				r.Get("/visits/current", app.getCurrentVisitHandler)
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	ctx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	app.sweepIdleSessions(ctx, time.Minute)

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env, "search_api", app.config.search.baseURL)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	stopBackground()
	app.sessions.CloseAll()

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}

// swaggerDocURL points the Swagger UI at the spec served under /v1 on the
// externally reachable host. A bare host gets an http scheme.
func swaggerDocURL(apiURL string) string {
	base := strings.TrimSuffix(apiURL, "/")
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return base + "/v1/swagger/doc.json"
}
