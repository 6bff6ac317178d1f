package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"livelens/internal/browse"
	"livelens/internal/catalog"
	"livelens/internal/compose"
	"livelens/internal/db"
	"livelens/internal/env"
	"livelens/internal/fetch"
	"livelens/internal/ratelimiter"
	"livelens/internal/searchapi"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	return ratelimiter.Config{
		RequestsPerTimeFrame: env.GetInt("RATELIMITER_REQUESTS_COUNT", 200),
		TimeFrame:            5 * time.Second,
		Enabled:              env.GetBool("RATE_LIMITER_ENABLED", false),
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel
	if lvl := env.GetString("LOG_LEVEL", ""); lvl != "" {
		if err := level.Set(lvl); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", lvl, err)
		}
	}

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	return zap.New(core).Sugar(), nil
}

var version = "0.3.0"

//	@title			LiveLens API
//	@description	Browsing gateway for LiveLens: debounced venue search, venue detail and reviews.

//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath					/v1
//	@securityDefinitions.basic	BasicAuth

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, reading configuration from the environment")
	}

	apiBaseURL := strings.TrimRight(env.GetString("API_BASE_URL", "http://localhost:8000"), "/")

	cfg := config{
		addr:   env.GetString("ADDR", ":8080"),
		env:    env.GetString("ENV", "development"),
		apiURL: env.GetString("EXTERNAL_URL", "localhost:8080"),
		search: searchConfig{
			baseURL: apiBaseURL,
			timeout: env.GetDuration("API_REQUEST_TIMEOUT", fetch.DefaultTimeout),
		},
		browse: browseConfig{
			quiet:        env.GetDuration("SEARCH_DEBOUNCE", 150*time.Millisecond),
			listingLimit: env.GetInt("LISTING_LIMIT", fetch.DefaultListingLimit),
			scanLimit:    env.GetInt("DETAIL_SCAN_LIMIT", fetch.DefaultScanLimit),
			reviewsLimit: env.GetInt("REVIEWS_LIMIT", fetch.DefaultReviewsLimit),
			idleTTL:      env.GetDuration("SESSION_IDLE_TTL", 30*time.Minute),
		},
		catalog: catalogConfig{
			staticBaseURL: env.GetString("STATIC_ASSET_BASE_URL", apiBaseURL+"/static/"),
			cloudinaryURL: env.GetString("CLOUDINARY_URL", ""),
			db: dbConfig{
				addr:        env.GetString("CATALOG_DATABASE_URL", ""),
				maxConns:    env.GetInt("DB_MAX_CONNS", 4),
				maxIdleTime: env.GetDuration("DB_MAX_IDLE_TIME", 15*time.Minute),
			},
		},
		auth: authConfig{
			basic: basicConfig{
				user: env.GetString("AUTH_BASIC_USER", "admin"),
				pass: env.GetString("AUTH_BASIC_PASS", "admin"),
			},
		},
		rateLimiter: LoadRateLimiterConfig(),
	}

	logger, err := NewLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cat, err := loadCatalog(cfg.catalog, logger)
	if err != nil {
		logger.Fatalw("failed to load reference catalog", "error", err)
	}
	logger.Infow("reference catalog loaded", "venues", cat.Len())

	api := searchapi.NewClient(cfg.search.baseURL, &http.Client{Timeout: cfg.search.timeout})

	metrics := &fetch.Metrics{}
	sessions := browse.NewStore(browse.Deps{
		API:      api,
		Composer: compose.New(cat, logger),
		Fetch: fetch.Config{
			ListingLimit: cfg.browse.listingLimit,
			ScanLimit:    cfg.browse.scanLimit,
			ReviewsLimit: cfg.browse.reviewsLimit,
			Timeout:      cfg.search.timeout,
		},
		Quiet:   cfg.browse.quiet,
		Metrics: metrics,
		Logger:  logger,
	})

	app := &application{
		config:      cfg,
		logger:      logger,
		catalog:     cat,
		sessions:    sessions,
		metrics:     metrics,
		rateLimiter: ratelimiter.NewFixedWindowLimiter(cfg.rateLimiter.RequestsPerTimeFrame, cfg.rateLimiter.TimeFrame),
	}

	// Metrics collected
	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("sessions", expvar.Func(func() any {
		return app.sessions.Len()
	}))
	expvar.Publish("fetch", expvar.Func(func() any {
		return map[string]int64{
			"issued":   metrics.Issued.Load(),
			"applied":  metrics.Applied.Load(),
			"dropped":  metrics.Dropped.Load(),
			"failures": metrics.Failures.Load(),
		}
	}))

	mux := app.mount()
	logger.Fatal(app.run(mux))
}

// loadCatalog reads the reference catalog from Postgres when a database is
// configured and from the embedded snapshot otherwise.
func loadCatalog(cfg catalogConfig, logger *zap.SugaredLogger) (*catalog.Catalog, error) {
	var (
		entries []catalog.Entry
		err     error
	)

	if cfg.db.addr != "" {
		pool, err := db.New(cfg.db.addr, int32(cfg.db.maxConns), cfg.db.maxIdleTime)
		if err != nil {
			return nil, fmt.Errorf("connect catalog database: %w", err)
		}
		defer pool.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		entries, err = catalog.LoadFromPostgres(ctx, pool)
		if err != nil {
			return nil, err
		}
		logger.Info("catalog database connection pool established")
	} else {
		entries, err = catalog.LoadEmbedded()
		if err != nil {
			return nil, err
		}
	}

	var resolver catalog.ImageResolver = catalog.StaticResolver{BaseURL: cfg.staticBaseURL}
	if cfg.cloudinaryURL != "" {
		cld, err := catalog.NewCloudinaryResolver(cfg.cloudinaryURL)
		if err != nil {
			return nil, err
		}
		resolver = cld
	}

	return catalog.New(entries, resolver, logger), nil
}
