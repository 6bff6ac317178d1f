package main

import (
	"context"
	"time"
)

// sweepIdleSessions closes browsing sessions nobody has touched for the
// configured idle TTL and forgets expired rate limiter windows.
func (app *application) sweepIdleSessions(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := app.sessions.SweepIdle(app.config.browse.idleTTL); n > 0 {
					app.logger.Infow("closed idle sessions", "count", n, "live", app.sessions.Len())
				}
				app.rateLimiter.Prune()
			}
		}
	}()
}
