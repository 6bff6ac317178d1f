package ratelimiter

import (
	"sync"
	"time"
)

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

// Limiter decides whether a client may make another request. Prune drops
// state for clients whose window has expired and reports how many.
type Limiter interface {
	Allow(client string) (bool, time.Duration)
	Prune() int
}

// FixedWindowRateLimiter counts requests per client inside a window that
// starts with the client's first request.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

type window struct {
	start time.Time
	count int
}

func NewFixedWindowLimiter(limit int, frame time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  frame,
		now:     time.Now,
	}
}

// Allow records a request for client. When the client is over its limit it
// returns false and how long until its window resets.
func (rl *FixedWindowRateLimiter) Allow(client string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	w, ok := rl.clients[client]
	if !ok || now.Sub(w.start) >= rl.window {
		rl.clients[client] = &window{start: now, count: 1}
		return true, 0
	}

	if w.count < rl.limit {
		w.count++
		return true, 0
	}

	return false, rl.window - now.Sub(w.start)
}

// Prune forgets clients whose window has elapsed.
func (rl *FixedWindowRateLimiter) Prune() int {
	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	pruned := 0
	for client, w := range rl.clients {
		if now.Sub(w.start) >= rl.window {
			delete(rl.clients, client)
			pruned++
		}
	}
	return pruned
}
