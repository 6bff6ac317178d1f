package fetch

import (
	"fmt"
	"sync"
)

// Kind scopes the stale-response rule: a response only competes with
// requests of the same kind.
type Kind int

const (
	KindListing Kind = iota
	KindDetailScan
	KindReviews
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindListing:
		return "listing"
	case KindDetailScan:
		return "detail-scan"
	case KindReviews:
		return "reviews"
	default:
		return fmt.Sprintf("unknown kind: %d", int(k))
	}
}

// Token identifies one issued request.
type Token struct {
	Kind Kind
	Seq  uint64
}

// Guard hands out per-kind sequence tokens and serializes every state
// change behind one lock, the way a UI event loop would. Only the holder
// of the latest token of a kind may apply its result.
type Guard struct {
	mu      sync.Mutex
	seq     [kindCount]uint64
	settled [kindCount]uint64
}

// Status reports, inside Observe, which kinds still have their latest
// request outstanding.
type Status struct {
	pending [kindCount]bool
}

func (s Status) Pending(k Kind) bool {
	return s.pending[k]
}

// Issue supersedes every earlier token of kind k.
func (g *Guard) Issue(k Kind) Token {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq[k]++
	return Token{Kind: k, Seq: g.seq[k]}
}

// Invalidate supersedes outstanding tokens of kind k without issuing a
// request, e.g. when the view that would show the result goes away.
func (g *Guard) Invalidate(k Kind) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq[k]++
	g.settled[k] = g.seq[k]
}

// IsCurrent reports whether t is still the latest token of its kind.
func (g *Guard) IsCurrent(t Token) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq[t.Kind] == t.Seq
}

// Apply runs fn under the guard lock if t is still current and reports
// whether it ran. fn must not call back into the guard.
func (g *Guard) Apply(t Token, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seq[t.Kind] != t.Seq {
		return false
	}
	g.settled[t.Kind] = t.Seq
	fn()
	return true
}

// Do runs fn under the guard lock unconditionally. Readers of display
// state use it so they never observe a half-applied result.
func (g *Guard) Do(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}

// Observe is Do with the pending status of every kind.
func (g *Guard) Observe(fn func(Status)) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var st Status
	for k := range st.pending {
		st.pending[k] = g.seq[k] != g.settled[k]
	}
	fn(st)
}
