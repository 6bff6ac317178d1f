package browse

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps the live sessions of the gateway.
type Store struct {
	sync.RWMutex
	sessions map[string]*Session
	deps     Deps
}

func NewStore(deps Deps) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		deps:     deps,
	}
}

func (st *Store) Create() *Session {
	s := NewSession(uuid.NewString(), st.deps)

	st.Lock()
	st.sessions[s.ID] = s
	st.Unlock()

	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.RLock()
	s, ok := st.sessions[id]
	st.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (st *Store) Delete(id string) error {
	st.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	return nil
}

func (st *Store) Len() int {
	st.RLock()
	defer st.RUnlock()
	return len(st.sessions)
}

// SweepIdle closes sessions not used for longer than ttl and returns how
// many were closed.
func (st *Store) SweepIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	var idle []*Session
	st.Lock()
	for id, s := range st.sessions {
		if s.LastSeen().Before(cutoff) {
			idle = append(idle, s)
			delete(st.sessions, id)
		}
	}
	st.Unlock()

	for _, s := range idle {
		s.Close()
	}
	return len(idle)
}

// CloseAll tears down every session, used on shutdown.
func (st *Store) CloseAll() {
	st.Lock()
	sessions := st.sessions
	st.sessions = make(map[string]*Session)
	st.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
