// Package inmemory is the default session store: a mutex-guarded map
// with opportunistic expiry. State is lost on restart, which is fine for
// chat transcripts.
package inmemory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vestnikmedia/vestnik/internal/chat/session"
)

type record struct {
	turns    []session.Turn
	lastSeen time.Time
}

// Store is an in-process session.Store.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*record
	ttl         time.Duration
	historyCap  int
	historyKeep int

	now func() time.Time
}

// New builds a store with the given TTL and history bounds. Non-positive
// values fall back to one hour, cap 20 and keep 10.
func New(ttl time.Duration, historyCap, historyKeep int) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if historyCap <= 0 {
		historyCap = 20
	}
	if historyKeep <= 0 || historyKeep > historyCap {
		historyKeep = 10
	}
	return &Store{
		sessions:    make(map[string]*record),
		ttl:         ttl,
		historyCap:  historyCap,
		historyKeep: historyKeep,
		now:         time.Now,
	}
}

// Create sweeps expired sessions, then opens a new one. Sweeping here
// keeps the map bounded without a background goroutine.
func (s *Store) Create() (string, error) {
	id := uuid.NewString()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, rec := range s.sessions {
		if now.Sub(rec.lastSeen) > s.ttl {
			delete(s.sessions, key)
		}
	}
	s.sessions[id] = &record{lastSeen: now}
	return id, nil
}

func (s *Store) Exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return false
	}
	if s.now().Sub(rec.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return false
	}
	return true
}

func (s *Store) Append(id string, turn session.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return session.ErrNotFound
	}
	rec.turns = append(rec.turns, turn)
	if len(rec.turns) > s.historyCap {
		rec.turns = append([]session.Turn(nil), rec.turns[len(rec.turns)-s.historyKeep:]...)
	}
	rec.lastSeen = s.now()
	return nil
}

func (s *Store) History(id string) ([]session.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	out := make([]session.Turn, len(rec.turns))
	copy(out, rec.turns)
	return out, nil
}

func (s *Store) End(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
