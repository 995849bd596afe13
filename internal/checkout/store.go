package checkout

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the in-memory session registry. Sessions are never
// persisted, an abandoned cart dies with its session, so the store
// only needs a map, a lock and a janitor for expired entries.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a registry whose janitor sweeps sessions idle for
// longer than ttl.
func NewStore(ttl, sweepEvery time.Duration) *Store {
	s := &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go s.janitor(sweepEvery)
	return s
}

// Put registers a session.
func (s *Store) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

// Get returns the session and refreshes its activity timestamp. The
// operator check keeps one terminal from reaching into another's cart.
func (s *Store) Get(id, operatorID uuid.UUID) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || sess.OperatorID != operatorID {
		return nil, false
	}
	sess.Touch()
	return sess, true
}

// Remove closes and deletes a session.
func (s *Store) Remove(id uuid.UUID) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sess.Close()
	}
}

// ForTenant runs fn for every session of the tenant. Used to fan push
// events out to session-scoped caches.
func (s *Store) ForTenant(tenantID uuid.UUID, fn func(*Session)) {
	s.mu.RLock()
	matched := make([]*Session, 0, 4)
	for _, sess := range s.sessions {
		if sess.TenantID == tenantID {
			matched = append(matched, sess)
		}
	}
	s.mu.RUnlock()
	for _, sess := range matched {
		fn(sess)
	}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Stop halts the janitor and closes every session.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })

	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for id, sess := range s.sessions {
		sessions = append(sessions, sess)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}

func (s *Store) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Store) sweep() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	expired := make([]*Session, 0, 4)
	for id, sess := range s.sessions {
		if sess.LastActive().Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Close()
	}
}
