package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
	"github.com/saturnino-fabrica-de-software/liva/internal/liveness"
)

// sessionEntry pairs the service-level session record with the live
// detection core. The mutex serializes frame evaluation: the core is
// single-owner and HTTP delivery gives no ordering guarantee on its own.
type sessionEntry struct {
	mu        sync.Mutex
	record    *domain.Session
	core      *liveness.Session
	startedAt time.Time
	recorded  bool
}

// SessionStore holds in-flight sessions in memory. Liveness state is
// transient by design: nothing here survives a restart, only the attempt
// audit rows do.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*sessionEntry
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[uuid.UUID]*sessionEntry),
	}
}

func (s *SessionStore) Put(entry *sessionEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.record.ID] = entry
}

func (s *SessionStore) Get(id uuid.UUID) (*sessionEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	return entry, ok
}

func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// TakeExpired removes and returns every entry whose session expired
// before now.
func (s *SessionStore) TakeExpired(now time.Time) []*sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []*sessionEntry
	for id, entry := range s.entries {
		if now.After(entry.record.ExpiresAt) {
			expired = append(expired, entry)
			delete(s.entries, id)
		}
	}
	return expired
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
