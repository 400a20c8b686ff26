package memory

import (
	"sync"

	"github.com/dhyanpatel/TourneyFlights/internal/domain"
	"github.com/dhyanpatel/TourneyFlights/internal/ports/output"
)

// Compile-time check to ensure SessionStore implements the port
var _ output.SessionStore = (*SessionStore)(nil)

// SessionStore struct - Output adapter for in-memory session storage.
// An injected, explicitly-owned concurrent store: sync.Map holds the
// sessions and a per-key mutex makes Update an atomic read-modify-write for
// that key. Two concurrent updates to different sessions never contend; two
// within one session serialize, later write wins. Expired sessions are
// evicted lazily on access, there is no background reaper.
type SessionStore struct {
	sessions sync.Map
	locks    sync.Map
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Get retrieves a session by ID. An expired or malformed entry is deleted
// and reported exactly like an absent one: domain.ErrSessionNotFound.
func (m *SessionStore) Get(sessionID string) (*domain.SearchSession, error) {
	value, exists := m.sessions.Load(sessionID)
	if !exists {
		return nil, domain.ErrSessionNotFound
	}

	session, ok := value.(*domain.SearchSession)
	if !ok {
		m.evict(sessionID)
		return nil, domain.ErrSessionNotFound
	}

	if session.IsExpired() {
		m.evict(sessionID)
		return nil, domain.ErrSessionNotFound
	}

	return session, nil
}

// Put stores or replaces a session under its ID.
func (m *SessionStore) Put(session *domain.SearchSession) error {
	m.sessions.Store(session.ID, session)
	return nil
}

// Update applies fn to the session under the session's key lock so the
// read-modify-write is atomic per key. The lazy expiry check applies here
// too: updating an expired session fails with domain.ErrSessionNotFound.
func (m *SessionStore) Update(sessionID string, fn func(*domain.SearchSession) error) error {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := m.Get(sessionID)
	if err != nil {
		return err
	}
	if err := fn(session); err != nil {
		return err
	}
	m.sessions.Store(sessionID, session)
	return nil
}

// Delete removes a session. Deleting a non-existent session is not an error.
func (m *SessionStore) Delete(sessionID string) error {
	m.evict(sessionID)
	return nil
}

func (m *SessionStore) evict(sessionID string) {
	m.sessions.Delete(sessionID)
	m.locks.Delete(sessionID)
}

func (m *SessionStore) lockFor(sessionID string) *sync.Mutex {
	lock, _ := m.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
