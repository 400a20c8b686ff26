package output

import "github.com/dhyanpatel/TourneyFlights/internal/domain"

// SessionStore interface - Output port
// An injected, explicitly-owned concurrent store of search sessions with
// atomic per-key updates. Expiry is lazy: reading an expired session evicts
// it and reports domain.ErrSessionNotFound, exactly as if it never existed.
// Implementations must be safe for concurrent access across sessions; two
// concurrent updates to the same session serialize, later write wins.
type SessionStore interface {
	// Get returns the session, or domain.ErrSessionNotFound when absent or
	// expired. Expired sessions are evicted on the way out.
	Get(sessionID string) (*domain.SearchSession, error)

	// Put stores or replaces a session.
	Put(session *domain.SearchSession) error

	// Update applies fn to the session as one atomic read-modify-write.
	// fn's error aborts the update and is returned unchanged.
	Update(sessionID string, fn func(*domain.SearchSession) error) error

	// Delete removes a session. Idempotent.
	Delete(sessionID string) error
}
