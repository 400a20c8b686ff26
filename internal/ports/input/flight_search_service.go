package input

import (
	"context"

	"github.com/dhyanpatel/TourneyFlights/internal/domain"
)

// FlightSearchService interface - Input port (use case)
// Defines the session lifecycle and search operations exposed to callers.
type FlightSearchService interface {
	// CreateSession starts a session: validates credentials, loads the
	// tournament calendar (a source failure is fatal here and only here),
	// builds the weekend buckets and stores the session.
	// Returns domain.ErrInvalidCredentials or
	// domain.ErrTournamentSourceUnavailable on structural failure.
	CreateSession(ctx context.Context, request domain.CreateSessionRequest) (*domain.SessionInfo, error)

	// GetSession returns session info, or domain.ErrSessionNotFound when the
	// session is absent or expired (the two are indistinguishable).
	GetSession(sessionID string) (*domain.SessionInfo, error)

	// DeleteSession terminates a session. Idempotent.
	DeleteSession(sessionID string) error

	// Search resolves the candidate list from filters, fetches quotes for
	// each candidate in order, merges the outcome into the session and
	// returns every resolved candidate. Per-candidate provider failures are
	// contained as empty quote lists; only session-not-found or malformed
	// input abort the batch.
	Search(ctx context.Context, sessionID string, filters domain.SearchFilters) (*domain.SearchResult, error)

	// SearchStream runs the same search, delivering one progress event per
	// resolved candidate followed by exactly one terminal event. The channel
	// is closed after the terminal event. Cancel ctx to abort between
	// candidates; an aborted stream does not merge into the session.
	SearchStream(ctx context.Context, sessionID string, filters domain.SearchFilters) (<-chan domain.SearchEvent, error)

	// Quotes applies filters over the session's accumulated bucket results,
	// sorted ascending by cheapest price.
	Quotes(sessionID string, filters domain.QuoteFilters) ([]domain.BucketQuotes, error)
}
