package output

import (
	"context"

	"github.com/dhyanpatel/TourneyFlights/internal/domain"
)

// FlightClient interface - Output port
// One bounded provider integration: fetch priced round-trip quotes for a
// route, consulting the quote cache first and rotating through the session's
// credentials on throttling. Implementations are stateless oracles; the
// credential cursor belongs to the calling session.
type FlightClient interface {
	// FetchRoundTrip returns the parsed quotes for the query together with
	// cache provenance. Provider failures of any kind (throttle exhaustion,
	// server errors, unparseable payloads) yield an empty quote list and a
	// nil error so one route's failure never aborts a batch; the only error
	// returned is context cancellation.
	FetchRoundTrip(ctx context.Context, creds *domain.CredentialSet, query domain.RouteQuery) ([]domain.FlightQuote, domain.CacheProvenance, error)
}
