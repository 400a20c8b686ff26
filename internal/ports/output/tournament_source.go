package output

import (
	"context"
	"time"

	"github.com/dhyanpatel/TourneyFlights/internal/domain"
)

// TournamentSource interface - Output port
// Supplies the tournament calendar the scrape pipeline maintains. The core
// treats the list as opaque input; a source failure is fatal for session
// creation only, since nothing downstream can substitute for missing data.
type TournamentSource interface {
	// ListUpcoming returns tournaments starting within [from, to],
	// ordered by start date.
	ListUpcoming(ctx context.Context, from, to time.Time) ([]domain.Tournament, error)
}

// AirportLookup interface - Output port
// Pure city-to-airport mapping collaborator. Coverage is partial by nature;
// unmapped cities are silently skipped by the bucket builder.
type AirportLookup interface {
	AirportFor(city, region string) (domain.Airport, bool)
}
