package output

import (
	"time"

	"github.com/dhyanpatel/TourneyFlights/internal/domain"
)

// QuoteCache interface - Output port
// Persists raw provider payloads keyed by (origin, destination, depart,
// return). Staleness is checked on read: an entry older than maxAge is
// removed as a side effect of the lookup and reported as a miss, so storage
// stays bounded without a sweep process.
type QuoteCache interface {
	// Get returns the cached payload and its age when an entry exists and is
	// within maxAge. A stale entry is deleted and reported as a miss.
	Get(query domain.RouteQuery, maxAge time.Duration) (payload []byte, age time.Duration, ok bool)

	// Put persists the payload, overwriting any prior entry for the key.
	// A write failure is returned for logging but must never fail the
	// lookup that produced the payload.
	Put(query domain.RouteQuery, payload []byte) error
}
