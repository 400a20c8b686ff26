package domain

import "time"

// FlightQuote is one priced round-trip itinerary from the provider.
// Quotes only exist for payloads that carried a price and at least one leg;
// an unpriceable response yields zero quotes, never a placeholder.
type FlightQuote struct {
	Origin      Airport   `json:"origin"`
	Destination Airport   `json:"destination"`
	DepartDate  time.Time `json:"depart_date"`
	ReturnDate  time.Time `json:"return_date"`
	Price       float64   `json:"price"`
	DepartTime  string    `json:"depart_time,omitempty"`
	ArriveTime  string    `json:"arrive_time,omitempty"`
	Carrier     string    `json:"carrier,omitempty"`
	DeepLink    string    `json:"deep_link,omitempty"`
}

// CacheProvenance records whether a quote list came from the disk cache and,
// if so, how old the cached payload was when it was read. It is attached to
// every quote list so callers can tell stale-acceptable from freshly-billed
// data.
type CacheProvenance struct {
	FromCache  bool      `json:"from_cache"`
	AgeSeconds int64     `json:"cache_age_seconds,omitempty"`
	CachedAt   time.Time `json:"cached_at,omitempty"`
}

// FreshProvenance marks a result as coming from a live provider call.
func FreshProvenance() CacheProvenance {
	return CacheProvenance{FromCache: false}
}

// CachedProvenance marks a result as served from cache with the given age.
func CachedProvenance(age time.Duration) CacheProvenance {
	return CacheProvenance{
		FromCache:  true,
		AgeSeconds: int64(age.Seconds()),
		CachedAt:   time.Now().Add(-age),
	}
}

// RouteQuery identifies one round-trip lookup against the provider.
// The cache key is a deterministic function of the four route fields;
// a one-day-shifted search is a different key and therefore a miss.
type RouteQuery struct {
	Origin      Airport
	Destination Airport
	Depart      time.Time
	Return      time.Time
	SkipCache   bool
}

// CheapestQuote returns the lowest price in the list, or false when the list
// is empty. Deduplication and selection are caller concerns; the provider
// client never filters beyond parseability.
func CheapestQuote(quotes []FlightQuote) (float64, bool) {
	if len(quotes) == 0 {
		return 0, false
	}
	cheapest := quotes[0].Price
	for _, q := range quotes[1:] {
		if q.Price < cheapest {
			cheapest = q.Price
		}
	}
	return cheapest, true
}
