package domain

import "time"

// SessionConfig is the per-session search configuration supplied at creation.
type SessionConfig struct {
	Origin          Airport   `json:"origin"`
	FriendAirports  []Airport `json:"friend_airports,omitempty"`
	LookbackMonths  int       `json:"lookback_months"`
	LookaheadMonths int       `json:"lookahead_months"`
	TripLengthDays  int       `json:"trip_length_days"`
}

// BucketResult is the accumulated outcome of the most recent search that
// touched a bucket. Re-searching the same bucket replaces it wholesale.
type BucketResult struct {
	Quotes     []FlightQuote
	Provenance CacheProvenance
	CheckedAt  time.Time
}

// SearchSession holds everything a caller accumulates across repeated
// searches: credentials, configuration, the tournament calendar, the bucket
// list built from it, and a bucket-keyed map of the latest quotes per bucket.
// A session expires once its wall-clock age exceeds the store's TTL; expiry
// is checked lazily on access, never by a background reaper.
type SearchSession struct {
	ID             string
	Credentials    *CredentialSet
	Config         SessionConfig
	Tournaments    []Tournament
	Buckets        []WeekendBucket
	Results        map[WeekendKey]BucketResult
	CreatedAt      time.Time
	LastAccessTime time.Time
	ttl            time.Duration
}

// NewSearchSession creates a session that expires ttl after creation.
func NewSearchSession(id string, creds *CredentialSet, cfg SessionConfig, tournaments []Tournament, buckets []WeekendBucket, ttl time.Duration) *SearchSession {
	now := time.Now()
	return &SearchSession{
		ID:             id,
		Credentials:    creds,
		Config:         cfg,
		Tournaments:    tournaments,
		Buckets:        buckets,
		Results:        make(map[WeekendKey]BucketResult),
		CreatedAt:      now,
		LastAccessTime: now,
		ttl:            ttl,
	}
}

// IsExpired checks whether the session's age has exceeded its time-to-live.
// Expiry is measured from creation, not last access: a session has a fixed
// lifetime regardless of activity.
func (s *SearchSession) IsExpired() bool {
	return time.Since(s.CreatedAt) > s.ttl
}

// ExpiresAt returns the instant the session stops being usable.
func (s *SearchSession) ExpiresAt() time.Time {
	return s.CreatedAt.Add(s.ttl)
}

// HasBucket reports whether the session's bucket list contains the key.
func (s *SearchSession) HasBucket(key WeekendKey) bool {
	for _, b := range s.Buckets {
		if b.Key.Airport == key.Airport && b.Key.Anchor.Equal(key.Anchor) {
			return true
		}
	}
	return false
}

// BucketFor returns the bucket matching the key, if any.
func (s *SearchSession) BucketFor(key WeekendKey) (WeekendBucket, bool) {
	for _, b := range s.Buckets {
		if b.Key.Airport == key.Airport && b.Key.Anchor.Equal(key.Anchor) {
			return b, true
		}
	}
	return WeekendBucket{}, false
}

// MergeResult records the outcome of a search for one bucket key,
// last-write-wins: a re-search of the same key replaces the prior quotes
// rather than appending to them. Keys with no matching bucket (ad hoc
// caller-specified dates) are not merged, and the method reports false.
func (s *SearchSession) MergeResult(key WeekendKey, quotes []FlightQuote, prov CacheProvenance) bool {
	if !s.HasBucket(key) {
		return false
	}
	s.Results[key] = BucketResult{
		Quotes:     quotes,
		Provenance: prov,
		CheckedAt:  time.Now(),
	}
	return true
}

// SearchedBuckets returns how many buckets have an accumulated result.
func (s *SearchSession) SearchedBuckets() int {
	return len(s.Results)
}
