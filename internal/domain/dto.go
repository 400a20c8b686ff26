package domain

import "time"

// Service-level request/response types exchanged between the input adapters
// and the application layer.

type (
	// CreateSessionRequest carries everything needed to start a session.
	CreateSessionRequest struct {
		Credentials []string
		Config      SessionConfig
	}

	// SessionInfo is the caller-visible view of a session.
	SessionInfo struct {
		ID              string    `json:"id"`
		Origin          Airport   `json:"origin"`
		TournamentCount int       `json:"tournament_count"`
		BucketCount     int       `json:"bucket_count"`
		SearchedBuckets int       `json:"searched_buckets"`
		CreatedAt       time.Time `json:"created_at"`
		ExpiresAt       time.Time `json:"expires_at"`
	}

	// SearchFilters narrows a search to a destination and/or departure date.
	// With neither set, the session's full bucket list is searched. MaxResults
	// caps how many lookups run; SkipCache forces live provider calls.
	SearchFilters struct {
		Destination *Airport
		DepartDate  *time.Time
		ReturnDate  *time.Time
		MaxResults  int
		SkipCache   bool
	}

	// CandidateResult is the outcome of one resolved (destination, dates)
	// candidate. A failed lookup is an empty quote list, not an error.
	CandidateResult struct {
		Destination Airport         `json:"destination"`
		DepartDate  time.Time       `json:"depart_date"`
		ReturnDate  time.Time       `json:"return_date"`
		Quotes      []FlightQuote   `json:"quotes"`
		Provenance  CacheProvenance `json:"provenance"`
	}

	// SearchResult is the batch-mode return: every resolved candidate plus
	// the total quote count across all of them.
	SearchResult struct {
		Results     []CandidateResult `json:"results"`
		TotalQuotes int               `json:"total_quotes"`
	}

	// QuoteFilters selects from the session's accumulated bucket results.
	QuoteFilters struct {
		Airport      *Airport
		Region       string
		MaxPrice     *float64
		NameContains string
		FriendsOnly  bool
		Limit        int
	}

	// BucketQuotes is one accumulated bucket with its latest quotes.
	BucketQuotes struct {
		Key         WeekendKey      `json:"-"`
		Airport     Airport         `json:"airport"`
		Weekend     time.Time       `json:"weekend"`
		Tournaments []Tournament    `json:"tournaments"`
		Quotes      []FlightQuote   `json:"quotes"`
		Provenance  CacheProvenance `json:"provenance"`
		Cheapest    *float64        `json:"cheapest,omitempty"`
	}
)

// SearchEventType discriminates streaming search events.
type SearchEventType string

const (
	// SearchEventProgress is emitted after each candidate resolves
	SearchEventProgress SearchEventType = "progress"
	// SearchEventComplete is the terminal event carrying the full result list
	SearchEventComplete SearchEventType = "complete"
	// SearchEventError is the terminal event for an aborted stream
	SearchEventError SearchEventType = "error"
)

// SearchEvent is one element of a streaming search's ordered event sequence:
// zero or more progress events followed by exactly one terminal event.
type SearchEvent struct {
	Type SearchEventType

	// Progress fields (Current is 1-based)
	Current       int
	Total         int
	Destination   Airport
	DepartDate    time.Time
	FromCache     bool
	CheapestPrice *float64

	// Terminal fields
	Results     []CandidateResult
	TotalQuotes int
	Err         error
}
