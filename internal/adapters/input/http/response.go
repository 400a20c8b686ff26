package http

import (
	"net/http"
	"time"

	"github.com/dhyanpatel/TourneyFlights/internal/domain"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// NotFound response - session absent or expired look the same to callers
	NotFound = Status{Code: http.StatusNotFound, Message: []string{"Sorry, Session not found or expired"}}
	// BadGateway response - upstream tournament source failure
	BadGateway = Status{Code: http.StatusBadGateway, Message: []string{"Sorry, Upstream data source unavailable"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

type (
	// SessionResponse struct - HTTP response DTO for session info
	SessionResponse struct {
		ID              string    `json:"id"`
		Origin          string    `json:"origin"`
		TournamentCount int       `json:"tournament_count"`
		BucketCount     int       `json:"bucket_count"`
		SearchedBuckets int       `json:"searched_buckets"`
		CreatedAt       time.Time `json:"created_at"`
		ExpiresAt       time.Time `json:"expires_at"`
	}

	// SearchResponse struct - HTTP response DTO for batch search
	SearchResponse struct {
		Results     []CandidateResultResponse `json:"results"`
		TotalQuotes int                       `json:"total_quotes"`
	}

	// CandidateResultResponse struct - one resolved candidate
	CandidateResultResponse struct {
		Destination string                 `json:"destination"`
		DepartDate  string                 `json:"depart_date"`
		ReturnDate  string                 `json:"return_date"`
		Quotes      []domain.FlightQuote   `json:"quotes"`
		Provenance  domain.CacheProvenance `json:"provenance"`
	}

	// StreamEventResponse struct - one SSE event of a streaming search
	StreamEventResponse struct {
		Type          string                    `json:"type"`
		Current       int                       `json:"current,omitempty"`
		Total         int                       `json:"total,omitempty"`
		Destination   string                    `json:"destination,omitempty"`
		DepartDate    string                    `json:"depart_date,omitempty"`
		FromCache     bool                      `json:"from_cache,omitempty"`
		CheapestPrice *float64                  `json:"cheapest_price,omitempty"`
		Results       []CandidateResultResponse `json:"results,omitempty"`
		TotalQuotes   int                       `json:"total_quotes,omitempty"`
		Error         string                    `json:"error,omitempty"`
	}
)

func toSessionResponse(info *domain.SessionInfo) SessionResponse {
	return SessionResponse{
		ID:              info.ID,
		Origin:          string(info.Origin),
		TournamentCount: info.TournamentCount,
		BucketCount:     info.BucketCount,
		SearchedBuckets: info.SearchedBuckets,
		CreatedAt:       info.CreatedAt,
		ExpiresAt:       info.ExpiresAt,
	}
}

func toCandidateResults(results []domain.CandidateResult) []CandidateResultResponse {
	out := make([]CandidateResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, CandidateResultResponse{
			Destination: string(r.Destination),
			DepartDate:  r.DepartDate.Format(domain.OnlyDate),
			ReturnDate:  r.ReturnDate.Format(domain.OnlyDate),
			Quotes:      r.Quotes,
			Provenance:  r.Provenance,
		})
	}
	return out
}

func toStreamEventResponse(event domain.SearchEvent) StreamEventResponse {
	resp := StreamEventResponse{
		Type:          string(event.Type),
		Current:       event.Current,
		Total:         event.Total,
		FromCache:     event.FromCache,
		CheapestPrice: event.CheapestPrice,
		TotalQuotes:   event.TotalQuotes,
	}
	if event.Destination != "" {
		resp.Destination = string(event.Destination)
	}
	if !event.DepartDate.IsZero() {
		resp.DepartDate = event.DepartDate.Format(domain.OnlyDate)
	}
	if event.Results != nil {
		resp.Results = toCandidateResults(event.Results)
	}
	if event.Err != nil {
		resp.Error = event.Err.Error()
	}
	return resp
}
