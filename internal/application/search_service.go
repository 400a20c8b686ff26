package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dhyanpatel/TourneyFlights/internal/domain"
	"github.com/dhyanpatel/TourneyFlights/internal/ports/input"
	"github.com/dhyanpatel/TourneyFlights/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure FlightSearchService implements the input port
var _ input.FlightSearchService = (*FlightSearchService)(nil)

// Default session configuration applied when config supplies zero values
const (
	defaultSessionTTL      = time.Hour
	defaultTripLengthDays  = 2
	defaultMaxLookups      = 10
	defaultLookaheadMonths = 6

	streamEventBufferSize = 16
)

// FlightSearchService struct - Application service implementing the session
// and search use cases. Provider calls within one search are strictly
// sequential: the bounded credential set and the provider's own rate limits
// make parallel fan-out counterproductive.
type FlightSearchService struct {
	store       output.SessionStore
	client      output.FlightClient
	tournaments output.TournamentSource
	airports    output.AirportLookup

	sessionTTL     time.Duration
	tripLengthDays int
	maxLookups     int
}

// NewFlightSearchService func - Creates the search service. Zero-valued
// options fall back to built-in defaults.
func NewFlightSearchService(store output.SessionStore, client output.FlightClient, tournaments output.TournamentSource, airports output.AirportLookup, sessionTTL time.Duration, tripLengthDays, maxLookups int) *FlightSearchService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	if tripLengthDays <= 0 {
		tripLengthDays = defaultTripLengthDays
	}
	if maxLookups <= 0 {
		maxLookups = defaultMaxLookups
	}
	return &FlightSearchService{
		store:          store,
		client:         client,
		tournaments:    tournaments,
		airports:       airports,
		sessionTTL:     sessionTTL,
		tripLengthDays: tripLengthDays,
		maxLookups:     maxLookups,
	}
}

// CreateSession - Use case: start a session. Credentials must be usable and
// the tournament calendar must load; either failure is fatal since nothing
// downstream can substitute for them.
func (s *FlightSearchService) CreateSession(ctx context.Context, request domain.CreateSessionRequest) (*domain.SessionInfo, error) {
	creds, err := domain.NewCredentialSet(request.Credentials)
	if err != nil {
		return nil, err
	}

	cfg := request.Config
	if !cfg.Origin.Valid() {
		return nil, fmt.Errorf("%w: origin airport %q", domain.ErrInvalidSearchInput, cfg.Origin)
	}
	if cfg.TripLengthDays <= 0 {
		cfg.TripLengthDays = s.tripLengthDays
	}
	if cfg.LookaheadMonths <= 0 {
		cfg.LookaheadMonths = defaultLookaheadMonths
	}

	now := time.Now()
	from := now.AddDate(0, -cfg.LookbackMonths, 0)
	to := now.AddDate(0, cfg.LookaheadMonths, 0)

	tournaments, err := s.tournaments.ListUpcoming(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load tournament calendar: %w", err)
	}

	buckets := domain.BuildWeekendBuckets(tournaments, s.airports.AirportFor)

	session := domain.NewSearchSession(uuid.NewString(), creds, cfg, tournaments, buckets, s.sessionTTL)
	if err := s.store.Put(session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	logrus.Infof("Session %s created: %d tournaments, %d buckets", session.ID, len(tournaments), len(buckets))
	return sessionInfo(session), nil
}

// GetSession - Use case: read session info.
func (s *FlightSearchService) GetSession(sessionID string) (*domain.SessionInfo, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(session), nil
}

// DeleteSession - Use case: explicit session termination.
func (s *FlightSearchService) DeleteSession(sessionID string) error {
	return s.store.Delete(sessionID)
}

// candidate is one resolved (destination, depart, return) lookup together
// with the bucket key it merges back into.
type candidate struct {
	key   domain.WeekendKey
	query domain.RouteQuery
}

// Search - Use case: batch search. Candidates resolve sequentially; the
// merged outcome is written back to the session in one atomic update after
// the last candidate.
func (s *FlightSearchService) Search(ctx context.Context, sessionID string, filters domain.SearchFilters) (*domain.SearchResult, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.resolveCandidates(session, filters)
	if err != nil {
		return nil, err
	}

	// Fresh batch: throttling starts over from the first credential.
	session.Credentials.Reset()

	results := make([]domain.CandidateResult, 0, len(candidates))
	totalQuotes := 0
	for _, cand := range candidates {
		quotes, prov, err := s.client.FetchRoundTrip(ctx, session.Credentials, cand.query)
		if err != nil {
			return nil, err
		}
		results = append(results, domain.CandidateResult{
			Destination: cand.query.Destination,
			DepartDate:  cand.query.Depart,
			ReturnDate:  cand.query.Return,
			Quotes:      quotes,
			Provenance:  prov,
		})
		totalQuotes += len(quotes)
	}

	s.mergeResults(sessionID, candidates, results)

	return &domain.SearchResult{Results: results, TotalQuotes: totalQuotes}, nil
}

// SearchStream - Use case: streaming search. Emits one progress event per
// candidate in order, then exactly one terminal event, then closes the
// channel. Cancelling ctx between candidates aborts cleanly: the partial
// batch is not merged into the session.
func (s *FlightSearchService) SearchStream(ctx context.Context, sessionID string, filters domain.SearchFilters) (<-chan domain.SearchEvent, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.resolveCandidates(session, filters)
	if err != nil {
		return nil, err
	}

	session.Credentials.Reset()

	events := make(chan domain.SearchEvent, streamEventBufferSize)

	go func() {
		defer close(events)

		results := make([]domain.CandidateResult, 0, len(candidates))
		totalQuotes := 0

		for i, cand := range candidates {
			select {
			case <-ctx.Done():
				events <- domain.SearchEvent{Type: domain.SearchEventError, Err: fmt.Errorf("search aborted: %w", ctx.Err())}
				return
			default:
			}

			quotes, prov, err := s.client.FetchRoundTrip(ctx, session.Credentials, cand.query)
			if err != nil {
				events <- domain.SearchEvent{Type: domain.SearchEventError, Err: err}
				return
			}

			result := domain.CandidateResult{
				Destination: cand.query.Destination,
				DepartDate:  cand.query.Depart,
				ReturnDate:  cand.query.Return,
				Quotes:      quotes,
				Provenance:  prov,
			}
			results = append(results, result)
			totalQuotes += len(quotes)

			progress := domain.SearchEvent{
				Type:        domain.SearchEventProgress,
				Current:     i + 1,
				Total:       len(candidates),
				Destination: cand.query.Destination,
				DepartDate:  cand.query.Depart,
				FromCache:   prov.FromCache,
			}
			if cheapest, ok := domain.CheapestQuote(quotes); ok {
				progress.CheapestPrice = &cheapest
			}
			events <- progress
		}

		s.mergeResults(sessionID, candidates, results)

		events <- domain.SearchEvent{
			Type:        domain.SearchEventComplete,
			Total:       len(candidates),
			Results:     results,
			TotalQuotes: totalQuotes,
		}
	}()

	return events, nil
}

// mergeResults writes the batch outcome back into the session as one atomic
// update, last-write-wins per bucket key. Candidates without a matching
// bucket (ad hoc dates) are skipped by MergeResult. A session that expired
// mid-search just loses the merge; the caller still gets the results.
func (s *FlightSearchService) mergeResults(sessionID string, candidates []candidate, results []domain.CandidateResult) {
	err := s.store.Update(sessionID, func(session *domain.SearchSession) error {
		for i := range results {
			session.MergeResult(candidates[i].key, results[i].Quotes, results[i].Provenance)
		}
		return nil
	})
	if err != nil {
		logrus.Warnf("Session %s: merge skipped: %v", sessionID, err)
	}
}

// resolveCandidates intersects the filters with the session's bucket set.
// With both destination and date given, the single ad hoc candidate is
// searched even when no bucket matches; it just won't merge back.
func (s *FlightSearchService) resolveCandidates(session *domain.SearchSession, filters domain.SearchFilters) ([]candidate, error) {
	tripDays := session.Config.TripLengthDays
	if tripDays <= 0 {
		tripDays = s.tripLengthDays
	}

	if filters.Destination != nil && !filters.Destination.Valid() {
		return nil, fmt.Errorf("%w: destination airport %q", domain.ErrInvalidSearchInput, *filters.Destination)
	}

	build := func(dest domain.Airport, depart time.Time) candidate {
		depart = domain.DateOnly(depart)
		ret := depart.AddDate(0, 0, tripDays)
		if filters.ReturnDate != nil {
			ret = domain.DateOnly(*filters.ReturnDate)
		}
		return candidate{
			key: domain.WeekendKey{Airport: dest, Anchor: domain.WeekendAnchor(depart)},
			query: domain.RouteQuery{
				Origin:      session.Config.Origin,
				Destination: dest,
				Depart:      depart,
				Return:      ret,
				SkipCache:   filters.SkipCache,
			},
		}
	}

	var candidates []candidate
	switch {
	case filters.Destination != nil && filters.DepartDate != nil:
		candidates = []candidate{build(*filters.Destination, *filters.DepartDate)}

	case filters.Destination != nil:
		for _, b := range session.Buckets {
			if b.Key.Airport == *filters.Destination {
				candidates = append(candidates, build(b.Key.Airport, b.Key.Anchor))
			}
		}

	case filters.DepartDate != nil:
		anchor := domain.WeekendAnchor(*filters.DepartDate)
		for _, b := range session.Buckets {
			if b.Key.Anchor.Equal(anchor) {
				candidates = append(candidates, build(b.Key.Airport, *filters.DepartDate))
			}
		}

	default:
		for _, b := range session.Buckets {
			candidates = append(candidates, build(b.Key.Airport, b.Key.Anchor))
		}
	}

	max := filters.MaxResults
	if max <= 0 || max > s.maxLookups {
		max = s.maxLookups
	}
	if len(candidates) > max {
		candidates = candidates[:max]
	}
	return candidates, nil
}

// Quotes - Use case: filtered read over the session's accumulated bucket
// results, cheapest first.
func (s *FlightSearchService) Quotes(sessionID string, filters domain.QuoteFilters) ([]domain.BucketQuotes, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.BucketQuotes, 0, len(session.Results))
	for _, bucket := range session.Buckets {
		result, searched := session.Results[bucket.Key]
		if !searched {
			continue
		}
		if filters.Airport != nil && bucket.Key.Airport != *filters.Airport {
			continue
		}
		if filters.FriendsOnly && !containsAirport(session.Config.FriendAirports, bucket.Key.Airport) {
			continue
		}
		if filters.Region != "" && !matchesRegion(bucket.Tournaments, filters.Region) {
			continue
		}
		if filters.NameContains != "" && !matchesName(bucket.Tournaments, filters.NameContains) {
			continue
		}

		quotes := result.Quotes
		if filters.MaxPrice != nil {
			quotes = quotesWithin(quotes, *filters.MaxPrice)
			if len(quotes) == 0 {
				continue
			}
		}

		bq := domain.BucketQuotes{
			Key:         bucket.Key,
			Airport:     bucket.Key.Airport,
			Weekend:     bucket.Key.Anchor,
			Tournaments: bucket.Tournaments,
			Quotes:      quotes,
			Provenance:  result.Provenance,
		}
		if cheapest, ok := domain.CheapestQuote(quotes); ok {
			bq.Cheapest = &cheapest
		}
		out = append(out, bq)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Cheapest, out[j].Cheapest
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})

	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func sessionInfo(session *domain.SearchSession) *domain.SessionInfo {
	return &domain.SessionInfo{
		ID:              session.ID,
		Origin:          session.Config.Origin,
		TournamentCount: len(session.Tournaments),
		BucketCount:     len(session.Buckets),
		SearchedBuckets: session.SearchedBuckets(),
		CreatedAt:       session.CreatedAt,
		ExpiresAt:       session.ExpiresAt(),
	}
}

func containsAirport(airports []domain.Airport, a domain.Airport) bool {
	for _, fa := range airports {
		if fa == a {
			return true
		}
	}
	return false
}

func matchesRegion(tournaments []domain.Tournament, region string) bool {
	for _, t := range tournaments {
		if strings.EqualFold(t.Region, region) {
			return true
		}
	}
	return false
}

func matchesName(tournaments []domain.Tournament, substr string) bool {
	needle := strings.ToLower(substr)
	for _, t := range tournaments {
		if strings.Contains(strings.ToLower(t.Name), needle) {
			return true
		}
	}
	return false
}

func quotesWithin(quotes []domain.FlightQuote, maxPrice float64) []domain.FlightQuote {
	kept := make([]domain.FlightQuote, 0, len(quotes))
	for _, q := range quotes {
		if q.Price <= maxPrice {
			kept = append(kept, q)
		}
	}
	return kept
}
