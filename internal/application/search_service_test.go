package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dhyanpatel/TourneyFlights/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore is an in-memory SessionStore double without expiry handling;
// expiry behavior belongs to the memory adapter's own tests.
type stubStore struct {
	sessions map[string]*domain.SearchSession
}

func newStubStore() *stubStore {
	return &stubStore{sessions: make(map[string]*domain.SearchSession)}
}

func (s *stubStore) Get(sessionID string) (*domain.SearchSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *stubStore) Put(session *domain.SearchSession) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *stubStore) Update(sessionID string, fn func(*domain.SearchSession) error) error {
	session, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	return fn(session)
}

func (s *stubStore) Delete(sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

// stubClient is a FlightClient double driven by a per-destination quote table.
type stubClient struct {
	quotesByDest map[domain.Airport][]domain.FlightQuote
	fetchErr     error
	calls        []domain.RouteQuery
}

func (c *stubClient) FetchRoundTrip(ctx context.Context, creds *domain.CredentialSet, query domain.RouteQuery) ([]domain.FlightQuote, domain.CacheProvenance, error) {
	c.calls = append(c.calls, query)
	if c.fetchErr != nil {
		return nil, domain.FreshProvenance(), c.fetchErr
	}
	return c.quotesByDest[query.Destination], domain.FreshProvenance(), nil
}

type stubTournamentSource struct {
	tournaments []domain.Tournament
	err         error
}

func (s *stubTournamentSource) ListUpcoming(ctx context.Context, from, to time.Time) ([]domain.Tournament, error) {
	return s.tournaments, s.err
}

type stubAirportLookup struct {
	byCity map[string]domain.Airport
}

func (s *stubAirportLookup) AirportFor(city, region string) (domain.Airport, bool) {
	airport, ok := s.byCity[city]
	return airport, ok
}

// Two Berlin tournaments share a weekend, Munich has its own a week later,
// and Kleinstadt has no airport mapping.
func fixtureTournaments() []domain.Tournament {
	return []domain.Tournament{
		{Name: "Berlin Open", City: "Berlin", Region: "Berlin", StartDate: time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC)},
		{Name: "Berlin Masters", City: "Berlin", Region: "Berlin", StartDate: time.Date(2026, time.September, 13, 0, 0, 0, 0, time.UTC)},
		{Name: "Munich Cup", City: "Munich", Region: "Bavaria", StartDate: time.Date(2026, time.September, 19, 0, 0, 0, 0, time.UTC)},
		{Name: "Village Trophy", City: "Kleinstadt", Region: "Bavaria", StartDate: time.Date(2026, time.September, 19, 0, 0, 0, 0, time.UTC)},
	}
}

func fixtureLookup() *stubAirportLookup {
	return &stubAirportLookup{byCity: map[string]domain.Airport{
		"Berlin": "BER",
		"Munich": "MUC",
	}}
}

func newTestService(store *stubStore, client *stubClient, source *stubTournamentSource) *FlightSearchService {
	return NewFlightSearchService(store, client, source, fixtureLookup(), time.Hour, 2, 10)
}

func createTestSession(t *testing.T, service *FlightSearchService) string {
	t.Helper()
	info, err := service.CreateSession(context.Background(), domain.CreateSessionRequest{
		Credentials: []string{"k0", "k1"},
		Config:      domain.SessionConfig{Origin: "ORD", FriendAirports: []domain.Airport{"BER"}},
	})
	require.NoError(t, err)
	return info.ID
}

func TestCreateSessionBuildsBucketsFromCalendar(t *testing.T) {
	store := newStubStore()
	service := newTestService(store, &stubClient{}, &stubTournamentSource{tournaments: fixtureTournaments()})

	info, err := service.CreateSession(context.Background(), domain.CreateSessionRequest{
		Credentials: []string{"k0"},
		Config:      domain.SessionConfig{Origin: "ORD"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, info.ID)
	assert.Equal(t, domain.Airport("ORD"), info.Origin)
	assert.Equal(t, 4, info.TournamentCount)
	// Berlin's two tournaments coalesce, the unmapped village drops out.
	assert.Equal(t, 2, info.BucketCount)
	assert.Equal(t, 0, info.SearchedBuckets)
	assert.True(t, info.ExpiresAt.After(info.CreatedAt))

	session, err := store.Get(info.ID)
	require.NoError(t, err)
	assert.Len(t, session.Buckets[0].Tournaments, 2)
}

func TestCreateSessionRejectsEmptyCredentials(t *testing.T) {
	service := newTestService(newStubStore(), &stubClient{}, &stubTournamentSource{})

	_, err := service.CreateSession(context.Background(), domain.CreateSessionRequest{
		Credentials: []string{"", "   "},
		Config:      domain.SessionConfig{Origin: "ORD"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCreateSessionRejectsInvalidOrigin(t *testing.T) {
	service := newTestService(newStubStore(), &stubClient{}, &stubTournamentSource{})

	_, err := service.CreateSession(context.Background(), domain.CreateSessionRequest{
		Credentials: []string{"k0"},
		Config:      domain.SessionConfig{Origin: "CHICAGO"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSearchInput)
}

func TestCreateSessionFailsWhenCalendarUnavailable(t *testing.T) {
	source := &stubTournamentSource{err: domain.ErrTournamentSourceUnavailable}
	service := newTestService(newStubStore(), &stubClient{}, source)

	_, err := service.CreateSession(context.Background(), domain.CreateSessionRequest{
		Credentials: []string{"k0"},
		Config:      domain.SessionConfig{Origin: "ORD"},
	})
	assert.ErrorIs(t, err, domain.ErrTournamentSourceUnavailable)
}

func TestSearchResolvesEveryBucketAndMerges(t *testing.T) {
	store := newStubStore()
	client := &stubClient{quotesByDest: map[domain.Airport][]domain.FlightQuote{
		"BER": {{Price: 120}, {Price: 90}},
		"MUC": {{Price: 200}},
	}}
	service := newTestService(store, client, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)

	result, err := service.Search(context.Background(), sessionID, domain.SearchFilters{})
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	assert.Equal(t, 3, result.TotalQuotes)
	assert.Equal(t, domain.Airport("BER"), result.Results[0].Destination)
	assert.Equal(t, domain.Airport("MUC"), result.Results[1].Destination)

	// Depart on the weekend anchor, return tripLengthDays later.
	assert.Equal(t, time.Date(2026, time.September, 11, 0, 0, 0, 0, time.UTC), result.Results[0].DepartDate)
	assert.Equal(t, time.Date(2026, time.September, 13, 0, 0, 0, 0, time.UTC), result.Results[0].ReturnDate)

	session, err := store.Get(sessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, session.SearchedBuckets())
}

func TestSearchContainsEmptyRouteResults(t *testing.T) {
	store := newStubStore()
	client := &stubClient{quotesByDest: map[domain.Airport][]domain.FlightQuote{
		"MUC": {{Price: 200}},
		// BER missing: the provider found nothing for it.
	}}
	service := newTestService(store, client, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)

	result, err := service.Search(context.Background(), sessionID, domain.SearchFilters{})
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	assert.Empty(t, result.Results[0].Quotes)
	assert.Len(t, result.Results[1].Quotes, 1)
	assert.Equal(t, 1, result.TotalQuotes)
}

func TestSearchFiltersByDestination(t *testing.T) {
	store := newStubStore()
	client := &stubClient{quotesByDest: map[domain.Airport][]domain.FlightQuote{"MUC": {{Price: 150}}}}
	service := newTestService(store, client, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)

	dest := domain.Airport("MUC")
	result, err := service.Search(context.Background(), sessionID, domain.SearchFilters{Destination: &dest})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, dest, result.Results[0].Destination)
	require.Len(t, client.calls, 1)
	assert.Equal(t, dest, client.calls[0].Destination)
}

func TestSearchRejectsInvalidDestination(t *testing.T) {
	service := newTestService(newStubStore(), &stubClient{}, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)

	dest := domain.Airport("MUNICH")
	_, err := service.Search(context.Background(), sessionID, domain.SearchFilters{Destination: &dest})
	assert.ErrorIs(t, err, domain.ErrInvalidSearchInput)
}

func TestSearchAdHocDateIsNotMergedIntoSession(t *testing.T) {
	store := newStubStore()
	client := &stubClient{quotesByDest: map[domain.Airport][]domain.FlightQuote{"BER": {{Price: 80}}}}
	service := newTestService(store, client, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)

	// A date with no tournament weekend: searched, but not accumulated.
	dest := domain.Airport("BER")
	depart := time.Date(2026, time.December, 4, 0, 0, 0, 0, time.UTC)
	result, err := service.Search(context.Background(), sessionID, domain.SearchFilters{Destination: &dest, DepartDate: &depart})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, 1, result.TotalQuotes)

	session, err := store.Get(sessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, session.SearchedBuckets())
}

func TestSearchByDateMatchesWeekendAnchor(t *testing.T) {
	store := newStubStore()
	client := &stubClient{quotesByDest: map[domain.Airport][]domain.FlightQuote{"BER": {{Price: 80}}}}
	service := newTestService(store, client, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)

	// A Sunday within the Berlin weekend resolves to that bucket only.
	depart := time.Date(2026, time.September, 13, 0, 0, 0, 0, time.UTC)
	result, err := service.Search(context.Background(), sessionID, domain.SearchFilters{DepartDate: &depart})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, domain.Airport("BER"), result.Results[0].Destination)
	assert.Equal(t, depart, result.Results[0].DepartDate)
}

func TestSearchCapsCandidatesAtMaxResults(t *testing.T) {
	store := newStubStore()
	client := &stubClient{}
	service := newTestService(store, client, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)

	result, err := service.Search(context.Background(), sessionID, domain.SearchFilters{MaxResults: 1})
	require.NoError(t, err)

	assert.Len(t, result.Results, 1)
	assert.Len(t, client.calls, 1)
}

func TestSearchResetsCredentialCursorPerBatch(t *testing.T) {
	store := newStubStore()
	client := &stubClient{}
	service := newTestService(store, client, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)

	session, err := store.Get(sessionID)
	require.NoError(t, err)
	// Simulate an earlier batch that burned through the first credential.
	session.Credentials.Advance()

	_, err = service.Search(context.Background(), sessionID, domain.SearchFilters{})
	require.NoError(t, err)

	key, err := session.Credentials.Current()
	require.NoError(t, err)
	assert.Equal(t, "k0", key)
}

func TestSearchReSearchReplacesBucketResults(t *testing.T) {
	store := newStubStore()
	client := &stubClient{quotesByDest: map[domain.Airport][]domain.FlightQuote{"BER": {{Price: 120}}}}
	service := newTestService(store, client, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)

	dest := domain.Airport("BER")
	_, err := service.Search(context.Background(), sessionID, domain.SearchFilters{Destination: &dest})
	require.NoError(t, err)

	client.quotesByDest["BER"] = []domain.FlightQuote{{Price: 99}, {Price: 105}}
	_, err = service.Search(context.Background(), sessionID, domain.SearchFilters{Destination: &dest})
	require.NoError(t, err)

	session, err := store.Get(sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, session.SearchedBuckets())

	berKey := session.Buckets[0].Key
	require.Len(t, session.Results[berKey].Quotes, 2)
	assert.Equal(t, 99.0, session.Results[berKey].Quotes[0].Price)
}

func TestSearchForUnknownSessionFails(t *testing.T) {
	service := newTestService(newStubStore(), &stubClient{}, &stubTournamentSource{})

	_, err := service.Search(context.Background(), "missing", domain.SearchFilters{})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func collectEvents(t *testing.T, events <-chan domain.SearchEvent) []domain.SearchEvent {
	t.Helper()
	var collected []domain.SearchEvent
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return collected
			}
			collected = append(collected, ev)
		case <-timeout:
			t.Fatal("timed out waiting for stream events")
		}
	}
}

func TestSearchStreamEmitsProgressPerCandidateThenComplete(t *testing.T) {
	store := newStubStore()
	client := &stubClient{quotesByDest: map[domain.Airport][]domain.FlightQuote{
		"BER": {{Price: 120}, {Price: 90}},
		"MUC": {{Price: 200}},
	}}
	service := newTestService(store, client, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)

	events, err := service.SearchStream(context.Background(), sessionID, domain.SearchFilters{})
	require.NoError(t, err)

	collected := collectEvents(t, events)
	require.Len(t, collected, 3)

	first, second, terminal := collected[0], collected[1], collected[2]

	assert.Equal(t, domain.SearchEventProgress, first.Type)
	assert.Equal(t, 1, first.Current)
	assert.Equal(t, 2, first.Total)
	assert.Equal(t, domain.Airport("BER"), first.Destination)
	require.NotNil(t, first.CheapestPrice)
	assert.Equal(t, 90.0, *first.CheapestPrice)

	assert.Equal(t, domain.SearchEventProgress, second.Type)
	assert.Equal(t, 2, second.Current)
	assert.Equal(t, domain.Airport("MUC"), second.Destination)

	assert.Equal(t, domain.SearchEventComplete, terminal.Type)
	assert.Equal(t, 3, terminal.TotalQuotes)
	assert.Len(t, terminal.Results, 2)

	session, err := store.Get(sessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, session.SearchedBuckets())
}

func TestSearchStreamOmitsCheapestForEmptyCandidate(t *testing.T) {
	store := newStubStore()
	client := &stubClient{} // provider finds nothing anywhere
	service := newTestService(store, client, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)

	events, err := service.SearchStream(context.Background(), sessionID, domain.SearchFilters{})
	require.NoError(t, err)

	collected := collectEvents(t, events)
	require.Len(t, collected, 3)
	assert.Nil(t, collected[0].CheapestPrice)
	assert.Equal(t, 0, collected[2].TotalQuotes)
}

func TestSearchStreamAbortsWithoutMergingOnCancelledContext(t *testing.T) {
	store := newStubStore()
	client := &stubClient{quotesByDest: map[domain.Airport][]domain.FlightQuote{"BER": {{Price: 120}}}}
	service := newTestService(store, client, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events, err := service.SearchStream(ctx, sessionID, domain.SearchFilters{})
	require.NoError(t, err)

	collected := collectEvents(t, events)
	require.Len(t, collected, 1)
	assert.Equal(t, domain.SearchEventError, collected[0].Type)
	assert.ErrorIs(t, collected[0].Err, context.Canceled)

	session, err := store.Get(sessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, session.SearchedBuckets())
}

func TestSearchStreamEndsWithErrorEventOnClientFailure(t *testing.T) {
	store := newStubStore()
	boom := errors.New("fetch cancelled")
	client := &stubClient{fetchErr: boom}
	service := newTestService(store, client, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)

	events, err := service.SearchStream(context.Background(), sessionID, domain.SearchFilters{})
	require.NoError(t, err)

	collected := collectEvents(t, events)
	require.Len(t, collected, 1)
	assert.Equal(t, domain.SearchEventError, collected[0].Type)
	assert.ErrorIs(t, collected[0].Err, boom)
}

func TestSearchStreamForUnknownSessionFailsBeforeStreaming(t *testing.T) {
	service := newTestService(newStubStore(), &stubClient{}, &stubTournamentSource{})

	events, err := service.SearchStream(context.Background(), "missing", domain.SearchFilters{})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Nil(t, events)
}

func searchedService(t *testing.T) (*FlightSearchService, string) {
	t.Helper()
	store := newStubStore()
	client := &stubClient{quotesByDest: map[domain.Airport][]domain.FlightQuote{
		"BER": {{Price: 120}, {Price: 90}},
		"MUC": {{Price: 200}},
	}}
	service := newTestService(store, client, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)
	_, err := service.Search(context.Background(), sessionID, domain.SearchFilters{})
	require.NoError(t, err)
	return service, sessionID
}

func TestQuotesReturnsSearchedBucketsCheapestFirst(t *testing.T) {
	service, sessionID := searchedService(t)

	buckets, err := service.Quotes(sessionID, domain.QuoteFilters{})
	require.NoError(t, err)

	require.Len(t, buckets, 2)
	assert.Equal(t, domain.Airport("BER"), buckets[0].Airport)
	require.NotNil(t, buckets[0].Cheapest)
	assert.Equal(t, 90.0, *buckets[0].Cheapest)
	assert.Equal(t, domain.Airport("MUC"), buckets[1].Airport)
	assert.Len(t, buckets[0].Tournaments, 2)
}

func TestQuotesSkipsUnsearchedBuckets(t *testing.T) {
	store := newStubStore()
	client := &stubClient{quotesByDest: map[domain.Airport][]domain.FlightQuote{"MUC": {{Price: 200}}}}
	service := newTestService(store, client, &stubTournamentSource{tournaments: fixtureTournaments()})
	sessionID := createTestSession(t, service)

	dest := domain.Airport("MUC")
	_, err := service.Search(context.Background(), sessionID, domain.SearchFilters{Destination: &dest})
	require.NoError(t, err)

	buckets, err := service.Quotes(sessionID, domain.QuoteFilters{})
	require.NoError(t, err)

	require.Len(t, buckets, 1)
	assert.Equal(t, dest, buckets[0].Airport)
}

func TestQuotesFilterByAirportRegionAndName(t *testing.T) {
	service, sessionID := searchedService(t)

	ber := domain.Airport("BER")
	buckets, err := service.Quotes(sessionID, domain.QuoteFilters{Airport: &ber})
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, ber, buckets[0].Airport)

	buckets, err = service.Quotes(sessionID, domain.QuoteFilters{Region: "bavaria"})
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, domain.Airport("MUC"), buckets[0].Airport)

	buckets, err = service.Quotes(sessionID, domain.QuoteFilters{NameContains: "masters"})
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, ber, buckets[0].Airport)
}

func TestQuotesFriendsOnlyKeepsFriendAirports(t *testing.T) {
	service, sessionID := searchedService(t)

	buckets, err := service.Quotes(sessionID, domain.QuoteFilters{FriendsOnly: true})
	require.NoError(t, err)

	require.Len(t, buckets, 1)
	assert.Equal(t, domain.Airport("BER"), buckets[0].Airport)
}

func TestQuotesMaxPriceDropsBucketsWithNoQualifyingQuote(t *testing.T) {
	service, sessionID := searchedService(t)

	maxPrice := 100.0
	buckets, err := service.Quotes(sessionID, domain.QuoteFilters{MaxPrice: &maxPrice})
	require.NoError(t, err)

	// MUC's only quote is 200, so the whole bucket drops out.
	require.Len(t, buckets, 1)
	assert.Equal(t, domain.Airport("BER"), buckets[0].Airport)
	require.Len(t, buckets[0].Quotes, 1)
	assert.Equal(t, 90.0, buckets[0].Quotes[0].Price)
}

func TestQuotesAppliesLimitAfterSorting(t *testing.T) {
	service, sessionID := searchedService(t)

	buckets, err := service.Quotes(sessionID, domain.QuoteFilters{Limit: 1})
	require.NoError(t, err)

	require.Len(t, buckets, 1)
	assert.Equal(t, domain.Airport("BER"), buckets[0].Airport)
}
