package skypricer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dhyanpatel/TourneyFlights/configs"
	"github.com/dhyanpatel/TourneyFlights/internal/domain"
	"github.com/dhyanpatel/TourneyFlights/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure Client implements FlightClient interface
var _ output.FlightClient = (*Client)(nil)

// Client struct - Output adapter for the pay-per-call flight pricing provider.
// Every fetch consults the disk cache first (unless told not to) and only
// then spends a paid call. Throttling rotates through the session's
// credentials; any other failure collapses to "zero quotes for this route"
// so one route never takes down a batch.
type Client struct {
	httpClient *http.Client
	baseURL    string
	currency   string
	cache      output.QuoteCache
	cacheTTL   time.Duration
}

// NewClient creates a provider client from config. The per-call timeout
// bounds how long one route can stall a sequential batch when the provider
// hangs.
func NewClient(config configs.Provider, cache output.QuoteCache, cacheTTL time.Duration) *Client {
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://serpapi.com"
	}

	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if config.TimeoutSeconds <= 0 {
		timeout = 20 * time.Second
	}

	currency := config.Currency
	if currency == "" {
		currency = "EUR"
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	logrus.Infof("Flight provider client initialized with base URL: %s, timeout: %v", baseURL, timeout)

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		currency:   currency,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// FetchRoundTrip resolves one route: cache first, then a live call through
// the credential rotation loop. Contained failures (throttle exhaustion,
// provider errors, unparseable payloads) return an empty quote list with
// fresh provenance and a nil error; only context cancellation is an error.
func (c *Client) FetchRoundTrip(ctx context.Context, creds *domain.CredentialSet, query domain.RouteQuery) ([]domain.FlightQuote, domain.CacheProvenance, error) {
	if !query.SkipCache {
		if payload, age, ok := c.cache.Get(query, c.cacheTTL); ok {
			quotes, err := parseQuotes(payload, query)
			if err == nil {
				return quotes, domain.CachedProvenance(age), nil
			}
			// A cached payload that no longer parses is useless; fall
			// through to a live fetch.
			logrus.Warnf("Cached payload for %s->%s unparseable, fetching live: %v", query.Origin, query.Destination, err)
		}
	}

	// Retry loop bounded by the number of credentials: each throttle
	// advances the cursor, exhaustion stops the loop without error.
	for {
		key, err := creds.Current()
		if err != nil {
			logrus.Errorf("No credentials for %s->%s: %v", query.Origin, query.Destination, err)
			return []domain.FlightQuote{}, domain.FreshProvenance(), nil
		}

		payload, err := c.fetchOnce(ctx, key, query)
		switch {
		case err == nil:
			if cacheErr := c.cache.Put(query, payload); cacheErr != nil {
				// The in-memory payload is still good; never fail here.
				logrus.Warnf("Cache write failed for %s->%s: %v", query.Origin, query.Destination, cacheErr)
			}
			quotes, parseErr := parseQuotes(payload, query)
			if parseErr != nil {
				logrus.Errorf("Parse failed for %s->%s: %v", query.Origin, query.Destination, parseErr)
				return []domain.FlightQuote{}, domain.FreshProvenance(), nil
			}
			return quotes, domain.FreshProvenance(), nil

		case errors.Is(err, domain.ErrProviderThrottled):
			if !creds.Advance() {
				logrus.Warnf("All %d credentials throttled for %s->%s, returning no quotes", creds.Len(), query.Origin, query.Destination)
				return []domain.FlightQuote{}, domain.FreshProvenance(), nil
			}
			logrus.Infof("Credential throttled for %s->%s, rotating", query.Origin, query.Destination)

		case ctx.Err() != nil:
			return nil, domain.FreshProvenance(), fmt.Errorf("fetch cancelled: %w", ctx.Err())

		default:
			logrus.Errorf("Provider call failed for %s->%s: %v", query.Origin, query.Destination, err)
			return []domain.FlightQuote{}, domain.FreshProvenance(), nil
		}
	}
}

// fetchOnce issues a single provider call with one credential and returns
// the raw payload. The error is domain.ErrProviderThrottled on a rate-limit
// response so the caller can rotate.
func (c *Client) fetchOnce(ctx context.Context, apiKey string, query domain.RouteQuery) ([]byte, error) {
	endpoint := c.buildURL(apiKey, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create provider request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 2048))
		return nil, domain.ErrProviderThrottled
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("%w: status %d - %s", domain.ErrProviderUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrProviderUnavailable, err)
	}
	return payload, nil
}

func (c *Client) buildURL(apiKey string, query domain.RouteQuery) string {
	v := url.Values{}
	v.Set("engine", "google_flights")
	v.Set("api_key", apiKey)
	v.Set("departure_id", string(query.Origin))
	v.Set("arrival_id", string(query.Destination))
	v.Set("outbound_date", query.Depart.Format(domain.OnlyDate))
	v.Set("return_date", query.Return.Format(domain.OnlyDate))
	v.Set("currency", c.currency)
	return c.baseURL + "/search.json?" + v.Encode()
}
