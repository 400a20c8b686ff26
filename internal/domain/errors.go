package domain

import "errors"

// Flight provider and session error types

var (
	// ErrNoCredentials indicates the credential set has no keys to issue calls with
	ErrNoCredentials = errors.New("no provider credentials available")

	// ErrInvalidCredentials indicates session creation was attempted without usable credentials
	ErrInvalidCredentials = errors.New("invalid provider credentials")

	// ErrSessionNotFound indicates the session is absent or expired
	ErrSessionNotFound = errors.New("session not found")

	// ErrProviderThrottled indicates the provider rate-limited the current credential
	ErrProviderThrottled = errors.New("provider throttled")

	// ErrProviderUnavailable indicates a non-throttle provider failure
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrMalformedPayload indicates the provider payload could not be parsed
	ErrMalformedPayload = errors.New("malformed provider payload")

	// ErrTournamentSourceUnavailable indicates the tournament calendar could not be loaded
	ErrTournamentSourceUnavailable = errors.New("tournament source unavailable")

	// ErrInvalidSearchInput indicates malformed search filters (bad airport code or date)
	ErrInvalidSearchInput = errors.New("invalid search input")
)
