package domain

import "strings"

// CredentialSet holds an ordered list of provider API keys and a cursor.
// The cursor only moves forward within one batch of lookups; it never wraps
// past the last key. Reset puts it back to the first key at the start of a
// fresh batch. Not safe for concurrent use: one set belongs to one session.
type CredentialSet struct {
	keys   []string
	cursor int
}

// NewCredentialSet builds a credential set from the given keys, dropping
// blank entries. At least one usable key is required.
func NewCredentialSet(keys []string) (*CredentialSet, error) {
	cleaned := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			cleaned = append(cleaned, k)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrInvalidCredentials
	}
	return &CredentialSet{keys: cleaned}, nil
}

// Current returns the credential at the cursor.
func (c *CredentialSet) Current() (string, error) {
	if len(c.keys) == 0 {
		return "", ErrNoCredentials
	}
	return c.keys[c.cursor], nil
}

// Advance moves the cursor to the next credential after a throttle signal.
// It returns false when the cursor is already at the last credential;
// callers must stop retrying at that point rather than wrap around.
func (c *CredentialSet) Advance() bool {
	if c.cursor >= len(c.keys)-1 {
		return false
	}
	c.cursor++
	return true
}

// Reset moves the cursor back to the first credential. Called once per fresh
// batch of lookups so repeated throttling within one search starts over.
func (c *CredentialSet) Reset() {
	c.cursor = 0
}

// Len returns the number of credentials in the set.
func (c *CredentialSet) Len() int {
	return len(c.keys)
}
