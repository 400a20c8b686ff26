package domain

import (
	"testing"
	"time"
)

const testSessionTTL = time.Hour

func newTestSession(t *testing.T) *SearchSession {
	t.Helper()
	creds, err := NewCredentialSet([]string{"key-a"})
	if err != nil {
		t.Fatalf("expected no error creating credentials, got %v", err)
	}
	buckets := []WeekendBucket{
		{
			Key: WeekendKey{Airport: "BER", Anchor: date(2025, time.March, 7)},
			Tournaments: []Tournament{
				{Name: "Berlin Open", City: "Berlin", StartDate: date(2025, time.March, 8)},
			},
		},
	}
	cfg := SessionConfig{Origin: "FRA", TripLengthDays: 2}
	return NewSearchSession("session-1", creds, cfg, nil, buckets, testSessionTTL)
}

// TestNewSearchSession tests session creation and initialization
func TestNewSearchSession(t *testing.T) {
	session := newTestSession(t)

	if session.ID != "session-1" {
		t.Errorf("expected ID 'session-1', got %s", session.ID)
	}
	if len(session.Results) != 0 {
		t.Errorf("expected empty Results map, got %d entries", len(session.Results))
	}
	if session.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set, got zero value")
	}
	if session.IsExpired() {
		t.Error("expected fresh session to not be expired")
	}
}

// TestSearchSessionIsExpired tests that expiry is measured from creation,
// not last access
func TestSearchSessionIsExpired(t *testing.T) {
	session := newTestSession(t)

	session.CreatedAt = time.Now().Add(-61 * time.Minute)
	if !session.IsExpired() {
		t.Error("expected session older than TTL to be expired")
	}

	session.CreatedAt = time.Now().Add(-59 * time.Minute)
	session.LastAccessTime = time.Now().Add(-59 * time.Minute)
	if session.IsExpired() {
		t.Error("expected session younger than TTL to not be expired even when idle")
	}
}

// TestMergeResultLastWriteWins tests that re-searching a bucket key replaces
// the accumulated quotes instead of appending duplicates
func TestMergeResultLastWriteWins(t *testing.T) {
	session := newTestSession(t)
	key := session.Buckets[0].Key

	first := []FlightQuote{{Origin: "FRA", Destination: "BER", Price: 120}}
	second := []FlightQuote{{Origin: "FRA", Destination: "BER", Price: 95}}

	if !session.MergeResult(key, first, FreshProvenance()) {
		t.Fatal("expected first merge to succeed")
	}
	if !session.MergeResult(key, second, CachedProvenance(time.Minute)) {
		t.Fatal("expected second merge to succeed")
	}

	if len(session.Results) != 1 {
		t.Fatalf("expected 1 accumulated result, got %d", len(session.Results))
	}
	result := session.Results[key]
	if len(result.Quotes) != 1 || result.Quotes[0].Price != 95 {
		t.Errorf("expected only the second result's quotes, got %+v", result.Quotes)
	}
	if !result.Provenance.FromCache {
		t.Error("expected provenance replaced along with quotes")
	}
}

// TestMergeResultSkipsUnknownBucketKeys tests that ad hoc candidates without
// a matching bucket are not merged into the accumulator
func TestMergeResultSkipsUnknownBucketKeys(t *testing.T) {
	session := newTestSession(t)

	adHoc := WeekendKey{Airport: "MUC", Anchor: date(2025, time.June, 6)}
	if session.MergeResult(adHoc, []FlightQuote{{Price: 50}}, FreshProvenance()) {
		t.Error("expected merge of unknown bucket key to report false")
	}
	if len(session.Results) != 0 {
		t.Errorf("expected no accumulated results, got %d", len(session.Results))
	}
}

// TestCheapestQuote tests cheapest selection over an unordered quote list
func TestCheapestQuote(t *testing.T) {
	if _, ok := CheapestQuote(nil); ok {
		t.Error("expected no cheapest price for empty list")
	}

	quotes := []FlightQuote{{Price: 110}, {Price: 89.5}, {Price: 240}}
	cheapest, ok := CheapestQuote(quotes)
	if !ok {
		t.Fatal("expected a cheapest price")
	}
	if cheapest != 89.5 {
		t.Errorf("expected cheapest 89.5, got %v", cheapest)
	}
}
