package domain

import (
	"sort"
	"time"
)

// Airport is a 3-letter IATA location code. Equality is by code.
type Airport string

// Valid reports whether the code is exactly three ASCII letters.
func (a Airport) Valid() bool {
	if len(a) != 3 {
		return false
	}
	for _, c := range a {
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// Tournament is one scraped tournament listing. The core treats the listing
// source as opaque input; only city/region/start date drive the lookup.
type Tournament struct {
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Region    string    `json:"region"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// WeekendKey groups tournaments by destination airport and weekend anchor
// (the Friday on/before the tournament start) so one flight lookup covers
// every tournament reachable from that airport on that weekend.
type WeekendKey struct {
	Airport Airport
	Anchor  time.Time
}

// WeekendBucket is the set of tournaments sharing a WeekendKey. Built once
// per data refresh; not mutated afterwards.
type WeekendBucket struct {
	Key         WeekendKey
	Tournaments []Tournament
}

// AirportLookupFunc resolves a tournament city to its nearest airport.
// Coverage is inherently partial; the second return reports whether a
// mapping exists.
type AirportLookupFunc func(city, region string) (Airport, bool)

// BuildWeekendBuckets groups tournaments into one bucket per distinct
// (airport, weekend anchor) pair. Tournaments whose city has no airport
// mapping are dropped. Buckets come back ordered by anchor, then airport.
func BuildWeekendBuckets(tournaments []Tournament, lookup AirportLookupFunc) []WeekendBucket {
	grouped := make(map[WeekendKey][]Tournament)
	for _, t := range tournaments {
		airport, ok := lookup(t.City, t.Region)
		if !ok {
			continue
		}
		key := WeekendKey{Airport: airport, Anchor: WeekendAnchor(t.StartDate)}
		grouped[key] = append(grouped[key], t)
	}

	buckets := make([]WeekendBucket, 0, len(grouped))
	for key, ts := range grouped {
		buckets = append(buckets, WeekendBucket{Key: key, Tournaments: ts})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].Key.Anchor.Equal(buckets[j].Key.Anchor) {
			return buckets[i].Key.Anchor.Before(buckets[j].Key.Anchor)
		}
		return buckets[i].Key.Airport < buckets[j].Key.Airport
	})
	return buckets
}
