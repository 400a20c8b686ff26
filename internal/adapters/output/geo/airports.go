package geo

import (
	"strings"

	"github.com/dhyanpatel/TourneyFlights/internal/domain"
	"github.com/dhyanpatel/TourneyFlights/internal/ports/output"
)

// Compile-time check to ensure StaticAirportLookup implements the port
var _ output.AirportLookup = (*StaticAirportLookup)(nil)

// StaticAirportLookup struct - table-driven city-to-airport mapping.
// Coverage is partial: tournament listings name far more towns
// than have reachable airports, and unmapped cities are simply skipped by
// the bucket builder. Region-qualified entries win over bare city names so
// ambiguous towns resolve to the right airport.
type StaticAirportLookup struct {
	byCityRegion map[string]domain.Airport
	byCity       map[string]domain.Airport
}

// NewStaticAirportLookup creates the lookup with the built-in table.
func NewStaticAirportLookup() *StaticAirportLookup {
	l := &StaticAirportLookup{
		byCityRegion: make(map[string]domain.Airport),
		byCity:       make(map[string]domain.Airport),
	}
	for _, e := range airportTable {
		if e.region != "" {
			l.byCityRegion[cityRegionKey(e.city, e.region)] = e.airport
		} else {
			l.byCity[normalize(e.city)] = e.airport
		}
	}
	return l
}

// AirportFor resolves a city (optionally disambiguated by region) to its
// nearest airport.
func (l *StaticAirportLookup) AirportFor(city, region string) (domain.Airport, bool) {
	if a, ok := l.byCityRegion[cityRegionKey(city, region)]; ok {
		return a, true
	}
	a, ok := l.byCity[normalize(city)]
	return a, ok
}

func cityRegionKey(city, region string) string {
	return normalize(city) + "|" + normalize(region)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type airportEntry struct {
	city    string
	region  string
	airport domain.Airport
}

var airportTable = []airportEntry{
	{city: "Berlin", airport: "BER"},
	{city: "Munich", airport: "MUC"},
	{city: "München", airport: "MUC"},
	{city: "Hamburg", airport: "HAM"},
	{city: "Frankfurt", airport: "FRA"},
	{city: "Cologne", airport: "CGN"},
	{city: "Köln", airport: "CGN"},
	{city: "Düsseldorf", airport: "DUS"},
	{city: "Stuttgart", airport: "STR"},
	{city: "Leipzig", airport: "LEJ"},
	{city: "Nuremberg", airport: "NUE"},
	{city: "Nürnberg", airport: "NUE"},
	{city: "Bremen", airport: "BRE"},
	{city: "Hannover", airport: "HAJ"},
	{city: "Dresden", airport: "DRS"},
	{city: "Dortmund", airport: "DTM"},
	{city: "Vienna", airport: "VIE"},
	{city: "Wien", airport: "VIE"},
	{city: "Zurich", airport: "ZRH"},
	{city: "Zürich", airport: "ZRH"},
	{city: "Prague", airport: "PRG"},
	{city: "Paris", airport: "CDG"},
	{city: "Amsterdam", airport: "AMS"},
	{city: "Copenhagen", airport: "CPH"},
	{city: "Stockholm", airport: "ARN"},
	{city: "London", airport: "LHR"},
	{city: "Warsaw", airport: "WAW"},
	{city: "Budapest", airport: "BUD"},
	{city: "Linz", airport: "LNZ"},
	{city: "Salzburg", airport: "SZG"},
	{city: "Chicago", region: "Illinois", airport: "ORD"},
	{city: "Austin", region: "Texas", airport: "AUS"},
	{city: "New York", airport: "JFK"},
}
