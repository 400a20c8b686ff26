package skypricer

import (
	"encoding/json"
	"fmt"

	"github.com/dhyanpatel/TourneyFlights/internal/domain"
)

// Provider payload structures. The provider groups itineraries into a
// "best" and an "other" category; both are flattened into one quote list
// and selection (cheapest, dedupe) is left to the caller.

type searchResponse struct {
	BestFlights  []pricedItinerary `json:"best_flights"`
	OtherFlights []pricedItinerary `json:"other_flights"`
	SearchMeta   struct {
		GoogleFlightsURL string `json:"google_flights_url"`
	} `json:"search_metadata"`
}

type pricedItinerary struct {
	Price       float64     `json:"price"`
	BookingLink string      `json:"booking_link"`
	Flights     []flightLeg `json:"flights"`
}

type flightLeg struct {
	Airline   string `json:"airline"`
	Departure struct {
		Airport string `json:"airport"`
		Time    string `json:"time"`
	} `json:"departure_airport"`
	Arrival struct {
		Airport string `json:"airport"`
		Time    string `json:"time"`
	} `json:"arrival_airport"`
}

// parseQuotes flattens both itinerary categories into quotes. An itinerary
// is kept only when it has a price and at least one leg; the departure time
// comes from the first leg and the arrival time from the last leg of the
// whole itinerary, which may include connections.
func parseQuotes(payload []byte, query domain.RouteQuery) ([]domain.FlightQuote, error) {
	var resp searchResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	itineraries := make([]pricedItinerary, 0, len(resp.BestFlights)+len(resp.OtherFlights))
	itineraries = append(itineraries, resp.BestFlights...)
	itineraries = append(itineraries, resp.OtherFlights...)

	quotes := make([]domain.FlightQuote, 0, len(itineraries))
	for _, it := range itineraries {
		if it.Price <= 0 || len(it.Flights) == 0 {
			continue
		}
		first := it.Flights[0]
		last := it.Flights[len(it.Flights)-1]

		deepLink := it.BookingLink
		if deepLink == "" {
			deepLink = resp.SearchMeta.GoogleFlightsURL
		}

		quotes = append(quotes, domain.FlightQuote{
			Origin:      query.Origin,
			Destination: query.Destination,
			DepartDate:  query.Depart,
			ReturnDate:  query.Return,
			Price:       it.Price,
			DepartTime:  first.Departure.Time,
			ArriveTime:  last.Arrival.Time,
			Carrier:     first.Airline,
			DeepLink:    deepLink,
		})
	}
	return quotes, nil
}
