// Package domain contains the core data types for the flight board.
// This package has no dependencies on other internal packages and is imported
// by every one of them (pipeline, repo, service, render, handler).
package domain

// FlightIdent carries the carrier-assigned identifiers of a flight.
type FlightIdent struct {
	Number string
	IATA   string
	ICAO   string
}

// Airline identifies the operating carrier.
type Airline struct {
	Name string
	IATA string
	ICAO string
}

// Leg is one end (departure or arrival) of a reported flight.
// Every field is optional: empty strings and a nil Delay mean the upstream
// source did not report a value.
type Leg struct {
	Airport string
	IATA    string
	ICAO    string

	// Scheduled is the raw scheduled timestamp exactly as reported.
	// It is parsed by the pipeline, never here.
	Scheduled string

	// Delay is the reported delay in minutes. nil means "no delay reported".
	Delay *int
}

// FlightRecord represents one reported flight instance at fetch time.
// Records are built fresh from each upstream response and discarded after the
// response is rendered.
type FlightRecord struct {
	FlightDate string
	Status     string // upstream vocabulary, e.g. "scheduled", "active", "landed"
	Flight     FlightIdent
	Airline    Airline
	Departure  Leg
	Arrival    Leg
}

// FlightCode returns the best identifier for display (prefers IATA).
func (r FlightRecord) FlightCode() string {
	if r.Flight.IATA != "" {
		return r.Flight.IATA
	}
	if r.Flight.ICAO != "" {
		return r.Flight.ICAO
	}
	return r.Flight.Number
}
