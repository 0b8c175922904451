package domain

import (
	"time"

	"github.com/google/uuid"
)

// DisplayLeg is a Leg resolved for rendering.
// LocalTime is "N/A" and LocalTZ is empty when the scheduled time is absent
// or could not be parsed.
type DisplayLeg struct {
	Airport   string `json:"airport,omitempty"`
	IATA      string `json:"iata,omitempty"`
	Scheduled string `json:"scheduled,omitempty"` // raw upstream value
	LocalTime string `json:"local_time"`
	LocalTZ   string `json:"local_tz,omitempty"`
	Delay     *int   `json:"delay"`
}

// DisplayFlight is a FlightRecord augmented with the derived display fields.
// It is owned by the rendering step and never converted back.
type DisplayFlight struct {
	FlightCode string     `json:"flight"`
	Airline    string     `json:"airline,omitempty"`
	Status     string     `json:"status"` // normalized, display vocabulary
	Departure  DisplayLeg `json:"departure"`
	Arrival    DisplayLeg `json:"arrival"`
}

// FlightStatistics aggregates a flight collection.
// DelayedCount is never greater than TotalCount.
type FlightStatistics struct {
	TotalCount          int     `json:"total_flights"`
	DelayedCount        int     `json:"delayed_flights"`
	AverageDelayMinutes float64 `json:"average_delay"` // rounded to 2 decimals, 0 when TotalCount is 0
}

// Board is one fully resolved snapshot of the flight board, ready to render.
type Board struct {
	// BatchID identifies the upstream fetch this board was built from.
	// It appears in the log lines of the same build.
	BatchID uuid.UUID

	// GeneratedAt is the instant captured as "now" for window filtering.
	GeneratedAt time.Time

	// Timezone is the IANA name of the display timezone.
	Timezone string

	Flights []DisplayFlight
	Stats   FlightStatistics

	// Degraded is true when the upstream fetch failed and the board was
	// built from an empty collection.
	Degraded bool

	// Skipped counts records dropped for a missing or unparseable departure time.
	Skipped int
}
