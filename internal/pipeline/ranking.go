package pipeline

import (
	"cmp"
	"slices"
	"time"

	"github.com/pkordes/flightboard/internal/domain"
)

// statusPriority orders the known statuses; everything else ranks after them.
var statusPriority = map[string]int{
	StatusLanded:    0,
	StatusInFlight:  1,
	StatusScheduled: 2,
}

const otherStatusPriority = 3

// latest stands in for a missing departure so such flights sort last within
// their status bucket.
var latest = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)

// StatusPriority returns the primary sort key for a status, compared after
// NormalizeStatus.
func StatusPriority(status string) int {
	if p, ok := statusPriority[NormalizeStatus(status)]; ok {
		return p
	}
	return otherStatusPriority
}

// departureKey returns the secondary sort key for f.
func departureKey(f domain.DisplayFlight) time.Time {
	if t, ok := ParseTimestamp(f.Departure.Scheduled); ok {
		return t
	}
	return latest
}

// CompareFlights orders flights by status priority, then by scheduled
// departure ascending. It returns a negative number when a sorts before b.
func CompareFlights(a, b domain.DisplayFlight) int {
	if c := cmp.Compare(StatusPriority(a.Status), StatusPriority(b.Status)); c != 0 {
		return c
	}
	return departureKey(a).Compare(departureKey(b))
}

// SortFlights sorts flights in place for display. Flights with equal keys keep
// their input order.
func SortFlights(flights []domain.DisplayFlight) {
	slices.SortStableFunc(flights, CompareFlights)
}
