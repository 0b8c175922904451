package pipeline

import (
	"time"

	"github.com/pkordes/flightboard/internal/domain"
)

// WindowRadius is the half-width of the display window around "now".
const WindowRadius = 24 * time.Hour

// SkippedRecord describes a record FilterWindow dropped because its scheduled
// departure could not be used.
type SkippedRecord struct {
	FlightCode string
	Raw        string // the offending departure timestamp, possibly empty
	Reason     string
}

const (
	reasonMissing     = "missing departure time"
	reasonUnparseable = "unparseable departure time"
)

// InWindow reports whether t lies in [now-WindowRadius, now+WindowRadius].
// Both bounds are inclusive.
func InWindow(now, t time.Time) bool {
	lo, hi := now.Add(-WindowRadius), now.Add(WindowRadius)
	return !t.Before(lo) && !t.After(hi)
}

// FilterWindow returns the records whose scheduled departure lies inside the
// display window around now, in input order. Records without a usable
// departure time are never kept; they are returned as skips for the caller
// to report.
//
// A kept record whose status is "active" (any case) has its status rewritten
// to "in-flight". The input slice is not modified.
func FilterWindow(now time.Time, records []domain.FlightRecord) ([]domain.FlightRecord, []SkippedRecord) {
	now = now.UTC()
	kept := make([]domain.FlightRecord, 0, len(records))
	var skipped []SkippedRecord

	for _, r := range records {
		raw := r.Departure.Scheduled
		dep, ok := ParseTimestamp(raw)
		if !ok {
			reason := reasonUnparseable
			if raw == "" {
				reason = reasonMissing
			}
			skipped = append(skipped, SkippedRecord{FlightCode: r.FlightCode(), Raw: raw, Reason: reason})
			continue
		}
		if !InWindow(now, dep) {
			continue
		}
		if NormalizeStatus(r.Status) == statusActive {
			r.Status = StatusInFlight
		}
		kept = append(kept, r)
	}
	return kept, skipped
}
