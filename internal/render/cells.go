// Package render turns a built board into bytes for people: the HTML
// dashboard and the PDF export. Rendering is a pure function of the board and
// a page title; all dates and statuses arrive already resolved.
package render

import (
	"fmt"

	"github.com/pkordes/flightboard/internal/domain"
	"github.com/pkordes/flightboard/internal/pipeline"
)

// OrNA returns s, or "N/A" when s is empty.
func OrNA(s string) string {
	if s == "" {
		return pipeline.NotAvailable
	}
	return s
}

// AirportCell formats a leg's airport as "Name (IATA)".
func AirportCell(l domain.DisplayLeg) string {
	return fmt.Sprintf("%s (%s)", OrNA(l.Airport), OrNA(l.IATA))
}

// TimeCell formats a leg's local time, with the zone label when known.
func TimeCell(l domain.DisplayLeg) string {
	if l.LocalTZ == "" {
		return l.LocalTime
	}
	return fmt.Sprintf("%s (%s)", l.LocalTime, l.LocalTZ)
}

// DelayMinutes returns the reported delay, or 0 when none was reported.
func DelayMinutes(l domain.DisplayLeg) int {
	if l.Delay == nil {
		return 0
	}
	return *l.Delay
}

// AverageDelay formats the mean delay with two decimals.
func AverageDelay(s domain.FlightStatistics) string {
	return fmt.Sprintf("%.2f", s.AverageDelayMinutes)
}
