package pipeline

import (
	"time"

	"github.com/pkordes/flightboard/internal/domain"
)

// Result is the render-ready output of one pipeline run.
type Result struct {
	Flights []domain.DisplayFlight
	Stats   domain.FlightStatistics
	Skipped []SkippedRecord
}

// Pipeline composes the board transformations over one fetched batch.
type Pipeline struct {
	converter *LocalTimeConverter
}

// New returns a Pipeline rendering local times with converter.
func New(converter *LocalTimeConverter) *Pipeline {
	return &Pipeline{converter: converter}
}

// Run filters records to the window around now, resolves display fields,
// ranks the survivors, and aggregates statistics over them.
// A nil or empty batch yields an empty, non-nil Flights slice and zero stats.
func (p *Pipeline) Run(now time.Time, records []domain.FlightRecord) Result {
	kept, skipped := FilterWindow(now, records)

	flights := make([]domain.DisplayFlight, 0, len(kept))
	for _, r := range kept {
		flights = append(flights, p.display(r))
	}
	SortFlights(flights)

	return Result{
		Flights: flights,
		Stats:   Aggregate(kept),
		Skipped: skipped,
	}
}

// display resolves the derived fields of r.
func (p *Pipeline) display(r domain.FlightRecord) domain.DisplayFlight {
	return domain.DisplayFlight{
		FlightCode: r.FlightCode(),
		Airline:    r.Airline.Name,
		Status:     NormalizeStatus(r.Status),
		Departure:  p.displayLeg(r.Departure),
		Arrival:    p.displayLeg(r.Arrival),
	}
}

func (p *Pipeline) displayLeg(l domain.Leg) domain.DisplayLeg {
	local, tz := p.converter.Convert(l.Scheduled)
	return domain.DisplayLeg{
		Airport:   l.Airport,
		IATA:      l.IATA,
		Scheduled: l.Scheduled,
		LocalTime: local,
		LocalTZ:   tz,
		Delay:     l.Delay,
	}
}
