package pipeline

import (
	"math"

	"github.com/pkordes/flightboard/internal/domain"
)

// Aggregate computes count, delayed count, and mean departure delay.
//
// A flight counts as delayed when its departure delay is reported and
// non-zero; negative values count too. The mean treats an unreported delay
// as 0 and is rounded to 2 decimal places, halves to even. An empty
// collection yields all zero values.
func Aggregate(records []domain.FlightRecord) domain.FlightStatistics {
	stats := domain.FlightStatistics{TotalCount: len(records)}
	if stats.TotalCount == 0 {
		return stats
	}

	sum := 0
	for _, r := range records {
		d := r.Departure.Delay
		if d == nil || *d == 0 {
			continue
		}
		stats.DelayedCount++
		sum += *d
	}
	stats.AverageDelayMinutes = round2(float64(sum) / float64(stats.TotalCount))
	return stats
}

// round2 rounds to the second decimal, exact halves to the even digit
// (0.125 becomes 0.12, 0.375 becomes 0.38).
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
