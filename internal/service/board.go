// Package service contains the business logic for the flight board.
// BoardService composes one upstream fetch with the pipeline and turns fetch
// failures into an empty, degraded board. No HTTP lives here; the service
// depends on the repo interface, not its implementation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/flightboard/internal/domain"
	"github.com/pkordes/flightboard/internal/pipeline"
	"github.com/pkordes/flightboard/internal/repo"
)

// BoardService builds flight board snapshots.
type BoardService struct {
	flights   repo.FlightRepo
	pipeline  *pipeline.Pipeline
	converter *pipeline.LocalTimeConverter
	log       *slog.Logger
	now       func() time.Time
}

// NewBoardService constructs a BoardService that fetches from flights and
// renders local times with converter.
func NewBoardService(flights repo.FlightRepo, converter *pipeline.LocalTimeConverter, log *slog.Logger) *BoardService {
	return &BoardService{
		flights:   flights,
		pipeline:  pipeline.New(converter),
		converter: converter,
		log:       log,
		now:       time.Now,
	}
}

// WithClock replaces the clock the service reads "now" from.
func (s *BoardService) WithClock(now func() time.Time) *BoardService {
	s.now = now
	return s
}

// Build fetches the current batch and runs it through the pipeline.
//
// "Now" is captured once per build. Upstream failures never fail the build:
// they are logged and the board is built from an empty batch with Degraded
// set. The only error returned is the caller's own cancellation, since
// nobody is left to render for.
func (s *BoardService) Build(ctx context.Context) (domain.Board, error) {
	if err := ctx.Err(); err != nil {
		return domain.Board{}, fmt.Errorf("service.BoardService.Build: %w", err)
	}

	now := s.now().UTC()
	batchID := uuid.New()
	log := s.log.With("batch_id", batchID.String())

	records, err := s.flights.List(ctx)
	degraded := false
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return domain.Board{}, fmt.Errorf("service.BoardService.Build: %w", ctx.Err())
		}
		level := slog.LevelError
		if errors.Is(err, domain.ErrRateLimited) {
			level = slog.LevelWarn
		}
		log.Log(ctx, level, "flight fetch failed; rendering empty board", "error", err)
		records, degraded = nil, true
	}

	res := s.pipeline.Run(now, records)
	for _, sk := range res.Skipped {
		log.WarnContext(ctx, "skipping flight",
			"flight", sk.FlightCode,
			"scheduled", sk.Raw,
			"reason", sk.Reason,
		)
	}

	log.InfoContext(ctx, "board built",
		"fetched", len(records),
		"shown", len(res.Flights),
		"skipped", len(res.Skipped),
		"delayed", res.Stats.DelayedCount,
		"degraded", degraded,
	)

	return domain.Board{
		BatchID:     batchID,
		GeneratedAt: now,
		Timezone:    s.converter.Location().String(),
		Flights:     res.Flights,
		Stats:       res.Stats,
		Degraded:    degraded,
		Skipped:     len(res.Skipped),
	}, nil
}
