package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/flightboard/internal/domain"
	"github.com/pkordes/flightboard/internal/handler"
)

// ---- mock BoardServicer ----------------------------------------------------

type mockBoardServicer struct {
	build func(ctx context.Context) (domain.Board, error)
}

func (m *mockBoardServicer) Build(ctx context.Context) (domain.Board, error) {
	return m.build(ctx)
}

// compile-time check: mockBoardServicer must satisfy handler.BoardServicer.
var _ handler.BoardServicer = (*mockBoardServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server around a mock that always returns board.
func newHTTPHandler(board domain.Board) http.Handler {
	svc := &mockBoardServicer{
		build: func(_ context.Context) (domain.Board, error) { return board, nil },
	}
	return handler.NewServer(svc, "FedEx Aircraft Tracker", slog.New(slog.DiscardHandler)).Routes()
}

// newFailingHTTPHandler wires a Server whose board service always fails, and
// returns the buffer its logger writes to.
func newFailingHTTPHandler(err error) (http.Handler, *bytes.Buffer) {
	var buf bytes.Buffer
	svc := &mockBoardServicer{
		build: func(_ context.Context) (domain.Board, error) { return domain.Board{}, err },
	}
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return handler.NewServer(svc, "Board", log).Routes(), &buf
}

func intPtr(v int) *int { return &v }

func displayFlight(code, status string) domain.DisplayFlight {
	return domain.DisplayFlight{
		FlightCode: code,
		Airline:    "FedEx",
		Status:     status,
		Departure: domain.DisplayLeg{
			Airport: "Memphis International", IATA: "MEM",
			Scheduled: "2024-07-01T12:00:00+00:00",
			LocalTime: "2024-07-01 08:00", LocalTZ: "EDT",
			Delay: intPtr(15),
		},
		Arrival: domain.DisplayLeg{LocalTime: "N/A"},
	}
}

// boardFixture returns a board with the given flights and plausible metadata.
func boardFixture(flights ...domain.DisplayFlight) domain.Board {
	return domain.Board{
		BatchID:     uuid.New(),
		GeneratedAt: time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
		Timezone:    "America/New_York",
		Flights:     flights,
		Stats:       domain.FlightStatistics{TotalCount: len(flights), DelayedCount: len(flights), AverageDelayMinutes: 15},
	}
}

// ---- GET / -----------------------------------------------------------------

func TestGetBoard_RendersHTML(t *testing.T) {
	board := boardFixture(displayFlight("FX1234", "in-flight"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(board).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<h1>FedEx Aircraft Tracker</h1>")
	assert.Contains(t, rec.Body.String(), "FX1234")
	assert.Contains(t, rec.Body.String(), "<strong>Average Delay (min):</strong> 15.00")
}

func TestGetBoard_EmptyBoard(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(domain.Board{Flights: []domain.DisplayFlight{}}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>Total Flights:</strong> 0")
}

func TestGetBoard_ServiceError_Returns500(t *testing.T) {
	h, logs := newFailingHTTPHandler(fmt.Errorf("boom"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "boom")
}

// ---- GET /api/flights ------------------------------------------------------

func TestListFlights_DefaultPage(t *testing.T) {
	board := boardFixture(displayFlight("FX1", "landed"), displayFlight("FX2", "scheduled"))

	req := httptest.NewRequest(http.MethodGet, "/api/flights", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(board).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body handler.FlightsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, board.BatchID, body.BatchID)
	assert.Equal(t, "America/New_York", body.Timezone)
	assert.Equal(t, board.Stats, body.Stats)
	require.Len(t, body.Flights, 2)
	assert.Equal(t, "FX1", body.Flights[0].FlightCode)
	assert.Equal(t, "2024-07-01 08:00", body.Flights[0].Departure.LocalTime)
	assert.Equal(t, handler.Pagination{Page: 1, Limit: 20, Total: 2}, body.Pagination)
}

func TestListFlights_PagingAndStatusFilter(t *testing.T) {
	board := boardFixture(
		displayFlight("FX1", "landed"),
		displayFlight("FX2", "scheduled"),
		displayFlight("FX3", "scheduled"),
		displayFlight("FX4", "scheduled"),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/flights?status=Scheduled&page=2&limit=2", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(board).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.FlightsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Flights, 1)
	assert.Equal(t, "FX4", body.Flights[0].FlightCode)
	assert.Equal(t, handler.Pagination{Page: 2, Limit: 2, Total: 3}, body.Pagination)
	// Stats describe the whole board.
	assert.Equal(t, 4, body.Stats.TotalCount)
}

func TestListFlights_StatusActiveMatchesInFlight(t *testing.T) {
	board := boardFixture(
		displayFlight("FX1", "landed"),
		displayFlight("FX2", "in-flight"),
		displayFlight("FX3", "scheduled"),
	)

	for _, status := range []string{"active", "Active", "in-flight"} {
		req := httptest.NewRequest(http.MethodGet, "/api/flights?status="+status, nil)
		rec := httptest.NewRecorder()
		newHTTPHandler(board).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, "status=%s", status)
		var body handler.FlightsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Len(t, body.Flights, 1, "status=%s", status)
		assert.Equal(t, "FX2", body.Flights[0].FlightCode)
	}
}

func TestListFlights_EmptyBoardEncodesEmptyArray(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/flights", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(domain.Board{Degraded: true}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"flights":[]`)
	assert.Contains(t, rec.Body.String(), `"degraded":true`)
}

func TestListFlights_BadPageParam_Returns422(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/flights?page=abc", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(boardFixture()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.NotEmpty(t, body.Error.Message)
}

func TestListFlights_ServiceError_Returns500(t *testing.T) {
	h, _ := newFailingHTTPHandler(fmt.Errorf("boom"))

	req := httptest.NewRequest(http.MethodGet, "/api/flights", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "internal_error", body.Error.Code)
}
