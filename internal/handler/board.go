package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/flightboard/internal/domain"
	"github.com/pkordes/flightboard/internal/pipeline"
	"github.com/pkordes/flightboard/internal/render"
)

// GetBoard handles GET /, the HTML dashboard.
// The page is rendered into a buffer first so a template failure never sends
// half a page with a 200.
func (s *Server) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := s.board.Build(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := render.HTML(&buf, s.title, board); err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	buf.WriteTo(w)
}

// FlightsResponse is the body of GET /api/flights.
type FlightsResponse struct {
	BatchID     uuid.UUID               `json:"batch_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Timezone    string                  `json:"timezone"`
	Degraded    bool                    `json:"degraded"`
	Stats       domain.FlightStatistics `json:"stats"`
	Flights     []domain.DisplayFlight  `json:"flights"`
	Pagination  Pagination              `json:"pagination"`
}

// Pagination describes the page of Flights that was returned.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ListFlightsParams are the query parameters of GET /api/flights.
type ListFlightsParams struct {
	Page   *int
	Limit  *int
	Status *string
}

// ListFlights handles GET /api/flights.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100) and
// ?status= to keep only flights with that status; the upstream "active"
// matches the "in-flight" shown on the board.
// Stats always describe the whole board, not the page.
func (s *Server) ListFlights(w http.ResponseWriter, r *http.Request) {
	var params ListFlightsParams
	query := r.URL.Query()
	for name, dest := range map[string]any{"page": &params.Page, "limit": &params.Limit, "status": &params.Status} {
		if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
			return
		}
	}

	board, err := s.board.Build(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	flights := board.Flights
	if flights == nil {
		flights = []domain.DisplayFlight{}
	}
	if params.Status != nil {
		want := pipeline.DisplayStatus(*params.Status)
		flights = make([]domain.DisplayFlight, 0, len(board.Flights))
		for _, f := range board.Flights {
			if f.Status == want {
				flights = append(flights, f)
			}
		}
	}

	page := domain.NewPaginationParams(params.Page, params.Limit)
	start, end := page.Window(len(flights))

	writeJSON(w, http.StatusOK, FlightsResponse{
		BatchID:     board.BatchID,
		GeneratedAt: board.GeneratedAt,
		Timezone:    board.Timezone,
		Degraded:    board.Degraded,
		Stats:       board.Stats,
		Flights:     flights[start:end],
		Pagination: Pagination{
			Page:  page.Page,
			Limit: page.Limit,
			Total: len(flights),
		},
	})
}
