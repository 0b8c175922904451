// Package handler implements the HTTP handlers for the flight board.
// All handlers are methods on Server. Methods are split into files by
// resource (board.go, export.go, health.go) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/flightboard/internal/domain"
)

// BoardServicer defines the business operation the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the upstream API.
type BoardServicer interface {
	Build(ctx context.Context) (domain.Board, error)
}

// Server serves every flight board endpoint.
type Server struct {
	board BoardServicer
	title string
	log   *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// title is the page heading of the dashboard and the PDF export.
func NewServer(board BoardServicer, title string, log *slog.Logger) *Server {
	return &Server{board: board, title: title, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, "", slog.Default())
}

// Routes returns a router with every endpoint mounted.
// Cross-cutting middleware (request ID, logging, CORS) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.GetBoard)
	r.Get("/api/flights", s.ListFlights)
	r.Get("/export", s.GetExport)
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	return r
}
