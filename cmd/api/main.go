// Package main is the entry point for the flight board server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/flightboard/internal/config"
	"github.com/pkordes/flightboard/internal/handler"
	"github.com/pkordes/flightboard/internal/middleware"
	"github.com/pkordes/flightboard/internal/pipeline"
	"github.com/pkordes/flightboard/internal/repo"
	"github.com/pkordes/flightboard/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Upstream ---------------------------------------------------------
	// The quota guard is shared by every request; nil means unlimited.
	var quota *repo.RateLimit
	if cfg.UpstreamMaxRequests > 0 {
		quota = repo.NewRateLimit(cfg.UpstreamMaxRequests, cfg.UpstreamQuotaWindow)
	}
	flights := repo.NewFlightRepo(repo.AviationStackConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		AirlineICAO: cfg.AirlineICAO,
		Limit:       cfg.FetchLimit,
		Timeout:     cfg.UpstreamTimeout,
	}, quota)

	converter, err := pipeline.NewLocalTimeConverter(cfg.DisplayTimezone)
	if err != nil {
		slog.Error("failed to load display timezone", "error", err)
		os.Exit(1)
	}
	slog.Info("flight source configured",
		"airline_icao", cfg.AirlineICAO,
		"limit", cfg.FetchLimit,
		"timezone", cfg.DisplayTimezone,
		"max_requests", cfg.UpstreamMaxRequests,
	)

	// --- Services ---------------------------------------------------------
	boardSvc := service.NewBoardService(flights, converter, logger)
	server := handler.NewServer(boardSvc, cfg.BoardTitle, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Every page view may wait on one upstream call, so the write timeout
	// must outlast UpstreamTimeout.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
