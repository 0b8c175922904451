// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// APIKey is the aviationstack access key. Required.
	// AVIATIONSTACK_API_KEY wins over the older API_KEY name.
	APIKey string

	// BaseURL is the aviationstack API root, without the /flights suffix.
	BaseURL string

	// AirlineICAO scopes every fetch to one carrier. Defaults to "FDX".
	AirlineICAO string

	// FetchLimit is the number of flights asked for per fetch, 1..100.
	FetchLimit int

	// UpstreamTimeout bounds one aviationstack request.
	UpstreamTimeout time.Duration

	// UpstreamMaxRequests is the request budget per UpstreamQuotaWindow.
	// Zero disables the budget.
	UpstreamMaxRequests int
	UpstreamQuotaWindow time.Duration

	// DisplayTimezone is the IANA zone the board shows times in.
	DisplayTimezone string

	// BoardTitle is the heading of the dashboard and the PDF export.
	BoardTitle string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, joined
// with one error per variable that does not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		BaseURL:         getEnv("AVIATIONSTACK_BASE_URL", "http://api.aviationstack.com/v1"),
		AirlineICAO:     strings.ToUpper(getEnv("AIRLINE_ICAO", "FDX")),
		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "America/New_York"),
		BoardTitle:      getEnv("BOARD_TITLE", "FedEx Aircraft Tracker"),
	}

	var missing []string

	cfg.APIKey = getEnv("AVIATIONSTACK_API_KEY", os.Getenv("API_KEY"))
	if cfg.APIKey == "" {
		missing = append(missing, "AVIATIONSTACK_API_KEY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var errs []error
	var err error

	if cfg.FetchLimit, err = getInt("FETCH_LIMIT", 100); err != nil {
		errs = append(errs, err)
	} else if cfg.FetchLimit < 1 || cfg.FetchLimit > 100 {
		errs = append(errs, fmt.Errorf("FETCH_LIMIT must be between 1 and 100, got %d", cfg.FetchLimit))
	}
	if cfg.UpstreamMaxRequests, err = getInt("UPSTREAM_MAX_REQUESTS", 0); err != nil {
		errs = append(errs, err)
	} else if cfg.UpstreamMaxRequests < 0 {
		errs = append(errs, fmt.Errorf("UPSTREAM_MAX_REQUESTS must not be negative, got %d", cfg.UpstreamMaxRequests))
	}
	if cfg.UpstreamTimeout, err = getDuration("UPSTREAM_TIMEOUT", 15*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.UpstreamQuotaWindow, err = getDuration("UPSTREAM_QUOTA_WINDOW", time.Hour); err != nil {
		errs = append(errs, err)
	}
	if _, err := time.LoadLocation(cfg.DisplayTimezone); err != nil {
		errs = append(errs, fmt.Errorf("DISPLAY_TIMEZONE: %w", err))
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", cfg.LogLevel))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt is getEnv for whole numbers.
func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

// getDuration is getEnv for Go durations such as "15s" or "1h".
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
