// Package repo contains all data access logic for the flight board.
// The only data source is the aviationstack flights API; each fetch is
// scoped to one airline. No business logic lives here, only HTTP and type
// mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/pkordes/flightboard/internal/domain"
)

const (
	// DefaultBaseURL is the aviationstack API root.
	DefaultBaseURL = "http://api.aviationstack.com/v1"

	// MaxFetchLimit is the largest page aviationstack serves per request.
	MaxFetchLimit = 100

	// maxBodyBytes bounds how much of an upstream response is read.
	maxBodyBytes = 8 << 20
)

// FlightRepo defines how the board obtains raw flight records.
// The service layer depends on this interface, not the aviationstack
// implementation, so it can be unit-tested with a mock.
type FlightRepo interface {
	// List returns the current flights of the configured airline, at most one
	// upstream page. Failures wrap domain.ErrUpstream or domain.ErrRateLimited.
	List(ctx context.Context) ([]domain.FlightRecord, error)
}

// AviationStackConfig is the explicit configuration of the aviationstack
// client. It is built once at startup; the client never reads the environment.
type AviationStackConfig struct {
	BaseURL     string
	APIKey      string
	AirlineICAO string
	Limit       int           // clamped to 1..MaxFetchLimit
	Timeout     time.Duration // per request; 0 means no client-side timeout
}

// aviationStackRepo is the aviationstack implementation of FlightRepo.
type aviationStackRepo struct {
	cfg        AviationStackConfig
	httpClient *http.Client
	quota      *RateLimit // nil = unlimited
}

// NewFlightRepo constructs a FlightRepo backed by the aviationstack API.
// quota may be nil, in which case every List call goes upstream.
func NewFlightRepo(cfg AviationStackConfig, quota *RateLimit) FlightRepo {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.Limit = min(max(cfg.Limit, 1), MaxFetchLimit)
	return &aviationStackRepo{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		quota:      quota,
	}
}

// List fetches one page of flights for the configured airline.
func (r *aviationStackRepo) List(ctx context.Context) ([]domain.FlightRecord, error) {
	if r.quota != nil && !r.quota.Take() {
		return nil, fmt.Errorf("repo.FlightRepo.List: %w (retry in %s)", domain.ErrRateLimited, r.quota.WaitDuration().Round(time.Second))
	}

	params := url.Values{
		"access_key":   {r.cfg.APIKey},
		"airline_icao": {r.cfg.AirlineICAO},
		"limit":        {strconv.Itoa(r.cfg.Limit)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"/flights?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("repo.FlightRepo.List: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		// *url.Error carries the request URL, which includes the access key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("repo.FlightRepo.List: %w: request failed: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("repo.FlightRepo.List: %w: read body: %w", domain.ErrUpstream, err)
	}

	// aviationstack reports quota and key problems as an "error" object,
	// sometimes with HTTP 200.
	if apiErr := gjson.GetBytes(body, "error"); apiErr.Exists() {
		return nil, fmt.Errorf("repo.FlightRepo.List: %w: HTTP %d: %s: %s", domain.ErrUpstream,
			resp.StatusCode, apiErr.Get("code").String(), apiErr.Get("message").String())
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("repo.FlightRepo.List: %w: HTTP %d", domain.ErrUpstream, resp.StatusCode)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("repo.FlightRepo.List: %w: decode: invalid JSON", domain.ErrUpstream)
	}
	data := gjson.GetBytes(body, "data")
	if data.Exists() && data.Type != gjson.Null && !data.IsArray() {
		return nil, fmt.Errorf("repo.FlightRepo.List: %w: decode: data is %s, not an array", domain.ErrUpstream, data.Type)
	}

	// Records are decoded one field at a time: a field of the wrong type
	// reads as absent instead of failing the whole batch.
	records := make([]domain.FlightRecord, 0, len(data.Array()))
	data.ForEach(func(_, f gjson.Result) bool {
		records = append(records, toRecord(f))
		return true
	})
	return records, nil
}

// ── aviationstack record mapping ──

// toRecord maps one element of the aviationstack "data" array.
func toRecord(f gjson.Result) domain.FlightRecord {
	return domain.FlightRecord{
		FlightDate: str(f.Get("flight_date")),
		Status:     str(f.Get("flight_status")),
		Flight: domain.FlightIdent{
			Number: str(f.Get("flight.number")),
			IATA:   str(f.Get("flight.iata")),
			ICAO:   str(f.Get("flight.icao")),
		},
		Airline: domain.Airline{
			Name: str(f.Get("airline.name")),
			IATA: str(f.Get("airline.iata")),
			ICAO: str(f.Get("airline.icao")),
		},
		Departure: toLeg(f.Get("departure")),
		Arrival:   toLeg(f.Get("arrival")),
	}
}

// toLeg maps an airport block; a null or non-object block becomes an empty Leg.
func toLeg(a gjson.Result) domain.Leg {
	if !a.IsObject() {
		return domain.Leg{}
	}
	leg := domain.Leg{
		Airport:   str(a.Get("airport")),
		IATA:      str(a.Get("iata")),
		ICAO:      str(a.Get("icao")),
		Scheduled: str(a.Get("scheduled")),
	}
	if d := a.Get("delay"); d.Type == gjson.Number {
		minutes := int(math.Round(d.Float()))
		leg.Delay = &minutes
	}
	return leg
}

// str returns the value of r when it is a JSON string, and "" for any other
// type, null, or a missing field.
func str(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}
