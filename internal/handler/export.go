// export.go implements GET /export.
// Returns the current board as a flat table, one row per flight.
// Supports ?format=csv (CSV), ?format=pdf (PDF) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/flightboard/internal/domain"
	"github.com/pkordes/flightboard/internal/render"
)

// ExportFormat names a representation of GET /export.
type ExportFormat string

const (
	JSON ExportFormat = "json"
	CSV  ExportFormat = "csv"
	PDF  ExportFormat = "pdf"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"flight", "airline", "status",
	"departure_airport", "departure_iata", "departure_scheduled", "departure_local", "departure_tz",
	"arrival_airport", "arrival_iata", "arrival_scheduled", "arrival_local", "arrival_tz",
	"delay_minutes",
}

// ExportRow is one flight in the flat export.
type ExportRow struct {
	Flight             string `json:"flight"`
	Airline            string `json:"airline,omitempty"`
	Status             string `json:"status"`
	DepartureAirport   string `json:"departure_airport,omitempty"`
	DepartureIATA      string `json:"departure_iata,omitempty"`
	DepartureScheduled string `json:"departure_scheduled,omitempty"`
	DepartureLocal     string `json:"departure_local"`
	DepartureTZ        string `json:"departure_tz,omitempty"`
	ArrivalAirport     string `json:"arrival_airport,omitempty"`
	ArrivalIATA        string `json:"arrival_iata,omitempty"`
	ArrivalScheduled   string `json:"arrival_scheduled,omitempty"`
	ArrivalLocal       string `json:"arrival_local"`
	ArrivalTZ          string `json:"arrival_tz,omitempty"`
	DelayMinutes       int    `json:"delay_minutes"`
}

// GetExport handles GET /export.
// It returns a flat table of every flight on the board.
// Use ?format=csv or ?format=pdf; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var raw *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &raw); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	format, err := parseExportFormat(raw)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	board, err := s.board.Build(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	switch format {
	case CSV:
		writeAttachment(w, "text/csv", exportFilename(board, "csv"), buildCSV(board.Flights))
	case PDF:
		var buf bytes.Buffer
		if err := render.PDF(&buf, s.title, board); err != nil {
			s.serverError(w, r, err)
			return
		}
		writeAttachment(w, "application/pdf", exportFilename(board, "pdf"), &buf)
	default:
		writeJSON(w, http.StatusOK, buildJSONRows(board.Flights))
	}
}

// parseExportFormat validates the optional ?format= value.
func parseExportFormat(raw *string) (ExportFormat, error) {
	if raw == nil || *raw == "" {
		return JSON, nil
	}
	switch f := ExportFormat(*raw); f {
	case JSON, CSV, PDF:
		return f, nil
	default:
		return "", fmt.Errorf("handler.parseExportFormat: %w: unknown format %q (want json, csv or pdf)", domain.ErrValidation, *raw)
	}
}

// exportFilename stamps the download with the fetch time.
func exportFilename(b domain.Board, ext string) string {
	return fmt.Sprintf("flights-%s.%s", b.GeneratedAt.UTC().Format("20060102T1504Z"), ext)
}

// writeAttachment sends buf as a download.
func writeAttachment(w http.ResponseWriter, contentType, filename string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	buf.WriteTo(w)
}

// buildJSONRows converts display flights to export rows.
// Always returns a non-nil slice so an empty board encodes as [].
func buildJSONRows(flights []domain.DisplayFlight) []ExportRow {
	out := make([]ExportRow, 0, len(flights))
	for _, f := range flights {
		out = append(out, flightToRow(f))
	}
	return out
}

// buildCSV encodes display flights as CSV with a header row.
func buildCSV(flights []domain.DisplayFlight) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error
	w.Write(csvHeaders)
	for _, f := range flights {
		//nolint:errcheck
		w.Write(rowToCSVRecord(flightToRow(f)))
	}
	w.Flush()
	return &buf
}

// flightToRow flattens a DisplayFlight.
func flightToRow(f domain.DisplayFlight) ExportRow {
	return ExportRow{
		Flight:             f.FlightCode,
		Airline:            f.Airline,
		Status:             f.Status,
		DepartureAirport:   f.Departure.Airport,
		DepartureIATA:      f.Departure.IATA,
		DepartureScheduled: f.Departure.Scheduled,
		DepartureLocal:     f.Departure.LocalTime,
		DepartureTZ:        f.Departure.LocalTZ,
		ArrivalAirport:     f.Arrival.Airport,
		ArrivalIATA:        f.Arrival.IATA,
		ArrivalScheduled:   f.Arrival.Scheduled,
		ArrivalLocal:       f.Arrival.LocalTime,
		ArrivalTZ:          f.Arrival.LocalTZ,
		DelayMinutes:       render.DelayMinutes(f.Departure),
	}
}

// rowToCSVRecord encodes an ExportRow in csvHeaders order.
func rowToCSVRecord(r ExportRow) []string {
	return []string{
		r.Flight, r.Airline, r.Status,
		r.DepartureAirport, r.DepartureIATA, r.DepartureScheduled, r.DepartureLocal, r.DepartureTZ,
		r.ArrivalAirport, r.ArrivalIATA, r.ArrivalScheduled, r.ArrivalLocal, r.ArrivalTZ,
		strconv.Itoa(r.DelayMinutes),
	}
}
