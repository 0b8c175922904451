package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/pkordes/flightboard/internal/domain"
)

// pdfColumn is one column of the PDF flight table.
type pdfColumn struct {
	header string
	width  float64 // mm
	value  func(domain.DisplayFlight) string
}

// Landscape Letter leaves about 259mm between the default margins.
var pdfColumns = []pdfColumn{
	{"Flight", 25, func(f domain.DisplayFlight) string { return OrNA(f.FlightCode) }},
	{"Departure Airport", 60, func(f domain.DisplayFlight) string { return AirportCell(f.Departure) }},
	{"Arrival Airport", 60, func(f domain.DisplayFlight) string { return AirportCell(f.Arrival) }},
	{"Departure", 38, func(f domain.DisplayFlight) string { return TimeCell(f.Departure) }},
	{"Arrival", 38, func(f domain.DisplayFlight) string { return TimeCell(f.Arrival) }},
	{"Status", 22, func(f domain.DisplayFlight) string { return f.Status }},
	{"Delay (min)", 16, func(f domain.DisplayFlight) string { return strconv.Itoa(DelayMinutes(f.Departure)) }},
}

const pdfRowHeight = 7.0

// PDF writes the board as a printable table.
func PDF(w io.Writer, title string, b domain.Board) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("") // core fonts are cp1252
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	summary := fmt.Sprintf("Total Flights: %d    Delayed Flights: %d    Average Delay (min): %s",
		b.Stats.TotalCount, b.Stats.DelayedCount, AverageDelay(b.Stats))
	pdf.CellFormat(0, 6, summary, "", 1, "L", false, 0, "")
	generated := fmt.Sprintf("Generated %s UTC, times shown in %s", b.GeneratedAt.UTC().Format("2006-01-02 15:04"), b.Timezone)
	pdf.CellFormat(0, 6, generated, "", 1, "L", false, 0, "")
	if b.Degraded {
		pdf.CellFormat(0, 6, "Flight data is temporarily unavailable.", "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(0xe6, 0x7e, 0x22)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, pdfRowHeight, c.header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, f := range b.Flights {
		for _, c := range pdfColumns {
			pdf.CellFormat(c.width, pdfRowHeight, fit(pdf, tr(c.value(f)), c.width-2), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render.PDF: %w", err)
	}
	return nil
}

// fit shortens s with an ellipsis until it fits in width mm.
// s is already translated to a single-byte code page, so cutting bytes is safe.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	n := len(s)
	for n > 0 && pdf.GetStringWidth(s[:n]+"...") > width {
		n--
	}
	return s[:n] + "..."
}
