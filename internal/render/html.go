package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/pkordes/flightboard/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("board.html").Funcs(template.FuncMap{
		"orNA":    OrNA,
		"delay":   DelayMinutes,
		"average": AverageDelay,
	}).ParseFS(templateFS, "templates/board.html"),
)

// pageData is the template's view of one request.
type pageData struct {
	Title string
	Board domain.Board
}

// HTML writes the dashboard page for b.
func HTML(w io.Writer, title string, b domain.Board) error {
	if err := pageTemplate.Execute(w, pageData{Title: title, Board: b}); err != nil {
		return fmt.Errorf("render.HTML: %w", err)
	}
	return nil
}
