// Package render produces the JSON and HTML views of an analysis.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tekstlab/leesmeter/internal/analysis"
)

//go:embed report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(
	template.New("report.html.tmpl").Funcs(template.FuncMap{
		"levelLabel": LevelLabel,
		"fmtScore":   FormatScore,
	}).ParseFS(templateFS, "report.html.tmpl"),
)

// levelLabels maps difficulty levels to their Dutch names.
var levelLabels = map[int]string{
	1: "zeer gemakkelijk",
	2: "gemakkelijk",
	3: "moeilijk",
	4: "zeer moeilijk",
}

// LevelLabel returns the Dutch label for a difficulty level, or a dash
// when the level is nil.
func LevelLabel(level *int) string {
	if level == nil {
		return "—"
	}
	if label, ok := levelLabels[*level]; ok {
		return fmt.Sprintf("%d (%s)", *level, label)
	}
	return fmt.Sprintf("%d", *level)
}

// FormatScore formats a nullable score with one decimal, or a dash.
func FormatScore(score *float64) string {
	if score == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f", *score)
}

// Report is the data behind one rendered analysis page.
type Report struct {
	ID        string
	CreatedAt time.Time
	Features  analysis.DocumentFeatures
}

// templateData wires the report plus its raw JSON into the template.
type templateData struct {
	Report
	DataJSON template.JS
}

// HTML renders the report page into a buffer.
func HTML(report Report) ([]byte, error) {
	raw, err := json.Marshal(report.Features)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report data: %w", err)
	}

	var buf bytes.Buffer
	err = reportTemplate.Execute(&buf, templateData{
		Report:   report,
		DataJSON: template.JS(raw),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteHTML renders the report and writes it as an uncacheable HTML
// response.
func WriteHTML(c *gin.Context, report Report) error {
	page, err := HTML(report)
	if err != nil {
		return err
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")

	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	return nil
}
