// Package renderer turns forecast and accuracy data into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderForecast renders the ForecastReport struct to a markdown string.
func RenderForecast(r *ForecastReport) string {
	partials := map[string]string{
		"forecast_title":       "forecast_title.md",
		"forecast_summary":     "forecast_summary.md",
		"forecast_monthly":     "forecast_monthly.md",
		"forecast_seasonality": "forecast_seasonality.md",
	}
	return renderTemplate("forecast", "forecast.md", partials, r)
}

// RenderAccuracy renders the AccuracyReport struct to a markdown string.
func RenderAccuracy(r *AccuracyReport) string {
	partials := map[string]string{
		"accuracy_title":   "accuracy_title.md",
		"accuracy_summary": "accuracy_summary.md",
		"accuracy_records": "accuracy_records.md",
	}
	return renderTemplate("accuracy", "accuracy.md", partials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
