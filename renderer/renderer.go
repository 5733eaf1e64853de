// Package renderer turns lena reports into markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var embedded embed.FS

// templates holds the report templates, one file per template.
var templates, _ = fs.Sub(embedded, "templates")

// RenderMetrics renders a metrics report to a markdown string.
func RenderMetrics(r *MetricsReport) string {
	partials := map[string]string{
		"metrics_title":     "metrics_title.md",
		"metrics_ownership": "metrics_ownership.md",
		"metrics_income":    "metrics_income.md",
		"metrics_returns":   "metrics_returns.md",
	}
	return renderTemplate("metrics", "metrics.md", partials, r)
}

// renderTemplate renders a main template that depends on several partials.
// Errors are rendered in place of the report.
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
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
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
