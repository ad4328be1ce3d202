package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"strconv"
)

//go:embed templates/*.html static/* content/*.md
var embeddedFiles embed.FS

// parseTemplates loads every page and partial from the embedded FS
func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"fmt4": func(v float64) string {
			if math.IsNaN(v) {
				return "undefined"
			}
			return strconv.FormatFloat(v, 'f', 4, 64)
		},
		"fmtg": func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
		"ms": func(v interface{}) string {
			switch t := v.(type) {
			case float64:
				return fmt.Sprintf("%.1f ms", t)
			case int64:
				return fmt.Sprintf("%d ms", t)
			default:
				return "—"
			}
		},
	}
	return template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
}

// staticFS returns the embedded static directory rooted at its contents
func staticFS() fs.FS {
	sub, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		// static/ is embedded at build time; a failure here is a build defect
		panic(err)
	}
	return sub
}

// executeTemplate renders into a buffer first so a template error never
// leaves a half-written response
func executeTemplate(t *template.Template, name string, data interface{}) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	return &buf, nil
}
