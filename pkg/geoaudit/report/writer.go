package report

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"

	"github.com/cognicore/geoaudit/pkg/geoaudit/internalerr"
)

// Format is an output format.
type Format string

const (
	JSON     Format = "json"
	Markdown Format = "md"
	HTML     Format = "html"
	SQLite   Format = "sqlite"
)

// Formats lists every format in the order "all" writes them.
var Formats = []Format{JSON, Markdown, HTML, SQLite}

// Ext is the file extension a format is written with.
func (f Format) Ext() string {
	if f == SQLite {
		return ".db"
	}
	return "." + string(f)
}

// ParseFormats accepts "all" or a comma separated list of formats.
func ParseFormats(s string) ([]Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return append([]Format(nil), Formats...), nil
	}
	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.TrimSpace(part))
		if f == "markdown" {
			f = Markdown
		}
		valid := false
		for _, known := range Formats {
			valid = valid || f == known
		}
		if !valid {
			return nil, fmt.Errorf("%w: report format %q", internalerr.ErrInvalidInput, part)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

//go:embed templates/*.tmpl
var templateFS embed.FS

func first(n int, v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.Len() <= n {
		return v
	}
	return rv.Slice(0, n).Interface()
}

var sharedFuncs = map[string]any{
	"first": first,
	"join":  strings.Join,
	"inc":   func(i int) int { return i + 1 },
	"date":  func(t time.Time) string { return t.Format(time.RFC3339) },
}

var (
	markdownTmpl = template.Must(template.New("report.md.tmpl").
			Funcs(sharedFuncs).
			ParseFS(templateFS, "templates/report.md.tmpl"))

	htmlTmpl = htmltemplate.Must(htmltemplate.New("report.html.tmpl").
			Funcs(sharedFuncs).
			Funcs(htmltemplate.FuncMap{"color": func(c string) htmltemplate.CSS { return htmltemplate.CSS(c) }}).
			ParseFS(templateFS, "templates/report.html.tmpl"))
)

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteMarkdown writes the human-readable summary.
func WriteMarkdown(w io.Writer, r *Report) error {
	if err := markdownTmpl.Execute(w, r); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	return nil
}

// WriteHTML writes the dashboard page.
func WriteHTML(w io.Writer, r *Report) error {
	if err := htmlTmpl.Execute(w, r); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// Writer saves reports under Dir as audit_report.<ext>.
type Writer struct {
	Dir    string
	Logger *zap.Logger
}

// Write renders r in each format and returns the paths written.
func (w Writer) Write(ctx context.Context, r *Report, formats []Format) ([]string, error) {
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string
	for _, f := range formats {
		path := filepath.Join(w.Dir, "audit_report"+f.Ext())
		var err error
		switch f {
		case SQLite:
			err = ExportSQLite(ctx, path, r)
		case JSON:
			err = writeFile(path, r, WriteJSON)
		case Markdown:
			err = writeFile(path, r, WriteMarkdown)
		case HTML:
			err = writeFile(path, r, WriteHTML)
		default:
			err = fmt.Errorf("%w: report format %q", internalerr.ErrInvalidInput, f)
		}
		if err != nil {
			return paths, err
		}
		logger.Info("report written", zap.String("format", string(f)), zap.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, r *Report, render func(io.Writer, *Report) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return render(f, r)
}
