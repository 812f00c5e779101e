// Package output provides output formatters for article listings.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tmuir/inkwell/internal/model"
)

// Formatter formats articles for output.
type Formatter interface {
	// Format writes formatted articles to the writer.
	Format(w io.Writer, articles []model.Article) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatIndex FormatType = "index"
)

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatIndex:
		return NewIndexFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template      string // Custom template (plain/index formats)
	ShowIndex     bool   // Show 1-based index prefix
	ShowTags      bool   // Show tags
	SummaryMaxLen int    // Maximum summary length (0 = unlimited)
	Separator     string // Field separator for index format
}

// DefaultFormatterOptions returns sensible defaults for listing output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:     false,
		ShowTags:      true,
		SummaryMaxLen: 80,
		Separator:     " | ",
	}
}

// templateData is the value custom templates are executed against.
type templateData struct {
	Index int
	*model.Article
}

// templateFuncs returns the functions available in custom templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": func(s string, maxLen int) string {
			if maxLen <= 0 || len(s) <= maxLen {
				return s
			}
			if maxLen <= 3 {
				return s[:maxLen]
			}
			return s[:maxLen-3] + "..."
		},
		"formatDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"reltime": humanize.Time,
		"minutes": func(d time.Duration) string {
			m := int(d.Minutes())
			if m <= 1 {
				return "1 min"
			}
			return fmt.Sprintf("%d min", m)
		},
		"join": func(ss []string, sep string) string {
			return strings.Join(ss, sep)
		},
	}
}

// parseTemplate parses a custom template, returning nil when the source is
// empty or invalid so formatters fall back to their default layout.
func parseTemplate(name, src string) *template.Template {
	if src == "" {
		return nil
	}
	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(src)
	if err != nil {
		return nil
	}
	return tmpl
}
