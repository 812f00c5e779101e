package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/tmuir/inkwell/internal/model"
)

// IndexFormatter emits one line per article, suitable for piping into
// fuzzy finders or shell scripts.
type IndexFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewIndexFormatter creates a new index formatter.
func NewIndexFormatter(opts FormatterOptions) *IndexFormatter {
	return &IndexFormatter{
		opts:     opts,
		template: parseTemplate("index", opts.Template),
	}
}

// Format writes articles in index format (one per line).
func (f *IndexFormatter) Format(w io.Writer, articles []model.Article) error {
	for i := range articles {
		line := f.formatLine(i+1, &articles[i])
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatLine formats a single article line.
func (f *IndexFormatter) formatLine(index int, a *model.Article) string {
	if f.template != nil {
		var buf strings.Builder
		if err := f.template.Execute(&buf, templateData{Index: index, Article: a}); err == nil {
			return strings.ReplaceAll(buf.String(), "\n", " ")
		}
	}

	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	fields := []string{a.Slug, a.Title, a.RelativeDate()}
	if f.opts.ShowIndex {
		fields = append([]string{fmt.Sprintf("%d", index)}, fields...)
	}

	return strings.Join(fields, sep)
}
