package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/tmuir/inkwell/internal/model"
)

// PlainFormatter formats articles as human-readable text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{
		opts:     opts,
		template: parseTemplate("plain", opts.Template),
	}
}

// Format writes articles as plain text.
func (f *PlainFormatter) Format(w io.Writer, articles []model.Article) error {
	for i := range articles {
		if err := f.formatArticle(w, i+1, &articles[i]); err != nil {
			return err
		}
	}
	return nil
}

// formatArticle formats a single article.
func (f *PlainFormatter) formatArticle(w io.Writer, index int, a *model.Article) error {
	if f.template != nil {
		if err := f.template.Execute(w, templateData{Index: index, Article: a}); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	var sb strings.Builder

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", index))
	}

	sb.WriteString(a.Title)
	if a.Draft {
		sb.WriteString(" (draft)")
	}
	sb.WriteString(fmt.Sprintf(" — %s", a.RelativeDate()))
	sb.WriteString("\n")

	if f.opts.ShowTags && len(a.Tags) > 0 {
		sb.WriteString("    #" + strings.Join(a.Tags, " #") + "\n")
	}

	if summary := a.SummaryTruncated(f.opts.SummaryMaxLen); summary != "" {
		sb.WriteString("    " + summary + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatField outputs a specific field from an article.
func FormatField(a *model.Article, field string) string {
	switch strings.ToLower(field) {
	case "id", "inkwell_id":
		return a.InkwellID
	case "slug":
		return a.Slug
	case "title":
		return a.Title
	case "body":
		return a.Body
	case "summary":
		return a.Summary
	case "date":
		return a.Date.Format("2006-01-02")
	case "tags":
		return strings.Join(a.Tags, ",")
	case "path":
		return a.Path
	default:
		return a.Title
	}
}
