package output

import (
	"encoding/json"
	"io"

	"github.com/tmuir/inkwell/internal/model"
)

// JSONFormatter formats articles as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes articles as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, articles []model.Article) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(articles)
}

// FormatSingle writes a single article as JSON.
func (f *JSONFormatter) FormatSingle(w io.Writer, a *model.Article) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(a)
}
