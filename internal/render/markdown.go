// Package render turns article Markdown into styled terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	glstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmuir/inkwell/internal/model"
	"github.com/tmuir/inkwell/internal/theme"
)

// DefaultWordWrap is used when no width is configured.
const DefaultWordWrap = 80

// Renderer renders articles for the terminal using the active theme.
type Renderer struct {
	theme    theme.Theme
	wordWrap int
	md       *glamour.TermRenderer
}

// New creates a Renderer for the given theme. wordWrap of 0 uses
// DefaultWordWrap.
func New(t theme.Theme, wordWrap int) (*Renderer, error) {
	if wordWrap <= 0 {
		wordWrap = DefaultWordWrap
	}

	md, err := glamour.NewTermRenderer(
		glamour.WithStyles(styleConfig(t)),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}

	return &Renderer{
		theme:    t,
		wordWrap: wordWrap,
		md:       md,
	}, nil
}

// Theme returns the theme the renderer was built with.
func (r *Renderer) Theme() theme.Theme {
	return r.theme
}

// Body renders the article body to ANSI-styled text.
func (r *Renderer) Body(a *model.Article) (string, error) {
	out, err := r.md.Render(a.Body)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", a.Slug, err)
	}
	return out, nil
}

// Article renders the full article view: a metadata header followed by the
// rendered body.
func (r *Renderer) Article(a *model.Article) (string, error) {
	body, err := r.Body(a)
	if err != nil {
		return "", err
	}
	return r.Header(a) + "\n" + body, nil
}

// Header renders the article metadata block.
func (r *Renderer) Header(a *model.Article) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(r.theme.ForegroundColor())
	metaStyle := lipgloss.NewStyle().
		Foreground(theme.Accents.LinkHoverColor()).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.Title) + "\n")

	meta := fmt.Sprintf("%s · %d words · %s read",
		a.RelativeDate(), a.WordCount(), readingTimeShort(a))
	if a.Draft {
		meta += " · draft"
	}
	b.WriteString(metaStyle.Render(meta) + "\n")

	if len(a.Tags) > 0 {
		tagStyle := lipgloss.NewStyle().Foreground(theme.Accents.PopColor())
		b.WriteString(tagStyle.Render("#"+strings.Join(a.Tags, " #")) + "\n")
	}

	return b.String()
}

func readingTimeShort(a *model.Article) string {
	minutes := int(a.ReadingTime().Minutes())
	if minutes <= 1 {
		return "1 min"
	}
	return fmt.Sprintf("%d min", minutes)
}

// styleConfig maps the theme and shared accent palette onto a glamour
// style config, so terminal output follows the same element rules as the
// exported stylesheet: top-level headings in the theme foreground,
// secondary headings in the Pop accent, blockquotes carrying a Pop border,
// links in the LinkHover accent.
func styleConfig(t theme.Theme) ansi.StyleConfig {
	var cfg ansi.StyleConfig
	if t.Name == theme.Dark.Name {
		cfg = glstyles.DarkStyleConfig
	} else {
		cfg = glstyles.LightStyleConfig
	}

	fg := t.Foreground
	pop := theme.Accents.Pop
	linkHover := theme.Accents.LinkHover

	cfg.Document.Color = &fg
	cfg.H1.Color = &fg
	cfg.H1.BackgroundColor = nil
	cfg.H2.Color = &pop
	cfg.H3.Color = &pop
	cfg.Link.Color = &linkHover
	cfg.LinkText.Color = &linkHover
	cfg.BlockQuote.Color = &fg
	cfg.Image.Color = &linkHover
	cfg.ImageText.Color = &linkHover
	cfg.Code.Color = &pop
	cfg.Code.BackgroundColor = nil

	return cfg
}
