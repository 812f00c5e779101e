// Package export writes the article set out as a static HTML site.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/tmuir/inkwell/internal/model"
	"github.com/tmuir/inkwell/internal/theme"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	dirPerm  = 0o755
	filePerm = 0o644

	// StylesheetName is the filename the emitted CSS is written under.
	// Both page templates reference it by this name.
	StylesheetName = "style.css"
)

// Exporter renders articles to standalone HTML pages plus a shared
// stylesheet. Pages link back to a generated index.
type Exporter struct {
	outDir    string
	siteTitle string

	md          goldmark.Markdown
	articleTmpl *template.Template
	indexTmpl   *template.Template
}

type articlePage struct {
	Title       string
	Date        time.Time
	Tags        []string
	ReadingTime string
	Content     template.HTML
}

type indexPage struct {
	Title    string
	Articles []model.Article
}

// New creates an Exporter writing into outDir. siteTitle is used as the
// index page heading.
func New(outDir, siteTitle string) (*Exporter, error) {
	articleTmpl, err := template.ParseFS(embeddedTemplates, "templates/article.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing article template: %w", err)
	}
	indexTmpl, err := template.ParseFS(embeddedTemplates, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}

	return &Exporter{
		outDir:    outDir,
		siteTitle: siteTitle,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		),
		articleTmpl: articleTmpl,
		indexTmpl:   indexTmpl,
	}, nil
}

// OutDir returns the output directory.
func (e *Exporter) OutDir() string {
	return e.outDir
}

// Export writes one HTML page per article, an index page, and the
// stylesheet. Articles are written in the order given; the index lists
// them in that same order.
func (e *Exporter) Export(articles []model.Article) error {
	if err := os.MkdirAll(e.outDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := e.writeStylesheet(); err != nil {
		return err
	}

	for _, a := range articles {
		if err := e.writeArticle(a); err != nil {
			return err
		}
	}

	if err := e.writeIndex(articles); err != nil {
		return err
	}

	slog.Info("Export complete", "dir", e.outDir, "articles", len(articles))
	return nil
}

func (e *Exporter) writeStylesheet() error {
	path := filepath.Join(e.outDir, StylesheetName)
	if err := os.WriteFile(path, []byte(theme.AdaptiveStylesheet()), filePerm); err != nil {
		return fmt.Errorf("writing stylesheet: %w", err)
	}
	slog.Debug("Wrote stylesheet", "path", path)
	return nil
}

func (e *Exporter) writeArticle(a model.Article) error {
	var body bytes.Buffer
	if err := e.md.Convert([]byte(a.Body), &body); err != nil {
		return fmt.Errorf("converting %s: %w", a.Slug, err)
	}

	page := articlePage{
		Title:       a.Title,
		Date:        a.Date,
		Tags:        a.Tags,
		ReadingTime: fmt.Sprintf("%d min read", int(a.ReadingTime().Minutes())),
		Content:     template.HTML(body.String()),
	}

	var out bytes.Buffer
	if err := e.articleTmpl.Execute(&out, page); err != nil {
		return fmt.Errorf("rendering %s: %w", a.Slug, err)
	}

	path := filepath.Join(e.outDir, a.Slug+".html")
	if err := os.WriteFile(path, out.Bytes(), filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	slog.Debug("Wrote article page", "slug", a.Slug, "path", path)
	return nil
}

func (e *Exporter) writeIndex(articles []model.Article) error {
	var out bytes.Buffer
	err := e.indexTmpl.Execute(&out, indexPage{Title: e.siteTitle, Articles: articles})
	if err != nil {
		return fmt.Errorf("rendering index: %w", err)
	}

	path := filepath.Join(e.outDir, "index.html")
	if err := os.WriteFile(path, out.Bytes(), filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	slog.Debug("Wrote index page", "path", path)
	return nil
}
