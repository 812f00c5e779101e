// Package content scans, indexes, and watches the Markdown article sources.
package content

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/tmuir/inkwell/internal/model"
)

const frontMatterFence = "---"

// frontMatter is the YAML header of an article file. All fields are
// optional; missing ones are derived from the file itself.
type frontMatter struct {
	Slug    string    `yaml:"slug"`
	Title   string    `yaml:"title"`
	Date    time.Time `yaml:"date"`
	Tags    []string  `yaml:"tags"`
	Draft   bool      `yaml:"draft"`
	Summary string    `yaml:"summary"`
}

// ParseArticle parses a Markdown file with optional YAML front matter.
func ParseArticle(path string) (*model.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	fm, body, err := splitFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	a := &model.Article{
		InkwellID: id.String(),
		Path:      path,
		Slug:      fm.Slug,
		Title:     fm.Title,
		Date:      fm.Date,
		Tags:      fm.Tags,
		Draft:     fm.Draft,
		Summary:   fm.Summary,
		Body:      body,
	}

	// Derive missing fields from the file
	if a.Title == "" {
		a.Title = titleFromBody(body)
	}
	if a.Title == "" {
		a.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if a.Slug == "" {
		a.Slug = model.Slugify(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
	if a.Date.IsZero() {
		a.Date = info.ModTime()
	}

	a.EnsureContentHash()

	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid article %s: %w", path, err)
	}

	return a, nil
}

// splitFrontMatter separates the YAML header from the Markdown body.
// Files without a leading fence are treated as all body.
func splitFrontMatter(data []byte) (frontMatter, string, error) {
	var fm frontMatter

	trimmed := bytes.TrimLeft(data, "\ufeff") // strip BOM
	if !bytes.HasPrefix(trimmed, []byte(frontMatterFence+"\n")) &&
		!bytes.HasPrefix(trimmed, []byte(frontMatterFence+"\r\n")) {
		return fm, string(data), nil
	}

	rest := trimmed[len(frontMatterFence):]
	rest = bytes.TrimPrefix(rest, []byte("\r"))
	rest = bytes.TrimPrefix(rest, []byte("\n"))

	end := bytes.Index(rest, []byte("\n"+frontMatterFence))
	if end < 0 {
		return fm, "", fmt.Errorf("unterminated front matter")
	}

	header := rest[:end]
	body := rest[end+len("\n"+frontMatterFence):]
	// Drop the remainder of the closing fence line
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}

	if err := yaml.Unmarshal(header, &fm); err != nil {
		return fm, "", fmt.Errorf("front matter: %w", err)
	}

	return fm, strings.TrimLeft(string(body), "\n"), nil
}

// titleFromBody returns the text of the first top-level heading, if any.
func titleFromBody(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// ScanDir parses every *.md file directly under dir, sorted by date
// descending. Files that fail to parse are skipped and reported.
func ScanDir(dir string) ([]model.Article, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []error{err}
	}

	var articles []model.Article
	var errs []error

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != ".md" {
			continue
		}
		a, err := ParseArticle(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		articles = append(articles, *a)
	}

	sort.Slice(articles, func(i, j int) bool {
		return articles[i].Date.After(articles[j].Date)
	})

	return articles, errs
}
