// Package model defines the core data structures for inkwell.
package model

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
)

// WordsPerMinute is the reading speed used for the reading-time estimate.
const WordsPerMinute = 200

// Article represents a single Markdown article.
// This is the normalized form produced by the content scanner and used by
// every renderer and formatter.
type Article struct {
	// inkwell metadata (not part of front matter)
	InkwellID   string `json:"inkwell_id" yaml:"-"`
	Path        string `json:"path" yaml:"-"`
	ContentHash string `json:"content_hash,omitempty" yaml:"-"`

	// Front matter fields
	Slug    string    `json:"slug" yaml:"slug"`
	Title   string    `json:"title" yaml:"title"`
	Date    time.Time `json:"date" yaml:"date"`
	Tags    []string  `json:"tags,omitempty" yaml:"tags"`
	Draft   bool      `json:"draft,omitempty" yaml:"draft"`
	Summary string    `json:"summary,omitempty" yaml:"summary"`

	// Markdown body (everything after the front matter fence)
	Body string `json:"body" yaml:"-"`
}

// Validation errors.
var (
	ErrEmptyInkwellID = errors.New("inkwell_id cannot be empty")
	ErrEmptySlug      = errors.New("slug cannot be empty")
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrInvalidSlug    = errors.New("slug may only contain lowercase letters, digits, and hyphens")
	ErrZeroDate       = errors.New("date must be set")
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NewArticle creates a new Article with a generated ULID.
func NewArticle(title string) (*Article, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return &Article{
		InkwellID: id.String(),
		Title:     title,
		Slug:      Slugify(title),
		Date:      time.Now(),
		Draft:     true,
	}, nil
}

// Validate checks that the article has all required fields.
func (a *Article) Validate() error {
	if a.InkwellID == "" {
		return ErrEmptyInkwellID
	}
	if a.Slug == "" {
		return ErrEmptySlug
	}
	if !slugRegex.MatchString(a.Slug) {
		return ErrInvalidSlug
	}
	if a.Title == "" {
		return ErrEmptyTitle
	}
	if a.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// Slugify derives a URL-safe slug from a title.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	lastHyphen := true // trim leading hyphens
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// WordCount returns the number of whitespace-separated words in the body.
func (a *Article) WordCount() int {
	return len(strings.Fields(a.Body))
}

// ReadingTime returns the estimated reading time, rounded up to a minute.
func (a *Article) ReadingTime() time.Duration {
	words := a.WordCount()
	if words == 0 {
		return 0
	}
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	return time.Duration(minutes) * time.Minute
}

// RelativeDate returns a human-readable relative date ("3 days ago").
func (a *Article) RelativeDate() string {
	return humanize.Time(a.Date)
}

// SummaryTruncated returns the summary truncated to maxLen characters,
// falling back to the start of the body when no summary is set.
func (a *Article) SummaryTruncated(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	text := a.Summary
	if text == "" {
		text = a.Body
	}

	// Collapse whitespace and newlines to single spaces
	text = strings.Join(strings.Fields(text), " ")

	if len(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return text[:maxLen]
	}
	return text[:maxLen-3] + "..."
}

// HasTag reports whether the article carries the given tag (case-insensitive).
func (a *Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ContentKey returns a string key identifying the article content.
// Articles with the same key are considered unchanged.
func (a *Article) ContentKey() string {
	return fmt.Sprintf("%s:%s:%s", a.Slug, a.Title, a.Body)
}

// ComputeContentHash generates a SHA256 hash of the article content.
// Used to detect on-disk changes during rescans.
func (a *Article) ComputeContentHash() string {
	hash := sha256.Sum256([]byte(a.ContentKey()))
	return hex.EncodeToString(hash[:])
}

// EnsureContentHash computes and sets the ContentHash if not already set.
func (a *Article) EnsureContentHash() {
	if a.ContentHash == "" {
		a.ContentHash = a.ComputeContentHash()
	}
}

// Clone creates a deep copy of the article.
func (a *Article) Clone() *Article {
	clone := *a
	if a.Tags != nil {
		clone.Tags = append([]string(nil), a.Tags...)
	}
	return &clone
}
