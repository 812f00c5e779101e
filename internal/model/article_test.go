package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArticle(t *testing.T) {
	a, err := NewArticle("Controlling LEDs With BAM")
	require.NoError(t, err)

	assert.Len(t, a.InkwellID, 26, "should have a ULID")
	assert.Equal(t, "Controlling LEDs With BAM", a.Title)
	assert.Equal(t, "controlling-leds-with-bam", a.Slug)
	assert.True(t, a.Draft, "new articles start as drafts")
	assert.False(t, a.Date.IsZero())
	assert.NoError(t, a.Validate())
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Huffman Coding in Practice", "huffman-coding-in-practice"},
		{"  Base64, Explained!  ", "base64-explained"},
		{"Elixir/Phoenix: First Steps", "elixir-phoenix-first-steps"},
		{"---", ""},
		{"UPPER case", "upper-case"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Article{
		InkwellID: "01HQXW5T7E8Z9Y0A1B2C3D4E5F",
		Slug:      "hello-world",
		Title:     "Hello World",
		Date:      time.Now(),
	}

	tests := []struct {
		name    string
		mutate  func(*Article)
		wantErr error
	}{
		{"valid", func(a *Article) {}, nil},
		{"missing id", func(a *Article) { a.InkwellID = "" }, ErrEmptyInkwellID},
		{"missing slug", func(a *Article) { a.Slug = "" }, ErrEmptySlug},
		{"bad slug", func(a *Article) { a.Slug = "Hello World" }, ErrInvalidSlug},
		{"missing title", func(a *Article) { a.Title = "" }, ErrEmptyTitle},
		{"zero date", func(a *Article) { a.Date = time.Time{} }, ErrZeroDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			err := a.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestWordCountAndReadingTime(t *testing.T) {
	a := Article{Body: strings.Repeat("word ", 450)}
	assert.Equal(t, 450, a.WordCount())
	assert.Equal(t, 3*time.Minute, a.ReadingTime())

	empty := Article{}
	assert.Equal(t, 0, empty.WordCount())
	assert.Equal(t, time.Duration(0), empty.ReadingTime())

	short := Article{Body: "just a few words"}
	assert.Equal(t, time.Minute, short.ReadingTime(), "rounds up to one minute")
}

func TestSummaryTruncated(t *testing.T) {
	a := Article{
		Summary: "A short\nsummary   with  odd whitespace",
	}
	assert.Equal(t, "A short summary with odd whitespace", a.SummaryTruncated(100))
	assert.Equal(t, "A short...", a.SummaryTruncated(10))

	noSummary := Article{Body: "Falls back to the body text when summary is empty."}
	assert.Equal(t, "Falls back", noSummary.SummaryTruncated(13)[:10])
	assert.Equal(t, "", noSummary.SummaryTruncated(0))
}

func TestHasTag(t *testing.T) {
	a := Article{Tags: []string{"arduino", "Electronics"}}
	assert.True(t, a.HasTag("arduino"))
	assert.True(t, a.HasTag("electronics"))
	assert.False(t, a.HasTag("elixir"))
}

func TestContentHash(t *testing.T) {
	a := Article{Slug: "x", Title: "X", Body: "body"}
	b := Article{Slug: "x", Title: "X", Body: "body"}
	c := Article{Slug: "x", Title: "X", Body: "changed"}

	assert.Equal(t, a.ComputeContentHash(), b.ComputeContentHash())
	assert.NotEqual(t, a.ComputeContentHash(), c.ComputeContentHash())

	a.EnsureContentHash()
	assert.NotEmpty(t, a.ContentHash)
	hash := a.ContentHash
	a.EnsureContentHash()
	assert.Equal(t, hash, a.ContentHash, "does not recompute once set")
}

func TestClone(t *testing.T) {
	a := Article{Slug: "x", Tags: []string{"one", "two"}}
	clone := a.Clone()
	clone.Tags[0] = "mutated"
	assert.Equal(t, "one", a.Tags[0], "clone must not share tag storage")
}
