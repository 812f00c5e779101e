package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmuir/inkwell/internal/config"
	"github.com/tmuir/inkwell/internal/content"
	"github.com/tmuir/inkwell/internal/model"
)

func setupNewTest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg = config.DefaultConfig()
	cfg.Content.Dir = dir
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	newOpts.slug = ""
	newOpts.tags = nil
	newOpts.summary = ""
	newOpts.edit = false
	return dir
}

func TestRunNew_RoundTrip(t *testing.T) {
	dir := setupNewTest(t)
	newOpts.tags = []string{"elixir", "scaling"}
	newOpts.summary = "Notes from production: what broke, what held."

	require.NoError(t, runNew(newCmd, []string{"Elixir: Phoenix at Scale"}))

	// The scaffolded file must parse back with the same fields
	a, err := content.ParseArticle(filepath.Join(dir, "elixir-phoenix-at-scale.md"))
	require.NoError(t, err)
	assert.Equal(t, "Elixir: Phoenix at Scale", a.Title)
	assert.Equal(t, "elixir-phoenix-at-scale", a.Slug)
	assert.Equal(t, []string{"elixir", "scaling"}, a.Tags)
	assert.Equal(t, "Notes from production: what broke, what held.", a.Summary)
	assert.True(t, a.Draft)
	assert.False(t, a.Date.IsZero())
}

func TestRunNew_AwkwardTitles(t *testing.T) {
	titles := []string{
		"[Draft] Thoughts on Go",
		`"Quoted" Words`,
		"Yes: or no?",
		"Trailing colon:",
	}

	for _, title := range titles {
		t.Run(title, func(t *testing.T) {
			dir := setupNewTest(t)

			require.NoError(t, runNew(newCmd, []string{title}))

			slug := model.Slugify(title)
			a, err := content.ParseArticle(filepath.Join(dir, slug+".md"))
			require.NoError(t, err)
			assert.Equal(t, title, a.Title)
			assert.Equal(t, slug, a.Slug)
		})
	}
}

func TestRunNew_ExistingFileRefused(t *testing.T) {
	dir := setupNewTest(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "taken.md"), []byte("body\n"), 0644))

	newOpts.slug = "taken"
	err := runNew(newCmd, []string{"Taken"})
	assert.ErrorContains(t, err, "already exists")
}
