package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArticle(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseArticle_FullFrontMatter(t *testing.T) {
	dir := t.TempDir()
	path := writeArticle(t, dir, "bam.md", `---
slug: controlling-leds-with-bam
title: Controlling LEDs With BAM
date: 2019-04-02T10:00:00Z
tags: [arduino, electronics]
summary: Bit angle modulation without flicker.
---

# Controlling LEDs With BAM

Body text goes here.
`)

	a, err := ParseArticle(path)
	require.NoError(t, err)

	assert.Len(t, a.InkwellID, 26)
	assert.Equal(t, "controlling-leds-with-bam", a.Slug)
	assert.Equal(t, "Controlling LEDs With BAM", a.Title)
	assert.Equal(t, 2019, a.Date.Year())
	assert.Equal(t, []string{"arduino", "electronics"}, a.Tags)
	assert.False(t, a.Draft)
	assert.Equal(t, "Bit angle modulation without flicker.", a.Summary)
	assert.Contains(t, a.Body, "Body text goes here.")
	assert.NotContains(t, a.Body, "slug:", "front matter must not leak into the body")
	assert.NotEmpty(t, a.ContentHash)
}

func TestParseArticle_NoFrontMatter(t *testing.T) {
	dir := t.TempDir()
	path := writeArticle(t, dir, "base64-explained.md", "# Base64, Explained\n\nSix bits at a time.\n")

	a, err := ParseArticle(path)
	require.NoError(t, err)

	assert.Equal(t, "base64-explained", a.Slug, "slug derived from filename")
	assert.Equal(t, "Base64, Explained", a.Title, "title taken from first heading")
	assert.False(t, a.Date.IsZero(), "date falls back to file mtime")
}

func TestParseArticle_NoHeadingNoTitle(t *testing.T) {
	dir := t.TempDir()
	path := writeArticle(t, dir, "notes.md", "Just some prose without a heading.\n")

	a, err := ParseArticle(path)
	require.NoError(t, err)
	assert.Equal(t, "notes", a.Title, "title falls back to filename")
}

func TestParseArticle_Draft(t *testing.T) {
	dir := t.TempDir()
	path := writeArticle(t, dir, "wip.md", "---\ntitle: WIP\ndraft: true\n---\nnot done yet\n")

	a, err := ParseArticle(path)
	require.NoError(t, err)
	assert.True(t, a.Draft)
}

func TestParseArticle_ByteOrderMark(t *testing.T) {
	dir := t.TempDir()
	path := writeArticle(t, dir, "bom.md", "\ufeff---\ntitle: Saved From Windows\n---\nbody\n")

	a, err := ParseArticle(path)
	require.NoError(t, err)
	assert.Equal(t, "Saved From Windows", a.Title, "front matter recognized behind a BOM")
}

func TestParseArticle_UnterminatedFrontMatter(t *testing.T) {
	dir := t.TempDir()
	path := writeArticle(t, dir, "broken.md", "---\ntitle: never closed\n")

	_, err := ParseArticle(path)
	assert.ErrorContains(t, err, "unterminated front matter")
}

func TestParseArticle_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeArticle(t, dir, "bad.md", "---\ntitle: [unclosed\n---\nbody\n")

	_, err := ParseArticle(path)
	assert.Error(t, err)
}

func TestSplitFrontMatter_CRLF(t *testing.T) {
	fm, body, err := splitFrontMatter([]byte("---\r\ntitle: Windows\r\n---\r\nbody\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "Windows", fm.Title)
	assert.Contains(t, body, "body")
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "older.md", "---\ntitle: Older\ndate: 2020-01-01T00:00:00Z\n---\nold\n")
	writeArticle(t, dir, "newer.md", "---\ntitle: Newer\ndate: 2023-06-15T00:00:00Z\n---\nnew\n")
	writeArticle(t, dir, "ignored.txt", "not markdown")
	writeArticle(t, dir, "broken.md", "---\ntitle: never closed\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	articles, errs := ScanDir(dir)

	require.Len(t, articles, 2)
	assert.Len(t, errs, 1, "broken file reported, not fatal")
	assert.Equal(t, "Newer", articles[0].Title, "sorted newest first")
	assert.Equal(t, "Older", articles[1].Title)
	assert.True(t, articles[0].Date.After(time.Time{}))
}

func TestScanDir_MissingDir(t *testing.T) {
	articles, errs := ScanDir("/nonexistent/content")
	assert.Nil(t, articles)
	require.Len(t, errs, 1)
	assert.Error(t, errs[0])
}
