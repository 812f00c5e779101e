package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmuir/inkwell/internal/config"
	"github.com/tmuir/inkwell/internal/content"
	"github.com/tmuir/inkwell/internal/model"
	"github.com/tmuir/inkwell/internal/theme"
)

func seedStore(t *testing.T) *content.Store {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"huffman.md": `---
title: Huffman Coding from Scratch
slug: huffman-coding
date: 2025-03-14
tags: [algorithms]
---
A prefix code assigns shorter codes to frequent symbols.
`,
		"draft.md": `---
title: Unfinished Thoughts
slug: unfinished-thoughts
date: 2025-04-01
draft: true
---
Not ready yet.
`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	s := content.NewStore(dir)
	require.Empty(t, s.Rescan())
	return s
}

func TestArticleItem(t *testing.T) {
	a := model.Article{
		Title:   "Huffman Coding from Scratch",
		Slug:    "huffman-coding",
		Date:    time.Now().Add(-2 * time.Hour),
		Tags:    []string{"algorithms", "compression"},
		Summary: "Building an encoder.",
		Body:    "one two three",
	}

	item := articleItem{article: a}
	assert.Equal(t, "Huffman Coding from Scratch", item.Title())
	assert.Contains(t, item.Description(), "min read")
	assert.Contains(t, item.Description(), "#algorithms #compression")
	assert.Contains(t, item.FilterValue(), "Huffman")
	assert.Contains(t, item.FilterValue(), "algorithms")
}

func TestBuildListItemsHidesDrafts(t *testing.T) {
	s := seedStore(t)
	defer s.Close()

	m := New(config.DefaultConfig(), s, theme.Dark)

	items := m.buildListItems()
	require.Len(t, items, 1)
	ai, ok := items[0].(articleItem)
	require.True(t, ok)
	assert.Equal(t, "huffman-coding", ai.article.Slug)

	m.showDrafts = true
	items = m.buildListItems()
	assert.Len(t, items, 2)
}

func TestBuildListItemsSearch(t *testing.T) {
	s := seedStore(t)
	defer s.Close()

	m := New(config.DefaultConfig(), s, theme.Dark)
	m.showDrafts = true

	m.searchQuery = "prefix code"
	items := m.buildListItems()
	require.Len(t, items, 1)
	ai := items[0].(articleItem)
	assert.Equal(t, "huffman-coding", ai.article.Slug)

	m.searchQuery = "no such phrase"
	assert.Empty(t, m.buildListItems())
}

func TestViewHelpShowsAllBindings(t *testing.T) {
	s := seedStore(t)
	defer s.Close()

	m := New(config.DefaultConfig(), s, theme.Dark)
	m.help.Width = 120
	m.mode = ModeHelp
	m.ready = true

	out := stripANSI(m.View())
	assert.Contains(t, out, "Keyboard Shortcuts")
	for _, desc := range []string{"copy markdown", "copy slug", "toggle drafts", "page down", "help", "quit"} {
		assert.Contains(t, out, desc)
	}
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "hello", stripANSI("\x1b[1mhello\x1b[0m"))
	assert.Equal(t, "plain", stripANSI("plain"))
}
