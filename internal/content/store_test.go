package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmuir/inkwell/internal/model"
)

func seedStore(t *testing.T, s *Store, articles []model.Article) {
	t.Helper()
	s.mu.Lock()
	s.articles = articles
	s.index = make(map[string]int, len(articles))
	for i, a := range articles {
		if _, exists := s.index[a.Slug]; !exists {
			s.index[a.Slug] = i
		}
	}
	s.mu.Unlock()
}

func testArticles() []model.Article {
	now := time.Now()
	return []model.Article{
		{
			InkwellID: "01HQXW5T7E8Z9Y0A1B2C3D4E51",
			Slug:      "huffman-coding-in-practice",
			Title:     "Huffman Coding in Practice",
			Date:      now.Add(-48 * time.Hour),
			Tags:      []string{"compression", "go"},
			Body:      "building the tree from symbol frequencies",
		},
		{
			InkwellID: "01HQXW5T7E8Z9Y0A1B2C3D4E52",
			Slug:      "base64-explained",
			Title:     "Base64, Explained",
			Date:      now.Add(-2 * time.Hour),
			Tags:      []string{"encoding"},
			Body:      "six bits at a time",
		},
		{
			InkwellID: "01HQXW5T7E8Z9Y0A1B2C3D4E53",
			Slug:      "phoenix-first-steps",
			Title:     "Phoenix First Steps",
			Date:      now.Add(-240 * time.Hour),
			Tags:      []string{"elixir"},
			Draft:     true,
			Body:      "mix phx.new and beyond",
		},
	}
}

func TestStore_RescanFromDisk(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "a.md", "---\ntitle: A\ndate: 2022-01-01T00:00:00Z\n---\nalpha\n")
	writeArticle(t, dir, "b.md", "---\ntitle: B\ndate: 2023-01-01T00:00:00Z\n---\nbeta\n")

	s := NewStore(dir)
	defer s.Close()

	errs := s.Rescan()
	assert.Empty(t, errs)
	assert.Equal(t, 2, s.Count())

	a := s.Get("a")
	require.NotNil(t, a)
	assert.Equal(t, "A", a.Title)
}

func TestStore_RescanKeepsIDForUnchanged(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "a.md", "---\ntitle: A\ndate: 2022-01-01T00:00:00Z\n---\nalpha\n")
	writeArticle(t, dir, "b.md", "---\ntitle: B\ndate: 2023-01-01T00:00:00Z\n---\nbeta\n")

	s := NewStore(dir)
	defer s.Close()
	require.Empty(t, s.Rescan())

	aID := s.Get("a").InkwellID
	bID := s.Get("b").InkwellID

	writeArticle(t, dir, "b.md", "---\ntitle: B\ndate: 2023-01-01T00:00:00Z\n---\nbeta, revised\n")
	require.Empty(t, s.Rescan())

	assert.Equal(t, aID, s.Get("a").InkwellID, "unchanged article keeps its id")
	assert.NotEqual(t, bID, s.Get("b").InkwellID, "edited article gets a new id")
}

func TestStore_Filter(t *testing.T) {
	s := NewStore("")
	defer s.Close()
	seedStore(t, s, testArticles())

	t.Run("drafts excluded by default", func(t *testing.T) {
		got := s.Filter(FilterOptions{})
		assert.Len(t, got, 2)
		for _, a := range got {
			assert.False(t, a.Draft)
		}
	})

	t.Run("include drafts", func(t *testing.T) {
		got := s.Filter(FilterOptions{IncludeDrafts: true})
		assert.Len(t, got, 3)
	})

	t.Run("by tag", func(t *testing.T) {
		got := s.Filter(FilterOptions{Tag: "encoding"})
		require.Len(t, got, 1)
		assert.Equal(t, "base64-explained", got[0].Slug)
	})

	t.Run("by query", func(t *testing.T) {
		got := s.Filter(FilterOptions{Query: "SYMBOL frequencies"})
		require.Len(t, got, 1)
		assert.Equal(t, "huffman-coding-in-practice", got[0].Slug)
	})

	t.Run("since", func(t *testing.T) {
		got := s.Filter(FilterOptions{Since: 24 * time.Hour})
		require.Len(t, got, 1)
		assert.Equal(t, "base64-explained", got[0].Slug)
	})

	t.Run("limit", func(t *testing.T) {
		got := s.Filter(FilterOptions{IncludeDrafts: true, Limit: 1})
		assert.Len(t, got, 1)
	})

	t.Run("sort by title asc", func(t *testing.T) {
		got := s.Filter(FilterOptions{SortField: "title", SortOrder: "asc"})
		require.Len(t, got, 2)
		assert.Equal(t, "Base64, Explained", got[0].Title)
	})

	t.Run("default sort is date desc", func(t *testing.T) {
		got := s.Filter(FilterOptions{})
		require.Len(t, got, 2)
		assert.True(t, got[0].Date.After(got[1].Date))
	})
}

func TestStore_Lookup(t *testing.T) {
	s := NewStore("")
	defer s.Close()
	seedStore(t, s, testArticles())

	t.Run("exact slug", func(t *testing.T) {
		a := s.Lookup("base64-explained")
		require.NotNil(t, a)
		assert.Equal(t, "Base64, Explained", a.Title)
	})

	t.Run("unique prefix", func(t *testing.T) {
		a := s.Lookup("huff")
		require.NotNil(t, a)
		assert.Equal(t, "huffman-coding-in-practice", a.Slug)
	})

	t.Run("ambiguous or missing", func(t *testing.T) {
		assert.Nil(t, s.Lookup("zzz"))
	})

	t.Run("returned article is a copy", func(t *testing.T) {
		a := s.Lookup("base64-explained")
		require.NotNil(t, a)
		a.Title = "mutated"
		again := s.Get("base64-explained")
		assert.Equal(t, "Base64, Explained", again.Title)
	})
}

func TestStore_Tags(t *testing.T) {
	s := NewStore("")
	defer s.Close()
	seedStore(t, s, testArticles())

	tags := s.Tags()
	require.Len(t, tags, 4)
	// Ties broken alphabetically
	assert.Equal(t, TagCount{Tag: "compression", Count: 1}, tags[0])
}

func TestStore_SubscribeOnRescan(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "a.md", "---\ntitle: A\n---\nalpha\n")

	s := NewStore(dir)
	defer s.Close()

	ch := s.Subscribe()
	s.Rescan()

	select {
	case ev := <-ch:
		assert.Equal(t, ChangeTypeReload, ev.Type)
		assert.Equal(t, 1, ev.Count)
	case <-time.After(time.Second):
		t.Fatal("no change event received")
	}
}

func TestStore_Close(t *testing.T) {
	s := NewStore(t.TempDir())
	ch := s.Subscribe()

	require.NoError(t, s.Close())

	_, open := <-ch
	assert.False(t, open, "subscriber channels closed on Close")

	errs := s.Rescan()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrStoreClosed)

	// Close is idempotent
	assert.NoError(t, s.Close())
}

func TestDirWatcher_RescansOnWrite(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	defer s.Close()
	s.Rescan()
	assert.Equal(t, 0, s.Count())

	w, err := NewDirWatcher(s)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	ch := s.Subscribe()
	writeArticle(t, dir, "new.md", "---\ntitle: New\n---\nfresh\n")

	select {
	case <-ch:
		assert.Equal(t, 1, s.Count())
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not trigger a rescan")
	}
}
