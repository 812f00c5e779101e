package content

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tmuir/inkwell/internal/model"
)

// ErrStoreClosed is returned for operations on a closed store.
var ErrStoreClosed = errors.New("store is closed")

// ChangeType indicates the type of store change.
type ChangeType int

const (
	// ChangeTypeReload indicates the article set was rescanned from disk.
	ChangeTypeReload ChangeType = iota
	// ChangeTypeClear indicates all articles were cleared.
	ChangeTypeClear
)

// ChangeEvent signals store content changes.
type ChangeEvent struct {
	Type  ChangeType
	Count int
}

// FilterOptions specifies criteria for filtering articles.
type FilterOptions struct {
	Tag           string        // Match articles carrying this tag
	Query         string        // Case-insensitive match on title/summary/body
	IncludeDrafts bool          // Include draft articles
	Since         time.Duration // Articles newer than now-since (0=all)
	Limit         int           // Maximum results (0=unlimited)
	SortField     string        // "date", "title", "words"
	SortOrder     string        // "asc" or "desc" (default: "desc")
}

// Store manages the article index with thread-safe operations.
type Store struct {
	mu       sync.RWMutex
	dir      string
	articles []model.Article
	index    map[string]int // slug -> slice index

	subscribers []chan ChangeEvent
	closed      bool
}

// NewStore creates a Store over the given content directory.
// Call Rescan to populate it.
func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		index: make(map[string]int),
	}
}

// Dir returns the content directory the store scans.
func (s *Store) Dir() string {
	return s.dir
}

// Rescan replaces the article set with a fresh scan of the content
// directory. Articles whose content hash is unchanged keep their
// existing id. Parse failures are returned but do not abort the scan.
func (s *Store) Rescan() []error {
	articles, errs := ScanDir(s.dir)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return []error{ErrStoreClosed}
	}

	// Carry identity across rescans: a slug whose content hash is
	// unchanged keeps the id it was assigned on the previous scan.
	prev := make(map[string]model.Article, len(s.articles))
	for _, a := range s.articles {
		if _, ok := prev[a.Slug]; !ok {
			prev[a.Slug] = a
		}
	}
	for i := range articles {
		if old, ok := prev[articles[i].Slug]; ok && old.ContentHash == articles[i].ContentHash {
			articles[i].InkwellID = old.InkwellID
		}
	}

	s.articles = articles
	s.index = make(map[string]int, len(articles))
	for i, a := range articles {
		// First occurrence of a slug wins; later duplicates are shadowed.
		if _, exists := s.index[a.Slug]; !exists {
			s.index[a.Slug] = i
		}
	}
	count := len(articles)
	s.mu.Unlock()

	s.notifyChange(ChangeEvent{Type: ChangeTypeReload, Count: count})
	return errs
}

// All returns all articles sorted by date (newest first).
func (s *Store) All() []model.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Article, len(s.articles))
	copy(result, s.articles)

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})

	return result
}

// Filter returns articles matching the criteria.
func (s *Store) Filter(opts FilterOptions) []model.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	var result []model.Article

	for _, a := range s.articles {
		if a.Draft && !opts.IncludeDrafts {
			continue
		}
		if opts.Tag != "" && !a.HasTag(opts.Tag) {
			continue
		}
		if opts.Since > 0 && a.Date.Before(now.Add(-opts.Since)) {
			continue
		}
		if opts.Query != "" && !matchesQuery(&a, opts.Query) {
			continue
		}
		result = append(result, a)
	}

	sortField := opts.SortField
	if sortField == "" {
		sortField = "date"
	}
	sortOrder := opts.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}
	sortArticles(result, sortField, sortOrder)

	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}

	return result
}

// Get returns an article by its slug.
func (s *Store) Get(slug string) *model.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx, exists := s.index[slug]; exists {
		return s.articles[idx].Clone()
	}
	return nil
}

// Lookup finds an article by exact slug, falling back to a unique prefix
// match so `inkwell show huff` finds "huffman-coding-in-practice".
func (s *Store) Lookup(input string) *model.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx, exists := s.index[input]; exists {
		return s.articles[idx].Clone()
	}

	var match *model.Article
	for i := range s.articles {
		if strings.HasPrefix(s.articles[i].Slug, input) {
			if match != nil {
				return nil // Ambiguous prefix
			}
			match = &s.articles[i]
		}
	}
	if match != nil {
		return match.Clone()
	}
	return nil
}

// Count returns the total number of articles.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

// TagCount pairs a tag with the number of articles carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// Tags returns all tags with article counts, most used first.
func (s *Store) Tags() []TagCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, a := range s.articles {
		for _, tag := range a.Tags {
			counts[strings.ToLower(tag)]++
		}
	}

	result := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag < result[j].Tag
	})

	return result
}

// Subscribe returns a channel that receives change events.
func (s *Store) Subscribe() <-chan ChangeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan ChangeEvent, 10)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription.
func (s *Store) Unsubscribe(ch <-chan ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close releases resources and closes all subscriber channels.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for _, ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = nil

	return nil
}

// notifyChange sends a change event to all subscribers (non-blocking).
func (s *Store) notifyChange(event ChangeEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}

// sortArticles sorts articles in-place.
func sortArticles(as []model.Article, field, order string) {
	sort.Slice(as, func(i, j int) bool {
		var less bool
		switch field {
		case "title":
			less = strings.ToLower(as[i].Title) < strings.ToLower(as[j].Title)
		case "words":
			less = as[i].WordCount() < as[j].WordCount()
		default: // date
			less = as[i].Date.Before(as[j].Date)
		}
		if order == "desc" {
			return !less
		}
		return less
	})
}

// matchesQuery checks title, summary, and body case-insensitively.
func matchesQuery(a *model.Article, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Summary), q) ||
		strings.Contains(strings.ToLower(a.Body), q)
}
