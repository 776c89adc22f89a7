package identify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pipoca/internal/tmdb"
)

// Searcher is the subset of the TMDB client used during identification.
type Searcher interface {
	SearchMovie(ctx context.Context, query string) ([]tmdb.Result, error)
}

type cacheEntry struct {
	results []tmdb.Result
	expires time.Time
}

// Search wraps a Searcher with a short-lived result cache and a minimum
// spacing between provider lookups, so batch runs over folders with
// repeated titles stay polite to the API.
type Search struct {
	client     Searcher
	cache      map[string]cacheEntry
	cacheTTL   time.Duration
	rateLimit  time.Duration
	mu         sync.Mutex
	lastLookup time.Time
}

// NewSearch wraps client with caching and rate limiting.
func NewSearch(client Searcher) *Search {
	if client == nil {
		return &Search{}
	}
	return &Search{
		client:     client,
		cache:      make(map[string]cacheEntry),
		cacheTTL:   10 * time.Minute,
		rateLimit:  250 * time.Millisecond,
		lastLookup: time.Unix(0, 0),
	}
}

// Search looks up query, serving repeats from the cache.
func (s *Search) Search(ctx context.Context, query string) ([]tmdb.Result, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("tmdb client unavailable")
	}

	key := strings.ToLower(strings.TrimSpace(query))
	now := time.Now()

	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && now.Before(entry.expires) {
		results := entry.results
		s.mu.Unlock()
		return results, nil
	}

	wait := s.rateLimit - now.Sub(s.lastLookup)
	if wait > 0 {
		s.mu.Unlock()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		s.mu.Lock()
	}
	s.lastLookup = time.Now()
	s.mu.Unlock()

	results, err := s.client.SearchMovie(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.cache != nil {
		s.cache[key] = cacheEntry{results: results, expires: time.Now().Add(s.cacheTTL)}
	}
	s.mu.Unlock()
	return results, nil
}
