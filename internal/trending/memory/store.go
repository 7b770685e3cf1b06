// Package memory provides an in-process trending store.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/trending"
)

// Store keeps trending entries in a map keyed by term. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*core.TrendingEntry
}

// New creates an empty Store.
func New() *Store {
	return &Store{entries: make(map[string]*core.TrendingEntry)}
}

// Record increments term's counter or creates it with count = 1.
func (s *Store) Record(_ context.Context, term string, movie core.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[term]; ok {
		e.Count++
		return nil
	}
	entry := trending.NewEntry(uuid.NewString(), term, movie)
	s.entries[term] = &entry
	return nil
}

// Trending returns the top entries by descending count. Ties keep term order.
func (s *Store) Trending(_ context.Context, limit int) ([]core.TrendingEntry, error) {
	limit = trending.NormalizeLimit(limit)

	s.mu.RLock()
	out := make([]core.TrendingEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, *e)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b core.TrendingEntry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Name returns "memory".
func (s *Store) Name() string { return "memory" }
