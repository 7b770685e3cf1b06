// Package trending holds helpers shared by the analytics store backends.
package trending

import (
	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/metadata/tmdb"
)

// DefaultLimit is the number of entries shown in the trending section.
const DefaultLimit = 5

// NewEntry builds the first entry recorded for term, with count = 1.
func NewEntry(id, term string, movie core.Movie) core.TrendingEntry {
	return core.TrendingEntry{
		ID:        id,
		Term:      term,
		Count:     1,
		MovieID:   movie.ID,
		PosterURL: tmdb.PosterURL(movie.PosterPath),
	}
}

// NormalizeLimit maps non-positive limits to DefaultLimit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
