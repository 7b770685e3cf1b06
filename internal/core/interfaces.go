package core

import "context"

// Catalog defines the interface for remote movie catalogs (TMDb)
type Catalog interface {
	// FetchMovies searches by query, or discovers popular titles when query is empty
	FetchMovies(ctx context.Context, query string) ([]Movie, error)
}

// TrendingStore defines the interface for analytics stores that track search terms
// (Appwrite, Redis, SQLite, Postgres, in-memory)
type TrendingStore interface {
	// Record increments the counter for term, creating the entry from movie if absent
	Record(ctx context.Context, term string, movie Movie) error

	// Trending returns at most limit entries ordered by descending count
	Trending(ctx context.Context, limit int) ([]TrendingEntry, error)

	// Name returns the backend name (e.g., "appwrite", "redis", "sqlite")
	Name() string
}

// Movie represents a catalog movie, passed through unmodified to the renderer
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview,omitempty"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	OriginalLanguage string  `json:"original_language"`
}

// TrendingEntry represents a stored search term with its usage counter
type TrendingEntry struct {
	ID        string `json:"id"`         // Assigned by the store
	Term      string `json:"term"`       // The search term
	Count     int    `json:"count"`      // Number of recorded searches
	MovieID   int    `json:"movie_id"`   // Representative movie
	PosterURL string `json:"poster_url"` // Representative poster
}
