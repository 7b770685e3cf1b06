// Package finder implements the search and trending operations shared by the
// terminal UI, the HTTP API and the MCP server, together with the UI state
// they drive.
package finder

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/metadata/tmdb"
	"github.com/vadimtrunov/MovieFinder/internal/trending"
)

// User-facing error messages.
const (
	FetchErrorMessage   = "Error fetching movies. Please try again later."
	PayloadErrorMessage = "Failed to fetch movies"
)

// Outcome is the result of one catalog fetch, ready to be applied to a State.
type Outcome struct {
	Seq   uint64
	Query string
	// Movies replaces the current list only when ReplaceMovies is set.
	Movies        []core.Movie
	ReplaceMovies bool
	ErrorMessage  string
}

// Service runs catalog fetches and records search terms.
type Service struct {
	catalog       core.Catalog
	store         core.TrendingStore
	trendingLimit int
	logger        *slog.Logger
}

// NewService creates a Service. store may be nil, in which case terms are not
// recorded and the trending list is always empty.
func NewService(catalog core.Catalog, store core.TrendingStore, trendingLimit int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		catalog:       catalog,
		store:         store,
		trendingLimit: trending.NormalizeLimit(trendingLimit),
		logger:        logger,
	}
}

// Search fetches movies for query (discover mode when blank) and maps the
// result to an Outcome. On a successful non-empty search the first result is
// recorded in the trending store before Search returns.
func (s *Service) Search(ctx context.Context, query string) Outcome {
	query = strings.TrimSpace(query)
	out := Outcome{Query: query}

	movies, err := s.catalog.FetchMovies(ctx, query)

	var payloadErr *tmdb.PayloadError
	switch {
	case errors.As(err, &payloadErr):
		out.ReplaceMovies = true
		out.Movies = []core.Movie{}
		out.ErrorMessage = payloadErr.Message
		if out.ErrorMessage == "" {
			out.ErrorMessage = PayloadErrorMessage
		}
		return out
	case err != nil:
		// The previous list is kept on transport failures.
		s.logger.Error("Error fetching movies", slog.String("query", query), slog.String("error", err.Error()))
		out.ErrorMessage = FetchErrorMessage
		return out
	}

	out.ReplaceMovies = true
	out.Movies = movies

	if query != "" && len(movies) > 0 {
		s.record(ctx, query, movies[0])
	}
	return out
}

// Trending returns the top entries. Failures are logged and yield nil.
func (s *Service) Trending(ctx context.Context) []core.TrendingEntry {
	return s.TrendingN(ctx, s.trendingLimit)
}

// TrendingN is Trending with an explicit limit.
func (s *Service) TrendingN(ctx context.Context, limit int) []core.TrendingEntry {
	if s.store == nil {
		return nil
	}
	entries, err := s.store.Trending(ctx, trending.NormalizeLimit(limit))
	if err != nil {
		s.logger.Warn("Error fetching trending movies",
			slog.String("store", s.store.Name()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return entries
}

func (s *Service) record(ctx context.Context, term string, movie core.Movie) {
	if s.store == nil {
		return
	}
	if err := s.store.Record(ctx, term, movie); err != nil {
		s.logger.Warn("failed to record search term",
			slog.String("store", s.store.Name()),
			slog.String("term", term),
			slog.String("error", err.Error()),
		)
	}
}
