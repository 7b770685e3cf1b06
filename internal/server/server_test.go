package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/finder"
	"github.com/vadimtrunov/MovieFinder/internal/metadata/tmdb"
	"github.com/vadimtrunov/MovieFinder/internal/trending/memory"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// stubCatalog implements core.Catalog for testing.
type stubCatalog struct {
	movies []core.Movie
	err    error
}

func (s *stubCatalog) FetchMovies(_ context.Context, _ string) ([]core.Movie, error) {
	return s.movies, s.err
}

func newTestServer(t *testing.T, cat core.Catalog) (*Server, *memory.Store) {
	t.Helper()
	store := memory.New()
	f := finder.NewService(cat, store, 5, discardLogger)
	return New(f, "test", discardLogger), store
}

func doGet(t *testing.T, s *Server, target string, out any) int {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, &stubCatalog{})
	var body map[string]string
	assert.Equal(t, http.StatusOK, doGet(t, s, "/api/v1/health", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestMovies_RecordsSearch(t *testing.T) {
	cat := &stubCatalog{movies: []core.Movie{{ID: 268, Title: "Batman", PosterPath: "/bat.jpg"}}}
	s, store := newTestServer(t, cat)

	var body MoviesResponse
	assert.Equal(t, http.StatusOK, doGet(t, s, "/api/v1/movies?query=batman", &body))
	assert.Equal(t, "batman", body.Query)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Batman", body.Results[0].Title)

	entries, err := store.Trending(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "batman", entries[0].Term)
}

func TestMovies_EmptyResultsEncodeAsArray(t *testing.T) {
	s, _ := newTestServer(t, &stubCatalog{})

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"","results":[]}`, string(raw))
}

func TestMovies_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"transport", errors.New("connection refused"), finder.FetchErrorMessage},
		{"payload", &tmdb.PayloadError{Message: "Movie not found!"}, "Movie not found!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, &stubCatalog{err: tt.err})
			var body ErrorResponse
			assert.Equal(t, http.StatusBadGateway, doGet(t, s, "/api/v1/movies?query=x", &body))
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

func TestTrending(t *testing.T) {
	s, store := newTestServer(t, &stubCatalog{})
	ctx := context.Background()
	for _, term := range []string{"dune", "batman", "batman", "alien"} {
		require.NoError(t, store.Record(ctx, term, core.Movie{ID: 1}))
	}

	var body TrendingResponse
	assert.Equal(t, http.StatusOK, doGet(t, s, "/api/v1/trending?limit=2", &body))
	require.Len(t, body.Results, 2)
	assert.Equal(t, "batman", body.Results[0].Term)
	assert.Equal(t, 2, body.Results[0].Count)
}

func TestTrending_Empty(t *testing.T) {
	s, _ := newTestServer(t, &stubCatalog{})
	var body TrendingResponse
	assert.Equal(t, http.StatusOK, doGet(t, s, "/api/v1/trending", &body))
	assert.NotNil(t, body.Results)
	assert.Empty(t, body.Results)
}

func TestTrending_InvalidLimit(t *testing.T) {
	s, _ := newTestServer(t, &stubCatalog{})
	for _, limit := range []string{"-1", "51"} {
		var body ErrorResponse
		assert.Equal(t, http.StatusBadRequest, doGet(t, s, "/api/v1/trending?limit="+limit, &body), limit)
		assert.NotEmpty(t, body.Error)
	}
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(t, &stubCatalog{})
	var body ErrorResponse
	assert.Equal(t, http.StatusNotFound, doGet(t, s, "/api/v1/nope", &body))
}
