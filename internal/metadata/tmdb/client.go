package tmdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/httpclient"
)

const (
	// DefaultBaseURL is the TMDb API v3 root.
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// PlaceholderPoster is used when a movie has no poster.
	PlaceholderPoster = "/no-movie.png"

	imageBaseURL = "https://image.tmdb.org/t/p/w500"
)

// ErrFetch marks transport failures and non-success HTTP statuses.
var ErrFetch = errors.New("failed to fetch movies")

// PayloadError is returned when the catalog answers successfully but flags
// the request as failed inside the payload.
type PayloadError struct {
	Message string
}

func (e *PayloadError) Error() string {
	if e.Message == "" {
		return "catalog reported failure"
	}
	return e.Message
}

// Client is a TMDb API v3 client.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
	logger  *slog.Logger
}

// New creates a new TMDb client. An empty baseURL selects DefaultBaseURL.
// The key is sent both as api_key and as a bearer credential.
func New(baseURL, apiKey string, httpCfg httpclient.Config, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	headers := make(map[string]string, len(httpCfg.Headers)+2)
	for k, v := range httpCfg.Headers {
		headers[k] = v
	}
	headers["Accept"] = "application/json"
	headers["Authorization"] = "Bearer " + apiKey
	httpCfg.Headers = headers

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpclient.New(httpCfg, logger),
		logger:  logger,
	}
}

// NewForTest creates a TMDb client with a custom base URL for testing.
// Exported because it is used by cross-package tests (e.g. internal/finder).
func NewForTest(baseURL string, logger *slog.Logger) *Client {
	return New(baseURL, "test-key", httpclient.DefaultConfig(), logger)
}

// FetchMovies searches by title, or discovers popular movies when query is empty.
func (c *Client) FetchMovies(ctx context.Context, query string) ([]core.Movie, error) {
	if query == "" {
		return c.DiscoverMovies(ctx)
	}
	return c.SearchMovies(ctx, query)
}

// SearchMovies searches for movies by title.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]core.Movie, error) {
	movies, err := c.list(ctx, "/search/movie", url.Values{"query": {query}})
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	return movies, nil
}

// DiscoverMovies lists movies sorted by descending popularity.
func (c *Client) DiscoverMovies(ctx context.Context) ([]core.Movie, error) {
	params := url.Values{
		"sort_by": {"popularity.desc"},
		"sortby":  {"popularity.desc"},
	}
	movies, err := c.list(ctx, "/discover/movie", params)
	if err != nil {
		return nil, fmt.Errorf("discover movies: %w", err)
	}
	return movies, nil
}

// PosterURL returns the w500 poster URL for a poster path, or the placeholder.
func PosterURL(posterPath string) string {
	if posterPath == "" {
		return PlaceholderPoster
	}
	return imageBaseURL + posterPath
}

func (c *Client) list(ctx context.Context, path string, params url.Values) ([]core.Movie, error) {
	var resp moviesResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if resp.failed() {
		return nil, &PayloadError{Message: resp.Error}
	}
	if resp.Results == nil {
		return []core.Movie{}, nil
	}
	return resp.Results, nil
}

// get performs an authenticated GET request to the TMDb API and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return c.http.DoJSON(req, result)
}
