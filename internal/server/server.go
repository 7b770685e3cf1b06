// Package server exposes search and trending over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/finder"
)

// maxTrendingLimit caps the limit query parameter.
const maxTrendingLimit = 50

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MoviesResponse is returned by GET /api/v1/movies.
type MoviesResponse struct {
	Query   string       `json:"query"`
	Results []core.Movie `json:"results"`
}

// TrendingResponse is returned by GET /api/v1/trending.
type TrendingResponse struct {
	Results []core.TrendingEntry `json:"results"`
}

// Server wraps a Fiber app serving the finder API.
type Server struct {
	app    *fiber.App
	finder *finder.Service
	logger *slog.Logger
}

// New creates a Server with routes and middleware registered.
func New(f *finder.Service, version string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{finder: f, logger: log}

	s.app = fiber.New(fiber.Config{
		AppName:      "MovieFinder " + version,
		ErrorHandler: s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(logger.New())
	s.app.Use(cors.New())

	api := s.app.Group("/api/v1")
	api.Get("/health", s.health)
	api.Get("/movies", s.movies)
	api.Get("/trending", s.trending)
	return s
}

// App returns the underlying Fiber app (for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Listen(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	s.logger.Info("HTTP API listening", slog.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP API")
		if err := s.app.Shutdown(); err != nil {
			return err
		}
		return <-errCh
	}
}

func (s *Server) handleError(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.Error("unhandled error", slog.Int("status", code), slog.String("error", err.Error()))
	}
	return c.Status(code).JSON(ErrorResponse{Error: err.Error()})
}

func (s *Server) health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "moviefinder",
	})
}

// movies runs one search. A blank query lists popular movies.
func (s *Server) movies(c fiber.Ctx) error {
	out := s.finder.Search(c.Context(), c.Query("query"))
	if out.ErrorMessage != "" {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: out.ErrorMessage})
	}

	results := out.Movies
	if results == nil {
		results = []core.Movie{}
	}
	return c.JSON(MoviesResponse{Query: out.Query, Results: results})
}

func (s *Server) trending(c fiber.Ctx) error {
	limit := fiber.Query(c, "limit", 0)
	if limit < 0 || limit > maxTrendingLimit {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "limit must be between 1 and 50",
		})
	}

	var entries []core.TrendingEntry
	if limit == 0 {
		entries = s.finder.Trending(c.Context())
	} else {
		entries = s.finder.TrendingN(c.Context(), limit)
	}
	if entries == nil {
		entries = []core.TrendingEntry{}
	}
	return c.JSON(TrendingResponse{Results: entries})
}
