// Package mcp exposes movie search and trending terms as MCP tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/finder"
)

// Server wraps an MCP SDK server with MovieFinder tool handlers.
type Server struct {
	server *mcpsdk.Server
	finder *finder.Service
	logger *slog.Logger
}

// NewServer creates an MCP server with all MovieFinder tools registered.
func NewServer(f *finder.Service, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "moviefinder",
			Version: version,
		},
		&mcpsdk.ServerOptions{Logger: logger},
	)

	srv := &Server{server: s, finder: f, logger: logger}
	srv.registerTools()
	return srv
}

// ServeStdio runs the MCP server over stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}

// MCPServer returns the underlying MCP SDK server (for testing).
func (s *Server) MCPServer() *mcpsdk.Server {
	return s.server
}

func (s *Server) registerTools() {
	s.server.AddTool(searchMoviesTool(), s.handleSearchMovies)
	s.server.AddTool(trendingSearchesTool(), s.handleTrendingSearches)
}

func searchMoviesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name: "search_movies",
		Description: "Search the movie catalog by title. Returns matching movies with ids, titles, " +
			"release dates, ratings and poster paths. An empty query returns the most popular movies. " +
			"Each non-empty search counts towards the trending terms.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Movie title to search for; omit for popular movies",
				},
			},
		},
	}
}

func trendingSearchesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "trending_searches",
		Description: "List the most searched terms with their search counts and the poster of the first movie found for each.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of terms to return (default 5)",
				},
			},
		},
	}
}

func (s *Server) handleSearchMovies(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := decodeArgs(req.Params.Arguments, &args); err != nil {
		return toolError(err.Error()), nil
	}

	out := s.finder.Search(ctx, args.Query)
	if out.ErrorMessage != "" {
		return toolError(out.ErrorMessage), nil
	}
	movies := out.Movies
	if movies == nil {
		movies = []core.Movie{}
	}
	return toolJSON(movies)
}

func (s *Server) handleTrendingSearches(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Limit int `json:"limit"`
	}
	if err := decodeArgs(req.Params.Arguments, &args); err != nil {
		return toolError(err.Error()), nil
	}
	if args.Limit < 0 {
		return toolError("limit must be positive"), nil
	}

	var entries []core.TrendingEntry
	if args.Limit == 0 {
		entries = s.finder.Trending(ctx)
	} else {
		entries = s.finder.TrendingN(ctx, args.Limit)
	}
	if entries == nil {
		entries = []core.TrendingEntry{}
	}
	return toolJSON(entries)
}

// Helper functions.

// decodeArgs unmarshals tool arguments into dst. Missing arguments are allowed.
func decodeArgs(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// toolJSON marshals v to JSON and returns it as text content.
func toolJSON(v any) (*mcpsdk.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}

// toolError returns a tool result indicating an error.
func toolError(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
		IsError: true,
	}
}
