package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/vadimtrunov/MovieFinder/internal/config"
	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/finder"
	"github.com/vadimtrunov/MovieFinder/internal/httpclient"
	"github.com/vadimtrunov/MovieFinder/internal/metadata/tmdb"
	"github.com/vadimtrunov/MovieFinder/internal/trending/appwrite"
	"github.com/vadimtrunov/MovieFinder/internal/trending/memory"
	"github.com/vadimtrunov/MovieFinder/internal/trending/redisstore"
	"github.com/vadimtrunov/MovieFinder/internal/trending/sqlstore"
)

// Lipgloss styles used across commands.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray

	styleAccent = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true) // magenta bold
	styleRank   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true) // yellow bold
	styleTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true) // white bold

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")).
			MarginBottom(1)

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// loadConfig loads and validates the configuration file.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// services bundles what the front ends need.
type services struct {
	finder *finder.Service
	close  func() error
}

// Close releases the trending store.
func (s *services) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// initServices creates the catalog client, the trending store and the finder service.
func initServices(ctx context.Context, cfg *config.Config, logger *slog.Logger) *services {
	catalog := initCatalog(cfg, logger)
	store, closeStore := initStore(ctx, cfg, logger)
	return &services{
		finder: finder.NewService(catalog, store, cfg.Search.TrendingLimit, logger),
		close:  closeStore,
	}
}

// initCatalog creates the TMDb client.
func initCatalog(cfg *config.Config, logger *slog.Logger) *tmdb.Client {
	if cfg.Catalog.APIKey == "" {
		logger.Warn("catalog API key is not set; catalog requests will be rejected")
	}
	return tmdb.New(cfg.Catalog.BaseURL, cfg.Catalog.APIKey,
		httpclient.Config{Timeout: cfg.Catalog.Timeout}, logger)
}

// initStore opens the configured trending store. Trending is best-effort, so
// a store that cannot be opened is replaced by an in-memory one.
func initStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (core.TrendingStore, func() error) {
	store, closeFn, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Warn("trending store unavailable, using in-memory store",
			slog.String("backend", cfg.Store.Backend),
			slog.String("error", err.Error()),
		)
		return memory.New(), nil
	}
	logger.Info("trending store initialized", slog.String("backend", store.Name()))
	return store, closeFn
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (core.TrendingStore, func() error, error) {
	sc := cfg.Store
	switch sc.Backend {
	case config.BackendMemory:
		return memory.New(), nil, nil

	case config.BackendAppwrite:
		logger.Debug("connecting to Appwrite", slog.String("endpoint", sanitizeURL(sc.Appwrite.Endpoint)))
		c := appwrite.New(appwrite.Config{
			Endpoint:     sc.Appwrite.Endpoint,
			ProjectID:    sc.Appwrite.ProjectID,
			DatabaseID:   sc.Appwrite.DatabaseID,
			CollectionID: sc.Appwrite.CollectionID,
			APIKey:       sc.Appwrite.APIKey,
		}, httpclient.Config{Timeout: cfg.Catalog.Timeout}, logger)
		return c, nil, nil

	case config.BackendRedis:
		s, err := redisstore.New(ctx, redisstore.Config{
			Addr:     sc.Redis.Addr,
			Password: sc.Redis.Password,
			DB:       sc.Redis.DB,
			Prefix:   sc.Redis.Prefix,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(sc.SQLite.Path), 0o750); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		s, err := sqlstore.Open(ctx, sqlstore.SQLite, sc.SQLite.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.BackendPostgres:
		s, err := sqlstore.Open(ctx, sqlstore.Postgres, sc.Postgres.DSN, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported store backend: %s", sc.Backend)
}

// sanitizeURL strips credentials, query params, and fragment from a URL for safe logging.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.Scheme == "" {
		return "<redacted>"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
