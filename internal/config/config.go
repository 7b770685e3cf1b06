package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file used when --config is not given.
// It may be absent; everything can be configured from the environment.
const DefaultPath = "configs/moviefinder.yaml"

// Store backend names
const (
	BackendMemory   = "memory"
	BackendAppwrite = "appwrite"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config represents the main application configuration
type Config struct {
	// Movie catalog (TMDb)
	Catalog CatalogConfig `yaml:"catalog"`

	// Trending search analytics store
	Store StoreConfig `yaml:"store"`

	// Search screen behaviour
	Search SearchConfig `yaml:"search"`

	// HTTP API
	Server ServerConfig `yaml:"server"`

	// Application settings
	App AppConfig `yaml:"app"`
}

// CatalogConfig holds movie catalog API configuration
type CatalogConfig struct {
	BaseURL string        `yaml:"base_url,omitempty"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// StoreConfig selects and configures the trending store backend
type StoreConfig struct {
	Backend  string          `yaml:"backend"` // "appwrite", "redis", "sqlite", "postgres", "memory"
	Appwrite *AppwriteConfig `yaml:"appwrite,omitempty"`
	Redis    *RedisConfig    `yaml:"redis,omitempty"`
	SQLite   *SQLiteConfig   `yaml:"sqlite,omitempty"`
	Postgres *PostgresConfig `yaml:"postgres,omitempty"`
}

// AppwriteConfig holds Appwrite collection coordinates
type AppwriteConfig struct {
	Endpoint     string `yaml:"endpoint"`
	ProjectID    string `yaml:"project_id"`
	DatabaseID   string `yaml:"database_id"`
	CollectionID string `yaml:"collection_id"`
	APIKey       string `yaml:"api_key,omitempty"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

// SQLiteConfig holds the SQLite database location
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// PostgresConfig holds the PostgreSQL connection string
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// SearchConfig holds search screen settings
type SearchConfig struct {
	Debounce      time.Duration `yaml:"debounce,omitempty"`
	TrendingLimit int           `yaml:"trending_limit,omitempty"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	LogLevel string `yaml:"log_level"` // "debug", "info", "warn", "error"
	DataDir  string `yaml:"data_dir"`  // Directory for the log file and SQLite store
}

// Load loads configuration from a YAML file with .env and environment variable
// overrides. A missing file is only an error when path is not DefaultPath.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides overrides config values with environment variables
func (c *Config) applyEnvOverrides() {
	// Catalog
	setFromEnv(&c.Catalog.APIKey, "MOVIEFINDER_TMDB_API_KEY")
	setFromEnv(&c.Catalog.BaseURL, "MOVIEFINDER_TMDB_BASE_URL")

	// Store
	setFromEnv(&c.Store.Backend, "MOVIEFINDER_STORE_BACKEND")

	if anyEnv("MOVIEFINDER_APPWRITE_ENDPOINT", "MOVIEFINDER_APPWRITE_PROJECT_ID",
		"MOVIEFINDER_APPWRITE_DATABASE_ID", "MOVIEFINDER_APPWRITE_COLLECTION_ID") && c.Store.Appwrite == nil {
		c.Store.Appwrite = &AppwriteConfig{}
	}
	if c.Store.Appwrite != nil {
		setFromEnv(&c.Store.Appwrite.Endpoint, "MOVIEFINDER_APPWRITE_ENDPOINT")
		setFromEnv(&c.Store.Appwrite.ProjectID, "MOVIEFINDER_APPWRITE_PROJECT_ID")
		setFromEnv(&c.Store.Appwrite.DatabaseID, "MOVIEFINDER_APPWRITE_DATABASE_ID")
		setFromEnv(&c.Store.Appwrite.CollectionID, "MOVIEFINDER_APPWRITE_COLLECTION_ID")
		setFromEnv(&c.Store.Appwrite.APIKey, "MOVIEFINDER_APPWRITE_API_KEY")
	}

	if anyEnv("MOVIEFINDER_REDIS_ADDR") && c.Store.Redis == nil {
		c.Store.Redis = &RedisConfig{}
	}
	if c.Store.Redis != nil {
		setFromEnv(&c.Store.Redis.Addr, "MOVIEFINDER_REDIS_ADDR")
		setFromEnv(&c.Store.Redis.Password, "MOVIEFINDER_REDIS_PASSWORD")
		if v := os.Getenv("MOVIEFINDER_REDIS_DB"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Store.Redis.DB = n
			}
		}
	}

	if anyEnv("MOVIEFINDER_SQLITE_PATH") && c.Store.SQLite == nil {
		c.Store.SQLite = &SQLiteConfig{}
	}
	if c.Store.SQLite != nil {
		setFromEnv(&c.Store.SQLite.Path, "MOVIEFINDER_SQLITE_PATH")
	}

	if anyEnv("MOVIEFINDER_POSTGRES_DSN") && c.Store.Postgres == nil {
		c.Store.Postgres = &PostgresConfig{}
	}
	if c.Store.Postgres != nil {
		setFromEnv(&c.Store.Postgres.DSN, "MOVIEFINDER_POSTGRES_DSN")
	}

	// Server
	setFromEnv(&c.Server.Addr, "MOVIEFINDER_SERVER_ADDR")

	// App
	setFromEnv(&c.App.LogLevel, "MOVIEFINDER_LOG_LEVEL")
	setFromEnv(&c.App.DataDir, "MOVIEFINDER_DATA_DIR")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func anyEnv(keys ...string) bool {
	for _, k := range keys {
		if os.Getenv(k) != "" {
			return true
		}
	}
	return false
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	// Set defaults
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = "https://api.themoviedb.org/3"
	}
	if c.Catalog.Timeout == 0 {
		c.Catalog.Timeout = 30 * time.Second
	}
	if c.Search.Debounce == 0 {
		c.Search.Debounce = 1500 * time.Millisecond
	}
	if c.Search.TrendingLimit == 0 {
		c.Search.TrendingLimit = 5
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		c.App.DataDir = filepath.Join(homeDir, ".moviefinder")
	}

	if err := validateURL("catalog.base_url", c.Catalog.BaseURL); err != nil {
		return err
	}
	if c.Catalog.Timeout < 0 {
		return fmt.Errorf("catalog.timeout must be positive")
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must be positive")
	}
	if c.Search.TrendingLimit < 0 {
		return fmt.Errorf("search.trending_limit must be positive")
	}

	switch strings.ToLower(c.App.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("app.log_level must be one of debug, info, warn, error")
	}

	return c.validateStore()
}

func (c *Config) validateStore() error {
	s := &c.Store
	if s.Backend == "" {
		s.Backend = c.defaultBackend()
	}

	switch s.Backend {
	case BackendMemory:
	case BackendAppwrite:
		a := s.Appwrite
		if a == nil {
			return fmt.Errorf("store.appwrite is required for backend %q", BackendAppwrite)
		}
		if err := validateURL("store.appwrite.endpoint", a.Endpoint); err != nil {
			return err
		}
		if a.ProjectID == "" {
			return fmt.Errorf("store.appwrite.project_id is required")
		}
		if a.DatabaseID == "" {
			return fmt.Errorf("store.appwrite.database_id is required")
		}
		if a.CollectionID == "" {
			return fmt.Errorf("store.appwrite.collection_id is required")
		}
	case BackendRedis:
		if s.Redis == nil {
			s.Redis = &RedisConfig{}
		}
		if s.Redis.Addr == "" {
			s.Redis.Addr = "127.0.0.1:6379"
		}
	case BackendSQLite:
		if s.SQLite == nil {
			s.SQLite = &SQLiteConfig{}
		}
		if s.SQLite.Path == "" {
			s.SQLite.Path = filepath.Join(c.App.DataDir, "trending.db")
		}
	case BackendPostgres:
		if s.Postgres == nil || s.Postgres.DSN == "" {
			return fmt.Errorf("store.postgres.dsn is required")
		}
	default:
		return fmt.Errorf("store.backend must be one of appwrite, redis, sqlite, postgres, memory")
	}
	return nil
}

// defaultBackend picks the only configured backend, falling back to SQLite.
func (c *Config) defaultBackend() string {
	switch {
	case c.Store.Appwrite != nil:
		return BackendAppwrite
	case c.Store.Redis != nil:
		return BackendRedis
	case c.Store.Postgres != nil:
		return BackendPostgres
	default:
		return BackendSQLite
	}
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", field)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing host", field)
	}
	return nil
}
