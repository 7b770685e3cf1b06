// Package sqlstore implements the trending store on SQLite or PostgreSQL.
//
// Both dialects share one schema and one upsert statement; only the driver
// and the placeholder style differ.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/trending"
)

// Dialect selects the SQL driver.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Store persists trending terms in the trending_searches table.
type Store struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

// Open connects to the database and applies migrations. For SQLite dsn is a
// file path; for Postgres it is a lib/pq connection string.
func Open(ctx context.Context, dialect Dialect, dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dialect != SQLite && dialect != Postgres {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == SQLite {
		// Single writer; avoids SQLITE_BUSY between pooled connections.
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	} else {
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		db.SetMaxOpenConns(5)
	}

	s := &Store{db: db, dialect: dialect, logger: logger}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Debug("trending store opened", slog.String("dialect", string(dialect)))
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS trending_searches (
			id TEXT PRIMARY KEY,
			term TEXT NOT NULL UNIQUE,
			count INTEGER NOT NULL DEFAULT 1,
			movie_id INTEGER NOT NULL DEFAULT 0,
			poster_url TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trending_searches_count ON trending_searches(count)`,
	}
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// Record inserts term with count = 1 or increments the existing row.
func (s *Store) Record(ctx context.Context, term string, movie core.Movie) error {
	entry := trending.NewEntry(uuid.NewString(), term, movie)
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO trending_searches (id, term, count, movie_id, poster_url)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (term) DO UPDATE SET
			count = trending_searches.count + 1,
			updated_at = CURRENT_TIMESTAMP`),
		entry.ID, entry.Term, entry.Count, entry.MovieID, entry.PosterURL,
	)
	if err != nil {
		return fmt.Errorf("record term %q: %w", term, err)
	}
	return nil
}

// Trending returns the top entries by descending count.
func (s *Store) Trending(ctx context.Context, limit int) ([]core.TrendingEntry, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, term, count, movie_id, poster_url
		FROM trending_searches
		ORDER BY count DESC, term ASC
		LIMIT ?`), trending.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query trending: %w", err)
	}
	defer rows.Close()

	var out []core.TrendingEntry
	for rows.Next() {
		var e core.TrendingEntry
		if err := rows.Scan(&e.ID, &e.Term, &e.Count, &e.MovieID, &e.PosterURL); err != nil {
			return nil, fmt.Errorf("scan trending: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Name returns the dialect name.
func (s *Store) Name() string { return string(s.dialect) }

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for Postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
