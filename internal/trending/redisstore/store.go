// Package redisstore implements the trending store on a Redis sorted set.
//
// Counters live in the sorted set trending:terms (member = term, score = count);
// per-term metadata lives in the hash trending:term:{term}.
package redisstore

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/trending"
)

const (
	defaultPrefix = "trending"
)

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // key prefix, default "trending"
}

// Store is a trending store backed by Redis.
type Store struct {
	rdb    redis.UniversalClient
	prefix string
	logger *slog.Logger
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewWithClient(client, cfg.Prefix, logger), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(rdb redis.UniversalClient, prefix string, logger *slog.Logger) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{rdb: rdb, prefix: prefix, logger: logger}
}

func (s *Store) termsKey() string { return s.prefix + ":terms" }

func (s *Store) termKey(term string) string { return s.prefix + ":term:" + term }

// Record increments term's score; metadata is written only when absent, so
// the first recorded movie stays the representative one.
func (s *Store) Record(ctx context.Context, term string, movie core.Movie) error {
	entry := trending.NewEntry(uuid.NewString(), term, movie)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZIncrBy(ctx, s.termsKey(), 1, term)
		key := s.termKey(term)
		pipe.HSetNX(ctx, key, "id", entry.ID)
		pipe.HSetNX(ctx, key, "movie_id", entry.MovieID)
		pipe.HSetNX(ctx, key, "poster_url", entry.PosterURL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record term %q: %w", term, err)
	}
	return nil
}

// Trending returns the top entries by descending score.
func (s *Store) Trending(ctx context.Context, limit int) ([]core.TrendingEntry, error) {
	limit = trending.NormalizeLimit(limit)

	members, err := s.rdb.ZRevRangeWithScores(ctx, s.termsKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("query trending: %w", err)
	}
	if len(members) == 0 {
		return nil, nil
	}

	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(members))
	for i, m := range members {
		cmds[i] = pipe.HGetAll(ctx, s.termKey(fmt.Sprint(m.Member)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("load trending metadata: %w", err)
	}

	out := make([]core.TrendingEntry, 0, len(members))
	for i, m := range members {
		meta := cmds[i].Val()
		movieID, _ := strconv.Atoi(meta["movie_id"])
		out = append(out, core.TrendingEntry{
			ID:        meta["id"],
			Term:      fmt.Sprint(m.Member),
			Count:     int(m.Score),
			MovieID:   movieID,
			PosterURL: meta["poster_url"],
		})
	}
	return out, nil
}

// Name returns "redis".
func (s *Store) Name() string { return "redis" }

// Close closes the Redis client.
func (s *Store) Close() error {
	return s.rdb.Close()
}
