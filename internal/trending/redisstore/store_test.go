package redisstore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimtrunov/MovieFinder/internal/core"
)

// newLiveStore connects to MOVIEFINDER_TEST_REDIS_ADDR under a unique prefix.
func newLiveStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("MOVIEFINDER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("MOVIEFINDER_TEST_REDIS_ADDR not set")
	}
	prefix := fmt.Sprintf("moviefinder-test-%d", time.Now().UnixNano())
	s, err := New(context.Background(), Config{Addr: addr, Prefix: prefix}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := s.rdb.Keys(ctx, prefix+":*").Result()
		if len(keys) > 0 {
			s.rdb.Del(ctx, keys...)
		}
		_ = s.Close()
	})
	return s
}

func TestKeys(t *testing.T) {
	s := NewWithClient(nil, "", nil)
	assert.Equal(t, "trending:terms", s.termsKey())
	assert.Equal(t, "trending:term:batman", s.termKey("batman"))
	assert.Equal(t, "redis", s.Name())
}

func TestRecordAndTrending(t *testing.T) {
	s := newLiveStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "batman", core.Movie{ID: 268, PosterPath: "/bat.jpg"}))
	require.NoError(t, s.Record(ctx, "batman", core.Movie{ID: 999}))
	require.NoError(t, s.Record(ctx, "dune", core.Movie{ID: 438631}))

	got, err := s.Trending(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "batman", got[0].Term)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, 268, got[0].MovieID)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/bat.jpg", got[0].PosterURL)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, 1, got[1].Count)
}

func TestTrending_Empty(t *testing.T) {
	s := newLiveStore(t)
	got, err := s.Trending(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTrending_Limit(t *testing.T) {
	s := newLiveStore(t)
	ctx := context.Background()
	for i := range 7 {
		require.NoError(t, s.Record(ctx, fmt.Sprintf("t%d", i), core.Movie{ID: i}))
	}
	got, err := s.Trending(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}
