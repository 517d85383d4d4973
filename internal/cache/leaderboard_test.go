package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"tetris_webapp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "tetris:leaderboard:top:0:10", key(0, 10))
	assert.NotEqual(t, key(0, 10), key(0, 25))
	assert.NotEqual(t, key(0, 10), key(1, 10))
}

// нужен живой redis: TEST_REDIS_ADDR=localhost:6379
func newTestCache(t *testing.T) *LeaderboardCache {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	rdb, err := NewRedisClient(context.Background(), addr, "", 15)
	require.NoError(t, err)
	t.Cleanup(func() {
		rdb.FlushDB(context.Background())
		rdb.Close()
	})
	return NewLeaderboardCache(rdb, time.Minute)
}

func TestLeaderboardCache_Redis(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Zero(t, gen)

	_, ok, err := c.Get(ctx, gen, 10)
	require.NoError(t, err)
	assert.False(t, ok)

	scores := []domain.ScoreRecord{
		{ID: 2, Name: "bob", Score: 300, CreatedAt: time.Unix(1700000000, 0).UTC()},
		{ID: 1, Name: "ann", Score: 100, CreatedAt: time.Unix(1700000000, 0).UTC()},
	}
	require.NoError(t, c.Set(ctx, gen, 10, scores))
	require.NoError(t, c.Set(ctx, gen, 3, scores[:1]))

	got, ok, err := c.Get(ctx, gen, 10)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, scores, got)

	require.NoError(t, c.Invalidate(ctx))
	next, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)

	for _, limit := range []int{3, 10} {
		_, ok, err = c.Get(ctx, next, limit)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

// запись со старым поколением после Invalidate не видна новым читателям
func TestLeaderboardCache_LateSetIsInvisible(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	old, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))

	require.NoError(t, c.Set(ctx, old, 10, []domain.ScoreRecord{{ID: 1, Name: "stale", Score: 1}}))

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	_, ok, err := c.Get(ctx, gen, 10)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewRedisClient(ctx, "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
