package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tetris_webapp/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "tetris:leaderboard:top:"
	// номер поколения списка, растет после каждой новой записи
	genKey = "tetris:leaderboard:gen"
)

// кэш верхушки таблицы рекордов в redis
type LeaderboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLeaderboardCache(rdb *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{rdb: rdb, ttl: ttl}
}

// NewRedisClient подключается и пингует redis
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func key(gen int64, limit int) string {
	return fmt.Sprintf("%s%d:%d", keyPrefix, gen, limit)
}

// Generation возвращает текущее поколение. Его читают до чтения хранилища,
// чтобы опоздавший Set попал в ключ, который уже никто не читает
func (c *LeaderboardCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get возвращает закэшированный список; ok=false если записи нет
func (c *LeaderboardCache) Get(ctx context.Context, gen int64, limit int) ([]domain.ScoreRecord, bool, error) {
	data, err := c.rdb.Get(ctx, key(gen, limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var scores []domain.ScoreRecord
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, false, fmt.Errorf("decode cached leaderboard: %w", err)
	}
	return scores, true, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, gen int64, limit int, scores []domain.ScoreRecord) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(gen, limit), data, c.ttl).Err()
}

// Invalidate начинает новое поколение после новой записи.
// старые ключи доживают свой TTL
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, genKey).Err()
}
