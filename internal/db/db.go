package db

import (
	"context"
	"fmt"
	"time"

	"tetris_webapp/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

const maxAttempts = 3

// в тестах уменьшается
var retryInterval = 2 * time.Second

// Connect открывает пул и проверяет соединение. до maxAttempts попыток
// с паузой retryInterval между ними, база может подниматься вместе с сервисом
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		logger.Warn("database connect failed", "attempt", attempt, "error", err)
		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return nil, fmt.Errorf("connect to database: %w", lastErr)
}

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	score      BIGINT NOT NULL,
	level      INTEGER NOT NULL,
	lines      INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS scores_score_idx ON scores (score DESC);
`

// EnsureSchema создает таблицу рекордов, если ее нет
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
