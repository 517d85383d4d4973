package repository

import (
	"context"
	"fmt"

	"tetris_webapp/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	scoresTable  = "scores"
	colID        = "id"
	colName      = "name"
	colScore     = "score"
	colLevel     = "level"
	colLines     = "lines"
	colCreatedAt = "created_at"
)

// хранилище таблицы рекордов
type ScoreStore interface {
	Create(ctx context.Context, rec *domain.ScoreRecord) (int64, error)
	Top(ctx context.Context, limit int) ([]domain.ScoreRecord, error)
}

// отвечает за рекорды в postgres
type ScoreRepository struct {
	db *pgxpool.Pool
}

func NewScoreRepository(db *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// сохраняет запись и возвращает ее id, created_at ставит база
func (r *ScoreRepository) Create(ctx context.Context, rec *domain.ScoreRecord) (int64, error) {
	sqlStr, args, err := insertScoreQuery(rec).ToSql()
	if err != nil {
		return 0, err
	}

	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return 0, fmt.Errorf("insert score: %w", err)
	}
	return rec.ID, nil
}

// лучшие результаты по убыванию очков, при равенстве раньше записанный выше
func (r *ScoreRepository) Top(ctx context.Context, limit int) ([]domain.ScoreRecord, error) {
	sqlStr, args, err := topScoresQuery(limit).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("select top scores: %w", err)
	}
	defer rows.Close()

	return scanScores(rows)
}

func insertScoreQuery(rec *domain.ScoreRecord) sq.InsertBuilder {
	return sq.Insert(scoresTable).
		Columns(colName, colScore, colLevel, colLines).
		Values(rec.Name, rec.Score, rec.Level, rec.Lines).
		Suffix("RETURNING " + colID + ", " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)
}

func topScoresQuery(limit int) sq.SelectBuilder {
	return sq.Select(colID, colName, colScore, colLevel, colLines, colCreatedAt).
		From(scoresTable).
		OrderBy(colScore+" DESC", colID+" ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)
}

func scanScores(rows pgx.Rows) ([]domain.ScoreRecord, error) {
	out := make([]domain.ScoreRecord, 0)
	for rows.Next() {
		var rec domain.ScoreRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Score, &rec.Level, &rec.Lines, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
