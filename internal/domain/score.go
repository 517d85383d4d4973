package domain

import "time"

// запись таблицы рекордов, создается один раз после конца игры
type ScoreRecord struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Score     int64     `db:"score" json:"score"`
	Level     int       `db:"level" json:"level"`
	Lines     int       `db:"lines" json:"lines"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// тело POST /api/scores. score указателем, чтобы отличить 0 от отсутствия
type ScoreSubmission struct {
	Name  string `json:"name"`
	Score *int64 `json:"score"`
	Level int    `json:"level"`
	Lines int    `json:"lines"`
}

// Размер таблицы рекордов по умолчанию
const DefaultLeaderboardLimit = 10
