package handlers

import (
	"context"

	"tetris_webapp/internal/service"
)

// Handler содержит зависимости HTTP обработчиков
type Handler struct {
	Leaderboard *service.LeaderboardService
	// проверка хранилища для /healthz, nil - хранилище в памяти
	Ping func(ctx context.Context) error
}

func NewHandler(leaderboard *service.LeaderboardService, ping func(ctx context.Context) error) *Handler {
	return &Handler{
		Leaderboard: leaderboard,
		Ping:        ping,
	}
}
