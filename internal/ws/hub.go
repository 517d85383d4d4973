package ws

import (
	"context"
	"sync"
	"time"

	"tetris_webapp/internal/domain"
	"tetris_webapp/internal/logger"
	"tetris_webapp/internal/metrics"
)

// куда отправляются результаты законченных партий
type ScoreSubmitter interface {
	Submit(ctx context.Context, sub domain.ScoreSubmission) (int64, error)
}

// Hub держит все открытые игровые сессии
type Hub struct {
	clients map[string]*Client
	mu      sync.RWMutex

	Leaderboard   ScoreSubmitter
	FrameInterval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(leaderboard ScoreSubmitter, frameInterval time.Duration) *Hub {
	if frameInterval <= 0 {
		frameInterval = 16 * time.Millisecond
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:       make(map[string]*Client),
		Leaderboard:   leaderboard,
		FrameInterval: frameInterval,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// контекст, который живет до Shutdown
func (h *Hub) Context() context.Context {
	return h.ctx
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	n := len(h.clients)
	h.mu.Unlock()

	metrics.ActivePlaySessions.Inc()
	logger.Debug("play session registered", "session", c.ID, "sessions", n)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c.ID]
	delete(h.clients, c.ID)
	h.mu.Unlock()

	if ok {
		metrics.ActivePlaySessions.Dec()
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown останавливает часы всех сессий и закрывает соединения
func (h *Hub) Shutdown() {
	h.cancel()
	logger.Info("play hub stopped", "sessions", h.Count())
}
