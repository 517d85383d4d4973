package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"tetris_webapp/internal/config"
	"tetris_webapp/internal/domain"
	"tetris_webapp/internal/logger"
	"tetris_webapp/internal/metrics"
	"tetris_webapp/internal/repository"
)

var (
	ErrNameRequired  = errors.New("name is required")
	ErrScoreRequired = errors.New("score is required")
	ErrNameTooLong   = errors.New("name is too long")
	ErrInvalidScore  = errors.New("score, level and lines must not be negative")
)

// кэш верхушки таблицы, реализация - cache.LeaderboardCache.
// записи привязаны к поколению, Invalidate начинает новое
type TopCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64, limit int) ([]domain.ScoreRecord, bool, error)
	Set(ctx context.Context, gen int64, limit int, scores []domain.ScoreRecord) error
	Invalidate(ctx context.Context) error
}

// таблица рекордов: проверка отправок, запись, чтение топа
type LeaderboardService struct {
	store      repository.ScoreStore
	cache      TopCache
	limit      int
	nameMaxLen int
}

// cache может быть nil - тогда каждый запрос идет в хранилище
func NewLeaderboardService(store repository.ScoreStore, cache TopCache, cfg config.LeaderboardConfig) *LeaderboardService {
	limit := cfg.Limit
	if limit <= 0 {
		limit = domain.DefaultLeaderboardLimit
	}
	return &LeaderboardService{
		store:      store,
		cache:      cache,
		limit:      limit,
		nameMaxLen: cfg.NameMaxLength,
	}
}

func (s *LeaderboardService) Limit() int { return s.limit }

// проверяет отправку и собирает запись. ничего не пишет
func (s *LeaderboardService) validate(sub domain.ScoreSubmission) (*domain.ScoreRecord, error) {
	name := strings.TrimSpace(sub.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if sub.Score == nil {
		return nil, ErrScoreRequired
	}
	if s.nameMaxLen > 0 && utf8.RuneCountInString(name) > s.nameMaxLen {
		return nil, ErrNameTooLong
	}
	if *sub.Score < 0 || sub.Level < 0 || sub.Lines < 0 {
		return nil, ErrInvalidScore
	}

	return &domain.ScoreRecord{
		Name:  name,
		Score: *sub.Score,
		Level: sub.Level,
		Lines: sub.Lines,
	}, nil
}

// Submit сохраняет результат игры и возвращает id записи
func (s *LeaderboardService) Submit(ctx context.Context, sub domain.ScoreSubmission) (int64, error) {
	rec, err := s.validate(sub)
	if err != nil {
		metrics.ScoreSubmissions.WithLabelValues(metrics.SubmissionRejected).Inc()
		return 0, err
	}

	id, err := s.store.Create(ctx, rec)
	if err != nil {
		metrics.ScoreSubmissions.WithLabelValues(metrics.SubmissionFailed).Inc()
		return 0, fmt.Errorf("save score: %w", err)
	}

	metrics.ScoreSubmissions.WithLabelValues(metrics.SubmissionAccepted).Inc()
	metrics.FinalScore.Observe(float64(rec.Score))

	// запись уже есть в хранилище, ошибка кэша не ошибка запроса
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.Warn("leaderboard cache invalidate failed", "error", err)
		}
	}

	logger.Info("score submitted", "id", id, "name", rec.Name, "score", rec.Score)
	return id, nil
}

// Top возвращает лучшие результаты, сначала пробует кэш
func (s *LeaderboardService) Top(ctx context.Context) ([]domain.ScoreRecord, error) {
	// поколение читается до хранилища: если между чтением и Set пришла
	// новая запись, Set уйдет в устаревший ключ
	cached := s.cache != nil
	var gen int64
	if cached {
		var err error
		gen, err = s.cache.Generation(ctx)
		if err != nil {
			logger.Warn("leaderboard cache generation failed", "error", err)
			cached = false
		}
	}

	if cached {
		scores, ok, err := s.cache.Get(ctx, gen, s.limit)
		if err != nil {
			logger.Warn("leaderboard cache read failed", "error", err)
		} else if ok {
			return scores, nil
		}
	}

	scores, err := s.store.Top(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("load top scores: %w", err)
	}

	if cached {
		if err := s.cache.Set(ctx, gen, s.limit, scores); err != nil {
			logger.Warn("leaderboard cache write failed", "error", err)
		}
	}
	return scores, nil
}
