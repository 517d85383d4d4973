package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"tetris_webapp/internal/domain"
)

// рекорды в памяти процесса, когда DATABASE_URL не задан
type MemoryScoreRepository struct {
	mu     sync.RWMutex
	seq    int64
	scores []domain.ScoreRecord
	now    func() time.Time
}

func NewMemoryScoreRepository() *MemoryScoreRepository {
	return &MemoryScoreRepository{now: time.Now}
}

func (r *MemoryScoreRepository) Create(ctx context.Context, rec *domain.ScoreRecord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	rec.ID = r.seq
	rec.CreatedAt = r.now()
	r.scores = append(r.scores, *rec)
	return rec.ID, nil
}

func (r *MemoryScoreRepository) Top(ctx context.Context, limit int) ([]domain.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	sorted := make([]domain.ScoreRecord, len(r.scores))
	copy(sorted, r.scores)
	r.mu.RUnlock()

	// тот же порядок, что и в ScoreRepository.Top
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].ID < sorted[j].ID
	})

	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// количество записей
func (r *MemoryScoreRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scores)
}
