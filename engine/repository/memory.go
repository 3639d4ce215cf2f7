package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/config"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
)

const defaultMemoryCapacity = 100

// NewMemoryRepository keeps the most recent snapshots in process when no mongo is configured.
func NewMemoryRepository(cfg config.HistoryConfig) domain.Repository {
	capacity := defaultMemoryCapacity
	if cfg.Limit > capacity {
		capacity = cfg.Limit
	}
	return &memoryRepo{capacity: capacity}
}

type memoryRepo struct {
	mu        sync.RWMutex
	capacity  int
	snapshots []domain.SnapshotSummary
}

func (r *memoryRepo) InsertSnapshot(ctx context.Context, snapshot *domain.SnapshotSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, *snapshot)
	if over := len(r.snapshots) - r.capacity; over > 0 {
		r.snapshots = append(r.snapshots[:0:0], r.snapshots[over:]...)
	}
	return nil
}

func (r *memoryRepo) QuerySnapshots(ctx context.Context, opt *domain.QuerySnapshotOptions) error {
	r.mu.RLock()
	matched := make([]*domain.SnapshotSummary, 0, len(r.snapshots))
	// newest insert first so equal timestamps keep that order
	for i := len(r.snapshots) - 1; i >= 0; i-- {
		s := r.snapshots[i]
		if opt.Source != "" && s.Classification.Source != opt.Source {
			continue
		}
		matched = append(matched, &s)
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if opt.Limit > 0 && len(matched) > opt.Limit {
		matched = matched[:opt.Limit]
	}
	opt.Result = matched
	return nil
}
