package memory

import (
	"context"
	"sort"
	"sync"

	"Conquest/internal/room/entity"
)

// MatchRepo 进程内归档，默认驱动，也用于测试。
type MatchRepo struct {
	mu      sync.RWMutex
	records map[int64]*entity.MatchRecord
}

func NewMatchRepo() *MatchRepo {
	return &MatchRepo{records: make(map[int64]*entity.MatchRecord)}
}

func (r *MatchRepo) SaveMatch(_ context.Context, rec *entity.MatchRecord) error {
	if rec == nil {
		return nil
	}
	cp := *rec
	cp.Standings = append([]entity.Standing(nil), rec.Standings...)
	r.mu.Lock()
	r.records[rec.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *MatchRepo) ListRecent(_ context.Context, limit int) ([]*entity.MatchRecord, error) {
	r.mu.RLock()
	out := make([]*entity.MatchRecord, 0, len(r.records))
	for _, rec := range r.records {
		cp := *rec
		out = append(out, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].FinishedAt.Equal(out[j].FinishedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].FinishedAt.After(out[j].FinishedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MatchRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
