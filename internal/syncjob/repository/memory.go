package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

type MemoryRepository struct {
	mu   sync.RWMutex
	jobs map[string]model.SyncJob
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{jobs: map[string]model.SyncJob{}}
}

func (r *MemoryRepository) Create(_ context.Context, job *model.SyncJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = *job
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, job *model.SyncJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; ok {
		r.jobs[job.ID] = *job
	}
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*model.SyncJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	return &job, nil
}

func (r *MemoryRepository) FindRecent(_ context.Context, limit int) ([]model.SyncJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.SyncJob, 0, len(r.jobs))
	for _, job := range r.jobs {
		out = append(out, job)
	}
	slices.SortFunc(out, func(a, b model.SyncJob) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
