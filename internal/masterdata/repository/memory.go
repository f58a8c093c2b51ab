package repository

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

// MemoryRepository keeps master data in process. Used with STORAGE_DRIVER=memory and in tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	entities map[string]model.MasterEntity
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{entities: map[string]model.MasterEntity{}}
}

func (r *MemoryRepository) Create(_ context.Context, e *model.MasterEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entities[e.ID] = *e
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*model.MasterEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entities[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *MemoryRepository) FindByCode(_ context.Context, kind model.MasterKind, code string) (*model.MasterEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entities {
		if e.Kind == kind && e.Code == code {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) FindAll(_ context.Context, f *dto.MasterFilters) ([]model.MasterEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids map[string]struct{}
	if len(f.IDs) > 0 {
		ids = make(map[string]struct{}, len(f.IDs))
		for _, id := range f.IDs {
			ids[id] = struct{}{}
		}
	}
	search := strings.ToLower(f.Search)

	out := []model.MasterEntity{}
	for _, e := range r.entities {
		if f.Kind != "" && e.Kind != f.Kind {
			continue
		}
		if ids != nil {
			if _, ok := ids[e.ID]; !ok {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Code), search) &&
			!strings.Contains(strings.ToLower(e.Description), search) {
			continue
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b model.MasterEntity) int {
		return cmp.Or(cmp.Compare(a.Kind, b.Kind), cmp.Compare(a.Code, b.Code))
	})
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, e *model.MasterEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entities[e.ID]; ok {
		r.entities[e.ID] = *e
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entities, id)
	return nil
}
