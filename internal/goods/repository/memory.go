package repository

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	goods map[string]*model.Good
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{goods: map[string]*model.Good{}}
}

func (r *MemoryRepository) Create(_ context.Context, g *model.Good) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goods[g.ID] = g.Clone()
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*model.Good, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.goods[id]
	if !ok {
		return nil, nil
	}
	return g.Clone(), nil
}

func (r *MemoryRepository) FindAll(_ context.Context, f *dto.GoodFilters) ([]model.Good, error) {
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

	out := []model.Good{}
	for _, g := range r.goods {
		switch {
		case f.StockID != "" && model.Deref(g.StockID) != f.StockID,
			f.ColorID != "" && g.ColorID != f.ColorID,
			f.Category != "" && g.Category != f.Category,
			f.Subcategory != "" && g.Subcategory.String() != f.Subcategory,
			f.RemainingSubsubcategory != "" && g.RemainingSubsubcategory != f.RemainingSubsubcategory,
			f.BagProduct != "" && g.BagProduct != f.BagProduct:
			continue
		}
		if ids != nil {
			if _, ok := ids[g.ID]; !ok {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(g.FullName), search) &&
			!strings.Contains(strings.ToLower(g.Code), search) {
			continue
		}
		out = append(out, *g.Clone())
	}
	slices.SortFunc(out, func(a, b model.Good) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, g *model.Good) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goods[g.ID]; ok {
		r.goods[g.ID] = g.Clone()
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.goods, id)
	return nil
}

func (r *MemoryRepository) IsFullNameUnique(_ context.Context, fullName, excludeID string) (bool, error) {
	return r.isUnique(func(g *model.Good) bool { return g.FullName == fullName }, excludeID), nil
}

func (r *MemoryRepository) IsCodeUnique(_ context.Context, code, excludeID string) (bool, error) {
	return r.isUnique(func(g *model.Good) bool { return g.Code == code }, excludeID), nil
}

func (r *MemoryRepository) isUnique(match func(*model.Good) bool, excludeID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, g := range r.goods {
		if id != excludeID && match(g) {
			return false
		}
	}
	return true
}
