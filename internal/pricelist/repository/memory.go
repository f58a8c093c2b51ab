package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	lists map[string]*model.PriceList // by selling point
	saves int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{lists: map[string]*model.PriceList{}}
}

func (r *MemoryRepository) Create(_ context.Context, pl *model.PriceList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[pl.SellingPointID] = pl.Clone()
	r.saves++
	return nil
}

func (r *MemoryRepository) FindBySellingPoint(_ context.Context, sellingPointID string) (*model.PriceList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pl, ok := r.lists[sellingPointID]
	if !ok {
		return nil, nil
	}
	return pl.Clone(), nil
}

func (r *MemoryRepository) FindAll(_ context.Context) ([]model.PriceList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.PriceList, 0, len(r.lists))
	for _, pl := range r.lists {
		out = append(out, *pl.Clone())
	}
	slices.SortFunc(out, func(a, b model.PriceList) int {
		return cmp.Or(cmp.Compare(a.SellingPointName, b.SellingPointName), cmp.Compare(a.SellingPointID, b.SellingPointID))
	})
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, pl *model.PriceList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.lists[pl.SellingPointID]; ok && existing.ID == pl.ID {
		r.lists[pl.SellingPointID] = pl.Clone()
		r.saves++
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, sellingPointID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lists, sellingPointID)
	return nil
}

// Saves counts successful writes.
func (r *MemoryRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
