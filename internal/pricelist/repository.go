package pricelist

import (
	"context"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

type Repository interface {
	Create(ctx context.Context, list *model.PriceList) error
	FindBySellingPoint(ctx context.Context, sellingPointID string) (*model.PriceList, error)
	FindAll(ctx context.Context) ([]model.PriceList, error)
	// Update replaces the name and items of the stored list.
	Update(ctx context.Context, list *model.PriceList) error
	Delete(ctx context.Context, sellingPointID string) error
}
