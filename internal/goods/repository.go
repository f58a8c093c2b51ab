package goods

import (
	"context"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

type Repository interface {
	Create(ctx context.Context, good *model.Good) error
	FindByID(ctx context.Context, id string) (*model.Good, error)
	FindAll(ctx context.Context, filters *dto.GoodFilters) ([]model.Good, error)
	Update(ctx context.Context, good *model.Good) error
	Delete(ctx context.Context, id string) error

	// Check fullName/code uniqueness
	IsFullNameUnique(ctx context.Context, fullName, excludeID string) (bool, error)
	IsCodeUnique(ctx context.Context, code, excludeID string) (bool, error)
}
