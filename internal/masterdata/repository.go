package masterdata

import (
	"context"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

type Repository interface {
	Create(ctx context.Context, e *model.MasterEntity) error
	FindByID(ctx context.Context, id string) (*model.MasterEntity, error)
	FindByCode(ctx context.Context, kind model.MasterKind, code string) (*model.MasterEntity, error)
	FindAll(ctx context.Context, filters *dto.MasterFilters) ([]model.MasterEntity, error)
	Update(ctx context.Context, e *model.MasterEntity) error
	Delete(ctx context.Context, id string) error
}
