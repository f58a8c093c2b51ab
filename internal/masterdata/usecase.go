package masterdata

import (
	"context"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

type UseCase interface {
	Create(ctx context.Context, input *dto.CreateMasterInput) (*model.MasterEntity, error)
	Get(ctx context.Context, kind model.MasterKind, id string) (*model.MasterEntity, error)
	List(ctx context.Context, filters *dto.MasterFilters) ([]model.MasterEntity, error)
	Update(ctx context.Context, input *dto.UpdateMasterInput) (*model.MasterEntity, error)
	Delete(ctx context.Context, kind model.MasterKind, id string) error
}

// NameSynchronizer rewrites goods names after a master entity was renamed.
type NameSynchronizer interface {
	SyncProductNames(ctx context.Context, ev *model.RenameEvent) (*model.RenameResult, error)
}
