package goods

import (
	"context"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

type UseCase interface {
	CreateGood(ctx context.Context, input *dto.CreateGoodInput) (*model.Good, error)
	GetGood(ctx context.Context, id string) (*model.Good, error)
	ListGoods(ctx context.Context, filters *dto.GoodFilters) ([]model.Good, error)
	SearchGoods(ctx context.Context, query string, limit int) ([]model.Good, int, error)
	UpdateGood(ctx context.Context, input *dto.UpdateGoodInput) (*model.Good, error)
	DeleteGood(ctx context.Context, id string) error

	// SyncProductNames rewrites the names of goods that reference a renamed
	// master entity and schedules the price list follow-up.
	SyncProductNames(ctx context.Context, ev *model.RenameEvent) (*model.RenameResult, error)
}
