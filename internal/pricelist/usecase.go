package pricelist

import (
	"context"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/syncjob"
)

type UseCase interface {
	GetPriceList(ctx context.Context, sellingPointID string) (*model.PriceList, error)
	ListPriceLists(ctx context.Context) ([]model.PriceList, error)
	CreatePriceList(ctx context.Context, input *dto.CreatePriceListInput) (*model.PriceList, error)
	ClonePriceList(ctx context.Context, input *dto.ClonePriceListInput) (*model.PriceList, error)
	UpdateItemPrice(ctx context.Context, input *dto.UpdateItemPriceInput) (*model.PriceListItem, error)
	DeletePriceList(ctx context.Context, sellingPointID string) error

	// Reconciliation
	Compare(ctx context.Context, sellingPointID string) (*dto.CompareResult, error)
	Sync(ctx context.Context, sellingPointID string, opts model.SyncOptions) (*dto.SyncResult, error)
	SyncAll(ctx context.Context, opts model.SyncOptions) (*dto.SyncAllResult, error)

	syncjob.Runner
}
