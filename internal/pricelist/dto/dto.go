package dto

import (
	"github.com/shopspring/decimal"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/reconcile"
)

type CreatePriceListInput struct {
	SellingPointID string `json:"-"`
	ForceRecreate  bool   `json:"forceRecreate"`
}

type ClonePriceListInput struct {
	SellingPointID       string `json:"-"`
	SourceSellingPointID string `json:"sourceSellingPointId" validate:"required"`
	ForceRecreate        bool   `json:"forceRecreate"`
}

// UpdateItemPriceInput changes the prices of one item. Nil fields are kept.
type UpdateItemPriceInput struct {
	SellingPointID  string                 `json:"-"`
	ItemID          string                 `json:"-"`
	Price           *decimal.Decimal       `json:"price"`
	DiscountPrice   *decimal.Decimal       `json:"discountPrice"`
	PriceExceptions *model.PriceExceptions `json:"priceExceptions"`
}

// SyncInput is the request body of the sync endpoints. Missing flags take
// the defaults of model.DefaultSyncOptions.
type SyncInput struct {
	UpdateOutdated *bool    `json:"updateOutdated"`
	AddNew         *bool    `json:"addNew"`
	RemoveDeleted  *bool    `json:"removeDeleted"`
	UpdatePrices   *bool    `json:"updatePrices"`
	GoodIDs        []string `json:"goodIds"`
}

func (in *SyncInput) Options() model.SyncOptions {
	opts := model.DefaultSyncOptions()
	if in.UpdateOutdated != nil {
		opts.UpdateOutdated = *in.UpdateOutdated
	}
	if in.AddNew != nil {
		opts.AddNew = *in.AddNew
	}
	if in.RemoveDeleted != nil {
		opts.RemoveDeleted = *in.RemoveDeleted
	}
	if in.UpdatePrices != nil {
		opts.UpdatePrices = *in.UpdatePrices
	}
	opts.GoodIDs = in.GoodIDs
	return opts
}

type CompareResult struct {
	Changes reconcile.Changes `json:"changes"`
	Summary reconcile.Summary `json:"summary"`
}

type SyncResult struct {
	PriceList *model.PriceList `json:"priceList"`
	reconcile.Result
}

type SyncAllResult struct {
	UpdatedListsCount    int `json:"updatedListsCount"`
	TotalUpdatedProducts int `json:"totalUpdatedProducts"`
	TotalAddedProducts   int `json:"totalAddedProducts"`
	TotalRemovedProducts int `json:"totalRemovedProducts"`

	FailedLists []FailedList `json:"failedLists,omitempty"`
}

// FailedList is a price list a global sync could not reconcile, usually
// because another sync of it held the lock.
type FailedList struct {
	SellingPointID   string `json:"sellingPointId"`
	SellingPointName string `json:"sellingPointName"`
	Error            string `json:"error"`
}
