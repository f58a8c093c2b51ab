package dto

import (
	"github.com/shopspring/decimal"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

type GoodFilters struct {
	StockID                 string   `json:"stockId,omitempty"`
	ColorID                 string   `json:"colorId,omitempty"`
	Category                string   `json:"category,omitempty"`
	Subcategory             string   `json:"subcategory,omitempty"`
	RemainingSubsubcategory string   `json:"remainingsubsubcategory,omitempty"`
	BagProduct              string   `json:"bagProduct,omitempty"`
	Search                  string   `json:"search,omitempty"` // matches fullName or code
	IDs                     []string `json:"ids,omitempty"`
}

// GoodInput is the product card as submitted by the admin UI.
type GoodInput struct {
	Stock                   string                `json:"stock"`
	Color                   string                `json:"color" validate:"required"`
	FullName                string                `json:"fullName" validate:"max=255"`
	Code                    string                `json:"code" validate:"max=64"`
	Category                string                `json:"category" validate:"required"`
	Subcategory             string                `json:"subcategory"`
	BagsCategoryID          string                `json:"bagsCategoryId"`
	RemainingSubsubcategory string                `json:"remainingsubsubcategory"`
	Manufacturer            string                `json:"manufacturer"`
	BagProduct              string                `json:"bagProduct"`
	BagID                   string                `json:"bagId"`
	Sex                     string                `json:"sex"`
	Price                   decimal.Decimal       `json:"price"`
	DiscountPrice           decimal.Decimal       `json:"discount_price"`
	PriceExceptions         model.PriceExceptions `json:"priceExceptions"`
	PriceKarpacz            decimal.Decimal       `json:"priceKarpacz"`
	DiscountPriceKarpacz    decimal.Decimal       `json:"discount_priceKarpacz"`
	PriceExceptionsKarpacz  model.PriceExceptions `json:"priceExceptionsKarpacz"`
	Picture                 string                `json:"picture"`
	SellingPoint            string                `json:"sellingPoint"`
	Barcode                 string                `json:"barcode"`
	IsSelectedForPrint      bool                  `json:"isSelectedForPrint"`
	RowBackgroundColor      string                `json:"rowBackgroundColor"`
}

type CreateGoodInput struct {
	GoodInput
	// SeedPrices adds the good to every price list with its own prices.
	SeedPrices bool `json:"seedPrices"`
}

type UpdateGoodInput struct {
	ID string `json:"-"`
	GoodInput
	// PropagatePrices forces the good's prices into every price list.
	PropagatePrices bool `json:"propagatePrices"`
}
