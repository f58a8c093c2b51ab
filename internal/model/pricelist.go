package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceListItem is a per selling point snapshot of a Good. Metadata follows the
// catalog through reconciliation, prices are owned by the selling point.
type PriceListItem struct {
	ID                      string          `json:"id"`
	OriginalGoodID          string          `json:"originalGoodId"`
	StockID                 *string         `json:"stock,omitempty"`
	ColorID                 string          `json:"color,omitempty"`
	FullName                string          `json:"fullName"`
	Code                    string          `json:"code"`
	Category                string          `json:"category"`
	Subcategory             Subcategory     `json:"subcategory"`
	BagsCategoryID          *string         `json:"bagsCategoryId,omitempty"`
	RemainingSubsubcategory string          `json:"remainingsubsubcategory,omitempty"`
	ManufacturerID          *string         `json:"manufacturer,omitempty"`
	Picture                 string          `json:"picture"`
	BagProduct              string          `json:"bagProduct,omitempty"`
	Price                   decimal.Decimal `json:"price"`
	DiscountPrice           decimal.Decimal `json:"discountPrice"`
	PriceExceptions         PriceExceptions `json:"priceExceptions"`
	CreatedAt               time.Time       `json:"createdAt"`
	UpdatedAt               time.Time       `json:"updatedAt"`
}

// CopyMetadata overwrites every non-price field from g.
func (it *PriceListItem) CopyMetadata(g *Good) {
	it.StockID = cloneString(g.StockID)
	it.ColorID = g.ColorID
	it.FullName = g.FullName
	it.Code = g.Code
	it.Category = g.Category
	it.Subcategory = g.Subcategory
	it.BagsCategoryID = cloneString(g.BagsCategoryID)
	it.RemainingSubsubcategory = g.RemainingSubsubcategory
	it.ManufacturerID = cloneString(g.ManufacturerID)
	it.Picture = g.Picture
	it.BagProduct = g.BagProduct
}

// CopyPrices overwrites price, discount and exceptions from g.
func (it *PriceListItem) CopyPrices(g *Good) {
	it.Price = g.Price
	it.DiscountPrice = g.DiscountPrice
	it.PriceExceptions = g.PriceExceptions.Clone()
}

func (it PriceListItem) Clone() PriceListItem {
	it.StockID = cloneString(it.StockID)
	it.BagsCategoryID = cloneString(it.BagsCategoryID)
	it.ManufacturerID = cloneString(it.ManufacturerID)
	it.PriceExceptions = it.PriceExceptions.Clone()
	return it
}

type PriceListItems []PriceListItem

func (p PriceListItems) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

func (p *PriceListItems) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("price list items: unsupported scan type %T", src)
	}
	return json.Unmarshal(data, p)
}

type PriceList struct {
	BaseModel
	SellingPointID   string         `db:"selling_point_id" json:"sellingPointId"`
	SellingPointName string         `db:"selling_point_name" json:"sellingPointName"`
	Items            PriceListItems `db:"items" json:"items"`
}

func (pl *PriceList) Clone() *PriceList {
	out := *pl
	if pl.Items != nil {
		out.Items = make(PriceListItems, len(pl.Items))
		for i, it := range pl.Items {
			out.Items[i] = it.Clone()
		}
	}
	return &out
}

// FindItem returns the index of the item with id, or -1.
func (pl *PriceList) FindItem(id string) int {
	for i := range pl.Items {
		if pl.Items[i].ID == id {
			return i
		}
	}
	return -1
}
