package model

import "github.com/shopspring/decimal"

// PlaceholderStock is the stock description meaning "not chosen".
const PlaceholderStock = "NIEOKREŚLONY"

type Good struct {
	BaseModel
	StockID                 *string         `db:"stock_id" json:"stock,omitempty"`
	ColorID                 string          `db:"color_id" json:"color"`
	FullName                string          `db:"full_name" json:"fullName"`
	Code                    string          `db:"code" json:"code"`
	Category                string          `db:"category" json:"category"`
	Subcategory             Subcategory     `db:"subcategory" json:"subcategory"`
	BagsCategoryID          *string         `db:"bags_category_id" json:"bagsCategoryId,omitempty"`
	RemainingSubsubcategory string          `db:"remaining_subsubcategory" json:"remainingsubsubcategory"`
	ManufacturerID          *string         `db:"manufacturer_id" json:"manufacturer,omitempty"`
	BagProduct              string          `db:"bag_product" json:"bagProduct"`
	BagID                   string          `db:"bag_id" json:"bagId"`
	Sex                     string          `db:"sex" json:"sex"`
	Price                   decimal.Decimal `db:"price" json:"price"`
	DiscountPrice           decimal.Decimal `db:"discount_price" json:"discount_price"`
	PriceExceptions         PriceExceptions `db:"price_exceptions" json:"priceExceptions"`
	PriceKarpacz            decimal.Decimal `db:"price_karpacz" json:"priceKarpacz"`
	DiscountPriceKarpacz    decimal.Decimal `db:"discount_price_karpacz" json:"discount_priceKarpacz"`
	PriceExceptionsKarpacz  PriceExceptions `db:"price_exceptions_karpacz" json:"priceExceptionsKarpacz"`
	Picture                 string          `db:"picture" json:"picture"`
	SellingPoint            string          `db:"selling_point" json:"sellingPoint"`
	Barcode                 string          `db:"barcode" json:"barcode"`
	IsSelectedForPrint      bool            `db:"is_selected_for_print" json:"isSelectedForPrint"`
	RowBackgroundColor      string          `db:"row_background_color" json:"rowBackgroundColor"`
}

func (g *Good) Clone() *Good {
	out := *g
	out.StockID = cloneString(g.StockID)
	out.BagsCategoryID = cloneString(g.BagsCategoryID)
	out.ManufacturerID = cloneString(g.ManufacturerID)
	out.PriceExceptions = g.PriceExceptions.Clone()
	out.PriceExceptionsKarpacz = g.PriceExceptionsKarpacz.Clone()
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Deref returns the pointed value or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns nil for "" so optional references stay NULL.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
