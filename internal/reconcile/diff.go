// Package reconcile compares price lists with the goods catalog and applies
// the resulting changes.
package reconcile

import (
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

type OutdatedItem struct {
	Item    model.PriceListItem `json:"priceListItem"`
	Good    *model.Good         `json:"currentGood"`
	Changes []FieldChange       `json:"changes"`

	index int
}

type Changes struct {
	OutdatedItems []OutdatedItem        `json:"outdatedItems"`
	NewItems      []*model.Good         `json:"newItems"`
	RemovedItems  []model.PriceListItem `json:"removedItems"`
}

type Summary struct {
	OutdatedCount int `json:"outdatedCount"`
	NewCount      int `json:"newCount"`
	RemovedCount  int `json:"removedCount"`
	TotalChanges  int `json:"totalChanges"`
}

func (c Changes) Summary() Summary {
	s := Summary{
		OutdatedCount: len(c.OutdatedItems),
		NewCount:      len(c.NewItems),
		RemovedCount:  len(c.RemovedItems),
	}
	s.TotalChanges = s.OutdatedCount + s.NewCount + s.RemovedCount
	return s
}

// Diff classifies the items of list against the catalog. Items are keyed by
// their original good id; when a good appears twice in a list the first item
// is the one compared. Prices are only compared when includePricing is set.
func Diff(list *model.PriceList, cat *Catalog, includePricing bool) Changes {
	changes := Changes{
		OutdatedItems: []OutdatedItem{},
		NewItems:      []*model.Good{},
		RemovedItems:  []model.PriceListItem{},
	}

	listed := make(map[string]struct{}, len(list.Items))
	for i, item := range list.Items {
		if !cat.inScope(item.OriginalGoodID) {
			continue
		}
		if _, dup := listed[item.OriginalGoodID]; dup {
			continue
		}
		listed[item.OriginalGoodID] = struct{}{}

		good, ok := cat.Good(item.OriginalGoodID)
		if !ok {
			changes.RemovedItems = append(changes.RemovedItems, item)
			continue
		}
		if fc := compareItem(cat, &item, good, includePricing); len(fc) > 0 {
			changes.OutdatedItems = append(changes.OutdatedItems, OutdatedItem{
				Item:    item,
				Good:    good,
				Changes: fc,
				index:   i,
			})
		}
	}

	for _, g := range cat.Goods() {
		if _, ok := listed[g.ID]; !ok {
			changes.NewItems = append(changes.NewItems, g)
		}
	}
	return changes
}

func compareItem(cat *Catalog, item *model.PriceListItem, good *model.Good, includePricing bool) []FieldChange {
	var out []FieldChange
	add := func(field string, oldValue, newValue any) {
		out = append(out, FieldChange{Field: field, OldValue: oldValue, NewValue: newValue})
	}

	if item.FullName != good.FullName {
		add("fullName", item.FullName, good.FullName)
	}
	if item.ColorID != good.ColorID {
		if oldCode, newCode := cat.code(item.ColorID), cat.code(good.ColorID); oldCode != newCode {
			add("color", oldCode, newCode)
		}
	}
	if oldStock, newStock := model.Deref(item.StockID), model.Deref(good.StockID); oldStock != newStock {
		if oldCode, newCode := cat.code(oldStock), cat.code(newStock); oldCode != newCode {
			add("stock", oldCode, newCode)
		}
	}
	if item.Category != good.Category {
		add("category", item.Category, good.Category)
	}
	if oldM, newM := cat.description(model.Deref(item.ManufacturerID)), cat.description(model.Deref(good.ManufacturerID)); oldM != newM {
		add("manufacturer", oldM, newM)
	}

	// A subcategory missing on one side is a resolution gap, not a change.
	oldSub := cat.SubcategoryName(item.Category, item.Subcategory, item.BagsCategoryID)
	newSub := cat.SubcategoryName(good.Category, good.Subcategory, good.BagsCategoryID)
	if oldSub != "" && newSub != "" && oldSub != newSub {
		add("subcategory", oldSub, newSub)
	}

	if model.IsBagLike(good.Category) {
		if oldB, newB := model.Deref(item.BagsCategoryID), model.Deref(good.BagsCategoryID); oldB != newB {
			add("bagsCategoryId", oldB, newB)
		}
	}
	if item.Picture != good.Picture {
		add("picture", item.Picture, good.Picture)
	}
	if item.RemainingSubsubcategory != good.RemainingSubsubcategory {
		add("remainingsubsubcategory", item.RemainingSubsubcategory, good.RemainingSubsubcategory)
	}
	if item.BagProduct != good.BagProduct {
		add("bagProduct", item.BagProduct, good.BagProduct)
	}

	if includePricing {
		if !item.Price.Equal(good.Price) {
			add("price", item.Price, good.Price)
		}
		if !item.DiscountPrice.Equal(good.DiscountPrice) {
			add("discountPrice", item.DiscountPrice, good.DiscountPrice)
		}
		if !item.PriceExceptions.Equal(good.PriceExceptions) {
			add("priceExceptions", item.PriceExceptions, good.PriceExceptions)
		}
	}
	return out
}
