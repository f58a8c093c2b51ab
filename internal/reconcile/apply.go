package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

type Result struct {
	UpdatedCount int `json:"updatedCount"`
	AddedCount   int `json:"addedCount"`
	RemovedCount int `json:"removedCount"`
}

func (r Result) Total() int {
	return r.UpdatedCount + r.AddedCount + r.RemovedCount
}

func (r Result) Changed() bool {
	return r.Total() > 0
}

// Apply reconciles list in place and reports what it changed.
//
// Outdated items always take the good's metadata and take its prices only
// with UpdatePrices. New goods are appended unpriced unless UpdatePrices is
// set. Items of deleted goods are dropped only with RemoveDeleted.
func Apply(list *model.PriceList, cat *Catalog, opts model.SyncOptions, now time.Time, newID func() string) Result {
	cat = cat.Restrict(opts.GoodIDs)
	changes := Diff(list, cat, opts.UpdatePrices)
	var res Result

	if opts.UpdateOutdated {
		for _, o := range changes.OutdatedItems {
			item := &list.Items[o.index]
			item.CopyMetadata(o.Good)
			if opts.UpdatePrices {
				item.CopyPrices(o.Good)
			}
			item.UpdatedAt = now
			res.UpdatedCount++
		}
	}

	if opts.RemoveDeleted && len(changes.RemovedItems) > 0 {
		removed := make(map[string]struct{}, len(changes.RemovedItems))
		for _, it := range changes.RemovedItems {
			removed[it.OriginalGoodID] = struct{}{}
		}
		kept := list.Items[:0]
		for _, it := range list.Items {
			if _, ok := removed[it.OriginalGoodID]; ok {
				res.RemovedCount++
				continue
			}
			kept = append(kept, it)
		}
		list.Items = kept
	}

	if opts.AddNew {
		for _, g := range changes.NewItems {
			list.Items = append(list.Items, NewItem(g, opts.UpdatePrices, now, newID()))
			res.AddedCount++
		}
	}

	if res.Changed() {
		list.UpdatedAt = now
	}
	return res
}

// NewItem snapshots g into a price list item. Without withPrices the item
// starts at zero.
func NewItem(g *model.Good, withPrices bool, now time.Time, id string) model.PriceListItem {
	item := model.PriceListItem{
		ID:              id,
		OriginalGoodID:  g.ID,
		Price:           decimal.Zero,
		DiscountPrice:   decimal.Zero,
		PriceExceptions: model.PriceExceptions{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	item.CopyMetadata(g)
	if withPrices {
		item.CopyPrices(g)
	}
	return item
}
