package reconcile_test

import (
	"fmt"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/shopspring/decimal"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/reconcile"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sequence() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

func masters() []model.MasterEntity {
	return []model.MasterEntity{
		{BaseModel: model.BaseModel{ID: "s1"}, Kind: model.KindStock, Code: "S1", Description: "Adela"},
		{BaseModel: model.BaseModel{ID: "s2"}, Kind: model.KindStock, Code: "S2", Description: "Beata"},
		{BaseModel: model.BaseModel{ID: "c1"}, Kind: model.KindColor, Code: "C1", Description: "KAKAO"},
		{BaseModel: model.BaseModel{ID: "c2"}, Kind: model.KindColor, Code: "C2", Description: "CZARNY"},
		{BaseModel: model.BaseModel{ID: "sub1"}, Kind: model.KindSubcategory, Code: "K1", Description: "Kurtka skórzana"},
		{BaseModel: model.BaseModel{ID: "sub2"}, Kind: model.KindSubcategory, Code: "K2", Description: "Kożuch"},
		{BaseModel: model.BaseModel{ID: "bag1"}, Kind: model.KindBagsCategory, Code: "B1", Description: "Listonoszki"},
		{BaseModel: model.BaseModel{ID: "bag2"}, Kind: model.KindBagsCategory, Code: "B2", Description: "Kuferki"},
	}
}

func jacket(id, stockID, colorID, name string, price int64) model.Good {
	stock := stockID
	return model.Good{
		BaseModel:     model.BaseModel{ID: id},
		StockID:       &stock,
		ColorID:       colorID,
		FullName:      name,
		Code:          "code-" + id,
		Category:      model.CategoryJackets,
		Subcategory:   model.SubcategoryRef("sub1"),
		Price:         decimal.NewFromInt(price),
		DiscountPrice: decimal.Zero,
	}
}

func pricedItem(g model.Good, price int64) model.PriceListItem {
	item := reconcile.NewItem(&g, false, now, "item-"+g.ID)
	item.Price = decimal.NewFromInt(price)
	return item
}

func fields(changes []reconcile.FieldChange) []string {
	out := make([]string, len(changes))
	for i, fc := range changes {
		out[i] = fc.Field
	}
	return out
}

func TestDiffClassifiesItems(t *testing.T) {
	c := qt.New(t)

	adela := jacket("g1", "s1", "c1", "Adela KAKAO", 100)
	beata := jacket("g2", "s2", "c1", "Beata KAKAO", 200)
	list := &model.PriceList{Items: model.PriceListItems{
		pricedItem(adela, 120),
		pricedItem(jacket("gone", "s1", "c2", "Adela CZARNY", 90), 90),
	}}

	adela.FullName = "Adela CZEKOLADA"
	cat := reconcile.NewCatalog([]model.Good{adela, beata}, masters())

	changes := reconcile.Diff(list, cat, false)
	c.Assert(changes.OutdatedItems, qt.HasLen, 1)
	c.Assert(changes.OutdatedItems[0].Good.ID, qt.Equals, "g1")
	c.Assert(fields(changes.OutdatedItems[0].Changes), qt.DeepEquals, []string{"fullName"})
	c.Assert(changes.OutdatedItems[0].Changes[0].OldValue, qt.Equals, "Adela KAKAO")
	c.Assert(changes.NewItems, qt.HasLen, 1)
	c.Assert(changes.NewItems[0].ID, qt.Equals, "g2")
	c.Assert(changes.RemovedItems, qt.HasLen, 1)
	c.Assert(changes.RemovedItems[0].OriginalGoodID, qt.Equals, "gone")
	c.Assert(changes.Summary(), qt.Equals, reconcile.Summary{OutdatedCount: 1, NewCount: 1, RemovedCount: 1, TotalChanges: 3})
}

func TestDiffPricingOnlyWhenRequested(t *testing.T) {
	c := qt.New(t)

	g := jacket("g1", "s1", "c1", "Adela KAKAO", 100)
	list := &model.PriceList{Items: model.PriceListItems{pricedItem(g, 120)}}
	cat := reconcile.NewCatalog([]model.Good{g}, masters())

	c.Assert(reconcile.Diff(list, cat, false).OutdatedItems, qt.HasLen, 0)

	withPrices := reconcile.Diff(list, cat, true)
	c.Assert(withPrices.OutdatedItems, qt.HasLen, 1)
	c.Assert(fields(withPrices.OutdatedItems[0].Changes), qt.DeepEquals, []string{"price"})
}

func TestDiffComparesReferencesByCodeAndDescription(t *testing.T) {
	c := qt.New(t)

	g := jacket("g1", "s1", "c1", "Adela KAKAO", 100)
	item := pricedItem(g, 100)
	g.ColorID = "c2"
	g.Subcategory = model.SubcategoryRef("sub2")
	list := &model.PriceList{Items: model.PriceListItems{item}}
	cat := reconcile.NewCatalog([]model.Good{g}, masters())

	changes := reconcile.Diff(list, cat, false)
	c.Assert(changes.OutdatedItems, qt.HasLen, 1)
	got := changes.OutdatedItems[0].Changes
	c.Assert(fields(got), qt.DeepEquals, []string{"color", "subcategory"})
	c.Assert(got[0].OldValue, qt.Equals, "C1")
	c.Assert(got[0].NewValue, qt.Equals, "C2")
	c.Assert(got[1].NewValue, qt.Equals, "Kożuch")
}

func TestDiffIgnoresOneSidedSubcategory(t *testing.T) {
	c := qt.New(t)

	g := jacket("g1", "s1", "c1", "Adela KAKAO", 100)
	item := pricedItem(g, 100)
	item.Subcategory = model.Subcategory{}
	list := &model.PriceList{Items: model.PriceListItems{item}}

	changes := reconcile.Diff(list, reconcile.NewCatalog([]model.Good{g}, masters()), false)
	c.Assert(changes.OutdatedItems, qt.HasLen, 0)

	item.Subcategory = model.SubcategoryRef("unknown")
	list.Items[0] = item
	changes = reconcile.Diff(list, reconcile.NewCatalog([]model.Good{g}, masters()), false)
	c.Assert(changes.OutdatedItems, qt.HasLen, 0)
}

func TestDiffBagsCategory(t *testing.T) {
	c := qt.New(t)

	bag := model.Good{
		BaseModel:      model.BaseModel{ID: "b1"},
		ColorID:        "c1",
		FullName:       "T.100 KAKAO",
		Category:       model.CategoryBags,
		BagsCategoryID: model.StringPtr("bag1"),
		BagProduct:     "T.100",
		Price:          decimal.NewFromInt(50),
	}
	item := pricedItem(bag, 50)
	bag.BagsCategoryID = model.StringPtr("bag2")
	list := &model.PriceList{Items: model.PriceListItems{item}}

	changes := reconcile.Diff(list, reconcile.NewCatalog([]model.Good{bag}, masters()), false)
	c.Assert(changes.OutdatedItems, qt.HasLen, 1)
	c.Assert(fields(changes.OutdatedItems[0].Changes), qt.DeepEquals, []string{"subcategory", "bagsCategoryId"})
	c.Assert(changes.OutdatedItems[0].Changes[0].NewValue, qt.Equals, "Kuferki")
}

func TestDiffStaticSubcategory(t *testing.T) {
	c := qt.New(t)

	belt := model.Good{
		BaseModel:               model.BaseModel{ID: "p1"},
		ColorID:                 "c2",
		FullName:                "Pasek męski CZARNY",
		Category:                model.CategoryRemaining,
		Subcategory:             model.StaticSubcategory(model.SubcategoryBelts),
		RemainingSubsubcategory: "Pasek męski",
		BagProduct:              "P.001",
	}
	item := pricedItem(belt, 80)
	belt.Subcategory = model.StaticSubcategory(model.SubcategoryGloves)
	belt.RemainingSubsubcategory = "Rękawiczki damskie"

	list := &model.PriceList{Items: model.PriceListItems{item}}
	changes := reconcile.Diff(list, reconcile.NewCatalog([]model.Good{belt}, masters()), false)
	c.Assert(changes.OutdatedItems, qt.HasLen, 1)
	got := changes.OutdatedItems[0].Changes
	c.Assert(fields(got), qt.DeepEquals, []string{"subcategory", "remainingsubsubcategory"})
	c.Assert(got[0].OldValue, qt.Equals, "Paski")
	c.Assert(got[0].NewValue, qt.Equals, "Rękawiczki")
}

func TestApplyKeepsPricesWithoutUpdatePrices(t *testing.T) {
	c := qt.New(t)

	g := jacket("g1", "s1", "c1", "Adela KAKAO", 100)
	list := &model.PriceList{Items: model.PriceListItems{pricedItem(g, 120)}}
	g.FullName = "Adela CZEKOLADA"
	cat := reconcile.NewCatalog([]model.Good{g}, masters())

	res := reconcile.Apply(list, cat, model.DefaultSyncOptions(), now, sequence())
	c.Assert(res, qt.Equals, reconcile.Result{UpdatedCount: 1})
	c.Assert(list.Items[0].FullName, qt.Equals, "Adela CZEKOLADA")
	c.Assert(list.Items[0].Price.String(), qt.Equals, "120")
	c.Assert(list.UpdatedAt, qt.Equals, now)
}

func TestApplyPropagatesPrices(t *testing.T) {
	c := qt.New(t)

	g := jacket("g1", "s1", "c1", "Adela KAKAO", 100)
	g.DiscountPrice = decimal.NewFromInt(90)
	g.PriceExceptions = model.PriceExceptions{{Size: "XL", Value: decimal.NewFromInt(110)}}
	list := &model.PriceList{Items: model.PriceListItems{pricedItem(g, 120)}}
	cat := reconcile.NewCatalog([]model.Good{g}, masters())

	opts := model.DefaultSyncOptions()
	opts.UpdatePrices = true
	res := reconcile.Apply(list, cat, opts, now, sequence())
	c.Assert(res.UpdatedCount, qt.Equals, 1)
	c.Assert(list.Items[0].Price.Equal(g.Price), qt.IsTrue)
	c.Assert(list.Items[0].DiscountPrice.Equal(g.DiscountPrice), qt.IsTrue)
	c.Assert(list.Items[0].PriceExceptions.Equal(g.PriceExceptions), qt.IsTrue)
}

func TestApplyIsIdempotent(t *testing.T) {
	c := qt.New(t)

	adela := jacket("g1", "s1", "c1", "Adela KAKAO", 100)
	beata := jacket("g2", "s2", "c1", "Beata KAKAO", 200)
	list := &model.PriceList{Items: model.PriceListItems{
		pricedItem(adela, 120),
		pricedItem(jacket("gone", "s1", "c2", "Adela CZARNY", 90), 90),
	}}
	adela.FullName = "Adela CZEKOLADA"
	cat := reconcile.NewCatalog([]model.Good{adela, beata}, masters())

	for _, updatePrices := range []bool{false, true} {
		c.Run(fmt.Sprintf("updatePrices=%v", updatePrices), func(c *qt.C) {
			l := list.Clone()
			opts := model.SyncOptions{UpdateOutdated: true, AddNew: true, RemoveDeleted: true, UpdatePrices: updatePrices}
			first := reconcile.Apply(l, cat, opts, now, sequence())
			c.Assert(first.Changed(), qt.IsTrue)

			second := reconcile.Apply(l, cat, opts, now.Add(time.Hour), sequence())
			c.Assert(second, qt.Equals, reconcile.Result{})
			c.Assert(l.UpdatedAt, qt.Equals, now)
			c.Assert(reconcile.Diff(l, cat, updatePrices).Summary().TotalChanges, qt.Equals, 0)
		})
	}
}

func TestApplyRemovalSafety(t *testing.T) {
	c := qt.New(t)

	gone := jacket("gone", "s1", "c1", "Adela KAKAO", 100)
	list := &model.PriceList{Items: model.PriceListItems{pricedItem(gone, 100)}}
	cat := reconcile.NewCatalog(nil, masters())

	res := reconcile.Apply(list, cat, model.DefaultSyncOptions(), now, sequence())
	c.Assert(res, qt.Equals, reconcile.Result{})
	c.Assert(list.Items, qt.HasLen, 1)
	c.Assert(reconcile.Diff(list, cat, false).RemovedItems, qt.HasLen, 1)

	res = reconcile.Apply(list, cat, model.SyncOptions{RemoveDeleted: true}, now, sequence())
	c.Assert(res, qt.Equals, reconcile.Result{RemovedCount: 1})
	c.Assert(list.Items, qt.HasLen, 0)
}

func TestApplyNewItemsStartUnpriced(t *testing.T) {
	c := qt.New(t)

	g := jacket("g1", "s1", "c1", "Adela KAKAO", 100)
	cat := reconcile.NewCatalog([]model.Good{g}, masters())

	list := &model.PriceList{}
	res := reconcile.Apply(list, cat, model.DefaultSyncOptions(), now, sequence())
	c.Assert(res, qt.Equals, reconcile.Result{AddedCount: 1})
	c.Assert(list.Items[0].ID, qt.Equals, "item-1")
	c.Assert(list.Items[0].OriginalGoodID, qt.Equals, "g1")
	c.Assert(list.Items[0].FullName, qt.Equals, "Adela KAKAO")
	c.Assert(list.Items[0].Price.IsZero(), qt.IsTrue)

	seeded := &model.PriceList{}
	reconcile.Apply(seeded, cat, model.SyncOptions{AddNew: true, UpdatePrices: true}, now, sequence())
	c.Assert(seeded.Items[0].Price.String(), qt.Equals, "100")
}

func TestApplyScopedToGoods(t *testing.T) {
	c := qt.New(t)

	adela := jacket("g1", "s1", "c1", "Adela KAKAO", 100)
	beata := jacket("g2", "s2", "c1", "Beata KAKAO", 200)
	list := &model.PriceList{Items: model.PriceListItems{
		pricedItem(adela, 120),
		pricedItem(beata, 220),
		pricedItem(jacket("gone", "s1", "c2", "Adela CZARNY", 90), 90),
	}}
	cat := reconcile.NewCatalog([]model.Good{adela, beata}, masters())

	opts := model.SyncOptions{UpdateOutdated: true, AddNew: true, RemoveDeleted: true, UpdatePrices: true, GoodIDs: []string{"g2"}}
	res := reconcile.Apply(list, cat, opts, now, sequence())
	c.Assert(res, qt.Equals, reconcile.Result{UpdatedCount: 1})
	c.Assert(list.Items, qt.HasLen, 3)
	c.Assert(list.Items[0].Price.String(), qt.Equals, "120")
	c.Assert(list.Items[1].Price.String(), qt.Equals, "200")
}

func TestDiffDuplicateGoodKeepsFirstItem(t *testing.T) {
	c := qt.New(t)

	g := jacket("g1", "s1", "c1", "Adela KAKAO", 100)
	first := pricedItem(g, 100)
	second := pricedItem(g, 100)
	second.ID = "dup"
	second.FullName = "stale"
	list := &model.PriceList{Items: model.PriceListItems{first, second}}

	changes := reconcile.Diff(list, reconcile.NewCatalog([]model.Good{g}, masters()), false)
	c.Assert(changes.Summary().TotalChanges, qt.Equals, 0)
}
