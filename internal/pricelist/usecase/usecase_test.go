package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/apperror"
	goodsdto "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/dto"
	goodsrepo "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/repository"
	goodsusecase "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/usecase"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata"
	masterdto "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/dto"
	masterrepo "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/repository"
	masterusecase "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/usecase"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist/dto"
	pricelistrepo "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist/repository"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist/usecase"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/syncjob"
	syncjobrepo "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/syncjob/repository"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

// fixture wires the whole rename chain on in-memory stores: master data,
// goods, an inline job dispatcher and the price list reconciler.
type fixture struct {
	ctx        context.Context
	goods      *goodsrepo.MemoryRepository
	masters    *masterrepo.MemoryRepository
	lists      *pricelistrepo.MemoryRepository
	jobs       *syncjobrepo.MemoryRepository
	dispatcher *syncjob.InlineDispatcher
	uc         pricelist.UseCase
	masterUC   masterdata.UseCase

	stock, color, sellingPoint *model.MasterEntity
	good                       *model.Good
}

func newFixture(c *qt.C) *fixture {
	log := logger.NewNop()
	f := &fixture{
		ctx:     context.Background(),
		goods:   goodsrepo.NewMemoryRepository(),
		masters: masterrepo.NewMemoryRepository(),
		lists:   pricelistrepo.NewMemoryRepository(),
		jobs:    syncjobrepo.NewMemoryRepository(),
	}
	f.uc = usecase.NewPriceListUseCase(f.lists, f.goods, f.masters, nil, log)
	exec := syncjob.NewExecutor(f.jobs, f.uc, log)
	f.dispatcher = syncjob.NewInlineDispatcher(exec, time.Minute)
	goodsUC := goodsusecase.NewGoodsUseCase(f.goods, f.masters, f.dispatcher, nil, nil, goodsusecase.Config{}, log)
	f.masterUC = masterusecase.NewMasterUseCase(f.masters, goodsUC, log)

	var err error
	f.stock, err = f.masterUC.Create(f.ctx, &masterdto.CreateMasterInput{Kind: model.KindStock, Code: "S1", Description: "Adela"})
	c.Assert(err, qt.IsNil)
	f.color, err = f.masterUC.Create(f.ctx, &masterdto.CreateMasterInput{Kind: model.KindColor, Code: "C1", Description: "KAKAO"})
	c.Assert(err, qt.IsNil)
	f.sellingPoint, err = f.masterUC.Create(f.ctx, &masterdto.CreateMasterInput{Kind: model.KindSellingPoint, Code: "P1", Description: "Krupówki"})
	c.Assert(err, qt.IsNil)

	f.good, err = goodsUC.CreateGood(f.ctx, &goodsdto.CreateGoodInput{GoodInput: goodsdto.GoodInput{
		Stock:    f.stock.ID,
		Color:    f.color.ID,
		Category: model.CategoryJackets,
		Price:    decimal.NewFromInt(100),
	}})
	c.Assert(err, qt.IsNil)
	c.Assert(f.good.FullName, qt.Equals, "Adela KAKAO")
	return f
}

// pricedList creates the selling point's list and reprices its only item.
func (f *fixture) pricedList(c *qt.C, price int64) *model.PriceList {
	pl, err := f.uc.CreatePriceList(f.ctx, &dto.CreatePriceListInput{SellingPointID: f.sellingPoint.ID})
	c.Assert(err, qt.IsNil)
	c.Assert(pl.Items, qt.HasLen, 1)

	p := decimal.NewFromInt(price)
	_, err = f.uc.UpdateItemPrice(f.ctx, &dto.UpdateItemPriceInput{
		SellingPointID: f.sellingPoint.ID,
		ItemID:         pl.Items[0].ID,
		Price:          &p,
	})
	c.Assert(err, qt.IsNil)
	return pl
}

func (f *fixture) item(c *qt.C) model.PriceListItem {
	pl, err := f.uc.GetPriceList(f.ctx, f.sellingPoint.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(pl.Items, qt.HasLen, 1)
	return pl.Items[0]
}

func (f *fixture) renameColor(c *qt.C, description string) {
	_, err := f.masterUC.Update(f.ctx, &masterdto.UpdateMasterInput{
		ID: f.color.ID, Kind: model.KindColor, Code: f.color.Code, Description: description,
	})
	c.Assert(err, qt.IsNil)
	f.dispatcher.Wait()
}

func TestRenameKeepsSellingPointPrice(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	f.pricedList(c, 120)

	f.renameColor(c, "czekolada")

	g, err := f.goods.FindByID(f.ctx, f.good.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(g.FullName, qt.Equals, "Adela CZEKOLADA")

	item := f.item(c)
	c.Assert(item.FullName, qt.Equals, "Adela CZEKOLADA")
	c.Assert(item.Price.Equal(decimal.NewFromInt(120)), qt.IsTrue)

	jobs, err := f.jobs.FindRecent(f.ctx, 10)
	c.Assert(err, qt.IsNil)
	c.Assert(jobs, qt.HasLen, 1)
	c.Assert(jobs[0].Status, qt.Equals, model.SyncJobSucceeded)
	c.Assert(jobs[0].UpdatedLists, qt.Equals, 1)
	c.Assert(jobs[0].UpdatedCount, qt.Equals, 1)
}

func TestSyncAllWithUpdatePricesTakesGoodPrice(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	f.pricedList(c, 120)
	f.renameColor(c, "czekolada")

	res, err := f.uc.SyncAll(f.ctx, model.SyncOptions{UpdateOutdated: true, UpdatePrices: true})
	c.Assert(err, qt.IsNil)
	c.Assert(res.UpdatedListsCount, qt.Equals, 1)
	c.Assert(res.TotalUpdatedProducts, qt.Equals, 1)

	item := f.item(c)
	c.Assert(item.FullName, qt.Equals, "Adela CZEKOLADA")
	c.Assert(item.Price.Equal(decimal.NewFromInt(100)), qt.IsTrue)
}

func TestSyncAllSkipsUnchangedLists(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	f.pricedList(c, 120)
	saves := f.lists.Saves()

	for i := 0; i < 2; i++ {
		res, err := f.uc.SyncAll(f.ctx, model.DefaultSyncOptions())
		c.Assert(err, qt.IsNil)
		c.Assert(*res, qt.DeepEquals, dto.SyncAllResult{})
	}
	c.Assert(f.lists.Saves(), qt.Equals, saves)
}

// heldLocks is a Locker on which some keys are taken by someone else.
type heldLocks struct {
	mu   sync.Mutex
	held map[string]bool
}

func (l *heldLocks) AcquireLock(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *heldLocks) ReleaseLock(_ context.Context, key, _ string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

func TestSyncAllContinuesPastBusyList(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	f.pricedList(c, 120)

	second, err := f.masterUC.Create(f.ctx, &masterdto.CreateMasterInput{Kind: model.KindSellingPoint, Code: "P2", Description: "Gubałówka"})
	c.Assert(err, qt.IsNil)
	_, err = f.uc.CreatePriceList(f.ctx, &dto.CreatePriceListInput{SellingPointID: second.ID})
	c.Assert(err, qt.IsNil)

	g, err := f.goods.FindByID(f.ctx, f.good.ID)
	c.Assert(err, qt.IsNil)
	g.FullName = "Adela BRĄZ"
	c.Assert(f.goods.Update(f.ctx, g), qt.IsNil)

	locks := &heldLocks{held: map[string]bool{"lock:pricelist:" + f.sellingPoint.ID: true}}
	uc := usecase.NewPriceListUseCase(f.lists, f.goods, f.masters, locks, logger.NewNop())

	res, err := uc.SyncAll(f.ctx, model.DefaultSyncOptions())
	c.Assert(err, qt.IsNil)
	c.Assert(res.UpdatedListsCount, qt.Equals, 1)
	c.Assert(res.TotalUpdatedProducts, qt.Equals, 1)
	c.Assert(res.FailedLists, qt.HasLen, 1)
	c.Assert(res.FailedLists[0].SellingPointID, qt.Equals, f.sellingPoint.ID)
	c.Assert(res.FailedLists[0].Error, qt.Matches, ".*being synchronized.*")

	other, err := f.uc.GetPriceList(f.ctx, second.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(other.Items[0].FullName, qt.Equals, "Adela BRĄZ")
	c.Assert(f.item(c).FullName, qt.Equals, "Adela KAKAO")

	c.Run("job records the busy list", func(c *qt.C) {
		jobs := syncjobrepo.NewMemoryRepository()
		exec := syncjob.NewExecutor(jobs, uc, logger.NewNop())
		job, err := exec.Enqueue(f.ctx, syncjob.Request{Trigger: "test", Options: model.DefaultSyncOptions()})
		c.Assert(err, qt.IsNil)
		c.Assert(exec.Execute(f.ctx, job), qt.ErrorMatches, "price list "+f.sellingPoint.ID+": .*")

		stored, err := exec.Get(f.ctx, job.ID)
		c.Assert(err, qt.IsNil)
		c.Assert(stored.Status, qt.Equals, model.SyncJobFailed)
		c.Assert(stored.UpdatedLists, qt.Equals, 0)
	})

	c.Run("released lock converges", func(c *qt.C) {
		c.Assert(locks.ReleaseLock(f.ctx, "lock:pricelist:"+f.sellingPoint.ID, ""), qt.IsNil)
		res, err := uc.SyncAll(f.ctx, model.DefaultSyncOptions())
		c.Assert(err, qt.IsNil)
		c.Assert(res.FailedLists, qt.HasLen, 0)
		c.Assert(res.UpdatedListsCount, qt.Equals, 1)
		c.Assert(f.item(c).FullName, qt.Equals, "Adela BRĄZ")
	})
}

func TestSyncSingleList(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	f.pricedList(c, 120)

	g, err := f.goods.FindByID(f.ctx, f.good.ID)
	c.Assert(err, qt.IsNil)
	g.Picture = "/images/adela.jpg"
	c.Assert(f.goods.Update(f.ctx, g), qt.IsNil)

	res, err := f.uc.Sync(f.ctx, f.sellingPoint.ID, model.DefaultSyncOptions())
	c.Assert(err, qt.IsNil)
	c.Assert(res.UpdatedCount, qt.Equals, 1)
	c.Assert(res.PriceList.Items[0].Picture, qt.Equals, "/images/adela.jpg")
	c.Assert(res.PriceList.Items[0].Price.Equal(decimal.NewFromInt(120)), qt.IsTrue)

	again, err := f.uc.Sync(f.ctx, f.sellingPoint.ID, model.DefaultSyncOptions())
	c.Assert(err, qt.IsNil)
	c.Assert(again.Changed(), qt.IsFalse)

	_, err = f.uc.Sync(f.ctx, uuid.NewString(), model.DefaultSyncOptions())
	c.Assert(apperror.IsNotFound(err), qt.IsTrue)
}

func TestRemovedGoodNeedsRemoveDeleted(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	f.pricedList(c, 120)
	c.Assert(f.goods.Delete(f.ctx, f.good.ID), qt.IsNil)

	res, err := f.uc.Sync(f.ctx, f.sellingPoint.ID, model.DefaultSyncOptions())
	c.Assert(err, qt.IsNil)
	c.Assert(res.PriceList.Items, qt.HasLen, 1)

	res, err = f.uc.Sync(f.ctx, f.sellingPoint.ID, model.SyncOptions{RemoveDeleted: true})
	c.Assert(err, qt.IsNil)
	c.Assert(res.RemovedCount, qt.Equals, 1)
	c.Assert(res.PriceList.Items, qt.HasLen, 0)
}

func TestCreatePriceList(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)

	c.Run("invalid selling point id", func(c *qt.C) {
		_, err := f.uc.CreatePriceList(f.ctx, &dto.CreatePriceListInput{SellingPointID: "not-a-uuid"})
		c.Assert(errors.Is(err, apperror.ErrValidation), qt.IsTrue)
	})

	c.Run("unknown selling point", func(c *qt.C) {
		_, err := f.uc.CreatePriceList(f.ctx, &dto.CreatePriceListInput{SellingPointID: uuid.NewString()})
		c.Assert(apperror.IsNotFound(err), qt.IsTrue)

		// A stock is not a selling point.
		_, err = f.uc.CreatePriceList(f.ctx, &dto.CreatePriceListInput{SellingPointID: f.stock.ID})
		c.Assert(apperror.IsNotFound(err), qt.IsTrue)
	})

	c.Run("seeds current prices", func(c *qt.C) {
		pl, err := f.uc.CreatePriceList(f.ctx, &dto.CreatePriceListInput{SellingPointID: f.sellingPoint.ID})
		c.Assert(err, qt.IsNil)
		c.Assert(pl.SellingPointName, qt.Equals, "Krupówki")
		c.Assert(pl.Items, qt.HasLen, 1)
		c.Assert(pl.Items[0].OriginalGoodID, qt.Equals, f.good.ID)
		c.Assert(pl.Items[0].Price.Equal(decimal.NewFromInt(100)), qt.IsTrue)
	})

	c.Run("existing list conflicts", func(c *qt.C) {
		_, err := f.uc.CreatePriceList(f.ctx, &dto.CreatePriceListInput{SellingPointID: f.sellingPoint.ID})
		c.Assert(errors.Is(err, apperror.ErrConflict), qt.IsTrue)
		c.Assert(apperror.StatusCode(err), qt.Equals, 409)
	})

	c.Run("force recreate", func(c *qt.C) {
		before, err := f.uc.GetPriceList(f.ctx, f.sellingPoint.ID)
		c.Assert(err, qt.IsNil)
		pl, err := f.uc.CreatePriceList(f.ctx, &dto.CreatePriceListInput{SellingPointID: f.sellingPoint.ID, ForceRecreate: true})
		c.Assert(err, qt.IsNil)
		c.Assert(pl.ID, qt.Not(qt.Equals), before.ID)
	})
}

func TestClonePriceList(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	source := f.pricedList(c, 120)

	target, err := f.masterUC.Create(f.ctx, &masterdto.CreateMasterInput{Kind: model.KindSellingPoint, Code: "P2", Description: "Gubałówka"})
	c.Assert(err, qt.IsNil)

	_, err = f.uc.ClonePriceList(f.ctx, &dto.ClonePriceListInput{SellingPointID: target.ID, SourceSellingPointID: uuid.NewString()})
	c.Assert(apperror.IsNotFound(err), qt.IsTrue)

	pl, err := f.uc.ClonePriceList(f.ctx, &dto.ClonePriceListInput{SellingPointID: target.ID, SourceSellingPointID: f.sellingPoint.ID})
	c.Assert(err, qt.IsNil)
	c.Assert(pl.SellingPointName, qt.Equals, "Gubałówka")
	c.Assert(pl.Items, qt.HasLen, 1)
	c.Assert(pl.Items[0].ID, qt.Not(qt.Equals), source.Items[0].ID)
	c.Assert(pl.Items[0].OriginalGoodID, qt.Equals, f.good.ID)
	c.Assert(pl.Items[0].Price.Equal(decimal.NewFromInt(120)), qt.IsTrue)
}

func TestUpdateItemPrice(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	pl := f.pricedList(c, 120)

	_, err := f.uc.UpdateItemPrice(f.ctx, &dto.UpdateItemPriceInput{
		SellingPointID: f.sellingPoint.ID,
		ItemID:         pl.Items[0].ID,
		PriceExceptions: &model.PriceExceptions{
			{Size: "XL", Value: decimal.NewFromInt(130)},
			{Size: "XL", Value: decimal.NewFromInt(140)},
		},
	})
	c.Assert(err, qt.ErrorMatches, "Nie może być dwóch wyjątków z tym samym rozmiarem")

	_, err = f.uc.UpdateItemPrice(f.ctx, &dto.UpdateItemPriceInput{SellingPointID: f.sellingPoint.ID, ItemID: "missing"})
	c.Assert(apperror.IsNotFound(err), qt.IsTrue)

	discount := decimal.NewFromInt(99)
	item, err := f.uc.UpdateItemPrice(f.ctx, &dto.UpdateItemPriceInput{
		SellingPointID: f.sellingPoint.ID,
		ItemID:         pl.Items[0].ID,
		DiscountPrice:  &discount,
	})
	c.Assert(err, qt.IsNil)
	c.Assert(item.Price.Equal(decimal.NewFromInt(120)), qt.IsTrue)
	c.Assert(item.DiscountPrice.Equal(discount), qt.IsTrue)
}

func TestCompare(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	f.pricedList(c, 120)

	res, err := f.uc.Compare(f.ctx, f.sellingPoint.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(res.Summary.TotalChanges, qt.Equals, 0)

	g, err := f.goods.FindByID(f.ctx, f.good.ID)
	c.Assert(err, qt.IsNil)
	g.FullName = "Adela KAKAO II"
	c.Assert(f.goods.Update(f.ctx, g), qt.IsNil)
	c.Assert(f.goods.Create(f.ctx, &model.Good{
		BaseModel: model.BaseModel{ID: uuid.NewString(), CreatedAt: time.Now()},
		ColorID:   f.color.ID,
		FullName:  "Torebka KAKAO",
		Code:      "T1",
		Category:  model.CategoryBags,
		Price:     decimal.NewFromInt(50),
	}), qt.IsNil)

	res, err = f.uc.Compare(f.ctx, f.sellingPoint.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(res.Summary.OutdatedCount, qt.Equals, 1)
	c.Assert(res.Summary.NewCount, qt.Equals, 1)
	c.Assert(res.Summary.TotalChanges, qt.Equals, 2)
	// Comparing never writes.
	c.Assert(f.item(c).FullName, qt.Equals, "Adela KAKAO")
}

func TestRunJob(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	f.pricedList(c, 120)

	g, err := f.goods.FindByID(f.ctx, f.good.ID)
	c.Assert(err, qt.IsNil)
	g.Price = decimal.NewFromInt(150)
	c.Assert(f.goods.Update(f.ctx, g), qt.IsNil)

	job := &model.SyncJob{
		SellingPointID: f.sellingPoint.ID,
		Options:        model.SyncOptions{UpdateOutdated: true, UpdatePrices: true, GoodIDs: []string{f.good.ID}},
	}
	outcome, err := f.uc.RunJob(f.ctx, job)
	c.Assert(err, qt.IsNil)
	c.Assert(outcome.UpdatedLists, qt.Equals, 1)
	c.Assert(outcome.Result.UpdatedCount, qt.Equals, 1)
	c.Assert(f.item(c).Price.Equal(decimal.NewFromInt(150)), qt.IsTrue)

	outcome, err = f.uc.RunJob(f.ctx, &model.SyncJob{Options: model.DefaultSyncOptions()})
	c.Assert(err, qt.IsNil)
	c.Assert(outcome.UpdatedLists, qt.Equals, 0)

	_, err = f.uc.RunJob(f.ctx, &model.SyncJob{SellingPointID: uuid.NewString()})
	c.Assert(apperror.IsNotFound(err), qt.IsTrue)
}
