package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/apperror"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods"
	gdto "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata"
	mddto "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/reconcile"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/syncjob"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

const (
	lockTTL      = 30 * time.Second
	lockAttempts = 3
	lockBackoff  = 100 * time.Millisecond
)

// Locker holds short lived keyed locks; *cache.RedisClient is one.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

type priceListUseCase struct {
	repo    pricelist.Repository
	goods   goods.Repository
	masters masterdata.Repository
	locks   Locker
	logger  logger.ZapLogger
	tracer  trace.Tracer
}

// NewPriceListUseCase builds the reconciler usecase. locks is optional; with
// it, concurrent syncs of one selling point are serialized across instances.
func NewPriceListUseCase(
	repo pricelist.Repository,
	goodsRepo goods.Repository,
	masters masterdata.Repository,
	locks Locker,
	log logger.ZapLogger,
) pricelist.UseCase {
	return &priceListUseCase{
		repo:    repo,
		goods:   goodsRepo,
		masters: masters,
		locks:   locks,
		logger:  log,
		tracer:  otel.Tracer("pricelist"),
	}
}

func (uc *priceListUseCase) GetPriceList(ctx context.Context, sellingPointID string) (*model.PriceList, error) {
	pl, err := uc.repo.FindBySellingPoint(ctx, sellingPointID)
	if err != nil {
		return nil, err
	}
	if pl == nil {
		return nil, apperror.NotFound("Cennik dla tego punktu sprzedaży nie istnieje")
	}
	return pl, nil
}

func (uc *priceListUseCase) ListPriceLists(ctx context.Context) ([]model.PriceList, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *priceListUseCase) CreatePriceList(ctx context.Context, input *dto.CreatePriceListInput) (*model.PriceList, error) {
	sp, err := uc.sellingPoint(ctx, input.SellingPointID)
	if err != nil {
		return nil, err
	}
	if err := uc.replaceExisting(ctx, sp.ID, input.ForceRecreate); err != nil {
		return nil, err
	}

	cat, err := uc.catalog(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	pl := &model.PriceList{
		BaseModel:        model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		SellingPointID:   sp.ID,
		SellingPointName: sp.DisplayName(),
		Items:            make(model.PriceListItems, 0, len(cat.Goods())),
	}
	for _, g := range cat.Goods() {
		pl.Items = append(pl.Items, reconcile.NewItem(g, true, now, uuid.New().String()))
	}

	if err := uc.repo.Create(ctx, pl); err != nil {
		return nil, err
	}
	uc.logger.Info("price list created",
		zap.String("selling_point_id", sp.ID),
		zap.Int("items", len(pl.Items)),
	)
	return pl, nil
}

func (uc *priceListUseCase) ClonePriceList(ctx context.Context, input *dto.ClonePriceListInput) (*model.PriceList, error) {
	if input.SourceSellingPointID == input.SellingPointID {
		return nil, apperror.BadRequest("Nie można skopiować cennika do tego samego punktu sprzedaży")
	}
	sp, err := uc.sellingPoint(ctx, input.SellingPointID)
	if err != nil {
		return nil, err
	}
	source, err := uc.repo.FindBySellingPoint(ctx, input.SourceSellingPointID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, apperror.NotFound("Cennik źródłowy nie istnieje")
	}
	if err := uc.replaceExisting(ctx, sp.ID, input.ForceRecreate); err != nil {
		return nil, err
	}

	now := time.Now()
	pl := &model.PriceList{
		BaseModel:        model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		SellingPointID:   sp.ID,
		SellingPointName: sp.DisplayName(),
		Items:            make(model.PriceListItems, 0, len(source.Items)),
	}
	for _, it := range source.Items {
		item := it.Clone()
		item.ID = uuid.New().String()
		item.CreatedAt = now
		item.UpdatedAt = now
		pl.Items = append(pl.Items, item)
	}

	if err := uc.repo.Create(ctx, pl); err != nil {
		return nil, err
	}
	uc.logger.Info("price list cloned",
		zap.String("selling_point_id", sp.ID),
		zap.String("source_selling_point_id", source.SellingPointID),
		zap.Int("items", len(pl.Items)),
	)
	return pl, nil
}

func (uc *priceListUseCase) UpdateItemPrice(ctx context.Context, input *dto.UpdateItemPriceInput) (*model.PriceListItem, error) {
	pl, err := uc.GetPriceList(ctx, input.SellingPointID)
	if err != nil {
		return nil, err
	}
	idx := pl.FindItem(input.ItemID)
	if idx < 0 {
		return nil, apperror.NotFound("Produkt nie został znaleziony w cenniku")
	}

	item := &pl.Items[idx]
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.BadRequest("Cena nie może być ujemna")
		}
		item.Price = *input.Price
	}
	if input.DiscountPrice != nil {
		if input.DiscountPrice.IsNegative() {
			return nil, apperror.BadRequest("Cena promocyjna nie może być ujemna")
		}
		item.DiscountPrice = *input.DiscountPrice
	}
	if input.PriceExceptions != nil {
		if _, dup := input.PriceExceptions.DuplicateSize(); dup {
			return nil, apperror.BadRequest("Nie może być dwóch wyjątków z tym samym rozmiarem")
		}
		item.PriceExceptions = input.PriceExceptions.Clone()
	}

	now := time.Now()
	item.UpdatedAt = now
	pl.UpdatedAt = now
	if err := uc.repo.Update(ctx, pl); err != nil {
		return nil, err
	}
	out := item.Clone()
	return &out, nil
}

func (uc *priceListUseCase) DeletePriceList(ctx context.Context, sellingPointID string) error {
	if _, err := uc.GetPriceList(ctx, sellingPointID); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, sellingPointID)
}

func (uc *priceListUseCase) Compare(ctx context.Context, sellingPointID string) (*dto.CompareResult, error) {
	pl, err := uc.GetPriceList(ctx, sellingPointID)
	if err != nil {
		return nil, err
	}
	cat, err := uc.catalog(ctx)
	if err != nil {
		return nil, err
	}
	changes := reconcile.Diff(pl, cat, false)
	return &dto.CompareResult{Changes: changes, Summary: changes.Summary()}, nil
}

func (uc *priceListUseCase) Sync(ctx context.Context, sellingPointID string, opts model.SyncOptions) (*dto.SyncResult, error) {
	ctx, span := uc.tracer.Start(ctx, "pricelist.Sync", trace.WithAttributes(
		attribute.String("selling_point_id", sellingPointID),
		attribute.Bool("update_prices", opts.UpdatePrices),
	))
	defer span.End()

	release, err := uc.lock(ctx, sellingPointID)
	if err != nil {
		return nil, err
	}
	defer release()

	pl, err := uc.GetPriceList(ctx, sellingPointID)
	if err != nil {
		return nil, err
	}
	cat, err := uc.catalog(ctx)
	if err != nil {
		return nil, err
	}

	res, err := uc.apply(ctx, pl, cat, opts)
	if err != nil {
		return nil, err
	}
	return &dto.SyncResult{PriceList: pl, Result: res}, nil
}

func (uc *priceListUseCase) SyncAll(ctx context.Context, opts model.SyncOptions) (*dto.SyncAllResult, error) {
	ctx, span := uc.tracer.Start(ctx, "pricelist.SyncAll", trace.WithAttributes(
		attribute.Bool("update_prices", opts.UpdatePrices),
		attribute.Int("scoped_goods", len(opts.GoodIDs)),
	))
	defer span.End()

	lists, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	cat, err := uc.catalog(ctx)
	if err != nil {
		return nil, err
	}

	// A list that is busy or fails is reported; the pass goes on.
	out := &dto.SyncAllResult{}
	for i := range lists {
		pl := &lists[i]
		res, err := uc.syncLocked(ctx, pl, cat, opts)
		if err != nil {
			uc.logger.Warn("price list skipped",
				zap.String("selling_point_id", pl.SellingPointID),
				zap.Error(err),
			)
			out.FailedLists = append(out.FailedLists, dto.FailedList{
				SellingPointID:   pl.SellingPointID,
				SellingPointName: pl.SellingPointName,
				Error:            err.Error(),
			})
			continue
		}
		if !res.Changed() {
			continue
		}
		out.UpdatedListsCount++
		out.TotalUpdatedProducts += res.UpdatedCount
		out.TotalAddedProducts += res.AddedCount
		out.TotalRemovedProducts += res.RemovedCount
	}

	uc.logger.Info("price lists synchronized",
		zap.Int("lists", len(lists)),
		zap.Int("updated_lists", out.UpdatedListsCount),
		zap.Int("updated", out.TotalUpdatedProducts),
		zap.Int("added", out.TotalAddedProducts),
		zap.Int("removed", out.TotalRemovedProducts),
		zap.Int("failed_lists", len(out.FailedLists)),
	)
	return out, nil
}

func (uc *priceListUseCase) RunJob(ctx context.Context, job *model.SyncJob) (*syncjob.Outcome, error) {
	if job.SellingPointID != "" {
		res, err := uc.Sync(ctx, job.SellingPointID, job.Options)
		if err != nil {
			return nil, err
		}
		outcome := &syncjob.Outcome{Result: res.Result}
		if res.Changed() {
			outcome.UpdatedLists = 1
		}
		return outcome, nil
	}

	res, err := uc.SyncAll(ctx, job.Options)
	if err != nil {
		return nil, err
	}
	outcome := &syncjob.Outcome{
		UpdatedLists: res.UpdatedListsCount,
		Result: reconcile.Result{
			UpdatedCount: res.TotalUpdatedProducts,
			AddedCount:   res.TotalAddedProducts,
			RemovedCount: res.TotalRemovedProducts,
		},
	}
	var errs error
	for _, f := range res.FailedLists {
		errs = multierr.Append(errs, fmt.Errorf("price list %s: %s", f.SellingPointID, f.Error))
	}
	return outcome, errs
}

// syncLocked reconciles one list of a global pass under its selling point
// lock, re-reading it so a concurrent single sync is not overwritten.
func (uc *priceListUseCase) syncLocked(ctx context.Context, pl *model.PriceList, cat *reconcile.Catalog, opts model.SyncOptions) (reconcile.Result, error) {
	release, err := uc.lock(ctx, pl.SellingPointID)
	if err != nil {
		return reconcile.Result{}, err
	}
	defer release()

	if uc.locks != nil {
		fresh, err := uc.repo.FindBySellingPoint(ctx, pl.SellingPointID)
		if err != nil {
			return reconcile.Result{}, err
		}
		if fresh == nil {
			return reconcile.Result{}, nil
		}
		pl = fresh
	}
	return uc.apply(ctx, pl, cat, opts)
}

// apply runs the reconciler on pl and stores it only when something changed.
func (uc *priceListUseCase) apply(ctx context.Context, pl *model.PriceList, cat *reconcile.Catalog, opts model.SyncOptions) (reconcile.Result, error) {
	res := reconcile.Apply(pl, cat, opts, time.Now(), func() string { return uuid.New().String() })
	if !res.Changed() {
		return res, nil
	}
	if err := uc.repo.Update(ctx, pl); err != nil {
		return reconcile.Result{}, err
	}
	uc.logger.Debug("price list reconciled",
		zap.String("selling_point_id", pl.SellingPointID),
		zap.Int("updated", res.UpdatedCount),
		zap.Int("added", res.AddedCount),
		zap.Int("removed", res.RemovedCount),
	)
	return res, nil
}

func (uc *priceListUseCase) catalog(ctx context.Context) (*reconcile.Catalog, error) {
	all, err := uc.goods.FindAll(ctx, &gdto.GoodFilters{})
	if err != nil {
		return nil, fmt.Errorf("load goods: %w", err)
	}
	masters, err := uc.masters.FindAll(ctx, &mddto.MasterFilters{})
	if err != nil {
		return nil, fmt.Errorf("load master data: %w", err)
	}
	return reconcile.NewCatalog(all, masters), nil
}

func (uc *priceListUseCase) sellingPoint(ctx context.Context, id string) (*model.MasterEntity, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.BadRequest("Nieprawidłowy identyfikator punktu sprzedaży")
	}
	sp, err := uc.masters.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil || sp.Kind != model.KindSellingPoint {
		return nil, apperror.NotFound("Punkt sprzedaży nie został znaleziony")
	}
	return sp, nil
}

func (uc *priceListUseCase) replaceExisting(ctx context.Context, sellingPointID string, force bool) error {
	existing, err := uc.repo.FindBySellingPoint(ctx, sellingPointID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if !force {
		return apperror.Conflict("Cennik dla tego punktu sprzedaży już istnieje")
	}
	uc.logger.Info("recreating price list", zap.String("selling_point_id", sellingPointID))
	return uc.repo.Delete(ctx, sellingPointID)
}

// lock takes the per selling point sync lock. Without a locker it is a no-op.
func (uc *priceListUseCase) lock(ctx context.Context, sellingPointID string) (func(), error) {
	if uc.locks == nil {
		return func() {}, nil
	}

	key := "lock:pricelist:" + sellingPointID
	value := uuid.New().String()
	acquired := false
	for i := 0; i < lockAttempts; i++ {
		ok, err := uc.locks.AcquireLock(ctx, key, value, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire lock redis error", zap.String("key", key), zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(lockBackoff)
	}
	if !acquired {
		return nil, apperror.Conflict("price list %s is being synchronized, try again later", sellingPointID)
	}

	return func() {
		if err := uc.locks.ReleaseLock(context.WithoutCancel(ctx), key, value); err != nil {
			uc.logger.Warn("failed to release lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}
