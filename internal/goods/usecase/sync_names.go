package usecase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/naming"
)

func (uc *goodsUseCase) SyncProductNames(ctx context.Context, ev *model.RenameEvent) (*model.RenameResult, error) {
	result := &model.RenameResult{}
	if ev != nil {
		result.Type = ev.Type
		result.FieldType = ev.FieldType
		result.OldValue = ev.OldValue
		result.NewValue = ev.NewValue
	}
	if !ev.Actionable() {
		return result, nil
	}

	ctx, span := uc.tracer.Start(ctx, "goods.SyncProductNames", trace.WithAttributes(
		attribute.String("rename.type", string(ev.Type)),
		attribute.String("rename.old", ev.OldValue.Name),
		attribute.String("rename.new", ev.NewValue.Name),
	))
	defer span.End()

	// 1. Find goods referencing the renamed entity
	filters, reason := renameFilters(ev)
	if filters == nil {
		uc.logger.Warn("rename skipped",
			zap.String("type", string(ev.Type)),
			zap.String("old_name", ev.OldValue.Name),
			zap.String("new_name", ev.NewValue.Name),
			zap.String("reason", reason),
		)
		return result, nil
	}
	affected, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	// 2. Rewrite and store each one; a failing good does not stop the others.
	now := time.Now()
	var errs error
	updated := make([]*model.Good, 0, len(affected))
	for i := range affected {
		g := &affected[i]
		if !uc.applyRename(ctx, g, ev) {
			continue
		}
		g.UpdatedAt = now
		if err := uc.repo.Update(ctx, g); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("good %s: %w", g.ID, err))
			continue
		}
		updated = append(updated, g)
	}
	if errs != nil {
		uc.logger.Error("some goods were not renamed",
			zap.String("type", string(ev.Type)),
			zap.Int("failed", len(multierr.Errors(errs))),
			zap.Error(errs),
		)
	}
	result.UpdatedCount = len(updated)
	span.SetAttributes(attribute.Int("rename.updated", result.UpdatedCount))

	if len(updated) == 0 {
		return result, nil
	}

	// 3. Cache and search index
	uc.afterWrite(updated...)

	// 4. Price lists follow in a separate job
	result.SyncJobID = uc.dispatch(ctx, "rename."+string(ev.Type), model.SyncOptions{
		UpdateOutdated: true,
		UpdatePrices:   ev.UpdatePrices,
	})

	uc.logger.Info("product names synchronized",
		zap.String("type", string(ev.Type)),
		zap.String("old_name", ev.OldValue.Name),
		zap.String("new_name", ev.NewValue.Name),
		zap.Int("updated", result.UpdatedCount),
		zap.String("sync_job_id", result.SyncJobID),
	)
	return result, nil
}

// renameFilters selects the goods a rename touches. A nil filter means the
// event cannot be resolved; the string says why.
func renameFilters(ev *model.RenameEvent) (*dto.GoodFilters, string) {
	id := ev.OldValue.ID
	if id == "" {
		id = ev.NewValue.ID
	}

	switch ev.Type {
	case model.RenameStock:
		if id == "" {
			return nil, "stock rename without id"
		}
		return &dto.GoodFilters{StockID: id}, ""
	case model.RenameColor:
		if id == "" {
			return nil, "color rename without id"
		}
		return &dto.GoodFilters{ColorID: id}, ""
	case model.RenameBelt:
		return &dto.GoodFilters{
			Category:                model.CategoryRemaining,
			Subcategory:             string(model.SubcategoryBelts),
			RemainingSubsubcategory: ev.OldValue.Name,
		}, ""
	case model.RenameGlove:
		return &dto.GoodFilters{
			Category:                model.CategoryRemaining,
			Subcategory:             string(model.SubcategoryGloves),
			RemainingSubsubcategory: ev.OldValue.Name,
		}, ""
	case model.RenameRemainingProduct:
		return &dto.GoodFilters{
			Category:   model.CategoryRemaining,
			BagProduct: ev.OldValue.Name,
		}, ""
	}
	return nil, "unsupported rename type"
}

// applyRename rewrites g in place and reports whether anything changed.
// The product code of a remaining good is regenerated when its color and
// template resolve; otherwise the old code stays.
func (uc *goodsUseCase) applyRename(ctx context.Context, g *model.Good, ev *model.RenameEvent) bool {
	oldName, newName := ev.OldValue.Name, ev.NewValue.Name
	before := *g

	g.FullName = naming.Compose(g.FullName, oldName, newName)

	switch ev.Type {
	case model.RenameBelt, model.RenameGlove:
		g.RemainingSubsubcategory = newName
	case model.RenameRemainingProduct:
		g.BagProduct = newName
		code, err := uc.remainingCode(ctx, g, ev.NewValue)
		if err != nil {
			uc.logger.Warn("product code kept after rename",
				zap.String("good_id", g.ID),
				zap.String("code", g.Code),
				zap.Error(err),
			)
			break
		}
		if g.Barcode == g.Code {
			g.Barcode = code
		}
		g.Code = code
	}

	changed := g.FullName != before.FullName ||
		g.RemainingSubsubcategory != before.RemainingSubsubcategory ||
		g.BagProduct != before.BagProduct ||
		g.Code != before.Code ||
		g.Barcode != before.Barcode
	return changed
}

// remainingCode regenerates the product code of a remaining assortment good
// after its product template was renamed.
func (uc *goodsUseCase) remainingCode(ctx context.Context, g *model.Good, renamed *model.RenameValue) (string, error) {
	color, err := uc.master(ctx, model.KindColor, g.ColorID)
	if err != nil {
		return "", err
	}
	if color == nil {
		return "", fmt.Errorf("color %s not found", g.ColorID)
	}
	rp, err := uc.remainingProduct(ctx, renamed.ID, renamed.Name)
	if err != nil {
		return "", err
	}
	if rp == nil {
		return "", fmt.Errorf("remaining product %q not found", renamed.Name)
	}
	return naming.RemainingBarcode(color.Code, rp.Number, renamed.Name), nil
}
