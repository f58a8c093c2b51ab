package usecase_test

import (
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/apperror"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/repository"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/usecase"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

type recordingSyncer struct {
	events []*model.RenameEvent
	err    error
}

func (s *recordingSyncer) SyncProductNames(_ context.Context, ev *model.RenameEvent) (*model.RenameResult, error) {
	s.events = append(s.events, ev)
	if s.err != nil {
		return nil, s.err
	}
	return &model.RenameResult{UpdatedCount: 1, Type: ev.Type}, nil
}

func TestCreateUppercasesColor(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	uc := usecase.NewMasterUseCase(repository.NewMemoryRepository(), nil, logger.NewNop())

	color, err := uc.Create(ctx, &dto.CreateMasterInput{Kind: model.KindColor, Code: "C1", Description: " brąz "})
	c.Assert(err, qt.IsNil)
	c.Assert(color.Description, qt.Equals, "BRĄZ")

	stock, err := uc.Create(ctx, &dto.CreateMasterInput{Kind: model.KindStock, Code: "S1", Description: "Adela"})
	c.Assert(err, qt.IsNil)
	c.Assert(stock.Description, qt.Equals, "Adela")
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	uc := usecase.NewMasterUseCase(repository.NewMemoryRepository(), nil, logger.NewNop())

	_, err := uc.Create(ctx, &dto.CreateMasterInput{Kind: model.KindStock, Code: "S1", Description: "Adela"})
	c.Assert(err, qt.IsNil)
	_, err = uc.Create(ctx, &dto.CreateMasterInput{Kind: model.KindStock, Code: "S1", Description: "Beata"})
	c.Assert(errors.Is(err, apperror.ErrConflict), qt.IsTrue)

	// Same code under another kind is fine.
	_, err = uc.Create(ctx, &dto.CreateMasterInput{Kind: model.KindColor, Code: "S1", Description: "x"})
	c.Assert(err, qt.IsNil)
}

func TestRemainingProductDecimals(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	uc := usecase.NewMasterUseCase(repository.NewMemoryRepository(), nil, logger.NewNop())

	_, err := uc.Create(ctx, &dto.CreateMasterInput{Kind: model.KindRemainingProduct, Code: "1", Description: "PASEK.1234"})
	c.Assert(err, qt.ErrorMatches, "Kod produktu może mieć maksymalnie 3 cyfry po kropce")

	_, err = uc.Create(ctx, &dto.CreateMasterInput{Kind: model.KindRemainingProduct, Code: "1", Description: "PASEK.123", Number: 7})
	c.Assert(err, qt.IsNil)
}

func TestUpdateDescriptionTriggersRename(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	syncer := &recordingSyncer{}
	uc := usecase.NewMasterUseCase(repository.NewMemoryRepository(), syncer, logger.NewNop())

	color, err := uc.Create(ctx, &dto.CreateMasterInput{Kind: model.KindColor, Code: "C1", Description: "KAKAO"})
	c.Assert(err, qt.IsNil)

	updated, err := uc.Update(ctx, &dto.UpdateMasterInput{ID: color.ID, Kind: model.KindColor, Code: "C1", Description: "czekolada"})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Description, qt.Equals, "CZEKOLADA")

	c.Assert(syncer.events, qt.HasLen, 1)
	ev := syncer.events[0]
	c.Assert(ev.Type, qt.Equals, model.RenameColor)
	c.Assert(ev.FieldType, qt.Equals, "color")
	c.Assert(*ev.OldValue, qt.Equals, model.RenameValue{ID: color.ID, Name: "KAKAO"})
	c.Assert(*ev.NewValue, qt.Equals, model.RenameValue{ID: color.ID, Name: "CZEKOLADA"})

	// Unchanged description and kinds without names do not trigger anything.
	_, err = uc.Update(ctx, &dto.UpdateMasterInput{ID: color.ID, Kind: model.KindColor, Code: "C1", Description: "CZEKOLADA"})
	c.Assert(err, qt.IsNil)
	m, err := uc.Create(ctx, &dto.CreateMasterInput{Kind: model.KindManufacturer, Code: "M1", Description: "Old"})
	c.Assert(err, qt.IsNil)
	_, err = uc.Update(ctx, &dto.UpdateMasterInput{ID: m.ID, Kind: model.KindManufacturer, Code: "M1", Description: "New"})
	c.Assert(err, qt.IsNil)
	c.Assert(syncer.events, qt.HasLen, 1)
}

func TestUpdateSucceedsWhenRenameFails(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	syncer := &recordingSyncer{err: errors.New("price lists unavailable")}
	repo := repository.NewMemoryRepository()
	uc := usecase.NewMasterUseCase(repo, syncer, logger.NewNop())

	belt, err := uc.Create(ctx, &dto.CreateMasterInput{Kind: model.KindBelt, Code: "B1", Description: "Pasek męski"})
	c.Assert(err, qt.IsNil)

	updated, err := uc.Update(ctx, &dto.UpdateMasterInput{ID: belt.ID, Kind: model.KindBelt, Code: "B1", Description: "Pasek skórzany"})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Description, qt.Equals, "Pasek skórzany")
	c.Assert(syncer.events[0].FieldType, qt.Equals, "remainingsubsubcategory")

	stored, err := repo.FindByID(ctx, belt.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(stored.Description, qt.Equals, "Pasek skórzany")
}

func TestGetChecksKind(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	uc := usecase.NewMasterUseCase(repository.NewMemoryRepository(), nil, logger.NewNop())

	stock, err := uc.Create(ctx, &dto.CreateMasterInput{Kind: model.KindStock, Code: "S1", Description: "Adela"})
	c.Assert(err, qt.IsNil)

	_, err = uc.Get(ctx, model.KindColor, stock.ID)
	c.Assert(apperror.IsNotFound(err), qt.IsTrue)

	c.Assert(uc.Delete(ctx, model.KindStock, stock.ID), qt.IsNil)
	_, err = uc.Get(ctx, model.KindStock, stock.ID)
	c.Assert(apperror.IsNotFound(err), qt.IsTrue)
}
