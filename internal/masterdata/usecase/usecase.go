package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/apperror"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

// remaining product codes allow at most three digits after the dot
var tooManyDecimals = regexp.MustCompile(`\.\d{4,}`)

type masterUseCase struct {
	repo   masterdata.Repository
	syncer masterdata.NameSynchronizer
	logger logger.ZapLogger
	tracer trace.Tracer
}

// NewMasterUseCase builds the master data usecase. syncer may be nil, in which
// case renames are not propagated into goods.
func NewMasterUseCase(repo masterdata.Repository, syncer masterdata.NameSynchronizer, log logger.ZapLogger) masterdata.UseCase {
	return &masterUseCase{
		repo:   repo,
		syncer: syncer,
		logger: log,
		tracer: otel.Tracer("masterdata"),
	}
}

func normalize(kind model.MasterKind, description string) string {
	description = strings.TrimSpace(description)
	if kind == model.KindColor {
		// Caser values are stateful, build one per call.
		return cases.Upper(language.Polish).String(description)
	}
	return description
}

func validate(kind model.MasterKind, description string) error {
	if kind == model.KindRemainingProduct && tooManyDecimals.MatchString(description) {
		return apperror.BadRequest("Kod produktu może mieć maksymalnie 3 cyfry po kropce")
	}
	return nil
}

func (uc *masterUseCase) Create(ctx context.Context, input *dto.CreateMasterInput) (*model.MasterEntity, error) {
	description := normalize(input.Kind, input.Description)
	if err := validate(input.Kind, description); err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByCode(ctx, input.Kind, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("%s with code %s already exists", input.Kind, input.Code)
	}

	now := time.Now()
	e := &model.MasterEntity{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Kind:        input.Kind,
		Code:        strings.TrimSpace(input.Code),
		Description: description,
		Number:      input.Number,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (uc *masterUseCase) Get(ctx context.Context, kind model.MasterKind, id string) (*model.MasterEntity, error) {
	e, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || e.Kind != kind {
		return nil, apperror.NotFound("%s %s not found", kind, id)
	}
	return e, nil
}

func (uc *masterUseCase) List(ctx context.Context, filters *dto.MasterFilters) ([]model.MasterEntity, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *masterUseCase) Update(ctx context.Context, input *dto.UpdateMasterInput) (*model.MasterEntity, error) {
	ctx, span := uc.tracer.Start(ctx, "masterdata.Update", trace.WithAttributes(
		attribute.String("master.kind", string(input.Kind)),
		attribute.String("master.id", input.ID),
	))
	defer span.End()

	e, err := uc.Get(ctx, input.Kind, input.ID)
	if err != nil {
		return nil, err
	}

	if e.Code != input.Code {
		existing, err := uc.repo.FindByCode(ctx, input.Kind, input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != e.ID {
			return nil, apperror.Conflict("%s with code %s already exists", input.Kind, input.Code)
		}
	}

	description := normalize(input.Kind, input.Description)
	if err := validate(input.Kind, description); err != nil {
		return nil, err
	}

	oldDescription := e.Description
	e.Code = strings.TrimSpace(input.Code)
	e.Description = description
	e.Number = input.Number
	e.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	if oldDescription != e.Description {
		uc.propagateRename(ctx, e, oldDescription)
	}
	return e, nil
}

// propagateRename pushes a changed description into goods names. The update
// itself is already stored, so failures are only logged.
func (uc *masterUseCase) propagateRename(ctx context.Context, e *model.MasterEntity, oldDescription string) {
	renameType, ok := model.RenameTypeFor(e.Kind)
	if !ok || uc.syncer == nil {
		return
	}

	ev := &model.RenameEvent{
		Type:      renameType,
		FieldType: renameType.FieldType(),
		OldValue:  &model.RenameValue{ID: e.ID, Name: oldDescription},
		NewValue:  &model.RenameValue{ID: e.ID, Name: e.Description},
	}
	res, err := uc.syncer.SyncProductNames(context.WithoutCancel(ctx), ev)
	if err != nil {
		uc.logger.Error("failed to sync product names after rename",
			zap.String("kind", string(e.Kind)),
			zap.String("id", e.ID),
			zap.String("old_name", oldDescription),
			zap.String("new_name", e.Description),
			zap.Error(err),
		)
		return
	}
	uc.logger.Info("product names synchronized",
		zap.String("kind", string(e.Kind)),
		zap.String("id", e.ID),
		zap.Int("updated_goods", res.UpdatedCount),
	)
}

func (uc *masterUseCase) Delete(ctx context.Context, kind model.MasterKind, id string) error {
	if _, err := uc.Get(ctx, kind, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}
