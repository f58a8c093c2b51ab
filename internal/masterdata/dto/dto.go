package dto

import "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"

type MasterFilters struct {
	Kind   model.MasterKind
	Search string // matches code or description
	IDs    []string
}

type CreateMasterInput struct {
	Kind        model.MasterKind `json:"-"`
	Code        string           `json:"code" validate:"required,max=64"`
	Description string           `json:"description" validate:"max=255"`
	Number      int              `json:"number" validate:"gte=0"`
}

type UpdateMasterInput struct {
	ID          string           `json:"-"`
	Kind        model.MasterKind `json:"-"`
	Code        string           `json:"code" validate:"required,max=64"`
	Description string           `json:"description" validate:"max=255"`
	Number      int              `json:"number" validate:"gte=0"`
}
