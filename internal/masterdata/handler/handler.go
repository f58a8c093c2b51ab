package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/apperror"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/httpapi"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

type MasterHandler struct {
	uc     masterdata.UseCase
	logger logger.ZapLogger
}

func NewMasterHandler(uc masterdata.UseCase, log logger.ZapLogger) *MasterHandler {
	return &MasterHandler{uc: uc, logger: log}
}

func (h *MasterHandler) RegisterRoutes(r chi.Router) {
	r.Route("/masterdata/{kind}", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func kindParam(r *http.Request) (model.MasterKind, error) {
	kind, ok := model.ParseMasterKind(chi.URLParam(r, "kind"))
	if !ok {
		return "", apperror.NotFound("unknown master data kind %q", chi.URLParam(r, "kind"))
	}
	return kind, nil
}

func (h *MasterHandler) list(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	entities, err := h.uc.List(r.Context(), &dto.MasterFilters{Kind: kind, Search: r.URL.Query().Get("q")})
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, entities)
}

func (h *MasterHandler) create(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	var input dto.CreateMasterInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	input.Kind = kind

	e, err := h.uc.Create(r.Context(), &input)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusCreated, e)
}

func (h *MasterHandler) get(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	e, err := h.uc.Get(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, e)
}

func (h *MasterHandler) update(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	var input dto.UpdateMasterInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	input.ID = chi.URLParam(r, "id")
	input.Kind = kind

	e, err := h.uc.Update(r.Context(), &input)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, e)
}

func (h *MasterHandler) delete(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	if err := h.uc.Delete(r.Context(), kind, chi.URLParam(r, "id")); err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
