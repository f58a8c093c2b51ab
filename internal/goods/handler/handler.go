package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/apperror"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/httpapi"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

type GoodsHandler struct {
	uc     goods.UseCase
	logger logger.ZapLogger
}

func NewGoodsHandler(uc goods.UseCase, log logger.ZapLogger) *GoodsHandler {
	return &GoodsHandler{uc: uc, logger: log}
}

func (h *GoodsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/goods", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/search", h.search)
		r.Post("/sync-product-names", h.syncProductNames)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *GoodsHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := &dto.GoodFilters{
		StockID:                 q.Get("stock"),
		ColorID:                 q.Get("color"),
		Category:                q.Get("category"),
		Subcategory:             q.Get("subcategory"),
		RemainingSubsubcategory: q.Get("remainingsubsubcategory"),
		BagProduct:              q.Get("bagProduct"),
		Search:                  q.Get("q"),
	}
	list, err := h.uc.ListGoods(r.Context(), filters)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, map[string]any{"goods": list, "count": len(list)})
}

func (h *GoodsHandler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httpapi.RespondError(w, r, h.logger, apperror.BadRequest("query parameter q is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	found, total, err := h.uc.SearchGoods(r.Context(), query, limit)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, map[string]any{"goods": found, "total": total})
}

func (h *GoodsHandler) create(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateGoodInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	g, err := h.uc.CreateGood(r.Context(), &input)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusCreated, g)
}

func (h *GoodsHandler) get(w http.ResponseWriter, r *http.Request) {
	g, err := h.uc.GetGood(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, g)
}

func (h *GoodsHandler) update(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateGoodInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	input.ID = chi.URLParam(r, "id")

	g, err := h.uc.UpdateGood(r.Context(), &input)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, g)
}

func (h *GoodsHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteGood(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GoodsHandler) syncProductNames(w http.ResponseWriter, r *http.Request) {
	var ev model.RenameEvent
	if err := httpapi.Decode(r, &ev); err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	if ev.FieldType == "" {
		ev.FieldType = ev.Type.FieldType()
	}

	res, err := h.uc.SyncProductNames(r.Context(), &ev)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, res)
}
