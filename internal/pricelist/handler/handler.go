package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/httpapi"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

type PriceListHandler struct {
	uc     pricelist.UseCase
	logger logger.ZapLogger
}

func NewPriceListHandler(uc pricelist.UseCase, log logger.ZapLogger) *PriceListHandler {
	return &PriceListHandler{uc: uc, logger: log}
}

func (h *PriceListHandler) RegisterRoutes(r chi.Router) {
	r.Route("/pricelists", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/sync-all", h.syncAll)
		r.Route("/{sellingPointId}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Delete("/", h.delete)
			r.Post("/create", h.create)
			r.Post("/clone", h.clone)
			r.Get("/compare", h.compare)
			r.Post("/sync", h.sync)
			r.Patch("/items/{itemId}", h.updateItem)
		})
	})
}

func (h *PriceListHandler) list(w http.ResponseWriter, r *http.Request) {
	lists, err := h.uc.ListPriceLists(r.Context())
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, map[string]any{"priceLists": lists, "count": len(lists)})
}

func (h *PriceListHandler) get(w http.ResponseWriter, r *http.Request) {
	pl, err := h.uc.GetPriceList(r.Context(), chi.URLParam(r, "sellingPointId"))
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, pl)
}

func (h *PriceListHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeletePriceList(r.Context(), chi.URLParam(r, "sellingPointId")); err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PriceListHandler) create(w http.ResponseWriter, r *http.Request) {
	var input dto.CreatePriceListInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	input.SellingPointID = chi.URLParam(r, "sellingPointId")

	pl, err := h.uc.CreatePriceList(r.Context(), &input)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusCreated, pl)
}

func (h *PriceListHandler) clone(w http.ResponseWriter, r *http.Request) {
	var input dto.ClonePriceListInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	input.SellingPointID = chi.URLParam(r, "sellingPointId")

	pl, err := h.uc.ClonePriceList(r.Context(), &input)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusCreated, pl)
}

func (h *PriceListHandler) compare(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.Compare(r.Context(), chi.URLParam(r, "sellingPointId"))
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, res)
}

func (h *PriceListHandler) sync(w http.ResponseWriter, r *http.Request) {
	var input dto.SyncInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}

	res, err := h.uc.Sync(r.Context(), chi.URLParam(r, "sellingPointId"), input.Options())
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, res)
}

func (h *PriceListHandler) syncAll(w http.ResponseWriter, r *http.Request) {
	var input dto.SyncInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}

	res, err := h.uc.SyncAll(r.Context(), input.Options())
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, res)
}

func (h *PriceListHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateItemPriceInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	input.SellingPointID = chi.URLParam(r, "sellingPointId")
	input.ItemID = chi.URLParam(r, "itemId")

	item, err := h.uc.UpdateItemPrice(r.Context(), &input)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, item)
}
