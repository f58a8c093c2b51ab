package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/httpapi"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

type JobReader interface {
	Get(ctx context.Context, id string) (*model.SyncJob, error)
	List(ctx context.Context, limit int) ([]model.SyncJob, error)
}

type SyncJobHandler struct {
	jobs   JobReader
	logger logger.ZapLogger
}

func NewSyncJobHandler(jobs JobReader, log logger.ZapLogger) *SyncJobHandler {
	return &SyncJobHandler{jobs: jobs, logger: log}
}

func (h *SyncJobHandler) RegisterRoutes(r chi.Router) {
	r.Route("/sync-jobs", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
}

func (h *SyncJobHandler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	jobs, err := h.jobs.List(r.Context(), limit)
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

func (h *SyncJobHandler) get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpapi.RespondError(w, r, h.logger, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, job)
}
