// Package syncjob runs price list reconciliation as recorded jobs, so that a
// downstream failure after a committed catalog change stays observable.
package syncjob

import (
	"context"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/reconcile"
)

type Repository interface {
	Create(ctx context.Context, job *model.SyncJob) error
	Update(ctx context.Context, job *model.SyncJob) error
	FindByID(ctx context.Context, id string) (*model.SyncJob, error)
	FindRecent(ctx context.Context, limit int) ([]model.SyncJob, error)
}

// Request asks for one reconciliation. An empty SellingPointID targets every price list.
type Request struct {
	Trigger        string
	SellingPointID string
	Options        model.SyncOptions
}

type Outcome struct {
	UpdatedLists int
	Result       reconcile.Result
}

// Runner performs the reconciliation a job describes.
type Runner interface {
	RunJob(ctx context.Context, job *model.SyncJob) (*Outcome, error)
}

// Dispatcher records a job and hands it over for execution.
type Dispatcher interface {
	Dispatch(ctx context.Context, req Request) (*model.SyncJob, error)
}
