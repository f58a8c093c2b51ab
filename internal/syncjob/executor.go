package syncjob

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/apperror"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

const defaultListLimit = 50

// Executor moves jobs through pending, running and succeeded or failed.
type Executor struct {
	repo   Repository
	runner Runner
	logger logger.ZapLogger
	tracer trace.Tracer
}

func NewExecutor(repo Repository, runner Runner, log logger.ZapLogger) *Executor {
	return &Executor{
		repo:   repo,
		runner: runner,
		logger: log,
		tracer: otel.Tracer("syncjob"),
	}
}

// Enqueue stores a pending job.
func (e *Executor) Enqueue(ctx context.Context, req Request) (*model.SyncJob, error) {
	now := time.Now()
	job := &model.SyncJob{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Trigger:        req.Trigger,
		SellingPointID: req.SellingPointID,
		Options:        req.Options,
		Status:         model.SyncJobPending,
	}
	if err := e.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("record sync job: %w", err)
	}
	return job, nil
}

// Execute runs job and stores its outcome. The returned error is the
// runner's; it is also recorded on the job, next to any partial counts.
func (e *Executor) Execute(ctx context.Context, job *model.SyncJob) error {
	ctx, span := e.tracer.Start(ctx, "syncjob.Execute", trace.WithAttributes(
		attribute.String("job.id", job.ID),
		attribute.String("job.trigger", job.Trigger),
		attribute.String("job.selling_point_id", job.SellingPointID),
	))
	defer span.End()

	started := time.Now()
	job.Status = model.SyncJobRunning
	job.StartedAt = &started
	job.UpdatedAt = started
	e.save(ctx, job)

	outcome, runErr := e.runner.RunJob(ctx, job)

	finished := time.Now()
	job.FinishedAt = &finished
	job.UpdatedAt = finished
	if outcome != nil {
		job.UpdatedLists = outcome.UpdatedLists
		job.UpdatedCount = outcome.Result.UpdatedCount
		job.AddedCount = outcome.Result.AddedCount
		job.RemovedCount = outcome.Result.RemovedCount
	}
	if runErr != nil {
		job.Status = model.SyncJobFailed
		job.Error = runErr.Error()
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
		e.logger.Error("sync job failed",
			zap.String("job_id", job.ID),
			zap.String("trigger", job.Trigger),
			zap.Error(runErr),
		)
	} else {
		job.Status = model.SyncJobSucceeded
		e.logger.Info("sync job finished",
			zap.String("job_id", job.ID),
			zap.String("trigger", job.Trigger),
			zap.Int("updated_lists", job.UpdatedLists),
			zap.Int("updated", job.UpdatedCount),
			zap.Int("added", job.AddedCount),
			zap.Int("removed", job.RemovedCount),
			zap.Duration("duration", finished.Sub(started)),
		)
	}
	e.save(ctx, job)
	return runErr
}

// Fail marks a job that never reached the runner.
func (e *Executor) Fail(ctx context.Context, job *model.SyncJob, cause error) {
	now := time.Now()
	job.Status = model.SyncJobFailed
	job.Error = cause.Error()
	job.FinishedAt = &now
	job.UpdatedAt = now
	e.save(ctx, job)
}

func (e *Executor) save(ctx context.Context, job *model.SyncJob) {
	if err := e.repo.Update(context.WithoutCancel(ctx), job); err != nil {
		e.logger.Error("failed to store sync job state",
			zap.String("job_id", job.ID),
			zap.String("status", string(job.Status)),
			zap.Error(err),
		)
	}
}

func (e *Executor) Get(ctx context.Context, id string) (*model.SyncJob, error) {
	job, err := e.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NotFound("sync job %s not found", id)
	}
	return job, nil
}

func (e *Executor) List(ctx context.Context, limit int) ([]model.SyncJob, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return e.repo.FindRecent(ctx, limit)
}
