package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/syncjob"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type SyncListener struct {
	consumer MessageReader
	exec     *syncjob.Executor
	timeout  time.Duration
	logger   logger.ZapLogger
}

func NewSyncListener(consumer MessageReader, exec *syncjob.Executor, timeout time.Duration, log logger.ZapLogger) *SyncListener {
	return &SyncListener{
		consumer: consumer,
		exec:     exec,
		timeout:  timeout,
		logger:   log,
	}
}

func (l *SyncListener) Start(ctx context.Context) {
	l.logger.Info("Starting price list sync listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping price list sync listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *SyncListener) processMessage(ctx context.Context, value []byte) {
	var event syncjob.SyncRequestedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != syncjob.EventSyncRequested {
		return
	}

	job, err := l.exec.Get(ctx, event.Payload.JobID)
	if err != nil {
		l.logger.Error("Failed to load sync job",
			zap.String("job_id", event.Payload.JobID),
			zap.Error(err),
		)
		return
	}

	// Redelivered events find the job already past pending.
	if job.Status != model.SyncJobPending {
		l.logger.Debug("Skipping sync job", zap.String("job_id", job.ID), zap.String("status", string(job.Status)))
		return
	}

	l.logger.Info("Processing sync request", zap.String("job_id", job.ID), zap.String("trigger", job.Trigger))

	runCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	// Failures are recorded on the job and logged by the executor.
	_ = l.exec.Execute(runCtx, job)
}
