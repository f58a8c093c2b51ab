package syncjob

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

const EventSyncRequested = "PriceListSyncRequested"

type SyncRequestedEvent struct {
	EventID   string               `json:"event_id"`
	EventType string               `json:"event_type"`
	Payload   SyncRequestedPayload `json:"payload"`
	Timestamp time.Time            `json:"timestamp"`
}

type SyncRequestedPayload struct {
	JobID          string `json:"job_id"`
	SellingPointID string `json:"selling_point_id,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

// KafkaDispatcher records the job and leaves execution to whichever
// listener consumes the event.
type KafkaDispatcher struct {
	exec      *Executor
	publisher Publisher
	logger    logger.ZapLogger
}

func NewKafkaDispatcher(exec *Executor, publisher Publisher, log logger.ZapLogger) *KafkaDispatcher {
	return &KafkaDispatcher{exec: exec, publisher: publisher, logger: log}
}

func (d *KafkaDispatcher) Dispatch(ctx context.Context, req Request) (*model.SyncJob, error) {
	job, err := d.exec.Enqueue(ctx, req)
	if err != nil {
		return nil, err
	}

	event := SyncRequestedEvent{
		EventID:   uuid.New().String(),
		EventType: EventSyncRequested,
		Payload:   SyncRequestedPayload{JobID: job.ID, SellingPointID: job.SellingPointID},
		Timestamp: time.Now(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		d.exec.Fail(ctx, job, err)
		return job, fmt.Errorf("encode sync event: %w", err)
	}

	key := job.SellingPointID
	if key == "" {
		key = "all"
	}
	if err := d.publisher.Publish(ctx, []byte(key), value); err != nil {
		d.exec.Fail(ctx, job, err)
		return job, fmt.Errorf("publish sync event: %w", err)
	}

	d.logger.Debug("sync job published", zap.String("job_id", job.ID), zap.String("key", key))
	return job, nil
}
