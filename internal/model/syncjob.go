package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SyncOptions selects what a reconciliation pass may change.
type SyncOptions struct {
	UpdateOutdated bool `json:"updateOutdated"`
	AddNew         bool `json:"addNew"`
	RemoveDeleted  bool `json:"removeDeleted"`
	UpdatePrices   bool `json:"updatePrices"`
	// GoodIDs limits the pass to these goods. Empty means the whole catalog.
	GoodIDs []string `json:"goodIds,omitempty"`
}

func DefaultSyncOptions() SyncOptions {
	return SyncOptions{UpdateOutdated: true, AddNew: true}
}

func (o SyncOptions) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *SyncOptions) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	case nil:
		*o = SyncOptions{}
		return nil
	}
	return fmt.Errorf("sync options: unsupported scan type %T", src)
}

type SyncJobStatus string

const (
	SyncJobPending   SyncJobStatus = "pending"
	SyncJobRunning   SyncJobStatus = "running"
	SyncJobSucceeded SyncJobStatus = "succeeded"
	SyncJobFailed    SyncJobStatus = "failed"
)

// SyncJob is the observable record of one downstream reconciliation.
// An empty SellingPointID means every price list.
type SyncJob struct {
	BaseModel
	Trigger        string        `db:"trigger" json:"trigger"`
	SellingPointID string        `db:"selling_point_id" json:"sellingPointId,omitempty"`
	Options        SyncOptions   `db:"options" json:"options"`
	Status         SyncJobStatus `db:"status" json:"status"`
	UpdatedLists   int           `db:"updated_lists" json:"updatedLists"`
	UpdatedCount   int           `db:"updated_count" json:"updatedCount"`
	AddedCount     int           `db:"added_count" json:"addedCount"`
	RemovedCount   int           `db:"removed_count" json:"removedCount"`
	Error          string        `db:"error" json:"error,omitempty"`
	StartedAt      *time.Time    `db:"started_at" json:"startedAt,omitempty"`
	FinishedAt     *time.Time    `db:"finished_at" json:"finishedAt,omitempty"`
}
