package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/schema"
)

type optionsDocument struct {
	UpdateOutdated bool     `bson:"updateOutdated"`
	AddNew         bool     `bson:"addNew"`
	RemoveDeleted  bool     `bson:"removeDeleted"`
	UpdatePrices   bool     `bson:"updatePrices"`
	GoodIDs        []string `bson:"goodIds,omitempty"`
}

type jobDocument struct {
	ID             string          `bson:"_id"`
	Trigger        string          `bson:"trigger"`
	SellingPointID string          `bson:"sellingPointId"`
	Options        optionsDocument `bson:"options"`
	Status         string          `bson:"status"`
	UpdatedLists   int             `bson:"updatedLists"`
	UpdatedCount   int             `bson:"updatedCount"`
	AddedCount     int             `bson:"addedCount"`
	RemovedCount   int             `bson:"removedCount"`
	Error          string          `bson:"error,omitempty"`
	StartedAt      *time.Time      `bson:"startedAt,omitempty"`
	FinishedAt     *time.Time      `bson:"finishedAt,omitempty"`
	CreatedAt      time.Time       `bson:"createdAt"`
	UpdatedAt      time.Time       `bson:"updatedAt"`
}

func toDocument(j *model.SyncJob) *jobDocument {
	return &jobDocument{
		ID:             j.ID,
		Trigger:        j.Trigger,
		SellingPointID: j.SellingPointID,
		Options: optionsDocument{
			UpdateOutdated: j.Options.UpdateOutdated,
			AddNew:         j.Options.AddNew,
			RemoveDeleted:  j.Options.RemoveDeleted,
			UpdatePrices:   j.Options.UpdatePrices,
			GoodIDs:        j.Options.GoodIDs,
		},
		Status:       string(j.Status),
		UpdatedLists: j.UpdatedLists,
		UpdatedCount: j.UpdatedCount,
		AddedCount:   j.AddedCount,
		RemovedCount: j.RemovedCount,
		Error:        j.Error,
		StartedAt:    j.StartedAt,
		FinishedAt:   j.FinishedAt,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

func (d *jobDocument) toModel() model.SyncJob {
	return model.SyncJob{
		BaseModel:      model.BaseModel{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		Trigger:        d.Trigger,
		SellingPointID: d.SellingPointID,
		Options: model.SyncOptions{
			UpdateOutdated: d.Options.UpdateOutdated,
			AddNew:         d.Options.AddNew,
			RemoveDeleted:  d.Options.RemoveDeleted,
			UpdatePrices:   d.Options.UpdatePrices,
			GoodIDs:        d.Options.GoodIDs,
		},
		Status:       model.SyncJobStatus(d.Status),
		UpdatedLists: d.UpdatedLists,
		UpdatedCount: d.UpdatedCount,
		AddedCount:   d.AddedCount,
		RemovedCount: d.RemovedCount,
		Error:        d.Error,
		StartedAt:    d.StartedAt,
		FinishedAt:   d.FinishedAt,
	}
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection(schema.CollectionSyncJobs)}
}

func (r *MongoRepository) Create(ctx context.Context, job *model.SyncJob) error {
	_, err := r.col.InsertOne(ctx, toDocument(job))
	return err
}

func (r *MongoRepository) Update(ctx context.Context, job *model.SyncJob) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": job.ID}, toDocument(job))
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*model.SyncJob, error) {
	var doc jobDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	job := doc.toModel()
	return &job, nil
}

func (r *MongoRepository) FindRecent(ctx context.Context, limit int) ([]model.SyncJob, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []jobDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.SyncJob, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out, nil
}
