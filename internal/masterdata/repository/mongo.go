package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/schema"
)

type masterDocument struct {
	ID          string    `bson:"_id"`
	Kind        string    `bson:"kind"`
	Code        string    `bson:"code"`
	Description string    `bson:"description"`
	Number      int       `bson:"number"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func toDocument(e *model.MasterEntity) *masterDocument {
	return &masterDocument{
		ID:          e.ID,
		Kind:        string(e.Kind),
		Code:        e.Code,
		Description: e.Description,
		Number:      e.Number,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (d *masterDocument) toModel() model.MasterEntity {
	return model.MasterEntity{
		BaseModel:   model.BaseModel{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		Kind:        model.MasterKind(d.Kind),
		Code:        d.Code,
		Description: d.Description,
		Number:      d.Number,
	}
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection(schema.CollectionMasterEntities)}
}

func (r *MongoRepository) Create(ctx context.Context, e *model.MasterEntity) error {
	_, err := r.col.InsertOne(ctx, toDocument(e))
	return err
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*model.MasterEntity, error) {
	var doc masterDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	e := doc.toModel()
	return &e, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*model.MasterEntity, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) FindByCode(ctx context.Context, kind model.MasterKind, code string) (*model.MasterEntity, error) {
	return r.findOne(ctx, bson.M{"kind": string(kind), "code": code})
}

func (r *MongoRepository) FindAll(ctx context.Context, f *dto.MasterFilters) ([]model.MasterEntity, error) {
	filter := bson.M{}
	if f.Kind != "" {
		filter["kind"] = string(f.Kind)
	}
	if f.Search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
		filter["$or"] = bson.A{bson.M{"code": pattern}, bson.M{"description": pattern}}
	}
	if len(f.IDs) > 0 {
		filter["_id"] = bson.M{"$in": f.IDs}
	}

	opts := options.Find().SetSort(bson.D{{Key: "kind", Value: 1}, {Key: "code", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []masterDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.MasterEntity, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out, nil
}

func (r *MongoRepository) Update(ctx context.Context, e *model.MasterEntity) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": e.ID}, bson.M{"$set": bson.M{
		"code":        e.Code,
		"description": e.Description,
		"number":      e.Number,
		"updatedAt":   e.UpdatedAt,
	}})
	return err
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
