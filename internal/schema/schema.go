// Package schema bootstraps the storage layout for both database drivers.
package schema

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo collection names.
const (
	CollectionMasterEntities = "master_entities"
	CollectionGoods          = "goods"
	CollectionPriceLists     = "price_lists"
	CollectionSyncJobs       = "sync_jobs"
)

//go:embed schema.sql
var postgresDDL string

// MigratePostgres creates missing tables and indexes. Every statement is idempotent.
func MigratePostgres(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, postgresDDL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

type mongoIndex struct {
	collection string
	name       string
	keys       bson.D
	unique     bool
}

var mongoIndexes = []mongoIndex{
	{CollectionMasterEntities, "master_kind_code", bson.D{{Key: "kind", Value: 1}, {Key: "code", Value: 1}}, true},
	{CollectionGoods, "goods_full_name", bson.D{{Key: "fullName", Value: 1}}, true},
	{CollectionGoods, "goods_code", bson.D{{Key: "code", Value: 1}}, true},
	{CollectionGoods, "goods_stock", bson.D{{Key: "stock", Value: 1}}, false},
	{CollectionGoods, "goods_color", bson.D{{Key: "color", Value: 1}}, false},
	{CollectionPriceLists, "price_list_selling_point", bson.D{{Key: "sellingPointId", Value: 1}}, true},
	{CollectionSyncJobs, "sync_job_created", bson.D{{Key: "createdAt", Value: -1}}, false},
}

// EnsureMongoIndexes creates the unique and lookup indexes. Existing indexes are kept.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	for _, idx := range mongoIndexes {
		_, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    idx.keys,
			Options: options.Index().SetName(idx.name).SetUnique(idx.unique),
		})
		if err != nil && !isIndexExistsError(err) {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}
	return nil
}

func isIndexExistsError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "IndexOptionsConflict")
}
