// Package app assembles the storage layer and usecases shared by the API
// server and the operational CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/config"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods"
	goodsRepoPkg "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/repository"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata"
	masterRepoPkg "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/repository"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist"
	priceListRepoPkg "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist/repository"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/schema"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/syncjob"
	jobRepoPkg "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/syncjob/repository"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/database/mongodb"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/database/postgres"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

// Stores holds one repository per aggregate, all backed by the same driver.
type Stores struct {
	Masters    masterdata.Repository
	Goods      goods.Repository
	PriceLists pricelist.Repository
	Jobs       syncjob.Repository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping reports whether the backing database answers.
func (s *Stores) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Stores) Close(ctx context.Context) error {
	return s.close(ctx)
}

// OpenStores connects to the configured storage driver and prepares its
// schema or indexes.
func OpenStores(ctx context.Context, cfg *config.Config, log logger.ZapLogger) (*Stores, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		return openPostgres(ctx, cfg, log)
	case config.StorageDriverMongo:
		return openMongo(ctx, cfg, log)
	case config.StorageDriverMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		return &Stores{
			Masters:    masterRepoPkg.NewMemoryRepository(),
			Goods:      goodsRepoPkg.NewMemoryRepository(),
			PriceLists: priceListRepoPkg.NewMemoryRepository(),
			Jobs:       jobRepoPkg.NewMemoryRepository(),
			ping:       func(context.Context) error { return nil },
			close:      func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}

func openPostgres(ctx context.Context, cfg *config.Config, log logger.ZapLogger) (*Stores, error) {
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := schema.MigratePostgres(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	log.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	return &Stores{
		Masters:    masterRepoPkg.NewPGRepository(db),
		Goods:      goodsRepoPkg.NewPGRepository(db),
		PriceLists: priceListRepoPkg.NewPGRepository(db),
		Jobs:       jobRepoPkg.NewPGRepository(db),
		ping:       db.PingContext,
		close:      func(context.Context) error { return db.Close() },
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log logger.ZapLogger) (*Stores, error) {
	client, db, err := mongodb.NewMongo(ctx, &mongodb.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := schema.EnsureMongoIndexes(ctx, db); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ensure mongo indexes: %w", err)
	}
	log.Info("Connected to MongoDB", zap.String("db_name", cfg.Mongo.Database))

	return &Stores{
		Masters:    masterRepoPkg.NewMongoRepository(db),
		Goods:      goodsRepoPkg.NewMongoRepository(db),
		PriceLists: priceListRepoPkg.NewMongoRepository(db),
		Jobs:       jobRepoPkg.NewMongoRepository(db),
		ping:       func(ctx context.Context) error { return pingMongo(ctx, client) },
		close:      client.Disconnect,
	}, nil
}

func pingMongo(ctx context.Context, client *mongo.Client) error {
	return client.Ping(ctx, readpref.Primary())
}
