package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/config"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/app"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/cache"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pricelistctl",
		Short: "Operate price list reconciliation against the configured storage",
		Long: `pricelistctl reads the same environment as the API server (.env is loaded
when present) and runs reconciliation passes, comparisons and renames directly
against the configured storage. Every sync is recorded as a sync job.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newSyncAllCommand(),
		newSyncCommand(),
		newCompareCommand(),
		newSyncNamesCommand(),
		newJobsCommand(),
	)
	return root
}

// env is what every subcommand runs against.
type env struct {
	cfg      *config.Config
	log      logger.ZapLogger
	stores   *app.Stores
	services *app.Services
	cleanup  []func()
}

func openEnv(ctx context.Context) (*env, error) {
	_ = godotenv.Load()
	cfg, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	decimal.MarshalJSONWithoutQuotes = true

	e := &env{cfg: cfg, log: app.NewLogger(cfg)}
	e.stores, err = app.OpenStores(ctx, cfg, e.log)
	if err != nil {
		return nil, err
	}
	e.cleanup = append(e.cleanup, func() { e.stores.Close(context.Background()) })

	// Jobs always run in process here; redis only contributes the sync lock
	// and cache invalidation shared with running API instances.
	var integ app.Integrations
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			e.log.Warn("Could not connect to Redis, running without sync locks", zap.Error(err))
		} else {
			integ.Cache = redisClient
			e.cleanup = append(e.cleanup, func() { redisClient.Close() })
		}
	}
	e.services = app.NewServices(cfg, e.stores, integ, e.log)
	return e, nil
}

func (e *env) Close() {
	e.services.Drain()
	for i := len(e.cleanup) - 1; i >= 0; i-- {
		e.cleanup[i]()
	}
	e.log.Sync()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
