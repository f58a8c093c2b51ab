package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/config"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/app"
	goodsH "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/handler"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/httpapi"
	masterH "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/handler"
	priceListH "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist/handler"
	jobH "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/syncjob/handler"
	jobListenerPkg "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/syncjob/listener"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/broker"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/cache"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/search"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/telemetry"
)

const healthService = "pricelist.v1"

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	decimal.MarshalJSONWithoutQuotes = true

	// 2. Initialize Logger
	appLogger := app.NewLogger(cfg)
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Tracing
	shutdownTracing, err := telemetry.InitTracing(ctx, &telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
		SampleRatio: cfg.Telemetry.SampleRatio,
		Timeout:     cfg.Telemetry.Timeout,
	})
	if err != nil {
		appLogger.Warn("Could not initialize tracing", zap.Error(err))
		shutdownTracing = func(context.Context) error { return nil }
	}

	// 4. Connect to Storage
	stores, err := app.OpenStores(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Could not open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer stores.Close(context.Background())

	// 5. Optional integrations
	var integ app.Integrations

	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, caching and sync locks disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			integ.Cache = redisClient
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	if cfg.Elastic.Enabled {
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
		} else {
			integ.Search = esClient
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	var kafkaConsumer *broker.KafkaConsumer
	if cfg.Kafka.Enabled {
		kafkaCfg := &broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		}
		producer := broker.NewProducer(kafkaCfg)
		defer producer.Close()
		integ.Publisher = producer

		kafkaConsumer = broker.NewConsumer(kafkaCfg)
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 6. Initialize UseCases
	services := app.NewServices(cfg, stores, integ, appLogger)

	// 6.5 Initialize Listeners
	if kafkaConsumer != nil {
		jobListener := jobListenerPkg.NewSyncListener(kafkaConsumer, services.Executor, cfg.Sync.JobTimeout, appLogger)
		go jobListener.Start(ctx)
	}

	// 7. Initialize Handlers
	router := httpapi.NewRouter(appLogger, cfg.Auth.Token,
		masterH.NewMasterHandler(services.Masters, appLogger),
		goodsH.NewGoodsHandler(services.Goods, appLogger),
		priceListH.NewPriceListHandler(services.PriceLists, appLogger),
		jobH.NewSyncJobHandler(services.Executor, appLogger),
	)

	httpServer := &http.Server{
		Addr:         listenAddr(cfg.Server.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 8. Start gRPC health server
	lis, err := net.Listen("tcp", listenAddr(cfg.Server.GRPCPort))
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	go watchStorage(ctx, stores, healthServer)

	go func() {
		appLogger.Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	services.Drain()
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLogger.Error("Tracing shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func listenAddr(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

// watchStorage mirrors database reachability into the gRPC health status.
func watchStorage(ctx context.Context, stores *app.Stores, hs *health.Server) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		status := healthpb.HealthCheckResponse_SERVING
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := stores.Ping(pingCtx); err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		cancel()
		hs.SetServingStatus("", status)
		hs.SetServingStatus(healthService, status)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
