package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"

	httpAdapter "github.com/isekco/vestia/internal/adapter/http"
	"github.com/isekco/vestia/internal/adapter/http/handler"
	fileRepo "github.com/isekco/vestia/internal/adapter/repository/file"
	postgresRepo "github.com/isekco/vestia/internal/adapter/repository/postgres"
	redisRepo "github.com/isekco/vestia/internal/adapter/repository/redis"
	"github.com/isekco/vestia/internal/engine"
	"github.com/isekco/vestia/internal/infrastructure/config"
	"github.com/isekco/vestia/internal/infrastructure/logger"
	"github.com/isekco/vestia/internal/infrastructure/metrics"
	"github.com/isekco/vestia/internal/infrastructure/postgres"
	"github.com/isekco/vestia/internal/infrastructure/redis"
	"github.com/isekco/vestia/internal/ingest"
	"github.com/isekco/vestia/internal/usecase"
)

const documentCacheKey = "ledger-document"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	var (
		pool        *pgxpool.Pool
		redisClient *redislib.Client
		source      usecase.RawSource
		docStore    usecase.DocumentStore
	)

	switch cfg.LedgerSource {
	case "postgres":
		pool, err = postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		store := postgresRepo.NewDocumentStore(pool, postgresRepo.NewRetrier())
		source = store
		docStore = store

	case "file":
		source = fileRepo.NewSource(cfg.LedgerPath)
		log.Info().Str("path", cfg.LedgerPath).Msg("serving ledger from file")

	default:
		log.Fatal().Str("source", cfg.LedgerSource).Msg("unknown ledger source")
	}

	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		cache := redisRepo.NewCache(redisClient)
		source = usecase.NewCachedSource(source, cache, documentCacheKey, cfg.DocumentCacheTTL, log)
	}

	m := metrics.New()
	mapper := ingest.NewMapper(log)
	provider := usecase.NewCachedLedgerProvider(source, mapper)
	positionEngine := engine.NewWithScale(int32(cfg.EngineScale))

	positionUC := usecase.NewPositionUseCase(provider, positionEngine)
	ledgerUC := usecase.NewLedgerUseCase(provider)

	var docUC *usecase.DocumentUseCase
	if docStore != nil {
		docUC = usecase.NewDocumentUseCase(docStore, mapper, provider, postgresRepo.NewULIDGenerator())
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PositionHandler:    handler.NewPositionHandler(positionUC, m, log),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC, docUC, m, log),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		Logger:             log,
		Metrics:            m,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
