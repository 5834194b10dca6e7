package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/divyde/divyde/internal/adapter/http"
	"github.com/divyde/divyde/internal/adapter/http/handler"
	"github.com/divyde/divyde/internal/adapter/http/middleware"
	postgresRepo "github.com/divyde/divyde/internal/adapter/repository/postgres"
	redisRepo "github.com/divyde/divyde/internal/adapter/repository/redis"
	"github.com/divyde/divyde/internal/infrastructure/auth"
	"github.com/divyde/divyde/internal/infrastructure/config"
	"github.com/divyde/divyde/internal/infrastructure/logger"
	"github.com/divyde/divyde/internal/infrastructure/metrics"
	"github.com/divyde/divyde/internal/infrastructure/postgres"
	"github.com/divyde/divyde/internal/infrastructure/redis"
	"github.com/divyde/divyde/internal/usecase"
	redislib "github.com/redis/go-redis/v9"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Redis backs idempotency regardless of the storage backend.
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	var (
		txManager  usecase.TransactionManager
		friendRepo usecase.FriendRepository
		debtRepo   usecase.DebtRepository
		userRepo   usecase.UserRepository
		pingers    = map[string]handler.Pinger{"redis": redisPinger{redisClient}}
	)

	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		txManager = postgresRepo.NewTxManager(pool)
		friendRepo = postgresRepo.NewFriendRepository(pool)
		debtRepo = postgresRepo.NewDebtRepository(pool)
		userRepo = postgresRepo.NewUserRepository(pool)
		pingers["postgres"] = pool

		go func() {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for range ticker.C {
				m.DBConnections.Set(float64(pool.Stat().TotalConns()))
			}
		}()

	case "redis":
		txManager = redisRepo.NewTxManager(redisClient)
		friendRepo = redisRepo.NewFriendStore(redisClient)
		debtRepo = redisRepo.NewDebtStore(redisClient)
		userRepo = redisRepo.NewUserStore(redisClient)

	default:
		log.Fatal().Str("backend", cfg.StorageBackend).Msg("unknown storage backend")
	}

	idGen := postgresRepo.NewULIDGenerator()
	clock := usecase.UTCClock{}
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	friendUC := usecase.NewFriendUseCase(txManager, friendRepo, debtRepo, idGen, clock).WithMetrics(m)
	debtUC := usecase.NewDebtUseCase(txManager, debtRepo, friendRepo, idGen, clock).WithMetrics(m)
	userUC := usecase.NewUserUseCase(userRepo, idGen, clock).WithMetrics(m)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      handler.NewAuthHandler(userUC, jwtManager),
		FriendHandler:    handler.NewFriendHandler(friendUC),
		DebtHandler:      handler.NewDebtHandler(debtUC),
		HealthHandler:    handler.NewHealthHandler(pingers),
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("backend", cfg.StorageBackend).Msg("starting server")
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

// redisPinger adapts the redis client to the health check interface.
type redisPinger struct {
	client *redislib.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
