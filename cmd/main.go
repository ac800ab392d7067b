package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/userdirectory/user-service/config"
	usercmd "github.com/userdirectory/user-service/internal/command"
	"github.com/userdirectory/user-service/internal/handler"
	userqry "github.com/userdirectory/user-service/internal/query"
	"github.com/userdirectory/user-service/internal/repository"
	"github.com/userdirectory/user-service/shared/events"
	"github.com/userdirectory/user-service/shared/logger"
	"github.com/userdirectory/user-service/shared/middleware"
	sharedmongo "github.com/userdirectory/user-service/shared/mongo"
	sharedredis "github.com/userdirectory/user-service/shared/redis"
)

func main() {
	cfg, err := config.NewConfig(config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log.Level)
	gin.SetMode(cfg.HTTP.GinMode)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// MongoDB connection (source of truth)
	db, err := sharedmongo.NewClient(ctx, cfg.Database.URL, cfg.Database.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer closeCancel()
		if err := db.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from database")
		}
	}()
	log.Info().Str("collection", cfg.Database.Collection).Msg("connected to MongoDB")

	instance := cfg.Redis.ConsumerGroup
	if instance == "" {
		instance = defaultInstanceName()
	}

	// Redis connection (view cache + event streaming), optional
	var (
		redisConn   *goredis.Client
		cacheHealth handler.Pinger
		publisher   usercmd.EventPublisher = events.NopPublisher{}
	)
	if cfg.Redis.Enabled() {
		redis, err := sharedredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redis.Close()
		redisConn = redis.Client
		cacheHealth = redis
		publisher = events.NewPublisher(redis.Client, cfg.Redis.StreamMaxLen, instance)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
	} else {
		log.Warn().Msg("REDIS_ADDR not set: view cache and user events disabled")
	}

	// --- CQRS wiring ---
	writeRepo := repository.NewUserRepository(db.Collection(cfg.Database.Collection))
	readRepo := repository.NewUserReadRepository(writeRepo, redisConn, cfg.Redis.CacheTTL)

	commandSvc := usercmd.NewUserCommandService(writeRepo, readRepo, publisher)
	querySvc := userqry.NewUserQueryService(writeRepo, readRepo, instance)

	userHandler := handler.NewUserHandler(commandSvc, querySvc)
	healthHandler := handler.NewHealthHandler(db, cacheHealth)

	router := gin.New()
	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.CORSMiddleware(),
		middleware.LoggingMiddleware(),
		gin.Recovery(),
	)
	userHandler.RegisterRoutes(router)
	router.GET("/health", healthHandler.Health)

	// Each instance reads the stream through its own group, named after it.
	if redisConn != nil {
		go func() {
			subscriber := events.NewSubscriber(redisConn, events.SubscriberConfig{
				Group:    instance,
				Consumer: instance + "-consumer",
				Stream:   events.UserEventsStream,
				Handler:  querySvc.HandleUserEvent,
			})
			if err := subscriber.Start(ctx); err != nil {
				log.Error().Err(err).Msg("user event subscriber stopped")
			}
		}()
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("user service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// defaultInstanceName names this process on the user event stream. It is
// also its consumer group, so every instance sees every event.
func defaultInstanceName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "local"
	}
	return "user-service-" + host
}
