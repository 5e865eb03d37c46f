package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"coursecraft/internal/cache"
	"coursecraft/internal/config"
	"coursecraft/internal/registry"
	"coursecraft/internal/service"
	"coursecraft/internal/store"
	"coursecraft/internal/store/memstore"
	"coursecraft/internal/store/mongostore"
	"coursecraft/internal/store/surrealstore"
	"coursecraft/internal/transport/rest"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	ctx := context.Background()
	cfg := config.Load()

	reg := registry.Default()

	// Pick the storage backend and wrap it so every read resolves
	// artifacts to their current schema version.
	var backing store.Store
	var cleanup func()

	switch cfg.StorageBackend {
	case config.BackendMongo:
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatalw("failed to connect to MongoDB", "error", err)
		}
		cleanup = func() { mongoClient.Disconnect(ctx) }

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			log.Fatalw("failed to ping MongoDB", "error", err)
		}
		log.Infow("connected to MongoDB", "database", cfg.MongoDatabase)

		ms := mongostore.New(mongoClient.Database(cfg.MongoDatabase))
		if err := ms.EnsureIndexes(ctx); err != nil {
			log.Fatalw("failed to create indexes", "error", err)
		}
		backing = ms

	case config.BackendSurreal:
		ss, err := surrealstore.New(surrealstore.Config{
			URL:       cfg.SurrealURL,
			Namespace: cfg.SurrealNamespace,
			Database:  cfg.SurrealDatabase,
			Username:  cfg.SurrealUsername,
			Password:  cfg.SurrealPassword,
		})
		if err != nil {
			log.Fatalw("failed to connect to SurrealDB", "error", err)
		}
		cleanup = ss.Close
		log.Infow("connected to SurrealDB", "database", cfg.SurrealDatabase)
		backing = ss

	case config.BackendMemory:
		log.Infow("using in-memory storage; data will not survive a restart")
		backing = memstore.New()

	default:
		log.Fatalw("unknown storage backend", "backend", cfg.StorageBackend)
	}
	if cleanup != nil {
		defer cleanup()
	}

	st := store.WithMigrations(backing, reg)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalw("failed to ping Redis", "error", err)
	}
	log.Infow("connected to Redis", "addr", cfg.RedisAddr)

	// Initialize caches
	projectCache := cache.NewProjectCache(rdb)
	artifactCache := cache.NewArtifactCache(rdb)

	// Initialize services
	projectSvc := service.NewProjectService(st, projectCache, log)
	artifactSvc := service.NewArtifactService(st, artifactCache, log)
	linkSvc := service.NewLinkService(st, log)
	exchangeSvc := service.NewExchangeService(st, reg, log)

	// Create router with container
	container := &rest.Container{
		ProjectService:  projectSvc,
		ArtifactService: artifactSvc,
		LinkService:     linkSvc,
		ExchangeService: exchangeSvc,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Infow("server starting", "port", cfg.HTTPPort, "backend", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("listen and serve", "error", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infow("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Infow("server exited")
}
