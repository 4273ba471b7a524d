package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"anoa.com/marketplace/internal/bootstrap"
	"anoa.com/marketplace/internal/config"
	"anoa.com/marketplace/internal/server"
	"anoa.com/marketplace/pkg/cache"
	"anoa.com/marketplace/pkg/database"
	"anoa.com/marketplace/pkg/events"
	"anoa.com/marketplace/pkg/logger"
	"anoa.com/marketplace/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(logger.ConfigFor(cfg.AppEnv, cfg.LogLevel))
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.Database(), zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := bootstrap.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db, zlog); err != nil {
			zlog.Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	ctx := context.Background()

	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		zlog.Warn("redis unavailable, review cooldown and checkout lock disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	imageStorage, err := storage.NewCloudinaryStorage(cfg.Cloudinary())
	if err != nil {
		zlog.Fatal("failed to initialize cloudinary storage", zap.Error(err))
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.OrderEventsTopic)
	if err != nil {
		zlog.Fatal("failed to initialize order event publisher", zap.Error(err))
	}
	defer publisher.Close()

	srv := server.NewServer(cfg, server.Deps{
		DB:           db,
		Redis:        redisClient,
		ImageStorage: imageStorage,
		Publisher:    publisher,
		Logger:       zlog,
	})

	if err := srv.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server exited with error", zap.Error(err))
	}
}
