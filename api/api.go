package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"tierboard/api/modules"
	"tierboard/api/routes"
	"tierboard/pkg/config"
	"tierboard/pkg/database"
	"tierboard/pkg/logger"
	"tierboard/pkg/redis"
	"tierboard/pkg/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("Couldn't initialize the logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("couldn't connect to the database", zap.Error(err))
	}

	// Runs the migrations.
	rawDb, err := db.DB()
	if err != nil {
		zapLogger.Fatal("couldn't get raw db connection", zap.Error(err))
	}
	defer rawDb.Close()

	if err := database.RunMigrations(cfg.Database, rawDb); err != nil {
		zapLogger.Fatal("couldn't run the migrations", zap.Error(err))
	}

	// Redis is optional, without it the cache is kept per instance.
	var redisClient *redis.RedisClient
	if cfg.Redis.Enabled() {
		redisClient, err = redis.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("couldn't connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
	}

	avatars, err := storage.NewAvatarStore(ctx, cfg.Bucket)
	if err != nil {
		zapLogger.Fatal("couldn't initialize the avatar storage", zap.Error(err))
	}

	// Create a module with all necessary handlers.
	module := modules.NewModule(&modules.ModuleDependencies{
		DB:      db,
		Redis:   redisClient,
		Avatars: avatars,
		Logger:  zapLogger,
	})
	defer module.Close()

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.LeaderboardHandler,
		module.MemberHandler,
	)

	if disk, ok := avatars.(*storage.DiskStore); ok {
		router.ServeUploads(disk.Dir())
	}

	// Start the server.
	if err := router.Serve(ctx, cfg.Server.Addr); err != nil {
		zapLogger.Error("http server stopped", zap.Error(err))
	}
}
