package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"tierboard/pkg/config"
	"tierboard/pkg/database"
	"tierboard/pkg/logger"
	"tierboard/pkg/storage"
	"tierboard/scheduler/jobs"
	"time"

	"github.com/go-co-op/gocron/v2"
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

	avatars, err := storage.NewAvatarStore(ctx, cfg.Bucket)
	if err != nil {
		zapLogger.Fatal("couldn't initialize the avatar storage", zap.Error(err))
	}

	zapLogger.Info("starting scheduler")

	// Create a new scheduler with options.
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithLogger(gocron.NewLogger(gocron.LogLevelInfo)),
	)
	if err != nil {
		zapLogger.Fatal("failed to create scheduler", zap.Error(err))
	}

	// Register the orphan sweep, once per day and once on start.
	sweeper := jobs.NewOrphanSweeper(db, avatars)
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(cfg.Scheduler.SweepHour, 0, 0),
			),
		),
		gocron.NewTask(sweeper.Task),
		gocron.WithName("orphan-sweep"),
		gocron.WithTags("members"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		zapLogger.Fatal("failed to create orphan sweep job", zap.Error(err))
	}

	// Start the scheduler.
	s.Start()

	defer func() {
		// Shutdown the scheduler when main() exits.
		if err := s.Shutdown(); err != nil {
			zapLogger.Error("error shutting down scheduler", zap.Error(err))
		}
	}()

	// Wait for termination signal.
	<-ctx.Done()
	zapLogger.Info("shutting down scheduler")
}
