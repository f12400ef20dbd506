package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/triptrizz/triptrizz-server/internal/config"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"github.com/triptrizz/triptrizz-server/internal/services"
	"github.com/triptrizz/triptrizz-server/internal/workers"
	"github.com/triptrizz/triptrizz-server/pkg/cache"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
	"github.com/triptrizz/triptrizz-server/pkg/queue"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger()
	logger.Info("Starting TripTrizz activity worker...")

	db, err := repository.NewDatabase(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	redisClient := cache.NewRedisClient(
		cfg.Redis.Addr(),
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
		cfg.Redis.MinIdleConns,
	)
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}

	socialConsumer := queue.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.SocialEvents, "activity-worker-group")
	defer socialConsumer.Close()

	engagementConsumer := queue.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.EngagementEvents, "activity-worker-group")
	defer engagementConsumer.Close()

	activityRepo := repository.NewActivityRepository(db.DB)
	relRepo := repository.NewRelationshipRepository(db.DB)

	activityService := services.NewActivityService(activityRepo, relRepo, redisClient, &cfg.Feed, logger)

	socialWorker := workers.NewActivityWorker(activityService, socialConsumer, logger)
	engagementWorker := workers.NewActivityWorker(activityService, engagementConsumer, logger)

	go func() {
		if err := socialWorker.Start(ctx); err != nil {
			logger.WithError(err).Error("Social events worker stopped with error")
		}
	}()

	go func() {
		if err := engagementWorker.Start(ctx); err != nil {
			logger.WithError(err).Error("Engagement events worker stopped with error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")

	if err := socialWorker.Stop(); err != nil {
		logger.WithError(err).Error("Failed to stop social events worker")
	}
	if err := engagementWorker.Stop(); err != nil {
		logger.WithError(err).Error("Failed to stop engagement events worker")
	}

	logger.Info("Worker exited")
}
