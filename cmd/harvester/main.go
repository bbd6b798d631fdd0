package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yt-harvest/youtube-warehouse-go/internal/config"
	"github.com/yt-harvest/youtube-warehouse-go/internal/db"
	"github.com/yt-harvest/youtube-warehouse-go/internal/db/repository"
	"github.com/yt-harvest/youtube-warehouse-go/internal/queue"
	"github.com/yt-harvest/youtube-warehouse-go/internal/service"
	"github.com/yt-harvest/youtube-warehouse-go/internal/service/youtube"
	"github.com/yt-harvest/youtube-warehouse-go/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.YouTube.APIKey == "" {
		logger.Log.Fatal("youtube.apikey is required (APP_YOUTUBE_APIKEY)")
	}
	if cfg.Redis.URL == "" {
		logger.Log.Fatal("redis.url is required for the harvest worker (APP_REDIS_URL)")
	}

	ctx := context.Background()

	pool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	logger.Log.Info("database connection established")

	channelRepo := repository.NewChannelRepository(pool)
	videoRepo := repository.NewVideoRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	ytClient, err := youtube.NewClient(ctx, cfg.YouTube.APIKey)
	if err != nil {
		logger.Log.Fatal("failed to initialize YouTube client", zap.Error(err))
	}
	ytClient.SetPlaylistPageSize(cfg.YouTube.PlaylistPageSize)

	harvester := service.NewHarvester(ytClient, channelRepo, videoRepo, commentRepo, service.HarvesterConfig{
		MaxAttempts:     cfg.Harvest.MaxAttempts,
		MaxBackoff:      cfg.Harvest.MaxBackoff,
		CommentPageSize: cfg.YouTube.CommentPageSize,
		CommentsEnabled: cfg.Harvest.CommentsEnabled,
	})

	if cfg.RabbitMQ.Enabled {
		publisher, err := service.NewAMQPReportPublisher(&cfg.RabbitMQ)
		if err != nil {
			logger.Log.Fatal("failed to initialize RabbitMQ publisher", zap.Error(err))
		}
		defer func() { _ = publisher.Close() }()
		harvester.SetReportPublisher(publisher)
	}

	handler := queue.NewHarvestHandler(harvester)

	srv, err := queue.NewServer(cfg.Redis.URL, cfg.Redis.Concurrency, handler)
	if err != nil {
		logger.Log.Fatal("failed to initialize queue server", zap.Error(err))
	}

	logger.Log.Info("harvest worker starting",
		zap.Int("concurrency", cfg.Redis.Concurrency),
	)

	// Run blocks until SIGINT/SIGTERM and drains in-flight tasks.
	if err := srv.Run(); err != nil {
		logger.Log.Fatal("queue server error", zap.Error(err))
	}

	logger.Log.Info("harvest worker stopped gracefully")
}
