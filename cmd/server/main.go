package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yt-harvest/youtube-warehouse-go/internal/config"
	"github.com/yt-harvest/youtube-warehouse-go/internal/db"
	"github.com/yt-harvest/youtube-warehouse-go/internal/db/repository"
	"github.com/yt-harvest/youtube-warehouse-go/internal/handler"
	"github.com/yt-harvest/youtube-warehouse-go/internal/middleware"
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
	adminRepo := repository.NewAdminRepository(pool)

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

	// Report publisher (optional)
	var publisher *service.AMQPReportPublisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = service.NewAMQPReportPublisher(&cfg.RabbitMQ)
		if err != nil {
			logger.Log.Fatal("failed to initialize RabbitMQ publisher", zap.Error(err))
		}
		defer func() { _ = publisher.Close() }()
		harvester.SetReportPublisher(publisher)
	}

	// Async harvest queue (optional)
	var queueClient *queue.Client
	if cfg.Redis.URL != "" {
		queueClient, err = queue.NewClient(cfg.Redis.URL)
		if err != nil {
			logger.Log.Warn("failed to initialize queue client, async harvesting disabled", zap.Error(err))
			queueClient = nil
		} else {
			defer func() { _ = queueClient.Close() }()
			logger.Log.Info("queue client initialized, async harvesting available")
		}
	}

	var enqueuer handler.TaskEnqueuer
	if queueClient != nil {
		enqueuer = queueClient
	}

	harvestHandler := handler.NewHarvestHandler(harvester, enqueuer)
	tablesHandler := handler.NewTablesHandler(channelRepo, videoRepo, commentRepo)
	questionsHandler := handler.NewQuestionsHandler(pool)
	adminHandler := handler.NewAdminHandler(adminRepo)

	var brokerProbe interface{ IsHealthy() bool }
	if publisher != nil {
		brokerProbe = publisher
	}
	healthHandler := handler.NewHealthHandler(pool, brokerProbe)

	authMiddleware := middleware.NewAPIKeyAuth(cfg.Server.APIKeys)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", healthHandler.LivenessProbe)
	router.GET("/ready", healthHandler.ReadinessProbe)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1", authMiddleware.Middleware())
	{
		api.POST("/harvest", harvestHandler.Harvest)
		api.POST("/purge", adminHandler.Purge)
		api.GET("/tables/:table", tablesHandler.Get)
		api.GET("/questions", questionsHandler.List)
		api.GET("/questions/:key", questionsHandler.Run)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("server starting", zap.Int("port", cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Log.Fatal("server error", zap.Error(err))
	case sig := <-shutdown:
		logger.Log.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Log.Error("graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				logger.Log.Error("failed to close server", zap.Error(err))
			}
			os.Exit(1)
		}

		logger.Log.Info("server stopped gracefully")
	}
}
