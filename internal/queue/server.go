package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/yt-harvest/youtube-warehouse-go/pkg/logger"
)

// Server wraps an asynq worker server bound to the harvest task types
type Server struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

// NewServer creates a worker server consuming from the given Redis URI
func NewServer(redisURI string, concurrency int, handler *HarvestHandler) (*Server, error) {
	redisOpt, err := asynq.ParseRedisURI(redisURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URI: %w", err)
	}

	if concurrency <= 0 {
		concurrency = 2
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			"default": 1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
			logger.Log.Error("Harvest task failed",
				zap.String("type", task.Type()),
				zap.Error(err),
			)
		}),
	})

	mux := asynq.NewServeMux()
	mux.Handle(TypeHarvestChannel, handler)

	return &Server{srv: srv, mux: mux}, nil
}

// Run starts the worker and blocks until shutdown
func (s *Server) Run() error {
	return s.srv.Run(s.mux)
}

// Shutdown stops the worker gracefully
func (s *Server) Shutdown() {
	s.srv.Shutdown()
}
