package queue

import (
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/yt-harvest/youtube-warehouse-go/pkg/logger"
)

// Client wraps the asynq client for enqueueing harvest tasks
type Client struct {
	asynqClient *asynq.Client
}

// NewClient creates a new queue client from a Redis URI
// (redis://, rediss:// or redis-socket://).
func NewClient(redisURI string) (*Client, error) {
	redisOpt, err := asynq.ParseRedisURI(redisURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URI: %w", err)
	}

	return &Client{
		asynqClient: asynq.NewClient(redisOpt),
	}, nil
}

// Close closes the client connection
func (c *Client) Close() error {
	return c.asynqClient.Close()
}

// EnqueueChannelHarvest enqueues a single channel harvest task
func (c *Client) EnqueueChannelHarvest(channelID string) error {
	payload, err := NewHarvestChannelTask(channelID, map[string]interface{}{
		"source":      "api",
		"enqueued_at": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to create task payload: %w", err)
	}

	payloadBytes, err := payload.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeHarvestChannel, payloadBytes)

	info, err := c.asynqClient.Enqueue(task,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Minute),
		asynq.Queue("default"),
		// One pending task per channel; replays collapse into it.
		asynq.TaskID(fmt.Sprintf("%s:%s", TypeHarvestChannel, channelID)),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			logger.Log.Debug("Channel harvest already queued",
				zap.String("channel_id", channelID),
			)
			return nil
		}
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	logger.Log.Info("Enqueued channel harvest",
		zap.String("channel_id", channelID),
		zap.String("task_id", info.ID),
	)

	return nil
}

// EnqueueChannelHarvestBatch enqueues one harvest task per channel ID
func (c *Client) EnqueueChannelHarvestBatch(channelIDs []string) error {
	for _, channelID := range channelIDs {
		if err := c.EnqueueChannelHarvest(channelID); err != nil {
			return fmt.Errorf("failed to enqueue channel %s: %w", channelID, err)
		}
	}
	return nil
}
