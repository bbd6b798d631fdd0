package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/yt-harvest/youtube-warehouse-go/internal/service"
	"github.com/yt-harvest/youtube-warehouse-go/pkg/logger"
)

// HarvestHandler runs channel harvest tasks on the worker side
type HarvestHandler struct {
	harvester *service.Harvester
}

// NewHarvestHandler creates a new harvest task handler
func NewHarvestHandler(harvester *service.Harvester) *HarvestHandler {
	return &HarvestHandler{harvester: harvester}
}

// ProcessTask implements asynq.HandlerFunc
func (h *HarvestHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := UnmarshalHarvestChannelPayload(task.Payload())
	if err != nil {
		// Malformed payloads never become valid; don't let asynq retry them.
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	logger.Log.Info("Processing channel harvest task",
		zap.String("channel_id", payload.ChannelID),
	)

	report := h.harvester.HarvestChannel(ctx, payload.ChannelID)
	if report.Status == service.StatusFailed {
		return fmt.Errorf("harvest of channel %s failed: %s", payload.ChannelID, report.Error)
	}

	logger.Log.Info("Channel harvest task done",
		zap.String("channel_id", payload.ChannelID),
		zap.String("run_id", report.RunID.String()),
		zap.Int("videos_stored", report.VideosStored),
		zap.Int("comments_inserted", report.CommentsInserted),
	)

	return nil
}
